// Copyright (c) 2026 Palantir Technologies. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package httpclient

import (
	"crypto/tls"
	"net/url"
	"strings"
	"time"

	"github.com/palantir/pkg/bytesbuffers"
	"github.com/palantir/pkg/refreshable"
	werror "github.com/palantir/witchcraft-go-error"
)

// ClientParam configures a Client.
type ClientParam interface {
	apply(builder *clientBuilder) error
}

type clientParamFunc func(builder *clientBuilder) error

func (f clientParamFunc) apply(b *clientBuilder) error {
	return f(b)
}

// WithConfig applies every setting of c.
func WithConfig(c ClientConfig) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		params, err := configToParams(c)
		if err != nil {
			return err
		}
		for _, p := range params {
			if err := p.apply(b); err != nil {
				return err
			}
		}
		return nil
	})
}

// WithServiceName sets the value of the 'service-name' tag on client metrics.
func WithServiceName(serviceName string) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.serviceName = serviceName
		return nil
	})
}

// WithBaseURL sets the single base URL of the API, e.g. "https://eu-api.legalesign.com/api/v1".
func WithBaseURL(baseURL string) ClientParam {
	return WithBaseURLs([]string{baseURL})
}

// WithBaseURLs sets the base URLs of the API. Retries move to the next URL in order.
func WithBaseURLs(urls []string) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		var uris []string
		for _, u := range urls {
			u = strings.TrimSpace(u)
			if u == "" {
				continue
			}
			parsed, err := url.Parse(u)
			if err != nil || parsed.Scheme == "" || parsed.Host == "" {
				return werror.Error("httpclient: invalid base URL", werror.UnsafeParam("baseURL", u))
			}
			uris = append(uris, strings.TrimSuffix(u, "/"))
		}
		b.uris = uris
		return nil
	})
}

// WithAuthToken sets the value of the Authorization header.
func WithAuthToken(token string) ClientParam {
	return WithRefreshableAuthToken(refreshable.NewString(refreshable.NewDefaultRefreshable(token)))
}

// WithRefreshableAuthToken reads the Authorization header value from token on every request, so the key can
// be rotated without rebuilding the client.
func WithRefreshableAuthToken(token refreshable.String) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.authToken = token
		return nil
	})
}

// WithUserAgent sets the User-Agent header on requests that do not already carry one.
func WithUserAgent(userAgent string) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.userAgent = userAgent
		return nil
	})
}

// WithMaxRetries sets the number of times a retryable failure is retried. Zero disables retries.
func WithMaxRetries(maxRetries int) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		if maxRetries < 0 {
			return werror.Error("httpclient: max retries must be non-negative", werror.SafeParam("maxRetries", maxRetries))
		}
		b.maxRetries = maxRetries
		return nil
	})
}

// WithInitialBackoff sets the delay before the first retry.
func WithInitialBackoff(initialBackoff time.Duration) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.initialBackoff = initialBackoff
		return nil
	})
}

// WithMaxBackoff caps the delay between retries.
func WithMaxBackoff(maxBackoff time.Duration) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.maxBackoff = maxBackoff
		return nil
	})
}

// WithHTTPTimeout sets the timeout on the http client. Zero means no timeout.
func WithHTTPTimeout(timeout time.Duration) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.timeout = timeout
		return nil
	})
}

// WithDialTimeout sets the timeout for establishing new connections.
func WithDialTimeout(timeout time.Duration) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.dialTimeout = timeout
		return nil
	})
}

// WithIdleConnTimeout sets the timeout for idle connections.
func WithIdleConnTimeout(timeout time.Duration) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.idleConnTimeout = timeout
		return nil
	})
}

// WithTLSHandshakeTimeout sets the timeout for TLS handshakes.
func WithTLSHandshakeTimeout(timeout time.Duration) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.tlsHandshakeTimeout = timeout
		return nil
	})
}

// WithHTTP2ReadIdleTimeout sets the interval after which idle HTTP/2 connections are health checked.
func WithHTTP2ReadIdleTimeout(timeout time.Duration) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.http2ReadIdleTimeout = timeout
		return nil
	})
}

// WithMaxIdleConns sets the number of reusable TCP connections the client will maintain in total and per host.
func WithMaxIdleConns(total, perHost int) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.maxIdleConns = total
		b.maxIdleConnsPerHost = perHost
		return nil
	})
}

// WithProxyURL routes requests through an http or https proxy.
func WithProxyURL(proxyURL string) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		parsed, err := url.Parse(proxyURL)
		if err != nil {
			return werror.Wrap(err, "invalid proxy URL")
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return werror.Error("unsupported proxy URL scheme", werror.SafeParam("scheme", parsed.Scheme))
		}
		b.proxyURL = parsed
		return nil
	})
}

// WithTLSConfig sets the TLS configuration of the transport. The config is cloned.
func WithTLSConfig(conf *tls.Config) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		if conf != nil {
			b.tlsConfig = conf.Clone()
		}
		return nil
	})
}

// WithDisableHTTP2 leaves the transport on HTTP/1.1.
func WithDisableHTTP2() ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.disableHTTP2 = true
		return nil
	})
}

// WithMiddleware adds a middleware applied to every request, inside the error decoder.
func WithMiddleware(h Middleware) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.middlewares = append(b.middlewares, h)
		return nil
	})
}

// WithBytesBufferPool encodes request bodies into buffers from pool.
func WithBytesBufferPool(pool bytesbuffers.Pool) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.bufferPool = pool
		return nil
	})
}

// WithErrorDecoder replaces the default error decoder. A nil decoder returns every response to the caller.
func WithErrorDecoder(errorDecoder ErrorDecoder) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.errorDecoder = errorDecoder
		return nil
	})
}

// WithDisableMetrics disables the client metrics middleware.
func WithDisableMetrics() ClientParam {
	return WithRefreshableDisableMetrics(refreshable.NewBool(refreshable.NewDefaultRefreshable(true)))
}

// WithRefreshableDisableMetrics disables the client metrics middleware while disabled is true.
func WithRefreshableDisableMetrics(disabled refreshable.Bool) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.disableMetrics = disabled
		return nil
	})
}

// WithMetricsTagProvider adds tags to the client metrics.
func WithMetricsTagProvider(provider TagsProvider) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.metricsTagProviders = append(b.metricsTagProviders, provider)
		return nil
	})
}

// WithDisableRecovery lets panics in middlewares propagate instead of returning them as errors.
func WithDisableRecovery() ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.disableRecovery = refreshable.NewBool(refreshable.NewDefaultRefreshable(true))
		return nil
	})
}

// WithDisableTraceHeaderPropagation stops the client from sending the trace ID of the request context.
func WithDisableTraceHeaderPropagation() ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.disableTraceHeaderPropagation = true
		return nil
	})
}
