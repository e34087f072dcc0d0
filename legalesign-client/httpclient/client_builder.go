// Copyright (c) 2018 Palantir Technologies. All rights reserved.
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

// Package httpclient provides the HTTP transport used to call the Legalesign API: request building, retries
// with backoff, error decoding, metrics and TLS configuration.
package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/palantir/pkg/bytesbuffers"
	"github.com/palantir/pkg/metrics"
	"github.com/palantir/pkg/refreshable"
	"github.com/palantir/pkg/retry"
	"github.com/palantir/pkg/tlsconfig"
	werror "github.com/palantir/witchcraft-go-error"
)

const (
	defaultServiceName           = "legalesign"
	defaultDialTimeout           = 5 * time.Second
	defaultHTTPTimeout           = 60 * time.Second
	defaultKeepAlive             = 30 * time.Second
	defaultIdleConnTimeout       = 90 * time.Second
	defaultTLSHandshakeTimeout   = 10 * time.Second
	defaultExpectContinueTimeout = 1 * time.Second
	defaultHTTP2ReadIdleTimeout  = 30 * time.Second
	defaultMaxIdleConns          = 200
	defaultMaxIdleConnsPerHost   = 100
	defaultMaxRetries            = 2
	defaultInitialBackoff        = 500 * time.Millisecond
	defaultMaxBackoff            = 8 * time.Second
	defaultBackoffMultiplier     = 2
	defaultRandomizationFactor   = 0.15
	maxRedirects                 = 10
)

type clientBuilder struct {
	serviceName string
	uris        []string
	authToken   refreshable.String
	userAgent   string

	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration

	timeout              time.Duration
	dialTimeout          time.Duration
	idleConnTimeout      time.Duration
	tlsHandshakeTimeout  time.Duration
	http2ReadIdleTimeout time.Duration
	maxIdleConns         int
	maxIdleConnsPerHost  int
	proxyURL             *url.URL
	tlsConfig            *tls.Config
	disableHTTP2         bool

	middlewares                   []Middleware
	bufferPool                    bytesbuffers.Pool
	errorDecoder                  ErrorDecoder
	disableMetrics                refreshable.Bool
	disableRecovery               refreshable.Bool
	disableTraceHeaderPropagation bool
	metricsTagProviders           []TagsProvider
}

// NewClient returns a configured client ready for use.
// We apply "sane defaults" before applying the provided params.
func NewClient(params ...ClientParam) (Client, error) {
	b, err := newClientBuilder()
	if err != nil {
		return nil, err
	}
	for _, p := range params {
		if p == nil {
			continue
		}
		if err := p.apply(b); err != nil {
			return nil, err
		}
	}
	if len(b.uris) == 0 {
		return nil, werror.Error("httpclient: at least one base URL is required")
	}
	serviceNameTag, err := metrics.NewTag(MetricTagServiceName, b.serviceName)
	if err != nil {
		return nil, werror.Wrap(err, "invalid service name metrics tag", werror.SafeParam("serviceName", b.serviceName))
	}

	transport, err := b.newTransport()
	if err != nil {
		return nil, err
	}
	rt := wrapTransport(transport,
		newMetricsMiddleware(serviceNameTag, b.metricsTagProviders, b.disableMetrics),
		connectionErrorMiddleware{})

	var middlewares []Middleware
	if b.authToken != nil {
		middlewares = append(middlewares, authTokenMiddleware{token: b.authToken})
	}
	if b.userAgent != "" {
		middlewares = append(middlewares, userAgentMiddleware{userAgent: b.userAgent})
	}
	middlewares = append(middlewares, b.middlewares...)

	var edm Middleware
	if b.errorDecoder != nil {
		edm = errorDecoderMiddleware(b.errorDecoder)
	}

	return &clientImpl{
		client:                 &http.Client{Transport: rt, Timeout: b.timeout, CheckRedirect: checkRedirect},
		middlewares:            middlewares,
		errorDecoderMiddleware: edm,
		recoveryMiddleware:     recoveryMiddleware{Disabled: b.disableRecovery},
		uris:                   b.uris,
		maxRetries:             b.maxRetries,
		backoffOptions: []retry.Option{
			retry.WithInitialBackoff(b.initialBackoff),
			retry.WithMaxBackoff(b.maxBackoff),
			retry.WithMultiplier(defaultBackoffMultiplier),
			retry.WithRandomizationFactor(defaultRandomizationFactor),
		},
		disableTraceHeaderPropagation: b.disableTraceHeaderPropagation,
		bufferPool:                    b.bufferPool,
	}, nil
}

func newClientBuilder() (*clientBuilder, error) {
	defaultTLSConfig, err := tlsconfig.NewClientConfig()
	if err != nil {
		return nil, werror.Wrap(err, "failed to build default TLS configuration")
	}
	return &clientBuilder{
		serviceName:          defaultServiceName,
		maxRetries:           defaultMaxRetries,
		initialBackoff:       defaultInitialBackoff,
		maxBackoff:           defaultMaxBackoff,
		timeout:              defaultHTTPTimeout,
		dialTimeout:          defaultDialTimeout,
		idleConnTimeout:      defaultIdleConnTimeout,
		tlsHandshakeTimeout:  defaultTLSHandshakeTimeout,
		http2ReadIdleTimeout: defaultHTTP2ReadIdleTimeout,
		maxIdleConns:         defaultMaxIdleConns,
		maxIdleConnsPerHost:  defaultMaxIdleConnsPerHost,
		tlsConfig:            defaultTLSConfig,
		errorDecoder:         restErrorDecoder{},
		disableMetrics:       refreshable.NewBool(refreshable.NewDefaultRefreshable(false)),
		disableRecovery:      refreshable.NewBool(refreshable.NewDefaultRefreshable(false)),
	}, nil
}

func (b *clientBuilder) newTransport() (*http.Transport, error) {
	proxy := http.ProxyFromEnvironment
	if b.proxyURL != nil {
		proxy = http.ProxyURL(b.proxyURL)
	}
	transport := &http.Transport{
		Proxy: proxy,
		DialContext: (&net.Dialer{
			Timeout:   b.dialTimeout,
			KeepAlive: defaultKeepAlive,
		}).DialContext,
		MaxIdleConns:          b.maxIdleConns,
		MaxIdleConnsPerHost:   b.maxIdleConnsPerHost,
		IdleConnTimeout:       b.idleConnTimeout,
		TLSHandshakeTimeout:   b.tlsHandshakeTimeout,
		ExpectContinueTimeout: defaultExpectContinueTimeout,
		TLSClientConfig:       b.tlsConfig,
	}
	if !b.disableHTTP2 {
		if err := configureHTTP2(transport, b.http2ReadIdleTimeout); err != nil {
			return nil, err
		}
	}
	return transport, nil
}

// newTLSConfig builds a client TLS configuration from security settings. It returns nil if none are set.
func newTLSConfig(security SecurityConfig) (*tls.Config, error) {
	var params []tlsconfig.ClientParam
	if len(security.CAFiles) != 0 {
		params = append(params, tlsconfig.ClientRootCAFiles(security.CAFiles...))
	}
	if security.CertFile != "" && security.KeyFile != "" {
		params = append(params, tlsconfig.ClientKeyPairFiles(security.CertFile, security.KeyFile))
	}
	insecure := derefPtr(security.InsecureSkipVerify, false)
	if len(params) == 0 && !insecure {
		return nil, nil
	}
	tlsConfig, err := tlsconfig.NewClientConfig(params...)
	if err != nil {
		return nil, werror.Wrap(err, "failed to build tlsConfig")
	}
	tlsConfig.InsecureSkipVerify = insecure
	return tlsConfig, nil
}
