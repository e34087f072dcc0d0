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

package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/legalesign/legalesign-go/legalesign-contract/codecs"
	werror "github.com/palantir/witchcraft-go-error"
)

// WithEndpointName configures the request's context with a name for the called endpoint, like "DocumentCreate".
// This is read by the metrics middleware.
func WithEndpointName(name string) RequestParam {
	return requestParamFunc(func(b *requestBuilder) error {
		b.configureCtx = append(b.configureCtx, func(ctx context.Context) context.Context {
			return ContextWithEndpointName(ctx, name)
		})
		return nil
	})
}

// WithRequestMethod sets the HTTP method of the request, e.g. GET or POST.
func WithRequestMethod(method string) RequestParam {
	return requestParamFunc(func(b *requestBuilder) error {
		if method == "" {
			return werror.Error("httpclient.WithRequestMethod: method can not be empty")
		}
		b.method = strings.ToUpper(method)
		return nil
	})
}

// WithPath sets the path for the request. This will be joined with one of the base URLs set on the client.
func WithPath(path string) RequestParam {
	return requestParamFunc(func(b *requestBuilder) error {
		b.path = path
		return nil
	})
}

// WithPathf sets the path for the request. Each argument is path-escaped before formatting.
func WithPathf(format string, args ...any) RequestParam {
	escaped := make([]any, len(args))
	for i, arg := range args {
		escaped[i] = url.PathEscape(fmt.Sprint(arg))
	}
	return WithPath(fmt.Sprintf(format, escaped...))
}

// WithHeader sets a header on a request.
func WithHeader(key, value string) RequestParam {
	return requestParamFunc(func(b *requestBuilder) error {
		b.headers.Set(key, value)
		return nil
	})
}

// WithQueryValues adds query parameters to a request.
func WithQueryValues(query url.Values) RequestParam {
	return requestParamFunc(func(b *requestBuilder) error {
		for key, values := range query {
			for _, v := range values {
				b.query.Add(key, v)
			}
		}
		return nil
	})
}

// WithRequestMaxRetries overrides the client's retry count for this request. Zero means a single attempt.
func WithRequestMaxRetries(maxRetries int) RequestParam {
	return requestParamFunc(func(b *requestBuilder) error {
		if maxRetries < 0 {
			return werror.Error("httpclient.WithRequestMaxRetries: value must be non-negative",
				werror.SafeParam("maxRetries", maxRetries))
		}
		b.maxRetries = &maxRetries
		return nil
	})
}

// WithRequestBody provides a value to marshal and use as the request body. Encoding is handled by the encoder.
// Example:
//
//	input := legalesign.GroupCreateParams{...}
//	resp, err := client.Do(..., WithRequestBody(input, codecs.JSON), ...)
func WithRequestBody(input any, encoder codecs.Encoder) RequestParam {
	return requestParamFunc(func(b *requestBuilder) error {
		b.bodyMiddleware.requestInput = input
		b.bodyMiddleware.requestEncoder = encoder
		b.headers.Set("Content-Type", encoder.ContentType())
		return nil
	})
}

// WithRawRequestBody uses the provided reader as the request body. The body can only be sent once, so the
// request is never retried.
func WithRawRequestBody(input io.Reader) RequestParam {
	return requestParamFunc(func(b *requestBuilder) error {
		b.bodyMiddleware.requestInput = RequestBodyStreamOnce(input)
		b.bodyMiddleware.requestEncoder = nil
		b.headers.Set("Content-Type", "application/octet-stream")
		return nil
	})
}

// WithJSONRequest sets the request body to the input marshaled using the JSON codec.
func WithJSONRequest(input any) RequestParam {
	return WithRequestBody(input, codecs.JSON)
}

// WithResponseBody provides a value into which the body middleware will decode the response body.
// In the case of an empty response, output is left unmodified.
func WithResponseBody(output any, decoder codecs.Decoder) RequestParam {
	return requestParamFunc(func(b *requestBuilder) error {
		b.bodyMiddleware.responseOutput = output
		b.bodyMiddleware.responseDecoder = decoder
		b.headers.Set("Accept", decoder.Accept())
		return nil
	})
}

// WithRawResponseBody configures the request such that the response body is not read or drained after the
// request is executed. The caller must read and close the returned body.
func WithRawResponseBody() RequestParam {
	return requestParamFunc(func(b *requestBuilder) error {
		b.bodyMiddleware.rawOutput = true
		b.bodyMiddleware.responseOutput = nil
		b.bodyMiddleware.responseDecoder = nil
		b.headers.Set("Accept", "application/octet-stream")
		return nil
	})
}

// WithJSONResponse unmarshals the response body using the JSON codec.
func WithJSONResponse(output any) RequestParam {
	return WithResponseBody(output, codecs.JSON)
}

// WithRequestMiddleware adds a middleware that applies to this request only.
func WithRequestMiddleware(middleware Middleware) RequestParam {
	return requestParamFunc(func(b *requestBuilder) error {
		b.middlewares = append(b.middlewares, middleware)
		return nil
	})
}

// WithoutRedirects hands 3xx responses back to the caller instead of following them, for endpoints
// that answer with a one-use link in the Location header.
func WithoutRedirects() RequestParam {
	return requestParamFunc(func(b *requestBuilder) error {
		b.configureCtx = append(b.configureCtx, func(ctx context.Context) context.Context {
			return context.WithValue(ctx, noRedirectsContextKey{}, true)
		})
		return nil
	})
}

type noRedirectsContextKey struct{}

// checkRedirect is the http.Client redirect policy. It matches the default policy except for
// requests built with WithoutRedirects.
func checkRedirect(req *http.Request, via []*http.Request) error {
	if disabled, _ := req.Context().Value(noRedirectsContextKey{}).(bool); disabled {
		return http.ErrUseLastResponse
	}
	if len(via) >= maxRedirects {
		return werror.ErrorWithContextParams(req.Context(), "stopped after too many redirects",
			werror.SafeParam("redirects", len(via)))
	}
	return nil
}

type endpointNameContextKey struct{}

// ContextWithEndpointName returns a copy of ctx carrying the endpoint name.
func ContextWithEndpointName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, endpointNameContextKey{}, name)
}

func endpointNameFromContext(ctx context.Context) string {
	name, _ := ctx.Value(endpointNameContextKey{}).(string)
	return name
}
