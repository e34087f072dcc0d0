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
	"net/http"
	"net/url"
	"strings"

	"github.com/palantir/pkg/bytesbuffers"
	werror "github.com/palantir/witchcraft-go-error"
	"github.com/palantir/witchcraft-go-tracing/wtracing"
)

const traceIDHeaderKey = "X-B3-TraceId"

type requestBuilder struct {
	method         string
	path           string
	headers        http.Header
	query          url.Values
	bodyMiddleware *bodyMiddleware
	bufferPool     bytesbuffers.Pool
	maxRetries     *int

	middlewares  []Middleware
	configureCtx []func(context.Context) context.Context
}

// RequestParam configures a single request.
type RequestParam interface {
	apply(*requestBuilder) error
}

type requestParamFunc func(*requestBuilder) error

func (f requestParamFunc) apply(b *requestBuilder) error {
	return f(b)
}

// newRequestBuilder applies params once per call to Do. The builder is reused for every attempt.
func (c *clientImpl) newRequestBuilder(ctx context.Context, params ...RequestParam) (context.Context, *requestBuilder, error) {
	b := &requestBuilder{
		headers:        c.initializeRequestHeaders(ctx),
		query:          make(url.Values),
		bodyMiddleware: &bodyMiddleware{bufferPool: c.bufferPool},
	}
	for _, p := range params {
		if p == nil {
			continue
		}
		if err := p.apply(b); err != nil {
			return nil, nil, err
		}
	}
	for _, configure := range b.configureCtx {
		ctx = configure(ctx)
	}
	if b.method == "" {
		return nil, nil, werror.ErrorWithContextParams(ctx, "httpclient: use WithRequestMethod() to specify HTTP method")
	}
	return ctx, b, nil
}

// newRequest returns an *http.Request against baseURL and the Middlewares which should be wrapped around it.
func (b *requestBuilder) newRequest(ctx context.Context, baseURL string) (*http.Request, []Middleware, error) {
	req, err := http.NewRequestWithContext(ctx, b.method, joinURL(baseURL, b.path), nil)
	if err != nil {
		return nil, nil, werror.WrapWithContextParams(ctx, err, "failed to build new HTTP request",
			werror.SafeParam("requestMethod", b.method))
	}
	req.Header = b.headers.Clone()
	if q := b.query.Encode(); q != "" {
		req.URL.RawQuery = q
	}
	return req, append(append([]Middleware(nil), b.middlewares...), b.bodyMiddleware), nil
}

func (c *clientImpl) initializeRequestHeaders(ctx context.Context) http.Header {
	headers := make(http.Header)
	if !c.disableTraceHeaderPropagation {
		if traceID := wtracing.TraceIDFromContext(ctx); traceID != "" {
			headers.Set(traceIDHeaderKey, string(traceID))
		}
	}
	return headers
}

func joinURL(baseURL, path string) string {
	if path == "" {
		return baseURL
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}
