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
	"net/http"
)

// A Middleware wraps an http.RoundTripper. Implementations may inspect or modify the request before calling
// next.RoundTrip and inspect or replace the response afterwards.
type Middleware interface {
	RoundTrip(req *http.Request, next http.RoundTripper) (*http.Response, error)
}

// MiddlewareFunc is a convenience type alias that implements Middleware.
type MiddlewareFunc func(req *http.Request, next http.RoundTripper) (*http.Response, error)

func (f MiddlewareFunc) RoundTrip(req *http.Request, next http.RoundTripper) (*http.Response, error) {
	return f(req, next)
}

type wrappedTransport struct {
	middleware Middleware
	next       http.RoundTripper
}

func (t *wrappedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.middleware.RoundTrip(req, t.next)
}

// wrapTransport wraps rt with middlewares. The first middleware is the outermost and sees the request first.
func wrapTransport(rt http.RoundTripper, middlewares ...Middleware) http.RoundTripper {
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] == nil {
			continue
		}
		rt = &wrappedTransport{middleware: middlewares[i], next: rt}
	}
	return rt
}
