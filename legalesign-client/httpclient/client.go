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

	"github.com/legalesign/legalesign-go/legalesign-client/httpclient/internal"
	"github.com/legalesign/legalesign-go/legalesign-contract/errors"
	"github.com/palantir/pkg/bytesbuffers"
	"github.com/palantir/pkg/retry"
	werror "github.com/palantir/witchcraft-go-error"
	"github.com/palantir/witchcraft-go-logging/wlog/svclog/svc1log"
)

// A Client executes requests to the Legalesign API.
//
// The Get/Post/Put/Patch/Delete methods are for conveniently setting the method type and calling Do().
type Client interface {
	// Do executes a full request. Any input or output should be specified via params.
	// By the time it is returned, the response's body will be fully read and closed unless WithRawResponseBody
	// was used. Use the WithResponse* params to unmarshal the body before Do() returns.
	//
	// In the case of a response with StatusCode >= 400, Do() returns a nil response and a non-nil error.
	// Use StatusCodeFromError(err) to retrieve the code from the error.
	Do(ctx context.Context, params ...RequestParam) (*http.Response, error)

	Get(ctx context.Context, params ...RequestParam) (*http.Response, error)
	Post(ctx context.Context, params ...RequestParam) (*http.Response, error)
	Put(ctx context.Context, params ...RequestParam) (*http.Response, error)
	Patch(ctx context.Context, params ...RequestParam) (*http.Response, error)
	Delete(ctx context.Context, params ...RequestParam) (*http.Response, error)
}

type clientImpl struct {
	client      *http.Client
	middlewares []Middleware

	errorDecoderMiddleware Middleware
	recoveryMiddleware     Middleware

	uris                          []string
	maxRetries                    int
	backoffOptions                []retry.Option
	disableTraceHeaderPropagation bool
	bufferPool                    bytesbuffers.Pool
}

func (c *clientImpl) Get(ctx context.Context, params ...RequestParam) (*http.Response, error) {
	return c.Do(ctx, append(params, WithRequestMethod(http.MethodGet))...)
}

func (c *clientImpl) Post(ctx context.Context, params ...RequestParam) (*http.Response, error) {
	return c.Do(ctx, append(params, WithRequestMethod(http.MethodPost))...)
}

func (c *clientImpl) Put(ctx context.Context, params ...RequestParam) (*http.Response, error) {
	return c.Do(ctx, append(params, WithRequestMethod(http.MethodPut))...)
}

func (c *clientImpl) Patch(ctx context.Context, params ...RequestParam) (*http.Response, error) {
	return c.Do(ctx, append(params, WithRequestMethod(http.MethodPatch))...)
}

func (c *clientImpl) Delete(ctx context.Context, params ...RequestParam) (*http.Response, error) {
	return c.Do(ctx, append(params, WithRequestMethod(http.MethodDelete))...)
}

func (c *clientImpl) Do(ctx context.Context, params ...RequestParam) (*http.Response, error) {
	ctx, b, err := c.newRequestBuilder(ctx, params...)
	if err != nil {
		return nil, err
	}

	maxRetries := c.maxRetries
	if b.maxRetries != nil {
		maxRetries = *b.maxRetries
	}
	if maxRetries > 0 && !b.bodyMiddleware.replayable() {
		svc1log.FromContext(ctx).Debug("Request body can only be sent once; retries disabled",
			svc1log.SafeParam("requestMethod", b.method))
		maxRetries = 0
	}

	var resp *http.Response
	retrier := internal.NewRequestRetrier(retry.Start(ctx, c.backoffOptions...), maxRetries+1)
	for retrier.Next(resp, err) {
		attempt := retrier.AttemptCount() - 1
		if attempt > 0 {
			svc1log.FromContext(ctx).Debug("Retrying request",
				svc1log.SafeParam("requestMethod", b.method),
				svc1log.SafeParam("attempt", attempt),
				svc1log.Stacktrace(err))
		}
		resp, err = c.doOnce(ctx, c.uris[attempt%len(c.uris)], b)
	}
	if err == nil && resp == nil {
		// The retrier refused the first attempt, which only happens when ctx is already done.
		return nil, werror.WrapWithContextParams(ctx, ctx.Err(), "request not attempted")
	}
	return resp, err
}

func (c *clientImpl) doOnce(ctx context.Context, baseURI string, b *requestBuilder) (*http.Response, error) {
	req, reqMiddlewares, err := b.newRequest(ctx, baseURI)
	if err != nil {
		return nil, err
	}

	// shallow copy so we can overwrite the Transport with a wrapped one.
	clientCopy := *c.client
	transport := wrapTransport(clientCopy.Transport, c.middlewares...)
	transport = wrapTransport(transport, c.errorDecoderMiddleware)
	transport = wrapTransport(transport, reqMiddlewares...)
	transport = wrapTransport(transport, c.recoveryMiddleware)
	clientCopy.Transport = transport

	resp, respErr := clientCopy.Do(req)
	return resp, unwrapURLError(ctx, respErr)
}

// unwrapURLError converts a *url.Error to a werror. All errors from the stdlib's client.Do are wrapped in
// *url.Error, and returning that as-is would hide the params stored on the underlying Err.
func unwrapURLError(ctx context.Context, respErr error) error {
	if respErr == nil {
		return nil
	}
	urlErr, ok := respErr.(*url.Error)
	if !ok {
		return respErr
	}
	params := []werror.Param{werror.SafeParam("requestMethod", urlErr.Op)}
	if parsedURL, _ := url.Parse(urlErr.URL); parsedURL != nil {
		params = append(params,
			werror.SafeParam("requestHost", parsedURL.Host),
			werror.UnsafeParam("requestPath", parsedURL.Path))
	}
	return werror.WrapWithContextParams(ctx, urlErr.Err, "httpclient request failed", params...)
}

// connectionErrorMiddleware is the innermost middleware. It turns failures of the underlying transport into
// APIConnection errors so they can be told apart from encoding or decoding failures.
type connectionErrorMiddleware struct{}

func (connectionErrorMiddleware) RoundTrip(req *http.Request, next http.RoundTripper) (*http.Response, error) {
	resp, err := next.RoundTrip(req)
	if err != nil && resp == nil {
		if req.Context().Err() != nil {
			return nil, err
		}
		return nil, errors.NewConnectionError(err)
	}
	return resp, err
}
