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

package legalesign

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/legalesign/legalesign-go/legalesign-client/httpclient"
	"github.com/legalesign/legalesign-go/legalesign-contract/codecs"
	"github.com/legalesign/legalesign-go/legalesign-contract/conversion"
	werror "github.com/palantir/witchcraft-go-error"
	"github.com/palantir/witchcraft-go-logging/wlog/svclog/svc1log"
)

const (
	jsonContentType = "application/json"
	pdfContentType  = "application/pdf"
	textContentType = "text/plain"
)

// Request describes one call against the API. Pages keep the Request that produced them so the
// next page can be requested with only the offset changed.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers http.Header
	// Body is the dumped JSON payload: a map[string]any for most endpoints, a []any for the few that
	// take a list, or nil.
	Body     any
	Endpoint string
}

func (r Request) clone() Request {
	out := r
	out.Query = make(url.Values, len(r.Query))
	for k, v := range r.Query {
		out.Query[k] = append([]string(nil), v...)
	}
	out.Headers = r.Headers.Clone()
	switch body := r.Body.(type) {
	case map[string]any:
		copied := make(map[string]any, len(body))
		for k, v := range body {
			copied[k] = v
		}
		out.Body = copied
	case []any:
		out.Body = append([]any(nil), body...)
	}
	return out
}

// RequestOptions are per-call settings that override the client's.
type RequestOptions struct {
	// MaxRetries overrides the client's retry count when non-nil.
	MaxRetries *int
	Headers    http.Header
	Query      url.Values
}

// RequestOption configures RequestOptions.
type RequestOption func(*RequestOptions)

// WithRequestMaxRetries overrides the client's retry count for one call.
func WithRequestMaxRetries(maxRetries int) RequestOption {
	return func(o *RequestOptions) {
		o.MaxRetries = &maxRetries
	}
}

// WithRequestHeader sets an extra header for one call.
func WithRequestHeader(key, value string) RequestOption {
	return func(o *RequestOptions) {
		if o.Headers == nil {
			o.Headers = make(http.Header)
		}
		o.Headers.Set(key, value)
	}
}

// WithRequestQuery adds an extra query parameter for one call.
func WithRequestQuery(key, value string) RequestOption {
	return func(o *RequestOptions) {
		if o.Query == nil {
			o.Query = make(url.Values)
		}
		o.Query.Add(key, value)
	}
}

func newRequestOptions(opts []RequestOption) RequestOptions {
	var o RequestOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// parseRequest dumps params into their wire form and resolves the call's options. A payload that
// holds a one-shot stream cannot be sent twice, so it forces the call to a single attempt
// whatever retry count the caller asked for.
func parseRequest[T any, PT conversion.Model[T]](ctx context.Context, in conversion.Input[T], opts []RequestOption) (map[string]any, RequestOptions, error) {
	options := newRequestOptions(opts)
	body, state, err := conversion.DumpParams[T, PT](in)
	if err != nil {
		return nil, options, werror.WrapWithContextParams(ctx, err, "failed to serialize request parameters",
			werror.SafeParam("paramsType", fmt.Sprintf("%T", *new(T))))
	}
	limitRetries(ctx, state, &options, fmt.Sprintf("%T", *new(T)))
	return body, options, nil
}

// parseListRequest dumps a list of params for endpoints whose body is a JSON array.
func parseListRequest[T any, PT conversion.Model[T]](ctx context.Context, items []T, opts []RequestOption) ([]any, RequestOptions, error) {
	options := newRequestOptions(opts)
	wire, state, err := conversion.Dump(conversion.ListOf[T](conversion.ModelOf[T, PT]()), items)
	if err != nil {
		return nil, options, werror.WrapWithContextParams(ctx, err, "failed to serialize request parameters",
			werror.SafeParam("paramsType", fmt.Sprintf("[]%T", *new(T))))
	}
	body, _ := wire.([]any)
	if body == nil {
		body = []any{}
	}
	limitRetries(ctx, state, &options, fmt.Sprintf("[]%T", *new(T)))
	return body, options, nil
}

func limitRetries(ctx context.Context, state *conversion.DumpState, options *RequestOptions, paramsType string) {
	if state.CanRetry() {
		return
	}
	if options.MaxRetries == nil || *options.MaxRetries > 0 {
		svc1log.FromContext(ctx).Debug("Request parameters contain a one-shot stream; retries disabled",
			svc1log.SafeParam("paramsType", paramsType))
	}
	noRetries := 0
	options.MaxRetries = &noRetries
}

// parseQuery dumps params into query parameters.
func parseQuery[T any, PT conversion.Model[T]](ctx context.Context, in conversion.Input[T], opts []RequestOption) (url.Values, RequestOptions, error) {
	wire, options, err := parseRequest[T, PT](ctx, in, opts)
	if err != nil {
		return nil, options, err
	}
	return queryFromWire(wire), options, nil
}

// queryFromWire flattens a dumped object into query parameters. Lists repeat the key and nulls
// are dropped.
func queryFromWire(wire map[string]any) url.Values {
	query := make(url.Values, len(wire))
	for key, value := range wire {
		switch v := value.(type) {
		case nil:
		case []any:
			for _, elem := range v {
				if elem != nil {
					query.Add(key, queryValue(elem))
				}
			}
		default:
			query.Add(key, queryValue(v))
		}
	}
	return query
}

func queryValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case time.Time:
		return t.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}

// requestParams translates req and opts into httpclient params. The response handling params
// are left to the caller.
func requestParams(req Request, opts RequestOptions) []httpclient.RequestParam {
	params := []httpclient.RequestParam{
		httpclient.WithEndpointName(req.Endpoint),
		httpclient.WithRequestMethod(req.Method),
		httpclient.WithPath(req.Path),
	}
	if len(req.Query) > 0 {
		params = append(params, httpclient.WithQueryValues(req.Query))
	}
	if len(opts.Query) > 0 {
		params = append(params, httpclient.WithQueryValues(opts.Query))
	}
	if req.Body != nil {
		params = append(params, httpclient.WithJSONRequest(req.Body))
	}
	for _, headers := range []http.Header{req.Headers, opts.Headers} {
		for key := range headers {
			params = append(params, httpclient.WithHeader(key, headers.Get(key)))
		}
	}
	if opts.MaxRetries != nil {
		params = append(params, httpclient.WithRequestMaxRetries(*opts.MaxRetries))
	}
	return params
}

// send issues req and returns the decoded JSON body, or nil for an empty body.
func (c *Client) send(ctx context.Context, req Request, opts RequestOptions) (any, error) {
	params := append(requestParams(req, opts),
		httpclient.WithRawResponseBody(),
		httpclient.WithHeader("Accept", jsonContentType))

	resp, err := c.http.Do(ctx, params...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	wire, err := codecs.DecodeWire(resp.Body)
	if err != nil {
		svc1log.FromContext(ctx).Warn("Failed to decode response body",
			svc1log.SafeParam("endpoint", req.Endpoint),
			svc1log.SafeParam("statusCode", resp.StatusCode),
			svc1log.Stacktrace(err))
		return nil, werror.WrapWithContextParams(ctx, err, "failed to decode response body",
			werror.SafeParam("endpoint", req.Endpoint),
			werror.SafeParam("statusCode", resp.StatusCode))
	}
	return wire, nil
}

// execute sends req and coerces the response with conv.
func execute[T any](ctx context.Context, c *Client, req Request, opts RequestOptions, conv conversion.Converter) (T, error) {
	var zero T
	wire, err := c.send(ctx, req, opts)
	if err != nil {
		return zero, err
	}
	out, err := conversion.Coerce[T](conv, wire)
	if err != nil {
		return zero, newResponseShapeError(req, err)
	}
	return out, nil
}

// executeNoContent sends req and discards any response body.
func (c *Client) executeNoContent(ctx context.Context, req Request, opts RequestOptions) error {
	_, err := c.send(ctx, req, opts)
	return err
}

// download issues req and copies the response body to w. Nothing is written unless the API
// answers with a success status.
func (c *Client) download(ctx context.Context, req Request, w io.Writer, accept string, opts RequestOptions) error {
	params := append(requestParams(req, opts),
		httpclient.WithResponseBody(w, codecs.Binary),
		httpclient.WithHeader("Accept", accept))
	if _, err := c.http.Do(ctx, params...); err != nil {
		return err
	}
	return nil
}

// location issues req without following redirects and returns the Location header of the
// response. Endpoints that hand out one-use links answer this way.
func (c *Client) location(ctx context.Context, req Request, opts RequestOptions) (string, error) {
	params := append(requestParams(req, opts),
		httpclient.WithoutRedirects(),
		httpclient.WithRawResponseBody())
	resp, err := c.http.Do(ctx, params...)
	if err != nil {
		return "", err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	link := resp.Header.Get("Location")
	if link == "" {
		return "", newResponseShapeError(req, werror.ErrorWithContextParams(ctx, "response has no Location header",
			werror.SafeParam("statusCode", resp.StatusCode)))
	}
	return link, nil
}
