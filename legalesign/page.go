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
	"strconv"

	"github.com/legalesign/legalesign-go/legalesign-contract/conversion"
	werror "github.com/palantir/witchcraft-go-error"
	"github.com/palantir/witchcraft-go-logging/wlog/svclog/svc1log"
)

const offsetQueryKey = "offset"

// PaginationStrategy decides whether an OffsetPage has a successor.
type PaginationStrategy int

const (
	// OffsetPresence reports a next page whenever the request that produced the page carried an
	// offset query parameter. Requests without an offset are treated as single-page listings.
	OffsetPresence PaginationStrategy = iota

	// TotalCount reports a next page while offset plus the items received is below the total_count
	// in the page metadata, or, when the total is missing, while the metadata has a next link.
	TotalCount
)

func (s PaginationStrategy) String() string {
	switch s {
	case OffsetPresence:
		return "OffsetPresence"
	case TotalCount:
		return "TotalCount"
	}
	return "PaginationStrategy(" + strconv.Itoa(int(s)) + ")"
}

// ListMeta is the metadata returned alongside every listing.
type ListMeta struct {
	conversion.Extras
	Limit      conversion.Field[int64]
	Next       conversion.Field[string]
	Offset     conversion.Field[int64]
	Previous   conversion.Field[string]
	TotalCount conversion.Field[int64]
}

func (*ListMeta) Fields() []conversion.FieldSpec[ListMeta] {
	return []conversion.FieldSpec[ListMeta]{
		conversion.Prop("limit", func(m *ListMeta) *conversion.Field[int64] { return &m.Limit }, conversion.Int),
		conversion.Prop("next", func(m *ListMeta) *conversion.Field[string] { return &m.Next }, conversion.String,
			conversion.Nullable()),
		conversion.Prop("offset", func(m *ListMeta) *conversion.Field[int64] { return &m.Offset }, conversion.Int),
		conversion.Prop("previous", func(m *ListMeta) *conversion.Field[string] { return &m.Previous }, conversion.String,
			conversion.Nullable()),
		conversion.Prop("totalCount", func(m *ListMeta) *conversion.Field[int64] { return &m.TotalCount }, conversion.Int,
			conversion.WireKey("total_count")),
	}
}

// OffsetPage is one page of a listing. Pages are immutable; NextPage issues a new request and
// returns a new page.
type OffsetPage[T any] struct {
	client   *Client
	itemConv conversion.Converter
	request  Request
	options  RequestOptions
	strategy PaginationStrategy

	items []T
	meta  conversion.Field[ListMeta]
}

// listPage sends req and wraps the response as the first page of a listing. Query parameters
// from opts are folded into req, replacing keys it already has, so that the page's request is
// the only source of the offset.
func listPage[T any](ctx context.Context, c *Client, req Request, opts RequestOptions, itemConv conversion.Converter) (*OffsetPage[T], error) {
	if len(opts.Query) > 0 {
		req = req.clone()
		for key, values := range opts.Query {
			req.Query[key] = append([]string(nil), values...)
		}
		opts.Query = nil
	}
	wire, err := c.send(ctx, req, opts)
	if err != nil {
		return nil, err
	}
	return newOffsetPage[T](c, req, opts, itemConv, wire)
}

// newOffsetPage coerces a {"objects": [...], "meta": {...}} response body. Missing or null
// objects give an empty page.
func newOffsetPage[T any](c *Client, req Request, opts RequestOptions, itemConv conversion.Converter, wire any) (*OffsetPage[T], error) {
	page := &OffsetPage[T]{
		client:   c,
		itemConv: itemConv,
		request:  req,
		options:  opts,
		strategy: c.pagination,
	}
	obj, err := conversion.Coerce[map[string]any](conversion.MapOf[any](conversion.Unknown), wire)
	if err != nil {
		return nil, newResponseShapeError(req, err)
	}
	if raw := obj["objects"]; raw != nil {
		items, err := conversion.Coerce[[]T](conversion.ListOf[T](itemConv), raw)
		if err != nil {
			return nil, newResponseShapeError(req, err)
		}
		page.items = items
	}
	if raw, ok := obj["meta"]; ok {
		if raw == nil {
			page.meta = conversion.Null[ListMeta]()
		} else {
			meta, err := conversion.Coerce[ListMeta](conversion.ModelOf[ListMeta](), raw)
			if err != nil {
				return nil, newResponseShapeError(req, err)
			}
			page.meta = conversion.Value(meta)
		}
	}
	return page, nil
}

// Items returns the items of this page.
func (p *OffsetPage[T]) Items() []T {
	return p.items
}

// Meta returns the listing metadata, if the response had any.
func (p *OffsetPage[T]) Meta() (ListMeta, bool) {
	return p.meta.Get()
}

// Request returns the request that produced this page.
func (p *OffsetPage[T]) Request() Request {
	return p.request.clone()
}

// HasNextPage reports whether NextPage may be called. An empty page never has a successor.
func (p *OffsetPage[T]) HasNextPage() bool {
	if len(p.items) == 0 {
		return false
	}
	offset, hasOffset := p.requestOffset()
	switch p.strategy {
	case TotalCount:
		meta, ok := p.meta.Get()
		if !ok {
			return false
		}
		if total, ok := meta.TotalCount.Get(); ok {
			return offset+int64(len(p.items)) < total
		}
		return meta.Next.IsPresent()
	default:
		return hasOffset
	}
}

// NextRequest returns the request for the following page: the original request with its offset
// advanced by the number of items on this page.
func (p *OffsetPage[T]) NextRequest() (Request, bool) {
	if !p.HasNextPage() {
		return Request{}, false
	}
	offset, _ := p.requestOffset()
	next := p.request.clone()
	next.Query.Set(offsetQueryKey, strconv.FormatInt(offset+int64(len(p.items)), 10))
	return next, true
}

// NextPage fetches the following page.
func (p *OffsetPage[T]) NextPage(ctx context.Context) (*OffsetPage[T], error) {
	next, ok := p.NextRequest()
	if !ok {
		return nil, werror.ErrorWithContextParams(ctx, "no next page available",
			werror.SafeParam("endpoint", p.request.Endpoint))
	}
	svc1log.FromContext(ctx).Debug("Fetching next page",
		svc1log.SafeParam("endpoint", next.Endpoint),
		svc1log.SafeParam("offset", next.Query.Get(offsetQueryKey)))
	page, err := listPage[T](ctx, p.client, next, p.options, p.itemConv)
	if err != nil {
		return nil, err
	}
	page.strategy = p.strategy
	return page, nil
}

// ForEach calls fn for every item on this page and the pages after it, stopping at the first
// error from fn or from a page request.
func (p *OffsetPage[T]) ForEach(ctx context.Context, fn func(T) error) error {
	for page := p; ; {
		for _, item := range page.items {
			if err := fn(item); err != nil {
				return err
			}
		}
		if !page.HasNextPage() {
			return nil
		}
		next, err := page.NextPage(ctx)
		if err != nil {
			return err
		}
		page = next
	}
}

// requestOffset returns the offset of the originating request and whether it set one. Values
// that do not parse count as zero.
func (p *OffsetPage[T]) requestOffset() (int64, bool) {
	values, ok := p.request.Query[offsetQueryKey]
	if !ok || len(values) == 0 {
		return 0, false
	}
	offset, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		return 0, true
	}
	return offset, true
}
