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

package legalesign_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/legalesign/legalesign-go/internal/httpserver"
	"github.com/legalesign/legalesign-go/legalesign"
	"github.com/legalesign/legalesign-go/legalesign-contract/conversion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listingServer serves total members as pages of the requested limit and records every query.
type listingServer struct {
	*httptest.Server
	total int

	mu      sync.Mutex
	queries []url.Values
}

func newListingServer(t *testing.T, total int, withMeta bool) *listingServer {
	s := &listingServer{total: total}
	s.Server = httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		query := req.URL.Query()
		s.mu.Lock()
		s.queries = append(s.queries, query)
		s.mu.Unlock()

		offset, _ := strconv.Atoi(query.Get("offset"))
		limit := 20
		if l := query.Get("limit"); l != "" {
			limit, _ = strconv.Atoi(l)
		}
		objects := []map[string]any{}
		for i := offset; i < offset+limit && i < s.total; i++ {
			objects = append(objects, map[string]any{"user": fmt.Sprintf("user-%d", i)})
		}
		body := map[string]any{"objects": objects}
		if withMeta {
			body["meta"] = map[string]any{"limit": limit, "offset": offset, "total_count": s.total, "next": nil, "previous": nil}
		}
		httpserver.WriteJSONResponse(rw, body, http.StatusOK)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *listingServer) recorded() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.Values(nil), s.queries...)
}

func users(members []legalesign.Member) []string {
	var out []string
	for _, m := range members {
		out = append(out, m.User.Or(""))
	}
	return out
}

func TestOffsetPage_NoOffsetTerminates(t *testing.T) {
	server := newListingServer(t, 50, true)
	client := newTestClient(t, server.URL)

	page, err := client.Members.List(context.Background(), legalesign.ListParams{Group: conversion.Value("acme")})
	require.NoError(t, err)
	assert.Len(t, page.Items(), 20)
	assert.False(t, page.HasNextPage())

	_, ok := page.NextRequest()
	assert.False(t, ok)
	_, err = page.NextPage(context.Background())
	require.Error(t, err)
	assert.Len(t, server.recorded(), 1)
}

func TestOffsetPage_Advance(t *testing.T) {
	server := newListingServer(t, 50, false)
	client := newTestClient(t, server.URL)

	page, err := client.Members.List(context.Background(), legalesign.ListParams{
		Group:  conversion.Value("acme"),
		Offset: conversion.Value(int64(0)),
	})
	require.NoError(t, err)
	require.Len(t, page.Items(), 20)
	require.True(t, page.HasNextPage())
	_, ok := page.Meta()
	assert.False(t, ok)

	next, ok := page.NextRequest()
	require.True(t, ok)
	assert.Equal(t, "20", next.Query.Get("offset"))
	assert.Equal(t, "0", page.Request().Query.Get("offset"), "the current page is not modified")

	second, err := page.NextPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-20", second.Items()[0].User.Or(""))

	queries := server.recorded()
	require.Len(t, queries, 2)
	assert.Equal(t, url.Values{"group": {"acme"}, "offset": {"0"}}, queries[0])
	assert.Equal(t, url.Values{"group": {"acme"}, "offset": {"20"}}, queries[1])
}

func TestOffsetPage_OffsetFromRequestQuery(t *testing.T) {
	for _, tc := range []struct {
		name   string
		params legalesign.ListParams
	}{
		{
			name:   "offset in params and extra query",
			params: legalesign.ListParams{Group: conversion.Value("acme"), Offset: conversion.Value(int64(0))},
		},
		{
			name:   "offset only in extra query",
			params: legalesign.ListParams{Group: conversion.Value("acme")},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			server := newListingServer(t, 50, false)
			client := newTestClient(t, server.URL)

			page, err := client.Members.List(context.Background(), tc.params, legalesign.WithRequestQuery("offset", "0"))
			require.NoError(t, err)
			require.True(t, page.HasNextPage())
			assert.Equal(t, "0", page.Request().Query.Get("offset"))

			second, err := page.NextPage(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "user-20", second.Items()[0].User.Or(""))

			queries := server.recorded()
			require.Len(t, queries, 2)
			assert.Equal(t, url.Values{"group": {"acme"}, "offset": {"0"}}, queries[0])
			assert.Equal(t, url.Values{"group": {"acme"}, "offset": {"20"}}, queries[1])
		})
	}
}

func TestOffsetPage_ForEach(t *testing.T) {
	for _, tc := range []struct {
		name      string
		params    []legalesign.ClientParam
		withMeta  bool
		wantCalls int
	}{
		{
			name:      "offset presence stops on empty page",
			withMeta:  false,
			wantCalls: 4,
		},
		{
			name:      "total count stops on last page",
			params:    []legalesign.ClientParam{legalesign.WithPaginationStrategy(legalesign.TotalCount)},
			withMeta:  true,
			wantCalls: 3,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			server := newListingServer(t, 25, tc.withMeta)
			client := newTestClient(t, server.URL, tc.params...)

			page, err := client.Members.List(context.Background(), legalesign.ListParams{
				Limit:  conversion.Value(int64(10)),
				Offset: conversion.Value(int64(0)),
			})
			require.NoError(t, err)

			var seen []legalesign.Member
			require.NoError(t, page.ForEach(context.Background(), func(m legalesign.Member) error {
				seen = append(seen, m)
				return nil
			}))
			require.Len(t, seen, 25)
			assert.Equal(t, "user-0", users(seen)[0])
			assert.Equal(t, "user-24", users(seen)[24])
			assert.Len(t, server.recorded(), tc.wantCalls)
		})
	}
}

func TestOffsetPage_TotalCountWithoutOffset(t *testing.T) {
	server := newListingServer(t, 15, true)
	client := newTestClient(t, server.URL, legalesign.WithPaginationStrategy(legalesign.TotalCount))

	page, err := client.Attachments.List(context.Background(), legalesign.ListParams{Limit: conversion.Value(int64(10))})
	require.NoError(t, err)
	meta, ok := page.Meta()
	require.True(t, ok)
	assert.Equal(t, conversion.Value(int64(15)), meta.TotalCount)
	assert.True(t, meta.Next.IsNull())

	require.True(t, page.HasNextPage())
	next, err := page.NextPage(context.Background())
	require.NoError(t, err)
	assert.Len(t, next.Items(), 5)
	assert.False(t, next.HasNextPage())
}

func TestOffsetPage_ForEachStopsOnCallbackError(t *testing.T) {
	server := newListingServer(t, 30, false)
	client := newTestClient(t, server.URL)

	page, err := client.Members.List(context.Background(), legalesign.ListParams{Offset: conversion.Value(int64(0))})
	require.NoError(t, err)

	stop := fmt.Errorf("stop")
	count := 0
	err = page.ForEach(context.Background(), func(legalesign.Member) error {
		count++
		if count == 3 {
			return stop
		}
		return nil
	})
	assert.Equal(t, stop, err)
	assert.Len(t, server.recorded(), 1)
}

func TestOffsetPage_ShapeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		httpserver.WriteJSONResponse(rw, map[string]any{"objects": []any{"not an object"}}, http.StatusOK)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).Groups.List(context.Background(), legalesign.ListParams{})
	var shapeErr *legalesign.ResponseShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "listGroups", shapeErr.Endpoint)
}
