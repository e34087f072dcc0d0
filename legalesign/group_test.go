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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/legalesign/legalesign-go/internal/httpserver"
	"github.com/legalesign/legalesign-go/legalesign"
	"github.com/legalesign/legalesign-go/legalesign-contract/conversion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

func newRecordingServer(t *testing.T, respond func(rw http.ResponseWriter, req *http.Request)) (*httptest.Server, *[]recordedRequest) {
	var recorded []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		r := recordedRequest{Method: req.Method, Path: req.URL.Path}
		if req.Method == http.MethodPost || req.Method == http.MethodPatch {
			r.Body = decodeBody(t, req)
		}
		recorded = append(recorded, r)
		respond(rw, req)
	}))
	t.Cleanup(server.Close)
	return server, &recorded
}

func TestGroups(t *testing.T) {
	server, recorded := newRecordingServer(t, func(rw http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			rw.WriteHeader(http.StatusNoContent)
			return
		}
		httpserver.WriteJSONResponse(rw, map[string]any{
			"name":                  "Acme",
			"public_name":           "Acme Ltd",
			"slug":                  "acme",
			"is_active":             true,
			"footer_height":         30,
			"members":               []any{"/api/v1/member/m-1/"},
			"xframe_allow_pdf_edit": false,
			"created":               "2026-01-02T03:04:05Z",
		}, http.StatusOK)
	})
	client := newTestClient(t, server.URL)
	ctx := context.Background()

	require.NoError(t, client.Groups.Create(ctx, legalesign.GroupCreateParams{
		Name:        "Acme",
		XframeAllow: conversion.Value(true),
	}))
	require.NoError(t, client.Groups.Update(ctx, "acme", legalesign.GroupUpdateParams{
		PublicName: conversion.Value("Acme Ltd"),
	}))
	require.NoError(t, client.Groups.Update(ctx, "acme", legalesign.GroupUpdateParams{}))
	assert.Equal(t, []recordedRequest{
		{Method: http.MethodPost, Path: "/api/v1/group/", Body: map[string]any{"name": "Acme", "xframe_allow": true}},
		{Method: http.MethodPatch, Path: "/api/v1/group/acme/", Body: map[string]any{"public_name": "Acme Ltd"}},
		{Method: http.MethodPatch, Path: "/api/v1/group/acme/", Body: map[string]any{}},
	}, *recorded)

	group, err := client.Groups.Get(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, conversion.Value("Acme Ltd"), group.PublicName)
	assert.Equal(t, conversion.Value(true), group.IsActive)
	assert.Equal(t, conversion.Value(int64(30)), group.FooterHeight)
	assert.Equal(t, conversion.Value([]string{"/api/v1/member/m-1/"}), group.Members)
	assert.Equal(t, conversion.Value(false), group.XframeAllowPdfEdit)
	assert.Equal(t, 2026, group.Created.Or(time.Time{}).Year())
	assert.False(t, group.Header.IsSet())
}

func TestGroups_ListIgnoresGroupFilter(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		query = req.URL.RawQuery
		httpserver.WriteJSONResponse(rw, map[string]any{"objects": []any{map[string]any{"name": "Acme"}}}, http.StatusOK)
	}))
	defer server.Close()

	page, err := newTestClient(t, server.URL).Groups.List(context.Background(), legalesign.ListParams{
		Group: conversion.Value("ignored"),
		Limit: conversion.Value(int64(5)),
	})
	require.NoError(t, err)
	assert.Equal(t, "limit=5", query)
	require.Len(t, page.Items(), 1)
	assert.False(t, page.HasNextPage())
}

func TestMembers(t *testing.T) {
	server, recorded := newRecordingServer(t, func(rw http.ResponseWriter, req *http.Request) {
		switch {
		case req.Method == http.MethodGet && req.URL.Path == "/api/v1/member/m-1/":
			httpserver.WriteJSONResponse(rw, map[string]any{
				"group":      "/api/v1/group/acme/",
				"user":       "/api/v1/user/u-1/",
				"permission": 5,
			}, http.StatusOK)
		case req.Method == http.MethodGet:
			httpserver.WriteJSONResponse(rw, map[string]any{
				"meta":    map[string]any{"limit": 20, "offset": 0, "total_count": 1, "next": nil, "previous": nil},
				"objects": []any{map[string]any{"permission": 7}},
			}, http.StatusOK)
		default:
			rw.WriteHeader(http.StatusNoContent)
		}
	})
	client := newTestClient(t, server.URL)
	ctx := context.Background()

	require.NoError(t, client.Members.Create(ctx, legalesign.MemberCreateParams{
		Email:      "ada@example.com",
		Group:      "acme",
		DoEmail:    conversion.Value(false),
		Permission: conversion.Value(legalesign.PermissionTeamDocsSendOnly),
	}))

	member, err := client.Members.Get(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, conversion.Value(legalesign.PermissionOwnDocsCreateAndSend), member.Permission)
	assert.Equal(t, conversion.Value("/api/v1/user/u-1/"), member.User)

	page, err := client.Members.List(ctx, legalesign.ListParams{Group: conversion.Value("acme")})
	require.NoError(t, err)
	require.Len(t, page.Items(), 1)
	assert.Equal(t, conversion.Value(legalesign.Permission(7)), page.Items()[0].Permission)
	meta, ok := page.Meta()
	require.True(t, ok)
	assert.Equal(t, conversion.Value(int64(1)), meta.TotalCount)
	assert.True(t, meta.Next.IsNull())

	require.NoError(t, client.Members.Delete(ctx, "m-1"))

	assert.Equal(t, []recordedRequest{
		{Method: http.MethodPost, Path: "/api/v1/member/", Body: map[string]any{
			"email":      "ada@example.com",
			"group":      "acme",
			"do_email":   false,
			"permission": json.Number("3"),
		}},
		{Method: http.MethodGet, Path: "/api/v1/member/m-1/"},
		{Method: http.MethodGet, Path: "/api/v1/member/"},
		{Method: http.MethodDelete, Path: "/api/v1/member/m-1/"},
	}, *recorded)
}
