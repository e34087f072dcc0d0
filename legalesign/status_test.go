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
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/legalesign/legalesign-go/internal/httpserver"
	"github.com/legalesign/legalesign-go/legalesign"
	"github.com/legalesign/legalesign-go/legalesign-contract/conversion"
	"github.com/legalesign/legalesign-go/legalesign-contract/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/api/v1/status/doc-1/":
			httpserver.WriteJSONResponse(rw, map[string]any{
				"archived":       false,
				"download_final": true,
				"status":         40,
				"tag":            "q3",
			}, http.StatusOK)
		case "/api/v1/status/":
			assert.Equal(t, "offset=0", req.URL.RawQuery)
			httpserver.WriteJSONResponse(rw, map[string]any{
				"objects": []any{map[string]any{"status": 10}, map[string]any{"status": 39}},
			}, http.StatusOK)
		default:
			t.Errorf("unexpected request %s %s", req.Method, req.URL.Path)
			rw.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	status, err := client.Status.Get(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, conversion.Value(legalesign.SignerStatusSigned), status.Status)
	assert.Equal(t, conversion.Value(true), status.DownloadFinal)
	assert.Equal(t, conversion.Value("q3"), status.Tag)

	page, err := client.Status.List(context.Background(), legalesign.StatusListParams{Offset: conversion.Value(int64(0))})
	require.NoError(t, err)
	require.Len(t, page.Items(), 2)
	assert.Equal(t, conversion.Value(legalesign.SignerStatusWaitingForWitness), page.Items()[1].Status)
	assert.True(t, page.HasNextPage())
}

func TestDownloads(t *testing.T) {
	for _, tc := range []struct {
		name     string
		path     string
		download func(client *legalesign.Client, buf *bytes.Buffer) error
	}{
		{
			name: "document pdf",
			path: "/api/v1/pdf/doc-1/",
			download: func(client *legalesign.Client, buf *bytes.Buffer) error {
				return client.Pdf.Get(context.Background(), "doc-1", buf)
			},
		},
		{
			name: "audit log",
			path: "/api/v1/document/doc-1/auditlog/",
			download: func(client *legalesign.Client, buf *bytes.Buffer) error {
				return client.Documents.DownloadAuditLog(context.Background(), "doc-1", buf)
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
				assert.Equal(t, tc.path, req.URL.Path)
				assert.Equal(t, "application/pdf", req.Header.Get("Accept"))
				rw.Header().Set("Content-Type", "application/pdf")
				_, _ = rw.Write([]byte("%PDF-1.7 signed"))
			}))
			defer server.Close()

			var buf bytes.Buffer
			require.NoError(t, tc.download(newTestClient(t, server.URL), &buf))
			assert.Equal(t, "%PDF-1.7 signed", buf.String())
		})
	}
}

func TestDownloads_ErrorWritesNothing(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		atomic.AddInt32(&calls, 1)
		httpserver.WriteJSONResponse(rw, map[string]string{"error": "not final"}, http.StatusNotFound)
	}))
	defer server.Close()

	var buf bytes.Buffer
	err := newTestClient(t, server.URL).Pdf.Get(context.Background(), "doc-1", &buf)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.NotFound), "%v", err)
	assert.Zero(t, buf.Len())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestOneUseLinks(t *testing.T) {
	var landed int32
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/api/v1/signer/s-1/new-link/":
			assert.Equal(t, http.MethodGet, req.Method)
			http.Redirect(rw, req, "/sign/one-use-token", http.StatusFound)
		case "/api/v1/document/preview/":
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, map[string]any{"group": "acme", "text": "<p>Hi</p>"}, decodeBody(t, req))
			http.Redirect(rw, req, "/preview/one-use-token", http.StatusFound)
		case "/api/v1/signer/s-2/new-link/":
			rw.WriteHeader(http.StatusOK)
		default:
			atomic.AddInt32(&landed, 1)
			rw.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	link, err := client.Signers.GetAccessLink(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, "/sign/one-use-token", link)

	link, err = client.Documents.Preview(context.Background(), legalesign.DocumentPreviewParams{
		Group: conversion.Value("acme"),
		Text:  conversion.Value("<p>Hi</p>"),
	})
	require.NoError(t, err)
	assert.Equal(t, "/preview/one-use-token", link)
	assert.Zero(t, atomic.LoadInt32(&landed), "one-use links must not be followed")

	_, err = client.Signers.GetAccessLink(context.Background(), "s-2")
	var shapeErr *legalesign.ResponseShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "getSignerAccessLink", shapeErr.Endpoint)
}
