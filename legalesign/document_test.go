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
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/legalesign/legalesign-go/internal/httpserver"
	"github.com/legalesign/legalesign-go/legalesign"
	"github.com/legalesign/legalesign-go/legalesign-contract/conversion"
	werror "github.com/palantir/witchcraft-go-error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocuments_Create(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/api/v1/document/", req.URL.Path)
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		gotBody = decodeBody(t, req)
		httpserver.WriteJSONResponse(rw, map[string]any{"signer_1": "https://sign.example/abc"}, http.StatusCreated)
	}))
	defer server.Close()

	expires := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)
	resp, err := newTestClient(t, server.URL).Documents.Create(context.Background(), legalesign.DocumentCreateParams{
		Group: "/api/v1/group/acme/",
		Name:  "NDA",
		Signers: []legalesign.DocumentSigner{
			{
				Email:       "ada@example.com",
				Firstname:   "Ada",
				Lastname:    "Lovelace",
				DecideLater: conversion.Value(false),
				Expires:     conversion.Value(expires),
				Role:        conversion.Value(legalesign.SignerRoleWitness),
				Reviewers:   conversion.Value([]legalesign.Reviewer{{Email: "rev@example.com", IncludeLink: conversion.Value(true)}}),
			},
		},
		PdfPasswordType:   conversion.Value(legalesign.PdfPasswordTypeDeleteOnSigning),
		Pdftext:           conversion.Value(map[string]string{"company": "Acme"}),
		ReturnSignerLinks: conversion.Value(true),
		Template:          conversion.Value("/api/v1/template/t1/"),
		User:              conversion.Null[string](),
	})
	require.NoError(t, err)

	signer1, ok := resp.Signer1.Get()
	require.True(t, ok)
	assert.Equal(t, "https://sign.example/abc", signer1)

	assert.Equal(t, map[string]any{
		"group": "/api/v1/group/acme/",
		"name":  "NDA",
		"signers": []any{
			map[string]any{
				"email":        "ada@example.com",
				"firstname":    "Ada",
				"lastname":     "Lovelace",
				"decide_later": false,
				"expires":      "2026-11-01T09:00:00Z",
				"role":         "witness",
				"reviewers": []any{
					map[string]any{"email": "rev@example.com", "include_link": true},
				},
			},
		},
		"pdf_password_type":   json.Number("2"),
		"pdftext":             map[string]any{"company": "Acme"},
		"return_signer_links": true,
		"template":            "/api/v1/template/t1/",
		"user":                nil,
	}, gotBody)
}

func TestDocuments_CreateRaw(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		gotBody = decodeBody(t, req)
		httpserver.WriteJSONResponse(rw, map[string]any{}, http.StatusCreated)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).Documents.CreateRaw(context.Background(), map[string]any{
		"group":          "g",
		"name":           "raw",
		"signers":        []any{map[string]any{"email": "a@example.com", "firstname": "A", "lastname": "B"}},
		"signersInOrder": true,
		"tag":            "x",
	})
	require.NoError(t, err)
	assert.Equal(t, true, gotBody["signers_in_order"])
	assert.Equal(t, "x", gotBody["tag"])
	assert.NotContains(t, gotBody, "signersInOrder")
}

func TestDocuments_CreateInvalidParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		t.Error("request must not be sent")
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).Documents.CreateRaw(context.Background(), map[string]any{
		"group":   "g",
		"name":    "raw",
		"signers": "not a list",
	})
	require.Error(t, err)
	mismatch, ok := werror.RootCause(err).(*conversion.ShapeMismatchError)
	require.True(t, ok, "%v", err)
	assert.Equal(t, "signers", mismatch.Path)
}

func TestDocuments_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/api/v1/document/a%2Fb/", req.URL.EscapedPath())
		_, _ = rw.Write([]byte(`{
			"uuid": "a/b",
			"name": "NDA",
			"status": 30,
			"created": "2026-01-02T03:04:05Z",
			"signers": ["/api/v1/signer/s1/"],
			"template": null,
			"workflow": {"id": 7}
		}`))
	}))
	defer server.Close()

	doc, err := newTestClient(t, server.URL).Documents.Get(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, conversion.Value(legalesign.DocumentStatusSigned), doc.Status)
	assert.Equal(t, conversion.Value(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)), doc.Created)
	assert.Equal(t, conversion.Value([]string{"/api/v1/signer/s1/"}), doc.Signers)
	assert.True(t, doc.Template.IsNull())
	assert.False(t, doc.Text.IsSet())

	workflow, ok := doc.Extra("workflow")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"id": json.Number("7")}, workflow)
}

func TestDocuments_GetUnknownStatusPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		httpserver.WriteJSONResponse(rw, map[string]any{"status": 70}, http.StatusOK)
	}))
	defer server.Close()

	doc, err := newTestClient(t, server.URL).Documents.Get(context.Background(), "d")
	require.NoError(t, err)
	assert.Equal(t, conversion.Value(legalesign.DocumentStatus(70)), doc.Status)
}

func TestDocuments_GetResponseShapeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		httpserver.WriteJSONResponse(rw, map[string]any{"name": 12}, http.StatusOK)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).Documents.Get(context.Background(), "d")
	var shapeErr *legalesign.ResponseShapeError
	require.True(t, errors.As(err, &shapeErr), "%v", err)
	assert.Equal(t, http.MethodGet, shapeErr.Method)
	assert.Equal(t, "document/d/", shapeErr.Path)
	assert.Equal(t, "getDocument", shapeErr.SafeParams()["endpoint"])
	assert.Equal(t, "name", shapeErr.SafeParams()["path"])

	var mismatch *conversion.ShapeMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "string", mismatch.Expected)
}

func TestDocuments_ArchiveAndDelete(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		assert.Equal(t, http.MethodDelete, req.Method)
		paths = append(paths, req.URL.Path)
		rw.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	require.NoError(t, client.Documents.Archive(context.Background(), "d1"))
	require.NoError(t, client.Documents.Delete(context.Background(), "d1"))
	assert.Equal(t, []string{"/api/v1/document/d1/", "/api/v1/document/d1/delete/"}, paths)
}

func TestDocuments_GetFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/api/v1/document/d1/fields/", req.URL.Path)
		_, _ = rw.Write([]byte(`[
			{"element_type": "text", "label": "Company", "value": "Acme", "signer": 1},
			{"element_type": "admin", "label": "Count", "value": 3, "fieldorder": null},
			{"element_type": "signature", "value": null}
		]`))
	}))
	defer server.Close()

	fields, err := newTestClient(t, server.URL).Documents.GetFields(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, fields, 3)

	assert.Equal(t, conversion.Value(legalesign.FieldElementText), fields[0].ElementType)
	text, ok := fields[0].Value.Get()
	require.True(t, ok)
	s, ok := legalesign.FieldValueString(text)
	require.True(t, ok)
	assert.Equal(t, "Acme", s)

	count, ok := fields[1].Value.Get()
	require.True(t, ok)
	n, ok := legalesign.FieldValueInt(count)
	require.True(t, ok)
	assert.Equal(t, int64(3), n)
	assert.True(t, fields[1].Fieldorder.IsNull())

	assert.True(t, fields[2].Value.IsNull())
}
