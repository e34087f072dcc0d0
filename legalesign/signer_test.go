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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/legalesign/legalesign-go/internal/httpserver"
	"github.com/legalesign/legalesign-go/legalesign"
	"github.com/legalesign/legalesign-go/legalesign-contract/conversion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigners(t *testing.T) {
	var reminderBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		switch {
		case req.Method == http.MethodGet && req.URL.Path == "/api/v1/signer/s-1/":
			httpserver.WriteJSONResponse(rw, map[string]any{
				"document":   "/api/v1/document/d-1/",
				"email":      "ada@example.com",
				"first_name": "Ada",
				"last_name":  "Lovelace",
				"has_fields": true,
				"order":      0,
				"status":     39,
			}, http.StatusOK)
		case req.Method == http.MethodGet && req.URL.Path == "/api/v1/signer/s-1/fields1/":
			httpserver.WriteJSONResponse(rw, []any{
				map[string]any{"label": "Company", "label_extra": "", "state": true, "value": "Acme", "fieldorder": nil},
				map[string]any{"label": "Seats", "state": true, "value": 3, "fieldorder": 2},
			}, http.StatusOK)
		case req.Method == http.MethodPost && req.URL.Path == "/api/v1/signer/s-1/send-reminder/":
			reminderBody = decodeBody(t, req)
			rw.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected request %s %s", req.Method, req.URL.Path)
			rw.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()
	client := newTestClient(t, server.URL)

	t.Run("get", func(t *testing.T) {
		signer, err := client.Signers.Get(context.Background(), "s-1")
		require.NoError(t, err)
		assert.Equal(t, conversion.Value("Ada"), signer.FirstName)
		assert.Equal(t, conversion.Value("Lovelace"), signer.LastName)
		assert.Equal(t, conversion.Value(true), signer.HasFields)
		assert.Equal(t, conversion.Value(int64(0)), signer.Order)
		assert.Equal(t, conversion.Value(legalesign.SignerStatusWaitingForWitness), signer.Status)
		assert.False(t, signer.ResourceURI.IsSet())
	})

	t.Run("get fields", func(t *testing.T) {
		fields, err := client.Signers.GetFields(context.Background(), "s-1")
		require.NoError(t, err)
		require.Len(t, fields, 2)

		assert.True(t, fields[0].Fieldorder.IsNull())
		company, ok := legalesign.FieldValueString(fields[0].Value.Or(nil))
		require.True(t, ok)
		assert.Equal(t, "Acme", company)
		assert.Equal(t, conversion.Value(""), fields[0].LabelExtra)

		assert.Equal(t, conversion.Value(int64(2)), fields[1].Fieldorder)
		seats, ok := legalesign.FieldValueInt(fields[1].Value.Or(nil))
		require.True(t, ok)
		assert.Equal(t, int64(3), seats)
	})

	t.Run("send reminder", func(t *testing.T) {
		err := client.Signers.SendReminder(context.Background(), "s-1", legalesign.SignerSendReminderParams{
			Text: conversion.Value("Friendly nudge"),
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"text": "Friendly nudge"}, reminderBody)

		err = client.Signers.SendReminder(context.Background(), "s-1", legalesign.SignerSendReminderParams{})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{}, reminderBody)
	})
}
