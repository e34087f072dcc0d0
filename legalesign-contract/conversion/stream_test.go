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

package conversion_test

import (
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/legalesign/legalesign-go/legalesign-contract/conversion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upload struct {
	Filename string
	Content  conversion.Field[io.Reader]
	Labels   conversion.Field[[]string]
}

func (*upload) Fields() []conversion.FieldSpec[upload] {
	return []conversion.FieldSpec[upload]{
		conversion.Req("filename", func(u *upload) *string { return &u.Filename }, conversion.String),
		conversion.Prop("content", func(u *upload) *conversion.Field[io.Reader] { return &u.Content }, conversion.Stream,
			conversion.WireKey("pdf_file")),
		conversion.Prop("labels", func(u *upload) *conversion.Field[[]string] { return &u.Labels },
			conversion.ListOf[string](conversion.String)),
	}
}

// oneShotReader hides any io.Seeker implementation of the wrapped reader.
type oneShotReader struct {
	r io.Reader
}

func (o oneShotReader) Read(p []byte) (int, error) {
	return o.r.Read(p)
}

func TestDumpState_CanRetry(t *testing.T) {
	for _, tc := range []struct {
		name      string
		in        upload
		wantRetry bool
	}{
		{
			name:      "scalars and lists only",
			in:        upload{Filename: "a.pdf", Labels: conversion.Value([]string{"x"})},
			wantRetry: true,
		},
		{
			name:      "seekable stream",
			in:        upload{Filename: "a.pdf", Content: conversion.Value[io.Reader](strings.NewReader("hello"))},
			wantRetry: true,
		},
		{
			name:      "one-shot stream",
			in:        upload{Filename: "a.pdf", Content: conversion.Value[io.Reader](oneShotReader{strings.NewReader("hello")})},
			wantRetry: false,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, state, err := conversion.DumpParams(conversion.FromValue(tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.wantRetry, state.CanRetry())
		})
	}
}

func TestBase64Stream(t *testing.T) {
	t.Run("seekable stream rewinds on every encode", func(t *testing.T) {
		r := strings.NewReader("xxhello")
		_, err := r.Seek(2, io.SeekStart)
		require.NoError(t, err)

		out, state, err := conversion.Dump(conversion.Stream, r)
		require.NoError(t, err)
		assert.True(t, state.CanRetry())

		for i := 0; i < 2; i++ {
			data, err := json.Marshal(map[string]any{"pdf_file": out})
			require.NoError(t, err)
			assert.JSONEq(t, `{"pdf_file":"aGVsbG8="}`, string(data))
		}
	})
	t.Run("one-shot stream encodes once", func(t *testing.T) {
		out, state, err := conversion.Dump(conversion.Stream, oneShotReader{strings.NewReader("hello")})
		require.NoError(t, err)
		assert.False(t, state.CanRetry())

		data, err := json.Marshal(out)
		require.NoError(t, err)
		assert.Equal(t, `"aGVsbG8="`, string(data))

		_, err = json.Marshal(out)
		require.Error(t, err)
	})
	t.Run("coerce decodes base64", func(t *testing.T) {
		out, err := conversion.Coerce[io.Reader](conversion.Stream, "aGVsbG8=")
		require.NoError(t, err)
		data, err := io.ReadAll(out)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})
}
