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
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/legalesign/legalesign-go/legalesign-contract/conversion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color string

const (
	colorRed   color = "red"
	colorGreen color = "green"
)

type pet struct {
	conversion.Extras
	Name     string
	Nickname conversion.Field[string]
	Age      conversion.Field[int64]
	Color    conversion.Field[color]
	Born     conversion.Field[time.Time]
	Tags     conversion.Field[[]string]
	Scores   conversion.Field[map[string]float64]
}

func (*pet) Fields() []conversion.FieldSpec[pet] {
	return []conversion.FieldSpec[pet]{
		conversion.Req("name", func(p *pet) *string { return &p.Name }, conversion.String),
		conversion.Prop("nickname", func(p *pet) *conversion.Field[string] { return &p.Nickname }, conversion.String,
			conversion.WireKey("nick_name"), conversion.Nullable()),
		conversion.Prop("age", func(p *pet) *conversion.Field[int64] { return &p.Age }, conversion.Int),
		conversion.Prop("color", func(p *pet) *conversion.Field[color] { return &p.Color },
			conversion.EnumOf([]color{colorRed, colorGreen})),
		conversion.Prop("born", func(p *pet) *conversion.Field[time.Time] { return &p.Born }, conversion.DateTime),
		conversion.Prop("tags", func(p *pet) *conversion.Field[[]string] { return &p.Tags },
			conversion.ListOf[string](conversion.String)),
		conversion.Prop("scores", func(p *pet) *conversion.Field[map[string]float64] { return &p.Scores },
			conversion.MapOf[float64](conversion.Float)),
	}
}

type owner struct {
	conversion.Extras
	Pets conversion.Field[[]pet]
	Best conversion.Field[pet]
}

func (*owner) Fields() []conversion.FieldSpec[owner] {
	return []conversion.FieldSpec[owner]{
		conversion.Prop("pets", func(o *owner) *conversion.Field[[]pet] { return &o.Pets },
			conversion.ListOf[pet](conversion.ModelOf[pet]())),
		conversion.Prop("best", func(o *owner) *conversion.Field[pet] { return &o.Best }, conversion.ModelOf[pet](),
			conversion.Nullable()),
	}
}

// node refers to itself through a list.
type node struct {
	Value    int64
	Children conversion.Field[[]node]
}

func (*node) Fields() []conversion.FieldSpec[node] {
	return []conversion.FieldSpec[node]{
		conversion.Req("value", func(n *node) *int64 { return &n.Value }, conversion.Int),
		conversion.Prop("children", func(n *node) *conversion.Field[[]node] { return &n.Children },
			conversion.ListOf[node](conversion.ModelOf[node]())),
	}
}

func decodeWire(t *testing.T, in string) map[string]any {
	t.Helper()
	var out map[string]any
	dec := json.NewDecoder(strings.NewReader(in))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&out))
	return out
}

func TestModel_RoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
	}{
		{name: "required only", in: `{"name":"rex"}`},
		{name: "all fields", in: `{"name":"rex","nick_name":"r","age":3,"color":"red","born":"2020-01-02T03:04:05Z","tags":["a","b"],"scores":{"speed":1.5,"size":2}}`},
		{name: "explicit null", in: `{"name":"rex","nick_name":null}`},
		{name: "empty containers", in: `{"name":"rex","tags":[],"scores":{}}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			raw := decodeWire(t, tc.in)
			typed, err := conversion.Coerce[pet](conversion.ModelOf[pet](), raw)
			require.NoError(t, err)

			dumped, state, err := conversion.Dump(conversion.ModelOf[pet](), typed)
			require.NoError(t, err)
			assert.True(t, state.CanRetry())

			out, err := json.Marshal(dumped)
			require.NoError(t, err)
			assert.JSONEq(t, tc.in, string(out))
		})
	}
}

func TestModel_UnsetAndNullAreDistinct(t *testing.T) {
	conv := conversion.ModelOf[pet]()

	unset, err := conversion.Coerce[pet](conv, decodeWire(t, `{"name":"rex"}`))
	require.NoError(t, err)
	assert.False(t, unset.Nickname.IsSet())
	assert.False(t, unset.Nickname.IsNull())

	explicit, err := conversion.Coerce[pet](conv, decodeWire(t, `{"name":"rex","nick_name":null}`))
	require.NoError(t, err)
	assert.True(t, explicit.Nickname.IsSet())
	assert.True(t, explicit.Nickname.IsNull())

	unsetOut, _, err := conversion.Dump(conv, unset)
	require.NoError(t, err)
	assert.NotContains(t, unsetOut, "nick_name")

	nullOut, _, err := conversion.Dump(conv, explicit)
	require.NoError(t, err)
	require.Contains(t, nullOut, "nick_name")
	assert.Nil(t, nullOut.(map[string]any)["nick_name"])
}

func TestModel_NullForNonNullableField(t *testing.T) {
	_, err := conversion.Coerce[pet](conversion.ModelOf[pet](), decodeWire(t, `{"name":"rex","age":null}`))
	var mismatch *conversion.ShapeMismatchError
	require.True(t, errors.As(err, &mismatch), "%v", err)
	assert.Equal(t, "age", mismatch.Path)
	assert.Equal(t, "null", mismatch.Actual)
}

func TestModel_MissingRequiredField(t *testing.T) {
	_, err := conversion.Coerce[owner](conversion.ModelOf[owner](), decodeWire(t, `{"pets":[{"name":"a"},{"age":1}]}`))
	var missing *conversion.MissingRequiredFieldError
	require.True(t, errors.As(err, &missing), "%v", err)
	assert.Equal(t, "name", missing.WireKey)
	assert.Equal(t, "pets[1]", missing.Path)
	assert.Equal(t, "conversion_test.pet", missing.Type)
}

type collar struct {
	Signer conversion.Field[int64]
}

func (*collar) Fields() []conversion.FieldSpec[collar] {
	return []conversion.FieldSpec[collar]{
		conversion.Prop("signer", func(c *collar) *conversion.Field[int64] { return &c.Signer }, conversion.Int,
			conversion.Required(), conversion.Nullable()),
	}
}

func TestReq_RejectsNullable(t *testing.T) {
	assert.PanicsWithValue(t, `conversion: required field "name" cannot be nullable, use Prop`, func() {
		conversion.Req("name", func(p *pet) *string { return &p.Name }, conversion.String, conversion.Nullable())
	})
}

func TestModel_RequiredNullableProp(t *testing.T) {
	for _, tc := range []struct {
		name     string
		in       string
		wantNull bool
		wantErr  bool
	}{
		{name: "null is accepted", in: `{"signer":null}`, wantNull: true},
		{name: "value is accepted", in: `{"signer":2}`},
		{name: "absent key is rejected", in: `{}`, wantErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := conversion.Coerce[collar](conversion.ModelOf[collar](), decodeWire(t, tc.in))
			if tc.wantErr {
				var missing *conversion.MissingRequiredFieldError
				require.True(t, errors.As(err, &missing), "%v", err)
				assert.Equal(t, "signer", missing.WireKey)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Signer.IsSet())
			assert.Equal(t, tc.wantNull, got.Signer.IsNull())
		})
	}
}

func TestModel_ShapeMismatchNamesPath(t *testing.T) {
	_, err := conversion.Coerce[owner](conversion.ModelOf[owner](), decodeWire(t, `{"best":{"name":"a","tags":["x",1]}}`))
	var mismatch *conversion.ShapeMismatchError
	require.True(t, errors.As(err, &mismatch), "%v", err)
	assert.Equal(t, "best.tags[1]", mismatch.Path)
	assert.Equal(t, "string", mismatch.Expected)
	assert.Equal(t, "number", mismatch.Actual)
	assert.Equal(t, map[string]any{"path": "best.tags[1]", "expected": "string", "actual": "number"}, mismatch.SafeParams())

	_, err = conversion.Coerce[pet](conversion.ModelOf[pet](), []any{})
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "object", mismatch.Expected)
	assert.Equal(t, "list", mismatch.Actual)
}

func TestModel_ExtraFieldsPreserved(t *testing.T) {
	conv := conversion.ModelOf[pet]()
	typed, err := conversion.Coerce[pet](conv, decodeWire(t, `{"name":"rex","mystery":"z","nested":{"a":[1]}}`))
	require.NoError(t, err)

	mystery, ok := typed.Extra("mystery")
	require.True(t, ok)
	assert.Equal(t, "z", mystery)
	assert.Len(t, typed.ExtraFields(), 2)

	dumped, _, err := conversion.Dump(conv, typed)
	require.NoError(t, err)
	out, err := json.Marshal(dumped)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"rex","mystery":"z","nested":{"a":[1]}}`, string(out))
}

func TestModel_DeclaredKeysWinOverExtras(t *testing.T) {
	p := pet{Name: "rex"}
	p.SetExtra("name", "shadow")
	p.SetExtra("other", true)
	dumped, _, err := conversion.Dump(conversion.ModelOf[pet](), &p)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "rex", "other": true}, dumped)
}

func TestModel_DumpRawMap(t *testing.T) {
	dumped, _, err := conversion.Dump(conversion.ModelOf[pet](), map[string]any{
		"name":     "rex",
		"nickname": "r",
		"born":     time.Date(2021, 5, 6, 7, 8, 9, 0, time.UTC),
		"color":    colorGreen,
		"unknown":  1,
		"age":      nil,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":      "rex",
		"nick_name": "r",
		"born":      "2021-05-06T07:08:09Z",
		"color":     "green",
		"unknown":   1,
		"age":       nil,
	}, dumped)
}

func TestModel_TypedPassThrough(t *testing.T) {
	conv := conversion.ModelOf[pet]()
	in := pet{Name: "rex", Age: conversion.Value(int64(4))}
	out, err := conversion.Coerce[pet](conv, &in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestModel_Recursive(t *testing.T) {
	in := `{"value":1,"children":[{"value":2,"children":[{"value":3}]},{"value":4,"children":[]}]}`
	typed, err := conversion.Coerce[node](conversion.ModelOf[node](), decodeWire(t, in))
	require.NoError(t, err)
	children, ok := typed.Children.Get()
	require.True(t, ok)
	require.Len(t, children, 2)
	grandchildren, ok := children[0].Children.Get()
	require.True(t, ok)
	assert.Equal(t, int64(3), grandchildren[0].Value)

	dumped, _, err := conversion.Dump(conversion.ModelOf[node](), typed)
	require.NoError(t, err)
	out, err := json.Marshal(dumped)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestModelOf_Memoized(t *testing.T) {
	assert.Same(t, conversion.ModelOf[pet](), conversion.ModelOf[pet]())

	spec, ok := conversion.ModelOf[pet]().Field("nickname")
	require.True(t, ok)
	assert.Equal(t, "nick_name", spec.WireKey())
	assert.True(t, spec.IsNullable())
	assert.False(t, spec.IsRequired())
	assert.Equal(t, conversion.ShapePrimitive, spec.Shape())

	tags, ok := conversion.ModelOf[pet]().Field("tags")
	require.True(t, ok)
	assert.Equal(t, conversion.ShapeList, tags.Shape())
	inner, ok := tags.Inner()
	require.True(t, ok)
	assert.Equal(t, conversion.String, inner)

	name, ok := conversion.ModelOf[pet]().Field("name")
	require.True(t, ok)
	assert.True(t, name.IsRequired())
}

func TestDumpParams(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   conversion.Input[pet]
		want map[string]any
	}{
		{
			name: "typed",
			in:   conversion.FromValue(pet{Name: "rex", Nickname: conversion.Null[string]()}),
			want: map[string]any{"name": "rex", "nick_name": nil},
		},
		{
			name: "raw",
			in:   conversion.FromMap[pet](map[string]any{"name": "rex", "age": 2}),
			want: map[string]any{"name": "rex", "age": int64(2)},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out, state, err := conversion.DumpParams(tc.in)
			require.NoError(t, err)
			assert.True(t, state.CanRetry())
			assert.Equal(t, tc.want, out)
		})
	}
}
