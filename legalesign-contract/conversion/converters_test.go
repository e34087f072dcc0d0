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
	"testing"
	"time"

	"github.com/legalesign/legalesign-go/legalesign-contract/conversion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitives(t *testing.T) {
	for _, tc := range []struct {
		name    string
		conv    conversion.Converter
		in      any
		want    any
		wantErr bool
	}{
		{name: "string", conv: conversion.String, in: "abc", want: "abc"},
		{name: "string rejects number", conv: conversion.String, in: json.Number("1"), wantErr: true},
		{name: "int from json.Number", conv: conversion.Int, in: json.Number("42"), want: int64(42)},
		{name: "int from integral float", conv: conversion.Int, in: float64(7), want: int64(7)},
		{name: "int from exponent", conv: conversion.Int, in: json.Number("1e3"), want: int64(1000)},
		{name: "int rejects fraction", conv: conversion.Int, in: json.Number("1.5"), wantErr: true},
		{name: "int rejects numeric string", conv: conversion.Int, in: "12", wantErr: true},
		{name: "float", conv: conversion.Float, in: json.Number("1.25"), want: 1.25},
		{name: "float from int", conv: conversion.Float, in: 3, want: float64(3)},
		{name: "bool", conv: conversion.Bool, in: true, want: true},
		{name: "bool rejects string", conv: conversion.Bool, in: "true", wantErr: true},
		{name: "date-time", conv: conversion.DateTime, in: "2024-03-01T10:11:12Z", want: time.Date(2024, 3, 1, 10, 11, 12, 0, time.UTC)},
		{name: "date-time without offset", conv: conversion.DateTime, in: "2024-03-01T10:11:12", want: time.Date(2024, 3, 1, 10, 11, 12, 0, time.UTC)},
		{name: "date-time with zone name", conv: conversion.DateTime, in: "2024-03-01T10:11:12Z[UTC]", want: time.Date(2024, 3, 1, 10, 11, 12, 0, time.UTC)},
		{name: "date-time rejects garbage", conv: conversion.DateTime, in: "yesterday", wantErr: true},
		{name: "date", conv: conversion.Date, in: "2024-03-01", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "unknown", conv: conversion.Unknown, in: map[string]any{"a": nil}, want: map[string]any{"a": nil}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out, err := tc.conv.Coerce(tc.in, conversion.NewCoerceState())
			if tc.wantErr {
				var mismatch *conversion.ShapeMismatchError
				require.True(t, errors.As(err, &mismatch), "%v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestDateTime_Dump(t *testing.T) {
	out, _, err := conversion.Dump(conversion.DateTime, time.Date(2024, 3, 1, 10, 11, 12, 500, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T10:11:12.0000005Z", out)

	out, _, err = conversion.Dump(conversion.Date, time.Date(2024, 3, 1, 10, 11, 12, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", out)
}

type level int64

func TestEnum(t *testing.T) {
	permissive := conversion.EnumOf([]level{10, 20})
	strict := conversion.EnumOf([]level{10, 20}, conversion.Strict())

	t.Run("known value", func(t *testing.T) {
		out, err := permissive.Coerce(json.Number("20"), nil)
		require.NoError(t, err)
		assert.Equal(t, level(20), out)
	})
	t.Run("permissive passes unknown through", func(t *testing.T) {
		out, err := permissive.Coerce(json.Number("99"), nil)
		require.NoError(t, err)
		assert.Equal(t, level(99), out)
		assert.False(t, permissive.Contains(99))
	})
	t.Run("strict rejects unknown", func(t *testing.T) {
		_, err := strict.Coerce(json.Number("99"), nil)
		var invalid *conversion.InvalidEnumValueError
		require.True(t, errors.As(err, &invalid), "%v", err)
		assert.Equal(t, []any{level(10), level(20)}, invalid.Permitted)
	})
	t.Run("wrong kind is a shape mismatch", func(t *testing.T) {
		_, err := permissive.Coerce("ten", nil)
		var mismatch *conversion.ShapeMismatchError
		require.True(t, errors.As(err, &mismatch), "%v", err)
	})
	t.Run("dump emits raw scalar", func(t *testing.T) {
		out, _, err := conversion.Dump(strict, level(10))
		require.NoError(t, err)
		assert.Equal(t, int64(10), out)

		out, _, err = conversion.Dump(strict, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(20), out)

		_, _, err = conversion.Dump(strict, 30)
		require.Error(t, err)
	})
	t.Run("values in declaration order", func(t *testing.T) {
		assert.Equal(t, []level{10, 20}, strict.Values())
		assert.True(t, strict.IsStrict())
		assert.False(t, permissive.IsStrict())
	})
}

func TestListAndMap(t *testing.T) {
	list := conversion.ListOf[string](conversion.String)
	nested := conversion.MapOf[[]int64](conversion.ListOf[int64](conversion.Int))

	t.Run("empty list is not nil", func(t *testing.T) {
		out, err := conversion.Coerce[[]string](list, []any{})
		require.NoError(t, err)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})
	t.Run("empty map is not nil", func(t *testing.T) {
		out, err := conversion.Coerce[map[string][]int64](nested, map[string]any{})
		require.NoError(t, err)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})
	t.Run("nil slice dumps as empty list", func(t *testing.T) {
		out, _, err := conversion.Dump(list, []string(nil))
		require.NoError(t, err)
		assert.Equal(t, []any{}, out)
	})
	t.Run("order preserved", func(t *testing.T) {
		out, err := conversion.Coerce[[]string](list, []any{"c", "a", "b"})
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, out)
	})
	t.Run("nested containers", func(t *testing.T) {
		out, err := conversion.Coerce[map[string][]int64](nested, map[string]any{
			"x": []any{json.Number("1"), json.Number("2")},
			"y": []any{},
		})
		require.NoError(t, err)
		assert.Equal(t, map[string][]int64{"x": {1, 2}, "y": {}}, out)

		dumped, _, err := conversion.Dump(nested, out)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"x": []any{int64(1), int64(2)}, "y": []any{}}, dumped)
	})
	t.Run("wrong shape", func(t *testing.T) {
		_, err := list.Coerce(map[string]any{}, nil)
		var mismatch *conversion.ShapeMismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, "list", mismatch.Expected)

		_, err = nested.Coerce([]any{}, nil)
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, "object", mismatch.Expected)
	})
	t.Run("element path", func(t *testing.T) {
		_, err := nested.Coerce(map[string]any{"x": []any{json.Number("1"), "two"}}, nil)
		var mismatch *conversion.ShapeMismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, `["x"][1]`, mismatch.Path)
	})
}

// countingConverter records how often it is asked to coerce.
type countingConverter struct {
	conversion.Converter
	calls *int
}

func (c countingConverter) Coerce(value any, state *conversion.CoerceState) (any, error) {
	*c.calls++
	return c.Converter.Coerce(value, state)
}

type shape interface {
	isShape()
}

type circle struct {
	Type   string
	Radius conversion.Field[float64]
}

func (circle) isShape() {}

func (*circle) Fields() []conversion.FieldSpec[circle] {
	return []conversion.FieldSpec[circle]{
		conversion.Req("type", func(c *circle) *string { return &c.Type }, conversion.String),
		conversion.Prop("radius", func(c *circle) *conversion.Field[float64] { return &c.Radius }, conversion.Float),
	}
}

type square struct {
	Type string
	Side conversion.Field[float64]
}

func (square) isShape() {}

func (*square) Fields() []conversion.FieldSpec[square] {
	return []conversion.FieldSpec[square]{
		conversion.Req("type", func(s *square) *string { return &s.Type }, conversion.String),
		conversion.Prop("side", func(s *square) *conversion.Field[float64] { return &s.Side }, conversion.Float),
	}
}

type triangle struct {
	Type string
	Base conversion.Field[float64]
}

func (triangle) isShape() {}

func (*triangle) Fields() []conversion.FieldSpec[triangle] {
	return []conversion.FieldSpec[triangle]{
		conversion.Req("type", func(t *triangle) *string { return &t.Type }, conversion.String),
		conversion.Prop("base", func(t *triangle) *conversion.Field[float64] { return &t.Base }, conversion.Float),
	}
}

func TestUnion_Discriminated(t *testing.T) {
	var aCalls, bCalls, cCalls int
	union := conversion.UnionOf[shape](
		conversion.VariantOf[shape, circle]("a", countingConverter{conversion.ModelOf[circle](), &aCalls}),
		conversion.VariantOf[shape, square]("b", countingConverter{conversion.ModelOf[square](), &bCalls}),
		conversion.VariantOf[shape, triangle]("c", countingConverter{conversion.ModelOf[triangle](), &cCalls}),
	).WithDiscriminator("type")

	out, err := conversion.Coerce[shape](union, map[string]any{"type": "b", "side": json.Number("2")})
	require.NoError(t, err)
	sq, ok := out.(square)
	require.True(t, ok, "%T", out)
	assert.Equal(t, conversion.Value(2.0), sq.Side)
	assert.Equal(t, 0, aCalls)
	assert.Equal(t, 1, bCalls)
	assert.Equal(t, 0, cCalls)

	_, err = union.Coerce(map[string]any{"type": "d"}, nil)
	var unrecognized *conversion.UnrecognizedDiscriminatorError
	require.True(t, errors.As(err, &unrecognized), "%v", err)
	assert.Equal(t, "type", unrecognized.Field)
	assert.Equal(t, "d", unrecognized.Value)

	dumped, _, err := conversion.Dump(union, triangle{Type: "c", Base: conversion.Value(1.5)})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"type": "c", "base": 1.5}, dumped)
}

type overlapX struct {
	Shared conversion.Field[string]
}

func (*overlapX) Fields() []conversion.FieldSpec[overlapX] {
	return []conversion.FieldSpec[overlapX]{
		conversion.Prop("shared", func(x *overlapX) *conversion.Field[string] { return &x.Shared }, conversion.String),
	}
}

type overlapY struct {
	Shared conversion.Field[string]
	Other  conversion.Field[int64]
}

func (*overlapY) Fields() []conversion.FieldSpec[overlapY] {
	return []conversion.FieldSpec[overlapY]{
		conversion.Prop("shared", func(y *overlapY) *conversion.Field[string] { return &y.Shared }, conversion.String),
		conversion.Prop("other", func(y *overlapY) *conversion.Field[int64] { return &y.Other }, conversion.Int),
	}
}

func TestUnion_DeclarationOrderTieBreak(t *testing.T) {
	union := conversion.UnionOf[any](
		conversion.VariantOf[any, overlapX]("x", conversion.ModelOf[overlapX]()),
		conversion.VariantOf[any, overlapY]("y", conversion.ModelOf[overlapY]()),
	)
	for i := 0; i < 10; i++ {
		out, err := union.Coerce(map[string]any{"shared": "v"}, nil)
		require.NoError(t, err)
		assert.IsType(t, overlapX{}, out)
	}

	// every declared field of a candidate must coerce before it is accepted
	reversed := conversion.UnionOf[any](
		conversion.VariantOf[any, overlapY]("y", conversion.ModelOf[overlapY]()),
		conversion.VariantOf[any, overlapX]("x", conversion.ModelOf[overlapX]()),
	)
	out, err := reversed.Coerce(map[string]any{"shared": "v", "other": "not a number"}, nil)
	require.NoError(t, err)
	assert.IsType(t, overlapX{}, out)

	out, err = reversed.Coerce(map[string]any{"shared": "v", "other": json.Number("1")}, nil)
	require.NoError(t, err)
	assert.IsType(t, overlapY{}, out)
}

func TestUnion_Undiscriminated(t *testing.T) {
	union := conversion.UnionOf[any](
		conversion.VariantOf[any, int64]("int", conversion.Int),
		conversion.VariantOf[any, string]("string", conversion.String),
		conversion.VariantOf[any, []string]("list", conversion.ListOf[string](conversion.String)),
	)

	for _, tc := range []struct {
		in   any
		want any
	}{
		{in: json.Number("5"), want: int64(5)},
		{in: "five", want: "five"},
		{in: []any{"a"}, want: []string{"a"}},
	} {
		out, err := union.Coerce(tc.in, nil)
		require.NoError(t, err)
		assert.Equal(t, tc.want, out)

		dumped, _, err := conversion.Dump(union, out)
		require.NoError(t, err)
		assert.NotNil(t, dumped)
	}

	_, err := union.Coerce(true, nil)
	var unresolvable *conversion.UnresolvableUnionError
	require.True(t, errors.As(err, &unresolvable), "%v", err)
	require.Len(t, unresolvable.Candidates, 3)
	assert.Equal(t, "int", unresolvable.Candidates[0].Tag)
	assert.Equal(t, "list", unresolvable.Candidates[2].Tag)
	var mismatch *conversion.ShapeMismatchError
	assert.True(t, errors.As(err, &mismatch))
}

func TestUnion_MissingDiscriminatorFallsBackToOrder(t *testing.T) {
	union := conversion.UnionOf[shape](
		conversion.VariantOf[shape, circle]("circle", conversion.ModelOf[circle]()),
		conversion.VariantOf[shape, square]("square", conversion.ModelOf[square]()),
	).WithDiscriminator("kind")

	out, err := union.Coerce(map[string]any{"type": "anything", "side": json.Number("1")}, nil)
	require.NoError(t, err)
	assert.IsType(t, circle{}, out)
}
