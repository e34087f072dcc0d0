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

package conversion

import (
	"reflect"
)

// EnumValue is the set of underlying kinds an enum may have.
type EnumValue interface {
	~string | ~int | ~int32 | ~int64
}

// EnumConverter validates values against a closed set of literals.
//
// By default decoding is permissive: a value outside the permitted set is passed through
// unchanged as E, because the server may add members before the client knows about them.
// Use Strict to reject unknown values instead.
type EnumConverter[E EnumValue] struct {
	values  []E
	members map[E]struct{}
	strict  bool
	base    Converter
}

// EnumOption configures an EnumConverter.
type EnumOption func(*enumOptions)

type enumOptions struct {
	strict bool
}

// Strict makes the enum reject values outside its permitted set with an *InvalidEnumValueError.
func Strict() EnumOption {
	return func(o *enumOptions) {
		o.strict = true
	}
}

// EnumOf returns a converter for E restricted to values.
func EnumOf[E EnumValue](values []E, opts ...EnumOption) *EnumConverter[E] {
	var o enumOptions
	for _, opt := range opts {
		opt(&o)
	}
	members := make(map[E]struct{}, len(values))
	for _, v := range values {
		members[v] = struct{}{}
	}
	var zero E
	base := Int
	if reflect.TypeOf(zero).Kind() == reflect.String {
		base = String
	}
	return &EnumConverter[E]{
		values:  append([]E(nil), values...),
		members: members,
		strict:  o.strict,
		base:    base,
	}
}

func (c *EnumConverter[E]) Shape() Shape { return ShapeEnum }

// Values returns the permitted values in declaration order.
func (c *EnumConverter[E]) Values() []E {
	return append([]E(nil), c.values...)
}

// IsStrict reports whether unknown values are rejected.
func (c *EnumConverter[E]) IsStrict() bool {
	return c.strict
}

// Contains reports whether v is one of the permitted values.
func (c *EnumConverter[E]) Contains(v E) bool {
	_, ok := c.members[v]
	return ok
}

func (c *EnumConverter[E]) Coerce(value any, state *CoerceState) (any, error) {
	state = orNewCoerceState(state)
	e, err := c.toEnum(value, state.Path(), func(v any) (any, error) { return c.base.Coerce(v, state) })
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Dump accepts E or its raw scalar and always emits the raw scalar.
func (c *EnumConverter[E]) Dump(value any, state *DumpState) (any, error) {
	state = orNewDumpState(state)
	e, err := c.toEnum(value, state.Path(), func(v any) (any, error) { return c.base.Dump(v, state) })
	if err != nil {
		return nil, err
	}
	rv := reflect.ValueOf(e)
	if rv.Kind() == reflect.String {
		return rv.String(), nil
	}
	return rv.Int(), nil
}

func (c *EnumConverter[E]) toEnum(value any, path string, scalar func(any) (any, error)) (E, error) {
	e, ok := value.(E)
	if !ok {
		raw, err := scalar(value)
		if err != nil {
			var zero E
			return zero, err
		}
		e = fromScalar[E](raw)
	}
	if c.strict && !c.Contains(e) {
		permitted := make([]any, 0, len(c.values))
		for _, v := range c.values {
			permitted = append(permitted, v)
		}
		return e, &InvalidEnumValueError{Path: path, Value: value, Permitted: permitted}
	}
	return e, nil
}

// fromScalar converts a string or int64 produced by the base converter into E.
func fromScalar[E EnumValue](raw any) E {
	var e E
	rv := reflect.ValueOf(&e).Elem()
	switch v := raw.(type) {
	case string:
		rv.SetString(v)
	case int64:
		rv.SetInt(v)
	}
	return e
}
