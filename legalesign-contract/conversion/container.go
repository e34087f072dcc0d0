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

// ListConverter converts JSON arrays into []V by applying an inner converter to every element.
type ListConverter[V any] struct {
	inner Converter
}

// ListOf returns a converter for lists whose elements are converted by inner.
// The inner converter may itself be a list or map converter.
func ListOf[V any](inner Converter) *ListConverter[V] {
	return &ListConverter[V]{inner: inner}
}

func (c *ListConverter[V]) Shape() Shape { return ShapeList }

// Inner returns the element converter.
func (c *ListConverter[V]) Inner() Converter { return c.inner }

// Coerce always returns a non-nil slice, even for an empty input.
func (c *ListConverter[V]) Coerce(value any, state *CoerceState) (any, error) {
	state = orNewCoerceState(state)
	elems, ok := sliceElems(value)
	if !ok {
		return nil, newShapeMismatch(state.Path(), "list", value)
	}
	out := make([]V, 0, len(elems))
	for i, elem := range elems {
		state.path.pushIndex(i)
		coerced, err := c.inner.Coerce(elem, state)
		if err == nil {
			var v V
			v, err = assertType[V](coerced, state.Path())
			out = append(out, v)
		}
		state.path.pop()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Dump accepts []V, []any or any other slice and returns a non-nil []any.
func (c *ListConverter[V]) Dump(value any, state *DumpState) (any, error) {
	state = orNewDumpState(state)
	elems, ok := sliceElems(value)
	if !ok {
		return nil, newShapeMismatch(state.Path(), "list", value)
	}
	out := make([]any, 0, len(elems))
	for i, elem := range elems {
		state.path.pushIndex(i)
		dumped, err := c.inner.Dump(elem, state)
		state.path.pop()
		if err != nil {
			return nil, err
		}
		out = append(out, dumped)
	}
	return out, nil
}

func sliceElems(value any) ([]any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case []any:
		return v, true
	case []byte, string:
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// MapConverter converts JSON objects into map[string]V by applying an inner converter to every value.
//
// Go maps do not keep insertion order; JSON object key order carries no meaning for the API and
// the JSON codec writes keys in sorted order, so dumped output is deterministic.
type MapConverter[V any] struct {
	inner Converter
}

// MapOf returns a converter for string-keyed maps whose values are converted by inner.
func MapOf[V any](inner Converter) *MapConverter[V] {
	return &MapConverter[V]{inner: inner}
}

func (c *MapConverter[V]) Shape() Shape { return ShapeMap }

// Inner returns the value converter.
func (c *MapConverter[V]) Inner() Converter { return c.inner }

// Coerce always returns a non-nil map, even for an empty input.
func (c *MapConverter[V]) Coerce(value any, state *CoerceState) (any, error) {
	state = orNewCoerceState(state)
	entries, ok := mapEntries(value)
	if !ok {
		return nil, newShapeMismatch(state.Path(), "object", value)
	}
	out := make(map[string]V, len(entries))
	for k, elem := range entries {
		state.path.pushKey(k)
		coerced, err := c.inner.Coerce(elem, state)
		if err == nil {
			var v V
			v, err = assertType[V](coerced, state.Path())
			out[k] = v
		}
		state.path.pop()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Dump accepts map[string]V, map[string]any or any other string-keyed map and returns a non-nil map[string]any.
func (c *MapConverter[V]) Dump(value any, state *DumpState) (any, error) {
	state = orNewDumpState(state)
	entries, ok := mapEntries(value)
	if !ok {
		return nil, newShapeMismatch(state.Path(), "object", value)
	}
	out := make(map[string]any, len(entries))
	for k, elem := range entries {
		state.path.pushKey(k)
		dumped, err := c.inner.Dump(elem, state)
		state.path.pop()
		if err != nil {
			return nil, err
		}
		out[k] = dumped
	}
	return out, nil
}

func mapEntries(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return v, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}
