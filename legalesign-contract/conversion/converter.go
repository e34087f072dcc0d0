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

// Package conversion converts between untyped wire values and typed in-memory models.
//
// Wire values are the values produced by decoding JSON with UseNumber: nil, bool, string,
// json.Number, []any and map[string]any. Every converter implements two operations:
// Coerce turns a wire value into its typed form, and Dump turns a typed value back into
// a wire value ready for encoding. Structured types declare a static field table (see
// FieldSpec and ModelOf) and the engine walks that table recursively.
package conversion

import (
	"fmt"
	"reflect"
)

// Shape classifies a converter. Every FieldSpec has exactly one shape.
type Shape int

const (
	ShapePrimitive Shape = iota
	ShapeEnum
	ShapeList
	ShapeMap
	ShapeUnion
	ShapeModel
	ShapeStream
)

func (s Shape) String() string {
	switch s {
	case ShapePrimitive:
		return "primitive"
	case ShapeEnum:
		return "enum"
	case ShapeList:
		return "list"
	case ShapeMap:
		return "map"
	case ShapeUnion:
		return "union"
	case ShapeModel:
		return "model"
	case ShapeStream:
		return "stream"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Converter converts a single value between its wire and typed forms.
//
// Implementations must be safe for concurrent use: all per-call state lives in the
// CoerceState and DumpState arguments.
type Converter interface {
	// Coerce converts a wire value into its typed form. Already-typed values are validated and returned.
	Coerce(value any, state *CoerceState) (any, error)
	// Dump converts a typed value into a wire value.
	Dump(value any, state *DumpState) (any, error)
	// Shape returns the classification of this converter.
	Shape() Shape
}

// Coerce runs a top-level coercion of raw with conv and asserts the result to T.
func Coerce[T any](conv Converter, raw any) (T, error) {
	state := NewCoerceState()
	out, err := conv.Coerce(raw, state)
	if err != nil {
		var zero T
		return zero, err
	}
	return assertType[T](out, state.Path())
}

// Dump runs a top-level dump of value with conv. The returned DumpState reports whether
// the dumped payload may be transmitted more than once.
func Dump(conv Converter, value any) (any, *DumpState, error) {
	state := NewDumpState()
	out, err := conv.Dump(value, state)
	if err != nil {
		return nil, nil, err
	}
	return out, state, nil
}

func assertType[V any](value any, path string) (V, error) {
	var zero V
	if value == nil {
		return zero, nil
	}
	v, ok := value.(V)
	if !ok {
		return zero, &TypeAssertionError{
			Path:     path,
			Expected: reflect.TypeOf((*V)(nil)).Elem().String(),
			Actual:   fmt.Sprintf("%T", value),
		}
	}
	return v, nil
}
