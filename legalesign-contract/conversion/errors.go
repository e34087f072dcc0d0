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
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	wparams "github.com/palantir/witchcraft-go-params"
)

var (
	_ wparams.ParamStorer = (*ShapeMismatchError)(nil)
	_ wparams.ParamStorer = (*MissingRequiredFieldError)(nil)
	_ wparams.ParamStorer = (*UnresolvableUnionError)(nil)
	_ wparams.ParamStorer = (*UnrecognizedDiscriminatorError)(nil)
	_ wparams.ParamStorer = (*InvalidEnumValueError)(nil)
	_ wparams.ParamStorer = (*TypeAssertionError)(nil)
)

// ShapeMismatchError is returned when a value's structural kind does not match what the converter expects.
type ShapeMismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func newShapeMismatch(path string, expected string, value any) *ShapeMismatchError {
	return &ShapeMismatchError{Path: path, Expected: expected, Actual: kindOf(value)}
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch at %s: expected %s, got %s", displayPath(e.Path), e.Expected, e.Actual)
}

func (e *ShapeMismatchError) SafeParams() map[string]any {
	return map[string]any{"path": e.Path, "expected": e.Expected, "actual": e.Actual}
}

func (e *ShapeMismatchError) UnsafeParams() map[string]any {
	return map[string]any{}
}

// MissingRequiredFieldError is returned when a required field's wire key is absent from an object.
type MissingRequiredFieldError struct {
	Path    string
	Type    string
	WireKey string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("missing required field %q of %s at %s", e.WireKey, e.Type, displayPath(e.Path))
}

func (e *MissingRequiredFieldError) SafeParams() map[string]any {
	return map[string]any{"path": e.Path, "type": e.Type, "field": e.WireKey}
}

func (e *MissingRequiredFieldError) UnsafeParams() map[string]any {
	return map[string]any{}
}

// CandidateError records why a single union variant rejected a value.
type CandidateError struct {
	Tag string
	Err error
}

// UnresolvableUnionError is returned when no union variant accepts a value.
type UnresolvableUnionError struct {
	Path       string
	Candidates []CandidateError
}

func (e *UnresolvableUnionError) Error() string {
	reasons := make([]string, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		reasons = append(reasons, fmt.Sprintf("%s: %v", c.Tag, c.Err))
	}
	return fmt.Sprintf("no union variant matched at %s [%s]", displayPath(e.Path), strings.Join(reasons, "; "))
}

// Unwrap exposes the per-candidate errors to errors.Is and errors.As.
func (e *UnresolvableUnionError) Unwrap() []error {
	errs := make([]error, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		errs = append(errs, c.Err)
	}
	return errs
}

func (e *UnresolvableUnionError) SafeParams() map[string]any {
	tags := make([]string, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		tags = append(tags, c.Tag)
	}
	return map[string]any{"path": e.Path, "candidates": tags}
}

func (e *UnresolvableUnionError) UnsafeParams() map[string]any {
	return map[string]any{}
}

// UnrecognizedDiscriminatorError is returned when a discriminator value maps to no known variant.
type UnrecognizedDiscriminatorError struct {
	Path  string
	Field string
	Value string
}

func (e *UnrecognizedDiscriminatorError) Error() string {
	return fmt.Sprintf("unrecognized discriminator %s=%q at %s", e.Field, e.Value, displayPath(e.Path))
}

func (e *UnrecognizedDiscriminatorError) SafeParams() map[string]any {
	return map[string]any{"path": e.Path, "discriminator": e.Field}
}

func (e *UnrecognizedDiscriminatorError) UnsafeParams() map[string]any {
	return map[string]any{"value": e.Value}
}

// InvalidEnumValueError is returned by strict enums for values outside the permitted set.
type InvalidEnumValueError struct {
	Path      string
	Value     any
	Permitted []any
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("value %v at %s is not one of %v", e.Value, displayPath(e.Path), e.Permitted)
}

func (e *InvalidEnumValueError) SafeParams() map[string]any {
	return map[string]any{"path": e.Path, "permitted": e.Permitted}
}

func (e *InvalidEnumValueError) UnsafeParams() map[string]any {
	return map[string]any{"value": e.Value}
}

// TypeAssertionError is returned when a converter produces a value that the destination cannot hold.
// It indicates a mismatch between a field declaration and its converter.
type TypeAssertionError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeAssertionError) Error() string {
	return fmt.Sprintf("cannot assign %s to %s at %s", e.Actual, e.Expected, displayPath(e.Path))
}

func (e *TypeAssertionError) SafeParams() map[string]any {
	return map[string]any{"path": e.Path, "expected": e.Expected, "actual": e.Actual}
}

func (e *TypeAssertionError) UnsafeParams() map[string]any {
	return map[string]any{}
}

func displayPath(p string) string {
	if p == "" {
		return "<root>"
	}
	return p
}

// kindOf describes the structural kind of a value for error messages.
func kindOf(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case string:
		return "string"
	case json.Number, float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "number"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map:
		return "object"
	}
	return fmt.Sprintf("%T", value)
}
