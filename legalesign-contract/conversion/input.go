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

// Input is request parameters supplied either as a raw map or as a typed value.
type Input[T any] struct {
	raw   map[string]any
	value T
	isRaw bool
}

// FromMap wraps loosely typed parameters. Keys may be logical names or wire keys.
func FromMap[T any](m map[string]any) Input[T] {
	if m == nil {
		m = map[string]any{}
	}
	return Input[T]{raw: m, isRaw: true}
}

// FromValue wraps typed parameters.
func FromValue[T any](v T) Input[T] {
	return Input[T]{value: v}
}

// Raw returns the raw map and true if the input was built with FromMap.
func (in Input[T]) Raw() (map[string]any, bool) {
	return in.raw, in.isRaw
}

// Value returns the typed value and true if the input was built with FromValue.
func (in Input[T]) Value() (T, bool) {
	return in.value, !in.isRaw
}

// DumpParams dumps in through the model converter of T and returns the wire object with the
// DumpState of the pass.
func DumpParams[T any, PT Model[T]](in Input[T]) (map[string]any, *DumpState, error) {
	conv := ModelOf[T, PT]()
	var subject any = &in.value
	if in.isRaw {
		subject = in.raw
	}
	out, state, err := Dump(conv, subject)
	if err != nil {
		return nil, nil, err
	}
	return out.(map[string]any), state, nil
}
