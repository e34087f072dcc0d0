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
	"fmt"
)

type presence uint8

const (
	absent presence = iota
	null
	present
)

// Field holds one model field in one of three states: absent, explicitly null, or present with a value.
// The zero value is absent. Absent fields are omitted from dumped payloads; null fields are sent as JSON null.
type Field[V any] struct {
	state presence
	value V
}

// Value returns a present field holding v.
func Value[V any](v V) Field[V] {
	return Field[V]{state: present, value: v}
}

// Null returns an explicitly null field.
func Null[V any]() Field[V] {
	return Field[V]{state: null}
}

// Absent returns an unset field. It is equivalent to the zero value.
func Absent[V any]() Field[V] {
	return Field[V]{}
}

// Get returns the value and true if the field is present.
func (f Field[V]) Get() (V, bool) {
	return f.value, f.state == present
}

// Or returns the value if present, otherwise def.
func (f Field[V]) Or(def V) V {
	if f.state == present {
		return f.value
	}
	return def
}

// IsSet reports whether the field was provided at all, as a value or as null.
func (f Field[V]) IsSet() bool {
	return f.state != absent
}

// IsNull reports whether the field was explicitly set to null.
func (f Field[V]) IsNull() bool {
	return f.state == null
}

// IsPresent reports whether the field holds a value.
func (f Field[V]) IsPresent() bool {
	return f.state == present
}

func (f Field[V]) String() string {
	switch f.state {
	case null:
		return "null"
	case present:
		return fmt.Sprint(f.value)
	default:
		return "<absent>"
	}
}

// Extras keeps the wire keys of an object that its model does not declare, so that
// re-dumping the object does not lose data the client does not understand.
// Models embed Extras to opt in.
type Extras struct {
	fields map[string]any
}

// Extra returns the raw wire value stored under key.
func (e *Extras) Extra(key string) (any, bool) {
	v, ok := e.fields[key]
	return v, ok
}

// ExtraFields returns a copy of all undeclared keys.
func (e *Extras) ExtraFields() map[string]any {
	out := make(map[string]any, len(e.fields))
	for k, v := range e.fields {
		out[k] = v
	}
	return out
}

// SetExtra stores a raw wire value that will be emitted as-is when the model is dumped.
func (e *Extras) SetExtra(key string, value any) {
	if e.fields == nil {
		e.fields = make(map[string]any)
	}
	e.fields[key] = value
}

func (e *Extras) extrasBag() *Extras {
	return e
}

type extrasHolder interface {
	extrasBag() *Extras
}
