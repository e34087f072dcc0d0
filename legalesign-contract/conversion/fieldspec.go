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

// FieldSpec describes one declared field of T: its logical name, wire key, optionality,
// nullability and the converter for its value. Field specs are immutable metadata.
type FieldSpec[T any] struct {
	name     string
	wireKey  string
	required bool
	nullable bool
	conv     Converter

	load       func(*T) (presence, any)
	coerceInto func(*T, any, *CoerceState) error
}

// FieldOption configures a FieldSpec.
type FieldOption func(*fieldOptions)

type fieldOptions struct {
	wireKey  string
	required bool
	nullable bool
}

// WireKey sets the key used on the wire when it differs from the logical name.
func WireKey(key string) FieldOption {
	return func(o *fieldOptions) {
		o.wireKey = key
	}
}

// Required makes coercion fail with *MissingRequiredFieldError when the key is absent.
func Required() FieldOption {
	return func(o *fieldOptions) {
		o.required = true
	}
}

// Nullable allows the wire value to be null.
func Nullable() FieldOption {
	return func(o *fieldOptions) {
		o.nullable = true
	}
}

func newFieldOptions(name string, opts []FieldOption) fieldOptions {
	o := fieldOptions{wireKey: name}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Prop declares a three-state field stored in a Field[V].
func Prop[T, V any](name string, accessor func(*T) *Field[V], conv Converter, opts ...FieldOption) FieldSpec[T] {
	o := newFieldOptions(name, opts)
	return FieldSpec[T]{
		name:     name,
		wireKey:  o.wireKey,
		required: o.required,
		nullable: o.nullable,
		conv:     conv,
		load: func(t *T) (presence, any) {
			f := accessor(t)
			return f.state, f.value
		},
		coerceInto: func(t *T, raw any, state *CoerceState) error {
			if raw == nil && o.nullable {
				*accessor(t) = Null[V]()
				return nil
			}
			coerced, err := conv.Coerce(raw, state)
			if err != nil {
				return err
			}
			v, err := assertType[V](coerced, state.Path())
			if err != nil {
				return err
			}
			*accessor(t) = Value(v)
			return nil
		},
	}
}

// Req declares a required field stored directly as V. It is always dumped. A bare V cannot
// hold null, so Req panics when given Nullable; declare such fields with Prop and Required.
func Req[T, V any](name string, accessor func(*T) *V, conv Converter, opts ...FieldOption) FieldSpec[T] {
	o := newFieldOptions(name, opts)
	if o.nullable {
		panic(fmt.Sprintf("conversion: required field %q cannot be nullable, use Prop", name))
	}
	return FieldSpec[T]{
		name:     name,
		wireKey:  o.wireKey,
		required: true,
		conv:     conv,
		load: func(t *T) (presence, any) {
			return present, *accessor(t)
		},
		coerceInto: func(t *T, raw any, state *CoerceState) error {
			coerced, err := conv.Coerce(raw, state)
			if err != nil {
				return err
			}
			v, err := assertType[V](coerced, state.Path())
			if err != nil {
				return err
			}
			*accessor(t) = v
			return nil
		},
	}
}

// Name returns the logical field name.
func (f FieldSpec[T]) Name() string { return f.name }

// WireKey returns the key used on the wire.
func (f FieldSpec[T]) WireKey() string { return f.wireKey }

// IsRequired reports whether the field must be present in coerced input.
func (f FieldSpec[T]) IsRequired() bool { return f.required }

// IsNullable reports whether the field accepts null.
func (f FieldSpec[T]) IsNullable() bool { return f.nullable }

// Converter returns the converter for the field value.
func (f FieldSpec[T]) Converter() Converter { return f.conv }

// Shape returns the shape of the field's converter.
func (f FieldSpec[T]) Shape() Shape { return f.conv.Shape() }

// Inner returns the element converter when the field is a list or map.
func (f FieldSpec[T]) Inner() (Converter, bool) {
	if c, ok := f.conv.(interface{ Inner() Converter }); ok {
		return c.Inner(), true
	}
	return nil, false
}
