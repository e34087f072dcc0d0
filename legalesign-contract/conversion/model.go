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
	"reflect"
	"sync"
)

// Model is implemented by pointers to structured types that declare a static field table.
//
//	func (*Signer) Fields() []conversion.FieldSpec[Signer] {
//		return []conversion.FieldSpec[Signer]{
//			conversion.Req("email", func(s *Signer) *string { return &s.Email }, conversion.String),
//			conversion.Prop("firstName", func(s *Signer) *conversion.Field[string] { return &s.FirstName }, conversion.String,
//				conversion.WireKey("firstname")),
//		}
//	}
type Model[T any] interface {
	*T
	Fields() []FieldSpec[T]
}

// registry holds one ModelConverter per structured type, keyed by reflect.Type.
// Entries are created on first use and never change afterwards.
var registry sync.Map

// ModelOf returns the process-wide converter for T. Field tables are resolved lazily, once,
// on first conversion, so models may refer to each other recursively.
func ModelOf[T any, PT Model[T]]() *ModelConverter[T] {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if c, ok := registry.Load(key); ok {
		return c.(*ModelConverter[T])
	}
	c := &ModelConverter[T]{
		typeName: key.String(),
		resolve: func() []FieldSpec[T] {
			return PT(new(T)).Fields()
		},
	}
	actual, _ := registry.LoadOrStore(key, c)
	return actual.(*ModelConverter[T])
}

// ModelConverter converts JSON objects into T field by field.
type ModelConverter[T any] struct {
	typeName string
	resolve  func() []FieldSpec[T]

	once  sync.Once
	table fieldTable[T]
}

type fieldTable[T any] struct {
	specs  []FieldSpec[T]
	byWire map[string]int
	byName map[string]int
}

func (c *ModelConverter[T]) fields() *fieldTable[T] {
	c.once.Do(func() {
		specs := c.resolve()
		t := fieldTable[T]{
			specs:  specs,
			byWire: make(map[string]int, len(specs)),
			byName: make(map[string]int, len(specs)),
		}
		for i, spec := range specs {
			if _, dup := t.byWire[spec.wireKey]; dup {
				panic(fmt.Sprintf("conversion: %s declares wire key %q twice", c.typeName, spec.wireKey))
			}
			t.byWire[spec.wireKey] = i
			t.byName[spec.name] = i
		}
		c.table = t
	})
	return &c.table
}

func (c *ModelConverter[T]) Shape() Shape { return ShapeModel }

// TypeName returns the Go type name of T.
func (c *ModelConverter[T]) TypeName() string { return c.typeName }

// Fields returns the field table of T in declaration order.
func (c *ModelConverter[T]) Fields() []FieldSpec[T] {
	return append([]FieldSpec[T](nil), c.fields().specs...)
}

// Field returns the field with the given logical name.
func (c *ModelConverter[T]) Field(name string) (FieldSpec[T], bool) {
	t := c.fields()
	i, ok := t.byName[name]
	if !ok {
		return FieldSpec[T]{}, false
	}
	return t.specs[i], true
}

// Coerce converts a JSON object into T. Values that already have type T or *T are returned as T.
//
// Required keys must be present. Optional keys that are missing leave the field absent; explicit nulls
// mark nullable fields null. Keys that T does not declare are kept in its Extras when T embeds Extras.
func (c *ModelConverter[T]) Coerce(value any, state *CoerceState) (any, error) {
	state = orNewCoerceState(state)
	switch v := value.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	case map[string]any:
		return c.coerceObject(v, state)
	}
	return nil, newShapeMismatch(state.Path(), "object", value)
}

func (c *ModelConverter[T]) coerceObject(obj map[string]any, state *CoerceState) (T, error) {
	var out T
	t := c.fields()
	for _, spec := range t.specs {
		raw, ok := obj[spec.wireKey]
		if !ok {
			if spec.required {
				var zero T
				return zero, &MissingRequiredFieldError{Path: state.Path(), Type: c.typeName, WireKey: spec.wireKey}
			}
			continue
		}
		state.path.pushField(spec.wireKey)
		err := spec.coerceInto(&out, raw, state)
		state.path.pop()
		if err != nil {
			var zero T
			return zero, err
		}
	}
	if holder, ok := any(&out).(extrasHolder); ok {
		bag := holder.extrasBag()
		for k, v := range obj {
			if _, declared := t.byWire[k]; !declared {
				bag.SetExtra(k, v)
			}
		}
	}
	return out, nil
}

// Dump converts T, *T or a raw map into a JSON object. Absent fields are omitted and null fields are
// written as null. Raw maps may use logical names or wire keys; keys T does not declare pass through.
func (c *ModelConverter[T]) Dump(value any, state *DumpState) (any, error) {
	state = orNewDumpState(state)
	switch v := value.(type) {
	case T:
		return c.dumpTyped(&v, state)
	case *T:
		if v != nil {
			return c.dumpTyped(v, state)
		}
	case map[string]any:
		return c.dumpRaw(v, state)
	}
	return nil, newShapeMismatch(state.Path(), "object", value)
}

func (c *ModelConverter[T]) dumpTyped(v *T, state *DumpState) (map[string]any, error) {
	t := c.fields()
	out := make(map[string]any, len(t.specs))
	if holder, ok := any(v).(extrasHolder); ok {
		for k, extra := range holder.extrasBag().fields {
			if _, declared := t.byWire[k]; !declared {
				out[k] = extra
			}
		}
	}
	for _, spec := range t.specs {
		p, fieldValue := spec.load(v)
		switch p {
		case absent:
			continue
		case null:
			out[spec.wireKey] = nil
			continue
		}
		state.path.pushField(spec.wireKey)
		dumped, err := spec.conv.Dump(fieldValue, state)
		state.path.pop()
		if err != nil {
			return nil, err
		}
		out[spec.wireKey] = dumped
	}
	return out, nil
}

func (c *ModelConverter[T]) dumpRaw(obj map[string]any, state *DumpState) (map[string]any, error) {
	t := c.fields()
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		i, ok := t.byWire[k]
		if !ok {
			i, ok = t.byName[k]
		}
		if !ok {
			out[k] = v
			continue
		}
		spec := t.specs[i]
		if v == nil {
			out[spec.wireKey] = nil
			continue
		}
		state.path.pushField(spec.wireKey)
		dumped, err := spec.conv.Dump(v, state)
		state.path.pop()
		if err != nil {
			return nil, err
		}
		out[spec.wireKey] = dumped
	}
	return out, nil
}
