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
	"strconv"
)

// Variant is one candidate shape of a union whose in-memory type is U.
type Variant[U any] struct {
	tag  string
	conv Converter
	owns func(any) bool
}

// VariantOf declares a union variant identified by tag whose values are produced by conv and have Go type V.
// V must be assignable to U. The tag doubles as the discriminator value when the union has one.
func VariantOf[U, V any](tag string, conv Converter) Variant[U] {
	return Variant[U]{
		tag:  tag,
		conv: conv,
		owns: func(value any) bool {
			if _, ok := value.(V); ok {
				return true
			}
			if p, ok := value.(*V); ok && p != nil {
				return true
			}
			return false
		},
	}
}

// Tag returns the variant tag.
func (v Variant[U]) Tag() string { return v.tag }

// UnionConverter resolves a value to exactly one of several variants.
//
// With a discriminator the variant is chosen by the discriminator field and no other
// variant is attempted. Without one, or when the discriminator key is missing from the
// input, variants are attempted in declaration order and the first whose coercion succeeds
// in full wins. Declaration order is the tie-break for inputs that several variants accept.
type UnionConverter[U any] struct {
	discriminator string
	variants      []Variant[U]
	byTag         map[string]int
}

// UnionOf returns a union over variants, attempted in the given order.
func UnionOf[U any](variants ...Variant[U]) *UnionConverter[U] {
	byTag := make(map[string]int, len(variants))
	for i, v := range variants {
		if _, dup := byTag[v.tag]; dup {
			panic(fmt.Sprintf("conversion: duplicate union variant tag %q", v.tag))
		}
		byTag[v.tag] = i
	}
	return &UnionConverter[U]{variants: variants, byTag: byTag}
}

// WithDiscriminator returns a copy of c that selects variants by the value of field.
func (c *UnionConverter[U]) WithDiscriminator(field string) *UnionConverter[U] {
	out := *c
	out.discriminator = field
	return &out
}

func (c *UnionConverter[U]) Shape() Shape { return ShapeUnion }

// Discriminator returns the discriminator field, or "" for an undiscriminated union.
func (c *UnionConverter[U]) Discriminator() string { return c.discriminator }

func (c *UnionConverter[U]) Coerce(value any, state *CoerceState) (any, error) {
	state = orNewCoerceState(state)
	if variant, ok, err := c.discriminated(value, state.Path()); err != nil {
		return nil, err
	} else if ok {
		return c.coerceVariant(variant, value, state)
	}

	var candidates []CandidateError
	for _, variant := range c.variants {
		out, err := c.coerceVariant(variant, value, state)
		if err == nil {
			return out, nil
		}
		candidates = append(candidates, CandidateError{Tag: variant.tag, Err: err})
	}
	return nil, &UnresolvableUnionError{Path: state.Path(), Candidates: candidates}
}

func (c *UnionConverter[U]) coerceVariant(variant Variant[U], value any, state *CoerceState) (any, error) {
	out, err := variant.conv.Coerce(value, state)
	if err != nil {
		return nil, err
	}
	u, err := assertType[U](out, state.Path())
	if err != nil {
		return nil, err
	}
	return u, nil
}

// discriminated returns the variant selected by the discriminator field, if the union has one
// and the field is present.
func (c *UnionConverter[U]) discriminated(value any, path string) (Variant[U], bool, error) {
	if c.discriminator == "" {
		return Variant[U]{}, false, nil
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return Variant[U]{}, false, nil
	}
	raw, ok := obj[c.discriminator]
	if !ok {
		return Variant[U]{}, false, nil
	}
	tag := discriminatorString(raw)
	idx, ok := c.byTag[tag]
	if !ok {
		return Variant[U]{}, false, &UnrecognizedDiscriminatorError{Path: path, Field: c.discriminator, Value: tag}
	}
	return c.variants[idx], true, nil
}

// Dump delegates to the variant that owns the value's concrete type. Raw objects carrying a
// discriminator are dumped by the tagged variant; other raw values go to the first variant
// that accepts them.
func (c *UnionConverter[U]) Dump(value any, state *DumpState) (any, error) {
	state = orNewDumpState(state)
	for _, variant := range c.variants {
		if variant.owns(value) {
			return variant.conv.Dump(value, state)
		}
	}
	variant, ok, err := c.discriminated(value, state.Path())
	if err != nil {
		return nil, err
	}
	if ok {
		return variant.conv.Dump(value, state)
	}
	var candidates []CandidateError
	for _, variant := range c.variants {
		out, err := variant.conv.Dump(value, state)
		if err == nil {
			return out, nil
		}
		candidates = append(candidates, CandidateError{Tag: variant.tag, Err: err})
	}
	return nil, &UnresolvableUnionError{Path: state.Path(), Candidates: candidates}
}

func discriminatorString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return "null"
	}
	if n, ok := toInt64(raw); ok {
		return strconv.FormatInt(n, 10)
	}
	return fmt.Sprint(raw)
}
