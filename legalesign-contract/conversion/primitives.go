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
	"math"
	"strings"
	"time"
)

var (
	// String converts JSON strings to string.
	String Converter = stringConverter{}
	// Int converts integral JSON numbers to int64. Numbers with a fractional part and numeric strings are rejected.
	Int Converter = intConverter{}
	// Float converts JSON numbers to float64.
	Float Converter = floatConverter{}
	// Bool converts JSON booleans to bool.
	Bool Converter = boolConverter{}
	// DateTime converts RFC 3339 strings to time.Time and dumps them back in RFC 3339 form.
	DateTime Converter = dateTimeConverter{}
	// Date converts YYYY-MM-DD strings to time.Time (UTC midnight).
	Date Converter = dateConverter{}
	// Unknown passes values through untouched. It is used for fields whose content is not described.
	Unknown Converter = unknownConverter{}
)

const dateLayout = "2006-01-02"

type stringConverter struct{}

func (stringConverter) Shape() Shape { return ShapePrimitive }

func (stringConverter) Coerce(value any, state *CoerceState) (any, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	return nil, newShapeMismatch(state.Path(), "string", value)
}

func (stringConverter) Dump(value any, state *DumpState) (any, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	return nil, newShapeMismatch(state.Path(), "string", value)
}

type intConverter struct{}

func (intConverter) Shape() Shape { return ShapePrimitive }

func (intConverter) Coerce(value any, state *CoerceState) (any, error) {
	if n, ok := toInt64(value); ok {
		return n, nil
	}
	return nil, newShapeMismatch(state.Path(), "integer", value)
}

func (intConverter) Dump(value any, state *DumpState) (any, error) {
	if n, ok := toInt64(value); ok {
		return n, nil
	}
	return nil, newShapeMismatch(state.Path(), "integer", value)
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return integralFloat(f)
	case float64:
		return integralFloat(v)
	case float32:
		return integralFloat(float64(v))
	}
	return 0, false
}

func integralFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

type floatConverter struct{}

func (floatConverter) Shape() Shape { return ShapePrimitive }

func (floatConverter) Coerce(value any, state *CoerceState) (any, error) {
	if f, ok := toFloat64(value); ok {
		return f, nil
	}
	return nil, newShapeMismatch(state.Path(), "number", value)
}

func (floatConverter) Dump(value any, state *DumpState) (any, error) {
	if f, ok := toFloat64(value); ok {
		return f, nil
	}
	return nil, newShapeMismatch(state.Path(), "number", value)
}

func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	if n, ok := toInt64(value); ok {
		return float64(n), true
	}
	return 0, false
}

type boolConverter struct{}

func (boolConverter) Shape() Shape { return ShapePrimitive }

func (boolConverter) Coerce(value any, state *CoerceState) (any, error) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	return nil, newShapeMismatch(state.Path(), "bool", value)
}

func (boolConverter) Dump(value any, state *DumpState) (any, error) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	return nil, newShapeMismatch(state.Path(), "bool", value)
}

// dateTimeLayouts are tried in order. The API emits RFC 3339 but older endpoints omit the offset.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

type dateTimeConverter struct{}

func (dateTimeConverter) Shape() Shape { return ShapePrimitive }

func (dateTimeConverter) Coerce(value any, state *CoerceState) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v != nil {
			return *v, nil
		}
	case string:
		if t, ok := parseDateTime(v); ok {
			return t, nil
		}
	}
	return nil, newShapeMismatch(state.Path(), "date-time", value)
}

func (dateTimeConverter) Dump(value any, state *DumpState) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	case *time.Time:
		if v != nil {
			return v.Format(time.RFC3339Nano), nil
		}
	case string:
		if t, ok := parseDateTime(v); ok {
			return t.Format(time.RFC3339Nano), nil
		}
	}
	return nil, newShapeMismatch(state.Path(), "date-time", value)
}

func parseDateTime(s string) (time.Time, bool) {
	// drop a trailing zone name such as "[Europe/London]"
	if strings.HasSuffix(s, "]") {
		if i := strings.LastIndexByte(s, '['); i > 0 {
			s = s[:i]
		}
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type dateConverter struct{}

func (dateConverter) Shape() Shape { return ShapePrimitive }

func (dateConverter) Coerce(value any, state *CoerceState) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		if t, err := time.Parse(dateLayout, v); err == nil {
			return t, nil
		}
	}
	return nil, newShapeMismatch(state.Path(), "date", value)
}

func (dateConverter) Dump(value any, state *DumpState) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return v.Format(dateLayout), nil
	case string:
		if t, err := time.Parse(dateLayout, v); err == nil {
			return t.Format(dateLayout), nil
		}
	}
	return nil, newShapeMismatch(state.Path(), "date", value)
}

type unknownConverter struct{}

func (unknownConverter) Shape() Shape { return ShapePrimitive }

func (unknownConverter) Coerce(value any, _ *CoerceState) (any, error) {
	return value, nil
}

func (unknownConverter) Dump(value any, _ *DumpState) (any, error) {
	return value, nil
}
