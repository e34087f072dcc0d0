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

package legalesign

import (
	"github.com/legalesign/legalesign-go/legalesign-contract/conversion"
)

// FieldValue is the content of a form field. Numeric fields decode to int64 and everything
// else to string.
type FieldValue = any

var fieldValues = conversion.UnionOf[FieldValue](
	conversion.VariantOf[FieldValue, int64]("int", conversion.Int),
	conversion.VariantOf[FieldValue, string]("string", conversion.String),
)

// FieldValueString returns v as a string if it holds one.
func FieldValueString(v FieldValue) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// FieldValueInt returns v as an int64 if it holds one.
func FieldValueInt(v FieldValue) (int64, bool) {
	i, ok := v.(int64)
	return i, ok
}
