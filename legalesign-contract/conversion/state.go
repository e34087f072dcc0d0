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
	"strconv"
	"strings"
)

// path is the stack of segments leading to the value currently being converted.
type path []string

func (p *path) pushField(name string) {
	*p = append(*p, "."+name)
}

func (p *path) pushIndex(i int) {
	*p = append(*p, "["+strconv.Itoa(i)+"]")
}

func (p *path) pushKey(key string) {
	*p = append(*p, "["+strconv.Quote(key)+"]")
}

func (p *path) pop() {
	if len(*p) > 0 {
		*p = (*p)[:len(*p)-1]
	}
}

func (p path) String() string {
	if len(p) == 0 {
		return ""
	}
	return strings.TrimPrefix(strings.Join(p, ""), ".")
}

// CoerceState is threaded through a single coercion pass. It records where in the input
// the engine currently is so that errors can name the failing field.
// A CoerceState must not be shared between concurrent calls.
type CoerceState struct {
	path path
}

// NewCoerceState returns a state for a new top-level coercion.
func NewCoerceState() *CoerceState {
	return &CoerceState{}
}

// Path returns the dotted path of the value being coerced, e.g. "signers[2].email".
// The root value has an empty path.
func (s *CoerceState) Path() string {
	if s == nil {
		return ""
	}
	return s.path.String()
}

func orNewCoerceState(s *CoerceState) *CoerceState {
	if s == nil {
		return NewCoerceState()
	}
	return s
}

// DumpState is threaded through a single dump pass. Its zero value is ready to use.
//
// CanRetry starts out true and flips to false as soon as a one-shot stream is dumped.
// The transport layer reads it to decide whether the request may be sent again.
type DumpState struct {
	path         path
	notRetryable bool
}

// NewDumpState returns a state for a new top-level dump.
func NewDumpState() *DumpState {
	return &DumpState{}
}

// CanRetry reports whether every value dumped so far can be transmitted more than once.
func (s *DumpState) CanRetry() bool {
	return s == nil || !s.notRetryable
}

// MarkNotRetryable records that the payload contains a value that can only be read once.
func (s *DumpState) MarkNotRetryable() {
	if s != nil {
		s.notRetryable = true
	}
}

func orNewDumpState(s *DumpState) *DumpState {
	if s == nil {
		return NewDumpState()
	}
	return s
}

// Path returns the dotted path of the value being dumped.
func (s *DumpState) Path() string {
	if s == nil {
		return ""
	}
	return s.path.String()
}
