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
	"fmt"

	wparams "github.com/palantir/witchcraft-go-params"
)

// ResponseShapeError is returned when a successful response does not match the documented
// model. The conversion error that caused it is available through errors.As.
type ResponseShapeError struct {
	Method   string
	Path     string
	Endpoint string
	cause    error
}

var _ wparams.ParamStorer = (*ResponseShapeError)(nil)

func newResponseShapeError(req Request, cause error) *ResponseShapeError {
	return &ResponseShapeError{
		Method:   req.Method,
		Path:     req.Path,
		Endpoint: req.Endpoint,
		cause:    cause,
	}
}

func (e *ResponseShapeError) Error() string {
	return fmt.Sprintf("unexpected response shape from %s %s: %v", e.Method, e.Path, e.cause)
}

func (e *ResponseShapeError) Unwrap() error {
	return e.cause
}

func (e *ResponseShapeError) SafeParams() map[string]any {
	params := map[string]any{
		"requestMethod": e.Method,
		"endpoint":      e.Endpoint,
	}
	if storer, ok := e.cause.(wparams.ParamStorer); ok {
		for k, v := range storer.SafeParams() {
			params[k] = v
		}
	}
	return params
}

func (e *ResponseShapeError) UnsafeParams() map[string]any {
	params := map[string]any{"requestPath": e.Path}
	if storer, ok := e.cause.(wparams.ParamStorer); ok {
		for k, v := range storer.UnsafeParams() {
			params[k] = v
		}
	}
	return params
}
