// Copyright (c) 2018 Palantir Technologies. All rights reserved.
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

// Package errors defines the errors returned by the Legalesign API.
package errors

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	internalerrors "github.com/legalesign/legalesign-go/internal/errors"
	"github.com/legalesign/legalesign-go/legalesign-contract/codecs"
	"github.com/palantir/pkg/uuid"
	werror "github.com/palantir/witchcraft-go-error"
	wparams "github.com/palantir/witchcraft-go-params"
)

// maxErrorBodyBytes bounds how much of an error response body is read.
const maxErrorBodyBytes = 64 << 10

// Kind identifies the class of an API error.
type Kind string

const (
	BadRequest          Kind = "BadRequest"
	Authentication      Kind = "Authentication"
	PermissionDenied    Kind = "PermissionDenied"
	NotFound            Kind = "NotFound"
	Conflict            Kind = "Conflict"
	UnprocessableEntity Kind = "UnprocessableEntity"
	RateLimit           Kind = "RateLimit"
	InternalServer      Kind = "InternalServer"
	APIConnection       Kind = "APIConnection"
	Unknown             Kind = "Unknown"
)

// KindForStatus maps an HTTP status code to a Kind.
func KindForStatus(status int) Kind {
	switch {
	case status == 0:
		return APIConnection
	case status == http.StatusBadRequest:
		return BadRequest
	case status == http.StatusUnauthorized:
		return Authentication
	case status == http.StatusForbidden:
		return PermissionDenied
	case status == http.StatusNotFound:
		return NotFound
	case status == http.StatusConflict:
		return Conflict
	case status == http.StatusUnprocessableEntity:
		return UnprocessableEntity
	case status == http.StatusTooManyRequests:
		return RateLimit
	case status >= http.StatusInternalServerError:
		return InternalServer
	default:
		return Unknown
	}
}

// Error is returned when the API responds with a status >= 400 or cannot be reached.
type Error interface {
	error
	// Kind returns the class of the error.
	Kind() Kind
	// StatusCode returns the HTTP status code, or 0 if no response was received.
	StatusCode() int
	// InstanceID returns a unique identifier of this particular error instance.
	InstanceID() uuid.UUID
	// Body returns the decoded response body: wire values for JSON bodies, a string otherwise.
	Body() any

	wparams.ParamStorer
}

type apiError struct {
	kind       Kind
	status     int
	instanceID uuid.UUID
	message    string
	body       any
	cause      error
}

var _ Error = (*apiError)(nil)

// NewError returns an error for a response with the given status and decoded body.
func NewError(status int, body any) Error {
	return &apiError{
		kind:       KindForStatus(status),
		status:     status,
		instanceID: uuid.NewUUID(),
		message:    messageFromBody(status, body),
		body:       body,
	}
}

// NewConnectionError returns an APIConnection error for a request that received no response.
func NewConnectionError(cause error) Error {
	msg := "connection error"
	if cause != nil {
		msg = cause.Error()
	}
	return &apiError{
		kind:       APIConnection,
		instanceID: uuid.NewUUID(),
		message:    msg,
		cause:      cause,
	}
}

// FromResponse reads and decodes resp.Body into an Error. The caller remains responsible for closing the body.
func FromResponse(resp *http.Response) Error {
	var body any
	if resp.Body != nil {
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		if err == nil && len(data) > 0 {
			if decoded, decodeErr := codecs.DecodeWire(bytes.NewReader(data)); decodeErr == nil {
				body = decoded
			} else {
				body = string(data)
			}
		}
	}
	return NewError(resp.StatusCode, body)
}

func (e *apiError) Error() string {
	if e.status == 0 {
		return fmt.Sprintf("%s: %s", e.kind, e.message)
	}
	return fmt.Sprintf("%s (%d): %s", e.kind, e.status, e.message)
}

func (e *apiError) Unwrap() error {
	return e.cause
}

func (e *apiError) Kind() Kind {
	return e.kind
}

func (e *apiError) StatusCode() int {
	return e.status
}

func (e *apiError) InstanceID() uuid.UUID {
	return e.instanceID
}

func (e *apiError) Body() any {
	return e.body
}

func (e *apiError) SafeParams() map[string]any {
	params := map[string]any{
		"statusCode":      e.status,
		"errorKind":       string(e.kind),
		"errorInstanceId": e.instanceID.String(),
	}
	params[internalerrors.CategoryParam] = string(internalerrors.CategoryForStatus(e.status))
	return params
}

func (e *apiError) UnsafeParams() map[string]any {
	return map[string]any{"message": e.message, "responseBody": e.body}
}

// FromError returns the API error in err's chain, if there is one.
func FromError(err error) (Error, bool) {
	if err == nil {
		return nil, false
	}
	if apiErr, ok := werror.RootCause(err).(Error); ok {
		return apiErr, true
	}
	var apiErr Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an API error of the given kind.
func IsKind(err error, kind Kind) bool {
	apiErr, ok := FromError(err)
	return ok && apiErr.Kind() == kind
}

func messageFromBody(status int, body any) string {
	switch b := body.(type) {
	case map[string]any:
		for _, key := range []string{"message", "error", "detail"} {
			if s, ok := b[key].(string); ok && s != "" {
				return s
			}
		}
	case string:
		if b != "" {
			return b
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "unexpected status"
}
