// Copyright (c) 2019 Palantir Technologies. All rights reserved.
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

package httpclient

import (
	"net/http"

	"github.com/legalesign/legalesign-go/legalesign-client/httpclient/internal"
	"github.com/legalesign/legalesign-go/legalesign-contract/errors"
	werror "github.com/palantir/witchcraft-go-error"
)

// ErrorDecoder implementations declare whether or not they should be used to handle certain http responses, and
// return decoded errors when invoked.
type ErrorDecoder interface {
	// Handles returns whether or not the decoder considers the response an error.
	Handles(resp *http.Response) bool
	// DecodeError returns a decoded error, or an error encountered while trying to decode.
	// DecodeError should never return nil.
	DecodeError(resp *http.Response) error
}

// errorDecoderMiddleware intercepts a round trip's response. If the ErrorDecoder handles the response, the
// decoded error is returned together with a nil *http.Response.
func errorDecoderMiddleware(errorDecoder ErrorDecoder) Middleware {
	return MiddlewareFunc(func(req *http.Request, next http.RoundTripper) (*http.Response, error) {
		resp, err := next.RoundTrip(req)
		// if error is already set, it is more severe than our HTTP error. Just return it.
		if resp == nil || err != nil {
			return nil, err
		}
		if errorDecoder.Handles(resp) {
			defer internal.DrainBody(resp)
			return nil, errorDecoder.DecodeError(resp)
		}
		return resp, nil
	})
}

// restErrorDecoder is the default error decoder. It handles responses with status >= 400 and returns an
// errors.Error carrying the status code and decoded body.
type restErrorDecoder struct{}

var _ ErrorDecoder = restErrorDecoder{}

func (restErrorDecoder) Handles(resp *http.Response) bool {
	return resp.StatusCode >= http.StatusBadRequest
}

func (restErrorDecoder) DecodeError(resp *http.Response) error {
	return errors.FromResponse(resp)
}

// StatusCodeFromError retrieves the status code of the response that caused err.
// If err wraps an errors.Error, its status is returned; APIConnection errors have no status and ok is false.
// Otherwise the 'statusCode' safe param set by custom decoders is used.
func StatusCodeFromError(err error) (statusCode int, ok bool) {
	if apiErr, isAPIErr := errors.FromError(err); isAPIErr {
		return apiErr.StatusCode(), apiErr.StatusCode() != 0
	}
	statusCodeI, ok := werror.ParamFromError(err, "statusCode")
	if !ok {
		return 0, false
	}
	statusCode, ok = statusCodeI.(int)
	return statusCode, ok
}
