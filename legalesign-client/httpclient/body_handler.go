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

package httpclient

import (
	"fmt"
	"net/http"

	"github.com/legalesign/legalesign-go/legalesign-contract/codecs"
	"github.com/palantir/pkg/bytesbuffers"
	werror "github.com/palantir/witchcraft-go-error"
)

type bodyMiddleware struct {
	requestInput   any
	requestEncoder codecs.Encoder

	// if rawOutput is true, the body of the response is not drained before returning. It is the responsibility of
	// the caller to read from and close the response body.
	rawOutput       bool
	responseOutput  any
	responseDecoder codecs.Decoder

	bufferPool bytesbuffers.Pool
}

func (b *bodyMiddleware) RoundTrip(req *http.Request, next http.RoundTripper) (*http.Response, error) {
	cleanup, err := b.setRequestBody(req)
	if err != nil {
		return nil, err
	}

	resp, respErr := next.RoundTrip(req)
	cleanup()

	if err := b.readResponse(req, resp, respErr); err != nil {
		return nil, err
	}
	return resp, nil
}

// replayable reports whether the configured request body can be sent more than once.
func (b *bodyMiddleware) replayable() bool {
	if b.requestInput == nil || b.requestEncoder != nil {
		return true
	}
	body, ok := b.requestInput.(RequestBody)
	return ok && body.replayable()
}

// setRequestBody returns a function that should be called once the request has been completed.
func (b *bodyMiddleware) setRequestBody(req *http.Request) (func(), error) {
	if b.requestInput == nil {
		return func() {}, nil
	}

	if b.requestEncoder == nil {
		body, ok := b.requestInput.(RequestBody)
		if !ok {
			return nil, werror.ErrorWithContextParams(req.Context(), "requestEncoder is nil but requestInput is not RequestBody",
				werror.SafeParam("requestInputType", fmt.Sprintf("%T", b.requestInput)))
		}
		return func() {}, body.setRequestBody(req)
	}

	if b.bufferPool != nil {
		buf := b.bufferPool.Get()
		cleanup := func() {
			b.bufferPool.Put(buf)
		}
		if err := b.requestEncoder.Encode(buf, b.requestInput); err != nil {
			cleanup()
			return nil, werror.WrapWithContextParams(req.Context(), err, "failed to encode request object")
		}
		if err := RequestBodyInMemory(buf.Bytes()).setRequestBody(req); err != nil {
			cleanup()
			return nil, err
		}
		return cleanup, nil
	}

	data, err := b.requestEncoder.Marshal(b.requestInput)
	if err != nil {
		return nil, werror.WrapWithContextParams(req.Context(), err, "failed to encode request object")
	}
	return func() {}, RequestBodyInMemory(data).setRequestBody(req)
}

func (b *bodyMiddleware) readResponse(req *http.Request, resp *http.Response, respErr error) error {
	if respErr != nil {
		return respErr
	}
	if b.rawOutput {
		return nil
	}
	// Error responses never reach this point: the error decoder replaces them with a nil response.
	if b.responseOutput == nil || resp == nil || resp.Body == nil || resp.ContentLength == 0 {
		return nil
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if err := b.responseDecoder.Decode(resp.Body, b.responseOutput); err != nil {
		return werror.WrapWithContextParams(req.Context(), err, "failed to decode response body",
			werror.SafeParam("responseStatus", resp.StatusCode))
	}
	return nil
}
