// Copyright (c) 2024 Palantir Technologies. All rights reserved.
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
	"bytes"
	"io"
	"net/http"
)

// RequestBody sets the body of an http.Request. Implementations set Body, GetBody and ContentLength (if known).
type RequestBody interface {
	setRequestBody(req *http.Request) error
	// replayable reports whether the body can be sent more than once.
	replayable() bool
}

type requestBody struct {
	set    func(req *http.Request) error
	replay bool
}

func (b requestBody) setRequestBody(req *http.Request) error {
	return b.set(req)
}

func (b requestBody) replayable() bool {
	return b.replay
}

// RequestBodyInMemory uses the content of buf as the request body. GetBody returns a fresh reader over the
// same bytes, so the request may be retried.
func RequestBodyInMemory(buf []byte) RequestBody {
	return requestBody{
		replay: true,
		set: func(req *http.Request) error {
			getBody := func() (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader(buf)), nil
			}
			req.ContentLength = int64(len(buf))
			req.Body, _ = getBody()
			req.GetBody = getBody
			return nil
		},
	}
}

// RequestBodyStreamOnce uses r as the request body. GetBody is left nil and requests carrying this body are
// never retried. The body's Close method is called when the request completes, if it has one.
func RequestBodyStreamOnce(r io.Reader) RequestBody {
	return requestBody{
		replay: false,
		set: func(req *http.Request) error {
			rc, ok := r.(io.ReadCloser)
			if !ok {
				rc = io.NopCloser(r)
			}
			req.ContentLength = -1
			req.Body = rc
			req.GetBody = nil
			return nil
		},
	}
}
