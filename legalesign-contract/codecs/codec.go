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

// Package codecs encodes and decodes request and response bodies.
package codecs

import (
	"io"
)

// Decoder decodes a body into a Go value.
type Decoder interface {
	// Accept returns the media type sent in the Accept header.
	Accept() string
	Decode(r io.Reader, v any) error
	Unmarshal(data []byte, v any) error
}

// Encoder encodes a Go value into a body.
type Encoder interface {
	// ContentType returns the media type sent in the Content-Type header.
	ContentType() string
	Encode(w io.Writer, v any) error
	Marshal(v any) ([]byte, error)
}

// Codec is both an Encoder and a Decoder for the same media type.
type Codec interface {
	Decoder
	Encoder
}
