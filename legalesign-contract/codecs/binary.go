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

package codecs

import (
	"bytes"
	"io"

	werror "github.com/palantir/witchcraft-go-error"
)

const contentTypeBinary = "application/octet-stream"

// Binary copies raw bytes. Decode writes into an io.Writer; Encode reads from an io.Reader.
var Binary Codec = codecBinary{}

type codecBinary struct{}

func (codecBinary) Accept() string {
	return contentTypeBinary
}

func (codecBinary) ContentType() string {
	return contentTypeBinary
}

func (codecBinary) Decode(r io.Reader, v any) error {
	w, ok := v.(io.Writer)
	if !ok {
		return werror.Error("binary decode target must implement io.Writer")
	}
	if _, err := io.Copy(w, r); err != nil {
		return werror.Convert(err)
	}
	return nil
}

func (c codecBinary) Unmarshal(data []byte, v any) error {
	return c.Decode(bytes.NewReader(data), v)
}

func (codecBinary) Encode(w io.Writer, v any) error {
	r, ok := v.(io.Reader)
	if !ok {
		return werror.Error("binary encode source must implement io.Reader")
	}
	if closer, ok := r.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}
	if _, err := io.Copy(w, r); err != nil {
		return werror.Convert(err)
	}
	return nil
}

func (c codecBinary) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
