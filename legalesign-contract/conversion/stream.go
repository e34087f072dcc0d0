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
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"sync"

	werror "github.com/palantir/witchcraft-go-error"
)

// Stream converts file content. On the wire it is a base64 string; in memory it is an io.Reader.
//
// Dumping an io.Reader that is not an io.Seeker marks the DumpState as not retryable, since the
// reader can only be consumed once. Seekable readers are rewound each time they are encoded.
var Stream Converter = streamConverter{}

type streamConverter struct{}

func (streamConverter) Shape() Shape { return ShapeStream }

func (streamConverter) Coerce(value any, state *CoerceState) (any, error) {
	switch v := value.(type) {
	case io.Reader:
		return v, nil
	case []byte:
		return bytes.NewReader(v), nil
	case string:
		data, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, newShapeMismatch(state.Path(), "base64 string", value)
		}
		return bytes.NewReader(data), nil
	}
	return nil, newShapeMismatch(state.Path(), "base64 string", value)
}

func (streamConverter) Dump(value any, state *DumpState) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return base64.StdEncoding.EncodeToString(v), nil
	case io.Reader:
		s, err := NewBase64Stream(v)
		if err != nil {
			return nil, werror.Wrap(err, "failed to record stream position", werror.SafeParam("path", state.Path()))
		}
		if !s.Retryable() {
			state.MarkNotRetryable()
		}
		return s, nil
	}
	return nil, newShapeMismatch(state.Path(), "stream", value)
}

// Base64Stream is the dumped form of a stream. It marshals to a JSON string holding the
// base64 encoding of the reader's content when the payload is encoded for transmission.
type Base64Stream struct {
	mu     sync.Mutex
	r      io.Reader
	seeker io.Seeker
	start  int64
	read   bool
}

var _ json.Marshaler = (*Base64Stream)(nil)

// NewBase64Stream wraps r. If r is an io.Seeker its current offset is recorded so that every
// encoding starts from the same position.
func NewBase64Stream(r io.Reader) (*Base64Stream, error) {
	s := &Base64Stream{r: r}
	if seeker, ok := r.(io.Seeker); ok {
		start, err := seeker.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, err
		}
		s.seeker = seeker
		s.start = start
	}
	return s, nil
}

// Retryable reports whether the stream can be encoded more than once.
func (s *Base64Stream) Retryable() bool {
	return s.seeker != nil
}

func (s *Base64Stream) MarshalJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seeker != nil {
		if _, err := s.seeker.Seek(s.start, io.SeekStart); err != nil {
			return nil, werror.Wrap(err, "failed to rewind stream")
		}
	} else if s.read {
		return nil, werror.Error("one-shot stream has already been consumed")
	}
	s.read = true

	var buf bytes.Buffer
	buf.WriteByte('"')
	enc := base64.NewEncoder(base64.StdEncoding, &buf)
	if _, err := io.Copy(enc, s.r); err != nil {
		return nil, werror.Wrap(err, "failed to read stream")
	}
	if err := enc.Close(); err != nil {
		return nil, werror.Wrap(err, "failed to encode stream")
	}
	buf.WriteByte('"')
	return buf.Bytes(), nil
}
