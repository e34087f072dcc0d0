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

package codecs

import (
	"bytes"
	"io"

	"github.com/palantir/pkg/safejson"
	werror "github.com/palantir/witchcraft-go-error"
)

const contentTypeJSON = "application/json"

// JSON encodes with HTML escaping disabled and decodes numbers as json.Number, so decoding
// into an empty interface yields the wire values the conversion package expects.
var JSON Codec = codecJSON{}

type codecJSON struct{}

func (codecJSON) Accept() string {
	return contentTypeJSON
}

func (codecJSON) ContentType() string {
	return contentTypeJSON
}

func (codecJSON) Decode(r io.Reader, v any) error {
	if err := safejson.Decoder(r).Decode(v); err != nil {
		return werror.Wrap(err, "failed to decode JSON")
	}
	return nil
}

func (codecJSON) Unmarshal(data []byte, v any) error {
	if err := safejson.Unmarshal(data, v); err != nil {
		return werror.Wrap(err, "failed to unmarshal JSON")
	}
	return nil
}

func (codecJSON) Encode(w io.Writer, v any) error {
	if err := safejson.Encoder(w).Encode(v); err != nil {
		return werror.Wrap(err, "failed to encode JSON")
	}
	return nil
}

func (codecJSON) Marshal(v any) ([]byte, error) {
	out, err := safejson.Marshal(v)
	if err != nil {
		return nil, werror.Wrap(err, "failed to marshal JSON")
	}
	return out, nil
}

// DecodeWire decodes a JSON document into wire values: nil, bool, string, json.Number,
// []any and map[string]any. An empty body decodes to nil.
func DecodeWire(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, werror.Wrap(err, "failed to read body")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var out any
	if err := JSON.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
