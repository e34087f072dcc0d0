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

// Package httpserver writes HTTP responses for test servers standing in for the Legalesign API.
package httpserver

import (
	"net/http"

	"github.com/legalesign/legalesign-go/legalesign-contract/codecs"
)

// WriteJSONResponse writes obj as a JSON body with the given status. A nil obj writes only the status.
func WriteJSONResponse(w http.ResponseWriter, obj any, status int) {
	if obj == nil {
		w.WriteHeader(status)
		return
	}
	data, err := codecs.JSON.Marshal(obj)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", codecs.JSON.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
