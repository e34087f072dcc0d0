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

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryForStatus(t *testing.T) {
	for _, tc := range []struct {
		status    int
		category  Category
		retryable bool
	}{
		{status: 0, category: Transport, retryable: true},
		{status: 200, category: Other},
		{status: 400, category: Client},
		{status: 404, category: Client},
		{status: 429, category: QOS, retryable: true},
		{status: 500, category: Server},
		{status: 502, category: Server, retryable: true},
		{status: 503, category: QOS, retryable: true},
		{status: 504, category: Server, retryable: true},
	} {
		t.Run(fmt.Sprint(tc.status), func(t *testing.T) {
			c := CategoryForStatus(tc.status)
			assert.Equal(t, tc.category, c)
			assert.Equal(t, tc.retryable, c.Retryable(tc.status))
		})
	}
}
