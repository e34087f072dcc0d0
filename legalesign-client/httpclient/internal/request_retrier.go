// Copyright (c) 2020 Palantir Technologies. All rights reserved.
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

package internal

import (
	"net/http"

	internalerrors "github.com/legalesign/legalesign-go/internal/errors"
	"github.com/legalesign/legalesign-go/legalesign-contract/errors"
	"github.com/palantir/pkg/retry"
)

// RequestRetrier manages the attempts of a single request. It tracks the backoff timing between subsequent
// attempts and decides from the outcome of the previous attempt whether another one should be made.
type RequestRetrier struct {
	retrier retry.Retrier

	maxAttempts  int
	attemptCount int
}

// NewRequestRetrier creates a new request retrier. A maxAttempts of 0 indicates no limit.
func NewRequestRetrier(retrier retry.Retrier, maxAttempts int) *RequestRetrier {
	return &RequestRetrier{
		retrier:      retrier,
		maxAttempts:  maxAttempts,
		attemptCount: 0,
	}
}

// AttemptCount returns the number of attempts granted so far.
func (r *RequestRetrier) AttemptCount() int {
	return r.attemptCount
}

func (r *RequestRetrier) attemptsRemaining() bool {
	if r.maxAttempts == 0 {
		return true
	}
	return r.attemptCount < r.maxAttempts
}

// Next returns true if another attempt should be made given the previous response and error. The first call
// always grants an attempt. If the returned value is true, the retrier will have waited the backoff interval.
func (r *RequestRetrier) Next(prevResp *http.Response, prevErr error) bool {
	if r.attemptCount > 0 && !IsRetryable(prevResp, prevErr) {
		return false
	}
	if !r.attemptsRemaining() {
		return false
	}
	if !r.retrier.Next() {
		return false
	}
	r.attemptCount++
	return true
}

// IsRetryable reports whether a request that ended with resp and err may be sent again. Only connection
// failures and API errors whose status category is retryable qualify.
func IsRetryable(resp *http.Response, err error) bool {
	if err == nil {
		if resp == nil {
			return false
		}
		return resp.StatusCode >= http.StatusBadRequest &&
			internalerrors.CategoryForStatus(resp.StatusCode).Retryable(resp.StatusCode)
	}
	apiErr, ok := errors.FromError(err)
	if !ok {
		return false
	}
	status := apiErr.StatusCode()
	return internalerrors.CategoryForStatus(status).Retryable(status)
}
