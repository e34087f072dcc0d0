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

package errors

import (
	"net/http"
)

// Category groups API failures for metrics and logging.
type Category string

const (
	// QOS groups responses that ask the client to slow down or try again later, such as 429 and 503.
	QOS Category = "qos"

	// Client groups the remaining 4xx responses, which indicate a problem with the request itself.
	Client Category = "client"

	// Server groups the remaining 5xx responses.
	Server Category = "server"

	// Transport groups failures where no HTTP response was received.
	Transport Category = "transport"

	// Other is the catch-all for status codes outside the error ranges.
	Other Category = "other"

	// CategoryParam is the safe param key under which errors record their category.
	CategoryParam = "_errorCategory"
)

// CategoryForStatus returns the category of an HTTP status code. A zero status means no response was received.
func CategoryForStatus(status int) Category {
	switch {
	case status == 0:
		return Transport
	case status == http.StatusTooManyRequests, status == http.StatusServiceUnavailable:
		return QOS
	case status >= 400 && status < 500:
		return Client
	case status >= 500 && status < 600:
		return Server
	default:
		return Other
	}
}

// Retryable reports whether a request that failed in this way may be sent again.
func (c Category) Retryable(status int) bool {
	switch c {
	case QOS, Transport:
		return true
	case Server:
		return status == http.StatusBadGateway || status == http.StatusGatewayTimeout
	default:
		return false
	}
}
