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
	"net/http"
	"time"

	"github.com/palantir/pkg/metrics"
	"github.com/palantir/pkg/refreshable"
	werror "github.com/palantir/witchcraft-go-error"
)

const (
	MetricTagServiceName = "service-name"
	MetricClientResponse = "legalesign.client.response"

	metricTagFamily   = "family"
	metricTagMethod   = "method"
	metricTagEndpoint = "endpoint"

	metricTagFamilyOther = "other"
	metricTagFamily1xx   = "1xx"
	metricTagFamily2xx   = "2xx"
	metricTagFamily3xx   = "3xx"
	metricTagFamily4xx   = "4xx"
	metricTagFamily5xx   = "5xx"

	endpointNameMissing = "EndpointNameMissing"
	endpointNameInvalid = "EndpointNameInvalid"
)

// A TagsProvider returns metrics tags based on an http round trip.
type TagsProvider interface {
	Tags(*http.Request, *http.Response) metrics.Tags
}

// TagsProviderFunc is a convenience type that implements TagsProvider.
type TagsProviderFunc func(*http.Request, *http.Response) metrics.Tags

func (f TagsProviderFunc) Tags(req *http.Request, resp *http.Response) metrics.Tags {
	return f(req, resp)
}

// MetricsMiddleware updates the "legalesign.client.response" timer on every request. Metrics are tagged with
// 'service-name', 'method', 'endpoint' and 'family' (of the status code), plus any tags from tagProviders.
// The timer is written to the registry found in the request context.
func MetricsMiddleware(serviceName string, tagProviders ...TagsProvider) (Middleware, error) {
	serviceNameTag, err := metrics.NewTag(MetricTagServiceName, serviceName)
	if err != nil {
		return nil, werror.Wrap(err, "failed to construct service-name metric tag", werror.SafeParam("serviceName", serviceName))
	}
	return newMetricsMiddleware(serviceNameTag, tagProviders, nil), nil
}

func newMetricsMiddleware(serviceNameTag metrics.Tag, tagProviders []TagsProvider, disabled refreshable.Bool) Middleware {
	return &metricsMiddleware{
		Disabled: disabled,
		Tags: append(
			append([]TagsProvider(nil), tagProviders...),
			TagsProviderFunc(tagStatusFamily),
			TagsProviderFunc(tagRequestMethod),
			TagsProviderFunc(tagEndpointName),
			TagsProviderFunc(func(*http.Request, *http.Response) metrics.Tags { return metrics.Tags{serviceNameTag} }),
		),
	}
}

type metricsMiddleware struct {
	Disabled refreshable.Bool
	Tags     []TagsProvider
}

func (h *metricsMiddleware) RoundTrip(req *http.Request, next http.RoundTripper) (*http.Response, error) {
	if h.Disabled != nil && h.Disabled.CurrentBool() {
		return next.RoundTrip(req)
	}
	start := time.Now()
	resp, err := next.RoundTrip(req)
	duration := time.Since(start)

	var tags metrics.Tags
	for _, tagProvider := range h.Tags {
		tags = append(tags, tagProvider.Tags(req, resp)...)
	}
	metrics.FromContext(req.Context()).Timer(MetricClientResponse, tags...).Update(duration)
	return resp, err
}

func tagStatusFamily(_ *http.Request, resp *http.Response) metrics.Tags {
	var tag metrics.Tag
	switch {
	case resp == nil, resp.StatusCode < 100, resp.StatusCode > 599:
		tag = metrics.MustNewTag(metricTagFamily, metricTagFamilyOther)
	case resp.StatusCode < 200:
		tag = metrics.MustNewTag(metricTagFamily, metricTagFamily1xx)
	case resp.StatusCode < 300:
		tag = metrics.MustNewTag(metricTagFamily, metricTagFamily2xx)
	case resp.StatusCode < 400:
		tag = metrics.MustNewTag(metricTagFamily, metricTagFamily3xx)
	case resp.StatusCode < 500:
		tag = metrics.MustNewTag(metricTagFamily, metricTagFamily4xx)
	default:
		tag = metrics.MustNewTag(metricTagFamily, metricTagFamily5xx)
	}
	return metrics.Tags{tag}
}

func tagRequestMethod(req *http.Request, _ *http.Response) metrics.Tags {
	return metrics.Tags{metrics.MustNewTag(metricTagMethod, req.Method)}
}

func tagEndpointName(req *http.Request, _ *http.Response) metrics.Tags {
	name := endpointNameFromContext(req.Context())
	if name == "" {
		return metrics.Tags{metrics.MustNewTag(metricTagEndpoint, endpointNameMissing)}
	}
	tag, err := metrics.NewTag(metricTagEndpoint, name)
	if err != nil {
		return metrics.Tags{metrics.MustNewTag(metricTagEndpoint, endpointNameInvalid)}
	}
	return metrics.Tags{tag}
}
