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
	"os"
	"strings"
	"time"

	"github.com/legalesign/legalesign-go/legalesign-contract/codecs"
	"github.com/palantir/pkg/metrics"
	werror "github.com/palantir/witchcraft-go-error"
)

// ServicesConfig is the top-level configuration for Legalesign clients. It supports setting default values and
// overriding them per named client, for example one client per Legalesign region. Use ClientConfig(name) to
// retrieve a specific client's configuration and the WithConfig() param to construct a Client from it.
type ServicesConfig struct {
	// Default values will be used for any field which is not set for a specific client.
	Default ClientConfig `json:",inline" yaml:",inline"`
	// Services is a map of client name (e.g. "legalesign-eu") to client-specific configuration.
	Services map[string]ClientConfig `json:"services,omitempty" yaml:"services,omitempty"`
}

// ClientConfig represents the configuration for a single client.
type ClientConfig struct {
	ServiceName string `json:"-" yaml:"-"`
	// BaseURIs is a list of fully specified base URIs for the API, including the version path.
	BaseURIs []string `json:"base-uris,omitempty" yaml:"base-uris,omitempty"`
	// APIKey is sent verbatim in the Authorization header. This takes precedence over APIKeyFile.
	APIKey *string `json:"api-key,omitempty" yaml:"api-key,omitempty"`
	// APIKeyFile is an on-disk location containing the API key.
	APIKeyFile *string `json:"api-key-file,omitempty" yaml:"api-key-file,omitempty"`
	// UserAgent is sent in the User-Agent header of every request.
	UserAgent *string `json:"user-agent,omitempty" yaml:"user-agent,omitempty"`
	// DisableHTTP2, if true, will prevent the client from modifying the *tls.Config object to support H2 connections.
	DisableHTTP2 *bool `json:"disable-http2,omitempty" yaml:"disable-http2,omitempty"`
	// ProxyURL uses the provided URL for proxying the request. Schemes http and https are supported.
	ProxyURL *string `json:"proxy-url,omitempty" yaml:"proxy-url,omitempty"`

	// MaxNumRetries controls the number of times the client will retry retryable failures. Defaults to 2.
	MaxNumRetries *int `json:"max-num-retries,omitempty" yaml:"max-num-retries,omitempty"`
	// InitialBackoff controls the duration of the first backoff interval. This delay will double for each
	// subsequent backoff, capped at the MaxBackoff value.
	InitialBackoff *time.Duration `json:"initial-backoff,omitempty" yaml:"initial-backoff,omitempty"`
	// MaxBackoff controls the maximum duration the client will sleep before retrying a request.
	MaxBackoff *time.Duration `json:"max-backoff,omitempty" yaml:"max-backoff,omitempty"`

	// ConnectTimeout is the maximum time for the net.Dialer to connect to the remote host.
	ConnectTimeout *time.Duration `json:"connect-timeout,omitempty" yaml:"connect-timeout,omitempty"`
	// ReadTimeout is the maximum timeout for non-mutating requests.
	// NOTE: The current implementation uses the max(ReadTimeout, WriteTimeout) to set the http.Client timeout value.
	ReadTimeout *time.Duration `json:"read-timeout,omitempty" yaml:"read-timeout,omitempty"`
	// WriteTimeout is the maximum timeout for mutating requests.
	// NOTE: The current implementation uses the max(ReadTimeout, WriteTimeout) to set the http.Client timeout value.
	WriteTimeout *time.Duration `json:"write-timeout,omitempty" yaml:"write-timeout,omitempty"`
	// IdleConnTimeout sets the timeout for idle connections.
	IdleConnTimeout *time.Duration `json:"idle-conn-timeout,omitempty" yaml:"idle-conn-timeout,omitempty"`
	// TLSHandshakeTimeout sets the timeout for TLS handshakes.
	TLSHandshakeTimeout *time.Duration `json:"tls-handshake-timeout,omitempty" yaml:"tls-handshake-timeout,omitempty"`
	// HTTP2ReadIdleTimeout sets the interval after which an idle HTTP/2 connection is health checked.
	HTTP2ReadIdleTimeout *time.Duration `json:"http2-read-idle-timeout,omitempty" yaml:"http2-read-idle-timeout,omitempty"`

	// MaxIdleConns sets the number of reusable TCP connections the client will maintain. Defaults to 200.
	MaxIdleConns *int `json:"max-idle-conns,omitempty" yaml:"max-idle-conns,omitempty"`
	// MaxIdleConnsPerHost sets the number of reusable TCP connections the client will maintain per destination.
	// Defaults to 100.
	MaxIdleConnsPerHost *int `json:"max-idle-conns-per-host,omitempty" yaml:"max-idle-conns-per-host,omitempty"`

	// Metrics allows disabling metric emission or adding additional static tags to the client metrics.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	// Security configures the TLS configuration for the client. It accepts file paths which should be
	// absolute paths or relative to the process's current working directory.
	Security SecurityConfig `json:"security,omitempty" yaml:"security,omitempty"`
}

type MetricsConfig struct {
	// Enabled can be used to disable metrics with an explicit 'false'. Metrics are enabled if this is unset.
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	// Tags allows setting arbitrary additional tags on the metrics emitted by the client.
	Tags map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

type SecurityConfig struct {
	CAFiles  []string `json:"ca-files,omitempty" yaml:"ca-files,omitempty"`
	CertFile string   `json:"cert-file,omitempty" yaml:"cert-file,omitempty"`
	KeyFile  string   `json:"key-file,omitempty" yaml:"key-file,omitempty"`

	// InsecureSkipVerify sets the InsecureSkipVerify field for the HTTP client's tls config.
	// This option should only be used against test environments.
	InsecureSkipVerify *bool `json:"insecure-skip-verify,omitempty" yaml:"insecure-skip-verify,omitempty"`
}

// LoadServicesConfig parses a YAML document into a ServicesConfig.
func LoadServicesConfig(data []byte) (ServicesConfig, error) {
	var conf ServicesConfig
	if err := codecs.YAML.Unmarshal(data, &conf); err != nil {
		return ServicesConfig{}, werror.Wrap(err, "failed to parse client configuration")
	}
	return conf, nil
}

// ClientConfig returns the configuration for the named client, merged with the defaults.
func (c ServicesConfig) ClientConfig(serviceName string) ClientConfig {
	conf, ok := c.Services[serviceName]
	if !ok {
		conf = ClientConfig{}
	}
	conf.ServiceName = serviceName
	return MergeClientConfig(conf, c.Default)
}

// MergeClientConfig merges two instances of ClientConfig, preferring values from conf over defaults.
func MergeClientConfig(conf, defaults ClientConfig) ClientConfig {
	if len(conf.BaseURIs) == 0 {
		conf.BaseURIs = defaults.BaseURIs
	}
	if conf.APIKey == nil && conf.APIKeyFile == nil {
		conf.APIKey = defaults.APIKey
		conf.APIKeyFile = defaults.APIKeyFile
	}
	conf.UserAgent = firstNonNil(conf.UserAgent, defaults.UserAgent)
	conf.DisableHTTP2 = firstNonNil(conf.DisableHTTP2, defaults.DisableHTTP2)
	conf.ProxyURL = firstNonNil(conf.ProxyURL, defaults.ProxyURL)
	conf.MaxNumRetries = firstNonNil(conf.MaxNumRetries, defaults.MaxNumRetries)
	conf.InitialBackoff = firstNonNil(conf.InitialBackoff, defaults.InitialBackoff)
	conf.MaxBackoff = firstNonNil(conf.MaxBackoff, defaults.MaxBackoff)
	conf.ConnectTimeout = firstNonNil(conf.ConnectTimeout, defaults.ConnectTimeout)
	conf.ReadTimeout = firstNonNil(conf.ReadTimeout, defaults.ReadTimeout)
	conf.WriteTimeout = firstNonNil(conf.WriteTimeout, defaults.WriteTimeout)
	conf.IdleConnTimeout = firstNonNil(conf.IdleConnTimeout, defaults.IdleConnTimeout)
	conf.TLSHandshakeTimeout = firstNonNil(conf.TLSHandshakeTimeout, defaults.TLSHandshakeTimeout)
	conf.HTTP2ReadIdleTimeout = firstNonNil(conf.HTTP2ReadIdleTimeout, defaults.HTTP2ReadIdleTimeout)
	conf.MaxIdleConns = firstNonNil(conf.MaxIdleConns, defaults.MaxIdleConns)
	conf.MaxIdleConnsPerHost = firstNonNil(conf.MaxIdleConnsPerHost, defaults.MaxIdleConnsPerHost)

	conf.Metrics.Enabled = firstNonNil(conf.Metrics.Enabled, defaults.Metrics.Enabled)
	if len(defaults.Metrics.Tags) > 0 {
		tags := make(map[string]string, len(defaults.Metrics.Tags)+len(conf.Metrics.Tags))
		for k, v := range defaults.Metrics.Tags {
			tags[k] = v
		}
		for k, v := range conf.Metrics.Tags {
			tags[k] = v
		}
		conf.Metrics.Tags = tags
	}

	if len(conf.Security.CAFiles) == 0 {
		conf.Security.CAFiles = defaults.Security.CAFiles
	}
	if conf.Security.CertFile == "" && conf.Security.KeyFile == "" {
		conf.Security.CertFile = defaults.Security.CertFile
		conf.Security.KeyFile = defaults.Security.KeyFile
	}
	conf.Security.InsecureSkipVerify = firstNonNil(conf.Security.InsecureSkipVerify, defaults.Security.InsecureSkipVerify)
	return conf
}

// configToParams converts a ClientConfig into the equivalent ClientParams.
func configToParams(c ClientConfig) ([]ClientParam, error) {
	var params []ClientParam

	if c.ServiceName != "" {
		params = append(params, WithServiceName(c.ServiceName))
	}
	if len(c.BaseURIs) > 0 {
		params = append(params, WithBaseURLs(c.BaseURIs))
	}

	switch {
	case c.APIKey != nil:
		params = append(params, WithAuthToken(*c.APIKey))
	case c.APIKeyFile != nil:
		data, err := os.ReadFile(*c.APIKeyFile)
		if err != nil {
			return nil, werror.Wrap(err, "failed to read api-key-file", werror.SafeParam("apiKeyFile", *c.APIKeyFile))
		}
		params = append(params, WithAuthToken(strings.TrimSpace(string(data))))
	}

	if c.UserAgent != nil {
		params = append(params, WithUserAgent(*c.UserAgent))
	}
	if c.MaxNumRetries != nil {
		params = append(params, WithMaxRetries(*c.MaxNumRetries))
	}
	if c.InitialBackoff != nil {
		params = append(params, WithInitialBackoff(*c.InitialBackoff))
	}
	if c.MaxBackoff != nil {
		params = append(params, WithMaxBackoff(*c.MaxBackoff))
	}
	if c.ConnectTimeout != nil {
		params = append(params, WithDialTimeout(*c.ConnectTimeout))
	}
	if c.ReadTimeout != nil || c.WriteTimeout != nil {
		rt := derefPtr(c.ReadTimeout, 0)
		wt := derefPtr(c.WriteTimeout, 0)
		if rt > wt {
			params = append(params, WithHTTPTimeout(rt))
		} else {
			params = append(params, WithHTTPTimeout(wt))
		}
	}
	if c.IdleConnTimeout != nil {
		params = append(params, WithIdleConnTimeout(*c.IdleConnTimeout))
	}
	if c.TLSHandshakeTimeout != nil {
		params = append(params, WithTLSHandshakeTimeout(*c.TLSHandshakeTimeout))
	}
	if c.HTTP2ReadIdleTimeout != nil {
		params = append(params, WithHTTP2ReadIdleTimeout(*c.HTTP2ReadIdleTimeout))
	}
	if c.MaxIdleConns != nil || c.MaxIdleConnsPerHost != nil {
		params = append(params, WithMaxIdleConns(derefPtr(c.MaxIdleConns, defaultMaxIdleConns),
			derefPtr(c.MaxIdleConnsPerHost, defaultMaxIdleConnsPerHost)))
	}
	if derefPtr(c.DisableHTTP2, false) {
		params = append(params, WithDisableHTTP2())
	}
	if c.ProxyURL != nil {
		params = append(params, WithProxyURL(*c.ProxyURL))
	}

	if !derefPtr(c.Metrics.Enabled, true) {
		params = append(params, WithDisableMetrics())
	}
	if len(c.Metrics.Tags) > 0 {
		tags, err := metrics.NewTags(c.Metrics.Tags)
		if err != nil {
			return nil, werror.Wrap(err, "invalid metrics tags")
		}
		params = append(params, WithMetricsTagProvider(TagsProviderFunc(func(*http.Request, *http.Response) metrics.Tags {
			return tags
		})))
	}

	tlsConfig, err := newTLSConfig(c.Security)
	if err != nil {
		return nil, err
	}
	if tlsConfig != nil {
		params = append(params, WithTLSConfig(tlsConfig))
	}
	return params, nil
}

func firstNonNil[T any](values ...*T) *T {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func derefPtr[T any](ptr *T, defaultVal T) T {
	if ptr == nil {
		return defaultVal
	}
	return *ptr
}
