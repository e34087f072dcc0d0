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

// Package legalesign is a Go client for the Legalesign e-signature API.
//
// Resource services hang off Client. Request parameters and responses are typed models whose
// wire shape is declared with the conversion package, so unknown response fields are kept and
// unset fields are never sent:
//
//	client, err := legalesign.NewClient(legalesign.WithAPIKey("ApiKey user:secret"))
//	if err != nil {
//		return err
//	}
//	doc, err := client.Documents.Get(ctx, "8a3f...")
package legalesign

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/legalesign/legalesign-go/legalesign-client/httpclient"
	"github.com/palantir/pkg/refreshable"
	werror "github.com/palantir/witchcraft-go-error"
)

const (
	// Version is sent in the User-Agent header.
	Version = "0.1.0"

	// DefaultBaseURL is used when neither WithBaseURL nor LEGALESIGN_BASE_URL is set.
	DefaultBaseURL = "https://lon-dev.legalesign.com/api/v1"

	EnvAPIKey  = "LEGALESIGN_API_KEY"
	EnvBaseURL = "LEGALESIGN_BASE_URL"

	serviceName = "legalesign"
)

// Client is the entry point to the API. It is safe for concurrent use.
type Client struct {
	Documents   *DocumentService
	Signers     *SignerService
	Attachments *AttachmentService
	Groups      *GroupService
	Members     *MemberService
	Webhooks    *WebhookService
	Templates   *TemplateService
	TemplatePdf *TemplatePdfService
	Users       *UserService
	Invited     *InvitedService
	Status      *StatusService
	Pdf         *PdfService

	http       httpclient.Client
	pagination PaginationStrategy
}

type clientBuilder struct {
	apiKey     refreshable.String
	baseURL    string
	maxRetries *int
	pagination PaginationStrategy
	httpParams []httpclient.ClientParam
}

// ClientParam configures a Client.
type ClientParam interface {
	apply(b *clientBuilder) error
}

type clientParamFunc func(b *clientBuilder) error

func (f clientParamFunc) apply(b *clientBuilder) error {
	return f(b)
}

// NewClient returns a Client. The API key and base URL default to the LEGALESIGN_API_KEY and
// LEGALESIGN_BASE_URL environment variables; call LoadEnv first to read them from a .env file.
func NewClient(params ...ClientParam) (*Client, error) {
	b := &clientBuilder{
		baseURL:    DefaultBaseURL,
		pagination: OffsetPresence,
	}
	if key := os.Getenv(EnvAPIKey); key != "" {
		b.apiKey = refreshable.NewString(refreshable.NewDefaultRefreshable(key))
	}
	if baseURL := os.Getenv(EnvBaseURL); baseURL != "" {
		b.baseURL = baseURL
	}
	for _, p := range params {
		if p == nil {
			continue
		}
		if err := p.apply(b); err != nil {
			return nil, err
		}
	}
	if b.apiKey == nil {
		return nil, werror.Error("api key must be provided with WithAPIKey or the " + EnvAPIKey + " environment variable")
	}

	httpParams := []httpclient.ClientParam{
		httpclient.WithServiceName(serviceName),
		httpclient.WithBaseURL(b.baseURL),
		httpclient.WithUserAgent("legalesign-go/" + Version),
		httpclient.WithRefreshableAuthToken(b.apiKey),
	}
	if b.maxRetries != nil {
		httpParams = append(httpParams, httpclient.WithMaxRetries(*b.maxRetries))
	}
	httpParams = append(httpParams, b.httpParams...)
	httpClient, err := httpclient.NewClient(httpParams...)
	if err != nil {
		return nil, werror.Wrap(err, "failed to create http client")
	}

	c := &Client{
		http:       httpClient,
		pagination: b.pagination,
	}
	c.Documents = &DocumentService{client: c}
	c.Signers = &SignerService{client: c}
	c.Attachments = &AttachmentService{client: c}
	c.Groups = &GroupService{client: c}
	c.Members = &MemberService{client: c}
	c.Webhooks = &WebhookService{client: c}
	c.Templates = &TemplateService{client: c}
	c.TemplatePdf = &TemplatePdfService{client: c, Fields: &TemplatePdfFieldService{client: c}}
	c.Users = &UserService{client: c}
	c.Invited = &InvitedService{client: c}
	c.Status = &StatusService{client: c}
	c.Pdf = &PdfService{client: c}
	return c, nil
}

// LoadEnv reads environment variables from the given .env files, or from ".env" in the working
// directory when none are given. Variables already set in the environment are not overwritten.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return werror.Wrap(err, "failed to load environment file", werror.SafeParam("files", files))
	}
	return nil
}

// WithAPIKey sets the key sent in the Authorization header.
func WithAPIKey(apiKey string) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		if apiKey == "" {
			return werror.Error("api key must not be empty")
		}
		b.apiKey = refreshable.NewString(refreshable.NewDefaultRefreshable(apiKey))
		return nil
	})
}

// WithRefreshableAPIKey reads the Authorization header from apiKey on every request, so the key
// can be rotated without rebuilding the client.
func WithRefreshableAPIKey(apiKey refreshable.String) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.apiKey = apiKey
		return nil
	})
}

// WithBaseURL overrides the API root, for example to target a different region.
func WithBaseURL(baseURL string) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.baseURL = baseURL
		return nil
	})
}

// WithMaxRetries sets how many times a failed request is retried. Requests carrying a one-shot
// upload stream are never retried.
func WithMaxRetries(maxRetries int) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		if maxRetries < 0 {
			return werror.Error("max retries must be non-negative", werror.SafeParam("maxRetries", maxRetries))
		}
		b.maxRetries = &maxRetries
		return nil
	})
}

// WithPaginationStrategy selects how OffsetPage decides whether another page exists.
func WithPaginationStrategy(strategy PaginationStrategy) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.pagination = strategy
		return nil
	})
}

// WithHTTPClientParams passes params to the underlying httpclient. They are applied after the
// params derived from this package's options, so they take precedence.
func WithHTTPClientParams(params ...httpclient.ClientParam) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.httpParams = append(b.httpParams, params...)
		return nil
	})
}
