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

package legalesign

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/legalesign/legalesign-go/legalesign-contract/conversion"
)

// TemplateCreateParams creates a text template. LatestText is the template's HTML.
type TemplateCreateParams struct {
	Group      string
	LatestText string
	Title      string
	User       conversion.Field[string]
}

func (*TemplateCreateParams) Fields() []conversion.FieldSpec[TemplateCreateParams] {
	type p = TemplateCreateParams
	return []conversion.FieldSpec[TemplateCreateParams]{
		conversion.Req("group", func(x *p) *string { return &x.Group }, conversion.String),
		conversion.Req("latestText", func(x *p) *string { return &x.LatestText }, conversion.String,
			conversion.WireKey("latest_text")),
		conversion.Req("title", func(x *p) *string { return &x.Title }, conversion.String),
		conversion.Prop("user", func(x *p) *conversion.Field[string] { return &x.User }, conversion.String),
	}
}

// TemplateUpdateParams changes a text template. Only set fields are sent.
type TemplateUpdateParams struct {
	Archive    conversion.Field[bool]
	LatestText conversion.Field[string]
	Title      conversion.Field[string]
}

func (*TemplateUpdateParams) Fields() []conversion.FieldSpec[TemplateUpdateParams] {
	type p = TemplateUpdateParams
	return []conversion.FieldSpec[TemplateUpdateParams]{
		conversion.Prop("archive", func(x *p) *conversion.Field[bool] { return &x.Archive }, conversion.Bool),
		conversion.Prop("latestText", func(x *p) *conversion.Field[string] { return &x.LatestText }, conversion.String,
			conversion.WireKey("latest_text")),
		conversion.Prop("title", func(x *p) *conversion.Field[string] { return &x.Title }, conversion.String),
	}
}

// TemplateListParams filters template listings. Archive takes "true" or "false"; unarchived
// templates are listed when it is unset.
type TemplateListParams struct {
	Archive conversion.Field[string]
	Group   conversion.Field[string]
	Limit   conversion.Field[int64]
	Offset  conversion.Field[int64]
}

func (*TemplateListParams) Fields() []conversion.FieldSpec[TemplateListParams] {
	type p = TemplateListParams
	return []conversion.FieldSpec[TemplateListParams]{
		conversion.Prop("archive", func(x *p) *conversion.Field[string] { return &x.Archive }, conversion.String),
		conversion.Prop("group", func(x *p) *conversion.Field[string] { return &x.Group }, conversion.String),
		conversion.Prop("limit", func(x *p) *conversion.Field[int64] { return &x.Limit }, conversion.Int),
		conversion.Prop("offset", func(x *p) *conversion.Field[int64] { return &x.Offset }, conversion.Int),
	}
}

// Template is a text template. LatestText is only returned by Get.
type Template struct {
	conversion.Extras
	Archive     conversion.Field[bool]
	Created     conversion.Field[time.Time]
	Group       conversion.Field[string]
	HasFields   conversion.Field[bool]
	LatestText  conversion.Field[string]
	Modified    conversion.Field[time.Time]
	ResourceURI conversion.Field[string]
	SigneeCount conversion.Field[int64]
	Title       conversion.Field[string]
	User        conversion.Field[string]
	UUID        conversion.Field[string]
}

func (*Template) Fields() []conversion.FieldSpec[Template] {
	type t = Template
	return []conversion.FieldSpec[Template]{
		conversion.Prop("archive", func(x *t) *conversion.Field[bool] { return &x.Archive }, conversion.Bool),
		conversion.Prop("created", func(x *t) *conversion.Field[time.Time] { return &x.Created }, conversion.DateTime),
		conversion.Prop("group", func(x *t) *conversion.Field[string] { return &x.Group }, conversion.String),
		conversion.Prop("hasFields", func(x *t) *conversion.Field[bool] { return &x.HasFields }, conversion.Bool,
			conversion.WireKey("has_fields")),
		conversion.Prop("latestText", func(x *t) *conversion.Field[string] { return &x.LatestText }, conversion.String,
			conversion.WireKey("latest_text")),
		conversion.Prop("modified", func(x *t) *conversion.Field[time.Time] { return &x.Modified }, conversion.DateTime),
		conversion.Prop("resourceURI", func(x *t) *conversion.Field[string] { return &x.ResourceURI }, conversion.String,
			conversion.WireKey("resource_uri")),
		conversion.Prop("signeeCount", func(x *t) *conversion.Field[int64] { return &x.SigneeCount }, conversion.Int,
			conversion.WireKey("signee_count")),
		conversion.Prop("title", func(x *t) *conversion.Field[string] { return &x.Title }, conversion.String),
		conversion.Prop("user", func(x *t) *conversion.Field[string] { return &x.User }, conversion.String),
		conversion.Prop("uuid", func(x *t) *conversion.Field[string] { return &x.UUID }, conversion.String),
	}
}

// TemplateService manages text templates.
type TemplateService struct {
	client *Client
}

func templatePath(templateID string) string {
	return "template/" + url.PathEscape(templateID) + "/"
}

// Create creates a text template.
func (s *TemplateService) Create(ctx context.Context, params TemplateCreateParams, opts ...RequestOption) error {
	body, options, err := parseRequest(ctx, conversion.FromValue(params), opts)
	if err != nil {
		return err
	}
	req := Request{Method: http.MethodPost, Path: "template/", Body: body, Endpoint: "createTemplate"}
	return s.client.executeNoContent(ctx, req, options)
}

// Get returns a text template by ID.
func (s *TemplateService) Get(ctx context.Context, templateID string, opts ...RequestOption) (Template, error) {
	req := Request{Method: http.MethodGet, Path: templatePath(templateID), Endpoint: "getTemplate"}
	return execute[Template](ctx, s.client, req, newRequestOptions(opts), conversion.ModelOf[Template]())
}

// Update changes the set fields of a text template.
func (s *TemplateService) Update(ctx context.Context, templateID string, params TemplateUpdateParams, opts ...RequestOption) error {
	body, options, err := parseRequest(ctx, conversion.FromValue(params), opts)
	if err != nil {
		return err
	}
	req := Request{Method: http.MethodPatch, Path: templatePath(templateID), Body: body, Endpoint: "updateTemplate"}
	return s.client.executeNoContent(ctx, req, options)
}

// List returns the first page of text templates.
func (s *TemplateService) List(ctx context.Context, params TemplateListParams, opts ...RequestOption) (*OffsetPage[Template], error) {
	query, options, err := parseQuery(ctx, conversion.FromValue(params), opts)
	if err != nil {
		return nil, err
	}
	req := Request{Method: http.MethodGet, Path: "template/", Query: query, Endpoint: "listTemplates"}
	return listPage[Template](ctx, s.client, req, options, conversion.ModelOf[Template]())
}
