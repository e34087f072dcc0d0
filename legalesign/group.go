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

// GroupCreateParams creates a group.
type GroupCreateParams struct {
	Name        string
	XframeAllow conversion.Field[bool]
}

func (*GroupCreateParams) Fields() []conversion.FieldSpec[GroupCreateParams] {
	return []conversion.FieldSpec[GroupCreateParams]{
		conversion.Req("name", func(p *GroupCreateParams) *string { return &p.Name }, conversion.String),
		conversion.Prop("xframeAllow", func(p *GroupCreateParams) *conversion.Field[bool] { return &p.XframeAllow }, conversion.Bool,
			conversion.WireKey("xframe_allow")),
	}
}

// GroupUpdateParams changes a group. Only set fields are sent.
type GroupUpdateParams struct {
	PublicName conversion.Field[string]
}

func (*GroupUpdateParams) Fields() []conversion.FieldSpec[GroupUpdateParams] {
	return []conversion.FieldSpec[GroupUpdateParams]{
		conversion.Prop("publicName", func(p *GroupUpdateParams) *conversion.Field[string] { return &p.PublicName }, conversion.String,
			conversion.WireKey("public_name")),
	}
}

// Group is a team that owns documents, templates and members.
type Group struct {
	conversion.Extras
	Created            conversion.Field[time.Time]
	DefaultEmail       conversion.Field[string]
	DefaultExtraemail  conversion.Field[string]
	Footer             conversion.Field[string]
	FooterHeight       conversion.Field[int64]
	Header             conversion.Field[string]
	IsActive           conversion.Field[bool]
	Members            conversion.Field[[]string]
	Modified           conversion.Field[time.Time]
	Name               conversion.Field[string]
	Pagesize           conversion.Field[int64]
	PublicName         conversion.Field[string]
	ResourceURI        conversion.Field[string]
	Slug               conversion.Field[string]
	User               conversion.Field[string]
	XframeAllow        conversion.Field[bool]
	XframeAllowPdfEdit conversion.Field[bool]
}

func (*Group) Fields() []conversion.FieldSpec[Group] {
	type g = Group
	return []conversion.FieldSpec[Group]{
		conversion.Prop("created", func(x *g) *conversion.Field[time.Time] { return &x.Created }, conversion.DateTime),
		conversion.Prop("defaultEmail", func(x *g) *conversion.Field[string] { return &x.DefaultEmail }, conversion.String,
			conversion.WireKey("default_email")),
		conversion.Prop("defaultExtraemail", func(x *g) *conversion.Field[string] { return &x.DefaultExtraemail }, conversion.String,
			conversion.WireKey("default_extraemail")),
		conversion.Prop("footer", func(x *g) *conversion.Field[string] { return &x.Footer }, conversion.String),
		conversion.Prop("footerHeight", func(x *g) *conversion.Field[int64] { return &x.FooterHeight }, conversion.Int,
			conversion.WireKey("footer_height")),
		conversion.Prop("header", func(x *g) *conversion.Field[string] { return &x.Header }, conversion.String),
		conversion.Prop("isActive", func(x *g) *conversion.Field[bool] { return &x.IsActive }, conversion.Bool,
			conversion.WireKey("is_active")),
		conversion.Prop("members", func(x *g) *conversion.Field[[]string] { return &x.Members },
			conversion.ListOf[string](conversion.String)),
		conversion.Prop("modified", func(x *g) *conversion.Field[time.Time] { return &x.Modified }, conversion.DateTime),
		conversion.Prop("name", func(x *g) *conversion.Field[string] { return &x.Name }, conversion.String),
		conversion.Prop("pagesize", func(x *g) *conversion.Field[int64] { return &x.Pagesize }, conversion.Int),
		conversion.Prop("publicName", func(x *g) *conversion.Field[string] { return &x.PublicName }, conversion.String,
			conversion.WireKey("public_name")),
		conversion.Prop("resourceURI", func(x *g) *conversion.Field[string] { return &x.ResourceURI }, conversion.String,
			conversion.WireKey("resource_uri")),
		conversion.Prop("slug", func(x *g) *conversion.Field[string] { return &x.Slug }, conversion.String),
		conversion.Prop("user", func(x *g) *conversion.Field[string] { return &x.User }, conversion.String),
		conversion.Prop("xframeAllow", func(x *g) *conversion.Field[bool] { return &x.XframeAllow }, conversion.Bool,
			conversion.WireKey("xframe_allow")),
		conversion.Prop("xframeAllowPdfEdit", func(x *g) *conversion.Field[bool] { return &x.XframeAllowPdfEdit }, conversion.Bool,
			conversion.WireKey("xframe_allow_pdf_edit")),
	}
}

// GroupService manages groups.
type GroupService struct {
	client *Client
}

// Create creates a group.
func (s *GroupService) Create(ctx context.Context, params GroupCreateParams, opts ...RequestOption) error {
	body, options, err := parseRequest(ctx, conversion.FromValue(params), opts)
	if err != nil {
		return err
	}
	req := Request{Method: http.MethodPost, Path: "group/", Body: body, Endpoint: "createGroup"}
	return s.client.executeNoContent(ctx, req, options)
}

// Get returns a group by ID.
func (s *GroupService) Get(ctx context.Context, groupID string, opts ...RequestOption) (Group, error) {
	req := Request{Method: http.MethodGet, Path: "group/" + url.PathEscape(groupID) + "/", Endpoint: "getGroup"}
	return execute[Group](ctx, s.client, req, newRequestOptions(opts), conversion.ModelOf[Group]())
}

// Update changes the set fields of a group.
func (s *GroupService) Update(ctx context.Context, groupID string, params GroupUpdateParams, opts ...RequestOption) error {
	body, options, err := parseRequest(ctx, conversion.FromValue(params), opts)
	if err != nil {
		return err
	}
	req := Request{Method: http.MethodPatch, Path: "group/" + url.PathEscape(groupID) + "/", Body: body, Endpoint: "updateGroup"}
	return s.client.executeNoContent(ctx, req, options)
}

// List returns the first page of groups. ListParams.Group is ignored by the API.
func (s *GroupService) List(ctx context.Context, params ListParams, opts ...RequestOption) (*OffsetPage[Group], error) {
	params.Group = conversion.Absent[string]()
	query, options, err := parseQuery(ctx, conversion.FromValue(params), opts)
	if err != nil {
		return nil, err
	}
	req := Request{Method: http.MethodGet, Path: "group/", Query: query, Endpoint: "listGroups"}
	return listPage[Group](ctx, s.client, req, options, conversion.ModelOf[Group]())
}
