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

// Permission is what a member may do within a group.
type Permission int64

const (
	PermissionAdministrator         Permission = 1
	PermissionTeamDocsCreateAndSend Permission = 2
	PermissionTeamDocsSendOnly      Permission = 3
	PermissionOwnSentDocsSendOnly   Permission = 4
	PermissionOwnDocsCreateAndSend  Permission = 5
	PermissionTeamDocsReadOnly      Permission = 6
)

var permissions = conversion.EnumOf([]Permission{
	PermissionAdministrator,
	PermissionTeamDocsCreateAndSend,
	PermissionTeamDocsSendOnly,
	PermissionOwnSentDocsSendOnly,
	PermissionOwnDocsCreateAndSend,
	PermissionTeamDocsReadOnly,
})

// MemberCreateParams adds a user to a group, inviting them if they have no account.
type MemberCreateParams struct {
	Email      string
	Group      string
	DoEmail    conversion.Field[bool]
	Permission conversion.Field[Permission]
}

func (*MemberCreateParams) Fields() []conversion.FieldSpec[MemberCreateParams] {
	type p = MemberCreateParams
	return []conversion.FieldSpec[MemberCreateParams]{
		conversion.Req("email", func(x *p) *string { return &x.Email }, conversion.String),
		conversion.Req("group", func(x *p) *string { return &x.Group }, conversion.String),
		conversion.Prop("doEmail", func(x *p) *conversion.Field[bool] { return &x.DoEmail }, conversion.Bool,
			conversion.WireKey("do_email")),
		conversion.Prop("permission", func(x *p) *conversion.Field[Permission] { return &x.Permission }, permissions),
	}
}

// Member is a user's membership of a group.
type Member struct {
	conversion.Extras
	Created     conversion.Field[time.Time]
	Group       conversion.Field[string]
	Modified    conversion.Field[time.Time]
	Permission  conversion.Field[Permission]
	ResourceURI conversion.Field[string]
	User        conversion.Field[string]
}

func (*Member) Fields() []conversion.FieldSpec[Member] {
	type m = Member
	return []conversion.FieldSpec[Member]{
		conversion.Prop("created", func(x *m) *conversion.Field[time.Time] { return &x.Created }, conversion.DateTime),
		conversion.Prop("group", func(x *m) *conversion.Field[string] { return &x.Group }, conversion.String),
		conversion.Prop("modified", func(x *m) *conversion.Field[time.Time] { return &x.Modified }, conversion.DateTime),
		conversion.Prop("permission", func(x *m) *conversion.Field[Permission] { return &x.Permission }, permissions),
		conversion.Prop("resourceURI", func(x *m) *conversion.Field[string] { return &x.ResourceURI }, conversion.String,
			conversion.WireKey("resource_uri")),
		conversion.Prop("user", func(x *m) *conversion.Field[string] { return &x.User }, conversion.String),
	}
}

// MemberService manages group membership.
type MemberService struct {
	client *Client
}

// Create adds a member to a group.
func (s *MemberService) Create(ctx context.Context, params MemberCreateParams, opts ...RequestOption) error {
	body, options, err := parseRequest(ctx, conversion.FromValue(params), opts)
	if err != nil {
		return err
	}
	req := Request{Method: http.MethodPost, Path: "member/", Body: body, Endpoint: "createMember"}
	return s.client.executeNoContent(ctx, req, options)
}

// Get returns a membership by ID.
func (s *MemberService) Get(ctx context.Context, memberID string, opts ...RequestOption) (Member, error) {
	req := Request{Method: http.MethodGet, Path: "member/" + url.PathEscape(memberID) + "/", Endpoint: "getMember"}
	return execute[Member](ctx, s.client, req, newRequestOptions(opts), conversion.ModelOf[Member]())
}

// List returns the first page of memberships.
func (s *MemberService) List(ctx context.Context, params ListParams, opts ...RequestOption) (*OffsetPage[Member], error) {
	query, options, err := parseQuery(ctx, conversion.FromValue(params), opts)
	if err != nil {
		return nil, err
	}
	req := Request{Method: http.MethodGet, Path: "member/", Query: query, Endpoint: "listMembers"}
	return listPage[Member](ctx, s.client, req, options, conversion.ModelOf[Member]())
}

// Delete removes a member from its group.
func (s *MemberService) Delete(ctx context.Context, memberID string, opts ...RequestOption) error {
	req := Request{Method: http.MethodDelete, Path: "member/" + url.PathEscape(memberID) + "/", Endpoint: "deleteMember"}
	return s.client.executeNoContent(ctx, req, newRequestOptions(opts))
}
