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

// UserPermission is the role given to a new user.
type UserPermission string

const (
	UserPermissionAdmin              UserPermission = "1"
	UserPermissionTeamCreateAndSend  UserPermission = "2"
	UserPermissionTeamReadOnly       UserPermission = "3"
	UserPermissionTeamSendOnly       UserPermission = "4"
	UserPermissionIndividualSendOnly UserPermission = "5"
	UserPermissionIndividualCreate   UserPermission = "6"
)

var userPermissions = conversion.EnumOf([]UserPermission{
	UserPermissionAdmin,
	UserPermissionTeamCreateAndSend,
	UserPermissionTeamReadOnly,
	UserPermissionTeamSendOnly,
	UserPermissionIndividualSendOnly,
	UserPermissionIndividualCreate,
})

// UserCreateParams creates a user. Groups is a comma separated list of group IDs or resource
// URIs. When Password is unset the user is sent a verification email.
type UserCreateParams struct {
	Email      string
	FirstName  string
	LastName   string
	Groups     conversion.Field[string]
	Password   conversion.Field[string]
	Permission conversion.Field[UserPermission]
	Timezone   conversion.Field[string]
}

func (*UserCreateParams) Fields() []conversion.FieldSpec[UserCreateParams] {
	type p = UserCreateParams
	return []conversion.FieldSpec[UserCreateParams]{
		conversion.Req("email", func(x *p) *string { return &x.Email }, conversion.String),
		conversion.Req("firstName", func(x *p) *string { return &x.FirstName }, conversion.String,
			conversion.WireKey("first_name")),
		conversion.Req("lastName", func(x *p) *string { return &x.LastName }, conversion.String,
			conversion.WireKey("last_name")),
		conversion.Prop("groups", func(x *p) *conversion.Field[string] { return &x.Groups }, conversion.String),
		conversion.Prop("password", func(x *p) *conversion.Field[string] { return &x.Password }, conversion.String),
		conversion.Prop("permission", func(x *p) *conversion.Field[UserPermission] { return &x.Permission }, userPermissions),
		conversion.Prop("timezone", func(x *p) *conversion.Field[string] { return &x.Timezone }, conversion.String),
	}
}

// UserUpdateParams changes a user's name. Only set fields are sent.
type UserUpdateParams struct {
	FirstName conversion.Field[string]
	LastName  conversion.Field[string]
}

func (*UserUpdateParams) Fields() []conversion.FieldSpec[UserUpdateParams] {
	type p = UserUpdateParams
	return []conversion.FieldSpec[UserUpdateParams]{
		conversion.Prop("firstName", func(x *p) *conversion.Field[string] { return &x.FirstName }, conversion.String,
			conversion.WireKey("first_name")),
		conversion.Prop("lastName", func(x *p) *conversion.Field[string] { return &x.LastName }, conversion.String,
			conversion.WireKey("last_name")),
	}
}

// User is an account in the caller's organisation.
type User struct {
	conversion.Extras
	DateJoined  conversion.Field[time.Time]
	Email       conversion.Field[string]
	FirstName   conversion.Field[string]
	Groups      conversion.Field[[]string]
	LastLogin   conversion.Field[time.Time]
	LastName    conversion.Field[string]
	ResourceURI conversion.Field[string]
	Timezone    conversion.Field[string]
	Username    conversion.Field[string]
}

func (*User) Fields() []conversion.FieldSpec[User] {
	type u = User
	return []conversion.FieldSpec[User]{
		conversion.Prop("dateJoined", func(x *u) *conversion.Field[time.Time] { return &x.DateJoined }, conversion.DateTime,
			conversion.WireKey("date_joined")),
		conversion.Prop("email", func(x *u) *conversion.Field[string] { return &x.Email }, conversion.String),
		conversion.Prop("firstName", func(x *u) *conversion.Field[string] { return &x.FirstName }, conversion.String,
			conversion.WireKey("first_name")),
		conversion.Prop("groups", func(x *u) *conversion.Field[[]string] { return &x.Groups },
			conversion.ListOf[string](conversion.String)),
		conversion.Prop("lastLogin", func(x *u) *conversion.Field[time.Time] { return &x.LastLogin }, conversion.DateTime,
			conversion.WireKey("last_login"), conversion.Nullable()),
		conversion.Prop("lastName", func(x *u) *conversion.Field[string] { return &x.LastName }, conversion.String,
			conversion.WireKey("last_name")),
		conversion.Prop("resourceURI", func(x *u) *conversion.Field[string] { return &x.ResourceURI }, conversion.String,
			conversion.WireKey("resource_uri")),
		conversion.Prop("timezone", func(x *u) *conversion.Field[string] { return &x.Timezone }, conversion.String),
		conversion.Prop("username", func(x *u) *conversion.Field[string] { return &x.Username }, conversion.String),
	}
}

// UserService manages users.
type UserService struct {
	client *Client
}

// Create creates a user.
func (s *UserService) Create(ctx context.Context, params UserCreateParams, opts ...RequestOption) error {
	body, options, err := parseRequest(ctx, conversion.FromValue(params), opts)
	if err != nil {
		return err
	}
	req := Request{Method: http.MethodPost, Path: "user/", Body: body, Endpoint: "createUser"}
	return s.client.executeNoContent(ctx, req, options)
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, userID string, opts ...RequestOption) (User, error) {
	req := Request{Method: http.MethodGet, Path: "user/" + url.PathEscape(userID) + "/", Endpoint: "getUser"}
	return execute[User](ctx, s.client, req, newRequestOptions(opts), conversion.ModelOf[User]())
}

// Update changes the set fields of a user.
func (s *UserService) Update(ctx context.Context, userID string, params UserUpdateParams, opts ...RequestOption) error {
	body, options, err := parseRequest(ctx, conversion.FromValue(params), opts)
	if err != nil {
		return err
	}
	req := Request{Method: http.MethodPatch, Path: "user/" + url.PathEscape(userID) + "/", Body: body, Endpoint: "updateUser"}
	return s.client.executeNoContent(ctx, req, options)
}

// Invitation is a pending invitation for someone to join a group.
type Invitation struct {
	conversion.Extras
	Created     conversion.Field[time.Time]
	Email       conversion.Field[string]
	Group       conversion.Field[string]
	ResourceURI conversion.Field[string]
}

func (*Invitation) Fields() []conversion.FieldSpec[Invitation] {
	type i = Invitation
	return []conversion.FieldSpec[Invitation]{
		conversion.Prop("created", func(x *i) *conversion.Field[time.Time] { return &x.Created }, conversion.DateTime),
		conversion.Prop("email", func(x *i) *conversion.Field[string] { return &x.Email }, conversion.String),
		conversion.Prop("group", func(x *i) *conversion.Field[string] { return &x.Group }, conversion.String),
		conversion.Prop("resourceURI", func(x *i) *conversion.Field[string] { return &x.ResourceURI }, conversion.String,
			conversion.WireKey("resource_uri")),
	}
}

// InvitedService manages invitations that have not been accepted yet.
type InvitedService struct {
	client *Client
}

// List returns the first page of pending invitations.
func (s *InvitedService) List(ctx context.Context, params ListParams, opts ...RequestOption) (*OffsetPage[Invitation], error) {
	query, options, err := parseQuery(ctx, conversion.FromValue(params), opts)
	if err != nil {
		return nil, err
	}
	req := Request{Method: http.MethodGet, Path: "invited/", Query: query, Endpoint: "listInvitations"}
	return listPage[Invitation](ctx, s.client, req, options, conversion.ModelOf[Invitation]())
}

// Delete withdraws an invitation.
func (s *InvitedService) Delete(ctx context.Context, invitedID string, opts ...RequestOption) error {
	req := Request{Method: http.MethodDelete, Path: "invited/" + url.PathEscape(invitedID) + "/", Endpoint: "deleteInvitation"}
	return s.client.executeNoContent(ctx, req, newRequestOptions(opts))
}
