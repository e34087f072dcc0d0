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

	"github.com/legalesign/legalesign-go/legalesign-contract/conversion"
)

// SignerStatus is the progress of one signer through a document.
type SignerStatus int64

const (
	SignerStatusUnsent                    SignerStatus = 4
	SignerStatusScheduled                 SignerStatus = 5
	SignerStatusSent                      SignerStatus = 10
	SignerStatusEmailOpened               SignerStatus = 15
	SignerStatusVisited                   SignerStatus = 20
	SignerStatusFieldsComplete            SignerStatus = 30
	SignerStatusFieldsCompleteExSignature SignerStatus = 35
	SignerStatusWaitingForWitness         SignerStatus = 39
	SignerStatusSigned                    SignerStatus = 40
	SignerStatusDownloaded                SignerStatus = 50
	SignerStatusRejected                  SignerStatus = 60
)

var signerStatuses = conversion.EnumOf([]SignerStatus{
	SignerStatusUnsent,
	SignerStatusScheduled,
	SignerStatusSent,
	SignerStatusEmailOpened,
	SignerStatusVisited,
	SignerStatusFieldsComplete,
	SignerStatusFieldsCompleteExSignature,
	SignerStatusWaitingForWitness,
	SignerStatusSigned,
	SignerStatusDownloaded,
	SignerStatusRejected,
})

// Signer is a recipient of a sent document.
type Signer struct {
	conversion.Extras
	Document    conversion.Field[string]
	Email       conversion.Field[string]
	FirstName   conversion.Field[string]
	HasFields   conversion.Field[bool]
	LastName    conversion.Field[string]
	Order       conversion.Field[int64]
	ResourceURI conversion.Field[string]
	Status      conversion.Field[SignerStatus]
}

func (*Signer) Fields() []conversion.FieldSpec[Signer] {
	return []conversion.FieldSpec[Signer]{
		conversion.Prop("document", func(s *Signer) *conversion.Field[string] { return &s.Document }, conversion.String),
		conversion.Prop("email", func(s *Signer) *conversion.Field[string] { return &s.Email }, conversion.String),
		conversion.Prop("firstName", func(s *Signer) *conversion.Field[string] { return &s.FirstName }, conversion.String,
			conversion.WireKey("first_name")),
		conversion.Prop("hasFields", func(s *Signer) *conversion.Field[bool] { return &s.HasFields }, conversion.Bool,
			conversion.WireKey("has_fields")),
		conversion.Prop("lastName", func(s *Signer) *conversion.Field[string] { return &s.LastName }, conversion.String,
			conversion.WireKey("last_name")),
		conversion.Prop("order", func(s *Signer) *conversion.Field[int64] { return &s.Order }, conversion.Int),
		conversion.Prop("resourceURI", func(s *Signer) *conversion.Field[string] { return &s.ResourceURI }, conversion.String,
			conversion.WireKey("resource_uri")),
		conversion.Prop("status", func(s *Signer) *conversion.Field[SignerStatus] { return &s.Status }, signerStatuses),
	}
}

// SignerField is a form field as completed by a signer.
type SignerField struct {
	conversion.Extras
	Fieldorder conversion.Field[int64]
	Label      conversion.Field[string]
	LabelExtra conversion.Field[string]
	State      conversion.Field[bool]
	Value      conversion.Field[FieldValue]
}

func (*SignerField) Fields() []conversion.FieldSpec[SignerField] {
	return []conversion.FieldSpec[SignerField]{
		conversion.Prop("fieldorder", func(f *SignerField) *conversion.Field[int64] { return &f.Fieldorder }, conversion.Int,
			conversion.Nullable()),
		conversion.Prop("label", func(f *SignerField) *conversion.Field[string] { return &f.Label }, conversion.String),
		conversion.Prop("labelExtra", func(f *SignerField) *conversion.Field[string] { return &f.LabelExtra }, conversion.String,
			conversion.WireKey("label_extra")),
		conversion.Prop("state", func(f *SignerField) *conversion.Field[bool] { return &f.State }, conversion.Bool),
		conversion.Prop("value", func(f *SignerField) *conversion.Field[FieldValue] { return &f.Value }, fieldValues,
			conversion.Nullable()),
	}
}

// SignerSendReminderParams customizes a reminder email. HTML in Text is stripped.
type SignerSendReminderParams struct {
	Text conversion.Field[string]
}

func (*SignerSendReminderParams) Fields() []conversion.FieldSpec[SignerSendReminderParams] {
	return []conversion.FieldSpec[SignerSendReminderParams]{
		conversion.Prop("text", func(p *SignerSendReminderParams) *conversion.Field[string] { return &p.Text }, conversion.String),
	}
}

// SignerService reads signers and nudges them.
type SignerService struct {
	client *Client
}

func signerPath(signerID, suffix string) string {
	return "signer/" + url.PathEscape(signerID) + "/" + suffix
}

// Get returns a signer by ID.
func (s *SignerService) Get(ctx context.Context, signerID string, opts ...RequestOption) (Signer, error) {
	req := Request{Method: http.MethodGet, Path: signerPath(signerID, ""), Endpoint: "getSigner"}
	return execute[Signer](ctx, s.client, req, newRequestOptions(opts), conversion.ModelOf[Signer]())
}

// GetFields returns the signer's form fields.
func (s *SignerService) GetFields(ctx context.Context, signerID string, opts ...RequestOption) ([]SignerField, error) {
	req := Request{Method: http.MethodGet, Path: signerPath(signerID, "fields1/"), Endpoint: "getSignerFields"}
	return execute[[]SignerField](ctx, s.client, req, newRequestOptions(opts),
		conversion.ListOf[SignerField](conversion.ModelOf[SignerField]()))
}

// SendReminder emails the signer a reminder.
func (s *SignerService) SendReminder(ctx context.Context, signerID string, params SignerSendReminderParams, opts ...RequestOption) error {
	body, options, err := parseRequest(ctx, conversion.FromValue(params), opts)
	if err != nil {
		return err
	}
	req := Request{Method: http.MethodPost, Path: signerPath(signerID, "send-reminder/"), Body: body, Endpoint: "sendSignerReminder"}
	return s.client.executeNoContent(ctx, req, options)
}

// GetAccessLink returns a one-use link that opens the signing page as this signer.
func (s *SignerService) GetAccessLink(ctx context.Context, signerID string, opts ...RequestOption) (string, error) {
	req := Request{Method: http.MethodGet, Path: signerPath(signerID, "new-link/"), Endpoint: "getSignerAccessLink"}
	return s.client.location(ctx, req, newRequestOptions(opts))
}
