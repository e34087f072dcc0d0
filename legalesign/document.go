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
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/legalesign/legalesign-go/legalesign-contract/conversion"
)

// DocumentStatus is the lifecycle state of a document.
type DocumentStatus int64

const (
	DocumentStatusInitial        DocumentStatus = 10
	DocumentStatusFieldsComplete DocumentStatus = 20
	DocumentStatusSigned         DocumentStatus = 30
	DocumentStatusRemoved        DocumentStatus = 40
	DocumentStatusRejected       DocumentStatus = 50
)

var documentStatuses = conversion.EnumOf([]DocumentStatus{
	DocumentStatusInitial,
	DocumentStatusFieldsComplete,
	DocumentStatusSigned,
	DocumentStatusRemoved,
	DocumentStatusRejected,
})

// PdfPasswordType controls whether Legalesign keeps the password of a protected PDF after
// final signing.
type PdfPasswordType int64

const (
	PdfPasswordTypeStored          PdfPasswordType = 1
	PdfPasswordTypeDeleteOnSigning PdfPasswordType = 2
)

var pdfPasswordTypes = conversion.EnumOf([]PdfPasswordType{PdfPasswordTypeStored, PdfPasswordTypeDeleteOnSigning})

// SignerRole marks a signer that witnesses or approves rather than signs.
type SignerRole string

const (
	SignerRoleWitness  SignerRole = "witness"
	SignerRoleApprover SignerRole = "approver"
)

var signerRoles = conversion.EnumOf([]SignerRole{SignerRoleWitness, SignerRoleApprover})

// FieldElementType is the kind of a form field placed on a document.
type FieldElementType string

const (
	FieldElementSignature FieldElementType = "signature"
	FieldElementInitials  FieldElementType = "initials"
	FieldElementAdmin     FieldElementType = "admin"
	FieldElementText      FieldElementType = "text"
)

var fieldElementTypes = conversion.EnumOf([]FieldElementType{
	FieldElementSignature,
	FieldElementInitials,
	FieldElementAdmin,
	FieldElementText,
})

// Reviewer is sent a copy of the signed document.
type Reviewer struct {
	Email       string
	Firstname   conversion.Field[string]
	IncludeLink conversion.Field[bool]
	Lastname    conversion.Field[string]
}

func (*Reviewer) Fields() []conversion.FieldSpec[Reviewer] {
	return []conversion.FieldSpec[Reviewer]{
		conversion.Req("email", func(r *Reviewer) *string { return &r.Email }, conversion.String),
		conversion.Prop("firstname", func(r *Reviewer) *conversion.Field[string] { return &r.Firstname }, conversion.String),
		conversion.Prop("includeLink", func(r *Reviewer) *conversion.Field[bool] { return &r.IncludeLink }, conversion.Bool,
			conversion.WireKey("include_link")),
		conversion.Prop("lastname", func(r *Reviewer) *conversion.Field[string] { return &r.Lastname }, conversion.String),
	}
}

// DocumentSigner is a recipient of a new document.
type DocumentSigner struct {
	Email       string
	Firstname   string
	Lastname    string
	Attachments conversion.Field[[]string]
	Behalfof    conversion.Field[string]
	DecideLater conversion.Field[bool]
	Expires     conversion.Field[time.Time]
	Message     conversion.Field[string]
	Order       conversion.Field[int64]
	Reviewers   conversion.Field[[]Reviewer]
	Role        conversion.Field[SignerRole]
	Sms         conversion.Field[string]
	Subject     conversion.Field[string]
	Timezone    conversion.Field[string]
}

func (*DocumentSigner) Fields() []conversion.FieldSpec[DocumentSigner] {
	return []conversion.FieldSpec[DocumentSigner]{
		conversion.Req("email", func(s *DocumentSigner) *string { return &s.Email }, conversion.String),
		conversion.Req("firstname", func(s *DocumentSigner) *string { return &s.Firstname }, conversion.String),
		conversion.Req("lastname", func(s *DocumentSigner) *string { return &s.Lastname }, conversion.String),
		conversion.Prop("attachments", func(s *DocumentSigner) *conversion.Field[[]string] { return &s.Attachments },
			conversion.ListOf[string](conversion.String)),
		conversion.Prop("behalfof", func(s *DocumentSigner) *conversion.Field[string] { return &s.Behalfof }, conversion.String),
		conversion.Prop("decideLater", func(s *DocumentSigner) *conversion.Field[bool] { return &s.DecideLater }, conversion.Bool,
			conversion.WireKey("decide_later")),
		conversion.Prop("expires", func(s *DocumentSigner) *conversion.Field[time.Time] { return &s.Expires }, conversion.DateTime,
			conversion.Nullable()),
		conversion.Prop("message", func(s *DocumentSigner) *conversion.Field[string] { return &s.Message }, conversion.String),
		conversion.Prop("order", func(s *DocumentSigner) *conversion.Field[int64] { return &s.Order }, conversion.Int),
		conversion.Prop("reviewers", func(s *DocumentSigner) *conversion.Field[[]Reviewer] { return &s.Reviewers },
			conversion.ListOf[Reviewer](conversion.ModelOf[Reviewer]())),
		conversion.Prop("role", func(s *DocumentSigner) *conversion.Field[SignerRole] { return &s.Role }, signerRoles),
		conversion.Prop("sms", func(s *DocumentSigner) *conversion.Field[string] { return &s.Sms }, conversion.String),
		conversion.Prop("subject", func(s *DocumentSigner) *conversion.Field[string] { return &s.Subject }, conversion.String),
		conversion.Prop("timezone", func(s *DocumentSigner) *conversion.Field[string] { return &s.Timezone }, conversion.String),
	}
}

// DocumentCreateParams creates and sends a document. Exactly one of Template, Templatepdf or
// Text identifies the content.
type DocumentCreateParams struct {
	Group                 string
	Name                  string
	Signers               []DocumentSigner
	AppendPdf             conversion.Field[bool]
	AutoArchive           conversion.Field[bool]
	CcEmails              conversion.Field[string]
	ConvertSenderToSigner conversion.Field[bool]
	DoEmail               conversion.Field[bool]
	Footer                conversion.Field[string]
	FooterHeight          conversion.Field[int64]
	Header                conversion.Field[string]
	HeaderHeight          conversion.Field[int64]
	PdfPassword           conversion.Field[string]
	PdfPasswordType       conversion.Field[PdfPasswordType]
	Pdftext               conversion.Field[map[string]string]
	Redirect              conversion.Field[string]
	Reminders             conversion.Field[string]
	ReturnSignerLinks     conversion.Field[bool]
	SignatureType         conversion.Field[int64]
	SignersInOrder        conversion.Field[bool]
	Signertext            conversion.Field[map[string]string]
	StrictFields          conversion.Field[bool]
	Tag                   conversion.Field[string]
	Tag1                  conversion.Field[string]
	Tag2                  conversion.Field[string]
	Template              conversion.Field[string]
	Templatepdf           conversion.Field[string]
	Text                  conversion.Field[string]
	User                  conversion.Field[string]
}

func (*DocumentCreateParams) Fields() []conversion.FieldSpec[DocumentCreateParams] {
	type p = DocumentCreateParams
	return []conversion.FieldSpec[DocumentCreateParams]{
		conversion.Req("group", func(d *p) *string { return &d.Group }, conversion.String),
		conversion.Req("name", func(d *p) *string { return &d.Name }, conversion.String),
		conversion.Req("signers", func(d *p) *[]DocumentSigner { return &d.Signers },
			conversion.ListOf[DocumentSigner](conversion.ModelOf[DocumentSigner]())),
		conversion.Prop("appendPdf", func(d *p) *conversion.Field[bool] { return &d.AppendPdf }, conversion.Bool,
			conversion.WireKey("append_pdf")),
		conversion.Prop("autoArchive", func(d *p) *conversion.Field[bool] { return &d.AutoArchive }, conversion.Bool,
			conversion.WireKey("auto_archive")),
		conversion.Prop("ccEmails", func(d *p) *conversion.Field[string] { return &d.CcEmails }, conversion.String,
			conversion.WireKey("cc_emails")),
		conversion.Prop("convertSenderToSigner", func(d *p) *conversion.Field[bool] { return &d.ConvertSenderToSigner }, conversion.Bool,
			conversion.WireKey("convert_sender_to_signer")),
		conversion.Prop("doEmail", func(d *p) *conversion.Field[bool] { return &d.DoEmail }, conversion.Bool,
			conversion.WireKey("do_email")),
		conversion.Prop("footer", func(d *p) *conversion.Field[string] { return &d.Footer }, conversion.String),
		conversion.Prop("footerHeight", func(d *p) *conversion.Field[int64] { return &d.FooterHeight }, conversion.Int,
			conversion.WireKey("footer_height")),
		conversion.Prop("header", func(d *p) *conversion.Field[string] { return &d.Header }, conversion.String),
		conversion.Prop("headerHeight", func(d *p) *conversion.Field[int64] { return &d.HeaderHeight }, conversion.Int,
			conversion.WireKey("header_height")),
		conversion.Prop("pdfPassword", func(d *p) *conversion.Field[string] { return &d.PdfPassword }, conversion.String,
			conversion.WireKey("pdf_password")),
		conversion.Prop("pdfPasswordType", func(d *p) *conversion.Field[PdfPasswordType] { return &d.PdfPasswordType }, pdfPasswordTypes,
			conversion.WireKey("pdf_password_type")),
		conversion.Prop("pdftext", func(d *p) *conversion.Field[map[string]string] { return &d.Pdftext },
			conversion.MapOf[string](conversion.String)),
		conversion.Prop("redirect", func(d *p) *conversion.Field[string] { return &d.Redirect }, conversion.String),
		conversion.Prop("reminders", func(d *p) *conversion.Field[string] { return &d.Reminders }, conversion.String),
		conversion.Prop("returnSignerLinks", func(d *p) *conversion.Field[bool] { return &d.ReturnSignerLinks }, conversion.Bool,
			conversion.WireKey("return_signer_links")),
		conversion.Prop("signatureType", func(d *p) *conversion.Field[int64] { return &d.SignatureType }, conversion.Int,
			conversion.WireKey("signature_type")),
		conversion.Prop("signersInOrder", func(d *p) *conversion.Field[bool] { return &d.SignersInOrder }, conversion.Bool,
			conversion.WireKey("signers_in_order")),
		conversion.Prop("signertext", func(d *p) *conversion.Field[map[string]string] { return &d.Signertext },
			conversion.MapOf[string](conversion.String)),
		conversion.Prop("strictFields", func(d *p) *conversion.Field[bool] { return &d.StrictFields }, conversion.Bool,
			conversion.WireKey("strict_fields")),
		conversion.Prop("tag", func(d *p) *conversion.Field[string] { return &d.Tag }, conversion.String),
		conversion.Prop("tag1", func(d *p) *conversion.Field[string] { return &d.Tag1 }, conversion.String),
		conversion.Prop("tag2", func(d *p) *conversion.Field[string] { return &d.Tag2 }, conversion.String),
		conversion.Prop("template", func(d *p) *conversion.Field[string] { return &d.Template }, conversion.String),
		conversion.Prop("templatepdf", func(d *p) *conversion.Field[string] { return &d.Templatepdf }, conversion.String),
		conversion.Prop("text", func(d *p) *conversion.Field[string] { return &d.Text }, conversion.String),
		conversion.Prop("user", func(d *p) *conversion.Field[string] { return &d.User }, conversion.String),
	}
}

// DocumentNewResponse is returned by Create. Signer1 is the first signer's signing link when
// ReturnSignerLinks was set.
type DocumentNewResponse struct {
	conversion.Extras
	Signer1 conversion.Field[string]
}

func (*DocumentNewResponse) Fields() []conversion.FieldSpec[DocumentNewResponse] {
	return []conversion.FieldSpec[DocumentNewResponse]{
		conversion.Prop("signer1", func(r *DocumentNewResponse) *conversion.Field[string] { return &r.Signer1 }, conversion.String,
			conversion.WireKey("signer_1")),
	}
}

// Document is the full record of a document.
type Document struct {
	conversion.Extras
	Archived          conversion.Field[bool]
	AutoArchive       conversion.Field[bool]
	CcEmails          conversion.Field[string]
	Created           conversion.Field[time.Time]
	DoEmail           conversion.Field[bool]
	DownloadFinal     conversion.Field[bool]
	Footer            conversion.Field[string]
	FooterHeight      conversion.Field[int64]
	Group             conversion.Field[string]
	HasFields         conversion.Field[bool]
	HashValue         conversion.Field[string]
	Header            conversion.Field[string]
	HeaderHeight      conversion.Field[int64]
	Modified          conversion.Field[time.Time]
	Name              conversion.Field[string]
	Redirect          conversion.Field[string]
	ResourceURI       conversion.Field[string]
	ReturnSignerLinks conversion.Field[bool]
	SignTime          conversion.Field[time.Time]
	SignatureType     conversion.Field[int64]
	Signers           conversion.Field[[]string]
	SignersInOrder    conversion.Field[bool]
	Status            conversion.Field[DocumentStatus]
	Tag               conversion.Field[string]
	Tag1              conversion.Field[string]
	Tag2              conversion.Field[string]
	Template          conversion.Field[string]
	Templatepdf       conversion.Field[string]
	Text              conversion.Field[string]
	User              conversion.Field[string]
	UUID              conversion.Field[string]
}

func (*Document) Fields() []conversion.FieldSpec[Document] {
	type d = Document
	return []conversion.FieldSpec[Document]{
		conversion.Prop("archived", func(x *d) *conversion.Field[bool] { return &x.Archived }, conversion.Bool),
		conversion.Prop("autoArchive", func(x *d) *conversion.Field[bool] { return &x.AutoArchive }, conversion.Bool,
			conversion.WireKey("auto_archive")),
		conversion.Prop("ccEmails", func(x *d) *conversion.Field[string] { return &x.CcEmails }, conversion.String,
			conversion.WireKey("cc_emails")),
		conversion.Prop("created", func(x *d) *conversion.Field[time.Time] { return &x.Created }, conversion.DateTime),
		conversion.Prop("doEmail", func(x *d) *conversion.Field[bool] { return &x.DoEmail }, conversion.Bool,
			conversion.WireKey("do_email")),
		conversion.Prop("downloadFinal", func(x *d) *conversion.Field[bool] { return &x.DownloadFinal }, conversion.Bool,
			conversion.WireKey("download_final")),
		conversion.Prop("footer", func(x *d) *conversion.Field[string] { return &x.Footer }, conversion.String),
		conversion.Prop("footerHeight", func(x *d) *conversion.Field[int64] { return &x.FooterHeight }, conversion.Int,
			conversion.WireKey("footer_height")),
		conversion.Prop("group", func(x *d) *conversion.Field[string] { return &x.Group }, conversion.String),
		conversion.Prop("hasFields", func(x *d) *conversion.Field[bool] { return &x.HasFields }, conversion.Bool,
			conversion.WireKey("has_fields")),
		conversion.Prop("hashValue", func(x *d) *conversion.Field[string] { return &x.HashValue }, conversion.String,
			conversion.WireKey("hash_value")),
		conversion.Prop("header", func(x *d) *conversion.Field[string] { return &x.Header }, conversion.String),
		conversion.Prop("headerHeight", func(x *d) *conversion.Field[int64] { return &x.HeaderHeight }, conversion.Int,
			conversion.WireKey("header_height")),
		conversion.Prop("modified", func(x *d) *conversion.Field[time.Time] { return &x.Modified }, conversion.DateTime),
		conversion.Prop("name", func(x *d) *conversion.Field[string] { return &x.Name }, conversion.String),
		conversion.Prop("redirect", func(x *d) *conversion.Field[string] { return &x.Redirect }, conversion.String),
		conversion.Prop("resourceURI", func(x *d) *conversion.Field[string] { return &x.ResourceURI }, conversion.String,
			conversion.WireKey("resource_uri")),
		conversion.Prop("returnSignerLinks", func(x *d) *conversion.Field[bool] { return &x.ReturnSignerLinks }, conversion.Bool,
			conversion.WireKey("return_signer_links")),
		conversion.Prop("signTime", func(x *d) *conversion.Field[time.Time] { return &x.SignTime }, conversion.DateTime,
			conversion.WireKey("sign_time"), conversion.Nullable()),
		conversion.Prop("signatureType", func(x *d) *conversion.Field[int64] { return &x.SignatureType }, conversion.Int,
			conversion.WireKey("signature_type")),
		conversion.Prop("signers", func(x *d) *conversion.Field[[]string] { return &x.Signers },
			conversion.ListOf[string](conversion.String)),
		conversion.Prop("signersInOrder", func(x *d) *conversion.Field[bool] { return &x.SignersInOrder }, conversion.Bool,
			conversion.WireKey("signers_in_order")),
		conversion.Prop("status", func(x *d) *conversion.Field[DocumentStatus] { return &x.Status }, documentStatuses),
		conversion.Prop("tag", func(x *d) *conversion.Field[string] { return &x.Tag }, conversion.String),
		conversion.Prop("tag1", func(x *d) *conversion.Field[string] { return &x.Tag1 }, conversion.String),
		conversion.Prop("tag2", func(x *d) *conversion.Field[string] { return &x.Tag2 }, conversion.String),
		conversion.Prop("template", func(x *d) *conversion.Field[string] { return &x.Template }, conversion.String,
			conversion.Nullable()),
		conversion.Prop("templatepdf", func(x *d) *conversion.Field[string] { return &x.Templatepdf }, conversion.String,
			conversion.Nullable()),
		conversion.Prop("text", func(x *d) *conversion.Field[string] { return &x.Text }, conversion.String,
			conversion.Nullable()),
		conversion.Prop("user", func(x *d) *conversion.Field[string] { return &x.User }, conversion.String),
		conversion.Prop("uuid", func(x *d) *conversion.Field[string] { return &x.UUID }, conversion.String),
	}
}

// DocumentSummary is a document as it appears in listings. Each entry of Signers is a
// [name, email, status] triple.
type DocumentSummary struct {
	conversion.Extras
	Archived          conversion.Field[bool]
	AutoArchive       conversion.Field[bool]
	CcEmails          conversion.Field[string]
	Created           conversion.Field[time.Time]
	DoEmail           conversion.Field[bool]
	DownloadFinal     conversion.Field[bool]
	Group             conversion.Field[string]
	Modified          conversion.Field[time.Time]
	Name              conversion.Field[string]
	Pdftext           conversion.Field[string]
	Redirect          conversion.Field[string]
	ResourceURI       conversion.Field[string]
	ReturnSignerLinks conversion.Field[bool]
	Signers           conversion.Field[[][]string]
	SignersInOrder    conversion.Field[bool]
	Status            conversion.Field[DocumentStatus]
	Tag               conversion.Field[string]
	Tag1              conversion.Field[string]
	Tag2              conversion.Field[string]
	Template          conversion.Field[string]
	Templatepdf       conversion.Field[string]
	Text              conversion.Field[string]
	User              conversion.Field[string]
	UUID              conversion.Field[string]
}

func (*DocumentSummary) Fields() []conversion.FieldSpec[DocumentSummary] {
	type d = DocumentSummary
	return []conversion.FieldSpec[DocumentSummary]{
		conversion.Prop("archived", func(x *d) *conversion.Field[bool] { return &x.Archived }, conversion.Bool),
		conversion.Prop("autoArchive", func(x *d) *conversion.Field[bool] { return &x.AutoArchive }, conversion.Bool,
			conversion.WireKey("auto_archive")),
		conversion.Prop("ccEmails", func(x *d) *conversion.Field[string] { return &x.CcEmails }, conversion.String,
			conversion.WireKey("cc_emails")),
		conversion.Prop("created", func(x *d) *conversion.Field[time.Time] { return &x.Created }, conversion.DateTime),
		conversion.Prop("doEmail", func(x *d) *conversion.Field[bool] { return &x.DoEmail }, conversion.Bool,
			conversion.WireKey("do_email")),
		conversion.Prop("downloadFinal", func(x *d) *conversion.Field[bool] { return &x.DownloadFinal }, conversion.Bool,
			conversion.WireKey("download_final")),
		conversion.Prop("group", func(x *d) *conversion.Field[string] { return &x.Group }, conversion.String),
		conversion.Prop("modified", func(x *d) *conversion.Field[time.Time] { return &x.Modified }, conversion.DateTime),
		conversion.Prop("name", func(x *d) *conversion.Field[string] { return &x.Name }, conversion.String),
		conversion.Prop("pdftext", func(x *d) *conversion.Field[string] { return &x.Pdftext }, conversion.String),
		conversion.Prop("redirect", func(x *d) *conversion.Field[string] { return &x.Redirect }, conversion.String),
		conversion.Prop("resourceURI", func(x *d) *conversion.Field[string] { return &x.ResourceURI }, conversion.String,
			conversion.WireKey("resource_uri")),
		conversion.Prop("returnSignerLinks", func(x *d) *conversion.Field[bool] { return &x.ReturnSignerLinks }, conversion.Bool,
			conversion.WireKey("return_signer_links")),
		conversion.Prop("signers", func(x *d) *conversion.Field[[][]string] { return &x.Signers },
			conversion.ListOf[[]string](conversion.ListOf[string](conversion.String))),
		conversion.Prop("signersInOrder", func(x *d) *conversion.Field[bool] { return &x.SignersInOrder }, conversion.Bool,
			conversion.WireKey("signers_in_order")),
		conversion.Prop("status", func(x *d) *conversion.Field[DocumentStatus] { return &x.Status }, documentStatuses),
		conversion.Prop("tag", func(x *d) *conversion.Field[string] { return &x.Tag }, conversion.String),
		conversion.Prop("tag1", func(x *d) *conversion.Field[string] { return &x.Tag1 }, conversion.String),
		conversion.Prop("tag2", func(x *d) *conversion.Field[string] { return &x.Tag2 }, conversion.String),
		conversion.Prop("template", func(x *d) *conversion.Field[string] { return &x.Template }, conversion.String,
			conversion.Nullable()),
		conversion.Prop("templatepdf", func(x *d) *conversion.Field[string] { return &x.Templatepdf }, conversion.String,
			conversion.Nullable()),
		conversion.Prop("text", func(x *d) *conversion.Field[string] { return &x.Text }, conversion.String,
			conversion.Nullable()),
		conversion.Prop("user", func(x *d) *conversion.Field[string] { return &x.User }, conversion.String),
		conversion.Prop("uuid", func(x *d) *conversion.Field[string] { return &x.UUID }, conversion.String),
	}
}

// DocumentListParams filters a document listing. Set Offset, even to zero, to page through
// results with OffsetPage.NextPage.
type DocumentListParams struct {
	Group      string
	Archived   conversion.Field[string]
	CreatedGt  conversion.Field[time.Time]
	Email      conversion.Field[string]
	Limit      conversion.Field[int64]
	ModifiedGt conversion.Field[time.Time]
	Nosigners  conversion.Field[string]
	Offset     conversion.Field[int64]
	Status     conversion.Field[DocumentStatus]
}

func (*DocumentListParams) Fields() []conversion.FieldSpec[DocumentListParams] {
	type p = DocumentListParams
	return []conversion.FieldSpec[DocumentListParams]{
		conversion.Req("group", func(x *p) *string { return &x.Group }, conversion.String),
		conversion.Prop("archived", func(x *p) *conversion.Field[string] { return &x.Archived }, conversion.String),
		conversion.Prop("createdGt", func(x *p) *conversion.Field[time.Time] { return &x.CreatedGt }, conversion.DateTime,
			conversion.WireKey("created_gt")),
		conversion.Prop("email", func(x *p) *conversion.Field[string] { return &x.Email }, conversion.String),
		conversion.Prop("limit", func(x *p) *conversion.Field[int64] { return &x.Limit }, conversion.Int),
		conversion.Prop("modifiedGt", func(x *p) *conversion.Field[time.Time] { return &x.ModifiedGt }, conversion.DateTime,
			conversion.WireKey("modified_gt")),
		conversion.Prop("nosigners", func(x *p) *conversion.Field[string] { return &x.Nosigners }, conversion.String),
		conversion.Prop("offset", func(x *p) *conversion.Field[int64] { return &x.Offset }, conversion.Int),
		conversion.Prop("status", func(x *p) *conversion.Field[DocumentStatus] { return &x.Status }, documentStatuses),
	}
}

// DocumentField is a form field on a document. Value holds an int64 or a string depending on
// the element type.
type DocumentField struct {
	conversion.Extras
	ElementType conversion.Field[FieldElementType]
	Fieldorder  conversion.Field[int64]
	Label       conversion.Field[string]
	LabelExtra  conversion.Field[string]
	Signer      conversion.Field[int64]
	State       conversion.Field[bool]
	Validation  conversion.Field[int64]
	Value       conversion.Field[FieldValue]
}

func (*DocumentField) Fields() []conversion.FieldSpec[DocumentField] {
	type f = DocumentField
	return []conversion.FieldSpec[DocumentField]{
		conversion.Prop("elementType", func(x *f) *conversion.Field[FieldElementType] { return &x.ElementType }, fieldElementTypes,
			conversion.WireKey("element_type")),
		conversion.Prop("fieldorder", func(x *f) *conversion.Field[int64] { return &x.Fieldorder }, conversion.Int,
			conversion.Nullable()),
		conversion.Prop("label", func(x *f) *conversion.Field[string] { return &x.Label }, conversion.String),
		conversion.Prop("labelExtra", func(x *f) *conversion.Field[string] { return &x.LabelExtra }, conversion.String,
			conversion.WireKey("label_extra"), conversion.Nullable()),
		conversion.Prop("signer", func(x *f) *conversion.Field[int64] { return &x.Signer }, conversion.Int),
		conversion.Prop("state", func(x *f) *conversion.Field[bool] { return &x.State }, conversion.Bool),
		conversion.Prop("validation", func(x *f) *conversion.Field[int64] { return &x.Validation }, conversion.Int,
			conversion.Nullable()),
		conversion.Prop("value", func(x *f) *conversion.Field[FieldValue] { return &x.Value }, fieldValues,
			conversion.Nullable()),
	}
}

// DocumentPreviewParams describes a text document to preview before it is sent.
type DocumentPreviewParams struct {
	Group       conversion.Field[string]
	SigneeCount conversion.Field[int64]
	Text        conversion.Field[string]
	Title       conversion.Field[string]
}

func (*DocumentPreviewParams) Fields() []conversion.FieldSpec[DocumentPreviewParams] {
	type p = DocumentPreviewParams
	return []conversion.FieldSpec[DocumentPreviewParams]{
		conversion.Prop("group", func(x *p) *conversion.Field[string] { return &x.Group }, conversion.String),
		conversion.Prop("signeeCount", func(x *p) *conversion.Field[int64] { return &x.SigneeCount }, conversion.Int,
			conversion.WireKey("signee_count")),
		conversion.Prop("text", func(x *p) *conversion.Field[string] { return &x.Text }, conversion.String),
		conversion.Prop("title", func(x *p) *conversion.Field[string] { return &x.Title }, conversion.String),
	}
}

// DocumentService manages documents.
type DocumentService struct {
	client *Client
}

// Create creates a document and sends it to its signers.
func (s *DocumentService) Create(ctx context.Context, params DocumentCreateParams, opts ...RequestOption) (DocumentNewResponse, error) {
	return s.create(ctx, conversion.FromValue(params), opts)
}

// CreateRaw is Create with loosely typed parameters. Keys may be field names or wire keys.
func (s *DocumentService) CreateRaw(ctx context.Context, params map[string]any, opts ...RequestOption) (DocumentNewResponse, error) {
	return s.create(ctx, conversion.FromMap[DocumentCreateParams](params), opts)
}

func (s *DocumentService) create(ctx context.Context, in conversion.Input[DocumentCreateParams], opts []RequestOption) (DocumentNewResponse, error) {
	body, options, err := parseRequest(ctx, in, opts)
	if err != nil {
		return DocumentNewResponse{}, err
	}
	req := Request{Method: http.MethodPost, Path: "document/", Body: body, Endpoint: "createDocument"}
	return execute[DocumentNewResponse](ctx, s.client, req, options, conversion.ModelOf[DocumentNewResponse]())
}

// Get returns a document by ID.
func (s *DocumentService) Get(ctx context.Context, docID string, opts ...RequestOption) (Document, error) {
	req := Request{Method: http.MethodGet, Path: "document/" + url.PathEscape(docID) + "/", Endpoint: "getDocument"}
	return execute[Document](ctx, s.client, req, newRequestOptions(opts), conversion.ModelOf[Document]())
}

// List returns the first page of documents matching params.
func (s *DocumentService) List(ctx context.Context, params DocumentListParams, opts ...RequestOption) (*OffsetPage[DocumentSummary], error) {
	query, options, err := parseQuery(ctx, conversion.FromValue(params), opts)
	if err != nil {
		return nil, err
	}
	req := Request{Method: http.MethodGet, Path: "document/", Query: query, Endpoint: "listDocuments"}
	return listPage[DocumentSummary](ctx, s.client, req, options, conversion.ModelOf[DocumentSummary]())
}

// Archive removes a document from the active list without deleting it.
func (s *DocumentService) Archive(ctx context.Context, docID string, opts ...RequestOption) error {
	req := Request{Method: http.MethodDelete, Path: "document/" + url.PathEscape(docID) + "/", Endpoint: "archiveDocument"}
	return s.client.executeNoContent(ctx, req, newRequestOptions(opts))
}

// Delete permanently deletes a document.
func (s *DocumentService) Delete(ctx context.Context, docID string, opts ...RequestOption) error {
	req := Request{Method: http.MethodDelete, Path: "document/" + url.PathEscape(docID) + "/delete/", Endpoint: "deleteDocument"}
	return s.client.executeNoContent(ctx, req, newRequestOptions(opts))
}

// GetFields returns the form fields of a document.
func (s *DocumentService) GetFields(ctx context.Context, docID string, opts ...RequestOption) ([]DocumentField, error) {
	req := Request{Method: http.MethodGet, Path: "document/" + url.PathEscape(docID) + "/fields/", Endpoint: "getDocumentFields"}
	return execute[[]DocumentField](ctx, s.client, req, newRequestOptions(opts),
		conversion.ListOf[DocumentField](conversion.ModelOf[DocumentField]()))
}

// DownloadAuditLog writes the PDF audit log of a document to w.
func (s *DocumentService) DownloadAuditLog(ctx context.Context, docID string, w io.Writer, opts ...RequestOption) error {
	req := Request{Method: http.MethodGet, Path: "document/" + url.PathEscape(docID) + "/auditlog/", Endpoint: "downloadDocumentAuditLog"}
	return s.client.download(ctx, req, w, pdfContentType, newRequestOptions(opts))
}

// Preview returns a one-use link to a preview of the signing page. The link expires within
// seconds, so redirect to it immediately.
func (s *DocumentService) Preview(ctx context.Context, params DocumentPreviewParams, opts ...RequestOption) (string, error) {
	body, options, err := parseRequest(ctx, conversion.FromValue(params), opts)
	if err != nil {
		return "", err
	}
	req := Request{Method: http.MethodPost, Path: "document/preview/", Body: body, Endpoint: "previewDocument"}
	return s.client.location(ctx, req, options)
}
