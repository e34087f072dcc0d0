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

// AttachmentUploadParams uploads a PDF that can be attached to signer emails. PdfFile is sent
// base64 encoded. A reader that is not an io.Seeker can only be read once, so the upload is
// attempted a single time.
type AttachmentUploadParams struct {
	Filename    string
	Group       string
	PdfFile     io.Reader
	Description conversion.Field[string]
	User        conversion.Field[string]
}

func (*AttachmentUploadParams) Fields() []conversion.FieldSpec[AttachmentUploadParams] {
	type p = AttachmentUploadParams
	return []conversion.FieldSpec[AttachmentUploadParams]{
		conversion.Req("filename", func(x *p) *string { return &x.Filename }, conversion.String),
		conversion.Req("group", func(x *p) *string { return &x.Group }, conversion.String),
		conversion.Req("pdfFile", func(x *p) *io.Reader { return &x.PdfFile }, conversion.Stream,
			conversion.WireKey("pdf_file")),
		conversion.Prop("description", func(x *p) *conversion.Field[string] { return &x.Description }, conversion.String),
		conversion.Prop("user", func(x *p) *conversion.Field[string] { return &x.User }, conversion.String),
	}
}

// Attachment is an uploaded attachment.
type Attachment struct {
	conversion.Extras
	Created     conversion.Field[time.Time]
	Description conversion.Field[string]
	Filename    conversion.Field[string]
	Group       conversion.Field[string]
	ResourceURI conversion.Field[string]
	User        conversion.Field[string]
	UUID        conversion.Field[string]
}

func (*Attachment) Fields() []conversion.FieldSpec[Attachment] {
	type a = Attachment
	return []conversion.FieldSpec[Attachment]{
		conversion.Prop("created", func(x *a) *conversion.Field[time.Time] { return &x.Created }, conversion.DateTime),
		conversion.Prop("description", func(x *a) *conversion.Field[string] { return &x.Description }, conversion.String),
		conversion.Prop("filename", func(x *a) *conversion.Field[string] { return &x.Filename }, conversion.String),
		conversion.Prop("group", func(x *a) *conversion.Field[string] { return &x.Group }, conversion.String),
		conversion.Prop("resourceURI", func(x *a) *conversion.Field[string] { return &x.ResourceURI }, conversion.String,
			conversion.WireKey("resource_uri")),
		conversion.Prop("user", func(x *a) *conversion.Field[string] { return &x.User }, conversion.String),
		conversion.Prop("uuid", func(x *a) *conversion.Field[string] { return &x.UUID }, conversion.String),
	}
}

// ListParams pages through listings that can be narrowed to one group.
type ListParams struct {
	Group  conversion.Field[string]
	Limit  conversion.Field[int64]
	Offset conversion.Field[int64]
}

func (*ListParams) Fields() []conversion.FieldSpec[ListParams] {
	return []conversion.FieldSpec[ListParams]{
		conversion.Prop("group", func(p *ListParams) *conversion.Field[string] { return &p.Group }, conversion.String),
		conversion.Prop("limit", func(p *ListParams) *conversion.Field[int64] { return &p.Limit }, conversion.Int),
		conversion.Prop("offset", func(p *ListParams) *conversion.Field[int64] { return &p.Offset }, conversion.Int),
	}
}

// AttachmentService manages attachments.
type AttachmentService struct {
	client *Client
}

// Upload uploads an attachment. The response body is empty; the new attachment's location is
// only reported in headers.
func (s *AttachmentService) Upload(ctx context.Context, params AttachmentUploadParams, opts ...RequestOption) error {
	return s.upload(ctx, conversion.FromValue(params), opts)
}

// UploadRaw is Upload with loosely typed parameters. pdf_file may be an io.Reader, a []byte or
// an already encoded base64 string.
func (s *AttachmentService) UploadRaw(ctx context.Context, params map[string]any, opts ...RequestOption) error {
	return s.upload(ctx, conversion.FromMap[AttachmentUploadParams](params), opts)
}

func (s *AttachmentService) upload(ctx context.Context, in conversion.Input[AttachmentUploadParams], opts []RequestOption) error {
	body, options, err := parseRequest(ctx, in, opts)
	if err != nil {
		return err
	}
	req := Request{Method: http.MethodPost, Path: "attachment/", Body: body, Endpoint: "uploadAttachment"}
	return s.client.executeNoContent(ctx, req, options)
}

// Get returns an attachment by ID.
func (s *AttachmentService) Get(ctx context.Context, attachmentID string, opts ...RequestOption) (Attachment, error) {
	req := Request{Method: http.MethodGet, Path: "attachment/" + url.PathEscape(attachmentID) + "/", Endpoint: "getAttachment"}
	return execute[Attachment](ctx, s.client, req, newRequestOptions(opts), conversion.ModelOf[Attachment]())
}

// List returns the first page of attachments.
func (s *AttachmentService) List(ctx context.Context, params ListParams, opts ...RequestOption) (*OffsetPage[Attachment], error) {
	query, options, err := parseQuery(ctx, conversion.FromValue(params), opts)
	if err != nil {
		return nil, err
	}
	req := Request{Method: http.MethodGet, Path: "attachment/", Query: query, Endpoint: "listAttachments"}
	return listPage[Attachment](ctx, s.client, req, options, conversion.ModelOf[Attachment]())
}

// Delete deletes an attachment.
func (s *AttachmentService) Delete(ctx context.Context, attachmentID string, opts ...RequestOption) error {
	req := Request{Method: http.MethodDelete, Path: "attachment/" + url.PathEscape(attachmentID) + "/", Endpoint: "deleteAttachment"}
	return s.client.executeNoContent(ctx, req, newRequestOptions(opts))
}
