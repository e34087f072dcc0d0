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

	"github.com/legalesign/legalesign-go/legalesign-contract/conversion"
)

// DocumentStatusSummary is the lightweight status record of a document.
type DocumentStatusSummary struct {
	conversion.Extras
	Archived      conversion.Field[bool]
	DownloadFinal conversion.Field[bool]
	ResourceURI   conversion.Field[string]
	Status        conversion.Field[SignerStatus]
	Tag           conversion.Field[string]
	Tag1          conversion.Field[string]
	Tag2          conversion.Field[string]
}

func (*DocumentStatusSummary) Fields() []conversion.FieldSpec[DocumentStatusSummary] {
	type s = DocumentStatusSummary
	return []conversion.FieldSpec[DocumentStatusSummary]{
		conversion.Prop("archived", func(x *s) *conversion.Field[bool] { return &x.Archived }, conversion.Bool),
		conversion.Prop("downloadFinal", func(x *s) *conversion.Field[bool] { return &x.DownloadFinal }, conversion.Bool,
			conversion.WireKey("download_final")),
		conversion.Prop("resourceURI", func(x *s) *conversion.Field[string] { return &x.ResourceURI }, conversion.String,
			conversion.WireKey("resource_uri")),
		conversion.Prop("status", func(x *s) *conversion.Field[SignerStatus] { return &x.Status }, signerStatuses),
		conversion.Prop("tag", func(x *s) *conversion.Field[string] { return &x.Tag }, conversion.String),
		conversion.Prop("tag1", func(x *s) *conversion.Field[string] { return &x.Tag1 }, conversion.String),
		conversion.Prop("tag2", func(x *s) *conversion.Field[string] { return &x.Tag2 }, conversion.String),
	}
}

// StatusListParams pages through document statuses. Filter narrows on archived status.
type StatusListParams struct {
	Filter conversion.Field[string]
	Limit  conversion.Field[int64]
	Offset conversion.Field[int64]
}

func (*StatusListParams) Fields() []conversion.FieldSpec[StatusListParams] {
	type p = StatusListParams
	return []conversion.FieldSpec[StatusListParams]{
		conversion.Prop("filter", func(x *p) *conversion.Field[string] { return &x.Filter }, conversion.String),
		conversion.Prop("limit", func(x *p) *conversion.Field[int64] { return &x.Limit }, conversion.Int),
		conversion.Prop("offset", func(x *p) *conversion.Field[int64] { return &x.Offset }, conversion.Int),
	}
}

// StatusService reads document statuses without the cost of a full document fetch.
type StatusService struct {
	client *Client
}

// Get returns the status of one document.
func (s *StatusService) Get(ctx context.Context, docID string, opts ...RequestOption) (DocumentStatusSummary, error) {
	req := Request{Method: http.MethodGet, Path: "status/" + url.PathEscape(docID) + "/", Endpoint: "getStatus"}
	return execute[DocumentStatusSummary](ctx, s.client, req, newRequestOptions(opts), conversion.ModelOf[DocumentStatusSummary]())
}

// List returns the first page of document statuses.
func (s *StatusService) List(ctx context.Context, params StatusListParams, opts ...RequestOption) (*OffsetPage[DocumentStatusSummary], error) {
	query, options, err := parseQuery(ctx, conversion.FromValue(params), opts)
	if err != nil {
		return nil, err
	}
	req := Request{Method: http.MethodGet, Path: "status/", Query: query, Endpoint: "listStatuses"}
	return listPage[DocumentStatusSummary](ctx, s.client, req, options, conversion.ModelOf[DocumentStatusSummary]())
}

// PdfService downloads document PDFs.
type PdfService struct {
	client *Client
}

// Get writes the PDF of a document to w: the final signed PDF once the document is complete,
// the PDF as sent before that.
func (s *PdfService) Get(ctx context.Context, docID string, w io.Writer, opts ...RequestOption) error {
	req := Request{Method: http.MethodGet, Path: "pdf/" + url.PathEscape(docID) + "/", Endpoint: "getPdf"}
	return s.client.download(ctx, req, w, pdfContentType, newRequestOptions(opts))
}
