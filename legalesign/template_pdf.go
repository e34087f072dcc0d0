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
	"strings"
	"time"

	"github.com/legalesign/legalesign-go/legalesign-contract/codecs"
	"github.com/legalesign/legalesign-go/legalesign-contract/conversion"
	werror "github.com/palantir/witchcraft-go-error"
)

// TemplatePdfCreateParams uploads a PDF template. PdfFile is sent base64 encoded and, like an
// attachment upload, is attempted once when the reader cannot seek.
type TemplatePdfCreateParams struct {
	Group           string
	PdfFile         io.Reader
	ArchiveUponSend conversion.Field[bool]
	ProcessTags     conversion.Field[bool]
	Title           conversion.Field[string]
	User            conversion.Field[string]
}

func (*TemplatePdfCreateParams) Fields() []conversion.FieldSpec[TemplatePdfCreateParams] {
	type p = TemplatePdfCreateParams
	return []conversion.FieldSpec[TemplatePdfCreateParams]{
		conversion.Req("group", func(x *p) *string { return &x.Group }, conversion.String),
		conversion.Req("pdfFile", func(x *p) *io.Reader { return &x.PdfFile }, conversion.Stream,
			conversion.WireKey("pdf_file")),
		conversion.Prop("archiveUponSend", func(x *p) *conversion.Field[bool] { return &x.ArchiveUponSend }, conversion.Bool,
			conversion.WireKey("archive_upon_send")),
		conversion.Prop("processTags", func(x *p) *conversion.Field[bool] { return &x.ProcessTags }, conversion.Bool,
			conversion.WireKey("process_tags")),
		conversion.Prop("title", func(x *p) *conversion.Field[string] { return &x.Title }, conversion.String),
		conversion.Prop("user", func(x *p) *conversion.Field[string] { return &x.User }, conversion.String),
	}
}

// TemplatePdf is an uploaded PDF template. Parties is a JSON encoded array of the document's
// parties. Valid is false while the template's fields do not validate, and such a template
// cannot be sent.
type TemplatePdf struct {
	conversion.Extras
	Created     conversion.Field[time.Time]
	Group       conversion.Field[string]
	Modified    conversion.Field[time.Time]
	PageCount   conversion.Field[int64]
	Parties     conversion.Field[string]
	ResourceURI conversion.Field[string]
	SignerCount conversion.Field[int64]
	Title       conversion.Field[string]
	User        conversion.Field[string]
	UUID        conversion.Field[string]
	Valid       conversion.Field[bool]
}

func (*TemplatePdf) Fields() []conversion.FieldSpec[TemplatePdf] {
	type t = TemplatePdf
	return []conversion.FieldSpec[TemplatePdf]{
		conversion.Prop("created", func(x *t) *conversion.Field[time.Time] { return &x.Created }, conversion.DateTime),
		conversion.Prop("group", func(x *t) *conversion.Field[string] { return &x.Group }, conversion.String),
		conversion.Prop("modified", func(x *t) *conversion.Field[time.Time] { return &x.Modified }, conversion.DateTime),
		conversion.Prop("pageCount", func(x *t) *conversion.Field[int64] { return &x.PageCount }, conversion.Int,
			conversion.WireKey("page_count")),
		conversion.Prop("parties", func(x *t) *conversion.Field[string] { return &x.Parties }, conversion.String),
		conversion.Prop("resourceURI", func(x *t) *conversion.Field[string] { return &x.ResourceURI }, conversion.String,
			conversion.WireKey("resource_uri")),
		conversion.Prop("signerCount", func(x *t) *conversion.Field[int64] { return &x.SignerCount }, conversion.Int,
			conversion.WireKey("signer_count")),
		conversion.Prop("title", func(x *t) *conversion.Field[string] { return &x.Title }, conversion.String),
		conversion.Prop("user", func(x *t) *conversion.Field[string] { return &x.User }, conversion.String),
		conversion.Prop("uuid", func(x *t) *conversion.Field[string] { return &x.UUID }, conversion.String),
		conversion.Prop("valid", func(x *t) *conversion.Field[bool] { return &x.Valid }, conversion.Bool),
	}
}

// FieldAlign is the horizontal alignment of text in a template field.
type FieldAlign int64

const (
	FieldAlignLeft   FieldAlign = 1
	FieldAlignCenter FieldAlign = 2
	FieldAlignRight  FieldAlign = 3
)

var fieldAligns = conversion.EnumOf([]FieldAlign{FieldAlignLeft, FieldAlignCenter, FieldAlignRight})

// FieldFontName is the font of a template field. The empty name selects the group default.
type FieldFontName string

const (
	FieldFontDefault    FieldFontName = ""
	FieldFontArial      FieldFontName = "arial"
	FieldFontCourier    FieldFontName = "courier"
	FieldFontHelvetica  FieldFontName = "helvetica"
	FieldFontLiberation FieldFontName = "liberation"
	FieldFontVerdana    FieldFontName = "verdana"
)

var fieldFontNames = conversion.EnumOf([]FieldFontName{
	FieldFontDefault,
	FieldFontArial,
	FieldFontCourier,
	FieldFontHelvetica,
	FieldFontLiberation,
	FieldFontVerdana,
})

// FieldLogicAction is what a field does to the other fields of its logic group.
type FieldLogicAction int64

const (
	FieldLogicAction1 FieldLogicAction = 1
	FieldLogicAction2 FieldLogicAction = 2
	FieldLogicAction3 FieldLogicAction = 3
)

var fieldLogicActions = conversion.EnumOf([]FieldLogicAction{FieldLogicAction1, FieldLogicAction2, FieldLogicAction3})

// TemplatePdfFieldParams places one field on a PDF template. Ax, Ay, Bx and By are the corners
// of the field as fractions of the page. Signer is the 1-based signer index, or null for a
// sender field.
type TemplatePdfFieldParams struct {
	Ax          float64
	Ay          float64
	Bx          float64
	By          float64
	ElementType FieldElementType
	Page        int64
	Signer      conversion.Field[int64]
	Align       conversion.Field[FieldAlign]
	Fieldorder  conversion.Field[int64]
	FontName    conversion.Field[FieldFontName]
	FontSize    conversion.Field[int64]
	HideBorder  conversion.Field[bool]
	Label       conversion.Field[string]
	LabelExtra  conversion.Field[string]
	LogicAction conversion.Field[FieldLogicAction]
	LogicGroup  conversion.Field[string]
	MapTo       conversion.Field[string]
	Optional    conversion.Field[bool]
	Options     conversion.Field[string]
	Substantive conversion.Field[bool]
	Validation  conversion.Field[int64]
	Value       conversion.Field[string]
}

func (*TemplatePdfFieldParams) Fields() []conversion.FieldSpec[TemplatePdfFieldParams] {
	type p = TemplatePdfFieldParams
	return []conversion.FieldSpec[TemplatePdfFieldParams]{
		conversion.Req("ax", func(x *p) *float64 { return &x.Ax }, conversion.Float),
		conversion.Req("ay", func(x *p) *float64 { return &x.Ay }, conversion.Float),
		conversion.Req("bx", func(x *p) *float64 { return &x.Bx }, conversion.Float),
		conversion.Req("by", func(x *p) *float64 { return &x.By }, conversion.Float),
		conversion.Req("elementType", func(x *p) *FieldElementType { return &x.ElementType }, fieldElementTypes,
			conversion.WireKey("element_type")),
		conversion.Req("page", func(x *p) *int64 { return &x.Page }, conversion.Int),
		conversion.Prop("signer", func(x *p) *conversion.Field[int64] { return &x.Signer }, conversion.Int,
			conversion.Required(), conversion.Nullable()),
		conversion.Prop("align", func(x *p) *conversion.Field[FieldAlign] { return &x.Align }, fieldAligns,
			conversion.Nullable()),
		conversion.Prop("fieldorder", func(x *p) *conversion.Field[int64] { return &x.Fieldorder }, conversion.Int,
			conversion.Nullable()),
		conversion.Prop("fontName", func(x *p) *conversion.Field[FieldFontName] { return &x.FontName }, fieldFontNames,
			conversion.WireKey("font_name")),
		conversion.Prop("fontSize", func(x *p) *conversion.Field[int64] { return &x.FontSize }, conversion.Int,
			conversion.WireKey("font_size")),
		conversion.Prop("hideBorder", func(x *p) *conversion.Field[bool] { return &x.HideBorder }, conversion.Bool,
			conversion.WireKey("hide_border")),
		conversion.Prop("label", func(x *p) *conversion.Field[string] { return &x.Label }, conversion.String),
		conversion.Prop("labelExtra", func(x *p) *conversion.Field[string] { return &x.LabelExtra }, conversion.String,
			conversion.WireKey("label_extra")),
		conversion.Prop("logicAction", func(x *p) *conversion.Field[FieldLogicAction] { return &x.LogicAction }, fieldLogicActions,
			conversion.WireKey("logic_action")),
		conversion.Prop("logicGroup", func(x *p) *conversion.Field[string] { return &x.LogicGroup }, conversion.String,
			conversion.WireKey("logic_group")),
		conversion.Prop("mapTo", func(x *p) *conversion.Field[string] { return &x.MapTo }, conversion.String,
			conversion.WireKey("map_to")),
		conversion.Prop("optional", func(x *p) *conversion.Field[bool] { return &x.Optional }, conversion.Bool),
		conversion.Prop("options", func(x *p) *conversion.Field[string] { return &x.Options }, conversion.String),
		conversion.Prop("substantive", func(x *p) *conversion.Field[bool] { return &x.Substantive }, conversion.Bool),
		conversion.Prop("validation", func(x *p) *conversion.Field[int64] { return &x.Validation }, conversion.Int,
			conversion.Nullable()),
		conversion.Prop("value", func(x *p) *conversion.Field[string] { return &x.Value }, conversion.String),
	}
}

// TemplatePdfField is a field placed on a PDF template.
type TemplatePdfField struct {
	conversion.Extras
	Ax          conversion.Field[float64]
	Ay          conversion.Field[float64]
	Bx          conversion.Field[float64]
	By          conversion.Field[float64]
	ElementType conversion.Field[FieldElementType]
	Page        conversion.Field[int64]
	Signer      conversion.Field[int64]
	Align       conversion.Field[FieldAlign]
	Fieldorder  conversion.Field[int64]
	FontName    conversion.Field[FieldFontName]
	FontSize    conversion.Field[int64]
	HideBorder  conversion.Field[bool]
	Label       conversion.Field[string]
	LabelExtra  conversion.Field[string]
	LogicAction conversion.Field[FieldLogicAction]
	LogicGroup  conversion.Field[string]
	MapTo       conversion.Field[string]
	Optional    conversion.Field[bool]
	Options     conversion.Field[string]
	Substantive conversion.Field[bool]
	Validation  conversion.Field[int64]
	Value       conversion.Field[string]
}

func (*TemplatePdfField) Fields() []conversion.FieldSpec[TemplatePdfField] {
	type f = TemplatePdfField
	return []conversion.FieldSpec[TemplatePdfField]{
		conversion.Prop("ax", func(x *f) *conversion.Field[float64] { return &x.Ax }, conversion.Float),
		conversion.Prop("ay", func(x *f) *conversion.Field[float64] { return &x.Ay }, conversion.Float),
		conversion.Prop("bx", func(x *f) *conversion.Field[float64] { return &x.Bx }, conversion.Float),
		conversion.Prop("by", func(x *f) *conversion.Field[float64] { return &x.By }, conversion.Float),
		conversion.Prop("elementType", func(x *f) *conversion.Field[FieldElementType] { return &x.ElementType }, fieldElementTypes,
			conversion.WireKey("element_type")),
		conversion.Prop("page", func(x *f) *conversion.Field[int64] { return &x.Page }, conversion.Int),
		conversion.Prop("signer", func(x *f) *conversion.Field[int64] { return &x.Signer }, conversion.Int,
			conversion.Nullable()),
		conversion.Prop("align", func(x *f) *conversion.Field[FieldAlign] { return &x.Align }, fieldAligns,
			conversion.Nullable()),
		conversion.Prop("fieldorder", func(x *f) *conversion.Field[int64] { return &x.Fieldorder }, conversion.Int,
			conversion.Nullable()),
		conversion.Prop("fontName", func(x *f) *conversion.Field[FieldFontName] { return &x.FontName }, fieldFontNames,
			conversion.WireKey("font_name")),
		conversion.Prop("fontSize", func(x *f) *conversion.Field[int64] { return &x.FontSize }, conversion.Int,
			conversion.WireKey("font_size")),
		conversion.Prop("hideBorder", func(x *f) *conversion.Field[bool] { return &x.HideBorder }, conversion.Bool,
			conversion.WireKey("hide_border")),
		conversion.Prop("label", func(x *f) *conversion.Field[string] { return &x.Label }, conversion.String),
		conversion.Prop("labelExtra", func(x *f) *conversion.Field[string] { return &x.LabelExtra }, conversion.String,
			conversion.WireKey("label_extra"), conversion.Nullable()),
		conversion.Prop("logicAction", func(x *f) *conversion.Field[FieldLogicAction] { return &x.LogicAction }, fieldLogicActions,
			conversion.WireKey("logic_action"), conversion.Nullable()),
		conversion.Prop("logicGroup", func(x *f) *conversion.Field[string] { return &x.LogicGroup }, conversion.String,
			conversion.WireKey("logic_group"), conversion.Nullable()),
		conversion.Prop("mapTo", func(x *f) *conversion.Field[string] { return &x.MapTo }, conversion.String,
			conversion.WireKey("map_to"), conversion.Nullable()),
		conversion.Prop("optional", func(x *f) *conversion.Field[bool] { return &x.Optional }, conversion.Bool),
		conversion.Prop("options", func(x *f) *conversion.Field[string] { return &x.Options }, conversion.String,
			conversion.Nullable()),
		conversion.Prop("substantive", func(x *f) *conversion.Field[bool] { return &x.Substantive }, conversion.Bool),
		conversion.Prop("validation", func(x *f) *conversion.Field[int64] { return &x.Validation }, conversion.Int,
			conversion.Nullable()),
		conversion.Prop("value", func(x *f) *conversion.Field[string] { return &x.Value }, conversion.String,
			conversion.Nullable()),
	}
}

// TemplatePdfService manages PDF templates.
type TemplatePdfService struct {
	// Fields manages the fields placed on a PDF template.
	Fields *TemplatePdfFieldService

	client *Client
}

func templatePdfPath(pdfID, suffix string) string {
	return "templatepdf/" + url.PathEscape(pdfID) + "/" + suffix
}

// Create uploads a PDF template. The response body is empty; the new template's location is only
// reported in headers.
func (s *TemplatePdfService) Create(ctx context.Context, params TemplatePdfCreateParams, opts ...RequestOption) error {
	return s.create(ctx, conversion.FromValue(params), opts)
}

// CreateRaw is Create with loosely typed parameters. pdf_file may be an io.Reader, a []byte or an
// already encoded base64 string.
func (s *TemplatePdfService) CreateRaw(ctx context.Context, params map[string]any, opts ...RequestOption) error {
	return s.create(ctx, conversion.FromMap[TemplatePdfCreateParams](params), opts)
}

func (s *TemplatePdfService) create(ctx context.Context, in conversion.Input[TemplatePdfCreateParams], opts []RequestOption) error {
	body, options, err := parseRequest(ctx, in, opts)
	if err != nil {
		return err
	}
	req := Request{Method: http.MethodPost, Path: "templatepdf/", Body: body, Endpoint: "createTemplatePdf"}
	return s.client.executeNoContent(ctx, req, options)
}

// Get returns a PDF template by ID.
func (s *TemplatePdfService) Get(ctx context.Context, pdfID string, opts ...RequestOption) (TemplatePdf, error) {
	req := Request{Method: http.MethodGet, Path: templatePdfPath(pdfID, ""), Endpoint: "getTemplatePdf"}
	return execute[TemplatePdf](ctx, s.client, req, newRequestOptions(opts), conversion.ModelOf[TemplatePdf]())
}

// List returns the first page of PDF templates.
func (s *TemplatePdfService) List(ctx context.Context, params TemplateListParams, opts ...RequestOption) (*OffsetPage[TemplatePdf], error) {
	query, options, err := parseQuery(ctx, conversion.FromValue(params), opts)
	if err != nil {
		return nil, err
	}
	req := Request{Method: http.MethodGet, Path: "templatepdf/", Query: query, Endpoint: "listTemplatePdfs"}
	return listPage[TemplatePdf](ctx, s.client, req, options, conversion.ModelOf[TemplatePdf]())
}

// GetEditLink returns a link that opens the template in the embeddable field editor.
func (s *TemplatePdfService) GetEditLink(ctx context.Context, pdfID string, opts ...RequestOption) (string, error) {
	req := Request{Method: http.MethodGet, Path: templatePdfPath(pdfID, "edit-link/"), Endpoint: "getTemplatePdfEditLink"}
	var body strings.Builder
	if err := s.client.download(ctx, req, &body, textContentType, newRequestOptions(opts)); err != nil {
		return "", err
	}
	link := strings.TrimSpace(body.String())
	// Some deployments answer with a JSON string rather than plain text.
	if strings.HasPrefix(link, `"`) {
		var decoded string
		if err := codecs.JSON.Unmarshal([]byte(link), &decoded); err != nil {
			return "", newResponseShapeError(req, werror.WrapWithContextParams(ctx, err, "edit link is not a valid JSON string"))
		}
		link = decoded
	}
	if link == "" {
		return "", newResponseShapeError(req, werror.ErrorWithContextParams(ctx, "edit link response is empty"))
	}
	return link, nil
}

// TemplatePdfFieldService manages the fields of a PDF template.
type TemplatePdfFieldService struct {
	client *Client
}

// Create adds fields to a PDF template. All fields are sent in one request.
func (s *TemplatePdfFieldService) Create(ctx context.Context, pdfID string, fields []TemplatePdfFieldParams, opts ...RequestOption) error {
	body, options, err := parseListRequest[TemplatePdfFieldParams](ctx, fields, opts)
	if err != nil {
		return err
	}
	req := Request{Method: http.MethodPost, Path: templatePdfPath(pdfID, "fields/"), Body: body, Endpoint: "createTemplatePdfFields"}
	return s.client.executeNoContent(ctx, req, options)
}

// List returns the fields of a PDF template.
func (s *TemplatePdfFieldService) List(ctx context.Context, pdfID string, opts ...RequestOption) (*OffsetPage[TemplatePdfField], error) {
	req := Request{Method: http.MethodGet, Path: templatePdfPath(pdfID, "fields/"), Endpoint: "listTemplatePdfFields"}
	return listPage[TemplatePdfField](ctx, s.client, req, newRequestOptions(opts), conversion.ModelOf[TemplatePdfField]())
}
