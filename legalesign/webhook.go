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
	"time"

	"github.com/legalesign/legalesign-go/legalesign-contract/codecs"
	"github.com/legalesign/legalesign-go/legalesign-contract/conversion"
	werror "github.com/palantir/witchcraft-go-error"
)

// WebhookEventFilter narrows a realtime webhook to a family of events. The empty filter
// receives everything.
type WebhookEventFilter string

const (
	WebhookEventAll                     WebhookEventFilter = ""
	WebhookEventDocument                WebhookEventFilter = "document.*"
	WebhookEventDocumentCreated         WebhookEventFilter = "document.created"
	WebhookEventDocumentRejected        WebhookEventFilter = "document.rejected"
	WebhookEventDocumentFinalPdfCreated WebhookEventFilter = "document.finalPdfCreated"
	WebhookEventRecipient               WebhookEventFilter = "recipient.*"
	WebhookEventRecipientCompleted      WebhookEventFilter = "recipient.completed"
	WebhookEventRecipientRejected       WebhookEventFilter = "recipient.rejected"
	WebhookEventRecipientEmailOpened    WebhookEventFilter = "recipient.emailOpened"
	WebhookEventRecipientVisiting       WebhookEventFilter = "recipient.visiting"
	WebhookEventRecipientBounced        WebhookEventFilter = "recipient.bounced"
)

var webhookEventFilters = conversion.EnumOf([]WebhookEventFilter{
	WebhookEventAll,
	WebhookEventDocument,
	WebhookEventDocumentCreated,
	WebhookEventDocumentRejected,
	WebhookEventDocumentFinalPdfCreated,
	WebhookEventRecipient,
	WebhookEventRecipientCompleted,
	WebhookEventRecipientRejected,
	WebhookEventRecipientEmailOpened,
	WebhookEventRecipientVisiting,
	WebhookEventRecipientBounced,
})

// NotifyWhen is how often a webhook is called.
type NotifyWhen int64

const (
	NotifyEverySixMinutes NotifyWhen = 1
	NotifyOnSigning       NotifyWhen = 2
	NotifyOnSent          NotifyWhen = 3
	NotifyOnRejected      NotifyWhen = 4
	NotifyRealtime        NotifyWhen = 10
)

var notifyWhens = conversion.EnumOf([]NotifyWhen{
	NotifyEverySixMinutes,
	NotifyOnSigning,
	NotifyOnSent,
	NotifyOnRejected,
	NotifyRealtime,
})

// SubscribeParams registers a webhook. Notify is one of "all", "signed", "sent", "rejected" or
// "realtime".
type SubscribeParams struct {
	Notify      string
	URL         string
	EventFilter conversion.Field[WebhookEventFilter]
	Group       conversion.Field[string]
}

func (*SubscribeParams) Fields() []conversion.FieldSpec[SubscribeParams] {
	type p = SubscribeParams
	return []conversion.FieldSpec[SubscribeParams]{
		conversion.Req("notify", func(x *p) *string { return &x.Notify }, conversion.String),
		conversion.Req("url", func(x *p) *string { return &x.URL }, conversion.String),
		conversion.Prop("eventFilter", func(x *p) *conversion.Field[WebhookEventFilter] { return &x.EventFilter }, webhookEventFilters),
		conversion.Prop("group", func(x *p) *conversion.Field[string] { return &x.Group }, conversion.String),
	}
}

// UnsubscribeParams removes a webhook. URL must match the registered callback exactly.
type UnsubscribeParams struct {
	URL         string
	EventFilter conversion.Field[WebhookEventFilter]
	Group       conversion.Field[int64]
}

func (*UnsubscribeParams) Fields() []conversion.FieldSpec[UnsubscribeParams] {
	type p = UnsubscribeParams
	return []conversion.FieldSpec[UnsubscribeParams]{
		conversion.Req("url", func(x *p) *string { return &x.URL }, conversion.String),
		conversion.Prop("eventFilter", func(x *p) *conversion.Field[WebhookEventFilter] { return &x.EventFilter }, webhookEventFilters),
		conversion.Prop("group", func(x *p) *conversion.Field[int64] { return &x.Group }, conversion.Int),
	}
}

// Notification is a registered webhook.
type Notification struct {
	conversion.Extras
	Active      conversion.Field[bool]
	EventFilter conversion.Field[WebhookEventFilter]
	GroupID     conversion.Field[int64]
	NotifyWhen  conversion.Field[NotifyWhen]
	URL         conversion.Field[string]
}

func (*Notification) Fields() []conversion.FieldSpec[Notification] {
	type n = Notification
	return []conversion.FieldSpec[Notification]{
		conversion.Prop("active", func(x *n) *conversion.Field[bool] { return &x.Active }, conversion.Bool),
		conversion.Prop("eventFilter", func(x *n) *conversion.Field[WebhookEventFilter] { return &x.EventFilter }, webhookEventFilters,
			conversion.WireKey("event_filter")),
		conversion.Prop("groupID", func(x *n) *conversion.Field[int64] { return &x.GroupID }, conversion.Int,
			conversion.WireKey("group_id")),
		conversion.Prop("notifyWhen", func(x *n) *conversion.Field[NotifyWhen] { return &x.NotifyWhen }, notifyWhens,
			conversion.WireKey("notify_when")),
		conversion.Prop("url", func(x *n) *conversion.Field[string] { return &x.URL }, conversion.String),
	}
}

// WebhookEvent is a decoded realtime webhook payload: a DocumentEvent or a RecipientEvent.
type WebhookEvent interface {
	EventName() WebhookEventFilter
}

// DocumentEvent reports a change to a document.
type DocumentEvent struct {
	conversion.Extras
	Event     WebhookEventFilter
	UUID      string
	Name      conversion.Field[string]
	Group     conversion.Field[string]
	Status    conversion.Field[DocumentStatus]
	Timestamp conversion.Field[time.Time]
}

func (e DocumentEvent) EventName() WebhookEventFilter { return e.Event }

func (*DocumentEvent) Fields() []conversion.FieldSpec[DocumentEvent] {
	type d = DocumentEvent
	return []conversion.FieldSpec[DocumentEvent]{
		conversion.Req("event", func(x *d) *WebhookEventFilter { return &x.Event }, webhookEventFilters),
		conversion.Req("uuid", func(x *d) *string { return &x.UUID }, conversion.String),
		conversion.Prop("name", func(x *d) *conversion.Field[string] { return &x.Name }, conversion.String),
		conversion.Prop("group", func(x *d) *conversion.Field[string] { return &x.Group }, conversion.String),
		conversion.Prop("status", func(x *d) *conversion.Field[DocumentStatus] { return &x.Status }, documentStatuses),
		conversion.Prop("timestamp", func(x *d) *conversion.Field[time.Time] { return &x.Timestamp }, conversion.DateTime),
	}
}

// RecipientEvent reports progress of one signer.
type RecipientEvent struct {
	conversion.Extras
	Event     WebhookEventFilter
	Document  string
	Signer    conversion.Field[string]
	Email     conversion.Field[string]
	Status    conversion.Field[SignerStatus]
	Timestamp conversion.Field[time.Time]
}

func (e RecipientEvent) EventName() WebhookEventFilter { return e.Event }

func (*RecipientEvent) Fields() []conversion.FieldSpec[RecipientEvent] {
	type r = RecipientEvent
	return []conversion.FieldSpec[RecipientEvent]{
		conversion.Req("event", func(x *r) *WebhookEventFilter { return &x.Event }, webhookEventFilters),
		conversion.Req("document", func(x *r) *string { return &x.Document }, conversion.String),
		conversion.Prop("signer", func(x *r) *conversion.Field[string] { return &x.Signer }, conversion.String),
		conversion.Prop("email", func(x *r) *conversion.Field[string] { return &x.Email }, conversion.String),
		conversion.Prop("status", func(x *r) *conversion.Field[SignerStatus] { return &x.Status }, signerStatuses),
		conversion.Prop("timestamp", func(x *r) *conversion.Field[time.Time] { return &x.Timestamp }, conversion.DateTime),
	}
}

const webhookEventDiscriminator = "type"

var webhookEvents = conversion.UnionOf[WebhookEvent](
	conversion.VariantOf[WebhookEvent, DocumentEvent]("document", conversion.ModelOf[DocumentEvent]()),
	conversion.VariantOf[WebhookEvent, RecipientEvent]("recipient", conversion.ModelOf[RecipientEvent]()),
).WithDiscriminator(webhookEventDiscriminator)

// ParseWebhookEvent decodes the JSON body of a realtime webhook call. The "type" field selects
// the event kind; payloads without it are matched against each kind in turn.
func ParseWebhookEvent(payload []byte) (WebhookEvent, error) {
	var wire any
	if err := codecs.JSON.Unmarshal(payload, &wire); err != nil {
		return nil, werror.Wrap(err, "failed to decode webhook payload")
	}
	event, err := conversion.Coerce[WebhookEvent](webhookEvents, wire)
	if err != nil {
		return nil, werror.Wrap(err, "webhook payload is not a known event")
	}
	return event, nil
}

// WebhookService registers webhooks and lists them.
type WebhookService struct {
	client *Client
}

// Subscribe registers a webhook.
func (s *WebhookService) Subscribe(ctx context.Context, params SubscribeParams, opts ...RequestOption) error {
	body, options, err := parseRequest(ctx, conversion.FromValue(params), opts)
	if err != nil {
		return err
	}
	req := Request{Method: http.MethodPost, Path: "subscribe/", Body: body, Endpoint: "subscribeWebhook"}
	return s.client.executeNoContent(ctx, req, options)
}

// Unsubscribe removes a webhook.
func (s *WebhookService) Unsubscribe(ctx context.Context, params UnsubscribeParams, opts ...RequestOption) error {
	body, options, err := parseRequest(ctx, conversion.FromValue(params), opts)
	if err != nil {
		return err
	}
	req := Request{Method: http.MethodPost, Path: "unsubscribe/", Body: body, Endpoint: "unsubscribeWebhook"}
	return s.client.executeNoContent(ctx, req, options)
}

// List returns every registered webhook. The endpoint is not paginated.
func (s *WebhookService) List(ctx context.Context, opts ...RequestOption) ([]Notification, error) {
	req := Request{Method: http.MethodGet, Path: "notifications/", Endpoint: "listNotifications"}
	return execute[[]Notification](ctx, s.client, req, newRequestOptions(opts),
		conversion.ListOf[Notification](conversion.ModelOf[Notification]()))
}
