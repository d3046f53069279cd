package twitter

// EventTypeMessageCreate is the only Account Activity event type this
// service consumes or produces.
const EventTypeMessageCreate = "message_create"

// QuickReplyTypeOptions is the fixed quick_reply container type on sends.
const QuickReplyTypeOptions = "options"

// WebhookPayload is the body of an Account Activity POST. Fields other than
// direct message events are ignored.
type WebhookPayload struct {
	ForUserID           string               `json:"for_user_id"`
	DirectMessageEvents []DirectMessageEvent `json:"direct_message_events,omitempty"`
}

// DirectMessageEvent is a single DM event, both as delivered by the webhook
// and as echoed back in the create-event response.
type DirectMessageEvent struct {
	Type             string        `json:"type"`
	ID               string        `json:"id"`
	CreatedTimestamp string        `json:"created_timestamp"`
	MessageCreate    MessageCreate `json:"message_create"`
}

// MessageCreate holds the conversational core of a DM event. SenderID is
// only populated on received events; create-event requests carry just the
// target and message data.
type MessageCreate struct {
	SenderID    string      `json:"sender_id,omitempty"`
	Target      Target      `json:"target"`
	MessageData MessageData `json:"message_data"`
}

// Target addresses the account a DM is delivered to.
type Target struct {
	RecipientID string `json:"recipient_id"`
}

// MessageData is the message body. Text is always serialized on sends; the
// API accepts text and quick_reply together.
type MessageData struct {
	Text       string      `json:"text,omitempty"`
	QuickReply *QuickReply `json:"quick_reply,omitempty"`
}

// QuickReply is the options container attached to an outgoing DM.
type QuickReply struct {
	Type    string             `json:"type"`
	Options []QuickReplyOption `json:"options"`
}

// QuickReplyOption is one selectable option. Metadata is returned verbatim
// by Twitter when the user taps the option.
type QuickReplyOption struct {
	Label    string `json:"label"`
	Metadata string `json:"metadata,omitempty"`
}

// SendEventRequest is the body POSTed to direct_messages/events/new.json.
type SendEventRequest struct {
	Event SendEvent `json:"event"`
}

// SendEvent wraps a message_create for the create-event endpoint.
type SendEvent struct {
	Type          string        `json:"type"`
	MessageCreate MessageCreate `json:"message_create"`
}

// SendEventResponse is the provider's echo of the created event, including
// the server-assigned event id.
type SendEventResponse struct {
	Event DirectMessageEvent `json:"event"`
}
