package bot

import "context"

// User identifies a participant on either side of a conversation.
type User struct {
	ID string `json:"id"`
}

// IncomingContent carries the body of a received message. Text is omitted
// entirely when the source message had no text; callers must branch on the
// field's presence, not its value.
type IncomingContent struct {
	MID  string `json:"mid"`
	Seq  *int64 `json:"seq"`
	Text string `json:"text,omitempty"`
}

// IncomingMessage is the normalized form of a provider message event.
// Timestamp is epoch milliseconds.
type IncomingMessage struct {
	Sender    User            `json:"sender"`
	Recipient User            `json:"recipient"`
	Timestamp int64           `json:"timestamp"`
	Message   IncomingContent `json:"message"`
}

// QuickReply is one tappable option attached to an outgoing message.
type QuickReply struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// OutgoingContent carries the body of a message to be sent. Text and
// QuickReplies may both be set on the same message; no mutual exclusivity
// is enforced here or downstream.
type OutgoingContent struct {
	Text         string       `json:"text,omitempty"`
	QuickReplies []QuickReply `json:"quick_replies,omitempty"`
}

// OutgoingMessage is a send request in the framework's normalized form.
type OutgoingMessage struct {
	Recipient User            `json:"recipient"`
	Message   OutgoingContent `json:"message"`
}

// SendResponse is the minimal acknowledgment returned after a successful send.
type SendResponse struct {
	RecipientID string `json:"recipient_id"`
	MessageID   string `json:"message_id"`
}

// Handler receives normalized incoming messages. The host framework plugs in
// here; the adapter never knows anything about routing or commands.
type Handler interface {
	HandleMessage(ctx context.Context, msg IncomingMessage)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, msg IncomingMessage)

func (f HandlerFunc) HandleMessage(ctx context.Context, msg IncomingMessage) { f(ctx, msg) }
