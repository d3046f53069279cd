package webhook

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhishekchotaliya/botmaster-twitter/internal/bot"
	"github.com/abhishekchotaliya/botmaster-twitter/internal/twitter"
)

type capturingHandler struct {
	messages []bot.IncomingMessage
}

func (h *capturingHandler) HandleMessage(_ context.Context, msg bot.IncomingMessage) {
	h.messages = append(h.messages, msg)
}

type capturingReporter struct {
	errors []error
}

func (r *capturingReporter) ReportError(_ context.Context, err error) {
	r.errors = append(r.errors, err)
}

type fakeSender struct {
	requests []twitter.SendEventRequest
	response *twitter.SendEventResponse
	err      error
}

func (s *fakeSender) SendEvent(_ context.Context, req twitter.SendEventRequest) (*twitter.SendEventResponse, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func newTestAdapter(handler bot.Handler, reporter bot.ErrorReporter, sender Sender) *Adapter {
	return New(Config{
		ConsumerSecret: "consumer-secret",
		OwnerID:        "999",
		Sender:         sender,
		Handler:        handler,
		Reporter:       reporter,
	})
}

func TestHandleDelivery_ForeignSenderProcessed(t *testing.T) {
	handler := &capturingHandler{}
	adapter := newTestAdapter(handler, &capturingReporter{}, nil)

	adapter.HandleDelivery(context.Background(), dmPayload("123", ""))

	require.Len(t, handler.messages, 1)
	msg := handler.messages[0]
	assert.Equal(t, "123", msg.Sender.ID)
	assert.Equal(t, "m1", msg.Message.MID)
	assert.EqualValues(t, 1000, msg.Timestamp)
	assert.Empty(t, msg.Message.Text)
}

func TestHandleDelivery_OwnEventSuppressed(t *testing.T) {
	handler := &capturingHandler{}
	reporter := &capturingReporter{}
	adapter := newTestAdapter(handler, reporter, nil)

	adapter.HandleDelivery(context.Background(), dmPayload("999", "hello me"))

	assert.Empty(t, handler.messages)
	assert.Empty(t, reporter.errors)
}

func TestHandleDelivery_EmptyDelivery(t *testing.T) {
	handler := &capturingHandler{}
	reporter := &capturingReporter{}
	adapter := newTestAdapter(handler, reporter, nil)

	adapter.HandleDelivery(context.Background(), twitter.WebhookPayload{ForUserID: "999"})

	assert.Empty(t, handler.messages)
	assert.Empty(t, reporter.errors)
}

func TestHandleDelivery_MalformedTimestampReportedButDelivered(t *testing.T) {
	handler := &capturingHandler{}
	reporter := &capturingReporter{}
	adapter := newTestAdapter(handler, reporter, nil)

	payload := dmPayload("123", "hi")
	payload.DirectMessageEvents[0].CreatedTimestamp = "garbage"
	adapter.HandleDelivery(context.Background(), payload)

	require.Len(t, reporter.errors, 1)
	assert.Contains(t, reporter.errors[0].Error(), "inbound translation")

	require.Len(t, handler.messages, 1)
	assert.Zero(t, handler.messages[0].Timestamp)
	assert.Equal(t, "hi", handler.messages[0].Message.Text)
}

func TestSend_Success(t *testing.T) {
	sender := &fakeSender{
		response: &twitter.SendEventResponse{
			Event: twitter.DirectMessageEvent{ID: "evt-1"},
		},
	}
	adapter := newTestAdapter(nil, nil, sender)

	ack, err := adapter.Send(context.Background(), bot.OutgoingMessage{
		Recipient: bot.User{ID: "456"},
		Message:   bot.OutgoingContent{Text: "hello"},
	})

	require.NoError(t, err)
	assert.Equal(t, bot.SendResponse{RecipientID: "456", MessageID: "evt-1"}, ack)

	require.Len(t, sender.requests, 1)
	assert.Equal(t, "hello", sender.requests[0].Event.MessageCreate.MessageData.Text)
}

func TestSend_ClientErrorPropagates(t *testing.T) {
	sendErr := errors.New("connection refused")
	adapter := newTestAdapter(nil, nil, &fakeSender{err: sendErr})

	_, err := adapter.Send(context.Background(), bot.OutgoingMessage{
		Recipient: bot.User{ID: "456"},
		Message:   bot.OutgoingContent{Text: "hello"},
	})

	// The underlying client error must stay reachable through the wrap.
	require.Error(t, err)
	assert.ErrorIs(t, err, sendErr)
}

func TestChallengeResponse_UsesConfiguredSecret(t *testing.T) {
	adapter := newTestAdapter(nil, nil, nil)
	assert.Equal(t, ChallengeResponse("consumer-secret", "tok"), adapter.ChallengeResponse("tok"))
}
