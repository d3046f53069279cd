package webhook

import (
	"errors"
	"fmt"
	"html"
	"strconv"

	"github.com/abhishekchotaliya/botmaster-twitter/internal/bot"
	"github.com/abhishekchotaliya/botmaster-twitter/internal/twitter"
)

// ErrNoEvents is returned when a delivery carries no direct message events.
var ErrNoEvents = errors.New("no direct message events in delivery")

// TranslateInbound converts a webhook delivery into a normalized incoming
// message. Only the first event of the delivery is read; Twitter has not
// been observed to batch DM events, so later entries are dropped rather
// than guessed at (see the adapter's extra-events metric).
//
// A malformed created_timestamp does not reject the event: the returned
// message is still valid with a zero Timestamp, and the parse failure is
// reported through the error return so the caller can surface it.
func TranslateInbound(payload twitter.WebhookPayload) (bot.IncomingMessage, error) {
	if len(payload.DirectMessageEvents) == 0 {
		return bot.IncomingMessage{}, ErrNoEvents
	}
	event := payload.DirectMessageEvents[0]

	msg := bot.IncomingMessage{
		Sender:    bot.User{ID: event.MessageCreate.SenderID},
		Recipient: bot.User{ID: payload.ForUserID},
		Message:   bot.IncomingContent{MID: event.ID},
	}

	ts, err := strconv.ParseInt(event.CreatedTimestamp, 10, 64)
	if err != nil {
		err = fmt.Errorf("malformed created_timestamp %q on event %s: %w", event.CreatedTimestamp, event.ID, err)
	}
	msg.Timestamp = ts

	// Empty text means no text field at all; callers branch on presence.
	if text := event.MessageCreate.MessageData.Text; text != "" {
		msg.Message.Text = html.UnescapeString(text)
	}

	return msg, err
}

// TranslateOutbound converts a normalized outgoing message into the
// payload shape of Twitter's create-DM-event endpoint. Text and quick
// replies may both be present; the API accepts them together and no
// exclusivity is enforced here.
func TranslateOutbound(msg bot.OutgoingMessage) twitter.SendEventRequest {
	data := twitter.MessageData{Text: msg.Message.Text}

	if len(msg.Message.QuickReplies) > 0 {
		options := make([]twitter.QuickReplyOption, 0, len(msg.Message.QuickReplies))
		for _, qr := range msg.Message.QuickReplies {
			options = append(options, twitter.QuickReplyOption{
				Label:    qr.Title,
				Metadata: qr.Payload,
			})
		}
		data.QuickReply = &twitter.QuickReply{
			Type:    twitter.QuickReplyTypeOptions,
			Options: options,
		}
	}

	return twitter.SendEventRequest{
		Event: twitter.SendEvent{
			Type: twitter.EventTypeMessageCreate,
			MessageCreate: twitter.MessageCreate{
				Target:      twitter.Target{RecipientID: msg.Recipient.ID},
				MessageData: data,
			},
		},
	}
}

// SummarizeSend extracts the minimal acknowledgment for a completed send:
// who the message went to and the id Twitter assigned to it.
func SummarizeSend(sent twitter.SendEventRequest, resp *twitter.SendEventResponse) bot.SendResponse {
	return bot.SendResponse{
		RecipientID: sent.Event.MessageCreate.Target.RecipientID,
		MessageID:   resp.Event.ID,
	}
}
