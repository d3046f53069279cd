package webhook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhishekchotaliya/botmaster-twitter/internal/adapter/metrics"
	"github.com/abhishekchotaliya/botmaster-twitter/internal/bot"
	"github.com/abhishekchotaliya/botmaster-twitter/internal/twitter"
)

// Sender submits a create-DM-event request to the provider. Satisfied by
// *twitter.Client; retry and timeout behavior belong to the implementation,
// never to the adapter.
type Sender interface {
	SendEvent(ctx context.Context, req twitter.SendEventRequest) (*twitter.SendEventResponse, error)
}

// Config carries the adapter's immutable collaborators and settings.
type Config struct {
	// ConsumerSecret keys the CRC challenge digest.
	ConsumerSecret string
	// OwnerID is the bot account's own user id; events it sent are dropped.
	OwnerID string
	// Sender performs outbound sends.
	Sender Sender
	// Handler receives translated incoming messages.
	Handler bot.Handler
	// Reporter receives inbound processing errors. Defaults to slog.
	Reporter bot.ErrorReporter
	// Metrics is optional; a nil value disables instrumentation.
	Metrics *metrics.WebhookMetrics
}

// Adapter is the translation boundary between Twitter DM webhooks and the
// bot framework. It holds no mutable state; every field is fixed at
// construction.
type Adapter struct {
	consumerSecret string
	ownerID        string
	sender         Sender
	handler        bot.Handler
	reporter       bot.ErrorReporter
	metrics        *metrics.WebhookMetrics
}

// New builds an Adapter from the given configuration.
func New(cfg Config) *Adapter {
	reporter := cfg.Reporter
	if reporter == nil {
		reporter = bot.SlogReporter{}
	}
	return &Adapter{
		consumerSecret: cfg.ConsumerSecret,
		ownerID:        cfg.OwnerID,
		sender:         cfg.Sender,
		handler:        cfg.Handler,
		reporter:       reporter,
		metrics:        cfg.Metrics,
	}
}

// ReportError forwards an error to the configured reporter. The HTTP layer
// uses it for failures that happen before a payload ever reaches the
// adapter, such as body decoding.
func (a *Adapter) ReportError(ctx context.Context, err error) {
	a.reporter.ReportError(ctx, err)
}

// ChallengeResponse answers a CRC challenge token.
func (a *Adapter) ChallengeResponse(token string) string {
	if a.metrics != nil {
		a.metrics.ChallengesTotal.Inc()
	}
	return ChallengeResponse(a.consumerSecret, token)
}

// HandleDelivery processes one webhook delivery: filter self-echo events,
// translate the first DM event, and hand the result to the message handler.
// It never fails outward; the webhook response to Twitter must stay 200
// regardless of what happens here, so errors only reach the reporter.
func (a *Adapter) HandleDelivery(ctx context.Context, payload twitter.WebhookPayload) {
	events := payload.DirectMessageEvents
	if len(events) == 0 {
		return
	}

	if a.metrics != nil {
		a.metrics.EventsReceivedTotal.Inc()
		if extra := len(events) - 1; extra > 0 {
			a.metrics.ExtraEventsDroppedTotal.Add(float64(extra))
		}
	}

	if events[0].MessageCreate.SenderID == a.ownerID {
		// Self-echo: Twitter delivers the bot's own sends back through the
		// same event stream. Not an error.
		if a.metrics != nil {
			a.metrics.EventsFilteredTotal.Inc()
		}
		slog.DebugContext(ctx, "Dropping self-echo event", "event_id", events[0].ID)
		return
	}

	msg, err := TranslateInbound(payload)
	if err != nil {
		if a.metrics != nil {
			a.metrics.TranslationFailuresTotal.Inc()
		}
		a.reporter.ReportError(ctx, fmt.Errorf("inbound translation: %w", err))
		// A timestamp failure still yields a deliverable message; only a
		// delivery with no events stops here, and that was guarded above.
	}

	if a.handler != nil {
		a.handler.HandleMessage(ctx, msg)
	}
}

// Send translates a normalized outgoing message, submits it, and returns
// the minimal acknowledgment. Failures carry the client's error unmodified
// under a single layer of context.
func (a *Adapter) Send(ctx context.Context, msg bot.OutgoingMessage) (bot.SendResponse, error) {
	req := TranslateOutbound(msg)

	resp, err := a.sender.SendEvent(ctx, req)
	if err != nil {
		if a.metrics != nil {
			a.metrics.SendFailuresTotal.Inc()
		}
		return bot.SendResponse{}, fmt.Errorf("failed to send direct message: %w", err)
	}

	if a.metrics != nil {
		a.metrics.MessagesSentTotal.Inc()
	}
	return SummarizeSend(req, resp), nil
}
