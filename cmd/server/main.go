package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/abhishekchotaliya/botmaster-twitter/internal/adapter/httpserver"
	"github.com/abhishekchotaliya/botmaster-twitter/internal/adapter/metrics"
	"github.com/abhishekchotaliya/botmaster-twitter/internal/adapter/webhook"
	"github.com/abhishekchotaliya/botmaster-twitter/internal/bot"
	"github.com/abhishekchotaliya/botmaster-twitter/internal/platform/config"
	"github.com/abhishekchotaliya/botmaster-twitter/internal/platform/logging"
	"github.com/abhishekchotaliya/botmaster-twitter/internal/platform/retry"
	"github.com/abhishekchotaliya/botmaster-twitter/internal/twitter"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized.
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupTwitterClient(cfg *config.Config) *twitter.Client {
	policy := retry.Single()
	if cfg.SendMaxAttempts > 1 {
		policy = retry.Policy{
			MaxAttempts:      cfg.SendMaxAttempts,
			InitialBackoff:   500 * time.Millisecond,
			RateLimitBackoff: 15 * time.Second,
			Clock:            clockwork.NewRealClock(),
			OnRetry: func(attempt int, err error, backoff time.Duration) {
				slog.Warn("Retrying direct message send", "attempt", attempt, "backoff", backoff, "error", err)
			},
		}
	}

	return twitter.NewClient(
		twitter.Credentials{
			ConsumerKey:       cfg.ConsumerKey,
			ConsumerSecret:    cfg.ConsumerSecret,
			AccessToken:       cfg.AccessToken,
			AccessTokenSecret: cfg.AccessTokenSecret,
		},
		twitter.WithBaseURL(cfg.APIBaseURL),
		twitter.WithRetryPolicy(policy),
	)
}

// newMessageHandler logs every incoming DM and, when echo replies are
// enabled, answers with the same text. Real deployments replace this with
// the host framework's handler.
func newMessageHandler(cfg *config.Config, adapter **webhook.Adapter) bot.Handler {
	return bot.HandlerFunc(func(ctx context.Context, msg bot.IncomingMessage) {
		slog.InfoContext(ctx, "Direct message received",
			"sender_id", msg.Sender.ID,
			"mid", msg.Message.MID,
			"has_text", msg.Message.Text != "",
		)

		if !cfg.EchoReplies || msg.Message.Text == "" {
			return
		}

		sendCtx, cancel := context.WithTimeout(ctx, cfg.SendTimeout)
		defer cancel()

		reply := bot.OutgoingMessage{
			Recipient: msg.Sender,
			Message:   bot.OutgoingContent{Text: msg.Message.Text},
		}
		ack, err := (*adapter).Send(sendCtx, reply)
		if err != nil {
			slog.ErrorContext(ctx, "Echo reply failed", "recipient_id", msg.Sender.ID, "error", err)
			return
		}
		slog.InfoContext(ctx, "Echo reply sent", "recipient_id", ack.RecipientID, "message_id", ack.MessageID)
	})
}

func runGracefulShutdown(srv *httpserver.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	registry := metrics.NewRegistry()
	webhookMetrics := metrics.NewWebhookMetrics(registry)

	client := setupTwitterClient(cfg)

	// The demo handler replies through the adapter, so the adapter pointer
	// is resolved after construction.
	var adapter *webhook.Adapter
	adapter = webhook.New(webhook.Config{
		ConsumerSecret: cfg.ConsumerSecret,
		OwnerID:        cfg.OwnerID,
		Sender:         client,
		Handler:        newMessageHandler(cfg, &adapter),
		Reporter:       bot.SlogReporter{},
		Metrics:        webhookMetrics,
	})

	srv := httpserver.NewServer(cfg, adapter, registry, nil)
	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
