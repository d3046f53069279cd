// Package config provides environment-based configuration.
//
// Loads from .env file (godotenv), maps to Config struct via go-simpler/env
// struct tags. Missing Twitter credentials are fatal at startup; nothing is
// validated per-request.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Config is the immutable runtime configuration. It is loaded once at
// startup and passed explicitly to every component that needs it.
type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	ConsumerKey       string `env:"TWITTER_CONSUMER_KEY"`
	ConsumerSecret    string `env:"TWITTER_CONSUMER_SECRET"`
	AccessToken       string `env:"TWITTER_ACCESS_TOKEN"`
	AccessTokenSecret string `env:"TWITTER_ACCESS_TOKEN_SECRET"`

	// OwnerID is the bot account's own user id, used to drop self-echo
	// events from the Account Activity stream.
	OwnerID string `env:"TWITTER_OWNER_ID"`

	APIBaseURL string `env:"TWITTER_API_BASE_URL" default:"https://api.twitter.com/1.1"`

	SendTimeout     time.Duration `env:"SEND_TIMEOUT" default:"15s"`
	SendMaxAttempts int           `env:"SEND_MAX_ATTEMPTS" default:"1"`

	// EchoReplies makes the bundled demo handler reply to every DM with its
	// own text. Off by default; a real deployment wires its own handler.
	EchoReplies bool `env:"ECHO_REPLIES" default:"false"`
}

// Load reads the environment (and optional .env file) into a Config and
// validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"TWITTER_CONSUMER_KEY":        cfg.ConsumerKey,
		"TWITTER_CONSUMER_SECRET":     cfg.ConsumerSecret,
		"TWITTER_ACCESS_TOKEN":        cfg.AccessToken,
		"TWITTER_ACCESS_TOKEN_SECRET": cfg.AccessTokenSecret,
		"TWITTER_OWNER_ID":            cfg.OwnerID,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if cfg.SendMaxAttempts < 1 {
		return fmt.Errorf("SEND_MAX_ATTEMPTS must be at least 1, got %d", cfg.SendMaxAttempts)
	}

	return nil
}
