package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	ReplyModeTwiML = "twiml"
	ReplyModeSync  = "sync"
	ReplyModeAsync = "async"

	// TwilioWebhookTimeout is how long Twilio waits for a webhook answer before error 11200.
	TwilioWebhookTimeout = 15 * time.Second
)

// Settings holds everything the webhook reads from the environment.
type Settings struct {
	Port     string `env:"PORT" envDefault:"10000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"LOG_JSON" envDefault:"true"`

	ReplyMode string        `env:"REPLY_MODE" envDefault:"twiml"`
	DedupTTL  time.Duration `env:"DEDUP_TTL" envDefault:"10m"`

	TwilioAccountSID        string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken         string `env:"TWILIO_AUTH_TOKEN"`
	TwilioWhatsAppFrom      string `env:"TWILIO_WHATSAPP_FROM" envDefault:"whatsapp:+14155238886"`
	StatusCallbackURL       string `env:"STATUS_CALLBACK_URL"`
	TwilioValidateSignature bool   `env:"TWILIO_VALIDATE_SIGNATURE" envDefault:"false"`
	PublicBaseURL           string `env:"PUBLIC_BASE_URL"`

	OutboxWorkers  int           `env:"OUTBOX_WORKERS" envDefault:"3"`
	OutboxSize     int           `env:"OUTBOX_SIZE" envDefault:"100"`
	SendTimeout    time.Duration `env:"SEND_TIMEOUT" envDefault:"20s"`
	SendMaxRetries uint64        `env:"SEND_MAX_RETRIES" envDefault:"3"`

	// SyncSendTimeout bounds the send made inside the webhook request in sync mode.
	SyncSendTimeout time.Duration `env:"SYNC_SEND_TIMEOUT" envDefault:"10s"`

	MongoURI      string `env:"MONGODB_URI"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"CataConta"`
}

// LoadEnv loads a .env file into the process environment. A missing file is not fatal,
// hosted deployments set the variables directly.
func LoadEnv() error {
	err := godotenv.Load(".env")
	if err != nil {
		log.Printf("could not load .env file: %v", err)
		return err
	}
	return nil
}

// Load parses Settings from the environment and validates them.
func Load() (*Settings, error) {
	var settings Settings
	if err := env.Parse(&settings); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks combinations env tags cannot express.
func (s *Settings) Validate() error {
	switch s.ReplyMode {
	case ReplyModeTwiML:
	case ReplyModeSync, ReplyModeAsync:
		if s.TwilioAccountSID == "" || s.TwilioAuthToken == "" {
			return fmt.Errorf("reply mode %q requires TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN", s.ReplyMode)
		}
		if s.ReplyMode == ReplyModeSync && (s.SyncSendTimeout <= 0 || s.SyncSendTimeout >= TwilioWebhookTimeout) {
			return fmt.Errorf("SYNC_SEND_TIMEOUT must be positive and below %s, got %s", TwilioWebhookTimeout, s.SyncSendTimeout)
		}
	default:
		return fmt.Errorf("unknown REPLY_MODE %q", s.ReplyMode)
	}

	if s.TwilioValidateSignature && (s.TwilioAuthToken == "" || s.PublicBaseURL == "") {
		return errors.New("TWILIO_VALIDATE_SIGNATURE requires TWILIO_AUTH_TOKEN and PUBLIC_BASE_URL")
	}

	if s.OutboxWorkers <= 0 {
		s.OutboxWorkers = 3
	}
	if s.OutboxSize <= 0 {
		s.OutboxSize = 100
	}
	return nil
}

// UsesProvider reports whether replies leave through the vendor API instead of inline markup.
func (s *Settings) UsesProvider() bool {
	return s.ReplyMode == ReplyModeSync || s.ReplyMode == ReplyModeAsync
}

// InlineSendTimeout is the bound for a send made while the webhook request is open.
func (s *Settings) InlineSendTimeout() time.Duration {
	if s.ReplyMode == ReplyModeSync {
		return s.SyncSendTimeout
	}
	return s.SendTimeout
}
