package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings, loaded from COURSEBOOK_* env vars.
type Config struct {
	Addr   string `envconfig:"ADDR" default:":8080"`
	Env    string `envconfig:"ENV" default:"development"`
	DBPath string `envconfig:"DB_PATH" default:"coursebook.db"`

	// CSRFKey is a 64-hex-char (32 byte) secret. Required in production;
	// a random key is generated per startup in development.
	CSRFKey string `envconfig:"CSRF_KEY"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@coursebook.local"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"castle-in-the-sky"`

	ResendKey    string `envconfig:"RESEND_KEY"`
	EmailFrom    string `envconfig:"EMAIL_FROM" default:"Coursebook <noreply@coursebook.local>"`
	EmailReplyTo string `envconfig:"EMAIL_REPLY_TO" default:"info@coursebook.local"`

	RateLimitPerSecond int `envconfig:"RATE_LIMIT_PER_SECOND" default:"10"`
}

// Load reads .env (when present) and processes COURSEBOOK_* variables.
// PRE: none
// POST: Returns a populated Config or an error
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("config_event", "event", "no_dotenv", "error", err)
	}
	var cfg Config
	if err := envconfig.Process("coursebook", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
