// Package config loads application configuration from the environment, with
// optional .env file support for local development.
package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Server holds the HTTP listener settings.
type Server struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port int    `envconfig:"PORT" default:"3000"`
}

// DB holds the database connection settings.
type DB struct {
	Url string `envconfig:"URL"`
}

// Jwt holds the token issuance settings.
type Jwt struct {
	Secret string        `envconfig:"SECRET_KEY" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// RateLimit holds the request throttling settings.
type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Ledger holds the tunables of the ledger engine.
type Ledger struct {
	// CommitRetries bounds the internal retries on transient commit conflicts
	// before the operation is surfaced as unavailable.
	CommitRetries int `envconfig:"COMMIT_RETRIES" default:"3"`
}

// Log holds console logging settings.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	Prefix     string `envconfig:"PREFIX" default:"banking-api"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"15:04:05"`
}

// App is the root configuration object.
type App struct {
	Env       string    `envconfig:"APP_ENV" default:"development"`
	Server    Server    `envconfig:"APP"`
	DB        DB        `envconfig:"DATABASE"`
	Jwt       Jwt       `envconfig:"JWT"`
	RateLimit RateLimit `envconfig:"RATE_LIMIT"`
	Ledger    Ledger    `envconfig:"LEDGER"`
	Log       Log       `envconfig:"LOG"`
}

// Load reads configuration from the environment, first loading variables from
// the given .env file if one exists.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()
	var err error
	if len(envFilePath) > 0 && envFilePath[0] != "" {
		err = godotenv.Load(envFilePath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		logger.Warn("no .env file found, using system environment variables")
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
