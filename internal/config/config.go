// Package config loads rpg-dice settings from the environment
package config

import (
	"io"
	"log/slog"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-dice/internal/errors"
)

// Supported log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds process-wide settings. Cobra flags override these values.
type Config struct {
	GRPCPort  int    `env:"RPG_DICE_GRPC_PORT" envDefault:"50051"`
	HTTPPort  int    `env:"RPG_DICE_HTTP_PORT" envDefault:"8080"`
	Debug     bool   `env:"RPG_DICE_DEBUG" envDefault:"false"`
	LogFormat string `env:"RPG_DICE_LOG_FORMAT" envDefault:"text"`

	// Seed makes rolls reproducible; zero keeps the crypto-backed source
	Seed uint64 `env:"RPG_DICE_SEED" envDefault:"0"`
}

// Load parses the environment into a Config and validates it
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks ports and log format
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("grpc_port", c.GRPCPort, 1, 65535, vb)
	errors.ValidateRange("http_port", c.HTTPPort, 0, 65535, vb)
	errors.ValidateEnum("log_format", c.LogFormat, []string{LogFormatText, LogFormatJSON}, vb)

	return vb.Build()
}

// Logger builds the slog logger described by the config
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if c.Debug {
		opts.Level = slog.LevelDebug
	}

	if c.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
