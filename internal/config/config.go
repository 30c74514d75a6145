// Package config provides runtime configuration values for the service.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds configuration knobs for the HTTP server, the engine and its collaborators.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`

	Locale             string  `env:"LOCALE" envDefault:"ko"`
	BillRejectRate     float64 `env:"BILL_REJECT_RATE" envDefault:"0.15"`
	RandomSeed         int64   `env:"RANDOM_SEED" envDefault:"0"`
	InitialWallet      int64   `env:"INITIAL_WALLET" envDefault:"10000"`
	InitialCardBalance int64   `env:"INITIAL_CARD_BALANCE" envDefault:"10000"`
	InitialStock       int     `env:"INITIAL_STOCK" envDefault:"5"`

	QueueBuffer        int `env:"QUEUE_BUFFER" envDefault:"128"`
	QueueHighWatermark int `env:"QUEUE_HIGH_WATERMARK" envDefault:"5000"`

	MessageResetAfter time.Duration `env:"MESSAGE_RESET_AFTER" envDefault:"10s"`
	MessageResetPoll  time.Duration `env:"MESSAGE_RESET_POLL" envDefault:"250ms"`
}

// ErrInvalid wraps every validation failure returned by Load.
var ErrInvalid = errors.New("invalid config")

// Load collects configuration from environment with defaults.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks ranges env parsing cannot express.
func (c Config) Validate() error {
	switch {
	case c.BillRejectRate < 0 || c.BillRejectRate > 1:
		return fmt.Errorf("%w: BILL_REJECT_RATE must be within [0,1], got %v", ErrInvalid, c.BillRejectRate)
	case c.InitialWallet < 0:
		return fmt.Errorf("%w: INITIAL_WALLET must be >= 0", ErrInvalid)
	case c.InitialCardBalance < 0:
		return fmt.Errorf("%w: INITIAL_CARD_BALANCE must be >= 0", ErrInvalid)
	case c.InitialStock < 0:
		return fmt.Errorf("%w: INITIAL_STOCK must be >= 0", ErrInvalid)
	case c.MessageResetAfter < 0:
		return fmt.Errorf("%w: MESSAGE_RESET_AFTER must be >= 0", ErrInvalid)
	case c.MessageResetAfter > 0 && c.MessageResetPoll <= 0:
		return fmt.Errorf("%w: MESSAGE_RESET_POLL must be > 0", ErrInvalid)
	}
	return nil
}
