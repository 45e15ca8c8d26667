package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/DoyleJ11/checkers-client/internal/conn"
)

var (
	ErrInvalidServerURL = errors.New("invalid server url")
	ErrInvalidDuration  = errors.New("negative duration")
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	ServerURL    string
	PlayerName   string
	DialTimeout  time.Duration
	WriteTimeout time.Duration
	PingInterval time.Duration
	OutboxSize   int
	LogLevel     string
	LogFile      string
	Headless     bool
}

func Default() Config {
	opts := conn.DefaultOptions()
	return Config{
		ServerURL:    opts.URL,
		DialTimeout:  opts.DialTimeout,
		WriteTimeout: opts.WriteTimeout,
		PingInterval: opts.PingInterval,
		OutboxSize:   opts.OutboxSize,
		LogLevel:     "info",
	}
}

// Load starts from Default and applies whatever the environment sets.
// Unparsable values are ignored.
func Load() Config {
	cfg := Default()
	if raw := os.Getenv("CHECKERS_SERVER_URL"); raw != "" {
		cfg.ServerURL = raw
	}
	if raw := os.Getenv("CHECKERS_PLAYER_NAME"); raw != "" {
		cfg.PlayerName = raw
	}
	if raw := os.Getenv("CHECKERS_DIAL_TIMEOUT"); raw != "" {
		if value, err := time.ParseDuration(raw); err == nil {
			cfg.DialTimeout = value
		}
	}
	if raw := os.Getenv("CHECKERS_WRITE_TIMEOUT"); raw != "" {
		if value, err := time.ParseDuration(raw); err == nil {
			cfg.WriteTimeout = value
		}
	}
	if raw := os.Getenv("CHECKERS_PING_INTERVAL"); raw != "" {
		if value, err := time.ParseDuration(raw); err == nil {
			cfg.PingInterval = value
		}
	}
	if raw := os.Getenv("CHECKERS_OUTBOX_SIZE"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.OutboxSize = value
		}
	}
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		cfg.LogLevel = raw
	}
	if raw := os.Getenv("LOG_FILE"); raw != "" {
		cfg.LogFile = raw
	}
	if raw := os.Getenv("CHECKERS_HEADLESS"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.Headless = value
		}
	}
	return cfg
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var err error
	u, perr := url.Parse(c.ServerURL)
	switch {
	case perr != nil:
		err = multierr.Append(err, fmt.Errorf("%w: %v", ErrInvalidServerURL, perr))
	case u.Scheme != "ws" && u.Scheme != "wss":
		err = multierr.Append(err, fmt.Errorf("%w: scheme %q, want ws or wss", ErrInvalidServerURL, u.Scheme))
	case u.Host == "":
		err = multierr.Append(err, fmt.Errorf("%w: missing host", ErrInvalidServerURL))
	}
	if c.DialTimeout < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: dial timeout %v", ErrInvalidDuration, c.DialTimeout))
	}
	if c.WriteTimeout < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: write timeout %v", ErrInvalidDuration, c.WriteTimeout))
	}
	if c.PingInterval < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: ping interval %v", ErrInvalidDuration, c.PingInterval))
	}
	return err
}

func (c Config) ConnOptions() conn.Options {
	opts := conn.DefaultOptions()
	opts.URL = c.ServerURL
	opts.PlayerName = c.PlayerName
	opts.DialTimeout = c.DialTimeout
	opts.WriteTimeout = c.WriteTimeout
	opts.PingInterval = c.PingInterval
	opts.OutboxSize = c.OutboxSize
	return opts
}
