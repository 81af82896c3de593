// Package config resolves settings for the API server and the keypad client
// from the environment (optionally seeded by a .env file).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIAddr       = ":3001"
	DefaultHistoryDB     = "calculator.db"
	DefaultAPIBaseURL    = "http://localhost:3001"
	DefaultHistoryLimit  = 50
	DefaultStatusTTL     = 4500 * time.Millisecond
	DefaultClientTimeout = time.Duration(0)
)

// API configures cmd/api.
type API struct {
	Addr          string
	HistoryDB     string
	AllowedOrigin string
}

// Client configures the keypad client (TUI and headless commands).
type Client struct {
	BaseURL      string
	HistoryLimit int
	StatusTTL    time.Duration
	// Timeout bounds each HTTP call; zero means no timeout.
	Timeout time.Duration
	LogFile string
}

// LoadDotEnv loads variables from .env when present. Existing process
// environment variables are not overridden.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

func DefaultAPI() API {
	return API{
		Addr:      DefaultAPIAddr,
		HistoryDB: DefaultHistoryDB,
	}
}

func APIFromEnv() API {
	cfg := DefaultAPI()
	cfg.Addr = EnvOr("CALC_API_ADDR", cfg.Addr)
	cfg.HistoryDB = EnvOr("CALC_HISTORY_DB", cfg.HistoryDB)
	cfg.AllowedOrigin = EnvOr("CALC_CORS_ORIGIN", cfg.AllowedOrigin)
	return cfg
}

func DefaultClient() Client {
	return Client{
		BaseURL:      DefaultAPIBaseURL,
		HistoryLimit: DefaultHistoryLimit,
		StatusTTL:    DefaultStatusTTL,
		Timeout:      DefaultClientTimeout,
	}
}

// ClientFromEnv applies CALC_* overrides to DefaultClient. Malformed numeric
// values are reported rather than silently ignored.
func ClientFromEnv() (Client, error) {
	cfg := DefaultClient()
	cfg.BaseURL = EnvOr("CALC_API_BASE_URL", cfg.BaseURL)
	cfg.LogFile = EnvOr("CALC_LOG_FILE", cfg.LogFile)

	var err error
	if cfg.HistoryLimit, err = envInt("CALC_HISTORY_LIMIT", cfg.HistoryLimit); err != nil {
		return cfg, err
	}
	if cfg.StatusTTL, err = envDuration("CALC_STATUS_TTL", cfg.StatusTTL); err != nil {
		return cfg, err
	}
	if cfg.Timeout, err = envDuration("CALC_TIMEOUT", cfg.Timeout); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the client cannot run with.
func (c Client) Validate() error {
	if c.BaseURL == "" {
		return errors.New("api base url is required")
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("history limit must be positive, got %d", c.HistoryLimit)
	}
	if c.StatusTTL <= 0 {
		return fmt.Errorf("status ttl must be positive, got %s", c.StatusTTL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

func EnvOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return d, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return d, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

func envDuration(k string, d time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return d, nil
	}
	n, err := time.ParseDuration(v)
	if err != nil {
		return d, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}
