package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"keypad-calculator/internal/config"
	"keypad-calculator/internal/observability"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRunReturnsStoreErrorInsteadOfExiting(t *testing.T) {
	// Accept every OTLP export so provider shutdowns finish immediately.
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(collector.Close)
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", collector.URL)
	t.Setenv("OTEL_LOGS_EXPORTER", "")

	core, logs := observer.New(zapcore.InfoLevel)
	prev := observability.Logger
	observability.Logger = zap.New(core)
	t.Cleanup(func() { observability.Logger = prev })

	cfg := config.DefaultAPI()
	cfg.Addr = "127.0.0.1:0"
	cfg.HistoryDB = filepath.Join(t.TempDir(), "missing", "dir", "history.db")

	err := run(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected an error for an unopenable history database")
	}
	if !strings.Contains(err.Error(), "open history store") {
		t.Fatalf("expected history store error, got %v", err)
	}
	if n := logs.FilterMessage("server started").Len(); n != 0 {
		t.Fatalf("expected server not to start, got %d start logs", n)
	}
}
