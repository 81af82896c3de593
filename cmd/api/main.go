package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"keypad-calculator/internal/config"
	"keypad-calculator/internal/history"
	"keypad-calculator/internal/observability"
	"keypad-calculator/internal/server"
)

func main() {

	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}
	cfg := config.APIFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Logger
	err := observability.InitLogger()
	if err != nil {
		panic(err)
	}

	// run returns before os.Exit so its deferred shutdowns always flush.
	err = run(ctx, cfg)
	if err != nil {
		observability.Logger.Error("api exited", zap.Error(err))
	}
	observability.SyncLogger()
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.API) error {

	if observability.LogExportEnabled() {
		logShutdown, err := observability.InitLogging(ctx)
		if err != nil {
			return fmt.Errorf("init log export: %w", err)
		}
		defer logShutdown(context.Background())
	}

	// Tracing
	traceShutdown, err := observability.InitTracing(ctx)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer traceShutdown(context.Background())

	// Metrics
	metricShutdown, err := initMetrics(ctx)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer metricShutdown(context.Background())

	// History store
	store, err := history.OpenSQLite(ctx, cfg.HistoryDB)
	if err != nil {
		return fmt.Errorf("open history store %s: %w", cfg.HistoryDB, err)
	}
	defer store.Close()

	// Router
	router := server.NewRouter(server.Config{
		Store:         store,
		AllowedOrigin: cfg.AllowedOrigin,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		observability.Logger.Info("server started",
			zap.String("addr", cfg.Addr),
			zap.String("history_db", cfg.HistoryDB),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return shutdown(srv)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	observability.Logger.Info("server stopped")
	return nil
}

func shutdown(srv *http.Server) error {

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}
