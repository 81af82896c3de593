// Package cli wires the calc command: the interactive keypad by default, plus
// scriptable subcommands that drive the same state machine headlessly.
package cli

import (
	"context"
	"fmt"
	"strings"

	"keypad-calculator/internal/client"
	"keypad-calculator/internal/config"
	"keypad-calculator/internal/keypad"
	"keypad-calculator/internal/observability"
	"keypad-calculator/internal/tui"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	Config     config.Client
	Format     string
	PrettyJSON bool

	shutdown []func(context.Context) error
}

// Execute runs the calc command. Logs and traces are flushed however the
// command ends; cobra skips post-run hooks after a failed RunE.
func Execute(ctx context.Context) error {
	cmd, app := newRoot()
	return execute(ctx, cmd, app)
}

func execute(ctx context.Context, cmd *cobra.Command, app *App) error {
	defer app.close()
	return cmd.ExecuteContext(ctx)
}

func NewRootCmd() *cobra.Command {
	cmd, _ := newRoot()
	return cmd
}

func newRoot() (*cobra.Command, *App) {
	cfg, envErr := config.ClientFromEnv()
	app := &App{Config: cfg}

	cmd := &cobra.Command{
		Use:          "calc",
		Short:        "Keypad calculator backed by the calculator API",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Interactive keypad
  calc

  # Feed keystrokes headlessly
  calc keys "4+5+3="

  # Inspect or clear stored calculations
  calc history --limit 10
  calc history clear
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if envErr != nil {
			return envErr
		}
		if err := app.Config.Validate(); err != nil {
			return err
		}
		switch app.Format {
		case "json", "text":
		default:
			return fmt.Errorf("unknown format %q (want json or text)", app.Format)
		}
		return app.initObservability(cmd.Context())
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&app.Config.BaseURL, "api", app.Config.BaseURL, "Calculator API base URL (env CALC_API_BASE_URL)")
	flags.IntVar(&app.Config.HistoryLimit, "history-limit", app.Config.HistoryLimit, "History entries to fetch (env CALC_HISTORY_LIMIT)")
	flags.DurationVar(&app.Config.StatusTTL, "status-ttl", app.Config.StatusTTL, "How long status messages stay up (env CALC_STATUS_TTL)")
	flags.DurationVar(&app.Config.Timeout, "timeout", app.Config.Timeout, "Per-request timeout, 0 for none (env CALC_TIMEOUT)")
	flags.StringVar(&app.Config.LogFile, "log-file", app.Config.LogFile, "Write JSON logs to this file (env CALC_LOG_FILE)")
	flags.StringVar(&app.Format, "format", config.EnvOr("CALC_FORMAT", "json"), "Output format for scriptable commands (json|text)")
	flags.BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newKeysCmd(app))
	cmd.AddCommand(newHistoryCmd(app))

	return cmd, app
}

func (app *App) initObservability(ctx context.Context) error {
	observability.DefaultServiceName = "calculator-tui"

	if err := observability.InitFileLogger(app.Config.LogFile); err != nil {
		return err
	}
	app.shutdown = append(app.shutdown, func(context.Context) error {
		observability.SyncLogger()
		return nil
	})

	if observability.TraceExportEnabled() {
		traceShutdown, err := observability.InitTracing(ctx)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		app.shutdown = append(app.shutdown, traceShutdown)
	}
	return nil
}

func (app *App) close() {
	for i := len(app.shutdown) - 1; i >= 0; i-- {
		if err := app.shutdown[i](context.Background()); err != nil {
			observability.Logger.Warn("shutdown failed", zap.Error(err))
		}
	}
	app.shutdown = nil
}

func (app *App) client() *client.Client {
	return client.New(app.Config.BaseURL, app.Config.Timeout)
}

func (app *App) services() keypad.Services {
	c := app.client()
	return keypad.Services{Compute: c, History: c, Limit: app.Config.HistoryLimit}
}

func runTUI(ctx context.Context, app *App) error {
	observability.Logger.Info("starting keypad", zap.String("api", app.Config.BaseURL))
	return tui.Run(ctx, app.services(), tui.Options{
		BaseURL:   app.Config.BaseURL,
		StatusTTL: app.Config.StatusTTL,
	})
}

func writeJSON(cmd *cobra.Command, app *App, v any) error {
	var (
		b   []byte
		err error
	)
	if app.PrettyJSON {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}
