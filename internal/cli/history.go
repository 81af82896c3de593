package cli

import (
	"fmt"

	"keypad-calculator/internal/history"
	"keypad-calculator/internal/keypad"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored calculations, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 || limit > history.MaxLimit {
				return fmt.Errorf("--limit must be between 1 and %d", history.MaxLimit)
			}
			items, err := app.client().List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if app.Format == "text" {
				out := cmd.OutOrStdout()
				if len(items) == 0 {
					fmt.Fprintln(out, "No history yet.")
				}
				for _, e := range items {
					fmt.Fprintf(out, "%s  %s\n", keypad.FormatEntry(e), e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
				}
				return nil
			}
			return writeJSON(cmd, app, history.ListResponse{Items: items})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", history.DefaultLimit, "Maximum number of entries")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all stored calculations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.client().Clear(cmd.Context()); err != nil {
				return err
			}
			if app.Format == "text" {
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
				return nil
			}
			return writeJSON(cmd, app, map[string]bool{"cleared": true})
		},
	})

	return cmd
}
