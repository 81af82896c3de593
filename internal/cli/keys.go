package cli

import (
	"fmt"

	"keypad-calculator/internal/keypad"

	"github.com/spf13/cobra"
)

type keysResult struct {
	Display string `json:"display"`
	Preview string `json:"preview"`
	Status  string `json:"status"`
}

func newKeysCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "keys <script>",
		Short: "Run keystrokes through the calculator and print the result",
		Long: `Run keystrokes through the calculator and print the final screen.

Keys: 0-9 and . enter digits, + - * / are operators, = evaluates,
n toggles the sign, b is backspace and c clears everything.
Whitespace is ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actions, err := keypad.ParseScript(args[0])
			if err != nil {
				return err
			}

			sess := keypad.NewSession(app.services(), nil)
			st := sess.Run(cmd.Context(), actions...)

			if app.Format == "text" {
				out := cmd.OutOrStdout()
				if p := st.Preview(); p != "" {
					fmt.Fprintln(out, p)
				}
				fmt.Fprintln(out, st.Display())
				if st.Status != "" {
					fmt.Fprintln(cmd.ErrOrStderr(), st.Status)
				}
				return nil
			}
			return writeJSON(cmd, app, keysResult{
				Display: st.Display(),
				Preview: st.Preview(),
				Status:  st.Status,
			})
		},
	}
}
