package cli

import (
	"jekyll-compose/internal/tui"

	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive TUI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _, err := resolveRoot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return app.runTUI(app, root)
		},
	}
}

func runTUI(app *App, root string) error {
	return tui.Run(tui.Options{
		Root:     root,
		Settings: loadSettings(app, root),
		Clock:    app.clock,
	})
}
