package cli

import (
	"context"
	"os"
	"os/signal"

	"jekyll-compose/internal/launch"

	"github.com/spf13/cobra"
)

func newGeneratorCmd(app *App, action launch.Action) *cobra.Command {
	short := "Build the site with the configured generator"
	if action == launch.ActionServe {
		short = "Serve the site locally with the configured generator (Ctrl-C to stop)"
	}

	return &cobra.Command{
		Use:   string(action) + " [-- generator flags...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := requireSite(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			settings := loadSettings(app, root)

			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
			defer stop()

			app.logger().Info("running generator", "generator", settings.Generator, "action", action, "root", root)
			err = launch.RunGenerator(ctx, settings.Generator, root, action,
				cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args...)
			if err != nil && ctx.Err() == nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
