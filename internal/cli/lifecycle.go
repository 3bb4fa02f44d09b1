package cli

import (
	"path/filepath"

	"jekyll-compose/internal/content"

	"github.com/spf13/cobra"
)

type movedView content.MoveResult

func (v movedView) Text() string {
	return v.From + " -> " + v.To
}

func newPublishCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <draft.md>",
		Short: "Move a draft into _posts with today's date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _, err := resolveRoot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := app.engine(nil).Publish(root, filepath.Base(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": movedView(res),
				"_hints": []string{
					"jekyll-compose unpublish " + filepath.Base(res.To),
					"jekyll-compose build",
				},
			})
		},
	}
}

func newUnpublishCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unpublish <post.md>",
		Short: "Move a post back into _drafts, dropping its date prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _, err := resolveRoot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := app.engine(nil).Unpublish(root, filepath.Base(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": movedView(res),
				"_hints": []string{
					"jekyll-compose publish " + filepath.Base(res.To),
				},
			})
		},
	}
}
