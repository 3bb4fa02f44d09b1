package cli

import (
	"os"
	"strings"

	"jekyll-compose/internal/content"
	"jekyll-compose/internal/launch"

	"github.com/spf13/cobra"
)

type openedView struct {
	Path   string `json:"path"`
	Editor string `json:"editor,omitempty"`
}

func (v openedView) Text() string {
	if v.Editor != "" {
		return "edited " + v.Path
	}
	return "opened " + v.Path
}

func newOpenCmd(app *App) *cobra.Command {
	var useEditor bool

	cmd := &cobra.Command{
		Use:   "open [file.md|path]",
		Short: "Open a content file (or the site folder) with the default app or your editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _, err := resolveRoot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			path := root
			if len(args) == 1 {
				if path, err = resolveContentPath(root, args[0]); err != nil {
					return writeErr(cmd, err)
				}
			}

			out := openedView{Path: path}
			if useEditor {
				settings := loadSettings(app, root)
				c := launch.EditorCommand(settings.Editor, path)
				c.Stdin = cmd.InOrStdin()
				c.Stdout = cmd.OutOrStdout()
				c.Stderr = cmd.ErrOrStderr()
				if err := c.Run(); err != nil {
					return writeErr(cmd, err)
				}
				out.Editor = launch.EditorName(settings.Editor)
			} else if err := launch.OpenPath(path); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().BoolVarP(&useEditor, "editor", "e", false, "Open in $VISUAL/$EDITOR (or the editor setting) instead of the default app")
	return cmd
}

// resolveContentPath accepts an existing path or a bare filename found in _posts,
// _drafts or _pages.
func resolveContentPath(root, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if strings.ContainsAny(arg, `/\`) {
		if _, err := os.Stat(arg); err != nil {
			return "", &content.NotFoundError{Kind: "file", Path: arg}
		}
		return arg, nil
	}
	it, err := content.Locate(root, arg)
	if err != nil {
		return "", err
	}
	return it.Path, nil
}
