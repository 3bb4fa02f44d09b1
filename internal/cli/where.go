package cli

import (
	"fmt"
	"os"

	"jekyll-compose/internal/config"

	"github.com/spf13/cobra"
)

type whereView struct {
	Root         string `json:"root"`
	Found        bool   `json:"found"`
	Settings     string `json:"settings"`
	SettingsFile bool   `json:"settingsFile"`
}

func (v whereView) Text() string {
	if !v.Found {
		return fmt.Sprintf("%s (no _config.yml; using current directory)", v.Root)
	}
	return v.Root
}

func newWhereCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "root",
		Short: "Show the resolved site root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, found, err := resolveRoot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, statErr := os.Stat(config.Path(root))
			return writeOut(cmd, app, map[string]any{
				"data": whereView{
					Root:         root,
					Found:        found,
					Settings:     config.Path(root),
					SettingsFile: statErr == nil,
				},
			})
		},
	}
}
