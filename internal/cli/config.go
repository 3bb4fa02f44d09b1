package cli

import (
	"fmt"
	"strings"

	"jekyll-compose/internal/config"

	"github.com/spf13/cobra"
)

type settingsView struct {
	Path     string          `json:"path"`
	Settings config.Settings `json:"settings"`
}

func (v settingsView) Text() string {
	var b strings.Builder
	for _, k := range config.Keys() {
		val, _ := v.Settings.Get(k)
		fmt.Fprintf(&b, "%s = %s\n", k, val)
	}
	return b.String()
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change per-site settings (" + config.FileName + ")",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _, err := resolveRoot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := config.Load(root)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": settingsView{Path: config.Path(root), Settings: s},
			})
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting (" + strings.Join(config.Keys(), ", ") + ")",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _, err := resolveRoot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := config.LoadFile(root)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Set(args[0], args[1]); err != nil {
				return writeErr(cmd, errUsage("%v", err))
			}
			if err := config.Save(root, s); err != nil {
				return writeErr(cmd, err)
			}
			app.logger().Info("settings saved", "path", config.Path(root), "key", args[0])
			return writeOut(cmd, app, map[string]any{
				"data": settingsView{Path: config.Path(root), Settings: s},
			})
		},
	}

	cmd.AddCommand(showCmd)
	cmd.AddCommand(setCmd)
	return cmd
}
