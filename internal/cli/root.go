package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jekyll-compose/internal/config"
	"jekyll-compose/internal/content"
	"jekyll-compose/internal/format"
	"jekyll-compose/internal/launch"

	"github.com/lmittmann/tint"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

type App struct {
	Root       string
	PrettyJSON bool
	Format     string
	Verbose    bool

	clock  content.Clock
	log    *slog.Logger
	runTUI func(app *App, root string) error
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	if app.clock == nil {
		app.clock = content.SystemClock
	}
	if app.runTUI == nil {
		app.runTUI = runTUI
	}

	cmd := &cobra.Command{
		Use:          "jekyll-compose",
		Short:        "Create, publish and manage Jekyll content (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  jekyll-compose

  # Scriptable commands
  jekyll-compose new post --title "Launch Day"
  jekyll-compose publish my-draft.md
  jekyll-compose recent --format text

  # Open a file by name (shortcut for: jekyll-compose open <file.md>)
  jekyll-compose 2024-01-05-launch-day.md
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				root, _, err := resolveRoot(app)
				if err != nil {
					return writeErr(cmd, err)
				}
				return app.runTUI(app, root)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		app.log = newLogger(cmd.ErrOrStderr(), app.Verbose)
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Root, "root", envOr("JEKYLL_COMPOSE_ROOT", ""), "Site root (default: nearest parent with _config.yml, else the current directory)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("JEKYLL_COMPOSE_FORMAT", "json"), "Output format (json|yaml|text)")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Log debug details to stderr")

	cmd.AddCommand(newWhereCmd(app))
	cmd.AddCommand(newNewCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newUnpublishCmd(app))
	cmd.AddCommand(newCollectionsCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newRecentCmd(app))
	cmd.AddCommand(newGeneratorCmd(app, launch.ActionBuild))
	cmd.AddCommand(newGeneratorCmd(app, launch.ActionServe))
	cmd.AddCommand(newOpenCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newReindexCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newTUICmd(app))

	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    termenv.NewOutput(w).ColorProfile() == termenv.Ascii,
	}))
}

// resolveRoot returns the site root and whether a _config.yml marks it.
// An explicit --root is used as given; otherwise the walk starts at the working directory.
func resolveRoot(app *App) (string, bool, error) {
	if r := strings.TrimSpace(app.Root); r != "" {
		abs, err := filepath.Abs(r)
		if err != nil {
			return "", false, err
		}
		st, err := os.Stat(abs)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", false, &content.NotFoundError{Kind: "site root", Path: abs}
			}
			return "", false, err
		}
		if !st.IsDir() {
			return "", false, fmt.Errorf("site root is not a directory: %s", abs)
		}
		_, err = os.Stat(filepath.Join(abs, content.MarkerFile))
		return abs, err == nil, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", false, err
	}
	root, found, err := content.FindRoot(wd)
	if err != nil {
		app.logger().Warn("site root discovery failed", "err", err)
	}
	if !found {
		return wd, false, nil
	}
	return root, true, nil
}

// requireSite is resolveRoot for commands that only make sense inside a Jekyll site.
func requireSite(app *App) (string, error) {
	root, found, err := resolveRoot(app)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("no %s found in %s or its parents (use --root)", content.MarkerFile, root)
	}
	return root, nil
}

// loadSettings tolerates a broken settings file outside the config commands.
func loadSettings(app *App, root string) config.Settings {
	s, err := config.Load(root)
	if err != nil {
		app.logger().Warn("ignoring settings file", "path", config.Path(root), "err", err)
		return config.Default()
	}
	return s
}

func (app *App) logger() *slog.Logger {
	if app.log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return app.log
}

func (app *App) engine(confirm content.ConfirmFunc) *content.Engine {
	return content.New(
		content.WithClock(app.clock),
		content.WithLogger(app.logger()),
		content.WithConfirm(confirm),
	)
}

// promptConfirm asks on stderr and reads one line from stdin. Anything but y/yes is no.
func promptConfirm(cmd *cobra.Command) content.ConfirmFunc {
	return func(message string) bool {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N] ", message)
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(cmd.ErrOrStderr())
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), errorLine(err))
	return err
}
