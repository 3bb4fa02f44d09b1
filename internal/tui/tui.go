// Package tui is the interactive front end: a home screen of actions next to the
// recently edited files, with forms, pickers and previews as overlays.
package tui

import (
	"io"
	"log/slog"
	"time"

	"jekyll-compose/internal/config"
	"jekyll-compose/internal/content"

	tea "github.com/charmbracelet/bubbletea"
)

const watchDebounce = 300 * time.Millisecond

type Options struct {
	Root     string
	Settings config.Settings
	Clock    content.Clock
}

func Run(opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()

	// Anything logged while the alternate screen is up would corrupt it.
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer slog.SetDefault(prev)

	m := newAppModel(opts)
	m.startWatcher()

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if fm, ok := final.(appModel); ok {
		fm.stopWatcher()
	}
	m.stopWatcher()
	return err
}
