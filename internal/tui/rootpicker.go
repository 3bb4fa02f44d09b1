package tui

import (
	"path/filepath"

	"jekyll-compose/internal/config"
	"jekyll-compose/internal/content"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *appModel) openRootPicker() tea.Cmd {
	fp := filepicker.New()
	fp.DirAllowed = false
	fp.FileAllowed = false
	fp.ShowHidden = false
	fp.ShowPermissions = false
	fp.ShowSize = false
	fp.AutoHeight = false
	fp.Height = pickerHeight(m.height)
	fp.Cursor = "›"
	fp.KeyMap.Back = key.NewBinding(
		key.WithKeys("h", "backspace", "left"),
		key.WithHelp("h", "up"),
	)
	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.File = styleMuted()
	fp.Styles.DisabledFile = styleMuted()

	start := m.root
	if !dirExists(start) {
		start = "."
	}
	fp.CurrentDirectory = start

	m.rootPicker = fp
	m.mode = modeRootPicker
	return fp.Init()
}

func (m appModel) updateRootPicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "ctrl+g", "q":
			m.mode = modeHome
			return m, nil
		case "s", ".":
			cmd := m.setRoot(m.rootPicker.CurrentDirectory)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.rootPicker, cmd = m.rootPicker.Update(msg)
	return m, cmd
}

func (m appModel) viewRootPicker() string {
	dir := m.rootPicker.CurrentDirectory
	mark := styleMuted().Render("not a Jekyll site (no " + content.MarkerFile + ")")
	if fileExists(filepath.Join(dir, content.MarkerFile)) {
		mark = styleStatus(statusOK).Render("Jekyll site")
	}
	bodyW := modalBodyWidth(m.width)
	help := styleMuted().Width(bodyW).Render("enter/l: open dir   h/backspace: up   s: use this folder   esc: cancel")
	body := fitWidth(dir, bodyW) + "\n" + mark + "\n\n" + m.rootPicker.View() + "\n" + help
	return renderModalBox(m.width, "Change site root", body)
}

// setRoot switches the TUI to another site: settings, recent files and the watcher
// all follow the new root.
func (m *appModel) setRoot(dir string) tea.Cmd {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return m.statusErr("Site root", err)
	}
	m.mode = modeHome
	if !dirExists(abs) {
		return m.setStatus(statusError, "Not a directory: "+abs)
	}

	m.stopWatcher()
	m.root = abs
	var cmds []tea.Cmd
	s, err := config.Load(abs)
	if err != nil {
		cmds = append(cmds, m.statusErr("Settings", err))
	}
	m.settings = s
	m.actions.SetItems(homeActions(m.settings))
	m.refreshRecent()
	m.startWatcher()

	if err == nil {
		msg := "Site root: " + abs
		if !fileExists(filepath.Join(abs, content.MarkerFile)) {
			msg += " (no " + content.MarkerFile + ")"
		}
		cmds = append(cmds, m.setStatus(statusOK, msg))
	}
	cmds = append(cmds, m.waitForChange())
	return tea.Batch(cmds...)
}
