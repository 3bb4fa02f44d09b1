package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"jekyll-compose/internal/launch"

	tea "github.com/charmbracelet/bubbletea"
)

type externalKind int

const (
	externalOpen externalKind = iota
	externalEditor
	externalBuild
	externalServe
)

type externalDoneMsg struct {
	kind externalKind
	path string
	err  error
}

// openFile hands path to the configured editor, or to the platform's default
// application when none is set.
func (m *appModel) openFile(path string) tea.Cmd {
	if m.settings.Editor != "" {
		return m.editFile(path)
	}
	return startDetached(launch.OpenCommand(path), externalOpen, path)
}

func (m *appModel) editFile(path string) tea.Cmd {
	cmd := launch.EditorCommand(m.settings.Editor, path)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return externalDoneMsg{kind: externalEditor, path: path, err: err}
	})
}

func (m *appModel) openFolder() tea.Cmd {
	if !dirExists(m.root) {
		return m.setStatus(statusError, "Site folder does not exist: "+m.root)
	}
	return startDetached(launch.OpenCommand(m.root), externalOpen, m.root)
}

// runGenerator suspends the TUI while the site generator owns the terminal.
// A server runs until it is interrupted with ctrl+c.
func (m *appModel) runGenerator(action launch.Action) tea.Cmd {
	if !dirExists(m.root) {
		return m.setStatus(statusError, "Site folder does not exist: "+m.root)
	}
	cmd, err := launch.GeneratorCommand(context.Background(), m.settings.Generator, m.root, action)
	if err != nil {
		return m.statusErr("Generator", err)
	}
	root := m.root
	kind := externalBuild
	if action == launch.ActionServe {
		kind = externalServe
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return externalDoneMsg{kind: kind, path: root, err: err}
	})
}

// startDetached runs a GUI opener without giving it the terminal.
func startDetached(cmd *exec.Cmd, kind externalKind, path string) tea.Cmd {
	return func() tea.Msg {
		cmd.Stdin = nil
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
		if err := cmd.Start(); err != nil {
			return externalDoneMsg{kind: kind, path: path, err: err}
		}
		return externalDoneMsg{kind: kind, path: path, err: cmd.Wait()}
	}
}

func (m *appModel) handleExternalDone(msg externalDoneMsg) tea.Cmd {
	switch msg.kind {
	case externalEditor:
		m.refreshRecent()
		if msg.err != nil {
			return m.statusErr("Editor", msg.err)
		}
		return m.setStatus(statusInfo, "Edited "+m.rel(msg.path))
	case externalBuild:
		if msg.err != nil {
			return m.statusErr("Build failed", msg.err)
		}
		return m.setStatus(statusOK, "Site built")
	case externalServe:
		var exitErr *exec.ExitError
		if msg.err != nil && !errors.As(msg.err, &exitErr) {
			return m.statusErr("Serve", msg.err)
		}
		return m.setStatus(statusInfo, "Server stopped")
	default:
		if msg.err != nil {
			return m.statusErr("Open", msg.err)
		}
		return nil
	}
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

func dirExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}
