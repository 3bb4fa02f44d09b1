package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusError
)

const statusTimeout = 3 * time.Second

// clearStatusMsg clears the status line unless a newer message replaced it.
type clearStatusMsg struct{ seq int }

// setStatus replaces the status line and schedules its removal.
func (m *appModel) setStatus(kind statusKind, text string) tea.Cmd {
	m.statusSeq++
	m.statusText = text
	m.statusKind = kind
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m *appModel) statusErr(prefix string, err error) tea.Cmd {
	return m.setStatus(statusError, prefix+": "+err.Error())
}

func (m *appModel) clearStatus(msg clearStatusMsg) {
	if msg.seq == m.statusSeq {
		m.statusText = ""
	}
}
