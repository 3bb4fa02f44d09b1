package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// confirmState is a pending yes/no question. onConfirm runs only for yes.
type confirmState struct {
	title     string
	body      string
	yesLabel  string
	noLabel   string
	focus     confirmModalFocus
	onConfirm func(m *appModel) tea.Cmd
}

func renderConfirmModal(width int, c confirmState) string {
	// No nested borders: some terminals smear background colors inside a bordered box.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	yes := btnBase.Render(c.yesLabel)
	no := btnBase.Render(c.noLabel)
	if c.focus == confirmFocusConfirm {
		yes = btnActive.Render(c.yesLabel)
	} else {
		no = btnActive.Render(c.noLabel)
	}

	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, yes, sep, no)

	help := styleMuted().Width(modalBodyWidth(width)).Render("tab: focus   enter: select   y/n   esc: cancel")

	content := strings.Join([]string{
		c.body,
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, c.title, content)
}

// updateConfirm handles keys while a confirm modal is open. It reports whether the
// modal closed and, if so, whether the answer was yes.
func updateConfirm(c *confirmState, msg tea.KeyMsg) (closed bool, yes bool) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		if c.focus == confirmFocusConfirm {
			c.focus = confirmFocusCancel
		} else {
			c.focus = confirmFocusConfirm
		}
	case "y", "Y":
		return true, true
	case "n", "N", "esc", "ctrl+g", "q":
		return true, false
	case "enter":
		return true, c.focus == confirmFocusConfirm
	}
	return false, false
}
