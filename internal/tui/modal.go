package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	modalMaxW = 72
	modalMinW = 24
)

func modalWidth(termW int) int {
	w := termW - 4
	if w > modalMaxW {
		w = modalMaxW
	}
	if w < modalMinW {
		w = modalMinW
	}
	return w
}

// modalBodyWidth is the usable text width inside a modal box (border + padding).
func modalBodyWidth(termW int) int {
	return modalWidth(termW) - 4
}

func renderModalBox(termW int, title, body string) string {
	w := modalWidth(termW)
	head := styleSectionTitle().Render(title)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(w - 2)
	return box.Render(strings.Join([]string{head, "", body}, "\n"))
}
