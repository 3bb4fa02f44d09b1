package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// compactItemDelegate renders one padded line per item: the title on the left and an
// optional muted detail column on the right.
type compactItemDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	detail   lipgloss.Style
	// focused dims the selection when the list does not have focus.
	focused *bool
}

type detailer interface {
	Detail() string
}

func newCompactItemDelegate(focused *bool) compactItemDelegate {
	return compactItemDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
		detail:  styleMuted(),
		focused: focused,
	}
}

func (d compactItemDelegate) Height() int  { return 1 }
func (d compactItemDelegate) Spacing() int { return 0 }
func (d compactItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d compactItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	active := index == m.Index() && (d.focused == nil || *d.focused)
	marker := "  "
	if index == m.Index() {
		marker = "› "
	}

	txt := ""
	if t, ok := item.(interface{ Title() string }); ok {
		txt = t.Title()
	} else {
		txt = fmt.Sprint(item)
	}
	detail := ""
	if dd, ok := item.(detailer); ok {
		detail = dd.Detail()
	}

	fmt.Fprint(w, renderRow(marker+txt, detail, contentW, active, d))
}

// renderRow pads or cuts left+detail to exactly width cells.
func renderRow(left, detail string, width int, active bool, d compactItemDelegate) string {
	detailW := xansi.StringWidth(detail)
	if detail != "" && detailW+2 < width/2 {
		leftW := width - detailW - 1
		left = fitWidth(left, leftW)
		if active {
			return d.selected.Render(left + " " + detail)
		}
		return d.normal.Render(left) + " " + d.detail.Render(detail)
	}
	line := fitWidth(left, width)
	if active {
		return d.selected.Render(line)
	}
	return d.normal.Render(line)
}

func fitWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	sw := xansi.StringWidth(s)
	switch {
	case sw < w:
		return s + strings.Repeat(" ", w-sw)
	case sw > w:
		if w == 1 {
			return xansi.Cut(s, 0, 1)
		}
		return xansi.Cut(s, 0, w-1) + "…"
	default:
		return s
	}
}
