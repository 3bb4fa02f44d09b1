package tui

import (
	"os"

	"jekyll-compose/internal/content"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) previewHeight() int {
	h := m.height - 4
	if h < 3 {
		h = 3
	}
	return h
}

func (m *appModel) openPreview(it content.Item) {
	m.previewPath = it.Path
	m.previewTitle = it.Folder + "/" + it.Filename
	m.preview = viewport.New(m.width, m.previewHeight())
	m.loadPreview()
	m.mode = modePreview
}

func (m *appModel) loadPreview() {
	b, err := os.ReadFile(m.previewPath)
	if err != nil {
		m.preview.SetContent(styleStatus(statusError).Render(err.Error()))
		return
	}
	m.preview.SetContent(renderDocument(string(b), maxInt(10, m.width-2)))
}

func (m appModel) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "q", "p":
			m.mode = modeHome
			return m, nil
		case "e":
			m.mode = modeHome
			cmd := m.editFile(m.previewPath)
			return m, cmd
		case "o":
			cmd := m.openFile(m.previewPath)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m appModel) viewPreview() string {
	head := styleHeader().Render("Preview") + " " + styleMuted().Render(fitWidth(m.previewTitle, maxInt(1, m.width-10)))
	return head + "\n" + m.preview.View() + "\n" + m.footer("↑/↓: scroll   e: edit   o: open   esc: back")
}
