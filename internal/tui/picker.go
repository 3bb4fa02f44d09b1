package tui

import (
	"errors"

	"jekyll-compose/internal/content"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// pickerModel chooses one content file from a folder.
type pickerModel struct {
	title  string
	list   list.Model
	onPick func(m *appModel, it content.Item) tea.Cmd
}

func pickerHeight(termH int) int {
	h := termH - 12
	if h > 20 {
		h = 20
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m *appModel) openContentPicker(title, folder, emptyText string, onPick func(m *appModel, it content.Item) tea.Cmd) tea.Cmd {
	items, err := content.ListItems(m.root, folder)
	var nf *content.NotFoundError
	if err != nil && !errors.As(err, &nf) {
		return m.statusErr(title, err)
	}
	if len(items) == 0 {
		return m.setStatus(statusInfo, emptyText)
	}

	rows := make([]list.Item, 0, len(items))
	for _, it := range items {
		rows = append(rows, contentItem{item: it})
	}
	focused := new(bool)
	*focused = true
	l := list.New(rows, newCompactItemDelegate(focused), modalBodyWidth(m.width), pickerHeight(m.height))
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	m.picker = pickerModel{title: title, list: l, onPick: onPick}
	m.mode = modePicker
	return nil
}

func (m appModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		filtering := m.picker.list.FilterState() == list.Filtering
		switch km.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "ctrl+g":
			if !filtering && m.picker.list.FilterState() != list.FilterApplied {
				m.mode = modeHome
				return m, nil
			}
		case "enter":
			if filtering {
				break
			}
			it, ok := m.picker.list.SelectedItem().(contentItem)
			if !ok {
				return m, nil
			}
			m.mode = modeHome
			pick := m.picker.onPick
			m.picker = pickerModel{}
			if pick == nil {
				return m, nil
			}
			cmd := pick(&m, it.item)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.picker.list, cmd = m.picker.list.Update(msg)
	return m, cmd
}

func (p pickerModel) View(width int) string {
	help := styleMuted().Width(modalBodyWidth(width)).Render("enter: select   /: filter   esc: cancel")
	return renderModalBox(width, p.title, p.list.View()+"\n\n"+help)
}
