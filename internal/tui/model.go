package tui

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"jekyll-compose/internal/config"
	"jekyll-compose/internal/content"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type viewMode int

const (
	modeHome viewMode = iota
	modeForm
	modePicker
	modeConfirm
	modePreview
	modeRootPicker
)

type homePane int

const (
	paneActions homePane = iota
	paneRecent
)

const actionsPaneWidth = 30

type appModel struct {
	root     string
	settings config.Settings
	clock    content.Clock
	engine   *content.Engine

	width  int
	height int

	mode viewMode
	pane homePane

	actions        list.Model
	actionsFocused *bool
	recent         list.Model
	recentFocused  *bool

	form       formModel
	formSubmit func(m *appModel, vals map[string]string) tea.Cmd

	picker pickerModel

	confirm confirmState
	// confirmBack is where a declined confirm returns.
	confirmBack viewMode

	preview      viewport.Model
	previewTitle string
	previewPath  string

	rootPicker filepicker.Model

	watcher    *siteWatcher
	watcherGen int

	statusText string
	statusKind statusKind
	statusSeq  int
}

func newAppModel(opts Options) appModel {
	clock := opts.Clock
	if clock == nil {
		clock = content.SystemClock
	}
	settings := opts.Settings
	if settings.Generator == "" {
		settings = config.Default()
	}

	m := appModel{
		root:           opts.Root,
		settings:       settings,
		clock:          clock,
		actionsFocused: new(bool),
		recentFocused:  new(bool),
	}
	// Overwrites are confirmed in a modal before Create is called.
	m.engine = content.New(
		content.WithClock(clock),
		content.WithConfirm(func(string) bool { return true }),
		content.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	*m.actionsFocused = true

	m.actions = newPlainList(homeActions(m.settings), m.actionsFocused)
	m.recent = newPlainList(nil, m.recentFocused)
	m.refreshRecent()
	return m
}

func newPlainList(items []list.Item, focused *bool) list.Model {
	l := list.New(items, newCompactItemDelegate(focused), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

func (m *appModel) startWatcher() {
	m.watcherGen++
	w, err := newSiteWatcher(m.root, m.watcherGen, watchDebounce)
	if err != nil {
		m.watcher = nil
		return
	}
	m.watcher = w
}

func (m *appModel) stopWatcher() {
	if m.watcher != nil {
		_ = m.watcher.Close()
	}
}

func (m appModel) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.wait()
}

func (m *appModel) refreshRecent() {
	items, err := content.Recent(m.root, m.settings.RecentLimit)
	if err != nil {
		m.recent.SetItems(nil)
		return
	}
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, contentItem{item: it, showFolder: true})
	}
	m.recent.SetItems(out)
}

func (m *appModel) setPane(p homePane) {
	m.pane = p
	*m.actionsFocused = p == paneActions
	*m.recentFocused = p == paneRecent
}

func (m *appModel) selectedRecent() (content.Item, bool) {
	it, ok := m.recent.SelectedItem().(contentItem)
	if !ok {
		return content.Item{}, false
	}
	return it.item, true
}

func (m appModel) Init() tea.Cmd {
	return m.waitForChange()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case clearStatusMsg:
		m.clearStatus(msg)
		return m, nil

	case siteChangedMsg:
		if msg.gen != m.watcherGen {
			return m, nil
		}
		m.refreshRecent()
		return m, m.waitForChange()

	case externalDoneMsg:
		cmd := m.handleExternalDone(msg)
		return m, cmd
	}

	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modePicker:
		return m.updatePicker(msg)
	case modeConfirm:
		return m.updateConfirmMode(msg)
	case modePreview:
		return m.updatePreview(msg)
	case modeRootPicker:
		return m.updateRootPicker(msg)
	}
	return m.updateHome(msg)
}

func (m *appModel) layout() {
	h := m.bodyHeight()
	m.actions.SetSize(actionsPaneWidth, h)
	rw := m.width - actionsPaneWidth - 3
	if rw < 10 {
		rw = 10
	}
	m.recent.SetSize(rw, h)
	if m.mode == modePicker {
		m.picker.list.SetSize(modalBodyWidth(m.width), pickerHeight(m.height))
	}
	if m.mode == modePreview {
		m.preview.Width = m.width
		m.preview.Height = m.previewHeight()
		m.loadPreview()
	}
}

// bodyHeight leaves room for the header, section titles, status and help lines.
func (m appModel) bodyHeight() int {
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	return h
}

func (m appModel) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch km.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab", "shift+tab":
		if m.pane == paneActions {
			m.setPane(paneRecent)
		} else {
			m.setPane(paneActions)
		}
		return m, nil
	}
	if id, ok := actionForKey(km.String()); ok {
		cmd := m.runAction(id)
		return m, cmd
	}
	switch km.String() {
	case "r":
		m.refreshRecent()
		cmd := m.setStatus(statusInfo, "Refreshed")
		return m, cmd
	}

	if m.pane == paneActions {
		if km.String() == "enter" {
			a, ok := m.actions.SelectedItem().(actionItem)
			if !ok {
				return m, nil
			}
			cmd := m.runAction(a.id)
			return m, cmd
		}
		var cmd tea.Cmd
		m.actions, cmd = m.actions.Update(msg)
		return m, cmd
	}

	switch km.String() {
	case "enter", "o":
		if it, ok := m.selectedRecent(); ok {
			cmd := m.openFile(it.Path)
			return m, cmd
		}
		return m, nil
	case "e":
		if it, ok := m.selectedRecent(); ok {
			cmd := m.editFile(it.Path)
			return m, cmd
		}
		return m, nil
	case "p", " ":
		if it, ok := m.selectedRecent(); ok {
			m.openPreview(it)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.recent, cmd = m.recent.Update(msg)
	return m, cmd
}

func (m appModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
		return m, tea.Quit
	}
	var (
		res formResult
		cmd tea.Cmd
	)
	m.form, res, cmd = m.form.Update(msg)
	switch res {
	case formCanceled:
		m.mode = modeHome
		return m, nil
	case formSubmitted:
		if m.formSubmit == nil {
			m.mode = modeHome
			return m, nil
		}
		cmd := m.formSubmit(&m, m.form.Values())
		return m, cmd
	}
	return m, cmd
}

func (m appModel) updateConfirmMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if km.String() == "ctrl+c" {
		return m, tea.Quit
	}
	closed, yes := updateConfirm(&m.confirm, km)
	if !closed {
		return m, nil
	}
	onConfirm := m.confirm.onConfirm
	m.confirm = confirmState{}
	if !yes || onConfirm == nil {
		m.mode = m.confirmBack
		return m, nil
	}
	m.mode = modeHome
	cmd := onConfirm(&m)
	return m, cmd
}

func (m *appModel) openConfirm(c confirmState, back viewMode) {
	if c.yesLabel == "" {
		c.yesLabel = "Yes"
	}
	if c.noLabel == "" {
		c.noLabel = "No"
	}
	m.confirm = c
	m.confirmBack = back
	m.mode = modeConfirm
}

func (m *appModel) openForm(title string, fields []formField, submit func(m *appModel, vals map[string]string) tea.Cmd) {
	m.form = newForm(title, fields)
	m.formSubmit = submit
	m.mode = modeForm
}

func (m appModel) View() string {
	if m.width == 0 {
		return ""
	}
	switch m.mode {
	case modeForm:
		return m.overlay(m.form.View(m.width))
	case modePicker:
		return m.overlay(m.picker.View(m.width))
	case modeConfirm:
		return m.overlay(renderConfirmModal(m.width, m.confirm))
	case modePreview:
		return m.viewPreview()
	case modeRootPicker:
		return m.overlay(m.viewRootPicker())
	}
	return m.viewHome()
}

func (m appModel) header() string {
	title := styleHeader().Render("jekyll-compose")
	root := m.root
	if _, err := os.Stat(filepath.Join(m.root, content.MarkerFile)); err != nil {
		root += "  (no " + content.MarkerFile + ")"
	}
	return title + " " + styleMuted().Render(fitWidth(root, maxInt(1, m.width-lipgloss.Width(title)-1)))
}

func (m appModel) footer(help string) string {
	status := ""
	if m.statusText != "" {
		status = styleStatus(m.statusKind).Render(fitWidth(m.statusText, m.width))
	}
	return status + "\n" + styleMuted().Render(fitWidth(help, m.width))
}

func (m appModel) viewHome() string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		paneTitle("Actions", m.pane == paneActions),
		m.actions.View(),
	)
	recentBody := m.recent.View()
	if len(m.recent.Items()) == 0 {
		recentBody = styleMuted().Render("No posts, drafts or pages yet.")
	}
	right := lipgloss.JoinVertical(lipgloss.Left,
		paneTitle("Recent files", m.pane == paneRecent),
		recentBody,
	)
	sep := styleMuted().Render(strings.TrimRight(strings.Repeat("│\n", m.bodyHeight()+1), "\n"))
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(actionsPaneWidth).Render(left), " ", sep, " ", right)

	help := "tab: switch pane   enter: run/open   e: edit   p: preview   r: refresh   q: quit"
	return strings.Join([]string{m.header(), "", body, m.footer(help)}, "\n")
}

func paneTitle(s string, focused bool) string {
	if focused {
		return styleSectionTitle().Render(s)
	}
	return styleMuted().Bold(true).Render(s)
}

// overlay centers a modal over a blank screen with the status line kept at the bottom.
func (m appModel) overlay(box string) string {
	h := m.height - 2
	if h < lipgloss.Height(box) {
		h = lipgloss.Height(box)
	}
	placed := lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, box)
	return placed + "\n" + m.footer("")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
