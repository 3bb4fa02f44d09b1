package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"jekyll-compose/internal/config"
	"jekyll-compose/internal/content"
	"jekyll-compose/internal/launch"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type actionID int

const (
	actNewPost actionID = iota
	actNewDraft
	actNewPage
	actNewEntry
	actPublish
	actUnpublish
	actBuild
	actServe
	actOpenFolder
	actChangeRoot
	actToggleAutoOpen
	actQuit
)

type actionSpec struct {
	id    actionID
	key   string
	label string
}

var homeActionSpecs = []actionSpec{
	{id: actNewPost, key: "n", label: "New post"},
	{id: actNewDraft, key: "d", label: "New draft"},
	{id: actNewPage, key: "P", label: "New page"},
	{id: actNewEntry, key: "c", label: "New collection entry"},
	{id: actPublish, key: "u", label: "Publish draft…"},
	{id: actUnpublish, key: "U", label: "Unpublish post…"},
	{id: actBuild, key: "b", label: "Build site"},
	{id: actServe, key: "s", label: "Serve site"},
	{id: actOpenFolder, key: "f", label: "Open site folder"},
	{id: actChangeRoot, key: "R", label: "Change site root…"},
	{id: actToggleAutoOpen, key: "a", label: "Auto-open new files"},
	{id: actQuit, key: "q", label: "Quit"},
}

type actionItem struct {
	id     actionID
	key    string
	label  string
	detail string
}

func (a actionItem) FilterValue() string { return a.label }
func (a actionItem) Title() string       { return a.label }
func (a actionItem) Detail() string      { return a.detail }

func homeActions(s config.Settings) []list.Item {
	out := make([]list.Item, 0, len(homeActionSpecs))
	for _, spec := range homeActionSpecs {
		detail := spec.key
		if spec.id == actToggleAutoOpen {
			state := "off"
			if s.AutoOpen {
				state = "on"
			}
			detail = state + " " + spec.key
		}
		out = append(out, actionItem{id: spec.id, key: spec.key, label: spec.label, detail: detail})
	}
	return out
}

func actionForKey(k string) (actionID, bool) {
	for _, spec := range homeActionSpecs {
		if spec.key == k {
			return spec.id, true
		}
	}
	return 0, false
}

// contentItem is a content file row in the recent list and the pickers.
type contentItem struct {
	item       content.Item
	showFolder bool
}

func (c contentItem) FilterValue() string { return c.item.Filename }

func (c contentItem) Title() string {
	if c.showFolder {
		return c.item.Folder + "/" + c.item.Filename
	}
	return c.item.Filename
}

func (c contentItem) Detail() string {
	if c.item.ModTime.IsZero() {
		return ""
	}
	return c.item.ModTime.Format("2006-01-02 15:04")
}

func (m *appModel) runAction(id actionID) tea.Cmd {
	switch id {
	case actNewPost:
		m.openForm("New post", []formField{
			{key: "title", label: "Title", required: true},
			{key: "date", label: "Date", value: content.FormatDate(m.clock.Now()), placeholder: content.DateLayout, required: true},
		}, func(m *appModel, v map[string]string) tea.Cmd {
			date, err := content.ParseDate(v["date"])
			if err != nil {
				m.form.err = err.Error()
				return nil
			}
			return m.startCreate(content.CreateRequest{Folder: content.PostsFolder, Title: v["title"], Date: date})
		})
	case actNewDraft:
		m.openTitleForm("New draft", content.DraftsFolder)
	case actNewPage:
		m.openTitleForm("New page", content.PagesFolder)
	case actNewEntry:
		return m.openEntryForm()
	case actPublish:
		return m.openContentPicker("Publish draft", content.DraftsFolder, "No drafts to publish", func(m *appModel, it content.Item) tea.Cmd {
			res, err := m.engine.Publish(m.root, it.Filename)
			if err != nil {
				return m.statusErr("Publish", err)
			}
			m.refreshRecent()
			return m.setStatus(statusOK, "Published "+m.rel(res.To))
		})
	case actUnpublish:
		return m.openContentPicker("Unpublish post", content.PostsFolder, "No posts to unpublish", func(m *appModel, it content.Item) tea.Cmd {
			res, err := m.engine.Unpublish(m.root, it.Filename)
			if err != nil {
				return m.statusErr("Unpublish", err)
			}
			m.refreshRecent()
			return m.setStatus(statusOK, "Moved back to "+m.rel(res.To))
		})
	case actBuild:
		return m.runGenerator(launch.ActionBuild)
	case actServe:
		return m.runGenerator(launch.ActionServe)
	case actOpenFolder:
		return m.openFolder()
	case actChangeRoot:
		return m.openRootPicker()
	case actToggleAutoOpen:
		return m.toggleAutoOpen()
	case actQuit:
		return tea.Quit
	}
	return nil
}

func (m *appModel) openTitleForm(title, folder string) {
	m.openForm(title, []formField{
		{key: "title", label: "Title", required: true},
	}, func(m *appModel, v map[string]string) tea.Cmd {
		return m.startCreate(content.CreateRequest{Folder: folder, Title: v["title"]})
	})
}

func (m *appModel) openEntryForm() tea.Cmd {
	cols, err := content.ListCollections(m.root)
	if err != nil {
		return m.statusErr("Collections", err)
	}
	m.openForm("New collection entry", []formField{
		{key: "collection", label: "Collection", kind: fieldChoice, choices: cols, value: "posts", required: true},
		{key: "title", label: "Title", required: true},
	}, func(m *appModel, v map[string]string) tea.Cmd {
		return m.startCreate(content.CreateRequest{Folder: content.CollectionFolder(v["collection"]), Title: v["title"]})
	})
	m.form.setFocus(1)
	return nil
}

// startCreate validates the request and asks before replacing an existing file.
// Validation errors stay in the form so the title can be fixed.
func (m *appModel) startCreate(req content.CreateRequest) tea.Cmd {
	path, err := m.engine.TargetPath(m.root, req)
	if err != nil {
		m.form.err = err.Error()
		return nil
	}
	if fileExists(path) {
		m.openConfirm(confirmState{
			title:    "File exists",
			body:     fmt.Sprintf("%s already exists.\nOverwrite it with a new, empty document?", m.rel(path)),
			yesLabel: "Overwrite",
			noLabel:  "Keep",
			focus:    confirmFocusCancel,
			onConfirm: func(m *appModel) tea.Cmd {
				return m.create(req)
			},
		}, modeForm)
		return nil
	}
	return m.create(req)
}

func (m *appModel) create(req content.CreateRequest) tea.Cmd {
	m.mode = modeHome
	res, err := m.engine.Create(m.root, req)
	if err != nil {
		return m.statusErr("Create", err)
	}
	if !res.Created {
		return m.setStatus(statusInfo, "Nothing created")
	}
	m.refreshRecent()
	verb := "Created "
	if res.Overwrote {
		verb = "Overwrote "
	}
	status := m.setStatus(statusOK, verb+m.rel(res.Path))
	if m.settings.AutoOpen {
		return tea.Batch(status, m.openFile(res.Path))
	}
	return status
}

func (m *appModel) toggleAutoOpen() tea.Cmd {
	// Environment overrides stay out of the saved file.
	s, err := config.LoadFile(m.root)
	if err != nil {
		return m.statusErr("Settings", err)
	}
	s.AutoOpen = !m.settings.AutoOpen
	if err := config.Save(m.root, s); err != nil {
		return m.statusErr("Settings", err)
	}
	m.settings.AutoOpen = s.AutoOpen
	idx := m.actions.Index()
	m.actions.SetItems(homeActions(m.settings))
	m.actions.Select(idx)
	state := "off"
	if s.AutoOpen {
		state = "on"
	}
	return m.setStatus(statusOK, "Auto-open "+state)
}

// rel shortens paths inside the site root for status messages.
func (m *appModel) rel(path string) string {
	if r, err := filepath.Rel(m.root, path); err == nil && !strings.HasPrefix(r, "..") {
		return filepath.ToSlash(r)
	}
	return path
}
