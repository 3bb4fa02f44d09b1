package tui

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"jekyll-compose/internal/content"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// siteChangedMsg is sent after a burst of file events settles. gen identifies the
// watcher so events from a previous site root are dropped.
type siteChangedMsg struct{ gen int }

// siteWatcher watches the site root and its content folders (non-recursively) and
// coalesces events into at most one pending notification.
type siteWatcher struct {
	w        *fsnotify.Watcher
	root     string
	gen      int
	debounce time.Duration
	changes  chan struct{}
	done     chan struct{}
}

var watchedFolders = []string{content.PostsFolder, content.DraftsFolder, content.PagesFolder}

func newSiteWatcher(root string, gen int, debounce time.Duration) (*siteWatcher, error) {
	root = filepath.Clean(root)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(root); err != nil {
		_ = w.Close()
		return nil, err
	}
	for _, f := range watchedFolders {
		// Missing folders are picked up when they are created.
		_ = w.Add(filepath.Join(root, f))
	}
	sw := &siteWatcher{
		w:        w,
		root:     root,
		gen:      gen,
		debounce: debounce,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go sw.loop()
	return sw, nil
}

func (sw *siteWatcher) loop() {
	defer close(sw.changes)
	var fire <-chan time.Time
	for {
		select {
		case <-sw.done:
			return
		case ev, ok := <-sw.w.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Create) && sw.isContentFolder(ev.Name) {
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
					_ = sw.w.Add(ev.Name)
				}
			}
			if !sw.relevant(ev) {
				continue
			}
			fire = time.After(sw.debounce)
		case <-fire:
			fire = nil
			select {
			case sw.changes <- struct{}{}:
			default:
			}
		case _, ok := <-sw.w.Errors:
			if !ok {
				return
			}
		}
	}
}

func (sw *siteWatcher) isContentFolder(path string) bool {
	if filepath.Dir(path) != sw.root {
		return false
	}
	base := filepath.Base(path)
	for _, f := range watchedFolders {
		if base == f {
			return true
		}
	}
	return false
}

func (sw *siteWatcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if sw.isContentFolder(ev.Name) {
		return true
	}
	return strings.EqualFold(filepath.Ext(ev.Name), ".md") && sw.isContentFolder(filepath.Dir(ev.Name))
}

// wait blocks until the next settled change. It returns nil once the watcher is closed.
func (sw *siteWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-sw.changes; !ok {
			return nil
		}
		return siteChangedMsg{gen: sw.gen}
	}
}

func (sw *siteWatcher) Close() error {
	select {
	case <-sw.done:
		return nil
	default:
	}
	close(sw.done)
	return sw.w.Close()
}
