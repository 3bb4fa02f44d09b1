package content

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultRecentLimit is how many files Recent returns when limit <= 0.
const DefaultRecentLimit = 20

// Item describes one content file on disk.
type Item struct {
	Kind       Kind      `json:"kind"`
	Collection string    `json:"collection"`
	Folder     string    `json:"folder"`
	Filename   string    `json:"filename"`
	Path       string    `json:"path"`
	Title      string    `json:"title,omitempty"`
	Date       string    `json:"date,omitempty"`
	ModTime    time.Time `json:"modTime"`
}

// ListCollections returns posts, drafts and pages plus every non-reserved "_name"
// directory directly under root, without the underscore, sorted.
func ListCollections(root string) ([]string, error) {
	abs, err := absRoot(root)
	if err != nil {
		return nil, err
	}
	ents, err := os.ReadDir(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errNotFound("site root", abs)
		}
		return nil, errIO("read dir", abs, err)
	}

	set := map[string]struct{}{"posts": {}, "drafts": {}, "pages": {}}
	for _, ent := range ents {
		name := ent.Name()
		if !strings.HasPrefix(name, "_") || len(name) < 2 || isReserved(name) {
			continue
		}
		if !isDirEntry(abs, ent) {
			continue
		}
		set[name[1:]] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// isDirEntry follows symlinks, so a linked collection folder still counts.
func isDirEntry(dir string, ent os.DirEntry) bool {
	if ent.IsDir() {
		return true
	}
	if ent.Type()&os.ModeSymlink == 0 {
		return false
	}
	st, err := os.Stat(filepath.Join(dir, ent.Name()))
	return err == nil && st.IsDir()
}

// ListItems returns the Markdown files in one folder, sorted by filename.
func ListItems(root, folder string) ([]Item, error) {
	abs, err := absRoot(root)
	if err != nil {
		return nil, err
	}
	if !isBareName(folder) {
		return nil, errValidation("folder", "must be a single directory name: "+folder)
	}
	dir := filepath.Join(abs, folder)
	items, err := scanFolder(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Filename < items[j].Filename })
	return items, nil
}

// Recent returns the most recently modified Markdown files across _posts, _drafts and
// _pages, newest first. Missing folders are skipped.
func Recent(root string, limit int) ([]Item, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	abs, err := absRoot(root)
	if err != nil {
		return nil, err
	}
	all := []Item{}
	for _, folder := range []string{PostsFolder, DraftsFolder, PagesFolder} {
		items, err := scanFolder(filepath.Join(abs, folder))
		if err != nil {
			if IsNotFound(err) {
				continue
			}
			return nil, err
		}
		all = append(all, items...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].ModTime.Equal(all[j].ModTime) {
			return all[i].Filename > all[j].Filename
		}
		return all[i].ModTime.After(all[j].ModTime)
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Locate finds filename in _posts, _drafts or _pages, in that order.
func Locate(root, filename string) (Item, error) {
	if err := checkFilename(filename); err != nil {
		return Item{}, err
	}
	abs, err := absRoot(root)
	if err != nil {
		return Item{}, err
	}
	for _, folder := range []string{PostsFolder, DraftsFolder, PagesFolder} {
		p := filepath.Join(abs, folder, filename)
		st, err := os.Stat(p)
		if err == nil && !st.IsDir() {
			return itemFor(p, st), nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Item{}, errIO("stat", p, err)
		}
	}
	return Item{}, errNotFound("file", filename)
}

// Describe stats path and reads its title and date. Documents whose front matter is not
// valid YAML fall back to line matching; a missing title is derived from the filename.
func Describe(path string) (Item, error) {
	st, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Item{}, errNotFound("file", path)
		}
		return Item{}, errIO("stat", path, err)
	}
	it := itemFor(path, st)
	b, err := os.ReadFile(path)
	if err != nil {
		return Item{}, errIO("read", path, err)
	}
	text := string(b)

	if fm, _, err := ParseStrict(text); err == nil {
		it.Title, _ = fm.Get("title")
		it.Date, _ = fm.Get("date")
	} else {
		it.Title, _ = FindTitle(text)
		it.Date, _ = FindDate(text)
	}
	if strings.TrimSpace(it.Title) == "" {
		it.Title = DisplayTitle(it.Filename)
	}
	return it, nil
}

var titleCaser = cases.Title(language.English)

// DisplayTitle turns "2024-01-05-launch-day.md" into "Launch Day".
func DisplayTitle(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	if name := undatedName(stem); name != stem && isDatePrefix(stem) {
		stem = name
	}
	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	return titleCaser.String(strings.TrimSpace(stem))
}

func isDatePrefix(name string) bool {
	if len(name) < len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, name[:len(DateLayout)])
	return err == nil
}

func scanFolder(dir string) ([]Item, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errNotFound("folder", dir)
		}
		return nil, errIO("read dir", dir, err)
	}
	items := make([]Item, 0, len(ents))
	for _, ent := range ents {
		if ent.IsDir() || !strings.EqualFold(filepath.Ext(ent.Name()), ".md") {
			continue
		}
		info, err := ent.Info()
		if err != nil {
			// Deleted between ReadDir and Info.
			continue
		}
		items = append(items, itemFor(filepath.Join(dir, ent.Name()), info))
	}
	return items, nil
}

func itemFor(path string, info os.FileInfo) Item {
	folder := filepath.Base(filepath.Dir(path))
	name := filepath.Base(path)
	it := Item{
		Kind:       KindForFolder(folder),
		Collection: strings.TrimPrefix(folder, "_"),
		Folder:     folder,
		Filename:   name,
		Path:       path,
		ModTime:    info.ModTime(),
	}
	if it.Kind.Dated() && isDatePrefix(name) {
		it.Date = name[:len(DateLayout)]
	}
	return it
}
