// Package content implements the content lifecycle of a Jekyll site: naming files,
// creating posts/drafts/pages/collection entries, and moving items between _drafts
// and _posts.
//
// The Engine holds collaborators only. Every operation takes the site root explicitly
// and touches nothing outside it. Operations are synchronous and are not safe against
// concurrent edits of the same tree.
package content

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ConfirmFunc asks the caller a yes/no question. It is only used before overwriting.
type ConfirmFunc func(message string) bool

type Engine struct {
	clock   Clock
	confirm ConfirmFunc
	log     *slog.Logger
	durable bool
}

type Option func(*Engine)

func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithConfirm sets the overwrite prompt. Without one every overwrite is declined.
func WithConfirm(fn ConfirmFunc) Option {
	return func(e *Engine) { e.confirm = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithDurableMoves makes publish/unpublish stage the new file under a temporary name,
// fsync it and rename it into place before removing the source. The move still spans
// two directories and is not atomic.
func WithDurableMoves(on bool) Option {
	return func(e *Engine) { e.durable = on }
}

func New(opts ...Option) *Engine {
	e := &Engine{clock: SystemClock, log: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Today is the engine clock's current date as YYYY-MM-DD.
func (e *Engine) Today() string {
	return FormatDate(e.clock.Now())
}

type CreateRequest struct {
	Folder string
	Title  string
	// Date is optional; the zero value produces an undated filename and no date key.
	Date time.Time
}

type CreateResult struct {
	Path      string `json:"path,omitempty"`
	Created   bool   `json:"created"`
	Overwrote bool   `json:"overwrote,omitempty"`
}

type MoveResult struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Filename builds "<date>-<slug>.md", or "<slug>.md" when date is empty.
func Filename(slug, date string) string {
	if date == "" {
		return slug + ".md"
	}
	return date + "-" + slug + ".md"
}

// TargetPath validates req and returns the absolute path Create would write to.
// It has no side effects.
func (e *Engine) TargetPath(root string, req CreateRequest) (string, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return "", errValidation("title", "must not be empty")
	}
	slug := Slugify(title)
	if slug == "" {
		return "", errValidation("title", "has no characters usable in a filename: "+req.Title)
	}
	folder := strings.TrimSpace(req.Folder)
	if folder == "" || !isBareName(folder) {
		return "", errValidation("folder", "must be a single directory name: "+req.Folder)
	}
	date := ""
	if !req.Date.IsZero() {
		date = FormatDate(req.Date)
	}
	abs, err := absRoot(root)
	if err != nil {
		return "", err
	}
	return filepath.Join(abs, folder, Filename(slug, date)), nil
}

// Create writes a new content file with a title (and optional date) front matter and an
// empty body. If the file exists the confirm callback decides; a declined overwrite is
// returned as a result with Created=false, not as an error.
func (e *Engine) Create(root string, req CreateRequest) (CreateResult, error) {
	path, err := e.TargetPath(root, req)
	if err != nil {
		return CreateResult{}, err
	}
	if err := requireDir(filepath.Dir(filepath.Dir(path)), "site root"); err != nil {
		return CreateResult{}, err
	}

	overwrite := false
	if _, err := os.Stat(path); err == nil {
		if e.confirm == nil || !e.confirm("Overwrite "+filepath.Base(path)+"?") {
			e.log.Info("create aborted", "path", path)
			return CreateResult{}, nil
		}
		overwrite = true
	} else if !errors.Is(err, os.ErrNotExist) {
		return CreateResult{}, errIO("stat", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return CreateResult{}, errIO("mkdir", dir, err)
	}

	fm := NewFrontMatter("title", strings.TrimSpace(req.Title))
	if !req.Date.IsZero() {
		fm.Set("date", FormatDate(req.Date))
	}
	if err := os.WriteFile(path, []byte(Render(fm, "")), 0o644); err != nil {
		return CreateResult{}, errIO("write", path, err)
	}
	e.log.Info("created", "path", path, "overwrote", overwrite)
	return CreateResult{Path: path, Created: true, Overwrote: overwrite}, nil
}

// CreatePost creates a dated post. A zero date means today.
func (e *Engine) CreatePost(root, title string, date time.Time) (CreateResult, error) {
	if date.IsZero() {
		date = e.clock.Now()
	}
	return e.Create(root, CreateRequest{Folder: PostsFolder, Title: title, Date: date})
}

func (e *Engine) CreateDraft(root, title string) (CreateResult, error) {
	return e.Create(root, CreateRequest{Folder: DraftsFolder, Title: title})
}

func (e *Engine) CreatePage(root, title string) (CreateResult, error) {
	return e.Create(root, CreateRequest{Folder: PagesFolder, Title: title})
}

func (e *Engine) CreateEntry(root, collection, title string) (CreateResult, error) {
	if strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(collection), "_")) == "" {
		return CreateResult{}, errValidation("collection", "must not be empty")
	}
	return e.Create(root, CreateRequest{Folder: CollectionFolder(collection), Title: title})
}

// Publish moves a draft to _posts as "<today>-<slug>.md". The slug comes from the
// draft's title line, or its filename stem when there is none. A date line is added
// only when the draft has no "date:" anywhere, so an explicit date survives.
//
// The new post is written before the draft is removed; a failure in between leaves
// both files in place.
func (e *Engine) Publish(root, draftFilename string) (MoveResult, error) {
	if err := checkFilename(draftFilename); err != nil {
		return MoveResult{}, err
	}
	abs, err := absRoot(root)
	if err != nil {
		return MoveResult{}, err
	}
	src := filepath.Join(abs, DraftsFolder, draftFilename)
	b, err := readExisting(src, "draft")
	if err != nil {
		return MoveResult{}, err
	}
	text := string(b)

	today := e.Today()
	title, ok := FindTitle(text)
	if !ok {
		title = strings.TrimSuffix(draftFilename, filepath.Ext(draftFilename))
	}
	slug := Slugify(title)
	if slug == "" {
		return MoveResult{}, errValidation("title", "draft title yields an empty slug: "+title)
	}
	if !HasDateKey(text) {
		text = InjectDate(text, today)
	}

	dst := filepath.Join(abs, PostsFolder, Filename(slug, today))
	if err := e.move(src, dst, []byte(text)); err != nil {
		return MoveResult{}, err
	}
	e.log.Info("published", "from", src, "to", dst)
	return MoveResult{From: src, To: dst}, nil
}

// Unpublish moves a post back to _drafts, dropping a "YYYY-MM-DD-" prefix when the
// filename has one. Content is copied verbatim.
func (e *Engine) Unpublish(root, postFilename string) (MoveResult, error) {
	if err := checkFilename(postFilename); err != nil {
		return MoveResult{}, err
	}
	abs, err := absRoot(root)
	if err != nil {
		return MoveResult{}, err
	}
	src := filepath.Join(abs, PostsFolder, postFilename)
	b, err := readExisting(src, "post")
	if err != nil {
		return MoveResult{}, err
	}

	dst := filepath.Join(abs, DraftsFolder, undatedName(postFilename))
	if err := e.move(src, dst, b); err != nil {
		return MoveResult{}, err
	}
	e.log.Info("unpublished", "from", src, "to", dst)
	return MoveResult{From: src, To: dst}, nil
}

// undatedName strips the first three dash-separated parts (year, month, day).
// Names with fewer than four parts are returned unchanged.
func undatedName(name string) string {
	parts := strings.SplitN(name, "-", 4)
	if len(parts) < 4 {
		return name
	}
	return parts[3]
}

func (e *Engine) move(src, dst string, b []byte) error {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errIO("mkdir", dir, err)
	}
	if e.durable {
		if err := writeDurable(dst, b); err != nil {
			return err
		}
	} else if err := os.WriteFile(dst, b, 0o644); err != nil {
		return errIO("write", dst, err)
	}
	e.log.Debug("wrote destination", "path", dst, "bytes", len(b))

	if src == dst {
		return nil
	}
	if err := os.Remove(src); err != nil {
		return errIO("remove", src, err)
	}
	if e.durable {
		if err := syncDir(filepath.Dir(src)); err != nil {
			return err
		}
	}
	return nil
}

func writeDurable(path string, b []byte) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errIO("create temp", dir, err)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return errIO("write", tmp, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return errIO("fsync", tmp, err)
	}
	if err := f.Close(); err != nil {
		return errIO("close", tmp, err)
	}
	_ = os.Chmod(tmp, 0o644)
	if err := os.Rename(tmp, path); err != nil {
		return errIO("rename", path, err)
	}
	return syncDir(dir)
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return errIO("open", dir, err)
	}
	defer d.Close()
	// Some platforms refuse fsync on directories; the rename has already happened.
	if err := d.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) {
		return errIO("fsync", dir, err)
	}
	return nil
}

func readExisting(path, kind string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errNotFound(kind, path)
		}
		return nil, errIO("open", path, err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, errIO("read", path, err)
	}
	return b, nil
}

func requireDir(dir, kind string) error {
	st, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errNotFound(kind, dir)
		}
		return errIO("stat", dir, err)
	}
	if !st.IsDir() {
		return errNotFound(kind, dir)
	}
	return nil
}

func checkFilename(name string) error {
	if strings.TrimSpace(name) == "" {
		return errValidation("filename", "must not be empty")
	}
	if !isBareName(name) {
		return errValidation("filename", "must be a file name without directories: "+name)
	}
	return nil
}

func isBareName(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

func absRoot(root string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", errValidation("root", "must not be empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errIO("abs", root, err)
	}
	return abs, nil
}
