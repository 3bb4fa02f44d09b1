// Package index keeps a derived SQLite copy of a site's content metadata for search
// and recent-file queries. The Markdown files stay the source of truth; the index can
// be deleted and rebuilt at any time.
package index

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jekyll-compose/internal/content"

	"github.com/adrg/frontmatter"
	_ "modernc.org/sqlite"
)

// Dir is the local state folder inside a site root. Jekyll skips dot folders.
const Dir = ".jekyll-compose"

func Path(root string) string {
	return filepath.Join(root, Dir, "index.sqlite")
}

type Index struct {
	db   *sql.DB
	root string
}

type Entry struct {
	Path       string       `json:"path"`
	Collection string       `json:"collection"`
	Kind       content.Kind `json:"kind"`
	Filename   string       `json:"filename"`
	Title      string       `json:"title"`
	Date       string       `json:"date,omitempty"`
	Layout     string       `json:"layout,omitempty"`
	Tags       []string     `json:"tags,omitempty"`
	ModTime    time.Time    `json:"modTime"`
}

type RebuildResult struct {
	Root        string `json:"root"`
	Collections int    `json:"collections"`
	Files       int    `json:"files"`
	// Fallbacks counts files whose front matter could not be decoded and were indexed
	// from their title/date lines only.
	Fallbacks int `json:"fallbacks"`
}

// Open opens (creating if needed) the index for the site at root.
func Open(ctx context.Context, root string) (*Index, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(abs, Dir), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite registers as "sqlite".
	db, err := sql.Open("sqlite", Path(abs))
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Index{db: db, root: abs}, nil
}

func (ix *Index) Close() error {
	if ix == nil || ix.db == nil {
		return nil
	}
	return ix.db.Close()
}

func (ix *Index) Root() string { return ix.root }

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS items (
			path TEXT PRIMARY KEY,
			collection TEXT NOT NULL,
			kind TEXT NOT NULL,
			filename TEXT NOT NULL,
			title TEXT NOT NULL,
			date TEXT NOT NULL,
			layout TEXT NOT NULL,
			tags_json TEXT NOT NULL,
			mod_time_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_mod_time ON items(mod_time_unixms);`,
		`CREATE INDEX IF NOT EXISTS idx_items_collection ON items(collection);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// Rebuild rescans every collection and replaces the index contents in one transaction.
func (ix *Index) Rebuild(ctx context.Context) (RebuildResult, error) {
	res := RebuildResult{Root: ix.root}
	collections, err := content.ListCollections(ix.root)
	if err != nil {
		return res, err
	}

	var entries []Entry
	for _, c := range collections {
		items, err := content.ListItems(ix.root, content.CollectionFolder(c))
		if err != nil {
			if content.IsNotFound(err) {
				continue
			}
			return res, err
		}
		res.Collections++
		for _, it := range items {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			e, fellBack, err := readEntry(it)
			if err != nil {
				return res, err
			}
			if fellBack {
				res.Fallbacks++
			}
			entries = append(entries, e)
		}
	}

	tx, err := ix.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return res, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return res, err
	}
	for _, e := range entries {
		tags, _ := json.Marshal(e.Tags)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO items(path, collection, kind, filename, title, date, layout, tags_json, mod_time_unixms)
			 VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.Path, e.Collection, string(e.Kind), e.Filename, e.Title, e.Date, e.Layout, string(tags), e.ModTime.UnixMilli()); err != nil {
			return res, err
		}
	}
	if err := tx.Commit(); err != nil {
		return res, err
	}
	res.Files = len(entries)
	return res, nil
}

type frontMatter struct {
	Title  string `yaml:"title" toml:"title" json:"title"`
	Date   string `yaml:"date" toml:"date" json:"date"`
	Layout string `yaml:"layout" toml:"layout" json:"layout"`
	Tags   any    `yaml:"tags" toml:"tags" json:"tags"`
}

func readEntry(it content.Item) (Entry, bool, error) {
	e := Entry{
		Path:       it.Path,
		Collection: it.Collection,
		Kind:       it.Kind,
		Filename:   it.Filename,
		Date:       it.Date,
		ModTime:    it.ModTime,
	}
	b, err := os.ReadFile(it.Path)
	if err != nil {
		return e, false, fmt.Errorf("read %s: %w", it.Path, err)
	}

	fellBack := false
	var fm frontMatter
	if _, err := frontmatter.Parse(bytes.NewReader(b), &fm); err == nil {
		e.Title = strings.TrimSpace(fm.Title)
		if d := strings.TrimSpace(fm.Date); d != "" {
			e.Date = d
		}
		e.Layout = strings.TrimSpace(fm.Layout)
		e.Tags = normalizeTags(fm.Tags)
	} else {
		fellBack = true
		text := string(b)
		e.Title, _ = content.FindTitle(text)
		if d, ok := content.FindDate(text); ok {
			e.Date = d
		}
	}
	if e.Title == "" {
		e.Title = content.DisplayTitle(it.Filename)
	}
	return e, fellBack, nil
}

// normalizeTags accepts Jekyll's list form and its space-separated string form.
func normalizeTags(v any) []string {
	var out []string
	switch t := v.(type) {
	case string:
		out = strings.Fields(t)
	case []any:
		for _, x := range t {
			if s := strings.TrimSpace(fmt.Sprint(x)); s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// Search matches query case-insensitively against titles, filenames and tags, newest
// first.
func (ix *Index) Search(ctx context.Context, query string, limit int) ([]Entry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("search query is empty")
	}
	pat := "%" + escapeLike(strings.ToLower(query)) + "%"
	return ix.query(ctx,
		`SELECT path, collection, kind, filename, title, date, layout, tags_json, mod_time_unixms
		 FROM items
		 WHERE lower(title) LIKE ? ESCAPE '\' OR lower(filename) LIKE ? ESCAPE '\' OR lower(tags_json) LIKE ? ESCAPE '\'
		 ORDER BY mod_time_unixms DESC, path
		 LIMIT ?`,
		pat, pat, pat, normLimit(limit))
}

// Recent returns the newest indexed files across all collections.
func (ix *Index) Recent(ctx context.Context, limit int) ([]Entry, error) {
	return ix.query(ctx,
		`SELECT path, collection, kind, filename, title, date, layout, tags_json, mod_time_unixms
		 FROM items
		 ORDER BY mod_time_unixms DESC, path
		 LIMIT ?`,
		normLimit(limit))
}

func (ix *Index) Count(ctx context.Context) (int, error) {
	var n int
	err := ix.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n)
	return n, err
}

func (ix *Index) query(ctx context.Context, q string, args ...any) ([]Entry, error) {
	rows, err := ix.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var (
			e      Entry
			kind   string
			tagsJS string
			modMs  int64
		)
		if err := rows.Scan(&e.Path, &e.Collection, &kind, &e.Filename, &e.Title, &e.Date, &e.Layout, &tagsJS, &modMs); err != nil {
			return nil, err
		}
		e.Kind = content.Kind(kind)
		_ = json.Unmarshal([]byte(tagsJS), &e.Tags)
		e.ModTime = time.UnixMilli(modMs)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func normLimit(limit int) int {
	if limit <= 0 {
		return content.DefaultRecentLimit
	}
	return limit
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
