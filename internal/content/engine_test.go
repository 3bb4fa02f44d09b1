package content

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(y int, m time.Month, d int) Clock {
	return ClockFunc(func() time.Time { return time.Date(y, m, d, 9, 30, 0, 0, time.Local) })
}

func newTestEngine(opts ...Option) *Engine {
	base := []Option{
		WithClock(fixedClock(2024, 3, 1)),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return New(append(base, opts...)...)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestCreate_Draft(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	res, err := newTestEngine().Create(root, CreateRequest{Folder: DraftsFolder, Title: "Hello World"})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.False(t, res.Overwrote)
	assert.Equal(t, filepath.Join(root, "_drafts", "hello-world.md"), res.Path)

	fm, body := Parse(readFile(t, res.Path))
	assert.Equal(t, []string{"title"}, fm.Keys())
	title, _ := fm.Get("title")
	assert.Equal(t, "Hello World", title)
	assert.Equal(t, "", body)
}

func TestCreate_PostWithDate(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)
	res, err := newTestEngine().Create(root, CreateRequest{Folder: PostsFolder, Title: "Launch Day", Date: date})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "_posts", "2024-01-05-launch-day.md"), res.Path)
	assert.Equal(t, "---\ntitle: Launch Day\ndate: 2024-01-05\n---\n\n", readFile(t, res.Path))
}

func TestCreatePost_DefaultsToToday(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	res, err := newTestEngine().CreatePost(root, "Today's News", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "_posts", "2024-03-01-todays-news.md"), res.Path)
}

func TestCreate_PagesAndEntries(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	e := newTestEngine()

	page, err := e.CreatePage(root, "About Me")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "_pages", "about-me.md"), page.Path)

	entry, err := e.CreateEntry(root, "recipes", "Tomato Soup")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "_recipes", "tomato-soup.md"), entry.Path)

	entry, err = e.CreateEntry(root, "_recipes", "Bread")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "_recipes", "bread.md"), entry.Path)

	_, err = e.CreateEntry(root, " _ ", "Nope")
	assert.True(t, IsValidation(err))
}

func TestCreate_EmptyTitleIsValidationErrorWithoutWrites(t *testing.T) {
	t.Parallel()

	for _, title := range []string{"", "   ", "\t\n", "!!!"} {
		root := t.TempDir()
		_, err := newTestEngine().Create(root, CreateRequest{Folder: DraftsFolder, Title: title})
		require.Error(t, err, "title %q", title)

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "title", verr.Field)

		ents, rerr := os.ReadDir(root)
		require.NoError(t, rerr)
		assert.Empty(t, ents, "no files or folders may be created for title %q", title)
	}
}

func TestCreate_RejectsNestedFolder(t *testing.T) {
	t.Parallel()

	_, err := newTestEngine().Create(t.TempDir(), CreateRequest{Folder: "../escape", Title: "x"})
	assert.True(t, IsValidation(err))
}

func TestCreate_MissingRootIsNotFound(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "missing")
	_, err := newTestEngine().CreateDraft(root, "Hello")
	assert.True(t, IsNotFound(err))
	_, statErr := os.Stat(root)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCreate_OverwriteConfirmation(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	path := filepath.Join(root, "_drafts", "hello-world.md")
	writeFile(t, path, "original")

	var asked []string
	decline := newTestEngine(WithConfirm(func(msg string) bool {
		asked = append(asked, msg)
		return false
	}))
	res, err := decline.CreateDraft(root, "Hello World")
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Empty(t, res.Path)
	assert.Equal(t, []string{"Overwrite hello-world.md?"}, asked)
	assert.Equal(t, "original", readFile(t, path))

	// No confirm callback behaves like a decline.
	res, err = newTestEngine().CreateDraft(root, "Hello World")
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, "original", readFile(t, path))

	accept := newTestEngine(WithConfirm(func(string) bool { return true }))
	res, err = accept.CreateDraft(root, "Hello World")
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.True(t, res.Overwrote)
	assert.Equal(t, "---\ntitle: Hello World\n---\n\n", readFile(t, path))
}

func TestTargetPath_NoSideEffects(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	p, err := newTestEngine().TargetPath(root, CreateRequest{Folder: "_notes", Title: "A Note"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "_notes", "a-note.md"), p)
	_, statErr := os.Stat(filepath.Join(root, "_notes"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestPublish_InjectsDateAndMoves(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	draft := filepath.Join(root, "_drafts", "my-draft.md")
	writeFile(t, draft, "---\ntitle: My Draft\n---\n\nBody text.\n")

	res, err := newTestEngine().Publish(root, "my-draft.md")
	require.NoError(t, err)
	assert.Equal(t, draft, res.From)
	assert.Equal(t, filepath.Join(root, "_posts", "2024-03-01-my-draft.md"), res.To)

	newGolden(t).Assert(t, "publish_injects_date", []byte(readFile(t, res.To)))
	_, statErr := os.Stat(draft)
	assert.True(t, os.IsNotExist(statErr), "draft must be removed")
}

func TestPublish_InjectsDateIntoCRLFDraft(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "_drafts", "my-draft.md"), "---\r\ntitle: My Draft\r\n---\r\n\r\nbody\r\n")

	res, err := newTestEngine().Publish(root, "my-draft.md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "_posts", "2024-03-01-my-draft.md"), res.To)

	got := readFile(t, res.To)
	assert.Equal(t, "---\r\ndate: 2024-03-01\r\ntitle: My Draft\r\n---\r\n\r\nbody\r\n", got)
	date, ok := FindDate(got)
	assert.True(t, ok)
	assert.Equal(t, "2024-03-01", date)
}

func TestPublish_KeepsExistingDate(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	content := "---\ntitle: \"Old News\"\ndate: 2020-05-05\n---\n\nx\n"
	writeFile(t, filepath.Join(root, "_drafts", "old.md"), content)

	res, err := newTestEngine().Publish(root, "old.md")
	require.NoError(t, err)
	// The filename always uses the publish date; the front matter date is untouched.
	assert.Equal(t, filepath.Join(root, "_posts", "2024-03-01-old-news.md"), res.To)
	assert.Equal(t, content, readFile(t, res.To))
}

func TestPublish_TitleFallsBackToFilename(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "_drafts", "Some Idea.md"), "no front matter at all\n")

	res, err := newTestEngine().Publish(root, "Some Idea.md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "_posts", "2024-03-01-some-idea.md"), res.To)
	// Without a "---" line there is nowhere to inject a date.
	assert.Equal(t, "no front matter at all\n", readFile(t, res.To))
}

func TestPublish_MissingDraft(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	_, err := newTestEngine().Publish(root, "nope.md")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "draft", nf.Kind)

	_, err = newTestEngine().Publish(root, "../_posts/x.md")
	assert.True(t, IsValidation(err))
}

func TestUnpublish_StripsDatePrefix(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	post := filepath.Join(root, "_posts", "2024-03-01-my-draft.md")
	content := "---\ndate: 2024-03-01\ntitle: My Draft\n---\n\nBody text.\n"
	writeFile(t, post, content)

	res, err := newTestEngine().Unpublish(root, "2024-03-01-my-draft.md")
	require.NoError(t, err)
	assert.Equal(t, post, res.From)
	assert.Equal(t, filepath.Join(root, "_drafts", "my-draft.md"), res.To)
	assert.Equal(t, content, readFile(t, res.To))
	_, statErr := os.Stat(post)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUnpublish_UndatedNameUnchanged(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "_posts", "no-date.md"), "x")

	res, err := newTestEngine().Unpublish(root, "no-date.md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "_drafts", "no-date.md"), res.To)
}

func TestUnpublish_MissingPost(t *testing.T) {
	t.Parallel()

	_, err := newTestEngine().Unpublish(t.TempDir(), "2024-01-01-gone.md")
	assert.True(t, IsNotFound(err))
}

func TestUndatedName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "my-draft.md", undatedName("2024-03-01-my-draft.md"))
	assert.Equal(t, "a-b-c.md", undatedName("x-y-z-a-b-c.md"))
	assert.Equal(t, "one-two-three.md", undatedName("one-two-three.md"))
	assert.Equal(t, "plain.md", undatedName("plain.md"))
}

func TestDurableMoves_RoundTrip(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "_drafts", "durable.md"), "---\ntitle: Durable\n---\n\n")

	e := newTestEngine(WithDurableMoves(true))
	pub, err := e.Publish(root, "durable.md")
	require.NoError(t, err)
	assert.Equal(t, "---\ndate: 2024-03-01\ntitle: Durable\n---\n\n", readFile(t, pub.To))

	unpub, err := e.Unpublish(root, filepath.Base(pub.To))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "_drafts", "durable.md"), unpub.To)

	ents, err := os.ReadDir(filepath.Join(root, "_posts"))
	require.NoError(t, err)
	assert.Empty(t, ents, "no temp files may be left behind")
}
