package content

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGolden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRender_Golden(t *testing.T) {
	fm := NewFrontMatter("title", "Launch Day", "date", "2024-01-05", "layout", "post")
	newGolden(t).Assert(t, "render_post", []byte(Render(fm, "Hello.\n")))
}

func TestRenderParse_RoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		fm   FrontMatter
		body string
	}{
		{"empty", FrontMatter{}, ""},
		{"title only", NewFrontMatter("title", "Hello World"), ""},
		{"title and date", NewFrontMatter("title", "Launch Day", "date", "2024-01-05"), "Body\n"},
		{"colons in value", NewFrontMatter("title", "Part 1: The Start", "permalink", "/a:b/"), "x"},
		{"empty value", NewFrontMatter("title", "T", "tags", ""), "line one\n\nline three\n"},
		{"body looks like front matter", NewFrontMatter("title", "T"), "---\nnot: front matter\n---\n"},
		{"order kept", NewFrontMatter("z", "1", "a", "2", "m", "3"), "b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fm, body := Parse(Render(tc.fm, tc.body))
			assert.Equal(t, tc.fm.Keys(), fm.Keys())
			assert.Equal(t, tc.fm.Map(), fm.Map())
			assert.Equal(t, tc.body, body)
		})
	}
}

func TestParse_NoFrontMatter(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"",
		"just a body\n",
		"title: Not Front Matter\n---\n",
		" ---\ntitle: x\n---\n",
		"---\ntitle: never closed\n",
	} {
		fm, body := Parse(text)
		assert.Equal(t, 0, fm.Len(), "text %q", text)
		assert.Equal(t, text, body)
	}
}

func TestParse_CRLF(t *testing.T) {
	t.Parallel()

	fm, body := Parse("---\r\ntitle: Windows\r\ndate: 2024-02-02\r\n---\r\n\r\nBody\r\n")
	title, _ := fm.Get("title")
	date, _ := fm.Get("date")
	assert.Equal(t, "Windows", title)
	assert.Equal(t, "2024-02-02", date)
	assert.Equal(t, "Body\r\n", body)
}

func TestParseStrict(t *testing.T) {
	t.Parallel()

	fm, body, err := ParseStrict("---\ntitle: \"Quoted: Title\"\ndate: 2024-01-05\nlayout: post\n---\n\nBody")
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "date", "layout"}, fm.Keys())
	title, _ := fm.Get("title")
	assert.Equal(t, "Quoted: Title", title)
	assert.Equal(t, "Body", body)

	_, _, err = ParseStrict("---\ntitle: [unclosed\n---\n\n")
	assert.Error(t, err)

	_, _, err = ParseStrict("---\ntags:\n  - a\n  - b\n---\n\n")
	assert.Error(t, err)

	fm, body, err = ParseStrict("no front matter")
	require.NoError(t, err)
	assert.Equal(t, 0, fm.Len())
	assert.Equal(t, "no front matter", body)
}

func TestFindTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{"---\ntitle: My Draft\n---\n", "My Draft", true},
		{"---\ntitle:   \"Quoted\"  \n---\n", "Quoted", true},
		{"---\ntitle: 'Single'\n---\n", "Single", true},
		{"title:NoSpace", "NoSpace", true},
		{"broken [yaml\ntitle: Still Found\n", "Still Found", true},
		{"---\nTitle: Wrong Case\n---\n", "", false},
		{"---\ntitle:\n---\n", "", false},
		{"no title here", "", false},
	}
	for _, tt := range tests {
		got, ok := FindTitle(tt.text)
		assert.Equal(t, tt.wantOK, ok, "text %q", tt.text)
		assert.Equal(t, tt.want, got, "text %q", tt.text)
	}
}

func TestFindDate(t *testing.T) {
	t.Parallel()

	got, ok := FindDate("---\ntitle: x\ndate:2023-12-31 10:00:00\n---\n")
	assert.True(t, ok)
	assert.Equal(t, "2023-12-31 10:00:00", got)

	_, ok = FindDate("---\ntitle: x\n---\n")
	assert.False(t, ok)
}

func TestParse_DropsLeadingValueWhitespace(t *testing.T) {
	t.Parallel()

	fm, body := Parse(Render(NewFrontMatter("title", "  padded", "tag", "\tx"), "b"))
	v, _ := fm.Get("title")
	assert.Equal(t, "padded", v)
	v, _ = fm.Get("tag")
	assert.Equal(t, "x", v)
	assert.Equal(t, "b", body)
}

func TestInjectDate(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"---\ndate: 2024-03-01\ntitle: T\n---\n\n",
		InjectDate("---\ntitle: T\n---\n\n", "2024-03-01"))
	assert.Equal(t,
		"---\r\ndate: 2024-03-01\r\ntitle: T\r\n---\r\n\r\n",
		InjectDate("---\r\ntitle: T\r\n---\r\n\r\n", "2024-03-01"))
	assert.Equal(t,
		"intro\n---\ndate: 2024-03-01\nx\n",
		InjectDate("intro\n---\nx\n", "2024-03-01"))
	assert.Equal(t, "no delimiter", InjectDate("no delimiter", "2024-03-01"))
	assert.Equal(t, "---", InjectDate("---", "2024-03-01"))
}

func TestFrontMatter_SetKeepsPosition(t *testing.T) {
	t.Parallel()

	fm := NewFrontMatter("title", "A", "date", "2024-01-01")
	fm.Set("title", "B")
	fm.Set("layout", "post")
	assert.Equal(t, []string{"title", "date", "layout"}, fm.Keys())

	fm.Delete("date")
	fm.Delete("missing")
	assert.Equal(t, []string{"title", "layout"}, fm.Keys())
	v, ok := fm.Get("title")
	assert.True(t, ok)
	assert.Equal(t, "B", v)
}
