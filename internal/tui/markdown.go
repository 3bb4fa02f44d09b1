package tui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"jekyll-compose/internal/content"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// rendererCache keeps one glamour renderer per style and wrap width. A fixed style is
// used because WithAutoStyle can block on terminal background queries.
type rendererCache struct {
	mu    sync.Mutex
	byKey map[string]*glamour.TermRenderer
}

var markdownRenderers = &rendererCache{byKey: map[string]*glamour.TermRenderer{}}

func (c *rendererCache) get(style string, width int) (*glamour.TermRenderer, error) {
	key := style + ":" + strconv.Itoa(width)
	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.byKey[key]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	c.byKey[key] = r
	return r, nil
}

// renderMarkdown falls back to the raw text when glamour fails.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	r, err := markdownRenderers.get(markdownStyle(), max(width, 10))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func markdownStyle() string {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return styles.NoTTYStyle
	}
	if dark, ok := themePreference(os.Getenv); ok {
		if dark {
			return styles.DarkStyle
		}
		return styles.LightStyle
	}
	if lipgloss.HasDarkBackground() {
		return styles.DarkStyle
	}
	return styles.LightStyle
}

// renderDocument shows the front matter as muted "key: value" lines above the
// rendered Markdown body.
func renderDocument(text string, width int) string {
	fm, body := content.Parse(text)
	var parts []string
	if fm.Len() > 0 {
		var lines []string
		for _, k := range fm.Keys() {
			v, _ := fm.Get(k)
			lines = append(lines, fitWidth(k+": "+v, width))
		}
		parts = append(parts, styleMuted().Render(strings.Join(lines, "\n")))
	}
	if b := renderMarkdown(body, width); b != "" {
		parts = append(parts, b)
	} else {
		parts = append(parts, styleMuted().Render("(empty body)"))
	}
	return strings.Join(parts, "\n\n")
}
