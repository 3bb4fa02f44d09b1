package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func TestFitWidth(t *testing.T) {
	cases := []struct {
		in   string
		w    int
		want string
	}{
		{"abc", 5, "abc  "},
		{"abc", 3, "abc"},
		{"abcdef", 4, "abc…"},
		{"abcdef", 1, "a"},
		{"abc", 0, ""},
		{"日本語", 4, "日…"},
	}
	for _, tc := range cases {
		got := fitWidth(tc.in, tc.w)
		if got != tc.want {
			t.Fatalf("fitWidth(%q, %d) = %q, want %q", tc.in, tc.w, got, tc.want)
		}
		if tc.w > 0 && xansi.StringWidth(got) > tc.w {
			t.Fatalf("fitWidth(%q, %d) is %d cells wide", tc.in, tc.w, xansi.StringWidth(got))
		}
	}
}

func TestUpdateConfirm(t *testing.T) {
	cases := []struct {
		name       string
		focus      confirmModalFocus
		key        tea.KeyMsg
		wantClosed bool
		wantYes    bool
	}{
		{"y", confirmFocusCancel, runes("y"), true, true},
		{"n", confirmFocusConfirm, runes("n"), true, false},
		{"esc", confirmFocusConfirm, tea.KeyMsg{Type: tea.KeyEsc}, true, false},
		{"enter on confirm", confirmFocusConfirm, tea.KeyMsg{Type: tea.KeyEnter}, true, true},
		{"enter on cancel", confirmFocusCancel, tea.KeyMsg{Type: tea.KeyEnter}, true, false},
		{"tab", confirmFocusConfirm, tea.KeyMsg{Type: tea.KeyTab}, false, false},
		{"other", confirmFocusConfirm, runes("x"), false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := confirmState{focus: tc.focus}
			closed, yes := updateConfirm(&c, tc.key)
			if closed != tc.wantClosed || yes != tc.wantYes {
				t.Fatalf("got closed=%v yes=%v, want closed=%v yes=%v", closed, yes, tc.wantClosed, tc.wantYes)
			}
		})
	}

	c := confirmState{focus: confirmFocusConfirm}
	updateConfirm(&c, tea.KeyMsg{Type: tea.KeyTab})
	if c.focus != confirmFocusCancel {
		t.Fatalf("tab should move focus to cancel")
	}
}

func TestConfirmModal_RendersLabels(t *testing.T) {
	v := renderConfirmModal(80, confirmState{title: "File exists", body: "Replace?", yesLabel: "Overwrite", noLabel: "Keep"})
	for _, want := range []string{"File exists", "Replace?", "Overwrite", "Keep"} {
		if !strings.Contains(v, want) {
			t.Fatalf("modal missing %q:\n%s", want, v)
		}
	}
}

func TestThemePreference(t *testing.T) {
	cases := []struct {
		env      map[string]string
		wantDark bool
		wantOK   bool
	}{
		{map[string]string{"JEKYLL_COMPOSE_TUI_THEME": "light"}, false, true},
		{map[string]string{"JEKYLL_COMPOSE_TUI_THEME": "DARK"}, true, true},
		{map[string]string{"JEKYLL_COMPOSE_TUI_THEME": "auto", "COLORFGBG": "15;0"}, true, true},
		{map[string]string{"COLORFGBG": "0;15"}, false, true},
		{map[string]string{"COLORFGBG": "garbage"}, false, false},
		{map[string]string{}, false, false},
	}
	for _, tc := range cases {
		dark, ok := themePreference(func(k string) string { return tc.env[k] })
		if dark != tc.wantDark || ok != tc.wantOK {
			t.Fatalf("themePreference(%v) = %v,%v want %v,%v", tc.env, dark, ok, tc.wantDark, tc.wantOK)
		}
	}
}

func TestColorProfileFor(t *testing.T) {
	cases := []struct {
		env      map[string]string
		detected termenv.Profile
		want     termenv.Profile
	}{
		{map[string]string{"NO_COLOR": "1", "COLORTERM": "truecolor"}, termenv.TrueColor, termenv.Ascii},
		{map[string]string{"COLORTERM": "truecolor"}, termenv.ANSI, termenv.TrueColor},
		{map[string]string{"COLORTERM": "24bit"}, termenv.Ascii, termenv.Ascii},
		{map[string]string{"TERM": "xterm-256color"}, termenv.ANSI, termenv.ANSI256},
		{map[string]string{"TERM": "xterm-256color"}, termenv.Ascii, termenv.ANSI256},
		{map[string]string{"TERM": "xterm-256color"}, termenv.TrueColor, termenv.TrueColor},
		{map[string]string{"TERM": "xterm"}, termenv.ANSI, termenv.ANSI},
	}
	for _, tc := range cases {
		got := colorProfileFor(func(k string) string { return tc.env[k] }, tc.detected)
		if got != tc.want {
			t.Fatalf("colorProfileFor(%v, %v) = %v want %v", tc.env, tc.detected, got, tc.want)
		}
	}
}

func TestRenderDocument(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	out := renderDocument("---\ntitle: Hello\ndate: 2024-01-05\n---\n\nSome *text*.\n", 60)
	for _, want := range []string{"title: Hello", "date: 2024-01-05", "Some"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered document missing %q:\n%s", want, out)
		}
	}

	empty := renderDocument("---\ntitle: Hello\n---\n\n", 60)
	if !strings.Contains(empty, "(empty body)") {
		t.Fatalf("expected empty body marker:\n%s", empty)
	}
}

func TestForm_TabCyclesAndValidates(t *testing.T) {
	f := newForm("New", []formField{
		{key: "kind", label: "Kind", kind: fieldChoice, choices: []string{"a", "b"}, value: "b"},
		{key: "title", label: "Title", required: true},
	})
	if f.focus != 0 {
		t.Fatalf("expected first field focused")
	}
	if got := f.Values()["kind"]; got != "b" {
		t.Fatalf("expected preselected choice b, got %q", got)
	}

	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := f.Values()["kind"]; got != "a" {
		t.Fatalf("expected choice to wrap to a, got %q", got)
	}

	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	if f.focus != 0 {
		t.Fatalf("expected tab to wrap to the first field, got %d", f.focus)
	}

	f.setFocus(1)
	f, res, _ := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if res != formPending || f.err != "Title is required" {
		t.Fatalf("expected required error, res=%v err=%q", res, f.err)
	}

	f, _, _ = f.Update(runes("  Hi  "))
	f, res, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if res != formSubmitted {
		t.Fatalf("expected submit, got %v", res)
	}
	if got := f.Values()["title"]; got != "Hi" {
		t.Fatalf("expected trimmed title, got %q", got)
	}

	_, res, _ = f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if res != formCanceled {
		t.Fatalf("expected esc to cancel")
	}
}
