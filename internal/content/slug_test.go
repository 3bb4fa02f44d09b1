package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"My First Post!", "my-first-post"},
		{"Hello World", "hello-world"},
		{"  --Hello--World--  ", "hello-world"},
		{"C++ & Go", "c-go"},
		{"snake_case title", "snake_case-title"},
		{"Tabs\tand\nnewlines", "tabs-and-newlines"},
		{"Hello\u00a0World", "hello-world"},
		{"Hello\vWorld", "hello-world"},
		{"Hello\u2003World", "hello-world"},
		{"Hello\u3000World", "hello-world"},
		{"Line\u2028Sep\u0085Next", "line-sep-next"},
		{"Café Crème", "café-crème"},
		{"2024 Review: Part 2", "2024-review-part-2"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"My First Post!",
		"  --a -- b--  ",
		"Ünïcödé Tïtle",
		"x_y-z w",
		"İstanbul",
		"---",
		"Already-a-slug",
		"Non\u00a0breaking\u3000space",
		"\u2003 - \v",
	}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "Slugify not idempotent for %q", in)
	}
}
