package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectOpenArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"jekyll-compose"},
			want: []string{"jekyll-compose"},
		},
		{
			name: "file first token",
			in:   []string{"jekyll-compose", "2024-01-05-launch-day.md"},
			want: []string{"jekyll-compose", "open", "2024-01-05-launch-day.md"},
		},
		{
			name: "file after value flag",
			in:   []string{"jekyll-compose", "--root", "./site", "about.md"},
			want: []string{"jekyll-compose", "--root", "./site", "open", "about.md"},
		},
		{
			name: "file after equals flag",
			in:   []string{"jekyll-compose", "--root=./site", "notes.markdown"},
			want: []string{"jekyll-compose", "--root=./site", "open", "notes.markdown"},
		},
		{
			name: "file after bool flag",
			in:   []string{"jekyll-compose", "--pretty", "a.md"},
			want: []string{"jekyll-compose", "--pretty", "open", "a.md"},
		},
		{
			name: "file after double dash",
			in:   []string{"jekyll-compose", "--", "-odd-.md"},
			want: []string{"jekyll-compose", "--", "open", "-odd-.md"},
		},
		{
			name: "subcommand is left alone",
			in:   []string{"jekyll-compose", "publish", "draft.md"},
			want: []string{"jekyll-compose", "publish", "draft.md"},
		},
		{
			name: "value flag value that looks like a file",
			in:   []string{"jekyll-compose", "--format", "x.md"},
			want: []string{"jekyll-compose", "--format", "x.md"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectOpenArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectOpenArgs(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
