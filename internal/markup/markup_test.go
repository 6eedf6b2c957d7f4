package markup

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRender - Markdown to standalone HTML
// ---------------------------------------------------------------------------

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		title    string
		contains []string
	}{
		{
			name:     "heading gets an id",
			source:   "# Hello",
			title:    "notes",
			contains: []string{`<h1 id="hello">Hello</h1>`, "<title>notes</title>", "<!DOCTYPE html>"},
		},
		{
			name:     "GFM table",
			source:   "| a | b |\n|---|---|\n| 1 | 2 |",
			title:    "t",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "title is escaped",
			source:   "x",
			title:    "<b>&",
			contains: []string{"<title>&lt;b&gt;&amp;</title>"},
		},
		{
			name:     "code block uses inline styles",
			source:   "```go\nfunc main() {}\n```",
			title:    "code",
			contains: []string{"<pre", "style="},
		},
	}

	r := NewRenderer()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.Render(context.Background(), []byte(tt.source), tt.title, "")
			if err != nil {
				t.Fatalf("Render() unexpected error: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(string(got), want) {
					t.Errorf("Render() output missing %q\n%s", want, got)
				}
			}
		})
	}
}

func TestRender_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRenderer().Render(ctx, []byte("# x"), "x", "")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestRender_ImagePaths - relative images resolve against the base directory
// ---------------------------------------------------------------------------

func TestRender_ImagePaths(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	wantLocal := fileURL(filepath.Join(base, "img", "a.png"))

	tests := []struct {
		name    string
		source  string
		want    string
		wantNot string
	}{
		{
			name:   "relative image becomes file URL",
			source: "![a](img/a.png)",
			want:   `src="` + wantLocal + `"`,
		},
		{
			name:   "remote image unchanged",
			source: "![a](https://example.com/a.png)",
			want:   `src="https://example.com/a.png"`,
		},
		{
			name:    "escaping base dir unchanged",
			source:  "![a](../secret.png)",
			want:    `src="../secret.png"`,
			wantNot: "file://",
		},
		{
			name:    "links are not rewritten",
			source:  "[doc](notes.md)",
			want:    `href="notes.md"`,
			wantNot: "file://",
		},
	}

	r := NewRenderer()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.Render(context.Background(), []byte(tt.source), "t", base)
			if err != nil {
				t.Fatalf("Render() unexpected error: %v", err)
			}
			if !strings.Contains(string(got), tt.want) {
				t.Errorf("Render() output missing %q\n%s", tt.want, got)
			}
			if tt.wantNot != "" && strings.Contains(string(got), tt.wantNot) {
				t.Errorf("Render() output contains %q\n%s", tt.wantNot, got)
			}
		})
	}
}

func TestIsLocalRelative(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ref  string
		want bool
	}{
		{"img/a.png", true},
		{"a.png", true},
		{"", false},
		{"#top", false},
		{"//cdn.example.com/a.png", false},
		{"data:image/png;base64,AAAA", false},
		{"file:///tmp/a.png", false},
		{"/abs/a.png", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.ref, func(t *testing.T) {
			t.Parallel()

			if got := isLocalRelative(tt.ref); got != tt.want {
				t.Errorf("isLocalRelative(%q) = %v, want %v", tt.ref, got, tt.want)
			}
		})
	}
}
