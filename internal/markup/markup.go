// Package markup renders Markdown sources to standalone HTML documents that
// the office suite can convert to PDF.
package markup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrRender indicates Markdown could not be rendered to HTML.
var ErrRender = errors.New("markdown rendering failed")

// htmlTemplate wraps goldmark's fragment output in a complete HTML5 document.
// Inline styles are used: the office suite ignores external stylesheets.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; font-size: 11pt; }
pre, code { font-family: monospace; font-size: 9pt; }
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 2pt 4pt; }
</style>
</head>
<body>
%s
</body>
</html>`

// Renderer converts Markdown to HTML using goldmark.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with GFM extensions and syntax highlighting.
// Code blocks get inline styles because the HTML is consumed without CSS.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
		),
	)
	return &Renderer{md: md}
}

// Render converts Markdown source to a standalone HTML5 document titled title.
// Relative image paths are resolved against baseDir, normally the directory
// of the Markdown file; an empty baseDir leaves them as written.
// Goldmark has no context support, so cancellation is only checked up front.
func (r *Renderer) Render(ctx context.Context, source []byte, title, baseDir string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	body, err := resolveImages(buf.String(), baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return fmt.Appendf(nil, htmlTemplate, html.EscapeString(title), body), nil
}
