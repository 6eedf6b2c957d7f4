package markup

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// resolveImages rewrites relative img[src] values in an HTML fragment to
// file:// URLs under baseDir. The rendered document is converted from a
// scratch directory, so paths relative to the Markdown file would not
// resolve there. Targets outside baseDir are left untouched.
func resolveImages(fragment, baseDir string) (string, error) {
	if baseDir == "" {
		return fragment, nil
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for _, n := range nodes {
		walkImages(n, absBase)
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func walkImages(n *html.Node, baseDir string) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		for i, attr := range n.Attr {
			if attr.Key != "src" || !isLocalRelative(attr.Val) {
				continue
			}
			target := filepath.Join(baseDir, filepath.FromSlash(attr.Val))
			if !within(target, baseDir) {
				continue
			}
			n.Attr[i].Val = fileURL(target)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkImages(c, baseDir)
	}
}

// isLocalRelative reports whether ref is a relative filesystem path rather
// than a URL, an anchor or an absolute path.
func isLocalRelative(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return false
	}
	return !filepath.IsAbs(ref)
}

func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func fileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // C:/x -> /C:/x
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
