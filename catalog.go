package stitch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultRecursionLimit is the directory depth explored when none is configured.
const DefaultRecursionLimit = 5

// FileEntry is one file selected for merging.
type FileEntry struct {
	Path  string // absolute path
	Root  string // root argument the file was discovered from
	Depth int    // 0 for a file given directly, parent depth + 1 otherwise
}

// Format classifies the entry from its extension. It is derived on every
// call so a renamed entry never carries a stale classification.
func (e FileEntry) Format() Format {
	return Classify(e.Path)
}

// Name returns the base name of the entry.
func (e FileEntry) Name() string {
	return filepath.Base(e.Path)
}

// DiagnosticKind identifies why a root was dropped during discovery.
type DiagnosticKind string

// Discovery diagnostic kinds.
const (
	DiagnosticMissing      DiagnosticKind = "missing"
	DiagnosticUnrecognized DiagnosticKind = "unrecognized-extension"
)

// Diagnostic describes an input dropped during discovery.
type Diagnostic struct {
	Path string
	Kind DiagnosticKind
	Err  error
}

// String renders the diagnostic for console output.
func (d Diagnostic) String() string {
	switch d.Kind {
	case DiagnosticMissing:
		return fmt.Sprintf("skipped %s: %v", d.Path, d.Err)
	case DiagnosticUnrecognized:
		return fmt.Sprintf("skipped %s: unrecognized extension", d.Path)
	}
	return "skipped " + d.Path
}

// CatalogOptions configures input discovery.
type CatalogOptions struct {
	AlphabeticSort bool         // sort root arguments before traversal
	RecursionLimit int          // see Catalog
	Locale         language.Tag // collation locale, language.Und when zero
}

// CatalogResult is the outcome of Catalog.Collect.
type CatalogResult struct {
	Entries []FileEntry  // files in merge order
	Trees   []*TreeNode  // one tree per root, in root order
	Dropped []Diagnostic // roots that could not be used
}

// Catalog discovers input files below a set of roots.
//
// A directory at depth d lists its recognized files and, while
// d+1 < RecursionLimit, descends into its subdirectories. Files are ordered
// before subdirectories; each population is sorted naturally (numbers
// compare by value) and case-insensitively.
type Catalog struct {
	opts     CatalogOptions
	collator *collate.Collator
}

// NewCatalog creates a Catalog. Returns an error for a negative recursion limit.
func NewCatalog(opts CatalogOptions) (*Catalog, error) {
	if opts.RecursionLimit < 0 {
		return nil, fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidRecursionLimit, opts.RecursionLimit)
	}
	return &Catalog{
		opts:     opts,
		collator: collate.New(opts.Locale, collate.IgnoreCase, collate.Numeric),
	}, nil
}

// Collect walks roots and returns the ordered entries.
// An empty result is not an error here; the Merger rejects it.
func (c *Catalog) Collect(roots []string) (*CatalogResult, error) {
	ordered := slices.Clone(roots)
	if c.opts.AlphabeticSort {
		slices.SortStableFunc(ordered, func(a, b string) int {
			return strings.Compare(strings.ToLower(a), strings.ToLower(b))
		})
	}

	result := &CatalogResult{}
	for _, root := range ordered {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadSource, root, err)
		}

		info, err := os.Stat(abs)
		if err != nil {
			result.Dropped = append(result.Dropped, Diagnostic{Path: root, Kind: DiagnosticMissing, Err: err})
			continue
		}

		if !info.IsDir() {
			if !IsRecognized(abs) {
				result.Dropped = append(result.Dropped, Diagnostic{Path: root, Kind: DiagnosticUnrecognized})
				continue
			}
			node := &TreeNode{Name: filepath.Base(abs), Path: abs}
			result.Trees = append(result.Trees, node)
			result.Entries = append(result.Entries, FileEntry{Path: abs, Root: root})
			continue
		}

		tree, err := c.populate(abs, abs, 0)
		if err != nil {
			return nil, err
		}
		result.Trees = append(result.Trees, tree)
		result.Entries = append(result.Entries, tree.files(root)...)
	}

	return result, nil
}

// populate builds the tree for dir at depth.
func (c *Catalog) populate(dir, name string, depth int) (*TreeNode, error) {
	node := &TreeNode{Name: name, Path: dir, IsDir: true, Depth: depth}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", ErrReadSource, dir, err)
	}

	var files, dirs []string
	for _, e := range entries {
		if isIgnoredName(e.Name()) {
			continue
		}
		isDir, err := resolveIsDir(filepath.Join(dir, e.Name()), e)
		if err != nil {
			continue // dangling symlink
		}
		switch {
		case isDir:
			dirs = append(dirs, e.Name())
		case IsRecognized(e.Name()):
			files = append(files, e.Name())
		}
	}

	c.sortNames(files)
	c.sortNames(dirs)

	for _, f := range files {
		node.Children = append(node.Children, &TreeNode{
			Name:  f,
			Path:  filepath.Join(dir, f),
			Depth: depth + 1,
		})
	}

	expand := depth+1 < c.opts.RecursionLimit
	for _, d := range dirs {
		path := filepath.Join(dir, d)
		if !expand {
			node.Children = append(node.Children, &TreeNode{
				Name:   d,
				Path:   path,
				IsDir:  true,
				Pruned: true,
				Depth:  depth + 1,
			})
			continue
		}
		child, err := c.populate(path, d, depth+1)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}

	return node, nil
}

// sortNames orders names naturally and case-insensitively. Ties fall back
// to a byte comparison so the order is total.
func (c *Catalog) sortNames(names []string) {
	slices.SortFunc(names, func(a, b string) int {
		if r := c.collator.CompareString(a, b); r != 0 {
			return r
		}
		return strings.Compare(a, b)
	})
}

// resolveIsDir follows symlinks so linked directories are traversed.
func resolveIsDir(path string, e fs.DirEntry) (bool, error) {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.IsDir(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// isIgnoredName skips hidden entries and office lock files.
func isIgnoredName(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$")
}
