package stitch

import (
	"bufio"
	"io"
)

// TreeNode is one directory or file discovered by the Catalog.
// Each parent exclusively owns its children; nodes are read-only once
// Collect returns.
type TreeNode struct {
	Name     string
	Path     string
	IsDir    bool
	Pruned   bool // directory not expanded because of the recursion limit
	Depth    int
	Children []*TreeNode
}

// files flattens the tree depth-first, files only, in child order.
func (n *TreeNode) files(root string) []FileEntry {
	var out []FileEntry
	var walk func(*TreeNode)
	walk = func(node *TreeNode) {
		if !node.IsDir {
			out = append(out, FileEntry{Path: node.Path, Root: root, Depth: node.Depth})
			return
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// CountFiles returns the number of file nodes below n, including n itself.
func (n *TreeNode) CountFiles() int {
	if !n.IsDir {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += c.CountFiles()
	}
	return total
}

// Box-drawing connectors.
const (
	branchMid  = "├── "
	branchLast = "└── "
	indentBar  = "│   "
	indentNone = "    "
	prunedMark = " …"
)

// RenderTree writes nodes top-down with box-drawing characters.
// Directories end with a slash; pruned directories are marked with an ellipsis.
func RenderTree(w io.Writer, nodes []*TreeNode) error {
	bw := bufio.NewWriter(w)
	for _, n := range nodes {
		bw.WriteString(label(n))
		bw.WriteByte('\n')
		renderChildren(bw, n.Children, "")
	}
	return bw.Flush()
}

func renderChildren(bw *bufio.Writer, children []*TreeNode, prefix string) {
	for i, c := range children {
		last := i == len(children)-1
		connector, indent := branchMid, indentBar
		if last {
			connector, indent = branchLast, indentNone
		}
		bw.WriteString(prefix)
		bw.WriteString(connector)
		bw.WriteString(label(c))
		bw.WriteByte('\n')
		renderChildren(bw, c.Children, prefix+indent)
	}
}

func label(n *TreeNode) string {
	if !n.IsDir {
		return n.Name
	}
	s := n.Name + "/"
	if n.Pruned {
		s += prunedMark
	}
	return s
}
