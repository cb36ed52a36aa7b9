/*
Package output renders an assembled snapshot tree for the terminal, either
as an indented tree with box-drawing branches or as a flat du-style report.

All rendering decisions (color, icons, column widths, display depth) come
from the resolved parameter set; the renderers themselves hold no state
beyond it.
*/
package output

import (
	"fmt"
	"io"
	"strings"

	rctx "github.com/Knodis-c/erdtree-3-1/internal/context"
	"github.com/Knodis-c/erdtree-3-1/internal/node"
	"github.com/Knodis-c/erdtree-3-1/internal/styles"
)

const (
	branchMid  = "├── "
	branchEnd  = "└── "
	branchPipe = "│   "
	branchGap  = "    "
)

// Tree renders the snapshot tree with box-drawing branches.
type Tree struct {
	rc *rctx.Context

	// sizeWidth is the width of the widest formatted size among the
	// nodes that will actually be printed
	sizeWidth int
}

// NewTree builds a tree renderer for the resolved parameter set.
func NewTree(rc *rctx.Context) *Tree {
	return &Tree{rc: rc}
}

// Render writes the tree to w, bounded by the resolved display depth.
func (t *Tree) Render(w io.Writer, root *node.Node) error {
	t.sizeWidth = t.measure(root)

	if err := t.renderNode(w, root, ""); err != nil {
		return err
	}

	return t.renderChildren(w, root, "")
}

func (t *Tree) renderChildren(w io.Writer, parent *node.Node, prefix string) error {
	if parent.Depth() >= t.rc.Level() {
		return nil
	}

	for i, child := range parent.Children {
		last := i == len(parent.Children)-1

		branch, cont := branchMid, branchPipe
		if last {
			branch, cont = branchEnd, branchGap
		}

		if err := t.renderNode(w, child, prefix+branch); err != nil {
			return err
		}

		if child.IsDir() || len(child.Children) > 0 {
			if err := t.renderChildren(w, child, prefix+cont); err != nil {
				return err
			}
		}
	}

	return nil
}

func (t *Tree) renderNode(w io.Writer, n *node.Node, branches string) error {
	var line strings.Builder

	if t.rc.Long {
		line.WriteString(t.longColumns(n))
	}

	line.WriteString(t.sizeColumn(n))
	line.WriteString(t.paint(styles.Tree(), branches))

	if t.rc.Icons {
		line.WriteString(n.Icon())
		line.WriteByte(' ')
	}

	line.WriteString(t.paint(n.Style(), n.FileNameLossy()))

	if n.IsSymlink() {
		line.WriteString(t.paint(styles.Link(), " -> "+n.SymlinkTarget()))
	}

	_, err := fmt.Fprintln(w, line.String())

	return err
}

// longColumns renders the mode string, the hard-link count, and an extended
// attribute marker.
func (t *Tree) longColumns(n *node.Node) string {
	mode := n.Metadata().Mode().String()

	marker := " "
	if n.HasXattrs() {
		marker = "@"
	}

	return fmt.Sprintf("%s%s %*d  ", mode, marker, t.rc.MaxNlinkWidth(), n.Nlink())
}

// sizeColumn renders the formatted size right-aligned to the widest size in
// the visible tree. Entries without a size get matching blank padding.
func (t *Tree) sizeColumn(n *node.Node) string {
	if t.sizeWidth == 0 {
		return ""
	}

	size := n.FileSize()
	if size == nil {
		return strings.Repeat(" ", t.sizeWidth+1)
	}

	formatted := size.Format()
	pad := strings.Repeat(" ", t.sizeWidth-len(formatted))

	return pad + t.paint(styles.Size(), formatted) + " "
}

// measure finds the widest formatted size among the nodes within display
// depth, so the size column can be aligned before anything is written.
func (t *Tree) measure(n *node.Node) int {
	width := 0
	if size := n.FileSize(); size != nil {
		width = len(size.Format())
	}

	if n.Depth() >= t.rc.Level() {
		return width
	}

	for _, child := range n.Children {
		if cw := t.measure(child); cw > width {
			width = cw
		}
	}

	return width
}

func (t *Tree) paint(st styles.Style, text string) string {
	if !t.rc.UseColor() {
		return text
	}

	return st.Paint(text)
}
