package output

import (
	"fmt"
	"io"

	rctx "github.com/Knodis-c/erdtree-3-1/internal/context"
	"github.com/Knodis-c/erdtree-3-1/internal/node"
)

// Report renders the snapshot tree as a flat du-style listing: one row per
// entry, size first, pre-order.
type Report struct {
	rc *rctx.Context
}

// NewReport builds a report renderer for the resolved parameter set.
func NewReport(rc *rctx.Context) *Report {
	return &Report{rc: rc}
}

// Render writes the report to w. Depth bounds apply the same way they do to
// the tree view.
func (r *Report) Render(w io.Writer, root *node.Node) error {
	var files, dirs int

	var visit func(n *node.Node) error
	visit = func(n *node.Node) error {
		if n.IsDir() {
			dirs++
		} else {
			files++
		}

		if err := r.renderRow(w, n); err != nil {
			return err
		}

		if n.Depth() >= r.rc.Level() {
			return nil
		}
		for _, child := range n.Children {
			if err := visit(child); err != nil {
				return err
			}
		}

		return nil
	}

	if err := visit(root); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d directories, %d files\n", dirs, files)

	return err
}

func (r *Report) renderRow(w io.Writer, n *node.Node) error {
	label := n.Path()
	if r.rc.FileName {
		label = n.FileNameLossy()
	}

	if r.rc.Human {
		size := "-"
		if fs := n.FileSize(); fs != nil {
			size = fs.Format()
		}
		_, err := fmt.Fprintf(w, "%-12s %s\n", size, label)
		return err
	}

	_, err := fmt.Fprintf(w, "%*d %s\n", r.rc.MaxDuWidth(), n.SizeBytes(), label)

	return err
}
