/*
Package node turns a raw traversal entry into an immutable, render-ready
snapshot: size, style, symlink target, inode identity, and extended
attributes, resolved once against the run's parameter set.

The only mutation permitted after construction is the deferred size
back-fill for directories, applied exactly once by the aggregation pass
after the full subtree has been visited.
*/
package node

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/Knodis-c/erdtree-3-1/internal/context"
	"github.com/Knodis-c/erdtree-3-1/internal/du"
	"github.com/Knodis-c/erdtree-3-1/internal/icons"
	"github.com/Knodis-c/erdtree-3-1/internal/inode"
	"github.com/Knodis-c/erdtree-3-1/internal/styles"
)

// Entry is the raw filesystem handle yielded by traversal: a path, its
// depth below the traversal root, and the raw file-type bits.
type Entry struct {
	Path  string
	Depth int
	Mode  os.FileMode
}

// FileName returns the base name of the entry.
func (e Entry) FileName() string {
	return filepath.Base(e.Path)
}

// MetadataError reports that metadata for an entry could not be fetched.
// An entry with no retrievable metadata cannot be rendered.
type MetadataError struct {
	Path string
	Err  error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("cannot fetch metadata for %s: %v", e.Path, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

// Node is the immutable snapshot of one filesystem entry.
type Node struct {
	entry         Entry
	meta          os.FileInfo
	fileSize      *du.FileSize
	style         styles.Style
	symlinkTarget string
	ino           *inode.Inode
	xattrs        []string
	finalized     bool

	// Children is populated by the traversal engine as the tree assembles.
	Children []*Node
}

// New builds a snapshot for one entry. Metadata failure is fatal for the
// entry; everything else degrades to "no value".
func New(entry Entry, ctx *context.Context, fsys afero.Fs) (*Node, error) {
	target := symlinkTarget(fsys, entry)

	meta, err := fetchMetadata(fsys, entry, ctx.Follow)
	if err != nil {
		return nil, &MetadataError{Path: entry.Path, Err: err}
	}

	var fileSize *du.FileSize
	if meta.Mode().IsRegular() && !ctx.SuppressSize {
		switch ctx.DiskUsage {
		case du.Physical:
			fileSize = du.PhysicalSize(meta, ctx.Unit, ctx.Scale)
		default:
			size := du.LogicalSize(meta, ctx.Unit, ctx.Scale)
			fileSize = &size
		}
	}

	var ino *inode.Inode
	if identity, err := inode.FromFileInfo(meta); err == nil {
		ino = &identity
	}

	var attrs []string
	if ctx.Long {
		attrs = listXattrs(entry.Path)
	}

	return &Node{
		entry:         entry,
		meta:          meta,
		fileSize:      fileSize,
		style:         styles.For(entry.Path, meta),
		symlinkTarget: target,
		ino:           ino,
		xattrs:        attrs,
		finalized:     fileSize != nil,
	}, nil
}

func fetchMetadata(fsys afero.Fs, entry Entry, follow bool) (os.FileInfo, error) {
	if follow {
		return fsys.Stat(entry.Path)
	}

	if lr, ok := fsys.(afero.Lstater); ok {
		meta, _, err := lr.LstatIfPossible(entry.Path)
		return meta, err
	}

	return fsys.Stat(entry.Path)
}

// symlinkTarget resolves the target of a symlink entry. Anything other
// than a readable symlink yields no value, not an error.
func symlinkTarget(fsys afero.Fs, entry Entry) string {
	if entry.Mode&os.ModeSymlink == 0 {
		return ""
	}

	lr, ok := fsys.(afero.LinkReader)
	if !ok {
		return ""
	}

	target, err := lr.ReadlinkIfPossible(entry.Path)
	if err != nil {
		return ""
	}

	return target
}

// Path returns the entry path.
func (n *Node) Path() string { return n.entry.Path }

// Depth returns the entry depth below the traversal root.
func (n *Node) Depth() int { return n.entry.Depth }

// ParentPath returns the path of the entry's parent directory.
func (n *Node) ParentPath() string { return filepath.Dir(n.entry.Path) }

// FileName returns the entry name. For symlinks this is the name of the
// link, not the target.
func (n *Node) FileName() string { return n.entry.FileName() }

// FileNameLossy converts the entry name to text, substituting the Unicode
// replacement character for non-text byte sequences.
func (n *Node) FileNameLossy() string {
	return strings.ToValidUTF8(n.FileName(), "�")
}

// Metadata returns the entry metadata as provided by the OS.
func (n *Node) Metadata() os.FileInfo { return n.meta }

// IsDir reports whether the entry is a directory.
func (n *Node) IsDir() bool { return n.meta.IsDir() }

// IsSymlink reports whether the entry is a symlink. Presence of a resolved
// target is the sole witness; no separate flag is stored.
func (n *Node) IsSymlink() bool { return n.symlinkTarget != "" }

// SymlinkTarget returns the symlink target path, or "" for non-symlinks.
func (n *Node) SymlinkTarget() string { return n.symlinkTarget }

// SymlinkTargetFileName returns the base name of the symlink target.
func (n *Node) SymlinkTargetFileName() string {
	if n.symlinkTarget == "" {
		return ""
	}

	return filepath.Base(n.symlinkTarget)
}

// FileSize returns the resolved size, or nil for directories before
// back-fill, suppressed sizes, and non-regular files.
func (n *Node) FileSize() *du.FileSize { return n.fileSize }

// FinalizeSize back-fills the size computed by the aggregation pass.
// Permitted exactly once, and only for snapshots built without a size.
func (n *Node) FinalizeSize(size du.FileSize) error {
	if n.finalized {
		return fmt.Errorf("size already finalized for %s", n.entry.Path)
	}

	n.fileSize = &size
	n.finalized = true

	return nil
}

// SizeBytes returns the resolved size in bytes, or 0 when absent.
func (n *Node) SizeBytes() uint64 {
	if n.fileSize == nil {
		return 0
	}

	return n.fileSize.Bytes
}

// Inode returns the entry's inode identity, or nil when the platform does
// not expose one.
func (n *Node) Inode() *inode.Inode { return n.ino }

// Nlink returns the hard-link count, or 0 when identity is unavailable.
func (n *Node) Nlink() uint64 {
	if n.ino == nil {
		return 0
	}

	return n.ino.Nlink
}

// Xattrs returns the entry's extended attribute names. Always nil unless
// the snapshot was built for long-format display.
func (n *Node) Xattrs() []string { return n.xattrs }

// HasXattrs reports whether the entry carries extended attributes.
func (n *Node) HasXattrs() bool { return len(n.xattrs) > 0 }

// Style returns the display style resolved from the color-scheme table.
func (n *Node) Style() styles.Style { return n.style }

// Icon selects an icon for the entry.
func (n *Node) Icon() string {
	return icons.Compute(n.entry.Path, n.symlinkTarget, n.IsDir())
}

// FileTypeIdentifier returns the single-character file type identifier
// seen in ls -l output, or "" for unrecognized types.
func (n *Node) FileTypeIdentifier() string {
	mode := n.meta.Mode()

	switch {
	case mode.IsDir():
		return "d"
	case mode.IsRegular():
		return "-"
	case mode&os.ModeSymlink != 0:
		return "l"
	case mode&os.ModeNamedPipe != 0:
		return "p"
	case mode&os.ModeSocket != 0:
		return "s"
	case mode&os.ModeCharDevice != 0:
		return "c"
	case mode&os.ModeDevice != 0:
		return "b"
	default:
		return ""
	}
}
