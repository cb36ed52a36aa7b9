package walker

import (
	"time"

	"github.com/Knodis-c/erdtree-3-1/internal/node"
)

// Stats summarizes one completed traversal.
type Stats struct {
	// NumFiles is the number of non-directory entries in the final tree
	NumFiles int

	// NumDirs is the number of directories in the final tree, root included
	NumDirs int

	// NumLinks is the number of symbolic links in the final tree
	NumLinks int

	// TotalBytes is the aggregated size of the root directory
	TotalBytes uint64

	// SkippedEntries counts entries dropped by filtering rules
	SkippedEntries int64

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Result holds the assembled tree plus everything learned along the way.
type Result struct {
	// Root is the snapshot of the traversal root with children attached
	Root *node.Node

	// Errors maps paths to the error that prevented their inclusion
	Errors map[string]error

	Stats Stats
}
