package node

import "github.com/Knodis-c/erdtree-3-1/internal/context"

// Comparator builds the less-than ordering for sibling nodes from the
// resolved sort mode and the dirs-first flag.
func Comparator(ctx *context.Context) func(a, b *Node) bool {
	base := baseComparator(ctx.Sort)

	if !ctx.DirsFirst {
		return base
	}

	return func(a, b *Node) bool {
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		return base(a, b)
	}
}

func baseComparator(sort context.SortType) func(a, b *Node) bool {
	switch sort {
	case context.SortName:
		return func(a, b *Node) bool {
			return a.FileNameLossy() < b.FileNameLossy()
		}
	case context.SortSizeRev:
		return func(a, b *Node) bool {
			if a.SizeBytes() != b.SizeBytes() {
				return a.SizeBytes() > b.SizeBytes()
			}
			return a.FileNameLossy() < b.FileNameLossy()
		}
	default:
		return func(a, b *Node) bool {
			if a.SizeBytes() != b.SizeBytes() {
				return a.SizeBytes() < b.SizeBytes()
			}
			return a.FileNameLossy() < b.FileNameLossy()
		}
	}
}
