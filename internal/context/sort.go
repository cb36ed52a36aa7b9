package context

import "fmt"

// SortType is the ordering used to display directory contents.
type SortType int

const (
	// SortName orders entries lexicographically by name.
	SortName SortType = iota

	// SortSize orders entries by ascending size.
	SortSize

	// SortSizeRev orders entries by descending size.
	SortSizeRev
)

// ParseSortType parses a sort order name.
func ParseSortType(s string) (SortType, error) {
	switch s {
	case "name":
		return SortName, nil
	case "size":
		return SortSize, nil
	case "size-rev":
		return SortSizeRev, nil
	default:
		return SortSize, fmt.Errorf("unknown sort order: %q", s)
	}
}

func (s SortType) String() string {
	switch s {
	case SortName:
		return "name"
	case SortSizeRev:
		return "size-rev"
	default:
		return "size"
	}
}
