// Package du models disk usage for a single filesystem entry: the reported
// logical length or the physical on-disk allocation, carried together with
// the unit system and decimal scale used for display.
package du

import (
	"fmt"
	"os"
)

// Mode selects how file size is computed.
type Mode int

const (
	// Logical reports the metadata length of the file.
	Logical Mode = iota

	// Physical reports the on-disk block allocation of the file.
	Physical
)

// ParseMode parses a disk usage mode name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "logical":
		return Logical, nil
	case "physical":
		return Physical, nil
	default:
		return Logical, fmt.Errorf("unknown disk usage mode: %q", s)
	}
}

func (m Mode) String() string {
	if m == Physical {
		return "physical"
	}

	return "logical"
}

// PrefixKind selects the unit system used when formatting sizes.
type PrefixKind int

const (
	// Binary reports sizes in powers of 1024 (KiB, MiB, ...).
	Binary PrefixKind = iota

	// SI reports sizes in powers of 1000 (KB, MB, ...).
	SI
)

// ParsePrefixKind parses a unit system name.
func ParsePrefixKind(s string) (PrefixKind, error) {
	switch s {
	case "bin":
		return Binary, nil
	case "si":
		return SI, nil
	default:
		return Binary, fmt.Errorf("unknown unit system: %q", s)
	}
}

func (p PrefixKind) String() string {
	if p == SI {
		return "si"
	}

	return "bin"
}

var (
	binaryUnits = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB"}
	siUnits     = []string{"B", "KB", "MB", "GB", "TB", "PB"}
)

// FileSize is the resolved size of one entry plus its display parameters.
type FileSize struct {
	Bytes  uint64
	Prefix PrefixKind
	Scale  int
}

// NewFileSize wraps a raw byte count with display parameters.
func NewFileSize(bytes uint64, prefix PrefixKind, scale int) FileSize {
	return FileSize{Bytes: bytes, Prefix: prefix, Scale: scale}
}

// LogicalSize computes the logical size of a regular file from its metadata.
func LogicalSize(meta os.FileInfo, prefix PrefixKind, scale int) FileSize {
	return NewFileSize(uint64(meta.Size()), prefix, scale)
}

// PhysicalSize computes the on-disk allocation of a regular file. Returns
// nil when block allocation is not available on this platform.
func PhysicalSize(meta os.FileInfo, prefix PrefixKind, scale int) *FileSize {
	bytes, ok := allocatedSize(meta)
	if !ok {
		return nil
	}

	fs := NewFileSize(bytes, prefix, scale)

	return &fs
}

// Format renders the size in the largest unit with a value of at least one,
// with Scale digits after the decimal point. Bytes are printed plain.
func (f FileSize) Format() string {
	units := binaryUnits
	base := float64(1024)
	if f.Prefix == SI {
		units = siUnits
		base = float64(1000)
	}

	value := float64(f.Bytes)
	idx := 0
	for value >= base && idx < len(units)-1 {
		value /= base
		idx++
	}

	if idx == 0 {
		return fmt.Sprintf("%d %s", f.Bytes, units[0])
	}

	return fmt.Sprintf("%.*f %s", f.Scale, value, units[idx])
}

// NumIntegral returns the number of decimal digits in n. Used to size the
// disk usage and link count display columns.
func NumIntegral(n uint64) int {
	if n == 0 {
		return 1
	}

	digits := 0
	for n > 0 {
		n /= 10
		digits++
	}

	return digits
}
