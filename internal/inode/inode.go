// Package inode resolves the identity of a filesystem entry: device id,
// inode number, and hard-link count. Resolution goes through a per-platform
// capability hook so callers stay platform-agnostic and tests can substitute
// arbitrary identities.
package inode

import (
	"errors"
	"os"
)

// Inode is the identity of one filesystem entry.
type Inode struct {
	Dev   uint64
	Ino   uint64
	Nlink uint64
}

var (
	// ErrUnsupported means this platform has no inode identity to expose.
	ErrUnsupported = errors.New("inode identity unsupported on this platform")

	// ErrUnavailable means the platform supports inode identity but the
	// metadata for this entry did not carry it.
	ErrUnavailable = errors.New("inode identity unavailable for entry")
)

// Resolver extracts an Inode from entry metadata.
type Resolver func(os.FileInfo) (Inode, error)

var resolver Resolver = platformResolver

// FromFileInfo resolves the inode identity of an entry from its metadata.
func FromFileInfo(meta os.FileInfo) (Inode, error) {
	return resolver(meta)
}

// SetResolver replaces the active resolver and returns the previous one.
// Intended for tests.
func SetResolver(r Resolver) Resolver {
	prev := resolver
	resolver = r

	return prev
}
