//go:build unix

package inode

import (
	"os"
	"syscall"
)

func platformResolver(meta os.FileInfo) (Inode, error) {
	st, ok := meta.Sys().(*syscall.Stat_t)
	if !ok {
		return Inode{}, ErrUnavailable
	}

	return Inode{
		Dev:   uint64(st.Dev),
		Ino:   uint64(st.Ino),
		Nlink: uint64(st.Nlink),
	}, nil
}
