//go:build !unix

package inode

import "os"

func platformResolver(meta os.FileInfo) (Inode, error) {
	return Inode{}, ErrUnsupported
}
