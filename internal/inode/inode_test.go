package inode

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInfo struct{}

func (fakeInfo) Name() string       { return "fake" }
func (fakeInfo) Size() int64        { return 0 }
func (fakeInfo) Mode() os.FileMode  { return 0644 }
func (fakeInfo) ModTime() time.Time { return time.Time{} }
func (fakeInfo) IsDir() bool        { return false }
func (fakeInfo) Sys() interface{}   { return nil }

func TestFromFileInfoInjectedResolver(t *testing.T) {
	prev := SetResolver(func(meta os.FileInfo) (Inode, error) {
		return Inode{Dev: 1, Ino: 42, Nlink: 3}, nil
	})
	defer SetResolver(prev)

	ino, err := FromFileInfo(fakeInfo{})
	require.NoError(t, err)
	assert.Equal(t, Inode{Dev: 1, Ino: 42, Nlink: 3}, ino)
}

func TestFromFileInfoUnavailable(t *testing.T) {
	prev := SetResolver(func(meta os.FileInfo) (Inode, error) {
		return Inode{}, ErrUnavailable
	})
	defer SetResolver(prev)

	_, err := FromFileInfo(fakeInfo{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPlatformResolverWithBareMetadata(t *testing.T) {
	// A FileInfo with no platform payload must never be treated as a hard
	// failure taxonomy-wise: the builder maps any error to "no identity".
	_, err := FromFileInfo(fakeInfo{})
	assert.Error(t, err)
}
