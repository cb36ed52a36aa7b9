package du

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInfo struct {
	size int64
}

func (f fakeInfo) Name() string       { return "fake" }
func (f fakeInfo) Size() int64        { return f.size }
func (f fakeInfo) Mode() os.FileMode  { return 0644 }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return false }
func (f fakeInfo) Sys() interface{}   { return nil }

func TestParseMode(t *testing.T) {
	m, err := ParseMode("logical")
	require.NoError(t, err)
	assert.Equal(t, Logical, m)

	m, err = ParseMode("physical")
	require.NoError(t, err)
	assert.Equal(t, Physical, m)

	_, err = ParseMode("bogus")
	assert.Error(t, err)
}

func TestParsePrefixKind(t *testing.T) {
	p, err := ParsePrefixKind("bin")
	require.NoError(t, err)
	assert.Equal(t, Binary, p)

	p, err = ParsePrefixKind("si")
	require.NoError(t, err)
	assert.Equal(t, SI, p)

	_, err = ParsePrefixKind("metric")
	assert.Error(t, err)
}

func TestFileSizeFormat(t *testing.T) {
	tests := []struct {
		name   string
		bytes  uint64
		prefix PrefixKind
		scale  int
		want   string
	}{
		{"plain bytes", 42, Binary, 2, "42 B"},
		{"zero bytes", 0, Binary, 2, "0 B"},
		{"one kibibyte", 1024, Binary, 2, "1.00 KiB"},
		{"fractional kibibytes", 1536, Binary, 2, "1.50 KiB"},
		{"mebibytes scale 1", 5 * 1024 * 1024, Binary, 1, "5.0 MiB"},
		{"si kilobytes", 1500, SI, 2, "1.50 KB"},
		{"si megabytes scale 0", 2_000_000, SI, 0, "2 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFileSize(tt.bytes, tt.prefix, tt.scale)
			assert.Equal(t, tt.want, fs.Format())
		})
	}
}

func TestLogicalSize(t *testing.T) {
	fs := LogicalSize(fakeInfo{size: 2048}, Binary, 2)
	assert.Equal(t, uint64(2048), fs.Bytes)
	assert.Equal(t, "2.00 KiB", fs.Format())
}

func TestPhysicalSizeUnavailable(t *testing.T) {
	orig := allocatedSize
	defer func() { allocatedSize = orig }()

	allocatedSize = func(meta os.FileInfo) (uint64, bool) { return 0, false }
	assert.Nil(t, PhysicalSize(fakeInfo{size: 10}, Binary, 2))
}

func TestPhysicalSizeFromBlocks(t *testing.T) {
	orig := allocatedSize
	defer func() { allocatedSize = orig }()

	allocatedSize = func(meta os.FileInfo) (uint64, bool) { return 4096, true }

	fs := PhysicalSize(fakeInfo{size: 10}, Binary, 2)
	require.NotNil(t, fs)
	assert.Equal(t, uint64(4096), fs.Bytes)
}

func TestNumIntegral(t *testing.T) {
	assert.Equal(t, 1, NumIntegral(0))
	assert.Equal(t, 1, NumIntegral(9))
	assert.Equal(t, 2, NumIntegral(10))
	assert.Equal(t, 4, NumIntegral(4096))
	assert.Equal(t, 7, NumIntegral(1_234_567))
}
