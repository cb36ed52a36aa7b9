package output

import (
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rctx "github.com/Knodis-c/erdtree-3-1/internal/context"
	"github.com/Knodis-c/erdtree-3-1/internal/du"
	"github.com/Knodis-c/erdtree-3-1/internal/node"
	"github.com/Knodis-c/erdtree-3-1/pkg/logger"
)

type nopConfig struct{}

func (nopConfig) Read() ([]string, error) { return nil, nil }

func testCtx(t *testing.T, args ...string) *rctx.Context {
	t.Helper()

	rc, err := rctx.Resolve(args, rctx.Capabilities{}, nopConfig{}, logger.NewNop())
	require.NoError(t, err)

	return rc
}

// fixture assembles a small tree by hand:
//
//	repo (500 B)
//	├── src (400 B)
//	│   └── main.go (400 B)
//	└── readme.md (100 B)
func fixture(t *testing.T, rc *rctx.Context) *node.Node {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/repo/src", 0755))
	require.NoError(t, afero.WriteFile(fs, "/repo/src/main.go", []byte(strings.Repeat("x", 400)), 0644))
	require.NoError(t, afero.WriteFile(fs, "/repo/readme.md", []byte(strings.Repeat("x", 100)), 0644))

	mk := func(path string, depth int, mode os.FileMode) *node.Node {
		n, err := node.New(node.Entry{Path: path, Depth: depth, Mode: mode}, rc, fs)
		require.NoError(t, err)
		return n
	}

	root := mk("/repo", 0, os.ModeDir)
	src := mk("/repo/src", 1, os.ModeDir)
	mainGo := mk("/repo/src/main.go", 2, 0)
	readme := mk("/repo/readme.md", 1, 0)

	if !rc.SuppressSize {
		require.NoError(t, src.FinalizeSize(du.NewFileSize(400, rc.Unit, rc.Scale)))
		require.NoError(t, root.FinalizeSize(du.NewFileSize(500, rc.Unit, rc.Scale)))
	}

	src.Children = []*node.Node{mainGo}
	root.Children = []*node.Node{src, readme}

	return root
}

func render(t *testing.T, rc *rctx.Context) string {
	t.Helper()

	var buf strings.Builder
	require.NoError(t, NewTree(rc).Render(&buf, fixture(t, rc)))

	return buf.String()
}

func TestTreeRender(t *testing.T) {
	out := render(t, testCtx(t))

	expected := strings.Join([]string{
		"500 B repo",
		"400 B ├── src",
		"400 B │   └── main.go",
		"100 B └── readme.md",
		"",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestTreeRenderLevelBoundsDisplay(t *testing.T) {
	out := render(t, testCtx(t, "--level", "1"))

	assert.Contains(t, out, "src")
	assert.NotContains(t, out, "main.go")
}

func TestTreeRenderSuppressedSizes(t *testing.T) {
	out := render(t, testCtx(t, "--suppress-size"))

	expected := strings.Join([]string{
		"repo",
		"├── src",
		"│   └── main.go",
		"└── readme.md",
		"",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestTreeRenderSizeColumnAlignment(t *testing.T) {
	// 1.50 KiB is wider than 400 B, so the narrow value gets padding.
	rc := testCtx(t)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/big.bin", []byte(strings.Repeat("x", 1536)), 0644))
	require.NoError(t, afero.WriteFile(fs, "/repo/main.go", []byte(strings.Repeat("x", 400)), 0644))
	require.NoError(t, fs.MkdirAll("/repo", 0755))

	mk := func(path string, depth int, mode os.FileMode) *node.Node {
		n, err := node.New(node.Entry{Path: path, Depth: depth, Mode: mode}, rc, fs)
		require.NoError(t, err)
		return n
	}
	root := mk("/repo", 0, os.ModeDir)
	root.Children = []*node.Node{mk("/repo/main.go", 1, 0), mk("/repo/big.bin", 1, 0)}
	require.NoError(t, root.FinalizeSize(du.NewFileSize(1936, du.Binary, 2)))

	var buf strings.Builder
	require.NoError(t, NewTree(rc).Render(&buf, root))

	assert.Contains(t, buf.String(), "1.50 KiB └── big.bin")
	assert.Contains(t, buf.String(), "   400 B ├── main.go")
}

func TestTreeRenderLongFormat(t *testing.T) {
	out := render(t, testCtx(t, "--long"))

	assert.Contains(t, out, "drwxr-xr-x")
	assert.Contains(t, out, "-rw-r--r--")
}

func TestTreeRenderSymlinkArrow(t *testing.T) {
	rc := testCtx(t)
	root := fixture(t, rc)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/link", nil, 0644))
	link, err := node.New(node.Entry{Path: "/repo/link", Depth: 1, Mode: os.ModeSymlink}, rc, &linkFs{Fs: fs, target: "/etc/hosts"})
	require.NoError(t, err)
	root.Children = append(root.Children, link)

	var buf strings.Builder
	require.NoError(t, NewTree(rc).Render(&buf, root))

	assert.Contains(t, buf.String(), "link -> /etc/hosts")
}

type linkFs struct {
	afero.Fs
	target string
}

func (l *linkFs) ReadlinkIfPossible(string) (string, error) { return l.target, nil }

func TestReportRender(t *testing.T) {
	rc := testCtx(t, "--report")
	rc.SetMaxDuWidth(500)

	var buf strings.Builder
	require.NoError(t, NewReport(rc).Render(&buf, fixture(t, rc)))
	out := buf.String()

	expected := strings.Join([]string{
		"500 /repo",
		"400 /repo/src",
		"400 /repo/src/main.go",
		"100 /repo/readme.md",
		"",
		"2 directories, 2 files",
		"",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestReportRenderHuman(t *testing.T) {
	rc := testCtx(t, "--report", "--human")

	var buf strings.Builder
	require.NoError(t, NewReport(rc).Render(&buf, fixture(t, rc)))

	assert.Contains(t, buf.String(), "500 B")
	assert.Contains(t, buf.String(), "/repo/src/main.go")
}

func TestReportRenderFileNames(t *testing.T) {
	rc := testCtx(t, "--report", "--file-name")

	var buf strings.Builder
	require.NoError(t, NewReport(rc).Render(&buf, fixture(t, rc)))
	out := buf.String()

	assert.Contains(t, out, "main.go")
	assert.NotContains(t, out, "/repo/src/main.go")
}
