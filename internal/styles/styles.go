// Package styles resolves display styles for filesystem entries from a
// color-scheme table keyed by file type and extension.
package styles

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Style describes how an entry name is painted. The zero value is a plain,
// unstyled style.
type Style struct {
	color *color.Color
}

// Paint renders text with the style applied. Plain styles pass text through
// untouched.
func (s Style) Paint(text string) string {
	if s.color == nil {
		return text
	}

	return s.color.Sprint(text)
}

// IsPlain reports whether the style carries no color attributes.
func (s Style) IsPlain() bool {
	return s.color == nil
}

var (
	dirStyle     = Style{color.New(color.FgBlue, color.Bold)}
	symlinkStyle = Style{color.New(color.FgCyan)}
	specialStyle = Style{color.New(color.FgYellow)}
	execStyle    = Style{color.New(color.FgGreen, color.Bold)}

	treeStyle = Style{color.New(color.FgHiBlack)}
	sizeStyle = Style{color.New(color.FgGreen)}
	linkStyle = Style{color.New(color.FgRed)}

	// Scheme table by lowercase extension, without the leading dot.
	extStyles = map[string]Style{
		"go":   {color.New(color.FgCyan)},
		"rs":   {color.New(color.FgRed)},
		"py":   {color.New(color.FgYellow)},
		"rb":   {color.New(color.FgRed)},
		"js":   {color.New(color.FgYellow)},
		"ts":   {color.New(color.FgBlue)},
		"c":    {color.New(color.FgBlue)},
		"h":    {color.New(color.FgMagenta)},
		"cpp":  {color.New(color.FgBlue)},
		"sh":   {color.New(color.FgGreen)},
		"md":   {color.New(color.FgWhite, color.Bold)},
		"toml": {color.New(color.FgHiBlack)},
		"yml":  {color.New(color.FgHiBlack)},
		"yaml": {color.New(color.FgHiBlack)},
		"json": {color.New(color.FgHiBlack)},
		"lock": {color.New(color.FgHiBlack)},
		"zip":  {color.New(color.FgRed, color.Bold)},
		"tar":  {color.New(color.FgRed, color.Bold)},
		"gz":   {color.New(color.FgRed, color.Bold)},
		"png":  {color.New(color.FgMagenta)},
		"jpg":  {color.New(color.FgMagenta)},
		"gif":  {color.New(color.FgMagenta)},
		"svg":  {color.New(color.FgMagenta)},
		"pdf":  {color.New(color.FgRed)},
	}
)

// For resolves the display style for an entry from its path and metadata.
// Entries with no scheme match get the plain style, never "no style".
func For(path string, meta os.FileInfo) Style {
	mode := meta.Mode()

	switch {
	case mode.IsDir():
		return dirStyle
	case mode&os.ModeSymlink != 0:
		return symlinkStyle
	case mode&(os.ModeNamedPipe|os.ModeSocket|os.ModeDevice|os.ModeCharDevice) != 0:
		return specialStyle
	}

	if st, ok := extStyles[normalizedExt(path)]; ok {
		return st
	}

	if mode.Perm()&0111 != 0 {
		return execStyle
	}

	return Style{}
}

// Tree returns the style for tree branch characters.
func Tree() Style { return treeStyle }

// Size returns the style for the disk usage column.
func Size() Style { return sizeStyle }

// Link returns the style for symlink target arrows.
func Link() Style { return linkStyle }

func normalizedExt(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
