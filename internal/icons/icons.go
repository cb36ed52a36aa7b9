// Package icons maps filesystem entries to nerd-font glyphs.
package icons

import (
	"path/filepath"
	"strings"
)

const (
	dirIcon     = ""
	symlinkIcon = ""
	defaultIcon = ""
)

var extIcons = map[string]string{
	"go":   "",
	"rs":   "",
	"py":   "",
	"rb":   "",
	"js":   "",
	"ts":   "",
	"c":    "",
	"h":    "",
	"cpp":  "",
	"sh":   "",
	"md":   "",
	"toml": "",
	"yml":  "",
	"yaml": "",
	"json": "",
	"lock": "",
	"zip":  "",
	"tar":  "",
	"gz":   "",
	"png":  "",
	"jpg":  "",
	"gif":  "",
	"svg":  "",
	"pdf":  "",
	"git":  "",
}

// Compute selects an icon for an entry. Symlink targets take their icon
// from the target name so the link points at something recognizable.
func Compute(path string, symlinkTarget string, isDir bool) string {
	if symlinkTarget != "" {
		return symlinkIcon
	}

	if isDir {
		return dirIcon
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if icon, ok := extIcons[ext]; ok {
		return icon
	}

	return defaultIcon
}
