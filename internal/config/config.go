/*
Package config locates and tokenizes the optional erdtree configuration
file. The file holds default command-line arguments; its contents are turned
into a flat token sequence using the same hyphenated flag spelling as the
live grammar, then fed to the resolution engine for merging.

Two formats are recognized: a plain rc file of raw argument tokens with
'#' comments, and a YAML mapping from flag names to values.

Lookup order:

	$ERDTREE_CONFIG_PATH
	$XDG_CONFIG_HOME/erdtree/.erdtreerc         (or .erdtree.yml)
	$HOME/.config/erdtree/.erdtreerc            (or .erdtree.yml)
	$HOME/.erdtreerc                            (or .erdtree.yml)

A missing file is not an error; a present but malformed file is.
*/
package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Knodis-c/erdtree-3-1/pkg/logger"
)

const (
	rcName   = ".erdtreerc"
	yamlName = ".erdtree.yml"
)

// Reader hands back the configuration file as a flat argument-token
// sequence. A nil token slice with a nil error means no file was found.
type Reader interface {
	Read() ([]string, error)
}

// FileReader reads the configuration file from a real or test filesystem.
type FileReader struct {
	fs   afero.Fs
	log  logger.Logger
	path string
}

// NewReader builds a FileReader. The configuration path may be pinned
// through the ERDTREE_CONFIG_PATH environment variable; otherwise the
// platform-conventional locations are probed.
func NewReader(fsys afero.Fs, log logger.Logger) *FileReader {
	v := viper.New()
	v.SetEnvPrefix("ERDTREE")
	v.AutomaticEnv()
	_ = v.BindEnv("config_path")

	return &FileReader{
		fs:   fsys,
		log:  log,
		path: v.GetString("config_path"),
	}
}

// NewReaderAt builds a FileReader pinned to an explicit path.
func NewReaderAt(fsys afero.Fs, log logger.Logger, path string) *FileReader {
	return &FileReader{fs: fsys, log: log, path: path}
}

// Read locates and tokenizes the configuration file. Absence and I/O
// failures both yield no tokens; malformed present content is an error.
func (r *FileReader) Read() ([]string, error) {
	path := r.locate()
	if path == "" {
		r.log.Debug("No configuration file found")
		return nil, nil
	}

	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		r.log.WithFields(logger.Fields{
			"path":  path,
			"error": err,
		}).Warn("Configuration file unreadable, ignoring")
		return nil, nil
	}

	r.log.WithFields(logger.Fields{
		"path": path,
	}).Debug("Read configuration file")

	if isYAML(path) {
		return TokenizeYAML(data)
	}

	return Tokenize(string(data)), nil
}

func (r *FileReader) locate() string {
	if r.path != "" {
		if exists, _ := afero.Exists(r.fs, r.path); exists {
			return r.path
		}
		return ""
	}

	var dirs []string
	if xdg := viperEnv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "erdtree"))
	}
	if home, err := homedir.Dir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "erdtree"), home)
	}

	for _, dir := range dirs {
		for _, name := range []string{rcName, yamlName} {
			candidate := filepath.Join(dir, name)
			if exists, _ := afero.Exists(r.fs, candidate); exists {
				return candidate
			}
		}
	}

	return ""
}

func viperEnv(key string) string {
	v := viper.New()
	_ = v.BindEnv(key)

	return v.GetString(key)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	return ext == ".yml" || ext == ".yaml"
}

// Tokenize splits rc-file content into argument tokens. '#' starts a
// comment running to end of line; blank lines are skipped.
func Tokenize(content string) []string {
	var tokens []string

	for _, line := range strings.Split(content, "\n") {
		if hash := strings.IndexByte(line, '#'); hash >= 0 {
			line = line[:hash]
		}
		tokens = append(tokens, strings.Fields(line)...)
	}

	return tokens
}

// TokenizeYAML converts a YAML mapping of flag names to values into a flat
// token sequence, ordered by flag name for determinism. Booleans become
// presence-style flag tokens.
func TokenizeYAML(data []byte) ([]string, error) {
	var mapping map[string]interface{}
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("malformed YAML configuration: %w", err)
	}

	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var tokens []string
	for _, key := range keys {
		flag := "--" + strings.TrimPrefix(key, "--")

		switch value := mapping[key].(type) {
		case bool:
			if value {
				tokens = append(tokens, flag)
			} else {
				tokens = append(tokens, flag+"=false")
			}
		case string:
			tokens = append(tokens, flag, value)
		case int, int64, uint64, float64:
			tokens = append(tokens, flag, fmt.Sprintf("%v", value))
		default:
			return nil, fmt.Errorf("unsupported value for %q in YAML configuration", key)
		}
	}

	return tokens, nil
}
