/*
Package ignore derives the active include/exclude matcher for a traversal
from resolved parameters. Rules use gitignore-style glob syntax: a plain
rule whitelists matching entries, a rule prefixed with '!' excludes them.
With no whitelist rules present every entry is included; directories are
always included so traversal can descend into them.
*/
package ignore

import (
	"fmt"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// RuleError reports a malformed override rule.
type RuleError struct {
	Rule   string
	Reason string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("invalid ignore rule %q: %s", e.Rule, e.Reason)
}

// Builder accumulates override rules seeded from a traversal root.
type Builder struct {
	base            string
	includes        []string
	excludes        []string
	caseInsensitive bool
}

// NewBuilder starts an override builder anchored at the traversal root.
func NewBuilder(base string) *Builder {
	return &Builder{base: base}
}

// CaseInsensitive toggles case-insensitive matching for all rules.
func (b *Builder) CaseInsensitive(v bool) *Builder {
	b.caseInsensitive = v

	return b
}

// Add appends one rule. A leading '!' marks an exclusion.
func (b *Builder) Add(rule string) error {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return &RuleError{Rule: rule, Reason: "empty pattern"}
	}

	if strings.HasPrefix(rule, "!") {
		pattern := rule[1:]
		if pattern == "" {
			return &RuleError{Rule: rule, Reason: "exclusion without pattern"}
		}
		b.excludes = append(b.excludes, pattern)
		return nil
	}

	b.includes = append(b.includes, rule)

	return nil
}

// Build compiles the accumulated rules into an Override matcher.
func (b *Builder) Build() (*Override, error) {
	o := &Override{
		base:            b.base,
		caseInsensitive: b.caseInsensitive,
		hasIncludes:     len(b.includes) > 0,
	}

	if b.caseInsensitive {
		o.base = strings.ToLower(o.base)
	}

	if len(b.includes) > 0 {
		o.include = b.compile(b.includes)
	}
	if len(b.excludes) > 0 {
		o.exclude = b.compile(b.excludes)
	}

	return o, nil
}

func (b *Builder) compile(patterns []string) gitignore.IgnoreMatcher {
	lines := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if b.caseInsensitive {
			p = strings.ToLower(p)
		}
		lines = append(lines, p)
	}

	base := b.base
	if b.caseInsensitive {
		base = strings.ToLower(base)
	}

	return gitignore.NewGitIgnoreFromReader(base, strings.NewReader(strings.Join(lines, "\n")))
}

// Override answers "include this path?" for the traversal engine.
type Override struct {
	base            string
	include         gitignore.IgnoreMatcher
	exclude         gitignore.IgnoreMatcher
	hasIncludes     bool
	caseInsensitive bool
}

// Empty reports whether the override carries no rules at all.
func (o *Override) Empty() bool {
	return !o.hasIncludes && o.exclude == nil
}

// IsIncluded reports whether an entry passes the override rules. Paths may
// be absolute or relative to the traversal root.
func (o *Override) IsIncluded(path string, isDir bool) bool {
	p := path
	if o.caseInsensitive {
		p = strings.ToLower(p)
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(o.base, p)
	}

	if o.exclude != nil && o.exclude.Match(p, isDir) {
		return false
	}

	if !o.hasIncludes {
		return true
	}

	// Directories always pass so traversal can reach matching descendants.
	if isDir {
		return true
	}

	return o.include.Match(p, isDir)
}
