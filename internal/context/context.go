/*
Package context resolves a user's invocation into the single authoritative
parameter set for one erdtree run.

Resolution merges two token sources, command-line arguments and the
optional configuration file, per parameter: an identifier explicitly set on
the command line always beats the config value, anything else falls back to
config, and whatever remains takes the grammar default. The winning tokens
are re-assembled into one canonical sequence and pushed back through the
grammar for a second, full parse. That second pass is what enforces
inter-parameter dependencies, because the two sources may jointly satisfy a
dependency that neither satisfies alone.
*/
package context

import (
	"fmt"
	"math"
	"regexp"

	"github.com/Knodis-c/erdtree-3-1/internal/config"
	"github.com/Knodis-c/erdtree-3-1/internal/du"
	"github.com/Knodis-c/erdtree-3-1/internal/grammar"
	"github.com/Knodis-c/erdtree-3-1/internal/ignore"
	"github.com/Knodis-c/erdtree-3-1/pkg/logger"
)

// Capabilities describes the terminal environment probed once at process
// start and threaded through resolution, so tests can substitute arbitrary
// terminal conditions.
type Capabilities struct {
	StdinIsTTY  bool
	StdoutIsTTY bool
}

// Context is the resolved, validated parameter set for one run. It is
// constructed exactly once at startup; the two display-width fields are the
// only fields mutated afterwards, set once after traversal completes.
type Context struct {
	dir string // raw bytes, verbatim from the command line

	DiskUsage    du.Mode
	Hidden       bool
	NoGit        bool
	NoIgnore     bool
	Follow       bool
	Icons        bool
	Long         bool
	Pattern      string
	Glob         bool
	IGlob        bool
	Prune        bool
	Scale        int
	Report       bool
	Human        bool
	FileName     bool
	Sort         SortType
	DirsFirst    bool
	Threads      int
	Unit         du.PrefixKind
	DirsOnly     bool
	NoColor      bool
	NoConfig     bool
	SuppressSize bool
	Verbosity    int

	StdinIsTTY  bool
	StdoutIsTTY bool

	level int // negative means unbounded

	maxDuWidth    int
	maxNlinkWidth int
}

// Resolve produces the final parameter set from the live token sequence,
// consulting the configuration reader unless --no-config short-circuits it.
func Resolve(args []string, caps Capabilities, reader config.Reader, log logger.Logger) (*Context, error) {
	g := Grammar()

	user, err := g.Parse(args, grammar.SourceCommandLine)
	if err != nil {
		return nil, &ArgParseError{Err: err}
	}

	if user.Present(idNoConfig) && user.Bool(idNoConfig) {
		log.Debug("Skipping configuration file")
		if err := g.Check(user); err != nil {
			return nil, &ArgParseError{Err: err}
		}
		return fromMatches(g, user, caps), nil
	}

	cfgTokens, err := reader.Read()
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	if cfgTokens == nil {
		if err := g.Check(user); err != nil {
			return nil, &ArgParseError{Err: err}
		}
		return fromMatches(g, user, caps), nil
	}

	cfg, err := g.Parse(cfgTokens, grammar.SourceConfigFile)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	// Bare invocation: config is the sole source.
	if user.Empty() {
		log.Debug("No user arguments, using configuration file alone")
		if err := g.Check(cfg); err != nil {
			return nil, &ConfigError{Err: err}
		}
		return fromMatches(g, cfg, caps), nil
	}

	merged := mergeTokens(g, user, cfg)

	log.WithFields(logger.Fields{
		"tokens": merged,
	}).Debug("Re-parsing merged token sequence")

	final, err := g.Parse(merged, grammar.SourceCommandLine)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	if err := g.Check(final); err != nil {
		return nil, &ConfigError{Err: err}
	}

	return fromMatches(g, final, caps), nil
}

// mergeTokens reconciles the two sources per identifier and re-synthesizes
// one canonical token sequence. Identifiers are visited in first-seen order
// across the union of both sources.
func mergeTokens(g *grammar.Grammar, user, cfg *grammar.Matches) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, id := range append(append([]string{}, user.Identifiers()...), cfg.Identifiers()...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	var out []string
	for _, id := range ids {
		switch {
		case user.Present(id) && user.ValueSource(id) == grammar.SourceCommandLine:
			out = append(out, emitTokens(g, id, user)...)
		case cfg.Present(id):
			out = append(out, emitTokens(g, id, cfg)...)
		}
	}

	// The positional target always comes from the user and its raw bytes
	// are carried verbatim, behind the terminator so leading dashes and
	// non-text byte sequences survive the re-parse.
	if target, ok := user.Target(); ok {
		out = append(out, "--", target)
	}

	return out
}

// emitTokens renders one identifier's winning raw tokens in canonical flag
// spelling. Boolean identifiers are presence switches: a literal "false"
// drops the flag entirely, a literal "true" keeps the flag and drops the
// value.
func emitTokens(g *grammar.Grammar, id string, m *grammar.Matches) []string {
	p, ok := g.Lookup(id)
	if !ok {
		return nil
	}

	kebab := grammar.Canonical(id)

	var out []string
	for _, raw := range m.Values(id) {
		switch p.Kind {
		case grammar.Bool:
			if raw == "false" {
				continue
			}
			out = append(out, "--"+kebab)
		case grammar.Count:
			out = append(out, fmt.Sprintf("--%s=%s", kebab, raw))
		default:
			out = append(out, "--"+kebab, raw)
		}
	}

	return out
}

func fromMatches(g *grammar.Grammar, m *grammar.Matches, caps Capabilities) *Context {
	// Enumerated values were validated against their choice lists during
	// parsing, so the parse helpers cannot fail here.
	diskUsage, _ := du.ParseMode(m.String(idDiskUsage))
	unit, _ := du.ParsePrefixKind(m.String(idUnit))
	sortType, _ := ParseSortType(m.String(idSort))

	ctx := &Context{
		DiskUsage:    diskUsage,
		Hidden:       m.Bool(idHidden),
		NoGit:        m.Bool(idNoGit),
		NoIgnore:     m.Bool(idNoIgnore),
		Follow:       m.Bool(idFollow),
		Icons:        m.Bool(idIcons),
		Long:         m.Bool(idLong),
		Pattern:      m.String(idPattern),
		Glob:         m.Bool(idGlob),
		IGlob:        m.Bool(idIGlob),
		Prune:        m.Bool(idPrune),
		Scale:        m.Int(idScale),
		Report:       m.Bool(idReport),
		Human:        m.Bool(idHuman),
		FileName:     m.Bool(idFileName),
		Sort:         sortType,
		DirsFirst:    m.Bool(idDirsFirst),
		Threads:      m.Int(idThreads),
		Unit:         unit,
		DirsOnly:     m.Bool(idDirsOnly),
		NoColor:      m.Bool(idNoColor),
		NoConfig:     m.Bool(idNoConfig),
		SuppressSize: m.Bool(idSuppressSize),
		Verbosity:    m.Int(idVerbose),
		StdinIsTTY:   caps.StdinIsTTY,
		StdoutIsTTY:  caps.StdoutIsTTY,
		level:        m.Int(idLevel),
	}

	if target, ok := m.Target(); ok {
		ctx.dir = target
	}

	return ctx
}

// Dir returns the root directory to traverse; defaults to the current
// working directory.
func (c *Context) Dir() string {
	if c.dir == "" {
		return "."
	}

	return c.dir
}

// Level is the max depth to print. All directories are fully traversed to
// compute sizes regardless; this only bounds display.
func (c *Context) Level() int {
	if c.level < 0 {
		return math.MaxInt
	}

	return c.level
}

// UseColor reports whether output should carry ANSI color: disabled by
// --no-color or when stdout is not an interactive terminal.
func (c *Context) UseColor() bool {
	return !c.NoColor && c.StdoutIsTTY
}

// Overrides builds the include/exclude matcher for the traversal, seeded
// from the target directory. --no-git contributes an exclusion of the .git
// directory; under glob or iglob the pattern itself contributes a glob rule.
func (c *Context) Overrides() (*ignore.Override, error) {
	b := ignore.NewBuilder(c.Dir())

	if c.NoGit {
		if err := b.Add("!.git"); err != nil {
			return nil, err
		}
	}

	if !c.Glob && !c.IGlob {
		return b.Build()
	}

	if c.IGlob {
		b.CaseInsensitive(true)
	}

	if c.Pattern != "" {
		if err := b.Add(c.Pattern); err != nil {
			return nil, err
		}
	}

	return b.Build()
}

// RegexPredicate compiles the pattern into a predicate over a traversal
// entry. Directories are unconditionally accepted so traversal can still
// descend into them; other entries are accepted only when their name
// matches.
func (c *Context) RegexPredicate() (func(name string, isDir bool) bool, error) {
	if c.Glob || c.IGlob {
		return nil, ErrRegexDisabled
	}

	if c.Pattern == "" {
		return nil, ErrPatternNotProvided
	}

	re, err := regexp.Compile(c.Pattern)
	if err != nil {
		return nil, &PatternError{Pattern: c.Pattern, Err: err}
	}

	return func(name string, isDir bool) bool {
		if isDir {
			return true
		}
		return re.MatchString(name)
	}, nil
}

// SetMaxDuWidth records the width of the widest disk usage value so
// formatters can align the size column. Written once, after traversal.
func (c *Context) SetMaxDuWidth(size uint64) {
	if size == 0 {
		return
	}
	c.maxDuWidth = du.NumIntegral(size)
}

// SetMaxNlinkWidth records the width of the widest hard-link count.
func (c *Context) SetMaxNlinkWidth(nlink uint64) {
	c.maxNlinkWidth = du.NumIntegral(nlink)
}

// MaxDuWidth returns the disk usage column width.
func (c *Context) MaxDuWidth() int { return c.maxDuWidth }

// MaxNlinkWidth returns the hard-link count column width.
func (c *Context) MaxNlinkWidth() int { return c.maxNlinkWidth }
