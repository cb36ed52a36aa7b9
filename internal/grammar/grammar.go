/*
Package grammar declares named command-line parameters with type, default,
and inter-parameter dependency constraints, and parses token sequences
against that declaration.

A Grammar is built once from a parameter inventory and can parse any number
of token sequences; each parse yields a Matches carrying, per identifier,
the raw winning value and the source it came from. Dependency constraints
are deliberately not enforced during Parse: callers merging several token
sources run Check exactly once against the final, re-assembled sequence so
a dependency jointly satisfied across sources still validates.
*/
package grammar

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Kind is the value type of a parameter.
type Kind int

const (
	// Bool parameters are presence/absence switches carrying no value token.
	Bool Kind = iota

	// String parameters take one raw value token.
	String

	// Int parameters take one integer value token.
	Int

	// Count parameters accumulate by repetition (-v, -vv).
	Count
)

// Source tags where a parameter value came from.
type Source int

const (
	// SourceDefault means the value was never explicitly supplied.
	SourceDefault Source = iota

	// SourceCommandLine means the value came from the live invocation.
	SourceCommandLine

	// SourceConfigFile means the value came from a configuration file.
	SourceConfigFile
)

// Param declares a single named parameter.
type Param struct {
	// Name is the canonical hyphenated long-form identifier.
	Name string

	// Short is an optional one-character shorthand.
	Short string

	// Kind is the value type.
	Kind Kind

	// Default is the textual default value. Empty means the zero value.
	Default string

	// Choices restricts a String parameter to an enumerated set.
	Choices []string

	// Requires names a parameter that must also be present whenever this
	// one is.
	Requires string

	// Usage is the help text.
	Usage string
}

// Grammar is a validated parameter declaration set.
type Grammar struct {
	params []Param
	index  map[string]Param
	short  map[string]Param
}

// New builds a Grammar from a parameter inventory.
func New(params []Param) (*Grammar, error) {
	g := &Grammar{
		params: params,
		index:  make(map[string]Param, len(params)),
		short:  make(map[string]Param, len(params)),
	}

	for _, p := range params {
		name := Canonical(p.Name)
		if name == "" {
			return nil, fmt.Errorf("parameter with empty name")
		}
		if _, dup := g.index[name]; dup {
			return nil, fmt.Errorf("duplicate parameter: %q", name)
		}
		if len(p.Short) > 1 {
			return nil, fmt.Errorf("shorthand for %q is more than one character", name)
		}
		g.index[name] = p
		if p.Short != "" {
			if _, dup := g.short[p.Short]; dup {
				return nil, fmt.Errorf("duplicate shorthand: %q", p.Short)
			}
			g.short[p.Short] = p
		}
	}

	for _, p := range params {
		if p.Requires == "" {
			continue
		}
		if _, ok := g.index[Canonical(p.Requires)]; !ok {
			return nil, fmt.Errorf("parameter %q requires undeclared %q", p.Name, p.Requires)
		}
	}

	return g, nil
}

// Canonical re-derives the canonical hyphenated spelling of an identifier.
func Canonical(id string) string {
	return strings.ReplaceAll(id, "_", "-")
}

// Params returns the declared parameter inventory.
func (g *Grammar) Params() []Param {
	return g.params
}

// Lookup returns the declaration for an identifier.
func (g *Grammar) Lookup(id string) (Param, bool) {
	p, ok := g.index[Canonical(id)]

	return p, ok
}

// FlagSet materializes a fresh pflag set for the declared parameters.
// Underscored spellings normalize to the canonical hyphenated form.
func (g *Grammar) FlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(io.Discard)
	fs.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(Canonical(name))
	})

	for _, p := range g.params {
		name := Canonical(p.Name)
		switch p.Kind {
		case Bool:
			fs.BoolP(name, p.Short, p.Default == "true", p.Usage)
		case String:
			fs.StringP(name, p.Short, p.Default, p.Usage)
		case Int:
			def, _ := strconv.Atoi(p.Default)
			fs.IntP(name, p.Short, def, p.Usage)
		case Count:
			fs.CountP(name, p.Short, p.Usage)
		}
	}

	return fs
}

// Parse parses a token sequence against the grammar. Later repeated values
// override earlier ones for the same identifier. Unknown flags and
// malformed values fail here; dependency constraints do not — see Check.
func (g *Grammar) Parse(tokens []string, src Source) (*Matches, error) {
	fs := g.FlagSet("erdtree")
	if err := fs.Parse(tokens); err != nil {
		return nil, err
	}

	m := &Matches{
		grammar: g,
		values:  make(map[string][]string),
		sources: make(map[string]Source),
	}

	if positional := fs.Args(); len(positional) > 0 {
		if len(positional) > 1 {
			return nil, fmt.Errorf("unexpected argument: %q", positional[1])
		}
		raw := positional[0]
		m.target = &raw
	}

	for _, name := range g.explicitInOrder(fs, tokens) {
		p := g.index[name]
		value := fs.Lookup(name).Value.String()

		if p.Kind == String && len(p.Choices) > 0 && !contains(p.Choices, value) {
			return nil, fmt.Errorf(
				"invalid value %q for --%s: must be one of [%s]",
				value, name, strings.Join(p.Choices, " "),
			)
		}

		m.values[name] = []string{value}
		m.sources[name] = src
		m.order = append(m.order, name)
	}

	return m, nil
}

// Check enforces the declared inter-parameter dependency constraints
// against a parsed token set.
func (g *Grammar) Check(m *Matches) error {
	for _, id := range m.Identifiers() {
		p, ok := g.index[id]
		if !ok || p.Requires == "" {
			continue
		}
		if !m.Present(p.Requires) {
			return &DependencyError{Param: id, Requires: Canonical(p.Requires)}
		}
	}

	return nil
}

// explicitInOrder returns the canonical names of explicitly set flags,
// ordered by first appearance in the token sequence. pflag itself only
// exposes changed flags in lexical order.
func (g *Grammar) explicitInOrder(fs *pflag.FlagSet, tokens []string) []string {
	var order []string
	seen := make(map[string]bool)

	record := func(name string) {
		name = Canonical(name)
		if _, ok := g.index[name]; !ok || seen[name] || !fs.Changed(name) {
			return
		}
		seen[name] = true
		order = append(order, name)
	}

scan:
	for _, tok := range tokens {
		switch {
		case tok == "--":
			// everything after is positional
			break scan
		case strings.HasPrefix(tok, "--"):
			name := strings.TrimPrefix(tok, "--")
			if eq := strings.IndexByte(name, '='); eq >= 0 {
				name = name[:eq]
			}
			record(name)
		case strings.HasPrefix(tok, "-") && len(tok) > 1:
			for _, c := range tok[1:] {
				p, ok := g.short[string(c)]
				if !ok {
					break
				}
				record(p.Name)
				if p.Kind == String || p.Kind == Int {
					// rest of the token is the value
					break
				}
			}
		}
	}

	// Anything pflag saw that the scan missed still gets appended.
	fs.Visit(func(f *pflag.Flag) {
		record(f.Name)
	})

	return order
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}

	return false
}

// DependencyError reports a violated inter-parameter dependency.
type DependencyError struct {
	Param    string
	Requires string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("the argument --%s requires --%s", e.Param, e.Requires)
}
