package grammar

import "strconv"

// Matches is the result of parsing one token sequence: the raw values of
// every explicitly supplied identifier, tagged with their source, plus the
// raw positional target if one appeared. Raw values keep their original
// byte representation.
type Matches struct {
	grammar *Grammar
	values  map[string][]string
	sources map[string]Source
	order   []string
	target  *string
}

// Present reports whether an identifier was explicitly supplied.
func (m *Matches) Present(id string) bool {
	_, ok := m.values[Canonical(id)]

	return ok
}

// Values returns the raw value tokens for an identifier, or nil.
func (m *Matches) Values(id string) []string {
	return m.values[Canonical(id)]
}

// ValueSource returns where an identifier's value came from.
func (m *Matches) ValueSource(id string) Source {
	if src, ok := m.sources[Canonical(id)]; ok {
		return src
	}

	return SourceDefault
}

// Identifiers returns the explicitly supplied identifiers in first-seen
// token order.
func (m *Matches) Identifiers() []string {
	return m.order
}

// Target returns the raw positional target, byte-for-byte as supplied.
func (m *Matches) Target() (string, bool) {
	if m.target == nil {
		return "", false
	}

	return *m.target, true
}

// Empty reports whether the sequence supplied nothing at all: no flags and
// no positional target.
func (m *Matches) Empty() bool {
	return len(m.order) == 0 && m.target == nil
}

// Bool resolves a boolean identifier, falling back to the declared default.
func (m *Matches) Bool(id string) bool {
	if vals := m.Values(id); len(vals) > 0 {
		return vals[len(vals)-1] == "true"
	}

	p, _ := m.grammar.Lookup(id)

	return p.Default == "true"
}

// Int resolves an integer identifier, falling back to the declared default.
func (m *Matches) Int(id string) int {
	if vals := m.Values(id); len(vals) > 0 {
		n, _ := strconv.Atoi(vals[len(vals)-1])
		return n
	}

	p, _ := m.grammar.Lookup(id)
	n, _ := strconv.Atoi(p.Default)

	return n
}

// String resolves a string identifier, falling back to the declared default.
func (m *Matches) String(id string) string {
	if vals := m.Values(id); len(vals) > 0 {
		return vals[len(vals)-1]
	}

	p, _ := m.grammar.Lookup(id)

	return p.Default
}
