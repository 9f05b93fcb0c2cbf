// Package ordering resolves user-supplied sort tokens into column sort
// directives using a per-endpoint alias table.
package ordering

import "strings"

// Direction of a sort directive.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// AliasTable maps a public sort key to one or more physical column
// references. A value may be a comma-separated list, each entry optionally
// prefixed with "-". Lookup is by key only; insertion order is irrelevant.
type AliasTable map[string]string

// Directive is a single column sort instruction.
type Directive struct {
	Column    string
	Direction Direction
	NullsLast bool
}

// Filter drops tokens whose trimmed name is not in the allowed set.
// Unknown tokens are silently discarded, never an error.
func Filter(tokens, allowed []string) []string {
	permitted := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		permitted[a] = struct{}{}
	}
	var kept []string
	for _, tok := range tokens {
		if _, ok := permitted[strings.TrimPrefix(tok, "-")]; ok {
			kept = append(kept, tok)
		}
	}
	return kept
}

// Resolve expands ordering tokens into directives. Each token is looked up
// in the alias table after stripping its descending marker; a missing key
// passes through as a literal column name. Alias values expand left to
// right, so one token may yield several directives. All directives sort
// nulls last regardless of direction.
func Resolve(tokens []string, aliases AliasTable) []Directive {
	var directives []Directive
	for _, tok := range tokens {
		for _, name := range fieldNames(tok, aliases) {
			directives = append(directives, parse(tok, name))
		}
	}
	return directives
}

// fieldNames returns the physical column entries for one token.
func fieldNames(token string, aliases AliasTable) []string {
	trimmed := strings.TrimPrefix(token, "-")
	value, ok := aliases[trimmed]
	if !ok {
		value = trimmed
	}
	return strings.Split(value, ",")
}

// parse builds a directive from the original token and one aliased entry.
// The token's descending marker propagates only to entries without their
// own marker; an entry's own marker blocks propagation and the entry is
// emitted ascending after trimming.
func parse(token, name string) Directive {
	trimmed := strings.TrimPrefix(name, "-")
	d := Directive{Column: trimmed, Direction: Asc, NullsLast: true}
	if strings.HasPrefix(token, "-") && !strings.HasPrefix(name, "-") {
		d.Direction = Desc
	}
	return d
}

// References reports whether any directive's column mentions the given
// field name.
func References(directives []Directive, field string) bool {
	for _, d := range directives {
		if strings.Contains(d.Column, field) {
			return true
		}
	}
	return false
}
