// Package routes holds the static route table mapping exact request
// paths to canned responses. The table is built once at startup and is
// never mutated, so it is safe for unsynchronized concurrent reads.
package routes

import "github.com/narvanalabs/greetd/internal/wire"

// Rule pairs an exact path with the producer of its response. The
// request method is deliberately not part of the rule: routing looks
// at the path alone.
type Rule struct {
	Path    string
	Produce func() wire.Response
}

// Table is an ordered collection of rules. Lookup is exact-match,
// first match wins.
type Table struct {
	rules []Rule
}

func New(rules ...Rule) *Table {
	return &Table{rules: rules}
}

// Default returns the canonical table: a greeting at the root and a
// health probe.
func Default() *Table {
	return New(
		Rule{
			Path: "/",
			Produce: func() wire.Response {
				return wire.NewJSON(wire.StatusOK, []byte(`{"message": "Hello from Dockerfile!"}`))
			},
		},
		Rule{
			Path: "/health",
			Produce: func() wire.Response {
				return wire.NewJSON(wire.StatusOK, []byte(`{"status": "healthy"}`))
			},
		},
	)
}

func (t *Table) Lookup(path string) (Rule, bool) {
	for _, rule := range t.rules {
		if rule.Path == path {
			return rule, true
		}
	}
	return Rule{}, false
}

// Dispatch returns the response for path, or a bodiless 404 when no
// rule matches.
func (t *Table) Dispatch(path string) wire.Response {
	if rule, ok := t.Lookup(path); ok {
		return rule.Produce()
	}
	return wire.NewStatus(wire.StatusNotFound)
}

// Paths returns the rule paths in table order.
func (t *Table) Paths() []string {
	paths := make([]string, len(t.rules))
	for i, rule := range t.rules {
		paths[i] = rule.Path
	}
	return paths
}
