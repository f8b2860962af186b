// Package query implements the declarative query algebra over archetype
// tables. A query is a list of terms; each term contributes a table-level
// predicate and, independently, a data extraction over the tables that
// survive every predicate. Composition is by logical AND on the predicates
// and per-slot extraction on the data, so "all (Position, Velocity) pairs
// without Frozen" is written as three term values rather than a hand-rolled
// nested loop.
package query

import "pkg.world.dev/tecs/storage"

// Term is one slot of a query.
type Term interface {
	// Matches reports whether a table qualifies for this term.
	Matches(tab *storage.Table) bool
	// Gather binds the term's output to the qualifying tables, taking any
	// borrows it needs. Concatenation order is the given table order, which
	// the world keeps at registration order; order across tables is
	// otherwise unspecified and callers must not depend on it.
	Gather(tabs []*storage.Table)
	// Close releases every borrow the term holds.
	Close()
}

// Result owns the gathered terms of one executed query and releases all of
// their borrows on Close.
type Result struct {
	terms []Term
}

// NewResult wraps gathered terms.
func NewResult(terms []Term) *Result {
	return &Result{terms: terms}
}

// Close releases every term. Safe to call more than once.
func (r *Result) Close() {
	for _, t := range r.terms {
		t.Close()
	}
	r.terms = nil
}
