package filter

import "reflect"

// ComponentFilter is a table-level predicate over the component types an
// archetype declares.
type ComponentFilter interface {
	// MatchesComponents returns true if a table with the given component
	// types matches the filter.
	MatchesComponents(components []reflect.Type) bool
}
