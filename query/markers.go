package query

import (
	"reflect"

	"pkg.world.dev/tecs/filter"
	"pkg.world.dev/tecs/storage"
	"pkg.world.dev/tecs/types"
)

// with narrows the table set to tables holding a component, producing no
// data.
type with struct{ component reflect.Type }

// With matches tables that store component type T.
func With[T any]() Term {
	return &with{component: types.TypeOf[T]()}
}

func (w *with) Matches(tab *storage.Table) bool { return tab.HasColumn(w.component) }
func (w *with) Gather([]*storage.Table)         {}
func (w *with) Close()                          {}

type without struct{ component reflect.Type }

// Without matches tables that do not store component type T.
func Without[T any]() Term {
	return &without{component: types.TypeOf[T]()}
}

func (w *without) Matches(tab *storage.Table) bool { return !tab.HasColumn(w.component) }
func (w *without) Gather([]*storage.Table)         {}
func (w *without) Close()                          {}

type is struct{ id types.ArchetypeID }

// Is matches only the table backing archetype T.
func Is[T any]() Term {
	return &is{id: types.ArchetypeIDOf(types.TypeOf[T]())}
}

func (f *is) Matches(tab *storage.Table) bool { return tab.ID() == f.id }
func (f *is) Gather([]*storage.Table)         {}
func (f *is) Close()                          {}

type filtered struct{ filter filter.ComponentFilter }

// Filtered adapts an arbitrary ComponentFilter into a query term. This is
// how textual (CQL) filters plug into the algebra.
func Filtered(f filter.ComponentFilter) Term {
	return &filtered{filter: f}
}

func (f *filtered) Matches(tab *storage.Table) bool {
	return f.filter.MatchesComponents(tab.Schema().Columns())
}
func (f *filtered) Gather([]*storage.Table) {}
func (f *filtered) Close()                  {}
