package tecs

import (
	"pkg.world.dev/tecs/storage"
	"pkg.world.dev/tecs/types"
)

// Ref is a scoped shared borrow of a single component value. It must be
// closed to release the borrow on the owning column.
type Ref[T any] struct {
	v      *T
	col    *storage.Column
	closed bool
}

// Get returns a copy of the borrowed value.
func (r *Ref[T]) Get() T { return *r.v }

// Close releases the borrow. Safe to call more than once.
func (r *Ref[T]) Close() {
	if !r.closed {
		r.col.ReleaseShared()
		r.closed = true
	}
}

// RefMut is a scoped exclusive borrow of a single component value.
type RefMut[T any] struct {
	v      *T
	col    *storage.Column
	closed bool
}

// Get returns a copy of the borrowed value.
func (r *RefMut[T]) Get() T { return *r.v }

// Set overwrites the borrowed value in place.
func (r *RefMut[T]) Set(v T) { *r.v = v }

// Ptr returns the live pointer into the column. It is only valid until
// Close.
func (r *RefMut[T]) Ptr() *T { return r.v }

// Close releases the borrow. Safe to call more than once.
func (r *RefMut[T]) Close() {
	if !r.closed {
		r.col.ReleaseExclusive()
		r.closed = true
	}
}

// GetComponent returns a shared borrow of the entity's component of type T.
// Absent entities and absent components report ok=false rather than failing.
func GetComponent[T any, E any](w *World[E], id types.EntityID) (*Ref[T], bool) {
	v, col, ok := componentSlot[T](w, id)
	if !ok {
		return nil, false
	}
	col.AcquireShared()
	return &Ref[T]{v: v, col: col}, true
}

// GetComponentMut returns an exclusive borrow of the entity's component of
// type T.
func GetComponentMut[T any, E any](w *World[E], id types.EntityID) (*RefMut[T], bool) {
	v, col, ok := componentSlot[T](w, id)
	if !ok {
		return nil, false
	}
	col.AcquireExclusive()
	return &RefMut[T]{v: v, col: col}, true
}

func componentSlot[T any, E any](w *World[E], id types.EntityID) (*T, *storage.Column, bool) {
	loc, ok := w.entities[id]
	if !ok {
		return nil, nil, false
	}
	tab, ok := w.tableByID(loc.Archetype)
	if !ok {
		return nil, nil, false
	}
	col, ok := tab.ColumnOf(types.TypeOf[T]())
	if !ok {
		return nil, nil, false
	}
	ptr, ok := col.Addr(int(loc.Row)).(*T)
	if !ok {
		return nil, nil, false
	}
	return ptr, col, true
}

// GetEntity reconstructs the entity's full archetype value as a copy. This
// is an introspection helper; T must be the entity's own archetype.
func GetEntity[T any, E any](w *World[E], id types.EntityID) (T, bool) {
	var zero T
	loc, ok := w.entities[id]
	if !ok {
		return zero, false
	}
	tab, ok := w.tableByID(loc.Archetype)
	if !ok || tab.ID() != types.ArchetypeIDOf(types.TypeOf[T]()) {
		return zero, false
	}
	v, err := tab.Row(loc.Row)
	if err != nil {
		return zero, false
	}
	return v.Interface().(T), true
}
