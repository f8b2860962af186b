package tecs

import (
	"pkg.world.dev/tecs/storage"
	"pkg.world.dev/tecs/types"
)

// resourceEntry is one singleton slot in the world's resource registry. The
// value is heap-allocated so borrows hand out stable pointers, and the
// borrow state guards shared-vs-exclusive access at the slot granularity.
type resourceEntry struct {
	ptr    any // *T
	borrow *storage.Borrow
}

// WithResource inserts value as the singleton resource for its concrete
// type, overwriting any prior value of the same type.
func WithResource[T any, E any](w *World[E], value T) *World[E] {
	t := types.TypeOf[T]()
	p := new(T)
	*p = value
	w.resources[t] = &resourceEntry{
		ptr:    p,
		borrow: storage.NewBorrow("resource " + t.String()),
	}
	w.log.Debug().Str("resource", t.String()).Msg("registered resource")
	return w
}

// Res is a scoped shared borrow of a resource.
type Res[T any] struct {
	v      *T
	borrow *storage.Borrow
	closed bool
}

// Get returns a copy of the resource value.
func (r *Res[T]) Get() T { return *r.v }

// Close releases the borrow. Safe to call more than once.
func (r *Res[T]) Close() {
	if !r.closed {
		r.borrow.ReleaseShared()
		r.closed = true
	}
}

// ResMut is a scoped exclusive borrow of a resource.
type ResMut[T any] struct {
	v      *T
	borrow *storage.Borrow
	closed bool
}

// Get returns a copy of the resource value.
func (r *ResMut[T]) Get() T { return *r.v }

// Set overwrites the resource value.
func (r *ResMut[T]) Set(v T) { *r.v = v }

// Ptr returns the live pointer to the resource. Only valid until Close.
func (r *ResMut[T]) Ptr() *T { return r.v }

// Close releases the borrow. Safe to call more than once.
func (r *ResMut[T]) Close() {
	if !r.closed {
		r.borrow.ReleaseExclusive()
		r.closed = true
	}
}

// GetResource returns a shared borrow of the resource of type T, or ok=false
// if it was never inserted. Callers treat a missing mandatory resource as a
// startup-ordering bug.
func GetResource[T any, E any](w *World[E]) (*Res[T], bool) {
	entry, p, ok := resourceSlot[T](w)
	if !ok {
		return nil, false
	}
	entry.borrow.AcquireShared()
	return &Res[T]{v: p, borrow: entry.borrow}, true
}

// GetResourceMut returns an exclusive borrow of the resource of type T.
func GetResourceMut[T any, E any](w *World[E]) (*ResMut[T], bool) {
	entry, p, ok := resourceSlot[T](w)
	if !ok {
		return nil, false
	}
	entry.borrow.AcquireExclusive()
	return &ResMut[T]{v: p, borrow: entry.borrow}, true
}

// TakeResource removes the resource of type T from the world and returns it,
// for explicit teardown ordering. It fails with ok=false while any borrow of
// the slot is still outstanding.
func TakeResource[T any, E any](w *World[E]) (T, bool) {
	var zero T
	entry, p, ok := resourceSlot[T](w)
	if !ok {
		return zero, false
	}
	if !entry.borrow.Idle() {
		return zero, false
	}
	delete(w.resources, types.TypeOf[T]())
	return *p, true
}

func resourceSlot[T any, E any](w *World[E]) (*resourceEntry, *T, bool) {
	entry, ok := w.resources[types.TypeOf[T]()]
	if !ok {
		return nil, nil, false
	}
	p, ok := entry.ptr.(*T)
	if !ok {
		return nil, nil, false
	}
	return entry, p, true
}
