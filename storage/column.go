package storage

import (
	"reflect"
)

// Column is a growable, homogeneous sequence of component values whose
// element type is fixed at runtime. The backing store is a real Go slice
// held behind reflection, so a caller that does know the element type gets
// the live []T back with a single type assertion and no copying.
//
// All typed accessors are gated by the element-type tag: a mismatched
// request is reported as absent, never as garbage and never as a panic. The
// Table owning this column already knows the correct types from the
// archetype schema, so a mismatch here is a caller bug upstream.
type Column struct {
	elem   reflect.Type
	data   reflect.Value // always a slice of elem once allocated
	borrow borrowFlag
}

// NewColumn creates an empty column bound to T.
func NewColumn[T any]() *Column {
	return NewColumnUninit(reflect.TypeOf((*T)(nil)).Elem())
}

// NewColumnUninit creates an empty column bound to an externally supplied
// element type. Tables pre-create all their columns this way from the
// archetype's declared column list, before any concrete row exists.
func NewColumnUninit(elem reflect.Type) *Column {
	return &Column{elem: elem}
}

// Elem returns the element type this column is bound to.
func (c *Column) Elem() reflect.Type { return c.elem }

// Len returns the number of live rows.
func (c *Column) Len() int {
	if !c.data.IsValid() {
		return 0
	}
	return c.data.Len()
}

// Push appends item if and only if T matches the column's bound type.
// Reports whether the append happened.
func Push[T any](c *Column, item T) bool {
	if reflect.TypeOf((*T)(nil)).Elem() != c.elem {
		return false
	}
	return c.PushValue(reflect.ValueOf(item))
}

// PushValue appends a reflectively built value. This is the path Table uses
// when populating a row from an archetype struct, where the element type is
// only known through the schema.
func (c *Column) PushValue(v reflect.Value) bool {
	if v.Type() != c.elem {
		return false
	}
	if !c.data.IsValid() {
		c.data = reflect.MakeSlice(reflect.SliceOf(c.elem), 0, 4)
	}
	c.data = reflect.Append(c.data, v)
	return true
}

// Slice returns the full live []T, or absent on a type mismatch. The
// returned slice aliases the column's storage: element writes through it are
// visible to every other view, which is exactly the contract queries rely
// on. Appends elsewhere may reallocate, which is why views hold a borrow
// until closed.
func Slice[T any](c *Column) ([]T, bool) {
	if reflect.TypeOf((*T)(nil)).Elem() != c.elem {
		return nil, false
	}
	if !c.data.IsValid() {
		return []T{}, true
	}
	s, ok := c.data.Interface().([]T)
	return s, ok
}

// Run gives f scoped exclusive access to the backing slice so it can perform
// arbitrary slice surgery (the swap-remove used by row deletion lives here).
// The slice returned by f becomes the column's new backing store. A type
// mismatch is a silent no-op.
func Run[T any](c *Column, f func([]T) []T) bool {
	s, ok := Slice[T](c)
	if !ok {
		return false
	}
	c.data = reflect.ValueOf(f(s))
	return true
}

// Index returns the value at row i.
func (c *Column) Index(i int) reflect.Value {
	return c.data.Index(i)
}

// Addr returns an addressable pointer to the value at row i, as an
// interface holding *T.
func (c *Column) Addr(i int) any {
	return c.data.Index(i).Addr().Interface()
}

// SwapRemove removes row i by moving the former last row into its slot and
// shrinking the column by one.
func (c *Column) SwapRemove(i int) {
	last := c.data.Len() - 1
	if i != last {
		c.data.Index(i).Set(c.data.Index(last))
	}
	c.data = c.data.Slice(0, last)
}

// AcquireShared takes a shared borrow on the column. Panics if the column is
// exclusively borrowed.
func (c *Column) AcquireShared() { c.borrow.acquireShared("column " + c.elem.String()) }

// ReleaseShared drops a shared borrow.
func (c *Column) ReleaseShared() { c.borrow.releaseShared() }

// AcquireExclusive takes the exclusive borrow on the column. Panics if any
// borrow is outstanding.
func (c *Column) AcquireExclusive() { c.borrow.acquireExclusive("column " + c.elem.String()) }

// ReleaseExclusive drops the exclusive borrow.
func (c *Column) ReleaseExclusive() { c.borrow.releaseExclusive() }
