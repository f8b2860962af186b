package query

import (
	"pkg.world.dev/tecs/storage"
	"pkg.world.dev/tecs/types"
)

// CompMut is an exclusive-access term for component type T, the `&mut T`
// slot of a query. Two CompMut terms over the same component type in
// overlapping queries fail loudly at Gather time.
type CompMut[T any] struct {
	parts  [][]T
	owners []*storage.Column
	length int
}

func (c *CompMut[T]) Matches(tab *storage.Table) bool {
	return tab.HasColumn(types.TypeOf[T]())
}

func (c *CompMut[T]) Gather(tabs []*storage.Table) {
	c.Close()
	for _, tab := range tabs {
		col, ok := tab.ColumnOf(types.TypeOf[T]())
		if !ok {
			continue
		}
		col.AcquireExclusive()
		s, _ := storage.Slice[T](col)
		c.parts = append(c.parts, s)
		c.owners = append(c.owners, col)
		c.length += len(s)
	}
}

func (c *CompMut[T]) Close() {
	for _, col := range c.owners {
		col.ReleaseExclusive()
	}
	c.parts, c.owners, c.length = nil, nil, 0
}

// Len returns the total number of matched rows across all tables.
func (c *CompMut[T]) Len() int { return c.length }

// Get returns a pointer to the value at the concatenated index i.
func (c *CompMut[T]) Get(i int) (*T, bool) {
	for p := range c.parts {
		if i < len(c.parts[p]) {
			return &c.parts[p][i], true
		}
		i -= len(c.parts[p])
	}
	return nil, false
}

// ForEach calls f with a pointer to every matched value.
func (c *CompMut[T]) ForEach(f func(*T)) {
	for p := range c.parts {
		part := c.parts[p]
		for i := range part {
			f(&part[i])
		}
	}
}

// Each calls f for every matched value until f returns false.
func (c *CompMut[T]) Each(f func(*T) bool) {
	for p := range c.parts {
		part := c.parts[p]
		for i := range part {
			if !f(&part[i]) {
				return
			}
		}
	}
}

// First returns a pointer to the first matched value.
func (c *CompMut[T]) First() (*T, bool) {
	for p := range c.parts {
		if len(c.parts[p]) > 0 {
			return &c.parts[p][0], true
		}
	}
	return nil, false
}

// Fold threads an accumulator through every matched value.
func Fold[T, A any](c *CompMut[T], init A, f func(A, *T) A) A {
	acc := init
	c.ForEach(func(v *T) {
		acc = f(acc, v)
	})
	return acc
}

// Map collects f applied to every matched value.
func Map[T, O any](c *CompMut[T], f func(*T) O) []O {
	out := make([]O, 0, c.Len())
	c.ForEach(func(v *T) {
		out = append(out, f(v))
	})
	return out
}

// FilterMap collects f applied to every matched value, skipping values for
// which f reports false.
func FilterMap[T, O any](c *CompMut[T], f func(*T) (O, bool)) []O {
	out := make([]O, 0, c.Len())
	c.ForEach(func(v *T) {
		if o, ok := f(v); ok {
			out = append(out, o)
		}
	})
	return out
}
