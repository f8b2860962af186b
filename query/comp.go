package query

import (
	"pkg.world.dev/tecs/storage"
	"pkg.world.dev/tecs/types"
)

// Comp is a shared-access term for component type T, the `&T` slot of a
// query. After the query runs it is a read-only view concatenated across
// every matching table.
type Comp[T any] struct {
	parts  [][]T
	owners []*storage.Column
	length int
}

func (c *Comp[T]) Matches(tab *storage.Table) bool {
	return tab.HasColumn(types.TypeOf[T]())
}

func (c *Comp[T]) Gather(tabs []*storage.Table) {
	c.Close()
	for _, tab := range tabs {
		col, ok := tab.ColumnOf(types.TypeOf[T]())
		if !ok {
			continue
		}
		col.AcquireShared()
		s, _ := storage.Slice[T](col)
		c.parts = append(c.parts, s)
		c.owners = append(c.owners, col)
		c.length += len(s)
	}
}

func (c *Comp[T]) Close() {
	for _, col := range c.owners {
		col.ReleaseShared()
	}
	c.parts, c.owners, c.length = nil, nil, 0
}

// Len returns the total number of matched rows across all tables.
func (c *Comp[T]) Len() int { return c.length }

// At returns the value at the concatenated index i. Index 5 may live in the
// second table if the first holds 3 rows.
func (c *Comp[T]) At(i int) T {
	for _, part := range c.parts {
		if i < len(part) {
			return part[i]
		}
		i -= len(part)
	}
	panic("tecs: query index out of range")
}

// Each calls f for every matched value until f returns false.
func (c *Comp[T]) Each(f func(T) bool) {
	for _, part := range c.parts {
		for i := range part {
			if !f(part[i]) {
				return
			}
		}
	}
}

// First returns the first matched value.
func (c *Comp[T]) First() (T, bool) {
	for _, part := range c.parts {
		if len(part) > 0 {
			return part[0], true
		}
	}
	var zero T
	return zero, false
}
