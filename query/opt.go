package query

import (
	"pkg.world.dev/tecs/storage"
	"pkg.world.dev/tecs/types"
)

type optPart[T any] struct {
	data   []T // nil when the table lacks the column
	absent int // row count standing in for the missing column
}

// Opt is a presence-tolerant shared term for component type T, the
// `Option<&T>` slot of a query. It never narrows the table set; tables
// lacking T contribute a run of absent rows so positional alignment with the
// other terms of the same query is preserved.
type Opt[T any] struct {
	parts  []optPart[T]
	owners []*storage.Column
	length int
}

func (c *Opt[T]) Matches(*storage.Table) bool { return true }

func (c *Opt[T]) Gather(tabs []*storage.Table) {
	c.Close()
	for _, tab := range tabs {
		col, ok := tab.ColumnOf(types.TypeOf[T]())
		if !ok {
			c.parts = append(c.parts, optPart[T]{absent: tab.Len()})
			c.length += tab.Len()
			continue
		}
		col.AcquireShared()
		s, _ := storage.Slice[T](col)
		c.parts = append(c.parts, optPart[T]{data: s})
		c.owners = append(c.owners, col)
		c.length += len(s)
	}
}

func (c *Opt[T]) Close() {
	for _, col := range c.owners {
		col.ReleaseShared()
	}
	c.parts, c.owners, c.length = nil, nil, 0
}

// Len returns the total row count, absent rows included.
func (c *Opt[T]) Len() int { return c.length }

// At returns the value at the concatenated index i, with present=false for
// rows whose table lacks the column.
func (c *Opt[T]) At(i int) (T, bool) {
	var zero T
	for _, part := range c.parts {
		n := len(part.data) + part.absent
		if i < n {
			if part.data == nil {
				return zero, false
			}
			return part.data[i], true
		}
		i -= n
	}
	panic("tecs: query index out of range")
}

// Each calls f for every row until f returns false. Absent rows are reported
// with present=false and a zero value.
func (c *Opt[T]) Each(f func(v T, present bool) bool) {
	var zero T
	for _, part := range c.parts {
		if part.data == nil {
			for i := 0; i < part.absent; i++ {
				if !f(zero, false) {
					return
				}
			}
			continue
		}
		for i := range part.data {
			if !f(part.data[i], true) {
				return
			}
		}
	}
}
