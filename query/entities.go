package query

import (
	"pkg.world.dev/tecs/storage"
	"pkg.world.dev/tecs/types"
)

// Entities yields the EntityID of every matched row, aligned positionally
// with the data terms of the same query. IDs come straight from each table's
// parallel entity column, so the cost is O(matched rows).
type Entities struct {
	ids []types.EntityID
}

func (e *Entities) Matches(*storage.Table) bool { return true }

func (e *Entities) Gather(tabs []*storage.Table) {
	e.ids = e.ids[:0]
	for _, tab := range tabs {
		e.ids = append(e.ids, tab.Entities()...)
	}
}

func (e *Entities) Close() {}

// IDs returns the matched entity handles in concatenation order.
func (e *Entities) IDs() []types.EntityID { return e.ids }
