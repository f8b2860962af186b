package types

// EntityID is a stable handle to a live entity. It is assigned once at spawn
// time and never reused for the entity's lifetime, regardless of how rows are
// compacted underneath it.
type EntityID uint64

// RowIndex is the physical offset of an entity's data within its table's
// columns. A RowIndex is only meaningful together with the table it indexes,
// and it changes when a despawn compacts the table.
type RowIndex int

// Location resolves an EntityID to its current storage slot.
type Location struct {
	Archetype ArchetypeID `json:"archetype"`
	Row       RowIndex    `json:"row"`
}
