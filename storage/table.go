package storage

import (
	"reflect"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"

	"pkg.world.dev/tecs/codec"
	"pkg.world.dev/tecs/types"
)

var (
	// ErrUnsavedTable is returned when scene serialization touches a table
	// that was registered through the unsaved path.
	ErrUnsavedTable = eris.New("table was registered without scene support")
)

// SerializeRowFn renders one row of a table as structured data.
type SerializeRowFn func(t *Table, row types.RowIndex) (json.RawMessage, error)

// DeserializeRowFn appends one serialized row to a table and returns the new
// row's index.
type DeserializeRowFn func(t *Table, bz json.RawMessage) (types.RowIndex, error)

// Table is the storage backing one archetype: one column per component type
// in schema order, a parallel column of EntityIDs (kept in lockstep through
// swap-removes so entity-identity queries cost O(rows)), and a shared row
// count. Serialize/deserialize functions are bound at construction by the
// saved path; unsaved tables cannot take part in scene save/load.
type Table struct {
	id       types.ArchetypeID
	schema   *Schema
	length   int
	columns  []*Column
	entities []types.EntityID

	serialize   SerializeRowFn
	deserialize DeserializeRowFn
}

// NewTableUnsaved builds a table for the schema with no scene support.
func NewTableUnsaved(schema *Schema) *Table {
	cols := make([]*Column, 0, len(schema.Fields()))
	for _, f := range schema.Fields() {
		cols = append(cols, NewColumnUninit(f.Type))
	}
	return &Table{
		id:       schema.ID(),
		schema:   schema,
		columns:  cols,
		entities: make([]types.EntityID, 0, 256),
	}
}

// NewTable builds a table for the schema with row serialization bound to the
// schema's archetype type.
func NewTable(schema *Schema) *Table {
	t := NewTableUnsaved(schema)
	t.serialize = serializeRow
	t.deserialize = deserializeRow
	return t
}

func serializeRow(t *Table, row types.RowIndex) (json.RawMessage, error) {
	v, err := t.Row(row)
	if err != nil {
		return nil, err
	}
	return codec.Encode(v.Interface())
}

func deserializeRow(t *Table, bz json.RawMessage) (types.RowIndex, error) {
	v, err := t.DecodeRow(bz)
	if err != nil {
		return 0, err
	}
	return t.AddRow(v, 0), nil
}

// DecodeRow parses a serialized row into an archetype value without
// appending it, so callers can validate a whole batch before committing any
// of it.
func (t *Table) DecodeRow(bz json.RawMessage) (reflect.Value, error) {
	if t.deserialize == nil {
		return reflect.Value{}, eris.Wrapf(ErrUnsavedTable, "archetype %s", t.schema.Name())
	}
	v := reflect.New(t.schema.Type())
	if err := codec.DecodeInto(bz, v.Interface()); err != nil {
		return reflect.Value{}, eris.Wrapf(err, "malformed row for archetype %s", t.schema.Name())
	}
	return v.Elem(), nil
}

// ID returns the table's archetype identity.
func (t *Table) ID() types.ArchetypeID { return t.id }

// Schema returns the archetype schema backing this table.
func (t *Table) Schema() *Schema { return t.schema }

// Len returns the shared row count.
func (t *Table) Len() int { return t.length }

// Saved reports whether the table can take part in scene save/load.
func (t *Table) Saved() bool { return t.serialize != nil }

// HasColumn reports whether the table stores a column of the given component
// type.
func (t *Table) HasColumn(componentType reflect.Type) bool {
	_, ok := t.ColumnOf(componentType)
	return ok
}

// ColumnOf returns the column holding the given component type.
func (t *Table) ColumnOf(componentType reflect.Type) (*Column, bool) {
	for _, c := range t.columns {
		if c.Elem() == componentType {
			return c, true
		}
	}
	return nil, false
}

// Columns returns the data columns in schema order.
func (t *Table) Columns() []*Column { return t.columns }

// Entities returns the parallel EntityID column. The slice aliases live
// storage and is reordered by SwapRemove; callers that outlive the call
// must copy.
func (t *Table) Entities() []types.EntityID { return t.entities }

// EntityAt returns the EntityID stored at the given row.
func (t *Table) EntityAt(row types.RowIndex) types.EntityID { return t.entities[row] }

// AddRow appends the archetype value as a new row, pushing each field into
// its column in schema order, and records id in the entity column. Panics if
// any column is mid-borrow.
func (t *Table) AddRow(v reflect.Value, id types.EntityID) types.RowIndex {
	if v.Type() != t.schema.Type() {
		panic("tecs: value " + v.Type().String() + " spawned into table for " + t.schema.Name())
	}
	for i, f := range t.schema.Fields() {
		col := t.columns[i]
		col.AcquireExclusive()
		col.PushValue(v.Field(f.Index))
		col.ReleaseExclusive()
	}
	t.entities = append(t.entities, id)
	t.length++
	return types.RowIndex(t.length - 1)
}

// SwapRemove deletes the given row from every column by moving the former
// last row into its slot. It returns the EntityID that was moved into the
// vacated slot, with moved=false when the deleted row was already last. The
// caller owns re-pointing the moved entity's Location; the table only keeps
// its columns in lockstep.
func (t *Table) SwapRemove(row types.RowIndex) (movedID types.EntityID, moved bool) {
	i := int(row)
	last := t.length - 1
	for _, col := range t.columns {
		col.AcquireExclusive()
		col.SwapRemove(i)
		col.ReleaseExclusive()
	}
	if i != last {
		t.entities[i] = t.entities[last]
		movedID, moved = t.entities[i], true
	}
	t.entities = t.entities[:last]
	t.length = last
	return movedID, moved
}

// Row reconstructs the full archetype value stored at the given row. Values
// are copied out; this is an introspection path, not a hot path.
func (t *Table) Row(row types.RowIndex) (reflect.Value, error) {
	if int(row) >= t.length {
		return reflect.Value{}, eris.Errorf("row %d out of range for archetype %s (%d rows)",
			row, t.schema.Name(), t.length)
	}
	v := reflect.New(t.schema.Type()).Elem()
	for i, f := range t.schema.Fields() {
		v.Field(f.Index).Set(t.columns[i].Index(int(row)))
	}
	return v, nil
}

// SerializeRow renders one row through the bound serializer.
func (t *Table) SerializeRow(row types.RowIndex) (json.RawMessage, error) {
	if t.serialize == nil {
		return nil, eris.Wrapf(ErrUnsavedTable, "archetype %s", t.schema.Name())
	}
	return t.serialize(t, row)
}

// DeserializeRow reconstructs one row through the bound deserializer. The
// entity column receives a zero placeholder; the world rewrites it with the
// freshly minted EntityID.
func (t *Table) DeserializeRow(bz json.RawMessage) (types.RowIndex, error) {
	if t.deserialize == nil {
		return 0, eris.Wrapf(ErrUnsavedTable, "archetype %s", t.schema.Name())
	}
	return t.deserialize(t, bz)
}
