package storage_test

import (
	"reflect"
	"testing"

	"gotest.tools/v3/assert"

	"pkg.world.dev/tecs/storage"
	"pkg.world.dev/tecs/types"
)

func newWizardTable(t *testing.T) *storage.Table {
	t.Helper()
	schema, err := storage.SchemaFor[wizard]()
	assert.NilError(t, err)
	return storage.NewTable(schema)
}

func TestTableAddRow(t *testing.T) {
	tab := newWizardTable(t)

	row := tab.AddRow(reflect.ValueOf(wizard{Health: health{Value: 10}, Mana: mana{Value: 5}}), 1)
	assert.Equal(t, types.RowIndex(0), row)
	row = tab.AddRow(reflect.ValueOf(wizard{Health: health{Value: 20}, Mana: mana{Value: 6}}), 2)
	assert.Equal(t, types.RowIndex(1), row)

	assert.Equal(t, 2, tab.Len())
	assert.Equal(t, types.EntityID(1), tab.EntityAt(0))
	assert.Equal(t, types.EntityID(2), tab.EntityAt(1))

	col, ok := tab.ColumnOf(reflect.TypeOf(health{}))
	assert.Check(t, ok)
	healths, ok := storage.Slice[health](col)
	assert.Check(t, ok)
	assert.Equal(t, 10, healths[0].Value)
	assert.Equal(t, 20, healths[1].Value)
}

func TestTableHasColumn(t *testing.T) {
	tab := newWizardTable(t)
	assert.Check(t, tab.HasColumn(reflect.TypeOf(health{})))
	assert.Check(t, tab.HasColumn(reflect.TypeOf(mana{})))
	assert.Check(t, !tab.HasColumn(reflect.TypeOf(wizard{})))
}

func TestTableRowReconstructsStruct(t *testing.T) {
	tab := newWizardTable(t)
	want := wizard{Health: health{Value: 3}, Mana: mana{Value: 9}}
	row := tab.AddRow(reflect.ValueOf(want), 1)

	v, err := tab.Row(row)
	assert.NilError(t, err)
	assert.Equal(t, want, v.Interface().(wizard))
}

func TestTableSwapRemoveReportsMovedEntity(t *testing.T) {
	tab := newWizardTable(t)
	tab.AddRow(reflect.ValueOf(wizard{Health: health{Value: 1}}), 1)
	tab.AddRow(reflect.ValueOf(wizard{Health: health{Value: 2}}), 2)
	tab.AddRow(reflect.ValueOf(wizard{Health: health{Value: 3}}), 3)

	movedID, moved := tab.SwapRemove(0)
	assert.Check(t, moved)
	assert.Equal(t, types.EntityID(3), movedID)
	assert.Equal(t, 2, tab.Len())
	assert.Equal(t, types.EntityID(3), tab.EntityAt(0))

	col, _ := tab.ColumnOf(reflect.TypeOf(health{}))
	healths, _ := storage.Slice[health](col)
	assert.Equal(t, 3, healths[0].Value)
	assert.Equal(t, 2, healths[1].Value)

	// Removing the last row moves nobody.
	_, moved = tab.SwapRemove(1)
	assert.Check(t, !moved)
	assert.Equal(t, 1, tab.Len())
}

func TestTableSerializeRoundTrip(t *testing.T) {
	src := newWizardTable(t)
	row := src.AddRow(reflect.ValueOf(wizard{Health: health{Value: 11}, Mana: mana{Value: 4}}), 1)

	bz, err := src.SerializeRow(row)
	assert.NilError(t, err)

	dst := newWizardTable(t)
	loaded, err := dst.DeserializeRow(bz)
	assert.NilError(t, err)

	v, err := dst.Row(loaded)
	assert.NilError(t, err)
	assert.Equal(t, wizard{Health: health{Value: 11}, Mana: mana{Value: 4}}, v.Interface().(wizard))
}

func TestUnsavedTableRefusesSerialization(t *testing.T) {
	schema, err := storage.SchemaFor[wizard]()
	assert.NilError(t, err)
	tab := storage.NewTableUnsaved(schema)
	assert.Check(t, !tab.Saved())

	row := tab.AddRow(reflect.ValueOf(wizard{}), 1)
	_, err = tab.SerializeRow(row)
	assert.ErrorIs(t, err, storage.ErrUnsavedTable)

	_, err = tab.DeserializeRow([]byte(`{}`))
	assert.ErrorIs(t, err, storage.ErrUnsavedTable)
}

func TestTableDecodeRowDoesNotAppend(t *testing.T) {
	tab := newWizardTable(t)

	v, err := tab.DecodeRow([]byte(`{"Health":{"Value":8},"Mana":{"Value":1}}`))
	assert.NilError(t, err)
	assert.Equal(t, wizard{Health: health{Value: 8}, Mana: mana{Value: 1}}, v.Interface().(wizard))
	assert.Equal(t, 0, tab.Len())

	_, err = tab.DecodeRow([]byte(`{"Health":`))
	assert.ErrorContains(t, err, "malformed row")
	assert.Equal(t, 0, tab.Len())
}
