package storage

import (
	"reflect"

	"github.com/rotisserie/eris"

	"pkg.world.dev/tecs/types"
)

// Field is one column slot of an archetype schema: a struct field name, the
// component type stored in that column, and the field's index within the
// archetype struct.
type Field struct {
	Name  string
	Type  reflect.Type
	Index int
}

// Schema is the explicit descriptor for one archetype type. It is built once
// per type by reflecting over the struct definition, and it is the single
// source of truth the generic add/remove/get code consumes, so the column
// ordering and the row population logic can never drift apart.
type Schema struct {
	typ    reflect.Type
	name   string
	fields []Field
}

// SchemaFor builds the schema for archetype type T.
func SchemaFor[T any]() (*Schema, error) {
	return NewSchema(reflect.TypeOf((*T)(nil)).Elem())
}

// NewSchema builds a schema from an archetype struct type. Every field is a
// component and must be exported, since rows are populated and reconstructed
// reflectively.
func NewSchema(t reflect.Type) (*Schema, error) {
	if t.Kind() != reflect.Struct {
		return nil, eris.Errorf("archetype %s must be a struct", t.String())
	}
	// The identity hash is built from the qualified type name, so unnamed
	// types would all collide on the same hash.
	if t.Name() == "" {
		return nil, eris.Errorf("archetype %s must be a named type", t.String())
	}
	if t.NumField() == 0 {
		return nil, eris.Errorf("archetype %s has no component fields", t.String())
	}
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			return nil, eris.Errorf("archetype %s field %s must be exported", t.String(), f.Name)
		}
		fields = append(fields, Field{Name: f.Name, Type: f.Type, Index: i})
	}
	return &Schema{typ: t, name: t.Name(), fields: fields}, nil
}

// Type returns the archetype struct type.
func (s *Schema) Type() reflect.Type { return s.typ }

// Name returns the archetype's type name.
func (s *Schema) Name() string { return s.name }

// ID returns the archetype's stable identity hash.
func (s *Schema) ID() types.ArchetypeID { return types.ArchetypeIDOf(s.typ) }

// Fields returns the ordered column slots.
func (s *Schema) Fields() []Field { return s.fields }

// Columns returns the ordered component types, matching field order.
func (s *Schema) Columns() []reflect.Type {
	cols := make([]reflect.Type, len(s.fields))
	for i, f := range s.fields {
		cols[i] = f.Type
	}
	return cols
}
