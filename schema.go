package tecs

import (
	"reflect"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
	"github.com/wI2L/jsondiff"

	"pkg.world.dev/tecs/types"
)

// SerializeArchetypeSchema renders the JSON schema of an archetype struct
// type, so collaborators can publish the shapes they accept.
func SerializeArchetypeSchema(archetype any) ([]byte, error) {
	schema := jsonschema.Reflect(archetype)
	bz, err := schema.MarshalJSON()
	if err != nil {
		return nil, eris.Wrap(err, "archetype must be json serializable")
	}
	return bz, nil
}

// IsSchemaValid reports whether two serialized JSON schemas describe the
// same shape.
func IsSchemaValid(schemaBytes1 []byte, schemaBytes2 []byte) (bool, error) {
	patch, err := jsondiff.CompareJSON(schemaBytes1, schemaBytes2)
	if err != nil {
		return false, eris.Wrap(err, "")
	}
	return patch.String() == "", nil
}

// ArchetypeSchemas returns the JSON schema of every registered saved
// archetype, keyed by identity hash.
func (w *World[E]) ArchetypeSchemas() (map[types.ArchetypeID]json.RawMessage, error) {
	schemas := make(map[types.ArchetypeID]json.RawMessage, len(w.tableOrder))
	for _, id := range w.tableOrder {
		if !w.tables[id].Saved() {
			continue
		}
		bz, err := w.archetypeSchema(id)
		if err != nil {
			return nil, err
		}
		schemas[id] = bz
	}
	return schemas, nil
}

func (w *World[E]) archetypeSchema(id types.ArchetypeID) (json.RawMessage, error) {
	tab, ok := w.tableByID(id)
	if !ok {
		return nil, eris.Wrapf(ErrUnknownArchetype, "archetype hash %d", id)
	}
	instance := reflect.New(tab.Schema().Type()).Interface()
	bz, err := SerializeArchetypeSchema(instance)
	if err != nil {
		return nil, eris.Wrapf(err, "archetype %s", tab.Schema().Name())
	}
	return bz, nil
}
