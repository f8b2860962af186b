package tecs

import (
	"reflect"

	"github.com/rotisserie/eris"

	"pkg.world.dev/tecs/cql"
	"pkg.world.dev/tecs/query"
	"pkg.world.dev/tecs/types"
)

// QueryCQL evaluates a textual component query against the world and returns
// the matching entity handles. Component names resolve against every
// registered archetype's declared columns.
func (w *World[E]) QueryCQL(cqlText string) ([]types.EntityID, error) {
	componentFilter, err := cql.Parse(cqlText, func(name string) (reflect.Type, error) {
		t, ok := w.ComponentByName(name)
		if !ok {
			return nil, eris.Errorf("component %q is not registered", name)
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}

	var ids query.Entities
	result := w.Query(query.Filtered(componentFilter), &ids)
	defer result.Close()

	out := make([]types.EntityID, len(ids.IDs()))
	copy(out, ids.IDs())
	return out, nil
}
