package tecs

import (
	"reflect"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"

	"pkg.world.dev/tecs/codec"
	"pkg.world.dev/tecs/storage"
	"pkg.world.dev/tecs/types"
)

var (
	// ErrUnknownArchetype is returned by scene load when a saved archetype
	// hash has no registered table. The scene cannot be loaded until the
	// archetype is registered; entities are never silently dropped.
	ErrUnknownArchetype = eris.New("scene references unregistered archetype")

	// ErrSchemaMismatch is returned when a saved scene's archetype shape
	// differs from the currently registered one.
	ErrSchemaMismatch = eris.New("archetype schema does not match saved scene")
)

// Scene is a named subset of live entities that can be rendered to and
// reconstructed from a structured external representation.
type Scene struct {
	entities []types.EntityID
}

// NewScene creates a scene over the given entity handles.
func NewScene(ids ...types.EntityID) *Scene {
	return &Scene{entities: ids}
}

// Add records an entity into the scene.
func (s *Scene) Add(id types.EntityID) {
	s.entities = append(s.entities, id)
}

// Entities returns the recorded handles.
func (s *Scene) Entities() []types.EntityID { return s.entities }

// Len returns the number of recorded entities.
func (s *Scene) Len() int { return len(s.entities) }

// SceneData is the serializer-agnostic structured form of a scene: rows of
// serialized entities keyed by the owning archetype's identity hash.
type SceneData map[types.ArchetypeID][]json.RawMessage

// SceneFromWorld records every live entity of the world into a new scene.
func SceneFromWorld[E any](w *World[E]) *Scene {
	return NewScene(w.AllEntities()...)
}

// SaveScene resolves each recorded entity to its owning table, groups by
// archetype, and renders every row through the table's bound serializer.
// Entities that are no longer alive, and entities of unsaved archetypes, are
// skipped; unsaved tables do not take part in scenes.
func (w *World[E]) SaveScene(s *Scene) (SceneData, error) {
	data := make(SceneData)
	for _, id := range s.entities {
		loc, ok := w.entities[id]
		if !ok {
			continue
		}
		tab, _ := w.tableByID(loc.Archetype)
		if !tab.Saved() {
			w.log.Debug().Uint64("entity_id", uint64(id)).
				Str("archetype", tab.Schema().Name()).
				Msg("skipping unsaved archetype during scene save")
			continue
		}
		row, err := tab.SerializeRow(loc.Row)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to save entity %d", id)
		}
		data[loc.Archetype] = append(data[loc.Archetype], row)
	}
	w.log.Debug().Int("entities", s.Len()).Int("archetypes", len(data)).Msg("saved scene")
	return data, nil
}

// LoadScene reconstructs every row of the scene data into this world,
// minting a fresh EntityID per row, and returns the scene of new handles. A
// key with no matching registered table fails descriptively. Every key is
// resolved and every row decoded before any table is touched, so a failed
// load of untrusted input never leaves the world half-populated.
func (w *World[E]) LoadScene(data SceneData) (*Scene, error) {
	type stagedLoad struct {
		tab  *storage.Table
		rows []reflect.Value
	}
	staged := make([]stagedLoad, 0, len(data))
	for archID, rows := range data {
		tab, ok := w.tableByID(archID)
		if !ok {
			return nil, eris.Wrapf(ErrUnknownArchetype, "archetype hash %d", archID)
		}
		values := make([]reflect.Value, 0, len(rows))
		for _, bz := range rows {
			v, err := tab.DecodeRow(bz)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		staged = append(staged, stagedLoad{tab: tab, rows: values})
	}

	scene := NewScene()
	for _, load := range staged {
		for _, v := range load.rows {
			w.nextEntity++
			id := w.nextEntity
			row := load.tab.AddRow(v, id)
			w.entities[id] = types.Location{Archetype: load.tab.ID(), Row: row}
			scene.Add(id)
		}
	}
	w.log.Debug().Int("entities", scene.Len()).Msg("loaded scene")
	return scene, nil
}

// SceneFile is the on-disk form of a rendered scene: the entity rows plus
// the JSON schema of every archetype present, so a load can detect that a
// registered archetype's shape has drifted since the save.
type SceneFile struct {
	Schemas  map[types.ArchetypeID]json.RawMessage `json:"schemas"`
	Entities SceneData                             `json:"entities"`
}

// EncodeScene renders the scene with its archetype schemas to bytes.
func (w *World[E]) EncodeScene(s *Scene) ([]byte, error) {
	data, err := w.SaveScene(s)
	if err != nil {
		return nil, err
	}
	schemas := make(map[types.ArchetypeID]json.RawMessage, len(data))
	for archID := range data {
		schema, err := w.archetypeSchema(archID)
		if err != nil {
			return nil, err
		}
		schemas[archID] = schema
	}
	return codec.Encode(SceneFile{Schemas: schemas, Entities: data})
}

// DecodeScene validates the file's archetype schemas against the registered
// ones and loads the entity rows. Malformed input surfaces as an error, not
// a panic; scene files are untrusted.
func (w *World[E]) DecodeScene(bz []byte) (*Scene, error) {
	file, err := codec.Decode[SceneFile](bz)
	if err != nil {
		return nil, eris.Wrap(err, "malformed scene file")
	}
	for archID, saved := range file.Schemas {
		tab, ok := w.tableByID(archID)
		if !ok {
			return nil, eris.Wrapf(ErrUnknownArchetype, "archetype hash %d", archID)
		}
		current, err := w.archetypeSchema(archID)
		if err != nil {
			return nil, err
		}
		same, err := IsSchemaValid(current, saved)
		if err != nil {
			return nil, err
		}
		if !same {
			return nil, eris.Wrapf(ErrSchemaMismatch, "archetype %s", tab.Schema().Name())
		}
	}
	return w.LoadScene(file.Entities)
}
