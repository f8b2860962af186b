// Package tecs is an archetype-based entity-component-system runtime. A
// World owns one table per registered archetype, a registry of singleton
// resources, an ordered list of systems, and the mapping from stable entity
// handles to their current storage slot. The world is single-threaded;
// concurrent-access discipline is enforced per column at runtime and
// violations fail loudly.
package tecs

import (
	"os"
	"reflect"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pkg.world.dev/tecs/query"
	"pkg.world.dev/tecs/storage"
	"pkg.world.dev/tecs/types"
)

// World is the top-level container for all ECS state. The type parameter E
// is the collaborator-supplied event type dispatched through Submit; the
// world treats it as opaque.
type World[E any] struct {
	id  uuid.UUID
	cfg WorldConfig
	log zerolog.Logger

	tables     map[types.ArchetypeID]*storage.Table
	tableOrder []types.ArchetypeID
	components map[string]reflect.Type

	systems   []systemEntry[E]
	resources map[reflect.Type]*resourceEntry

	entities   map[types.EntityID]types.Location
	nextEntity types.EntityID
}

// NewWorld creates an empty world. Configuration comes from the environment
// with sane fallbacks; a failure to parse it is a deployment error and
// panics.
func NewWorld[E any]() *World[E] {
	cfg, err := loadWorldConfig()
	if err != nil {
		panic("tecs: failed to load world config: " + err.Error())
	}

	id := uuid.New()
	logger := zerolog.New(os.Stderr).
		Level(cfg.logLevel()).
		With().
		Timestamp().
		Str("world_id", id.String()).
		Logger()

	w := &World[E]{
		id:         id,
		cfg:        *cfg,
		log:        logger,
		tables:     make(map[types.ArchetypeID]*storage.Table),
		components: make(map[string]reflect.Type),
		resources:  make(map[reflect.Type]*resourceEntry),
		entities:   make(map[types.EntityID]types.Location),
	}
	w.log.Debug().Msg("created new world")
	return w
}

// ID returns the world instance's unique id, used for log correlation.
func (w *World[E]) ID() uuid.UUID { return w.id }

// Logger returns the world's logger.
func (w *World[E]) Logger() *zerolog.Logger { return &w.log }

// With applies f to the world and returns the result, keeping long builder
// chains readable at the composition root.
func (w *World[E]) With(f func(*World[E]) *World[E]) *World[E] {
	return f(w)
}

// Register registers archetype T with scene support. Registering the same
// concrete type twice is a composition bug and panics.
func Register[T any, E any](w *World[E]) *World[E] {
	return w.addTable(storage.NewTable(mustSchemaFor[T]()))
}

// RegisterUnsaved registers archetype T without scene support: the table
// carries no serializer and its entities are skipped by scene save and
// rejected by scene load.
func RegisterUnsaved[T any, E any](w *World[E]) *World[E] {
	return w.addTable(storage.NewTableUnsaved(mustSchemaFor[T]()))
}

func mustSchemaFor[T any]() *storage.Schema {
	schema, err := storage.SchemaFor[T]()
	if err != nil {
		panic("tecs: " + err.Error())
	}
	return schema
}

func (w *World[E]) addTable(tab *storage.Table) *World[E] {
	if _, ok := w.tables[tab.ID()]; ok {
		panic("tecs: archetype " + tab.Schema().Name() + " registered twice")
	}
	// Component names address types in CQL, so two distinct types sharing a
	// name cannot coexist; last-one-wins would silently change what queries
	// match.
	for _, col := range tab.Schema().Columns() {
		if existing, ok := w.components[col.Name()]; ok && existing != col {
			panic("tecs: component name " + col.Name() + " already registered by " + existing.String())
		}
	}
	w.tables[tab.ID()] = tab
	w.tableOrder = append(w.tableOrder, tab.ID())
	for _, col := range tab.Schema().Columns() {
		w.components[col.Name()] = col
	}
	w.log.Debug().
		Str("archetype", tab.Schema().Name()).
		Uint64("archetype_id", uint64(tab.ID())).
		Bool("saved", tab.Saved()).
		Msg("registered archetype")
	return w
}

// Spawn adds the entity to its archetype's table and returns a fresh handle.
// The archetype must already be registered; spawning an unregistered type is
// a composition bug and panics.
func Spawn[T any, E any](w *World[E], entity T) types.EntityID {
	t := reflect.TypeOf(entity)
	tab, ok := w.tables[types.ArchetypeIDOf(t)]
	if !ok {
		panic("tecs: spawn of unregistered archetype " + t.String())
	}

	w.nextEntity++
	id := w.nextEntity
	row := tab.AddRow(reflect.ValueOf(entity), id)
	w.entities[id] = types.Location{Archetype: tab.ID(), Row: row}

	w.log.Debug().
		Uint64("entity_id", uint64(id)).
		Str("archetype", tab.Schema().Name()).
		Int("row", int(row)).
		Msg("spawned entity")
	return id
}

// Despawn removes the entity and compacts its table by swap-remove. The
// entity that held the table's last row, if any, is re-pointed to the
// vacated slot here and nowhere else. Despawning an id that is already gone
// is a no-op.
func (w *World[E]) Despawn(id types.EntityID) bool {
	loc, ok := w.entities[id]
	if !ok {
		return false
	}
	tab := w.tables[loc.Archetype]

	delete(w.entities, id)
	movedID, moved := tab.SwapRemove(loc.Row)
	if moved {
		w.entities[movedID] = types.Location{Archetype: loc.Archetype, Row: loc.Row}
	}

	w.log.Debug().
		Uint64("entity_id", uint64(id)).
		Str("archetype", tab.Schema().Name()).
		Msg("despawned entity")
	return true
}

// Location resolves an entity handle to its current storage slot.
func (w *World[E]) Location(id types.EntityID) (types.Location, bool) {
	loc, ok := w.entities[id]
	return loc, ok
}

// AllEntities returns the handles of every live entity. Intended for scene
// recording; order is unspecified.
func (w *World[E]) AllEntities() []types.EntityID {
	ids := make([]types.EntityID, 0, len(w.entities))
	for id := range w.entities {
		ids = append(ids, id)
	}
	return ids
}

// EntityCount returns the number of live entities.
func (w *World[E]) EntityCount() int { return len(w.entities) }

// Query runs the terms against every table matching all of them and binds
// each term's output. Tables are visited in registration order. The caller
// must Close the result to release the borrows the data terms hold.
func (w *World[E]) Query(terms ...query.Term) *query.Result {
	return w.runQuery(terms, false)
}

// QueryOne is Query restricted to the first matching table, for the cases
// where exactly one instance of an archetype is expected. Callers read it
// through each term's First accessor.
func (w *World[E]) QueryOne(terms ...query.Term) *query.Result {
	return w.runQuery(terms, true)
}

func (w *World[E]) runQuery(terms []query.Term, one bool) *query.Result {
	var tabs []*storage.Table
	for _, id := range w.tableOrder {
		tab := w.tables[id]
		qualifies := true
		for _, t := range terms {
			if !t.Matches(tab) {
				qualifies = false
				break
			}
		}
		if qualifies {
			tabs = append(tabs, tab)
			if one {
				break
			}
		}
	}
	for _, t := range terms {
		t.Gather(tabs)
	}
	return query.NewResult(terms)
}

// RegisteredArchetypes describes every registered archetype, in registration
// order.
func (w *World[E]) RegisteredArchetypes() []types.ArchetypeInfo {
	infos := make([]types.ArchetypeInfo, 0, len(w.tableOrder))
	for _, id := range w.tableOrder {
		tab := w.tables[id]
		comps := make([]string, 0, len(tab.Schema().Columns()))
		for _, c := range tab.Schema().Columns() {
			comps = append(comps, c.Name())
		}
		infos = append(infos, types.ArchetypeInfo{
			ID:         id,
			Name:       tab.Schema().Name(),
			Components: comps,
			Saved:      tab.Saved(),
		})
	}
	return infos
}

// ComponentByName resolves a component's type name as declared by any
// registered archetype. This is the lookup the CQL layer uses.
func (w *World[E]) ComponentByName(name string) (reflect.Type, bool) {
	t, ok := w.components[name]
	return t, ok
}

func (w *World[E]) tableByID(id types.ArchetypeID) (*storage.Table, bool) {
	tab, ok := w.tables[id]
	return tab, ok
}
