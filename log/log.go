// Package log loads ECS state into structured zerolog events. The world
// implements Loggable; collaborators call these helpers at startup and from
// debug surfaces.
package log

import (
	"sort"

	"github.com/rs/zerolog"

	"pkg.world.dev/tecs/types"
)

type Loggable interface {
	RegisteredArchetypes() []types.ArchetypeInfo
	RegisteredSystems() []string
}

func loadArchetypeIntoArrayLogger(info types.ArchetypeInfo, arrayLogger *zerolog.Array) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Uint64("archetype_id", uint64(info.ID))
	dictLogger = dictLogger.Str("archetype_name", info.Name)
	dictLogger = dictLogger.Strs("components", info.Components)
	dictLogger = dictLogger.Bool("saved", info.Saved)
	return arrayLogger.Dict(dictLogger)
}

func loadArchetypesToEvent(zeroLoggerEvent *zerolog.Event, target Loggable) *zerolog.Event {
	archetypes := target.RegisteredArchetypes()
	sort.Slice(archetypes, func(i, j int) bool {
		return archetypes[i].Name < archetypes[j].Name
	})
	zeroLoggerEvent.Int("total_archetypes", len(archetypes))
	arrayLogger := zerolog.Arr()
	for _, info := range archetypes {
		arrayLogger = loadArchetypeIntoArrayLogger(info, arrayLogger)
	}
	return zeroLoggerEvent.Array("archetypes", arrayLogger)
}

func loadSystemsIntoEvent(zeroLoggerEvent *zerolog.Event, target Loggable) *zerolog.Event {
	zeroLoggerEvent.Int("total_systems", len(target.RegisteredSystems()))
	arrayLogger := zerolog.Arr()
	for _, sysName := range target.RegisteredSystems() {
		arrayLogger = arrayLogger.Str(sysName)
	}
	return zeroLoggerEvent.Array("systems", arrayLogger)
}

// Archetypes logs every registered archetype.
func Archetypes(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadArchetypesToEvent(zeroLoggerEvent, target)
	zeroLoggerEvent.Send()
}

// Systems logs every registered system in registration order.
func Systems(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadSystemsIntoEvent(zeroLoggerEvent, target)
	zeroLoggerEvent.Send()
}

// Entity logs one entity's handle and current location.
func Entity(logger *zerolog.Logger, level zerolog.Level, id types.EntityID, loc types.Location) {
	logger.WithLevel(level).
		Uint64("entity_id", uint64(id)).
		Uint64("archetype_id", uint64(loc.Archetype)).
		Int("row", int(loc.Row)).
		Send()
}

// World logs a full snapshot: archetypes and systems.
func World(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadArchetypesToEvent(zeroLoggerEvent, target)
	zeroLoggerEvent = loadSystemsIntoEvent(zeroLoggerEvent, target)
	zeroLoggerEvent.Send()
}
