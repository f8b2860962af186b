package tecs

import (
	"path/filepath"
	"reflect"
	"runtime"
)

// System is the dispatch contract. Event fires once per submitted event and
// Tick once per world tick, both with shared access to the world; a system
// that keeps mutable state across ticks owns that state itself. Systems run
// in registration order.
type System[E any] interface {
	Event(w *World[E], event E)
	Tick(w *World[E])
}

// handler adapts a plain event function into a System with a no-op tick.
type handler[E any] struct {
	fn func(*World[E], E)
}

func (h handler[E]) Event(w *World[E], event E) { h.fn(w, event) }
func (h handler[E]) Tick(*World[E])             {}

// ticker adapts a plain tick function into a System with a no-op event.
type ticker[E any] struct {
	fn func(*World[E])
}

func (t ticker[E]) Event(*World[E], E) {}
func (t ticker[E]) Tick(w *World[E])   { t.fn(w) }

type systemEntry[E any] struct {
	name   string
	system System[E]
}

// WithSystem appends a system to the dispatch list.
func (w *World[E]) WithSystem(system System[E]) *World[E] {
	name := reflect.TypeOf(system).String()
	w.systems = append(w.systems, systemEntry[E]{name: name, system: system})
	w.log.Debug().Str("system", name).Msg("registered system")
	return w
}

// WithHandler appends an event-only system.
func (w *World[E]) WithHandler(fn func(*World[E], E)) *World[E] {
	w.systems = append(w.systems, systemEntry[E]{name: funcName(fn), system: handler[E]{fn: fn}})
	return w
}

// WithTicker appends a tick-only system.
func (w *World[E]) WithTicker(fn func(*World[E])) *World[E] {
	w.systems = append(w.systems, systemEntry[E]{name: funcName(fn), system: ticker[E]{fn: fn}})
	return w
}

// RegisteredSystems returns the system names in registration order.
func (w *World[E]) RegisteredSystems() []string {
	names := make([]string, 0, len(w.systems))
	for _, entry := range w.systems {
		names = append(names, entry.name)
	}
	return names
}

// Tick invokes every system's Tick in registration order. The system list is
// copied first so a system that registers new systems mid-tick does not
// corrupt the iteration; additions take effect next dispatch.
func (w *World[E]) Tick() {
	systems := make([]systemEntry[E], len(w.systems))
	copy(systems, w.systems)
	for _, entry := range systems {
		entry.system.Tick(w)
	}
}

// Submit invokes every system's Event in registration order with the given
// event. Like Tick, dispatch iterates over a copy of the system list, so
// nested Submit calls from inside a handler are safe.
func (w *World[E]) Submit(event E) {
	systems := make([]systemEntry[E], len(w.systems))
	copy(systems, w.systems)
	for _, entry := range systems {
		entry.system.Event(w, event)
	}
}

// funcName derives a human-readable name for a registered function, for
// logs.
func funcName(fn any) string {
	return filepath.Base(runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name())
}
