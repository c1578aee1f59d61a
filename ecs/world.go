package ecs

import "github.com/hollowmoor/ebitools/ecs/component"

// System updates a world once per frame.
type System interface {
	Update(w *World)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) { f(w) }

// World owns entities, component tables, the system order, and the
// frame-scoped event queue. All access happens on the host's update
// goroutine; the world does no locking of its own.
type World struct {
	entities entityStore
	systems  []System
	events   EventQueue
	tables   map[component.ID]*sparseSet
	delta    float64
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{tables: make(map[component.ID]*sparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes an entity and all of its components. It reports
// whether the handle was alive.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	for _, t := range w.tables {
		t.remove(e.ID)
	}
	return true
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities returns all live entities.
func (w *World) Entities() []Entity {
	return w.entities.alive()
}

// AddSystem appends a system to the update order. Systems run in
// registration order; event producers should register before consumers.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update advances the world by one frame. dt is the elapsed frame time in
// seconds. All systems run once, then the event queue is cleared.
func (w *World) Update(dt float64) {
	if w == nil {
		return
	}
	w.delta = dt
	for _, s := range w.systems {
		s.Update(w)
	}
	w.events.flush()
}

// Delta returns the elapsed time of the current frame in seconds.
func (w *World) Delta() float64 {
	return w.delta
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) table(id component.ID) *sparseSet {
	t, ok := w.tables[id]
	if !ok {
		t = &sparseSet{}
		w.tables[id] = t
	}
	return t
}

func (w *World) tableIfAny(id component.ID) *sparseSet {
	return w.tables[id]
}
