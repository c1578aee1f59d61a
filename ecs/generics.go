package ecs

import "github.com/hollowmoor/ebitools/ecs/component"

// Add attaches a component to an entity, replacing any previous value.
func Add[T any](w *World, e Entity, h component.Handle[T], v *T) error {
	if !h.Kind().Valid() {
		return component.ErrInvalidKind
	}
	if v == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.table(h.ID()).set(e.ID, v)
	return nil
}

// Get returns the component attached to an entity, if present.
func Get[T any](w *World, e Entity, h component.Handle[T]) (*T, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	t := w.tableIfAny(h.ID())
	if t == nil {
		return nil, false
	}
	v, ok := t.get(e.ID).(*T)
	return v, ok
}

// Has reports whether an entity carries the component.
func Has[T any](w *World, e Entity, h component.Handle[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	t := w.tableIfAny(h.ID())
	return t.has(e.ID)
}

// Remove detaches the component from an entity. It reports whether the
// component was present.
func Remove[T any](w *World, e Entity, h component.Handle[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	t := w.tableIfAny(h.ID())
	if t == nil {
		return false
	}
	return t.remove(e.ID)
}

// ForEach visits every live entity carrying the component. The entity may
// be destroyed from inside fn.
func ForEach[T any](w *World, h component.Handle[T], fn func(Entity, *T)) {
	t := w.tableIfAny(h.ID())
	if t == nil {
		return
	}
	for _, id := range snapshot(t.ids()) {
		e, ok := w.entities.byID(id)
		if !ok {
			continue
		}
		if v, ok := t.get(id).(*T); ok {
			fn(e, v)
		}
	}
}

// ForEach2 visits entities carrying both components.
func ForEach2[A, B any](w *World, ha component.Handle[A], hb component.Handle[B], fn func(Entity, *A, *B)) {
	ta := w.tableIfAny(ha.ID())
	tb := w.tableIfAny(hb.ID())
	for _, id := range intersect(ta, tb) {
		e, ok := w.entities.byID(id)
		if !ok {
			continue
		}
		a, okA := ta.get(id).(*A)
		b, okB := tb.get(id).(*B)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

// ForEach3 visits entities carrying all three components.
func ForEach3[A, B, C any](w *World, ha component.Handle[A], hb component.Handle[B], hc component.Handle[C], fn func(Entity, *A, *B, *C)) {
	ta := w.tableIfAny(ha.ID())
	tb := w.tableIfAny(hb.ID())
	tc := w.tableIfAny(hc.ID())
	for _, id := range intersect(ta, tb) {
		if !tc.has(id) {
			continue
		}
		e, ok := w.entities.byID(id)
		if !ok {
			continue
		}
		a, okA := ta.get(id).(*A)
		b, okB := tb.get(id).(*B)
		c, okC := tc.get(id).(*C)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}

func snapshot(ids []int) []int {
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}
