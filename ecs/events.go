package ecs

// Event is a frame-scoped notification. Data carries a module-specific
// payload struct; Type namespaces it (for example "range.at_end").
type Event struct {
	Type string
	Data any
}

// EventQueue is a FIFO queue that lives for one frame. Systems push events
// while they run; later systems in the same frame observe them through
// Pending. The world clears the queue after every update.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Pending returns the events pushed so far this frame without consuming
// them. The returned slice is only valid until the end of the frame.
func (q *EventQueue) Pending() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = q.items[:0]
}
