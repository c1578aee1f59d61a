// Package component provides typed component registration for the ECS world.
//
// A Handle is usually declared once per component as a package-level var:
//
//	var TimerComponent = component.New[Timer]()
package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive = errors.New("ecs: entity not alive")
	ErrNilComponent   = errors.New("ecs: component is nil")
	ErrInvalidKind    = errors.New("ecs: invalid component kind")
)

// ID identifies a component kind at runtime.
type ID uint32

var nextID atomic.Uint32

// Kind is the typed identity of a component.
type Kind[T any] struct {
	id ID
}

// NewKind allocates a fresh component kind.
func NewKind[T any]() Kind[T] {
	return Kind[T]{id: ID(nextID.Add(1))}
}

func (k Kind[T]) ID() ID {
	return k.id
}

func (k Kind[T]) Valid() bool {
	return k.id != 0
}

// Handle wraps a Kind for use with the generic world accessors.
type Handle[T any] struct {
	kind Kind[T]
}

// New allocates a handle for a new component kind.
func New[T any]() Handle[T] {
	return Handle[T]{kind: NewKind[T]()}
}

func (h Handle[T]) Kind() Kind[T] {
	return h.kind
}

func (h Handle[T]) ID() ID {
	return h.kind.id
}
