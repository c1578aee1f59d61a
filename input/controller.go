package input

import "github.com/hajimehoshi/ebiten/v2"

// TopDownAction is a ready-made action set for simple top-down games.
type TopDownAction int

const (
	MoveUp TopDownAction = iota
	MoveDown
	MoveLeft
	MoveRight
	// Action is the primary action button, usually space.
	Action
	// Action2 is the secondary action button, usually enter.
	Action2
	// Exit usually opens a menu or quits.
	Exit
)

// DefaultTopDownBindings maps WASD plus arrow keys to movement, space and
// enter to the action buttons, and escape to exit.
func DefaultTopDownBindings() []Binding[TopDownAction] {
	held := func(k ebiten.Key, a TopDownAction) Binding[TopDownAction] {
		return Binding[TopDownAction]{Trigger: Trigger{Kind: Held, Key: k}, Action: a}
	}
	down := func(k ebiten.Key, a TopDownAction) Binding[TopDownAction] {
		return Binding[TopDownAction]{Trigger: Trigger{Kind: Down, Key: k}, Action: a}
	}
	return []Binding[TopDownAction]{
		held(ebiten.KeyArrowUp, MoveUp),
		held(ebiten.KeyW, MoveUp),
		held(ebiten.KeyArrowDown, MoveDown),
		held(ebiten.KeyS, MoveDown),
		held(ebiten.KeyArrowLeft, MoveLeft),
		held(ebiten.KeyA, MoveLeft),
		held(ebiten.KeyArrowRight, MoveRight),
		held(ebiten.KeyD, MoveRight),
		down(ebiten.KeySpace, Action),
		down(ebiten.KeyEnter, Action2),
		down(ebiten.KeyEscape, Exit),
	}
}

// NewTopDownMapping creates a mapping with the default top-down bindings.
func NewTopDownMapping() *Mapping[TopDownAction] {
	return NewMapping(DefaultTopDownBindings())
}
