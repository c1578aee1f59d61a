package collision

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/hollowmoor/ebitools/ecs"
	"github.com/hollowmoor/ebitools/ecs/component"
)

// Direction selects which axis an Acceleration pushes along.
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

// Acceleration accelerates a physics body in its current Direction and
// clamps each velocity axis to MaxSpeed. Game code steers by flipping
// Direction.
type Acceleration struct {
	Amount    float64
	MaxSpeed  float64
	Direction Direction
}

// NewAcceleration creates an acceleration with no active direction.
func NewAcceleration(amount, maxSpeed float64) *Acceleration {
	return &Acceleration{Amount: amount, MaxSpeed: maxSpeed}
}

// Body attaches a Chipmunk body and its primary shape to an entity.
type Body struct {
	Body  *cp.Body
	Shape *cp.Shape
}

var (
	AccelerationComponent = component.New[Acceleration]()
	BodyComponent         = component.New[Body]()
)

// NewDynamicBox adds a dynamic box body to the space. Rotation is locked,
// matching the usual setup for top-down and platformer movers.
func NewDynamicBox(space *cp.Space, width, height float64, collisionType cp.CollisionType) *Body {
	body := cp.NewBody(1, math.Inf(1))
	shape := cp.NewBox(body, width, height, 0)
	shape.SetCollisionType(collisionType)
	space.AddBody(body)
	space.AddShape(shape)
	return &Body{Body: body, Shape: shape}
}

// NewStaticBox adds a box shape attached to the space's static body.
func NewStaticBox(space *cp.Space, pos cp.Vector, width, height float64, collisionType cp.CollisionType) *cp.Shape {
	bb := cp.BB{L: pos.X - width/2, B: pos.Y - height/2, R: pos.X + width/2, T: pos.Y + height/2}
	shape := cp.NewBox2(space.StaticBody, bb, 0)
	shape.SetCollisionType(collisionType)
	space.AddShape(shape)
	return shape
}

// NewTriggerBox adds a dynamic sensor box: it reports contacts but does
// not push other bodies around.
func NewTriggerBox(space *cp.Space, width, height float64, collisionType cp.CollisionType) *Body {
	b := NewDynamicBox(space, width, height, collisionType)
	b.Shape.SetSensor(true)
	return b
}

// AccelerationSystem integrates Acceleration into body velocity each
// frame. Register it before the StepSystem.
type AccelerationSystem struct{}

func NewAccelerationSystem() *AccelerationSystem {
	return &AccelerationSystem{}
}

func (s *AccelerationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()
	ecs.ForEach2(w, AccelerationComponent, BodyComponent, func(_ ecs.Entity, a *Acceleration, b *Body) {
		if b.Body == nil {
			return
		}
		v := b.Body.Velocity()
		switch a.Direction {
		case Up:
			v.Y += a.Amount * dt
		case Down:
			v.Y -= a.Amount * dt
		case Left:
			v.X -= a.Amount * dt
		case Right:
			v.X += a.Amount * dt
		}
		v.X = clamp(v.X, -a.MaxSpeed, a.MaxSpeed)
		v.Y = clamp(v.Y, -a.MaxSpeed, a.MaxSpeed)
		b.Body.SetVelocityVector(v)
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
