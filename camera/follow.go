// Package camera provides 2D camera controllers plus split-screen and
// side-by-side stereo rigs built on ebiten viewports.
package camera

import (
	"math"

	"github.com/hollowmoor/ebitools/ecs"
	"github.com/hollowmoor/ebitools/ecs/component"
)

// Transform is a world position. Cameras and their targets both carry one.
type Transform struct {
	X float64
	Y float64
}

// TransformComponent is the shared handle for world positions.
var TransformComponent = component.New[Transform]()

// Mode selects how a Controller approaches its target.
type Mode int

const (
	// Follow keeps the target within AllowedDistance of the camera and
	// only moves once the target drifts outside that dead zone.
	Follow Mode = iota
	// Move approaches the target in a straight line at Speed and snaps
	// onto it for the final step.
	Move
)

// Controller steers the camera entity it is attached to toward a target
// entity's Transform.
type Controller struct {
	Speed           float64
	AllowedDistance float64
	Mode            Mode
	Target          ecs.Entity
	AtTarget        bool
}

// ControllerComponent is the shared handle for camera controllers.
var ControllerComponent = component.New[Controller]()

// NewFollow creates a dead-zone follow controller. The default allowed
// distance of 100 leaves the target room to move without camera drift.
func NewFollow(target ecs.Entity, speed float64) *Controller {
	return &Controller{
		Speed:           speed,
		AllowedDistance: 100,
		Mode:            Follow,
		Target:          target,
		AtTarget:        true,
	}
}

// NewMove creates a controller that moves linearly onto the target.
func NewMove(target ecs.Entity, speed float64) *Controller {
	return &Controller{
		Speed:  speed,
		Mode:   Move,
		Target: target,
	}
}

// System moves every entity carrying a Controller and a Transform toward
// its target. Controllers whose target lacks a Transform are skipped.
type System struct{}

// NewSystem creates a camera controller system.
func NewSystem() *System {
	return &System{}
}

func (s *System) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()
	ecs.ForEach2(w, ControllerComponent, TransformComponent, func(_ ecs.Entity, c *Controller, tr *Transform) {
		target, ok := ecs.Get(w, c.Target, TransformComponent)
		if !ok {
			return
		}
		switch c.Mode {
		case Follow:
			dx := target.X - tr.X
			dy := target.Y - tr.Y
			if dx < -c.AllowedDistance {
				tr.X = target.X + c.AllowedDistance
			}
			if dx > c.AllowedDistance {
				tr.X = target.X - c.AllowedDistance
			}
			if dy < -c.AllowedDistance {
				tr.Y = target.Y + c.AllowedDistance
			}
			if dy > c.AllowedDistance {
				tr.Y = target.Y - c.AllowedDistance
			}
			c.AtTarget = true
		case Move:
			dx := target.X - tr.X
			dy := target.Y - tr.Y
			dist := math.Hypot(dx, dy)
			step := c.Speed * dt
			if dist <= step {
				tr.X = target.X
				tr.Y = target.Y
				c.AtTarget = true
				return
			}
			tr.X += dx / dist * step
			tr.Y += dy / dist * step
			c.AtTarget = false
		}
	})
}
