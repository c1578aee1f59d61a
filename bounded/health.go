package bounded

import "github.com/hollowmoor/ebitools/ecs/component"

// Health support is just a Range with its own component handle and event
// names: hitting the lower bound means death, hitting the upper bound
// means the entity is back at full health.

// Event types published by the health system. Data is a LimitReached.
const (
	EventDeath    = "health.death"
	EventFullHeal = "health.full_heal"
)

// HealthComponent is the shared handle for health gauges.
var HealthComponent = component.New[Range]()

// NewHealth creates a full health gauge over [0, max].
func NewHealth(max float64) (*Range, error) {
	return NewRange(0, max)
}

// NewHealthSystem creates the system driving HealthComponent gauges.
func NewHealthSystem() *System {
	return &System{
		Ranges:      HealthComponent,
		AtStartType: EventDeath,
		AtEndType:   EventFullHeal,
	}
}
