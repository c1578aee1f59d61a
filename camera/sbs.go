package camera

import (
	"github.com/hollowmoor/ebitools/ecs"
	"github.com/hollowmoor/ebitools/ecs/component"
)

// LeftEye and RightEye mark the two output cameras of an SBS rig. Each
// marker should exist on exactly one entity, which also carries a
// Transform the rig keeps updated.
type (
	LeftEye  struct{}
	RightEye struct{}
)

var (
	LeftEyeComponent  = component.New[LeftEye]()
	RightEyeComponent = component.New[RightEye]()
)

// SBSRig drives side-by-side stereo output from one logical camera
// position. The eye cameras are offset half the gap to either side; a
// deactivated rig collapses both eyes onto the rig position so the two
// halves show the same picture.
type SBSRig struct {
	Gap    float64
	Active bool
}

// SBSRigComponent is the shared handle for stereo rigs.
var SBSRigComponent = component.New[SBSRig]()

// NewSBSRig creates an active rig with the given eye gap.
func NewSBSRig(gap float64) *SBSRig {
	return &SBSRig{Gap: gap, Active: true}
}

// SBSSystem copies the rig transform onto the eye cameras every frame,
// applying the eye offsets. It expects one rig and one entity per eye
// marker; extra eyes are updated the same way.
type SBSSystem struct{}

// NewSBSSystem creates a stereo rig system.
func NewSBSSystem() *SBSSystem {
	return &SBSSystem{}
}

func (s *SBSSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, SBSRigComponent, TransformComponent, func(_ ecs.Entity, rig *SBSRig, tr *Transform) {
		gap := rig.Gap
		if !rig.Active {
			gap = 0
		}
		ecs.ForEach2(w, LeftEyeComponent, TransformComponent, func(_ ecs.Entity, _ *LeftEye, eye *Transform) {
			eye.X = tr.X - gap/2
			eye.Y = tr.Y
		})
		ecs.ForEach2(w, RightEyeComponent, TransformComponent, func(_ ecs.Entity, _ *RightEye, eye *Transform) {
			eye.X = tr.X + gap/2
			eye.Y = tr.Y
		})
	})
}
