package camera

import (
	"image"
	"math"
	"testing"

	"github.com/hollowmoor/ebitools/ecs"
)

const frame = 1.0 / 60.0

func setupCamera(t *testing.T, ctrl *Controller, camX, camY float64) (*ecs.World, *Transform, *Transform) {
	t.Helper()
	w := ecs.NewWorld()

	target := w.CreateEntity()
	targetTr := &Transform{}
	if err := ecs.Add(w, target, TransformComponent, targetTr); err != nil {
		t.Fatal(err)
	}

	cam := w.CreateEntity()
	camTr := &Transform{X: camX, Y: camY}
	ctrl.Target = target
	if err := ecs.Add(w, cam, TransformComponent, camTr); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, cam, ControllerComponent, ctrl); err != nil {
		t.Fatal(err)
	}

	w.AddSystem(NewSystem())
	return w, camTr, targetTr
}

func TestFollowDeadZone(t *testing.T) {
	cases := []struct {
		name     string
		targetX  float64
		targetY  float64
		wantX    float64
		wantY    float64
	}{
		{"inside_zone_no_move", 50, -80, 0, 0},
		{"right_of_zone", 150, 0, 50, 0},
		{"left_of_zone", -250, 0, -150, 0},
		{"below_zone", 0, -300, 0, -200},
		{"diagonal", 400, 400, 300, 300},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctrl := NewFollow(ecs.Entity{}, 200)
			w, camTr, targetTr := setupCamera(t, ctrl, 0, 0)
			targetTr.X = c.targetX
			targetTr.Y = c.targetY

			w.Update(frame)

			if camTr.X != c.wantX || camTr.Y != c.wantY {
				t.Fatalf("camera at (%v, %v), want (%v, %v)", camTr.X, camTr.Y, c.wantX, c.wantY)
			}
		})
	}
}

func TestMoveApproachesLinearly(t *testing.T) {
	ctrl := NewMove(ecs.Entity{}, 60)
	w, camTr, targetTr := setupCamera(t, ctrl, 0, 0)
	targetTr.X = 10

	// 60 units/s over one frame covers exactly 1 unit.
	w.Update(frame)
	if math.Abs(camTr.X-1) > 1e-9 {
		t.Fatalf("expected one step of 1 unit, got %v", camTr.X)
	}
	if ctrl.AtTarget {
		t.Fatal("camera must not report at-target while approaching")
	}

	for i := 0; i < 20; i++ {
		w.Update(frame)
	}
	if camTr.X != 10 || camTr.Y != 0 {
		t.Fatalf("camera must snap onto the target, got (%v, %v)", camTr.X, camTr.Y)
	}
	if !ctrl.AtTarget {
		t.Fatal("camera must report at-target after arriving")
	}

	// Holding position at the target does not overshoot.
	w.Update(frame)
	if camTr.X != 10 {
		t.Fatalf("camera drifted off the target to %v", camTr.X)
	}
}

func TestControllerSkipsTargetWithoutTransform(t *testing.T) {
	w := ecs.NewWorld()
	bare := w.CreateEntity()

	cam := w.CreateEntity()
	camTr := &Transform{X: 5, Y: 5}
	if err := ecs.Add(w, cam, TransformComponent, camTr); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, cam, ControllerComponent, NewMove(bare, 100)); err != nil {
		t.Fatal(err)
	}

	w.AddSystem(NewSystem())
	w.Update(frame)

	if camTr.X != 5 || camTr.Y != 5 {
		t.Fatalf("camera must stay put without a target transform, got (%v, %v)", camTr.X, camTr.Y)
	}
}

func TestSplitScreenLayout(t *testing.T) {
	cases := []struct {
		name      string
		w, h      int
		wantLeft  image.Rectangle
		wantRight image.Rectangle
	}{
		{"even_width", 640, 480, image.Rect(0, 0, 320, 480), image.Rect(320, 0, 640, 480)},
		{"odd_width", 641, 480, image.Rect(0, 0, 320, 480), image.Rect(320, 0, 641, 480)},
		{"resize", 200, 100, image.Rect(0, 0, 100, 100), image.Rect(100, 0, 200, 100)},
	}

	s := NewSplitScreen(1, 1)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s.Layout(c.w, c.h)
			if s.Left() != c.wantLeft {
				t.Fatalf("left viewport %v, want %v", s.Left(), c.wantLeft)
			}
			if s.Right() != c.wantRight {
				t.Fatalf("right viewport %v, want %v", s.Right(), c.wantRight)
			}
			if s.Left().Intersect(s.Right()) != (image.Rectangle{}) {
				t.Fatal("viewports must not overlap")
			}
			union := s.Left().Union(s.Right())
			if union != image.Rect(0, 0, c.w, c.h) {
				t.Fatalf("viewports must cover the screen, union %v", union)
			}
		})
	}
}

func TestSBSRigOffsetsEyes(t *testing.T) {
	w := ecs.NewWorld()

	rig := w.CreateEntity()
	rigState := NewSBSRig(10)
	rigTr := &Transform{X: 100, Y: 50}
	if err := ecs.Add(w, rig, SBSRigComponent, rigState); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, rig, TransformComponent, rigTr); err != nil {
		t.Fatal(err)
	}

	left := w.CreateEntity()
	leftTr := &Transform{}
	if err := ecs.Add(w, left, LeftEyeComponent, &LeftEye{}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, left, TransformComponent, leftTr); err != nil {
		t.Fatal(err)
	}

	right := w.CreateEntity()
	rightTr := &Transform{}
	if err := ecs.Add(w, right, RightEyeComponent, &RightEye{}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, right, TransformComponent, rightTr); err != nil {
		t.Fatal(err)
	}

	w.AddSystem(NewSBSSystem())
	w.Update(frame)

	if leftTr.X != 95 || leftTr.Y != 50 {
		t.Fatalf("left eye at (%v, %v), want (95, 50)", leftTr.X, leftTr.Y)
	}
	if rightTr.X != 105 || rightTr.Y != 50 {
		t.Fatalf("right eye at (%v, %v), want (105, 50)", rightTr.X, rightTr.Y)
	}

	// Deactivating collapses both eyes onto the rig.
	rigState.Active = false
	rigTr.X = 200
	w.Update(frame)
	if leftTr.X != 200 || rightTr.X != 200 {
		t.Fatalf("deactivated rig must collapse eyes, got left %v right %v", leftTr.X, rightTr.X)
	}
}
