package camera

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// SplitScreen partitions the screen into side-by-side halves, one per
// player. Layout must be called whenever the screen size changes; ebiten
// games usually forward their Layout callback here.
type SplitScreen struct {
	left  image.Rectangle
	right image.Rectangle
}

// NewSplitScreen creates a split screen laid out for the given size.
func NewSplitScreen(width, height int) *SplitScreen {
	s := &SplitScreen{}
	s.Layout(width, height)
	return s
}

// Layout recomputes both viewports for a new screen size. The left
// viewport takes the left half, the right viewport the rest, so odd
// widths lose no column.
func (s *SplitScreen) Layout(width, height int) {
	half := width / 2
	s.left = image.Rect(0, 0, half, height)
	s.right = image.Rect(half, 0, width, height)
}

// Left returns the left viewport in screen coordinates.
func (s *SplitScreen) Left() image.Rectangle {
	return s.left
}

// Right returns the right viewport in screen coordinates.
func (s *SplitScreen) Right() image.Rectangle {
	return s.right
}

// Draw renders both halves. Each callback receives a sub-image clipped
// to its viewport; drawing at the viewport's Min lands at its top-left
// corner.
func (s *SplitScreen) Draw(screen *ebiten.Image, left, right func(dst *ebiten.Image, view image.Rectangle)) {
	if screen == nil {
		return
	}
	if left != nil {
		if sub, ok := screen.SubImage(s.left).(*ebiten.Image); ok {
			left(sub, s.left)
		}
	}
	if right != nil {
		if sub, ok := screen.SubImage(s.right).(*ebiten.Image); ok {
			right(sub, s.right)
		}
	}
}
