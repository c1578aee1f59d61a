package loading

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Progress reports loading progress for a UI.
type Progress interface {
	Progress() (loaded, total int)
}

// Screen is a minimal loading screen: a centered panel with a title and a
// progress bar. It uses colored nine-slices and the built-in basic font,
// so it works before any asset has finished loading.
type Screen struct {
	ui    *ebitenui.UI
	bar   *widget.ProgressBar
	label *widget.Text
	src   Progress
}

// NewScreen builds a loading screen fed by src (usually the Loader).
func NewScreen(title string, src Progress) *Screen {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	trackImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 255})
	fillImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x88, G: 0xcc, B: 0x88, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	titleText := widget.NewText(
		widget.TextOpts.Text(title, &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	bar := widget.NewProgressBar(
		widget.ProgressBarOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(240, 16),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
		widget.ProgressBarOpts.Images(
			&widget.ProgressBarImage{Idle: trackImg, Hover: trackImg},
			&widget.ProgressBarImage{Idle: fillImg, Hover: fillImg},
		),
		widget.ProgressBarOpts.Values(0, 1, 0),
	)

	label := widget.NewText(
		widget.TextOpts.Text("0 / 0", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(16)),
			widget.RowLayoutOpts.Spacing(8),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionCenter,
		})),
	)
	panel.AddChild(titleText)
	panel.AddChild(bar)
	panel.AddChild(label)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &Screen{
		ui:    &ebitenui.UI{Container: root},
		bar:   bar,
		label: label,
		src:   src,
	}
}

// Update refreshes the progress bar. Call it once per frame while the
// loading state is active.
func (s *Screen) Update() {
	loaded, total := s.src.Progress()
	if total < 1 {
		total = 1
	}
	s.bar.Min = 0
	s.bar.Max = total
	s.bar.SetCurrent(loaded)
	s.label.Label = fmt.Sprintf("%d / %d", loaded, total)
	s.ui.Update()
}

// Draw renders the loading screen.
func (s *Screen) Draw(screen *ebiten.Image) {
	s.ui.Draw(screen)
}
