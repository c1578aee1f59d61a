package loading

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	// Decoders for the formats the generic pipeline accepts.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/hajimehoshi/ebiten/v2"
)

// DecodeImageFile reads and decodes an image from disk. It tries the path
// as given, then under assets/, then by base name, so manifests keep
// working from the repo root and from a packaged build.
func DecodeImageFile(path string) (image.Image, error) {
	tried := []string{path, filepath.Join("assets", path), filepath.Base(path)}
	var firstErr error
	for _, p := range tried {
		b, err := os.ReadFile(p)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		img, _, err := image.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", p, err)
		}
		return img, nil
	}
	return nil, fmt.Errorf("open image %s: %w", path, firstErr)
}

// EbitenSlot builds a slot whose assignment uploads the decoded image
// into an *ebiten.Image destination. The upload happens on the update
// goroutine during publish, which is where Ebitengine expects it.
func EbitenSlot(name, path string, dst **ebiten.Image) Slot {
	return Slot{
		Name: name,
		Path: path,
		Assign: func(img image.Image) {
			*dst = ebiten.NewImageFromImage(img)
		},
	}
}
