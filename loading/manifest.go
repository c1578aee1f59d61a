package loading

import (
	"fmt"
	"image"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Manifest lists a batch of assets by name:
//
//	assets:
//	  player: images/player.png
//	  tiles:  images/tiles.png
type Manifest struct {
	Assets map[string]string `yaml:"assets"`
}

// ParseManifest parses a YAML manifest.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("loading: parse manifest: %w", err)
	}
	if len(m.Assets) == 0 {
		return Manifest{}, fmt.Errorf("loading: manifest lists no assets")
	}
	return m, nil
}

// LoadManifest reads and parses a YAML manifest file.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("loading: read manifest: %w", err)
	}
	return ParseManifest(data)
}

// Slots builds one slot per manifest entry, in stable name order. assign
// receives the asset name together with the decoded image.
func (m Manifest) Slots(assign func(name string, img image.Image)) []Slot {
	names := make([]string, 0, len(m.Assets))
	for name := range m.Assets {
		names = append(names, name)
	}
	sort.Strings(names)

	slots := make([]Slot, 0, len(names))
	for _, name := range names {
		name := name
		slots = append(slots, Slot{
			Name: name,
			Path: m.Assets[name],
			Assign: func(img image.Image) {
				if assign != nil {
					assign(name, img)
				}
			},
		})
	}
	return slots
}
