package input

import (
	"fmt"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// Keymap files bind keys to action names:
//
//	bindings:
//	  - {key: W, trigger: held, action: move_up}
//	  - {key: Escape, action: exit}
//
// Trigger is one of down, up, held and defaults to down. Key names follow
// Ebitengine's key naming (A, Space, ArrowUp, ShiftLeft, ...), matched
// case-insensitively.

type keymapFile struct {
	Bindings []keymapEntry `yaml:"bindings"`
}

type keymapEntry struct {
	Key     string `yaml:"key"`
	Trigger string `yaml:"trigger"`
	Action  string `yaml:"action"`
}

// keyByName is built once from Ebitengine's own key names.
var keyByName = func() map[string]ebiten.Key {
	m := make(map[string]ebiten.Key)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		name := k.String()
		if name == "" {
			continue
		}
		m[strings.ToLower(name)] = k
	}
	return m
}()

// ParseKey resolves an Ebitengine key name.
func ParseKey(name string) (ebiten.Key, error) {
	k, ok := keyByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("input: unknown key %q", name)
	}
	return k, nil
}

func parseTrigger(name string) (TriggerKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "down":
		return Down, nil
	case "up":
		return Up, nil
	case "held":
		return Held, nil
	default:
		return 0, fmt.Errorf("input: unknown trigger %q", name)
	}
}

// ParseKeymap parses a YAML keymap into string-action bindings.
func ParseKeymap(data []byte) ([]Binding[string], error) {
	var file keymapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("input: parse keymap: %w", err)
	}
	bindings := make([]Binding[string], 0, len(file.Bindings))
	for i, entry := range file.Bindings {
		if entry.Action == "" {
			return nil, fmt.Errorf("input: binding %d has no action", i)
		}
		key, err := ParseKey(entry.Key)
		if err != nil {
			return nil, fmt.Errorf("input: binding %d: %w", i, err)
		}
		kind, err := parseTrigger(entry.Trigger)
		if err != nil {
			return nil, fmt.Errorf("input: binding %d: %w", i, err)
		}
		bindings = append(bindings, Binding[string]{
			Trigger: Trigger{Kind: kind, Key: key},
			Action:  entry.Action,
		})
	}
	return bindings, nil
}

// LoadKeymap reads and parses a YAML keymap file.
func LoadKeymap(path string) ([]Binding[string], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("input: read keymap: %w", err)
	}
	return ParseKeymap(data)
}
