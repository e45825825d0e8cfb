package config

import (
	"fmt"
	"sort"
)

// BoardPreset represents a named board size.
type BoardPreset string

const (
	PresetSmall  BoardPreset = "small"
	PresetMedium BoardPreset = "medium"
	PresetLarge  BoardPreset = "large"
)

// presets only touch the board; players and stop conditions stay as loaded.
var presets = map[BoardPreset]BoardConfig{
	PresetSmall:  {Width: 16, Height: 10, Apples: 12, Walls: 24},
	PresetMedium: {Width: 30, Height: 20, Apples: 50, Walls: 128},
	PresetLarge:  {Width: 60, Height: 30, Apples: 150, Walls: 420},
}

// Presets returns the preset names, sorted.
func Presets() []BoardPreset {
	out := make([]BoardPreset, 0, len(presets))
	for p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BoardForPreset returns the board of a preset.
func BoardForPreset(preset BoardPreset) (BoardConfig, bool) {
	b, ok := presets[preset]
	return b, ok
}

// ApplyPreset replaces the board dimensions and counts with the preset's.
// An empty preset leaves cfg unchanged.
func ApplyPreset(cfg *ArenaConfig, preset BoardPreset) error {
	if preset == "" {
		return nil
	}
	b, ok := presets[preset]
	if !ok {
		return fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, preset)
	}
	cfg.Board = b
	return nil
}
