// Package config provides YAML-based arena configuration loading and
// board presets for the orchard simulation.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/orchard/internal/heuristic"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid arena")

// ArenaConfig describes one simulation: the board, who plays on it and when
// the run stops.
type ArenaConfig struct {
	Board       BoardConfig    `yaml:"board"`
	Seed        int64          `yaml:"seed"`         // 0 = time-based
	TickRate    int            `yaml:"tick_rate"`    // Ticks per second in the UI
	MaxTicks    int            `yaml:"max_ticks"`    // 0 = unlimited
	TargetScore int            `yaml:"target_score"` // 0 = disabled
	Human       string         `yaml:"human"`        // Empty = no human player
	Players     []PlayerConfig `yaml:"players"`
}

// BoardConfig defines the grid and its initial contents.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Apples int `yaml:"apples"`
	Walls  int `yaml:"walls"`
}

// PlayerConfig binds a player name to a strategy.
type PlayerConfig struct {
	Name     string `yaml:"name"`
	Strategy string `yaml:"strategy"`
	Distance string `yaml:"distance"` // "euclidean" (default) or "manhattan"
}

// Cells returns the number of cells on the board.
func (b BoardConfig) Cells() int {
	return b.Width * b.Height
}

// PlayerCount returns the number of players including the human.
func (c ArenaConfig) PlayerCount() int {
	n := len(c.Players)
	if c.Human != "" {
		n++
	}
	return n
}

// Validate rejects boards that cannot hold everything placed on them and
// player lists with missing or duplicate names.
func (c ArenaConfig) Validate() error {
	b := c.Board
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: board %dx%d", ErrInvalidConfig, b.Width, b.Height)
	}
	if b.Apples < 0 || b.Walls < 0 {
		return fmt.Errorf("%w: negative apple or wall count", ErrInvalidConfig)
	}
	if need := b.Apples + b.Walls + c.PlayerCount(); need > b.Cells() {
		return fmt.Errorf("%w: %d apples, %d walls and %d players do not fit on %d cells",
			ErrInvalidConfig, b.Apples, b.Walls, c.PlayerCount(), b.Cells())
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive", ErrInvalidConfig)
	}
	if c.MaxTicks < 0 || c.TargetScore < 0 {
		return fmt.Errorf("%w: negative stop condition", ErrInvalidConfig)
	}

	seen := make(map[string]bool, c.PlayerCount())
	if c.Human != "" {
		seen[c.Human] = true
	}
	for i, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("%w: player %d has no name", ErrInvalidConfig, i)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate player name %q", ErrInvalidConfig, p.Name)
		}
		seen[p.Name] = true

		if p.Strategy == "" {
			return fmt.Errorf("%w: player %q has no strategy", ErrInvalidConfig, p.Name)
		}
		if _, err := heuristic.Parse(p.Distance); err != nil {
			return fmt.Errorf("%w: player %q: %v", ErrInvalidConfig, p.Name, err)
		}
	}
	return nil
}
