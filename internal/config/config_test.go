package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var embedded ArenaConfig
	if err := yaml.Unmarshal(defaultArenaYAML, &embedded); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}

	hard := DefaultArenaConfig()
	if embedded.Board != hard.Board {
		t.Errorf("embedded board = %+v, hardcoded = %+v", embedded.Board, hard.Board)
	}
	if embedded.Human != hard.Human || embedded.TickRate != hard.TickRate {
		t.Errorf("embedded human/tick_rate = %q/%d, hardcoded = %q/%d",
			embedded.Human, embedded.TickRate, hard.Human, hard.TickRate)
	}
	if len(embedded.Players) != len(hard.Players) {
		t.Fatalf("embedded has %d players, hardcoded %d", len(embedded.Players), len(hard.Players))
	}
	for i := range hard.Players {
		if embedded.Players[i] != hard.Players[i] {
			t.Errorf("player %d: embedded %+v, hardcoded %+v", i, embedded.Players[i], hard.Players[i])
		}
	}

	if err := embedded.Validate(); err != nil {
		t.Errorf("embedded default is invalid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	data := []byte(`
board: {width: 8, height: 6, apples: 3, walls: 4}
seed: 42
tick_rate: 5
max_ticks: 100
players:
  - {name: A, strategy: bfs}
  - {name: B, strategy: greedy, distance: manhattan}
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Board != (BoardConfig{Width: 8, Height: 6, Apples: 3, Walls: 4}) {
		t.Errorf("Board = %+v", cfg.Board)
	}
	if cfg.Seed != 42 || cfg.MaxTicks != 100 || cfg.Human != "" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if len(cfg.Players) != 2 || cfg.Players[1].Distance != "manhattan" {
		t.Errorf("Players = %+v", cfg.Players)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() should fail for a missing custom path")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() should fail for malformed YAML")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Encode(DefaultArenaConfig())
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "arena.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Board != DefaultArenaConfig().Board || len(cfg.Players) != 8 {
		t.Errorf("round trip lost data: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	valid := func() ArenaConfig {
		return ArenaConfig{
			Board:    BoardConfig{Width: 4, Height: 4, Apples: 4, Walls: 4},
			TickRate: 10,
			Human:    "H",
			Players:  []PlayerConfig{{Name: "A", Strategy: "bfs"}, {Name: "B", Strategy: "greedy", Distance: "manhattan"}},
		}
	}

	tests := []struct {
		name   string
		mutate func(*ArenaConfig)
		ok     bool
	}{
		{"valid", func(*ArenaConfig) {}, true},
		{"exactly full", func(c *ArenaConfig) { c.Board.Apples = 7; c.Board.Walls = 6 }, true},
		{"overfull", func(c *ArenaConfig) { c.Board.Apples = 8; c.Board.Walls = 6 }, false},
		{"zero width", func(c *ArenaConfig) { c.Board.Width = 0 }, false},
		{"negative walls", func(c *ArenaConfig) { c.Board.Walls = -1 }, false},
		{"zero tick rate", func(c *ArenaConfig) { c.TickRate = 0 }, false},
		{"negative max ticks", func(c *ArenaConfig) { c.MaxTicks = -1 }, false},
		{"duplicate bot names", func(c *ArenaConfig) { c.Players[1].Name = "A" }, false},
		{"bot named like human", func(c *ArenaConfig) { c.Players[0].Name = "H" }, false},
		{"empty name", func(c *ArenaConfig) { c.Players[0].Name = "" }, false},
		{"missing strategy", func(c *ArenaConfig) { c.Players[0].Strategy = "" }, false},
		{"unknown distance", func(c *ArenaConfig) { c.Players[0].Distance = "taxicab" }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	for _, preset := range Presets() {
		t.Run(string(preset), func(t *testing.T) {
			cfg := DefaultArenaConfig()
			if err := ApplyPreset(&cfg, preset); err != nil {
				t.Fatalf("ApplyPreset() failed: %v", err)
			}
			want, _ := BoardForPreset(preset)
			if cfg.Board != want {
				t.Errorf("Board = %+v, expected %+v", cfg.Board, want)
			}
			if len(cfg.Players) != len(DefaultArenaConfig().Players) {
				t.Error("preset should not change players")
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %s produces an invalid arena: %v", preset, err)
			}
		})
	}

	cfg := DefaultArenaConfig()
	if err := ApplyPreset(&cfg, ""); err != nil || cfg.Board != DefaultArenaConfig().Board {
		t.Error("empty preset should be a no-op")
	}
	if err := ApplyPreset(&cfg, "huge"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ApplyPreset(huge) = %v, expected ErrInvalidConfig", err)
	}
}
