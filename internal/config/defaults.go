package config

import (
	_ "embed"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultArenaConfig returns the hardcoded arena, used when the embedded
// YAML cannot be parsed.
func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		Board: BoardConfig{
			Width:  30,
			Height: 20,
			Apples: 50,
			Walls:  128,
		},
		TickRate: 10,
		Human:    "C",
		Players: []PlayerConfig{
			{Name: "K", Strategy: "bfs", Distance: "euclidean"},
			{Name: "U", Strategy: "greedy", Distance: "euclidean"},
			{Name: "T", Strategy: "greedy_random", Distance: "euclidean"},
			{Name: "E", Strategy: "greedy_inefficient", Distance: "manhattan"},
			{Name: "D", Strategy: "dfs"},
			{Name: "O", Strategy: "bfs", Distance: "manhattan"},
			{Name: "G", Strategy: "random"},
			{Name: "S", Strategy: "greedy", Distance: "manhattan"},
		},
	}
}
