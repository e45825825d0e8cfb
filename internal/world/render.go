package world

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/orchard/internal/core"
)

// Board glyphs used by the text rendering.
const (
	AppleRune = '*'
	WallRune  = '#'
	BlankRune = ' '
)

// PlayerState is a read-only copy of one player.
type PlayerState struct {
	Name     string
	Label    rune
	Location core.Coord
	Score    int
	LastMove core.Direction
}

// Snapshot captures the board after a tick for renderers and tests.
type Snapshot struct {
	Tick    uint64
	Width   int
	Height  int
	Apples  []core.Coord
	Walls   []core.Coord
	Players []PlayerState // Registration order
}

// Snapshot returns a structured copy of the current board.
func (w *World) Snapshot() Snapshot {
	players := make([]PlayerState, len(w.players))
	for i, p := range w.players {
		players[i] = PlayerState{
			Name:     p.name,
			Label:    p.label,
			Location: p.location,
			Score:    p.score,
			LastMove: p.lastMove,
		}
	}
	return Snapshot{
		Tick:    w.ticks,
		Width:   w.width,
		Height:  w.height,
		Apples:  w.Apples(),
		Walls:   w.Walls(),
		Players: players,
	}
}

// Grid returns the board as rows of glyphs.
func (s Snapshot) Grid() [][]rune {
	grid := make([][]rune, s.Height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(string(BlankRune), s.Width))
	}
	for _, c := range s.Apples {
		grid[c.Y][c.X] = AppleRune
	}
	for _, c := range s.Walls {
		grid[c.Y][c.X] = WallRune
	}
	for _, p := range s.Players {
		grid[p.Location.Y][p.Location.X] = p.Label
	}
	return grid
}

// ScoreLine returns "name: score" pairs joined by " || ".
func (s Snapshot) ScoreLine() string {
	parts := make([]string, len(s.Players))
	for i, p := range s.Players {
		parts[i] = fmt.Sprintf("%s: %d", p.Name, p.Score)
	}
	return strings.Join(parts, " || ")
}

// MoveLine returns "name: move" pairs joined by " || ".
func (s Snapshot) MoveLine() string {
	parts := make([]string, len(s.Players))
	for i, p := range s.Players {
		parts[i] = fmt.Sprintf("%s: %s", p.Name, p.LastMove)
	}
	return strings.Join(parts, " || ")
}

// String renders the board as text followed by the score line.
func (w *World) String() string {
	snap := w.Snapshot()
	var b strings.Builder
	for _, row := range snap.Grid() {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	b.WriteString(snap.ScoreLine())
	return b.String()
}
