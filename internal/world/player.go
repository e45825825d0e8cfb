package world

import "github.com/vovakirdan/orchard/internal/core"

// Player is a named agent on the board. Names are unique within a World.
type Player struct {
	name     string
	label    rune
	location core.Coord
	score    int
	move     core.Direction // Pending move for the next tick
	lastMove core.Direction // Move consumed by the latest tick
}

// Name returns the player's unique name.
func (p *Player) Name() string {
	return p.name
}

// Label returns the single character used to draw the player.
func (p *Player) Label() rune {
	return p.label
}

// Location returns the player's current cell.
func (p *Player) Location() core.Coord {
	return p.location
}

// Score returns the number of apples the player has eaten.
func (p *Player) Score() int {
	return p.score
}

// SetMove sets the move to attempt on the next tick. DirNone clears it.
func (p *Player) SetMove(d core.Direction) {
	p.move = d
}

// PendingMove returns the move queued for the next tick.
func (p *Player) PendingMove() core.Direction {
	return p.move
}

// LastMove returns the move the latest tick consumed, whether or not it
// was accepted.
func (p *Player) LastMove() core.Direction {
	return p.lastMove
}
