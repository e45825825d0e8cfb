package world

import "github.com/vovakirdan/orchard/internal/core"

// TickResult describes what a tick changed.
type TickResult struct {
	Moved   []string     // Players that changed cell
	Blocked []string     // Players whose move was rejected
	Eaten   []core.Coord // Apples consumed this tick
	Spawned []core.Coord // Replacement apples
}

type moveIntent struct {
	player *Player
	dest   core.Coord
}

// Tick resolves every pending move at once.
//
// A move is rejected when its destination is off the board, a wall, or the
// cell any player stood on when the tick started. Moves that survive those
// checks but share a destination are all rejected, so the outcome does not
// depend on player order and no two players ever share a cell. Pending moves
// are cleared either way. Each eaten apple is replaced after all moves apply.
func (w *World) Tick() TickResult {
	var res TickResult

	intents := make([]moveIntent, 0, len(w.players))
	claims := make(map[core.Coord]int, len(w.players))

	for _, p := range w.players {
		move := p.move
		p.move = core.DirNone
		p.lastMove = move
		if move == core.DirNone {
			continue
		}

		dest := p.location.Step(move)
		if !w.ContainsLocation(dest) || w.IsWall(dest) {
			res.Blocked = append(res.Blocked, p.name)
			continue
		}
		if _, taken := w.occupied[dest]; taken {
			res.Blocked = append(res.Blocked, p.name)
			continue
		}

		intents = append(intents, moveIntent{player: p, dest: dest})
		claims[dest]++
	}

	for _, in := range intents {
		p := in.player
		if claims[in.dest] > 1 {
			res.Blocked = append(res.Blocked, p.name)
			continue
		}

		delete(w.occupied, p.location)
		p.location = in.dest
		w.occupied[in.dest] = p
		res.Moved = append(res.Moved, p.name)

		if _, ok := w.apples[in.dest]; ok {
			delete(w.apples, in.dest)
			p.score++
			res.Eaten = append(res.Eaten, in.dest)
		}
	}

	// Every eater vacated its old cell, so there is always room for the
	// replacements.
	for range res.Eaten {
		if c, err := w.spawnApple(); err == nil {
			res.Spawned = append(res.Spawned, c)
		}
	}

	w.ticks++
	return res
}
