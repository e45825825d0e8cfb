package bot

import (
	"math/rand"

	"github.com/vovakirdan/orchard/internal/core"
	"github.com/vovakirdan/orchard/internal/heuristic"
	"github.com/vovakirdan/orchard/internal/world"
)

// Greedy walks straight at the closest apple by a distance heuristic.
//
// The three greedy variants differ only in two switches: whether the target
// is cached until the apple set changes, and whether ties between
// distance-reducing moves are broken at random instead of preferring the
// horizontal move.
type Greedy struct {
	title      string
	distance   heuristic.Distance
	cached     bool
	randomTies bool
	rng        *rand.Rand

	snapshot  map[core.Coord]struct{}
	target    core.Coord
	hasTarget bool
}

// NewSimpleGreedy targets the closest apple, re-evaluated only when the
// apple set changes, and moves horizontally before vertically.
func NewSimpleGreedy(distance heuristic.Distance) *Greedy {
	return &Greedy{
		title:    "Greedy",
		distance: distance,
		cached:   true,
	}
}

// NewInefficientGreedy behaves like NewSimpleGreedy but searches for the
// closest apple on every call.
func NewInefficientGreedy(distance heuristic.Distance) *Greedy {
	return &Greedy{
		title:    "Greedy (uncached)",
		distance: distance,
	}
}

// NewNonDeterministicGreedy uses the cached target but picks uniformly among
// the moves that bring it closer.
func NewNonDeterministicGreedy(distance heuristic.Distance, rng *rand.Rand) *Greedy {
	return &Greedy{
		title:      "Greedy (random ties)",
		distance:   distance,
		cached:     true,
		randomTies: true,
		rng:        rng,
	}
}

// Title returns the display name.
func (g *Greedy) Title() string {
	return g.title
}

// Target returns the apple currently aimed at.
func (g *Greedy) Target() (core.Coord, bool) {
	return g.target, g.hasTarget
}

// Decide moves toward the target apple.
func (g *Greedy) Decide(w *world.World, self *world.Player) (core.Direction, error) {
	target, ok := g.targetApple(w, self.Location())
	if !ok {
		return core.DirNone, nil
	}

	moves := approachMoves(target.Sub(self.Location()))
	switch {
	case len(moves) == 0:
		return core.DirNone, nil
	case g.randomTies:
		return moves[g.rng.Intn(len(moves))], nil
	default:
		return moves[0], nil
	}
}

func (g *Greedy) targetApple(w *world.World, from core.Coord) (core.Coord, bool) {
	if g.cached && w.ApplesMatch(g.snapshot) {
		return g.target, g.hasTarget
	}
	if g.cached {
		g.snapshot = w.AppleSnapshot()
	}
	g.target, g.hasTarget = ClosestApple(w, from, g.distance)
	return g.target, g.hasTarget
}

// ClosestApple returns the apple nearest to from. Ties go to the apple that
// comes first in row-major order.
func ClosestApple(w *world.World, from core.Coord, distance heuristic.Distance) (core.Coord, bool) {
	var best core.Coord
	bestDist := 0.0
	found := false
	for _, apple := range w.Apples() {
		d := distance.Between(from, apple)
		if !found || d < bestDist {
			best, bestDist, found = apple, d, true
		}
	}
	return best, found
}

// approachMoves lists the moves that reduce the distance along vector,
// horizontal first.
func approachMoves(vector core.Coord) []core.Direction {
	moves := make([]core.Direction, 0, 2)

	switch {
	case vector.X < 0:
		moves = append(moves, core.DirLeft)
	case vector.X > 0:
		moves = append(moves, core.DirRight)
	}

	switch {
	case vector.Y < 0:
		moves = append(moves, core.DirUp)
	case vector.Y > 0:
		moves = append(moves, core.DirDown)
	}

	return moves
}
