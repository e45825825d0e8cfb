package bot

import (
	"fmt"

	"github.com/vovakirdan/orchard/internal/core"
	"github.com/vovakirdan/orchard/internal/world"
)

// PlanState is where a search strategy is in its plan lifecycle.
type PlanState int

const (
	// PlanNone means there is no path to follow: nothing planned yet, no
	// reachable apple, or the path ran out.
	PlanNone PlanState = iota
	// PlanExecuting means a path is being followed.
	PlanExecuting
)

// String returns a short label for the state.
func (s PlanState) String() string {
	switch s {
	case PlanNone:
		return "no plan"
	case PlanExecuting:
		return "executing"
	default:
		return "unknown"
	}
}

// Order selects how the search frontier is consumed.
type Order int

const (
	BreadthFirst Order = iota // FIFO frontier, shortest paths
	DepthFirst                // LIFO frontier, first apple found
)

// Search plans a path to an apple and follows it one cell per tick.
// It searches again only when the apple set differs from the one it
// planned against.
type Search struct {
	order Order

	snapshot map[core.Coord]struct{}
	path     []core.Coord // Goal first, next cell last
	state    PlanState
	searches int
}

// NewBreadthFirst creates a strategy that walks shortest paths.
func NewBreadthFirst() *Search {
	return &Search{order: BreadthFirst}
}

// NewDepthFirst creates a strategy that walks the first path a depth-first
// search stumbles on. It is deliberately not shortest.
func NewDepthFirst() *Search {
	return &Search{order: DepthFirst}
}

// Title returns the display name.
func (s *Search) Title() string {
	if s.order == DepthFirst {
		return "Depth-first search"
	}
	return "Breadth-first search"
}

// State returns the plan lifecycle state.
func (s *Search) State() PlanState {
	return s.state
}

// Searches returns how many times a search ran.
func (s *Search) Searches() int {
	return s.searches
}

// Path returns a copy of the remaining plan, goal first.
func (s *Search) Path() []core.Coord {
	out := make([]core.Coord, len(s.path))
	copy(out, s.path)
	return out
}

// Decide returns the next step of the plan, re-planning if the apples moved.
func (s *Search) Decide(w *world.World, self *world.Player) (core.Direction, error) {
	loc := self.Location()

	if !w.ApplesMatch(s.snapshot) {
		s.snapshot = w.AppleSnapshot()
		s.path = FindPath(w, loc, s.order)
		s.searches++
	}

	if n := len(s.path); n > 0 && s.path[n-1] == loc {
		s.path = s.path[:n-1]
	}
	if len(s.path) == 0 {
		s.state = PlanNone
		return core.DirNone, nil
	}
	s.state = PlanExecuting

	next := s.path[len(s.path)-1]
	move, err := core.DirectionOf(next.Sub(loc))
	if err != nil {
		return core.DirNone, fmt.Errorf("bot: plan step %s -> %s: %w", loc, next, err)
	}
	return move, nil
}

// node is one entry of the search arena. parent indexes the arena; -1
// marks the start.
type node struct {
	loc    core.Coord
	parent int
}

// FindPath searches from start for an apple. Walls and off-board cells are
// impassable; players are not obstacles. The first apple discovered wins.
// The path runs from the apple back to start inclusive, or is nil when no
// apple is reachable.
func FindPath(w *world.World, start core.Coord, order Order) []core.Coord {
	arena := []node{{loc: start, parent: -1}}
	visited := map[core.Coord]bool{start: true}
	frontier := []int{0}

	for len(frontier) > 0 {
		var cur int
		if order == DepthFirst {
			cur = frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]
		} else {
			cur = frontier[0]
			frontier = frontier[1:]
		}

		from := arena[cur].loc
		for _, d := range core.Directions {
			next := from.Step(d)
			if !w.ContainsLocation(next) || w.IsWall(next) || visited[next] {
				continue
			}
			visited[next] = true
			arena = append(arena, node{loc: next, parent: cur})

			if w.HasApple(next) {
				return tracePath(arena, len(arena)-1)
			}
			frontier = append(frontier, len(arena)-1)
		}
	}
	return nil
}

// tracePath walks parent indices from the goal back to the start.
func tracePath(arena []node, goal int) []core.Coord {
	var path []core.Coord
	for i := goal; i >= 0; i = arena[i].parent {
		path = append(path, arena[i].loc)
	}
	return path
}
