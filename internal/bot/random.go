package bot

import (
	"math/rand"

	"github.com/vovakirdan/orchard/internal/core"
	"github.com/vovakirdan/orchard/internal/world"
)

// Random picks one of the four directions uniformly every tick.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random walker drawing from rng.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// Title returns the display name.
func (r *Random) Title() string {
	return "Random walk"
}

// Decide returns a uniformly random direction.
func (r *Random) Decide(*world.World, *world.Player) (core.Direction, error) {
	return core.Directions[r.rng.Intn(len(core.Directions))], nil
}
