package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/orchard/internal/bot"
	"github.com/vovakirdan/orchard/internal/config"
	"github.com/vovakirdan/orchard/internal/heuristic"
	"github.com/vovakirdan/orchard/internal/registry"
	"github.com/vovakirdan/orchard/internal/world"
)

// ResolveSeed returns seed, or a time-based seed when seed is 0.
func ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// FromConfig builds a world and its bots from cfg. Bots are registered in
// config order, then the human. Each randomized strategy gets its own source
// derived from rng, so a seeded rng reproduces the whole run.
func FromConfig(cfg config.ArenaConfig, rng *rand.Rand, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w, err := world.New(world.Config{
		Width:  cfg.Board.Width,
		Height: cfg.Board.Height,
		Apples: cfg.Board.Apples,
		Walls:  cfg.Board.Walls,
	}, rng)
	if err != nil {
		return nil, fmt.Errorf("sim: build world: %w", err)
	}

	distances := make(map[string]string, len(cfg.Players))
	bots := make([]*bot.Bot, 0, len(cfg.Players))
	for _, pc := range cfg.Players {
		dist, err := heuristic.Parse(pc.Distance)
		if err != nil {
			return nil, fmt.Errorf("sim: player %q: %w", pc.Name, err)
		}
		strategy, err := registry.Create(pc.Strategy, registry.Options{
			Distance: dist,
			Rand:     rand.New(rand.NewSource(rng.Int63())),
		})
		if err != nil {
			return nil, fmt.Errorf("sim: player %q: %w", pc.Name, err)
		}

		p, err := w.Register(pc.Name)
		if err != nil {
			return nil, fmt.Errorf("sim: register %q: %w", pc.Name, err)
		}
		bots = append(bots, bot.New(p, pc.Strategy, strategy))
		distances[pc.Name] = dist.String()
	}

	base := []Option{
		WithMaxTicks(cfg.MaxTicks),
		WithTargetScore(cfg.TargetScore),
	}
	if cfg.Human != "" {
		p, err := w.Register(cfg.Human)
		if err != nil {
			return nil, fmt.Errorf("sim: register human %q: %w", cfg.Human, err)
		}
		base = append(base, WithHuman(p))
	}

	d := New(w, bots, append(base, opts...)...)
	d.distances = distances
	return d, nil
}
