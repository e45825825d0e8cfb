package sim

import (
	"sort"
	"time"

	"github.com/vovakirdan/orchard/internal/core"
	"github.com/vovakirdan/orchard/internal/storage"
)

// PlayerStats is a per-player summary of a run so far.
type PlayerStats struct {
	Name         string
	Label        rune
	Strategy     string
	Distance     string
	Score        int
	LastMove     core.Direction
	Decisions    int
	MeanDecision time.Duration
}

// Stats returns one entry per player in registration order.
func (d *Driver) Stats() []PlayerStats {
	byName := make(map[string]int, len(d.bots))
	for i, b := range d.bots {
		byName[b.Player().Name()] = i
	}

	players := d.world.Players()
	out := make([]PlayerStats, 0, len(players))
	for _, p := range players {
		st := PlayerStats{
			Name:     p.Name(),
			Label:    p.Label(),
			Score:    p.Score(),
			LastMove: p.LastMove(),
			Distance: d.distances[p.Name()],
		}
		if i, ok := byName[p.Name()]; ok {
			b := d.bots[i]
			st.Strategy = b.StrategyID()
			st.Decisions = b.Decisions()
			st.MeanDecision = b.MeanDecisionTime()
		} else if p == d.human {
			st.Strategy = HumanStrategy
		}
		out = append(out, st)
	}
	return out
}

// Leaders returns the stats sorted by score, highest first. Equal scores keep
// registration order.
func (d *Driver) Leaders() []PlayerStats {
	stats := d.Stats()
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Score > stats[j].Score
	})
	return stats
}

// Record converts the current state into a ledger entry.
func (d *Driver) Record(seed int64) storage.Run {
	w := d.world
	run := storage.Run{
		Width:  w.Width(),
		Height: w.Height(),
		Apples: w.AppleCount(),
		Walls:  len(w.Walls()),
		Seed:   seed,
		Ticks:  int(w.Ticks()),
	}
	for _, st := range d.Stats() {
		run.Results = append(run.Results, storage.Result{
			Player:         st.Name,
			Strategy:       st.Strategy,
			Distance:       st.Distance,
			Score:          st.Score,
			Decisions:      st.Decisions,
			MeanDecisionUS: float64(st.MeanDecision) / float64(time.Microsecond),
		})
	}
	return run
}
