package sim

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/orchard/internal/bot"
	"github.com/vovakirdan/orchard/internal/config"
	"github.com/vovakirdan/orchard/internal/core"
	"github.com/vovakirdan/orchard/internal/heuristic"
	"github.com/vovakirdan/orchard/internal/registry"
	"github.com/vovakirdan/orchard/internal/world"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func mixedArena() config.ArenaConfig {
	return config.ArenaConfig{
		Board:    config.BoardConfig{Width: 14, Height: 10, Apples: 10, Walls: 25},
		TickRate: 10,
		Human:    "C",
		Players: []config.PlayerConfig{
			{Name: "K", Strategy: bot.IDBreadthFirst},
			{Name: "D", Strategy: bot.IDDepthFirst},
			{Name: "U", Strategy: bot.IDGreedy, Distance: "euclidean"},
			{Name: "E", Strategy: bot.IDGreedyInefficient, Distance: "manhattan"},
			{Name: "T", Strategy: bot.IDGreedyRandom},
			{Name: "G", Strategy: bot.IDRandom},
		},
	}
}

func TestDriverInvariantsOverManyTicks(t *testing.T) {
	d, err := FromConfig(mixedArena(), newRand(99))
	if err != nil {
		t.Fatalf("FromConfig() failed: %v", err)
	}
	d.SetHumanMove(core.DirLeft)
	w := d.World()
	apples := w.AppleCount()

	eaten := 0
	for tick := 0; tick < 400; tick++ {
		res, err := d.Step()
		if err != nil {
			t.Fatalf("Step() failed at tick %d: %v", tick, err)
		}
		eaten += len(res.Eaten)

		if w.AppleCount() != apples {
			t.Fatalf("tick %d: apple count %d, expected %d", tick, w.AppleCount(), apples)
		}
		seen := make(map[core.Coord]string)
		total := 0
		for _, p := range w.Players() {
			loc := p.Location()
			if other, dup := seen[loc]; dup {
				t.Fatalf("tick %d: %s and %s share %v", tick, other, p.Name(), loc)
			}
			seen[loc] = p.Name()
			if !w.ContainsLocation(loc) || w.IsWall(loc) || w.HasApple(loc) {
				t.Fatalf("tick %d: %s on an invalid cell %v", tick, p.Name(), loc)
			}
			total += p.Score()
		}
		if total != eaten {
			t.Fatalf("tick %d: scores sum to %d, but %d apples were eaten", tick, total, eaten)
		}
		for _, a := range w.Apples() {
			if w.IsWall(a) {
				t.Fatalf("tick %d: apple on wall %v", tick, a)
			}
		}
	}

	if eaten == 0 {
		t.Error("no apple eaten in 400 ticks")
	}
}

func TestDriverSeededRunsAreReproducible(t *testing.T) {
	run := func() string {
		d, err := FromConfig(mixedArena(), newRand(1234))
		if err != nil {
			t.Fatalf("FromConfig() failed: %v", err)
		}
		for range 200 {
			if _, err := d.Step(); err != nil {
				t.Fatalf("Step() failed: %v", err)
			}
		}
		return d.World().String()
	}

	first, second := run(), run()
	if first != second {
		t.Errorf("seeded runs diverged:\n%s\n---\n%s", first, second)
	}
}

func TestDriverHumanMoveIsSticky(t *testing.T) {
	w := world.NewEmpty(5, 5, newRand(1))
	human, err := w.RegisterAt("C", core.C(0, 2))
	if err != nil {
		t.Fatal(err)
	}
	d := New(w, nil, WithHuman(human))

	d.SetHumanMove(core.DirRight)
	for range 3 {
		if _, err := d.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if human.Location() != core.C(3, 2) {
		t.Errorf("Location() = %v, expected (3,2)", human.Location())
	}
	if human.LastMove() != core.DirRight {
		t.Errorf("LastMove() = %v, expected right", human.LastMove())
	}

	d.SetHumanMove(core.DirNone)
	if _, err := d.Step(); err != nil {
		t.Fatal(err)
	}
	if human.Location() != core.C(3, 2) || human.LastMove() != core.DirNone {
		t.Errorf("human should stand still, at %v last %v", human.Location(), human.LastMove())
	}
}

func TestDriverSetHumanMoveWithoutHuman(t *testing.T) {
	d := New(world.NewEmpty(3, 3, newRand(1)), nil)
	d.SetHumanMove(core.DirUp)
	if d.HumanMove() != core.DirNone {
		t.Error("SetHumanMove() should be ignored without a human")
	}
}

func TestDriverRunStopsAtMaxTicks(t *testing.T) {
	cfg := mixedArena()
	cfg.MaxTicks = 25
	d, err := FromConfig(cfg, newRand(5))
	if err != nil {
		t.Fatal(err)
	}

	calls := 0
	if err := d.Run(context.Background(), 0, func(world.TickResult) { calls++ }); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if d.World().Ticks() != 25 || calls != 25 {
		t.Errorf("ran %d ticks with %d callbacks, expected 25", d.World().Ticks(), calls)
	}
	if d.Running() {
		t.Error("Running() should be false after the tick limit")
	}
}

func TestDriverRunStopsAtTargetScore(t *testing.T) {
	w := world.NewEmpty(5, 1, newRand(3))
	if err := w.PlaceApple(core.C(2, 0)); err != nil {
		t.Fatal(err)
	}
	p, err := w.RegisterAt("K", core.C(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	d := New(w, []*bot.Bot{bot.New(p, bot.IDBreadthFirst, bot.NewBreadthFirst())}, WithTargetScore(1))

	if err := d.Run(context.Background(), 0, nil); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if w.Ticks() != 2 || p.Score() != 1 {
		t.Errorf("stopped after %d ticks with score %d, expected 2 ticks and 1 apple", w.Ticks(), p.Score())
	}
}

func TestDriverRunHonoursCancellation(t *testing.T) {
	d, err := FromConfig(mixedArena(), newRand(8))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	err = d.Run(ctx, 0, func(world.TickResult) {
		calls++
		if calls == 10 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, expected context.Canceled", err)
	}
	if d.World().Ticks() != 10 {
		t.Errorf("Ticks() = %d, expected 10", d.World().Ticks())
	}
}

type broken struct{}

func (broken) Title() string { return "broken" }

func (broken) Decide(*world.World, *world.Player) (core.Direction, error) {
	return core.DirNone, errors.New("no idea")
}

func TestDriverStrategyErrorAbortsStep(t *testing.T) {
	w := world.NewEmpty(5, 5, newRand(2))
	if err := w.PlaceApple(core.C(4, 0)); err != nil {
		t.Fatal(err)
	}
	good, _ := w.RegisterAt("U", core.C(0, 0))
	bad, _ := w.RegisterAt("X", core.C(0, 4))
	d := New(w, []*bot.Bot{
		bot.New(good, bot.IDGreedy, bot.NewSimpleGreedy(heuristic.Manhattan)),
		bot.New(bad, "broken", broken{}),
	})

	if _, err := d.Step(); err == nil {
		t.Fatal("Step() should fail when a strategy fails")
	}
	if w.Ticks() != 0 {
		t.Errorf("Ticks() = %d, expected the tick not to run", w.Ticks())
	}
	if good.PendingMove() != core.DirNone || good.Location() != core.C(0, 0) {
		t.Errorf("good player was touched: pending %v at %v", good.PendingMove(), good.Location())
	}
}

func TestFromConfigErrors(t *testing.T) {
	cfg := mixedArena()
	cfg.Players[0].Strategy = "teleport"
	if _, err := FromConfig(cfg, newRand(1)); !errors.Is(err, registry.ErrUnknownStrategy) {
		t.Errorf("FromConfig() = %v, expected ErrUnknownStrategy", err)
	}

	cfg = mixedArena()
	cfg.Board.Walls = 500
	if _, err := FromConfig(cfg, newRand(1)); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("FromConfig() = %v, expected ErrInvalidConfig", err)
	}
}

func TestDriverStatsAndRecord(t *testing.T) {
	d, err := FromConfig(mixedArena(), newRand(77))
	if err != nil {
		t.Fatal(err)
	}
	for range 30 {
		if _, err := d.Step(); err != nil {
			t.Fatal(err)
		}
	}

	stats := d.Stats()
	if len(stats) != 7 {
		t.Fatalf("Stats() has %d entries, expected 7", len(stats))
	}
	if stats[0].Name != "K" || stats[0].Strategy != bot.IDBreadthFirst || stats[0].Decisions != 30 {
		t.Errorf("first entry = %+v", stats[0])
	}
	if stats[3].Distance != "manhattan" || stats[2].Distance != "euclidean" {
		t.Errorf("distances = %q, %q", stats[2].Distance, stats[3].Distance)
	}
	last := stats[len(stats)-1]
	if last.Name != "C" || last.Strategy != HumanStrategy || last.Decisions != 0 {
		t.Errorf("human entry = %+v", last)
	}

	leaders := d.Leaders()
	for i := 1; i < len(leaders); i++ {
		if leaders[i].Score > leaders[i-1].Score {
			t.Fatalf("Leaders() not sorted: %+v", leaders)
		}
	}

	run := d.Record(77)
	if run.Ticks != 30 || run.Seed != 77 || len(run.Results) != 7 {
		t.Errorf("Record() = %+v", run)
	}
	if run.Width != 14 || run.Height != 10 || run.Apples != 10 || run.Walls != 25 {
		t.Errorf("Record() board = %dx%d, %d apples, %d walls", run.Width, run.Height, run.Apples, run.Walls)
	}
}

func TestResolveSeed(t *testing.T) {
	if ResolveSeed(42) != 42 {
		t.Error("ResolveSeed() should keep an explicit seed")
	}
	if ResolveSeed(0) == 0 {
		t.Error("ResolveSeed(0) should pick a seed")
	}
}
