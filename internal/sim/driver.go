// Package sim runs the orchard: it asks every bot for a move, applies the
// human's sticky direction and advances the world one tick at a time.
package sim

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/orchard/internal/bot"
	"github.com/vovakirdan/orchard/internal/core"
	"github.com/vovakirdan/orchard/internal/world"
)

// HumanStrategy is the strategy name reported for the human player.
const HumanStrategy = "human"

// Driver owns a world and the bots playing on it.
type Driver struct {
	world *world.World
	bots  []*bot.Bot

	human     *world.Player
	humanMove core.Direction

	targetScore int
	maxTicks    int
	distances   map[string]string

	logger *log.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) {
		d.logger = l
	}
}

// WithHuman marks p as human-controlled. Its move is set by SetHumanMove.
func WithHuman(p *world.Player) Option {
	return func(d *Driver) {
		d.human = p
	}
}

// WithTargetScore stops the run once any player reaches n apples. 0 disables it.
func WithTargetScore(n int) Option {
	return func(d *Driver) {
		d.targetScore = n
	}
}

// WithMaxTicks stops the run after n ticks. 0 disables it.
func WithMaxTicks(n int) Option {
	return func(d *Driver) {
		d.maxTicks = n
	}
}

// New creates a driver for w. bots are consulted in the given order.
func New(w *world.World, bots []*bot.Bot, opts ...Option) *Driver {
	d := &Driver{
		world:     w,
		bots:      bots,
		distances: make(map[string]string),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// World returns the simulated world.
func (d *Driver) World() *world.World {
	return d.world
}

// Bots returns the bots in decision order.
func (d *Driver) Bots() []*bot.Bot {
	return d.bots
}

// Human returns the human player, or nil.
func (d *Driver) Human() *world.Player {
	return d.human
}

// SetHumanMove sets the direction the human keeps moving in until changed.
// It is a no-op without a human player.
func (d *Driver) SetHumanMove(dir core.Direction) {
	if d.human == nil {
		return
	}
	d.humanMove = dir
}

// HumanMove returns the human's sticky direction.
func (d *Driver) HumanMove() core.Direction {
	return d.humanMove
}

// Running reports whether the stop conditions allow another tick.
func (d *Driver) Running() bool {
	if d.maxTicks > 0 && d.world.Ticks() >= uint64(d.maxTicks) {
		return false
	}
	if d.targetScore > 0 {
		for _, p := range d.world.Players() {
			if p.Score() >= d.targetScore {
				return false
			}
		}
	}
	return true
}

// Step collects a move from every bot and advances the world one tick.
// If any strategy fails no move is queued and the world is left untouched.
func (d *Driver) Step() (world.TickResult, error) {
	moves := make([]core.Direction, len(d.bots))
	for i, b := range d.bots {
		move, err := b.Decide(d.world)
		if err != nil {
			d.logger.Error("strategy failed", "tick", d.world.Ticks(), "err", err)
			return world.TickResult{}, fmt.Errorf("sim: tick %d: %w", d.world.Ticks(), err)
		}
		moves[i] = move
	}

	for i, b := range d.bots {
		b.Player().SetMove(moves[i])
	}
	if d.human != nil {
		d.human.SetMove(d.humanMove)
	}

	res := d.world.Tick()
	if len(res.Eaten) > 0 {
		d.logger.Debug("apples eaten", "tick", d.world.Ticks(), "count", len(res.Eaten))
	}
	return res, nil
}

// Run steps until ctx is cancelled or Running reports false. onTick, if not
// nil, is called after every tick. interval paces the loop; 0 runs flat out.
func (d *Driver) Run(ctx context.Context, interval time.Duration, onTick func(world.TickResult)) error {
	var ticker *time.Ticker
	if interval > 0 {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
	}

	d.logger.Info("run started", "players", len(d.world.Players()), "max_ticks", d.maxTicks, "target_score", d.targetScore)
	for d.Running() {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		res, err := d.Step()
		if err != nil {
			return err
		}
		if onTick != nil {
			onTick(res)
		}
	}
	d.logger.Info("run finished", "ticks", d.world.Ticks())
	return nil
}
