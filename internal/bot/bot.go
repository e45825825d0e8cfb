// Package bot implements the decision policies that steer players toward
// apples: random walking, greedy heuristics and graph search.
//
// Every strategy only reads the world. A Bot binds a strategy to a player,
// queues the chosen move on the player and keeps decision timing statistics.
package bot

import (
	"fmt"
	"time"

	"github.com/vovakirdan/orchard/internal/core"
	"github.com/vovakirdan/orchard/internal/registry"
	"github.com/vovakirdan/orchard/internal/world"
)

// Bot drives one player with a strategy.
type Bot struct {
	strategyID string
	player     *world.Player
	strategy   registry.Strategy

	decisions int
	spent     time.Duration
}

// New binds strategy to player. strategyID is the registry name, kept for
// reporting.
func New(player *world.Player, strategyID string, strategy registry.Strategy) *Bot {
	return &Bot{
		strategyID: strategyID,
		player:     player,
		strategy:   strategy,
	}
}

// Player returns the player this bot controls.
func (b *Bot) Player() *world.Player {
	return b.player
}

// StrategyID returns the registry name of the strategy.
func (b *Bot) StrategyID() string {
	return b.strategyID
}

// Strategy returns the underlying strategy.
func (b *Bot) Strategy() registry.Strategy {
	return b.strategy
}

// Decide asks the strategy for a move without queueing it.
func (b *Bot) Decide(w *world.World) (core.Direction, error) {
	start := time.Now()
	move, err := b.strategy.Decide(w, b.player)
	b.spent += time.Since(start)
	b.decisions++

	if err != nil {
		return core.DirNone, fmt.Errorf("bot %s (%s): %w", b.player.Name(), b.strategyID, err)
	}
	return move, nil
}

// Decisions returns how many times the strategy was consulted.
func (b *Bot) Decisions() int {
	return b.decisions
}

// MeanDecisionTime returns the average time spent in the strategy per call.
func (b *Bot) MeanDecisionTime() time.Duration {
	if b.decisions == 0 {
		return 0
	}
	return b.spent / time.Duration(b.decisions)
}
