// Package registry provides a global registry for strategy factories.
// Strategies register themselves in init() functions, allowing the platform
// to discover and instantiate them by name from config files and the CLI.
package registry

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/vovakirdan/orchard/internal/core"
	"github.com/vovakirdan/orchard/internal/heuristic"
	"github.com/vovakirdan/orchard/internal/world"
)

// ErrUnknownStrategy is returned when creating a strategy that was never registered.
var ErrUnknownStrategy = errors.New("registry: unknown strategy")

// Strategy is the decision policy behind a bot.
// Implementations only read the world; the driver applies their moves.
type Strategy interface {
	// Title returns a human-readable name for display (e.g., "Breadth-first search").
	Title() string

	// Decide returns the move self should attempt this tick.
	// core.DirNone means "stay". Errors are programming errors and abort the tick.
	Decide(w *world.World, self *world.Player) (core.Direction, error)
}

// Options are the per-bot settings handed to a factory.
type Options struct {
	Distance heuristic.Distance
	Rand     *rand.Rand // Source for randomized strategies
}

// StrategyInfo contains metadata about a registered strategy.
type StrategyInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a strategy.
type Factory func(opts Options) Strategy

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a strategy factory to the registry.
// Typically called from an init() function.
// Panics if a strategy with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: strategy %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	s := f(Options{Rand: rand.New(rand.NewSource(0))})
	titles[id] = s.Title()
}

// List returns information about all registered strategies, sorted by ID.
func List() []StrategyInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]StrategyInfo, 0, len(factories))
	for id := range factories {
		result = append(result, StrategyInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new strategy by its ID.
func Create(id string, opts Options) (Strategy, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownStrategy, id)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(0))
	}

	return f(opts), nil
}

// Exists checks if a strategy with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
