package bot

import "github.com/vovakirdan/orchard/internal/registry"

// Registry IDs of the built-in strategies.
const (
	IDRandom            = "random"
	IDGreedy            = "greedy"
	IDGreedyInefficient = "greedy_inefficient"
	IDGreedyRandom      = "greedy_random"
	IDBreadthFirst      = "bfs"
	IDDepthFirst        = "dfs"
)

func init() {
	registry.Register(IDRandom, func(opts registry.Options) registry.Strategy {
		return NewRandom(opts.Rand)
	})
	registry.Register(IDGreedy, func(opts registry.Options) registry.Strategy {
		return NewSimpleGreedy(opts.Distance)
	})
	registry.Register(IDGreedyInefficient, func(opts registry.Options) registry.Strategy {
		return NewInefficientGreedy(opts.Distance)
	})
	registry.Register(IDGreedyRandom, func(opts registry.Options) registry.Strategy {
		return NewNonDeterministicGreedy(opts.Distance, opts.Rand)
	})
	registry.Register(IDBreadthFirst, func(opts registry.Options) registry.Strategy {
		return NewBreadthFirst()
	})
	registry.Register(IDDepthFirst, func(opts registry.Options) registry.Strategy {
		return NewDepthFirst()
	})
}
