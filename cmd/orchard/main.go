// orchard is a terminal grid-world where bots race a human for apples.
//
// Usage:
//
//	orchard list              - List strategies and board presets
//	orchard play              - Watch the arena and steer the human player
//	orchard sim               - Run headless and print the final board
//	orchard scores [strategy] - Show recorded results
//	orchard config            - Print the effective arena configuration
//	orchard serve             - Start SSH server, one arena per session
//
// Global flags:
//
//	--fps <rate>       - Override the arena tick rate
//	--seed <value>     - Set RNG seed for reproducible runs
//	--db <path>        - Set database path (default: ~/.orchard/results.db)
//	--config <path>    - Load arena YAML from a custom path
//	--preset <name>    - Board preset: small, medium, large
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/orchard/internal/config"

	// Import strategies to register them
	_ "github.com/vovakirdan/orchard/internal/bot"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagPreset  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "orchard",
	Short: "Orchard - bots and a human chase apples on a grid",
	Long: `Orchard is a terminal grid-world simulation. Named players move one
cell per tick toward apples, around walls and around each other. Each bot
follows a strategy: a random walk, one of three greedy heuristics, or a
breadth-first or depth-first path search.

Available commands:
  list     - Show strategies and board presets
  play     - Watch the arena and steer the human player
  sim      - Run headless and print the result
  scores   - View recorded results
  config   - Print the effective arena configuration
  serve    - Start SSH server for remote play

Examples:
  orchard play
  orchard play --preset small --seed 42
  orchard sim --ticks 2000
  orchard scores bfs
  orchard serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (ticks per second, 0 = arena tick_rate)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = arena seed, or time based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.orchard/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom arena config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Board preset: small, medium, large")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger returns the CLI logger.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "orchard",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadArena loads the arena config and applies the global flags.
func loadArena() (config.ArenaConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyPreset(&cfg, config.BoardPreset(flagPreset)); err != nil {
		return cfg, err
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 10
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
