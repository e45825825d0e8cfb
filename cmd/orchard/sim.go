package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orchard/internal/sim"
	"github.com/vovakirdan/orchard/internal/storage"
	"github.com/vovakirdan/orchard/internal/world"
)

var (
	flagTicks    int
	flagWatch    bool
	flagNoRecord bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the arena headless and print the result",
	Long: `Run the arena without the interactive screen. The human player is
left out. The run stops after --ticks ticks, at the arena's max_ticks or
target_score, or on Ctrl+C, then prints the final board and the scores.

With --watch the board is printed after every tick, paced by the tick rate.

Examples:
  orchard sim
  orchard sim --ticks 5000 --seed 7
  orchard sim --preset small --watch --fps 5
  orchard sim --no-record`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 1000, "Stop after this many ticks (0 = arena max_ticks only)")
	simCmd.Flags().BoolVar(&flagWatch, "watch", false, "Print the board after every tick")
	simCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not save the run to the results database")
}

func runSim(_ *cobra.Command, _ []string) {
	logger := newLogger()

	arena, err := loadArena()
	if err != nil {
		logger.Fatal("invalid arena", "err", err)
	}
	arena.Human = ""
	if flagTicks > 0 && (arena.MaxTicks == 0 || flagTicks < arena.MaxTicks) {
		arena.MaxTicks = flagTicks
	}
	if arena.MaxTicks == 0 && arena.TargetScore == 0 {
		logger.Warn("no stop condition, running until interrupted")
	}

	seed := sim.ResolveSeed(arena.Seed)
	d, err := sim.FromConfig(arena, rand.New(rand.NewSource(seed)), sim.WithLogger(logger))
	if err != nil {
		logger.Fatal("could not build arena", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var interval time.Duration
	var onTick func(world.TickResult)
	if flagWatch {
		interval = time.Second / time.Duration(arena.TickRate)
		onTick = func(res world.TickResult) {
			fmt.Print("\033[H\033[2J")
			fmt.Print(d.World().String())
			fmt.Printf("tick %d  eaten %d  blocked %d\n", d.World().Ticks(), len(res.Eaten), len(res.Blocked))
		}
	}

	start := time.Now()
	if err := d.Run(ctx, interval, onTick); err != nil && ctx.Err() == nil {
		logger.Fatal("simulation failed", "err", err)
	}
	logger.Info("run finished", "ticks", d.World().Ticks(), "seed", seed, "elapsed", time.Since(start).Round(time.Millisecond))

	fmt.Print(d.World().String())
	fmt.Println()
	printLeaders(d.Leaders())

	if flagNoRecord || d.World().Ticks() == 0 {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "err", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRun(d.Record(seed))
	if err != nil {
		logger.Warn("could not record run", "err", err)
		return
	}
	fmt.Printf("\nRecorded run %s\n", id)
}

func printLeaders(leaders []sim.PlayerStats) {
	fmt.Printf("  %-4s  %-8s  %-20s  %-6s  %s\n", "Rank", "Player", "Strategy", "Score", "us/move")
	fmt.Printf("  %-4s  %-8s  %-20s  %-6s  %s\n", "----", "------", "--------", "-----", "-------")
	for i, st := range leaders {
		strategy := st.Strategy
		if st.Distance != "" {
			strategy += "/" + st.Distance
		}
		us := float64(st.MeanDecision) / float64(time.Microsecond)
		fmt.Printf("  %-4d  %-8s  %-20s  %-6d  %.1f\n", i+1, st.Name, strategy, st.Score, us)
	}
}
