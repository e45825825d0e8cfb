package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/orchard/internal/platform/tui"
	"github.com/vovakirdan/orchard/internal/registry"
	"github.com/vovakirdan/orchard/internal/sim"
	"github.com/vovakirdan/orchard/internal/storage"
)

var (
	flagInteractive bool
	flagLimit       int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [strategy]",
	Short: "Show recorded results",
	Long: `Display the best recorded results, optionally for one strategy, and
per-strategy totals.

Examples:
  orchard scores
  orchard scores bfs
  orchard scores human --limit 20
  orchard scores -i`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse results in the scoreboard screen")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded results")
}

func runScores(_ *cobra.Command, args []string) {
	strategy := ""
	if len(args) == 1 {
		strategy = args[0]
	}

	// Check if strategy exists
	if strategy != "" && strategy != sim.HumanStrategy && !registry.Exists(strategy) {
		fmt.Fprintf(os.Stderr, "Error: unknown strategy %q\n", strategy)
		fmt.Fprintln(os.Stderr, "Run 'orchard list' to see available strategies.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearResults(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing results: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All results deleted.")
		return
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(store, strategy, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	results, err := store.TopResults(strategy, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	title := "all strategies"
	if strategy != "" {
		title = strategy
	}
	fmt.Printf("Best Results - %s\n", title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Println("Run 'orchard sim' or 'orchard play' to record the first one!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-22s  %-6s  %-8s  %s\n", "Rank", "Player", "Strategy", "Score", "us/move", "Date")
	fmt.Printf("  %-4s  %-8s  %-22s  %-6s  %-8s  %s\n", "----", "------", "--------", "-----", "-------", "----")

	for i, r := range results {
		name := r.Strategy
		if r.Distance != "" && r.Strategy != sim.HumanStrategy {
			name += "/" + r.Distance
		}
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8s  %-22s  %-6d  %-8.1f  %s\n", i+1, r.Player, name, r.Score, r.MeanDecisionUS, dateStr)
	}

	if strategy != "" {
		if best, err := store.BestScore(strategy); err == nil {
			fmt.Println()
			fmt.Printf("Best: %d\n", best)
		}
		return
	}

	stats, err := store.StrategyStats()
	if err != nil || len(stats) == 0 {
		return
	}
	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println()
	fmt.Printf("  %-20s  %-5s  %-5s  %-7s  %s\n", "Strategy", "Runs", "Best", "Avg", "us/move")
	fmt.Printf("  %-20s  %-5s  %-5s  %-7s  %s\n", "--------", "----", "----", "---", "-------")
	for _, id := range ids {
		st := stats[id]
		fmt.Printf("  %-20s  %-5d  %-5d  %-7.1f  %.1f\n", id, st.Results, st.BestScore, st.AvgScore, st.MeanDecisionUS)
	}
}
