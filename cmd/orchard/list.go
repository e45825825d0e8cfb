package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orchard/internal/config"
	"github.com/vovakirdan/orchard/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List strategies and board presets",
	Long:  `Shows every registered strategy and the available board presets.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	strategies := registry.List()

	if len(strategies) == 0 {
		fmt.Println("No strategies available.")
		return
	}

	fmt.Println("Strategies:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, s := range strategies {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, s := range strategies {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Println()
	fmt.Println("Board presets:")
	fmt.Println()
	for _, p := range config.Presets() {
		b, _ := config.BoardForPreset(p)
		fmt.Printf("  %-8s  %dx%d, %d apples, %d walls\n", p, b.Width, b.Height, b.Apples, b.Walls)
	}

	fmt.Println()
	fmt.Println("Assign strategies to players in arena.yaml, see 'orchard config'.")
}
