package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orchard/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective arena configuration",
	Long: `Prints the arena configuration after the search path, --preset and
--seed have been applied, as YAML. Redirect it to a file to start a custom arena:

  orchard config > ~/.orchard/configs/arena.yaml`,
	Run: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, err := loadArena()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := config.Encode(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
