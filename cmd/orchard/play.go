package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/orchard/internal/core"
	"github.com/vovakirdan/orchard/internal/platform/tui"
	"github.com/vovakirdan/orchard/internal/storage"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Watch the arena and steer the human player",
	Long: `Start the arena in the terminal. Bots move on their own; the human
player, if the arena names one, follows the last direction you pressed.

Controls:
  Arrows/WASD - Steer the human player
  Space/X     - Stand still
  P/Esc       - Pause
  R           - New arena
  ?           - Help
  Q/Ctrl+C    - Quit

The run is recorded to the results database when it finishes, when you
start a new arena, or when you quit.

Examples:
  orchard play
  orchard play --preset small
  orchard play --seed 42 --fps 20
  orchard play --config ./my-arena.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "~/.orchard/orchard.log", "Write logs to this file while the screen is in use (empty discards them)")
}

func runPlay(cmd *cobra.Command, args []string) {
	arena, err := loadArena()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: arena.TickRate,
		Seed:     arena.Seed,
	}

	logger, closeLog := fileLogger(flagLogFile)
	defer closeLog()

	// Open results storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - the arena still runs
		store = nil
	}

	runErr := tui.Run(arena, store, cfg, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

// fileLogger returns a logger writing to path, or a discarding logger when
// path is empty or cannot be opened. The alternate screen owns the terminal.
func fileLogger(path string) (*log.Logger, func()) {
	opts := log.Options{ReportTimestamp: true, Prefix: "orchard"}
	if flagVerbose {
		opts.Level = log.DebugLevel
	}
	if path == "" {
		return log.NewWithOptions(io.Discard, opts), func() {}
	}

	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.NewWithOptions(io.Discard, opts), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log.NewWithOptions(io.Discard, opts), func() {}
	}
	return log.NewWithOptions(f, opts), func() { f.Close() }
}
