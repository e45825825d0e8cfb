package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/orchard/internal/core"
	"github.com/vovakirdan/orchard/internal/sim"
	"github.com/vovakirdan/orchard/internal/world"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorCyan:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// Frame glyphs drawn around the board.
const (
	frameCorner     = '+'
	frameHorizontal = '-'
	frameVertical   = '|'
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// ArenaSize returns the screen size DrawArena needs for a board.
func ArenaSize(boardW, boardH int) (width, height int) {
	return boardW + 2, boardH + 2 + statusLines
}

// statusLines is the number of text rows under the board frame.
const statusLines = 4

// DrawArena paints the framed board and the move, score and timing lines.
// The human's label is drawn in its own color. Returns the first free row.
func DrawArena(s *core.Screen, snap world.Snapshot, stats []sim.PlayerStats, human string) int {
	w, h := snap.Width, snap.Height

	s.SetColored(0, 0, frameCorner, core.ColorGray)
	s.SetColored(w+1, 0, frameCorner, core.ColorGray)
	s.SetColored(0, h+1, frameCorner, core.ColorGray)
	s.SetColored(w+1, h+1, frameCorner, core.ColorGray)
	s.DrawHLine(1, 0, w, frameHorizontal, core.ColorGray)
	s.DrawHLine(1, h+1, w, frameHorizontal, core.ColorGray)
	s.DrawVLine(0, 1, h, frameVertical, core.ColorGray)
	s.DrawVLine(w+1, 1, h, frameVertical, core.ColorGray)

	for _, c := range snap.Apples {
		s.SetColored(c.X+1, c.Y+1, world.AppleRune, core.ColorRed)
	}
	for _, c := range snap.Walls {
		s.SetColored(c.X+1, c.Y+1, world.WallRune, core.ColorGreen)
	}
	for _, p := range snap.Players {
		color := core.ColorYellow
		if p.Name == human {
			color = core.ColorCyan
		}
		s.SetColored(p.Location.X+1, p.Location.Y+1, p.Label, color)
	}

	row := h + 2
	s.DrawText(0, row, snap.MoveLine())
	s.DrawText(0, row+1, snap.ScoreLine())
	s.DrawTextColored(0, row+2, TimingLine(stats), core.ColorGray)
	return row + 3
}

// TimingLine returns the mean decision time per bot, in microseconds.
func TimingLine(stats []sim.PlayerStats) string {
	parts := make([]string, 0, len(stats))
	for _, st := range stats {
		if st.Decisions == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %.1fus", st.Name, float64(st.MeanDecision.Nanoseconds())/1e3))
	}
	return strings.Join(parts, " || ")
}
