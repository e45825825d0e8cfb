package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/orchard/internal/registry"
	"github.com/vovakirdan/orchard/internal/sim"
	"github.com/vovakirdan/orchard/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show strategy sidebar
	sidebarWidth       = 24  // Width of strategy sidebar
	maxResults         = 100 // Max results to load
)

// allStrategies is the tab that lists results of every strategy.
const allStrategies = ""

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Quit   key.Binding
	Help   key.Binding
	Reload key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Reload, k.Help, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next strategy"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev strategy"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for browsing recorded results.
type ScoreboardModel struct {
	strategies  []string // Tab IDs; allStrategies first
	cursor      int
	store       *storage.Store
	results     []storage.Result
	stats       map[string]*storage.StrategyStats
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model. initial selects the
// starting strategy tab; empty shows all strategies.
func NewScoreboardModel(store *storage.Store, initial string, width, height int) ScoreboardModel {
	strategies := []string{allStrategies}
	for _, s := range registry.List() {
		strategies = append(strategies, s.ID)
	}
	strategies = append(strategies, sim.HumanStrategy)

	m := ScoreboardModel{
		strategies:  strategies,
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, id := range strategies {
		if id == initial {
			m.cursor = i
		}
	}

	m.table = m.createTable()
	m.load()
	return m
}

// Selected returns the selected strategy ID, empty for all.
func (m ScoreboardModel) Selected() string {
	return m.strategies[m.cursor]
}

// createTable creates a new table sized to the window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: 8},
		{Title: "Strategy", Width: 18},
		{Title: "Score", Width: 7},
		{Title: "us/move", Width: 9},
		{Title: "Date", Width: 12},
	}

	height := m.height - 10 // Title, stats, help and borders
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads results and aggregate stats for the selected tab.
func (m *ScoreboardModel) load() {
	m.results, m.stats = nil, nil
	if m.store != nil {
		if results, err := m.store.TopResults(m.Selected(), maxResults); err == nil {
			m.results = results
		}
		if stats, err := m.store.StrategyStats(); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current results.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		strategy := r.Strategy
		if r.Distance != "" && r.Strategy != sim.HumanStrategy {
			strategy = fmt.Sprintf("%s/%s", r.Strategy, r.Distance)
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			r.Player,
			strategy,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%.1f", r.MeanDecisionUS),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Reload):
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Next):
			m.cursor = (m.cursor + 1) % len(m.strategies)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.cursor = (m.cursor - 1 + len(m.strategies)) % len(m.strategies)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			MarginBottom(1)
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(centerText("ORCHARD RESULTS - "+tabTitle(m.Selected()), m.width)))
	b.WriteString("\n\n")

	body := boxStyle.Render(m.statsLine() + "\n\n" + m.renderTableContent())
	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", body))
	} else {
		b.WriteString(centerText(fmt.Sprintf("< %s >", tabTitle(m.Selected())), m.width))
		b.WriteString("\n\n")
		b.WriteString(body)
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderSidebar lists the strategy tabs.
func (m ScoreboardModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString("Strategies\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, id := range m.strategies {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sb.WriteString(style.Render(cursor + tabTitle(id)))
		sb.WriteString("\n")
	}

	return boxStyle.Width(sidebarWidth).Render(sb.String())
}

// statsLine summarizes the selected strategy.
func (m ScoreboardModel) statsLine() string {
	sel := m.Selected()
	if sel == allStrategies {
		return dimStyle.Render(fmt.Sprintf("%d strategies with results", len(m.stats)))
	}
	st, ok := m.stats[sel]
	if !ok {
		return dimStyle.Render("no results")
	}
	return fmt.Sprintf("runs %d  best %d  avg %.1f  %.1fus/move",
		st.Results, st.BestScore, st.AvgScore, st.MeanDecisionUS)
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.results) == 0 {
		return dimStyle.Italic(true).Padding(1, 2).
			Render("No runs recorded yet.\nFinish an arena with 'orchard play' or 'orchard sim'.")
	}
	return m.table.View()
}

// tabTitle returns the display name of a strategy tab.
func tabTitle(id string) string {
	if id == allStrategies {
		return "All"
	}
	return id
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunScoreboard runs the scoreboard screen.
func RunScoreboard(store *storage.Store, initial string, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, initial, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
