package tui

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/orchard/internal/config"
	"github.com/vovakirdan/orchard/internal/core"
	"github.com/vovakirdan/orchard/internal/sim"
	"github.com/vovakirdan/orchard/internal/storage"
)

// Model is the Bubble Tea model for watching and playing an arena.
type Model struct {
	arena  config.ArenaConfig
	seed   int64
	driver *sim.Driver
	screen *core.Screen
	store  *storage.Store
	config core.RuntimeConfig
	keys   *KeyMapper
	help   help.Model
	logger *log.Logger

	paused   bool
	quitting bool
	saved    bool // Whether the current run has been recorded
	err      error
}

// NewModel creates a model for arena. cfg.TickRate overrides the arena's
// tick rate when positive; cfg.Seed 0 picks a time-based seed.
func NewModel(arena config.ArenaConfig, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (Model, error) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = arena.TickRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		arena:  arena,
		store:  store,
		config: cfg,
		keys:   NewKeyMapper(),
		help:   help.New(),
		logger: logger,
	}
	if err := m.reset(sim.ResolveSeed(cfg.Seed)); err != nil {
		return Model{}, err
	}
	return m, nil
}

// reset builds a fresh arena from seed.
func (m *Model) reset(seed int64) error {
	d, err := sim.FromConfig(m.arena, rand.New(rand.NewSource(seed)), sim.WithLogger(m.logger))
	if err != nil {
		return err
	}
	m.seed = seed
	m.driver = d
	m.saved = false
	m.paused = false

	w, h := ArenaSize(d.World().Width(), d.World().Height())
	m.screen = core.NewScreen(max(w, m.config.ScreenW), h)
	m.logger.Info("arena ready", "seed", seed, "players", len(d.World().Players()))
	return nil
}

// Driver returns the running simulation.
func (m Model) Driver() *sim.Driver {
	return m.driver
}

// Seed returns the seed of the current arena.
func (m Model) Seed() int64 {
	return m.seed
}

// Err returns the error that stopped the model, if any.
func (m Model) Err() error {
	return m.err
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.screen.Resize(max(m.screen.Width(), msg.Width), m.screen.Height())
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Keys().Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.record()
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action.IsSteering():
		m.driver.SetHumanMove(action.Direction())
	case action == core.ActionPause:
		m.paused = !m.paused
	case action == core.ActionRestart:
		m.record()
		if err := m.reset(time.Now().UnixNano()); err != nil {
			m.err = err
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleTick advances the simulation one step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.paused {
		return m, tickCmd(m.config.TickRate)
	}

	if !m.driver.Running() {
		m.record()
		return m, tickCmd(m.config.TickRate)
	}

	if _, err := m.driver.Step(); err != nil {
		m.logger.Error("simulation stopped", "err", err)
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

// record saves the current run to the ledger once. Best effort.
func (m *Model) record() {
	if m.saved || m.store == nil || m.driver.World().Ticks() == 0 {
		return
	}
	m.saved = true
	id, err := m.store.SaveRun(m.driver.Record(m.seed))
	if err != nil {
		m.logger.Warn("could not record run", "err", err)
		return
	}
	m.logger.Info("run recorded", "id", id, "ticks", m.driver.World().Ticks())
}

var (
	statusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	d := m.driver
	DrawArena(m.screen, d.World().Snapshot(), d.Stats(), m.arena.Human)

	return RenderScreen(m.screen) + "\n" +
		statusStyle.Render(m.status()) + "\n" +
		helpStyle.Render(m.help.View(m.keys.Keys()))
}

// status summarizes the run state in one line.
func (m Model) status() string {
	ticks := m.driver.World().Ticks()
	switch {
	case m.paused:
		return fmt.Sprintf("tick %d  paused", ticks)
	case !m.driver.Running():
		leaders := m.driver.Leaders()
		if len(leaders) == 0 {
			return fmt.Sprintf("tick %d  finished  (r for a new arena)", ticks)
		}
		return fmt.Sprintf("tick %d  finished, %s leads with %d  (r for a new arena)", ticks, leaders[0].Name, leaders[0].Score)
	case m.driver.Human() != nil:
		return fmt.Sprintf("tick %d  seed %d  heading %s", ticks, m.seed, m.driver.HumanMove())
	default:
		return fmt.Sprintf("tick %d  seed %d", ticks, m.seed)
	}
}

// Run starts the Bubble Tea program for arena.
func Run(arena config.ArenaConfig, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model, err := NewModel(arena, store, cfg, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}
