// Package world holds the board state of an orchard arena: apples, walls and
// players, plus the per-tick move resolution that mutates them.
//
// World is not safe for concurrent use. The simulation driver serializes the
// read-only decision phase and the single Tick write phase.
package world

import (
	"errors"
	"fmt"
	"maps"
	"math/rand"
	"sort"
	"unicode/utf8"

	"github.com/vovakirdan/orchard/internal/core"
)

var (
	// ErrNameConflict is returned when registering a name that is already taken.
	ErrNameConflict = errors.New("world: player name has already been taken")
	// ErrBoardFull is returned when no free cell is left to place something.
	ErrBoardFull = errors.New("world: no free cell left on the board")
	// ErrOutOfBounds is returned when placing something outside the board.
	ErrOutOfBounds = errors.New("world: location is outside the board")
	// ErrOccupied is returned when placing something on a non-free cell.
	ErrOccupied = errors.New("world: location is already occupied")
)

// maxSampleAttempts bounds rejection sampling before falling back to
// enumerating the free cells.
const maxSampleAttempts = 256

// Config describes the board to generate.
type Config struct {
	Width  int
	Height int
	Apples int
	Walls  int
}

// World is the mutable board state.
type World struct {
	width  int
	height int
	rng    *rand.Rand
	ticks  uint64

	apples   map[core.Coord]struct{}
	walls    map[core.Coord]struct{}
	players  []*Player // Registration order
	byName   map[string]*Player
	occupied map[core.Coord]*Player
}

// NewEmpty creates a board with no apples, walls or players.
func NewEmpty(width, height int, rng *rand.Rand) *World {
	return &World{
		width:    width,
		height:   height,
		rng:      rng,
		apples:   make(map[core.Coord]struct{}),
		walls:    make(map[core.Coord]struct{}),
		byName:   make(map[string]*Player),
		occupied: make(map[core.Coord]*Player),
	}
}

// New creates a board and spawns the configured apples, then walls, on
// random free cells.
func New(cfg Config, rng *rand.Rand) (*World, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("world: invalid board size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Apples < 0 || cfg.Walls < 0 {
		return nil, fmt.Errorf("world: negative apple or wall count")
	}

	w := NewEmpty(cfg.Width, cfg.Height, rng)
	for range cfg.Apples {
		if err := w.SpawnApple(); err != nil {
			return nil, fmt.Errorf("world: spawning apples: %w", err)
		}
	}
	for range cfg.Walls {
		c, err := w.freeLocation()
		if err != nil {
			return nil, fmt.Errorf("world: creating walls: %w", err)
		}
		w.walls[c] = struct{}{}
	}
	return w, nil
}

// Width returns the board width.
func (w *World) Width() int {
	return w.width
}

// Height returns the board height.
func (w *World) Height() int {
	return w.height
}

// Ticks returns how many ticks have been resolved.
func (w *World) Ticks() uint64 {
	return w.ticks
}

// ContainsLocation reports whether c lies on the board.
func (w *World) ContainsLocation(c core.Coord) bool {
	return c.X >= 0 && c.X < w.width && c.Y >= 0 && c.Y < w.height
}

// Register adds a player with the given name on a random free cell.
func (w *World) Register(name string) (*Player, error) {
	if err := w.checkName(name); err != nil {
		return nil, err
	}
	loc, err := w.freeLocation()
	if err != nil {
		return nil, fmt.Errorf("world: registering %q: %w", name, err)
	}
	return w.addPlayer(name, loc), nil
}

// RegisterAt adds a player with the given name at a chosen free cell.
func (w *World) RegisterAt(name string, loc core.Coord) (*Player, error) {
	if err := w.checkName(name); err != nil {
		return nil, err
	}
	if err := w.checkPlaceable(loc); err != nil {
		return nil, err
	}
	return w.addPlayer(name, loc), nil
}

func (w *World) checkName(name string) error {
	if name == "" {
		return fmt.Errorf("world: player name must not be empty")
	}
	if _, taken := w.byName[name]; taken {
		return fmt.Errorf("%w: %q", ErrNameConflict, name)
	}
	return nil
}

func (w *World) addPlayer(name string, loc core.Coord) *Player {
	label, _ := utf8.DecodeRuneInString(name)
	p := &Player{
		name:     name,
		label:    label,
		location: loc,
	}
	w.players = append(w.players, p)
	w.byName[name] = p
	w.occupied[loc] = p
	return p
}

// SpawnApple adds one apple on a random free cell.
func (w *World) SpawnApple() error {
	_, err := w.spawnApple()
	return err
}

func (w *World) spawnApple() (core.Coord, error) {
	c, err := w.freeLocation()
	if err != nil {
		return c, err
	}
	w.apples[c] = struct{}{}
	return c, nil
}

// PlaceApple adds an apple at a chosen free cell.
func (w *World) PlaceApple(c core.Coord) error {
	if err := w.checkPlaceable(c); err != nil {
		return err
	}
	w.apples[c] = struct{}{}
	return nil
}

// PlaceWall adds a wall at a chosen free cell.
func (w *World) PlaceWall(c core.Coord) error {
	if err := w.checkPlaceable(c); err != nil {
		return err
	}
	w.walls[c] = struct{}{}
	return nil
}

func (w *World) checkPlaceable(c core.Coord) error {
	if !w.ContainsLocation(c) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	if !w.isFree(c) {
		return fmt.Errorf("%w: %s", ErrOccupied, c)
	}
	return nil
}

// isFree reports whether c holds no apple, wall or player.
func (w *World) isFree(c core.Coord) bool {
	if _, ok := w.apples[c]; ok {
		return false
	}
	if _, ok := w.walls[c]; ok {
		return false
	}
	_, ok := w.occupied[c]
	return !ok
}

// freeLocation picks a uniformly random free cell. It samples random cells
// first and falls back to enumerating free cells once sampling gives up.
func (w *World) freeLocation() (core.Coord, error) {
	used := len(w.apples) + len(w.walls) + len(w.players)
	if used >= w.width*w.height {
		return core.Coord{}, ErrBoardFull
	}

	for range maxSampleAttempts {
		c := core.C(w.rng.Intn(w.width), w.rng.Intn(w.height))
		if w.isFree(c) {
			return c, nil
		}
	}

	var free []core.Coord
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			if c := core.C(x, y); w.isFree(c) {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return core.Coord{}, ErrBoardFull
	}
	return free[w.rng.Intn(len(free))], nil
}

// HasApple reports whether an apple lies at c.
func (w *World) HasApple(c core.Coord) bool {
	_, ok := w.apples[c]
	return ok
}

// IsWall reports whether a wall lies at c.
func (w *World) IsWall(c core.Coord) bool {
	_, ok := w.walls[c]
	return ok
}

// AppleCount returns the number of apples on the board.
func (w *World) AppleCount() int {
	return len(w.apples)
}

// Apples returns apple locations sorted by row, then column.
func (w *World) Apples() []core.Coord {
	return sortedCoords(w.apples)
}

// Walls returns wall locations sorted by row, then column.
func (w *World) Walls() []core.Coord {
	return sortedCoords(w.walls)
}

// AppleSnapshot returns a copy of the apple set.
func (w *World) AppleSnapshot() map[core.Coord]struct{} {
	return maps.Clone(w.apples)
}

// ApplesMatch reports whether the live apple set equals snapshot.
func (w *World) ApplesMatch(snapshot map[core.Coord]struct{}) bool {
	return snapshot != nil && maps.Equal(w.apples, snapshot)
}

// Players returns the players in registration order.
func (w *World) Players() []*Player {
	out := make([]*Player, len(w.players))
	copy(out, w.players)
	return out
}

// Player looks up a player by name.
func (w *World) Player(name string) (*Player, bool) {
	p, ok := w.byName[name]
	return p, ok
}

// OccupiedBy returns the player standing on c, if any.
func (w *World) OccupiedBy(c core.Coord) (*Player, bool) {
	p, ok := w.occupied[c]
	return p, ok
}

func sortedCoords(set map[core.Coord]struct{}) []core.Coord {
	out := make([]core.Coord, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
