package world

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/orchard/internal/core"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestNewSpawnsConfiguredCounts(t *testing.T) {
	w, err := New(Config{Width: 8, Height: 8, Apples: 4, Walls: 8}, newRand(1))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if w.AppleCount() != 4 {
		t.Errorf("AppleCount() = %d, expected 4", w.AppleCount())
	}
	if len(w.Walls()) != 8 {
		t.Errorf("len(Walls()) = %d, expected 8", len(w.Walls()))
	}
	for _, a := range w.Apples() {
		if w.IsWall(a) {
			t.Errorf("apple and wall share cell %v", a)
		}
		if !w.ContainsLocation(a) {
			t.Errorf("apple out of bounds at %v", a)
		}
	}
}

func TestNewRejectsImpossibleBoards(t *testing.T) {
	if _, err := New(Config{Width: 0, Height: 5}, newRand(1)); err == nil {
		t.Error("expected error for zero width")
	}

	_, err := New(Config{Width: 2, Height: 2, Apples: 3, Walls: 2}, newRand(1))
	if !errors.Is(err, ErrBoardFull) {
		t.Errorf("New() error = %v, expected ErrBoardFull", err)
	}
}

func TestRegisterNameConflict(t *testing.T) {
	w := NewEmpty(5, 5, newRand(7))

	if _, err := w.Register("K"); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	before := w.Snapshot()

	_, err := w.Register("K")
	if !errors.Is(err, ErrNameConflict) {
		t.Fatalf("Register() error = %v, expected ErrNameConflict", err)
	}

	after := w.Snapshot()
	if len(after.Players) != 1 {
		t.Errorf("player count = %d after failed register, expected 1", len(after.Players))
	}
	if after.Players[0] != before.Players[0] {
		t.Errorf("existing player changed: %+v -> %+v", before.Players[0], after.Players[0])
	}
}

func TestRegisterEmptyName(t *testing.T) {
	w := NewEmpty(3, 3, newRand(1))
	if _, err := w.Register(""); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestRegisterAvoidsOccupiedCells(t *testing.T) {
	w := NewEmpty(3, 1, newRand(3))
	if err := w.PlaceApple(core.C(0, 0)); err != nil {
		t.Fatal(err)
	}
	if err := w.PlaceWall(core.C(1, 0)); err != nil {
		t.Fatal(err)
	}

	p, err := w.Register("A")
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if p.Location() != core.C(2, 0) {
		t.Errorf("player placed at %v, expected the only free cell (2,0)", p.Location())
	}

	if _, err := w.Register("B"); !errors.Is(err, ErrBoardFull) {
		t.Errorf("Register() on full board error = %v, expected ErrBoardFull", err)
	}
	if err := w.SpawnApple(); !errors.Is(err, ErrBoardFull) {
		t.Errorf("SpawnApple() on full board error = %v, expected ErrBoardFull", err)
	}
}

func TestPlacementValidation(t *testing.T) {
	w := NewEmpty(4, 4, newRand(1))
	if _, err := w.RegisterAt("A", core.C(1, 1)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		place   func() error
		wantErr error
	}{
		{"apple out of bounds", func() error { return w.PlaceApple(core.C(4, 0)) }, ErrOutOfBounds},
		{"wall out of bounds", func() error { return w.PlaceWall(core.C(0, -1)) }, ErrOutOfBounds},
		{"apple on player", func() error { return w.PlaceApple(core.C(1, 1)) }, ErrOccupied},
		{"player on player", func() error { _, err := w.RegisterAt("B", core.C(1, 1)); return err }, ErrOccupied},
		{"duplicate name", func() error { _, err := w.RegisterAt("A", core.C(2, 2)); return err }, ErrNameConflict},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.place(); !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, expected %v", err, tc.wantErr)
			}
		})
	}
}

func TestContainsLocation(t *testing.T) {
	w := NewEmpty(3, 2, newRand(1))
	tests := []struct {
		c        core.Coord
		expected bool
	}{
		{core.C(0, 0), true},
		{core.C(2, 1), true},
		{core.C(3, 0), false},
		{core.C(0, 2), false},
		{core.C(-1, 0), false},
	}
	for _, tc := range tests {
		if got := w.ContainsLocation(tc.c); got != tc.expected {
			t.Errorf("ContainsLocation(%v) = %v, expected %v", tc.c, got, tc.expected)
		}
	}
}

func TestApplesMatch(t *testing.T) {
	w := NewEmpty(4, 4, newRand(1))
	if w.ApplesMatch(nil) {
		t.Error("nil snapshot should never match")
	}

	if err := w.PlaceApple(core.C(1, 1)); err != nil {
		t.Fatal(err)
	}
	snap := w.AppleSnapshot()
	if !w.ApplesMatch(snap) {
		t.Error("fresh snapshot should match")
	}

	if err := w.PlaceApple(core.C(2, 2)); err != nil {
		t.Fatal(err)
	}
	if w.ApplesMatch(snap) {
		t.Error("snapshot should not match after an apple was added")
	}
}

func TestStringRendersBoardAndScores(t *testing.T) {
	w := NewEmpty(3, 2, newRand(1))
	if err := w.PlaceApple(core.C(0, 0)); err != nil {
		t.Fatal(err)
	}
	if err := w.PlaceWall(core.C(1, 0)); err != nil {
		t.Fatal(err)
	}
	if _, err := w.RegisterAt("Kay", core.C(2, 1)); err != nil {
		t.Fatal(err)
	}
	if _, err := w.RegisterAt("U", core.C(0, 1)); err != nil {
		t.Fatal(err)
	}

	expected := "*# \nU K\nKay: 0 || U: 0"
	if got := w.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}
