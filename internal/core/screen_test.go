package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(5, 1)
	s.SetColored(1, 0, '*', ColorRed)
	s.DrawTextColored(2, 0, "ab", ColorYellow)

	if c := s.GetCell(1, 0); c.Rune != '*' || c.Color != ColorRed {
		t.Errorf("GetCell(1, 0) = %+v, expected red '*'", c)
	}
	if c := s.GetCell(3, 0); c.Rune != 'b' || c.Color != ColorYellow {
		t.Errorf("GetCell(3, 0) = %+v, expected yellow 'b'", c)
	}
	if c := s.GetCell(0, 0); c.Color != ColorDefault {
		t.Errorf("untouched cell has color %v", c.Color)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.DrawText(0, 0, "XXXX")
	s.Clear()

	for x := 0; x < 4; x++ {
		if s.Get(x, 0) != ' ' {
			t.Errorf("After Clear, expected space at (%d, 0), got %q", x, s.Get(x, 0))
		}
	}
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawHLine(2, 2, 5, '-', ColorGreen)

	for x := 2; x < 7; x++ {
		if s.Get(x, 2) != '-' {
			t.Errorf("DrawHLine: expected '-' at (%d, 2), got %q", x, s.Get(x, 2))
		}
		if s.GetCell(x, 2).Color != ColorGreen {
			t.Errorf("DrawHLine: expected green at (%d, 2), got %v", x, s.GetCell(x, 2).Color)
		}
	}
	if s.Get(1, 2) != ' ' || s.Get(7, 2) != ' ' {
		t.Error("DrawHLine should not touch cells outside the line")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	expected := "AAAAA\nBBBBB\nCCCCC"
	if result := s.String(); result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if row0 := s.Row(0); !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", row0)
	}

	s.Resize(15, 8)
	if row0 := s.Row(0); !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", row0)
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(10, 5)
	if row := s.Row(-1); row != "          " {
		t.Errorf("Out of bounds row should be spaces, got %q", row)
	}
}

func TestScreenLines(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawHLine(1, 0, 3, '-', ColorGray)
	s.DrawVLine(0, 1, 2, '|', ColorGray)

	if row := s.Row(0); row != " --- " {
		t.Errorf("Row(0) = %q, expected %q", row, " --- ")
	}
	if s.Get(0, 1) != '|' || s.Get(0, 2) != '|' || s.Get(0, 3) != ' ' {
		t.Error("DrawVLine() should cover exactly two rows")
	}
	if s.GetCell(2, 0).Color != ColorGray {
		t.Error("DrawHLine() should set the color")
	}

	// Clipped at the edge
	s.DrawHLine(3, 3, 10, '=', ColorDefault)
	if row := s.Row(3); row != "   ==" {
		t.Errorf("Row(3) = %q, expected %q", row, "   ==")
	}
}
