// Package heuristic provides the distance functions greedy strategies use to
// rank apples.
package heuristic

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/orchard/internal/core"
)

// Distance selects a distance metric.
type Distance int

const (
	Euclidean Distance = iota
	Manhattan
)

// Func is a distance function between two cells.
type Func func(a, b core.Coord) float64

// EuclideanDistance returns the straight-line distance between a and b.
func EuclideanDistance(a, b core.Coord) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// ManhattanDistance returns the sum of absolute coordinate differences.
func ManhattanDistance(a, b core.Coord) float64 {
	return float64(core.Abs(a.X-b.X) + core.Abs(a.Y-b.Y))
}

// Func returns the distance function for d.
func (d Distance) Func() Func {
	if d == Manhattan {
		return ManhattanDistance
	}
	return EuclideanDistance
}

// Between measures the distance from a to b.
func (d Distance) Between(a, b core.Coord) float64 {
	return d.Func()(a, b)
}

// String returns the config name of the metric.
func (d Distance) String() string {
	switch d {
	case Euclidean:
		return "euclidean"
	case Manhattan:
		return "manhattan"
	default:
		return "unknown"
	}
}

// Parse converts a config name to a Distance. Empty means Euclidean.
func Parse(name string) (Distance, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "euclidean":
		return Euclidean, nil
	case "manhattan":
		return Manhattan, nil
	default:
		return Euclidean, fmt.Errorf("heuristic: unknown distance %q", name)
	}
}
