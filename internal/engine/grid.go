// Package engine implements the maze simulation: tile grid, sliding movers,
// wall collision, enemy decisions and pause reconciliation.
//
// The engine is pure. It does no I/O and never logs; the caller drives it one
// fixed tick at a time through World.Step.
package engine

import (
	"fmt"
	"math"

	"github.com/vovakirdan/logical-psycho/internal/core"
)

// Tile is a position in grid units.
type Tile struct {
	X, Y int
}

// T is shorthand for constructing a Tile.
func T(x, y int) Tile {
	return Tile{X: x, Y: y}
}

// Options holds the fixed simulation constants of a world.
type Options struct {
	TileLength   int // Edge of a square tile in pixels
	TargetFrames int // Ticks needed to slide across one tile
	TickRate     int // Ticks per second

	IdleAnimRate float64 // Frame advance per tick for enemies
	GoalAnimRate float64
	LossAnimRate float64
	GoalFrames   int
	LossFrames   int

	BurstLength  int // Moves in one burst
	BurstStepGap int // Idle ticks between moves of a burst
	BurstRest    int // Idle ticks after a burst, on top of the decision interval

	// FrequencyScale multiplies every dynamic enemy's frequency.
	FrequencyScale float64
}

// DefaultOptions returns the classic 80px / 10-frame / 60Hz setup.
func DefaultOptions() Options {
	return Options{
		TileLength:     80,
		TargetFrames:   10,
		TickRate:       60,
		IdleAnimRate:   60.0 / 1100.0,
		GoalAnimRate:   0.1,
		LossAnimRate:   0.2,
		GoalFrames:     4,
		LossFrames:     4,
		BurstLength:    3,
		BurstStepGap:   2,
		BurstRest:      60,
		FrequencyScale: 1,
	}
}

// Validate checks that the options describe a playable world.
func (o Options) Validate() error {
	switch {
	case o.TileLength <= 0:
		return fmt.Errorf("%w: tile length must be positive, got %d", ErrInvalidOptions, o.TileLength)
	case o.TargetFrames <= 0:
		return fmt.Errorf("%w: target frames must be positive, got %d", ErrInvalidOptions, o.TargetFrames)
	case o.TileLength%o.TargetFrames != 0:
		// Fractional steps would break grid alignment after a slide.
		return fmt.Errorf("%w: tile length %d is not divisible by target frames %d",
			ErrInvalidOptions, o.TileLength, o.TargetFrames)
	case o.TickRate <= 0:
		return fmt.Errorf("%w: tick rate must be positive, got %d", ErrInvalidOptions, o.TickRate)
	case o.GoalFrames <= 0 || o.LossFrames <= 0:
		return fmt.Errorf("%w: animation frame counts must be positive", ErrInvalidOptions)
	case !(o.IdleAnimRate >= 0 && o.GoalAnimRate >= 0 && o.LossAnimRate > 0):
		return fmt.Errorf("%w: animation rates must not be negative and loss rate must be positive", ErrInvalidOptions)
	case o.BurstLength < 1:
		return fmt.Errorf("%w: burst length must be at least 1, got %d", ErrInvalidOptions, o.BurstLength)
	case o.BurstStepGap < 0 || o.BurstRest < 0:
		return fmt.Errorf("%w: burst gaps must not be negative", ErrInvalidOptions)
	case !(o.FrequencyScale > 0):
		return fmt.Errorf("%w: frequency scale must be positive, got %g", ErrInvalidOptions, o.FrequencyScale)
	}
	return nil
}

// Step returns the per-tick displacement of a slide.
func (o Options) Step() int {
	return o.TileLength / o.TargetFrames
}

// Pixel converts a tile to its top-left pixel position.
func (o Options) Pixel(t Tile) core.Point {
	return core.Pt(t.X*o.TileLength, t.Y*o.TileLength)
}

// TileOf converts an aligned pixel position back to a tile.
func (o Options) TileOf(p core.Point) Tile {
	return Tile{X: floorDiv(p.X, o.TileLength), Y: floorDiv(p.Y, o.TileLength)}
}

// Aligned reports whether p sits exactly on the tile grid.
func (o Options) Aligned(p core.Point) bool {
	return floorMod(p.X, o.TileLength) == 0 && floorMod(p.Y, o.TileLength) == 0
}

// DecisionInterval converts a frequency in decisions per second into ticks
// between decisions. Halves round to even, and the result is at least 1.
func (o Options) DecisionInterval(frequency float64) (int, error) {
	f := frequency * o.FrequencyScale
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: frequency must be positive, got %g", ErrInvalidEnemy, frequency)
	}
	n := int(math.RoundToEven(float64(o.TickRate) / f))
	if n < 1 {
		n = 1
	}
	return n, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
