package engine

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/logical-psycho/internal/core"
)

// brain is the per-style decision state of a dynamic enemy.
type brain interface {
	// decide picks the direction of the next slide.
	decide(d *Dynamic, rng *rand.Rand) Direction
	// settle returns the idle counter value after a slide completes.
	settle(d *Dynamic) int
	// choices lists the directions the next decision may return.
	choices() []Direction
}

func newBrain(spec EnemySpec, o Options, rng *rand.Rand) brain {
	switch spec.Style {
	case StyleRandomised:
		return &randomBrain{}
	case StyleBurst:
		return &burstBrain{length: o.BurstLength, gap: o.BurstStepGap, rest: o.BurstRest}
	case StyleAxisbound:
		axis := spec.Axis
		if axis == AxisAny {
			axis = AxisHorizontal
			if rng.Intn(2) == 1 {
				axis = AxisVertical
			}
		}
		return &axisBrain{pair: axis.Pair()}
	default:
		return &seekBrain{}
	}
}

// seekBrain greedily closes the distance to the sampled player position.
// A slide that ends where it started is treated as a wall bump: the bumped
// direction is dropped from the remaining candidates, and once the enemy gets
// moving again its previous move's reverse is excluded for one decision.
type seekBrain struct {
	candidates []Direction
	lastMove   Direction
	lastPos    core.Point
	moved      bool // lastPos holds a real position
	bashWall   bool
}

func (s *seekBrain) decide(d *Dynamic, _ *rand.Rand) Direction {
	pos := d.mover.Pos

	if s.moved && s.lastMove != DirNone && pos == s.lastPos {
		s.candidates = without(s.candidates, s.lastMove)
		s.bashWall = true
		if len(s.candidates) == 0 {
			// Boxed in on every side.
			s.candidates = Directions()
		}
	} else {
		s.candidates = Directions()
		if s.lastMove != DirNone && s.bashWall {
			s.candidates = without(s.candidates, s.lastMove.Reverse())
			s.bashWall = false
		}
	}

	choice := nearest(s.candidates, pos, d.target, d.tile)
	s.lastMove = choice
	s.lastPos = pos
	s.moved = true
	return choice
}

func (s *seekBrain) settle(*Dynamic) int { return 0 }

func (s *seekBrain) choices() []Direction {
	if len(s.candidates) == 0 {
		return Directions()
	}
	out := make([]Direction, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// nearest returns the first candidate whose neighbouring tile is closest to
// target. Distances are compared at millipixel precision so ties are stable.
func nearest(candidates []Direction, pos, target core.Point, tile int) Direction {
	best := DirNone
	bestDist := math.Inf(1)
	for _, dir := range candidates {
		vx, vy := dir.Vector()
		dist := distance(pos.Add(vx*tile, vy*tile), target)
		if dist < bestDist {
			best, bestDist = dir, dist
		}
	}
	return best
}

func distance(a, b core.Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return math.Round(math.Hypot(dx, dy)*1000) / 1000
}

func without(dirs []Direction, drop Direction) []Direction {
	out := make([]Direction, 0, len(dirs))
	for _, d := range dirs {
		if d != drop {
			out = append(out, d)
		}
	}
	return out
}

// randomBrain picks uniformly from all four directions with no memory.
type randomBrain struct{}

func (randomBrain) decide(_ *Dynamic, rng *rand.Rand) Direction {
	return allDirections[rng.Intn(len(allDirections))]
}

func (randomBrain) settle(*Dynamic) int { return 0 }

func (randomBrain) choices() []Direction { return Directions() }

// burstBrain locks a random direction for a run of moves separated by a short
// gap, then rests before starting a fresh run.
type burstBrain struct {
	length, gap, rest int

	direction Direction
	count     int
	complete  bool
}

func (b *burstBrain) decide(_ *Dynamic, rng *rand.Rand) Direction {
	pick := allDirections[rng.Intn(len(allDirections))]
	if b.direction == DirNone {
		b.direction = pick
	}
	b.count++
	if b.count >= b.length {
		b.complete = true
	}
	return b.direction
}

func (b *burstBrain) settle(d *Dynamic) int {
	switch {
	case b.complete:
		b.direction = DirNone
		b.count = 0
		b.complete = false
		return -b.rest
	case b.direction != DirNone:
		return d.interval - b.gap
	}
	return 0
}

func (b *burstBrain) choices() []Direction {
	if b.direction != DirNone {
		return []Direction{b.direction}
	}
	return Directions()
}

// axisBrain picks uniformly within a direction pair fixed at creation.
type axisBrain struct {
	pair []Direction
}

func (a *axisBrain) decide(_ *Dynamic, rng *rand.Rand) Direction {
	return a.pair[rng.Intn(len(a.pair))]
}

func (a *axisBrain) settle(*Dynamic) int { return 0 }

func (a *axisBrain) choices() []Direction {
	out := make([]Direction, len(a.pair))
	copy(out, a.pair)
	return out
}
