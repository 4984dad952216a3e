package engine

import "github.com/vovakirdan/logical-psycho/internal/core"

// Animator cycles a fractional frame index at a fixed rate.
type Animator struct {
	Index  float64
	Rate   float64
	Frames int
}

// Tick advances the index and reports whether it wrapped back to zero.
func (a *Animator) Tick() bool {
	a.Index += a.Rate
	if a.Index < 0 || a.Index >= float64(a.Frames) {
		a.Index = 0
		return true
	}
	return false
}

// Frame returns the current whole frame.
func (a Animator) Frame() int {
	return int(a.Index)
}

// Mover is the slide state machine shared by the player and dynamic enemies.
//
// Idle: Moving is false and Frame is 0. Sliding: velocity is fixed for the
// whole slide and Frame counts up to TargetFrames. A wall may zero the
// velocity mid-slide; the mover then stays put but still finishes the slide
// on schedule.
type Mover struct {
	Pos          core.Point
	DX, DY       int
	Frame        int
	TargetFrames int
	Moving       bool

	origin core.Point
}

// NewMover creates an idle mover at p.
func NewMover(p core.Point, targetFrames int) Mover {
	return Mover{Pos: p, TargetFrames: targetFrames, origin: p}
}

// Start begins a slide one tile in direction d. It is ignored while sliding.
func (m *Mover) Start(d Direction, step int) bool {
	if m.Moving || d == DirNone {
		return false
	}
	vx, vy := d.Vector()
	m.DX, m.DY = vx*step, vy*step
	m.Frame = 0
	m.Moving = true
	m.origin = m.Pos
	return true
}

// Advance applies one tick of displacement, lets each obstacle correct it,
// and returns true on the tick the slide completes.
func (m *Mover) Advance(obstacles []Obstacle) bool {
	if !m.Moving {
		return false
	}
	if m.Frame < m.TargetFrames {
		m.Pos = m.Pos.Add(m.DX, m.DY)
		m.Frame++
		resolveAll(obstacles, m)
	}
	if m.Frame >= m.TargetFrames {
		m.Moving = false
		m.Frame = 0
		m.DX, m.DY = 0, 0
		m.origin = m.Pos
		return true
	}
	return false
}

// Halt zeroes the velocity without ending the slide.
func (m *Mover) Halt() {
	m.DX, m.DY = 0, 0
}

// Velocity returns the current per-tick displacement.
func (m *Mover) Velocity() core.Point {
	return core.Pt(m.DX, m.DY)
}

// Origin returns where the current slide began, or the position when idle.
func (m *Mover) Origin() core.Point {
	return m.origin
}

// Rest returns the last tile-aligned resting position.
func (m *Mover) Rest() core.Point {
	if m.Moving {
		return m.origin
	}
	return m.Pos
}

// Bounds returns the mover's tile-sized bounding box.
func (m *Mover) Bounds(tile int) core.Rect {
	return core.Square(m.Pos, tile)
}
