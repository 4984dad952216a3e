package engine

import "github.com/vovakirdan/logical-psycho/internal/core"

// Collidable is anything with tile bounds.
type Collidable interface {
	Bounds() core.Rect
}

// Obstacle stops movers that run into it.
type Obstacle interface {
	Collidable
	// Resolve snaps m out of the obstacle and zeroes its velocity if m is
	// touching the face it is moving towards. It reports whether m was stopped.
	Resolve(m *Mover) bool
}

// Hazard ends the run when the player touches it.
type Hazard interface {
	Collidable
	Touches(r core.Rect) bool
}

// Wall is a static blocked tile.
type Wall struct {
	rect core.Rect
}

// NewWall creates a wall occupying one tile at p.
func NewWall(p core.Point, tile int) *Wall {
	return &Wall{rect: core.Square(p, tile)}
}

// Bounds returns the wall tile.
func (w *Wall) Bounds() core.Rect {
	return w.rect
}

// Resolve tests only the wall face that the mover's velocity points at.
// On contact the mover is placed exactly one tile outside the wall.
func (w *Wall) Resolve(m *Mover) bool {
	tile := w.rect.W
	box := m.Bounds(tile)
	stopped := false

	if m.DX > 0 && box.ContainsPoint(w.rect.MidLeft()) {
		m.Pos.X = w.rect.X - tile
		stopped = true
	}
	if m.DX < 0 && box.ContainsPoint(w.rect.MidRight()) {
		m.Pos.X = w.rect.X + tile
		stopped = true
	}
	if m.DY > 0 && box.ContainsPoint(w.rect.MidTop()) {
		m.Pos.Y = w.rect.Y - tile
		stopped = true
	}
	if m.DY < 0 && box.ContainsPoint(w.rect.MidBottom()) {
		m.Pos.Y = w.rect.Y + tile
		stopped = true
	}

	if stopped {
		m.Halt()
	}
	return stopped
}

// Edge keeps movers inside the grid when a level has no border walls.
type Edge struct {
	rect core.Rect
	tile int
}

// NewEdge creates the boundary for a cols x rows grid.
func NewEdge(cols, rows, tile int) *Edge {
	return &Edge{rect: core.NewRect(0, 0, cols*tile, rows*tile), tile: tile}
}

// Bounds returns the playable area.
func (e *Edge) Bounds() core.Rect {
	return e.rect
}

// Resolve pulls a mover that left the grid back onto the nearest edge tile.
func (e *Edge) Resolve(m *Mover) bool {
	stopped := false
	switch {
	case m.DX > 0 && m.Pos.X+e.tile > e.rect.Right():
		m.Pos.X = e.rect.Right() - e.tile
		stopped = true
	case m.DX < 0 && m.Pos.X < e.rect.X:
		m.Pos.X = e.rect.X
		stopped = true
	}
	switch {
	case m.DY > 0 && m.Pos.Y+e.tile > e.rect.Bottom():
		m.Pos.Y = e.rect.Bottom() - e.tile
		stopped = true
	case m.DY < 0 && m.Pos.Y < e.rect.Y:
		m.Pos.Y = e.rect.Y
		stopped = true
	}
	if stopped {
		m.Halt()
	}
	return stopped
}
