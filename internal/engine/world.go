package engine

import (
	"math/rand"

	"github.com/vovakirdan/logical-psycho/internal/core"
)

// Layout is the geometry of one level, in tiles.
type Layout struct {
	// Cols and Rows bound the grid. Zero leaves movers unbounded except by walls.
	Cols, Rows int

	Player   Tile
	Goal     Tile
	Walls    []Tile
	Statics  []Tile
	Dynamics []EnemySpec
}

// Status is the outcome of a tick.
type Status int

const (
	StatusRunning Status = iota
	StatusLost           // loss animation is playing
	StatusRestart        // loss animation finished; rebuild the level
	StatusWon
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusLost:
		return "lost"
	case StatusRestart:
		return "restart"
	case StatusWon:
		return "won"
	}
	return "unknown"
}

// Signals is what one tick reports to the application layer.
type Signals struct {
	Status   Status
	Won      bool // player rests on the goal tile
	Collided bool // set only on the tick an enemy caught the player
	Tick     int
}

// Player is the user-controlled mover.
type Player struct {
	mover Mover
	lost  bool
	loss  Animator
	tile  int
}

// Bounds returns the player's current box.
func (p *Player) Bounds() core.Rect {
	return p.mover.Bounds(p.tile)
}

// Goal is the exit tile.
type Goal struct {
	rect core.Rect
	anim Animator
}

// Bounds returns the goal tile.
func (g *Goal) Bounds() core.Rect {
	return g.rect
}

// World owns every entity of one running level.
type World struct {
	opts   Options
	layout Layout
	rng    *rand.Rand

	player    *Player
	goal      *Goal
	obstacles []Obstacle
	hazards   []Hazard
	walls     []*Wall
	statics   []*Static
	dynamics  []*Dynamic

	tick   int
	status Status
}

// NewWorld builds a fresh level with every entity at its authored tile.
func NewWorld(l Layout, o Options, rng *rand.Rand) (*World, error) {
	positions := make([]core.Point, 0, 1+len(l.Dynamics))
	positions = append(positions, o.Pixel(l.Player))
	for _, spec := range l.Dynamics {
		positions = append(positions, o.Pixel(spec.At))
	}
	return build(l, o, rng, positions)
}

func build(l Layout, o Options, rng *rand.Rand, positions []core.Point) (*World, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	w := &World{
		opts:   o,
		layout: l,
		rng:    rng,
		player: &Player{
			mover: NewMover(positions[0], o.TargetFrames),
			loss:  Animator{Rate: o.LossAnimRate, Frames: o.LossFrames},
			tile:  o.TileLength,
		},
		goal: &Goal{
			rect: core.Square(o.Pixel(l.Goal), o.TileLength),
			anim: Animator{Rate: o.GoalAnimRate, Frames: o.GoalFrames},
		},
	}

	for _, t := range l.Walls {
		wall := NewWall(o.Pixel(t), o.TileLength)
		w.walls = append(w.walls, wall)
		w.obstacles = append(w.obstacles, wall)
	}
	if l.Cols > 0 && l.Rows > 0 {
		w.obstacles = append(w.obstacles, NewEdge(l.Cols, l.Rows, o.TileLength))
	}

	for _, t := range l.Statics {
		s := newStatic(o.Pixel(t), o)
		w.statics = append(w.statics, s)
		w.hazards = append(w.hazards, s)
	}
	for i, spec := range l.Dynamics {
		d, err := newDynamic(spec, positions[i+1], o, rng)
		if err != nil {
			return nil, err
		}
		w.dynamics = append(w.dynamics, d)
		w.hazards = append(w.hazards, d)
	}
	return w, nil
}

// Step advances the world by one tick:
//
//  1. the intent starts a player slide if the player is idle and alive
//  2. the player slides and walls correct it
//  3. enemies are tested against the player, seek enemies sample the
//     player, and the goal is tested
//  4. dynamic enemies slide or run their decision timers
//  5. remaining animations advance
//
// Once the world reports StatusWon or StatusRestart it is finished and
// further calls return the same status without advancing.
func (w *World) Step(intent Direction) Signals {
	if w.status == StatusWon || w.status == StatusRestart {
		return Signals{Status: w.status, Won: w.status == StatusWon, Tick: w.tick}
	}
	w.tick++
	sig := Signals{Tick: w.tick}
	p := w.player

	if !p.lost {
		p.mover.Start(intent, w.opts.Step())
	}
	p.mover.Advance(w.obstacles)

	box := p.Bounds()
	if !p.lost {
		for _, h := range w.hazards {
			if h.Touches(box) {
				p.lost = true
				sig.Collided = true
				break
			}
		}
	}

	rest := p.mover.Rest()
	for _, d := range w.dynamics {
		d.observe(rest)
	}

	if !p.lost && box == w.goal.rect {
		w.status = StatusWon
		sig.Status = StatusWon
		sig.Won = true
		return sig
	}

	for _, d := range w.dynamics {
		d.update(w.obstacles, w.rng)
	}

	for _, s := range w.statics {
		s.anim.Tick()
	}
	w.goal.anim.Tick()

	if p.lost {
		w.status = StatusLost
		if p.loss.Tick() {
			w.status = StatusRestart
		}
	}
	sig.Status = w.status
	return sig
}

// Tick returns the number of ticks stepped so far.
func (w *World) Tick() int {
	return w.tick
}

// Status returns the status after the latest tick.
func (w *World) Status() Status {
	return w.status
}

// Options returns the world constants.
func (w *World) Options() Options {
	return w.opts
}

// Layout returns the level geometry the world was built from.
func (w *World) Layout() Layout {
	return w.layout
}

// Player exposes the player's slide state.
func (w *World) Player() *Mover {
	return &w.player.mover
}

// PlayerLost reports whether the loss animation is playing.
func (w *World) PlayerLost() bool {
	return w.player.lost
}

// Dynamics returns the dynamic enemies in layout order.
func (w *World) Dynamics() []*Dynamic {
	return w.dynamics
}

// Kind tags a sprite for rendering.
type Kind int

const (
	KindWall Kind = iota
	KindGoal
	KindStatic
	KindDynamic
	KindPlayer
)

// Sprite is a read-only view of one entity.
type Sprite struct {
	Kind   Kind
	Bounds core.Rect
	Frame  int
	Lost   bool
}

// Sprites returns every entity in draw order, back to front.
func (w *World) Sprites() []Sprite {
	out := make([]Sprite, 0, len(w.walls)+len(w.statics)+len(w.dynamics)+2)
	out = append(out, Sprite{Kind: KindGoal, Bounds: w.goal.rect, Frame: w.goal.anim.Frame()})
	for _, wall := range w.walls {
		out = append(out, Sprite{Kind: KindWall, Bounds: wall.Bounds()})
	}
	for _, s := range w.statics {
		out = append(out, Sprite{Kind: KindStatic, Bounds: s.Bounds(), Frame: s.Frame()})
	}
	for _, d := range w.dynamics {
		out = append(out, Sprite{Kind: KindDynamic, Bounds: d.Bounds(), Frame: d.Frame()})
	}
	out = append(out, Sprite{
		Kind:   KindPlayer,
		Bounds: w.player.Bounds(),
		Frame:  w.player.loss.Frame(),
		Lost:   w.player.lost,
	})
	return out
}
