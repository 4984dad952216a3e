package engine

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/logical-psycho/internal/core"
)

// EnemySpec describes a dynamic enemy as authored in a level.
type EnemySpec struct {
	At        Tile
	Style     Style
	Frequency float64 // Decisions per second
	Delay     int     // Extra ticks before the first decision
	Axis      Axis    // Axisbound only
}

// Static is an enemy that never moves. The player loses by landing exactly on it.
type Static struct {
	rect core.Rect
	anim Animator
}

func newStatic(p core.Point, o Options) *Static {
	return &Static{
		rect: core.Square(p, o.TileLength),
		anim: Animator{Rate: o.IdleAnimRate, Frames: 2},
	}
}

// Bounds returns the occupied tile.
func (s *Static) Bounds() core.Rect {
	return s.rect
}

// Touches uses exact tile equality, so a player sliding past does not lose.
func (s *Static) Touches(r core.Rect) bool {
	return s.rect == r
}

// Frame returns the idle animation frame.
func (s *Static) Frame() int {
	return s.anim.Frame()
}

// Dynamic is a moving enemy driven by a decision timer.
type Dynamic struct {
	spec     EnemySpec
	mover    Mover
	anim     Animator
	brain    brain
	tile     int
	step     int
	interval int // ticks between decisions

	// sinceMove counts idle ticks since the last slide. Delays and rests
	// push it below zero.
	sinceMove int
	target    core.Point // player rest position sampled before a decision
}

func newDynamic(spec EnemySpec, p core.Point, o Options, rng *rand.Rand) (*Dynamic, error) {
	if !spec.Style.Valid() {
		return nil, fmt.Errorf("%w: unknown style %d", ErrInvalidEnemy, int(spec.Style))
	}
	if spec.Delay < 0 {
		return nil, fmt.Errorf("%w: delay must not be negative, got %d", ErrInvalidEnemy, spec.Delay)
	}
	interval, err := o.DecisionInterval(spec.Frequency)
	if err != nil {
		return nil, err
	}

	d := &Dynamic{
		spec:      spec,
		mover:     NewMover(p, o.TargetFrames),
		anim:      Animator{Rate: o.IdleAnimRate, Frames: 2},
		tile:      o.TileLength,
		step:      o.Step(),
		interval:  interval,
		sinceMove: -spec.Delay,
	}
	d.brain = newBrain(spec, o, rng)
	return d, nil
}

// Bounds returns the enemy's current box.
func (d *Dynamic) Bounds() core.Rect {
	return d.mover.Bounds(d.tile)
}

// Touches reports any overlap, including mid-slide.
func (d *Dynamic) Touches(r core.Rect) bool {
	return d.Bounds().Intersects(r)
}

// Mover exposes the slide state.
func (d *Dynamic) Mover() *Mover {
	return &d.mover
}

// Style returns the decision algorithm.
func (d *Dynamic) Style() Style {
	return d.spec.Style
}

// Interval returns the ticks between decisions.
func (d *Dynamic) Interval() int {
	return d.interval
}

// SinceMove returns the idle tick counter.
func (d *Dynamic) SinceMove() int {
	return d.sinceMove
}

// Frame returns the idle animation frame.
func (d *Dynamic) Frame() int {
	return d.anim.Frame()
}

// Choices returns the directions the enemy may pick from next.
func (d *Dynamic) Choices() []Direction {
	return d.brain.choices()
}

// observe caches the player's position one tick before a decision is due.
func (d *Dynamic) observe(player core.Point) {
	if d.sinceMove == d.interval-1 {
		d.target = player
	}
}

// update runs the enemy's per-tick logic: animation, then either slide
// progress or the decision timer. It returns the chosen direction on
// decision ticks and DirNone otherwise.
func (d *Dynamic) update(walls []Obstacle, rng *rand.Rand) Direction {
	d.anim.Tick()

	if d.mover.Moving {
		if d.mover.Advance(walls) {
			d.sinceMove = d.brain.settle(d)
		}
		return DirNone
	}

	d.sinceMove++
	if d.sinceMove < d.interval {
		return DirNone
	}
	dir := d.brain.decide(d, rng)
	d.mover.Start(dir, d.step)
	return dir
}

func resolveAll(obstacles []Obstacle, m *Mover) {
	if m.DX == 0 && m.DY == 0 {
		return
	}
	for _, w := range obstacles {
		if w.Resolve(m) {
			return
		}
	}
}
