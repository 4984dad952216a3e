// Package game runs one level on top of the engine. It owns the run state
// the engine does not: restarting after a loss, tearing the world down into
// a pause snapshot and rebuilding it, and counting ticks and deaths.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/logical-psycho/internal/core"
	"github.com/vovakirdan/logical-psycho/internal/engine"
	"github.com/vovakirdan/logical-psycho/internal/levels"
)

// Phase is the run state of a level.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseLost          // loss animation playing
	PhasePaused        // world torn down, snapshot held
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseLost:
		return "lost"
	case PhasePaused:
		return "paused"
	case PhaseCompleted:
		return "completed"
	}
	return "unknown"
}

// Game implements registry.Game for a single level.
type Game struct {
	level levels.Level
	opts  engine.Options
	cfg   core.RuntimeConfig

	rng   *rand.Rand
	world *engine.World
	snap  engine.Snapshot // held while paused
	phase Phase

	ticks  int
	deaths int
}

// New creates a game for level. Call Reset before stepping.
func New(level levels.Level, opts engine.Options) *Game {
	return &Game{level: level, opts: opts}
}

// ID returns the level identifier.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the level name.
func (g *Game) Title() string {
	return g.level.Name
}

// Level returns the level definition being played.
func (g *Game) Level() levels.Level {
	return g.level
}

// Reset starts a fresh run: new world, counters cleared.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	if cfg.TickRate > 0 {
		g.opts.TickRate = cfg.TickRate
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.ticks = 0
	g.deaths = 0
	g.snap = nil
	g.fresh()
}

// fresh rebuilds the level from its layout. Levels are validated on load,
// so a build failure here is a programming error.
func (g *Game) fresh() {
	w, err := engine.NewWorld(g.level.Layout, g.opts, g.rng)
	if err != nil {
		panic(fmt.Sprintf("game: level %s does not build: %v", g.level.ID, err))
	}
	g.world = w
	g.phase = PhaseRunning
}

// Restore continues a run from a persisted pause snapshot. The game stays
// paused until the next pause toggle.
func (g *Game) Restore(snap engine.Snapshot, ticks, deaths int) error {
	if want := g.level.Movers(); len(snap) != want {
		return fmt.Errorf("game: %w: have %d coordinates, level %s has %d movers",
			engine.ErrSnapshotMismatch, len(snap), g.level.ID, want)
	}
	for i, p := range snap {
		if !g.opts.Aligned(p) {
			return fmt.Errorf("game: %w: entry %d at (%d, %d)", engine.ErrSnapshotUnaligned, i, p.X, p.Y)
		}
	}
	g.snap = append(engine.Snapshot(nil), snap...)
	g.world = nil
	g.phase = PhasePaused
	g.ticks = ticks
	g.deaths = deaths
	return nil
}

// Step advances the run by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var res core.StepResult

	if in.Has(core.ActionRestart) && g.phase != PhaseCompleted {
		g.Reset(g.cfg)
		res.State = g.State()
		return res
	}

	if in.Has(core.ActionPause) {
		switch g.phase {
		case PhaseRunning:
			g.pause()
			res.Paused = true
			res.State = g.State()
			return res
		case PhasePaused:
			if err := g.resume(); err != nil {
				res.Err = fmt.Errorf("game: cannot resume %s: %w", g.level.ID, err)
				res.State = g.State()
				return res
			}
			res.Resumed = true
			res.State = g.State()
			return res
		}
	}

	if g.phase == PhasePaused || g.phase == PhaseCompleted {
		res.State = g.State()
		return res
	}

	g.ticks++
	sig := g.world.Step(intentOf(in.Direction()))

	switch sig.Status {
	case engine.StatusLost:
		g.phase = PhaseLost
	case engine.StatusRestart:
		g.deaths++
		g.fresh()
	case engine.StatusWon:
		g.phase = PhaseCompleted
		res.Completed = true
	}

	res.State = g.State()
	return res
}

func (g *Game) pause() {
	g.snap = g.world.Snapshot()
	g.world = nil
	g.phase = PhasePaused
}

func (g *Game) resume() error {
	w, err := engine.ResumeWorld(g.level.Layout, g.opts, g.rng, g.snap)
	if err != nil {
		return err
	}
	g.world = w
	g.snap = nil
	g.phase = PhaseRunning
	return nil
}

// PauseSnapshot returns the held snapshot while paused.
func (g *Game) PauseSnapshot() (engine.Snapshot, bool) {
	if g.phase != PhasePaused {
		return nil, false
	}
	return append(engine.Snapshot(nil), g.snap...), true
}

// Phase returns the current run state.
func (g *Game) Phase() Phase {
	return g.phase
}

// World exposes the live world; nil while paused.
func (g *Game) World() *engine.World {
	return g.world
}

// State returns the current run state.
func (g *Game) State() core.GameState {
	return core.GameState{
		LevelID: g.level.ID,
		Ticks:   g.ticks,
		Deaths:  g.deaths,
		Won:     g.phase == PhaseCompleted,
		Lost:    g.phase == PhaseLost,
		Paused:  g.phase == PhasePaused,
	}
}

func intentOf(a core.Action) engine.Direction {
	switch a {
	case core.ActionLeft:
		return engine.DirLeft
	case core.ActionRight:
		return engine.DirRight
	case core.ActionUp:
		return engine.DirUp
	case core.ActionDown:
		return engine.DirDown
	}
	return engine.DirNone
}
