package engine

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/logical-psycho/internal/core"
)

func newTestWorld(t *testing.T, l Layout) *World {
	t.Helper()
	w, err := NewWorld(l, DefaultOptions(), rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	return w
}

func stepN(w *World, n int) Signals {
	var sig Signals
	for i := 0; i < n; i++ {
		sig = w.Step(DirNone)
	}
	return sig
}

// slide issues one directional intent and waits for the slide to finish.
func slide(w *World, d Direction) Signals {
	sig := w.Step(d)
	for w.Player().Moving {
		sig = w.Step(DirNone)
	}
	return sig
}

func TestPlayerSlidesFourTilesInFortyTicks(t *testing.T) {
	w := newTestWorld(t, Layout{Player: T(5, 4), Goal: T(0, 0)})
	start := w.Player().Pos

	for i := 0; i < 4; i++ {
		slide(w, DirRight)
	}

	want := start.Add(4*80, 0)
	if got := w.Player().Pos; got != want {
		t.Errorf("player at %v, expected %v", got, want)
	}
	if w.Tick() != 40 {
		t.Errorf("took %d ticks, expected 40", w.Tick())
	}
}

func TestPlayerIntentIgnoredWhileSliding(t *testing.T) {
	w := newTestWorld(t, Layout{Player: T(5, 4), Goal: T(0, 0)})

	w.Step(DirRight)
	w.Step(DirDown)
	stepN(w, 8)

	if got := w.Player().Pos; got != core.Pt(480, 320) {
		t.Errorf("player at %v, expected (480, 320)", got)
	}
}

func TestPlayerStoppedByWall(t *testing.T) {
	w := newTestWorld(t, Layout{
		Player: T(5, 4),
		Goal:   T(0, 0),
		Walls:  []Tile{T(6, 4)},
	})

	w.Step(DirRight)
	m := w.Player()
	if m.Pos != core.Pt(400, 320) || m.DX != 0 || m.DY != 0 {
		t.Fatalf("after contact: pos=%v v=(%d,%d), expected snapped and halted", m.Pos, m.DX, m.DY)
	}
	if !m.Moving {
		t.Fatal("a halted slide should still run to its final frame")
	}

	stepN(w, 9)
	if m.Moving {
		t.Error("slide should be finished after target frames")
	}
	if m.Pos != core.Pt(400, 320) {
		t.Errorf("player at %v, expected (400, 320)", m.Pos)
	}
}

func TestPlayerStoppedByGridEdge(t *testing.T) {
	w := newTestWorld(t, Layout{Cols: 16, Rows: 9, Player: T(15, 4), Goal: T(0, 0)})

	slide(w, DirRight)
	if got := w.Player().Pos; got != core.Pt(1200, 320) {
		t.Errorf("player at %v, expected to stay at (1200, 320)", got)
	}

	w2 := newTestWorld(t, Layout{Cols: 16, Rows: 9, Player: T(0, 0), Goal: T(5, 5)})
	slide(w2, DirUp)
	if got := w2.Player().Pos; got != core.Pt(0, 0) {
		t.Errorf("player at %v, expected to stay at (0, 0)", got)
	}
}

func TestGridAlignmentAfterRandomWalk(t *testing.T) {
	// Enclosed corridor with a few pillars.
	l := Layout{Player: T(5, 4), Goal: T(15, 15)}
	for x := 3; x <= 12; x++ {
		l.Walls = append(l.Walls, T(x, 2), T(x, 7))
	}
	for y := 3; y <= 6; y++ {
		l.Walls = append(l.Walls, T(3, y), T(12, y))
	}
	l.Walls = append(l.Walls, T(7, 4), T(9, 5))
	w := newTestWorld(t, l)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		intent := DirNone
		if rng.Intn(3) == 0 {
			intent = Directions()[rng.Intn(4)]
		}
		w.Step(intent)

		m := w.Player()
		if !m.Moving && !w.Options().Aligned(m.Pos) {
			t.Fatalf("tick %d: idle player at %v is off grid", w.Tick(), m.Pos)
		}
		box := core.Square(m.Pos, 80)
		for _, wall := range l.Walls {
			if box.Intersects(core.Square(w.Options().Pixel(wall), 80)) {
				t.Fatalf("tick %d: player %v overlaps wall %v", w.Tick(), m.Pos, wall)
			}
		}
	}
}

func TestWinOnExactGoal(t *testing.T) {
	w := newTestWorld(t, Layout{Player: T(5, 4), Goal: T(6, 4)})

	for i := 0; i < 9; i++ {
		if sig := w.Step(pick(i == 0, DirRight)); sig.Won {
			t.Fatalf("won mid-slide at tick %d", sig.Tick)
		}
	}
	sig := w.Step(DirNone)
	if !sig.Won || sig.Status != StatusWon {
		t.Fatalf("expected win on tick 10, got %+v", sig)
	}

	again := w.Step(DirLeft)
	if again.Status != StatusWon || again.Tick != 10 {
		t.Errorf("finished world should not advance, got %+v", again)
	}
}

func pick(cond bool, d Direction) Direction {
	if cond {
		return d
	}
	return DirNone
}

func TestStaticEnemyHitsOnlyOnExactTile(t *testing.T) {
	w := newTestWorld(t, Layout{Player: T(5, 4), Goal: T(0, 0), Statics: []Tile{T(6, 4)}})

	w.Step(DirRight)
	for i := 0; i < 8; i++ {
		if sig := w.Step(DirNone); sig.Collided {
			t.Fatalf("collided mid-slide at tick %d", sig.Tick)
		}
	}
	sig := w.Step(DirNone)
	if !sig.Collided || sig.Status != StatusLost {
		t.Fatalf("expected collision on arrival, got %+v", sig)
	}
	if !w.PlayerLost() {
		t.Error("player should be in loss state")
	}
}

func TestLossAnimationEndsInRestart(t *testing.T) {
	w := newTestWorld(t, Layout{Player: T(5, 4), Goal: T(0, 0), Statics: []Tile{T(6, 4)}})
	slide(w, DirRight)
	if w.Status() != StatusLost {
		t.Fatalf("status = %v, expected lost", w.Status())
	}

	pos := w.Player().Pos
	var sig Signals
	for i := 0; i < 30 && sig.Status != StatusRestart; i++ {
		sig = w.Step(DirLeft)
		if sig.Collided {
			t.Fatal("collision should only be reported once")
		}
	}
	if sig.Status != StatusRestart {
		t.Fatalf("expected restart after loss animation, got %v", sig.Status)
	}
	if w.Player().Pos != pos {
		t.Error("input must be ignored while lost")
	}

	tick := sig.Tick
	if again := w.Step(DirNone); again.Status != StatusRestart || again.Tick != tick {
		t.Errorf("finished world should not advance, got %+v", again)
	}
}

func TestDynamicEnemyHitsOnOverlap(t *testing.T) {
	w := newTestWorld(t, Layout{
		Player:   T(5, 4),
		Goal:     T(0, 0),
		Dynamics: []EnemySpec{{At: T(7, 4), Style: StyleSeek, Frequency: 3, Delay: 1000}},
	})

	if sig := slide(w, DirRight); sig.Collided {
		t.Fatal("adjacent tiles should not collide")
	}
	sig := w.Step(DirRight)
	if !sig.Collided {
		t.Fatalf("expected collision on first overlapping step, got %+v", sig)
	}
}

func TestSeekFirstDecisionTiming(t *testing.T) {
	w := newTestWorld(t, Layout{
		Player:   T(5, 4),
		Goal:     T(0, 0),
		Dynamics: []EnemySpec{{At: T(9, 4), Style: StyleSeek, Frequency: 3}},
	})
	enemy := w.Dynamics()[0]

	if enemy.Interval() != 20 {
		t.Fatalf("Interval() = %d, expected 20", enemy.Interval())
	}

	stepN(w, 19)
	if enemy.Mover().Moving {
		t.Fatal("enemy decided before tick 20")
	}
	w.Step(DirNone)
	m := enemy.Mover()
	if !m.Moving {
		t.Fatal("enemy should decide on tick 20")
	}
	if m.DX != -8 || m.DY != 0 {
		t.Errorf("first decision velocity = (%d, %d), expected left (-8, 0)", m.DX, m.DY)
	}
}

func TestSeekConvergesAlongRow(t *testing.T) {
	w := newTestWorld(t, Layout{
		Player:   T(5, 4),
		Goal:     T(0, 0),
		Dynamics: []EnemySpec{{At: T(9, 4), Style: StyleSeek, Frequency: 3}},
	})
	m := w.Dynamics()[0].Mover()

	lastX := m.Pos.X
	for i := 0; i < 90; i++ {
		sig := w.Step(DirNone)
		if sig.Collided {
			t.Fatalf("unexpected collision at tick %d", sig.Tick)
		}
		if m.Pos.X > lastX || m.Pos.Y != 320 {
			t.Fatalf("tick %d: enemy moved away to %v", sig.Tick, m.Pos)
		}
		lastX = m.Pos.X
	}
	if m.Pos != core.Pt(480, 320) {
		t.Errorf("after three slides enemy at %v, expected (480, 320)", m.Pos)
	}
}

func TestDelayPostponesFirstDecision(t *testing.T) {
	w := newTestWorld(t, Layout{
		Player:   T(0, 0),
		Goal:     T(15, 8),
		Dynamics: []EnemySpec{{At: T(9, 4), Style: StyleSeek, Frequency: 3, Delay: 10}},
	})
	enemy := w.Dynamics()[0]

	stepN(w, 29)
	if enemy.Mover().Moving {
		t.Fatal("delayed enemy decided early")
	}
	w.Step(DirNone)
	if !enemy.Mover().Moving {
		t.Error("delayed enemy should decide on tick 30")
	}
}

func TestEnemyStoppedByWall(t *testing.T) {
	w := newTestWorld(t, Layout{
		Player:   T(0, 4),
		Goal:     T(0, 0),
		Walls:    []Tile{T(2, 4)},
		Dynamics: []EnemySpec{{At: T(3, 4), Style: StyleSeek, Frequency: 3}},
	})
	m := w.Dynamics()[0].Mover()

	stepN(w, 21)
	if m.Pos != core.Pt(240, 320) || m.DX != 0 {
		t.Errorf("enemy at %v v=(%d,%d), expected halted at (240, 320)", m.Pos, m.DX, m.DY)
	}
}

func TestSeekBumpRecovery(t *testing.T) {
	w := newTestWorld(t, Layout{
		Player:   T(0, 4),
		Goal:     T(0, 0),
		Walls:    []Tile{T(2, 4)},
		Dynamics: []EnemySpec{{At: T(3, 4), Style: StyleSeek, Frequency: 3}},
	})
	m := w.Dynamics()[0].Mover()

	// Decision at 20 bumps the wall.
	stepN(w, 30)
	if m.Pos != core.Pt(240, 320) {
		t.Fatalf("after bump enemy at %v, expected (240, 320)", m.Pos)
	}

	// Decision at 50 drops Left; Up wins the tie with Down.
	stepN(w, 30)
	if m.Pos != core.Pt(240, 240) {
		t.Fatalf("after recovery enemy at %v, expected (240, 240)", m.Pos)
	}

	// Decision at 80 may not reverse back Down; Left is nearest.
	stepN(w, 30)
	if m.Pos != core.Pt(160, 240) {
		t.Fatalf("after third decision enemy at %v, expected (160, 240)", m.Pos)
	}
}

func TestBurstSequence(t *testing.T) {
	w := newTestWorld(t, Layout{
		Player:   T(0, 0),
		Goal:     T(15, 8),
		Dynamics: []EnemySpec{{At: T(8, 4), Style: StyleBurst, Frequency: 3}},
	})
	m := w.Dynamics()[0].Mover()

	type decision struct {
		tick int
		dir  Direction
	}
	var decisions []decision
	for len(decisions) < 4 && w.Tick() < 400 {
		wasMoving := m.Moving
		sig := w.Step(DirNone)
		if !wasMoving && m.Moving {
			decisions = append(decisions, decision{sig.Tick, directionOf(m)})
		}
	}
	if len(decisions) < 4 {
		t.Fatalf("only %d decisions in %d ticks", len(decisions), w.Tick())
	}

	for i := 1; i < 3; i++ {
		if decisions[i].dir != decisions[0].dir {
			t.Errorf("burst move %d went %v, expected %v", i+1, decisions[i].dir, decisions[0].dir)
		}
	}

	wantTicks := []int{20, 32, 44, 134}
	for i, want := range wantTicks {
		if decisions[i].tick != want {
			t.Errorf("decision %d at tick %d, expected %d", i+1, decisions[i].tick, want)
		}
	}

	const slideTicks = 10
	burstGap := decisions[1].tick - decisions[0].tick - slideTicks
	restGap := decisions[3].tick - decisions[2].tick - slideTicks
	if !(restGap > 20 && burstGap < 20) {
		t.Errorf("gaps: burst=%d rest=%d, expected rest longer than a plain interval", burstGap, restGap)
	}
}

func directionOf(m *Mover) Direction {
	switch {
	case m.DX < 0:
		return DirLeft
	case m.DX > 0:
		return DirRight
	case m.DY < 0:
		return DirUp
	case m.DY > 0:
		return DirDown
	}
	return DirNone
}

func TestAxisboundStaysOnAxis(t *testing.T) {
	tests := []struct {
		name string
		axis Axis
	}{
		{"horizontal", AxisHorizontal},
		{"vertical", AxisVertical},
		{"random", AxisAny},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t, Layout{
				Player:   T(0, 0),
				Goal:     T(15, 0),
				Dynamics: []EnemySpec{{At: T(8, 4), Style: StyleAxisbound, Frequency: 60, Axis: tc.axis}},
			})
			enemy := w.Dynamics()[0]
			choices := enemy.Choices()
			if len(choices) != 2 || choices[0].Axis() != choices[1].Axis() {
				t.Fatalf("Choices() = %v, expected one axis pair", choices)
			}
			axis := choices[0].Axis()
			if tc.axis != AxisAny && axis != tc.axis {
				t.Fatalf("axis = %v, expected %v", axis, tc.axis)
			}

			m := enemy.Mover()
			decisions := 0
			for i := 0; i < 1200; i++ {
				wasMoving := m.Moving
				w.Step(DirNone)
				if !wasMoving && m.Moving {
					decisions++
					if d := directionOf(m); d.Axis() != axis {
						t.Fatalf("decision %d went %v, off axis %v", decisions, d, axis)
					}
				}
			}
			if decisions < 50 {
				t.Errorf("only %d decisions, expected many", decisions)
			}
		})
	}
}

func TestRandomisedIsDeterministicPerSeed(t *testing.T) {
	l := Layout{
		Player:   T(0, 0),
		Goal:     T(15, 8),
		Dynamics: []EnemySpec{{At: T(8, 4), Style: StyleRandomised, Frequency: 6}},
	}
	run := func() []core.Point {
		w, err := NewWorld(l, DefaultOptions(), rand.New(rand.NewSource(99)))
		if err != nil {
			t.Fatalf("NewWorld failed: %v", err)
		}
		var trail []core.Point
		for i := 0; i < 300; i++ {
			w.Step(DirNone)
			trail = append(trail, w.Dynamics()[0].Mover().Pos)
		}
		return trail
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tick %d: runs diverged %v vs %v", i+1, a[i], b[i])
		}
	}
}

func TestNewWorldRejectsBadEnemies(t *testing.T) {
	tests := []struct {
		name string
		spec EnemySpec
	}{
		{"zero frequency", EnemySpec{At: T(1, 1), Frequency: 0}},
		{"negative delay", EnemySpec{At: T(1, 1), Frequency: 3, Delay: -1}},
		{"unknown style", EnemySpec{At: T(1, 1), Frequency: 3, Style: Style(9)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewWorld(Layout{Goal: T(5, 5), Dynamics: []EnemySpec{tc.spec}}, DefaultOptions(), nil)
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSpritesDrawOrder(t *testing.T) {
	w := newTestWorld(t, Layout{
		Player:   T(1, 1),
		Goal:     T(3, 3),
		Walls:    []Tile{T(0, 0), T(0, 1)},
		Statics:  []Tile{T(4, 4)},
		Dynamics: []EnemySpec{{At: T(6, 6), Frequency: 3}},
	})

	sprites := w.Sprites()
	kinds := []Kind{KindGoal, KindWall, KindWall, KindStatic, KindDynamic, KindPlayer}
	if len(sprites) != len(kinds) {
		t.Fatalf("got %d sprites, expected %d", len(sprites), len(kinds))
	}
	for i, k := range kinds {
		if sprites[i].Kind != k {
			t.Errorf("sprite %d kind = %v, expected %v", i, sprites[i].Kind, k)
		}
	}
	if sprites[5].Bounds != core.NewRect(80, 80, 80, 80) {
		t.Errorf("player bounds = %+v", sprites[5].Bounds)
	}
}
