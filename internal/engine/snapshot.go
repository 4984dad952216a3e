package engine

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/logical-psycho/internal/core"
)

// Snapshot is the grid-aligned position of every moving entity at pause
// time: the player first, then dynamic enemies in layout order.
type Snapshot []core.Point

// Snapshot reconciles each mover onto the grid. The world is not modified.
func (w *World) Snapshot() Snapshot {
	tile := w.opts.TileLength
	snap := make(Snapshot, 0, 1+len(w.dynamics))
	pm := &w.player.mover
	snap = append(snap, Reconcile(pm.Pos, pm.Velocity(), pm.Origin(), tile))
	for _, d := range w.dynamics {
		m := d.Mover()
		snap = append(snap, Reconcile(m.Pos, m.Velocity(), m.Origin(), tile))
	}
	return snap
}

// ResumeWorld rebuilds a level with its movers at the snapshot positions.
// Only positions carry over: decision timers, delays, seek history and burst
// state start fresh, and an unfixed axisbound axis is rolled again.
func ResumeWorld(l Layout, o Options, rng *rand.Rand, snap Snapshot) (*World, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if want := 1 + len(l.Dynamics); len(snap) != want {
		return nil, fmt.Errorf("%w: have %d coordinates, level has %d movers",
			ErrSnapshotMismatch, len(snap), want)
	}
	for i, p := range snap {
		if !o.Aligned(p) {
			return nil, fmt.Errorf("%w: entry %d at (%d, %d)", ErrSnapshotUnaligned, i, p.X, p.Y)
		}
	}
	positions := make([]core.Point, len(snap))
	copy(positions, snap)
	return build(l, o, rng, positions)
}

// Reconcile snaps a possibly mid-slide position onto the tile grid.
//
// Each axis independently takes the nearer of the two bracketing grid lines.
// On an exact tie it takes the line in the direction of travel: the sign of
// the velocity, or, if a wall zeroed it, the sign of the offset from the
// slide origin. With no direction at all the lower line wins.
func Reconcile(pos, velocity, origin core.Point, tile int) core.Point {
	return core.Pt(
		snapAxis(pos.X, velocity.X, pos.X-origin.X, tile),
		snapAxis(pos.Y, velocity.Y, pos.Y-origin.Y, tile),
	)
}

func snapAxis(v, vel, travelled, tile int) int {
	lo := floorDiv(v, tile) * tile
	if lo == v {
		return v
	}
	hi := lo + tile
	below, above := v-lo, hi-v
	switch {
	case below < above:
		return lo
	case above < below:
		return hi
	}

	dir := core.Sign(vel)
	if dir == 0 {
		dir = core.Sign(travelled)
	}
	if dir > 0 {
		return hi
	}
	return lo
}
