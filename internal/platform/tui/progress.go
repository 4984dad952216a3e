package tui

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/logical-psycho/internal/core"
	"github.com/vovakirdan/logical-psycho/internal/engine"
	"github.com/vovakirdan/logical-psycho/internal/game"
	"github.com/vovakirdan/logical-psycho/internal/registry"
	"github.com/vovakirdan/logical-psycho/internal/storage"
)

// Progress is the session context the screens share: which levels exist,
// where progress is kept and how worlds are built. Store may be nil, in
// which case nothing persists and every level is open.
type Progress struct {
	Catalog *registry.Catalog
	Store   *storage.Store
	Options engine.Options
	Logger  *log.Logger
}

func (p *Progress) logger() *log.Logger {
	if p.Logger == nil {
		return log.Default()
	}
	return p.Logger
}

// Unlocked returns the playable level IDs. The first level is always open.
func (p *Progress) Unlocked() map[string]bool {
	open := make(map[string]bool)
	all := p.Catalog.List()
	if p.Store == nil {
		for _, l := range all {
			open[l.ID] = true
		}
		return open
	}

	stored, err := p.Store.Unlocked()
	if err != nil {
		p.logger().Warn("could not read unlocks", "error", err)
	}
	for id := range stored {
		open[id] = true
	}
	if len(all) > 0 {
		open[all[0].ID] = true
	}
	return open
}

// HasSnapshot reports whether a paused run of the level is saved.
func (p *Progress) HasSnapshot(id string) bool {
	if p.Store == nil {
		return false
	}
	rec, err := p.Store.LoadSnapshot(id)
	return err == nil && rec != nil
}

// Start builds a game for the level. With resume set, a saved pause
// snapshot is restored; one that no longer fits the level is discarded.
func (p *Progress) Start(id string, cfg core.RuntimeConfig, resume bool) (*game.Game, error) {
	level, err := p.Catalog.Get(id)
	if err != nil {
		return nil, err
	}
	g := game.New(level, p.Options)
	g.Reset(cfg)

	if !resume || p.Store == nil {
		return g, nil
	}
	rec, err := p.Store.LoadSnapshot(id)
	if err != nil {
		return nil, fmt.Errorf("tui: loading pause snapshot: %w", err)
	}
	if rec == nil {
		return g, nil
	}
	if err := g.Restore(rec.Positions, rec.Ticks, rec.Deaths); err != nil {
		p.logger().Warn("discarding stale pause snapshot", "level", id, "error", err)
		p.clearSnapshot(id)
	}
	return g, nil
}

// Paused persists the snapshot of a paused game.
func (p *Progress) Paused(g *game.Game) {
	if p.Store == nil {
		return
	}
	snap, ok := g.PauseSnapshot()
	if !ok {
		return
	}
	st := g.State()
	rec := storage.PauseRecord{LevelID: g.ID(), Ticks: st.Ticks, Deaths: st.Deaths, Positions: snap}
	if err := p.Store.SaveSnapshot(rec); err != nil {
		p.logger().Warn("could not save pause snapshot", "level", g.ID(), "error", err)
	}
}

// Resumed drops the persisted snapshot once the run is live again.
func (p *Progress) Resumed(g *game.Game) {
	p.clearSnapshot(g.ID())
}

// Completed records the run, unlocks the following level and returns its ID.
func (p *Progress) Completed(st core.GameState) (next string, ok bool) {
	next, ok = p.Catalog.Next(st.LevelID)
	if p.Store == nil {
		return next, ok
	}

	if _, err := p.Store.SaveCompletion(st.LevelID, st.Ticks, st.Deaths); err != nil {
		p.logger().Warn("could not save completion", "level", st.LevelID, "error", err)
	}
	p.clearSnapshot(st.LevelID)
	if ok {
		if err := p.Store.Unlock(next); err != nil {
			p.logger().Warn("could not unlock level", "level", next, "error", err)
		}
	}
	p.logger().Info("level completed", "level", st.LevelID, "ticks", st.Ticks, "deaths", st.Deaths)
	return next, ok
}

func (p *Progress) clearSnapshot(id string) {
	if p.Store == nil {
		return
	}
	if err := p.Store.ClearSnapshot(id); err != nil {
		p.logger().Warn("could not clear pause snapshot", "level", id, "error", err)
	}
}
