package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/logical-psycho/internal/core"
	"github.com/vovakirdan/logical-psycho/internal/engine"
	"github.com/vovakirdan/logical-psycho/internal/levels"
	"github.com/vovakirdan/logical-psycho/internal/registry"
	"github.com/vovakirdan/logical-psycho/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func corridor(id string, order int) levels.Level {
	return levels.Level{
		ID: id, Name: "Corridor " + id, Order: order, Width: 8, Height: 3,
		Layout: engine.Layout{Cols: 8, Rows: 3, Player: engine.T(1, 1), Goal: engine.T(3, 1)},
	}
}

func testProgress(t *testing.T, withStore bool) *Progress {
	t.Helper()
	p := &Progress{
		Catalog: registry.NewCatalog(corridor("a", 1), corridor("b", 2), corridor("c", 3)),
		Options: engine.DefaultOptions(),
		Logger:  log.New(io.Discard),
	}
	if withStore {
		store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("storage.Open: %v", err)
		}
		t.Cleanup(func() { store.Close() })
		p.Store = store
	}
	return p
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3}
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{runes("w"), core.ActionUp},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runes("a"), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{runes("s"), core.ActionDown},
		{runes("p"), core.ActionPause},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{runes("r"), core.ActionRestart},
		{runes("q"), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runes("b"), core.ActionBack},
		{runes("n"), core.ActionConfirm},
		{runes("x"), core.ActionNone},
	}
	for _, tt := range tests {
		if got := keys.Action(tt.msg); got != tt.want {
			t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorWall)
	s.DrawText(2, 0, "cd")
	s.SetColored(0, 1, '■', core.ColorPlayer)

	out := RenderScreen(s)
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Fatalf("got %d lines, expected 2", len(lines))
	}
	for _, want := range []string{"ab", "cd", "■"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q", want)
		}
	}
}

func TestPlayModelCompletesAndUnlocks(t *testing.T) {
	p := testProgress(t, true)
	g, err := p.Start("a", testConfig(), false)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	m := NewPlayModel(p, g, testConfig(), 1)

	for i := 0; i < 40 && !m.State().Won; i++ {
		m, _ = m.Update(runes("d"))
		m, _ = m.Update(TickMsg{Time: time.Now(), Gen: 1})
	}
	if !m.State().Won {
		t.Fatal("level never completed")
	}

	best, err := p.Store.BestCompletion("a")
	if err != nil || best == nil || best.Ticks != 20 {
		t.Errorf("BestCompletion = %+v, %v", best, err)
	}
	if !p.Unlocked()["b"] {
		t.Error("completing a should unlock b")
	}
	if p.Unlocked()["c"] {
		t.Error("c should still be locked")
	}

	m, _ = m.Update(runes("n"))
	if next, ok := m.Advance(); !ok || next != "b" {
		t.Errorf("Advance() = %q, %v", next, ok)
	}
}

func TestPlayModelIgnoresStaleTicks(t *testing.T) {
	p := testProgress(t, false)
	g, _ := p.Start("a", testConfig(), false)
	m := NewPlayModel(p, g, testConfig(), 2)

	m, cmd := m.Update(TickMsg{Gen: 1})
	if cmd != nil || m.State().Ticks != 0 {
		t.Errorf("stale tick advanced the game: ticks %d", m.State().Ticks)
	}
	m, cmd = m.Update(TickMsg{Gen: 2})
	if cmd == nil || m.State().Ticks != 1 {
		t.Errorf("current tick ignored: ticks %d", m.State().Ticks)
	}
}

func TestQuitMidLevelSavesSnapshot(t *testing.T) {
	p := testProgress(t, true)
	g, _ := p.Start("a", testConfig(), false)
	m := NewPlayModel(p, g, testConfig(), 1)

	m, _ = m.Update(runes("d"))
	for i := 0; i < 7; i++ {
		m, _ = m.Update(TickMsg{Gen: 1})
	}
	m, _ = m.Update(runes("q"))
	if !m.IsQuitting() {
		t.Fatal("q should quit")
	}

	rec, err := p.Store.LoadSnapshot("a")
	if err != nil || rec == nil {
		t.Fatalf("LoadSnapshot = %+v, %v", rec, err)
	}
	if rec.Ticks != 7 || len(rec.Positions) != 1 || rec.Positions[0] != core.Pt(160, 80) {
		t.Errorf("saved %+v", rec)
	}

	resumed, err := p.Start("a", testConfig(), true)
	if err != nil {
		t.Fatalf("Start(resume): %v", err)
	}
	if st := resumed.State(); !st.Paused || st.Ticks != 7 {
		t.Errorf("resumed state = %+v", st)
	}
}

func TestMenuLocksLevels(t *testing.T) {
	p := testProgress(t, true)
	m := NewMenuModel(p, 80, 24)

	items := m.Items()
	if len(items) != 3 || items[0].Locked || !items[1].Locked {
		t.Fatalf("items = %+v", items)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != nil {
		t.Error("locked level was selected")
	}
	if !strings.Contains(m.View(), "Locked") {
		t.Error("menu should explain the lock")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if sel := m.Selected(); sel == nil || sel.LevelID != "a" {
		t.Errorf("Selected() = %+v", sel)
	}
}

func TestMenuFollowsCatalogChanges(t *testing.T) {
	p := testProgress(t, false)
	m := NewMenuModel(p, 80, 24)

	p.Catalog.Put(corridor("d", 4))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if len(m.Items()) != 4 {
		t.Errorf("menu has %d items after a catalog change, expected 4", len(m.Items()))
	}
}

func TestSessionFlow(t *testing.T) {
	p := testProgress(t, false)
	var model tea.Model = NewSessionModel(p, testConfig(), "tester")

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s := model.(SessionModel)
	if s.current != screenPlay {
		t.Fatalf("screen = %v after selecting a level", s.current)
	}

	model, _ = model.Update(runes("p"))
	model, _ = model.Update(TickMsg{Gen: s.gen})
	model, _ = model.Update(runes("b"))
	if model.(SessionModel).current != screenMenu {
		t.Error("b while paused should return to the menu")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if model.(SessionModel).current != screenScores {
		t.Error("tab should open the scoreboard")
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.(SessionModel).current != screenMenu {
		t.Error("esc should leave the scoreboard")
	}

	_, cmd := model.Update(runes("q"))
	if cmd == nil {
		t.Error("q in the menu should quit")
	}
}
