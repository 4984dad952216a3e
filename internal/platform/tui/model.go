package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/logical-psycho/internal/core"
	"github.com/vovakirdan/logical-psycho/internal/game"
)

// PlayModel runs one level at the fixed tick rate.
type PlayModel struct {
	progress *Progress
	game     *game.Game
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	gen      int

	inputFrame core.InputFrame
	gameState  core.GameState
	next       string // level unlocked by completing this one
	hasNext    bool

	notice string

	quitting   bool
	backToMenu bool
	advance    bool
}

// NewPlayModel wraps a started game. gen tags its tick messages.
func NewPlayModel(p *Progress, g *game.Game, cfg core.RuntimeConfig, gen int) PlayModel {
	return PlayModel{
		progress:   p,
		game:       g,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		keys:       DefaultKeyMap(),
		gen:        gen,
		inputFrame: core.NewInputFrame(),
		gameState:  g.State(),
	}
}

// Init starts the tick loop.
func (m PlayModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages.
func (m PlayModel) Update(msg tea.Msg) (PlayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (PlayModel, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.suspend()
		m.quitting = true
		return m, nil
	case core.ActionBack:
		if m.gameState.Paused || m.gameState.Won {
			m.backToMenu = true
		}
		return m, nil
	case core.ActionConfirm:
		if m.gameState.Won && m.hasNext {
			m.advance = true
		}
		return m, nil
	case core.ActionNone:
		return m, nil
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// suspend pauses a running level so leaving it keeps a resumable snapshot.
func (m *PlayModel) suspend() {
	if m.game.Phase() != game.PhaseRunning {
		return
	}
	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	res := m.game.Step(pause)
	m.gameState = res.State
	if res.Paused {
		m.progress.Paused(m.game)
	}
}

// handleTick processes one simulation tick.
func (m PlayModel) handleTick() (PlayModel, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()
	if !m.gameState.Paused {
		m.notice = ""
	}

	switch {
	case result.Err != nil:
		m.progress.logger().Error("resume failed", "level", m.game.ID(), "error", result.Err)
		m.notice = "Cannot resume this run: press r to restart the level"
	case result.Paused:
		m.progress.Paused(m.game)
	case result.Resumed:
		m.progress.Resumed(m.game)
	case result.Completed:
		m.next, m.hasNext = m.progress.Completed(result.State)
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

// saveScreenshot saves the current screen to a file.
func (m *PlayModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".psycho", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the level.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen)
	if m.notice != "" && m.gameState.Paused {
		out += "\n" + centerText(noticeStyle.Render(m.notice), m.screen.Width())
	}
	if m.gameState.Won {
		hint := "b: menu  |  q: quit"
		if m.hasNext {
			hint = "n: next level  |  " + hint
		}
		out += "\n" + centerText(dimStyle.Render(hint), m.screen.Width())
	}
	return out
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// Advance returns the level to play next, if the player asked for it.
func (m PlayModel) Advance() (string, bool) {
	return m.next, m.advance
}

// State returns the latest run state.
func (m PlayModel) State() core.GameState {
	return m.gameState
}
