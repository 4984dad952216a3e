package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/logical-psycho/internal/core"
)

type screen int

const (
	screenMenu screen = iota
	screenPlay
	screenScores
)

// SessionModel manages the full flow: menu -> level -> menu, with the
// scoreboard one key away. Local play and every SSH session use it.
type SessionModel struct {
	progress *Progress
	config   core.RuntimeConfig
	username string

	current  screen
	menu     MenuModel
	play     PlayModel
	scores   ScoreboardModel
	gen      int
	quitting bool
}

// NewSessionModel creates a session that opens on the level menu.
func NewSessionModel(p *Progress, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		progress: p,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(p, cfg.ScreenW, cfg.ScreenH),
	}
}

// NewLevelSession creates a session that opens directly on a level.
func NewLevelSession(p *Progress, cfg core.RuntimeConfig, levelID string, resume bool) (SessionModel, error) {
	m := NewSessionModel(p, cfg, "")
	if err := m.startLevel(levelID, resume); err != nil {
		return m, err
	}
	return m, nil
}

func (m *SessionModel) startLevel(id string, resume bool) error {
	g, err := m.progress.Start(id, m.config, resume)
	if err != nil {
		return err
	}
	m.gen++
	m.play = NewPlayModel(m.progress, g, m.config, m.gen)
	m.current = screenPlay
	return nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.current == screenPlay {
		return m.play.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenPlay:
		return m.updatePlay(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.progress, m.config.ScreenW, m.config.ScreenH)
		m.current = screenScores
		return m, nil

	case m.menu.Selected() != nil:
		item := m.menu.Selected()
		if err := m.startLevel(item.LevelID, item.Paused); err != nil {
			m.progress.logger().Warn("cannot start level", "level", item.LevelID, "user", m.username, "error", err)
			m.backToMenu()
			return m, nil
		}
		return m, m.play.Init()
	}

	return m, cmd
}

func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.play, cmd = m.play.Update(msg)

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if next, ok := m.play.Advance(); ok {
		if err := m.startLevel(next, false); err == nil {
			return m, m.play.Init()
		}
		m.backToMenu()
		return m, nil
	}

	if m.play.BackToMenu() {
		m.backToMenu()
		return m, nil
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.scores, cmd = m.scores.Update(msg)

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.backToMenu()
		return m, nil
	}
	return m, cmd
}

func (m *SessionModel) backToMenu() {
	m.menu = NewMenuModel(m.progress, m.config.ScreenW, m.config.ScreenH)
	m.current = screenMenu
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenPlay:
		return m.play.View()
	case screenScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// Run starts a local session. With levelID set it opens that level
// directly, restoring its saved pause snapshot when resume is set.
func Run(p *Progress, cfg core.RuntimeConfig, levelID string, resume bool) error {
	var (
		model SessionModel
		err   error
	)
	if levelID == "" {
		model = NewSessionModel(p, cfg, "")
	} else if model, err = NewLevelSession(p, cfg, levelID, resume); err != nil {
		return err
	}

	prog := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	_, err = prog.Run()
	return err
}
