package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// MenuItem represents a selectable level in the menu.
type MenuItem struct {
	LevelID string
	Title   string
	Locked  bool
	Paused  bool   // a saved pause snapshot exists
	Best    string // best completion, formatted
}

// MenuModel is the level picker.
type MenuModel struct {
	progress *Progress
	items    []MenuItem
	version  uint64
	cursor   int
	width    int
	height   int
	keys     KeyMap
	help     help.Model
	notice   string

	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a menu over the catalog.
func NewMenuModel(p *Progress, width, height int) MenuModel {
	m := MenuModel{
		progress: p,
		width:    width,
		height:   height,
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
	m.reload()
	return m
}

// reload rebuilds the item list from the catalog and the store.
func (m *MenuModel) reload() {
	m.version = m.progress.Catalog.Version()
	open := m.progress.Unlocked()

	var best map[string]string
	if m.progress.Store != nil {
		if stats, err := m.progress.Store.AllLevelStats(); err == nil {
			best = make(map[string]string, len(stats))
			for id, s := range stats {
				best[id] = fmt.Sprintf("%s, %d deaths", formatTicks(s.BestTicks, m.progress.Options.TickRate), s.FewestDeaths)
			}
		}
	}

	levels := m.progress.Catalog.List()
	m.items = make([]MenuItem, 0, len(levels))
	for _, l := range levels {
		m.items = append(m.items, MenuItem{
			LevelID: l.ID,
			Title:   l.Title,
			Locked:  !open[l.ID],
			Paused:  m.progress.HasSnapshot(l.ID),
			Best:    best[l.ID],
		})
	}
	if m.cursor >= len(m.items) {
		m.cursor = max(len(m.items)-1, 0)
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	// Levels may have been hot-reloaded since the last message.
	if m.progress.Catalog.Version() != m.version {
		m.reload()
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (MenuModel, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		if item.Locked {
			m.notice = "Locked: complete the previous level first"
			return m, nil
		}
		m.selected = &item

	case key.Matches(msg, m.keys.Scores):
		m.openScoreboard = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("L O G I C A L   P S Y C H O"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(dimStyle.Render("no levels loaded"), m.width))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		line := fmt.Sprintf("%-24s", item.Title)
		switch {
		case item.Locked:
			line = dimStyle.Render(line + "  locked")
		case item.Paused:
			line += "  paused"
		case item.Best != "":
			line += "  " + dimStyle.Render(item.Best)
		}

		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		b.WriteString(centerText(cursor+line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(centerText(noticeStyle.Render(m.notice), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Items returns the current menu entries.
func (m MenuModel) Items() []MenuItem {
	return m.items
}

// formatTicks renders a tick count as seconds.
func formatTicks(ticks, rate int) string {
	if rate <= 0 {
		return fmt.Sprintf("%d ticks", ticks)
	}
	return fmt.Sprintf("%.2fs", float64(ticks)/float64(rate))
}
