package game

import (
	"fmt"

	"github.com/vovakirdan/logical-psycho/internal/core"
	"github.com/vovakirdan/logical-psycho/internal/engine"
)

// Each tile is drawn as CellsX by CellsY screen cells, roughly square in a
// terminal font.
const (
	CellsX = 4
	CellsY = 2
)

// Sprite runes, indexed by animation frame where animated.
var (
	wallRune    = '█'
	goalRunes   = []rune{'◇', '◈', '◆', '◈'}
	staticRunes = []rune{'✕', '✖'}
	enemyRunes  = []rune{'●', '◉'}
	playerRune  = '■'
	lossRunes   = []rune{'▓', '▒', '░', '·'}
)

// ScreenSize returns the screen needed to show a cols by rows maze with its
// frame and HUD line.
func ScreenSize(cols, rows int) (w, h int) {
	return cols*CellsX + 2, rows*CellsY + 3
}

// Render draws the current state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	boxW, boxH := ScreenSize(g.level.Width, g.level.Height)
	boxH-- // HUD line
	ox := max((dst.Width()-boxW)/2, 0)
	frame := core.NewRect(ox, 1, boxW, boxH)
	dst.DrawBox(frame)

	g.drawHUD(dst, ox)

	if g.phase == PhasePaused {
		drawCenteredMessage(dst, "PAUSED", "P to resume  |  R to restart  |  Q to quit")
		return
	}

	if g.world == nil {
		return
	}
	tile := g.opts.TileLength
	for _, s := range g.world.Sprites() {
		r := toCells(s.Bounds, tile, ox+1, 2)
		dst.FillRect(r, spriteRune(s), spriteColor(s))
	}

	if g.phase == PhaseCompleted {
		drawCenteredMessage(dst, "LEVEL COMPLETE",
			fmt.Sprintf("%d ticks  |  %d deaths", g.ticks, g.deaths))
	}
}

func (g *Game) drawHUD(dst *core.Screen, x int) {
	seconds := 0.0
	if g.opts.TickRate > 0 {
		seconds = float64(g.ticks) / float64(g.opts.TickRate)
	}
	hud := fmt.Sprintf(" %s  |  %.1fs  |  deaths %d ", g.level.Name, seconds, g.deaths)
	dst.DrawTextColored(x, 0, hud, core.ColorHUD)
}

// toCells maps a pixel rect to screen cells offset by (ox, oy).
func toCells(r core.Rect, tile, ox, oy int) core.Rect {
	x := r.X * CellsX / tile
	y := r.Y * CellsY / tile
	return core.NewRect(ox+x, oy+y, r.W*CellsX/tile, r.H*CellsY/tile)
}

func spriteRune(s engine.Sprite) rune {
	switch s.Kind {
	case engine.KindWall:
		return wallRune
	case engine.KindGoal:
		return goalRunes[s.Frame%len(goalRunes)]
	case engine.KindStatic:
		return staticRunes[s.Frame%len(staticRunes)]
	case engine.KindDynamic:
		return enemyRunes[s.Frame%len(enemyRunes)]
	case engine.KindPlayer:
		if s.Lost {
			return lossRunes[s.Frame%len(lossRunes)]
		}
		return playerRune
	}
	return '?'
}

func spriteColor(s engine.Sprite) core.Color {
	switch s.Kind {
	case engine.KindWall:
		return core.ColorWall
	case engine.KindGoal:
		return core.ColorGoal
	case engine.KindStatic:
		return core.ColorStatic
	case engine.KindDynamic:
		return core.ColorDynamic
	case engine.KindPlayer:
		if s.Lost {
			return core.ColorLoss
		}
		return core.ColorPlayer
	}
	return core.ColorDefault
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleLen := len([]rune(title))
	subLen := len([]rune(subtitle))
	boxW := max(titleLen, subLen) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	dst.DrawText(boxX+(boxW-titleLen)/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-subLen)/2, boxY+3, subtitle)
}
