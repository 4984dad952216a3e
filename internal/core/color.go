package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorOrange
	ColorGray
)

// Colors used for maze elements.
const (
	ColorWall    = ColorGray
	ColorPlayer  = ColorBrightGreen
	ColorLoss    = ColorBrightRed
	ColorGoal    = ColorBrightYellow
	ColorStatic  = ColorMagenta
	ColorDynamic = ColorOrange
	ColorHUD     = ColorCyan
)
