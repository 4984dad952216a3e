package levels

import (
	"fmt"

	"github.com/vovakirdan/logical-psycho/internal/engine"
)

// MaxFrequency caps enemy decisions per second.
const MaxFrequency = 60

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validation codes.
const (
	CodeBadID         = "BAD_ID"
	CodeBadSize       = "BAD_SIZE"
	CodeBadCoord      = "BAD_COORD"
	CodeBadLine       = "BAD_LINE"
	CodeMissingPlayer = "MISSING_PLAYER"
	CodeMissingGoal   = "MISSING_GOAL"
	CodeOffGrid       = "OFF_GRID"
	CodeOverlap       = "OVERLAP"
	CodeUnknownStyle  = "UNKNOWN_STYLE"
	CodeBadFrequency  = "BAD_FREQUENCY"
	CodeNegativeDelay = "NEGATIVE_DELAY"
	CodeBadAxis       = "BAD_AXIS"
)

func invalid(code, format string, args ...any) ValidationError {
	return ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validate checks a level's geometry and enemies.
// Checks:
//   - id present, size positive
//   - every entity on the grid
//   - nothing placed on a wall, player not on goal or an enemy
//   - dynamic enemies have a sane frequency, delay and axis
func Validate(l Level) error {
	if l.ID == "" {
		return invalid(CodeBadID, "level has no id")
	}
	if l.Width <= 0 || l.Height <= 0 {
		return invalid(CodeBadSize, "level %s has size %dx%d", l.ID, l.Width, l.Height)
	}

	lay := l.Layout
	onGrid := func(what string, t engine.Tile) error {
		if t.X < 0 || t.Y < 0 || t.X >= l.Width || t.Y >= l.Height {
			return invalid(CodeOffGrid, "%s at (%d, %d) is outside the %dx%d grid", what, t.X, t.Y, l.Width, l.Height)
		}
		return nil
	}

	walls := make(map[engine.Tile]bool, len(lay.Walls))
	for _, w := range lay.Walls {
		if err := onGrid("wall", w); err != nil {
			return err
		}
		walls[w] = true
	}

	blocked := func(what string, t engine.Tile) error {
		if err := onGrid(what, t); err != nil {
			return err
		}
		if walls[t] {
			return invalid(CodeOverlap, "%s at (%d, %d) is inside a wall", what, t.X, t.Y)
		}
		return nil
	}

	if err := blocked("player", lay.Player); err != nil {
		return err
	}
	if err := blocked("goal", lay.Goal); err != nil {
		return err
	}
	if lay.Player == lay.Goal {
		return invalid(CodeOverlap, "player starts on the goal")
	}

	for _, s := range lay.Statics {
		if err := blocked("static enemy", s); err != nil {
			return err
		}
		if s == lay.Player {
			return invalid(CodeOverlap, "static enemy at (%d, %d) is on the player", s.X, s.Y)
		}
	}

	for i, d := range lay.Dynamics {
		what := fmt.Sprintf("dynamic enemy %d", i+1)
		if err := blocked(what, d.At); err != nil {
			return err
		}
		if d.At == lay.Player {
			return invalid(CodeOverlap, "%s is on the player", what)
		}
		if !d.Style.Valid() {
			return invalid(CodeUnknownStyle, "%s has unknown style %v", what, d.Style)
		}
		if !(d.Frequency > 0 && d.Frequency <= MaxFrequency) { // also catches NaN
			return invalid(CodeBadFrequency, "%s frequency %g is outside (0, %d]", what, d.Frequency, MaxFrequency)
		}
		if d.Delay < 0 {
			return invalid(CodeNegativeDelay, "%s has delay %d", what, d.Delay)
		}
		if d.Axis != engine.AxisAny && d.Style != engine.StyleAxisbound {
			return invalid(CodeBadAxis, "%s sets an axis but is %v", what, d.Style)
		}
	}
	return nil
}
