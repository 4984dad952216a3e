package engine

import (
	"fmt"
	"strings"
)

// Direction is a movement intent along one grid axis.
type Direction int

// Directions in candidate order. Seek tie-breaks depend on this order.
const (
	DirNone Direction = iota
	DirLeft
	DirRight
	DirUp
	DirDown
)

var allDirections = [...]Direction{DirLeft, DirRight, DirUp, DirDown}

// Directions returns the four movement directions in candidate order.
func Directions() []Direction {
	out := make([]Direction, len(allDirections))
	copy(out, allDirections[:])
	return out
}

// Vector returns the unit offset of the direction.
func (d Direction) Vector() (int, int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	}
	return 0, 0
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	}
	return DirNone
}

// Axis returns the axis the direction moves along.
func (d Direction) Axis() Axis {
	switch d {
	case DirLeft, DirRight:
		return AxisHorizontal
	case DirUp, DirDown:
		return AxisVertical
	}
	return AxisAny
}

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "L"
	case DirRight:
		return "R"
	case DirUp:
		return "U"
	case DirDown:
		return "D"
	}
	return "-"
}

// Axis restricts axisbound enemies to one pair of directions.
type Axis int

const (
	AxisAny Axis = iota // chosen at random when the enemy is created
	AxisHorizontal
	AxisVertical
)

// ParseAxis converts a level-file axis name. An empty name means AxisAny.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any", "random":
		return AxisAny, nil
	case "horizontal", "x":
		return AxisHorizontal, nil
	case "vertical", "y":
		return AxisVertical, nil
	}
	return AxisAny, fmt.Errorf("unknown axis %q", s)
}

// Pair returns the two directions along the axis.
func (a Axis) Pair() []Direction {
	switch a {
	case AxisHorizontal:
		return []Direction{DirLeft, DirRight}
	case AxisVertical:
		return []Direction{DirUp, DirDown}
	}
	return Directions()
}

func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	}
	return "any"
}

// Style is the decision algorithm of a dynamic enemy. It never changes after
// the enemy is created.
type Style int

const (
	StyleSeek Style = iota
	StyleRandomised
	StyleBurst
	StyleAxisbound
)

var styleNames = map[Style]string{
	StyleSeek:       "seek",
	StyleRandomised: "randomised",
	StyleBurst:      "burst",
	StyleAxisbound:  "axisbound",
}

// ParseStyle converts a style name, case-insensitively. An empty name is seek.
func ParseStyle(s string) (Style, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return StyleSeek, nil
	}
	if name == "randomized" {
		name = "randomised"
	}
	for st, n := range styleNames {
		if n == name {
			return st, nil
		}
	}
	return StyleSeek, fmt.Errorf("unknown enemy style %q", s)
}

// Valid reports whether s is one of the four known styles.
func (s Style) Valid() bool {
	_, ok := styleNames[s]
	return ok
}

func (s Style) String() string {
	if n, ok := styleNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Style(%d)", int(s))
}
