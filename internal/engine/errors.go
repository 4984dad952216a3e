package engine

import "errors"

var (
	// ErrInvalidOptions is returned when world options cannot produce whole-pixel slides.
	ErrInvalidOptions = errors.New("engine: invalid options")
	// ErrInvalidEnemy is returned for an enemy spec with a bad style, frequency or delay.
	ErrInvalidEnemy = errors.New("engine: invalid enemy")
	// ErrSnapshotMismatch is returned when a snapshot does not have one
	// coordinate per moving entity of the layout.
	ErrSnapshotMismatch = errors.New("engine: snapshot does not match layout")
	// ErrSnapshotUnaligned is returned when a snapshot coordinate is off the tile grid.
	ErrSnapshotUnaligned = errors.New("engine: snapshot coordinate is not tile aligned")
)
