package core

import (
	"errors"
	"fmt"
)

// Level construction failures. Each one aborts construction; NewLevel never
// returns a partially built Level.
var (
	ErrNoPlayerSpawn        = errors.New("no player spawn: there must be a single player spawn object per level")
	ErrMultiplePlayerSpawns = errors.New("multiple player spawns: there must be a single player spawn object per level")
	ErrNoGoalsOrCrates      = errors.New("no goals or crates: there must be at least one goal and one crate per level")
	ErrNotFinite            = errors.New("map not finite: the level map must be finite")
	ErrInvalidDimensions    = errors.New("invalid dimensions")
	ErrInvalidLayers        = errors.New(`invalid layers: a level needs a "building" and a "floor" layer`)
	ErrInvalidObject        = errors.New("invalid object")
	ErrInvalidStyle         = errors.New("invalid crate style")
)

// LoadError describes why a level description was rejected.
// It unwraps to one of the Err* sentinels above.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("[%s] %v", e.Code, e.Err)
	}
	return fmt.Sprintf("[%s] %v: %s", e.Code, e.Err, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

var errorCodes = map[error]string{
	ErrNoPlayerSpawn:        "NO_PLAYER_SPAWN",
	ErrMultiplePlayerSpawns: "MULTIPLE_PLAYER_SPAWNS",
	ErrNoGoalsOrCrates:      "NO_GOALS_OR_CRATES",
	ErrNotFinite:            "NOT_FINITE",
	ErrInvalidDimensions:    "INVALID_DIMENSIONS",
	ErrInvalidLayers:        "INVALID_LAYERS",
	ErrInvalidObject:        "INVALID_OBJECT",
	ErrInvalidStyle:         "INVALID_STYLE",
}

func newLoadError(sentinel error, format string, args ...any) *LoadError {
	return &LoadError{
		Code:    errorCodes[sentinel],
		Message: fmt.Sprintf(format, args...),
		Err:     sentinel,
	}
}
