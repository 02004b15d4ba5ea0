package holes

import (
	"math/rand"

	"github.com/vovakirdan/cratehole/internal/config"
)

// Cues picks a feedback cue variant each time the level signals a move or an
// undo. It implements core.Effects. Picks come from an injected source so a
// seeded game replays the same cues.
type Cues struct {
	rng     *rand.Rand
	move    []string
	undo    []string
	enabled bool

	last  string
	moves int
	undos int
}

// NewCues creates a cue picker.
func NewCues(cfg config.CuesConfig, rng *rand.Rand) *Cues {
	return &Cues{
		rng:     rng,
		move:    cfg.Move,
		undo:    cfg.Undo,
		enabled: cfg.Enabled,
	}
}

// Moved records a move cue.
func (c *Cues) Moved() {
	c.moves++
	c.last = c.pick(c.move)
}

// Undone records an undo cue.
func (c *Cues) Undone() {
	c.undos++
	c.last = c.pick(c.undo)
}

func (c *Cues) pick(variants []string) string {
	if !c.enabled || len(variants) == 0 {
		return ""
	}
	return variants[c.rng.Intn(len(variants))]
}

// Last returns the most recent cue, or "" if none.
func (c *Cues) Last() string {
	return c.last
}

// Counts returns how many move and undo signals were received.
func (c *Cues) Counts() (moves, undos int) {
	return c.moves, c.undos
}

// Clear forgets the last cue.
func (c *Cues) Clear() {
	c.last = ""
}
