package core_test

import (
	"strings"
	"testing"

	"github.com/vovakirdan/cratehole/internal/games/holes/core"
	"github.com/vovakirdan/cratehole/internal/games/holes/levels/formats"
)

// mustLevel builds a level from ascii rows.
func mustLevel(t *testing.T, rows []string, opts ...core.Option) *core.Level {
	t.Helper()

	desc, err := formats.CompileASCII(strings.Join(rows, "\n"))
	if err != nil {
		t.Fatalf("CompileASCII failed: %v", err)
	}
	l, err := core.NewLevel(desc, opts...)
	if err != nil {
		t.Fatalf("NewLevel failed: %v", err)
	}
	return l
}

// move performs a sequence of player moves and fails on the first blocked one.
func move(t *testing.T, l *core.Level, dirs ...core.Direction) {
	t.Helper()
	for i, d := range dirs {
		if !l.MovePlayer(d) {
			t.Fatalf("move %d (%s) blocked\n%s", i, d, core.RenderASCII(l))
		}
	}
}

// countingEffects records effect signals.
type countingEffects struct {
	moved  int
	undone int
}

func (c *countingEffects) Moved()  { c.moved++ }
func (c *countingEffects) Undone() { c.undone++ }
