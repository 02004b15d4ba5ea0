package core_test

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/cratehole/internal/games/holes/core"
)

// workedGrid is the reference layout for the step tables below.
//
//	  x 0 1 2 3 4
//	y0  . . . . .
//	y1  @ 1 . _ .
//	y2  . . . 2 .
//	y3  . . . . .
//	y4  * . . . *
var workedGrid = []string{
	".....",
	"@1._.",
	"...2.",
	".....",
	"*...*",
}

func TestWorkedGridTransitions(t *testing.T) {
	const undo = core.Direction(255)

	type crate = core.CrateState
	steps := []struct {
		name    string
		dir     core.Direction
		player  core.Player
		crates  []crate
		covered []bool
		depth   int
	}{
		{
			name:    "walk north into empty cell",
			dir:     core.North,
			player:  core.Player{Pos: core.C(0, 0), Facing: core.North},
			crates:  []crate{{Pos: core.C(1, 1)}, {Pos: core.C(3, 2)}},
			covered: []bool{false, false},
			depth:   1,
		},
		{
			name:    "undo walk",
			dir:     undo,
			player:  core.Player{Pos: core.C(0, 1), Facing: core.South},
			crates:  []crate{{Pos: core.C(1, 1)}, {Pos: core.C(3, 2)}},
			covered: []bool{false, false},
			depth:   0,
		},
		{
			name:    "push crate into floor",
			dir:     core.East,
			player:  core.Player{Pos: core.C(1, 1), Facing: core.East},
			crates:  []crate{{Pos: core.C(2, 1)}, {Pos: core.C(3, 2)}},
			covered: []bool{false, false},
			depth:   1,
		},
		{
			name:    "undo push into floor",
			dir:     undo,
			player:  core.Player{Pos: core.C(0, 1), Facing: core.South},
			crates:  []crate{{Pos: core.C(1, 1)}, {Pos: core.C(3, 2)}},
			covered: []bool{false, false},
			depth:   0,
		},
		{
			name:    "push crate into floor again",
			dir:     core.East,
			player:  core.Player{Pos: core.C(1, 1), Facing: core.East},
			crates:  []crate{{Pos: core.C(2, 1)}, {Pos: core.C(3, 2)}},
			covered: []bool{false, false},
			depth:   1,
		},
		{
			name:    "push crate into empty hole claims it",
			dir:     core.East,
			player:  core.Player{Pos: core.C(2, 1), Facing: core.East},
			crates:  []crate{{Pos: core.C(3, 1), InHole: true}, {Pos: core.C(3, 2)}},
			covered: []bool{false, false},
			depth:   2,
		},
		{
			name:    "undo push into hole lifts the crate out",
			dir:     undo,
			player:  core.Player{Pos: core.C(1, 1), Facing: core.East},
			crates:  []crate{{Pos: core.C(2, 1)}, {Pos: core.C(3, 2)}},
			covered: []bool{false, false},
			depth:   1,
		},
		{
			name:    "push crate into hole again",
			dir:     core.East,
			player:  core.Player{Pos: core.C(2, 1), Facing: core.East},
			crates:  []crate{{Pos: core.C(3, 1), InHole: true}, {Pos: core.C(3, 2)}},
			covered: []bool{false, false},
			depth:   2,
		},
		{
			name:    "walk south",
			dir:     core.South,
			player:  core.Player{Pos: core.C(2, 2), Facing: core.South},
			crates:  []crate{{Pos: core.C(3, 1), InHole: true}, {Pos: core.C(3, 2)}},
			covered: []bool{false, false},
			depth:   3,
		},
		{
			name:    "walk south again",
			dir:     core.South,
			player:  core.Player{Pos: core.C(2, 3), Facing: core.South},
			crates:  []crate{{Pos: core.C(3, 1), InHole: true}, {Pos: core.C(3, 2)}},
			covered: []bool{false, false},
			depth:   4,
		},
		{
			name:    "walk east below second crate",
			dir:     core.East,
			player:  core.Player{Pos: core.C(3, 3), Facing: core.East},
			crates:  []crate{{Pos: core.C(3, 1), InHole: true}, {Pos: core.C(3, 2)}},
			covered: []bool{false, false},
			depth:   5,
		},
		{
			name:    "push crate onto held hole stacks without claiming",
			dir:     core.North,
			player:  core.Player{Pos: core.C(3, 2), Facing: core.North},
			crates:  []crate{{Pos: core.C(3, 1), InHole: true}, {Pos: core.C(3, 1)}},
			covered: []bool{true, false},
			depth:   6,
		},
		{
			name:    "undo stack pulls the top crate back",
			dir:     undo,
			player:  core.Player{Pos: core.C(3, 3), Facing: core.East},
			crates:  []crate{{Pos: core.C(3, 1), InHole: true}, {Pos: core.C(3, 2)}},
			covered: []bool{false, false},
			depth:   5,
		},
	}

	l := mustLevel(t, workedGrid)
	if got := l.Player(); got != (core.Player{Pos: core.C(0, 1), Facing: core.South}) {
		t.Fatalf("spawn player = %+v", got)
	}

	for _, step := range steps {
		if step.dir == undo {
			if !l.Undo() {
				t.Fatalf("%s: undo failed", step.name)
			}
		} else if !l.MovePlayer(step.dir) {
			t.Fatalf("%s: move %s blocked\n%s", step.name, step.dir, core.RenderASCII(l))
		}

		snap := l.Snapshot()
		if snap.Player != step.player {
			t.Errorf("%s: player = %+v, want %+v", step.name, snap.Player, step.player)
		}
		for i, want := range step.crates {
			if snap.Crates[i] != want {
				t.Errorf("%s: crate %d = %+v, want %+v", step.name, i, snap.Crates[i], want)
			}
		}
		for i, c := range l.Crates() {
			if c.Covered != step.covered[i] {
				t.Errorf("%s: crate %d covered = %v, want %v", step.name, i, c.Covered, step.covered[i])
			}
		}
		if l.ActionCount() != step.depth {
			t.Errorf("%s: depth = %d, want %d", step.name, l.ActionCount(), step.depth)
		}
	}
}

func TestReciprocalAsymmetry(t *testing.T) {
	t.Run("walk is undone by a push", func(t *testing.T) {
		l := mustLevel(t, []string{"@..1*"})
		undo, ok := core.PushAction(core.East, core.East).Apply(l)
		if !ok {
			t.Fatal("walk failed")
		}
		want := core.PushAction(core.West, core.South)
		if undo != want {
			t.Errorf("reciprocal = %v, want %v", undo, want)
		}
	})

	t.Run("crate push is undone by a pull", func(t *testing.T) {
		l := mustLevel(t, []string{"@1.*"})
		undo, ok := core.PushAction(core.East, core.East).Apply(l)
		if !ok {
			t.Fatal("push failed")
		}
		want := core.PullAction(core.West, core.South)
		if undo != want {
			t.Errorf("reciprocal = %v, want %v", undo, want)
		}
	})

	t.Run("pull with crate is undone by a push", func(t *testing.T) {
		l := mustLevel(t, []string{"1@..*"})
		undo, ok := core.PullAction(core.East, core.West).Apply(l)
		if !ok {
			t.Fatal("pull failed")
		}
		if got := l.Crates()[0].Pos; got != core.C(1, 0) {
			t.Errorf("dragged crate at %v, want (1,0)", got)
		}
		if got := l.Player(); got != (core.Player{Pos: core.C(2, 0), Facing: core.West}) {
			t.Errorf("player = %+v", got)
		}
		want := core.PushAction(core.West, core.South)
		if undo != want {
			t.Errorf("reciprocal = %v, want %v", undo, want)
		}

		if _, ok := undo.Apply(l); !ok {
			t.Fatal("reciprocal failed")
		}
		if got := l.Crates()[0].Pos; got != core.C(0, 0) {
			t.Errorf("crate after reciprocal at %v, want (0,0)", got)
		}
		if got := l.Player(); got != (core.Player{Pos: core.C(1, 0), Facing: core.South}) {
			t.Errorf("player after reciprocal = %+v", got)
		}
	})

	t.Run("pull without crate is undone by a push", func(t *testing.T) {
		l := mustLevel(t, []string{".@.1*"})
		undo, ok := core.PullAction(core.East, core.East).Apply(l)
		if !ok {
			t.Fatal("pull failed")
		}
		want := core.PushAction(core.West, core.South)
		if undo != want {
			t.Errorf("reciprocal = %v, want %v", undo, want)
		}
		if got := l.Player().Pos; got != core.C(2, 0) {
			t.Errorf("player at %v, want (2,0)", got)
		}
	})
}

func TestPullLiftsCrateOutOfHole(t *testing.T) {
	l := mustLevel(t, []string{"@1_..", "....*"})

	// Fill the hole, cross it, then pull the crate back out.
	move(t, l, core.East, core.East, core.East)
	if got := l.Player().Pos; got != core.C(3, 0) {
		t.Fatalf("player at %v, want (3,0)", got)
	}

	if !l.Perform(core.PullAction(core.East, core.West)) {
		t.Fatal("pull failed")
	}

	c := l.Crates()[0]
	if c.Pos != core.C(3, 0) || c.InHole {
		t.Errorf("crate = %+v, want (3,0) out of the hole", c)
	}
	if l.IsCellWalkable(core.C(2, 0)) {
		t.Error("emptied hole should not be walkable")
	}
}

func TestPushFailureAtomicity(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		dir  core.Direction
	}{
		{"crate into solid", []string{"@1#", "..*"}, core.East},
		{"crate into crate", []string{"@12.", "...*"}, core.East},
		{"crate off the map", []string{"@1", ".*"}, core.East},
		{"walk into solid", []string{"@#1", "..*"}, core.East},
		{"walk into empty hole", []string{"@_1", "..*"}, core.East},
		{"walk off the map", []string{"@1*"}, core.North},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := &countingEffects{}
			l := mustLevel(t, tt.rows, core.WithEffects(fx))
			before := l.Snapshot()

			if l.MovePlayer(tt.dir) {
				t.Fatal("expected move to fail")
			}
			if !l.Snapshot().Equal(before) {
				t.Errorf("state changed on failed move:\nbefore %+v\nafter  %+v", before, l.Snapshot())
			}
			if l.Player().Facing != core.South {
				t.Error("blocked move must not change facing")
			}
			if l.ActionCount() != 0 {
				t.Errorf("undo stack grew to %d", l.ActionCount())
			}
			if fx.moved != 0 {
				t.Error("blocked move must not signal effects")
			}
		})
	}
}

func TestSmallGridScenario(t *testing.T) {
	// 3x3, solid at (2,1), spawn (1,1), crate (1,0), goal (1,2).
	l := mustLevel(t, []string{
		".1.",
		".@#",
		".a.",
	})

	if l.MovePlayer(core.North) {
		t.Error("pushing the crate off the top edge should fail")
	}
	if l.MovePlayer(core.East) {
		t.Error("walking into the solid tile should fail")
	}

	if !l.Perform(core.PullAction(core.South, core.South)) {
		t.Fatal("pull south failed")
	}
	if got := l.Crates()[0].Pos; got != core.C(1, 1) {
		t.Fatalf("crate at %v, want (1,1)", got)
	}

	move(t, l, core.West, core.North, core.North, core.East, core.South)
	if !l.IsWon() {
		t.Fatalf("expected win\n%s", core.RenderASCII(l))
	}

	for l.Undo() {
	}
	if got := l.Player(); got != (core.Player{Pos: core.C(1, 1), Facing: core.South}) {
		t.Errorf("player after full undo = %+v", got)
	}
	if got := l.Crates()[0].Pos; got != core.C(1, 0) {
		t.Errorf("crate after full undo at %v", got)
	}
}

// randomLevel has holes, stacking opportunities and several styles.
var randomLevel = []string{
	"........",
	".@1_2...",
	".._3_.#.",
	"..4..1..",
	"._..*a._",
	"........",
}

func TestUndoExactnessRandomWalk(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		l := mustLevel(t, randomLevel)
		initial := l.Snapshot()

		var snaps []core.Snapshot
		for i := 0; i < 300; i++ {
			if len(snaps) > 0 && rng.Intn(4) == 0 {
				want := snaps[len(snaps)-1]
				snaps = snaps[:len(snaps)-1]
				if !l.Undo() {
					t.Fatalf("seed %d step %d: undo failed", seed, i)
				}
				if !l.Snapshot().Equal(want) {
					t.Fatalf("seed %d step %d: undo mismatch\nwant %+v\ngot  %+v", seed, i, want, l.Snapshot())
				}
				continue
			}

			before := l.Snapshot()
			d := core.Directions[rng.Intn(len(core.Directions))]
			target := l.Player().Pos.Step(d)
			walkable := l.IsCellWalkable(target)

			moved := l.MovePlayer(d)
			if !walkable && moved {
				t.Fatalf("seed %d step %d: moved onto unwalkable %v", seed, i, target)
			}
			if moved {
				snaps = append(snaps, before)
			} else if !l.Snapshot().Equal(before) {
				t.Fatalf("seed %d step %d: failed move changed state", seed, i)
			}

			assertHoleClaimsUnique(t, l)
		}

		for l.Undo() {
		}
		if !l.Snapshot().Equal(initial) {
			t.Errorf("seed %d: full undo did not restore the initial state", seed)
		}
	}
}

func TestObstructionMonotonicity(t *testing.T) {
	l := mustLevel(t, randomLevel)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		for _, d := range core.Directions {
			target := l.Player().Pos.Step(d)
			if l.IsCellWalkable(target) {
				continue
			}
			pos := l.Player().Pos
			if l.MovePlayer(d) {
				t.Fatalf("moved %s onto unwalkable %v", d, target)
			}
			if l.Player().Pos != pos {
				t.Fatalf("player position changed on blocked move %s", d)
			}
		}
		l.MovePlayer(core.Directions[rng.Intn(len(core.Directions))])
	}
}

func TestHoleClaimUniqueness(t *testing.T) {
	// Three crates routed into the same hole.
	l := mustLevel(t, []string{
		"..1..",
		"@2_3.",
		".....",
		"....*",
	})

	move(t, l, core.East) // crate 2 claims the hole
	assertHoleClaimsUnique(t, l)

	// Crate 3 sits east of the hole; walk around and push it west onto it.
	move(t, l, core.South, core.East, core.East, core.East, core.North, core.West)
	assertHoleClaimsUnique(t, l)

	hole := core.C(2, 1)
	inHole := 0
	onHole := 0
	for _, c := range l.Crates() {
		if c.Pos == hole {
			onHole++
			if c.InHole {
				inHole++
			}
		}
	}
	if onHole != 2 || inHole != 1 {
		t.Errorf("on hole = %d, in hole = %d; want 2 and 1\n%s", onHole, inHole, core.RenderASCII(l))
	}

	// The stacked crate blocks crate 1 from being pushed down onto it.
	if !l.IsCellObstructed(hole) {
		t.Error("hole with a stacked crate should be obstructed")
	}
}

func assertHoleClaimsUnique(t *testing.T, l *core.Level) {
	t.Helper()
	claims := make(map[core.Coord]int)
	for _, c := range l.Crates() {
		if !c.InHole {
			continue
		}
		if !l.Tilemap().Is(c.Pos, core.TileHole) {
			t.Fatalf("crate in hole at %v which is not a hole", c.Pos)
		}
		claims[c.Pos]++
		if claims[c.Pos] > 1 {
			t.Fatalf("hole %v claimed by %d crates", c.Pos, claims[c.Pos])
		}
	}
}

func TestEffectsSignals(t *testing.T) {
	fx := &countingEffects{}
	l := mustLevel(t, workedGrid, core.WithEffects(fx))

	move(t, l, core.East, core.North, core.West)
	l.Undo()

	if fx.moved != 3 {
		t.Errorf("moved = %d, want 3", fx.moved)
	}
	if fx.undone != 1 {
		t.Errorf("undone = %d, want 1", fx.undone)
	}

	// Undo on an empty stack is a silent no-op.
	for l.Undo() {
	}
	undone := fx.undone
	if l.Undo() {
		t.Error("undo on empty history should report false")
	}
	if fx.undone != undone {
		t.Error("empty undo must not signal effects")
	}
}

func TestHistoryIsACopy(t *testing.T) {
	l := mustLevel(t, workedGrid)
	move(t, l, core.East)

	h := l.History()
	if len(h) != 1 || h[0] != core.PullAction(core.West, core.South) {
		t.Fatalf("history = %v", h)
	}
	h[0] = core.PushAction(core.North, core.North)
	if l.History()[0] != core.PullAction(core.West, core.South) {
		t.Error("mutating History() result changed the level")
	}
}

func TestHashTracksState(t *testing.T) {
	l := mustLevel(t, workedGrid)
	h0 := l.Hash()

	move(t, l, core.East)
	if l.Hash() == h0 {
		t.Error("hash unchanged after a move")
	}
	l.Undo()
	if l.Hash() != h0 {
		t.Error("hash differs after undo")
	}
}
