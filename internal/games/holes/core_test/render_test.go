package core_test

import (
	"testing"

	"github.com/vovakirdan/cratehole/internal/games/holes/core"
)

func TestRenderASCII(t *testing.T) {
	l := mustLevel(t, []string{
		"#####",
		"@1_.a",
		"..*.#",
	})

	want := "#####\n@1_.a\n..*.#"
	if got := core.RenderASCII(l); got != want {
		t.Errorf("initial render:\n%s\nwant:\n%s", got, want)
	}

	move(t, l, core.East)
	want = "#####\n.@o.a\n..*.#"
	if got := core.RenderASCII(l); got != want {
		t.Errorf("after filling the hole:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderASCIIRoundTrip(t *testing.T) {
	rows := []string{
		"..#..",
		"@3_b.",
		"..*..",
	}
	l := mustLevel(t, rows)
	// A fresh level renders back to its source drawing.
	if got := core.RenderASCII(l); got != "..#..\n@3_b.\n..*.." {
		t.Errorf("render = %q", got)
	}
}

func TestGlyphs(t *testing.T) {
	if g := core.CrateGlyph(4); g != '4' {
		t.Errorf("CrateGlyph(4) = %q", g)
	}
	if g := core.CrateGlyph(12); g != '+' {
		t.Errorf("CrateGlyph(12) = %q", g)
	}
	if g := core.GoalGlyph(core.AnyStyle()); g != '*' {
		t.Errorf("GoalGlyph(any) = %q", g)
	}
	if g := core.GoalGlyph(core.OnlyStyle(2)); g != 'b' {
		t.Errorf("GoalGlyph(2) = %q", g)
	}
}
