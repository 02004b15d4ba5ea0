package formats_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/cratehole/internal/games/holes/core"
	"github.com/vovakirdan/cratehole/internal/games/holes/levels/formats"
)

func TestCompileASCII(t *testing.T) {
	desc, err := formats.CompileASCII("#@1\n_a*\n..")
	if err != nil {
		t.Fatalf("CompileASCII failed: %v", err)
	}

	if desc.Width != 3 || desc.Height != 3 {
		t.Fatalf("size = %dx%d, want 3x3", desc.Width, desc.Height)
	}

	building, ok := desc.Layer(core.LayerBuilding)
	if !ok {
		t.Fatal("missing building layer")
	}
	if _, ok := desc.Layer(core.LayerFloor); !ok {
		t.Fatal("missing floor layer")
	}
	if desc.TileTypes[building[0]] != "solid" {
		t.Errorf("cell (0,0) type = %q, want solid", desc.TileTypes[building[0]])
	}
	if desc.TileTypes[building[3]] != "hole" {
		t.Errorf("cell (0,1) type = %q, want hole", desc.TileTypes[building[3]])
	}
	if building[8] != 0 {
		t.Errorf("padded cell should be empty, got %d", building[8])
	}

	want := []core.Object{
		{Type: core.ObjectSpawn, X: 1, Y: 0},
		{Type: core.ObjectCrate, X: 2, Y: 0, Style: 1},
		{Type: core.ObjectGoal, X: 1, Y: 1, Style: 1},
		{Type: core.ObjectGoal, X: 2, Y: 1},
	}
	if len(desc.Objects) != len(want) {
		t.Fatalf("objects = %+v", desc.Objects)
	}
	for i := range want {
		if desc.Objects[i] != want[i] {
			t.Errorf("object %d = %+v, want %+v", i, desc.Objects[i], want[i])
		}
	}
}

func TestCompileASCIIUnknownGlyph(t *testing.T) {
	_, err := formats.CompileASCII("@1a\n..X")
	if !errors.Is(err, core.ErrInvalidObject) {
		t.Errorf("expected ErrInvalidObject, got %v", err)
	}
}

func TestCompileASCIIAcceptsCRLF(t *testing.T) {
	lf, err := formats.CompileASCII("#@1\n_a*")
	if err != nil {
		t.Fatalf("CompileASCII(LF) failed: %v", err)
	}
	crlf, err := formats.CompileASCII("#@1\r\n_a*\r\n")
	if err != nil {
		t.Fatalf("CompileASCII(CRLF) failed: %v", err)
	}
	if !reflect.DeepEqual(lf, crlf) {
		t.Errorf("CRLF drawing compiled differently:\n%+v\n%+v", crlf, lf)
	}
}

func TestCompileASCIIRejectsFilledHole(t *testing.T) {
	_, err := formats.CompileASCII("@o1a")
	if !errors.Is(err, core.ErrInvalidObject) {
		t.Errorf("expected ErrInvalidObject, got %v", err)
	}
}

func TestParseYAMLLayers(t *testing.T) {
	data := []byte(`
id: layered
name: Layered
category: test
size: { w: 3, h: 1 }
infinite: false
tileset:
  7: hole
layers:
  - name: building
    data: [0, 7, 0]
  - name: floor
    data: [1, 1, 1]
objects:
  - { type: spawn, x: 0, y: 0 }
  - { type: crate, x: 1, y: 0, style: 3 }
  - { type: goal, x: 2, y: 0, style: 3 }
metadata:
  author: test
`)

	lvl, err := formats.ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if lvl.ID != "layered" || lvl.Category != "test" {
		t.Errorf("header = %q/%q", lvl.ID, lvl.Category)
	}
	if lvl.Metadata["author"] != "test" {
		t.Errorf("metadata = %v", lvl.Metadata)
	}
	if lvl.Description.TileTypes[7] != "hole" {
		t.Errorf("tileset = %v", lvl.Description.TileTypes)
	}
	if len(lvl.Description.Objects) != 3 {
		t.Errorf("objects = %+v", lvl.Description.Objects)
	}

	if _, err := core.NewLevel(lvl.Description); err != nil {
		t.Errorf("NewLevel failed: %v", err)
	}
}

func TestParseYAMLExtraObjects(t *testing.T) {
	// Objects can be layered over an ascii drawing, e.g. a crate on a goal.
	data := []byte(`
id: extra
ascii: |
  @1.
objects:
  - { type: goal, x: 1, y: 0 }
`)
	lvl, err := formats.ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}

	l, err := core.NewLevel(lvl.Description)
	if err != nil {
		t.Fatalf("NewLevel failed: %v", err)
	}
	if !l.IsWon() {
		t.Error("crate placed on its goal should win immediately")
	}
}

func TestParseRejectsASCIIWithLayers(t *testing.T) {
	data := []byte(`
id: both
ascii: "@1a"
layers:
  - { name: building, data: [0, 0, 0] }
`)
	if _, err := formats.ParseYAML(data); err == nil {
		t.Error("expected error when both ascii and layers are set")
	}
}

func TestParseValidatesObjectsAndLayers(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{
			name: "unknown object type",
			data: "id: x\nascii: \"@1a\"\nobjects:\n  - { type: switch, x: 0, y: 0 }\n",
			want: core.ErrInvalidObject,
		},
		{
			name: "missing floor layer",
			data: "id: x\nsize: { w: 1, h: 1 }\nlayers:\n  - name: building\n    data: [0]\n",
			want: core.ErrInvalidLayers,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := formats.ParseYAML([]byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseYAML error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseJSONMatchesYAML(t *testing.T) {
	yml := []byte("id: same\nascii: \"@1_.a\"\n")
	jsn := []byte(`{"id": "same", "ascii": "@1_.a"}`)

	a, err := formats.ParseYAML(yml)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	b, err := formats.ParseJSON(jsn)
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}

	la, err := core.NewLevel(a.Description)
	if err != nil {
		t.Fatalf("NewLevel(yaml) failed: %v", err)
	}
	lb, err := core.NewLevel(b.Description)
	if err != nil {
		t.Fatalf("NewLevel(json) failed: %v", err)
	}
	if core.RenderASCII(la) != core.RenderASCII(lb) {
		t.Errorf("yaml and json levels differ:\n%s\n---\n%s", core.RenderASCII(la), core.RenderASCII(lb))
	}
}

func TestParseUnsupportedExtension(t *testing.T) {
	if _, err := formats.Parse([]byte("{}"), ".tmx"); err == nil {
		t.Error("expected error for .tmx")
	}
}

func TestMarshalYAMLRoundTrip(t *testing.T) {
	fl := formats.FileLevel{ID: "rt", Name: "Round Trip", ASCII: "@1a\n"}
	out, err := formats.MarshalYAML(fl)
	if err != nil {
		t.Fatalf("MarshalYAML failed: %v", err)
	}
	lvl, err := formats.ParseYAML(out)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if lvl.ID != "rt" || lvl.Name != "Round Trip" {
		t.Errorf("got %q/%q", lvl.ID, lvl.Name)
	}
}
