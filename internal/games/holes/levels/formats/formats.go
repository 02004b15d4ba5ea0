// Package formats provides level file format parsers.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/cratehole/internal/games/holes/core"
)

// FileLevel is the on-disk structure shared by the YAML and JSON formats.
// A level gives either explicit layers, or an ascii drawing, plus optional
// extra objects.
type FileLevel struct {
	ID         string            `yaml:"id" json:"id"`
	Name       string            `yaml:"name" json:"name"`
	Category   string            `yaml:"category,omitempty" json:"category,omitempty"`
	Size       FileSize          `yaml:"size,omitempty" json:"size,omitempty"`
	Infinite   bool              `yaml:"infinite,omitempty" json:"infinite,omitempty"`
	Background string            `yaml:"background,omitempty" json:"background,omitempty"`
	TileSize   int               `yaml:"tile_size,omitempty" json:"tile_size,omitempty"`
	Tileset    map[int]string    `yaml:"tileset,omitempty" json:"tileset,omitempty"`
	Layers     []FileLayer       `yaml:"layers,omitempty" json:"layers,omitempty"`
	Objects    []FileObject      `yaml:"objects,omitempty" json:"objects,omitempty"`
	ASCII      string            `yaml:"ascii,omitempty" json:"ascii,omitempty"`
	Metadata   map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// FileSize represents grid dimensions.
type FileSize struct {
	W int `yaml:"w" json:"w"`
	H int `yaml:"h" json:"h"`
}

// FileLayer is a named row-major layer of tile ids (0 = empty).
type FileLayer struct {
	Name string `yaml:"name" json:"name"`
	Data []int  `yaml:"data" json:"data"`
}

// FileObject is a spawn, crate or goal placed on a cell.
type FileObject struct {
	Type  string `yaml:"type" json:"type"`
	X     int    `yaml:"x" json:"x"`
	Y     int    `yaml:"y" json:"y"`
	Style int    `yaml:"style,omitempty" json:"style,omitempty"`
}

// Level is a parsed level ready to be turned into a core.Level.
type Level struct {
	ID          string
	Name        string
	Category    string
	Description core.Description
	Metadata    map[string]string
}

// Tile ids used when compiling ascii drawings.
const (
	asciiSolidID = 1
	asciiHoleID  = 2
	asciiFloorID = 3
)

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".json"}
}

// Parse routes data to the parser for the given extension.
func Parse(data []byte, ext string) (Level, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// toLevel converts the file structure into a Description.
func (fl FileLevel) toLevel() (Level, error) {
	lvl := Level{
		ID:       fl.ID,
		Name:     fl.Name,
		Category: fl.Category,
		Metadata: fl.Metadata,
	}

	var desc core.Description
	if strings.TrimSpace(fl.ASCII) != "" {
		if len(fl.Layers) > 0 {
			return Level{}, fmt.Errorf("level %q: ascii and layers are mutually exclusive", fl.ID)
		}
		compiled, err := CompileASCII(fl.ASCII)
		if err != nil {
			return Level{}, fmt.Errorf("level %q: %w", fl.ID, err)
		}
		desc = compiled
	} else {
		desc = core.Description{
			Width:     fl.Size.W,
			Height:    fl.Size.H,
			TileTypes: fl.Tileset,
		}
		names := make(map[string]bool)
		for _, l := range fl.Layers {
			names[l.Name] = true
			desc.Layers = append(desc.Layers, core.Layer{Name: l.Name, Data: l.Data})
		}
		for _, required := range []string{core.LayerBuilding, core.LayerFloor} {
			if !names[required] {
				return Level{}, fmt.Errorf("level %q: %w: missing %q", fl.ID, core.ErrInvalidLayers, required)
			}
		}
	}

	desc.Infinite = fl.Infinite
	desc.Background = fl.Background
	desc.TileSize = fl.TileSize
	for i, o := range fl.Objects {
		switch o.Type {
		case core.ObjectSpawn, core.ObjectCrate, core.ObjectGoal:
		default:
			return Level{}, fmt.Errorf("level %q: %w: object %d has unknown type %q", fl.ID, core.ErrInvalidObject, i, o.Type)
		}
		desc.Objects = append(desc.Objects, core.Object{Type: o.Type, X: o.X, Y: o.Y, Style: o.Style})
	}

	lvl.Description = desc
	return lvl, nil
}

// CompileASCII turns a drawing into a Description. Glyphs:
//
//	#      solid       _      hole        . or space  floor
//	@      spawn       1-9    crate       a-i  goal for style 1-9
//	*      goal accepting any style
//
// Short lines are padded with floor. CRLF line endings are accepted.
//
// A drawing is a start state. RenderASCII output of a level in play reads
// back only while no crate sits in a hole or on a goal: the filled-hole
// glyph 'o' is rejected, and a crate on a goal draws as the crate alone.
func CompileASCII(drawing string) (core.Description, error) {
	drawing = strings.ReplaceAll(drawing, "\r\n", "\n")
	lines := strings.Split(strings.Trim(drawing, "\n"), "\n")
	w := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > w {
			w = n
		}
	}
	h := len(lines)

	desc := core.Description{
		Width:  w,
		Height: h,
		TileTypes: map[int]string{
			asciiSolidID: "solid",
			asciiHoleID:  "hole",
			asciiFloorID: "floor",
		},
	}
	building := make([]int, w*h)
	floor := make([]int, w*h)

	for y, line := range lines {
		runes := []rune(line)
		for x := 0; x < w; x++ {
			r := ' '
			if x < len(runes) {
				r = runes[x]
			}
			i := y*w + x
			floor[i] = asciiFloorID

			switch {
			case r == core.GlyphSolid:
				building[i] = asciiSolidID
				floor[i] = 0
			case r == core.GlyphHole:
				building[i] = asciiHoleID
			case r == core.GlyphFloor || r == ' ':
			case r == core.GlyphPlayer:
				desc.Objects = append(desc.Objects, core.Object{Type: core.ObjectSpawn, X: x, Y: y})
			case r >= '1' && r <= '9':
				desc.Objects = append(desc.Objects, core.Object{Type: core.ObjectCrate, X: x, Y: y, Style: int(r - '0')})
			case r >= 'a' && r <= 'i':
				desc.Objects = append(desc.Objects, core.Object{Type: core.ObjectGoal, X: x, Y: y, Style: int(r-'a') + 1})
			case r == core.GlyphGoalAny:
				desc.Objects = append(desc.Objects, core.Object{Type: core.ObjectGoal, X: x, Y: y})
			case r == core.GlyphFilledHole:
				return core.Description{}, fmt.Errorf("%w: filled hole at (%d,%d); levels start with empty holes", core.ErrInvalidObject, x, y)
			default:
				return core.Description{}, fmt.Errorf("%w: unknown glyph %q at (%d,%d)", core.ErrInvalidObject, r, x, y)
			}
		}
	}

	desc.Layers = []core.Layer{
		{Name: core.LayerBuilding, Data: building},
		{Name: core.LayerFloor, Data: floor},
	}
	return desc, nil
}
