package core

// Tile classifies a level cell. Tiles never change during play.
type Tile uint8

const (
	TileFloor Tile = iota
	TileSolid
	TileHole
)

// String returns the string representation of a tile.
func (t Tile) String() string {
	switch t {
	case TileFloor:
		return "floor"
	case TileSolid:
		return "solid"
	case TileHole:
		return "hole"
	default:
		return "unknown"
	}
}

// TileFromType maps a tileset's declared tile type to a Tile.
// Anything other than "solid" or "hole" is walkable floor.
func TileFromType(userType string) Tile {
	switch userType {
	case "solid":
		return TileSolid
	case "hole":
		return TileHole
	default:
		return TileFloor
	}
}

// Tilemap is an immutable grid of tiles stored in row-major order.
type Tilemap struct {
	w     int
	h     int
	tiles []Tile
}

// NewTilemap classifies every cell of a building layer.
// building holds one tile id per cell (0 means no tile); types maps tile ids
// to their declared type. Cells with no tile, or with a tile that declares no
// type, become TileFloor.
func NewTilemap(w, h int, building []int, types map[int]string) (*Tilemap, error) {
	if w <= 0 || h <= 0 || len(building) != w*h {
		return nil, newLoadError(ErrInvalidDimensions,
			"building layer has %d cells, want %dx%d", len(building), w, h)
	}

	tiles := make([]Tile, len(building))
	for i, id := range building {
		if id == 0 {
			tiles[i] = TileFloor
			continue
		}
		tiles[i] = TileFromType(types[id])
	}

	return &Tilemap{w: w, h: h, tiles: tiles}, nil
}

// Size returns the tilemap dimensions in cells.
func (m *Tilemap) Size() (w, h int) {
	return m.w, m.h
}

// InBounds returns true if the coordinate lies inside the map.
func (m *Tilemap) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < m.w && c.Y >= 0 && c.Y < m.h
}

// Get returns the tile at c. The second result is false when c is outside the
// map; callers treat that as impassable.
func (m *Tilemap) Get(c Coord) (Tile, bool) {
	if !m.InBounds(c) {
		return TileSolid, false
	}
	return m.tiles[c.Y*m.w+c.X], true
}

// Is reports whether c is inside the map and holds tile t.
func (m *Tilemap) Is(c Coord, t Tile) bool {
	got, ok := m.Get(c)
	return ok && got == t
}

// Count returns how many cells hold tile t.
func (m *Tilemap) Count(t Tile) int {
	n := 0
	for _, tile := range m.tiles {
		if tile == t {
			n++
		}
	}
	return n
}
