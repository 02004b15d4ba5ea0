package core

// Layer names a level description must provide.
const (
	LayerBuilding = "building"
	LayerFloor    = "floor"
)

// Object types a level description may place.
const (
	ObjectSpawn = "spawn"
	ObjectCrate = "crate"
	ObjectGoal  = "goal"
)

// Layer is a named row-major tile layer. Each entry is a tile id; 0 is empty.
type Layer struct {
	Name string
	Data []int
}

// Object is a map object placed on a cell.
// For crates Style is the crate style (must be positive). For goals Style is
// the accepted style, 0 meaning any style.
type Object struct {
	Type  string
	X     int
	Y     int
	Style int
}

// Description is a parsed level map, the only input the simulation needs.
// Background and TileSize are cosmetic and ignored by the simulation.
type Description struct {
	Width     int
	Height    int
	Infinite  bool
	Layers    []Layer
	TileTypes map[int]string
	Objects   []Object

	Background string
	TileSize   int
}

// Layer returns the data of the first layer with the given name.
func (d Description) Layer(name string) ([]int, bool) {
	for _, l := range d.Layers {
		if l.Name == name {
			return l.Data, true
		}
	}
	return nil, false
}
