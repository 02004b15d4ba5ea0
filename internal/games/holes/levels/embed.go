package levels

import (
	"embed"
	"io/fs"
)

//go:embed pack
var packFS embed.FS

// EmbeddedName labels levels loaded from the built-in pack.
const EmbeddedName = "embedded"

// DefaultPack returns the built-in level pack.
func DefaultPack() fs.FS {
	sub, err := fs.Sub(packFS, "pack")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewDefaultLoader returns a loader over the built-in level pack.
func NewDefaultLoader() *Loader {
	return NewFSLoader(DefaultPack(), EmbeddedName)
}
