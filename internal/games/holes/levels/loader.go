// Package levels loads level packs from disk or from the embedded default
// pack. This package depends on core but core does not depend on levels.
package levels

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cratehole/internal/games/holes/core"
	"github.com/vovakirdan/cratehole/internal/games/holes/levels/formats"
)

// DefaultCategory is used for levels that name no category and sit at the
// root of the pack.
const DefaultCategory = "default"

// Level is a complete level definition.
type Level struct {
	ID          string
	Name        string
	Category    string
	Description core.Description
	Metadata    map[string]string
	FilePath    string
}

// NewLevel constructs a fresh playable level. Restarting a level is
// constructing it again.
func (l *Level) NewLevel(opts ...core.Option) (*core.Level, error) {
	lvl, err := core.NewLevel(l.Description, opts...)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", l.ID, err)
	}
	return lvl, nil
}

// Title returns the display name, falling back to the ID.
func (l *Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// Loader handles loading levels from a directory tree or an fs.FS.
type Loader struct {
	Root   string
	fsys   fs.FS
	logger *log.Logger
}

// NewLoader creates a loader reading from the directory root.
func NewLoader(root string) *Loader {
	return &Loader{
		Root:   root,
		fsys:   os.DirFS(root),
		logger: log.New(io.Discard),
	}
}

// NewFSLoader creates a loader reading from fsys. name labels file paths.
func NewFSLoader(fsys fs.FS, name string) *Loader {
	return &Loader{
		Root:   name,
		fsys:   fsys,
		logger: log.New(io.Discard),
	}
}

// WithLogger sets the logger used to report skipped files.
func (l *Loader) WithLogger(logger *log.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// LoadAll recursively scans and loads all level files.
// Files that fail to parse or construct are skipped and logged.
// Levels are sorted by category, then ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level
	seen := make(map[string]string)

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !IsLevelFile(p) {
			return nil
		}

		level, err := l.load(p)
		if err != nil {
			l.logger.Warn("skipping level", "file", p, "error", err)
			return nil
		}
		if _, err := level.NewLevel(); err != nil {
			l.logger.Warn("skipping level", "file", p, "error", err)
			return nil
		}
		if prev, dup := seen[level.ID]; dup {
			l.logger.Warn("duplicate level id", "id", level.ID, "file", p, "first", prev)
			return nil
		}
		seen[level.ID] = p

		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.Root, err)
	}

	Sort(levels)
	l.logger.Debug("levels loaded", "root", l.Root, "count", len(levels))
	return levels, nil
}

// LoadFile loads a single level file from the filesystem, independent of
// the loader root.
func LoadFile(filePath string) (Level, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", filePath, err)
	}
	level, err := parse(data, filePath)
	if err != nil {
		return Level{}, err
	}
	if level.Category == "" {
		level.Category = DefaultCategory
	}
	return level, nil
}

// LoadFile loads a single level file relative to the loader root.
func (l *Loader) LoadFile(p string) (Level, error) {
	return l.load(filepath.ToSlash(p))
}

func (l *Loader) load(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", p, err)
	}

	level, err := parse(data, p)
	if err != nil {
		return Level{}, err
	}
	if level.Category == "" {
		level.Category = categoryFromPath(p)
	}
	level.FilePath = filepath.Join(l.Root, filepath.FromSlash(p))
	return level, nil
}

func parse(data []byte, p string) (Level, error) {
	parsed, err := formats.Parse(data, path.Ext(filepath.ToSlash(p)))
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", p, err)
	}

	id := parsed.ID
	if id == "" {
		base := path.Base(filepath.ToSlash(p))
		id = strings.TrimSuffix(base, path.Ext(base))
	}

	return Level{
		ID:          id,
		Name:        parsed.Name,
		Category:    parsed.Category,
		Description: parsed.Description,
		Metadata:    parsed.Metadata,
		FilePath:    p,
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}

// ListIDs returns all level IDs in load order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// Categories returns the distinct categories in load order.
func (l *Loader) Categories() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	return Categories(levels), nil
}

// Categories returns the distinct categories of sorted levels, in order.
func Categories(levels []Level) []string {
	var out []string
	for i, lvl := range levels {
		if i == 0 || levels[i-1].Category != lvl.Category {
			out = append(out, lvl.Category)
		}
	}
	return out
}

// Sort orders levels by category, then ID.
func Sort(levels []Level) {
	sort.SliceStable(levels, func(i, j int) bool {
		if levels[i].Category != levels[j].Category {
			return levels[i].Category < levels[j].Category
		}
		return levels[i].ID < levels[j].ID
	})
}

// Next returns the level following id within the same category.
func Next(levels []Level, id string) (Level, bool) {
	for i, lvl := range levels {
		if lvl.ID != id {
			continue
		}
		if i+1 < len(levels) && levels[i+1].Category == lvl.Category {
			return levels[i+1], true
		}
		return Level{}, false
	}
	return Level{}, false
}

// IsLevelFile checks if the path has a supported level extension.
func IsLevelFile(p string) bool {
	ext := strings.ToLower(path.Ext(filepath.ToSlash(p)))
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func categoryFromPath(p string) string {
	dir := path.Dir(p)
	if dir == "." || dir == "/" {
		return DefaultCategory
	}
	if i := strings.Index(dir, "/"); i >= 0 {
		return dir[:i]
	}
	return dir
}
