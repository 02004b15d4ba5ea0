package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cratehole/internal/core"
	"github.com/vovakirdan/cratehole/internal/registry"
	"github.com/vovakirdan/cratehole/internal/storage"
)

// Reloader is implemented by games that can re-read a changed level file.
type Reloader interface {
	ReloadFile(path string) (bool, error)
}

// GameOptions carries the collaborators of a game screen.
type GameOptions struct {
	Store  *storage.Store
	Player string      // recorded with completions; empty means local
	Logger *log.Logger // nil disables logging

	// Reloads delivers changed level files (see levels.Watcher).
	Reloads <-chan string

	// Standalone makes Back end the program, for local play where the
	// menu runs as a separate program.
	Standalone bool
}

// ReloadMsg reports a changed level file.
type ReloadMsg struct {
	Path string
}

type reloadsClosedMsg struct{}

// waitForReload blocks on the next changed file.
func waitForReload(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return reloadsClosedMsg{}
		}
		return ReloadMsg{Path: p}
	}
}

// GameModel is the Bubble Tea model for playing a game.
type GameModel struct {
	game        registry.Game
	screen      *core.Screen
	opts        GameOptions
	config      core.RuntimeConfig
	inputFrame  core.InputFrame
	gameState   core.GameState
	keyMapper   *KeyMapper
	completions int
	quitting    bool
	backToMenu  bool
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Player == "" {
		opts.Player = storage.LocalPlayer
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init starts the game, the tick loop and the reload listener.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(tickCmd(m.config.TickRate), waitForReload(m.opts.Reloads))
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The board re-centers on the next render; a resize never resets
		// puzzle progress.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case ReloadMsg:
		m.handleReload(msg.Path)
		return m, waitForReload(m.opts.Reloads)

	case reloadsClosedMsg:
		return m, nil
	}

	return m, nil
}

// handleKey queues the key's action for the next tick.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack || (action == core.ActionConfirm && m.gameState.GameOver) {
		m.backToMenu = true
		if m.opts.Standalone {
			return m, tea.Quit
		}
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Completed != nil {
		m.recordCompletion(*result.Completed)
	}

	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// recordCompletion persists a solved level. Storage is best effort: a
// failure is logged and play continues.
func (m *GameModel) recordCompletion(c core.Completion) {
	m.completions++
	if m.opts.Logger != nil {
		m.opts.Logger.Info("level complete", "level", c.LevelID, "moves", c.Moves, "player", m.opts.Player)
	}
	if m.opts.Store == nil {
		return
	}
	_, err := m.opts.Store.RecordCompletion(storage.Completion{
		LevelID:  c.LevelID,
		Category: c.Category,
		Player:   m.opts.Player,
		Moves:    c.Moves,
	})
	if err != nil && m.opts.Logger != nil {
		m.opts.Logger.Error("cannot record completion", "level", c.LevelID, "error", err)
	}
}

// handleReload asks the game to re-read a changed level file.
func (m *GameModel) handleReload(path string) {
	r, ok := m.game.(Reloader)
	if !ok {
		return
	}
	current, err := r.ReloadFile(path)
	if m.opts.Logger == nil {
		return
	}
	if err != nil {
		m.opts.Logger.Warn("cannot reload level", "file", path, "error", err)
		return
	}
	if current {
		m.opts.Logger.Info("reloaded current level", "file", path)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".cratehole", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.gameState.LevelID, timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state as of the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Completions returns how many levels were solved in this model.
func (m GameModel) Completions() int {
	return m.completions
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a game in the local terminal. It reports whether the player
// asked to go back to the menu rather than quit.
func Run(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) (backToMenu bool, err error) {
	opts.Standalone = true
	model := NewGameModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
