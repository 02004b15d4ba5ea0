package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cratehole/internal/core"
	"github.com/vovakirdan/cratehole/internal/games/holes/levels"
	"github.com/vovakirdan/cratehole/internal/storage"
)

// Menu styles
var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	menuTabStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	menuActiveTab     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	menuItemStyle     = lipgloss.NewStyle()
	menuActiveItem    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDoneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	menuControlsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuItem represents a selectable level in the menu.
type MenuItem struct {
	LevelID   string
	Title     string
	Completed bool
	BestMoves int // player's best, valid when Completed
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	categories     []string
	items          map[string][]MenuItem
	category       int
	cursor         int
	scrollOffset   int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a level
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a level picker. Completion marks come from the
// player's records in store, which may be nil.
func NewMenuModel(lvls []levels.Level, store *storage.Store, player string, cfg core.RuntimeConfig) MenuModel {
	var done map[string]int
	if store != nil {
		//nolint:errcheck // Missing marks are not fatal
		done, _ = store.CompletedLevels(player)
	}

	items := make(map[string][]MenuItem)
	for i := range lvls {
		lvl := &lvls[i]
		best, ok := done[lvl.ID]
		items[lvl.Category] = append(items[lvl.Category], MenuItem{
			LevelID:   lvl.ID,
			Title:     lvl.Title(),
			Completed: ok,
			BestMoves: best,
		})
	}

	m := MenuModel{
		categories: levels.Categories(lvls),
		items:      items,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}

	// Open on the category of the configured start level.
	for ci, c := range m.categories {
		for li, it := range items[c] {
			if it.LevelID == cfg.LevelID {
				m.category, m.cursor = ci, li
			}
		}
	}
	m.updateScroll()
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.updateScroll()
		return m, nil
	}

	return m, nil
}

func (m MenuModel) current() []MenuItem {
	if len(m.categories) == 0 {
		return nil
	}
	return m.items[m.categories[m.category]]
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.current())-1 {
			m.cursor++
		}

	case MenuActionPrevCategory:
		if n := len(m.categories); n > 0 {
			m.category = (m.category + n - 1) % n
			m.cursor = 0
		}

	case MenuActionNextCategory:
		if n := len(m.categories); n > 0 {
			m.category = (m.category + 1) % n
			m.cursor = 0
		}

	case MenuActionSelect:
		if items := m.current(); len(items) > 0 {
			selected := items[m.cursor]
			m.selected = &selected
			m.config.LevelID = selected.LevelID
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	m.updateScroll()
	return m, nil
}

// visibleItems is how many levels fit between header and footer.
func (m MenuModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *MenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("C R A T E   H O L E"), m.width))
	b.WriteString("\n\n")

	if len(m.categories) == 0 {
		b.WriteString(centerText("No levels found", m.width))
		b.WriteString("\n")
		return b.String()
	}

	tabs := make([]string, len(m.categories))
	for i, c := range m.categories {
		if i == m.category {
			tabs[i] = menuActiveTab.Render(c)
		} else {
			tabs[i] = menuTabStyle.Render(c)
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n\n")

	items := m.current()
	end := min(m.scrollOffset+m.visibleItems(), len(items))
	if m.scrollOffset > 0 {
		b.WriteString(centerText(menuControlsStyle.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		b.WriteString(centerText(m.renderItem(i, items[i]), m.width))
		b.WriteString("\n")
	}
	if end < len(items) {
		b.WriteString(centerText(menuControlsStyle.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Level  |  Left/Right: Category  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuControlsStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) renderItem(i int, it MenuItem) string {
	cursor := "  "
	style := menuItemStyle
	if i == m.cursor {
		cursor = "> "
		style = menuActiveItem
	}

	mark := "   "
	if it.Completed {
		mark = menuDoneStyle.Render(fmt.Sprintf(" ✓ %d", it.BestMoves))
	}
	return style.Render(fmt.Sprintf("%s%2d. %s", cursor, i+1, it.Title)) + mark
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config, with LevelID set to the
// selection and screen size updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	LevelID         string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the level picker and returns the selection result.
func RunMenu(lvls []levels.Level, store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(lvls, store, storage.LocalPlayer, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.LevelID = m.Selected().LevelID
	} else {
		result.Quit = true
	}

	return result, nil
}
