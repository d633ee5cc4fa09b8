package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flashread/wordfall/internal/config"
)

// Menu rows.
const (
	menuPlay = iota
	menuDifficulty
	menuTheme
	menuScores
	menuQuit
	menuRows
)

// MenuSelection is what the player picked before starting a round.
type MenuSelection struct {
	Difficulty config.Difficulty
	Theme      string
}

// MenuModel is the Bubble Tea model for the start menu: pick a difficulty
// and a word theme, then play or look at the scoreboard.
type MenuModel struct {
	cursor         int
	difficulty     int
	theme          int
	themes         []string
	width          int
	height         int
	keyMapper      *KeyMapper
	quitting       bool
	play           bool
	openScoreboard bool
}

// NewMenuModel creates a menu offering the given word themes.
func NewMenuModel(themes []string, sel MenuSelection, width, height int) MenuModel {
	if len(themes) == 0 {
		themes = []string{""}
	}
	m := MenuModel{
		themes:    themes,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	for i, d := range config.Difficulties {
		if d == sel.Difficulty {
			m.difficulty = i
		}
	}
	if sel.Difficulty == "" {
		m.difficulty = 1 // Medium
	}
	for i, t := range themes {
		if t == sel.Theme {
			m.theme = i
		}
	}
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
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true

	case MenuActionUp:
		m.cursor = (m.cursor + menuRows - 1) % menuRows

	case MenuActionDown:
		m.cursor = (m.cursor + 1) % menuRows

	case MenuActionLeft:
		m.cycle(-1)

	case MenuActionRight:
		m.cycle(1)

	case MenuActionScoreboard:
		m.openScoreboard = true

	case MenuActionSelect:
		switch m.cursor {
		case menuPlay:
			m.play = true
		case menuDifficulty, menuTheme:
			m.cycle(1)
		case menuScores:
			m.openScoreboard = true
		case menuQuit:
			m.quitting = true
		}
	}

	return m, nil
}

func (m *MenuModel) cycle(step int) {
	switch m.cursor {
	case menuDifficulty:
		n := len(config.Difficulties)
		m.difficulty = (m.difficulty + step + n) % n
	case menuTheme:
		n := len(m.themes)
		m.theme = (m.theme + step + n) % n
	}
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	menuHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  W O R D   F A L L  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Catch the words of your theme, let the rest fall", m.width))
	b.WriteString("\n\n")

	sel := m.Selection()
	rows := [menuRows]string{
		menuPlay:       "Play",
		menuDifficulty: fmt.Sprintf("Difficulty  < %-8s >", sel.Difficulty),
		menuTheme:      fmt.Sprintf("Theme       < %-10s >", sel.Theme),
		menuScores:     "High Scores",
		menuQuit:       "Quit",
	}
	for i, row := range rows {
		line := "  " + row + "  "
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + row + "  ")
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuHelpStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selection returns the current difficulty and theme.
func (m MenuModel) Selection() MenuSelection {
	return MenuSelection{
		Difficulty: config.Difficulties[m.difficulty],
		Theme:      m.themes[m.theme],
	}
}

// WantsPlay returns true if the player chose to start a round.
func (m MenuModel) WantsPlay() bool {
	return m.play
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Rearm clears the choice so the menu can be shown again.
func (m MenuModel) Rearm() MenuModel {
	m.play = false
	m.openScoreboard = false
	return m
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
