package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flashread/wordfall/internal/config"
	"github.com/flashread/wordfall/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the difficulty sidebar
	sidebarWidth       = 16  // Width of the difficulty sidebar
	maxScores          = 100 // Max scores to load
)

// ScoreSource is where the scoreboard reads finished rounds from.
type ScoreSource interface {
	TopScoresFor(gameID, difficulty string, limit int) ([]storage.ScoreEntry, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextFilter, k.PrevFilter, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextFilter, k.PrevFilter},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextFilter: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next difficulty"),
		),
		PrevFilter: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev difficulty"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the high score screen.
// Scores of one game are shown, filtered by difficulty.
type ScoreboardModel struct {
	gameID      string
	filters     []string // "" shows every difficulty
	filter      int
	source      ScoreSource
	scores      []storage.ScoreEntry
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a scoreboard for gameID. A nil source shows
// an empty board.
func NewScoreboardModel(source ScoreSource, gameID string, width, height int) ScoreboardModel {
	filters := []string{""}
	for _, d := range config.Difficulties {
		filters = append(filters, string(d))
	}

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		gameID:      gameID,
		filters:     filters,
		source:      source,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.loadScores()

	return m
}

// createTable creates a new table sized to the window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 12},
		{Title: "Points", Width: 7},
		{Title: "Words", Width: 6},
		{Title: "Theme", Width: 10},
		{Title: "Date", Width: 12},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	fixed := 0
	for _, c := range columns {
		fixed += c.Width + 2
	}
	if extra := tableWidth - fixed; extra > 0 {
		columns[1].Width += min(extra, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadScores loads scores for the current filter.
func (m *ScoreboardModel) loadScores() {
	m.scores, m.loadErr = nil, nil
	if m.source != nil {
		m.scores, m.loadErr = m.source.TopScoresFor(m.gameID, m.filters[m.filter], maxScores)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current scores.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		player := s.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			player,
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.CorrectWords),
			s.Theme,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextFilter):
			m.filter = (m.filter + 1) % len(m.filters)
			m.loadScores()
			return m, nil

		case key.Matches(msg, m.keys.PrevFilter):
			m.filter = (m.filter + len(m.filters) - 1) % len(m.filters)
			m.loadScores()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func filterTitle(f string) string {
	if f == "" {
		return "All"
	}
	return f
}

var (
	sbTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	sbMutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sbActiveStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbActiveTabStyle = sbActiveStyle.Background(lipgloss.Color("57")).Padding(0, 1)
	sbEmptyStyle     = sbMutedStyle.Italic(true).Padding(2, 4)
	sbBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES - " + filterTitle(m.Filter())

	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderFilterList(), "  ", sbBoxStyle.Render(m.renderTableContent()))
	} else {
		body = centerText(m.renderFilterTabs(), m.width) + "\n\n" +
			centerText(sbBoxStyle.Render(m.renderTableContent()), m.width)
	}

	return sbTitleStyle.Render(centerText(title, m.width)) + "\n\n" +
		body + "\n" +
		m.renderSummary() +
		sbMutedStyle.Render(m.help.View(m.keys))
}

// renderFilterList renders the difficulty list shown beside the table.
func (m ScoreboardModel) renderFilterList() string {
	lines := []string{"Difficulty", strings.Repeat("-", sidebarWidth-4)}
	for i, f := range m.filters {
		if i == m.filter {
			lines = append(lines, sbActiveStyle.Render("> "+filterTitle(f)))
			continue
		}
		lines = append(lines, "  "+filterTitle(f))
	}
	return sbBoxStyle.Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

// renderFilterTabs renders the difficulties as one line of tabs, or just
// the current one when the line does not fit.
func (m ScoreboardModel) renderFilterTabs() string {
	tabs := make([]string, len(m.filters))
	for i, f := range m.filters {
		if i == m.filter {
			tabs[i] = sbActiveTabStyle.Render(filterTitle(f))
		} else {
			tabs[i] = sbMutedStyle.Render(" " + filterTitle(f) + " ")
		}
	}

	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", filterTitle(m.Filter()))
	}
	return line
}

// renderSummary renders the best round and the number of rows shown.
func (m ScoreboardModel) renderSummary() string {
	if len(m.scores) == 0 {
		return ""
	}
	best := m.scores[0]
	return sbMutedStyle.Render(fmt.Sprintf("Best: %d by %s  |  %d rounds shown", best.Score, best.Player, len(m.scores))) + "\n"
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	switch {
	case m.loadErr != nil:
		return sbEmptyStyle.Render("Scores unavailable:\n" + m.loadErr.Error())
	case len(m.scores) == 0:
		return sbEmptyStyle.Render("No rounds recorded yet.\nPlay a round to set a high score!")
	}
	return m.table.View()
}

// Filter returns the difficulty shown, empty for all.
func (m ScoreboardModel) Filter() string {
	return m.filters[m.filter]
}

// Scores returns the rows currently loaded.
func (m ScoreboardModel) Scores() []storage.ScoreEntry {
	return m.scores
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
