package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/flashread/wordfall/internal/config"
	"github.com/flashread/wordfall/internal/core"
	"github.com/flashread/wordfall/internal/registry"
	"github.com/flashread/wordfall/internal/storage"
)

// Tunable is implemented by games whose difficulty and word theme can be
// chosen from the menu.
type Tunable interface {
	SetDifficulty(d config.Difficulty)
	SetTheme(theme string)
}

// Options holds what the platform needs besides the game itself.
type Options struct {
	Logger        *log.Logger
	ScreenshotDir string // defaults to ~/.flashread/screenshots
	Themes        []string

	// Applied to Tunable games after every Reset when set.
	Difficulty config.Difficulty
	Theme      string
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

// GameModel is the Bubble Tea model running one game.
type GameModel struct {
	game        registry.Game
	screen      *core.Screen
	store       *storage.Store
	config      core.RuntimeConfig
	opts        Options
	inputFrame  core.InputFrame
	gameState   core.GameState
	keyMapper   *KeyMapper
	standalone  bool // back quits the program
	quitting    bool
	backToMenu  bool
	resultSaved bool // whether the current round's result has been saved
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init resets the game and starts the frame loop.
func (m GameModel) Init() tea.Cmd {
	m.reset()
	return tickCmd(m.config.TickRate)
}

func (m *GameModel) reset() {
	m.game.Reset(m.config)

	t, ok := m.game.(Tunable)
	if !ok {
		return
	}
	if m.opts.Theme != "" {
		t.SetTheme(m.opts.Theme)
	}
	if m.opts.Difficulty != "" {
		t.SetDifficulty(m.opts.Difficulty)
	}
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.opts.logger().Warn("screenshot failed", "err", err)
		} else {
			m.opts.logger().Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.close()
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.backToMenu = true
		m.close()
		if m.standalone {
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleResize follows the terminal size. Games that cannot resize in
// place are reset unless their round is over.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.reset()
	}

	return m, nil
}

// handleTick runs one game frame.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	switch {
	case m.gameState.GameOver && !m.resultSaved:
		m.saveResult()
		m.resultSaved = true
	case !m.gameState.GameOver:
		m.resultSaved = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m *GameModel) saveResult() {
	if m.store == nil {
		return
	}
	st := m.gameState
	id, err := m.store.SaveResult(storage.Result{
		GameID:       m.game.ID(),
		Player:       m.config.Player,
		Score:        st.Score,
		Difficulty:   st.Difficulty,
		Theme:        st.Theme,
		CorrectWords: st.CorrectWords,
	})
	if err != nil {
		m.opts.logger().Warn("result not saved", "err", err)
		return
	}
	m.opts.logger().Debug("result saved", "id", id, "points", st.Score, "player", m.config.Player)
}

func (m *GameModel) close() {
	if c, ok := m.game.(registry.Closer); ok {
		c.Close()
	}
}

// saveScreenshot saves the current screen as plain text.
func (m *GameModel) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("screenshot: %w", err)
		}
		dir = filepath.Join(home, ".flashread", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state seen on the last frame.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game until the player quits or goes back.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewGameModel(game, store, cfg, opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}
