package wordfall

import (
	"context"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flashread/wordfall/internal/config"
	"github.com/flashread/wordfall/internal/core"
	"github.com/flashread/wordfall/internal/registry"
	"github.com/flashread/wordfall/internal/render"
	"github.com/flashread/wordfall/internal/scoring"
)

// ID is the registry identifier of the game.
const ID = "wordfall"

// Rows taken by the HUD above and below the field.
const (
	hudTop    = 1
	hudBottom = 1
)

// Package-level settings, set by the CLI before games are created.
var (
	configPath       string
	difficultyPreset string
	wordTheme        string
	backend          scoring.Backend
	resultSink       scoring.ResultSink
	logger           = log.New(io.Discard)

	measurerOnce sync.Once
	measurer     render.Measurer
)

// SetConfigPath sets the config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty for new games.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetWordTheme sets the word theme for new games.
func SetWordTheme(theme string) {
	wordTheme = theme
}

// WordTheme returns the word theme new games start with.
func WordTheme() string {
	return wordTheme
}

// SetBackend sets the scoring backend new games use.
func SetBackend(b scoring.Backend) {
	backend = b
}

// SetResultSink sets where finished rounds are submitted, nil for nowhere.
func SetResultSink(s scoring.ResultSink) {
	resultSink = s
}

// SetLogger sets the logger games report to.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

func sharedMeasurer() render.Measurer {
	measurerOnce.Do(func() {
		m, err := render.NewFontMeasurer()
		if err != nil {
			logger.Warn("font measurer unavailable, using fixed metrics", "err", err)
			measurer = render.FixedMeasurer{RuneWidth: 10, Ascent: 14, Descent: 4}
			return
		}
		measurer = m
	})
	return measurer
}

func init() {
	registry.Register(ID, func() registry.Game {
		return NewArcade()
	})
}

// loadState tracks the two word pools a round needs before it starts.
type loadState struct {
	filler, words        <-chan []string
	fillerOK, wordsOK    bool
	fillerPool, wordPool []string
}

// Arcade runs Word Fall on the arcade platform: it owns the game, its
// drawing surface and the scoring dispatcher, and turns platform frames
// into surface frames.
type Arcade struct {
	cfg     config.WordfallConfig
	runtime core.RuntimeConfig
	theme   string

	game       *Game
	session    *Session
	surface    *render.Surface
	container  *render.Container
	dispatcher *scoring.Dispatcher
	backend    scoring.Backend
	sink       scoring.ResultSink
	log        *log.Logger

	loading   *loadState
	clock     time.Time
	frame     time.Duration
	paused    bool
	submitted bool
	ended     bool
}

// NewArcade creates a Word Fall game using the package-level settings.
func NewArcade() *Arcade {
	return &Arcade{
		theme:   wordTheme,
		backend: backend,
		sink:    resultSink,
		log:     logger,
	}
}

// ID returns the unique identifier for this game.
func (a *Arcade) ID() string {
	return ID
}

// Title returns the display name for this game.
func (a *Arcade) Title() string {
	return "Word Fall"
}

// Reset loads the configuration and starts a fresh, idle round.
func (a *Arcade) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadWordfall(configPath)
	if err != nil {
		a.log.Warn("using default config", "err", err)
		cfg, _ = config.LoadWordfall("")
	}
	config.ApplyDifficultyPreset(&cfg, difficultyPreset)
	a.ResetWith(runtime, cfg)
}

// ResetWith starts a fresh round with an explicit configuration.
func (a *Arcade) ResetWith(runtime core.RuntimeConfig, cfg config.WordfallConfig) {
	a.Close()

	a.cfg = cfg
	a.runtime = runtime
	if a.theme == "" {
		if themes := cfg.WordThemes(); len(themes) > 0 {
			a.theme = themes[0]
		}
	}
	if a.backend == nil {
		a.backend = scoring.NewLocal(scoring.RulesFrom(cfg.Scoring), cfg.Words.Themes, nil)
	}

	a.dispatcher = scoring.NewDispatcher(a.backend,
		scoring.WithTimeout(time.Duration(cfg.Scoring.TimeoutMS)*time.Millisecond),
		scoring.WithLogger(a.log),
	)

	a.session = &Session{}
	a.game = New(Options{
		Config:     cfg,
		Rand:       rand.New(rand.NewSource(runtime.Seed)),
		Counters:   a.session,
		Dispatcher: a.dispatcher,
		OnGameOver: a.handleGameOver,
	})
	a.session.MaxHealth = a.game.Difficulty().MaxHealth()

	a.surface = render.NewSurface(render.OptionsFrom(cfg, sharedMeasurer()))
	a.container = render.NewContainer(a.surface.CellSize())
	a.surface.Bind(a.container)
	a.surface.SetTick(a.game.Tick)
	a.surface.SetPointerHandler(func(p render.Pointer) {
		a.game.PointerMove(p, a.surface.CanvasSize())
	})
	a.surface.AttachSprite(render.LoadSprite(render.PlayerSprite))
	a.container.Observe(fieldArea(runtime.ScreenW, runtime.ScreenH))

	tickRate := max(runtime.TickRate, 1)
	a.frame = time.Second / time.Duration(tickRate)
	a.clock = time.Unix(0, 0)
	a.loading = nil
	a.paused = false
	a.submitted = false
	a.ended = false
}

// fieldArea is the part of the screen the falling words use. It starts at
// the left edge so the surface has no horizontal offset.
func fieldArea(w, h int) core.Rect {
	return core.NewRect(0, hudTop, w, max(h-hudTop-hudBottom, 0))
}

// Close releases the dispatcher and the surface.
func (a *Arcade) Close() {
	if a.dispatcher != nil {
		a.dispatcher.Close()
		a.dispatcher = nil
	}
	if a.surface != nil {
		a.surface.Close()
	}
}

// Resize follows a terminal resize without restarting the round.
func (a *Arcade) Resize(w, h int) {
	a.runtime.ScreenW = w
	a.runtime.ScreenH = h
	if a.container != nil {
		a.container.Observe(fieldArea(w, h))
	}
}

// Game returns the simulation.
func (a *Arcade) Game() *Game {
	return a.game
}

// Session returns the HUD counters.
func (a *Arcade) Session() *Session {
	return a.session
}

// Surface returns the drawing surface.
func (a *Arcade) Surface() *render.Surface {
	return a.surface
}

// Theme returns the active word theme.
func (a *Arcade) Theme() string {
	return a.theme
}

// Loading reports whether the round is waiting for its word pools.
func (a *Arcade) Loading() bool {
	return a.loading != nil
}

// Step advances the game by one platform frame.
func (a *Arcade) Step(in core.InputFrame) core.StepResult {
	// Outcomes that resolved since the last frame are applied first, so a
	// game over stops the round before it ticks again.
	a.game.ResolveAll(a.dispatcher.Drain())
	a.pollLoading()

	if in.Has(core.ActionPause) && a.game.State() == Running {
		a.paused = !a.paused
	}

	switch {
	case in.Has(core.ActionStartStop), in.Has(core.ActionRestart) && a.game.GameOver():
		a.toggle()
	case in.Has(core.ActionDifficulty):
		a.cycleDifficulty()
	}

	if in.Has(core.ActionLeft) {
		a.game.Nudge(-a.cfg.Player.KeyStep)
	}
	if in.Has(core.ActionRight) {
		a.game.Nudge(a.cfg.Player.KeyStep)
	}
	if in.Pointer != nil {
		cw, ch := a.container.CellSize()
		a.surface.PointerMove(
			(float64(in.Pointer.X)+0.5)*float64(cw),
			(float64(in.Pointer.Y)+0.5)*float64(ch),
		)
	}

	if !a.paused {
		a.clock = a.clock.Add(a.frame)
		a.surface.Frame(a.clock)
	}

	return core.StepResult{State: a.State()}
}

// toggle starts or stops the round. Starting fetches the filler pool and
// the theme pool; the round begins once both have arrived.
func (a *Arcade) toggle() {
	if a.game.State() == Running {
		a.game.Stop()
		a.paused = false
		return
	}
	if a.loading != nil {
		return
	}
	a.loading = &loadState{
		filler: a.dispatcher.FetchWords(a.cfg.Words.FillerTheme),
		words:  a.dispatcher.FetchWords(a.theme),
	}
}

func (a *Arcade) pollLoading() {
	ls := a.loading
	if ls == nil {
		return
	}
	if !ls.fillerOK {
		select {
		case w := <-ls.filler:
			ls.fillerPool, ls.fillerOK = w, true
		default:
		}
	}
	if !ls.wordsOK {
		select {
		case w := <-ls.words:
			ls.wordPool, ls.wordsOK = w, true
		default:
		}
	}
	if !ls.fillerOK || !ls.wordsOK {
		return
	}

	a.loading = nil
	a.game.SetWords(ls.wordPool, ls.fillerPool)
	if a.game.GameOver() {
		a.submitted = false
		a.ended = false
	}
	a.game.Start()
	a.log.Info("round started", "theme", a.theme, "difficulty", a.game.Difficulty(),
		"words", len(ls.wordPool), "fillers", len(ls.fillerPool))
}

func (a *Arcade) cycleDifficulty() {
	a.SetDifficulty(a.game.Difficulty().Next())
}

// SetDifficulty switches difficulty, resetting the counters.
func (a *Arcade) SetDifficulty(d config.Difficulty) {
	a.game.SetDifficulty(d)
	a.session.MaxHealth = d.MaxHealth()
	a.ended = false
	a.submitted = false
}

// SetTheme switches the word theme for the next round.
func (a *Arcade) SetTheme(theme string) {
	a.theme = theme
}

func (a *Arcade) handleGameOver() {
	a.ended = true
	a.paused = false
	a.log.Info("round over", "points", a.session.Points, "correct", a.session.CorrectWords,
		"difficulty", a.game.Difficulty(), "theme", a.theme)

	if a.sink == nil || a.submitted {
		return
	}
	a.submitted = true
	res := scoring.FinalResult{
		Player:       a.runtime.Player,
		Points:       a.session.Points,
		CorrectWords: a.session.CorrectWords,
		Difficulty:   string(a.game.Difficulty()),
		Theme:        a.theme,
	}
	sink, l, timeout := a.sink, a.log, time.Duration(a.cfg.Scoring.TimeoutMS)*time.Millisecond
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := sink.SubmitResult(ctx, res); err != nil {
			l.Warn("result not submitted", "err", err)
		}
	}()
}

// State returns the current game state.
func (a *Arcade) State() core.GameState {
	return core.GameState{
		Score:        a.session.Points,
		CorrectWords: a.session.CorrectWords,
		Difficulty:   string(a.game.Difficulty()),
		Theme:        a.theme,
		GameOver:     a.ended,
		Paused:       a.paused,
	}
}

// Ensure Arcade implements registry.Game
var _ registry.Game = (*Arcade)(nil)
