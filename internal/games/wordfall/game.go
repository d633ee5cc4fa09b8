// Package wordfall implements Word Fall, a speed-reading mini-game: words
// drop from the top of the field while rotating, and the player catches the
// words that belong to the chosen theme with a basket that follows the
// pointer. Every caught or missed word is scored by a scoring collaborator;
// the game only applies the outcome.
package wordfall

import (
	"math/rand"

	"github.com/flashread/wordfall/internal/config"
	"github.com/flashread/wordfall/internal/core"
	"github.com/flashread/wordfall/internal/render"
	"github.com/flashread/wordfall/internal/scoring"
)

// FallingEntity is one falling word.
type FallingEntity = core.FallingEntity

// GameData is the per-frame snapshot handed to the surface.
type GameData = core.GameData

// State is the simulation state.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// PointerMapping selects how pointer positions map onto the player lane.
type PointerMapping string

const (
	// PointerLiteral divides by the width before subtracting the surface
	// offset: x = pointerX/width - offsetX.
	PointerLiteral PointerMapping = "literal"
	// PointerCorrected normalizes the surface-relative position:
	// x = (pointerX - offsetX)/width.
	PointerCorrected PointerMapping = "corrected"
)

// Counters receives the values the HUD displays. The game writes them and
// never reads them back.
type Counters interface {
	SetPoints(int)
	SetCombo(int)
	SetHealth(int)
	SetCorrectWords(int)
}

// Dispatcher sends scoring requests without waiting for them.
type Dispatcher interface {
	Dispatch(t scoring.Ticket, req scoring.Request)
}

type nopCounters struct{}

func (nopCounters) SetPoints(int)       {}
func (nopCounters) SetCombo(int)        {}
func (nopCounters) SetHealth(int)       {}
func (nopCounters) SetCorrectWords(int) {}

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(scoring.Ticket, scoring.Request) {}

// Options configures a Game.
type Options struct {
	Config     config.WordfallConfig
	Rand       *rand.Rand
	Counters   Counters
	Dispatcher Dispatcher
	// OnGameOver runs once when health is exhausted, after the game has
	// already stopped.
	OnGameOver func()
}

// Game owns the live falling words and the player, advances them every
// tick, and turns catches and misses into scoring requests.
type Game struct {
	cfg        config.WordfallConfig
	rng        *rand.Rand
	counters   Counters
	dispatcher Dispatcher
	onGameOver func()

	state      State
	difficulty config.Difficulty
	mapping    PointerMapping
	reconcile  ReconcileMode

	words    []string
	filler   []string
	entities []FallingEntity
	player   core.Vec2

	// Last values written through counters.
	points  int
	combo   int
	health  int
	correct int

	seq      uint64 // last ticket handed out
	epoch    uint64 // bumped on every counter reset
	applied  uint64 // last ticket applied in sequenced mode
	gameOver bool
}

// New creates an idle game. The counters are reset for the configured
// difficulty right away.
func New(opts Options) *Game {
	g := &Game{
		cfg:        opts.Config,
		rng:        opts.Rand,
		counters:   opts.Counters,
		dispatcher: opts.Dispatcher,
		onGameOver: opts.OnGameOver,
		mapping:    PointerMapping(opts.Config.Player.PointerMapping),
		reconcile:  ReconcileMode(opts.Config.Scoring.Reconcile),
		player:     core.V(0, opts.Config.Player.LaneY),
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(1))
	}
	if g.counters == nil {
		g.counters = nopCounters{}
	}
	if g.dispatcher == nil {
		g.dispatcher = nopDispatcher{}
	}
	if g.mapping != PointerCorrected {
		g.mapping = PointerLiteral
	}
	if g.reconcile != ReconcileUnordered {
		g.reconcile = ReconcileSequenced
	}
	g.SetDifficulty(config.Difficulty(opts.Config.Difficulty))
	return g
}

// State returns Idle or Running.
func (g *Game) State() State {
	return g.state
}

// Start begins producing snapshots. A game that ended is reset first.
func (g *Game) Start() {
	if g.gameOver {
		g.reset()
	}
	g.state = Running
}

// Stop makes every tick return nil. Live words stay where they are.
func (g *Game) Stop() {
	g.state = Idle
}

// GameOver reports whether health ran out.
func (g *Game) GameOver() bool {
	return g.gameOver
}

// Difficulty returns the active difficulty.
func (g *Game) Difficulty() config.Difficulty {
	return g.difficulty
}

// SetDifficulty switches difficulty and resets health to its budget and
// points, combo and correct words to zero.
func (g *Game) SetDifficulty(d config.Difficulty) {
	g.difficulty = d
	g.resetCounters()
}

// Reset clears the field and the counters and returns to Idle.
func (g *Game) Reset() {
	g.state = Idle
	g.reset()
}

func (g *Game) reset() {
	g.entities = g.entities[:0]
	g.resetCounters()
}

func (g *Game) resetCounters() {
	g.epoch++
	g.applied = g.seq
	g.gameOver = false
	g.setHealth(g.difficulty.MaxHealth())
	g.setPoints(0)
	g.setCombo(0)
	g.setCorrect(0)
}

// SetWords replaces the target and filler pools.
func (g *Game) SetWords(words, filler []string) {
	g.words = append([]string(nil), words...)
	g.filler = append([]string(nil), filler...)
}

// Words returns the target pool.
func (g *Game) Words() []string {
	return g.words
}

// Player returns the player position.
func (g *Game) Player() core.Vec2 {
	return g.player
}

// Entities returns a copy of the live words.
func (g *Game) Entities() []FallingEntity {
	out := make([]FallingEntity, len(g.entities))
	copy(out, g.entities)
	return out
}

// Points, Combo, Health and CorrectWords return the last values written
// through the counters.
func (g *Game) Points() int       { return g.points }
func (g *Game) Combo() int        { return g.combo }
func (g *Game) Health() int       { return g.health }
func (g *Game) CorrectWords() int { return g.correct }

// PointerMove moves the player to the pointer. Only the horizontal axis
// follows the pointer; the player stays in its lane.
func (g *Game) PointerMove(p render.Pointer, canvas core.Vec2) {
	if canvas.X <= 0 {
		return
	}
	var x float64
	switch g.mapping {
	case PointerCorrected:
		x = p.X / canvas.X
	default:
		x = p.X/canvas.X - p.Offset.X
	}
	g.player = core.V(x, g.cfg.Player.LaneY)
}

// Nudge moves the player horizontally by dx, keeping it on the field.
func (g *Game) Nudge(dx float64) {
	g.player = core.V(core.ClampF(g.player.X+dx, 0, 1), g.cfg.Player.LaneY)
}

// Tick advances the simulation by dt milliseconds. An idle game returns
// nil and changes nothing.
func (g *Game) Tick(ctx render.Context, dt float64) *GameData {
	if g.state != Running {
		return nil
	}

	g.spawn()

	canvas := ctx.CanvasSize()
	for i := 0; i < len(g.entities); {
		e := &g.entities[i]
		e.Pos.Y -= e.FallSpeed * dt
		e.Angle += e.RotSpeed * dt

		if e.Pos.Y < 0 {
			word := e.Text
			g.remove(i)
			g.dispatch(word, false)
			continue
		}

		m := ctx.MeasureText(e.Text, e.Size)
		if hitDistance(*e, m, canvas, g.player) <= g.cfg.Player.Radius {
			word := e.Text
			g.remove(i)
			g.dispatch(word, true)
			continue
		}
		i++
	}

	return core.NewGameData(g.player, g.entities)
}

func (g *Game) remove(i int) {
	g.entities = append(g.entities[:i], g.entities[i+1:]...)
}

func (g *Game) setPoints(v int) {
	g.points = v
	g.counters.SetPoints(v)
}

func (g *Game) setCombo(v int) {
	g.combo = v
	g.counters.SetCombo(v)
}

func (g *Game) setHealth(v int) {
	g.health = v
	g.counters.SetHealth(v)
}

func (g *Game) setCorrect(v int) {
	g.correct = v
	g.counters.SetCorrectWords(v)
}
