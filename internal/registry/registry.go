// Package registry keeps the mini-games the platform can run. Games add
// themselves from init(), so the platform and the CLI only need a blank
// import to offer them.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/flashread/wordfall/internal/core"
)

// Game is a mini-game the platform drives frame by frame. Games keep their
// logic free of Bubble Tea; the platform maps keys and the mouse onto
// InputFrames and paints the Screen a game renders into.
type Game interface {
	// ID is the stable identifier used on the command line and as the
	// storage key for results.
	ID() string

	// Title is the display name.
	Title() string

	// Reset prepares a fresh session for the given screen and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one platform frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the game into dst.
	Render(dst *core.Screen)

	// State reports the values the platform shows and records.
	State() core.GameState
}

// Resizer is implemented by games that follow terminal resizes without
// a Reset.
type Resizer interface {
	Resize(w, h int)
}

// Closer is implemented by games holding goroutines or other resources
// that must be released when the platform leaves them.
type Closer interface {
	Close()
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a game. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns the registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(factories))
	for id := range factories {
		out = append(out, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
