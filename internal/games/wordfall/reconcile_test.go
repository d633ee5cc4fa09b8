package wordfall

import (
	"context"
	"sync"
	"testing"

	"github.com/flashread/wordfall/internal/config"
	"github.com/flashread/wordfall/internal/core"
	"github.com/flashread/wordfall/internal/scoring"
)

// catchTwo catches two words in one tick and returns their tickets.
func catchTwo(t *testing.T, g *Game, d *recordingDispatcher) (scoring.Ticket, scoring.Ticket) {
	t.Helper()

	g.cfg.Spawn.ChanceScale = 0
	g.Start()
	g.player = core.V(0.5, 0.5)
	g.entities = []FallingEntity{
		{Text: "cat", Pos: core.V(0.5, 0.5), Size: 20},
		{Text: "dog", Pos: core.V(0.5, 0.5), Size: 20},
	}
	g.Tick(newFakeContext(), 16)

	if len(d.sent) != 2 {
		t.Fatalf("dispatched %d, want 2", len(d.sent))
	}
	return d.sent[0].ticket, d.sent[1].ticket
}

func TestUnorderedLastResponseWins(t *testing.T) {
	g, d, s := newTestGame(t, config.DifficultyMedium, 1)
	g.reconcile = ReconcileUnordered
	first, second := catchTwo(t, g, d)

	// Responses resolve in reverse order.
	g.Resolve(second, scoring.Response{Points: 20, Combo: 2})
	g.Resolve(first, scoring.Response{Points: 10, Combo: 1})

	if s.Points != 10 || g.Points() != 10 {
		t.Errorf("points = %d, want 10 from the last response", s.Points)
	}
	if s.Combo != 1 {
		t.Errorf("combo = %d, want 1", s.Combo)
	}
	// 20 -> 10 is a drop, so the late response costs a life.
	if s.Health != 4 {
		t.Errorf("health = %d, want 4", s.Health)
	}
}

func TestSequencedDropsLateResponse(t *testing.T) {
	g, d, s := newTestGame(t, config.DifficultyMedium, 1)
	first, second := catchTwo(t, g, d)

	if !g.Resolve(second, scoring.Response{Points: 20, Combo: 2}) {
		t.Fatal("newest response should apply")
	}
	if g.Resolve(first, scoring.Response{Points: 10, Combo: 1}) {
		t.Error("older response should be dropped")
	}

	if s.Points != 20 || s.Combo != 2 {
		t.Errorf("counters = %d/%d, want 20/2", s.Points, s.Combo)
	}
	if s.Health != 5 {
		t.Errorf("health = %d, want 5", s.Health)
	}
	if s.CorrectWords != 1 {
		t.Errorf("correct words = %d, want 1", s.CorrectWords)
	}
}

func TestSequencedInOrderAppliesBoth(t *testing.T) {
	g, d, s := newTestGame(t, config.DifficultyMedium, 1)
	first, second := catchTwo(t, g, d)

	g.Resolve(first, scoring.Response{Points: 10, Combo: 1})
	g.Resolve(second, scoring.Response{Points: 25, Combo: 2})

	if s.Points != 25 || s.CorrectWords != 2 {
		t.Errorf("points/correct = %d/%d, want 25/2", s.Points, s.CorrectWords)
	}
}

func TestResolveOutcomes(t *testing.T) {
	tests := []struct {
		name        string
		collision   bool
		points      int
		wantHealth  int
		wantCorrect int
	}{
		{"catch gains", true, 10, 5, 1},
		{"catch unchanged", true, 0, 5, 1},
		{"catch loses", true, -15, 4, 0},
		{"miss loses", false, -5, 4, 0},
		{"miss unchanged", false, 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _, s := newTestGame(t, config.DifficultyMedium, 1)
			g.Start()
			g.dispatch("cat", tt.collision)

			g.Resolve(scoring.Ticket{Seq: g.seq, Epoch: g.epoch, Collision: tt.collision},
				scoring.Response{Points: tt.points})

			if s.Health != tt.wantHealth {
				t.Errorf("health = %d, want %d", s.Health, tt.wantHealth)
			}
			if s.CorrectWords != tt.wantCorrect {
				t.Errorf("correct = %d, want %d", s.CorrectWords, tt.wantCorrect)
			}
			if s.Points != tt.points {
				t.Errorf("points = %d, want %d", s.Points, tt.points)
			}
		})
	}
}

func TestZeroHealthStopsGame(t *testing.T) {
	cfg := config.DefaultWordfallConfig()
	cfg.Difficulty = string(config.DifficultyExtreme)

	calls := 0
	var stateAtCallback State
	s := &Session{}
	var g *Game
	g = New(Options{
		Config:   cfg,
		Counters: s,
		OnGameOver: func() {
			calls++
			stateAtCallback = g.State()
		},
	})
	g.SetWords([]string{"cat"}, nil)
	g.Start()
	g.dispatch("cat", false)

	g.Resolve(scoring.Ticket{Seq: g.seq, Epoch: g.epoch}, scoring.Response{Points: -5})

	if g.State() != Idle || !g.GameOver() {
		t.Fatalf("state = %v gameOver = %v, want idle and over", g.State(), g.GameOver())
	}
	if stateAtCallback != Idle {
		t.Error("game should already be idle when the callback runs")
	}
	if data := g.Tick(newFakeContext(), 16); data != nil {
		t.Error("tick after game over should return nil")
	}

	// Another late drop does not end the game twice.
	g.reconcile = ReconcileUnordered
	if g.Resolve(scoring.Ticket{Epoch: g.epoch}, scoring.Response{Points: -20}) {
		t.Error("response after game over should be dropped")
	}
	if calls != 1 {
		t.Errorf("OnGameOver called %d times, want 1", calls)
	}
	if s.Health != 0 {
		t.Errorf("session health = %d, want 0", s.Health)
	}
}

func TestLateResponseAfterGameOverDropped(t *testing.T) {
	for _, mode := range []ReconcileMode{ReconcileSequenced, ReconcileUnordered} {
		t.Run(string(mode), func(t *testing.T) {
			g, _, s := newTestGame(t, config.DifficultyExtreme, 1)
			g.reconcile = mode
			g.Start()

			g.dispatch("dog", false)
			miss := scoring.Ticket{Seq: g.seq, Epoch: g.epoch}
			g.dispatch("cat", true)
			catch := scoring.Ticket{Seq: g.seq, Epoch: g.epoch, Collision: true}

			if !g.Resolve(miss, scoring.Response{Points: -5}) {
				t.Fatal("miss should apply")
			}
			if !g.GameOver() {
				t.Fatal("expected game over")
			}

			if g.Resolve(catch, scoring.Response{Points: 40, Combo: 3}) {
				t.Error("catch resolved after game over should be dropped")
			}
			if s.Points != -5 || s.Combo != 0 || s.CorrectWords != 0 || s.Health != 0 {
				t.Errorf("counters changed after game over: %+v", s)
			}
			if g.Points() != -5 || g.CorrectWords() != 0 {
				t.Errorf("game counters = %d/%d, want -5/0", g.Points(), g.CorrectWords())
			}
		})
	}
}

func TestStartAfterGameOverResets(t *testing.T) {
	g, _, s := newTestGame(t, config.DifficultyExtreme, 1)
	g.Start()
	g.entities = []FallingEntity{{Text: "cat", Pos: core.V(0.5, 0.9)}}
	g.dispatch("cat", false)
	g.Resolve(scoring.Ticket{Seq: g.seq, Epoch: g.epoch}, scoring.Response{Points: -5})
	if !g.GameOver() {
		t.Fatal("expected game over")
	}

	g.Start()

	if g.GameOver() || g.State() != Running {
		t.Error("Start should begin a new round")
	}
	if len(g.Entities()) != 0 {
		t.Error("new round should start with an empty field")
	}
	if s.Health != 1 || s.Points != 0 {
		t.Errorf("counters not reset: %+v", s)
	}
}

func TestStaleRoundResponseDropped(t *testing.T) {
	g, d, s := newTestGame(t, config.DifficultyMedium, 1)
	first, _ := catchTwo(t, g, d)

	g.SetDifficulty(config.DifficultyHard)
	if g.Resolve(first, scoring.Response{Points: 99}) {
		t.Error("response from a previous round should be dropped")
	}
	if s.Points != 0 || s.Health != 3 {
		t.Errorf("counters = %+v, want a clean Hard round", s)
	}
}

func TestResolveAllCountsApplied(t *testing.T) {
	g, d, _ := newTestGame(t, config.DifficultyMedium, 1)
	first, second := catchTwo(t, g, d)

	n := g.ResolveAll([]scoring.Result{
		{Ticket: second, Response: scoring.Response{Points: 20}},
		{Ticket: first, Response: scoring.Response{Points: 10}},
	})
	if n != 1 {
		t.Errorf("applied %d, want 1", n)
	}
}

func TestDispatcherRaceEndToEnd(t *testing.T) {
	cfg := config.DefaultWordfallConfig()
	cfg.Scoring.Reconcile = string(ReconcileUnordered)

	backend := newGatedBackend()
	ds := scoring.NewDispatcher(backend)
	defer ds.Close()

	s := &Session{}
	g := New(Options{Config: cfg, Counters: s, Dispatcher: ds})
	g.cfg.Spawn.ChanceScale = 0
	g.Start()
	g.player = core.V(0.5, 0.5)
	g.entities = []FallingEntity{
		{Text: "cat", Pos: core.V(0.5, 0.5), Size: 20},
		{Text: "dog", Pos: core.V(0.5, 0.5), Size: 20},
	}
	g.Tick(newFakeContext(), 16)

	// dog resolves first, cat last.
	backend.release("dog", scoring.Response{Points: 20, Combo: 2})
	g.ResolveAll([]scoring.Result{<-ds.Results()})
	backend.release("cat", scoring.Response{Points: 10, Combo: 1})
	g.ResolveAll([]scoring.Result{<-ds.Results()})

	if s.Points != 10 {
		t.Errorf("points = %d, want 10 from the response that resolved last", s.Points)
	}
}

// gatedBackend holds each scoring request until the test releases the
// response for its word.
type gatedBackend struct {
	mu    sync.Mutex
	gates map[string]chan scoring.Response
}

func newGatedBackend() *gatedBackend {
	return &gatedBackend{gates: make(map[string]chan scoring.Response)}
}

func (b *gatedBackend) gate(word string) chan scoring.Response {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch, ok := b.gates[word]
	if !ok {
		ch = make(chan scoring.Response, 1)
		b.gates[word] = ch
	}
	return ch
}

func (b *gatedBackend) release(word string, resp scoring.Response) {
	b.gate(word) <- resp
}

func (b *gatedBackend) Score(ctx context.Context, req scoring.Request) (scoring.Response, error) {
	select {
	case resp := <-b.gate(req.CollectedWord):
		return resp, nil
	case <-ctx.Done():
		return scoring.Response{}, ctx.Err()
	}
}

func (b *gatedBackend) Words(context.Context, string) ([]string, error) {
	return nil, nil
}
