package wordfall

import "github.com/flashread/wordfall/internal/scoring"

// ReconcileMode decides which scoring responses are applied.
type ReconcileMode string

const (
	// ReconcileSequenced applies a response only if its ticket is newer
	// than every response applied so far and belongs to the current round.
	// Late responses for older removals are dropped.
	ReconcileSequenced ReconcileMode = "sequenced"
	// ReconcileUnordered applies every response as it arrives; whichever
	// resolves last wins, including responses from a previous round.
	// Responses arriving after game over are still dropped.
	ReconcileUnordered ReconcileMode = "unordered"
)

// dispatch sends the scoring request for a removed word. The request
// carries the counters as they are now; the word is already gone.
func (g *Game) dispatch(word string, collision bool) {
	g.seq++
	t := scoring.Ticket{
		Seq:       g.seq,
		Epoch:     g.epoch,
		Word:      word,
		Collision: collision,
	}
	g.dispatcher.Dispatch(t, scoring.Request{
		TaskID:        g.cfg.Scoring.TaskID,
		WordArray:     append([]string(nil), g.words...),
		CollectedWord: word,
		CurrentCombo:  g.combo,
		CurrentPoints: g.points,
		Collision:     collision,
	})
}

// Resolve applies a scoring response. A drop in points costs one health;
// a catch that does not lose points counts as a correct word. Points and
// combo are then taken from the response. It reports whether the response
// was applied.
//
// When health reaches zero the game stops before Resolve returns, and
// no response is applied until the next round starts, in either mode.
// The counters shown on the game over screen are the ones submitted.
func (g *Game) Resolve(t scoring.Ticket, resp scoring.Response) bool {
	if g.gameOver {
		return false
	}
	if g.reconcile == ReconcileSequenced {
		if t.Epoch != g.epoch || t.Seq <= g.applied {
			return false
		}
		g.applied = t.Seq
	}

	if resp.Points < g.points {
		g.setHealth(g.health - 1)
	} else if t.Collision {
		g.setCorrect(g.correct + 1)
	}
	g.setPoints(resp.Points)
	g.setCombo(resp.Combo)

	if g.health <= 0 && !g.gameOver {
		g.state = Idle
		g.gameOver = true
		g.applied = g.seq
		if g.onGameOver != nil {
			g.onGameOver()
		}
	}
	return true
}

// ResolveAll applies dispatcher results in arrival order and returns how
// many were applied.
func (g *Game) ResolveAll(results []scoring.Result) int {
	n := 0
	for _, r := range results {
		if g.Resolve(r.Ticket, r.Response) {
			n++
		}
	}
	return n
}
