package scoring

import (
	"context"
	"fmt"

	"github.com/flashread/wordfall/internal/storage"
)

// GameID is the storage key for word fall rounds.
const GameID = "wordfall"

// LocalStore is the part of the storage layer the local backend uses.
type LocalStore interface {
	Words(theme string) ([]string, error)
	SaveResult(r storage.Result) (int64, error)
}

// Local evaluates scoring requests in process. Word pools come from the
// store when it has them and from the configured pools otherwise.
type Local struct {
	rules Rules
	pools map[string][]string
	store LocalStore
}

// NewLocal creates a local backend. store may be nil.
func NewLocal(rules Rules, pools map[string][]string, store LocalStore) *Local {
	return &Local{rules: rules, pools: pools, store: store}
}

// Rules returns the rules the backend scores with.
func (l *Local) Rules() Rules {
	return l.rules
}

// Score implements Backend.
func (l *Local) Score(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	return l.rules.Evaluate(req), nil
}

// Words implements Backend.
func (l *Local) Words(ctx context.Context, theme string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.store != nil {
		words, err := l.store.Words(theme)
		if err != nil {
			return nil, fmt.Errorf("scoring: words for %s: %w", theme, err)
		}
		if len(words) > 0 {
			return words, nil
		}
	}

	pool := l.pools[theme]
	out := make([]string, len(pool))
	copy(out, pool)
	return out, nil
}

// SubmitResult implements ResultSink. Without a store results are dropped.
func (l *Local) SubmitResult(ctx context.Context, res FinalResult) error {
	if l.store == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := l.store.SaveResult(storage.Result{
		GameID:       GameID,
		Player:       res.Player,
		Score:        res.Points,
		CorrectWords: res.CorrectWords,
		Difficulty:   res.Difficulty,
		Theme:        res.Theme,
	})
	if err != nil {
		return fmt.Errorf("scoring: save result: %w", err)
	}
	return nil
}
