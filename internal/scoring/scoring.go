// Package scoring is the word fall scoring collaborator: the request and
// response contract, the rules that evaluate it, an HTTP client for a remote
// scorer, an in-process backend and the asynchronous dispatcher the game
// uses to keep ticking while outcomes are pending.
package scoring

import "context"

// Task IDs used on the wire.
const (
	TaskPoints = 2 // score a collected or missed word
	TaskWords  = 3 // fetch a word pool
)

// Request asks for the outcome of one removed word.
type Request struct {
	TaskID        int      `json:"taskId"`
	WordArray     []string `json:"wordArray"`
	CollectedWord string   `json:"collectedWord"`
	CurrentCombo  int      `json:"currentCombo"`
	CurrentPoints int      `json:"currentPoints"`
	Collision     bool     `json:"collision"`
}

// Response carries the authoritative points and combo after a request.
type Response struct {
	Session int `json:"session,omitempty"`
	Points  int `json:"points"`
	Combo   int `json:"combo"`
}

// WordsRequest asks for the word pool of a theme.
type WordsRequest struct {
	TaskID int    `json:"taskId"`
	Theme  string `json:"theme"`
}

// WordsResponse carries a word pool.
type WordsResponse struct {
	Session   int      `json:"session,omitempty"`
	WordArray []string `json:"wordArray"`
}

// FinalResult is a finished round submitted for the leaderboard.
type FinalResult struct {
	Player       string `json:"player"`
	Points       int    `json:"points"`
	CorrectWords int    `json:"correctWords"`
	Difficulty   string `json:"difficulty"`
	Theme        string `json:"theme"`
}

// LeaderboardEntry is one row of the leaderboard.
type LeaderboardEntry struct {
	Player       string `json:"player"`
	Points       int    `json:"points"`
	CorrectWords int    `json:"correctWords"`
	Difficulty   string `json:"difficulty"`
	Theme        string `json:"theme"`
	CreatedAt    string `json:"createdAt"`
}

// Backend evaluates scoring requests and serves word pools.
type Backend interface {
	Score(ctx context.Context, req Request) (Response, error)
	Words(ctx context.Context, theme string) ([]string, error)
}

// ResultSink receives finished rounds. Both the HTTP client and the local
// backend implement it.
type ResultSink interface {
	SubmitResult(ctx context.Context, res FinalResult) error
}
