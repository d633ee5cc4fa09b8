package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/flashread/wordfall/internal/storage"
)

func TestRulesEvaluate(t *testing.T) {
	words := []string{"cat", "dog"}

	tests := []struct {
		name      string
		word      string
		collision bool
		points    int
		combo     int
		want      Response
	}{
		{"catch target", "cat", true, 0, 0, Response{Points: 10, Combo: 1}},
		{"catch target with combo", "dog", true, 20, 2, Response{Points: 40, Combo: 3}},
		{"catch filler", "the", true, 20, 2, Response{Points: 5, Combo: 0}},
		{"miss target", "cat", false, 20, 2, Response{Points: 15, Combo: 0}},
		{"miss filler", "the", false, 20, 2, Response{Points: 20, Combo: 2}},
		{"points go negative", "the", true, 0, 0, Response{Points: -15, Combo: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultRules.Evaluate(Request{
				TaskID:        TaskPoints,
				WordArray:     words,
				CollectedWord: tt.word,
				CurrentCombo:  tt.combo,
				CurrentPoints: tt.points,
				Collision:     tt.collision,
			})
			if got != tt.want {
				t.Errorf("Evaluate() = %+v, expected %+v", got, tt.want)
			}
		})
	}
}

func TestRequestWireFormat(t *testing.T) {
	data, err := json.Marshal(Request{TaskID: 2, WordArray: []string{"cat"}, CollectedWord: "cat", CurrentCombo: 1, CurrentPoints: 5, Collision: true})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"taskId":2,"wordArray":["cat"],"collectedWord":"cat","currentCombo":1,"currentPoints":5,"collision":true}`
	if string(data) != want {
		t.Errorf("wire format = %s\nexpected %s", data, want)
	}
}

func TestClientScore(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != PathPoints {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_, _ = w.Write([]byte(`{"session":1,"points":100,"combo":5}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	resp, err := c.Score(context.Background(), Request{TaskID: TaskPoints, CollectedWord: "word1"})
	if err != nil {
		t.Fatalf("Score() failed: %v", err)
	}
	if resp.Points != 100 || resp.Combo != 5 {
		t.Errorf("Score() = %+v", resp)
	}
	if got.CollectedWord != "word1" {
		t.Errorf("server saw %+v", got)
	}
}

func TestClientWords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req WordsRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.TaskID != TaskWords || req.Theme != "Anime" {
			t.Errorf("unexpected words request %+v", req)
		}
		_, _ = w.Write([]byte(`{"session":1,"wordArray":["word1","word2"]}`))
	}))
	defer srv.Close()

	words, err := NewClient(srv.URL, time.Second).Words(context.Background(), "Anime")
	if err != nil {
		t.Fatalf("Words() failed: %v", err)
	}
	if len(words) != 2 || words[0] != "word1" {
		t.Errorf("Words() = %v", words)
	}
}

func TestClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad word"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if _, err := c.Score(context.Background(), Request{}); err == nil {
		t.Error("expected an error for a 400 response")
	}
	if err := c.SubmitResult(context.Background(), FinalResult{}); err == nil {
		t.Error("expected an error for a 400 response")
	}

	dead := NewClient("http://127.0.0.1:1", 200*time.Millisecond)
	if _, err := dead.Words(context.Background(), "History"); err == nil {
		t.Error("expected an error for an unreachable scorer")
	}
}

func TestClientLeaderboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "3" {
			t.Errorf("limit = %q", r.URL.Query().Get("limit"))
		}
		_, _ = w.Write([]byte(`[{"player":"ann","points":50}]`))
	}))
	defer srv.Close()

	entries, err := NewClient(srv.URL, time.Second).Leaderboard(context.Background(), 3)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Player != "ann" || entries[0].Points != 50 {
		t.Errorf("Leaderboard() = %+v", entries)
	}
}

// gatedBackend resolves each request only when its word is released.
type gatedBackend struct {
	mu    sync.Mutex
	gates map[string]chan Response
	fail  bool
}

func newGatedBackend(words ...string) *gatedBackend {
	b := &gatedBackend{gates: make(map[string]chan Response)}
	for _, w := range words {
		b.gates[w] = make(chan Response, 1)
	}
	return b
}

func (b *gatedBackend) release(word string, r Response) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gates[word] <- r
}

func (b *gatedBackend) Score(ctx context.Context, req Request) (Response, error) {
	b.mu.Lock()
	gate := b.gates[req.CollectedWord]
	b.mu.Unlock()
	select {
	case r := <-gate:
		if b.fail {
			return Response{}, errors.New("scorer down")
		}
		return r, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}

func (b *gatedBackend) Words(ctx context.Context, theme string) ([]string, error) {
	if b.fail {
		return nil, errors.New("scorer down")
	}
	return []string{theme}, nil
}

func waitResult(t *testing.T, d *Dispatcher) Result {
	t.Helper()
	select {
	case r := <-d.Results():
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a result")
	}
	return Result{}
}

func TestDispatcherResultsArriveInResolutionOrder(t *testing.T) {
	b := newGatedBackend("first", "second")
	d := NewDispatcher(b)
	defer d.Close()

	d.Dispatch(Ticket{Seq: 1, Word: "first"}, Request{CollectedWord: "first"})
	d.Dispatch(Ticket{Seq: 2, Word: "second"}, Request{CollectedWord: "second"})

	if got := d.Drain(); len(got) != 0 {
		t.Fatalf("Drain() before resolution = %v", got)
	}

	b.release("second", Response{Points: 20})
	r := waitResult(t, d)
	if r.Ticket.Seq != 2 || r.Response.Points != 20 {
		t.Errorf("first resolved = %+v, expected seq 2", r)
	}

	b.release("first", Response{Points: 10})
	r = waitResult(t, d)
	if r.Ticket.Seq != 1 || r.Response.Points != 10 {
		t.Errorf("second resolved = %+v, expected seq 1", r)
	}
}

func TestDispatcherFailureResolvesToZero(t *testing.T) {
	b := newGatedBackend("cat")
	b.fail = true
	d := NewDispatcher(b)
	defer d.Close()

	d.Dispatch(Ticket{Seq: 1, Word: "cat"}, Request{CollectedWord: "cat", CurrentPoints: 40})
	b.release("cat", Response{Points: 99})

	r := waitResult(t, d)
	if r.Err == nil {
		t.Error("result should carry the error")
	}
	if r.Response != (Response{}) {
		t.Errorf("failed request should resolve to zero, got %+v", r.Response)
	}
}

func TestDispatcherTimeout(t *testing.T) {
	b := newGatedBackend("slow")
	d := NewDispatcher(b, WithTimeout(20*time.Millisecond))
	defer d.Close()

	d.Dispatch(Ticket{Seq: 1, Word: "slow"}, Request{CollectedWord: "slow"})
	r := waitResult(t, d)
	if !errors.Is(r.Err, context.DeadlineExceeded) {
		t.Errorf("err = %v, expected deadline exceeded", r.Err)
	}
}

func TestDispatcherFetchWords(t *testing.T) {
	b := newGatedBackend()
	d := NewDispatcher(b)
	defer d.Close()

	words := <-d.FetchWords("History")
	if len(words) != 1 || words[0] != "History" {
		t.Errorf("FetchWords() = %v", words)
	}

	b.fail = true
	words = <-d.FetchWords("History")
	if words == nil || len(words) != 0 {
		t.Errorf("failed fetch should yield an empty pool, got %v", words)
	}
}

type fakeStore struct {
	words   map[string][]string
	saved   []storage.Result
	wordErr error
}

func (s *fakeStore) Words(theme string) ([]string, error) {
	return s.words[theme], s.wordErr
}

func (s *fakeStore) SaveResult(r storage.Result) (int64, error) {
	s.saved = append(s.saved, r)
	return int64(len(s.saved)), nil
}

func TestLocalWords(t *testing.T) {
	pools := map[string][]string{"History": {"empire"}, "Anime": {"mecha"}}
	store := &fakeStore{words: map[string][]string{"History": {"treaty", "dynasty"}}}
	l := NewLocal(DefaultRules, pools, store)
	ctx := context.Background()

	got, err := l.Words(ctx, "History")
	if err != nil || len(got) != 2 {
		t.Errorf("stored pool = %v, %v", got, err)
	}
	got, err = l.Words(ctx, "Anime")
	if err != nil || len(got) != 1 || got[0] != "mecha" {
		t.Errorf("configured pool = %v, %v", got, err)
	}
	got, _ = l.Words(ctx, "Unknown")
	if len(got) != 0 {
		t.Errorf("unknown theme = %v, expected empty", got)
	}

	store.wordErr = errors.New("locked")
	if _, err := l.Words(ctx, "History"); err == nil {
		t.Error("store errors should be returned")
	}
}

func TestLocalScoreAndSubmit(t *testing.T) {
	store := &fakeStore{}
	l := NewLocal(DefaultRules, nil, store)
	ctx := context.Background()

	resp, err := l.Score(ctx, Request{WordArray: []string{"cat"}, CollectedWord: "cat", Collision: true})
	if err != nil || resp.Points != 10 {
		t.Errorf("Score() = %+v, %v", resp, err)
	}

	if err := l.SubmitResult(ctx, FinalResult{Player: "ann", Points: 30, CorrectWords: 3, Difficulty: "Hard", Theme: "Anime"}); err != nil {
		t.Fatalf("SubmitResult() failed: %v", err)
	}
	if len(store.saved) != 1 || store.saved[0].GameID != GameID || store.saved[0].Score != 30 {
		t.Errorf("saved = %+v", store.saved)
	}

	if err := NewLocal(DefaultRules, nil, nil).SubmitResult(ctx, FinalResult{}); err != nil {
		t.Errorf("storeless submit should be a no-op, got %v", err)
	}
}
