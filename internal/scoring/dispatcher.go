package scoring

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Ticket identifies one scoring request so its response can be matched
// against the game state that produced it.
type Ticket struct {
	Seq       uint64 // strictly increasing per game
	Epoch     uint64 // bumped whenever the round is reset
	Word      string
	Collision bool
}

// Result is a resolved request. Failed requests resolve to a zero Response.
type Result struct {
	Ticket   Ticket
	Response Response
	Err      error
}

// Dispatcher runs scoring requests in the background. Every request gets its
// own goroutine; there is no backpressure and no coalescing, so results may
// arrive in any order.
type Dispatcher struct {
	backend Backend
	timeout time.Duration
	logger  *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	results chan Result
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithTimeout bounds every backend call.
func WithTimeout(d time.Duration) DispatcherOption {
	return func(ds *Dispatcher) {
		ds.timeout = d
	}
}

// WithLogger sets the logger failures are reported to.
func WithLogger(l *log.Logger) DispatcherOption {
	return func(ds *Dispatcher) {
		if l != nil {
			ds.logger = l
		}
	}
}

// NewDispatcher creates a dispatcher over backend.
func NewDispatcher(backend Backend, opts ...DispatcherOption) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		backend: backend,
		timeout: 3 * time.Second,
		logger:  log.New(io.Discard),
		ctx:     ctx,
		cancel:  cancel,
		results: make(chan Result, 64),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch starts a request. The result shows up in Drain or Results.
func (d *Dispatcher) Dispatch(t Ticket, req Request) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
		defer cancel()

		resp, err := d.backend.Score(ctx, req)
		if err != nil {
			d.logger.Warn("scoring request failed", "word", t.Word, "collision", t.Collision, "seq", t.Seq, "err", err)
			resp = Response{}
		}

		select {
		case d.results <- Result{Ticket: t, Response: resp, Err: err}:
		case <-d.ctx.Done():
		}
	}()
}

// Results exposes the result channel.
func (d *Dispatcher) Results() <-chan Result {
	return d.results
}

// Drain returns every result resolved so far without blocking.
func (d *Dispatcher) Drain() []Result {
	var out []Result
	for {
		select {
		case r := <-d.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

// FetchWords loads a word pool in the background. The channel yields one
// slice, empty when the backend fails, and is then closed.
func (d *Dispatcher) FetchWords(theme string) <-chan []string {
	ch := make(chan []string, 1)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer close(ch)

		ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
		defer cancel()

		words, err := d.backend.Words(ctx, theme)
		if err != nil {
			d.logger.Warn("word pool request failed", "theme", theme, "err", err)
			words = []string{}
		}
		ch <- words
	}()
	return ch
}

// Wait blocks until every started request has resolved or been dropped.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Close cancels in-flight requests and drops their results.
func (d *Dispatcher) Close() {
	d.cancel()
	d.wg.Wait()
}
