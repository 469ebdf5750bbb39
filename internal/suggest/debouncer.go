package suggest

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/metrics"
)

const (
	DefaultDelay     = 300 * time.Millisecond
	DefaultMinLength = 3
	DefaultLimit     = 8

	// Number of past tickets whose final state is remembered
	historySize = 64
)

// State is the lifecycle of one suggestion query
type State int

const (
	Idle State = iota
	Pending
	Delivered
	Superseded
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Pending:
		return "Pending"
	case Delivered:
		return "Delivered"
	case Superseded:
		return "Superseded"
	default:
		return "Unknown"
	}
}

// Ticket identifies one call to Input
type Ticket uint64

// Fetcher issues the remote suggestion query
type Fetcher interface {
	FetchSuggestions(ctx context.Context, query string) ([]domain.Suggestion, error)
}

// Timer is the part of *time.Timer the debouncer needs
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it via a small adapter.
type AfterFunc func(d time.Duration, f func()) Timer

// Options configures a Debouncer. Zero values use the defaults.
type Options struct {
	Delay     time.Duration
	MinLength int // Trimmed inputs shorter than this clear suggestions
	Limit     int

	// OnUpdate receives every change to the visible suggestions. It runs with the
	// debouncer locked and must not call back into it.
	OnUpdate func([]domain.Suggestion)

	AfterFunc AfterFunc
}

// Debouncer turns keystroke input into at most one suggestion query per pause.
// The last issued query wins: a response for an older ticket is discarded even if
// it arrives after the newer one.
type Debouncer struct {
	fetch  Fetcher
	opts   Options
	logger *slog.Logger

	mu       sync.Mutex
	ctx      context.Context
	stop     context.CancelFunc
	current  Ticket
	state    State
	timer    Timer
	inflight context.CancelFunc
	results  []domain.Suggestion
	history  map[Ticket]State
	closed   bool
}

// New creates a Debouncer
func New(fetch Fetcher, opts Options, logger *slog.Logger) *Debouncer {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.MinLength <= 0 {
		opts.MinLength = DefaultMinLength
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
	}

	ctx, stop := context.WithCancel(context.Background())
	return &Debouncer{
		fetch:   fetch,
		opts:    opts,
		logger:  logger,
		ctx:     ctx,
		stop:    stop,
		state:   Idle,
		results: []domain.Suggestion{},
		history: make(map[Ticket]State),
	}
}

// Input handles a change of the search box text and returns its ticket
func (d *Debouncer) Input(text string) Ticket {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return d.current
	}

	d.supersedeLocked()
	d.current++
	ticket := d.current

	query := strings.TrimSpace(text)
	if utf8.RuneCountInString(query) < d.opts.MinLength {
		d.setStateLocked(ticket, Idle)
		d.publishLocked([]domain.Suggestion{})
		return ticket
	}

	d.setStateLocked(ticket, Pending)
	d.timer = d.opts.AfterFunc(d.opts.Delay, func() { d.fire(ticket, query) })
	return ticket
}

// State returns the state of the most recent ticket
func (d *Debouncer) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Status returns the state of a ticket. Forgotten tickets report Superseded.
func (d *Debouncer) Status(t Ticket) State {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t == d.current {
		return d.state
	}
	if s, ok := d.history[t]; ok {
		return s
	}
	return Superseded
}

// Suggestions returns the currently visible suggestions
func (d *Debouncer) Suggestions() []domain.Suggestion {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.Suggestion(nil), d.results...)
}

// Close cancels any pending timer or request. Further input is ignored.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.supersedeLocked()
	d.closed = true
	d.stop()
}

func (d *Debouncer) fire(ticket Ticket, query string) {
	d.mu.Lock()
	if d.closed || ticket != d.current {
		d.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(d.ctx)
	d.inflight = cancel
	d.timer = nil
	d.mu.Unlock()

	results, err := d.fetch.FetchSuggestions(ctx, query)
	cancel()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || ticket != d.current {
		metrics.SuggestionsDroppedTotal.Inc()
		d.logger.Debug("dropping stale suggestions", "query", query)
		return
	}
	d.inflight = nil

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			d.logger.Warn("suggestion request failed", "query", query, "error", err)
		}
		results = []domain.Suggestion{}
	}
	if len(results) > d.opts.Limit {
		results = results[:d.opts.Limit]
	}

	d.setStateLocked(ticket, Delivered)
	d.publishLocked(results)
}

// supersedeLocked stops the current ticket's timer and request
func (d *Debouncer) supersedeLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.inflight != nil {
		d.inflight()
		d.inflight = nil
	}
	if d.state == Pending {
		d.setStateLocked(d.current, Superseded)
	}
}

func (d *Debouncer) setStateLocked(t Ticket, s State) {
	d.state = s
	d.history[t] = s
	if t > historySize {
		delete(d.history, t-historySize)
	}
}

func (d *Debouncer) publishLocked(results []domain.Suggestion) {
	d.results = results
	if d.opts.OnUpdate != nil {
		d.opts.OnUpdate(append([]domain.Suggestion(nil), results...))
	}
}
