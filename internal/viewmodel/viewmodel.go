package viewmodel

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"codeberg.org/snonux/voca/internal/enrichment"
	"codeberg.org/snonux/voca/internal/state"
)

var (
	// ErrClosed is returned when a cycle is requested after Close
	ErrClosed = errors.New("view model is closed")
	// ErrSuperseded is returned by FetchNextWordSync when a newer cycle
	// started before this one finished
	ErrSuperseded = errors.New("fetch superseded by a newer one")
)

// WordSource picks the next candidate word
type WordSource interface {
	NextCandidate() string
}

// Enricher resolves a word into a card
type Enricher interface {
	Enrich(ctx context.Context, word string) (enrichment.Result, error)
}

// Observer receives committed snapshots
type Observer func(state.UIState)

// ViewModel holds the current snapshot
type ViewModel struct {
	source       WordSource
	enricher     Enricher
	log          zerolog.Logger
	cycleTimeout time.Duration

	ctx       context.Context
	ctxCancel context.CancelFunc

	mu         sync.Mutex
	cond       *sync.Cond
	current    state.UIState
	generation uint64
	cancel     context.CancelFunc
	running    int
	closed     bool

	observers  map[int]Observer
	nextID     int
	pending    []state.UIState
	delivering bool
	done       chan struct{}
}

// Option configures a ViewModel
type Option func(*ViewModel)

// WithCycleTimeout bounds each cycle. Zero means no bound beyond the
// collaborators' own timeouts.
func WithCycleTimeout(d time.Duration) Option {
	return func(vm *ViewModel) {
		vm.cycleTimeout = d
	}
}

// WithLogger sets the logger
func WithLogger(log zerolog.Logger) Option {
	return func(vm *ViewModel) {
		vm.log = log
	}
}

// New creates a ViewModel in the Initial state. No cycle is started until
// FetchNextWord is called.
func New(source WordSource, enricher Enricher, opts ...Option) *ViewModel {
	ctx, cancel := context.WithCancel(context.Background())

	vm := &ViewModel{
		source:    source,
		enricher:  enricher,
		log:       zerolog.Nop(),
		ctx:       ctx,
		ctxCancel: cancel,
		current:   state.Initial(),
		observers: make(map[int]Observer),
		done:      make(chan struct{}),
	}
	vm.cond = sync.NewCond(&vm.mu)
	for _, opt := range opts {
		opt(vm)
	}

	go vm.dispatch()
	return vm
}

// State returns the current snapshot
func (vm *ViewModel) State() state.UIState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.current
}

// Subscribe registers fn for every snapshot committed from now on. The
// returned function removes the subscription.
func (vm *ViewModel) Subscribe(fn Observer) func() {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	id := vm.nextID
	vm.nextID++
	vm.observers[id] = fn

	return func() {
		vm.mu.Lock()
		defer vm.mu.Unlock()
		delete(vm.observers, id)
	}
}

// FetchNextWord starts a cycle in the background and returns its id. Any
// cycle still in flight is superseded. After Close it returns uuid.Nil.
func (vm *ViewModel) FetchNextWord() uuid.UUID {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.closed {
		return uuid.Nil
	}

	id := uuid.New()
	ctx, gen := vm.beginLocked(vm.ctx, id)
	go vm.run(ctx, gen, id)

	return id
}

// FetchNextWordSync runs a cycle on the calling goroutine and returns its
// terminal snapshot. Canceling ctx cancels the cycle. If a newer cycle
// started meanwhile the computed snapshot is returned with ErrSuperseded
// and is not committed.
func (vm *ViewModel) FetchNextWordSync(ctx context.Context) (state.UIState, error) {
	vm.mu.Lock()
	if vm.closed {
		vm.mu.Unlock()
		return state.UIState{}, ErrClosed
	}

	id := uuid.New()
	cycleCtx, gen := vm.beginLocked(vm.ctx, id)
	vm.mu.Unlock()

	stop := context.AfterFunc(ctx, vm.cancelGeneration(gen))
	defer stop()

	next, committed := vm.run(cycleCtx, gen, id)
	if committed {
		return next, nil
	}

	vm.mu.Lock()
	closed := vm.closed
	vm.mu.Unlock()
	if closed {
		return next, ErrClosed
	}
	return next, ErrSuperseded
}

// Close cancels the cycle in flight and stops notifications. Snapshots
// produced afterwards are discarded. Close is idempotent and must not be
// called from an Observer.
func (vm *ViewModel) Close() {
	vm.mu.Lock()
	if vm.closed {
		vm.mu.Unlock()
		return
	}
	vm.closed = true
	vm.pending = nil
	vm.cond.Broadcast()
	vm.mu.Unlock()

	vm.ctxCancel()
	<-vm.done
}

// Wait blocks until no cycle is in flight and every committed snapshot has
// been delivered. After Close it only waits for running cycles, whose
// results are discarded. It must not be called from an Observer.
func (vm *ViewModel) Wait() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	for vm.running > 0 || (!vm.closed && (len(vm.pending) > 0 || vm.delivering)) {
		vm.cond.Wait()
	}
}

// beginLocked supersedes the current cycle and commits Loading for id.
func (vm *ViewModel) beginLocked(parent context.Context, id uuid.UUID) (context.Context, uint64) {
	if vm.cancel != nil {
		vm.cancel()
	}
	vm.generation++
	vm.running++

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if vm.cycleTimeout > 0 {
		ctx, cancel = context.WithTimeout(parent, vm.cycleTimeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}
	vm.cancel = cancel

	vm.commitLocked(state.Loading(id))
	vm.log.Debug().Str("cycle", id.String()).Uint64("generation", vm.generation).Msg("cycle started")

	return ctx, vm.generation
}

// cancelGeneration returns a func canceling the cycle of gen if it is still
// the current one.
func (vm *ViewModel) cancelGeneration(gen uint64) func() {
	return func() {
		vm.mu.Lock()
		defer vm.mu.Unlock()
		if vm.generation == gen && vm.cancel != nil {
			vm.cancel()
		}
	}
}

// run resolves one word and commits the result if gen is still current.
func (vm *ViewModel) run(ctx context.Context, gen uint64, id uuid.UUID) (state.UIState, bool) {
	word := vm.source.NextCandidate()

	var next state.UIState
	res, err := vm.enricher.Enrich(ctx, word)
	if err == nil {
		next, err = state.Success(id, res.Card())
	}
	if err != nil {
		next = state.Failed(id, err.Error())
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.running--
	vm.cond.Broadcast()

	if vm.closed || vm.generation != gen {
		vm.log.Debug().Str("cycle", id.String()).Str("word", word).Stringer("result", next).
			Msg("discarding stale result")
		return next, false
	}

	vm.cancel()
	vm.cancel = nil
	vm.commitLocked(next)

	level := zerolog.DebugLevel
	if next.HasError() {
		level = zerolog.InfoLevel
	}
	vm.log.WithLevel(level).Str("cycle", id.String()).Str("word", word).
		Stringer("phase", next.Phase()).Str("error", next.ErrorMessage()).Msg("cycle finished")

	return next, true
}

func (vm *ViewModel) commitLocked(s state.UIState) {
	vm.current = s
	vm.pending = append(vm.pending, s)
	vm.cond.Broadcast()
}

// dispatch delivers pending snapshots one at a time until Close.
func (vm *ViewModel) dispatch() {
	defer close(vm.done)

	vm.mu.Lock()
	for {
		for !vm.closed && len(vm.pending) == 0 {
			vm.cond.Wait()
		}
		if vm.closed {
			vm.delivering = false
			vm.cond.Broadcast()
			vm.mu.Unlock()
			return
		}

		s := vm.pending[0]
		vm.pending = vm.pending[1:]
		observers := vm.observersLocked()
		vm.delivering = true
		vm.mu.Unlock()

		for _, fn := range observers {
			fn(s)
		}

		vm.mu.Lock()
		vm.delivering = false
		vm.cond.Broadcast()
	}
}

// observersLocked returns the observers in subscription order
func (vm *ViewModel) observersLocked() []Observer {
	ids := make([]int, 0, len(vm.observers))
	for id := range vm.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]Observer, 0, len(ids))
	for _, id := range ids {
		out = append(out, vm.observers[id])
	}
	return out
}
