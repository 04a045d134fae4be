package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"codeberg.org/snonux/voca/internal/state"
	"codeberg.org/snonux/voca/internal/viewmodel"
)

// Help lists the keys understood by the presenter
const Help = "[Enter/n] next word  [m] toggle meaning  [q] quit"

// Model is the part of the view model the presenter drives
type Model interface {
	State() state.UIState
	FetchNextWord() uuid.UUID
	Subscribe(fn viewmodel.Observer) func()
}

// Presenter prints every snapshot of a Model and maps input lines to
// actions
type Presenter struct {
	model Model
	in    io.Reader
	out   io.Writer

	mu          sync.Mutex
	showMeaning bool
}

// NewPresenter creates a Presenter reading keys from in and writing cards
// to out
func NewPresenter(model Model, in io.Reader, out io.Writer, showMeaning bool) *Presenter {
	return &Presenter{
		model:       model,
		in:          in,
		out:         out,
		showMeaning: showMeaning,
	}
}

// Run shows the first word and handles input until q, end of input or ctx
// is done. End of input and q return nil. When ctx ends first, the reader
// goroutine stays blocked in the pending read until in yields a line or
// EOF; it sends nothing after that.
func (p *Presenter) Run(ctx context.Context) error {
	unsubscribe := p.model.Subscribe(p.Render)
	defer unsubscribe()

	p.println(Help)
	p.model.FetchNextWord()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(p.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok || p.HandleKey(line) {
				return nil
			}
		}
	}
}

// HandleKey applies one input line and reports whether to quit
func (p *Presenter) HandleKey(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "n":
		p.model.FetchNextWord()
	case "m":
		p.mu.Lock()
		p.showMeaning = !p.showMeaning
		p.mu.Unlock()
		p.Render(p.model.State())
	case "q":
		return true
	default:
		p.println(Help)
	}
	return false
}

// ShowMeaning reports whether translations are currently revealed
func (p *Presenter) ShowMeaning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.showMeaning
}

// Render prints s
func (p *Presenter) Render(s state.UIState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.out, FormatCard(s, p.showMeaning))
}

func (p *Presenter) println(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, s)
}
