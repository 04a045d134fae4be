// Package state defines the immutable snapshot a flashcard view renders.
//
// A snapshot is in exactly one phase. Loading, a resolved card and an error
// message are mutually exclusive, which is why the fields are unexported and
// snapshots can only be built through the constructors below. A new snapshot
// replaces the previous one wholesale.
package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Phase is the step of a fetch cycle a snapshot belongs to
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseLoading:
		return "Loading"
	case PhaseSuccess:
		return "Success"
	case PhaseFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Placeholder is shown for english and korean before the first word arrives
const Placeholder = "..."

// UnknownError is used when a failure carries no message
const UnknownError = "unknown error"

// ErrIncompleteCard is returned by Success when english or korean is blank
var ErrIncompleteCard = errors.New("card needs both english and korean")

// Card is the resolved content of a flashcard
type Card struct {
	English      string
	Korean       string
	Definition   string
	PartOfSpeech string
	Example      string
	Phonetic     string
}

// UIState is one snapshot of the flashcard view
type UIState struct {
	phase        Phase
	card         Card
	errorMessage string
	cycle        uuid.UUID
}

// Initial is the snapshot before any fetch was started
func Initial() UIState {
	return UIState{
		phase: PhaseIdle,
		card:  Card{English: Placeholder, Korean: Placeholder},
	}
}

// Loading is the snapshot emitted when cycle starts. It clears any previous
// error and carries no card.
func Loading(cycle uuid.UUID) UIState {
	return UIState{phase: PhaseLoading, cycle: cycle}
}

// Success is the terminal snapshot of a cycle that resolved card
func Success(cycle uuid.UUID, card Card) (UIState, error) {
	card.English = strings.TrimSpace(card.English)
	card.Korean = strings.TrimSpace(card.Korean)
	if card.English == "" || card.Korean == "" {
		return UIState{}, ErrIncompleteCard
	}

	return UIState{phase: PhaseSuccess, card: card, cycle: cycle}, nil
}

// Failed is the terminal snapshot of a cycle that could not resolve a card.
// The previously displayed card is not carried over.
func Failed(cycle uuid.UUID, message string) UIState {
	message = strings.TrimSpace(message)
	if message == "" {
		message = UnknownError
	}

	return UIState{phase: PhaseFailed, errorMessage: message, cycle: cycle}
}

// Phase returns the phase of the snapshot
func (s UIState) Phase() Phase { return s.phase }

// Cycle returns the id of the cycle that produced the snapshot, uuid.Nil for
// the initial snapshot
func (s UIState) Cycle() uuid.UUID { return s.cycle }

// IsLoading reports whether a cycle is in flight
func (s UIState) IsLoading() bool { return s.phase == PhaseLoading }

// HasError reports whether the snapshot carries an error message
func (s UIState) HasError() bool { return s.phase == PhaseFailed }

// IsTerminal reports whether the snapshot ends a cycle
func (s UIState) IsTerminal() bool {
	return s.phase == PhaseSuccess || s.phase == PhaseFailed
}

// ErrorMessage returns the failure message, empty unless Failed
func (s UIState) ErrorMessage() string { return s.errorMessage }

// English returns the english word
func (s UIState) English() string { return s.card.English }

// Korean returns the translation
func (s UIState) Korean() string { return s.card.Korean }

// Card returns a copy of the card
func (s UIState) Card() Card { return s.card }

func (s UIState) String() string {
	switch s.phase {
	case PhaseSuccess:
		return fmt.Sprintf("%s{%s=%s}", s.phase, s.card.English, s.card.Korean)
	case PhaseFailed:
		return fmt.Sprintf("%s{%s}", s.phase, s.errorMessage)
	default:
		return s.phase.String()
	}
}
