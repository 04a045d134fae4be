package state

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseIdle, "Idle"},
		{PhaseLoading, "Loading"},
		{PhaseSuccess, "Success"},
		{PhaseFailed, "Failed"},
		{Phase(42), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestInitial(t *testing.T) {
	s := Initial()
	if s.Phase() != PhaseIdle {
		t.Errorf("Phase = %v", s.Phase())
	}
	if s.English() != Placeholder || s.Korean() != Placeholder {
		t.Errorf("expected placeholders, got %q/%q", s.English(), s.Korean())
	}
	if s.IsLoading() || s.HasError() || s.IsTerminal() {
		t.Error("initial state must not be loading, failed or terminal")
	}
	if s.Cycle() != uuid.Nil {
		t.Errorf("Cycle = %v, want nil uuid", s.Cycle())
	}
}

func TestLoading(t *testing.T) {
	id := uuid.New()
	s := Loading(id)

	if !s.IsLoading() {
		t.Error("IsLoading() = false")
	}
	if s.HasError() || s.ErrorMessage() != "" {
		t.Error("loading state must not carry an error")
	}
	if s.English() != "" || s.Korean() != "" {
		t.Error("loading state must not carry a card")
	}
	if s.IsTerminal() {
		t.Error("loading is not terminal")
	}
	if s.Cycle() != id {
		t.Errorf("Cycle = %v, want %v", s.Cycle(), id)
	}
}

func TestSuccess(t *testing.T) {
	id := uuid.New()
	s, err := Success(id, Card{English: " apple ", Korean: "사과", Definition: "A fruit."})
	if err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	if s.English() != "apple" || s.Korean() != "사과" {
		t.Errorf("card = %q/%q", s.English(), s.Korean())
	}
	if s.Card().Definition != "A fruit." {
		t.Errorf("Definition = %q", s.Card().Definition)
	}
	if s.IsLoading() || s.HasError() || s.ErrorMessage() != "" {
		t.Error("success must be neither loading nor failed")
	}
	if !s.IsTerminal() {
		t.Error("success is terminal")
	}
	if s.String() != "Success{apple=사과}" {
		t.Errorf("String() = %q", s.String())
	}
}

func TestSuccess_Incomplete(t *testing.T) {
	tests := []Card{
		{English: "apple"},
		{Korean: "사과"},
		{English: "  ", Korean: "사과"},
		{},
	}

	for _, card := range tests {
		if _, err := Success(uuid.New(), card); !errors.Is(err, ErrIncompleteCard) {
			t.Errorf("Success(%+v) error = %v, want ErrIncompleteCard", card, err)
		}
	}
}

func TestFailed(t *testing.T) {
	id := uuid.New()
	s := Failed(id, "failed to load word: timeout")

	if !s.HasError() {
		t.Error("HasError() = false")
	}
	if s.IsLoading() {
		t.Error("failed state must not be loading")
	}
	if s.ErrorMessage() != "failed to load word: timeout" {
		t.Errorf("ErrorMessage = %q", s.ErrorMessage())
	}
	if s.English() != "" || s.Korean() != "" {
		t.Error("failed state must not carry a card")
	}
	if !s.IsTerminal() {
		t.Error("failed is terminal")
	}
}

func TestFailed_EmptyMessage(t *testing.T) {
	s := Failed(uuid.New(), "   ")
	if s.ErrorMessage() != UnknownError {
		t.Errorf("ErrorMessage = %q, want %q", s.ErrorMessage(), UnknownError)
	}
}

func TestSnapshotsAreValues(t *testing.T) {
	s, _ := Success(uuid.New(), Card{English: "cat", Korean: "고양이"})

	card := s.Card()
	card.English = "dog"
	if s.English() != "cat" {
		t.Error("snapshot was mutated through Card()")
	}

	other := s
	if other != s {
		t.Error("copies of a snapshot must compare equal")
	}
}
