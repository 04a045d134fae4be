package words

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"codeberg.org/snonux/voca/internal"
)

// ErrEmptyList is returned when a Source is built without any words
var ErrEmptyList = errors.New("word list is empty")

// DefaultWords is the built-in list of common English words
var DefaultWords = []string{
	"ability", "able", "about", "above", "accept", "according", "account", "across", "act", "action",
	"activity", "actually", "add", "address", "administration", "admit", "adult", "affect", "after",
	"again", "against", "age", "agency", "agent", "ago", "agree", "agreement", "ahead", "air",
	"all", "allow", "almost", "alone", "along", "already", "also", "although", "always", "American",
}

// Word is a static english/korean pair used when no network is wanted
type Word struct {
	English string
	Korean  string
}

// SeedWords are pairs that need no translation lookup
var SeedWords = []Word{
	{English: "apple", Korean: "사과"},
	{English: "banana", Korean: "바나나"},
	{English: "cat", Korean: "고양이"},
	{English: "dog", Korean: "개"},
	{English: "elephant", Korean: "코끼리"},
}

// Source selects candidate words from a fixed list
type Source struct {
	words []string

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Source
type Option func(*Source)

// WithRand makes the selection deterministic, mainly for tests
func WithRand(rng *rand.Rand) Option {
	return func(s *Source) {
		s.rng = rng
	}
}

// NewSource creates a Source over a copy of list. Entries are normalized
// and must not be blank.
func NewSource(list []string, opts ...Option) (*Source, error) {
	if len(list) == 0 {
		return nil, ErrEmptyList
	}

	words := make([]string, 0, len(list))
	for i, w := range list {
		w = internal.NormalizeWord(w)
		if w == "" {
			return nil, fmt.Errorf("word %d is blank", i+1)
		}
		words = append(words, w)
	}

	s := &Source{
		words: words,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// MustNewSource is like NewSource but panics on error. Only use it with
// lists known at compile time such as DefaultWords.
func MustNewSource(list []string, opts ...Option) *Source {
	s, err := NewSource(list, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// NextCandidate returns a uniformly random word from the list
func (s *Source) NextCandidate() string {
	s.mu.Lock()
	i := s.rng.Intn(len(s.words))
	s.mu.Unlock()

	return s.words[i]
}

// Words returns a copy of the configured list
func (s *Source) Words() []string {
	out := make([]string, len(s.words))
	copy(out, s.words)
	return out
}

// Len returns the number of candidate words
func (s *Source) Len() int {
	return len(s.words)
}

// SeedEnglish returns the english side of SeedWords
func SeedEnglish() []string {
	out := make([]string, len(SeedWords))
	for i, w := range SeedWords {
		out[i] = w.English
	}
	return out
}

// SeedTable maps each seed english word to its korean translation
func SeedTable() map[string]string {
	out := make(map[string]string, len(SeedWords))
	for _, w := range SeedWords {
		out[w.English] = w.Korean
	}
	return out
}
