package testutil

import (
	"context"
	"fmt"
	"sync"

	"codeberg.org/snonux/voca/internal/dictionary"
	"codeberg.org/snonux/voca/internal/httpx"
	"codeberg.org/snonux/voca/internal/translation"
)

// FakeTranslator is a scriptable translation.Translator
type FakeTranslator struct {
	TranslateFn func(ctx context.Context, text string, pair translation.LangPair) (translation.Result, error)

	mu    sync.Mutex
	calls []string
}

// Translate records the call and delegates to TranslateFn
func (f *FakeTranslator) Translate(ctx context.Context, text string, pair translation.LangPair) (translation.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.mu.Unlock()

	if f.TranslateFn == nil {
		return translation.Result{}, fmt.Errorf("fake: no TranslateFn")
	}
	return f.TranslateFn(ctx, text, pair)
}

// Name returns "fake"
func (f *FakeTranslator) Name() string {
	return "fake"
}

// Calls returns the words translated so far
func (f *FakeTranslator) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Translations returns a FakeTranslator answering from m. Unknown words
// fail with a 404 status error.
func Translations(m map[string]string) *FakeTranslator {
	return &FakeTranslator{
		TranslateFn: func(_ context.Context, text string, _ translation.LangPair) (translation.Result, error) {
			if tr, ok := m[text]; ok {
				return translation.Result{TranslatedText: tr, Match: 1}, nil
			}
			return translation.Result{}, &httpx.StatusError{Service: "fake", Code: 404}
		},
	}
}

// FailingTranslator returns a FakeTranslator that always fails with err
func FailingTranslator(err error) *FakeTranslator {
	return &FakeTranslator{
		TranslateFn: func(context.Context, string, translation.LangPair) (translation.Result, error) {
			return translation.Result{}, err
		},
	}
}

// FakeDictionary is a scriptable dictionary lookup
type FakeDictionary struct {
	LookupFn func(ctx context.Context, word string) ([]dictionary.WordInfo, error)

	mu    sync.Mutex
	calls []string
}

// Lookup records the call and delegates to LookupFn
func (f *FakeDictionary) Lookup(ctx context.Context, word string) ([]dictionary.WordInfo, error) {
	f.mu.Lock()
	f.calls = append(f.calls, word)
	f.mu.Unlock()

	if f.LookupFn == nil {
		return nil, fmt.Errorf("fake: no LookupFn")
	}
	return f.LookupFn(ctx, word)
}

// Calls returns the words looked up so far
func (f *FakeDictionary) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Definitions returns a FakeDictionary with one noun definition per word.
// Unknown words yield httpx.ErrNotFound.
func Definitions(m map[string]string) *FakeDictionary {
	return &FakeDictionary{
		LookupFn: func(_ context.Context, word string) ([]dictionary.WordInfo, error) {
			def, ok := m[word]
			if !ok {
				return nil, fmt.Errorf("fake: %q: %w", word, httpx.ErrNotFound)
			}
			return []dictionary.WordInfo{WordInfo(word, "noun", def)}, nil
		},
	}
}

// FailingDictionary returns a FakeDictionary that always fails with err
func FailingDictionary(err error) *FakeDictionary {
	return &FakeDictionary{
		LookupFn: func(context.Context, string) ([]dictionary.WordInfo, error) {
			return nil, err
		},
	}
}

// WordInfo builds a single-meaning dictionary entry
func WordInfo(word, partOfSpeech, definition string) dictionary.WordInfo {
	return dictionary.WordInfo{
		Word:     word,
		Phonetic: "/" + word + "/",
		Meanings: []dictionary.Meaning{{
			PartOfSpeech: partOfSpeech,
			Definitions:  []dictionary.Definition{{Definition: definition}},
		}},
	}
}

// SequenceSource hands out words in order and wraps around
type SequenceSource struct {
	mu    sync.Mutex
	words []string
	next  int
}

// NewSequenceSource creates a deterministic word source
func NewSequenceSource(words ...string) *SequenceSource {
	return &SequenceSource{words: words}
}

// NextCandidate returns the next word of the sequence
func (s *SequenceSource) NextCandidate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.words[s.next%len(s.words)]
	s.next++
	return w
}
