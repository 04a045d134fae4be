package enrichment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/voca/internal/dictionary"
	"codeberg.org/snonux/voca/internal/httpx"
	"codeberg.org/snonux/voca/internal/state"
	"codeberg.org/snonux/voca/internal/translation"
)

// DictionaryLookup is the dictionary collaborator
type DictionaryLookup interface {
	Lookup(ctx context.Context, word string) ([]dictionary.WordInfo, error)
}

// Translator is the translation collaborator
type Translator interface {
	Translate(ctx context.Context, text string, pair translation.LangPair) (translation.Result, error)
}

// Result is a fully resolved word
type Result struct {
	Word        string
	Translation string
	// Summary is empty when the dictionary was skipped or, in optional
	// mode, failed
	Summary       dictionary.Summary
	HasDefinition bool
}

// Card converts the result into the card shown by the view
func (r Result) Card() state.Card {
	return state.Card{
		English:      r.Word,
		Korean:       r.Translation,
		Definition:   r.Summary.Definition,
		PartOfSpeech: r.Summary.PartOfSpeech,
		Example:      r.Summary.Example,
		Phonetic:     r.Summary.Phonetic,
	}
}

// FetchError is the single failure kind surfaced to the view. Its message
// embeds the underlying cause.
type FetchError struct {
	Word string
	Err  error
}

func (e *FetchError) Error() string {
	return "failed to load word: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Kind returns the httpx error kind of the cause
func (e *FetchError) Kind() string {
	return httpx.Kind(e.Err)
}

// Service merges dictionary and translation lookups
type Service struct {
	dict       DictionaryLookup
	translator Translator
	mode       DictionaryMode
	pair       translation.LangPair
	log        zerolog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithDictionaryMode sets how dictionary failures are treated
func WithDictionaryMode(mode DictionaryMode) Option {
	return func(s *Service) {
		s.mode = mode
	}
}

// WithLangPair sets the translation direction
func WithLangPair(pair translation.LangPair) Option {
	return func(s *Service) {
		s.pair = pair
	}
}

// WithLogger sets the logger
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// NewService creates a Service. dict may be nil only with ModeOff.
func NewService(dict DictionaryLookup, translator Translator, opts ...Option) (*Service, error) {
	s := &Service{
		dict:       dict,
		translator: translator,
		mode:       ModeRequired,
		pair:       translation.DefaultLangPair,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if translator == nil {
		return nil, fmt.Errorf("translator is required")
	}
	if dict == nil && s.mode != ModeOff {
		return nil, fmt.Errorf("dictionary is required in %s mode", s.mode)
	}

	return s, nil
}

// Mode returns the configured dictionary mode
func (s *Service) Mode() DictionaryMode {
	return s.mode
}

// Enrich looks up word in the dictionary and the translator concurrently
// and waits for both. The first required failure cancels the other call.
func (s *Service) Enrich(ctx context.Context, word string) (Result, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return Result{}, &FetchError{Word: word, Err: fmt.Errorf("empty word")}
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	var (
		summary       dictionary.Summary
		hasDefinition bool
		translated    translation.Result
	)

	if s.mode != ModeOff {
		g.Go(func() error {
			entries, err := s.dict.Lookup(gctx, word)
			if err != nil {
				if s.mode == ModeRequired {
					return fmt.Errorf("dictionary lookup: %w", err)
				}
				s.log.Debug().Err(err).Str("word", word).Str("kind", httpx.Kind(err)).
					Msg("dictionary lookup failed, continuing without definition")
				return nil
			}
			summary, hasDefinition = dictionary.FirstDefinition(entries)
			return nil
		})
	}

	g.Go(func() error {
		res, err := s.translator.Translate(gctx, word, s.pair)
		if err != nil {
			return fmt.Errorf("translation: %w", err)
		}
		translated = res
		return nil
	})

	if err := g.Wait(); err != nil {
		s.log.Debug().Err(err).Str("word", word).Str("kind", httpx.Kind(err)).
			Dur("took", time.Since(start)).Msg("enrichment failed")
		return Result{}, &FetchError{Word: word, Err: err}
	}

	s.log.Debug().Str("word", word).Str("translation", translated.TranslatedText).
		Bool("definition", hasDefinition).Dur("took", time.Since(start)).Msg("enriched")

	return Result{
		Word:          word,
		Translation:   translated.TranslatedText,
		Summary:       summary,
		HasDefinition: hasDefinition,
	}, nil
}
