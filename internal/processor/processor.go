package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"codeberg.org/snonux/voca/internal/cli"
	"codeberg.org/snonux/voca/internal/dictionary"
	"codeberg.org/snonux/voca/internal/enrichment"
	"codeberg.org/snonux/voca/internal/httpx"
	"codeberg.org/snonux/voca/internal/logging"
	"codeberg.org/snonux/voca/internal/models"
	"codeberg.org/snonux/voca/internal/terminal"
	"codeberg.org/snonux/voca/internal/translation"
	"codeberg.org/snonux/voca/internal/viewmodel"
	"codeberg.org/snonux/voca/internal/words"
)

// Processor builds the component graph from Settings and runs commands
type Processor struct {
	settings Settings
	log      zerolog.Logger
	in       io.Reader
	out      io.Writer
}

// Option configures a Processor
type Option func(*Processor)

// WithIO replaces stdin and stdout
func WithIO(in io.Reader, out io.Writer) Option {
	return func(p *Processor) {
		p.in = in
		p.out = out
	}
}

// WithLogger replaces the console logger
func WithLogger(log zerolog.Logger) Option {
	return func(p *Processor) {
		p.log = log
	}
}

// NewProcessor creates a processor from the parsed flags, the config file
// and the API key environment variables
func NewProcessor(flags *cli.Flags) *Processor {
	settings := LoadSettings(viper.GetViper(), flags)
	settings.OpenAIKey = cli.GetOpenAIKey()
	settings.GeminiKey = cli.GetGeminiKey()
	return New(settings)
}

// New creates a processor from explicit settings
func New(settings Settings, opts ...Option) *Processor {
	p := &Processor{
		settings: settings,
		log:      logging.NewConsole(logging.ParseLevel(settings.LogLevel)),
		in:       os.Stdin,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Settings returns the resolved settings
func (p *Processor) Settings() Settings {
	return p.settings
}

// WordSource returns the configured word list
func (p *Processor) WordSource() (*words.Source, error) {
	if p.settings.OfflineSeed {
		return words.NewSource(words.SeedEnglish())
	}
	return words.LoadSource(p.settings.WordsFile)
}

// Enricher builds the dictionary and translation collaborators
func (p *Processor) Enricher() (*enrichment.Service, error) {
	pair, err := translation.ParseLangPair(p.settings.LangPair)
	if err != nil {
		return nil, err
	}

	mode, err := enrichment.ParseDictionaryMode(p.settings.Dictionary)
	if err != nil {
		return nil, err
	}

	var (
		translator enrichment.Translator
		dict       enrichment.DictionaryLookup
	)

	if p.settings.OfflineSeed {
		if pair != translation.DefaultLangPair {
			return nil, fmt.Errorf("offline seed words only cover %s, got %s", translation.DefaultLangPair, pair)
		}
		translator = translation.NewStatic(pair, words.SeedTable())
		mode = enrichment.ModeOff
	} else {
		httpCfg := p.httpConfig()

		tr, err := translation.NewTranslator(p.translationConfig(httpCfg), logging.Component(p.log, "translation"))
		if err != nil {
			return nil, fmt.Errorf("failed to create translator: %w", err)
		}
		translator = tr

		if mode != enrichment.ModeOff {
			url := p.settings.DictionaryURL
			if url == "" {
				url = dictionary.DefaultBaseURL
			}
			dict = dictionary.NewClientWithURL(url, httpCfg, logging.Component(p.log, "dictionary"))
		}
	}

	return enrichment.NewService(dict, translator,
		enrichment.WithDictionaryMode(mode),
		enrichment.WithLangPair(pair),
		enrichment.WithLogger(logging.Component(p.log, "enrichment")),
	)
}

// NewViewModel wires a view model over the word source and the enricher.
// The caller must Close it.
func (p *Processor) NewViewModel() (*viewmodel.ViewModel, error) {
	source, err := p.WordSource()
	if err != nil {
		return nil, err
	}

	enricher, err := p.Enricher()
	if err != nil {
		return nil, err
	}

	return viewmodel.New(source, enricher,
		viewmodel.WithCycleTimeout(p.cycleTimeout()),
		viewmodel.WithLogger(logging.Component(p.log, "viewmodel")),
	), nil
}

// cycleTimeout bounds a whole cycle at twice the request timeout. Zero
// disables the bound.
func (p *Processor) cycleTimeout() time.Duration {
	if p.settings.Timeout <= 0 {
		return 0
	}
	return 2 * p.settings.Timeout
}

// RunOnce fetches one random word and prints its card. A failed cycle is
// returned as an error.
func (p *Processor) RunOnce(ctx context.Context) error {
	vm, err := p.NewViewModel()
	if err != nil {
		return err
	}
	defer vm.Close()

	s, err := vm.FetchNextWordSync(ctx)
	if err != nil {
		return err
	}

	fmt.Fprint(p.out, terminal.FormatCard(s, true))
	if s.HasError() {
		return errors.New(s.ErrorMessage())
	}
	return nil
}

// RunStudy runs the interactive flashcard loop until the user quits
func (p *Processor) RunStudy(ctx context.Context) error {
	vm, err := p.NewViewModel()
	if err != nil {
		return err
	}
	defer vm.Close()

	return terminal.NewPresenter(vm, p.in, p.out, p.settings.ShowMeaning).Run(ctx)
}

// ListWords prints the active word list, one per line
func (p *Processor) ListWords() error {
	source, err := p.WordSource()
	if err != nil {
		return err
	}

	for _, w := range source.Words() {
		fmt.Fprintln(p.out, w)
	}
	return nil
}

// ListModels prints the OpenAI chat models usable for translation
func (p *Processor) ListModels(ctx context.Context) error {
	lister := models.NewLister(p.settings.OpenAIKey, p.settings.OpenAIBaseURL)
	return lister.ListTranslationModels(ctx, p.out, p.settings.OpenAIModel)
}

func (p *Processor) httpConfig() httpx.Config {
	cfg := httpx.DefaultConfig()
	if p.settings.Timeout > 0 {
		cfg.Timeout = p.settings.Timeout
	}
	cfg.Breaker = p.settings.Breaker
	return cfg
}

func (p *Processor) translationConfig(httpCfg httpx.Config) *translation.Config {
	cfg := translation.DefaultConfig()
	cfg.Provider = p.settings.Provider
	cfg.HTTP = httpCfg
	if p.settings.MyMemoryURL != "" {
		cfg.MyMemoryURL = p.settings.MyMemoryURL
	}
	cfg.MyMemoryEmail = p.settings.MyMemoryEmail

	cfg.OpenAIKey = p.settings.OpenAIKey
	if p.settings.OpenAIModel != "" {
		cfg.OpenAIModel = p.settings.OpenAIModel
	}
	cfg.OpenAIBaseURL = p.settings.OpenAIBaseURL

	cfg.GeminiKey = p.settings.GeminiKey
	if p.settings.GeminiModel != "" {
		cfg.GeminiModel = p.settings.GeminiModel
	}
	return cfg
}
