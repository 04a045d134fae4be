package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/voca/internal/httpx"
)

// Provider names accepted by NewTranslator
const (
	ProviderMyMemory = "mymemory"
	ProviderOpenAI   = "openai"
	ProviderGemini   = "gemini"
)

// Result is the outcome of a translation
type Result struct {
	TranslatedText string
	// Match is the backend's confidence in [0,1] when it reports one
	Match float64
}

// Translator translates a single word or short phrase
type Translator interface {
	// Translate translates text from pair.Source to pair.Target
	Translate(ctx context.Context, text string, pair LangPair) (Result, error)

	// Name returns the backend name
	Name() string
}

// LangPair is a source/target language pair such as en|ko
type LangPair struct {
	Source string
	Target string
}

// DefaultLangPair is English to Korean
var DefaultLangPair = LangPair{Source: "en", Target: "ko"}

// ParseLangPair parses "en|ko"
func ParseLangPair(s string) (LangPair, error) {
	parts := strings.Split(strings.TrimSpace(s), "|")
	if len(parts) != 2 {
		return LangPair{}, fmt.Errorf("invalid language pair %q, want source|target", s)
	}

	pair := LangPair{
		Source: strings.ToLower(strings.TrimSpace(parts[0])),
		Target: strings.ToLower(strings.TrimSpace(parts[1])),
	}
	if pair.Source == "" || pair.Target == "" {
		return LangPair{}, fmt.Errorf("invalid language pair %q, want source|target", s)
	}
	if pair.Source == pair.Target {
		return LangPair{}, fmt.Errorf("invalid language pair %q, source equals target", s)
	}

	return pair, nil
}

func (p LangPair) String() string {
	return p.Source + "|" + p.Target
}

var languageNames = map[string]string{
	"bg": "Bulgarian",
	"de": "German",
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"it": "Italian",
	"ja": "Japanese",
	"ko": "Korean",
	"pt": "Portuguese",
	"ru": "Russian",
	"zh": "Chinese",
}

// LanguageName returns the English name of a language code, or the code
// itself when unknown
func LanguageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

// Config holds configuration for all translation backends
type Config struct {
	Provider string // "mymemory", "openai" or "gemini"
	HTTP     httpx.Config

	// MyMemory-specific settings
	MyMemoryURL   string
	MyMemoryEmail string // raises the anonymous daily quota

	// OpenAI-specific settings
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	// Gemini-specific settings
	GeminiKey     string
	GeminiModel   string
	GeminiBaseURL string
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderMyMemory,
		HTTP:        httpx.DefaultConfig(),
		MyMemoryURL: DefaultMyMemoryURL,
		OpenAIModel: DefaultOpenAIModel,
		GeminiModel: DefaultGeminiModel,
	}
}

// NewTranslator creates the translator selected by config.Provider
func NewTranslator(config *Config, log zerolog.Logger) (Translator, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch strings.ToLower(config.Provider) {
	case "", ProviderMyMemory:
		return NewMyMemory(config, log), nil

	case ProviderOpenAI:
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAI(config, log), nil

	case ProviderGemini:
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGemini(context.Background(), config, log)

	default:
		return nil, fmt.Errorf("unknown translation provider: %s", config.Provider)
	}
}

// ErrEmptyTranslation is returned when a backend answers with no text
var ErrEmptyTranslation = errors.New("empty translation")

func validateInput(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("nothing to translate")
	}
	return text, nil
}

// cleanAnswer strips quotes and trailing punctuation LLMs like to add
func cleanAnswer(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'`“”")
	s = strings.TrimRight(s, ".")
	return strings.TrimSpace(s)
}
