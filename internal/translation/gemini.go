package translation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"codeberg.org/snonux/voca/internal/httpx"
)

// DefaultGeminiModel is the model used when none is configured
const DefaultGeminiModel = "gemini-2.0-flash"

// Gemini translates with the Gemini API
type Gemini struct {
	model   string
	timeout time.Duration
	client  *genai.Client
	log     zerolog.Logger
}

// NewGemini creates a new Gemini translator. No request is made here.
func NewGemini(ctx context.Context, config *Config, log zerolog.Logger) (*Gemini, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.GeminiBaseURL != "" {
		clientConfig.HTTPOptions.BaseURL = config.GeminiBaseURL
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.GeminiModel
	if model == "" {
		model = DefaultGeminiModel
	}

	return &Gemini{
		model:   model,
		timeout: config.HTTP.Timeout,
		client:  client,
		log:     log.With().Str("service", ProviderGemini).Logger(),
	}, nil
}

// Name returns the provider name
func (g *Gemini) Name() string {
	return ProviderGemini
}

// Translate asks the model for a bare translation of text. Each call is
// bounded by the configured HTTP timeout.
func (g *Gemini) Translate(ctx context.Context, text string, pair LangPair) (Result, error) {
	text, err := validateInput(text)
	if err != nil {
		return Result{}, err
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.3),
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	g.log.Debug().Str("model", g.model).Str("text", text).Msg("generate content")

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt(text, pair)), config)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Result{}, fmt.Errorf("%s: %w", ProviderGemini, err)
		}
		return Result{}, fmt.Errorf("%s: %w: %w", ProviderGemini, httpx.ErrTransport, err)
	}

	translated := cleanAnswer(resp.Text())
	if translated == "" {
		return Result{}, httpx.DecodeError(ProviderGemini, ErrEmptyTranslation)
	}

	return Result{TranslatedText: translated}, nil
}
