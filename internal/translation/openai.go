package translation

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/voca/internal/httpx"
)

// DefaultOpenAIModel is cheap and good enough for single words
const DefaultOpenAIModel = openai.GPT4oMini

// OpenAI translates with an OpenAI chat completion
type OpenAI struct {
	apiKey string
	model  string
	client *openai.Client
	log    zerolog.Logger
}

// NewOpenAI creates a new OpenAI translator
func NewOpenAI(config *Config, log zerolog.Logger) *OpenAI {
	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}
	if config.HTTP.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: config.HTTP.Timeout}
	}

	model := config.OpenAIModel
	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAI{
		apiKey: config.OpenAIKey,
		model:  model,
		client: openai.NewClientWithConfig(clientConfig),
		log:    log.With().Str("service", ProviderOpenAI).Logger(),
	}
}

// Name returns the provider name
func (o *OpenAI) Name() string {
	return ProviderOpenAI
}

// Translate asks the model for a bare translation of text
func (o *OpenAI) Translate(ctx context.Context, text string, pair LangPair) (Result, error) {
	if o.apiKey == "" {
		return Result{}, fmt.Errorf("OpenAI API key not found")
	}
	text, err := validateInput(text)
	if err != nil {
		return Result{}, err
	}

	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt(text, pair),
			},
		},
		MaxTokens:   50,
		Temperature: 0.3,
	}

	o.log.Debug().Str("model", o.model).Str("text", text).Msg("chat completion")

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Result{}, mapOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return Result{}, httpx.DecodeError(ProviderOpenAI, fmt.Errorf("no translation returned"))
	}

	translated := cleanAnswer(resp.Choices[0].Message.Content)
	if translated == "" {
		return Result{}, httpx.DecodeError(ProviderOpenAI, ErrEmptyTranslation)
	}

	return Result{TranslatedText: translated}, nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &httpx.StatusError{Service: ProviderOpenAI, Code: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", ProviderOpenAI, err)
	}
	return fmt.Errorf("%s: %w: %w", ProviderOpenAI, httpx.ErrTransport, err)
}

func prompt(text string, pair LangPair) string {
	src := LanguageName(pair.Source)
	dst := LanguageName(pair.Target)
	return fmt.Sprintf("Translate the %s word '%s' to %s. Respond with only the %s translation, nothing else.",
		src, text, dst, dst)
}
