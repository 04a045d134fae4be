package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/voca/internal/httpx"
)

// DefaultMyMemoryURL is the public MyMemory endpoint
const DefaultMyMemoryURL = "https://api.mymemory.translated.net"

// MyMemory translates with the MyMemory translation memory API
type MyMemory struct {
	http  *httpx.Client
	email string
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string  `json:"translatedText"`
		Match          float64 `json:"match"`
	} `json:"responseData"`
	ResponseStatus  statusCode `json:"responseStatus"`
	ResponseDetails string     `json:"responseDetails"`
}

// statusCode accepts both 200 and "200", MyMemory sends either
type statusCode int

func (s *statusCode) UnmarshalJSON(b []byte) error {
	str := strings.Trim(string(b), `"`)
	if str == "" || str == "null" {
		*s = 0
		return nil
	}
	n, err := strconv.Atoi(str)
	if err != nil {
		return fmt.Errorf("responseStatus %s: %w", b, err)
	}
	*s = statusCode(n)
	return nil
}

// NewMyMemory creates a MyMemory translator
func NewMyMemory(config *Config, log zerolog.Logger) *MyMemory {
	baseURL := config.MyMemoryURL
	if baseURL == "" {
		baseURL = DefaultMyMemoryURL
	}

	return &MyMemory{
		http:  httpx.New(ProviderMyMemory, baseURL, config.HTTP, log),
		email: config.MyMemoryEmail,
	}
}

// Name returns the provider name
func (m *MyMemory) Name() string {
	return ProviderMyMemory
}

// Translate calls GET /get?q=<text>&langpair=<src>|<dst>
func (m *MyMemory) Translate(ctx context.Context, text string, pair LangPair) (Result, error) {
	text, err := validateInput(text)
	if err != nil {
		return Result{}, err
	}

	query := map[string]string{
		"q":        text,
		"langpair": pair.String(),
	}
	if m.email != "" {
		query["de"] = m.email
	}

	body, err := m.http.Get(ctx, httpx.Request{Path: "/get", Query: query})
	if err != nil {
		return Result{}, err
	}

	var resp myMemoryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Result{}, httpx.DecodeError(ProviderMyMemory, err)
	}

	// Quota and validation problems arrive as HTTP 200 with the real
	// status in the body.
	if resp.ResponseStatus != 0 && resp.ResponseStatus != 200 {
		return Result{}, &httpx.StatusError{
			Service: ProviderMyMemory,
			Code:    int(resp.ResponseStatus),
			Body:    resp.ResponseDetails,
		}
	}

	translated := strings.TrimSpace(html.UnescapeString(resp.ResponseData.TranslatedText))
	if translated == "" {
		return Result{}, httpx.DecodeError(ProviderMyMemory, ErrEmptyTranslation)
	}

	return Result{
		TranslatedText: translated,
		Match:          resp.ResponseData.Match,
	}, nil
}
