package translation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/voca/internal/httpx"
)

func newTestOpenAI(url, key string) *OpenAI {
	cfg := DefaultConfig()
	cfg.OpenAIKey = key
	cfg.OpenAIBaseURL = url + "/v1"
	return NewOpenAI(cfg, zerolog.Nop())
}

func chatResponse(content string) string {
	return `{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4o-mini",` +
		`"choices":[{"index":0,"message":{"role":"assistant","content":` + quote(content) + `},"finish_reason":"stop"}]}`
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestOpenAI_Translate_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != DefaultOpenAIModel {
			t.Errorf("model = %q", req.Model)
		}
		if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "'apple' to Korean") {
			t.Errorf("unexpected prompt: %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatResponse(" \"사과\" ")))
	}))
	defer srv.Close()

	res, err := newTestOpenAI(srv.URL, "test-key").Translate(context.Background(), "apple", DefaultLangPair)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TranslatedText != "사과" {
		t.Errorf("TranslatedText = %q, want 사과", res.TranslatedText)
	}
}

func TestOpenAI_Translate_NoAPIKey(t *testing.T) {
	t.Parallel()

	_, err := newTestOpenAI("http://127.0.0.1:1", "").Translate(context.Background(), "apple", DefaultLangPair)
	if err == nil || err.Error() != "OpenAI API key not found" {
		t.Errorf("Expected 'OpenAI API key not found' error, got: %v", err)
	}
}

func TestOpenAI_Translate_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	defer srv.Close()

	_, err := newTestOpenAI(srv.URL, "bad-key").Translate(context.Background(), "apple", DefaultLangPair)
	var se *httpx.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *httpx.StatusError, got %v", err)
	}
	if se.Code != http.StatusUnauthorized {
		t.Errorf("Code = %d, want 401", se.Code)
	}
}

func TestOpenAI_Translate_NoChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[]}`))
	}))
	defer srv.Close()

	_, err := newTestOpenAI(srv.URL, "test-key").Translate(context.Background(), "apple", DefaultLangPair)
	if !errors.Is(err, httpx.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestOpenAI_Translate_Transport(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestOpenAI(url, "test-key").Translate(context.Background(), "apple", DefaultLangPair)
	if !errors.Is(err, httpx.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestOpenAI_Translate_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	cfg := DefaultConfig()
	cfg.OpenAIKey = apiKey
	res, err := NewOpenAI(cfg, zerolog.Nop()).Translate(context.Background(), "apple", DefaultLangPair)
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if res.TranslatedText == "" {
		t.Error("Got empty translation")
	}
	t.Logf("Translation of 'apple': %s", res.TranslatedText)
}
