package processor

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/voca/internal/cli"
	"codeberg.org/snonux/voca/internal/enrichment"
	"codeberg.org/snonux/voca/internal/logging"
	"codeberg.org/snonux/voca/internal/testutil"
)

// testSettings points both endpoints at server and uses a single-word list
func testSettings(t *testing.T, server *testutil.APIServer, wordList ...string) Settings {
	t.Helper()

	settings := LoadSettings(viper.New(), cli.NewFlags())
	settings.WordsFile = testutil.CreateWordFile(t, wordList...)
	settings.DictionaryURL = server.DictionaryURL()
	settings.MyMemoryURL = server.MyMemoryURL()
	settings.Timeout = 2 * time.Second
	settings.Breaker = false
	return settings
}

func newTestProcessor(settings Settings, in string, out *bytes.Buffer) *Processor {
	return New(settings, WithIO(strings.NewReader(in), out), WithLogger(logging.Nop()))
}

func TestLoadSettings_Defaults(t *testing.T) {
	settings := LoadSettings(viper.New(), cli.NewFlags())

	if settings.Provider != "mymemory" {
		t.Errorf("Expected provider mymemory, got %s", settings.Provider)
	}
	if settings.LangPair != "en|ko" {
		t.Errorf("Expected lang pair en|ko, got %s", settings.LangPair)
	}
	if settings.Dictionary != "required" {
		t.Errorf("Expected dictionary required, got %s", settings.Dictionary)
	}
	if settings.Timeout != 10*time.Second || !settings.Breaker {
		t.Errorf("Unexpected http defaults: %v %v", settings.Timeout, settings.Breaker)
	}
}

func TestLoadSettings_ConfigOverridesDefaults(t *testing.T) {
	v := viper.New()
	v.Set("translation.provider", "openai")
	v.Set("dictionary.mode", "optional")
	v.Set("http.timeout", "250ms")
	v.Set("http.breaker", false)
	v.Set("translation.mymemory_email", "me@example.org")
	v.Set("study.show_meaning", true)

	settings := LoadSettings(v, cli.NewFlags())

	if settings.Provider != "openai" {
		t.Errorf("Expected provider from config, got %s", settings.Provider)
	}
	if settings.Dictionary != "optional" {
		t.Errorf("Expected dictionary mode from config, got %s", settings.Dictionary)
	}
	if settings.Timeout != 250*time.Millisecond {
		t.Errorf("Expected timeout 250ms, got %v", settings.Timeout)
	}
	if settings.Breaker {
		t.Error("Expected breaker disabled by config")
	}
	if settings.MyMemoryEmail != "me@example.org" {
		t.Errorf("Expected email from config, got %q", settings.MyMemoryEmail)
	}
	if !settings.ShowMeaning {
		t.Error("Expected show meaning from config")
	}
}

func TestNewProcessor(t *testing.T) {
	original := viper.New()
	*original = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *original
	}()
	viper.Reset()

	t.Setenv("OPENAI_API_KEY", "test-key")

	p := NewProcessor(cli.NewFlags())
	if p == nil {
		t.Fatal("NewProcessor returned nil")
	}
	if p.Settings().OpenAIKey != "test-key" {
		t.Errorf("Expected OpenAI key from environment, got %q", p.Settings().OpenAIKey)
	}
}

func TestRunOnce_Success(t *testing.T) {
	server := testutil.NewAPIServer(t,
		map[string]string{"apple": "A round fruit."},
		map[string]string{"apple": "사과"},
	)

	var out bytes.Buffer
	p := newTestProcessor(testSettings(t, server, "apple"), "", &out)

	if err := p.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"apple", "noun: A round fruit.", "meaning: 사과"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %q in output:\n%s", want, got)
		}
	}
	if server.DictionaryCalls.Load() != 1 || server.TranslationCalls.Load() != 1 {
		t.Errorf("Expected one call per endpoint, got %d/%d",
			server.DictionaryCalls.Load(), server.TranslationCalls.Load())
	}
}

func TestRunOnce_TranslationFailure(t *testing.T) {
	server := testutil.NewAPIServer(t, map[string]string{"apple": "A round fruit."}, nil)

	var out bytes.Buffer
	p := newTestProcessor(testSettings(t, server, "apple"), "", &out)

	err := p.RunOnce(context.Background())
	if err == nil {
		t.Fatal("Expected error when translation fails")
	}
	if !strings.HasPrefix(err.Error(), "failed to load word") {
		t.Errorf("Unexpected error message: %v", err)
	}
	if !strings.Contains(out.String(), "Error: failed to load word") {
		t.Errorf("Expected error card, got:\n%s", out.String())
	}
}

func TestRunOnce_DictionaryModes(t *testing.T) {
	tests := []struct {
		mode          string
		wantErr       bool
		wantDictCalls int32
	}{
		{mode: "required", wantErr: true, wantDictCalls: 1},
		{mode: "optional", wantErr: false, wantDictCalls: 1},
		{mode: "off", wantErr: false, wantDictCalls: 0},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			server := testutil.NewAPIServer(t, nil, map[string]string{"ahead": "앞으로"})

			settings := testSettings(t, server, "ahead")
			settings.Dictionary = tt.mode

			var out bytes.Buffer
			err := newTestProcessor(settings, "", &out).RunOnce(context.Background())

			if (err != nil) != tt.wantErr {
				t.Errorf("RunOnce() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := server.DictionaryCalls.Load(); got != tt.wantDictCalls {
				t.Errorf("Expected %d dictionary calls, got %d", tt.wantDictCalls, got)
			}
			if !tt.wantErr && !strings.Contains(out.String(), "meaning: 앞으로") {
				t.Errorf("Expected translation in output:\n%s", out.String())
			}
		})
	}
}

func TestRunOnce_OfflineSeed(t *testing.T) {
	settings := LoadSettings(viper.New(), cli.NewFlags())
	settings.OfflineSeed = true

	var out bytes.Buffer
	p := newTestProcessor(settings, "", &out)

	if err := p.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if !strings.Contains(out.String(), "meaning: ") || strings.Contains(out.String(), "Error") {
		t.Errorf("Expected a seed card, got:\n%s", out.String())
	}
}

func TestEnricher_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"bad lang pair", func(s *Settings) { s.LangPair = "en" }},
		{"bad dictionary mode", func(s *Settings) { s.Dictionary = "sometimes" }},
		{"unknown provider", func(s *Settings) { s.Provider = "babelfish" }},
		{"openai without key", func(s *Settings) { s.Provider = "openai"; s.OpenAIKey = "" }},
		{"offline with other pair", func(s *Settings) { s.OfflineSeed = true; s.LangPair = "en|de" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := LoadSettings(viper.New(), cli.NewFlags())
			tt.modify(&settings)

			if _, err := newTestProcessor(settings, "", &bytes.Buffer{}).Enricher(); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestEnricher_Mode(t *testing.T) {
	settings := LoadSettings(viper.New(), cli.NewFlags())
	settings.Dictionary = "optional"

	svc, err := newTestProcessor(settings, "", &bytes.Buffer{}).Enricher()
	if err != nil {
		t.Fatalf("Enricher failed: %v", err)
	}
	if svc.Mode() != enrichment.ModeOptional {
		t.Errorf("Expected optional mode, got %s", svc.Mode())
	}
}

func TestRunStudy(t *testing.T) {
	server := testutil.NewAPIServer(t,
		map[string]string{"apple": "A round fruit."},
		map[string]string{"apple": "사과"},
	)

	var out bytes.Buffer
	settings := testSettings(t, server, "apple")
	settings.ShowMeaning = true

	// Give the first cycle time to finish before quitting
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	defer r.Close()

	p := New(settings, WithIO(r, &syncBuffer{buf: &out}), WithLogger(logging.Nop()))

	done := make(chan error, 1)
	go func() { done <- p.RunStudy(context.Background()) }()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && server.TranslationCalls.Load() == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	w.Write([]byte("q\n"))
	w.Close()

	if err := <-done; err != nil {
		t.Fatalf("RunStudy failed: %v", err)
	}
	if server.TranslationCalls.Load() != 1 {
		t.Errorf("Expected one fetch, got %d", server.TranslationCalls.Load())
	}
}

func TestListWords(t *testing.T) {
	settings := LoadSettings(viper.New(), cli.NewFlags())
	settings.WordsFile = testutil.CreateWordFile(t, "apple", "# comment", "banana", "Apple")

	var out bytes.Buffer
	if err := newTestProcessor(settings, "", &out).ListWords(); err != nil {
		t.Fatalf("ListWords failed: %v", err)
	}
	if out.String() != "apple\nbanana\n" {
		t.Errorf("Unexpected word list: %q", out.String())
	}
}

func TestListWords_Default(t *testing.T) {
	settings := LoadSettings(viper.New(), cli.NewFlags())

	var out bytes.Buffer
	if err := newTestProcessor(settings, "", &out).ListWords(); err != nil {
		t.Fatalf("ListWords failed: %v", err)
	}
	if lines := strings.Count(out.String(), "\n"); lines != 40 {
		t.Errorf("Expected 40 default words, got %d", lines)
	}
}

func TestListModels_NoAPIKey(t *testing.T) {
	settings := LoadSettings(viper.New(), cli.NewFlags())
	if err := newTestProcessor(settings, "", &bytes.Buffer{}).ListModels(context.Background()); err == nil {
		t.Error("Expected error without API key")
	}
}

func TestCycleTimeout(t *testing.T) {
	tests := []struct {
		timeout time.Duration
		want    time.Duration
	}{
		{timeout: 10 * time.Second, want: 20 * time.Second},
		{timeout: 150 * time.Millisecond, want: 300 * time.Millisecond},
		{timeout: 0, want: 0},
	}

	for _, tt := range tests {
		settings := LoadSettings(viper.New(), cli.NewFlags())
		settings.Timeout = tt.timeout

		if got := newTestProcessor(settings, "", &bytes.Buffer{}).cycleTimeout(); got != tt.want {
			t.Errorf("cycleTimeout() with timeout %v = %v, want %v", tt.timeout, got, tt.want)
		}
	}
}

func TestRunOnce_StalledEndpointFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(3 * time.Second):
		}
	}))
	defer server.Close()

	settings := LoadSettings(viper.New(), cli.NewFlags())
	settings.WordsFile = testutil.CreateWordFile(t, "apple")
	settings.DictionaryURL = server.URL
	settings.MyMemoryURL = server.URL
	settings.Timeout = 150 * time.Millisecond
	settings.Breaker = false

	var out bytes.Buffer
	start := time.Now()
	err := newTestProcessor(settings, "", &out).RunOnce(context.Background())

	if err == nil {
		t.Fatal("Expected error from stalled endpoints")
	}
	if took := time.Since(start); took > 2*time.Second {
		t.Errorf("RunOnce took %v with a %v timeout", took, settings.Timeout)
	}
	if !strings.Contains(out.String(), "Error: failed to load word") {
		t.Errorf("Expected error card, got:\n%s", out.String())
	}
}
