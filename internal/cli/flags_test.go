package cli

import (
	"reflect"
	"testing"
	"time"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"LogLevel", flags.LogLevel, "warn"},
		{"Provider", flags.Provider, "mymemory"},
		{"LangPair", flags.LangPair, "en|ko"},
		{"Dictionary", flags.Dictionary, "required"},
		{"Timeout", flags.Timeout, 10 * time.Second},
		{"Breaker", flags.Breaker, true},
		{"OpenAIModel", flags.OpenAIModel, "gpt-4o-mini"},
		{"GeminiModel", flags.GeminiModel, "gemini-2.0-flash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// These start out empty or off
	if flags.CfgFile != "" || flags.WordsFile != "" || flags.DictionaryURL != "" || flags.MyMemoryURL != "" {
		t.Errorf("Expected empty path defaults, got %+v", flags)
	}
	if flags.OfflineSeed || flags.ShowMeaning {
		t.Errorf("Expected OfflineSeed and ShowMeaning to default to false")
	}
}
