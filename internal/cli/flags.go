package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile     string
	WordsFile   string
	LogLevel    string
	OfflineSeed bool
	ShowMeaning bool

	// Lookup flags
	Provider   string
	LangPair   string
	Dictionary string
	Timeout    time.Duration
	Breaker    bool

	// Endpoint overrides
	DictionaryURL string
	MyMemoryURL   string

	// Model flags
	OpenAIModel string
	GeminiModel string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		LogLevel:    "warn",
		Provider:    "mymemory",
		LangPair:    "en|ko",
		Dictionary:  "required",
		Timeout:     10 * time.Second,
		Breaker:     true,
		OpenAIModel: "gpt-4o-mini",
		GeminiModel: "gemini-2.0-flash",
	}
}
