package processor

import (
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/voca/internal/cli"
)

// Settings is the resolved configuration of one run
type Settings struct {
	WordsFile   string
	LogLevel    string
	OfflineSeed bool
	ShowMeaning bool

	Provider   string
	LangPair   string
	Dictionary string
	Timeout    time.Duration
	Breaker    bool

	DictionaryURL string
	MyMemoryURL   string
	MyMemoryEmail string

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiKey     string
	GeminiModel   string
}

// LoadSettings resolves every setting from v, falling back to the flag
// values for keys neither set on the command line nor in the config file
func LoadSettings(v *viper.Viper, flags *cli.Flags) Settings {
	str := func(key, fallback string) string {
		if v.IsSet(key) {
			return v.GetString(key)
		}
		return fallback
	}
	boolean := func(key string, fallback bool) bool {
		if v.IsSet(key) {
			return v.GetBool(key)
		}
		return fallback
	}

	timeout := flags.Timeout
	if v.IsSet("http.timeout") {
		timeout = v.GetDuration("http.timeout")
	}

	return Settings{
		WordsFile:   str("words.file", flags.WordsFile),
		LogLevel:    str("log.level", flags.LogLevel),
		OfflineSeed: flags.OfflineSeed,
		ShowMeaning: boolean("study.show_meaning", flags.ShowMeaning),

		Provider:   str("translation.provider", flags.Provider),
		LangPair:   str("translation.lang_pair", flags.LangPair),
		Dictionary: str("dictionary.mode", flags.Dictionary),
		Timeout:    timeout,
		Breaker:    boolean("http.breaker", flags.Breaker),

		DictionaryURL: str("dictionary.url", flags.DictionaryURL),
		MyMemoryURL:   str("translation.mymemory_url", flags.MyMemoryURL),
		MyMemoryEmail: v.GetString("translation.mymemory_email"),

		OpenAIModel:   str("translation.openai_model", flags.OpenAIModel),
		OpenAIBaseURL: v.GetString("translation.openai_url"),
		GeminiModel:   str("translation.gemini_model", flags.GeminiModel),
	}
}
