// Package dictionary looks up English words in the Free Dictionary API
// (dictionaryapi.dev).
package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/voca/internal/httpx"
)

// DefaultBaseURL is the public Free Dictionary endpoint
const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

const serviceName = "dictionary"

// WordInfo is one entry of the lookup response. The API returns one entry
// per etymology.
type WordInfo struct {
	Word      string     `json:"word"`
	Phonetic  string     `json:"phonetic"`
	Phonetics []Phonetic `json:"phonetics"`
	Meanings  []Meaning  `json:"meanings"`
}

// Phonetic is a transcription with an optional audio url
type Phonetic struct {
	Text  string `json:"text"`
	Audio string `json:"audio"`
}

// Meaning groups definitions sharing a part of speech
type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
}

// Definition is a single sense
type Definition struct {
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// Summary is the part of a lookup shown on a flashcard
type Summary struct {
	Word         string
	PartOfSpeech string
	Definition   string
	Example      string
	Phonetic     string
}

// Client fetches entries from the dictionary endpoint
type Client struct {
	http *httpx.Client
}

// NewClient creates a Client for the public endpoint
func NewClient(cfg httpx.Config, log zerolog.Logger) *Client {
	return NewClientWithURL(DefaultBaseURL, cfg, log)
}

// NewClientWithURL creates a Client with a custom base URL (for testing)
func NewClientWithURL(baseURL string, cfg httpx.Config, log zerolog.Logger) *Client {
	return &Client{
		http: httpx.New(serviceName, baseURL, cfg, log),
	}
}

// Lookup fetches all entries for word. A word the dictionary does not know
// and an empty entry list both yield httpx.ErrNotFound.
func (c *Client) Lookup(ctx context.Context, word string) ([]WordInfo, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, fmt.Errorf("%s: empty word", serviceName)
	}

	body, err := c.http.Get(ctx, httpx.Request{
		Path:       "/{word}",
		PathParams: map[string]string{"word": word},
	})
	if err != nil {
		return nil, err
	}

	var entries []WordInfo
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, httpx.DecodeError(serviceName, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %q: %w", serviceName, word, httpx.ErrNotFound)
	}

	return entries, nil
}

// FirstDefinition returns the first definition of the first meaning that has
// one. The phonetic falls back to the first non-empty transcription.
func FirstDefinition(entries []WordInfo) (Summary, bool) {
	if len(entries) == 0 {
		return Summary{}, false
	}

	s := Summary{Word: entries[0].Word}
	found := false

	for _, entry := range entries {
		if s.Phonetic == "" {
			s.Phonetic = phoneticOf(entry)
		}
		if found {
			continue
		}
		for _, m := range entry.Meanings {
			if len(m.Definitions) == 0 {
				continue
			}
			s.PartOfSpeech = m.PartOfSpeech
			s.Definition = m.Definitions[0].Definition
			s.Example = m.Definitions[0].Example
			found = true
			break
		}
	}

	return s, found
}

func phoneticOf(entry WordInfo) string {
	if entry.Phonetic != "" {
		return entry.Phonetic
	}
	for _, ph := range entry.Phonetics {
		if ph.Text != "" {
			return ph.Text
		}
	}
	return ""
}
