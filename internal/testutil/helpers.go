package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// CreateWordFile writes words one per line into a temp file and returns its path
func CreateWordFile(t *testing.T, words ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "words.txt")
	CreateTestFile(t, path, []byte(strings.Join(words, "\n")+"\n"))
	return path
}

// CaptureOutput captures stdout/stderr during test execution
func CaptureOutput(t *testing.T, f func()) (stdout, stderr string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	outC := make(chan string)
	errC := make(chan string)
	go func() {
		b, _ := io.ReadAll(rOut)
		outC <- string(b)
	}()
	go func() {
		b, _ := io.ReadAll(rErr)
		errC <- string(b)
	}()

	defer func() {
		os.Stdout = oldStdout
		os.Stderr = oldStderr
	}()

	f()

	wOut.Close()
	wErr.Close()

	return <-outC, <-errC
}

// APIServer fakes both the dictionary and the MyMemory endpoint. Words not
// in Definitions get a 404 from the dictionary; words not in Translations
// get a quota error from MyMemory.
type APIServer struct {
	*httptest.Server

	Definitions  map[string]string
	Translations map[string]string

	DictionaryCalls  atomic.Int32
	TranslationCalls atomic.Int32
}

// NewAPIServer starts an APIServer that is closed with the test
func NewAPIServer(t *testing.T, definitions, translations map[string]string) *APIServer {
	t.Helper()

	s := &APIServer{Definitions: definitions, Translations: translations}

	mux := http.NewServeMux()
	mux.HandleFunc("/dict/", s.handleDictionary)
	mux.HandleFunc("/mymemory/get", s.handleTranslate)

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// DictionaryURL is the base URL to configure the dictionary client with
func (s *APIServer) DictionaryURL() string {
	return s.URL + "/dict"
}

// MyMemoryURL is the base URL to configure the MyMemory client with
func (s *APIServer) MyMemoryURL() string {
	return s.URL + "/mymemory"
}

func (s *APIServer) handleDictionary(w http.ResponseWriter, r *http.Request) {
	s.DictionaryCalls.Add(1)

	word := strings.TrimPrefix(r.URL.Path, "/dict/")
	def, ok := s.Definitions[word]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"title":"No Definitions Found"}`))
		return
	}

	writeJSON(w, []any{map[string]any{
		"word":     word,
		"phonetic": "/" + word + "/",
		"meanings": []any{map[string]any{
			"partOfSpeech": "noun",
			"definitions":  []any{map[string]any{"definition": def}},
		}},
	}})
}

func (s *APIServer) handleTranslate(w http.ResponseWriter, r *http.Request) {
	s.TranslationCalls.Add(1)

	tr, ok := s.Translations[r.URL.Query().Get("q")]
	if !ok {
		writeJSON(w, map[string]any{
			"responseData":    map[string]any{"translatedText": ""},
			"responseStatus":  429,
			"responseDetails": "quota exceeded",
		})
		return
	}

	writeJSON(w, map[string]any{
		"responseData":   map[string]any{"translatedText": tr, "match": 1},
		"responseStatus": 200,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
