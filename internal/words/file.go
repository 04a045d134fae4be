package words

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/voca/internal"
)

// ReadWordFile reads a word list with one word per line.
// Supports:
// - blank lines (skipped)
// - comments starting with '#' (skipped, also trailing comments)
// - duplicates (dropped, first occurrence wins)
//
// Entries with digits or punctuation other than hyphens and apostrophes are
// rejected.
func ReadWordFile(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read word file: %w", err)
	}
	defer f.Close()

	var list []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}

		word := internal.NormalizeWord(line)
		if word == "" {
			continue
		}
		if !internal.IsWordLike(word) {
			return nil, fmt.Errorf("%s:%d: %q is not a word", filename, lineNo, word)
		}

		key := strings.ToLower(word)
		if seen[key] {
			continue
		}
		seen[key] = true
		list = append(list, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan word file: %w", err)
	}

	return list, nil
}

// LoadSource builds a Source from filename, or from DefaultWords when
// filename is empty.
func LoadSource(filename string, opts ...Option) (*Source, error) {
	if filename == "" {
		return NewSource(DefaultWords, opts...)
	}

	list, err := ReadWordFile(filename)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%s: %w", filename, ErrEmptyList)
	}

	return NewSource(list, opts...)
}
