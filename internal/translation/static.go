package translation

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/snonux/voca/internal/httpx"
)

// Static answers from a fixed table without touching the network. It only
// knows one language pair.
type Static struct {
	pair  LangPair
	table map[string]string
}

// NewStatic creates a Static translator for pair. Keys are matched case
// insensitively.
func NewStatic(pair LangPair, table map[string]string) *Static {
	t := make(map[string]string, len(table))
	for k, v := range table {
		t[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Static{pair: pair, table: t}
}

// Name returns "static"
func (s *Static) Name() string {
	return "static"
}

// Translate looks text up in the table
func (s *Static) Translate(ctx context.Context, text string, pair LangPair) (Result, error) {
	text, err := validateInput(text)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if pair != s.pair {
		return Result{}, fmt.Errorf("static translator only supports %s, got %s", s.pair, pair)
	}

	tr, ok := s.table[strings.ToLower(text)]
	if !ok {
		return Result{}, fmt.Errorf("static: %q: %w", text, httpx.ErrNotFound)
	}
	return Result{TranslatedText: tr, Match: 1}, nil
}
