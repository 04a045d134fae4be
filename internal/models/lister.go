package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister. An empty baseURL uses the public
// OpenAI endpoint.
func NewLister(apiKey, baseURL string) *Lister {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
	}
}

// TranslationModels returns the chat models among ids, sorted. Audio,
// image, embedding and moderation models are left out.
func TranslationModels(ids []string) []string {
	var chat []string
	for _, id := range ids {
		switch {
		case strings.Contains(id, "tts"), strings.Contains(id, "audio"),
			strings.Contains(id, "transcribe"), strings.Contains(id, "realtime"),
			strings.Contains(id, "dall-e"), strings.Contains(id, "image"),
			strings.Contains(id, "embedding"), strings.Contains(id, "moderation"):
			continue
		case strings.HasPrefix(id, "gpt"), strings.Contains(id, "chat"),
			strings.HasPrefix(id, "o1"), strings.HasPrefix(id, "o3"), strings.HasPrefix(id, "o4"):
			chat = append(chat, id)
		}
	}

	sort.Strings(chat)
	return chat
}

// ListTranslationModels prints the chat models usable with --openai-model
// to w, marking current
func (l *Lister) ListTranslationModels(ctx context.Context, w io.Writer, current string) error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .voca.yaml")
	}

	list, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	chat := TranslationModels(ids)

	fmt.Fprintln(w, "Chat models usable for translation (--openai-model):")
	if len(chat) == 0 {
		fmt.Fprintln(w, "  No chat models found")
		return nil
	}
	for _, id := range chat {
		marker := " "
		if id == current {
			marker = "*"
		}
		fmt.Fprintf(w, " %s %s\n", marker, id)
	}

	return nil
}
