package terminal

import (
	"fmt"
	"strings"

	"codeberg.org/snonux/voca/internal/state"
)

// Hidden replaces the translation until the meaning is revealed
const Hidden = "???"

// FormatCard renders s as a few lines of text
func FormatCard(s state.UIState, showMeaning bool) string {
	var b strings.Builder

	switch s.Phase() {
	case state.PhaseLoading:
		b.WriteString("Loading...\n")

	case state.PhaseFailed:
		fmt.Fprintf(&b, "Error: %s\n", s.ErrorMessage())

	default:
		card := s.Card()

		b.WriteString(card.English)
		if card.Phonetic != "" {
			b.WriteString(" " + card.Phonetic)
		}
		b.WriteString("\n")

		if card.Definition != "" {
			if card.PartOfSpeech != "" {
				fmt.Fprintf(&b, "  %s: %s\n", card.PartOfSpeech, card.Definition)
			} else {
				fmt.Fprintf(&b, "  %s\n", card.Definition)
			}
		}
		if card.Example != "" {
			fmt.Fprintf(&b, "  e.g. %s\n", card.Example)
		}

		meaning := card.Korean
		if !showMeaning {
			meaning = Hidden
		}
		fmt.Fprintf(&b, "  meaning: %s\n", meaning)
	}

	return b.String()
}
