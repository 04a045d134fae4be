package enrichment

import (
	"fmt"
	"strings"
)

// DictionaryMode controls whether the dictionary lookup is part of a cycle
type DictionaryMode string

const (
	// ModeRequired fails the cycle when the lookup fails, including words
	// the dictionary does not know
	ModeRequired DictionaryMode = "required"
	// ModeOptional keeps the translation and drops the definition when the
	// lookup fails
	ModeOptional DictionaryMode = "optional"
	// ModeOff never calls the dictionary
	ModeOff DictionaryMode = "off"
)

// ParseDictionaryMode parses required, optional or off
func ParseDictionaryMode(s string) (DictionaryMode, error) {
	switch DictionaryMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeRequired:
		return ModeRequired, nil
	case ModeOptional:
		return ModeOptional, nil
	case ModeOff:
		return ModeOff, nil
	default:
		return "", fmt.Errorf("unknown dictionary mode %q (want required, optional or off)", s)
	}
}

func (m DictionaryMode) String() string {
	return string(m)
}
