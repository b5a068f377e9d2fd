// Package metrics derives cheap, content-free size features from text.
package metrics

import (
	"strings"
	"unicode/utf8"
)

// fence mirrors invocation.Fence; metrics stays import-free of the parser.
const fence = "```"

// Features holds basic local text features derived from an input string.
type Features struct {
	Bytes  int
	Runes  int
	Words  int
	Lines  int
	Fences int
}

// CountFeatures computes byte, rune, word, line and fence-marker counts for s.
func CountFeatures(s string) Features {
	return Features{
		Bytes:  len(s),
		Runes:  utf8.RuneCountInString(s),
		Words:  len(strings.Fields(s)),
		Lines:  countLines(s),
		Fences: strings.Count(s, fence),
	}
}

// Map renders f for JSON event payloads.
func (f Features) Map() map[string]any {
	return map[string]any{
		"bytes":  f.Bytes,
		"runes":  f.Runes,
		"words":  f.Words,
		"lines":  f.Lines,
		"fences": f.Fences,
	}
}

// countLines returns 0 for empty strings; otherwise 1 plus the number of '\n'.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return 1 + strings.Count(s, "\n")
}
