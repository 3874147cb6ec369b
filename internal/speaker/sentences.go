package speaker

import (
	"regexp"
	"strings"
)

var sentenceSplitRe = regexp.MustCompile(`[.!?]+\s+`)
var wordRe = regexp.MustCompile(`[\p{L}\p{N}]+`)

// SplitSentences splits text at sentence-terminal punctuation followed by
// whitespace. Returned sentences are trimmed, stripped of trailing terminal
// punctuation, and never empty.
func SplitSentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.TrimRight(p, ".!?")
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CountWords returns the number of word tokens in a sentence.
func CountWords(sentence string) int {
	return len(wordRe.FindAllString(sentence, -1))
}
