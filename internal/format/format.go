// Package format renders attributed episodes and combines per-file
// transcripts into a single document.
package format

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/xiaodongyu/spanish-helper/internal/speaker"
)

// Separator widths for combined transcripts. Legacy per-file headers used
// the narrower rule, which is what StripHeader recognizes.
const (
	separatorWidth       = 80
	legacySeparatorWidth = 60
)

// Separator is the episode rule used in combined transcripts.
func Separator() string {
	return strings.Repeat("=", separatorWidth)
}

// RenderEpisode renders attributed sentences per the output contract: each
// sentence capitalized and prefixed with its speaker label, sentences
// separated by blank lines, with a trailing period guaranteed.
func RenderEpisode(attrs []speaker.Attribution) string {
	lines := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		sentence := strings.TrimSpace(attr.Sentence)
		if sentence == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s]: %s", attr.Speaker, capitalize(sentence)))
	}
	out := strings.Join(lines, ".\n\n")
	if out != "" && !strings.HasSuffix(out, ".") {
		out += "."
	}
	return out
}

// RenderPlain formats text without speaker labels: one capitalized sentence
// per paragraph. Used when attribution produced nothing.
func RenderPlain(text string) string {
	sentences := speaker.SplitSentences(text)
	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		out = append(out, capitalize(s))
	}
	joined := strings.Join(out, ".\n\n")
	if joined != "" && !strings.HasSuffix(joined, ".") {
		joined += "."
	}
	return joined
}

// Combine concatenates episode transcripts into a single document with
// EPISODE banners between rules.
func Combine(episodes []string) string {
	sep := Separator()
	var b strings.Builder

	b.WriteString("Complete Transcript\n")
	fmt.Fprintf(&b, "Total Episodes: %d\n", len(episodes))
	b.WriteString(sep + "\n")

	for i, content := range episodes {
		fmt.Fprintf(&b, "\n\n%s\nEPISODE %d\n%s\n\n", sep, i+1, sep)
		b.WriteString(strings.TrimSpace(StripHeader(content)))
	}

	fmt.Fprintf(&b, "\n\n%s\nEND OF TRANSCRIPT\n%s\n", sep, sep)
	return b.String()
}

// StripHeader removes a legacy per-file header from transcript content:
// leading "Story ..." lines and blank lines up to (and including) a rule of
// 60 '=' characters.
func StripHeader(content string) string {
	legacyRule := strings.Repeat("=", legacySeparatorWidth)
	lines := strings.Split(content, "\n")

	var kept []string
	skipping := true
	for _, line := range lines {
		if skipping && (strings.HasPrefix(line, "Story ") || strings.HasPrefix(line, legacyRule) || strings.TrimSpace(line) == "") {
			if strings.HasPrefix(line, legacyRule) {
				skipping = false
			}
			continue
		}
		skipping = false
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
