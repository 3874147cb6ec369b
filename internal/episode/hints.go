package episode

import (
	"regexp"
	"sort"
	"strings"
)

// Hint is an English section/radio/part token inside an episode, marking
// the start of a further sub-story.
type Hint struct {
	Pos  int
	Text string
}

var hintPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bsection\s*\d+`),
	regexp.MustCompile(`(?i)\bradio\s*\d+`),
	regexp.MustCompile(`(?i)\bpart\s*\d+`),
	regexp.MustCompile(`(?i)\bstory\s*\d+`),
	regexp.MustCompile(`(?i)\bnumber\s*\d+`),
	regexp.MustCompile(`(?i)\bsegment\s*\d+`),
}

// standaloneNumberRe catches bare numbers after paragraph breaks that act
// as section markers.
var standaloneNumberRe = regexp.MustCompile(`(?:^|\n\n)\s*(\d+)\s*(?:\.|:|\n)`)

// FindHints returns the English hint tokens in text, sorted by position.
func FindHints(text string) []Hint {
	var hints []Hint
	for _, re := range hintPatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			hints = append(hints, Hint{Pos: loc[0], Text: text[loc[0]:loc[1]]})
		}
	}
	for _, loc := range standaloneNumberRe.FindAllStringIndex(text, -1) {
		hints = append(hints, Hint{Pos: loc[0], Text: strings.TrimSpace(text[loc[0]:loc[1]])})
	}
	sort.Slice(hints, func(i, j int) bool { return hints[i].Pos < hints[j].Pos })
	return hints
}

// SplitByHints splits text at each hint position. Text before the first
// hint becomes the leading story; empty stories are dropped. With no hints
// the text comes back whole.
func SplitByHints(text string, hints []Hint) []string {
	if len(hints) == 0 {
		return []string{text}
	}

	var stories []string
	if hints[0].Pos > 0 {
		if lead := strings.TrimSpace(text[:hints[0].Pos]); lead != "" {
			stories = append(stories, lead)
		}
	}
	for i, h := range hints {
		end := len(text)
		if i+1 < len(hints) {
			end = hints[i+1].Pos
		}
		if story := strings.TrimSpace(text[h.Pos:end]); story != "" {
			stories = append(stories, story)
		}
	}
	if len(stories) == 0 {
		return []string{text}
	}
	return stories
}
