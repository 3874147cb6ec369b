package speaker

import (
	"regexp"
	"strings"
)

// englishNarratorPatterns recognize English narrator sentences announcing
// section/unit/radio numbers inside an otherwise Spanish transcript.
var englishNarratorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)section\s+\d+`),
	regexp.MustCompile(`(?i)unit\s+\d+`),
	regexp.MustCompile(`(?i)radio\s+\d+`),
	regexp.MustCompile(`(?i)\d+\s*(?:st|nd|rd|th)\s+(?:radio|section|unit|part)`),
}

// englishIndicatorWords flag a sentence as English narration when they make
// up more than 30% of its words.
var englishIndicatorWords = map[string]struct{}{
	"section": {}, "unit": {}, "radio": {}, "part": {}, "number": {},
	"segment": {}, "first": {}, "second": {}, "third": {}, "fourth": {},
	"fifth": {}, "sixth": {}, "seventh": {}, "eighth": {},
}

// maxEnglishSentences caps how many leading sentences can be peeled off as
// English narration.
const maxEnglishSentences = 3

// DetectEnglishNarrator splits English narrator sentences off the front of
// an episode. It returns the narration (joined with ". ", "" when none was
// found) and the remaining text with a guaranteed trailing period.
func DetectEnglishNarrator(text string) (string, string) {
	sentences := SplitSentences(text)

	var english, rest []string
	found := false

	for _, sentence := range sentences {
		isEnglish := false
		for _, re := range englishNarratorPatterns {
			if re.MatchString(sentence) {
				isEnglish = true
				break
			}
		}
		if !isEnglish {
			words := wordRe.FindAllString(strings.ToLower(sentence), -1)
			if len(words) > 0 {
				hits := 0
				for _, w := range words {
					if _, ok := englishIndicatorWords[w]; ok {
						hits++
					}
				}
				if float64(hits)/float64(len(words)) > 0.3 {
					isEnglish = true
				}
			}
		}

		if isEnglish && len(english) < maxEnglishSentences {
			english = append(english, sentence)
			found = true
		} else {
			rest = append(rest, sentence)
		}
	}

	if !found {
		return "", text
	}

	spanish := strings.Join(rest, ". ")
	if spanish != "" && !strings.HasSuffix(spanish, ".") {
		spanish += "."
	}
	return strings.Join(english, ". "), spanish
}
