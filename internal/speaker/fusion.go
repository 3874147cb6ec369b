package speaker

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// WordStamp is a word-level timestamp from the transcription collaborator.
type WordStamp struct {
	Word  string
	Start float64
	End   float64
}

// Segment is a time-aligned speaker segment from the diarization
// collaborator. SpeakerID is the raw anonymous identifier (for example
// "SPEAKER_00"); Text is optional.
type Segment struct {
	Start     float64
	End       float64
	SpeakerID string
	Text      string
}

// minWordMatches is how many sentence words must be located in the
// timestamp stream before the sentence's time range is trusted.
const minWordMatches = 3

// AlignSentences maps each sentence to a raw speaker identifier by locating
// its words in the timestamp stream and looking up the resulting time range
// against the speaker segments. A sentence that cannot be located yields "".
func AlignSentences(sentences []string, words []WordStamp, segments []Segment) []string {
	if len(words) == 0 || len(segments) == 0 {
		return nil
	}

	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	speakerAt := func(t float64) string {
		for _, seg := range sorted {
			if seg.Start <= t && t <= seg.End {
				return seg.SpeakerID
			}
		}
		return ""
	}

	out := make([]string, len(sentences))
	wordIdx := 0

	for si, sentence := range sentences {
		tokens := map[string]struct{}{}
		for _, w := range wordRe.FindAllString(sentence, -1) {
			tokens[strings.ToLower(w)] = struct{}{}
		}
		if len(tokens) == 0 {
			continue
		}

		need := minWordMatches
		if len(tokens) < need {
			need = len(tokens)
		}

		start, end := -1.0, -1.0
		matched := 0
		for i := wordIdx; i < len(words); i++ {
			clean := strings.ToLower(strings.TrimRight(strings.TrimSpace(words[i].Word), ".,!?;:"))
			if _, ok := tokens[clean]; !ok {
				continue
			}
			if start < 0 {
				start = words[i].Start
			}
			end = words[i].End
			matched++
			if matched >= need {
				wordIdx = i + 1
				break
			}
		}

		if start < 0 || end < 0 {
			continue
		}
		// Midpoint lookup first; the segment edges are noisier.
		id := speakerAt((start + end) / 2)
		if id == "" {
			id = speakerAt(start)
		}
		if id == "" {
			id = speakerAt(end)
		}
		out[si] = id
	}
	return out
}

// MapSpeakers maps raw audio speaker identifiers to detected names. The
// heuristic only supports the two-name, two-identifier case: the most
// frequent identifier is assigned to the name that introduces itself within
// the episode's first five sentences, and the other identifier to the other
// name. Any other shape returns nil and the caller falls back to the text
// cascade.
func MapSpeakers(audioIDs []string, textAttrs []Attribution, names []string, logger *zap.Logger) map[string]string {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(audioIDs) != len(textAttrs) {
		return nil
	}

	counts := map[string]int{}
	for _, id := range audioIDs {
		if id != "" {
			counts[id]++
		}
	}

	if len(names) != 2 || len(counts) != 2 {
		// Three or more participants (or identifiers) are unsupported;
		// attribution stays text-only rather than risking a mis-mapping.
		logger.Debug("audio speaker mapping unsupported, using text-only attribution",
			zap.Int("names", len(names)),
			zap.Int("audio_speakers", len(counts)))
		return nil
	}

	ids := make([]string, 0, 2)
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})

	// The main speaker carries the introduction, so the name heard in the
	// first sentences belongs to the busier identifier.
	limit := 5
	if len(textAttrs) < limit {
		limit = len(textAttrs)
	}
	var introText strings.Builder
	for _, attr := range textAttrs[:limit] {
		introText.WriteString(attr.Sentence)
		introText.WriteString(" ")
	}
	intro := strings.ToLower(introText.String())

	mainName := ""
	for _, name := range names {
		if strings.Contains(intro, strings.ToLower(name)) {
			mainName = name
			break
		}
	}
	if mainName == "" {
		return nil
	}

	mapping := map[string]string{ids[0]: mainName}
	mapping[ids[1]] = firstOther(names, mainName)
	return mapping
}

// Fuse prefers the audio-derived name for each sentence when the mapping
// covers its raw identifier, falling back to the text-cascade label.
func Fuse(textAttrs []Attribution, audioIDs []string, mapping map[string]string) []Attribution {
	if mapping == nil || len(audioIDs) != len(textAttrs) {
		return textAttrs
	}
	out := make([]Attribution, len(textAttrs))
	copy(out, textAttrs)
	for i, id := range audioIDs {
		if name, ok := mapping[id]; ok && out[i].Speaker != "Narrator" {
			out[i].Speaker = name
		}
	}
	return out
}

// AttributeWithAudio runs the text cascade, aligns the episode against the
// word timestamps and speaker segments, and fuses the two attributions.
// Missing or unusable audio signals degrade to the text-only result.
func (e *Engine) AttributeWithAudio(text string, names []string, words []WordStamp, segments []Segment, opts Options) []Attribution {
	textAttrs := e.Attribute(text, names, opts)
	if len(textAttrs) == 0 || len(words) == 0 || len(segments) == 0 {
		return textAttrs
	}

	sentences := make([]string, len(textAttrs))
	for i, attr := range textAttrs {
		sentences[i] = attr.Sentence
	}

	audioIDs := AlignSentences(sentences, words, segments)
	if audioIDs == nil {
		return textAttrs
	}

	mapping := MapSpeakers(audioIDs, textAttrs, names, e.logger)
	if mapping == nil {
		e.logger.Debug("no audio speaker mapping, keeping text attribution")
		return textAttrs
	}

	e.logger.Debug("fusing audio and text attribution",
		zap.Int("sentences", len(textAttrs)),
		zap.Any("mapping", mapping))
	return Fuse(textAttrs, audioIDs, mapping)
}
