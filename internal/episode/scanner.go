package episode

import (
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/xiaodongyu/spanish-helper/internal/marker"
)

// Distances used while registering candidates, in characters.
const (
	// sentenceLookback bounds the backward walk from a narrator match to
	// the start of its sentence.
	sentenceLookback = 200
	// closingLookahead is how far past a closing an introduction cue is
	// searched for.
	closingLookahead = 200
	// closingMinRemainder is the minimum text that must follow a closing
	// for it to count as a boundary without an intro cue.
	closingMinRemainder = 100
	// introMinOffset rejects introduction matches at the very start of the
	// transcript.
	introMinOffset = 50
	// introProximity is the minimum spacing between an intro candidate and
	// any registered candidate.
	introProximity = 100
	// narratorProximity is the tighter spacing a narrator candidate
	// tolerates; the narrator announcement is a stronger signal.
	narratorProximity = 50
)

// Scanner finds candidate episode boundaries from lexical markers.
type Scanner struct {
	logger *zap.Logger
}

// NewScanner creates a Scanner with a no-op logger.
func NewScanner() *Scanner {
	return &Scanner{logger: zap.NewNop()}
}

// NewScannerWithLogger creates a Scanner with the given logger.
func NewScannerWithLogger(logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{logger: logger}
}

// Scan returns the deduplicated, ascending candidate split positions for
// the transcript. Offset 0 is always present.
func (s *Scanner) Scan(text string) []SplitPoint {
	points := []SplitPoint{{Pos: 0, Source: SourceStart}}

	// Narrator announcements register first; they are the strongest signal
	// and tolerate tighter spacing between candidates.
	for _, m := range marker.FindAll(text, marker.Narrator) {
		pos := sentenceStartBefore(text, m.Start)
		if pos == 0 {
			continue
		}
		if nearAny(points, pos, narratorProximity) {
			continue
		}
		points = append(points, SplitPoint{Pos: pos, Source: SourceNarrator})
		s.logger.Debug("narrator boundary candidate",
			zap.Int("pos", pos),
			zap.String("rule", m.Rule.Name))
	}

	// A closing marks a boundary at its end when a new episode plausibly
	// follows: an introduction cue close by, or substantial remaining text.
	for _, m := range marker.FindAll(text, marker.Closing) {
		end := m.End
		lookahead := text[end:min(end+closingLookahead, len(text))]
		switch {
		case marker.HasIntroHint(lookahead):
			points = append(points, SplitPoint{Pos: end, Source: SourceClosing})
		case len(strings.TrimSpace(text[end:])) > closingMinRemainder:
			points = append(points, SplitPoint{Pos: end, Source: SourceClosing})
		}
	}

	// Introductions register last and defer to anything already nearby.
	for _, m := range marker.FindAll(text, marker.Intro) {
		pos := m.Start
		if pos <= introMinOffset {
			continue
		}
		if nearAny(points, pos, introProximity) {
			continue
		}
		points = append(points, SplitPoint{Pos: pos, Source: SourceIntro})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Pos < points[j].Pos })
	deduped := points[:0]
	for _, p := range points {
		if len(deduped) == 0 || deduped[len(deduped)-1].Pos != p.Pos {
			deduped = append(deduped, p)
		}
	}

	s.logger.Debug("boundary scan complete",
		zap.Int("text_len", len(text)),
		zap.Int("candidates", len(deduped)))
	return deduped
}

// sentenceStartBefore walks backward from pos to the nearest preceding
// sentence-terminal punctuation within the lookback window, returning the
// first non-space offset after it. Falls back to pos itself.
func sentenceStartBefore(text string, pos int) int {
	limit := max(0, pos-sentenceLookback)
	for i := pos - 1; i >= limit; i-- {
		c := text[i]
		if c == '.' || c == '!' || c == '?' {
			start := i + 1
			for start < pos && unicode.IsSpace(rune(text[start])) {
				start++
			}
			return start
		}
	}
	return pos
}

func nearAny(points []SplitPoint, pos, dist int) bool {
	for _, p := range points {
		if abs(pos-p.Pos) < dist {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
