package episode

// Source tags a split point with the signal that produced it.
type Source int

const (
	// SourceStart is the implicit boundary at offset 0.
	SourceStart Source = iota
	// SourceIntro comes from an introduction phrase match.
	SourceIntro
	// SourceClosing comes from a farewell phrase match.
	SourceClosing
	// SourceNarrator comes from a narrator section/unit/radio announcement.
	SourceNarrator
	// SourceForced comes from the refiner's forced-split fallback.
	SourceForced
)

// String returns the tag name for logging.
func (s Source) String() string {
	switch s {
	case SourceStart:
		return "start"
	case SourceIntro:
		return "pattern-intro"
	case SourceClosing:
		return "pattern-closing"
	case SourceNarrator:
		return "narrator"
	case SourceForced:
		return "forced"
	default:
		return "unknown"
	}
}

// SplitPoint is a candidate episode boundary at a byte offset into the
// transcript.
type SplitPoint struct {
	Pos    int
	Source Source
}

// Episode is a contiguous span of the transcript. The episodes produced for
// a transcript partition [0, len(text)) exactly: Start of the first is 0,
// End of the last is len(text), and consecutive episodes share a boundary.
type Episode struct {
	Start int
	End   int
	Text  string
}
