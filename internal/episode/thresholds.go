package episode

// Expected episode durations in seconds. Episodes run roughly 2.5 to 3
// minutes; segments outside the min/max band get merged or split.
const (
	minEpisodeSeconds    = 120
	targetEpisodeSeconds = 165
	maxEpisodeSeconds    = 210
	splitEpisodeSeconds  = 240
)

// Fallback character thresholds when no audio duration is known, based on a
// typical speaking rate of ~1500 characters per minute.
const (
	fallbackMinChars    = 1500
	fallbackTargetChars = 2000
	fallbackMaxChars    = 3000
	fallbackSplitChars  = 3500
)

// Thresholds carries the episode length bands in character units, derived
// from the transcript's characters-per-second rate when the audio duration
// is known. CharsPerSecond is 0 when no duration was available, which
// disables time-based reasoning downstream.
type Thresholds struct {
	Min            int
	Target         int
	Max            int
	Split          int
	CharsPerSecond float64
}

// NewThresholds derives length thresholds for a transcript of textLen
// characters. Pass durationSec <= 0 when the audio duration is unknown.
// The result always satisfies Min <= Target <= Max <= Split.
func NewThresholds(textLen int, durationSec float64) Thresholds {
	if durationSec > 0 && textLen > 0 {
		rate := float64(textLen) / durationSec
		return Thresholds{
			Min:            int(minEpisodeSeconds * rate),
			Target:         int(targetEpisodeSeconds * rate),
			Max:            int(maxEpisodeSeconds * rate),
			Split:          int(splitEpisodeSeconds * rate),
			CharsPerSecond: rate,
		}
	}
	return Thresholds{
		Min:    fallbackMinChars,
		Target: fallbackTargetChars,
		Max:    fallbackMaxChars,
		Split:  fallbackSplitChars,
	}
}
