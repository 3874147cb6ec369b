package episode

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/xiaodongyu/spanish-helper/internal/marker"
	"github.com/xiaodongyu/spanish-helper/internal/speaker"
)

// Search distances and multipliers for the split pass, in characters.
const (
	// closingIntroWindow is how far past a closing an introduction is
	// searched for in the closing+intro tier.
	closingIntroWindow = 500
	// idealSearchRadius bounds the window around each ideal split position
	// in the intro tier.
	idealSearchRadius = 800
	// idealBonusRadius grants the position bonus when a candidate lands
	// this close to its ideal position.
	idealBonusRadius = 400
	// midpointSearchRadius bounds the window around the midpoint for
	// moderately long segments.
	midpointSearchRadius = 1000
	// forcedBoundaryStep and forcedBoundaryRadius drive the outward
	// sentence-boundary scan of the forced-split fallback.
	forcedBoundaryStep   = 50
	forcedBoundaryRadius = 300
)

var sentenceBoundaryRe = regexp.MustCompile(`[.!?]+\s+`)
var whitespaceRunRe = regexp.MustCompile(`\s{2,}|\n`)

// Refiner turns boundary candidates into definitive episode boundaries by
// merging short segments, splitting long ones, and filtering boundaries
// that sit too close together.
type Refiner struct {
	th     Thresholds
	logger *zap.Logger
}

// NewRefiner creates a Refiner for the given thresholds.
func NewRefiner(th Thresholds) *Refiner {
	return &Refiner{th: th, logger: zap.NewNop()}
}

// NewRefinerWithLogger creates a Refiner with the given logger.
func NewRefinerWithLogger(th Thresholds, logger *zap.Logger) *Refiner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refiner{th: th, logger: logger}
}

// Refine produces the final ordered episodes for the transcript. The result
// always partitions [0, len(text)) exactly; when no boundary survives, the
// whole text is a single episode.
func (r *Refiner) Refine(text string, candidates []SplitPoint) []Episode {
	if len(text) == 0 {
		return nil
	}

	positions := make([]int, 0, len(candidates)+1)
	for _, c := range candidates {
		positions = append(positions, c.Pos)
	}
	if len(positions) == 0 || positions[0] != 0 {
		positions = append([]int{0}, positions...)
	}
	if positions[len(positions)-1] != len(text) {
		positions = append(positions, len(text))
	}

	merged := r.mergeShort(text, positions)
	bounds := r.splitLong(text, merged)
	final := r.filterClose(text, bounds)

	episodes := make([]Episode, 0, len(final)-1)
	for i := 0; i+1 < len(final); i++ {
		start, end := final[i], final[i+1]
		episodes = append(episodes, Episode{Start: start, End: end, Text: text[start:end]})
	}
	r.logger.Debug("refinement complete",
		zap.Int("candidates", len(candidates)),
		zap.Int("episodes", len(episodes)))
	return episodes
}

// mergeShort is the left-to-right merge sweep: a candidate closing a
// too-short segment is dropped when its segment shares participants with
// the next one, or when merging keeps the combined segment under max.
func (r *Refiner) mergeShort(text string, positions []int) []int {
	refined := []int{positions[0]}
	i := 1
	for i < len(positions) {
		prev := refined[len(refined)-1]
		cur := positions[i]

		if cur-prev < r.th.Min && i+1 < len(positions) {
			next := positions[i+1]
			combined := next - prev
			overlap := speaker.NamesOverlap(text[prev:cur], text[cur:next])
			if overlap || combined < r.th.Max {
				r.logger.Debug("merging short segment",
					zap.Int("dropped_boundary", cur),
					zap.Bool("speaker_overlap", overlap),
					zap.Int("combined_length", combined))
				i++
				continue
			}
		}

		refined = append(refined, cur)
		i++
	}
	return refined
}

// span is a half-open segment [start, end) on the split-pass worklist.
type span struct {
	start, end int
}

func (s span) len() int { return s.end - s.start }

// splitLong breaks oversized segments. Each segment exceeding max goes on a
// worklist; a resolved split pushes at most two smaller spans back, so a
// found boundary is re-evaluated against its halves without restarting the
// whole pass.
func (r *Refiner) splitLong(text string, bounds []int) []int {
	set := map[int]struct{}{}
	for _, b := range bounds {
		set[b] = struct{}{}
	}
	set[len(text)] = struct{}{}

	var queue []span
	sortedBounds := sortedKeys(set)
	for i := 0; i+1 < len(sortedBounds); i++ {
		sp := span{sortedBounds[i], sortedBounds[i+1]}
		if sp.len() > r.th.Max {
			queue = append(queue, sp)
		}
	}

	for len(queue) > 0 {
		sp := queue[0]
		queue = queue[1:]

		cut, score := r.findSplit(text, sp)
		if cut <= sp.start || cut >= sp.end {
			// Cascade exhausted: the oversized segment is kept whole.
			// Overlength beats losing content.
			r.logger.Debug("no split found for oversized segment",
				zap.Int("start", sp.start),
				zap.Int("end", sp.end),
				zap.Int("length", sp.len()))
			continue
		}

		r.logger.Debug("splitting oversized segment",
			zap.Int("start", sp.start),
			zap.Int("end", sp.end),
			zap.Int("cut", cut),
			zap.Int("score", score))
		set[cut] = struct{}{}
		left, right := span{sp.start, cut}, span{cut, sp.end}
		if left.len() > r.th.Max {
			queue = append(queue, left)
		}
		if right.len() > r.th.Max {
			queue = append(queue, right)
		}
	}

	return sortedKeys(set)
}

// findSplit searches a single oversized span for the best boundary, trying
// the scored tiers first and the forced fallback last. Returns 0 when
// nothing acceptable exists.
func (r *Refiner) findSplit(text string, sp span) (int, int) {
	var best, bestScore int
	if sp.len() > r.th.Split {
		best, bestScore = r.searchWide(text, sp)
	} else {
		best, bestScore = r.searchMidpoint(text, sp)
	}
	if best == 0 && float64(sp.len()) > float64(r.th.Split)*1.25 {
		best, bestScore = r.forceSplit(text, sp)
	}
	return best, bestScore
}

// searchWide handles spans exceeding the split threshold: the whole span is
// searched with the looser 1.4-1.5x length multipliers.
func (r *Refiner) searchWide(text string, sp span) (int, int) {
	segment := text[sp.start:sp.end]
	best, bestScore := 0, 0

	// Tier 1: a closing immediately followed by an introduction is the
	// strongest sign of two episodes concatenated.
	for _, cm := range marker.FindAll(segment, marker.Closing) {
		closingEnd := sp.start + cm.End
		next := text[closingEnd:min(closingEnd+closingIntroWindow, sp.end)]
		im, ok := marker.FindFirst(next, marker.Intro)
		if !ok {
			continue
		}
		candidate := closingEnd + im.Start
		score := 5 + r.scoreDisjoint(text, sp, candidate, 2) + r.scoreLengths(sp, candidate, 1.5, 2)
		if score > bestScore {
			best, bestScore = candidate, score
			break
		}
	}
	if best != 0 {
		return best, bestScore
	}

	// Tier 2: introductions near evenly spaced ideal positions.
	needed := sp.len() / r.th.Max
	if needed < 1 {
		needed = 1
	}
	for idx := 1; idx <= needed && best == 0; idx++ {
		ideal := sp.start + idx*r.th.Target
		if ideal >= sp.end-r.th.Min {
			break
		}
		lo := max(sp.start+r.th.Min, ideal-idealSearchRadius)
		hi := min(sp.end-r.th.Min, ideal+idealSearchRadius)
		if lo >= hi {
			continue
		}
		for _, im := range marker.FindAll(text[lo:hi], marker.Intro) {
			candidate := lo + im.Start
			score := r.scoreDisjoint(text, sp, candidate, 3) + r.scoreLengths(sp, candidate, 1.4, 2)
			if abs(candidate-ideal) < idealBonusRadius {
				score++
			}
			if score > bestScore {
				best, bestScore = candidate, score
				break
			}
		}
	}
	if best != 0 {
		return best, bestScore
	}

	// Tier 3: a closing with substantial content after it.
	for _, cm := range marker.FindAll(segment, marker.Closing) {
		candidate := sp.start + cm.End
		after := text[candidate:sp.end]
		if float64(len(strings.TrimSpace(after))) <= float64(r.th.Min)*0.8 {
			continue
		}
		if !r.lengthsWithin(sp, candidate, 1.5) {
			continue
		}
		score := 4 + r.scoreDisjoint(text, sp, candidate, 2) + 1
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}
	return best, bestScore
}

// searchMidpoint handles spans between max and split: the search is
// restricted to a window around the midpoint with tighter multipliers.
func (r *Refiner) searchMidpoint(text string, sp span) (int, int) {
	mid := sp.start + sp.len()/2
	lo := max(sp.start+r.th.Min, mid-midpointSearchRadius)
	hi := min(sp.end-r.th.Min, mid+midpointSearchRadius)
	if lo >= hi {
		return 0, 0
	}
	window := text[lo:hi]
	best, bestScore := 0, 0

	// Tier 1: closing followed by an introduction.
	for _, cm := range marker.FindAll(window, marker.Closing) {
		closingEnd := lo + cm.End
		next := text[closingEnd:min(closingEnd+closingIntroWindow, hi)]
		im, ok := marker.FindFirst(next, marker.Intro)
		if !ok {
			continue
		}
		candidate := closingEnd + im.Start
		score := 5 + r.scoreDisjoint(text, sp, candidate, 2) + r.scoreLengths(sp, candidate, 1.3, 2)
		if score > bestScore {
			best, bestScore = candidate, score
			break
		}
	}
	if best != 0 {
		return best, bestScore
	}

	// Tier 2: introductions in the window.
	for _, im := range marker.FindAll(window, marker.Intro) {
		candidate := lo + im.Start
		score := r.scoreDisjoint(text, sp, candidate, 3) + r.scoreLengths(sp, candidate, 1.2, 1)
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}
	if best != 0 {
		return best, bestScore
	}

	// Tier 3: closings in the window.
	for _, cm := range marker.FindAll(window, marker.Closing) {
		candidate := lo + cm.End
		score := r.scoreDisjoint(text, sp, candidate, 2) + r.scoreLengths(sp, candidate, 1.2, 1)
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}
	return best, bestScore
}

// forceSplit is the last-resort fallback for extremely long spans: any
// introduction near the midpoint with a relaxed length floor, then the
// sentence boundary nearest the midpoint, then a whitespace run, then the
// raw position.
func (r *Refiner) forceSplit(text string, sp span) (int, int) {
	mid := sp.start + sp.len()/2

	// Any introduction within 20% of the span length around the midpoint.
	lo := max(sp.start+r.th.Min, mid-sp.len()/5)
	hi := min(sp.end-r.th.Min, mid+sp.len()/5)
	minRequired := int(float64(r.th.Min) * 0.8)
	if lo < hi {
		for _, im := range marker.FindAll(text[lo:hi], marker.Intro) {
			candidate := lo + im.Start
			if candidate-sp.start >= minRequired && sp.end-candidate >= minRequired {
				return candidate, 3
			}
		}
	}

	// Sentence boundary nearest the midpoint, scanning outward.
	minRequired = int(float64(r.th.Min) * 0.75)
	if mid-sp.start < minRequired || sp.end-mid < minRequired {
		return 0, 0
	}
	for _, offset := range outwardOffsets(forcedBoundaryRadius, forcedBoundaryStep) {
		check := mid + offset
		if check < sp.start+minRequired || check > sp.end-minRequired {
			continue
		}
		base := max(check-150, sp.start)
		around := text[base:min(check+400, sp.end)]

		if loc := sentenceBoundaryRe.FindStringIndex(around); loc != nil {
			candidate := base + loc[1]
			if candidate >= sp.start+minRequired && candidate <= sp.end-minRequired {
				return candidate, 2
			}
			continue
		}
		if loc := whitespaceRunRe.FindStringIndex(around); loc != nil {
			candidate := base + loc[1]
			if candidate >= sp.start+minRequired && candidate <= sp.end-minRequired {
				return candidate, 1
			}
			continue
		}
		return check, 1
	}
	return 0, 0
}

// filterClose drops boundaries closer than 0.4*min to the previous accepted
// boundary, keeping the later position; the text-end boundary is always
// kept.
func (r *Refiner) filterClose(text string, bounds []int) []int {
	if len(bounds) == 0 {
		return []int{0, len(text)}
	}
	minGap := int(float64(r.th.Min) * 0.4)

	filtered := []int{bounds[0]}
	for _, b := range bounds[1:] {
		last := filtered[len(filtered)-1]
		switch {
		case b-last >= minGap:
			filtered = append(filtered, b)
		case b == len(text):
			if last != len(text) {
				filtered = append(filtered, b)
			}
		case last == 0:
			// The start boundary is never displaced.
		default:
			filtered[len(filtered)-1] = b
		}
	}
	if filtered[len(filtered)-1] != len(text) {
		filtered = append(filtered, len(text))
	}
	return filtered
}

// scoreDisjoint awards weight points when the two halves produced by a cut
// share no participant names.
func (r *Refiner) scoreDisjoint(text string, sp span, cut, weight int) int {
	if !speaker.NamesOverlap(text[sp.start:cut], text[cut:sp.end]) {
		return weight
	}
	return 0
}

// scoreLengths awards weight points when both halves land within
// [min, mult*max].
func (r *Refiner) scoreLengths(sp span, cut int, mult float64, weight int) int {
	if r.lengthsWithin(sp, cut, mult) {
		return weight
	}
	return 0
}

func (r *Refiner) lengthsWithin(sp span, cut int, mult float64) bool {
	upper := float64(r.th.Max) * mult
	before := float64(cut - sp.start)
	after := float64(sp.end - cut)
	return before >= float64(r.th.Min) && before <= upper &&
		after >= float64(r.th.Min) && after <= upper
}

// outwardOffsets yields 0, -step, +step, -2*step, +2*step, ... out to the
// radius, so the scan prefers positions nearest the midpoint.
func outwardOffsets(radius, step int) []int {
	out := []int{0}
	for d := step; d <= radius; d += step {
		out = append(out, -d, d)
	}
	return out
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
