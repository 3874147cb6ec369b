package speaker

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Phase identifies which structural part of an episode a sentence belongs to.
type Phase string

const (
	PhaseNarrator     Phase = "narrator"
	PhaseIntroduction Phase = "introduction"
	PhaseWordReview   Phase = "word-review"
	PhaseDialog       Phase = "dialog"
	PhaseClosing      Phase = "closing"
	PhaseNone         Phase = "none"
)

// Attribution assigns one speaker label and phase to one sentence.
type Attribution struct {
	Sentence string
	Speaker  string
	Phase    Phase
}

// Options adjusts how an episode is attributed.
type Options struct {
	// EpisodeStart enables the narrator phase: the first four words of the
	// episode belong to a third voice announcing the episode.
	EpisodeStart bool
	// PreLabeled carries per-sentence labels computed by the audio-fusion
	// path. When set, the text cascade is skipped and only the narrator
	// overlay is applied.
	PreLabeled []Attribution
}

// narratorWordBudget is how many leading words the narrator speaks at the
// start of an episode.
const narratorWordBudget = 4

var wordReviewRe = regexp.MustCompile(`(?i)Pero primero.*palabras|estas son algunas palabras`)
var closingCueRe = regexp.MustCompile(`(?i)Gracias por escuchar|Gracias por acompañarme|Y así termina|Hasta pronto|Hasta la próxima`)
var genericSelfIntroRe = regexp.MustCompile(`(?i)(?:soy|me llamo|mi nombre es)\s+(\p{L}+)`)
var addressedCueRe = regexp.MustCompile(`(?i)(\p{L}+),?\s+(?:cuéntanos|cuéntame|gracias|por qué|porque)`)

// Engine assigns speaker labels to the sentences of a single episode.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an Engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{logger: zap.NewNop()}
}

// NewEngineWithLogger creates an Engine with the given logger.
func NewEngineWithLogger(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// foldState is the explicit state threaded through the sentence fold.
type foldState struct {
	lastSpeaker   string
	narratorWords int
	narratorDone  bool
}

// Attribute labels every sentence of the episode text. Every non-empty
// sentence receives exactly one attribution; the label is one of the
// detected names, "Narrator", or a generic alternating label when no names
// were detected.
func (e *Engine) Attribute(text string, names []string, opts Options) []Attribution {
	if opts.PreLabeled != nil {
		return e.applyNarratorOverlay(opts.PreLabeled, opts.EpisodeStart)
	}

	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	if len(names) == 0 {
		out := make([]Attribution, 0, len(sentences))
		for i, s := range sentences {
			label := "Speaker 1"
			if i%2 == 1 {
				label = "Speaker 2"
			}
			out = append(out, Attribution{Sentence: s, Speaker: label, Phase: PhaseNone})
		}
		return out
	}

	marker := findWordReviewMarker(sentences)
	main, guest := determineMainGuest(sentences, names, marker)

	mainGender := DetectGender(main)
	guestGender := GenderUnknown
	if guest != "" {
		guestGender = DetectGender(guest)
	}
	hasGenderInfo := mainGender != GenderUnknown && guestGender != GenderUnknown && mainGender != guestGender
	e.logger.Debug("episode speaker roles resolved",
		zap.String("main_speaker", main),
		zap.String("guest_speaker", guest),
		zap.Int("word_review_marker", marker),
		zap.Bool("has_gender_info", hasGenderInfo))

	matchers := newNameMatchers(names)

	out := make([]Attribution, 0, len(sentences))
	st := foldState{}
	for i, sentence := range sentences {
		attr, next := attributeSentence(sentence, i, st, cascadeInput{
			names:        names,
			main:         main,
			guest:        guest,
			marker:       marker,
			episodeStart: opts.EpisodeStart,
			matchers:     matchers,
		})
		st = next
		out = append(out, attr)
	}
	return out
}

// cascadeInput bundles the per-episode constants consumed by the fold step.
type cascadeInput struct {
	names        []string
	main         string
	guest        string
	marker       int
	episodeStart bool
	matchers     *nameMatchers
}

// attributeSentence is one step of the left-fold: it produces the
// attribution for a sentence and the state carried to the next one.
func attributeSentence(sentence string, i int, st foldState, in cascadeInput) (Attribution, foldState) {
	// Narrator phase: consume the first four words of the episode.
	if in.episodeStart && !st.narratorDone {
		words := CountWords(sentence)
		switch {
		case st.narratorWords+words <= narratorWordBudget:
			st.narratorWords += words
			if st.narratorWords >= narratorWordBudget {
				st.narratorDone = true
			}
			st.lastSpeaker = "Narrator"
			return Attribution{Sentence: sentence, Speaker: "Narrator", Phase: PhaseNarrator}, st
		default:
			needed := narratorWordBudget - st.narratorWords
			st.narratorDone = true
			if float64(needed) >= float64(words)*0.5 {
				st.narratorWords += words
				st.lastSpeaker = "Narrator"
				return Attribution{Sentence: sentence, Speaker: "Narrator", Phase: PhaseNarrator}, st
			}
			// Narrator phase ends before this sentence; fall through to
			// the normal cascade.
		}
	}

	speaker, phase := runCascade(sentence, i, st, in)
	st.lastSpeaker = speaker
	return Attribution{Sentence: sentence, Speaker: speaker, Phase: phase}, st
}

// runCascade applies the ordered phase rules; the first rule that matches
// decides the speaker.
func runCascade(sentence string, i int, st foldState, in cascadeInput) (string, Phase) {
	if in.marker < 0 {
		return degradedCascade(sentence, st, in)
	}

	if i < in.marker {
		return in.main, PhaseIntroduction
	}
	if i == in.marker {
		return in.main, PhaseWordReview
	}

	// After the word-review marker: dialog until a closing cue appears.
	if closingCueRe.MatchString(sentence) {
		return in.main, PhaseClosing
	}

	if m := genericSelfIntroRe.FindStringSubmatch(sentence); m != nil {
		if name := canonicalName(in.names, m[1]); name != "" {
			return name, PhaseDialog
		}
		return alternate(st.lastSpeaker, in.main, in.guest), PhaseDialog
	}

	if questioned := in.matchers.questionedName(sentence); questioned != "" {
		return other(questioned, in.main, in.guest), PhaseDialog
	}

	if m := addressedCueRe.FindStringSubmatch(sentence); m != nil {
		if name := canonicalName(in.names, m[1]); name != "" {
			return other(name, in.main, in.guest), PhaseDialog
		}
		return alternate(st.lastSpeaker, in.main, in.guest), PhaseDialog
	}

	return alternate(st.lastSpeaker, in.main, in.guest), PhaseDialog
}

// degradedCascade handles episodes with no word-review marker: a
// self-introduction wins, otherwise strict alternation from the last
// speaker, otherwise the main speaker opens.
func degradedCascade(sentence string, st foldState, in cascadeInput) (string, Phase) {
	for _, name := range in.names {
		if in.matchers.selfIntro(sentence, name) {
			return name, PhaseDialog
		}
	}
	if st.lastSpeaker != "" {
		for _, name := range in.names {
			if name != st.lastSpeaker {
				return name, PhaseDialog
			}
		}
		return st.lastSpeaker, PhaseDialog
	}
	return in.main, PhaseDialog
}

// applyNarratorOverlay relabels the leading pre-labeled sentences as
// narrator, following the same four-word rule as the text cascade.
func (e *Engine) applyNarratorOverlay(labeled []Attribution, episodeStart bool) []Attribution {
	if !episodeStart {
		return labeled
	}
	out := make([]Attribution, 0, len(labeled))
	words, done := 0, false
	for _, attr := range labeled {
		if done {
			out = append(out, attr)
			continue
		}
		n := CountWords(attr.Sentence)
		switch {
		case words+n <= narratorWordBudget:
			words += n
			if words >= narratorWordBudget {
				done = true
			}
			out = append(out, Attribution{Sentence: attr.Sentence, Speaker: "Narrator", Phase: PhaseNarrator})
		default:
			needed := narratorWordBudget - words
			done = true
			if float64(needed) >= float64(n)*0.5 {
				out = append(out, Attribution{Sentence: attr.Sentence, Speaker: "Narrator", Phase: PhaseNarrator})
			} else {
				out = append(out, attr)
			}
		}
	}
	return out
}

// findWordReviewMarker returns the index of the first sentence announcing
// the vocabulary review, or -1 when the episode has none.
func findWordReviewMarker(sentences []string) int {
	for i, s := range sentences {
		if wordReviewRe.MatchString(s) {
			return i
		}
	}
	return -1
}

// determineMainGuest picks the main speaker from a self-introduction in the
// introduction section (everything before the word-review marker, or the
// first five sentences when there is none). The remaining detected name
// becomes the guest.
func determineMainGuest(sentences []string, names []string, marker int) (string, string) {
	intro := sentences
	if marker >= 0 {
		intro = sentences[:marker]
	} else if len(sentences) > 5 {
		intro = sentences[:5]
	}

	matchers := newNameMatchers(names)
	for _, sentence := range intro {
		for _, name := range names {
			if matchers.selfIntro(sentence, name) {
				return name, firstOther(names, name)
			}
		}
	}

	main := names[0]
	guest := ""
	if len(names) > 1 {
		guest = names[1]
	}
	return main, guest
}

// nameMatchers caches the per-name regexes used by the cascade.
type nameMatchers struct {
	selfIntros map[string]*regexp.Regexp
	questions  map[string]*regexp.Regexp
	order      []string
}

func newNameMatchers(names []string) *nameMatchers {
	m := &nameMatchers{
		selfIntros: make(map[string]*regexp.Regexp, len(names)),
		questions:  make(map[string]*regexp.Regexp, len(names)),
		order:      names,
	}
	for _, name := range names {
		quoted := regexp.QuoteMeta(name)
		m.selfIntros[name] = regexp.MustCompile(`(?i)(?:soy|me llamo|mi nombre es)\s+` + quoted + `(?:[^\p{L}]|$)`)
		// A name followed by a question mark or question cue means the
		// named person is being asked, not speaking.
		m.questions[name] = regexp.MustCompile(`(?i)(?:^|\s)` + quoted + `,?(?:\s*[¿?]|\s+por qué)`)
	}
	return m
}

func (m *nameMatchers) selfIntro(sentence, name string) bool {
	re, ok := m.selfIntros[name]
	return ok && re.MatchString(sentence)
}

// questionedName returns the first detected name being questioned in the
// sentence, or "".
func (m *nameMatchers) questionedName(sentence string) string {
	for _, name := range m.order {
		if m.questions[name].MatchString(sentence) {
			return name
		}
	}
	return ""
}

// alternate flips between main and guest relative to the previous speaker.
func alternate(last, main, guest string) string {
	if guest == "" {
		return main
	}
	if last == main {
		return guest
	}
	return main
}

// other returns the participant that is not the given one.
func other(name, main, guest string) string {
	if name == main {
		if guest == "" {
			return main
		}
		return guest
	}
	return main
}

// canonicalName returns the detected name matching candidate
// case-insensitively, or "".
func canonicalName(names []string, candidate string) string {
	for _, n := range names {
		if strings.EqualFold(n, candidate) {
			return n
		}
	}
	return ""
}

func firstOther(names []string, name string) string {
	for _, n := range names {
		if n != name {
			return n
		}
	}
	return ""
}
