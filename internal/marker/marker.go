package marker

import "regexp"

// Kind classifies a marker rule by the lexical family it belongs to.
type Kind int

const (
	// Narrator matches section/unit/radio announcements spoken by the
	// course narrator, in English or in the Spanish cognate form that
	// transcription commonly produces for them.
	Narrator Kind = iota
	// Closing matches fixed farewell phrase templates that end an episode.
	Closing
	// Intro matches fixed greeting/welcome phrase templates that open an episode.
	Intro
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Narrator:
		return "narrator"
	case Closing:
		return "closing"
	case Intro:
		return "intro"
	default:
		return "unknown"
	}
}

// Rule is a single ordered match rule in the marker table.
type Rule struct {
	Name string
	Kind Kind
	re   *regexp.Regexp
}

// Match is one occurrence of a rule in a text, with byte offsets.
type Match struct {
	Rule  *Rule
	Start int
	End   int
}

// table holds every marker rule in priority order. Rules of the same kind
// are evaluated in table order, which matters for tie-breaking in the
// segment refiner.
var table = []Rule{
	// Narrator announcements. The Spanish variants cover the common
	// mis-transcription of the English narrator ("Sección" for "Section",
	// "Unió" for "Unit").
	{Name: "section", Kind: Narrator, re: regexp.MustCompile(`(?i)section\s+\d+[^.]*\.`)},
	{Name: "section-unit", Kind: Narrator, re: regexp.MustCompile(`(?i)section\s+\d+\s+unit\s+\d+[^.]*\.`)},
	{Name: "section-unit-radio", Kind: Narrator, re: regexp.MustCompile(`(?i)section\s+\d+\s+unit\s+\d+\s+radio\s+\d+[^.]*\.`)},
	{Name: "section-radio", Kind: Narrator, re: regexp.MustCompile(`(?i)section\s+\d+\s+radio\s+\d+[^.]*\.`)},
	{Name: "ordinal-part", Kind: Narrator, re: regexp.MustCompile(`(?i)\d+\s*(?:st|nd|rd|th)\s+(?:radio|section|unit|part)[^.]*\.`)},
	{Name: "seccion", Kind: Narrator, re: regexp.MustCompile(`(?i)sección\s+\d+[^.]*\.`)},
	{Name: "seccion-unidad", Kind: Narrator, re: regexp.MustCompile(`(?i)sección\s+\d+\s+(?:unió|unidad)\s+\d+[^.]*\.`)},
	{Name: "seccion-unidad-radio", Kind: Narrator, re: regexp.MustCompile(`(?i)sección\s+\d+\s+(?:unió|unidad)\s+\d+\s+radio\s+\d+[^.]*\.`)},
	{Name: "seccion-radio", Kind: Narrator, re: regexp.MustCompile(`(?i)sección\s+\d+\s+radio\s+\d+[^.]*\.`)},

	// Episode closings.
	{Name: "gracias-escuchar", Kind: Closing, re: regexp.MustCompile(`(?i)Gracias por escuchar[^.]*\.\s*Hasta (?:pronto|la próxima)\.`)},
	{Name: "gracias-acompanarme", Kind: Closing, re: regexp.MustCompile(`(?i)Gracias por acompañarme[^.]*\.\s*Hasta (?:pronto|la próxima)\.`)},
	{Name: "asi-termina", Kind: Closing, re: regexp.MustCompile(`(?i)Y así termina[^.]*\.\s*Recuerda[^.]*\.\s*Hasta pronto\.`)},
	{Name: "ah-gracias", Kind: Closing, re: regexp.MustCompile(`(?i)¡Ah! Gracias por escuchar[^.]*\.\s*Nos vemos pronto\.`)},

	// Episode introductions.
	{Name: "hola-bienvenida", Kind: Intro, re: regexp.MustCompile(`(?i)Hola, te doy la bienvenida a`)},
	{Name: "pupupu-bienvenida", Kind: Intro, re: regexp.MustCompile(`(?i)¡Pu-pu-pu! Hola, te doy la bienvenida a`)},
	{Name: "te-doy-bienvenida", Kind: Intro, re: regexp.MustCompile(`(?i)Te doy la bienvenida a`)},
	{Name: "te-doy-bienvenida-q", Kind: Intro, re: regexp.MustCompile(`(?i)¿Te doy la bienvenida a`)},
	{Name: "les-doy-bienvenida", Kind: Intro, re: regexp.MustCompile(`(?i)Hola, les doy la bienvenida a`)},
	{Name: "hola-esto-es", Kind: Intro, re: regexp.MustCompile(`(?i)Hola, esto es`)},
	{Name: "hola-esto-es-excl", Kind: Intro, re: regexp.MustCompile(`(?i)¡Hola! Esto es`)},
}

// introHint recognizes the start of a new episode in the text immediately
// following a closing, without requiring a full intro rule match.
var introHint = regexp.MustCompile(`(?i)Hola.*bienvenida|Te doy.*bienvenida|Soy \p{L}+ y`)

// Rules returns the ordered rules of the given kind.
func Rules(kind Kind) []*Rule {
	var out []*Rule
	for i := range table {
		if table[i].Kind == kind {
			out = append(out, &table[i])
		}
	}
	return out
}

// FindAll returns every occurrence of every rule of the given kind in text.
// Matches are grouped by rule in table order; within a rule they appear in
// text order.
func FindAll(text string, kind Kind) []Match {
	var out []Match
	for _, r := range Rules(kind) {
		for _, loc := range r.re.FindAllStringIndex(text, -1) {
			out = append(out, Match{Rule: r, Start: loc[0], End: loc[1]})
		}
	}
	return out
}

// FindFirst returns the first occurrence (in table order, then text order)
// of any rule of the given kind in text.
func FindFirst(text string, kind Kind) (Match, bool) {
	for _, r := range Rules(kind) {
		if loc := r.re.FindStringIndex(text); loc != nil {
			return Match{Rule: r, Start: loc[0], End: loc[1]}, true
		}
	}
	return Match{}, false
}

// HasIntroHint reports whether text contains a loose introduction cue.
func HasIntroHint(text string) bool {
	return introHint.MatchString(text)
}
