package speaker

import (
	"regexp"
	"sort"
)

// stopList holds common discourse words that the name patterns would
// otherwise capture as participant names.
var stopList = map[string]struct{}{
	"Hola": {}, "Gracias": {}, "Bienvenida": {}, "Bienvenido": {}, "Soy": {},
	"Llamo": {}, "Nombre": {}, "Pero": {}, "Por": {}, "Los": {}, "Las": {},
	"Nos": {}, "Todo": {}, "Tal": {}, "Eso": {}, "Cada": {}, "Muy": {},
	"Ahora": {}, "Antes": {}, "Hasta": {}, "Voy": {}, "Hace": {},
	"Siempre": {}, "Entonces": {}, "Algunos": {}, "Bueno": {}, "Ideas": {},
	"Recuerda": {}, "Pintar": {}, "Visite": {}, "Alegre": {}, "Carros": {},
	"Colombia": {},
}

// namePatterns are the ordered extraction rules: self-introductions,
// direct address, and thanks/address forms. Group 1 captures the name.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:Soy|soy)\s+(\p{Lu}\p{Ll}+(?:\s+\p{Lu}\p{Ll}+)?)`),
	regexp.MustCompile(`(?:Me llamo|me llamo)\s+(\p{Lu}\p{Ll}+(?:\s+\p{Lu}\p{Ll}+)?)`),
	regexp.MustCompile(`(?:Mi nombre es|mi nombre es)\s+(\p{Lu}\p{Ll}+(?:\s+\p{Lu}\p{Ll}+)?)`),
	regexp.MustCompile(`(?:Hola|hola),\s+(\p{Lu}\p{Ll}+)`),
	regexp.MustCompile(`(?:Hola|hola)\s+(\p{Lu}\p{Ll}+)`),
	regexp.MustCompile(`(\p{Lu}\p{Ll}+),?\s+(?:gracias|Gracias)`),
	regexp.MustCompile(`(\p{Lu}\p{Ll}+),?\s+(?:cuéntanos|cuéntame)`),
	regexp.MustCompile(`(\p{Lu}\p{Ll}+),\s*¿`),
}

var capitalizedWord = regexp.MustCompile(`\p{Lu}\p{Ll}{2,}`)

// ExtractNames returns the sorted set of participant names detected in text.
// A candidate must survive the stop-list and be at least 3 characters long.
// Capitalized tokens seen 3 or more times are added as names even without a
// surrounding introduction pattern.
func ExtractNames(text string) []string {
	found := map[string]struct{}{}

	for _, re := range namePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := m[1]
			if _, stop := stopList[name]; stop {
				continue
			}
			if len([]rune(name)) > 2 {
				found[name] = struct{}{}
			}
		}
	}

	// Frequency heuristic: repeated capitalized words are very likely names
	// in conversational transcripts.
	counts := map[string]int{}
	for _, w := range capitalizedWord.FindAllString(text, -1) {
		if _, stop := stopList[w]; !stop {
			counts[w]++
		}
	}
	for w, n := range counts {
		if n >= 3 {
			found[w] = struct{}{}
		}
	}

	names := make([]string, 0, len(found))
	for n := range found {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NamesOverlap reports whether the name sets of two text spans intersect.
// The refiner uses this as a same-episode signal when weighing merges and
// splits.
func NamesOverlap(a, b string) bool {
	set := map[string]struct{}{}
	for _, n := range ExtractNames(a) {
		set[n] = struct{}{}
	}
	for _, n := range ExtractNames(b) {
		if _, ok := set[n]; ok {
			return true
		}
	}
	return false
}
