package speaker

import "strings"

// Gender is a best-effort classification of a Spanish first name.
type Gender int

const (
	GenderUnknown Gender = iota
	GenderFemale
	GenderMale
)

// String returns a single-letter code for the gender.
func (g Gender) String() string {
	switch g {
	case GenderFemale:
		return "F"
	case GenderMale:
		return "M"
	default:
		return "?"
	}
}

var femaleEndings = []string{"a", "ia", "ina", "ela"}
var maleEndings = []string{"o", "io", "in", "el", "er", "an", "en"}

var knownFemale = map[string]struct{}{
	"maria": {}, "mariana": {}, "ana": {}, "carla": {}, "laura": {},
	"sofia": {}, "elena": {}, "fernanda": {}, "vea": {}, "sari": {},
	"claudia": {},
}

var knownMale = map[string]struct{}{
	"carlos": {}, "juan": {}, "pedro": {}, "miguel": {}, "mateo": {},
	"felipe": {}, "antonio": {}, "daniel": {}, "jose": {}, "luis": {},
	"junior": {}, "ector": {}, "vicram": {},
}

// DetectGender classifies a name by suffix, falling back to a small table
// of common Spanish names. Suffix checks run first, matching how the
// attribution engine has always resolved ambiguous names.
func DetectGender(name string) Gender {
	lower := strings.ToLower(name)

	for _, end := range femaleEndings {
		if strings.HasSuffix(lower, end) && len(lower) > len(end) {
			return GenderFemale
		}
	}
	for _, end := range maleEndings {
		if strings.HasSuffix(lower, end) && len(lower) > len(end) {
			return GenderMale
		}
	}

	if _, ok := knownFemale[lower]; ok {
		return GenderFemale
	}
	if _, ok := knownMale[lower]; ok {
		return GenderMale
	}
	return GenderUnknown
}
