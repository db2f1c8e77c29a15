// Package heuristic guesses a language from the Unicode ranges present in a
// text. It is the fallback used when no detection API is reachable.
//
// Rules are tried in order and the first match wins, so mixed-script text is
// attributed to whichever script comes first in the cascade, not to the
// majority script.
package heuristic

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Default is returned when no rule matches.
const Default = "en"

type rule struct {
	code string
	re   *regexp.Regexp
}

var scriptRules = []rule{
	{"ar", regexp.MustCompile(`[\x{0600}-\x{06FF}]`)},
	{"zh", regexp.MustCompile(`[\x{4E00}-\x{9FFF}]`)},
	{"ja", regexp.MustCompile(`[\x{3040}-\x{309F}\x{30A0}-\x{30FF}]`)},
	{"ko", regexp.MustCompile(`[\x{AC00}-\x{D7AF}]`)},
	{"ru", regexp.MustCompile(`[\x{0400}-\x{04FF}]`)},
}

// extendedLatinRe gates the diacritic sub-cascade.
var extendedLatinRe = regexp.MustCompile(`[àáâãäåæçèéêëìíîïðñòóôõöøùúûüýþÿ]`)

var diacriticRules = []rule{
	{"es", regexp.MustCompile(`[ñ¿¡]`)},
	{"fr", regexp.MustCompile(`[àâçéèêëîïôùûüÿ]`)},
	{"de", regexp.MustCompile(`[äöüß]`)},
	{"it", regexp.MustCompile(`[àèéìíîòóù]`)},
	{"pt", regexp.MustCompile(`[ãçõ]`)},
}

// Detect returns a catalog language code for text. It never fails; text with
// no recognised characters yields Default.
func Detect(text string) string {
	// Decomposed input (e + U+0301) must match the precomposed classes.
	text = norm.NFC.String(text)

	if code, ok := DetectScript(text); ok {
		return code
	}

	lower := strings.ToLower(text)
	if extendedLatinRe.MatchString(lower) {
		for _, r := range diacriticRules {
			if r.re.MatchString(lower) {
				return r.code
			}
		}
	}

	return Default
}

// DetectScript applies only the non-Latin script rules.
func DetectScript(text string) (string, bool) {
	for _, r := range scriptRules {
		if r.re.MatchString(text) {
			return r.code, true
		}
	}
	return "", false
}
