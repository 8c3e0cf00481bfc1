package menu

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// normalize returns s in NFC form with surrounding whitespace removed.
func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// upper returns the NFC-normalised, Spanish upper-cased form of s.
// A Caser keeps state between calls, so one is built per call.
func upper(s string) string {
	return cases.Upper(language.Spanish).String(normalize(s))
}
