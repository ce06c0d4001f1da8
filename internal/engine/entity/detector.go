package entity

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// nerInputCap bounds how much text is handed to the NER model per
// detection call. Flyer text is short; the cap only matters for degenerate
// OCR output.
const nerInputCap = 5000

// minEntityLen filters out one- and two-character NER spans, which are
// almost always OCR noise.
const minEntityLen = 2

var venueLabels = map[string]bool{"GPE": true, "LOC": true, "FAC": true}

// Detector finds venue and organizer mentions, preferring NER entities and
// falling back to cue-phrase regexes. Both paths are advisory: nil is an
// expected result for a clean miss.
type Detector struct {
	rec Recognizer
}

// NewDetector creates a Detector over the given Recognizer. A nil
// Recognizer routes everything through the regex fallback.
func NewDetector(rec Recognizer) *Detector {
	if rec == nil {
		rec = Noop{}
	}
	return &Detector{rec: rec}
}

// Location returns the first venue-like entity (GPE/LOC/FAC) or regex
// fallback match, or nil.
func (d *Detector) Location(text string) *string {
	if m := d.firstEntity(text, venueLabels); m != nil {
		return m
	}
	return venueFallback(text)
}

// Organization returns the first ORG entity or regex fallback match, or nil.
func (d *Detector) Organization(text string) *string {
	if m := d.firstEntity(text, map[string]bool{"ORG": true}); m != nil {
		return m
	}
	return organizerFallback(text)
}

// firstEntity runs NER over at most nerInputCap characters and returns the
// first entity in document order with a wanted label. Recognizer errors
// mean the fallback path handles detection; they are not surfaced.
func (d *Detector) firstEntity(text string, wanted map[string]bool) *string {
	ents, err := d.rec.Entities(capText(text))
	if err != nil {
		return nil
	}
	for _, e := range ents {
		if !wanted[e.Label] {
			continue
		}
		if utf8.RuneCountInString(strings.TrimSpace(e.Text)) <= minEntityLen {
			continue
		}
		t := e.Text
		return &t
	}
	return nil
}

// capText truncates text to nerInputCap bytes, backing off to a rune
// boundary.
func capText(text string) string {
	if len(text) <= nerInputCap {
		return text
	}
	n := nerInputCap
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}

// Venue fallback: prefix-cued clauses, then a street-address shape.
var venueCues = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bvenue\s*[:\-–]\s*([^\n]+)`),
	regexp.MustCompile(`(?i)\blocation\s*[:\-–]\s*([^\n]+)`),
	regexp.MustCompile(`(?i)\bheld\s+at\s+([^\n.,;]+)`),
	regexp.MustCompile(`\b[Aa]t\s+([A-Z][A-Za-z0-9&'. ]{2,60})`),
	regexp.MustCompile(`(?i)\bplace\s*[:\-–]\s*([^\n]+)`),
}

var streetAddress = regexp.MustCompile(
	`\b\d{1,5}\s+(?:[A-Z][A-Za-z]*\.?\s+){1,4}` +
		`(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Way|` +
		`Hall|Center|Centre|Park|Plaza|Square|Auditorium|Stadium|Arena)\b`)

func venueFallback(text string) *string {
	for _, cue := range venueCues {
		if m := cue.FindStringSubmatch(text); m != nil {
			if v := cleanClause(m[1]); v != "" {
				return &v
			}
		}
	}
	if m := streetAddress.FindString(text); m != "" {
		return &m
	}
	return nil
}

// Organizer fallback: hosting cues, then the first all-uppercase line of
// plausible length re-cased to title case.
var organizerCue = regexp.MustCompile(
	`(?i)\b(?:organi[sz]ed\s+by|presented\s+by|hosted\s+by|brought\s+to\s+you\s+by|` +
		`sponsored\s+by|sponsor|organi[sz]er|host)\s*[:\-–]?\s*([^\n,]+)`)

func organizerFallback(text string) *string {
	if m := organizerCue.FindStringSubmatch(text); m != nil {
		if v := cleanClause(m[1]); v != "" {
			return &v
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		n := utf8.RuneCountInString(line)
		if n < 4 || n > 79 {
			continue
		}
		if !isAllUpper(line) {
			continue
		}
		v := TitleCase(line)
		return &v
	}
	return nil
}

// cleanClause trims a captured clause and drops it if too short to be a
// real name.
func cleanClause(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".,;:!? ")
	if utf8.RuneCountInString(s) <= minEntityLen {
		return ""
	}
	return s
}

// isAllUpper reports whether the line contains letters and none of them are
// lowercase.
func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// TitleCase re-cases a string to English title case. A fresh Caser per call:
// cases.Caser carries internal state and is not safe for concurrent reuse.
func TitleCase(s string) string {
	return cases.Title(language.English).String(strings.ToLower(s))
}
