// Package title picks an event title from flyer text. The organizer entity
// is preferred when one was detected; otherwise a line scan looks for the
// first line shaped like a headline.
package title

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/crimson-sun/flyerscan/internal/engine/entity"
)

const (
	minLen = 4
	maxLen = 80
)

// fourDigits marks lines carrying years or long numbers — dates and phone
// fragments, not titles.
var fourDigits = regexp.MustCompile(`\d{4}`)

// plusDigit marks international phone prefixes.
var plusDigit = regexp.MustCompile(`\+\d`)

// Pick composes the final title: the organizer entity when present,
// otherwise the first title-like line of the text.
func Pick(text string, organizer *string) *string {
	if organizer != nil && *organizer != "" {
		return organizer
	}
	return Scan(text)
}

// Scan returns the first qualifying line re-cased to title case, or nil.
// A line qualifies when its trimmed length is 4–80 characters, it carries no
// 4-digit run, no "http"/"www", no +digit sequence, and it is either fully
// title-case or fully upper-case.
func Scan(text string) *string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !qualifies(line) {
			continue
		}
		t := entity.TitleCase(line)
		return &t
	}
	return nil
}

func qualifies(line string) bool {
	n := utf8.RuneCountInString(line)
	if n < minLen || n > maxLen {
		return false
	}
	lower := strings.ToLower(line)
	if strings.Contains(lower, "http") || strings.Contains(lower, "www") {
		return false
	}
	if fourDigits.MatchString(line) || plusDigit.MatchString(line) {
		return false
	}
	return isTitleCased(line) || isAllUpper(line)
}

// isTitleCased reports whether every alphabetic word starts with an
// uppercase letter.
func isTitleCased(s string) bool {
	sawWord := false
	for _, word := range strings.Fields(s) {
		r, _ := utf8.DecodeRuneInString(word)
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		sawWord = true
	}
	return sawWord
}

// isAllUpper reports whether the line has letters and no lowercase ones.
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
