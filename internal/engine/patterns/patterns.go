// Package patterns implements the rule tables for date, time, phone, and
// website extraction. Each field has a priority-ordered list of regular
// expressions evaluated by a single first-match-wins scan: rule order encodes
// specificity, so a more constrained pattern always precedes a permissive one
// that could falsely subsume it. Matching is case-insensitive and unanchored;
// the matched substring is returned verbatim.
package patterns

import (
	"regexp"
	"strings"
)

// Rule is one entry in a priority-ordered rule list.
type Rule struct {
	Name string
	re   *regexp.Regexp
}

func rule(name, expr string) Rule {
	return Rule{Name: name, re: regexp.MustCompile(expr)}
}

// firstMatch scans rules in declaration order and returns the leftmost match
// of the first rule that matches anywhere in text, or nil if no rule matches.
func firstMatch(rules []Rule, text string) *string {
	for _, r := range rules {
		if m := r.re.FindString(text); m != "" {
			return &m
		}
	}
	return nil
}

// Shared pattern fragments.
const (
	month   = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`
	weekday = `(?:mon(?:day)?|tue(?:s(?:day)?)?|wed(?:nesday)?|thu(?:rs(?:day)?)?|fri(?:day)?|sat(?:urday)?|sun(?:day)?)`
	ordinal = `(?:st|nd|rd|th)?`
)

// dateRules, most specific first. ISO dates precede numeric slash/dash dates:
// a word boundary keeps the numeric pattern from matching inside an ISO date,
// so testing ISO first is what makes "2025-01-05 and also 01/05/2025" resolve
// to the ISO form regardless of document order.
var dateRules = []Rule{
	rule("month-day-year", `(?i)\b`+month+`\.?\s+\d{1,2}`+ordinal+`,?\s+\d{4}\b`),
	rule("day-month-year", `(?i)\b\d{1,2}`+ordinal+`\s+`+month+`\.?,?\s+\d{4}\b`),
	rule("weekday-month-day-year", `(?i)\b`+weekday+`,?\s+`+month+`\.?\s+\d{1,2}`+ordinal+`,?\s+\d{4}\b`),
	rule("iso-date", `\b\d{4}-\d{2}-\d{2}\b`),
	rule("numeric-date", `\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
	rule("month-day", `(?i)\b`+month+`\.?\s+\d{1,2}`+ordinal+`\b`),
	rule("day-month", `(?i)\b\d{1,2}`+ordinal+`\s+`+month+`\b`),
}

// timeRules. For a range expression ("7:00 PM – 9:00 PM") the leftmost match
// of the winning rule is the start time.
var timeRules = []Rule{
	rule("clock-12h", `(?i)\b\d{1,2}:\d{2}\s*(?:a\.?m\.?|p\.?m\.?)`),
	rule("period-12h", `(?i)\b\d{1,2}\.\d{2}\s*(?:a\.?m\.?|p\.?m\.?)`),
	rule("hour-12h", `(?i)\b\d{1,2}\s*(?:a\.?m\.?|p\.?m\.?)`),
	rule("clock-24h", `\b(?:[01]?\d|2[0-3]):[0-5]\d\b`),
}

// phoneRules. The international form is scanned before North-American
// formats, so "+1-800-555-0199" wins over an earlier "(555) 867-5309".
var phoneRules = []Rule{
	rule("international", `\+\d{1,3}[-.\s]?\(?\d{1,4}\)?(?:[-.\s]?\d{2,4}){2,4}`),
	rule("na-formatted", `\(?\d{3}\)?[-.\s]?\d{3}[-.\s]\d{4}(?:\s*(?:ext\.?|x)\s*\d{1,5})?`),
	rule("bare-10-digit", `\b\d{10}\b`),
	rule("local-7-digit", `\b\d{3}[-. ]?\d{4}\b`),
}

// websiteRules. Bare domains are restricted to an allow-list of common TLDs
// to avoid swallowing abbreviations like "e.g" or file names.
var websiteRules = []Rule{
	rule("scheme-url", `(?i)\bhttps?://[^\s<>"']+`),
	rule("www-url", `(?i)\bwww\.[^\s<>"']+`),
	rule("bare-domain", `(?i)\b[a-z0-9](?:[a-z0-9-]*[a-z0-9])?(?:\.[a-z0-9](?:[a-z0-9-]*[a-z0-9])?)*\.(?:com|org|net|edu|gov|io|co|info|biz|events)\b(?:/[^\s<>"']*)?`),
}

// Date returns the first date-like substring, or nil.
func Date(text string) *string {
	return firstMatch(dateRules, text)
}

// Time returns the first time-like substring, or nil.
func Time(text string) *string {
	return firstMatch(timeRules, text)
}

// Phone returns the first phone-number-like substring, or nil.
func Phone(text string) *string {
	return firstMatch(phoneRules, text)
}

// Website returns the first URL-like substring with trailing punctuation
// stripped, or nil.
func Website(text string) *string {
	m := firstMatch(websiteRules, text)
	if m == nil {
		return nil
	}
	trimmed := strings.TrimRight(*m, ".,;)")
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
