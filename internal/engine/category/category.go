// Package category classifies flyer text into an event category using an
// ordered keyword table. There is no cross-category scoring: the list is
// scanned in declaration order and the first category with any matching
// keyword terminates the search, even if a later category would match more
// keywords. That trade keeps categorization reproducible.
package category

import (
	"regexp"
	"strings"
)

// Entry pairs a category name with the keywords that select it.
type Entry struct {
	Name     string
	Keywords []string
}

type compiledEntry struct {
	name     string
	keywords []*regexp.Regexp
}

// Classifier scans text against the ordered category table.
type Classifier struct {
	entries []compiledEntry
}

// New compiles the given entries, preserving their order. Keywords are
// matched case-insensitively as whole words.
func New(entries []Entry) *Classifier {
	c := &Classifier{entries: make([]compiledEntry, 0, len(entries))}
	for _, e := range entries {
		ce := compiledEntry{name: e.Name, keywords: make([]*regexp.Regexp, 0, len(e.Keywords))}
		for _, kw := range e.Keywords {
			ce.keywords = append(ce.keywords, regexp.MustCompile(`\b`+regexp.QuoteMeta(strings.ToLower(kw))+`\b`))
		}
		c.entries = append(c.entries, ce)
	}
	return c
}

// Classify returns the first category whose keywords match the text, or nil
// when nothing matches.
func (c *Classifier) Classify(text string) *string {
	lower := strings.ToLower(text)
	for _, e := range c.entries {
		for _, kw := range e.keywords {
			if kw.MatchString(lower) {
				name := e.name
				return &name
			}
		}
	}
	return nil
}
