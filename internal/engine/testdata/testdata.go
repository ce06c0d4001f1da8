// Package testdata embeds a small corpus of OCR'd flyer texts with expected
// extraction results, used to validate the engine end to end.
package testdata

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed corpus.json
var corpusJSON []byte

// CorpusEntry is one labeled flyer text. Empty expected values mean the
// field should come back nil.
type CorpusEntry struct {
	Raw              string  `json:"raw"`
	ExpectedDate     string  `json:"expected_date"`
	ExpectedTime     string  `json:"expected_time"`
	ExpectedContact  string  `json:"expected_contact"`
	ExpectedWebsite  string  `json:"expected_website"`
	ExpectedCategory string  `json:"expected_category"`
	ExpectedScore    float64 `json:"expected_score"`
	Description      string  `json:"description"`
}

// LoadCorpus parses the embedded corpus.json and returns all entries.
func LoadCorpus() ([]CorpusEntry, error) {
	var entries []CorpusEntry
	if err := json.Unmarshal(corpusJSON, &entries); err != nil {
		return nil, fmt.Errorf("parse corpus.json: %w", err)
	}
	return entries, nil
}
