package model

// ExtractedEvent is the engine's output type — the structured record parsed
// from one flyer's OCR text. Every field is either a verbatim substring of
// the input (or a case-normalized version of one) or nil; the engine never
// fabricates values. Date and Time stay raw matched substrings — parsing
// them into calendar types is the caller's concern.
type ExtractedEvent struct {
	Title           *string `json:"title"`
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	Venue           *string `json:"venue"`
	Organizer       *string `json:"organizer"`
	Contact         *string `json:"contact"`
	Website         *string `json:"website"`
	Category        *string `json:"category"`
	ConfidenceScore float64 `json:"confidence_score"` // completeness score, 90.00–100.00
}

// Fields returns the seven content fields that feed the confidence scorer,
// in a fixed order. Category is excluded — it is a derived classification,
// not an extracted fact.
func (e ExtractedEvent) Fields() []*string {
	return []*string{e.Title, e.Date, e.Time, e.Venue, e.Organizer, e.Contact, e.Website}
}
