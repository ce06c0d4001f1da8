package flyerscan

// Event is an extracted, structured event record.
// This is the stable public type — internal representations may evolve
// independently without breaking consumers.
//
// Every field except Confidence is nil when the source text gave no
// evidence for it. Field values are verbatim substrings of the input
// (Title and Organizer may be title-cased).
type Event struct {
	Title      *string `json:"title"`            // Event name
	Date       *string `json:"date"`             // Date as written on the flyer
	Time       *string `json:"time"`             // Start time as written
	Venue      *string `json:"venue"`            // Venue or address
	Organizer  *string `json:"organizer"`        // Organizing body
	Contact    *string `json:"contact"`          // Phone number
	Website    *string `json:"website"`          // URL or domain
	Category   *string `json:"category"`         // One of the built-in event categories
	Confidence float64 `json:"confidence_score"` // 90.0 (nothing found) to 100.0
}
