// Package confidence scores an extracted event by completeness. The score
// is a pure function of which content fields were populated — it says
// nothing about correctness.
package confidence

import (
	"math"
	"strings"
)

const (
	// Floor is the score of an extraction with no populated fields.
	Floor = 90.0
	// Ceiling caps the score with all fields populated.
	Ceiling = 100.0

	// fieldCount is the number of scored content fields: title, date, time,
	// venue, organizer, contact, website. Category is a derived
	// classification and is excluded.
	fieldCount = 7

	increment = (Ceiling - Floor) / fieldCount
)

// Score returns Floor plus one increment per non-nil, non-empty field,
// rounded to 2 decimal places and capped at Ceiling. Monotonic: populating
// a previously-nil field never lowers the score.
func Score(fields []*string) float64 {
	n := 0
	for _, f := range fields {
		if f != nil && strings.TrimSpace(*f) != "" {
			n++
		}
	}
	s := round2(Floor + float64(n)*increment)
	if s > Ceiling {
		s = Ceiling
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
