// Package engine turns raw OCR text from a flyer into a structured event
// record with a completeness score. Extraction is deterministic, rule-based,
// and side-effect-free: the same input always produces byte-identical
// output.
package engine

import (
	"strings"

	"github.com/crimson-sun/flyerscan/internal/engine/category"
	"github.com/crimson-sun/flyerscan/internal/engine/confidence"
	"github.com/crimson-sun/flyerscan/internal/engine/entity"
	"github.com/crimson-sun/flyerscan/internal/engine/patterns"
	"github.com/crimson-sun/flyerscan/internal/engine/title"
	"github.com/crimson-sun/flyerscan/internal/model"
)

// Engine composes the pattern library, entity detector, category classifier,
// title heuristic, and confidence scorer. Stateless per call; safe for
// concurrent use as long as the Recognizer it was built with is read-only.
type Engine struct {
	detector   *entity.Detector
	classifier *category.Classifier
}

// New creates an Engine over the given Recognizer. A nil Recognizer routes
// entity detection through the regex fallback.
func New(rec entity.Recognizer) *Engine {
	return &Engine{
		detector:   entity.NewDetector(rec),
		classifier: category.New(category.DefaultEntries()),
	}
}

// Extract parses all event fields from raw OCR text. A sub-extractor that
// finds nothing yields a nil field, never an error. Empty or whitespace-only
// input short-circuits to an all-nil record at the score floor without
// invoking any sub-extractor.
func (e *Engine) Extract(raw string) model.ExtractedEvent {
	if strings.TrimSpace(raw) == "" {
		return model.ExtractedEvent{ConfidenceScore: confidence.Floor}
	}

	organizer := e.detector.Organization(raw)

	ev := model.ExtractedEvent{
		Title:     title.Pick(raw, organizer),
		Date:      patterns.Date(raw),
		Time:      patterns.Time(raw),
		Venue:     e.detector.Location(raw),
		Organizer: organizer,
		Contact:   patterns.Phone(raw),
		Website:   patterns.Website(raw),
		Category:  e.classifier.Classify(raw),
	}
	ev.ConfidenceScore = confidence.Score(ev.Fields())
	return ev
}

// ExtractScan parses the OCR service's output.
func (e *Engine) ExtractScan(scan model.RawScan) model.ExtractedEvent {
	return e.Extract(scan.RawText)
}
