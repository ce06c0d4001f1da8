package flyerscan

import (
	"fmt"

	"github.com/crimson-sun/flyerscan/internal/engine"
	"github.com/crimson-sun/flyerscan/internal/engine/entity"
	"github.com/crimson-sun/flyerscan/internal/model"
)

// Extractor is an event extraction engine for OCR flyer text.
// It combines regex pattern matching, named-entity recognition, and
// keyword classification into a single structured result.
// Safe for concurrent use.
type Extractor struct {
	engine *engine.Engine
	rec    entity.Recognizer
}

// New creates an Extractor, loading NER model files unless WithoutNER is
// set. Loading the model is an expensive operation (~100-300ms) — create
// once, reuse across requests.
func New(opts ...Option) (*Extractor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var rec entity.Recognizer = entity.Noop{}
	if !o.withoutNER {
		modelPath, vocabPath, labelsPath := resolvePaths(o)
		r, err := entity.NewONNXRecognizer(modelPath, vocabPath, labelsPath)
		if err != nil {
			return nil, fmt.Errorf("flyerscan: %w", err)
		}
		rec = r
	}

	return &Extractor{engine: engine.New(rec), rec: rec}, nil
}

// Extract parses OCR text into a structured event record.
func (x *Extractor) Extract(text string) Event {
	return eventFromExtracted(x.engine.Extract(text))
}

// ExtractBatch extracts events from multiple flyer texts.
func (x *Extractor) ExtractBatch(texts []string) []Event {
	events := make([]Event, len(texts))
	for i, t := range texts {
		events[i] = eventFromExtracted(x.engine.Extract(t))
	}
	return events
}

// ExtractScan extracts an event from an OCR result with metadata.
// Use this when you have word counts and engine information.
// For raw text, use Extract().
func (x *Extractor) ExtractScan(scan Scan) Event {
	raw := model.RawScan{
		RawText:      scan.Text,
		WordCount:    scan.WordCount,
		OCREngine:    scan.OCREngine,
		IsSearchable: scan.Searchable,
	}
	return eventFromExtracted(x.engine.ExtractScan(raw))
}

// Close releases model resources (ONNX runtime, memory).
// Must be called when the Extractor is no longer needed.
func (x *Extractor) Close() error {
	return x.rec.Close()
}

// eventFromExtracted converts the internal ExtractedEvent to the public Event type.
func eventFromExtracted(ev model.ExtractedEvent) Event {
	return Event{
		Title:      ev.Title,
		Date:       ev.Date,
		Time:       ev.Time,
		Venue:      ev.Venue,
		Organizer:  ev.Organizer,
		Contact:    ev.Contact,
		Website:    ev.Website,
		Category:   ev.Category,
		Confidence: ev.ConfidenceScore,
	}
}
