// Package entity detects venue and organizer mentions in flyer text. The
// primary path is a named-entity-recognition model behind the Recognizer
// interface; when no model is available (or it finds nothing) the detector
// falls back to cue-phrase and street-address regexes.
package entity

// Entity is one recognized span: its verbatim text and a label such as
// ORG, GPE, LOC, or FAC.
type Entity struct {
	Text  string
	Label string
}

// Recognizer produces named entities from text, in document order.
type Recognizer interface {
	Entities(text string) ([]Entity, error)
	Close() error
}

// Noop is a Recognizer for environments without a NER model. It always
// reports zero entities, which routes every detection through the regex
// fallback.
type Noop struct{}

// Entities reports no entities.
func (Noop) Entities(string) ([]Entity, error) { return nil, nil }

// Close is a no-op.
func (Noop) Close() error { return nil }
