package entity

import (
	"strings"
	"testing"
)

// stubRecognizer returns a fixed entity list, in order.
type stubRecognizer struct {
	entities []Entity
	err      error
	gotText  string
}

func (s *stubRecognizer) Entities(text string) ([]Entity, error) {
	s.gotText = text
	return s.entities, s.err
}

func (s *stubRecognizer) Close() error { return nil }

func TestLocationFirstQualifyingEntity(t *testing.T) {
	rec := &stubRecognizer{entities: []Entity{
		{Text: "Acme Corp", Label: "ORG"},
		{Text: "NY", Label: "GPE"}, // too short, filtered
		{Text: "Central Park", Label: "LOC"},
		{Text: "Chicago", Label: "GPE"},
	}}
	d := NewDetector(rec)

	got := d.Location("whatever text")
	if got == nil || *got != "Central Park" {
		t.Fatalf("Location() = %v, want Central Park", got)
	}
}

func TestOrganizationEntity(t *testing.T) {
	rec := &stubRecognizer{entities: []Entity{
		{Text: "Boston", Label: "GPE"},
		{Text: "Harbor Arts Society", Label: "ORG"},
	}}
	d := NewDetector(rec)

	got := d.Organization("whatever text")
	if got == nil || *got != "Harbor Arts Society" {
		t.Fatalf("Organization() = %v, want Harbor Arts Society", got)
	}
}

func TestDetectorCapsNERInput(t *testing.T) {
	rec := &stubRecognizer{}
	d := NewDetector(rec)

	d.Location(strings.Repeat("x", nerInputCap+500))
	if len(rec.gotText) != nerInputCap {
		t.Errorf("recognizer saw %d bytes, want %d", len(rec.gotText), nerInputCap)
	}
}

func TestDetectorRecognizerErrorFallsBack(t *testing.T) {
	rec := &stubRecognizer{err: errStub}
	d := NewDetector(rec)

	got := d.Location("Venue: Riverside Hall\n")
	if got == nil || *got != "Riverside Hall" {
		t.Fatalf("Location() = %v, want regex fallback result", got)
	}
}

func TestVenueFallbackCues(t *testing.T) {
	d := NewDetector(Noop{})
	cases := []struct {
		in, want string
	}{
		{"Venue: Riverside Hall\nJune 14", "Riverside Hall"},
		{"Location: Main Quad", "Main Quad"},
		{"held at The Grand Ballroom, doors 7pm", "The Grand Ballroom"},
		{"Join us at City Auditorium tonight", "City Auditorium tonight"},
	}
	for _, tc := range cases {
		got := d.Location(tc.in)
		if got == nil {
			t.Errorf("Location(%q) = nil, want %q", tc.in, tc.want)
			continue
		}
		if *got != tc.want {
			t.Errorf("Location(%q) = %q, want %q", tc.in, *got, tc.want)
		}
	}
}

func TestVenueFallbackStreetAddress(t *testing.T) {
	d := NewDetector(Noop{})
	got := d.Location("Find us: 42 Maple Street downtown")
	if got == nil || *got != "42 Maple Street" {
		t.Fatalf("Location() = %v, want 42 Maple Street", got)
	}
}

func TestVenueFallbackMiss(t *testing.T) {
	d := NewDetector(Noop{})
	if got := d.Location("no clues here"); got != nil {
		t.Errorf("Location() = %q, want nil", *got)
	}
}

func TestOrganizerFallbackCues(t *testing.T) {
	d := NewDetector(Noop{})
	cases := []struct {
		in, want string
	}{
		{"Presented by Harbor Arts Society", "Harbor Arts Society"},
		{"organized by the City Council, with support", "the City Council"},
		{"Hosted by: Knights Lodge\n", "Knights Lodge"},
	}
	for _, tc := range cases {
		got := d.Organization(tc.in)
		if got == nil {
			t.Errorf("Organization(%q) = nil, want %q", tc.in, tc.want)
			continue
		}
		if *got != tc.want {
			t.Errorf("Organization(%q) = %q, want %q", tc.in, *got, tc.want)
		}
	}
}

func TestOrganizerFallbackUppercaseLine(t *testing.T) {
	d := NewDetector(Noop{})
	got := d.Organization("doors open early\nRIVERSIDE COMMUNITY CLUB\ndetails inside")
	if got == nil || *got != "Riverside Community Club" {
		t.Fatalf("Organization() = %v, want Riverside Community Club", got)
	}
}

func TestOrganizerFallbackMiss(t *testing.T) {
	d := NewDetector(Noop{})
	if got := d.Organization("just some lowercase prose"); got != nil {
		t.Errorf("Organization() = %q, want nil", *got)
	}
}

func TestNilRecognizerUsesNoop(t *testing.T) {
	d := NewDetector(nil)
	if got := d.Location("Venue: The Annex"); got == nil || *got != "The Annex" {
		t.Fatalf("Location() = %v, want The Annex", got)
	}
}

var errStub = errStubType{}

type errStubType struct{}

func (errStubType) Error() string { return "stub recognizer failure" }
