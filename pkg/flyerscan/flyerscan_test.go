package flyerscan

import (
	"os"
	"sync"
	"testing"
)

const testModelDir = "../../models"

func skipWithoutModel(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(testModelDir + "/model.onnx"); os.IsNotExist(err) {
		t.Skip("ONNX model not available, skipping integration test")
	}
}

func TestNewWithModelDir(t *testing.T) {
	skipWithoutModel(t)

	x, err := New(WithModelDir(testModelDir))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer x.Close()
}

func TestNewBadPathReturnsError(t *testing.T) {
	_, err := New(WithModelDir("/nonexistent/path"))
	if err == nil {
		t.Fatal("expected error for bad model path, got nil")
	}
}

func TestExtractKnownFlyer(t *testing.T) {
	x, err := New(WithoutNER())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer x.Close()

	event := x.Extract("SUMMER JAZZ FESTIVAL\nJune 14, 2026 at 7:00 PM\nwww.summerjazz.com")

	if event.Title == nil || *event.Title != "Summer Jazz Festival" {
		t.Errorf("Title = %v, want Summer Jazz Festival", deref(event.Title))
	}
	if event.Date == nil || *event.Date != "June 14, 2026" {
		t.Errorf("Date = %v, want June 14, 2026", deref(event.Date))
	}
	if event.Time == nil || *event.Time != "7:00 PM" {
		t.Errorf("Time = %v, want 7:00 PM", deref(event.Time))
	}
	if event.Website == nil || *event.Website != "www.summerjazz.com" {
		t.Errorf("Website = %v, want www.summerjazz.com", deref(event.Website))
	}
	if event.Category == nil || *event.Category != "Concert / Music" {
		t.Errorf("Category = %v, want Concert / Music", deref(event.Category))
	}
	if event.Confidence <= 90.0 {
		t.Errorf("Confidence = %f, want > 90", event.Confidence)
	}
}

func TestExtractBatchMatchesIndividual(t *testing.T) {
	x, err := New(WithoutNER())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer x.Close()

	texts := []string{
		"SUMMER JAZZ FESTIVAL\nJune 14, 2026 at 7:00 PM",
		"Community yoga session\nSaturday, March 7, 2026",
		"",
	}

	batch := x.ExtractBatch(texts)
	if len(batch) != len(texts) {
		t.Fatalf("ExtractBatch returned %d events, want %d", len(batch), len(texts))
	}

	for i, text := range texts {
		individual := x.Extract(text)
		if deref(batch[i].Title) != deref(individual.Title) ||
			batch[i].Confidence != individual.Confidence {
			t.Errorf("text[%d]: batch=(%s, %f) individual=(%s, %f)",
				i, deref(batch[i].Title), batch[i].Confidence,
				deref(individual.Title), individual.Confidence)
		}
	}
}

func TestExtractEmptyInput(t *testing.T) {
	x, err := New(WithoutNER())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer x.Close()

	event := x.Extract("")
	if event.Title != nil || event.Date != nil || event.Category != nil {
		t.Errorf("empty input produced fields: %+v", event)
	}
	if event.Confidence != 90.0 {
		t.Errorf("Confidence = %f, want 90.0", event.Confidence)
	}
}

func TestExtractWhitespaceInput(t *testing.T) {
	x, err := New(WithoutNER())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer x.Close()

	event := x.Extract("   \t\n  ")
	if event.Confidence != 90.0 {
		t.Errorf("Confidence = %f, want 90.0", event.Confidence)
	}
}

func TestExtractScanUsesText(t *testing.T) {
	x, err := New(WithoutNER())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer x.Close()

	event := x.ExtractScan(Scan{
		Text:      "Charity fundraiser on 03/14/2026 at 6:30 PM",
		WordCount: 7,
		OCREngine: "ocrspace-2",
	})

	if event.Date == nil || *event.Date != "03/14/2026" {
		t.Errorf("Date = %v, want 03/14/2026", deref(event.Date))
	}
	if event.Category == nil || *event.Category != "Charity / Community" {
		t.Errorf("Category = %v, want Charity / Community", deref(event.Category))
	}
}

func TestConcurrentExtract(t *testing.T) {
	x, err := New(WithoutNER())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer x.Close()

	const goroutines = 10
	var wg sync.WaitGroup
	results := make(chan Event, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- x.Extract("POTTERY WORKSHOP\nApril 2, 2026 at 10:00 AM")
		}()
	}

	wg.Wait()
	close(results)

	for event := range results {
		if event.Category == nil || *event.Category != "Workshop / Seminar" {
			t.Errorf("concurrent Extract Category = %v, want Workshop / Seminar",
				deref(event.Category))
		}
	}
}

func TestResolvePathsExplicit(t *testing.T) {
	o := options{
		modelPath:  "/a/model.onnx",
		vocabPath:  "/a/vocab.txt",
		labelsPath: "/a/labels.txt",
	}
	m, v, l := resolvePaths(o)
	if m != "/a/model.onnx" || v != "/a/vocab.txt" || l != "/a/labels.txt" {
		t.Errorf("explicit paths not preserved: got %s, %s, %s", m, v, l)
	}
}

func TestResolvePathsFromDir(t *testing.T) {
	o := options{modelDir: "/data/models"}
	m, v, l := resolvePaths(o)
	if m != "/data/models/model.onnx" {
		t.Errorf("model path = %q", m)
	}
	if v != "/data/models/vocab.txt" {
		t.Errorf("vocab path = %q", v)
	}
	if l != "/data/models/labels.txt" {
		t.Errorf("labels path = %q", l)
	}
}

func TestResolvePathsDefaultDir(t *testing.T) {
	o := options{}
	m, _, _ := resolvePaths(o)
	if m != "models/model.onnx" {
		t.Errorf("default model path = %q, want models/model.onnx", m)
	}
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
