package testdata

import (
	"testing"

	"github.com/crimson-sun/flyerscan/internal/engine"
	"github.com/crimson-sun/flyerscan/internal/engine/entity"
)

func TestLoadCorpus(t *testing.T) {
	entries, err := LoadCorpus()
	if err != nil {
		t.Fatalf("LoadCorpus() error: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("corpus is empty")
	}
	for i, e := range entries {
		if e.Raw == "" {
			t.Errorf("entry[%d] has empty raw", i)
		}
		if e.Description == "" {
			t.Errorf("entry[%d] has empty description", i)
		}
	}
}

func TestCorpusExtraction(t *testing.T) {
	entries, err := LoadCorpus()
	if err != nil {
		t.Fatalf("LoadCorpus() error: %v", err)
	}

	eng := engine.New(entity.Noop{})
	for _, e := range entries {
		t.Run(e.Description, func(t *testing.T) {
			ev := eng.Extract(e.Raw)

			check(t, "date", ev.Date, e.ExpectedDate)
			check(t, "time", ev.Time, e.ExpectedTime)
			check(t, "contact", ev.Contact, e.ExpectedContact)
			check(t, "website", ev.Website, e.ExpectedWebsite)
			check(t, "category", ev.Category, e.ExpectedCategory)

			if e.ExpectedScore != 0 && ev.ConfidenceScore != e.ExpectedScore {
				t.Errorf("score = %v, want %v", ev.ConfidenceScore, e.ExpectedScore)
			}
		})
	}
}

// check compares an optional field against its expectation; an empty
// expectation means the field must be nil.
func check(t *testing.T, name string, got *string, want string) {
	t.Helper()
	if want == "" {
		if got != nil {
			t.Errorf("%s = %q, want nil", name, *got)
		}
		return
	}
	if got == nil {
		t.Errorf("%s = nil, want %q", name, want)
		return
	}
	if *got != want {
		t.Errorf("%s = %q, want %q", name, *got, want)
	}
}
