// Package nearby aggregates event discovery results from external
// providers around a venue string. Venues are passed through to the
// providers as written; no geocoding happens here.
package nearby

import (
	"context"
	"sort"
	"strings"

	"github.com/crimson-sun/flyerscan/internal/logging"
)

// Service fans a search out to all configured sources and merges the
// results.
type Service struct {
	sources    []Source
	maxResults int
	log        logging.Logger
}

// NewService creates an aggregator over the given sources.
// maxResults <= 0 means unlimited.
func NewService(sources []Source, maxResults int, log logging.Logger) *Service {
	if log == nil {
		log = logging.NewNop()
	}
	return &Service{sources: sources, maxResults: maxResults, log: log}
}

// Search queries every configured source and returns merged, deduplicated
// results sorted by start time. Unconfigured sources are skipped; a
// failing source is logged and skipped rather than failing the whole
// search. The category filter is dropped when showAll is set.
func (s *Service) Search(ctx context.Context, venue, category string, showAll bool) ([]Event, error) {
	if showAll {
		category = ""
	}

	var merged []Event
	for _, src := range s.sources {
		if !src.Configured() {
			s.log.Warn("nearby source not configured, skipping",
				logging.String("source", src.Name()))
			continue
		}

		events, err := src.Search(ctx, venue, category)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.log.Error("nearby source failed",
				logging.String("source", src.Name()),
				logging.Error(err))
			continue
		}
		merged = append(merged, events...)
	}

	merged = dedupe(merged)
	sortEvents(merged)

	if s.maxResults > 0 && len(merged) > s.maxResults {
		merged = merged[:s.maxResults]
	}
	return merged, nil
}

// dedupe collapses events with the same normalized name, keeping the
// first occurrence. Different providers frequently list the same event.
func dedupe(events []Event) []Event {
	seen := make(map[string]bool, len(events))
	out := events[:0]
	for _, e := range events {
		key := normalizeName(e.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}

// normalizeName lowercases and collapses whitespace so cosmetic
// differences between providers do not defeat deduplication.
func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// sortEvents orders by start time ascending, events without a start time
// last, ties broken by name.
func sortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		switch {
		case a.StartsAt == "" && b.StartsAt != "":
			return false
		case a.StartsAt != "" && b.StartsAt == "":
			return true
		case a.StartsAt != b.StartsAt:
			return a.StartsAt < b.StartsAt
		default:
			return a.Name < b.Name
		}
	})
}
