package nearby

import (
	"context"
	"fmt"
)

// Event is an event discovered near a venue by an external provider.
type Event struct {
	Name     string `json:"name"`
	Venue    string `json:"venue,omitempty"`
	Category string `json:"category,omitempty"`
	StartsAt string `json:"starts_at,omitempty"`
	URL      string `json:"url,omitempty"`
	Source   string `json:"source"`
}

// Source is an external event discovery provider.
type Source interface {
	// Name identifies the provider in results and logs.
	Name() string
	// Configured reports whether the provider has the credentials it
	// needs. Unconfigured sources are skipped, not errored.
	Configured() bool
	// Search returns events near the given venue, optionally filtered
	// by provider-side category hints.
	Search(ctx context.Context, venue, category string) ([]Event, error)
}

// Constructor creates a Source from provider credentials.
type Constructor func(token string) Source

var registry = map[string]Constructor{}

// Register adds a source constructor under the given provider name.
func Register(name string, ctor Constructor) {
	registry[name] = ctor
}

// Get returns the source constructor for the given provider name.
func Get(name string) (Constructor, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown nearby provider: %s", name)
	}
	return ctor, nil
}

// Providers returns the names of all registered providers.
func Providers() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
