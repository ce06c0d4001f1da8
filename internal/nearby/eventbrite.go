package nearby

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultEventbriteURL = "https://www.eventbriteapi.com/v3"

func init() {
	Register("eventbrite", func(token string) Source {
		return NewEventbrite(token)
	})
}

// Eventbrite searches the Eventbrite v3 API for events near an address.
type Eventbrite struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewEventbrite creates an Eventbrite source. An empty token leaves the
// source unconfigured; the aggregator will skip it.
func NewEventbrite(token string) *Eventbrite {
	return &Eventbrite{
		baseURL: defaultEventbriteURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (e *Eventbrite) Name() string { return "eventbrite" }

func (e *Eventbrite) Configured() bool { return e.token != "" }

// eventbriteResponse is the subset of the search response we consume.
type eventbriteResponse struct {
	Events []struct {
		Name struct {
			Text string `json:"text"`
		} `json:"name"`
		URL   string `json:"url"`
		Start struct {
			Local string `json:"local"`
		} `json:"start"`
		Venue struct {
			Name string `json:"name"`
		} `json:"venue"`
	} `json:"events"`
}

// Search queries the event search endpoint. The category, when set, is
// passed as a free-text query hint since Eventbrite category IDs do not
// map one-to-one onto flyer categories.
func (e *Eventbrite) Search(ctx context.Context, venue, category string) ([]Event, error) {
	q := url.Values{}
	q.Set("location.address", venue)
	q.Set("expand", "venue")
	if category != "" {
		q.Set("q", category)
	}

	var resp eventbriteResponse
	if err := e.getJSON(ctx, "/events/search/?"+q.Encode(), &resp); err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(resp.Events))
	for _, raw := range resp.Events {
		if raw.Name.Text == "" {
			continue
		}
		events = append(events, Event{
			Name:     raw.Name.Text,
			Venue:    raw.Venue.Name,
			Category: category,
			StartsAt: raw.Start.Local,
			URL:      raw.URL,
			Source:   e.Name(),
		})
	}
	return events, nil
}

const maxRetries = 2

// getJSON fetches a path with Bearer auth. Retries on 429 (honoring
// Retry-After) and 5xx with exponential backoff.
func (e *Eventbrite) getJSON(ctx context.Context, path string, dest any) error {
	var lastStatus int
	var retryAfter string

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			t := time.NewTimer(retryDelay(attempt, lastStatus, retryAfter))
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+path, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+e.token)

		resp, err := e.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("eventbrite: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("eventbrite: %w", err)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return json.Unmarshal(body, dest)
		}

		lastStatus = resp.StatusCode
		retryAfter = resp.Header.Get("Retry-After")
		if resp.StatusCode == 429 || resp.StatusCode >= 500 {
			continue
		}
		return fmt.Errorf("eventbrite: HTTP %d", resp.StatusCode)
	}

	return fmt.Errorf("eventbrite: HTTP %d after %d retries", lastStatus, maxRetries)
}

func retryDelay(attempt, status int, retryAfter string) time.Duration {
	if status == 429 && retryAfter != "" {
		if secs, err := strconv.Atoi(retryAfter); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Duration(1<<(attempt-1)) * time.Second
}
