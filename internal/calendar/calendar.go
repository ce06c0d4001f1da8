// Package calendar renders stored events as iCalendar downloads.
//
// Flyer dates and times are stored as written on the flyer, so rendering
// first parses them against the formats the extraction patterns produce.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/crimson-sun/flyerscan/internal/model"
)

// ErrNoDate means the event has no parseable date, which calendar
// scheduling requires.
var ErrNoDate = errors.New("calendar: event date is required")

// defaultDuration is used because flyers rarely state an end time.
const defaultDuration = 2 * time.Hour

// dateLayouts cover the forms the date patterns extract.
var dateLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"Monday, January 2, 2006",
	"Monday January 2, 2006",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
	"01/02/06",
	"1/2/06",
}

// clockLayouts cover the forms the time patterns extract.
var clockLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
	"15:04",
}

// ICS renders the event as an iCalendar file. The date is required;
// a missing time schedules the event at midnight.
func ICS(ev model.StoredEvent) (string, error) {
	start, err := eventStart(ev)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//flyerscan//EN")

	item := cal.AddEvent(fmt.Sprintf("event-%d@flyerscan", ev.ID))
	item.SetCreatedTime(ev.CreatedAt)
	item.SetDtStampTime(time.Now().UTC())
	item.SetStartAt(start)
	item.SetEndAt(start.Add(defaultDuration))
	item.SetSummary(ev.Title)
	if ev.Venue != nil {
		item.SetLocation(*ev.Venue)
	}
	if desc := describe(ev); desc != "" {
		item.SetDescription(desc)
	}
	if ev.Website != nil {
		item.SetURL(*ev.Website)
	}

	return cal.Serialize(), nil
}

// eventStart combines the stored date and time strings into a start
// timestamp.
func eventStart(ev model.StoredEvent) (time.Time, error) {
	if ev.Date == nil {
		return time.Time{}, ErrNoDate
	}
	day, err := ParseDate(*ev.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrNoDate, err)
	}

	if ev.Time == nil {
		return day, nil
	}
	clock, err := ParseClock(*ev.Time)
	if err != nil {
		// An unparseable time falls back to midnight rather than
		// blocking the download.
		return day, nil
	}
	return day.Add(clock), nil
}

// ParseDate parses a flyer date string into a midnight UTC timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ParseClock parses a flyer time string into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
		}
	}
	return 0, fmt.Errorf("unrecognized time %q", s)
}

// describe flattens the optional fields into a human-readable
// description block.
func describe(ev model.StoredEvent) string {
	var lines []string
	if ev.Organizer != nil {
		lines = append(lines, "Organizer: "+*ev.Organizer)
	}
	if ev.Contact != nil {
		lines = append(lines, "Contact: "+*ev.Contact)
	}
	if ev.Category != nil {
		lines = append(lines, "Category: "+*ev.Category)
	}
	return strings.Join(lines, "\n")
}
