package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/crimson-sun/flyerscan/internal/model"
)

const eventColumns = `id, user_id, title, date, time, venue, organizer,
	contact, website, category, confidence_score, created_at`

// CreateEvent inserts a scanned event for its owner and fills in ID and
// CreatedAt on the passed struct.
func (s *Store) CreateEvent(ctx context.Context, ev *model.StoredEvent) error {
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO events (user_id, title, date, time, venue, organizer,
			contact, website, category, confidence_score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.UserID, ev.Title, ev.Date, ev.Time, ev.Venue, ev.Organizer,
		ev.Contact, ev.Website, ev.Category, ev.ConfidenceScore, now,
	)
	if err != nil {
		return fmt.Errorf("store: create event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("store: create event: %w", err)
	}
	ev.ID = id
	ev.CreatedAt = now
	return nil
}

// GetEvent returns a single event owned by userID.
// Returns ErrEventNotFound when the event does not exist or belongs to
// another user; the two cases are indistinguishable to the caller.
func (s *Store) GetEvent(ctx context.Context, userID, eventID int64) (model.StoredEvent, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ? AND user_id = ?`,
		eventID, userID,
	)
	ev, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.StoredEvent{}, ErrEventNotFound
		}
		return model.StoredEvent{}, fmt.Errorf("store: get event: %w", err)
	}
	return ev, nil
}

// ListEvents returns all events owned by userID, newest first.
func (s *Store) ListEvents(ctx context.Context, userID int64) ([]model.StoredEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list events: %w", err)
	}
	defer rows.Close()

	var events []model.StoredEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("store: list events: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list events: %w", err)
	}
	return events, nil
}

// UpdateEvent replaces the mutable fields of an event owned by userID.
func (s *Store) UpdateEvent(ctx context.Context, ev model.StoredEvent) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE events SET title = ?, date = ?, time = ?, venue = ?,
			organizer = ?, contact = ?, website = ?, category = ?,
			confidence_score = ?
		WHERE id = ? AND user_id = ?`,
		ev.Title, ev.Date, ev.Time, ev.Venue, ev.Organizer,
		ev.Contact, ev.Website, ev.Category, ev.ConfidenceScore,
		ev.ID, ev.UserID,
	)
	if err != nil {
		return fmt.Errorf("store: update event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: update event: %w", err)
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// DeleteEvent removes an event owned by userID.
func (s *Store) DeleteEvent(ctx context.Context, userID, eventID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM events WHERE id = ? AND user_id = ?`,
		eventID, userID,
	)
	if err != nil {
		return fmt.Errorf("store: delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete event: %w", err)
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// scanEvent reads one event row from either *sql.Row or *sql.Rows.
func scanEvent(row interface{ Scan(...any) error }) (model.StoredEvent, error) {
	var ev model.StoredEvent
	err := row.Scan(
		&ev.ID, &ev.UserID, &ev.Title, &ev.Date, &ev.Time, &ev.Venue,
		&ev.Organizer, &ev.Contact, &ev.Website, &ev.Category,
		&ev.ConfidenceScore, &ev.CreatedAt,
	)
	return ev, err
}
