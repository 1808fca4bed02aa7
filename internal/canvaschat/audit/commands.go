package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// defaultLimit applies when Recent is called without a positive limit.
const defaultLimit = 100

// Entry is one processed chat command.
type Entry struct {
	ID          int64     `json:"id"`
	CommandID   string    `json:"commandId"`
	Thread      string    `json:"thread"`
	ComponentID string    `json:"componentId,omitempty"`
	Text        string    `json:"text"`
	Kind        string    `json:"kind"`
	Success     bool      `json:"success"`
	ErrorClass  string    `json:"errorClass,omitempty"`
	Message     string    `json:"message"`
	Processor   string    `json:"processor,omitempty"`
	Pattern     string    `json:"pattern,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Record stores e. A zero CreatedAt is replaced with the current time.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO commands (ts, command_id, thread, component_id, text, kind, success, error_class, message, processor, pattern)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.CreatedAt.UTC(), e.CommandID, e.Thread, nullable(e.ComponentID), e.Text, e.Kind, e.Success,
		nullable(e.ErrorClass), e.Message, nullable(e.Processor), nullable(e.Pattern))
	if err != nil {
		return fmt.Errorf("failed to write command audit: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	return s.query(ctx, `
		SELECT id, ts, command_id, thread, component_id, text, kind, success, error_class, message, processor, pattern
		FROM commands
		ORDER BY ts DESC, id DESC
		LIMIT ?
	`, limit)
}

// ByThread returns the entries of one thread, oldest first.
func (s *Store) ByThread(ctx context.Context, thread string) ([]Entry, error) {
	return s.query(ctx, `
		SELECT id, ts, command_id, thread, component_id, text, kind, success, error_class, message, processor, pattern
		FROM commands
		WHERE thread = ?
		ORDER BY ts ASC, id ASC
	`, thread)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query command audit: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var component, class, processor, pattern sql.NullString
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.CommandID, &e.Thread, &component, &e.Text,
			&e.Kind, &e.Success, &class, &e.Message, &processor, &pattern); err != nil {
			return nil, fmt.Errorf("failed to scan command audit: %w", err)
		}
		e.ComponentID = component.String
		e.ErrorClass = class.String
		e.Processor = processor.String
		e.Pattern = pattern.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating command audit: %w", err)
	}
	return entries, nil
}
