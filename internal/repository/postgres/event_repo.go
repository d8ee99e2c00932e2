package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"agenda/internal/domain"
)

const eventColumns = `id, title, location, notes, start_date, end_date, contact_id, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.CalendarEvent, error) {
	e := &domain.CalendarEvent{}
	var locationNull, notesNull, contactNull sql.NullString
	if err := row.Scan(
		&e.ID, &e.Title, &locationNull, &notesNull, &e.StartDate, &e.EndDate,
		&contactNull, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if locationNull.Valid {
		e.Location = &locationNull.String
	}
	if notesNull.Valid {
		e.Notes = &notesNull.String
	}
	if contactNull.Valid {
		e.ContactID = &contactNull.String
	}
	return e, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// mapWriteErr turns a foreign key violation on contact_id into ErrContactNotFound.
func mapWriteErr(err error) error {
	var perr *pq.Error
	if errors.As(err, &perr) && perr.Code == "23503" {
		return domain.ErrContactNotFound
	}
	return err
}

func (r *eventRepository) Create(ctx context.Context, e *domain.CalendarEvent) error {
	query := `
		INSERT INTO events (id, title, location, notes, start_date, end_date, contact_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Title, nullString(e.Location), nullString(e.Notes), e.StartDate, e.EndDate,
		nullString(e.ContactID), e.CreatedAt, e.UpdatedAt,
	)
	return mapWriteErr(err)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// List returns events ordered by start_date along with the total number of
// rows matching the filter before pagination.
func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.CalendarEvent, int, error) {
	var (
		where []string
		args  []any
	)
	if filter.From != nil {
		args = append(args, *filter.From)
		where = append(where, fmt.Sprintf("start_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where = append(where, fmt.Sprintf("start_date < $%d", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + eventColumns + ` FROM events` + clause + ` ORDER BY start_date ASC, id ASC`
	if filter.Limited() {
		args = append(args, filter.PageSize, filter.Offset())
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	events := make([]*domain.CalendarEvent, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

// Update replaces the editable columns and returns the stored row.
func (r *eventRepository) Update(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	query := `
		UPDATE events
		SET title = $2, location = $3, notes = $4, start_date = $5, end_date = $6, contact_id = $7, updated_at = $8
		WHERE id = $1
		RETURNING ` + eventColumns
	updated, err := scanEvent(r.DB.QueryRowContext(ctx, query,
		e.ID, e.Title, nullString(e.Location), nullString(e.Notes), e.StartDate, e.EndDate,
		nullString(e.ContactID), e.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, mapWriteErr(err)
	}
	return updated, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
