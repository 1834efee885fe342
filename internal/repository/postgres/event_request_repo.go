package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"eventbooking/internal/domain"
)

const eventRequestColumns = `id, first_name, last_name, email, event_type, details, status, created_at`

type eventRequestRepository struct {
	DB *sql.DB
}

// NewEventRequestRepository returns an EventRequestRepository backed by Postgres.
// Soft-deleted rows are invisible to every read.
func NewEventRequestRepository(db *sql.DB) domain.EventRequestRepository {
	return &eventRequestRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEventRequest(row rowScanner) (*domain.EventRequest, error) {
	e := &domain.EventRequest{}
	var details sql.NullString
	var status string
	if err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.EventType, &details, &status, &e.CreatedAt); err != nil {
		return nil, err
	}
	if details.Valid {
		e.Details = &details.String
	}
	e.Status = domain.RequestStatus(status)
	return e, nil
}

func eventRequestWhere(filter domain.EventRequestFilter) *whereBuilder {
	w := &whereBuilder{}
	w.and("deleted_at IS NULL")
	if filter.Status != "" {
		w.and("status = " + w.arg(string(filter.Status)))
	}
	if filter.Email != "" {
		w.and("email = " + w.arg(strings.ToLower(filter.Email)))
	}
	if filter.Search != "" {
		w.search(filter.Search, "first_name", "last_name", "email", "event_type", "details")
	}
	return w
}

func (r *eventRequestRepository) Create(ctx context.Context, e *domain.EventRequest) error {
	query := `
		INSERT INTO event_requests (first_name, last_name, email, event_type, details, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var details sql.NullString
	if e.Details != nil {
		details = sql.NullString{String: *e.Details, Valid: true}
	}
	err := r.DB.QueryRowContext(ctx, query, e.FirstName, e.LastName, e.Email, e.EventType, details, string(e.Status), e.CreatedAt).Scan(&e.ID)
	if err != nil {
		return errors.Wrap(err, "insert event request")
	}
	return nil
}

func (r *eventRequestRepository) GetByID(ctx context.Context, id int64) (*domain.EventRequest, error) {
	query := `SELECT ` + eventRequestColumns + ` FROM event_requests WHERE id = $1 AND deleted_at IS NULL`
	e, err := scanEventRequest(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrap(err, "get event request")
	}
	return e, nil
}

// FindFirst returns the newest matching request.
func (r *eventRequestRepository) FindFirst(ctx context.Context, filter domain.EventRequestFilter) (*domain.EventRequest, error) {
	w := eventRequestWhere(filter)
	query := `SELECT ` + eventRequestColumns + ` FROM event_requests` + w.String() + ` ORDER BY created_at DESC, id DESC LIMIT 1`
	e, err := scanEventRequest(r.DB.QueryRowContext(ctx, query, w.args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrap(err, "find event request")
	}
	return e, nil
}

func (r *eventRequestRepository) Count(ctx context.Context, filter domain.EventRequestFilter) (int, error) {
	w := eventRequestWhere(filter)
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_requests`+w.String(), w.args...).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count event requests")
	}
	return n, nil
}

func (r *eventRequestRepository) List(ctx context.Context, filter domain.EventRequestFilter, params domain.PaginationParams) ([]*domain.EventRequest, error) {
	w := eventRequestWhere(filter)
	query := `SELECT ` + eventRequestColumns + ` FROM event_requests` + w.String() +
		` ORDER BY created_at DESC, id DESC` + w.page(params.PageSize, params.Offset())
	rows, err := r.DB.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, errors.Wrap(err, "list event requests")
	}
	defer rows.Close()

	out := []*domain.EventRequest{}
	for rows.Next() {
		e, err := scanEventRequest(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan event request")
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRequestRepository) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) (*domain.EventRequest, error) {
	query := `
		UPDATE event_requests SET status = $1
		WHERE id = $2 AND deleted_at IS NULL
		RETURNING ` + eventRequestColumns
	e, err := scanEventRequest(r.DB.QueryRowContext(ctx, query, string(status), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrap(err, "update event request status")
	}
	return e, nil
}

func (r *eventRequestRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE event_requests SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`, at, id)
	if err != nil {
		return errors.Wrap(err, "soft delete event request")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "soft delete event request")
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
