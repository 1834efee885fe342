package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/cockroachdb/errors"

	"eventbooking/internal/domain"
)

const testimonialColumns = `id, name, email, comment, rating, status, created_at`

type testimonialRepository struct {
	DB *sql.DB
}

// NewTestimonialRepository returns a TestimonialRepository backed by Postgres.
func NewTestimonialRepository(db *sql.DB) domain.TestimonialRepository {
	return &testimonialRepository{DB: db}
}

func scanTestimonial(row rowScanner) (*domain.Testimonial, error) {
	t := &domain.Testimonial{}
	var status string
	if err := row.Scan(&t.ID, &t.Name, &t.Email, &t.Comment, &t.Rating, &status, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Status = domain.TestimonialStatus(status)
	return t, nil
}

func testimonialWhere(filter domain.TestimonialFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.Status != "" {
		w.and("status = " + w.arg(string(filter.Status)))
	}
	if filter.Email != "" {
		w.and("email = " + w.arg(strings.ToLower(filter.Email)))
	}
	if filter.Search != "" {
		w.search(filter.Search, "name", "email", "comment")
	}
	return w
}

// Create inserts t. A second testimonial for the same email violates the unique
// index and is reported as domain.ErrDuplicateEmail.
func (r *testimonialRepository) Create(ctx context.Context, t *domain.Testimonial) error {
	query := `
		INSERT INTO testimonials (name, email, comment, rating, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, t.Name, t.Email, t.Comment, t.Rating, string(t.Status), t.CreatedAt).Scan(&t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return errors.Wrap(err, "insert testimonial")
	}
	return nil
}

func (r *testimonialRepository) GetByID(ctx context.Context, id int64) (*domain.Testimonial, error) {
	t, err := scanTestimonial(r.DB.QueryRowContext(ctx, `SELECT `+testimonialColumns+` FROM testimonials WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrap(err, "get testimonial")
	}
	return t, nil
}

func (r *testimonialRepository) FindFirst(ctx context.Context, filter domain.TestimonialFilter) (*domain.Testimonial, error) {
	w := testimonialWhere(filter)
	query := `SELECT ` + testimonialColumns + ` FROM testimonials` + w.String() + ` ORDER BY created_at DESC, id DESC LIMIT 1`
	t, err := scanTestimonial(r.DB.QueryRowContext(ctx, query, w.args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrap(err, "find testimonial")
	}
	return t, nil
}

func (r *testimonialRepository) Count(ctx context.Context, filter domain.TestimonialFilter) (int, error) {
	w := testimonialWhere(filter)
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM testimonials`+w.String(), w.args...).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count testimonials")
	}
	return n, nil
}

func (r *testimonialRepository) List(ctx context.Context, filter domain.TestimonialFilter, params domain.PaginationParams) ([]*domain.Testimonial, error) {
	w := testimonialWhere(filter)
	query := `SELECT ` + testimonialColumns + ` FROM testimonials` + w.String() +
		` ORDER BY created_at DESC, id DESC` + w.page(params.PageSize, params.Offset())
	rows, err := r.DB.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, errors.Wrap(err, "list testimonials")
	}
	defer rows.Close()

	out := []*domain.Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan testimonial")
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *testimonialRepository) UpdateStatus(ctx context.Context, id int64, status domain.TestimonialStatus) (*domain.Testimonial, error) {
	query := `UPDATE testimonials SET status = $1 WHERE id = $2 RETURNING ` + testimonialColumns
	t, err := scanTestimonial(r.DB.QueryRowContext(ctx, query, string(status), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrap(err, "update testimonial status")
	}
	return t, nil
}

func (r *testimonialRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete testimonial")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete testimonial")
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
