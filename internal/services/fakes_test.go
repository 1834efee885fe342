package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"eventbooking/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// fakeEventRequestRepo is an in-memory EventRequestRepository for tests.
type fakeEventRequestRepo struct {
	mu     sync.Mutex
	byID   map[int64]*domain.EventRequest
	nextID int64
	err    error // if set, every call returns this error
}

func newFakeEventRequestRepo() *fakeEventRequestRepo {
	return &fakeEventRequestRepo{byID: make(map[int64]*domain.EventRequest), nextID: 1}
}

// seed stores a copy of req with an explicit status and creation time.
func (f *fakeEventRequestRepo) seed(email string, status domain.RequestStatus, createdAt time.Time) *domain.EventRequest {
	req := domain.NewEventRequest("Seed", "Client", email, "Wedding", nil, createdAt)
	req.Status = status
	_ = f.Create(context.Background(), req)
	return req
}

func (f *fakeEventRequestRepo) Create(ctx context.Context, req *domain.EventRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	req.ID = f.nextID
	f.nextID++
	stored := *req
	f.byID[req.ID] = &stored
	return nil
}

func (f *fakeEventRequestRepo) GetByID(ctx context.Context, id int64) (*domain.EventRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.byID[id]
	if !ok || r.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	out := *r
	return &out, nil
}

func (f *fakeEventRequestRepo) match(filter domain.EventRequestFilter) []*domain.EventRequest {
	var out []*domain.EventRequest
	for _, r := range f.byID {
		if r.DeletedAt != nil {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.Email != "" && !strings.EqualFold(r.Email, filter.Email) {
			continue
		}
		if filter.Search != "" {
			details := ""
			if r.Details != nil {
				details = *r.Details
			}
			hay := strings.Join([]string{r.FirstName, r.LastName, r.Email, r.EventType, details}, " ")
			if !containsFold(hay, filter.Search) {
				continue
			}
		}
		c := *r
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (f *fakeEventRequestRepo) FindFirst(ctx context.Context, filter domain.EventRequestFilter) (*domain.EventRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	m := f.match(filter)
	if len(m) == 0 {
		return nil, domain.ErrNotFound
	}
	return m[0], nil
}

func (f *fakeEventRequestRepo) Count(ctx context.Context, filter domain.EventRequestFilter) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	return len(f.match(filter)), nil
}

func (f *fakeEventRequestRepo) List(ctx context.Context, filter domain.EventRequestFilter, params domain.PaginationParams) ([]*domain.EventRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return paginate(f.match(filter), params), nil
}

func (f *fakeEventRequestRepo) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) (*domain.EventRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.byID[id]
	if !ok || r.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	r.Status = status
	out := *r
	return &out, nil
}

func (f *fakeEventRequestRepo) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	r, ok := f.byID[id]
	if !ok || r.DeletedAt != nil {
		return domain.ErrNotFound
	}
	r.DeletedAt = &at
	return nil
}

// raw returns the stored row, including soft-deleted ones.
func (f *fakeEventRequestRepo) raw(id int64) *domain.EventRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id]
}

// fakeTestimonialRepo is an in-memory TestimonialRepository for tests.
type fakeTestimonialRepo struct {
	mu        sync.Mutex
	byID      map[int64]*domain.Testimonial
	nextID    int64
	err       error
	createErr error
}

func newFakeTestimonialRepo() *fakeTestimonialRepo {
	return &fakeTestimonialRepo{byID: make(map[int64]*domain.Testimonial), nextID: 1}
}

func (f *fakeTestimonialRepo) seed(name, email string, status domain.TestimonialStatus, createdAt time.Time) *domain.Testimonial {
	t := domain.NewTestimonial(name, email, "Lovely evening", 5, createdAt)
	t.Status = status
	_ = f.Create(context.Background(), t)
	return t
}

func (f *fakeTestimonialRepo) Create(ctx context.Context, t *domain.Testimonial) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.createErr != nil {
		return f.createErr
	}
	t.ID = f.nextID
	f.nextID++
	stored := *t
	f.byID[t.ID] = &stored
	return nil
}

func (f *fakeTestimonialRepo) GetByID(ctx context.Context, id int64) (*domain.Testimonial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *t
	return &out, nil
}

func (f *fakeTestimonialRepo) match(filter domain.TestimonialFilter) []*domain.Testimonial {
	var out []*domain.Testimonial
	for _, t := range f.byID {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Email != "" && !strings.EqualFold(t.Email, filter.Email) {
			continue
		}
		if filter.Search != "" && !containsFold(t.Name+" "+t.Email+" "+t.Comment, filter.Search) {
			continue
		}
		c := *t
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (f *fakeTestimonialRepo) FindFirst(ctx context.Context, filter domain.TestimonialFilter) (*domain.Testimonial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	m := f.match(filter)
	if len(m) == 0 {
		return nil, domain.ErrNotFound
	}
	return m[0], nil
}

func (f *fakeTestimonialRepo) Count(ctx context.Context, filter domain.TestimonialFilter) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	return len(f.match(filter)), nil
}

func (f *fakeTestimonialRepo) List(ctx context.Context, filter domain.TestimonialFilter, params domain.PaginationParams) ([]*domain.Testimonial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return paginate(f.match(filter), params), nil
}

func (f *fakeTestimonialRepo) UpdateStatus(ctx context.Context, id int64, status domain.TestimonialStatus) (*domain.Testimonial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	t.Status = status
	out := *t
	return &out, nil
}

func (f *fakeTestimonialRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeTestimonialRepo) all() []*domain.Testimonial {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.match(domain.TestimonialFilter{})
}

func paginate[T any](items []T, params domain.PaginationParams) []T {
	off := params.Offset()
	if off >= len(items) {
		return []T{}
	}
	end := min(off+params.PageSize, len(items))
	return items[off:end]
}

// countingLimiter admits the first max calls per key and ignores the window.
type countingLimiter struct {
	mu     sync.Mutex
	counts map[string]int
	keys   []string
	retry  time.Duration
}

func newCountingLimiter() *countingLimiter {
	return &countingLimiter{counts: make(map[string]int)}
}

func (l *countingLimiter) Allow(key string, maxRequests int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keys = append(l.keys, key)
	if l.counts[key] >= maxRequests {
		return false
	}
	l.counts[key]++
	return true
}

func (l *countingLimiter) RetryAfter(key string) time.Duration {
	return l.retry
}

// fakeNotifier records notifications and optionally fails them. When release
// is set, each send blocks until it is closed.
type fakeNotifier struct {
	mu           sync.Mutex
	requests     []*domain.EventRequestNotification
	testimonials []*domain.TestimonialNotification
	err          error
	release      chan struct{}
	ctxErrs      []error
	deadlines    []time.Time
}

func (n *fakeNotifier) hold(ctx context.Context) {
	if n.release != nil {
		<-n.release
	}
	deadline, _ := ctx.Deadline()
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ctxErrs = append(n.ctxErrs, ctx.Err())
	n.deadlines = append(n.deadlines, deadline)
}

func (n *fakeNotifier) NotifyEventRequest(ctx context.Context, data *domain.EventRequestNotification) error {
	n.hold(ctx)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requests = append(n.requests, data)
	return n.err
}

func (n *fakeNotifier) NotifyTestimonial(ctx context.Context, data *domain.TestimonialNotification) error {
	n.hold(ctx)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.testimonials = append(n.testimonials, data)
	return n.err
}

// fakeAdminRepo is an in-memory AdminRepository for tests.
type fakeAdminRepo struct {
	byEmail map[string]*domain.Admin
	nextID  int64
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{byEmail: make(map[string]*domain.Admin), nextID: 1}
}

func (f *fakeAdminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	if _, ok := f.byEmail[admin.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	admin.ID = f.nextID
	f.nextID++
	f.byEmail[admin.Email] = admin
	return nil
}

func (f *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// plainHasher stores salt+password verbatim.
type plainHasher struct{}

func (plainHasher) GenerateSalt() (string, error) { return "salt", nil }

func (plainHasher) Hash(salt, password string) (string, error) { return salt + ":" + password, nil }

func (plainHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// recordingIssuer returns a deterministic token and records the last claims.
type recordingIssuer struct {
	subject string
	email   string
	roles   []string
	expiry  time.Duration
}

func (i *recordingIssuer) Issue(subject, email string, roles []string, expiry time.Duration) (string, error) {
	i.subject, i.email, i.roles, i.expiry = subject, email, roles, expiry
	return "token-" + subject, nil
}
