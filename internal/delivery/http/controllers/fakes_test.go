package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

type fakeSubmissionService struct {
	lastKey         string
	lastRequest     domain.EventRequestInput
	lastTestimonial domain.TestimonialInput
	requestReceipt  *domain.EventRequestReceipt
	testimonialRcpt *domain.TestimonialReceipt
	err             error
}

func (f *fakeSubmissionService) SubmitEventRequest(ctx context.Context, clientKey string, in domain.EventRequestInput) (*domain.EventRequestReceipt, error) {
	f.lastKey = clientKey
	f.lastRequest = in
	if f.err != nil {
		return nil, f.err
	}
	return f.requestReceipt, nil
}

func (f *fakeSubmissionService) Wait(ctx context.Context) error { return nil }

func (f *fakeSubmissionService) SubmitTestimonial(ctx context.Context, clientKey string, in domain.TestimonialInput) (*domain.TestimonialReceipt, error) {
	f.lastKey = clientKey
	f.lastTestimonial = in
	if f.err != nil {
		return nil, f.err
	}
	return f.testimonialRcpt, nil
}

type fakeQueryService struct {
	lastQuery    domain.ListQuery
	lastParams   domain.PaginationParams
	requests     *domain.Page[*domain.EventRequest]
	request      *domain.EventRequest
	testimonials *domain.Page[*domain.Testimonial]
	testimonial  *domain.Testimonial
	public       *domain.Page[domain.PublicTestimonial]
	err          error
}

func (f *fakeQueryService) ListEventRequests(ctx context.Context, q domain.ListQuery) (*domain.Page[*domain.EventRequest], error) {
	f.lastQuery = q
	return f.requests, f.err
}

func (f *fakeQueryService) GetEventRequest(ctx context.Context, id int64) (*domain.EventRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.request, nil
}

func (f *fakeQueryService) ListTestimonials(ctx context.Context, q domain.ListQuery) (*domain.Page[*domain.Testimonial], error) {
	f.lastQuery = q
	return f.testimonials, f.err
}

func (f *fakeQueryService) GetTestimonial(ctx context.Context, id int64) (*domain.Testimonial, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.testimonial, nil
}

func (f *fakeQueryService) ListPublicTestimonials(ctx context.Context, params domain.PaginationParams) (*domain.Page[domain.PublicTestimonial], error) {
	f.lastParams = params
	return f.public, f.err
}

type fakeStatusService struct {
	lastID     int64
	lastStatus string
	request    *domain.EventRequest
	testimony  *domain.Testimonial
	err        error
}

func (f *fakeStatusService) UpdateEventRequestStatus(ctx context.Context, id int64, status string) (*domain.EventRequest, error) {
	f.lastID, f.lastStatus = id, status
	if f.err != nil {
		return nil, f.err
	}
	return f.request, nil
}

func (f *fakeStatusService) SoftDeleteEventRequest(ctx context.Context, id int64) error {
	f.lastID = id
	return f.err
}

func (f *fakeStatusService) UpdateTestimonialStatus(ctx context.Context, id int64, status string) (*domain.Testimonial, error) {
	f.lastID, f.lastStatus = id, status
	if f.err != nil {
		return nil, f.err
	}
	return f.testimony, nil
}

func (f *fakeStatusService) DeleteTestimonial(ctx context.Context, id int64) error {
	f.lastID = id
	return f.err
}

// serve routes req through a mux so path values are populated.
func serve(pattern string, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, handler)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// decodeEnvelope decodes the response envelope, and its data into data when non-nil.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data any) helpers.APIResponse {
	t.Helper()
	var raw struct {
		Data   json.RawMessage     `json:"data"`
		Error  *helpers.APIError   `json:"error"`
		Errors []domain.FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	if data != nil && len(raw.Data) > 0 && string(raw.Data) != "null" {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return helpers.APIResponse{Error: raw.Error, Errors: raw.Errors}
}
