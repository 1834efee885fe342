package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/domain"
)

type fakeDashboardService struct {
	summary *domain.DashboardSummary
	err     error
}

func (f *fakeDashboardService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	return f.summary, f.err
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(ctx context.Context) error { return p.err }

func TestDashboardController_Summary(t *testing.T) {
	svc := &fakeDashboardService{summary: &domain.DashboardSummary{
		Requests: domain.RequestSummary{Total: 3, Completed: 1, Pending: 2, CompletionRate: 33},
	}}
	c := NewDashboardController(testLogger, svc)

	rec := serve("GET /api/admin/dashboard/summary", c.Summary, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.DashboardSummary
	decodeEnvelope(t, rec, &got)
	assert.Equal(t, 33, got.Requests.CompletionRate)

	svc.err = errors.New("timeout")
	rec = serve("GET /api/admin/dashboard/summary", c.Summary, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard/summary", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthController(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
	}{
		{"healthy", nil, http.StatusOK},
		{"database down", errors.New("dial tcp: refused"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewHealthController(testLogger, fakePinger{err: tt.pingErr})
			rec := serve("GET /health", c.Health, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.pingErr != nil {
				env := decodeEnvelope(t, rec, nil)
				require.NotNil(t, env.Error)
				assert.Equal(t, "unavailable", env.Error.Code)
				assert.NotEqual(t, helpers.ErrCodeInternalError, env.Error.Code)
			}
		})
	}
}
