package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"eventbooking/internal/delivery/http/controllers"
	"eventbooking/internal/delivery/http/middleware"
	"eventbooking/internal/domain"
)

// RouterDeps holds everything NewRouter wires into the mux.
type RouterDeps struct {
	Logger         *slog.Logger
	Verifier       domain.TokenVerifier
	AllowedOrigins []string
	Gatherer       prometheus.Gatherer

	Auth         *controllers.AuthController
	EventRequest *controllers.EventRequestController
	Testimonial  *controllers.TestimonialController
	Dashboard    *controllers.DashboardController
	Health       *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes and wraps it
// in the middleware chain: CORS, panic recovery, request logging, optional
// authentication and per-route metrics.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()
	admin := middleware.RequireAdmin(d.Verifier, d.Logger)

	// Public
	mux.HandleFunc("POST /api/requests", d.EventRequest.Submit)
	mux.HandleFunc("POST /api/testimonials", d.Testimonial.Submit)
	mux.HandleFunc("GET /api/testimonials", d.Testimonial.ListPublic)

	// Auth
	mux.HandleFunc("POST /api/auth/login", d.Auth.Login)

	// Admin
	mux.HandleFunc("GET /api/admin/requests", admin(d.EventRequest.List))
	mux.HandleFunc("GET /api/admin/requests/{id}", admin(d.EventRequest.Get))
	mux.HandleFunc("PATCH /api/admin/requests/{id}", admin(d.EventRequest.UpdateStatus))
	mux.HandleFunc("DELETE /api/admin/requests/{id}", admin(d.EventRequest.Delete))
	mux.HandleFunc("GET /api/admin/testimonials", admin(d.Testimonial.List))
	mux.HandleFunc("GET /api/admin/testimonials/{id}", admin(d.Testimonial.Get))
	mux.HandleFunc("PATCH /api/admin/testimonials/{id}", admin(d.Testimonial.UpdateStatus))
	mux.HandleFunc("DELETE /api/admin/testimonials/{id}", admin(d.Testimonial.Delete))
	mux.HandleFunc("GET /api/admin/dashboard/summary", admin(d.Dashboard.Summary))

	// Ops
	mux.HandleFunc("GET /health", d.Health.Health)
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var h http.Handler = middleware.Metrics(mux)
	h = middleware.Authenticate(d.Verifier, h)
	h = middleware.LoggingMiddleware(d.Logger, h)
	h = middleware.Recover(d.Logger, h)
	return middleware.CORS(d.AllowedOrigins, h)
}
