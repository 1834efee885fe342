package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"eventbooking/config"
	"eventbooking/internal/adapters/auth"
	"eventbooking/internal/adapters/email"
	"eventbooking/internal/adapters/ratelimit"
	deliveryhttp "eventbooking/internal/delivery/http"
	"eventbooking/internal/delivery/http/controllers"
	"eventbooking/internal/domain"
	"eventbooking/internal/metrics"
	"eventbooking/internal/repository/postgres"
	"eventbooking/internal/services"
	"eventbooking/internal/validation"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(commandContext(cmd), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

// setup loads configuration, builds the logger and opens the database.
func setup(ctx context.Context) (*config.Config, *slog.Logger, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "load config")
	}
	logger := config.NewLogger(os.Stdout, cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, db, nil
}

func serve(ctx context.Context, migrate bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, logger, db, err := setup(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if migrate {
		if err := postgres.MigrateUp(db); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	metrics.Register(prometheus.DefaultRegisterer)

	// Repositories
	eventRepo := postgres.NewEventRequestRepository(db)
	testimonialRepo := postgres.NewTestimonialRepository(db)
	adminRepo := postgres.NewAdminRepository(db)

	// Adapters
	jwt := auth.NewJWT(cfg.JWTSecret)
	limiter := ratelimit.NewFixedWindow(ratelimit.DefaultCleanupInterval)
	notifier, err := newNotifier(cfg, logger)
	if err != nil {
		return err
	}

	// Services
	submissions := services.NewSubmissionService(eventRepo, testimonialRepo, limiter, validation.New(),
		notifier, cfg.NotifyEmail, cfg.TestimonialPolicy, cfg.RequestTimeout, logger)
	queries := services.NewQueryService(eventRepo, testimonialRepo, cfg.RequestTimeout)
	statuses := services.NewStatusService(eventRepo, testimonialRepo, cfg.RequestTimeout)
	dashboard := services.NewDashboardService(eventRepo, testimonialRepo, cfg.RequestTimeout)
	authService := services.NewAuthService(adminRepo, auth.NewBcryptHasher(auth.DefaultBcryptCost), jwt, cfg.JWTExpiry)

	router := deliveryhttp.NewRouter(deliveryhttp.RouterDeps{
		Logger:         logger,
		Verifier:       jwt,
		AllowedOrigins: cfg.AllowedOrigins,
		Gatherer:       prometheus.DefaultGatherer,
		Auth:           controllers.NewAuthController(logger, authService),
		EventRequest:   controllers.NewEventRequestController(logger, submissions, queries, statuses, cfg.TrustedProxyCount),
		Testimonial:    controllers.NewTestimonialController(logger, submissions, queries, statuses, cfg.TrustedProxyCount),
		Dashboard:      controllers.NewDashboardController(logger, dashboard),
		Health:         controllers.NewHealthController(logger, db),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "http server")
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	if err := submissions.Wait(shutdownCtx); err != nil {
		logger.Warn("owner notifications still pending at shutdown", "err", err)
	}
	return nil
}

// newNotifier returns nil when no owner inbox is configured.
func newNotifier(cfg *config.Config, logger *slog.Logger) (domain.NotificationService, error) {
	if cfg.NotifyEmail == "" {
		logger.Warn("NOTIFY_EMAIL not set, owner notifications are disabled")
		return nil, nil
	}
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return nil, errors.Wrap(err, "create mailer")
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return nil, errors.Wrap(err, "load email templates")
	}
	return services.NewNotificationService(mailer, renderer, logger), nil
}
