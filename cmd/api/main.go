package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/scholaris/intake-api/internal/config"
	"github.com/scholaris/intake-api/internal/infra/database"
	"github.com/scholaris/intake-api/internal/infra/http/handlers"
	"github.com/scholaris/intake-api/internal/infra/http/middleware"
	"github.com/scholaris/intake-api/internal/infra/integration/slack"
	"github.com/scholaris/intake-api/internal/infra/integration/tracker"
	"github.com/scholaris/intake-api/internal/infra/mail"
	"github.com/scholaris/intake-api/internal/infra/queue"
	"github.com/scholaris/intake-api/internal/infra/ratelimit"
	"github.com/scholaris/intake-api/internal/infra/worker"
	"github.com/scholaris/intake-api/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log.Level)
	defer logger.Sync()

	db, err := database.NewDBConnection(cfg.Database.URL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.Queue.URL)
	if err != nil {
		logger.Fatal("rabbitmq connection failed", zap.Error(err))
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Repositories
	submissionRepo := database.NewSubmissionRepository(db)
	subscriptionRepo := database.NewSubscriptionRepository(db)
	featureRepo := database.NewFeatureRepository(db)
	adminRepo := database.NewAdminRepository(db)
	sessionRepo := database.NewSessionRepository(db)
	tokenRepo := database.NewResetTokenRepository(db)

	limiter := ratelimit.NewPostgresLimiter(db)

	// Outbound services
	mailSender := mail.NewEmailSender(
		cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password,
		cfg.Mail.From, cfg.Mail.InternalTo, cfg.Mail.ResetBaseURL,
	)
	producer := queue.NewProducer(rabbitMQ.Ch)

	notifiers := []usecase.Notifier{
		&mail.ConfirmationNotifier{Sender: mailSender},
		&mail.InternalNotifier{Sender: mailSender},
		producer,
	}
	if cfg.Slack.WebhookURL != "" {
		notifiers = append(notifiers, slack.NewClient(cfg.Slack.WebhookURL))
	}

	// Use cases
	submitUC := usecase.NewSubmitSubmissionUseCase(submissionRepo, limiter, notifiers, logger)
	submitUC.OnNotifierFailure = middleware.RecordNotifierFailure
	newsletterUC := usecase.NewSubscribeNewsletterUseCase(subscriptionRepo, limiter, logger)
	voteUC := usecase.NewCastVoteUseCase(featureRepo, limiter, logger)
	authUC := usecase.NewAdminAuthUseCase(adminRepo, sessionRepo, tokenRepo, mailSender, logger)

	// Background workers
	go worker.NewSweeper(db, logger).Start(ctx)

	if cfg.Tracker.APIKey != "" {
		trackerClient := tracker.NewClient(cfg.Tracker.APIKey, cfg.Tracker.BaseURL)
		leadWorker := queue.NewWorker(rabbitMQ.Ch, trackerClient, logger)
		go func() {
			if err := leadWorker.Start(ctx, queue.QueueName); err != nil && err != context.Canceled {
				logger.Error("lead worker stopped", zap.Error(err))
			}
		}()
	}

	// Handlers
	intakeHandler := handlers.NewIntakeHandler(submitUC, logger)
	newsletterHandler := handlers.NewNewsletterHandler(newsletterUC, logger)
	voteHandler := handlers.NewVoteHandler(voteUC, featureRepo, logger)
	adminHandler := handlers.NewAdminHandler(authUC, submissionRepo, featureRepo, logger)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(cfg.Server.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/contact", intakeHandler.HandleContact)
		r.Post("/sales", intakeHandler.HandleSales)
		r.Post("/demo", intakeHandler.HandleDemo)
		r.Post("/newsletter/subscribe", newsletterHandler.HandleSubscribe)
		r.Post("/newsletter/unsubscribe", newsletterHandler.HandleUnsubscribe)
		r.Post("/votes", voteHandler.HandleVote)
		r.Get("/features", voteHandler.HandleListFeatures)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", adminHandler.HandleLogin)
			r.Post("/logout", adminHandler.HandleLogout)
			r.Post("/password-reset/request", adminHandler.HandleResetRequest)
			r.Post("/password-reset/confirm", adminHandler.HandleResetConfirm)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSession(authUC, handlers.SessionCookieName, logger))
				r.Get("/submissions", adminHandler.HandleListSubmissions)
				r.Get("/submissions/{id}", adminHandler.HandleGetSubmission)
				r.Patch("/submissions/{id}/status", adminHandler.HandleUpdateStatus)
				r.Get("/submissions/export", adminHandler.HandleExportCSV)
				r.Post("/features", adminHandler.HandleCreateFeature)
			})
		})
	})

	r.Get("/healthz", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info("intake api listening", zap.Int("port", cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		cfg.Level = lvl
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}
