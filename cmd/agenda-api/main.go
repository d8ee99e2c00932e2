package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"agenda/config"
	_ "agenda/docs"
	"agenda/internal/adapters/auth"
	"agenda/internal/adapters/email"
	"agenda/internal/adapters/ical"
	httpdelivery "agenda/internal/delivery/http"
	"agenda/internal/delivery/http/controllers"
	"agenda/internal/delivery/http/middleware"
	"agenda/internal/repository/postgres"
	"agenda/internal/services"
)

// @title Agenda API
// @version 1.0
// @description Calendar events and contacts backing the agenda client.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("db open failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			logger.Error("db ping failed", "err", err)
			os.Exit(1)
		}
		if err := postgres.RunMigrations(ctx, db); err != nil {
			logger.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}

	handler, err := newHandler(cfg, db, logger)
	if err != nil {
		logger.Error("failed to build application", "err", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server crashed", "err", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		_ = srv.Close()
	}
	logger.Info("server stopped")
}

// newHandler wires repositories, services and controllers into the HTTP handler.
func newHandler(cfg *config.Config, db *sql.DB, logger *slog.Logger) (http.Handler, error) {
	// 1) Infrastructure
	eventRepo := postgres.NewEventRepository(db)
	contactRepo := postgres.NewContactRepository(db)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET empty: every authenticated request will be rejected")
	}

	// 2) Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	eventService := services.NewEventService(eventRepo, contactRepo, ical.NewEncoder(""), emailService, cfg.RequestTimeout)
	contactService := services.NewContactService(contactRepo, cfg.RequestTimeout)

	// 3) Transport
	router := httpdelivery.NewRouter(
		controllers.NewEventController(logger, eventService),
		controllers.NewContactController(logger, contactService),
		auth.NewJWTVerifier(cfg.JWTSecret),
		logger,
	)

	var h http.Handler = router
	h = middleware.CORS(cfg.AllowedOrigins, h)
	h = middleware.LoggingMiddleware(logger, h)
	return h, nil
}
