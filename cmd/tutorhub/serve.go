// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"tutorhub/internal/cache"
	"tutorhub/internal/courseapi"
	"tutorhub/internal/database"
	"tutorhub/internal/handlers"
	"tutorhub/internal/metrics"
	"tutorhub/internal/middleware"
	"tutorhub/internal/render"
	"tutorhub/internal/router"
	"tutorhub/internal/session"
	"tutorhub/internal/store"
	"tutorhub/web"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}

	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		return err
	}
	defer valkeyClient.Close()

	// Non-development environments sit behind TLS.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// The gate must outlive the slowest create call.
	gateTTL := max(cache.DefaultGateTTL, 2*cfg.CourseAPITimeout)
	gate := cache.NewSubmitGate(valkeyClient, gateTTL)

	renderer, err := render.New()
	if err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}

	m := metrics.New(metrics.WithRegistry(prometheus.DefaultRegisterer))
	api := courseapi.New(cfg.CourseAPIBaseURL, cfg.CourseAPITimeout)
	submissions := store.NewSubmissionStore(db)
	courses := handlers.NewCourses(renderer, api, sessionStore, gate, submissions, m)

	limiter := middleware.NewRateLimiter(cfg.SubmitRateLimit, time.Minute)
	defer limiter.Stop()

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}

	r := router.New(router.Deps{
		Courses:       courses,
		JWTSecret:     []byte(cfg.JWTSecret),
		LoginURL:      cfg.LoginURL,
		SecureCookies: secureCookies,
		SubmitLimiter: limiter,
		Metrics:       promhttp.Handler(),
		Static:        static,
	})

	// WriteTimeout must cover the course API call.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.CourseAPITimeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "course_api", cfg.CourseAPIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	}

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
