package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"taskmanager/internal/config"
	"taskmanager/internal/handlers"
	"taskmanager/internal/logger"
	mw "taskmanager/internal/middleware"
	"taskmanager/internal/models"
	"taskmanager/internal/service"
	"taskmanager/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("taskmanager", "info").WithError(err).Fatal("failed to load config")
	}
	log := logger.New("taskmanager", cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.Config, log *logrus.Entry) error {
	if cfg.Database.Driver == store.DriverSQLite {
		// Ensure data directory exists
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	s, err := store.Open(cfg.Database.Driver, cfg.Database.ConnString())
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer s.Close()

	ctx := context.Background()

	userID := models.DefaultUserID
	if cfg.Owner.Password != "" {
		owner, err := store.EnsureOwner(ctx, s, cfg.Owner.Username, cfg.Owner.Password, models.DefaultBcryptCost)
		if err != nil {
			return fmt.Errorf("failed to ensure owner account: %w", err)
		}
		userID = owner.ID
		log.WithField("user_id", userID).Info("owner account ready")
	}

	if cfg.SeedDemoData {
		n, err := store.SeedDemoTasks(ctx, s, userID, time.Now())
		if err != nil {
			return fmt.Errorf("failed to seed demo tasks: %w", err)
		}
		if n > 0 {
			log.WithField("count", n).Info("seeded demo tasks")
		}
	}

	tasks := service.NewTaskService(s, log.WithField("component", "tasks"), userID)
	h := handlers.New(tasks, log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := mw.NewMetrics(reg)

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(mw.Logging(log))
	r.Use(metrics.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/healthz", handlers.Health(s))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	h.Routes(r)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("server stopped")
	return nil
}
