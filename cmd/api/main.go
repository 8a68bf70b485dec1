package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/openbanqr/internal/config"
	"github.com/Dan9191/openbanqr/internal/handler"
	"github.com/Dan9191/openbanqr/internal/integrations/rates"
	"github.com/Dan9191/openbanqr/internal/middleware"
	"github.com/Dan9191/openbanqr/internal/notify"
	"github.com/Dan9191/openbanqr/internal/repository"
	"github.com/Dan9191/openbanqr/internal/scheduler"
	"github.com/Dan9191/openbanqr/internal/seed"
	"github.com/Dan9191/openbanqr/internal/service"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Money goes out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize database
	db, err := repository.Open(cfg.DBDriver, cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := repository.NewRepository(db)
	ctx := context.Background()
	if err := repo.Migrate(ctx); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	catalog, err := seed.Default()
	if err != nil {
		logger.Fatalf("Failed to load seed catalog: %v", err)
	}
	seeded, err := seed.Apply(ctx, repo, catalog, time.Now().UTC())
	if err != nil {
		logger.Fatalf("Failed to seed database: %v", err)
	}
	logger.Infof("Seeded %d careers, %d stocks, %d events", seeded.Careers, seeded.Stocks, seeded.Events)

	// Initialize layers
	var opts []service.Option
	if cfg.EmailEnabled() {
		opts = append(opts, service.WithNotifier(notify.NewSender(cfg, logger)))
	}
	if cfg.RatesURL != "" {
		opts = append(opts, service.WithRateSource(rates.NewClient(cfg, logger)))
	}
	svc := service.NewService(repo, logger, cfg, opts...)
	h := handler.NewHandler(svc, logger)

	jobs := scheduler.New(logger)
	if err := jobs.SchedulePriceRefresh(cfg.PriceRefreshSpec, svc); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	jobs.Start()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger), middleware.CORS(cfg.CORSOrigins))
	h.Routes(r, middleware.Auth(cfg.JWTSecret))

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	jobs.Stop(shutdownCtx)
}
