package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rogerio-castellano/pos-dashboard/internal/app"
	"github.com/rogerio-castellano/pos-dashboard/internal/config"
	"github.com/rogerio-castellano/pos-dashboard/internal/http/handlers"
	rl "github.com/rogerio-castellano/pos-dashboard/internal/http/rate_limiter"
	"github.com/rogerio-castellano/pos-dashboard/internal/http/router"
	"github.com/rogerio-castellano/pos-dashboard/internal/logging"
)

// @title POS Dashboard API
// @version 1.0
// @description Imports point-of-sale product exports (CSV, XLSX, XLS) and serves the product catalog and dashboard metrics.
// @host localhost:8080
// @BasePath /
func main() {
	configFile := flag.String("config", "", "path to a config file (defaults to ./config.yaml when present)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		logrus.Fatal(err)
	}
	logger := logging.New(cfg)
	log := logrus.NewEntry(logger).WithField("env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("could not start")
	}
	defer a.Close()

	limiter := rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.StartVisitorCleanupLoop(ctx, time.Minute, 3*time.Minute)

	s := handlers.NewServer(a.Products, a.Metrics, a.Importer, log, a.ServerOptions()...)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router.NewRouter(s, limiter, log),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
