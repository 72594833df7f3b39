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

	"github.com/joho/godotenv"
	"github.com/neurotracker/neurotracker-go/internal/app"
	"github.com/neurotracker/neurotracker-go/internal/config"
	"github.com/neurotracker/neurotracker-go/internal/logging"
	"github.com/neurotracker/neurotracker-go/internal/middleware"
	"github.com/neurotracker/neurotracker-go/internal/navigation"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	envErr := godotenv.Load()

	cfg, v, err := config.Load(".")
	if err != nil {
		return err
	}

	log, level, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync()

	if envErr != nil {
		log.Warn("no .env file found, using environment variables")
	}

	config.Watch(v, log, func(next *config.Config) {
		if err := logging.SetLevel(level, next.Logging.Level); err != nil {
			log.Warn("ignoring log level change", zap.Error(err))
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := app.OpenStore(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer closeStore()

	svc, err := app.NewServices(store, cfg.Auth, uint64(time.Now().UnixNano()), log)
	if err != nil {
		return err
	}

	sessions := navigation.NewSessionManager(func() *navigation.Controller {
		return svc.NewController(log)
	}, cfg.Session.IdleTimeout, log)
	if err := sessions.Start(cfg.Session.SweepInterval); err != nil {
		return fmt.Errorf("starting session sweeper: %w", err)
	}
	defer sessions.Stop()

	limiter := middleware.NewLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           app.NewRouter(cfg, svc, sessions, limiter, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return limiter.Cleanup(gctx, time.Minute)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		return err
	}

	log.Info("server stopped")
	return nil
}
