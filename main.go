package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"aiadoption/internal/auth"
	"aiadoption/internal/config"
	"aiadoption/internal/dashboard"
	"aiadoption/internal/http/handlers"
	"aiadoption/internal/http/router"
	"aiadoption/internal/logger"
	"aiadoption/internal/repo"
	"aiadoption/internal/view"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	log := logger.New(cfg.Log)
	if envErr != nil {
		log.Info("no .env file found, using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(ctx context.Context, cfg config.Config, log *logrus.Logger) error {
	pool, err := repo.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := repo.NewStore(pool)

	sessions := auth.NewSessions(auth.SessionOptions{
		Secret: cfg.Auth.SessionSecret,
		MaxAge: int(cfg.Auth.SessionMaxAge.Seconds()),
		Secure: cfg.Auth.SecureCookies,
	})
	identity := auth.Chain{sessions}
	if cfg.Auth.JWTSecret != "" {
		identity = append(identity, auth.NewTokens(cfg.Auth.JWTSecret))
	}

	renderer, err := view.New()
	if err != nil {
		return err
	}

	h := handlers.New(handlers.Deps{
		Log:       log,
		Identity:  identity,
		Sessions:  sessions,
		Auth:      auth.NewAuthenticator(store),
		Dashboard: dashboard.NewService(store),
		Surveys:   store,
		DB:        pool,
		View:      renderer,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router.New(log, sessions, identity, h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"port": cfg.App.Port,
			"env":  cfg.App.Environment,
		}).Info("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
