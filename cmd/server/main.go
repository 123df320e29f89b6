package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campuscare-admin/internal/auth"
	"campuscare-admin/internal/config"
	"campuscare-admin/internal/database"
	"campuscare-admin/internal/handlers"
	"campuscare-admin/internal/logging"
	"campuscare-admin/internal/metrics"
	"campuscare-admin/internal/notify"
	"campuscare-admin/internal/reconcile"
	"campuscare-admin/internal/repository"
	"campuscare-admin/internal/store"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	log := logging.New(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Without a database every surface runs on demo data
	var complaints store.Store = store.Disabled{}
	if cfg.StoreEnabled() {
		client, db, err := database.Connect(cfg.MongoURI, cfg.DBName, log)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to MongoDB")
		}
		defer client.Disconnect(context.Background())

		repo := repository.NewComplaintRepo(db, cfg.ComplaintsCollection, cfg.PollInterval, log)

		idxCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := repo.EnsureIndexes(idxCtx); err != nil {
			log.WithError(err).Warn("failed to create complaint indexes")
		}
		cancel()
		complaints = repo
	} else {
		log.Warn("MONGODB_URI not set, serving demo data only")
	}

	checker, err := auth.NewIdentityChecker(cfg.AdminEmail, cfg.AdminPassword, cfg.DemoLogin)
	if err != nil {
		log.WithError(err).Fatal("failed to prepare identity check")
	}
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	m := metrics.New()

	var onStatusChange reconcile.StatusHook
	if cfg.NotifyOnResolve {
		onStatusChange = notify.StatusHook(newNotifier(cfg, log), log)
	}

	newSurface := func() *reconcile.Controller {
		return reconcile.New(complaints, reconcile.Options{
			FallbackTimeout: cfg.FallbackTimeout,
			Logger:          log,
			Metrics:         m,
			OnStatusChange:  onStatusChange,
		})
	}

	surface := newSurface()
	surface.Start(ctx)
	defer surface.Dispose()

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: handlers.NewRouter(handlers.Deps{
			Checker:    checker,
			Tokens:     tokens,
			Surface:    surface,
			NewSurface: newSurface,
			Metrics:    m,
			Log:        log,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}()

	log.WithField("port", cfg.Port).Info("campuscare admin starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server failed")
	}
	log.Info("server stopped")
}

func newNotifier(cfg config.Config, log *logrus.Logger) notify.Notifier {
	if cfg.ResendAPIKey == "" {
		log.Warn("RESEND_API_KEY not set, status notifications are only logged")
		return notify.NewLogNotifier(log)
	}
	return notify.NewResendNotifier(cfg.ResendAPIKey, cfg.FromEmail, log)
}
