package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/marketplace/internal/audit"
	"github.com/BruksfildServices01/marketplace/internal/config"
	dbpkg "github.com/BruksfildServices01/marketplace/internal/db"
	"github.com/BruksfildServices01/marketplace/internal/infra/blob"
	"github.com/BruksfildServices01/marketplace/internal/infra/imaging"
	"github.com/BruksfildServices01/marketplace/internal/infra/payment"
	infraRepo "github.com/BruksfildServices01/marketplace/internal/infra/repository"
	"github.com/BruksfildServices01/marketplace/internal/logging"
	"github.com/BruksfildServices01/marketplace/internal/middleware"
	"github.com/BruksfildServices01/marketplace/internal/routes"
	"github.com/BruksfildServices01/marketplace/internal/session"
	"github.com/BruksfildServices01/marketplace/internal/timezone"
	ucAccount "github.com/BruksfildServices01/marketplace/internal/usecase/account"
)

func main() {

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	db, err := dbpkg.Open(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer dbpkg.Close(db)

	if err := dbpkg.Prepare(db, cfg, log); err != nil {
		log.WithError(err).Fatal("failed to prepare schema")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------------------------------------
	// Bootstrap administrator
	// --------------------------------------------------
	if cfg.RootEmail != "" && cfg.RootPassword != "" {
		created, err := ucAccount.NewSeedRoot(infraRepo.NewUserGormRepository(db)).
			Execute(ctx, cfg.RootEmail, cfg.RootPassword)
		if err != nil {
			log.WithError(err).Fatal("failed to seed root")
		}
		if created {
			log.WithField("email", cfg.RootEmail).Info("root administrator created")
		}
	}

	// --------------------------------------------------
	// Collaborators
	// --------------------------------------------------
	store, err := newSessionStore(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to create session store")
	}
	sessions := session.NewManager(store, cfg.SessionSecret, cfg.SessionTTL, session.CookieOptions{
		Name:   cfg.CookieName,
		Secure: cfg.CookieSecure,
	})

	uploader, err := newUploader(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to create uploader")
	}

	var checkout payment.Checkout
	if mp, err := payment.NewMercadoPago(cfg.MercadoPagoToken, cfg.CheckoutBackURL); err == nil {
		checkout = mp
	} else if !errors.Is(err, payment.ErrUnavailable) {
		log.WithError(err).Fatal("failed to configure checkout")
	} else {
		log.Info("checkout disabled: MERCADOPAGO_ACCESS_TOKEN not set")
	}

	dispatcher := audit.NewDispatcher(audit.New(db), log)

	limiter := middleware.NewRateLimiter(cfg.LoginRatePerMin)
	limiter.StartCleanup(ctx, 5*time.Minute, 10*time.Minute)

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics())

	routes.RegisterRoutes(r, db, cfg, routes.Infra{
		Log:      log,
		Sessions: sessions,
		Audit:    dispatcher,
		Images:   imaging.NewNormalizer(cfg.ImageMaxSide, cfg.ImageQuality),
		Uploader: uploader,
		Checkout: checkout,
		Clock:    timezone.NewClock(cfg.Timezone),
		Limiter:  limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Infof("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}

	dispatcher.Close()
}

func newSessionStore(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (session.Store, error) {
	switch cfg.SessionStore {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, err
		}
		return session.NewRedisStore(rdb), nil

	default:
		store := session.NewMemoryStore()
		go sweepSessions(ctx, store, log)
		return store, nil
	}
}

func sweepSessions(ctx context.Context, store *session.MemoryStore, log logrus.FieldLogger) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Sweep(); n > 0 {
				log.WithField("expired", n).Debug("sessions swept")
			}
		}
	}
}

func newUploader(cfg *config.Config) (blob.Uploader, error) {
	if cfg.BlobDriver == "s3" {
		return blob.NewS3Uploader(blob.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		}), nil
	}
	return blob.NewLocalUploader(cfg.UploadDir, cfg.PublicBaseURL+"/uploads")
}
