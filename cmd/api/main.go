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
	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"

	"github.com/BruksfildServices01/salongo/internal/audit"
	"github.com/BruksfildServices01/salongo/internal/config"
	dbpkg "github.com/BruksfildServices01/salongo/internal/db"
	"github.com/BruksfildServices01/salongo/internal/logger"
	"github.com/BruksfildServices01/salongo/internal/media"
	"github.com/BruksfildServices01/salongo/internal/metrics"
	"github.com/BruksfildServices01/salongo/internal/otp"
	"github.com/BruksfildServices01/salongo/internal/routes"
	"github.com/BruksfildServices01/salongo/internal/session"
	"github.com/BruksfildServices01/salongo/internal/validators"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.New(logger.Config{})
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	validators.Register()

	// ======================================================
	// STORAGE
	// ======================================================
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	if err := dbpkg.Migrate(db); err != nil {
		return err
	}

	// ======================================================
	// AUDIT
	// ======================================================
	auditLogger := audit.New(db)
	dispatcher := audit.NewDispatcher(auditLogger, log)
	defer dispatcher.Close()

	cleanup, err := audit.NewCleanupJob(auditLogger, cfg.AuditRetentionDays, log).Schedule(cfg.AuditCleanupCron)
	if err != nil {
		return err
	}
	cleanup.Start()
	defer cleanup.Stop()

	// ======================================================
	// OTP
	// ======================================================
	store, err := otpStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	var sender otp.Sender = otp.NewLogSender(log)
	if cfg.OTPSender == "twilio" {
		client := twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
		sender = otp.NewTwilioSender(client.Api, cfg.TwilioFromNumber, cfg.SMSCountryPrefix, log)
	}
	log.Info().Str("store", cfg.OTPStore).Str("sender", sender.Name()).Msg("otp configured")

	// ======================================================
	// MEDIA
	// ======================================================
	var uploader media.Uploader
	if cfg.MediaEnabled() {
		uploader = media.NewPipeline(
			media.NewProcessor(cfg.MediaMaxWidth),
			media.NewS3Store(media.S3Config{
				Bucket:        cfg.S3Bucket,
				Region:        cfg.S3Region,
				Endpoint:      cfg.S3Endpoint,
				AccessKey:     cfg.S3AccessKey,
				SecretKey:     cfg.S3SecretKey,
				PublicBaseURL: cfg.S3PublicBaseURL,
			}),
		)
	} else {
		log.Warn().Msg("S3_BUCKET not set, photo uploads disabled")
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.LogFormat == "json" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		DB:          db,
		Config:      cfg,
		Log:         log,
		Sessions:    session.NewManager(cfg.JWTSecret, cfg.SessionTTL, cfg.CookieSecure),
		OTPStore:    store,
		OTPSender:   sender,
		Metrics:     metrics.New(),
		Audit:       dispatcher,
		AuditLogger: auditLogger,
		Uploader:    uploader,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func otpStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (otp.Store, error) {
	if cfg.OTPStore != "redis" {
		return otp.NewMemoryStore(time.Minute), nil
	}

	client, err := otp.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	log.Info().Msg("redis connected")
	return otp.NewRedisStore(client), nil
}
