package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/medassist/internal/audit"
	"github.com/BruksfildServices01/medassist/internal/config"
	dbpkg "github.com/BruksfildServices01/medassist/internal/db"
	"github.com/BruksfildServices01/medassist/internal/llm"
	"github.com/BruksfildServices01/medassist/internal/logging"
	"github.com/BruksfildServices01/medassist/internal/metrics"
	"github.com/BruksfildServices01/medassist/internal/middleware"
	"github.com/BruksfildServices01/medassist/internal/routes"
	"github.com/BruksfildServices01/medassist/internal/speech"
	"github.com/BruksfildServices01/medassist/internal/storage"
	"github.com/BruksfildServices01/medassist/internal/timezone"
	"github.com/BruksfildServices01/medassist/internal/validators"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if !timezone.IsValid(cfg.Timezone) {
		logger.Warn("invalid timezone, falling back", zap.String("timezone", cfg.Timezone))
	}

	if err := validators.Register(); err != nil {
		logger.Fatal("failed to register validators", zap.Error(err))
	}

	db := dbpkg.NewDB(cfg, logger)

	// ======================================================
	// AUDIT
	// ======================================================
	auditDispatcher := audit.NewDispatcher(audit.New(db), logger.Named("audit"))
	defer auditDispatcher.Close()

	// ======================================================
	// GENERATIVE BACKEND
	// ======================================================
	deps := routes.Dependencies{
		DB:          db,
		Config:      cfg,
		Logger:      logger,
		Now:         timezone.Clock(cfg.Timezone),
		Audit:       auditDispatcher,
		ChatMetrics: metrics.NewChatMetrics(nil),
		HTTPMetrics: metrics.NewHTTPMetrics(nil),
	}

	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiBackend(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Fatal("failed to create gemini backend", zap.Error(err))
		}
		defer gemini.Close()

		deps.Backend = gemini
		deps.Transcriber = speech.NewGeminiTranscriber(gemini)
		logger.Info("gemini backend ready", zap.String("model", cfg.GeminiModel))
	} else {
		logger.Warn("GEMINI_API_KEY not set, chat replies fall back to static answers")
	}

	// ======================================================
	// RATE LIMITING
	// ======================================================
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis unreachable, rate limiter will fail open", zap.Error(err))
		}
		cancel()

		deps.Limiter = middleware.NewRedisLimiter(rdb, cfg.ChatRateLimit, cfg.ChatRateWindow)
	} else {
		deps.Limiter = middleware.NewLocalLimiter(cfg.ChatRateLimit, cfg.ChatRateWindow)
	}

	// ======================================================
	// AUDIO ARCHIVE
	// ======================================================
	if client := storage.NewS3Client(storage.S3Config{
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		Endpoint:        cfg.S3Endpoint,
	}); client != nil && cfg.AudioBucket != "" {
		deps.Archive = storage.NewAudioArchive(client, cfg.AudioBucket, logger.Named("storage"))
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
