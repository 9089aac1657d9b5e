package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/medassist/internal/audit"
	"github.com/BruksfildServices01/medassist/internal/chat"
	"github.com/BruksfildServices01/medassist/internal/config"
	"github.com/BruksfildServices01/medassist/internal/handlers"
	infraRepo "github.com/BruksfildServices01/medassist/internal/infra/repository"
	"github.com/BruksfildServices01/medassist/internal/llm"
	"github.com/BruksfildServices01/medassist/internal/metrics"
	"github.com/BruksfildServices01/medassist/internal/middleware"
	"github.com/BruksfildServices01/medassist/internal/speech"
	"github.com/BruksfildServices01/medassist/internal/storage"
	ucAppointment "github.com/BruksfildServices01/medassist/internal/usecase/appointment"
)

// Dependencies are the long-lived clients main owns and closes.
type Dependencies struct {
	DB     *gorm.DB
	Config *config.Config
	Logger *zap.Logger
	Now    func() time.Time

	Audit       *audit.Dispatcher
	Backend     llm.Backend
	Transcriber speech.Transcriber
	Archive     *storage.AudioArchive
	Limiter     middleware.Limiter

	ChatMetrics *metrics.ChatMetrics
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
}

func RegisterRoutes(r *gin.Engine, d Dependencies) {
	cfg := d.Config
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.HTTPMetrics(d.HTTPMetrics))

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	appointmentStore := ucAppointment.NewStore(appointmentRepo, d.Audit, d.Now)

	engine := chat.NewEngine(
		appointmentStore,
		d.Backend,
		d.Now,
		chat.Config{
			StoreTimeout:   cfg.StoreTimeout,
			BackendTimeout: cfg.BackendTimeout,
		},
		d.Logger.Named("chat"),
		d.ChatMetrics,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg)
	meHandler := handlers.NewMeHandler(d.DB)
	appointmentHandler := handlers.NewAppointmentHandler(d.DB, appointmentStore)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)
	chatHandler := handlers.NewChatHandler(engine)
	transcribeHandler := handlers.NewTranscribeHandler(
		d.Transcriber,
		engine,
		d.Archive,
		cfg.MaxAudioBytes,
		cfg.BackendTimeout,
		d.Logger.Named("transcribe"),
	)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)

			// ------------------------------
			// CHAT
			// ------------------------------
			limited := secured.Group("/")
			if d.Limiter != nil {
				limited.Use(middleware.RateLimit(d.Limiter, "chat", d.Logger))
			}
			limited.POST("/chat", chatHandler.Send)
			limited.POST("/transcribe", transcribeHandler.Transcribe)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.List)
			secured.PATCH("/me/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
