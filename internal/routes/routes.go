package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-assistant/internal/audit"
	"github.com/BruksfildServices01/booking-assistant/internal/config"
	"github.com/BruksfildServices01/booking-assistant/internal/handlers"
	"github.com/BruksfildServices01/booking-assistant/internal/infra/llm"
	"github.com/BruksfildServices01/booking-assistant/internal/infra/mailer"
	"github.com/BruksfildServices01/booking-assistant/internal/infra/memory"
	"github.com/BruksfildServices01/booking-assistant/internal/infra/queue"
	infraRepo "github.com/BruksfildServices01/booking-assistant/internal/infra/repository"
	"github.com/BruksfildServices01/booking-assistant/internal/infra/storage"
	"github.com/BruksfildServices01/booking-assistant/internal/infra/websearch"
	"github.com/BruksfildServices01/booking-assistant/internal/middleware"
	"github.com/BruksfildServices01/booking-assistant/internal/rag"
	ucBooking "github.com/BruksfildServices01/booking-assistant/internal/usecase/booking"
	ucChat "github.com/BruksfildServices01/booking-assistant/internal/usecase/chat"
	ucDocument "github.com/BruksfildServices01/booking-assistant/internal/usecase/document"
)

// Deps carries the long-lived infrastructure built in main. EmailQueue is nil
// when Redis is not configured.
type Deps struct {
	DB         *gorm.DB
	Config     *config.Config
	Log        *zap.Logger
	Audit      *audit.Dispatcher
	Memory     memory.Store
	LLM        *llm.GeminiClient
	RAG        *rag.Pipeline
	Storage    storage.Store
	Mailer     *mailer.SMTPMailer
	Search     *websearch.DuckDuckGo
	EmailQueue *queue.EmailQueue
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.Recovery(d.Log),
		middleware.RequestLogger(d.Log),
		middleware.CORSMiddleware(cfg.AllowedOrigins()),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)

	// ======================================================
	// USE CASES - BOOKINGS
	// ======================================================
	confirmBookingUC := ucBooking.NewConfirmBooking(
		bookingRepo,
		d.Audit,
		ucBooking.Event{
			Name:      cfg.EventName,
			LeadDays:  cfg.EventLeadDays,
			StartTime: cfg.EventStartTime,
			Timezone:  cfg.Timezone,
		},
	)

	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, d.Audit, cfg.Timezone)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo)
	getStatsUC := ucBooking.NewGetStats(bookingRepo)

	// ======================================================
	// USE CASES - CHAT
	// ======================================================
	chatDeps := ucChat.Deps{
		Store:   d.Memory,
		Confirm: confirmBookingUC,
		LLM:     d.LLM,
		RAG:     d.RAG,
		Search:  d.Search,
		Mailer:  d.Mailer,
	}
	if d.EmailQueue != nil {
		chatDeps.Queue = d.EmailQueue
	}

	processMessageUC := ucChat.NewProcessMessage(
		chatDeps,
		ucChat.Options{
			EventName:       cfg.EventName,
			MaxMessages:     cfg.MaxMemoryMessages,
			ContextMessages: cfg.MemoryContextMessages,
		},
		d.Log,
	)

	resetUC := ucChat.NewResetConversation(d.Memory)
	historyUC := ucChat.NewGetHistory(d.Memory)

	// ======================================================
	// USE CASES - DOCUMENTS
	// ======================================================
	ingestPDFUC := ucDocument.NewIngestPDF(d.DB, d.Storage, d.RAG, d.Audit, d.Log)
	listDocumentsUC := ucDocument.NewListDocuments(d.DB)

	// ======================================================
	// HANDLERS
	// ======================================================
	chatHandler := handlers.NewChatHandler(processMessageUC, resetUC, historyUC)
	documentHandler := handlers.NewDocumentHandler(ingestPDFUC, listDocumentsUC)
	adminHandler := handlers.NewAdminHandler(listBookingsUC, getStatsUC, cancelBookingUC, cfg.Timezone)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)
	// an empty hash keeps login closed along with the admin group
	adminCreds := handlers.AdminCredentials{
		Email:     cfg.AdminEmail,
		JWTSecret: cfg.JWTSecret,
	}
	if cfg.AdminEnabled() {
		adminCreds.PasswordHash = cfg.AdminPasswordHash
	} else {
		d.Log.Warn("admin API disabled: set ADMIN_PASSWORD_HASH and a non-default JWT_SECRET")
	}
	authHandler := handlers.NewAuthHandler(adminCreds)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// CHAT
		// ------------------------------
		chat := api.Group("/chat")
		chat.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMin, d.Log))
		{
			chat.POST("/sessions", chatHandler.CreateSession)
			chat.POST("/sessions/:id/messages", chatHandler.SendMessage)
			chat.GET("/sessions/:id/messages", chatHandler.History)
			chat.DELETE("/sessions/:id", chatHandler.Reset)
		}

		// ------------------------------
		// DOCUMENTS
		// ------------------------------
		api.POST("/documents", documentHandler.Upload)
		api.GET("/documents", documentHandler.List)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/admin/login", authHandler.Login)

		// ------------------------------
		// ADMIN (JWT)
		// ------------------------------
		secured := api.Group("/admin")
		secured.Use(
			middleware.AdminGate(cfg.AdminEnabled()),
			middleware.AuthMiddleware(cfg.JWTSecret),
		)
		{
			secured.GET("/bookings", adminHandler.ListBookings)
			secured.GET("/bookings/stats", adminHandler.Stats)
			secured.PATCH("/bookings/:id/cancel", adminHandler.Cancel)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
