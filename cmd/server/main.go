// Package main runs the event attendance HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/momo-deepdive/backend/config"
	"github.com/momo-deepdive/backend/internal/archive"
	"github.com/momo-deepdive/backend/internal/auth"
	"github.com/momo-deepdive/backend/internal/checkin"
	"github.com/momo-deepdive/backend/internal/events"
	"github.com/momo-deepdive/backend/internal/feedback"
	"github.com/momo-deepdive/backend/internal/knowledge"
	"github.com/momo-deepdive/backend/internal/middleware"
	"github.com/momo-deepdive/backend/internal/roster"
	"github.com/momo-deepdive/backend/internal/rsvps"
	"github.com/momo-deepdive/backend/internal/tickets"
	"github.com/momo-deepdive/backend/pkg/database"
	"github.com/momo-deepdive/backend/pkg/queue"
	"github.com/momo-deepdive/backend/pkg/redis"
	"github.com/momo-deepdive/backend/pkg/response"
	"github.com/momo-deepdive/backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			AssetsBucket:         cfg.AWS.AssetsBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	emailQueue := queue.NewQueue(rdb.Client, logger)

	// Auth
	authRepo := auth.NewRepository(pool)
	verifier := auth.NewGoogleVerifier(cfg.Google.ClientID, time.Duration(cfg.Google.VerifyTimeoutSecs)*time.Second)
	linkStore := auth.NewRedisTokenStore(rdb.Client)
	links := auth.NewMagicLinkService(cfg.JWT.Secret, cfg.Server.BaseURL, linkStore)
	authHandler := auth.NewHandler(authRepo, jwtService, verifier, links, emailQueue, cfg.Admin, logger)

	// Event catalog and registrations
	eventRepo := events.NewRepository(pool)
	rsvpRepo := rsvps.NewRepository(pool)
	rsvpHandler := rsvps.NewHandler(rsvpRepo, eventRepo, authRepo, emailQueue, logger)
	eventHandler := events.NewHandler(eventRepo, rsvpRepo, s3Client, logger)

	// Tickets
	ticketHandler := tickets.NewHandler(rsvpRepo, cfg.Server.BaseURL, logger)

	// Check-in scanner
	scanSvc := checkin.NewService(rsvpRepo)
	scanHub := checkin.NewHub(logger)
	checkinHandler := checkin.NewHandler(scanSvc, scanHub, logger)

	// Roster console; export timestamps follow the venue's timezone
	venueTZ, err := time.LoadLocation("Europe/Vienna")
	if err != nil {
		venueTZ = time.UTC
	}
	rosterHandler := roster.NewHandler(rsvpRepo, venueTZ, logger)

	// Feedback inbox
	feedbackRepo := feedback.NewRepository(pool)
	seenStore := feedback.NewRedisSeenStore(rdb.Client)
	feedbackHandler := feedback.NewHandler(feedbackRepo, seenStore, authRepo, logger)

	// Archive
	archiveRepo := archive.NewRepository(pool)
	gate := archive.NewGate(rsvpRepo)
	archiveHandler := archive.NewHandler(archiveRepo, gate, authRepo, logger)

	// Knowledge-base file shelf
	geminiClient := knowledge.NewClient(cfg.Gemini.APIKey, cfg.Gemini.BaseURL, logger)
	knowledgeHandler := knowledge.NewHandler(geminiClient, logger)

	jwtValidate := func(token string) (uid, role string, err error) {
		claims, err := jwtService.Validate(token)
		if err != nil {
			return "", "", err
		}
		return claims.UID, claims.Role, nil
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Public: event catalog
	router.GET("/events", eventHandler.List)
	router.GET("/events/:id", eventHandler.GetByID)

	// Auth (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/google", authHandler.Google)
		authGroup.POST("/magiclink", authHandler.MagicLink)
		authGroup.POST("/magiclink/complete", authHandler.MagicLinkComplete)
		authGroup.POST("/login", authHandler.Login)
	}

	// Protected API (JWT required)
	api := router.Group("")
	api.Use(middleware.JWT(jwtService))
	{
		api.GET("/auth/me", authHandler.Me)

		// Registration flow
		api.GET("/events/:id/rsvp", rsvpHandler.Resolve)
		api.PUT("/events/:id/rsvp", rsvpHandler.Save)
		api.DELETE("/events/:id/rsvp", rsvpHandler.Cancel)
		api.GET("/events/:id/access", rsvpHandler.Access)

		// Tickets
		api.GET("/events/:id/ticket", ticketHandler.Get)
		api.GET("/events/:id/ticket/qr.png", ticketHandler.QRImage)
		api.GET("/events/:id/ticket/ticket.ics", ticketHandler.ICSFile)

		// Feedback (guest side)
		api.GET("/feedback", feedbackHandler.ListMine)
		api.POST("/feedback", feedbackHandler.Submit)
		api.POST("/feedback/seen", feedbackHandler.MarkSeen)

		// Archive
		api.GET("/archive/access", archiveHandler.Access)
		api.GET("/archive/events/:id/comments", archiveHandler.ListComments)
		api.POST("/archive/events/:id/comments", archiveHandler.CreateComment)

		// Admin console
		admin := api.Group("/admin", middleware.RequireRole("admin"))
		{
			admin.PATCH("/events/:id/capacity", eventHandler.UpdateCapacity)
			admin.POST("/events/:id/assets", eventHandler.UploadAsset)
			admin.DELETE("/events/:id/assets", eventHandler.DeleteAsset)

			admin.GET("/events/:id/roster", rosterHandler.List)
			admin.GET("/events/:id/roster/export", rosterHandler.Export)
			admin.POST("/events/:id/roster", rosterHandler.ManualCreate)
			admin.PUT("/events/:id/roster/:rsvpID", rosterHandler.Update)
			admin.PATCH("/events/:id/roster/:rsvpID/note", rosterHandler.UpdateNote)
			admin.POST("/events/:id/roster/:rsvpID/checkin", rosterHandler.ToggleCheckIn)
			admin.DELETE("/events/:id/roster/:rsvpID", rosterHandler.Delete)

			admin.POST("/events/:id/checkin/scan", checkinHandler.Scan)

			admin.GET("/feedback", feedbackHandler.ListAll)
			admin.GET("/feedback/:feedbackID", feedbackHandler.Get)
			admin.PUT("/feedback/:feedbackID/reply", feedbackHandler.Reply)
			admin.DELETE("/feedback/:feedbackID", feedbackHandler.Delete)

			admin.DELETE("/archive/comments/:commentID", archiveHandler.DeleteComment)

			admin.GET("/knowledge/files", knowledgeHandler.List)
			admin.POST("/knowledge/files", knowledgeHandler.Upload)
			admin.POST("/knowledge/ingest", knowledgeHandler.Ingest)
		}
	}

	// Scanner WebSocket (token in query; no Authorization header on upgrades)
	router.GET("/ws/checkin", checkin.ServeWs(scanHub, scanSvc, logger, jwtValidate))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
