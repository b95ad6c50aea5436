package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shiftly/shiftly-backend/internal/config"
	"github.com/shiftly/shiftly-backend/internal/handler"
	"github.com/shiftly/shiftly-backend/internal/middleware"
	"github.com/shiftly/shiftly-backend/internal/repository/postgres"
	"github.com/shiftly/shiftly-backend/internal/repository/storage"
	"github.com/shiftly/shiftly-backend/internal/service"
	"github.com/shiftly/shiftly-backend/internal/token"
	"github.com/shiftly/shiftly-backend/internal/websocket"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	workspaceRepo := postgres.NewWorkspaceRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)
	sessionRepo := postgres.NewWorkSessionRepository(pool)
	tipPoolRepo := postgres.NewTipPoolRepository(pool)
	scheduleRepo := postgres.NewWorkScheduleRepository(pool)

	// Token manager for signing and parsing access tokens
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, membershipRepo, tokens)
	workspaceService := service.NewWorkspaceService(workspaceRepo, membershipRepo)
	sessionService := service.NewWorkSessionService(sessionRepo, membershipRepo, tipPoolRepo)
	tipPoolService := service.NewTipPoolService(tipPoolRepo)
	scheduleService := service.NewScheduleService(scheduleRepo, membershipRepo)
	reportingService := service.NewReportingService(sessionRepo, tipPoolRepo)

	// Image storage is optional; without a bucket uploads are disabled
	var imageService *service.ImageService
	if cfg.S3.Bucket != "" {
		store, err := storage.NewS3ImageRepository(context.Background(), cfg.S3)
		if err != nil {
			log.Warn().Err(err).Msg("Image storage unavailable, uploads disabled")
		} else {
			imageService = service.NewImageService(store, workspaceRepo)
			log.Info().Str("bucket", cfg.S3.Bucket).Msg("Image storage ready")
		}
	}

	// WebSocket hub for live workspace events
	hub := websocket.NewHub()
	validator := websocket.NewTokenValidator(tokens, membershipRepo)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(tokens, membershipRepo)
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	// Initialize handlers
	handlers := handler.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Workspace:   handler.NewWorkspaceHandler(workspaceService),
		Image:       handler.NewImageHandler(imageService),
		WorkSession: handler.NewWorkSessionHandler(sessionService, hub),
		Admin:       handler.NewAdminHandler(authService, sessionService, hub),
		TipPool:     handler.NewTipPoolHandler(tipPoolService, hub),
		History:     handler.NewHistoryHandler(reportingService),
		Schedule:    handler.NewScheduleHandler(scheduleService, hub),
		WebSocket:   handler.NewWebSocketHandler(hub, validator, cfg.CORSOrigins),
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, rateLimiter, handlers)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
