package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/shiftly/shiftly-backend/internal/domain"
	"github.com/shiftly/shiftly-backend/internal/middleware"
)

// Handlers groups every HTTP handler for route registration
type Handlers struct {
	Auth        *AuthHandler
	Workspace   *WorkspaceHandler
	Image       *ImageHandler
	WorkSession *WorkSessionHandler
	Admin       *AdminHandler
	TipPool     *TipPoolHandler
	History     *HistoryHandler
	Schedule    *ScheduleHandler
	WebSocket   *WebSocketHandler
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, h Handlers) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes (public, rate limited per client IP)
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimitMiddleware(rateLimiter))
	auth.POST("/register", h.Auth.Register)
	auth.POST("/register-admin", h.Auth.RegisterAdmin)
	auth.POST("/login", h.Auth.Login)

	// User routes (protected)
	users := api.Group("/users")
	users.Use(authMiddleware.Authenticate())
	users.GET("/me", h.Auth.Me)

	// Workspace routes (protected)
	workspaces := api.Group("/workspaces")
	workspaces.Use(authMiddleware.Authenticate())
	workspaces.POST("", h.Workspace.Create, authMiddleware.RequireRoles(domain.RoleAdmin))
	workspaces.GET("", h.Workspace.List)

	// Routes scoped to a single workspace the caller belongs to
	workspace := workspaces.Group("/:workspaceId")
	workspace.Use(authMiddleware.RequireMembership())
	workspace.PATCH("", h.Workspace.Rename, authMiddleware.RequireRoles(domain.RoleAdmin))
	workspace.DELETE("", h.Workspace.Delete, authMiddleware.RequireRoles(domain.RoleAdmin))
	workspace.POST("/image", h.Image.Upload, authMiddleware.RequireRoles(domain.RoleAdmin))
	workspace.GET("/image", h.Image.ImageURL)

	// Work session routes (workspace members)
	sessions := workspace.Group("/work-sessions")
	sessions.POST("/check-in", h.WorkSession.CheckIn)
	sessions.POST("/check-out", h.WorkSession.CheckOut)
	sessions.GET("/today", h.WorkSession.Today)
	sessions.GET("/mine", h.WorkSession.Mine)
	sessions.GET("/summary", h.WorkSession.Summary)

	// Schedule routes. Planning is admin work; members read their own
	// schedules and confirm or decline them.
	schedules := workspace.Group("/schedules")
	schedules.GET("", h.Schedule.List, authMiddleware.RequireRoles(domain.RoleAdmin))
	schedules.GET("/my", h.Schedule.ListMine)
	schedules.POST("", h.Schedule.Create, authMiddleware.RequireRoles(domain.RoleAdmin))
	schedules.PATCH("/:id", h.Schedule.Update, authMiddleware.RequireRoles(domain.RoleAdmin))
	schedules.PATCH("/:id/status", h.Schedule.UpdateStatus)
	schedules.DELETE("/:id", h.Schedule.Delete, authMiddleware.RequireRoles(domain.RoleAdmin))

	// Tip pool routes (protected; creation and listing are admin only)
	tipPools := api.Group("/tip-pools")
	tipPools.Use(authMiddleware.Authenticate())
	tipPools.GET("", h.TipPool.List, authMiddleware.RequireRoles(domain.RoleAdmin))
	tipPools.POST("", h.TipPool.Create, authMiddleware.RequireRoles(domain.RoleAdmin))
	tipPools.GET("/my-daily-tips", h.TipPool.MyDailyTips)
	tipPools.GET("/summary", h.TipPool.Summary)

	// History routes (protected)
	history := api.Group("/history")
	history.Use(authMiddleware.Authenticate())
	history.GET("/weekly", h.History.Weekly)
	history.GET("/monthly", h.History.Monthly)
	history.GET("/monthly/:year/:month/weeks", h.History.MonthWeeks)

	// Admin routes (protected, admin role)
	admin := api.Group("/admin")
	admin.Use(authMiddleware.Authenticate(), authMiddleware.RequireRoles(domain.RoleAdmin))
	admin.GET("/working-users", h.Admin.WorkingUsers)
	admin.GET("/work-sessions", h.Admin.AllSessions)
	admin.PATCH("/work-sessions/:id/shift", h.Admin.AssignShift)
	admin.PATCH("/users/:id/active", h.Admin.SetUserActive)
	admin.POST("/workspaces/:workspaceId/employees", h.Admin.ProvisionEmployee)

	// WebSocket endpoint (token validated via query parameter)
	e.GET("/ws/:workspaceId", h.WebSocket.HandleWS)
}
