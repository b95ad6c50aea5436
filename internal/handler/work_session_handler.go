package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/shiftly/shiftly-backend/internal/domain"
	"github.com/shiftly/shiftly-backend/internal/middleware"
	"github.com/shiftly/shiftly-backend/internal/service"
	"github.com/shiftly/shiftly-backend/internal/websocket"
)

// WorkSessionHandler handles clock-in/clock-out HTTP requests
type WorkSessionHandler struct {
	sessionService *service.WorkSessionService
	publisher      websocket.EventPublisher
}

// NewWorkSessionHandler creates a new WorkSessionHandler
func NewWorkSessionHandler(sessionService *service.WorkSessionService, publisher websocket.EventPublisher) *WorkSessionHandler {
	return &WorkSessionHandler{sessionService: sessionService, publisher: publisher}
}

// CheckIn handles POST /api/v1/workspaces/:workspaceId/work-sessions/check-in
func (h *WorkSessionHandler) CheckIn(c echo.Context) error {
	userID := middleware.GetUserID(c)
	workspaceID := middleware.GetWorkspaceID(c)

	session, err := h.sessionService.CheckIn(userID, workspaceID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotWorkspaceMember):
			return NewForbiddenError(c, "Not a member of this workspace")
		case errors.Is(err, domain.ErrOpenSessionExists):
			return NewValidationError(c, "There is already an open work session", nil)
		case errors.Is(err, domain.ErrCheckInLimit):
			return NewValidationError(c, "Daily check-in limit reached", nil)
		default:
			log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to check in")
			return NewInternalError(c, "Failed to check in")
		}
	}

	h.publisher.Publish(workspaceID, websocket.SessionCheckedIn(session))

	return c.JSON(http.StatusCreated, session)
}

// CheckOut handles POST /api/v1/workspaces/:workspaceId/work-sessions/check-out
func (h *WorkSessionHandler) CheckOut(c echo.Context) error {
	userID := middleware.GetUserID(c)
	workspaceID := middleware.GetWorkspaceID(c)

	session, err := h.sessionService.CheckOut(userID, workspaceID)
	if err != nil {
		if errors.Is(err, domain.ErrNoOpenSession) {
			return NewValidationError(c, "There is no open work session", nil)
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to check out")
		return NewInternalError(c, "Failed to check out")
	}

	h.publisher.Publish(workspaceID, websocket.SessionCheckedOut(session))

	return c.JSON(http.StatusOK, session)
}

// TodaySessionResponse is the session view for the today endpoint. A day
// without a session serializes with null clock fields and zero minutes.
type TodaySessionResponse struct {
	CheckIn      *time.Time           `json:"checkIn"`
	CheckOut     *time.Time           `json:"checkOut"`
	TotalMinutes int                  `json:"totalMinutes"`
	ExtraMinutes int                  `json:"extraMinutes"`
	Status       domain.SessionStatus `json:"status"`
	Shift        *domain.WorkShift    `json:"shift"`
}

// Today handles GET /api/v1/workspaces/:workspaceId/work-sessions/today
func (h *WorkSessionHandler) Today(c echo.Context) error {
	userID := middleware.GetUserID(c)
	workspaceID := middleware.GetWorkspaceID(c)

	session, err := h.sessionService.TodaySession(userID, workspaceID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return c.JSON(http.StatusOK, TodaySessionResponse{Status: domain.SessionClosed})
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to load today's session")
		return NewInternalError(c, "Failed to load today's session")
	}

	return c.JSON(http.StatusOK, TodaySessionResponse{
		CheckIn:      &session.CheckIn,
		CheckOut:     session.CheckOut,
		TotalMinutes: session.TotalMinutes,
		ExtraMinutes: session.ExtraMinutes,
		Status:       session.Status,
		Shift:        session.Shift,
	})
}

// Mine handles GET /api/v1/workspaces/:workspaceId/work-sessions/mine
func (h *WorkSessionHandler) Mine(c echo.Context) error {
	sessions, err := h.sessionService.SessionsByUser(middleware.GetUserID(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list sessions")
		return NewInternalError(c, "Failed to list sessions")
	}

	return c.JSON(http.StatusOK, sessions)
}

// Summary handles GET /api/v1/workspaces/:workspaceId/work-sessions/summary
func (h *WorkSessionHandler) Summary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	workspaceID := middleware.GetWorkspaceID(c)

	summary, err := h.sessionService.MySummary(userID, workspaceID)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to build summary")
		return NewInternalError(c, "Failed to build summary")
	}

	return c.JSON(http.StatusOK, summary)
}
