package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/shiftly/shiftly-backend/internal/domain"
	"github.com/shiftly/shiftly-backend/internal/service"
	"github.com/shiftly/shiftly-backend/internal/websocket"
)

// AdminHandler handles admin-only HTTP requests
type AdminHandler struct {
	authService    *service.AuthService
	sessionService *service.WorkSessionService
	publisher      websocket.EventPublisher
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(authService *service.AuthService, sessionService *service.WorkSessionService, publisher websocket.EventPublisher) *AdminHandler {
	return &AdminHandler{
		authService:    authService,
		sessionService: sessionService,
		publisher:      publisher,
	}
}

// SetActiveRequest represents the activate/deactivate request body
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// ProvisionEmployeeRequest represents the employee provisioning request body
type ProvisionEmployeeRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AssignShiftRequest represents the shift classification request body
type AssignShiftRequest struct {
	Shift string `json:"shift"`
}

// WorkingUsers handles GET /api/v1/admin/working-users
func (h *AdminHandler) WorkingUsers(c echo.Context) error {
	workers, err := h.sessionService.ActiveWorkers()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list working users")
		return NewInternalError(c, "Failed to list working users")
	}

	return c.JSON(http.StatusOK, workers)
}

// AllSessions handles GET /api/v1/admin/work-sessions
func (h *AdminHandler) AllSessions(c echo.Context) error {
	sessions, err := h.sessionService.AllSessions()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list work sessions")
		return NewInternalError(c, "Failed to list work sessions")
	}

	return c.JSON(http.StatusOK, sessions)
}

// SetUserActive handles PATCH /api/v1/admin/users/:id/active
func (h *AdminHandler) SetUserActive(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewNotFoundError(c, "Invalid user ID")
	}

	var req SetActiveRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.authService.SetUserActive(userID, req.Active); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to update user active flag")
		return NewInternalError(c, "Failed to update user")
	}

	return c.NoContent(http.StatusNoContent)
}

// ProvisionEmployee handles POST /api/v1/admin/workspaces/:workspaceId/employees
func (h *AdminHandler) ProvisionEmployee(c echo.Context) error {
	workspaceID, err := strconv.ParseInt(c.Param("workspaceId"), 10, 32)
	if err != nil {
		return NewNotFoundError(c, "Invalid workspace ID")
	}

	var req ProvisionEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, err := h.authService.ProvisionEmployee(int32(workspaceID), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "username", Message: "Username must be at least 3 characters"},
				{Field: "password", Message: "Password must be at least 8 characters"},
			})
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return NewValidationError(c, "User already exists", nil)
		case errors.Is(err, domain.ErrAlreadyMember):
			return NewValidationError(c, "User already exists in this workspace", nil)
		case errors.Is(err, domain.ErrMembershipNotFound), errors.Is(err, domain.ErrWorkspaceNotFound):
			return NewNotFoundError(c, "Workspace not found")
		default:
			log.Error().Err(err).Int64("workspace_id", workspaceID).Msg("Failed to provision employee")
			return NewInternalError(c, "Failed to provision employee")
		}
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// AssignShift handles PATCH /api/v1/admin/work-sessions/:id/shift
func (h *AdminHandler) AssignShift(c echo.Context) error {
	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return NewNotFoundError(c, "Invalid session ID")
	}

	var req AssignShiftRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	session, err := h.sessionService.AssignShift(int32(sessionID), domain.WorkShift(req.Shift))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "shift", Message: "Shift must be one of: MORNING, EVENING"},
			})
		case errors.Is(err, domain.ErrSessionNotFound):
			return NewNotFoundError(c, "Work session not found")
		case errors.Is(err, domain.ErrSessionNotClosed):
			return NewValidationError(c, "Only closed sessions can be updated", nil)
		case errors.Is(err, domain.ErrShiftAlreadySet):
			return NewValidationError(c, "Shift has already been assigned", nil)
		case errors.Is(err, domain.ErrShiftSlotTaken):
			return NewValidationError(c, "User already has a session with this shift for this day", nil)
		default:
			log.Error().Err(err).Int64("session_id", sessionID).Msg("Failed to assign shift")
			return NewInternalError(c, "Failed to assign shift")
		}
	}

	h.publisher.Publish(session.WorkspaceID, websocket.SessionClassified(session))

	return c.JSON(http.StatusOK, session)
}
