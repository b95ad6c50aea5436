package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/shiftly/shiftly-backend/internal/domain"
	"github.com/shiftly/shiftly-backend/internal/middleware"
	"github.com/shiftly/shiftly-backend/internal/service"
	"github.com/shiftly/shiftly-backend/internal/websocket"
)

// ScheduleHandler handles work schedule HTTP requests
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
	publisher       websocket.EventPublisher
}

// NewScheduleHandler creates a new ScheduleHandler
func NewScheduleHandler(scheduleService *service.ScheduleService, publisher websocket.EventPublisher) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService, publisher: publisher}
}

// ScheduleRequest represents the update request body
type ScheduleRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// CreateScheduleRequest additionally names the membership the shift is
// planned for
type CreateScheduleRequest struct {
	MembershipID int32 `json:"membershipId"`
	ScheduleRequest
}

// ScheduleStatusRequest represents the status update request body
type ScheduleStatusRequest struct {
	Status string `json:"status"`
}

func (r *ScheduleRequest) parse() (date, start, end time.Time, errs []ValidationError) {
	var err error
	if date, err = parseDate(r.Date); err != nil {
		errs = append(errs, ValidationError{Field: "date", Message: "Date must be in YYYY-MM-DD format"})
	}
	if start, err = time.Parse(time.RFC3339, r.StartTime); err != nil {
		errs = append(errs, ValidationError{Field: "startTime", Message: "Start time must be an RFC 3339 timestamp"})
	}
	if end, err = time.Parse(time.RFC3339, r.EndTime); err != nil {
		errs = append(errs, ValidationError{Field: "endTime", Message: "End time must be an RFC 3339 timestamp"})
	}
	return date, start, end, errs
}

// Create handles POST /api/v1/workspaces/:workspaceId/schedules.
// Admins plan shifts for any member of the workspace.
func (h *ScheduleHandler) Create(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	var req CreateScheduleRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	date, start, end, errs := req.parse()
	if req.MembershipID <= 0 {
		errs = append(errs, ValidationError{Field: "membershipId", Message: "Membership ID is required"})
	}
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	schedule, err := h.scheduleService.Create(workspaceID, req.MembershipID, date, start, end)
	if err != nil {
		return h.scheduleError(c, err, workspaceID)
	}

	h.publisher.Publish(workspaceID, websocket.ScheduleCreated(schedule))

	return c.JSON(http.StatusCreated, schedule)
}

// Update handles PATCH /api/v1/workspaces/:workspaceId/schedules/:id
func (h *ScheduleHandler) Update(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	scheduleID, err := parseScheduleID(c)
	if err != nil {
		return NewNotFoundError(c, "Invalid schedule ID")
	}

	var req ScheduleRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	date, start, end, errs := req.parse()
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	schedule, err := h.scheduleService.Update(workspaceID, scheduleID, date, start, end)
	if err != nil {
		return h.scheduleError(c, err, workspaceID)
	}

	h.publisher.Publish(workspaceID, websocket.ScheduleUpdated(schedule))

	return c.JSON(http.StatusOK, schedule)
}

// UpdateStatus handles PATCH /api/v1/workspaces/:workspaceId/schedules/:id/status
// Only the member the schedule belongs to may confirm or decline it.
func (h *ScheduleHandler) UpdateStatus(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	scheduleID, err := parseScheduleID(c)
	if err != nil {
		return NewNotFoundError(c, "Invalid schedule ID")
	}

	var req ScheduleStatusRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	schedule, err := h.scheduleService.UpdateStatus(workspaceID, scheduleID, middleware.GetUserID(c), domain.ScheduleStatus(req.Status))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "status", Message: "Status must be one of: PENDING, CONFIRMED, DECLINED"},
			})
		}
		return h.scheduleError(c, err, workspaceID)
	}

	h.publisher.Publish(workspaceID, websocket.ScheduleStatusChanged(schedule))

	return c.JSON(http.StatusOK, schedule)
}

// Delete handles DELETE /api/v1/workspaces/:workspaceId/schedules/:id
func (h *ScheduleHandler) Delete(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	scheduleID, err := parseScheduleID(c)
	if err != nil {
		return NewNotFoundError(c, "Invalid schedule ID")
	}

	if err := h.scheduleService.Delete(workspaceID, scheduleID); err != nil {
		return h.scheduleError(c, err, workspaceID)
	}

	h.publisher.Publish(workspaceID, websocket.ScheduleDeleted(map[string]interface{}{"id": scheduleID}))

	return c.NoContent(http.StatusNoContent)
}

// List handles GET /api/v1/workspaces/:workspaceId/schedules
func (h *ScheduleHandler) List(c echo.Context) error {
	schedules, err := h.scheduleService.ListWorkspace(middleware.GetWorkspaceID(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list schedules")
		return NewInternalError(c, "Failed to list schedules")
	}

	return c.JSON(http.StatusOK, schedules)
}

// ListMine handles GET /api/v1/workspaces/:workspaceId/schedules/my
func (h *ScheduleHandler) ListMine(c echo.Context) error {
	schedules, err := h.scheduleService.ListMine(middleware.GetUserID(c), middleware.GetWorkspaceID(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list schedules")
		return NewInternalError(c, "Failed to list schedules")
	}

	return c.JSON(http.StatusOK, schedules)
}

func (h *ScheduleHandler) scheduleError(c echo.Context, err error, workspaceID int32) error {
	switch {
	case errors.Is(err, domain.ErrMembershipNotFound):
		return NewNotFoundError(c, "User does not belong to this workspace")
	case errors.Is(err, domain.ErrForbidden):
		return NewForbiddenError(c, "Only the schedule owner can update its status")
	case errors.Is(err, domain.ErrScheduleNotFound):
		return NewNotFoundError(c, "Schedule not found")
	case errors.Is(err, domain.ErrInvalidTimeRange):
		return NewValidationError(c, "End time must be after start time", nil)
	case errors.Is(err, domain.ErrScheduleInPast):
		return NewValidationError(c, "Cannot create schedule in the past", nil)
	case errors.Is(err, domain.ErrScheduleOverlap):
		return NewValidationError(c, "Schedule overlaps with another shift", nil)
	default:
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Schedule operation failed")
		return NewInternalError(c, "Schedule operation failed")
	}
}

func parseScheduleID(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}
