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

// TipPoolHandler handles tip pool HTTP requests
type TipPoolHandler struct {
	tipPoolService *service.TipPoolService
	publisher      websocket.EventPublisher
}

// NewTipPoolHandler creates a new TipPoolHandler
func NewTipPoolHandler(tipPoolService *service.TipPoolService, publisher websocket.EventPublisher) *TipPoolHandler {
	return &TipPoolHandler{tipPoolService: tipPoolService, publisher: publisher}
}

// CreateTipPoolRequest represents the pool creation request body
type CreateTipPoolRequest struct {
	Date        string `json:"date"`
	Shift       string `json:"shift"`
	TotalAmount int    `json:"totalAmount"`
}

// Create handles POST /api/v1/tip-pools
func (h *TipPoolHandler) Create(c echo.Context) error {
	var req CreateTipPoolRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Date must be in YYYY-MM-DD format"},
		})
	}

	result, err := h.tipPoolService.Create(date, domain.WorkShift(req.Shift), req.TotalAmount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "shift", Message: "Shift must be one of: MORNING, EVENING"},
				{Field: "totalAmount", Message: "Total amount must be positive"},
			})
		case errors.Is(err, domain.ErrPoolExists):
			return NewValidationError(c, "Tip pool for this date and shift already exists", nil)
		case errors.Is(err, domain.ErrUnclassifiedSessions):
			return NewValidationError(c, "Cannot create tip pool while unclassified sessions remain", nil)
		case errors.Is(err, domain.ErrNoSessionsForPool):
			return NewValidationError(c, "No work sessions found for this date", nil)
		case errors.Is(err, domain.ErrAmountTooLow):
			return NewValidationError(c, "Total amount too low", nil)
		default:
			log.Error().Err(err).Str("date", req.Date).Str("shift", req.Shift).Msg("Failed to create tip pool")
			return NewInternalError(c, "Failed to create tip pool")
		}
	}

	h.publisher.PublishAll(websocket.TipPoolCreated(result))

	return c.JSON(http.StatusCreated, result)
}

// List handles GET /api/v1/tip-pools
func (h *TipPoolHandler) List(c echo.Context) error {
	pools, err := h.tipPoolService.ListAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tip pools")
		return NewInternalError(c, "Failed to list tip pools")
	}

	return c.JSON(http.StatusOK, pools)
}

// MyDailyTips handles GET /api/v1/tip-pools/my-daily-tips
func (h *TipPoolHandler) MyDailyTips(c echo.Context) error {
	tips, err := h.tipPoolService.MyDailyTips(middleware.GetUserID(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list daily tips")
		return NewInternalError(c, "Failed to list daily tips")
	}

	return c.JSON(http.StatusOK, tips)
}

// Summary handles GET /api/v1/tip-pools/summary
func (h *TipPoolHandler) Summary(c echo.Context) error {
	summary, err := h.tipPoolService.Summary(middleware.GetUserID(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to build tip summary")
		return NewInternalError(c, "Failed to build tip summary")
	}

	return c.JSON(http.StatusOK, summary)
}

// parseDate accepts YYYY-MM-DD dates, falling back to RFC 3339 timestamps
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
