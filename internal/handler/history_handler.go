package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/shiftly/shiftly-backend/internal/domain"
	"github.com/shiftly/shiftly-backend/internal/middleware"
	"github.com/shiftly/shiftly-backend/internal/service"
)

// HistoryHandler handles reporting HTTP requests
type HistoryHandler struct {
	reportingService *service.ReportingService
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(reportingService *service.ReportingService) *HistoryHandler {
	return &HistoryHandler{reportingService: reportingService}
}

// Weekly handles GET /api/v1/history/weekly
// Returns the current Monday-start week as seven day buckets.
func (h *HistoryHandler) Weekly(c echo.Context) error {
	days, err := h.reportingService.WeeklyHistory(middleware.GetUserID(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to build weekly history")
		return NewInternalError(c, "Failed to build weekly history")
	}

	return c.JSON(http.StatusOK, days)
}

// Monthly handles GET /api/v1/history/monthly
func (h *HistoryHandler) Monthly(c echo.Context) error {
	months, err := h.reportingService.MonthlyHistory(middleware.GetUserID(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to build monthly history")
		return NewInternalError(c, "Failed to build monthly history")
	}

	return c.JSON(http.StatusOK, months)
}

// MonthWeeks handles GET /api/v1/history/monthly/:year/:month/weeks
func (h *HistoryHandler) MonthWeeks(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "year", Message: "Year must be a number"},
		})
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "month", Message: "Month must be a number"},
		})
	}

	weeks, err := h.reportingService.MonthWeeks(middleware.GetUserID(c), year, month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "month", Message: "Month must be between 1 and 12"},
			})
		}
		log.Error().Err(err).Int("year", year).Int("month", month).Msg("Failed to build month weeks")
		return NewInternalError(c, "Failed to build month weeks")
	}

	return c.JSON(http.StatusOK, weeks)
}
