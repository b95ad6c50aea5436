package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/shiftly/shiftly-backend/internal/domain"
	"github.com/shiftly/shiftly-backend/internal/middleware"
	"github.com/shiftly/shiftly-backend/internal/service"
)

// WorkspaceHandler handles workspace-related HTTP requests
type WorkspaceHandler struct {
	workspaceService *service.WorkspaceService
}

// NewWorkspaceHandler creates a new WorkspaceHandler
func NewWorkspaceHandler(workspaceService *service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// WorkspaceRequest represents the create and rename request body
type WorkspaceRequest struct {
	Name string `json:"name"`
}

// WorkspaceResponse represents a workspace in API responses
type WorkspaceResponse struct {
	ID       int32   `json:"id"`
	Name     string  `json:"name"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

func toWorkspaceResponse(w *domain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{ID: w.ID, Name: w.Name, ImageURL: w.ImageURL}
}

// Create handles POST /api/v1/workspaces
func (h *WorkspaceHandler) Create(c echo.Context) error {
	var req WorkspaceRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	workspace, err := h.workspaceService.Create(req.Name, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrWorkspaceExists) {
			return NewValidationError(c, "Workspace already exists", nil)
		}
		log.Error().Err(err).Str("name", req.Name).Msg("Failed to create workspace")
		return NewInternalError(c, "Failed to create workspace")
	}

	return c.JSON(http.StatusCreated, toWorkspaceResponse(workspace))
}

// List handles GET /api/v1/workspaces
func (h *WorkspaceHandler) List(c echo.Context) error {
	workspaces, err := h.workspaceService.ListForUser(middleware.GetUserID(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list workspaces")
		return NewInternalError(c, "Failed to list workspaces")
	}

	response := make([]WorkspaceResponse, 0, len(workspaces))
	for _, w := range workspaces {
		response = append(response, toWorkspaceResponse(w))
	}
	return c.JSON(http.StatusOK, response)
}

// Rename handles PATCH /api/v1/workspaces/:workspaceId
func (h *WorkspaceHandler) Rename(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	var req WorkspaceRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	workspace, err := h.workspaceService.Rename(workspaceID, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrWorkspaceExists) {
			return NewValidationError(c, "Workspace already exists", nil)
		}
		if errors.Is(err, domain.ErrWorkspaceNotFound) {
			return NewNotFoundError(c, "Workspace not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to rename workspace")
		return NewInternalError(c, "Failed to rename workspace")
	}

	return c.JSON(http.StatusOK, toWorkspaceResponse(workspace))
}

// Delete handles DELETE /api/v1/workspaces/:workspaceId
func (h *WorkspaceHandler) Delete(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	if err := h.workspaceService.Delete(workspaceID); err != nil {
		if errors.Is(err, domain.ErrWorkspaceNotFound) {
			return NewNotFoundError(c, "Workspace not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to delete workspace")
		return NewInternalError(c, "Failed to delete workspace")
	}

	return c.NoContent(http.StatusNoContent)
}
