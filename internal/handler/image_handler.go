package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/shiftly/shiftly-backend/internal/domain"
	"github.com/shiftly/shiftly-backend/internal/middleware"
	"github.com/shiftly/shiftly-backend/internal/service"
)

// ImageHandler handles workspace image HTTP requests
type ImageHandler struct {
	imageService *service.ImageService
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(imageService *service.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// ImageURLResponse represents a presigned image URL response
type ImageURLResponse struct {
	URL string `json:"url"`
}

// Upload handles POST /api/v1/workspaces/:workspaceId/image
func (h *ImageHandler) Upload(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	// If storage isn't configured, don't attempt to process/upload (would panic on nil storage).
	if h.imageService == nil || !h.imageService.IsEnabled() {
		return NewServiceUnavailableError(c, "Image uploads are disabled (storage not configured)")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read file")
	}

	workspace, err := h.imageService.UploadWorkspaceImage(c.Request().Context(), workspaceID, data, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageTooLarge):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "File too large. Maximum size is 5MB"},
			})
		case errors.Is(err, service.ErrInvalidFormat):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Invalid format. Supported: JPEG, PNG, WebP"},
			})
		case errors.Is(err, service.ErrImageTooSmall):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Image too small. Minimum 50x50 pixels"},
			})
		case errors.Is(err, service.ErrInvalidImageData):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Invalid image data"},
			})
		case errors.Is(err, domain.ErrWorkspaceNotFound):
			return NewNotFoundError(c, "Workspace not found")
		default:
			log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to upload workspace image")
			return NewInternalError(c, "Failed to upload image")
		}
	}

	log.Info().
		Int32("workspace_id", workspaceID).
		Msg("Workspace image uploaded")

	return c.JSON(http.StatusOK, toWorkspaceResponse(workspace))
}

// ImageURL handles GET /api/v1/workspaces/:workspaceId/image
// Returns a short-lived presigned URL for the workspace display image.
func (h *ImageHandler) ImageURL(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)

	if h.imageService == nil || !h.imageService.IsEnabled() {
		return NewServiceUnavailableError(c, "Image storage not configured")
	}

	url, err := h.imageService.WorkspaceImageURL(c.Request().Context(), workspaceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrWorkspaceNotFound) {
			return NewNotFoundError(c, "Workspace has no image")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to presign workspace image")
		return NewInternalError(c, "Failed to resolve image URL")
	}

	return c.JSON(http.StatusOK, ImageURLResponse{URL: url})
}
