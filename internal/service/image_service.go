package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/shiftly/shiftly-backend/internal/domain"
	"github.com/shiftly/shiftly-backend/internal/repository/storage"
)

const (
	MaxImageSize   = 5 * 1024 * 1024 // 5MB
	MinImageWidth  = 50
	MinImageHeight = 50
	ThumbnailWidth = 200
	DisplayWidth   = 800
	JPEGQuality    = 85

	imageURLExpiry = 15 * time.Minute
)

var (
	ErrImageTooLarge             = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidFormat             = errors.New("invalid format. Supported: JPEG, PNG, WebP")
	ErrImageTooSmall             = errors.New("image too small. Minimum 50x50 pixels")
	ErrInvalidImageData          = errors.New("invalid image data")
	ErrImageStorageNotConfigured = errors.New("image storage not configured")
)

// AllowedExtensions maps extensions to content types
var AllowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ImageService handles workspace image processing and storage
type ImageService struct {
	storage    storage.ImageRepository
	workspaces domain.WorkspaceRepository
}

// NewImageService creates a new ImageService
func NewImageService(store storage.ImageRepository, workspaces domain.WorkspaceRepository) *ImageService {
	return &ImageService{storage: store, workspaces: workspaces}
}

// IsEnabled indicates whether uploads are supported (storage configured)
func (s *ImageService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// UploadWorkspaceImage validates, resizes, and stores a workspace image,
// then records the display variant's object path on the workspace
func (s *ImageService) UploadWorkspaceImage(ctx context.Context, workspaceID int32, data []byte, filename string) (*domain.Workspace, error) {
	if !s.IsEnabled() {
		return nil, ErrImageStorageNotConfigured
	}

	workspace, err := s.workspaces.GetByID(workspaceID)
	if err != nil {
		return nil, err
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	imageID := uuid.New()
	variants := []struct {
		name     string
		maxWidth int
	}{
		{"thumb", ThumbnailWidth},
		{"display", DisplayWidth},
		{"original", 0}, // keep original size
	}

	var uploaded []string
	for _, variant := range variants {
		processed := img
		if variant.maxWidth > 0 && img.Bounds().Dx() > variant.maxWidth {
			processed = imaging.Resize(img, variant.maxWidth, 0, imaging.Lanczos)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}

		objectPath := storage.WorkspaceObjectPath(workspaceID, imageID, variant.name)
		if _, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len())); err != nil {
			s.cleanup(ctx, uploaded)
			return nil, fmt.Errorf("failed to upload %s variant: %w", variant.name, err)
		}
		uploaded = append(uploaded, objectPath)
	}

	// Drop the previous image's variants, best effort
	if workspace.ImageURL != nil {
		s.deleteVariants(ctx, *workspace.ImageURL)
	}

	displayPath := storage.WorkspaceObjectPath(workspaceID, imageID, "display")
	workspace.ImageURL = &displayPath
	return s.workspaces.Update(workspace)
}

// WorkspaceImageURL presigns a short-lived URL for the workspace's
// display image
func (s *ImageService) WorkspaceImageURL(ctx context.Context, workspaceID int32) (string, error) {
	if !s.IsEnabled() {
		return "", ErrImageStorageNotConfigured
	}

	workspace, err := s.workspaces.GetByID(workspaceID)
	if err != nil {
		return "", err
	}
	if workspace.ImageURL == nil {
		return "", domain.ErrNotFound
	}
	return s.storage.GeneratePresignedURL(ctx, *workspace.ImageURL, imageURLExpiry)
}

// validateAndDecode validates the image bytes and returns the decoded image
func (s *ImageService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedExtensions[ext]; !ok {
		return nil, ErrInvalidFormat
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidImageData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinImageWidth || bounds.Dy() < MinImageHeight {
		return nil, ErrImageTooSmall
	}
	return img, nil
}

func (s *ImageService) cleanup(ctx context.Context, objectPaths []string) {
	for _, p := range objectPaths {
		_ = s.storage.Delete(ctx, p)
	}
}

// deleteVariants removes all variants sharing the display path's prefix
func (s *ImageService) deleteVariants(ctx context.Context, displayPath string) {
	base, ok := strings.CutSuffix(displayPath, "_display.jpg")
	if !ok {
		return
	}
	for _, variant := range []string{"thumb", "display", "original"} {
		_ = s.storage.Delete(ctx, base+"_"+variant+".jpg")
	}
}
