package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// ImageRepository defines the interface for image object storage
type ImageRepository interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// WorkspaceObjectPath builds the object key for a workspace image variant.
// Layout: workspaces/<id>/<uuid>_<variant>.jpg
func WorkspaceObjectPath(workspaceID int32, imageID uuid.UUID, variant string) string {
	filename := fmt.Sprintf("%s_%s.jpg", imageID, variant)
	return path.Join("workspaces", fmt.Sprintf("%d", workspaceID), filename)
}
