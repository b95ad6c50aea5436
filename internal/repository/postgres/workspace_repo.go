package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiftly/shiftly-backend/internal/domain"
)

// WorkspaceRepository implements domain.WorkspaceRepository using PostgreSQL
type WorkspaceRepository struct {
	pool *pgxpool.Pool
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(pool *pgxpool.Pool) *WorkspaceRepository {
	return &WorkspaceRepository{pool: pool}
}

const workspaceColumns = `id, name, image_url, created_at, updated_at`

// GetByID retrieves a workspace by its ID
func (r *WorkspaceRepository) GetByID(id int32) (*domain.Workspace, error) {
	query := `SELECT ` + workspaceColumns + ` FROM workspaces WHERE id = $1`
	return r.scanWorkspace(r.pool.QueryRow(context.Background(), query, id))
}

// GetByName retrieves a workspace by its name
func (r *WorkspaceRepository) GetByName(name string) (*domain.Workspace, error) {
	query := `SELECT ` + workspaceColumns + ` FROM workspaces WHERE name = $1`
	return r.scanWorkspace(r.pool.QueryRow(context.Background(), query, name))
}

// GetAllForUser retrieves every workspace the user is a member of
func (r *WorkspaceRepository) GetAllForUser(userID uuid.UUID) ([]*domain.Workspace, error) {
	query := `
		SELECT w.id, w.name, w.image_url, w.created_at, w.updated_at
		FROM workspaces w
		JOIN memberships m ON m.workspace_id = w.id
		WHERE m.user_id = $1
		ORDER BY w.name`
	rows, err := r.pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workspaces []*domain.Workspace
	for rows.Next() {
		var w domain.Workspace
		if err := rows.Scan(&w.ID, &w.Name, &w.ImageURL, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		workspaces = append(workspaces, &w)
	}
	return workspaces, rows.Err()
}

// Create creates a new workspace
func (r *WorkspaceRepository) Create(workspace *domain.Workspace) (*domain.Workspace, error) {
	query := `
		INSERT INTO workspaces (name, image_url)
		VALUES ($1, $2)
		RETURNING ` + workspaceColumns
	return r.scanWorkspace(r.pool.QueryRow(context.Background(), query, workspace.Name, workspace.ImageURL))
}

// Update updates a workspace's name and image
func (r *WorkspaceRepository) Update(workspace *domain.Workspace) (*domain.Workspace, error) {
	query := `
		UPDATE workspaces
		SET name = $2, image_url = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + workspaceColumns
	return r.scanWorkspace(r.pool.QueryRow(context.Background(), query,
		workspace.ID, workspace.Name, workspace.ImageURL))
}

// Delete deletes a workspace by its ID
func (r *WorkspaceRepository) Delete(id int32) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWorkspaceNotFound
	}
	return nil
}

func (r *WorkspaceRepository) scanWorkspace(row pgx.Row) (*domain.Workspace, error) {
	var w domain.Workspace
	err := row.Scan(&w.ID, &w.Name, &w.ImageURL, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWorkspaceNotFound
		}
		return nil, err
	}
	return &w, nil
}
