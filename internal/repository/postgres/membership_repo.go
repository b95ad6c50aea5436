package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiftly/shiftly-backend/internal/domain"
)

// MembershipRepository implements domain.MembershipRepository using PostgreSQL
type MembershipRepository struct {
	pool *pgxpool.Pool
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(pool *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{pool: pool}
}

const membershipColumns = `id, user_id, workspace_id, role, created_at`

// GetByID retrieves a membership by its ID
func (r *MembershipRepository) GetByID(id int32) (*domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE id = $1`
	return r.scanMembership(r.pool.QueryRow(context.Background(), query, id))
}

// GetByUserAndWorkspace retrieves the membership linking a user to a workspace
func (r *MembershipRepository) GetByUserAndWorkspace(userID uuid.UUID, workspaceID int32) (*domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE user_id = $1 AND workspace_id = $2`
	return r.scanMembership(r.pool.QueryRow(context.Background(), query, userID, workspaceID))
}

// Create creates a new membership. The (user_id, workspace_id) unique
// constraint rejects duplicates.
func (r *MembershipRepository) Create(membership *domain.Membership) (*domain.Membership, error) {
	query := `
		INSERT INTO memberships (user_id, workspace_id, role)
		VALUES ($1, $2, $3)
		RETURNING ` + membershipColumns
	return r.scanMembership(r.pool.QueryRow(context.Background(), query,
		membership.UserID, membership.WorkspaceID, membership.Role))
}

func (r *MembershipRepository) scanMembership(row pgx.Row) (*domain.Membership, error) {
	var m domain.Membership
	err := row.Scan(&m.ID, &m.UserID, &m.WorkspaceID, &m.Role, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, err
	}
	return &m, nil
}
