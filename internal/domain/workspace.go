package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is the tenant boundary; sessions, schedules and tip pools
// all hang off a workspace through memberships.
type Workspace struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	ImageURL  *string   `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Membership ties a user to a workspace with a role scoped to that
// workspace. Unique per (userID, workspaceID).
type Membership struct {
	ID          int32     `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	WorkspaceID int32     `json:"workspaceId"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WorkspaceRepository defines the interface for workspace persistence operations
type WorkspaceRepository interface {
	GetByID(id int32) (*Workspace, error)
	GetByName(name string) (*Workspace, error)
	GetAllForUser(userID uuid.UUID) ([]*Workspace, error)
	Create(workspace *Workspace) (*Workspace, error)
	Update(workspace *Workspace) (*Workspace, error)
	Delete(id int32) error
}

// MembershipRepository defines the interface for membership persistence operations
type MembershipRepository interface {
	GetByID(id int32) (*Membership, error)
	GetByUserAndWorkspace(userID uuid.UUID, workspaceID int32) (*Membership, error)
	Create(membership *Membership) (*Membership, error)
}
