package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/shiftly/shiftly-backend/internal/domain"
)

// WorkspaceService handles workspace CRUD and membership lookups
type WorkspaceService struct {
	workspaces  domain.WorkspaceRepository
	memberships domain.MembershipRepository
}

// NewWorkspaceService creates a new WorkspaceService
func NewWorkspaceService(workspaces domain.WorkspaceRepository, memberships domain.MembershipRepository) *WorkspaceService {
	return &WorkspaceService{workspaces: workspaces, memberships: memberships}
}

// Create creates a workspace and enrolls the creator as its admin
func (s *WorkspaceService) Create(name string, creatorID uuid.UUID) (*domain.Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	_, err := s.workspaces.GetByName(name)
	if err == nil {
		return nil, domain.ErrWorkspaceExists
	}
	if !errors.Is(err, domain.ErrWorkspaceNotFound) {
		return nil, err
	}

	workspace, err := s.workspaces.Create(&domain.Workspace{Name: name})
	if err != nil {
		return nil, err
	}

	_, err = s.memberships.Create(&domain.Membership{
		UserID:      creatorID,
		WorkspaceID: workspace.ID,
		Role:        domain.RoleAdmin,
	})
	if err != nil {
		return nil, err
	}
	return workspace, nil
}

// Get retrieves a workspace by ID
func (s *WorkspaceService) Get(id int32) (*domain.Workspace, error) {
	return s.workspaces.GetByID(id)
}

// ListForUser lists every workspace the user belongs to
func (s *WorkspaceService) ListForUser(userID uuid.UUID) ([]*domain.Workspace, error) {
	return s.workspaces.GetAllForUser(userID)
}

// Rename changes a workspace's name
func (s *WorkspaceService) Rename(id int32, name string) (*domain.Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	workspace, err := s.workspaces.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing, err := s.workspaces.GetByName(name); err == nil && existing.ID != id {
		return nil, domain.ErrWorkspaceExists
	}

	workspace.Name = name
	return s.workspaces.Update(workspace)
}

// Delete deletes a workspace
func (s *WorkspaceService) Delete(id int32) error {
	return s.workspaces.Delete(id)
}

// Membership resolves the membership linking a user to a workspace
func (s *WorkspaceService) Membership(userID uuid.UUID, workspaceID int32) (*domain.Membership, error) {
	return s.memberships.GetByUserAndWorkspace(userID, workspaceID)
}
