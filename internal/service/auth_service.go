package service

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shiftly/shiftly-backend/internal/domain"
	"github.com/shiftly/shiftly-backend/internal/token"
)

const (
	minUsernameLength = 3
	minPasswordLength = 8
)

// AuthService handles registration, login, and employee provisioning
type AuthService struct {
	users       domain.UserRepository
	memberships domain.MembershipRepository
	tokens      *token.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(users domain.UserRepository, memberships domain.MembershipRepository, tokens *token.Manager) *AuthService {
	return &AuthService{users: users, memberships: memberships, tokens: tokens}
}

// Register creates an EMPLOYEE account and issues a token
func (s *AuthService) Register(username, password string) (*domain.User, string, error) {
	return s.register(username, password, domain.RoleEmployee)
}

// RegisterAdmin creates the first ADMIN account. Once any admin exists
// further admin registration is rejected.
func (s *AuthService) RegisterAdmin(username, password string) (*domain.User, string, error) {
	count, err := s.users.CountByRole(domain.RoleAdmin)
	if err != nil {
		return nil, "", err
	}
	if count > 0 {
		return nil, "", domain.ErrAdminRestricted
	}
	return s.register(username, password, domain.RoleAdmin)
}

func (s *AuthService) register(username, password string, role domain.Role) (*domain.User, string, error) {
	username = strings.TrimSpace(username)
	if len(username) < minUsernameLength || len(password) < minPasswordLength {
		return nil, "", domain.ErrInvalidInput
	}

	if _, err := s.users.GetByUsername(username); err == nil {
		return nil, "", domain.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.Create(&domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	})
	if err != nil {
		return nil, "", err
	}

	tok, err := s.tokens.Sign(user)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

// Login verifies credentials and issues a token
func (s *AuthService) Login(username, password string) (*domain.User, string, error) {
	user, err := s.users.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, "", domain.ErrUserInactive
	}

	tok, err := s.tokens.Sign(user)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

// GetUser retrieves a user by ID
func (s *AuthService) GetUser(id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(id)
}

// SetUserActive toggles a user's active flag. Deactivated users keep
// their data but can no longer log in.
func (s *AuthService) SetUserActive(id uuid.UUID, active bool) error {
	return s.users.SetActive(id, active)
}

// ProvisionEmployee creates an EMPLOYEE account and enrolls it in the
// workspace in one step
func (s *AuthService) ProvisionEmployee(workspaceID int32, username, password string) (*domain.User, error) {
	user, _, err := s.register(username, password, domain.RoleEmployee)
	if err != nil {
		return nil, err
	}
	_, err = s.memberships.Create(&domain.Membership{
		UserID:      user.ID,
		WorkspaceID: workspaceID,
		Role:        domain.RoleEmployee,
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
