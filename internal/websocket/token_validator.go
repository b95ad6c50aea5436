package websocket

import (
	"errors"

	"github.com/google/uuid"

	"github.com/shiftly/shiftly-backend/internal/domain"
	"github.com/shiftly/shiftly-backend/internal/token"
)

// ErrInvalidToken is returned when token validation fails
var ErrInvalidToken = errors.New("invalid token")

// ErrNotMember is returned when the caller does not belong to the workspace
var ErrNotMember = errors.New("not a workspace member")

// ConnectionValidator authorizes WebSocket connections
type ConnectionValidator interface {
	// Validate checks the token and the caller's membership in the
	// workspace, returning the caller's user ID.
	Validate(tokenString string, workspaceID int32) (uuid.UUID, error)
}

// TokenValidator validates access tokens and workspace membership for
// WebSocket connections
type TokenValidator struct {
	tokens      *token.Manager
	memberships domain.MembershipRepository
}

// NewTokenValidator creates a new TokenValidator
func NewTokenValidator(tokens *token.Manager, memberships domain.MembershipRepository) *TokenValidator {
	return &TokenValidator{tokens: tokens, memberships: memberships}
}

// Validate implements ConnectionValidator
func (v *TokenValidator) Validate(tokenString string, workspaceID int32) (uuid.UUID, error) {
	claims, err := v.tokens.Parse(tokenString)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	userID := claims.UserID()
	if _, err := v.memberships.GetByUserAndWorkspace(userID, workspaceID); err != nil {
		return uuid.Nil, ErrNotMember
	}
	return userID, nil
}
