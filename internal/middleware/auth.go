package middleware

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/shiftly/shiftly-backend/internal/domain"
	"github.com/shiftly/shiftly-backend/internal/token"
)

// Context keys for authenticated request state
const (
	ContextKeyUserID      = "user_id"
	ContextKeyUsername    = "username"
	ContextKeyRole        = "role"
	ContextKeyWorkspaceID = "workspace_id"
	ContextKeyMembership  = "membership"
)

// AuthMiddleware authenticates requests and resolves workspace membership
type AuthMiddleware struct {
	tokens      *token.Manager
	memberships domain.MembershipRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(tokens *token.Manager, memberships domain.MembershipRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, memberships: memberships}
}

// Authenticate validates the bearer token and stores the caller's
// identity on the request context
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return unauthorizedError(c, "Missing authorization header")
			}
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return unauthorizedError(c, "Authorization header must use the Bearer scheme")
			}

			claims, err := m.tokens.Parse(raw)
			if err != nil {
				return unauthorizedError(c, "Invalid or expired token")
			}

			c.Set(ContextKeyUserID, claims.UserID())
			c.Set(ContextKeyUsername, claims.Username)
			c.Set(ContextKeyRole, claims.Role)
			return next(c)
		}
	}
}

// RequireRoles rejects callers whose global role is not in the given set
func (m *AuthMiddleware) RequireRoles(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := GetRole(c)
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return forbiddenError(c, "Insufficient role")
		}
	}
}

// RequireMembership resolves the :workspaceId path param, verifies that
// the caller belongs to that workspace, and stores the membership on the
// context
func (m *AuthMiddleware) RequireMembership() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			workspaceID, err := strconv.ParseInt(c.Param("workspaceId"), 10, 32)
			if err != nil {
				return notFoundError(c, "Invalid workspace ID")
			}

			membership, err := m.memberships.GetByUserAndWorkspace(GetUserID(c), int32(workspaceID))
			if err != nil {
				return forbiddenError(c, "Not a member of this workspace")
			}

			c.Set(ContextKeyWorkspaceID, int32(workspaceID))
			c.Set(ContextKeyMembership, membership)
			return next(c)
		}
	}
}

// GetUserID returns the authenticated user's ID from the context
func GetUserID(c echo.Context) uuid.UUID {
	if id, ok := c.Get(ContextKeyUserID).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetUsername returns the authenticated username from the context
func GetUsername(c echo.Context) string {
	if name, ok := c.Get(ContextKeyUsername).(string); ok {
		return name
	}
	return ""
}

// GetRole returns the authenticated user's role from the context
func GetRole(c echo.Context) domain.Role {
	if role, ok := c.Get(ContextKeyRole).(domain.Role); ok {
		return role
	}
	return ""
}

// GetWorkspaceID returns the resolved workspace ID from the context
func GetWorkspaceID(c echo.Context) int32 {
	if id, ok := c.Get(ContextKeyWorkspaceID).(int32); ok {
		return id
	}
	return 0
}

// GetMembership returns the resolved membership from the context
func GetMembership(c echo.Context) *domain.Membership {
	if m, ok := c.Get(ContextKeyMembership).(*domain.Membership); ok {
		return m
	}
	return nil
}
