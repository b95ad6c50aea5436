package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/shiftly/shiftly-backend/internal/domain"
	"github.com/shiftly/shiftly-backend/internal/middleware"
	"github.com/shiftly/shiftly-backend/internal/service"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// CredentialsRequest represents the register and login request body
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	Active   bool        `json:"active"`
}

// AuthResponse represents the register and login response
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Role:     user.Role,
		Active:   user.Active,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, tok, err := h.authService.Register(req.Username, req.Password)
	if err != nil {
		return h.registrationError(c, err, req.Username)
	}

	return c.JSON(http.StatusCreated, AuthResponse{User: toUserResponse(user), Token: tok})
}

// RegisterAdmin handles POST /api/v1/auth/register-admin
// Only the first admin can be created this way.
func (h *AuthHandler) RegisterAdmin(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, tok, err := h.authService.RegisterAdmin(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrAdminRestricted) {
			return NewForbiddenError(c, "Admin registration is restricted")
		}
		return h.registrationError(c, err, req.Username)
	}

	return c.JSON(http.StatusCreated, AuthResponse{User: toUserResponse(user), Token: tok})
}

func (h *AuthHandler) registrationError(c echo.Context, err error, username string) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "username", Message: "Username must be at least 3 characters"},
			{Field: "password", Message: "Password must be at least 8 characters"},
		})
	}
	if errors.Is(err, domain.ErrUserAlreadyExists) {
		return NewValidationError(c, "User already exists", nil)
	}
	log.Error().Err(err).Str("username", username).Msg("Failed to register user")
	return NewInternalError(c, "Failed to register user")
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, tok, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return NewUnauthorizedError(c, "Invalid username or password")
		}
		if errors.Is(err, domain.ErrUserInactive) {
			return NewForbiddenError(c, "Account is deactivated")
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Failed to log in user")
		return NewInternalError(c, "Failed to log in")
	}

	return c.JSON(http.StatusOK, AuthResponse{User: toUserResponse(user), Token: tok})
}

// Me handles GET /api/v1/users/me
func (h *AuthHandler) Me(c echo.Context) error {
	userID := middleware.GetUserID(c)

	user, err := h.authService.GetUser(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to load user")
		return NewInternalError(c, "Failed to load user")
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}
