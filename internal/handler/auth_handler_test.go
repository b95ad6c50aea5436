package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/shiftly/shiftly-backend/internal/domain"
	"github.com/shiftly/shiftly-backend/internal/middleware"
	"github.com/shiftly/shiftly-backend/internal/service"
	"github.com/shiftly/shiftly-backend/internal/testutil"
	"github.com/shiftly/shiftly-backend/internal/token"
)

// Helper to set up authenticated request context
func setupAuthContext(c echo.Context, user *domain.User) {
	c.Set(middleware.ContextKeyUserID, user.ID)
	c.Set(middleware.ContextKeyUsername, user.Username)
	c.Set(middleware.ContextKeyRole, user.Role)
}

// Helper to set up workspace-scoped request context
func setupWorkspaceContext(c echo.Context, user *domain.User, membership *domain.Membership) {
	setupAuthContext(c, user)
	c.Set(middleware.ContextKeyWorkspaceID, membership.WorkspaceID)
	c.Set(middleware.ContextKeyMembership, membership)
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func newAuthFixture() (*AuthHandler, *testutil.MockUserRepository, *testutil.MockMembershipRepository) {
	userRepo := testutil.NewMockUserRepository()
	membershipRepo := testutil.NewMockMembershipRepository()
	authService := service.NewAuthService(userRepo, membershipRepo, token.NewManager("test-secret", time.Hour))
	return NewAuthHandler(authService), userRepo, membershipRepo
}

func TestRegister_Success(t *testing.T) {
	e := echo.New()
	handler, _, _ := newAuthFixture()

	req := jsonRequest(http.MethodPost, "/api/v1/auth/register", `{"username":"alice","password":"password123"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	var response AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.User.Username != "alice" {
		t.Errorf("Expected username alice, got %s", response.User.Username)
	}
	if response.User.Role != domain.RoleEmployee {
		t.Errorf("Expected role EMPLOYEE, got %s", response.User.Role)
	}
	if response.Token == "" {
		t.Error("Expected a token in the response")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	e := echo.New()
	handler, userRepo, _ := newAuthFixture()
	userRepo.AddUser(&domain.User{ID: uuid.New(), Username: "alice", Role: domain.RoleEmployee, Active: true})

	req := jsonRequest(http.MethodPost, "/api/v1/auth/register", `{"username":"alice","password":"password123"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestRegister_WeakInput(t *testing.T) {
	e := echo.New()
	handler, _, _ := newAuthFixture()

	req := jsonRequest(http.MethodPost, "/api/v1/auth/register", `{"username":"al","password":"short"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if problem.Type != ErrorTypeValidation {
		t.Errorf("Expected validation problem type, got %s", problem.Type)
	}
}

func TestRegisterAdmin_OnlyFirst(t *testing.T) {
	e := echo.New()
	handler, _, _ := newAuthFixture()

	req := jsonRequest(http.MethodPost, "/api/v1/auth/register-admin", `{"username":"boss","password":"password123"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.RegisterAdmin(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	// A second admin registration must be rejected
	req = jsonRequest(http.MethodPost, "/api/v1/auth/register-admin", `{"username":"boss2","password":"password123"}`)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	if err := handler.RegisterAdmin(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rec.Code)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	e := echo.New()
	handler, _, _ := newAuthFixture()

	req := jsonRequest(http.MethodPost, "/api/v1/auth/register", `{"username":"alice","password":"password123"}`)
	rec := httptest.NewRecorder()
	if err := handler.Register(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req = jsonRequest(http.MethodPost, "/api/v1/auth/login", `{"username":"alice","password":"wrong-password"}`)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestLogin_Success(t *testing.T) {
	e := echo.New()
	handler, _, _ := newAuthFixture()

	req := jsonRequest(http.MethodPost, "/api/v1/auth/register", `{"username":"alice","password":"password123"}`)
	rec := httptest.NewRecorder()
	if err := handler.Register(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req = jsonRequest(http.MethodPost, "/api/v1/auth/login", `{"username":"alice","password":"password123"}`)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Token == "" {
		t.Error("Expected a token in the response")
	}
}

func TestMe(t *testing.T) {
	e := echo.New()
	handler, userRepo, _ := newAuthFixture()

	user := &domain.User{ID: uuid.New(), Username: "alice", Role: domain.RoleEmployee, Active: true}
	userRepo.AddUser(user)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, user)

	if err := handler.Me(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.ID != user.ID.String() {
		t.Errorf("Expected user ID %s, got %s", user.ID, response.ID)
	}
}
