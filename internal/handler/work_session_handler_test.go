package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/shiftly/shiftly-backend/internal/domain"
	"github.com/shiftly/shiftly-backend/internal/service"
	"github.com/shiftly/shiftly-backend/internal/testutil"
	"github.com/shiftly/shiftly-backend/internal/util"
	"github.com/shiftly/shiftly-backend/internal/websocket"
)

// capturePublisher records published events for assertions
type capturePublisher struct {
	workspaceEvents []websocket.Event
	globalEvents    []websocket.Event
}

func (p *capturePublisher) Publish(workspaceID int32, event websocket.Event) {
	p.workspaceEvents = append(p.workspaceEvents, event)
}

func (p *capturePublisher) PublishAll(event websocket.Event) {
	p.globalEvents = append(p.globalEvents, event)
}

type sessionHandlerFixture struct {
	handler     *WorkSessionHandler
	sessions    *testutil.MockWorkSessionRepository
	memberships *testutil.MockMembershipRepository
	publisher   *capturePublisher
	user        *domain.User
	membership  *domain.Membership
}

func newSessionHandlerFixture() *sessionHandlerFixture {
	sessions := testutil.NewMockWorkSessionRepository()
	memberships := testutil.NewMockMembershipRepository()
	tips := testutil.NewMockTipPoolRepository(sessions)
	publisher := &capturePublisher{}

	user := &domain.User{ID: uuid.New(), Username: "alice", Role: domain.RoleEmployee, Active: true}
	membership := &domain.Membership{ID: 1, UserID: user.ID, WorkspaceID: 1, Role: domain.RoleEmployee}
	memberships.AddMembership(membership)

	svc := service.NewWorkSessionService(sessions, memberships, tips)
	return &sessionHandlerFixture{
		handler:     NewWorkSessionHandler(svc, publisher),
		sessions:    sessions,
		memberships: memberships,
		publisher:   publisher,
		user:        user,
		membership:  membership,
	}
}

func TestCheckIn_Success(t *testing.T) {
	e := echo.New()
	f := newSessionHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/workspaces/1/work-sessions/check-in", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupWorkspaceContext(c, f.user, f.membership)

	if err := f.handler.CheckIn(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	var session domain.WorkSession
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if session.Status != domain.SessionOpen {
		t.Errorf("Expected OPEN session, got %s", session.Status)
	}

	if len(f.publisher.workspaceEvents) != 1 {
		t.Fatalf("Expected 1 published event, got %d", len(f.publisher.workspaceEvents))
	}
	if f.publisher.workspaceEvents[0].Type != "session.checked_in" {
		t.Errorf("Expected session.checked_in event, got %s", f.publisher.workspaceEvents[0].Type)
	}
}

func TestCheckIn_AlreadyOpen(t *testing.T) {
	e := echo.New()
	f := newSessionHandlerFixture()
	f.sessions.AddSession(&domain.WorkSession{
		UserID:      f.user.ID,
		WorkspaceID: 1,
		CheckIn:     time.Now().UTC(),
		Status:      domain.SessionOpen,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/workspaces/1/work-sessions/check-in", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupWorkspaceContext(c, f.user, f.membership)

	if err := f.handler.CheckIn(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
	if len(f.publisher.workspaceEvents) != 0 {
		t.Errorf("Expected no events on rejection, got %d", len(f.publisher.workspaceEvents))
	}
}

func TestCheckOut_Success(t *testing.T) {
	e := echo.New()
	f := newSessionHandlerFixture()
	f.sessions.AddSession(&domain.WorkSession{
		UserID:      f.user.ID,
		WorkspaceID: 1,
		CheckIn:     time.Now().UTC().Add(-2 * time.Hour),
		Status:      domain.SessionOpen,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/workspaces/1/work-sessions/check-out", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupWorkspaceContext(c, f.user, f.membership)

	if err := f.handler.CheckOut(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var session domain.WorkSession
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if session.Status != domain.SessionClosed {
		t.Errorf("Expected CLOSED session, got %s", session.Status)
	}
	if session.TotalMinutes != 120 {
		t.Errorf("Expected 120 total minutes, got %d", session.TotalMinutes)
	}

	if len(f.publisher.workspaceEvents) != 1 {
		t.Fatalf("Expected 1 published event, got %d", len(f.publisher.workspaceEvents))
	}
	if f.publisher.workspaceEvents[0].Type != "session.checked_out" {
		t.Errorf("Expected session.checked_out event, got %s", f.publisher.workspaceEvents[0].Type)
	}
}

func TestCheckOut_NoOpenSession(t *testing.T) {
	e := echo.New()
	f := newSessionHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/workspaces/1/work-sessions/check-out", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupWorkspaceContext(c, f.user, f.membership)

	if err := f.handler.CheckOut(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestToday_NoSession(t *testing.T) {
	e := echo.New()
	f := newSessionHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workspaces/1/work-sessions/today", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupWorkspaceContext(c, f.user, f.membership)

	if err := f.handler.Today(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// A day without a session still answers 200 with an empty placeholder
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response TodaySessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.CheckIn != nil {
		t.Errorf("Expected null checkIn, got %v", response.CheckIn)
	}
	if response.Status != domain.SessionClosed {
		t.Errorf("Expected CLOSED placeholder, got %s", response.Status)
	}
	if response.TotalMinutes != 0 {
		t.Errorf("Expected 0 total minutes, got %d", response.TotalMinutes)
	}
}

func TestToday_WithSession(t *testing.T) {
	e := echo.New()
	f := newSessionHandlerFixture()

	checkIn := util.StartOfDayUTC(time.Now().UTC()).Add(time.Hour)
	f.sessions.AddSession(&domain.WorkSession{
		UserID:      f.user.ID,
		WorkspaceID: 1,
		CheckIn:     checkIn,
		Status:      domain.SessionOpen,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workspaces/1/work-sessions/today", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupWorkspaceContext(c, f.user, f.membership)

	if err := f.handler.Today(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response TodaySessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.CheckIn == nil || !response.CheckIn.Equal(checkIn) {
		t.Errorf("Expected checkIn %v, got %v", checkIn, response.CheckIn)
	}
	if response.Status != domain.SessionOpen {
		t.Errorf("Expected OPEN session, got %s", response.Status)
	}
}

func TestSummary(t *testing.T) {
	e := echo.New()
	f := newSessionHandlerFixture()

	checkIn := util.StartOfDayUTC(time.Now().UTC())
	checkOut := checkIn.Add(2 * time.Hour)
	f.sessions.AddSession(&domain.WorkSession{
		UserID:       f.user.ID,
		WorkspaceID:  1,
		CheckIn:      checkIn,
		CheckOut:     &checkOut,
		Status:       domain.SessionClosed,
		TotalMinutes: 120,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workspaces/1/work-sessions/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupWorkspaceContext(c, f.user, f.membership)

	if err := f.handler.Summary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var summary domain.MySummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if summary.Today.WorkedMinutes != 120 {
		t.Errorf("Expected 120 worked minutes today, got %d", summary.Today.WorkedMinutes)
	}
}
