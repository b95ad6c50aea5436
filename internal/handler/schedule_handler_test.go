package handler

import (
	"encoding/json"
	"fmt"
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
)

type scheduleHandlerFixture struct {
	handler         *ScheduleHandler
	schedules       *testutil.MockWorkScheduleRepository
	memberships     *testutil.MockMembershipRepository
	publisher       *capturePublisher
	user            *domain.User
	membership      *domain.Membership
	admin           *domain.User
	adminMembership *domain.Membership
}

func newScheduleHandlerFixture() *scheduleHandlerFixture {
	users := testutil.NewMockUserRepository()
	memberships := testutil.NewMockMembershipRepository()
	schedules := testutil.NewMockWorkScheduleRepository(memberships, users)
	publisher := &capturePublisher{}

	user := &domain.User{ID: uuid.New(), Username: "alice", Role: domain.RoleEmployee, Active: true}
	users.AddUser(user)
	membership := &domain.Membership{ID: 1, UserID: user.ID, WorkspaceID: 1, Role: domain.RoleEmployee}
	memberships.AddMembership(membership)

	admin := &domain.User{ID: uuid.New(), Username: "boss", Role: domain.RoleAdmin, Active: true}
	users.AddUser(admin)
	adminMembership := &domain.Membership{ID: 2, UserID: admin.ID, WorkspaceID: 1, Role: domain.RoleAdmin}
	memberships.AddMembership(adminMembership)

	return &scheduleHandlerFixture{
		handler:         NewScheduleHandler(service.NewScheduleService(schedules, memberships), publisher),
		schedules:       schedules,
		memberships:     memberships,
		publisher:       publisher,
		user:            user,
		membership:      membership,
		admin:           admin,
		adminMembership: adminMembership,
	}
}

func scheduleBody(membershipID int32, day, start, end time.Time) string {
	return fmt.Sprintf(`{"membershipId":%d,"date":%q,"startTime":%q,"endTime":%q}`,
		membershipID, day.Format("2006-01-02"), start.Format(time.RFC3339), end.Format(time.RFC3339))
}

func TestCreateSchedule(t *testing.T) {
	e := echo.New()
	f := newScheduleHandlerFixture()

	// The admin plans a shift for the employee's membership
	day := util.StartOfDayUTC(time.Now().UTC().Add(48 * time.Hour))
	body := scheduleBody(f.membership.ID, day, day.Add(9*time.Hour), day.Add(17*time.Hour))

	req := jsonRequest(http.MethodPost, "/api/v1/workspaces/1/schedules", body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupWorkspaceContext(c, f.admin, f.adminMembership)

	if err := f.handler.Create(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var schedule domain.WorkSchedule
	if err := json.Unmarshal(rec.Body.Bytes(), &schedule); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if schedule.Status != domain.SchedulePending {
		t.Errorf("Expected PENDING status, got %s", schedule.Status)
	}
	if schedule.MembershipID != f.membership.ID {
		t.Errorf("Expected membership %d, got %d", f.membership.ID, schedule.MembershipID)
	}

	if len(f.publisher.workspaceEvents) != 1 {
		t.Fatalf("Expected 1 published event, got %d", len(f.publisher.workspaceEvents))
	}
	if f.publisher.workspaceEvents[0].Type != "schedule.created" {
		t.Errorf("Expected schedule.created event, got %s", f.publisher.workspaceEvents[0].Type)
	}
}

func TestCreateSchedule_UnknownMembership(t *testing.T) {
	e := echo.New()
	f := newScheduleHandlerFixture()

	day := util.StartOfDayUTC(time.Now().UTC().Add(48 * time.Hour))
	body := scheduleBody(99, day, day.Add(9*time.Hour), day.Add(17*time.Hour))

	req := jsonRequest(http.MethodPost, "/api/v1/workspaces/1/schedules", body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupWorkspaceContext(c, f.admin, f.adminMembership)

	if err := f.handler.Create(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
	if len(f.publisher.workspaceEvents) != 0 {
		t.Errorf("Expected no events on rejection, got %d", len(f.publisher.workspaceEvents))
	}
}

func TestCreateSchedule_Overlap(t *testing.T) {
	e := echo.New()
	f := newScheduleHandlerFixture()

	day := util.StartOfDayUTC(time.Now().UTC().Add(48 * time.Hour))
	f.schedules.AddSchedule(&domain.WorkSchedule{
		ID:           1,
		MembershipID: f.membership.ID,
		Date:         day,
		StartTime:    day.Add(9 * time.Hour),
		EndTime:      day.Add(17 * time.Hour),
		Status:       domain.SchedulePending,
	})

	body := scheduleBody(f.membership.ID, day, day.Add(16*time.Hour), day.Add(20*time.Hour))
	req := jsonRequest(http.MethodPost, "/api/v1/workspaces/1/schedules", body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupWorkspaceContext(c, f.admin, f.adminMembership)

	if err := f.handler.Create(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateSchedule_InvalidWindows(t *testing.T) {
	e := echo.New()
	f := newScheduleHandlerFixture()

	future := util.StartOfDayUTC(time.Now().UTC().Add(48 * time.Hour))
	past := util.StartOfDayUTC(time.Now().UTC().Add(-48 * time.Hour))

	tests := []struct {
		name string
		body string
	}{
		{"end before start", scheduleBody(1, future, future.Add(17*time.Hour), future.Add(9*time.Hour))},
		{"in the past", scheduleBody(1, past, past.Add(9*time.Hour), past.Add(17*time.Hour))},
		{"missing membership", scheduleBody(0, future, future.Add(9*time.Hour), future.Add(17*time.Hour))},
		{"garbage date", `{"membershipId":1,"date":"soon","startTime":"later","endTime":"whenever"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := jsonRequest(http.MethodPost, "/api/v1/workspaces/1/schedules", tt.body)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			setupWorkspaceContext(c, f.admin, f.adminMembership)

			if err := f.handler.Create(c); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestUpdateScheduleStatus_OwnerOnly(t *testing.T) {
	e := echo.New()
	f := newScheduleHandlerFixture()

	day := util.StartOfDayUTC(time.Now().UTC().Add(48 * time.Hour))
	f.schedules.AddSchedule(&domain.WorkSchedule{
		ID:           1,
		MembershipID: f.membership.ID,
		Date:         day,
		StartTime:    day.Add(9 * time.Hour),
		EndTime:      day.Add(17 * time.Hour),
		Status:       domain.SchedulePending,
	})

	// The owner can confirm
	req := jsonRequest(http.MethodPatch, "/api/v1/workspaces/1/schedules/1/status", `{"status":"CONFIRMED"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupWorkspaceContext(c, f.user, f.membership)

	if err := f.handler.UpdateStatus(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(f.publisher.workspaceEvents) != 1 || f.publisher.workspaceEvents[0].Type != "schedule.status_changed" {
		t.Errorf("Expected schedule.status_changed event")
	}

	// Another member of the workspace cannot
	other := &domain.User{ID: uuid.New(), Username: "bob", Role: domain.RoleEmployee, Active: true}
	otherMembership := &domain.Membership{ID: 3, UserID: other.ID, WorkspaceID: 1, Role: domain.RoleEmployee}
	f.memberships.AddMembership(otherMembership)

	req = jsonRequest(http.MethodPatch, "/api/v1/workspaces/1/schedules/1/status", `{"status":"DECLINED"}`)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupWorkspaceContext(c, other, otherMembership)

	if err := f.handler.UpdateStatus(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rec.Code)
	}
}

func TestDeleteSchedule(t *testing.T) {
	e := echo.New()
	f := newScheduleHandlerFixture()

	day := util.StartOfDayUTC(time.Now().UTC().Add(48 * time.Hour))
	f.schedules.AddSchedule(&domain.WorkSchedule{
		ID:           1,
		MembershipID: f.membership.ID,
		Date:         day,
		StartTime:    day.Add(9 * time.Hour),
		EndTime:      day.Add(17 * time.Hour),
		Status:       domain.SchedulePending,
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/workspaces/1/schedules/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupWorkspaceContext(c, f.admin, f.adminMembership)

	if err := f.handler.Delete(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", rec.Code)
	}

	// Deleting again reports not found
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/workspaces/1/schedules/1", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupWorkspaceContext(c, f.admin, f.adminMembership)

	if err := f.handler.Delete(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
