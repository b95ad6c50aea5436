package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shiftly/shiftly-backend/internal/domain"
	"github.com/shiftly/shiftly-backend/internal/testutil"
)

func newScheduleFixture() (*ScheduleService, *testutil.MockWorkScheduleRepository, *testutil.MockMembershipRepository) {
	users := testutil.NewMockUserRepository()
	memberships := testutil.NewMockMembershipRepository()
	schedules := testutil.NewMockWorkScheduleRepository(memberships, users)
	svc := NewScheduleService(schedules, memberships)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, schedules, memberships
}

func enrollMember(memberships *testutil.MockMembershipRepository, workspaceID int32) *domain.Membership {
	mb := &domain.Membership{
		ID:          memberships.NextID,
		UserID:      uuid.New(),
		WorkspaceID: workspaceID,
		Role:        domain.RoleEmployee,
	}
	memberships.AddMembership(mb)
	return mb
}

func TestScheduleService_Create_Success(t *testing.T) {
	svc, _, memberships := newScheduleFixture()
	member := enrollMember(memberships, 1)

	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	schedule, err := svc.Create(1, member.ID, date, date.Add(9*time.Hour), date.Add(17*time.Hour))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if schedule.Status != domain.SchedulePending {
		t.Errorf("expected PENDING, got %s", schedule.Status)
	}
	if !schedule.Date.Equal(date) {
		t.Errorf("expected date %v, got %v", date, schedule.Date)
	}
	if schedule.MembershipID != member.ID {
		t.Errorf("expected membership %d, got %d", member.ID, schedule.MembershipID)
	}
}

func TestScheduleService_Create_UnknownMembership(t *testing.T) {
	svc, _, memberships := newScheduleFixture()
	foreign := enrollMember(memberships, 2)

	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(1, 99, date, date.Add(9*time.Hour), date.Add(17*time.Hour))
	if !errors.Is(err, domain.ErrMembershipNotFound) {
		t.Fatalf("expected ErrMembershipNotFound, got %v", err)
	}

	// A membership of another workspace is just as unknown here
	_, err = svc.Create(1, foreign.ID, date, date.Add(9*time.Hour), date.Add(17*time.Hour))
	if !errors.Is(err, domain.ErrMembershipNotFound) {
		t.Fatalf("expected ErrMembershipNotFound for foreign membership, got %v", err)
	}
}

func TestScheduleService_Create_Overlap(t *testing.T) {
	svc, _, memberships := newScheduleFixture()
	member := enrollMember(memberships, 1)

	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Create(1, member.ID, date, date.Add(9*time.Hour), date.Add(17*time.Hour)); err != nil {
		t.Fatalf("first schedule failed: %v", err)
	}

	// Intersecting window is rejected
	_, err := svc.Create(1, member.ID, date, date.Add(16*time.Hour), date.Add(20*time.Hour))
	if !errors.Is(err, domain.ErrScheduleOverlap) {
		t.Fatalf("expected ErrScheduleOverlap, got %v", err)
	}

	// Adjacent window ([17:00, 20:00) after [09:00, 17:00)) is fine
	if _, err := svc.Create(1, member.ID, date, date.Add(17*time.Hour), date.Add(20*time.Hour)); err != nil {
		t.Fatalf("adjacent schedule failed: %v", err)
	}

	// Same window on another day is fine
	nextDay := date.AddDate(0, 0, 1)
	if _, err := svc.Create(1, member.ID, nextDay, nextDay.Add(9*time.Hour), nextDay.Add(17*time.Hour)); err != nil {
		t.Fatalf("next-day schedule failed: %v", err)
	}
}

// notFoundOverlapRepo reports a missing overlap row with the same sentinel
// the postgres scan helper produces for schedules.
type notFoundOverlapRepo struct {
	*testutil.MockWorkScheduleRepository
}

func (r notFoundOverlapRepo) FindOverlapping(membershipID int32, date time.Time, start, end time.Time, excludeID int32) (*domain.WorkSchedule, error) {
	return nil, domain.ErrScheduleNotFound
}

func TestScheduleService_Create_NoOverlapRowSentinel(t *testing.T) {
	users := testutil.NewMockUserRepository()
	memberships := testutil.NewMockMembershipRepository()
	schedules := testutil.NewMockWorkScheduleRepository(memberships, users)
	svc := NewScheduleService(notFoundOverlapRepo{schedules}, memberships)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	member := enrollMember(memberships, 1)

	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	schedule, err := svc.Create(1, member.ID, date, date.Add(9*time.Hour), date.Add(17*time.Hour))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if schedule.MembershipID != member.ID {
		t.Errorf("expected membership %d, got %d", member.ID, schedule.MembershipID)
	}
}

func TestScheduleService_Create_InvalidWindows(t *testing.T) {
	svc, _, memberships := newScheduleFixture()
	member := enrollMember(memberships, 1)

	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(1, member.ID, date, date.Add(17*time.Hour), date.Add(9*time.Hour))
	if !errors.Is(err, domain.ErrInvalidTimeRange) {
		t.Errorf("expected ErrInvalidTimeRange, got %v", err)
	}

	past := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.Create(1, member.ID, past, past.Add(9*time.Hour), past.Add(17*time.Hour))
	if !errors.Is(err, domain.ErrScheduleInPast) {
		t.Errorf("expected ErrScheduleInPast, got %v", err)
	}
}

func TestScheduleService_Update_ExcludesSelf(t *testing.T) {
	svc, _, memberships := newScheduleFixture()
	member := enrollMember(memberships, 1)

	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	schedule, err := svc.Create(1, member.ID, date, date.Add(9*time.Hour), date.Add(17*time.Hour))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Shrinking the same window overlaps only itself and must succeed
	updated, err := svc.Update(1, schedule.ID, date, date.Add(10*time.Hour), date.Add(16*time.Hour))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !updated.StartTime.Equal(date.Add(10 * time.Hour)) {
		t.Errorf("expected moved start, got %v", updated.StartTime)
	}
}

func TestScheduleService_UpdateStatus_OwnerOnly(t *testing.T) {
	svc, _, memberships := newScheduleFixture()
	owner := enrollMember(memberships, 1)
	other := enrollMember(memberships, 1)

	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	schedule, err := svc.Create(1, owner.ID, date, date.Add(9*time.Hour), date.Add(17*time.Hour))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.UpdateStatus(1, schedule.ID, other.UserID, domain.ScheduleConfirmed); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := svc.UpdateStatus(1, schedule.ID, owner.UserID, domain.ScheduleConfirmed)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Status != domain.ScheduleConfirmed {
		t.Errorf("expected CONFIRMED, got %s", updated.Status)
	}

	if _, err := svc.UpdateStatus(1, schedule.ID, owner.UserID, "MAYBE"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestScheduleService_Delete(t *testing.T) {
	svc, _, memberships := newScheduleFixture()
	member := enrollMember(memberships, 1)

	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	schedule, err := svc.Create(1, member.ID, date, date.Add(9*time.Hour), date.Add(17*time.Hour))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Scoped to the owning workspace
	if err := svc.Delete(2, schedule.ID); !errors.Is(err, domain.ErrScheduleNotFound) {
		t.Fatalf("expected ErrScheduleNotFound for foreign workspace, got %v", err)
	}
	if err := svc.Delete(1, schedule.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.Delete(1, schedule.ID); !errors.Is(err, domain.ErrScheduleNotFound) {
		t.Fatalf("expected ErrScheduleNotFound after delete, got %v", err)
	}
}
