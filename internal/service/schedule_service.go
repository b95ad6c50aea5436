package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/shiftly/shiftly-backend/internal/domain"
	"github.com/shiftly/shiftly-backend/internal/util"
)

// ScheduleService handles planned shift windows per membership
type ScheduleService struct {
	schedules   domain.WorkScheduleRepository
	memberships domain.MembershipRepository
	now         func() time.Time
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(schedules domain.WorkScheduleRepository, memberships domain.MembershipRepository) *ScheduleService {
	return &ScheduleService{schedules: schedules, memberships: memberships, now: time.Now}
}

// Create plans a shift window for the target membership. The membership
// must belong to the workspace the admin is operating on.
func (s *ScheduleService) Create(workspaceID, membershipID int32, date, start, end time.Time) (*domain.WorkSchedule, error) {
	membership, err := s.memberships.GetByID(membershipID)
	if err != nil || membership.WorkspaceID != workspaceID {
		return nil, domain.ErrMembershipNotFound
	}

	day := util.StartOfDayUTC(date)
	if err := s.validateWindow(start, end); err != nil {
		return nil, err
	}
	if err := s.checkOverlap(membership.ID, day, start, end, 0); err != nil {
		return nil, err
	}

	return s.schedules.Create(&domain.WorkSchedule{
		MembershipID: membership.ID,
		Date:         day,
		StartTime:    start.UTC(),
		EndTime:      end.UTC(),
		Status:       domain.SchedulePending,
	})
}

// Update moves a schedule to a new date or window
func (s *ScheduleService) Update(workspaceID, scheduleID int32, date, start, end time.Time) (*domain.WorkSchedule, error) {
	schedule, err := s.schedules.GetByID(scheduleID, workspaceID)
	if err != nil {
		return nil, err
	}

	day := util.StartOfDayUTC(date)
	if err := s.validateWindow(start, end); err != nil {
		return nil, err
	}
	if err := s.checkOverlap(schedule.MembershipID, day, start, end, scheduleID); err != nil {
		return nil, err
	}

	schedule.Date = day
	schedule.StartTime = start.UTC()
	schedule.EndTime = end.UTC()
	return s.schedules.Update(schedule)
}

// UpdateStatus lets the owning member confirm or decline a schedule
func (s *ScheduleService) UpdateStatus(workspaceID, scheduleID int32, userID uuid.UUID, status domain.ScheduleStatus) (*domain.WorkSchedule, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}

	schedule, err := s.schedules.GetByID(scheduleID, workspaceID)
	if err != nil {
		return nil, err
	}
	membership, err := s.memberships.GetByUserAndWorkspace(userID, workspaceID)
	if err != nil || membership.ID != schedule.MembershipID {
		return nil, domain.ErrForbidden
	}

	return s.schedules.UpdateStatus(scheduleID, status)
}

// Delete removes a schedule from the workspace
func (s *ScheduleService) Delete(workspaceID, scheduleID int32) error {
	deleted, err := s.schedules.Delete(scheduleID, workspaceID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrScheduleNotFound
	}
	return nil
}

// ListWorkspace lists every schedule of the workspace with member info
func (s *ScheduleService) ListWorkspace(workspaceID int32) ([]*domain.ScheduleWithUser, error) {
	return s.schedules.ListByWorkspace(workspaceID)
}

// ListMine lists the user's schedules within the workspace
func (s *ScheduleService) ListMine(userID uuid.UUID, workspaceID int32) ([]*domain.WorkSchedule, error) {
	return s.schedules.ListByMember(userID, workspaceID)
}

func (s *ScheduleService) validateWindow(start, end time.Time) error {
	if !end.After(start) {
		return domain.ErrInvalidTimeRange
	}
	if start.Before(s.now().UTC()) {
		return domain.ErrScheduleInPast
	}
	return nil
}

// checkOverlap rejects windows intersecting another schedule of the same
// membership on the same date. excludeID skips the schedule being updated.
func (s *ScheduleService) checkOverlap(membershipID int32, day, start, end time.Time, excludeID int32) error {
	_, err := s.schedules.FindOverlapping(membershipID, day, start.UTC(), end.UTC(), excludeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	return domain.ErrScheduleOverlap
}
