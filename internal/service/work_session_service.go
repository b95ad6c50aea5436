package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/shiftly/shiftly-backend/internal/domain"
	"github.com/shiftly/shiftly-backend/internal/util"
)

// WorkSessionService handles the check-in/check-out ledger and shift
// classification
type WorkSessionService struct {
	sessions    domain.WorkSessionRepository
	memberships domain.MembershipRepository
	tips        domain.TipPoolRepository
	now         func() time.Time
}

// NewWorkSessionService creates a new WorkSessionService
func NewWorkSessionService(sessions domain.WorkSessionRepository, memberships domain.MembershipRepository, tips domain.TipPoolRepository) *WorkSessionService {
	return &WorkSessionService{
		sessions:    sessions,
		memberships: memberships,
		tips:        tips,
		now:         time.Now,
	}
}

// CheckIn opens a session for the user in the workspace
func (s *WorkSessionService) CheckIn(userID uuid.UUID, workspaceID int32) (*domain.WorkSession, error) {
	if _, err := s.memberships.GetByUserAndWorkspace(userID, workspaceID); err != nil {
		return nil, domain.ErrNotWorkspaceMember
	}

	if _, err := s.sessions.FindOpen(userID, workspaceID); err == nil {
		return nil, domain.ErrOpenSessionExists
	}

	now := s.now().UTC()
	start, end := util.DayRangeUTC(now)
	count, err := s.sessions.CountInRange(userID, workspaceID, start, end)
	if err != nil {
		return nil, err
	}
	if count >= domain.MaxCheckInsPerDay {
		return nil, domain.ErrCheckInLimit
	}

	return s.sessions.Create(&domain.WorkSession{
		UserID:      userID,
		WorkspaceID: workspaceID,
		CheckIn:     now,
		Status:      domain.SessionOpen,
	})
}

// CheckOut closes the user's open session and computes its minutes
func (s *WorkSessionService) CheckOut(userID uuid.UUID, workspaceID int32) (*domain.WorkSession, error) {
	session, err := s.sessions.FindOpen(userID, workspaceID)
	if err != nil {
		return nil, domain.ErrNoOpenSession
	}

	now := s.now().UTC()
	total, extra := domain.SessionMinutes(session.CheckIn, now)
	return s.sessions.Close(session.ID, now, total, extra)
}

// TodaySession returns the user's most recent session of the current UTC day
func (s *WorkSessionService) TodaySession(userID uuid.UUID, workspaceID int32) (*domain.WorkSession, error) {
	start, end := util.DayRangeUTC(s.now().UTC())
	return s.sessions.LatestInRange(userID, workspaceID, start, end)
}

// SessionsByUser lists all of a user's sessions, most recent first
func (s *WorkSessionService) SessionsByUser(userID uuid.UUID) ([]*domain.WorkSession, error) {
	return s.sessions.ListByUser(userID)
}

// MySummary aggregates the user's closed minutes and tips for today,
// this week (Monday start), and this month, all on UTC boundaries
func (s *WorkSessionService) MySummary(userID uuid.UUID, workspaceID int32) (*domain.MySummary, error) {
	now := s.now().UTC()
	summary := &domain.MySummary{}

	periods := []struct {
		since time.Time
		out   *domain.PeriodSummary
	}{
		{util.StartOfDayUTC(now), &summary.Today},
		{util.StartOfWeekUTC(now), &summary.ThisWeek},
		{util.StartOfMonthUTC(now), &summary.ThisMonth},
	}
	for _, p := range periods {
		totals, err := s.sessions.SumClosedMinutesSince(userID, workspaceID, p.since)
		if err != nil {
			return nil, err
		}
		tips, err := s.tips.SumByUserSince(userID, p.since)
		if err != nil {
			return nil, err
		}
		p.out.Date = p.since
		p.out.WorkedMinutes = totals.TotalMinutes
		p.out.ExtraMinutes = totals.ExtraMinutes
		p.out.Tips = tips
	}
	return summary, nil
}

// AssignShift labels a closed session with a shift. The label is set
// exactly once, and a user gets at most one session per shift per UTC day.
func (s *WorkSessionService) AssignShift(sessionID int32, shift domain.WorkShift) (*domain.WorkSession, error) {
	if !shift.Valid() {
		return nil, domain.ErrInvalidInput
	}

	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionClosed {
		return nil, domain.ErrSessionNotClosed
	}
	if session.Shift != nil {
		return nil, domain.ErrShiftAlreadySet
	}

	start, end := util.DayRangeUTC(session.CheckIn)
	if _, err := s.sessions.FindByShiftOnDay(session.UserID, shift, start, end); err == nil {
		return nil, domain.ErrShiftSlotTaken
	}

	return s.sessions.AssignShift(sessionID, shift)
}

// ActiveWorkers lists everyone with an open session right now
func (s *WorkSessionService) ActiveWorkers() ([]*domain.ActiveWorker, error) {
	return s.sessions.ListActiveWorkers()
}

// AllSessions lists every session, most recent first
func (s *WorkSessionService) AllSessions() ([]*domain.WorkSession, error) {
	return s.sessions.ListAll()
}
