package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the lifecycle state of a work session
type SessionStatus string

const (
	SessionOpen   SessionStatus = "OPEN"
	SessionClosed SessionStatus = "CLOSED"
)

// WorkShift is a named daypart label assigned to a closed session
type WorkShift string

const (
	ShiftMorning WorkShift = "MORNING"
	ShiftEvening WorkShift = "EVENING"
)

// Valid reports whether the shift is a known value
func (s WorkShift) Valid() bool {
	return s == ShiftMorning || s == ShiftEvening
}

// WorkdayMinutes is the baseline beyond which minutes count as overtime
const WorkdayMinutes = 8 * 60

// MaxCheckInsPerDay caps check-ins per user per workspace per calendar day
const MaxCheckInsPerDay = 2

// WorkSession is one check-in-to-check-out work interval for a user
// within a workspace. Shift is assigned after close, exactly once.
type WorkSession struct {
	ID           int32         `json:"id"`
	UserID       uuid.UUID     `json:"userId"`
	WorkspaceID  int32         `json:"workspaceId"`
	CheckIn      time.Time     `json:"checkIn"`
	CheckOut     *time.Time    `json:"checkOut"`
	Status       SessionStatus `json:"status"`
	TotalMinutes int           `json:"totalMinutes"`
	ExtraMinutes int           `json:"extraMinutes"`
	Shift        *WorkShift    `json:"shift"`
}

// SessionMinutes computes worked and overtime minutes for an interval.
// Total is floored to whole minutes and clamped at zero; extra is the
// portion beyond the 480-minute workday.
func SessionMinutes(checkIn, checkOut time.Time) (total, extra int) {
	total = int(checkOut.Sub(checkIn) / time.Minute)
	if total < 0 {
		total = 0
	}
	extra = total - WorkdayMinutes
	if extra < 0 {
		extra = 0
	}
	return total, extra
}

// ActiveWorker is an open session joined with its user, for the admin
// "who is working right now" view.
type ActiveWorker struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
	CheckIn  time.Time `json:"checkIn"`
}

// MinuteTotals aggregates closed-session minutes over a period
type MinuteTotals struct {
	TotalMinutes int
	ExtraMinutes int
}

// WorkSessionRepository defines the interface for session persistence operations
type WorkSessionRepository interface {
	GetByID(id int32) (*WorkSession, error)
	Create(session *WorkSession) (*WorkSession, error)
	// FindOpen returns the open session for (user, workspace), or
	// ErrSessionNotFound when none exists.
	FindOpen(userID uuid.UUID, workspaceID int32) (*WorkSession, error)
	CountInRange(userID uuid.UUID, workspaceID int32, start, end time.Time) (int, error)
	Close(id int32, checkOut time.Time, totalMinutes, extraMinutes int) (*WorkSession, error)
	AssignShift(id int32, shift WorkShift) (*WorkSession, error)
	// FindByShiftOnDay returns any session of the user carrying the given
	// shift label with check-in inside [start, end].
	FindByShiftOnDay(userID uuid.UUID, shift WorkShift, start, end time.Time) (*WorkSession, error)
	LatestInRange(userID uuid.UUID, workspaceID int32, start, end time.Time) (*WorkSession, error)
	ListByUser(userID uuid.UUID) ([]*WorkSession, error)
	ListClosedByUserSince(userID uuid.UUID, since time.Time) ([]*WorkSession, error)
	ListClosedByUserInRange(userID uuid.UUID, start, end time.Time) ([]*WorkSession, error)
	SumClosedMinutesSince(userID uuid.UUID, workspaceID int32, since time.Time) (*MinuteTotals, error)
	ListAll() ([]*WorkSession, error)
	ListActiveWorkers() ([]*ActiveWorker, error)
}
