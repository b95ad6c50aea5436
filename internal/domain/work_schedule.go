package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleStatus is the lifecycle state of a planned shift window
type ScheduleStatus string

const (
	SchedulePending   ScheduleStatus = "PENDING"
	ScheduleConfirmed ScheduleStatus = "CONFIRMED"
	ScheduleDeclined  ScheduleStatus = "DECLINED"
)

// Valid reports whether the status is a known value
func (s ScheduleStatus) Valid() bool {
	return s == SchedulePending || s == ScheduleConfirmed || s == ScheduleDeclined
}

// WorkSchedule is a planned shift window for a membership. Windows for
// the same membership and date must not overlap on [StartTime, EndTime).
type WorkSchedule struct {
	ID           int32          `json:"id"`
	MembershipID int32          `json:"membershipId"`
	Date         time.Time      `json:"date"`
	StartTime    time.Time      `json:"startTime"`
	EndTime      time.Time      `json:"endTime"`
	Status       ScheduleStatus `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// ScheduleWithUser is a schedule joined with the member it belongs to,
// for workspace-wide listings.
type ScheduleWithUser struct {
	WorkSchedule
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
}

// WorkScheduleRepository defines the interface for schedule persistence operations
type WorkScheduleRepository interface {
	// GetByID returns the schedule only if it belongs to the workspace.
	GetByID(id int32, workspaceID int32) (*WorkSchedule, error)
	// FindOverlapping returns a schedule of the membership on the date
	// whose [start, end) window intersects the given one, or an error
	// matching ErrNotFound. excludeID, when nonzero, ignores that row.
	FindOverlapping(membershipID int32, date time.Time, start, end time.Time, excludeID int32) (*WorkSchedule, error)
	Create(schedule *WorkSchedule) (*WorkSchedule, error)
	Update(schedule *WorkSchedule) (*WorkSchedule, error)
	UpdateStatus(id int32, status ScheduleStatus) (*WorkSchedule, error)
	// Delete removes the schedule if it belongs to the workspace and
	// reports whether a row was removed.
	Delete(id int32, workspaceID int32) (bool, error)
	ListByWorkspace(workspaceID int32) ([]*ScheduleWithUser, error)
	ListByMember(userID uuid.UUID, workspaceID int32) ([]*WorkSchedule, error)
}
