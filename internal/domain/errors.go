package domain

import (
	"errors"
	"fmt"
)

// Domain errors. Handlers map these to HTTP statuses; services never
// return raw driver errors for business-rule violations. The
// entity-specific not-found errors match ErrNotFound via errors.Is.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalError  = errors.New("internal error")
	ErrUserNotFound   = fmt.Errorf("user: %w", ErrNotFound)
	ErrWorkspaceNotFound  = fmt.Errorf("workspace: %w", ErrNotFound)
	ErrSessionNotFound    = fmt.Errorf("work session: %w", ErrNotFound)
	ErrScheduleNotFound   = fmt.Errorf("schedule: %w", ErrNotFound)
	ErrMembershipNotFound = fmt.Errorf("user or workspace: %w", ErrNotFound)

	// Auth
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminRestricted    = errors.New("admin registration is restricted")
	ErrUserInactive       = errors.New("user is deactivated")

	// Workspaces / membership
	ErrWorkspaceExists  = errors.New("workspace already exists")
	ErrAlreadyMember    = errors.New("user already exists in this workspace")
	ErrNotWorkspaceMember = errors.New("user is not a member of this workspace")

	// Session ledger
	ErrOpenSessionExists = errors.New("there is already an open work session for this user")
	ErrNoOpenSession     = errors.New("there is no open work session for this workspace")
	ErrCheckInLimit      = errors.New("user has already checked in twice today")

	// Shift classifier
	ErrSessionNotClosed    = errors.New("only closed sessions can be updated")
	ErrShiftAlreadySet     = errors.New("shift has already been assigned")
	ErrShiftSlotTaken      = errors.New("user already has a session with this shift for this day")

	// Tip pool allocator
	ErrPoolExists           = errors.New("tip pool for this date and shift already exists")
	ErrNoSessionsForPool    = errors.New("no work sessions found for this date")
	ErrUnclassifiedSessions = errors.New("cannot create tip pool while unclassified sessions remain")
	ErrAmountTooLow         = errors.New("total amount too low")

	// Schedules
	ErrScheduleOverlap   = errors.New("schedule overlaps with another shift")
	ErrScheduleInPast    = errors.New("cannot create schedule in the past")
	ErrInvalidTimeRange  = errors.New("end time must be after start time")
)
