package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiftly/shiftly-backend/internal/domain"
)

// WorkSessionRepository implements domain.WorkSessionRepository using PostgreSQL
type WorkSessionRepository struct {
	pool *pgxpool.Pool
}

// NewWorkSessionRepository creates a new WorkSessionRepository
func NewWorkSessionRepository(pool *pgxpool.Pool) *WorkSessionRepository {
	return &WorkSessionRepository{pool: pool}
}

const sessionColumns = `id, user_id, workspace_id, check_in, check_out, status, total_minutes, extra_minutes, shift`

// GetByID retrieves a session by its ID
func (r *WorkSessionRepository) GetByID(id int32) (*domain.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions WHERE id = $1`
	return scanSession(r.pool.QueryRow(context.Background(), query, id))
}

// Create creates a new session
func (r *WorkSessionRepository) Create(session *domain.WorkSession) (*domain.WorkSession, error) {
	query := `
		INSERT INTO work_sessions (user_id, workspace_id, check_in, status, total_minutes, extra_minutes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + sessionColumns
	return scanSession(r.pool.QueryRow(context.Background(), query,
		session.UserID, session.WorkspaceID, session.CheckIn, session.Status,
		session.TotalMinutes, session.ExtraMinutes))
}

// FindOpen returns the open session for (user, workspace)
func (r *WorkSessionRepository) FindOpen(userID uuid.UUID, workspaceID int32) (*domain.WorkSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM work_sessions
		WHERE user_id = $1 AND workspace_id = $2 AND status = $3
		LIMIT 1`
	return scanSession(r.pool.QueryRow(context.Background(), query, userID, workspaceID, domain.SessionOpen))
}

// CountInRange counts the user's sessions with check-in inside [start, end]
func (r *WorkSessionRepository) CountInRange(userID uuid.UUID, workspaceID int32, start, end time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(context.Background(), `
		SELECT COUNT(*)
		FROM work_sessions
		WHERE user_id = $1 AND workspace_id = $2 AND check_in BETWEEN $3 AND $4`,
		userID, workspaceID, start, end).Scan(&count)
	return count, err
}

// Close marks a session CLOSED with its computed minutes
func (r *WorkSessionRepository) Close(id int32, checkOut time.Time, totalMinutes, extraMinutes int) (*domain.WorkSession, error) {
	query := `
		UPDATE work_sessions
		SET check_out = $2, total_minutes = $3, extra_minutes = $4, status = $5
		WHERE id = $1
		RETURNING ` + sessionColumns
	return scanSession(r.pool.QueryRow(context.Background(), query,
		id, checkOut, totalMinutes, extraMinutes, domain.SessionClosed))
}

// AssignShift sets a session's shift label
func (r *WorkSessionRepository) AssignShift(id int32, shift domain.WorkShift) (*domain.WorkSession, error) {
	query := `
		UPDATE work_sessions
		SET shift = $2
		WHERE id = $1
		RETURNING ` + sessionColumns
	return scanSession(r.pool.QueryRow(context.Background(), query, id, shift))
}

// FindByShiftOnDay returns any session of the user with the given shift
// label checked in inside [start, end]
func (r *WorkSessionRepository) FindByShiftOnDay(userID uuid.UUID, shift domain.WorkShift, start, end time.Time) (*domain.WorkSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM work_sessions
		WHERE user_id = $1 AND shift = $2 AND check_in BETWEEN $3 AND $4
		LIMIT 1`
	return scanSession(r.pool.QueryRow(context.Background(), query, userID, shift, start, end))
}

// LatestInRange returns the user's most recent session checked in inside [start, end]
func (r *WorkSessionRepository) LatestInRange(userID uuid.UUID, workspaceID int32, start, end time.Time) (*domain.WorkSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM work_sessions
		WHERE user_id = $1 AND workspace_id = $2 AND check_in BETWEEN $3 AND $4
		ORDER BY check_in DESC
		LIMIT 1`
	return scanSession(r.pool.QueryRow(context.Background(), query, userID, workspaceID, start, end))
}

// ListByUser lists all sessions of a user, most recent first
func (r *WorkSessionRepository) ListByUser(userID uuid.UUID) ([]*domain.WorkSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM work_sessions
		WHERE user_id = $1
		ORDER BY check_in DESC`
	return r.querySessions(query, userID)
}

// ListClosedByUserSince lists closed sessions of a user checked in at or after since
func (r *WorkSessionRepository) ListClosedByUserSince(userID uuid.UUID, since time.Time) ([]*domain.WorkSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM work_sessions
		WHERE user_id = $1 AND status = 'CLOSED' AND check_in >= $2
		ORDER BY check_in ASC`
	return r.querySessions(query, userID, since)
}

// ListClosedByUserInRange lists closed sessions of a user checked in inside [start, end]
func (r *WorkSessionRepository) ListClosedByUserInRange(userID uuid.UUID, start, end time.Time) ([]*domain.WorkSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM work_sessions
		WHERE user_id = $1 AND status = 'CLOSED' AND check_in BETWEEN $2 AND $3
		ORDER BY check_in ASC`
	return r.querySessions(query, userID, start, end)
}

// SumClosedMinutesSince sums closed-session minutes from since to now
func (r *WorkSessionRepository) SumClosedMinutesSince(userID uuid.UUID, workspaceID int32, since time.Time) (*domain.MinuteTotals, error) {
	var totals domain.MinuteTotals
	err := r.pool.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(total_minutes), 0), COALESCE(SUM(extra_minutes), 0)
		FROM work_sessions
		WHERE user_id = $1 AND workspace_id = $2 AND status = 'CLOSED' AND check_in >= $3`,
		userID, workspaceID, since).Scan(&totals.TotalMinutes, &totals.ExtraMinutes)
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

// ListAll lists every session, most recent first
func (r *WorkSessionRepository) ListAll() ([]*domain.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions ORDER BY check_in DESC`
	return r.querySessions(query)
}

// ListActiveWorkers lists open sessions joined with their users
func (r *WorkSessionRepository) ListActiveWorkers() ([]*domain.ActiveWorker, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT u.id, u.username, u.role, s.check_in
		FROM work_sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.status = 'OPEN'
		ORDER BY s.check_in ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workers []*domain.ActiveWorker
	for rows.Next() {
		var w domain.ActiveWorker
		if err := rows.Scan(&w.UserID, &w.Username, &w.Role, &w.CheckIn); err != nil {
			return nil, err
		}
		workers = append(workers, &w)
	}
	return workers, rows.Err()
}

func (r *WorkSessionRepository) querySessions(query string, args ...any) ([]*domain.WorkSession, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.WorkSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func scanSession(row pgx.Row) (*domain.WorkSession, error) {
	var s domain.WorkSession
	err := row.Scan(&s.ID, &s.UserID, &s.WorkspaceID, &s.CheckIn, &s.CheckOut,
		&s.Status, &s.TotalMinutes, &s.ExtraMinutes, &s.Shift)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}
