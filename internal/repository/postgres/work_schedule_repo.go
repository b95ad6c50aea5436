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

// WorkScheduleRepository implements domain.WorkScheduleRepository using PostgreSQL
type WorkScheduleRepository struct {
	pool *pgxpool.Pool
}

// NewWorkScheduleRepository creates a new WorkScheduleRepository
func NewWorkScheduleRepository(pool *pgxpool.Pool) *WorkScheduleRepository {
	return &WorkScheduleRepository{pool: pool}
}

const scheduleColumns = `id, membership_id, date, start_time, end_time, status, created_at, updated_at`

// GetByID retrieves a schedule, scoped to the workspace through its membership
func (r *WorkScheduleRepository) GetByID(id int32, workspaceID int32) (*domain.WorkSchedule, error) {
	query := `
		SELECT s.id, s.membership_id, s.date, s.start_time, s.end_time, s.status, s.created_at, s.updated_at
		FROM work_schedules s
		JOIN memberships m ON m.id = s.membership_id
		WHERE s.id = $1 AND m.workspace_id = $2`
	return scanSchedule(r.pool.QueryRow(context.Background(), query, id, workspaceID))
}

// FindOverlapping returns a schedule of the membership on the date whose
// [start, end) window intersects the given one, ignoring excludeID
func (r *WorkScheduleRepository) FindOverlapping(membershipID int32, date time.Time, start, end time.Time, excludeID int32) (*domain.WorkSchedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM work_schedules
		WHERE membership_id = $1 AND date = $2 AND start_time < $4 AND end_time > $3 AND id <> $5
		LIMIT 1`
	return scanSchedule(r.pool.QueryRow(context.Background(), query, membershipID, date, start, end, excludeID))
}

// Create creates a new schedule
func (r *WorkScheduleRepository) Create(schedule *domain.WorkSchedule) (*domain.WorkSchedule, error) {
	query := `
		INSERT INTO work_schedules (membership_id, date, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + scheduleColumns
	return scanSchedule(r.pool.QueryRow(context.Background(), query,
		schedule.MembershipID, schedule.Date, schedule.StartTime, schedule.EndTime, schedule.Status))
}

// Update rewrites a schedule's date and window
func (r *WorkScheduleRepository) Update(schedule *domain.WorkSchedule) (*domain.WorkSchedule, error) {
	query := `
		UPDATE work_schedules
		SET date = $2, start_time = $3, end_time = $4, updated_at = now()
		WHERE id = $1
		RETURNING ` + scheduleColumns
	return scanSchedule(r.pool.QueryRow(context.Background(), query,
		schedule.ID, schedule.Date, schedule.StartTime, schedule.EndTime))
}

// UpdateStatus sets a schedule's status
func (r *WorkScheduleRepository) UpdateStatus(id int32, status domain.ScheduleStatus) (*domain.WorkSchedule, error) {
	query := `
		UPDATE work_schedules
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + scheduleColumns
	return scanSchedule(r.pool.QueryRow(context.Background(), query, id, status))
}

// Delete removes a schedule if it belongs to the workspace
func (r *WorkScheduleRepository) Delete(id int32, workspaceID int32) (bool, error) {
	tag, err := r.pool.Exec(context.Background(), `
		DELETE FROM work_schedules s
		USING memberships m
		WHERE s.id = $1 AND m.id = s.membership_id AND m.workspace_id = $2`, id, workspaceID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListByWorkspace lists all schedules of a workspace with member info, by date
func (r *WorkScheduleRepository) ListByWorkspace(workspaceID int32) ([]*domain.ScheduleWithUser, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT s.id, s.membership_id, s.date, s.start_time, s.end_time, s.status, s.created_at, s.updated_at,
		       u.id, u.username
		FROM work_schedules s
		JOIN memberships m ON m.id = s.membership_id
		JOIN users u ON u.id = m.user_id
		WHERE m.workspace_id = $1
		ORDER BY s.date ASC, s.start_time ASC`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []*domain.ScheduleWithUser
	for rows.Next() {
		var s domain.ScheduleWithUser
		if err := rows.Scan(&s.ID, &s.MembershipID, &s.Date, &s.StartTime, &s.EndTime,
			&s.Status, &s.CreatedAt, &s.UpdatedAt, &s.UserID, &s.Username); err != nil {
			return nil, err
		}
		schedules = append(schedules, &s)
	}
	return schedules, rows.Err()
}

// ListByMember lists a user's schedules within a workspace, by date
func (r *WorkScheduleRepository) ListByMember(userID uuid.UUID, workspaceID int32) ([]*domain.WorkSchedule, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT s.id, s.membership_id, s.date, s.start_time, s.end_time, s.status, s.created_at, s.updated_at
		FROM work_schedules s
		JOIN memberships m ON m.id = s.membership_id
		WHERE m.user_id = $1 AND m.workspace_id = $2
		ORDER BY s.date ASC, s.start_time ASC`, userID, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []*domain.WorkSchedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

func scanSchedule(row pgx.Row) (*domain.WorkSchedule, error) {
	var s domain.WorkSchedule
	err := row.Scan(&s.ID, &s.MembershipID, &s.Date, &s.StartTime, &s.EndTime,
		&s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrScheduleNotFound
		}
		return nil, err
	}
	return &s, nil
}
