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

// TipPoolRepository implements domain.TipPoolRepository using PostgreSQL
type TipPoolRepository struct {
	pool *pgxpool.Pool
}

// NewTipPoolRepository creates a new TipPoolRepository
func NewTipPoolRepository(pool *pgxpool.Pool) *TipPoolRepository {
	return &TipPoolRepository{pool: pool}
}

const poolColumns = `id, date, shift, total_amount, created_at`

// GetByDateAndShift retrieves the pool for a day key and shift
func (r *TipPoolRepository) GetByDateAndShift(date time.Time, shift domain.WorkShift) (*domain.TipPool, error) {
	query := `SELECT ` + poolColumns + ` FROM tip_pools WHERE date = $1 AND shift = $2`
	return scanPool(r.pool.QueryRow(context.Background(), query, date, shift))
}

// ListAll retrieves every pool with its distribution rows
func (r *TipPoolRepository) ListAll() ([]*domain.TipPoolWithDistributions, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+poolColumns+` FROM tip_pools ORDER BY date DESC, shift`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int32]*domain.TipPoolWithDistributions)
	var pools []*domain.TipPoolWithDistributions
	for rows.Next() {
		p, err := scanPool(rows)
		if err != nil {
			return nil, err
		}
		wp := &domain.TipPoolWithDistributions{TipPool: *p}
		byID[p.ID] = wp
		pools = append(pools, wp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Single pass over distributions instead of one query per pool
	distRows, err := r.pool.Query(ctx,
		`SELECT id, tip_pool_id, user_id, amount FROM tip_distributions ORDER BY tip_pool_id`)
	if err != nil {
		return nil, err
	}
	defer distRows.Close()
	for distRows.Next() {
		var d domain.TipDistribution
		if err := distRows.Scan(&d.ID, &d.TipPoolID, &d.UserID, &d.Amount); err != nil {
			return nil, err
		}
		if p, ok := byID[d.TipPoolID]; ok {
			p.Distributions = append(p.Distributions, &d)
		}
	}
	return pools, distRows.Err()
}

// ListByUser retrieves all of a user's daily tips, most recent first
func (r *TipPoolRepository) ListByUser(userID uuid.UUID) ([]*domain.DailyTip, error) {
	return r.queryDailyTips(`
		SELECT p.date, p.shift, d.amount, p.total_amount
		FROM tip_distributions d
		JOIN tip_pools p ON p.id = d.tip_pool_id
		WHERE d.user_id = $1
		ORDER BY p.date DESC`, userID)
}

// ListByUserSince retrieves a user's daily tips for pools dated at or after since
func (r *TipPoolRepository) ListByUserSince(userID uuid.UUID, since time.Time) ([]*domain.DailyTip, error) {
	return r.queryDailyTips(`
		SELECT p.date, p.shift, d.amount, p.total_amount
		FROM tip_distributions d
		JOIN tip_pools p ON p.id = d.tip_pool_id
		WHERE d.user_id = $1 AND p.date >= $2
		ORDER BY p.date DESC`, userID, since)
}

// SumByUserSince sums a user's distribution amounts for pools dated at or after since
func (r *TipPoolRepository) SumByUserSince(userID uuid.UUID, since time.Time) (int, error) {
	var sum int
	err := r.pool.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(d.amount), 0)
		FROM tip_distributions d
		JOIN tip_pools p ON p.id = d.tip_pool_id
		WHERE d.user_id = $1 AND p.date >= $2`, userID, since).Scan(&sum)
	return sum, err
}

// SumByUser sums all of a user's distribution amounts
func (r *TipPoolRepository) SumByUser(userID uuid.UUID) (int, error) {
	var sum int
	err := r.pool.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(amount), 0) FROM tip_distributions WHERE user_id = $1`,
		userID).Scan(&sum)
	return sum, err
}

// InTx runs fn inside one database transaction. Rolls back on any error,
// so force-closed sessions never outlive a failed pool creation.
func (r *TipPoolRepository) InTx(fn func(tx domain.PoolTx) error) error {
	ctx := context.Background()
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&poolTx{ctx: ctx, tx: tx})
	})
}

func (r *TipPoolRepository) queryDailyTips(query string, args ...any) ([]*domain.DailyTip, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tips []*domain.DailyTip
	for rows.Next() {
		var t domain.DailyTip
		if err := rows.Scan(&t.Date, &t.Shift, &t.Amount, &t.TotalPoolAmount); err != nil {
			return nil, err
		}
		tips = append(tips, &t)
	}
	return tips, rows.Err()
}

func scanPool(row pgx.Row) (*domain.TipPool, error) {
	var p domain.TipPool
	err := row.Scan(&p.ID, &p.Date, &p.Shift, &p.TotalAmount, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// poolTx implements domain.PoolTx over a pgx transaction
type poolTx struct {
	ctx context.Context
	tx  pgx.Tx
}

func (t *poolTx) OpenSessions(start, end time.Time) ([]*domain.WorkSession, error) {
	rows, err := t.tx.Query(t.ctx, `
		SELECT `+sessionColumns+`
		FROM work_sessions
		WHERE status = 'OPEN' AND check_in BETWEEN $1 AND $2
		FOR UPDATE`, start, end)
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

func (t *poolTx) CloseSession(id int32, checkOut time.Time, totalMinutes, extraMinutes int) error {
	tag, err := t.tx.Exec(t.ctx, `
		UPDATE work_sessions
		SET check_out = $2, total_minutes = $3, extra_minutes = $4, status = 'CLOSED'
		WHERE id = $1`, id, checkOut, totalMinutes, extraMinutes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (t *poolTx) HasUnclassified(start, end time.Time) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(t.ctx, `
		SELECT EXISTS (
			SELECT 1 FROM work_sessions
			WHERE status = 'CLOSED' AND shift IS NULL AND check_in BETWEEN $1 AND $2
		)`, start, end).Scan(&exists)
	return exists, err
}

func (t *poolTx) ClosedSessionUserIDs(start, end time.Time, shift domain.WorkShift) ([]uuid.UUID, error) {
	rows, err := t.tx.Query(t.ctx, `
		SELECT user_id
		FROM work_sessions
		WHERE status = 'CLOSED' AND shift = $3 AND check_in BETWEEN $1 AND $2`,
		start, end, shift)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (t *poolTx) InsertPool(pool *domain.TipPool) (*domain.TipPool, error) {
	return scanPool(t.tx.QueryRow(t.ctx, `
		INSERT INTO tip_pools (date, shift, total_amount)
		VALUES ($1, $2, $3)
		RETURNING `+poolColumns, pool.Date, pool.Shift, pool.TotalAmount))
}

func (t *poolTx) InsertDistributions(poolID int32, userIDs []uuid.UUID, amount int) error {
	batch := &pgx.Batch{}
	for _, userID := range userIDs {
		batch.Queue(`INSERT INTO tip_distributions (tip_pool_id, user_id, amount) VALUES ($1, $2, $3)`,
			poolID, userID, amount)
	}
	return t.tx.SendBatch(t.ctx, batch).Close()
}
