package domain

import (
	"time"

	"github.com/google/uuid"
)

// TipPool is a total gratuity amount for a (date, shift) pair, split
// evenly among the unique workers of that shift. Amounts are integer
// currency units. Unique per (date, shift).
type TipPool struct {
	ID          int32     `json:"id"`
	Date        time.Time `json:"date"`
	Shift       WorkShift `json:"shift"`
	TotalAmount int       `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TipDistribution is one worker's share of a tip pool
type TipDistribution struct {
	ID        int32     `json:"id"`
	TipPoolID int32     `json:"tipPoolId"`
	UserID    uuid.UUID `json:"userId"`
	Amount    int       `json:"amount"`
}

// TipPoolWithDistributions is a pool joined with its distribution rows,
// for admin listings.
type TipPoolWithDistributions struct {
	TipPool
	Distributions []*TipDistribution `json:"distributions"`
}

// DailyTip is one day's share for a user, joined with the pool it came from
type DailyTip struct {
	Date            time.Time `json:"date"`
	Shift           WorkShift `json:"shift"`
	Amount          int       `json:"amount"`
	TotalPoolAmount int       `json:"totalPoolAmount"`
}

// PoolTx is the unit of work for pool creation. Every method runs inside
// the same database transaction; if the callback passed to InTx returns
// an error nothing performed through the PoolTx survives, force-closed
// sessions included.
type PoolTx interface {
	// OpenSessions returns OPEN sessions with check-in inside [start, end].
	OpenSessions(start, end time.Time) ([]*WorkSession, error)
	CloseSession(id int32, checkOut time.Time, totalMinutes, extraMinutes int) error
	// HasUnclassified reports whether any CLOSED session in [start, end]
	// still has no shift label.
	HasUnclassified(start, end time.Time) (bool, error)
	// ClosedSessionUserIDs returns the user of every CLOSED session in
	// [start, end] carrying the given shift, duplicates included.
	ClosedSessionUserIDs(start, end time.Time, shift WorkShift) ([]uuid.UUID, error)
	InsertPool(pool *TipPool) (*TipPool, error)
	InsertDistributions(poolID int32, userIDs []uuid.UUID, amount int) error
}

// TipPoolRepository defines the interface for tip pool persistence operations
type TipPoolRepository interface {
	// GetByDateAndShift returns the pool for the day key, or ErrNotFound.
	GetByDateAndShift(date time.Time, shift WorkShift) (*TipPool, error)
	ListAll() ([]*TipPoolWithDistributions, error)
	ListByUser(userID uuid.UUID) ([]*DailyTip, error)
	ListByUserSince(userID uuid.UUID, since time.Time) ([]*DailyTip, error)
	SumByUserSince(userID uuid.UUID, since time.Time) (int, error)
	SumByUser(userID uuid.UUID) (int, error)
	// InTx runs fn inside one database transaction, committing only if fn
	// returns nil.
	InTx(fn func(tx PoolTx) error) error
}
