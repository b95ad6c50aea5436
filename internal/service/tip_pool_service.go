package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/shiftly/shiftly-backend/internal/domain"
	"github.com/shiftly/shiftly-backend/internal/util"
)

// TipPoolResult is a created pool together with its split parameters
type TipPoolResult struct {
	*domain.TipPool
	WorkersCount    int `json:"workersCount"`
	AmountPerWorker int `json:"amountPerWorker"`
}

// TipPoolListing is a stored pool with its split parameters reconstructed
// from the distribution rows
type TipPoolListing struct {
	*domain.TipPoolWithDistributions
	WorkersCount    int `json:"workersCount"`
	AmountPerWorker int `json:"amountPerWorker"`
}

// TipPoolService handles tip pool creation and the per-user tip views
type TipPoolService struct {
	pools domain.TipPoolRepository
	now   func() time.Time
}

// NewTipPoolService creates a new TipPoolService
func NewTipPoolService(pools domain.TipPoolRepository) *TipPoolService {
	return &TipPoolService{pools: pools, now: time.Now}
}

// Create distributes totalAmount across the unique workers of the given
// date and shift. Open sessions of the day are force-closed first, then
// the split happens only if every closed session of the day already has a
// shift label. All of it runs in one transaction; any failure leaves the
// sessions exactly as they were.
func (s *TipPoolService) Create(date time.Time, shift domain.WorkShift, totalAmount int) (*TipPoolResult, error) {
	if !shift.Valid() || totalAmount <= 0 {
		return nil, domain.ErrInvalidInput
	}

	day := util.StartOfDayUTC(date)
	start, end := util.DayRangeUTC(date)

	_, err := s.pools.GetByDateAndShift(day, shift)
	if err == nil {
		return nil, domain.ErrPoolExists
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	var result *TipPoolResult
	err = s.pools.InTx(func(tx domain.PoolTx) error {
		open, err := tx.OpenSessions(start, end)
		if err != nil {
			return err
		}
		closeAt := s.now().UTC()
		for _, session := range open {
			total, extra := domain.SessionMinutes(session.CheckIn, closeAt)
			if err := tx.CloseSession(session.ID, closeAt, total, extra); err != nil {
				return err
			}
		}

		unclassified, err := tx.HasUnclassified(start, end)
		if err != nil {
			return err
		}
		if unclassified {
			return domain.ErrUnclassifiedSessions
		}

		userIDs, err := tx.ClosedSessionUserIDs(start, end, shift)
		if err != nil {
			return err
		}
		workers := uniqueIDs(userIDs)
		if len(workers) == 0 {
			return domain.ErrNoSessionsForPool
		}

		amountPerWorker := totalAmount / len(workers)
		if amountPerWorker == 0 {
			return domain.ErrAmountTooLow
		}

		pool, err := tx.InsertPool(&domain.TipPool{
			Date:        day,
			Shift:       shift,
			TotalAmount: totalAmount,
		})
		if err != nil {
			return err
		}
		if err := tx.InsertDistributions(pool.ID, workers, amountPerWorker); err != nil {
			return err
		}

		result = &TipPoolResult{
			TipPool:         pool,
			WorkersCount:    len(workers),
			AmountPerWorker: amountPerWorker,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListAll returns every pool with workersCount and amountPerWorker
// reconstructed from the stored distributions
func (s *TipPoolService) ListAll() ([]*TipPoolListing, error) {
	pools, err := s.pools.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]*TipPoolListing, 0, len(pools))
	for _, p := range pools {
		listing := &TipPoolListing{
			TipPoolWithDistributions: p,
			WorkersCount:             len(p.Distributions),
		}
		if len(p.Distributions) > 0 {
			listing.AmountPerWorker = p.Distributions[0].Amount
		}
		out = append(out, listing)
	}
	return out, nil
}

// MyDailyTips lists the user's per-day shares, most recent first
func (s *TipPoolService) MyDailyTips(userID uuid.UUID) ([]*domain.DailyTip, error) {
	return s.pools.ListByUser(userID)
}

// Summary sums the user's shares over today, this week, this month, and
// all time
func (s *TipPoolService) Summary(userID uuid.UUID) (*domain.TipSummary, error) {
	now := s.now().UTC()
	summary := &domain.TipSummary{}

	var err error
	if summary.Today, err = s.pools.SumByUserSince(userID, util.StartOfDayUTC(now)); err != nil {
		return nil, err
	}
	if summary.ThisWeek, err = s.pools.SumByUserSince(userID, util.StartOfWeekUTC(now)); err != nil {
		return nil, err
	}
	if summary.ThisMonth, err = s.pools.SumByUserSince(userID, util.StartOfMonthUTC(now)); err != nil {
		return nil, err
	}
	if summary.AllTime, err = s.pools.SumByUser(userID); err != nil {
		return nil, err
	}
	return summary, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
