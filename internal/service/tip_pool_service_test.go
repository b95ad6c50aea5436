package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shiftly/shiftly-backend/internal/domain"
	"github.com/shiftly/shiftly-backend/internal/testutil"
)

var poolDay = time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

func shiftPtr(s domain.WorkShift) *domain.WorkShift { return &s }

func closedSession(id int32, userID uuid.UUID, checkIn time.Time, shift *domain.WorkShift) *domain.WorkSession {
	out := checkIn.Add(6 * time.Hour)
	return &domain.WorkSession{
		ID:           id,
		UserID:       userID,
		WorkspaceID:  1,
		CheckIn:      checkIn,
		CheckOut:     &out,
		Status:       domain.SessionClosed,
		TotalMinutes: 360,
		Shift:        shift,
	}
}

func newPoolFixture() (*TipPoolService, *testutil.MockWorkSessionRepository, *testutil.MockTipPoolRepository) {
	sessions := testutil.NewMockWorkSessionRepository()
	pools := testutil.NewMockTipPoolRepository(sessions)
	svc := NewTipPoolService(pools)
	svc.now = func() time.Time { return poolDay.Add(23 * time.Hour) }
	return svc, sessions, pools
}

func TestTipPoolService_Create_EvenSplit(t *testing.T) {
	svc, sessions, pools := newPoolFixture()

	worker1 := uuid.New()
	worker2 := uuid.New()
	worker3 := uuid.New()
	sessions.AddSession(closedSession(1, worker1, poolDay.Add(8*time.Hour), shiftPtr(domain.ShiftMorning)))
	sessions.AddSession(closedSession(2, worker2, poolDay.Add(9*time.Hour), shiftPtr(domain.ShiftMorning)))
	sessions.AddSession(closedSession(3, worker3, poolDay.Add(16*time.Hour), shiftPtr(domain.ShiftEvening)))

	result, err := svc.Create(poolDay, domain.ShiftMorning, 100)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.WorkersCount != 2 {
		t.Errorf("expected 2 workers, got %d", result.WorkersCount)
	}
	if result.AmountPerWorker != 50 {
		t.Errorf("expected 50 per worker, got %d", result.AmountPerWorker)
	}
	if len(pools.Distributions) != 2 {
		t.Fatalf("expected 2 distributions, got %d", len(pools.Distributions))
	}
	for _, d := range pools.Distributions {
		if d.Amount != 50 {
			t.Errorf("expected distribution of 50, got %d", d.Amount)
		}
		if d.UserID == worker3 {
			t.Error("evening worker must not share a morning pool")
		}
	}
}

func TestTipPoolService_Create_DuplicatePool(t *testing.T) {
	svc, sessions, pools := newPoolFixture()

	worker := uuid.New()
	sessions.AddSession(closedSession(1, worker, poolDay.Add(8*time.Hour), shiftPtr(domain.ShiftMorning)))
	pools.AddPool(&domain.TipPool{ID: 7, Date: poolDay, Shift: domain.ShiftMorning, TotalAmount: 40})
	pools.AddDistribution(&domain.TipDistribution{ID: 1, TipPoolID: 7, UserID: worker, Amount: 40})

	_, err := svc.Create(poolDay, domain.ShiftMorning, 100)
	if !errors.Is(err, domain.ErrPoolExists) {
		t.Fatalf("expected ErrPoolExists, got %v", err)
	}
	if len(pools.Pools) != 1 || len(pools.Distributions) != 1 {
		t.Error("existing pool state must remain unchanged")
	}
}

func TestTipPoolService_Create_AmountTooLow(t *testing.T) {
	svc, sessions, pools := newPoolFixture()

	for i := int32(1); i <= 3; i++ {
		sessions.AddSession(closedSession(i, uuid.New(), poolDay.Add(8*time.Hour), shiftPtr(domain.ShiftMorning)))
	}

	_, err := svc.Create(poolDay, domain.ShiftMorning, 1)
	if !errors.Is(err, domain.ErrAmountTooLow) {
		t.Fatalf("expected ErrAmountTooLow, got %v", err)
	}
	if len(pools.Pools) != 0 || len(pools.Distributions) != 0 {
		t.Error("no pool or distributions may persist after a failed split")
	}
}

func TestTipPoolService_Create_NoSessions(t *testing.T) {
	svc, _, _ := newPoolFixture()

	_, err := svc.Create(poolDay, domain.ShiftMorning, 100)
	if !errors.Is(err, domain.ErrNoSessionsForPool) {
		t.Fatalf("expected ErrNoSessionsForPool, got %v", err)
	}
}

func TestTipPoolService_Create_ForceClosesOpenSessions(t *testing.T) {
	svc, sessions, _ := newPoolFixture()

	worker := uuid.New()
	sessions.AddSession(closedSession(1, worker, poolDay.Add(8*time.Hour), shiftPtr(domain.ShiftMorning)))
	open := &domain.WorkSession{
		ID:          2,
		UserID:      worker,
		WorkspaceID: 1,
		CheckIn:     poolDay.Add(13 * time.Hour),
		Status:      domain.SessionOpen,
	}
	sessions.AddSession(open)

	// The open session gets force-closed, but carries no shift label yet,
	// so the pool cannot be created
	_, err := svc.Create(poolDay, domain.ShiftMorning, 100)
	if !errors.Is(err, domain.ErrUnclassifiedSessions) {
		t.Fatalf("expected ErrUnclassifiedSessions, got %v", err)
	}
	if sessions.Sessions[2].Status != domain.SessionOpen {
		t.Error("force-closed session must be rolled back to OPEN")
	}
	if sessions.Sessions[2].CheckOut != nil {
		t.Error("rolled-back session must have no check-out")
	}
}

func TestTipPoolService_Create_RollsBackOnInsertFailure(t *testing.T) {
	svc, sessions, pools := newPoolFixture()

	worker := uuid.New()
	sessions.AddSession(closedSession(1, worker, poolDay.Add(8*time.Hour), shiftPtr(domain.ShiftMorning)))
	open := closedSession(2, worker, poolDay.Add(15*time.Hour), nil)
	open.Status = domain.SessionOpen
	open.CheckOut = nil
	open.Shift = shiftPtr(domain.ShiftMorning)
	sessions.AddSession(open)

	boom := errors.New("insert failed")
	pools.InsertDistributionsFn = func(int32, []uuid.UUID, int) error { return boom }

	_, err := svc.Create(poolDay, domain.ShiftMorning, 100)
	if !errors.Is(err, boom) {
		t.Fatalf("expected insert failure, got %v", err)
	}
	if len(pools.Pools) != 0 {
		t.Error("pool row must not survive a failed distribution insert")
	}
	if sessions.Sessions[2].Status != domain.SessionOpen {
		t.Error("force-closed session must be rolled back to OPEN")
	}
}

func TestTipPoolService_Create_DeduplicatesWorkers(t *testing.T) {
	svc, sessions, _ := newPoolFixture()

	worker := uuid.New()
	sessions.AddSession(closedSession(1, worker, poolDay.Add(7*time.Hour), shiftPtr(domain.ShiftMorning)))
	sessions.AddSession(closedSession(2, worker, poolDay.Add(10*time.Hour), shiftPtr(domain.ShiftMorning)))
	sessions.AddSession(closedSession(3, uuid.New(), poolDay.Add(8*time.Hour), shiftPtr(domain.ShiftMorning)))

	result, err := svc.Create(poolDay, domain.ShiftMorning, 90)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.WorkersCount != 2 {
		t.Errorf("expected 2 unique workers, got %d", result.WorkersCount)
	}
	if result.AmountPerWorker != 45 {
		t.Errorf("expected 45 per worker, got %d", result.AmountPerWorker)
	}
}

func TestTipPoolService_Create_InvalidInput(t *testing.T) {
	svc, _, _ := newPoolFixture()

	if _, err := svc.Create(poolDay, "NIGHT", 100); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown shift, got %v", err)
	}
	if _, err := svc.Create(poolDay, domain.ShiftMorning, 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero amount, got %v", err)
	}
}

func TestTipPoolService_ListAll_ReconstructsSplit(t *testing.T) {
	svc, _, pools := newPoolFixture()

	pools.AddPool(&domain.TipPool{ID: 1, Date: poolDay, Shift: domain.ShiftMorning, TotalAmount: 100})
	pools.AddDistribution(&domain.TipDistribution{ID: 1, TipPoolID: 1, UserID: uuid.New(), Amount: 33})
	pools.AddDistribution(&domain.TipDistribution{ID: 2, TipPoolID: 1, UserID: uuid.New(), Amount: 33})
	pools.AddDistribution(&domain.TipDistribution{ID: 3, TipPoolID: 1, UserID: uuid.New(), Amount: 33})

	listings, err := svc.ListAll()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}
	if listings[0].WorkersCount != 3 {
		t.Errorf("expected 3 workers, got %d", listings[0].WorkersCount)
	}
	if listings[0].AmountPerWorker != 33 {
		t.Errorf("expected 33 per worker, got %d", listings[0].AmountPerWorker)
	}
}

func TestTipPoolService_Summary(t *testing.T) {
	svc, _, pools := newPoolFixture()

	user := uuid.New()
	// now is poolDay (Friday 2024-01-05) + 23h; week starts Monday 2024-01-01
	addTip := func(poolID int32, date time.Time, amount int) {
		pools.AddPool(&domain.TipPool{ID: poolID, Date: date, Shift: domain.ShiftMorning, TotalAmount: amount})
		pools.AddDistribution(&domain.TipDistribution{ID: poolID, TipPoolID: poolID, UserID: user, Amount: amount})
	}
	addTip(1, poolDay, 50)                     // today
	addTip(2, poolDay.AddDate(0, 0, -3), 30)   // this week (Tuesday)
	addTip(3, poolDay.AddDate(0, 0, -10), 20)  // previous year/month boundary: 2023-12-26
	addTip(4, poolDay.AddDate(0, 0, -400), 10) // long ago

	summary, err := svc.Summary(user)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if summary.Today != 50 {
		t.Errorf("expected today 50, got %d", summary.Today)
	}
	if summary.ThisWeek != 80 {
		t.Errorf("expected week 80, got %d", summary.ThisWeek)
	}
	if summary.ThisMonth != 80 {
		t.Errorf("expected month 80, got %d", summary.ThisMonth)
	}
	if summary.AllTime != 110 {
		t.Errorf("expected all-time 110, got %d", summary.AllTime)
	}
}
