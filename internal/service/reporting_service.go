package service

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/shiftly/shiftly-backend/internal/domain"
	"github.com/shiftly/shiftly-backend/internal/util"
)

// ReportingService builds the derived history views over sessions and tips
type ReportingService struct {
	sessions domain.WorkSessionRepository
	tips     domain.TipPoolRepository
	now      func() time.Time
}

// NewReportingService creates a new ReportingService
func NewReportingService(sessions domain.WorkSessionRepository, tips domain.TipPoolRepository) *ReportingService {
	return &ReportingService{sessions: sessions, tips: tips, now: time.Now}
}

// WeeklyHistory returns the current Monday-start week as seven day buckets
func (r *ReportingService) WeeklyHistory(userID uuid.UUID) ([]domain.DayHistory, error) {
	weekStart := util.StartOfWeekUTC(r.now().UTC())
	return r.dayBuckets(userID, weekStart, 7)
}

// MonthlyHistory rolls the user's full history up into per-month totals,
// most recent month first
func (r *ReportingService) MonthlyHistory(userID uuid.UUID) ([]domain.MonthHistory, error) {
	sessions, err := r.sessions.ListClosedByUserSince(userID, time.Time{})
	if err != nil {
		return nil, err
	}
	tips, err := r.tips.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	type key struct{ year, month int }
	byMonth := make(map[key]*domain.MonthHistory)
	bucket := func(t time.Time) *domain.MonthHistory {
		k := key{t.UTC().Year(), int(t.UTC().Month())}
		if m, ok := byMonth[k]; ok {
			return m
		}
		m := &domain.MonthHistory{Year: k.year, Month: k.month}
		byMonth[k] = m
		return m
	}

	for _, s := range sessions {
		m := bucket(s.CheckIn)
		m.WorkedMinutes += s.TotalMinutes
		m.ExtraMinutes += s.ExtraMinutes
	}
	for _, t := range tips {
		bucket(t.Date).Tips += t.Amount
	}

	out := make([]domain.MonthHistory, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out, nil
}

// MonthWeeks breaks a month into its Monday-start weeks, each a run of
// seven day buckets. Boundary weeks include the spill-over days of the
// neighboring months.
func (r *ReportingService) MonthWeeks(userID uuid.UUID, year, month int) ([]domain.WeekHistory, error) {
	if month < 1 || month > 12 {
		return nil, domain.ErrInvalidInput
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := util.EndOfMonthUTC(monthStart)

	var weeks []domain.WeekHistory
	for weekStart := util.StartOfWeekUTC(monthStart); !weekStart.After(monthEnd); weekStart = weekStart.AddDate(0, 0, 7) {
		days, err := r.dayBuckets(userID, weekStart, 7)
		if err != nil {
			return nil, err
		}
		weeks = append(weeks, domain.WeekHistory{WeekStart: weekStart, Days: days})
	}
	return weeks, nil
}

// dayBuckets builds numDays consecutive UTC day buckets starting at start
func (r *ReportingService) dayBuckets(userID uuid.UUID, start time.Time, numDays int) ([]domain.DayHistory, error) {
	end := start.AddDate(0, 0, numDays).Add(-time.Nanosecond)

	sessions, err := r.sessions.ListClosedByUserInRange(userID, start, end)
	if err != nil {
		return nil, err
	}
	tips, err := r.tips.ListByUserSince(userID, start)
	if err != nil {
		return nil, err
	}

	days := make([]domain.DayHistory, numDays)
	for i := range days {
		date := start.AddDate(0, 0, i)
		days[i] = domain.DayHistory{
			Date:     date,
			WeekDay:  isoWeekday(date),
			Sessions: []domain.SessionSlot{},
		}
	}
	index := func(t time.Time) int {
		return int(util.StartOfDayUTC(t).Sub(start).Hours() / 24)
	}

	for _, s := range sessions {
		i := index(s.CheckIn)
		if i < 0 || i >= numDays {
			continue
		}
		days[i].WorkedMinutes += s.TotalMinutes
		days[i].ExtraMinutes += s.ExtraMinutes
		days[i].Sessions = append(days[i].Sessions, domain.SessionSlot{
			SessionID: s.ID,
			CheckIn:   s.CheckIn,
			CheckOut:  s.CheckOut,
			Shift:     s.Shift,
		})
	}
	for _, t := range tips {
		i := index(t.Date)
		if i < 0 || i >= numDays {
			continue
		}
		days[i].Tips += t.Amount
	}
	return days, nil
}

// isoWeekday maps Monday to 1 through Sunday to 7
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
