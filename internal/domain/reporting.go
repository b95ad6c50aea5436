package domain

import "time"

// PeriodSummary aggregates closed-session minutes and tips from the
// start of a period (UTC day, Monday week, or month) to now.
type PeriodSummary struct {
	Date          time.Time `json:"date"`
	WorkedMinutes int       `json:"workedMinutes"`
	ExtraMinutes  int       `json:"extraMinutes"`
	Tips          int       `json:"tips"`
}

// MySummary is the today/this-week/this-month rollup for a member
type MySummary struct {
	Today     PeriodSummary `json:"today"`
	ThisWeek  PeriodSummary `json:"thisWeek"`
	ThisMonth PeriodSummary `json:"thisMonth"`
}

// TipSummary sums a user's distributions over the standard periods
type TipSummary struct {
	Today     int `json:"today"`
	ThisWeek  int `json:"thisWeek"`
	ThisMonth int `json:"thisMonth"`
	AllTime   int `json:"allTime"`
}

// SessionSlot is a session row inside a day bucket
type SessionSlot struct {
	SessionID int32      `json:"sessionId"`
	CheckIn   time.Time  `json:"checkIn"`
	CheckOut  *time.Time `json:"checkOut"`
	Shift     *WorkShift `json:"shift"`
}

// DayHistory is one UTC day of worked minutes, tips, and session rows
type DayHistory struct {
	Date          time.Time     `json:"date"`
	WeekDay       int           `json:"weekDay"`
	WorkedMinutes int           `json:"workedMinutes"`
	ExtraMinutes  int           `json:"extraMinutes"`
	Tips          int           `json:"tips"`
	Sessions      []SessionSlot `json:"sessions"`
}

// MonthHistory is the per-month rollup across a user's full history
type MonthHistory struct {
	Year          int `json:"year"`
	Month         int `json:"month"`
	WorkedMinutes int `json:"workedMinutes"`
	ExtraMinutes  int `json:"extraMinutes"`
	Tips          int `json:"tips"`
}

// WeekHistory is one Monday-start week of a month, day by day
type WeekHistory struct {
	WeekStart time.Time    `json:"weekStart"`
	Days      []DayHistory `json:"days"`
}
