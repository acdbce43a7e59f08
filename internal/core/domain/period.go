package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodFrequency defines the length of a budget allocation's accounting
// window.
type PeriodFrequency string

const (
	PeriodDaily     PeriodFrequency = "daily"
	PeriodWeekly    PeriodFrequency = "weekly"
	PeriodMonthly   PeriodFrequency = "monthly"
	PeriodQuarterly PeriodFrequency = "quarterly"
)

// PeriodStartFor returns the start of the period containing t.
// Daily periods run midnight to midnight, weekly periods Monday to Monday,
// monthly periods from the first of the month and quarterly periods from the
// first of months 1/4/7/10. All boundaries are computed in UTC.
func PeriodStartFor(freq PeriodFrequency, t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch freq {
	case PeriodDaily:
		return day
	case PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7 // Monday-based week
		return day.AddDate(0, 0, -offset)
	case PeriodQuarterly:
		quarterMonth := time.Month(((int(t.Month())-1)/3)*3 + 1)
		return time.Date(t.Year(), quarterMonth, 1, 0, 0, 0, 0, time.UTC)
	default: // monthly
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

// ShiftPeriod moves t by n period lengths (n may be negative). Month-based
// frequencies clamp the day of month to the target month's last valid day
// instead of letting the date normalise into the following month.
func ShiftPeriod(freq PeriodFrequency, t time.Time, n int) time.Time {
	switch freq {
	case PeriodDaily:
		return t.AddDate(0, 0, n)
	case PeriodWeekly:
		return t.AddDate(0, 0, 7*n)
	case PeriodQuarterly:
		return addMonthsClamped(t, 3*n)
	default: // monthly
		return addMonthsClamped(t, n)
	}
}

// addMonthsClamped adds months to t, clamping the day of month so that e.g.
// Jan 31 + 1 month = Feb 28/29 rather than Mar 2/3.
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + months
	year := y + total/12
	month := total % 12
	if month < 0 {
		month += 12
		year--
	}
	target := time.Month(month + 1)
	if last := lastDayOfMonth(year, target); d > last {
		d = last
	}
	return time.Date(year, target, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// EnsureBudgetPeriod rolls the allocation's accounting window until
// PeriodStart <= ref < PeriodEnd, initialising the window when unset and
// resetting CurrentAmount to zero whenever the window moves. Rolling is
// bidirectional: a reference date before the current window moves the window
// backwards, so whichever period contains the reference date is the live one.
// It returns true when a roll occurred. Callers must invoke this (and persist
// the result) before applying a budget delta.
func (a *Allocation) EnsureBudgetPeriod(ref time.Time) bool {
	freq := a.PeriodFrequency
	if freq == "" {
		freq = PeriodMonthly
	}
	ref = ref.UTC()
	rolled := false

	if a.PeriodStart == nil || a.PeriodEnd == nil {
		start := PeriodStartFor(freq, ref)
		end := ShiftPeriod(freq, start, 1)
		a.PeriodStart = &start
		a.PeriodEnd = &end
		rolled = true
	}
	for !ref.Before(*a.PeriodEnd) {
		start := ShiftPeriod(freq, *a.PeriodStart, 1)
		end := ShiftPeriod(freq, *a.PeriodEnd, 1)
		a.PeriodStart = &start
		a.PeriodEnd = &end
		rolled = true
	}
	for ref.Before(*a.PeriodStart) {
		start := ShiftPeriod(freq, *a.PeriodStart, -1)
		end := ShiftPeriod(freq, *a.PeriodEnd, -1)
		a.PeriodStart = &start
		a.PeriodEnd = &end
		rolled = true
	}

	if rolled {
		a.CurrentAmount = decimal.Zero
	}
	return rolled
}
