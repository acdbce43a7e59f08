package domain_test

import (
	"testing"
	"time"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodStartFor(t *testing.T) {
	tests := []struct {
		name string
		freq domain.PeriodFrequency
		in   time.Time
		want time.Time
	}{
		{
			name: "daily truncates to midnight",
			freq: domain.PeriodDaily,
			in:   time.Date(2025, time.March, 15, 17, 42, 3, 0, time.UTC),
			want: date(2025, time.March, 15),
		},
		{
			name: "weekly snaps back to Monday",
			freq: domain.PeriodWeekly,
			in:   date(2025, time.March, 13), // Thursday
			want: date(2025, time.March, 10),
		},
		{
			name: "weekly on a Monday stays put",
			freq: domain.PeriodWeekly,
			in:   date(2025, time.March, 10),
			want: date(2025, time.March, 10),
		},
		{
			name: "weekly on a Sunday goes to the previous Monday",
			freq: domain.PeriodWeekly,
			in:   date(2025, time.March, 16),
			want: date(2025, time.March, 10),
		},
		{
			name: "monthly snaps to the first",
			freq: domain.PeriodMonthly,
			in:   date(2025, time.March, 31),
			want: date(2025, time.March, 1),
		},
		{
			name: "quarterly snaps to the quarter month",
			freq: domain.PeriodQuarterly,
			in:   date(2025, time.May, 20),
			want: date(2025, time.April, 1),
		},
		{
			name: "quarterly in the fourth quarter",
			freq: domain.PeriodQuarterly,
			in:   date(2025, time.December, 31),
			want: date(2025, time.October, 1),
		},
		{
			name: "unknown frequency behaves as monthly",
			freq: "",
			in:   date(2025, time.March, 15),
			want: date(2025, time.March, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.PeriodStartFor(tt.freq, tt.in))
		})
	}
}

func TestShiftPeriod(t *testing.T) {
	tests := []struct {
		name string
		freq domain.PeriodFrequency
		in   time.Time
		n    int
		want time.Time
	}{
		{
			name: "daily forward",
			freq: domain.PeriodDaily,
			in:   date(2025, time.February, 28),
			n:    1,
			want: date(2025, time.March, 1),
		},
		{
			name: "weekly backward",
			freq: domain.PeriodWeekly,
			in:   date(2025, time.March, 10),
			n:    -2,
			want: date(2025, time.February, 24),
		},
		{
			name: "monthly clamps Jan 31 to Feb 28",
			freq: domain.PeriodMonthly,
			in:   date(2025, time.January, 31),
			n:    1,
			want: date(2025, time.February, 28),
		},
		{
			name: "monthly clamps to Feb 29 in a leap year",
			freq: domain.PeriodMonthly,
			in:   date(2024, time.January, 31),
			n:    1,
			want: date(2024, time.February, 29),
		},
		{
			name: "monthly backward across a year boundary",
			freq: domain.PeriodMonthly,
			in:   date(2025, time.January, 15),
			n:    -1,
			want: date(2024, time.December, 15),
		},
		{
			name: "monthly backward clamps Mar 31 to Feb 28",
			freq: domain.PeriodMonthly,
			in:   date(2025, time.March, 31),
			n:    -1,
			want: date(2025, time.February, 28),
		},
		{
			name: "quarterly forward",
			freq: domain.PeriodQuarterly,
			in:   date(2025, time.January, 1),
			n:    1,
			want: date(2025, time.April, 1),
		},
		{
			name: "quarterly clamps Nov 30 plus one quarter to Feb 28",
			freq: domain.PeriodQuarterly,
			in:   date(2024, time.November, 30),
			n:    1,
			want: date(2025, time.February, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ShiftPeriod(tt.freq, tt.in, tt.n))
		})
	}
}

func TestAllocation_EnsureBudgetPeriod_InitialisesWindow(t *testing.T) {
	a := domain.Allocation{
		AllocationType:  domain.AllocationBudget,
		PeriodFrequency: domain.PeriodMonthly,
		CurrentAmount:   decimal.NewFromFloat(12.00),
	}

	rolled := a.EnsureBudgetPeriod(date(2025, time.March, 15))

	assert.True(t, rolled)
	assert.Equal(t, date(2025, time.March, 1), *a.PeriodStart)
	assert.Equal(t, date(2025, time.April, 1), *a.PeriodEnd)
	assert.True(t, a.CurrentAmount.IsZero(), "progress resets when the window moves")
}

func TestAllocation_EnsureBudgetPeriod_NoRollInsideWindow(t *testing.T) {
	start := date(2025, time.March, 1)
	end := date(2025, time.April, 1)
	a := domain.Allocation{
		AllocationType:  domain.AllocationBudget,
		PeriodFrequency: domain.PeriodMonthly,
		PeriodStart:     &start,
		PeriodEnd:       &end,
		CurrentAmount:   decimal.NewFromFloat(40.00),
	}

	rolled := a.EnsureBudgetPeriod(date(2025, time.March, 31))

	assert.False(t, rolled)
	assert.Equal(t, start, *a.PeriodStart)
	assert.True(t, a.CurrentAmount.Equal(decimal.NewFromFloat(40.00)))
}

func TestAllocation_EnsureBudgetPeriod_RollsForwardMultiplePeriods(t *testing.T) {
	start := date(2025, time.January, 1)
	end := date(2025, time.February, 1)
	a := domain.Allocation{
		AllocationType:  domain.AllocationBudget,
		PeriodFrequency: domain.PeriodMonthly,
		PeriodStart:     &start,
		PeriodEnd:       &end,
		CurrentAmount:   decimal.NewFromFloat(99.00),
	}

	rolled := a.EnsureBudgetPeriod(date(2025, time.April, 10))

	assert.True(t, rolled)
	assert.Equal(t, date(2025, time.April, 1), *a.PeriodStart)
	assert.Equal(t, date(2025, time.May, 1), *a.PeriodEnd)
	assert.True(t, a.CurrentAmount.IsZero())
}

func TestAllocation_EnsureBudgetPeriod_RollsBackward(t *testing.T) {
	start := date(2025, time.June, 1)
	end := date(2025, time.July, 1)
	a := domain.Allocation{
		AllocationType:  domain.AllocationBudget,
		PeriodFrequency: domain.PeriodMonthly,
		PeriodStart:     &start,
		PeriodEnd:       &end,
		CurrentAmount:   decimal.NewFromFloat(5.00),
	}

	rolled := a.EnsureBudgetPeriod(date(2025, time.March, 20))

	assert.True(t, rolled)
	assert.Equal(t, date(2025, time.March, 1), *a.PeriodStart)
	assert.Equal(t, date(2025, time.April, 1), *a.PeriodEnd)
	assert.True(t, a.CurrentAmount.IsZero())
}

func TestAllocation_EnsureBudgetPeriod_WeeklyBoundaryIsExclusive(t *testing.T) {
	start := date(2025, time.March, 10) // Monday
	end := date(2025, time.March, 17)
	a := domain.Allocation{
		AllocationType:  domain.AllocationBudget,
		PeriodFrequency: domain.PeriodWeekly,
		PeriodStart:     &start,
		PeriodEnd:       &end,
	}

	// The end boundary belongs to the next window.
	rolled := a.EnsureBudgetPeriod(date(2025, time.March, 17))

	assert.True(t, rolled)
	assert.Equal(t, date(2025, time.March, 17), *a.PeriodStart)
	assert.Equal(t, date(2025, time.March, 24), *a.PeriodEnd)
}
