package types

import (
	"fmt"
	"math"
	"time"
)

// AddBillingPeriods advances a date by the given number of billing periods.
// For example:
// - If the billing period is month and periods is 2, we add two months.
// - If the billing period is year and periods is 1, we add one year.
// - If the billing period is week and periods is 3, we add 21 days (3 weeks).
// - If the billing period is day and periods is 10, we add 10 days.
// Month and year additions use calendar arithmetic with day clamping, which
// properly handles leap years and month-boundary issues. Zero periods is a
// valid no-op (the date projects onto itself).
func AddBillingPeriods(start time.Time, periods int, period BillingPeriod) (time.Time, error) {
	if periods < 0 {
		return start, fmt.Errorf("billing period count must be non-negative, got %d", periods)
	}
	if periods == 0 {
		return start, nil
	}

	switch period {
	case BILLING_PERIOD_DAY:
		// Add 'periods' days
		return AddClampedDate(start, 0, 0, periods), nil
	case BILLING_PERIOD_WEEK:
		// 1 week = 7 days
		return AddClampedDate(start, 0, 0, 7*periods), nil
	case BILLING_PERIOD_MONTH:
		// Add 'periods' months
		return AddClampedDate(start, 0, periods, 0), nil
	case BILLING_PERIOD_YEAR:
		// Add 'periods' years
		return AddClampedDate(start, periods, 0, 0), nil
	default:
		return start, fmt.Errorf("invalid billing period type: %s", period)
	}
}

// AddWindowOffset advances a date by a cancellation window offset. Month and
// year offsets use calendar arithmetic ("+1 month"), never a fixed-day
// approximation. The display-only day count lives in ApproximateWindowDays
// and the two must stay separate computations.
func AddWindowOffset(start time.Time, offset int, unit WindowPeriodUnit) time.Time {
	switch unit {
	case WINDOW_PERIOD_UNIT_WEEK:
		return AddClampedDate(start, 0, 0, 7*offset)
	case WINDOW_PERIOD_UNIT_MONTH:
		return AddClampedDate(start, 0, offset, 0)
	case WINDOW_PERIOD_UNIT_YEAR:
		return AddClampedDate(start, offset, 0, 0)
	default:
		return AddClampedDate(start, 0, 0, offset)
	}
}

// ApproximateWindowDays converts a window offset to a rough day count for
// display purposes only, approximating months as 30 days and years as 365.
// Window boundary math must use AddWindowOffset instead; the two
// computations intentionally diverge and must not be unified.
func ApproximateWindowDays(offset int, unit WindowPeriodUnit) int {
	switch unit {
	case WINDOW_PERIOD_UNIT_WEEK:
		return offset * 7
	case WINDOW_PERIOD_UNIT_MONTH:
		return offset * 30
	case WINDOW_PERIOD_UNIT_YEAR:
		return offset * 365
	default:
		return offset
	}
}

// CeilDaysUntil returns the number of whole days from now until target,
// rounding any partial day up. Returns 0 when target is not in the future.
func CeilDaysUntil(now, target time.Time) int {
	if !target.After(now) {
		return 0
	}
	return int(math.Ceil(target.Sub(now).Hours() / 24))
}

// FormatShortDate renders a date as MM/DD/YYYY for the response contract
func FormatShortDate(t time.Time) string {
	return t.Format("01/02/2006")
}

func AddClampedDate(t time.Time, years, months, days int) time.Time {
	y, m, d := t.Date()
	h, min, sec := t.Clock()

	// Calculate the proposed year and month
	newY := y + years
	newM := time.Month(int(m) + months)

	// If we move beyond December, it adjusts correctly,
	// for example adding 2 months to November will land on January next year.
	for newM > 12 {
		newM -= 12
		newY++
	}
	for newM < 1 {
		newM += 12
		newY--
	}

	// Find the last valid day of the new month
	firstOfNextMonth := time.Date(newY, newM+1, 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfNextMonth.Add(-24 * time.Hour).Day()

	newD := d + days
	if newD > lastDay && days == 0 {
		// Clamp to last valid day when the month/year jump landed on a
		// shorter month (e.g. Jan 31 + 1 month -> Feb 28/29)
		newD = lastDay
	}

	return time.Date(newY, newM, newD, h, min, sec, t.Nanosecond(), t.Location())
}
