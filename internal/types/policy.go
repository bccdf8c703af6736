package types

import (
	ierr "github.com/samsarastore/samsara/internal/errors"
	"github.com/samber/lo"
)

// WindowAction determines how the cancellation time window is interpreted:
// "enable" permits cancellation only inside the window, "disable" blocks
// cancellation only inside the window. Unset means the window rule is off.
type WindowAction string

const (
	WindowActionEnable  WindowAction = "enable"
	WindowActionDisable WindowAction = "disable"
	WindowActionUnset   WindowAction = ""
)

func (a WindowAction) String() string {
	return string(a)
}

func (a WindowAction) Validate() error {
	allowed := []WindowAction{
		WindowActionEnable,
		WindowActionDisable,
		WindowActionUnset,
	}
	if !lo.Contains(allowed, a) {
		return ierr.NewError("invalid window action").
			WithHint("Invalid cancellation window action").
			WithReportableDetails(map[string]any{
				"window_action":  a,
				"allowed_values": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// WindowPeriodUnit is the unit of the cancellation window offsets.
// It is deliberately a distinct type from BillingPeriod: window offsets are
// configured against the last payment date, billing periods against the
// subscription cadence, and the two are never interchangeable.
type WindowPeriodUnit string

const (
	WINDOW_PERIOD_UNIT_DAY   WindowPeriodUnit = "day"
	WINDOW_PERIOD_UNIT_WEEK  WindowPeriodUnit = "week"
	WINDOW_PERIOD_UNIT_MONTH WindowPeriodUnit = "month"
	WINDOW_PERIOD_UNIT_YEAR  WindowPeriodUnit = "year"
)

func (u WindowPeriodUnit) String() string {
	return string(u)
}

func (u WindowPeriodUnit) Validate() error {
	allowed := []WindowPeriodUnit{
		WINDOW_PERIOD_UNIT_DAY,
		WINDOW_PERIOD_UNIT_WEEK,
		WINDOW_PERIOD_UNIT_MONTH,
		WINDOW_PERIOD_UNIT_YEAR,
	}
	if !lo.Contains(allowed, u) {
		return ierr.NewError("invalid window period unit").
			WithHint("Invalid cancellation window period unit").
			WithReportableDetails(map[string]any{
				"window_period_unit": u,
				"allowed_values":     allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
