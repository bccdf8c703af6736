package types

import (
	ierr "github.com/samsarastore/samsara/internal/errors"
	"github.com/samber/lo"
)

// BillingPeriod is the unit of a subscription's billing cadence
type BillingPeriod string

const (
	BILLING_PERIOD_DAY   BillingPeriod = "day"
	BILLING_PERIOD_WEEK  BillingPeriod = "week"
	BILLING_PERIOD_MONTH BillingPeriod = "month"
	BILLING_PERIOD_YEAR  BillingPeriod = "year"
)

func (p BillingPeriod) String() string {
	return string(p)
}

func (p BillingPeriod) Validate() error {
	allowed := []BillingPeriod{
		BILLING_PERIOD_DAY,
		BILLING_PERIOD_WEEK,
		BILLING_PERIOD_MONTH,
		BILLING_PERIOD_YEAR,
	}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid billing period").
			WithHint("Invalid billing period").
			WithReportableDetails(map[string]any{
				"billing_period": p,
				"allowed_values": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
