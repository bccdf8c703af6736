package dto

import (
	"github.com/samsarastore/samsara/internal/domain/policy"
	"github.com/samsarastore/samsara/internal/domain/subscription"
	"github.com/samsarastore/samsara/internal/types"
)

// CancellationEligibilityResponse is the stable JSON contract consumed by
// the storefront. Field names are fixed; do not rename.
type CancellationEligibilityResponse struct {
	Cancelable bool                     `json:"cancelable"`
	Reasons    []string                 `json:"reasons"`
	Window     CancellationWindow       `json:"window"`
	Rules      CancellationRules        `json:"rules"`
	Current    CurrentSubscriptionState `json:"current"`
}

// CancellationWindow carries the resolved window bounds as MM/DD/YYYY
// strings; null means no bound was determined
type CancellationWindow struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// CancellationRules echoes the resolved policy parameters back to the
// caller. DisableCancellationDays is a display-only day count derived with
// the 30/365-day approximation; window boundary math never uses it.
type CancellationRules struct {
	MinimumPeriod           int `json:"minimum_period"`
	CoolingOffPeriod        int `json:"cooling_off_period"`
	RollingCycle            int `json:"rolling_cycle"`
	DisableCancellationDays int `json:"disable_cancellation_days"`
}

// CurrentSubscriptionState echoes the evaluated subscription facts
type CurrentSubscriptionState struct {
	PaymentCount int    `json:"payment_count"`
	Status       string `json:"status"`
	StartDate    string `json:"start_date"`
}

// NewCancellationEligibilityResponse shapes the aggregate decision into the
// response contract
func NewCancellationEligibilityResponse(result *policy.Result, cfg *policy.Config, snap *subscription.Snapshot) *CancellationEligibilityResponse {
	resp := &CancellationEligibilityResponse{
		Cancelable: result.Cancelable,
		Reasons:    result.Reasons,
		Rules: CancellationRules{
			MinimumPeriod:    cfg.MinimumPeriod,
			CoolingOffPeriod: cfg.CoolingOffPeriodDays,
			RollingCycle:     cfg.RollingCycle,
		},
		Current: CurrentSubscriptionState{
			PaymentCount: snap.PaymentCount,
			Status:       snap.Status.String(),
		},
	}

	if resp.Reasons == nil {
		resp.Reasons = []string{}
	}

	if cfg.WindowStartOffset != nil {
		resp.Rules.DisableCancellationDays = types.ApproximateWindowDays(*cfg.WindowStartOffset, cfg.WindowPeriodUnit)
	}

	if result.WindowStart != nil {
		start := types.FormatShortDate(*result.WindowStart)
		resp.Window.Start = &start
	}
	if result.WindowEnd != nil {
		end := types.FormatShortDate(*result.WindowEnd)
		resp.Window.End = &end
	}

	if !snap.StartDate.IsZero() {
		resp.Current.StartDate = types.FormatShortDate(snap.StartDate)
	}

	return resp
}
