package service

import (
	"context"
	"fmt"
	"time"

	"github.com/samsarastore/samsara/internal/api/dto"
	"github.com/samsarastore/samsara/internal/domain/policy"
	"github.com/samsarastore/samsara/internal/domain/subscription"
	ierr "github.com/samsarastore/samsara/internal/errors"
	"github.com/samsarastore/samsara/internal/types"
)

// Block reasons surfaced to subscribers. The wording is part of the
// response contract consumed by the storefront.
const (
	reasonCoolingOff     = "Cooling-off period: %d days remaining"
	reasonWindowNotOpen  = "Cancellation not available for %d more days"
	reasonWindowClosed   = "Cancellation window has closed"
	reasonWindowDisabled = "Cancellation is currently disabled"
	reasonMinimumNotMet  = "Minimum period not met: %d of %d payments completed"
)

// CancellationService determines whether a subscriber may cancel right now
// and, when they may not, when their cancellation window opens and closes.
type CancellationService interface {
	GetCancellationEligibility(ctx context.Context, subscriptionID string) (*dto.CancellationEligibilityResponse, error)
}

type cancellationService struct {
	ServiceParams
	subscriptionService SubscriptionService
	policyService       PolicyService
}

func NewCancellationService(params ServiceParams) CancellationService {
	return &cancellationService{
		ServiceParams:       params,
		subscriptionService: NewSubscriptionService(params),
		policyService:       NewPolicyService(params),
	}
}

func (s *cancellationService) GetCancellationEligibility(ctx context.Context, subscriptionID string) (*dto.CancellationEligibilityResponse, error) {
	sub, err := s.subscriptionService.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	if customerID := types.GetCustomerID(ctx); customerID != "" && customerID != sub.CustomerID {
		return nil, ierr.NewError("subscription does not belong to customer").
			WithHint("You do not have access to this subscription").
			WithReportableDetails(map[string]any{"subscription_id": subscriptionID}).
			Mark(ierr.ErrPermissionDenied)
	}

	snapshot, err := s.subscriptionService.BuildSnapshot(ctx, sub)
	if err != nil {
		return nil, err
	}

	cfg, err := s.policyService.ResolveConfig(ctx, sub)
	if err != nil {
		return nil, err
	}

	result := evaluateEligibility(cfg, snapshot, time.Now().UTC())

	s.Logger.Debugw("evaluated cancellation eligibility",
		"subscription_id", subscriptionID,
		"cancelable", result.Cancelable,
		"reasons", result.Reasons,
	)

	return dto.NewCancellationEligibilityResponse(result, cfg, snapshot), nil
}

// evaluateEligibility runs the three temporal rule evaluators against one
// immutable snapshot and merges their verdicts. It is a pure function of
// its inputs; calling it twice with the same arguments yields the same
// result.
func evaluateEligibility(cfg *policy.Config, snap *subscription.Snapshot, now time.Time) *policy.Result {
	return mergeVerdicts(
		evaluateCoolingOff(cfg, snap, now),
		evaluateTimeWindow(cfg, snap, now),
		evaluateMinimumPeriod(cfg, snap),
	)
}

// evaluateCoolingOff blocks cancellation for a fixed number of days after
// the subscription start. A missing start date disables the rule: missing
// data fails open here, never closed.
func evaluateCoolingOff(cfg *policy.Config, snap *subscription.Snapshot, now time.Time) policy.Verdict {
	if cfg.CoolingOffPeriodDays <= 0 || snap.StartDate.IsZero() {
		return policy.Verdict{}
	}

	coolingOffEnd := snap.StartDate.AddDate(0, 0, cfg.CoolingOffPeriodDays)
	if !now.Before(coolingOffEnd) {
		return policy.Verdict{}
	}

	return policy.Verdict{
		Blocked:     true,
		Reason:      fmt.Sprintf(reasonCoolingOff, types.CeilDaysUntil(now, coolingOffEnd)),
		WindowStart: &coolingOffEnd,
	}
}

// evaluateTimeWindow applies the configured cancellation window relative to
// the last payment date. With an "enable" action cancellation is permitted
// only inside the window; with "disable" it is blocked only inside. Window
// boundaries use calendar arithmetic, never the 30/365-day display
// approximation. When the window has already closed no remediation date is
// proposed; the subscriber is blocked with the closed reason only.
func evaluateTimeWindow(cfg *policy.Config, snap *subscription.Snapshot, now time.Time) policy.Verdict {
	if !cfg.HasWindowRule() || snap.LastPaymentDate == nil {
		return policy.Verdict{}
	}

	windowStart := types.AddWindowOffset(*snap.LastPaymentDate, *cfg.WindowStartOffset, cfg.WindowPeriodUnit)
	var windowEnd *time.Time
	if cfg.WindowEndOffset != nil {
		end := types.AddWindowOffset(*snap.LastPaymentDate, *cfg.WindowEndOffset, cfg.WindowPeriodUnit)
		windowEnd = &end
	}

	inWindow := !now.Before(windowStart) && (windowEnd == nil || !now.After(*windowEnd))
	blocked := (cfg.WindowAction == types.WindowActionEnable && !inWindow) ||
		(cfg.WindowAction == types.WindowActionDisable && inWindow)
	if !blocked {
		return policy.Verdict{}
	}

	switch {
	case now.Before(windowStart):
		return policy.Verdict{
			Blocked:     true,
			Reason:      fmt.Sprintf(reasonWindowNotOpen, types.CeilDaysUntil(now, windowStart)),
			WindowStart: &windowStart,
		}
	case windowEnd != nil && now.After(*windowEnd):
		return policy.Verdict{
			Blocked: true,
			Reason:  reasonWindowClosed,
		}
	default:
		return policy.Verdict{
			Blocked: true,
			Reason:  reasonWindowDisabled,
		}
	}
}

// evaluateMinimumPeriod blocks cancellation until the committed number of
// payments has completed and, when a rolling commitment cycle is
// configured, bounds the resulting cancellation window. The next scheduled
// payment already counts as one of the remaining payments, hence the
// minus-one in the projection.
func evaluateMinimumPeriod(cfg *policy.Config, snap *subscription.Snapshot) policy.Verdict {
	verdict := policy.Verdict{}

	if cfg.MinimumPeriod > 0 && snap.PaymentCount < cfg.MinimumPeriod {
		verdict.Blocked = true
		verdict.Reason = fmt.Sprintf(reasonMinimumNotMet, snap.PaymentCount, cfg.MinimumPeriod)

		if snap.NextPaymentDate != nil {
			periodsNeeded := cfg.MinimumPeriod - snap.PaymentCount - 1
			windowStart, err := types.AddBillingPeriods(
				*snap.NextPaymentDate,
				periodsNeeded*snap.BillingInterval,
				snap.BillingPeriod,
			)
			if err == nil {
				verdict.WindowStart = &windowStart
			}
		}
	}

	if cfg.RollingCycle > 0 && verdict.WindowStart != nil {
		switch {
		case cfg.RollingCycle == cfg.MinimumPeriod:
			// Committing to the next payment re-locks the cycle immediately:
			// the window closes after exactly one more payment
			if windowEnd, err := types.AddBillingPeriods(
				*verdict.WindowStart, snap.BillingInterval, snap.BillingPeriod,
			); err == nil {
				verdict.WindowEnd = &windowEnd
			}
		case cfg.RollingCycle > cfg.MinimumPeriod:
			periodsUntilReset := cfg.RollingCycle - cfg.MinimumPeriod
			if windowEnd, err := types.AddBillingPeriods(
				*verdict.WindowStart, periodsUntilReset*snap.BillingInterval, snap.BillingPeriod,
			); err == nil {
				verdict.WindowEnd = &windowEnd
			}
			// rollingCycle < minimumPeriod is undefined upstream; no window
			// end is computed for it
		}
	}

	return verdict
}

// mergeVerdicts combines the evaluator verdicts into the aggregate result.
// Overall cancelability is the conjunction of all verdicts; block reasons
// keep evaluator order. When several evaluators propose a window start the
// strictest binding constraint wins: the chronologically latest proposal is
// the true earliest-possible-cancellation date.
func mergeVerdicts(verdicts ...policy.Verdict) *policy.Result {
	result := &policy.Result{
		Cancelable: true,
		Reasons:    []string{},
	}

	for _, v := range verdicts {
		if v.Blocked {
			result.Cancelable = false
			if v.Reason != "" {
				result.Reasons = append(result.Reasons, v.Reason)
			}
		}
		result.WindowStart = latestDate(result.WindowStart, v.WindowStart)
		if v.WindowEnd != nil {
			result.WindowEnd = v.WindowEnd
		}
	}

	return result
}

// latestDate returns the later of two optional dates
func latestDate(a, b *time.Time) *time.Time {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if b.After(*a) {
		return b
	}
	return a
}
