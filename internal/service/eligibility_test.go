package service

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/samsarastore/samsara/internal/cache"
	"github.com/samsarastore/samsara/internal/config"
	"github.com/samsarastore/samsara/internal/domain/payment"
	"github.com/samsarastore/samsara/internal/domain/policy"
	"github.com/samsarastore/samsara/internal/domain/subscription"
	ierr "github.com/samsarastore/samsara/internal/errors"
	"github.com/samsarastore/samsara/internal/logger"
	"github.com/samsarastore/samsara/internal/testutil"
	"github.com/samsarastore/samsara/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CancellationServiceSuite struct {
	suite.Suite
	ctx         context.Context
	service     *cancellationService
	subRepo     *testutil.InMemorySubscriptionStore
	productRepo *testutil.InMemoryProductStore
	paymentRepo *testutil.InMemoryPaymentStore
	metaRepo    *testutil.InMemoryPolicyMetaStore
}

func TestCancellationService(t *testing.T) {
	suite.Run(t, new(CancellationServiceSuite))
}

func (s *CancellationServiceSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	s.subRepo = testutil.NewInMemorySubscriptionStore()
	s.productRepo = testutil.NewInMemoryProductStore()
	s.paymentRepo = testutil.NewInMemoryPaymentStore()
	s.metaRepo = testutil.NewInMemoryPolicyMetaStore()

	cfg := config.GetDefaultConfig()
	log, err := logger.NewLogger(cfg)
	s.Require().NoError(err)

	params := ServiceParams{
		Logger:         log,
		Config:         cfg,
		Cache:          cache.NewInMemoryCache(true),
		SubRepo:        s.subRepo,
		ProductRepo:    s.productRepo,
		PaymentRepo:    s.paymentRepo,
		PolicyMetaRepo: s.metaRepo,
	}
	s.service = NewCancellationService(params).(*cancellationService)
}

func (s *CancellationServiceSuite) addSucceededPayments(subscriptionID string, paidAt ...time.Time) {
	for _, at := range paidAt {
		s.paymentRepo.Add(&payment.Payment{
			SubscriptionID: subscriptionID,
			Amount:         decimal.NewFromInt(20),
			Currency:       "usd",
			PaymentStatus:  types.PaymentStatusSucceeded,
			PaidAt:         lo.ToPtr(at),
		})
	}
}

// Scenario: minimum period of 3 payments, 1 completed. The next scheduled
// payment counts as one of the remaining two, so the window opens one
// billing period after it.
func (s *CancellationServiceSuite) TestMinimumPeriodOnly() {
	now := time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC)
	next := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	cfg := &policy.Config{MinimumPeriod: 3}
	snap := &subscription.Snapshot{
		PaymentCount:    1,
		StartDate:       time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		NextPaymentDate: &next,
		BillingPeriod:   types.BILLING_PERIOD_MONTH,
		BillingInterval: 1,
	}

	result := evaluateEligibility(cfg, snap, now)
	s.False(result.Cancelable)
	s.Contains(result.Reasons, "Minimum period not met: 1 of 3 payments completed")
	s.Require().NotNil(result.WindowStart)
	s.Equal("07/01/2025", types.FormatShortDate(*result.WindowStart))
	s.Nil(result.WindowEnd)
}

// Scenario: rolling cycle equal to the minimum period closes the window
// after exactly one more payment.
func (s *CancellationServiceSuite) TestRollingCycleEqualToMinimum() {
	now := time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC)
	next := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	cfg := &policy.Config{MinimumPeriod: 3, RollingCycle: 3}
	snap := &subscription.Snapshot{
		PaymentCount:    1,
		NextPaymentDate: &next,
		BillingPeriod:   types.BILLING_PERIOD_MONTH,
		BillingInterval: 1,
	}

	result := evaluateEligibility(cfg, snap, now)
	s.False(result.Cancelable)
	s.Require().NotNil(result.WindowStart)
	s.Equal("07/01/2025", types.FormatShortDate(*result.WindowStart))
	s.Require().NotNil(result.WindowEnd)
	s.Equal("08/01/2025", types.FormatShortDate(*result.WindowEnd))
}

func (s *CancellationServiceSuite) TestRollingCycleGreaterThanMinimum() {
	now := time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC)
	next := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	cfg := &policy.Config{MinimumPeriod: 3, RollingCycle: 5}
	snap := &subscription.Snapshot{
		PaymentCount:    1,
		NextPaymentDate: &next,
		BillingPeriod:   types.BILLING_PERIOD_MONTH,
		BillingInterval: 1,
	}

	result := evaluateEligibility(cfg, snap, now)
	s.Require().NotNil(result.WindowStart)
	s.Equal("07/01/2025", types.FormatShortDate(*result.WindowStart))
	// window stays open for rollingCycle - minimumPeriod additional periods
	s.Require().NotNil(result.WindowEnd)
	s.Equal("09/01/2025", types.FormatShortDate(*result.WindowEnd))
}

// rollingCycle < minimumPeriod is undefined upstream: blocked, window start
// proposed, but no end date is invented.
func (s *CancellationServiceSuite) TestRollingCycleLessThanMinimum() {
	now := time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC)
	next := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	cfg := &policy.Config{MinimumPeriod: 3, RollingCycle: 2}
	snap := &subscription.Snapshot{
		PaymentCount:    1,
		NextPaymentDate: &next,
		BillingPeriod:   types.BILLING_PERIOD_MONTH,
		BillingInterval: 1,
	}

	result := evaluateEligibility(cfg, snap, now)
	s.False(result.Cancelable)
	s.Require().NotNil(result.WindowStart)
	s.Nil(result.WindowEnd)
}

// Scenario: 14-day cooling-off, 5 days in. 9 whole days remain.
func (s *CancellationServiceSuite) TestCoolingOffPeriod() {
	now := time.Date(2025, time.May, 15, 12, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, -5)

	cfg := &policy.Config{CoolingOffPeriodDays: 14}
	snap := &subscription.Snapshot{StartDate: start}

	result := evaluateEligibility(cfg, snap, now)
	s.False(result.Cancelable)
	s.Require().Len(result.Reasons, 1)
	s.Equal("Cooling-off period: 9 days remaining", result.Reasons[0])
	s.Require().NotNil(result.WindowStart)
	s.True(result.WindowStart.Equal(start.AddDate(0, 0, 14)))
}

// A partial day still counts as a remaining day: 13.5 days left reads as 14.
func (s *CancellationServiceSuite) TestCoolingOffRoundsPartialDaysUp() {
	now := time.Date(2025, time.May, 15, 12, 0, 0, 0, time.UTC)
	start := now.Add(-12 * time.Hour)

	cfg := &policy.Config{CoolingOffPeriodDays: 14}
	snap := &subscription.Snapshot{StartDate: start}

	result := evaluateEligibility(cfg, snap, now)
	s.Require().Len(result.Reasons, 1)
	s.Equal("Cooling-off period: 14 days remaining", result.Reasons[0])
}

// A missing start date disables the cooling-off rule rather than blocking.
func (s *CancellationServiceSuite) TestCoolingOffMissingStartDateFailsOpen() {
	now := time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC)

	cfg := &policy.Config{CoolingOffPeriodDays: 14}
	snap := &subscription.Snapshot{}

	result := evaluateEligibility(cfg, snap, now)
	s.True(result.Cancelable)
	s.Empty(result.Reasons)
}

// Scenario: disable-action window [day 30, day 60] from the last payment,
// evaluated on day 45. Blocked, but neither the "more days" nor the
// "closed" framing applies while inside the window.
func (s *CancellationServiceSuite) TestDisableWindowInsideWindow() {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	lastPayment := now.AddDate(0, 0, -45)

	cfg := &policy.Config{
		WindowAction:      types.WindowActionDisable,
		WindowStartOffset: lo.ToPtr(30),
		WindowEndOffset:   lo.ToPtr(60),
		WindowPeriodUnit:  types.WINDOW_PERIOD_UNIT_DAY,
	}
	snap := &subscription.Snapshot{StartDate: now.AddDate(0, -6, 0), LastPaymentDate: &lastPayment}

	result := evaluateEligibility(cfg, snap, now)
	s.False(result.Cancelable)
	s.Require().Len(result.Reasons, 1)
	s.Equal("Cancellation is currently disabled", result.Reasons[0])
	s.NotContains(result.Reasons[0], "more days")
	s.Nil(result.WindowStart)
	s.Nil(result.WindowEnd)
}

func (s *CancellationServiceSuite) TestEnableWindowNotYetOpen() {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	lastPayment := now.AddDate(0, 0, -10)

	cfg := &policy.Config{
		WindowAction:      types.WindowActionEnable,
		WindowStartOffset: lo.ToPtr(30),
		WindowPeriodUnit:  types.WINDOW_PERIOD_UNIT_DAY,
	}
	snap := &subscription.Snapshot{StartDate: now.AddDate(0, -6, 0), LastPaymentDate: &lastPayment}

	result := evaluateEligibility(cfg, snap, now)
	s.False(result.Cancelable)
	s.Require().Len(result.Reasons, 1)
	s.Equal("Cancellation not available for 20 more days", result.Reasons[0])
	s.Require().NotNil(result.WindowStart)
	s.True(result.WindowStart.Equal(lastPayment.AddDate(0, 0, 30)))
}

// A missed window blocks with no remediation date: the subscriber gets the
// closed reason and nothing else.
func (s *CancellationServiceSuite) TestEnableWindowAlreadyClosed() {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	lastPayment := now.AddDate(0, 0, -90)

	cfg := &policy.Config{
		WindowAction:      types.WindowActionEnable,
		WindowStartOffset: lo.ToPtr(30),
		WindowEndOffset:   lo.ToPtr(60),
		WindowPeriodUnit:  types.WINDOW_PERIOD_UNIT_DAY,
	}
	snap := &subscription.Snapshot{StartDate: now.AddDate(0, -6, 0), LastPaymentDate: &lastPayment}

	result := evaluateEligibility(cfg, snap, now)
	s.False(result.Cancelable)
	s.Require().Len(result.Reasons, 1)
	s.Equal("Cancellation window has closed", result.Reasons[0])
	s.Nil(result.WindowStart)
	s.Nil(result.WindowEnd)
}

// A missing last payment date disables the window rule entirely.
func (s *CancellationServiceSuite) TestWindowRuleMissingLastPaymentFailsOpen() {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	cfg := &policy.Config{
		WindowAction:      types.WindowActionEnable,
		WindowStartOffset: lo.ToPtr(30),
		WindowPeriodUnit:  types.WINDOW_PERIOD_UNIT_DAY,
	}
	snap := &subscription.Snapshot{StartDate: now.AddDate(0, -6, 0)}

	result := evaluateEligibility(cfg, snap, now)
	s.True(result.Cancelable)
	s.Empty(result.Reasons)
}

// A zero-valued policy yields cancelable regardless of subscription state.
func (s *CancellationServiceSuite) TestZeroPolicyPassthrough() {
	now := time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC)
	next := now.AddDate(0, 1, 0)
	last := now.AddDate(0, -1, 0)

	snap := &subscription.Snapshot{
		PaymentCount:    0,
		StartDate:       now.AddDate(0, 0, -1),
		NextPaymentDate: &next,
		LastPaymentDate: &last,
		BillingPeriod:   types.BILLING_PERIOD_MONTH,
		BillingInterval: 1,
	}

	result := evaluateEligibility(&policy.Config{}, snap, now)
	s.True(result.Cancelable)
	s.Empty(result.Reasons)
	s.Nil(result.WindowStart)
	s.Nil(result.WindowEnd)
}

// Identical inputs always produce identical output.
func (s *CancellationServiceSuite) TestEvaluationIsIdempotent() {
	now := time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC)
	next := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	cfg := &policy.Config{MinimumPeriod: 3, RollingCycle: 3, CoolingOffPeriodDays: 30}
	snap := &subscription.Snapshot{
		PaymentCount:    1,
		StartDate:       now.AddDate(0, 0, -10),
		NextPaymentDate: &next,
		BillingPeriod:   types.BILLING_PERIOD_MONTH,
		BillingInterval: 1,
	}

	first := evaluateEligibility(cfg, snap, now)
	second := evaluateEligibility(cfg, snap, now)
	s.Equal(first, second)
}

// The cooling-off block only ever transitions blocked -> unblocked as time
// advances.
func (s *CancellationServiceSuite) TestCoolingOffMonotonicity() {
	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	cfg := &policy.Config{CoolingOffPeriodDays: 14}
	snap := &subscription.Snapshot{StartDate: start}

	blockedSeen := false
	unblockedSeen := false
	for day := 0; day < 30; day++ {
		now := start.AddDate(0, 0, day)
		verdict := evaluateCoolingOff(cfg, snap, now)
		if verdict.Blocked {
			s.False(unblockedSeen, "cooling-off re-blocked after unblocking at day %d", day)
			blockedSeen = true
		} else {
			unblockedSeen = true
		}
	}
	s.True(blockedSeen)
	s.True(unblockedSeen)
}

// When two evaluators propose a window start the chronologically latest
// proposal wins: it is the true earliest-possible-cancellation date.
func (s *CancellationServiceSuite) TestStrictestWindowStartWins() {
	now := time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC)
	next := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	// cooling-off proposes now+45d, minimum period proposes 07/01 (now+47d)
	cfg := &policy.Config{CoolingOffPeriodDays: 50, MinimumPeriod: 3}
	snap := &subscription.Snapshot{
		PaymentCount:    1,
		StartDate:       now.AddDate(0, 0, -5),
		NextPaymentDate: &next,
		BillingPeriod:   types.BILLING_PERIOD_MONTH,
		BillingInterval: 1,
	}

	coolingOff := evaluateCoolingOff(cfg, snap, now)
	minimum := evaluateMinimumPeriod(cfg, snap)
	s.Require().NotNil(coolingOff.WindowStart)
	s.Require().NotNil(minimum.WindowStart)

	result := evaluateEligibility(cfg, snap, now)
	s.Require().NotNil(result.WindowStart)
	expected := latestDate(coolingOff.WindowStart, minimum.WindowStart)
	s.True(result.WindowStart.Equal(*expected))
	s.Len(result.Reasons, 2)
}

func (s *CancellationServiceSuite) TestLatestDate() {
	earlier := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	s.Nil(latestDate(nil, nil))
	s.Equal(&earlier, latestDate(&earlier, nil))
	s.Equal(&later, latestDate(nil, &later))
	s.Equal(&later, latestDate(&earlier, &later))
	s.Equal(&later, latestDate(&later, &earlier))
}

// Full path through repositories, snapshot building and formatting.
func (s *CancellationServiceSuite) TestGetCancellationEligibility() {
	now := time.Now().UTC()
	start := now.AddDate(0, 0, -5)

	s.subRepo.Add(&subscription.Subscription{
		ID:                 "sub-1",
		CustomerID:         "cust-1",
		ProductID:          "prod-1",
		SubscriptionStatus: types.SubscriptionStatusActive,
		StartDate:          start,
		BillingPeriod:      types.BILLING_PERIOD_MONTH,
		BillingInterval:    1,
	})
	s.metaRepo.SetMeta("sub-1", map[string]string{
		policy.MetaKeyCoolingOffPeriod: "14",
		policy.MetaKeyMinimumPeriod:    "2",
	})
	s.addSucceededPayments("sub-1", start)

	resp, err := s.service.GetCancellationEligibility(s.ctx, "sub-1")
	s.NoError(err)
	s.False(resp.Cancelable)
	s.Require().Len(resp.Reasons, 2)
	s.Contains(resp.Reasons[0], "9 days remaining")
	s.Contains(resp.Reasons[1], "1 of 2 payments completed")
	s.Require().NotNil(resp.Window.Start)
	s.Equal(types.FormatShortDate(start.AddDate(0, 0, 14)), *resp.Window.Start)
	s.Equal(14, resp.Rules.CoolingOffPeriod)
	s.Equal(2, resp.Rules.MinimumPeriod)
	s.Equal(1, resp.Current.PaymentCount)
	s.Equal("active", resp.Current.Status)
	s.Equal(types.FormatShortDate(start), resp.Current.StartDate)
}

func (s *CancellationServiceSuite) TestGetCancellationEligibilityNotFound() {
	resp, err := s.service.GetCancellationEligibility(s.ctx, "missing")
	s.Nil(resp)
	s.True(ierr.IsNotFound(err))
}

func (s *CancellationServiceSuite) TestGetCancellationEligibilityOwnership() {
	s.subRepo.Add(&subscription.Subscription{
		ID:                 "sub-1",
		CustomerID:         "cust-1",
		SubscriptionStatus: types.SubscriptionStatusActive,
		StartDate:          time.Now().UTC().AddDate(0, -3, 0),
		BillingPeriod:      types.BILLING_PERIOD_MONTH,
		BillingInterval:    1,
	})

	s.Run("Owner Can Read", func() {
		ctx := testutil.SetupContextWithCustomer("cust-1")
		resp, err := s.service.GetCancellationEligibility(ctx, "sub-1")
		s.NoError(err)
		s.True(resp.Cancelable)
	})

	s.Run("Other Customer Denied", func() {
		ctx := testutil.SetupContextWithCustomer("cust-2")
		resp, err := s.service.GetCancellationEligibility(ctx, "sub-1")
		s.Nil(resp)
		s.True(ierr.IsPermissionDenied(err))
	})
}

// Payment count comes from the settled payment history, not from the
// subscription row.
func (s *CancellationServiceSuite) TestSnapshotCountsOnlySettledPayments() {
	now := time.Now().UTC()
	s.subRepo.Add(&subscription.Subscription{
		ID:                 "sub-1",
		CustomerID:         "cust-1",
		SubscriptionStatus: types.SubscriptionStatusActive,
		StartDate:          now.AddDate(0, -3, 0),
		BillingPeriod:      types.BILLING_PERIOD_MONTH,
		BillingInterval:    1,
	})
	s.addSucceededPayments("sub-1", now.AddDate(0, -2, 0), now.AddDate(0, -1, 0))
	s.paymentRepo.Add(&payment.Payment{
		SubscriptionID: "sub-1",
		Amount:         decimal.NewFromInt(20),
		Currency:       "usd",
		PaymentStatus:  types.PaymentStatusFailed,
	})
	s.metaRepo.SetMeta("sub-1", map[string]string{policy.MetaKeyMinimumPeriod: "3"})

	resp, err := s.service.GetCancellationEligibility(s.ctx, "sub-1")
	s.NoError(err)
	s.False(resp.Cancelable)
	s.Contains(resp.Reasons[0], "2 of 3 payments completed")
	s.Equal(2, resp.Current.PaymentCount)
}
