package service

import (
	"context"
	"time"

	"github.com/samsarastore/samsara/internal/domain/subscription"
)

// SubscriptionService reads subscriptions from the store of record and
// builds the immutable per-request snapshots the evaluators consume.
type SubscriptionService interface {
	GetSubscription(ctx context.Context, id string) (*subscription.Subscription, error)
	BuildSnapshot(ctx context.Context, sub *subscription.Subscription) (*subscription.Snapshot, error)
}

type subscriptionService struct {
	ServiceParams
}

func NewSubscriptionService(params ServiceParams) SubscriptionService {
	return &subscriptionService{ServiceParams: params}
}

func (s *subscriptionService) GetSubscription(ctx context.Context, id string) (*subscription.Subscription, error) {
	return s.SubRepo.Get(ctx, id)
}

// BuildSnapshot derives the evaluation-time view of a subscription. The
// completed payment count and last payment date come from the payment
// history rather than from fields on the subscription row; the store of
// record only tracks the latter as a convenience value and it can lag.
func (s *subscriptionService) BuildSnapshot(ctx context.Context, sub *subscription.Subscription) (*subscription.Snapshot, error) {
	payments, err := s.PaymentRepo.ListBySubscription(ctx, sub.ID)
	if err != nil {
		return nil, err
	}

	paymentCount := 0
	var lastPaymentDate *time.Time
	for _, p := range payments {
		if !p.IsCompleted() {
			continue
		}
		paymentCount++
		if lastPaymentDate == nil || p.PaidAt.After(*lastPaymentDate) {
			lastPaymentDate = p.PaidAt
		}
	}
	if lastPaymentDate == nil {
		lastPaymentDate = sub.LastPaymentDate
	}

	billingInterval := sub.BillingInterval
	if billingInterval < 1 {
		billingInterval = 1
	}

	return &subscription.Snapshot{
		SubscriptionID:  sub.ID,
		CustomerID:      sub.CustomerID,
		PaymentCount:    paymentCount,
		StartDate:       sub.StartDate,
		NextPaymentDate: sub.NextPaymentDate,
		LastPaymentDate: lastPaymentDate,
		BillingPeriod:   sub.BillingPeriod,
		BillingInterval: billingInterval,
		Status:          sub.SubscriptionStatus,
	}, nil
}
