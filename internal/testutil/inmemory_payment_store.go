package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/samsarastore/samsara/internal/domain/payment"
)

// InMemoryPaymentStore implements payment.Repository
type InMemoryPaymentStore struct {
	mu       sync.RWMutex
	payments []*payment.Payment
}

func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{}
}

func (s *InMemoryPaymentStore) Add(p *payment.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	s.payments = append(s.payments, p)
}

func (s *InMemoryPaymentStore) ListBySubscription(_ context.Context, subscriptionID string) ([]*payment.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*payment.Payment{}
	for _, p := range s.payments {
		if p.SubscriptionID == subscriptionID {
			result = append(result, p)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].PaidAt == nil || result[j].PaidAt == nil {
			return result[j].PaidAt == nil
		}
		return result[i].PaidAt.Before(*result[j].PaidAt)
	})
	return result, nil
}
