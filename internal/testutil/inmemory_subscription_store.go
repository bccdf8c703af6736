package testutil

import (
	"context"
	"sync"

	"github.com/samsarastore/samsara/internal/domain/subscription"
	ierr "github.com/samsarastore/samsara/internal/errors"
)

// InMemorySubscriptionStore implements subscription.Repository
type InMemorySubscriptionStore struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription.Subscription
}

func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		subscriptions: make(map[string]*subscription.Subscription),
	}
}

func (s *InMemorySubscriptionStore) Add(sub *subscription.Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscriptions[sub.ID] = sub
}

func (s *InMemorySubscriptionStore) Get(_ context.Context, id string) (*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subscriptions[id]
	if !ok {
		return nil, ierr.NewError("subscription not found").
			WithHintf("Subscription with ID %s was not found", id).
			WithReportableDetails(map[string]any{"subscription_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return sub, nil
}
