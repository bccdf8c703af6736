package testutil

import (
	"context"
	"sync"

	ierr "github.com/samsarastore/samsara/internal/errors"
)

// InMemoryPolicyMetaStore implements policy.MetaRepository
type InMemoryPolicyMetaStore struct {
	mu      sync.RWMutex
	meta    map[string]map[string]string
	failing bool
}

func NewInMemoryPolicyMetaStore() *InMemoryPolicyMetaStore {
	return &InMemoryPolicyMetaStore{
		meta: make(map[string]map[string]string),
	}
}

func (s *InMemoryPolicyMetaStore) SetMeta(entityID string, meta map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta[entityID] = meta
}

// Fail makes every subsequent read error, for exercising the
// fail-open resolution path
func (s *InMemoryPolicyMetaStore) Fail(failing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = failing
}

func (s *InMemoryPolicyMetaStore) GetPolicyMeta(_ context.Context, entityID string, keys []string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.failing {
		return nil, ierr.NewError("policy meta store unavailable").
			WithHint("Failed to fetch policy metadata").
			Mark(ierr.ErrDatabase)
	}

	result := make(map[string]string, len(keys))
	entityMeta, ok := s.meta[entityID]
	if !ok {
		return result, nil
	}
	for _, key := range keys {
		if value, exists := entityMeta[key]; exists {
			result[key] = value
		}
	}
	return result, nil
}
