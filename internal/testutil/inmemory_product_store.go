package testutil

import (
	"context"
	"sync"

	"github.com/samsarastore/samsara/internal/domain/product"
	ierr "github.com/samsarastore/samsara/internal/errors"
)

// InMemoryProductStore implements product.Repository
type InMemoryProductStore struct {
	mu       sync.RWMutex
	products map[string]*product.Product
}

func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{
		products: make(map[string]*product.Product),
	}
}

func (s *InMemoryProductStore) Add(p *product.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

func (s *InMemoryProductStore) Get(_ context.Context, id string) (*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ierr.NewError("product not found").
			WithHintf("Product with ID %s was not found", id).
			WithReportableDetails(map[string]any{"product_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return p, nil
}
