package service

import (
	"context"

	"github.com/samsarastore/samsara/internal/cache"
	"github.com/samsarastore/samsara/internal/domain/policy"
	"github.com/samsarastore/samsara/internal/domain/subscription"
)

// PolicyService resolves the effective cancellation policy for a
// subscription, falling back from subscription-level metadata to the
// product/variation and then to the variation's parent product.
type PolicyService interface {
	ResolveConfig(ctx context.Context, sub *subscription.Subscription) (*policy.Config, error)
}

type policyService struct {
	ServiceParams
}

func NewPolicyService(params ServiceParams) PolicyService {
	return &policyService{ServiceParams: params}
}

// ResolveConfig returns the first non-empty policy group in resolution
// order. The six policy fields always come from a single level; levels are
// never mixed within one evaluation. Lookup failures along the fallback
// chain degrade to the zero config — an unresolved policy must never block
// cancellation by omission.
func (s *policyService) ResolveConfig(ctx context.Context, sub *subscription.Subscription) (*policy.Config, error) {
	meta, err := s.PolicyMetaRepo.GetPolicyMeta(ctx, sub.ID, policy.MetaKeys)
	if err != nil {
		s.Logger.Warnw("failed to read subscription policy metadata, treating as unrestricted",
			"subscription_id", sub.ID, "error", err)
		return &policy.Config{}, nil
	}

	cfg := policy.FromMeta(meta)
	if !cfg.IsEmpty() {
		return cfg, nil
	}

	productID := sub.VariationID
	if productID == "" {
		productID = sub.ProductID
	}
	if productID == "" {
		return cfg, nil
	}

	if resolved := s.resolveProductConfig(ctx, productID); resolved != nil {
		return resolved, nil
	}
	return &policy.Config{}, nil
}

// resolveProductConfig resolves and caches the product-level policy group.
// Subscription-level metadata is never cached; a subscription's own
// overrides must always be read fresh.
func (s *policyService) resolveProductConfig(ctx context.Context, productID string) *policy.Config {
	key := cache.GenerateKey(cache.PrefixProductPolicy, productID)
	if cached, found := s.Cache.Get(ctx, key); found {
		if cfg, ok := cached.(*policy.Config); ok {
			return cfg
		}
	}

	cfg := s.lookupProductConfig(ctx, productID)
	if cfg != nil {
		s.Cache.Set(ctx, key, cfg, cache.DefaultExpiration)
	}
	return cfg
}

func (s *policyService) lookupProductConfig(ctx context.Context, productID string) *policy.Config {
	meta, err := s.PolicyMetaRepo.GetPolicyMeta(ctx, productID, policy.MetaKeys)
	if err == nil {
		if cfg := policy.FromMeta(meta); !cfg.IsEmpty() {
			return cfg
		}
	} else {
		s.Logger.Warnw("failed to read product policy metadata",
			"product_id", productID, "error", err)
	}

	prod, err := s.ProductRepo.Get(ctx, productID)
	if err != nil || !prod.IsVariation() {
		return nil
	}

	meta, err = s.PolicyMetaRepo.GetPolicyMeta(ctx, prod.ParentID, policy.MetaKeys)
	if err != nil {
		s.Logger.Warnw("failed to read parent product policy metadata",
			"product_id", prod.ParentID, "error", err)
		return nil
	}
	if cfg := policy.FromMeta(meta); !cfg.IsEmpty() {
		return cfg
	}
	return nil
}
