package policy

import (
	"context"
)

// MetaRepository reads raw cancellation policy metadata from the store of
// record. Entity ids may reference subscriptions, products or variations;
// the store keys metadata the same way for all three.
type MetaRepository interface {
	// GetPolicyMeta returns the raw values for the requested keys on one
	// entity. Missing keys are simply absent from the result; an entity
	// with no metadata at all yields an empty map, not an error.
	GetPolicyMeta(ctx context.Context, entityID string, keys []string) (map[string]string, error)
}
