package payment

import (
	"context"
)

type Repository interface {
	ListBySubscription(ctx context.Context, subscriptionID string) ([]*Payment, error)
}
