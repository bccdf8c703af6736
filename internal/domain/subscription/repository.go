package subscription

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, id string) (*Subscription, error)
}
