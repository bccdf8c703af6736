package repository

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/samsarastore/samsara/internal/domain/subscription"
	ierr "github.com/samsarastore/samsara/internal/errors"
	"github.com/samsarastore/samsara/internal/logger"
	"github.com/samsarastore/samsara/internal/types"
)

type subscriptionRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

func NewSubscriptionRepository(db *sqlx.DB, log *logger.Logger) subscription.Repository {
	return &subscriptionRepository{db: db, log: log}
}

const subscriptionByIDQuery = `
SELECT id, customer_id, product_id, variation_id, subscription_status,
       start_date, next_payment_date, last_payment_date,
       billing_period, billing_interval,
       status, created_at, updated_at
FROM subscriptions
WHERE id = $1 AND status = $2`

func (r *subscriptionRepository) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	err := r.db.GetContext(ctx, &sub, subscriptionByIDQuery, id, types.StatusPublished)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("subscription not found").
				WithHintf("Subscription with ID %s was not found", id).
				WithReportableDetails(map[string]any{"subscription_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch subscription").
			Mark(ierr.ErrDatabase)
	}
	return &sub, nil
}
