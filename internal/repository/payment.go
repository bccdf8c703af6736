package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/samsarastore/samsara/internal/domain/payment"
	ierr "github.com/samsarastore/samsara/internal/errors"
	"github.com/samsarastore/samsara/internal/logger"
	"github.com/samsarastore/samsara/internal/types"
)

type paymentRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

func NewPaymentRepository(db *sqlx.DB, log *logger.Logger) payment.Repository {
	return &paymentRepository{db: db, log: log}
}

const paymentsBySubscriptionQuery = `
SELECT id, subscription_id, amount, currency, payment_status, paid_at,
       status, created_at, updated_at
FROM payments
WHERE subscription_id = $1 AND status = $2
ORDER BY paid_at ASC NULLS LAST`

func (r *paymentRepository) ListBySubscription(ctx context.Context, subscriptionID string) ([]*payment.Payment, error) {
	payments := []*payment.Payment{}
	err := r.db.SelectContext(ctx, &payments, paymentsBySubscriptionQuery, subscriptionID, types.StatusPublished)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch payment history").
			WithReportableDetails(map[string]any{"subscription_id": subscriptionID}).
			Mark(ierr.ErrDatabase)
	}
	return payments, nil
}
