package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/samsarastore/samsara/internal/domain/payment"
	"github.com/samsarastore/samsara/internal/domain/policy"
	"github.com/samsarastore/samsara/internal/domain/product"
	"github.com/samsarastore/samsara/internal/domain/subscription"
	"github.com/samsarastore/samsara/internal/logger"
)

// Repositories bundles all store-of-record read paths
type Repositories struct {
	Subscription subscription.Repository
	Product      product.Repository
	Payment      payment.Repository
	PolicyMeta   policy.MetaRepository
}

// NewRepositories wires the Postgres-backed repositories
func NewRepositories(db *sqlx.DB, log *logger.Logger) Repositories {
	return Repositories{
		Subscription: NewSubscriptionRepository(db, log),
		Product:      NewProductRepository(db, log),
		Payment:      NewPaymentRepository(db, log),
		PolicyMeta:   NewPolicyMetaRepository(db, log),
	}
}
