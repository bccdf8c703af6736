package service

import (
	"github.com/samsarastore/samsara/internal/cache"
	"github.com/samsarastore/samsara/internal/config"
	"github.com/samsarastore/samsara/internal/domain/payment"
	"github.com/samsarastore/samsara/internal/domain/policy"
	"github.com/samsarastore/samsara/internal/domain/product"
	"github.com/samsarastore/samsara/internal/domain/subscription"
	"github.com/samsarastore/samsara/internal/logger"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache

	// Repositories
	SubRepo        subscription.Repository
	ProductRepo    product.Repository
	PaymentRepo    payment.Repository
	PolicyMetaRepo policy.MetaRepository
}
