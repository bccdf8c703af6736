package repository

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/samsarastore/samsara/internal/domain/product"
	ierr "github.com/samsarastore/samsara/internal/errors"
	"github.com/samsarastore/samsara/internal/logger"
	"github.com/samsarastore/samsara/internal/types"
)

type productRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

func NewProductRepository(db *sqlx.DB, log *logger.Logger) product.Repository {
	return &productRepository{db: db, log: log}
}

const productByIDQuery = `
SELECT id, parent_id, name, status, created_at, updated_at
FROM products
WHERE id = $1 AND status = $2`

func (r *productRepository) Get(ctx context.Context, id string) (*product.Product, error) {
	var p product.Product
	err := r.db.GetContext(ctx, &p, productByIDQuery, id, types.StatusPublished)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("product not found").
				WithHintf("Product with ID %s was not found", id).
				WithReportableDetails(map[string]any{"product_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch product").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}
