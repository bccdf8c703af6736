package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/samsarastore/samsara/internal/domain/policy"
	ierr "github.com/samsarastore/samsara/internal/errors"
	"github.com/samsarastore/samsara/internal/logger"
)

type policyMetaRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

func NewPolicyMetaRepository(db *sqlx.DB, log *logger.Logger) policy.MetaRepository {
	return &policyMetaRepository{db: db, log: log}
}

type policyMetaRow struct {
	MetaKey   string `db:"meta_key"`
	MetaValue string `db:"meta_value"`
}

const policyMetaQuery = `
SELECT meta_key, meta_value
FROM policy_meta
WHERE entity_id = ? AND meta_key IN (?)`

func (r *policyMetaRepository) GetPolicyMeta(ctx context.Context, entityID string, keys []string) (map[string]string, error) {
	meta := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return meta, nil
	}

	query, args, err := sqlx.In(policyMetaQuery, entityID, keys)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to build policy metadata query").
			Mark(ierr.ErrDatabase)
	}

	rows := []policyMetaRow{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch policy metadata").
			WithReportableDetails(map[string]any{"entity_id": entityID}).
			Mark(ierr.ErrDatabase)
	}

	for _, row := range rows {
		meta[row.MetaKey] = row.MetaValue
	}
	return meta, nil
}
