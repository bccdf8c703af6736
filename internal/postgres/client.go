package postgres

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/samsarastore/samsara/internal/config"
	ierr "github.com/samsarastore/samsara/internal/errors"
	"github.com/samsarastore/samsara/internal/logger"
)

// NewDB opens a connection pool to the store of record. Failure here is a
// DependencyUnavailable condition: eligibility evaluation never starts
// without a reachable store.
func NewDB(cfg *config.Configuration, log *logger.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Postgres.DSN())
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Subscription store is not available").
			Mark(ierr.ErrDependencyUnavailable)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Subscription store is not available").
			Mark(ierr.ErrDependencyUnavailable)
	}

	log.Infow("connected to postgres",
		"host", cfg.Postgres.Host,
		"database", cfg.Postgres.DBName,
	)
	return db, nil
}
