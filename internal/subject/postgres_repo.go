package subject

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const maxRecentLimit = 100

type PostgresRepo struct {
	db *pgxpool.Pool
}

var _ LookupLog = (*PostgresRepo)(nil)

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Record(ctx context.Context, e Entry) error {
	const sql = `
		INSERT INTO subject_lookups (id, subject, title_count, degraded, error, requested_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`

	_, err := r.db.Exec(ctx, sql, e.ID, e.Subject, e.TitleCount, e.Degraded, e.Error, e.RequestedAt)
	if err != nil {
		return fmt.Errorf("insert subject lookup: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Recent(ctx context.Context, limit int) ([]Entry, error) {
	limit = clampLimit(limit)

	const sql = `
		SELECT id::text, subject, title_count, degraded, COALESCE(error, ''), requested_at
		FROM subject_lookups
		ORDER BY requested_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("query subject lookups: %w", err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entry, error) {
		var e Entry
		err := row.Scan(&e.ID, &e.Subject, &e.TitleCount, &e.Degraded, &e.Error, &e.RequestedAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan subject lookups: %w", err)
	}
	return entries, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > maxRecentLimit {
		return maxRecentLimit
	}
	return limit
}
