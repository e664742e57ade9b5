package usage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/aitutor/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Consume(ctx context.Context, userID, day string, limit int) (int, bool, error) {
	query :=
		`INSERT INTO api_usage (user_id, date, request_count)
		 VALUES ($1, $2::date, 1)
		 ON CONFLICT (user_id, date)
		 DO UPDATE SET request_count = api_usage.request_count + 1
		 WHERE api_usage.request_count < $3
		 RETURNING request_count
		 `

	var count int
	err := r.db.QueryRowContext(ctx, query, userID, day, limit).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return limit, false, nil
		}
		return 0, false, fmt.Errorf("db error: %w", err)
	}

	return count, true, nil
}

func (r *PostgresRepository) Count(ctx context.Context, userID, day string) (int, error) {
	query :=
		`SELECT request_count FROM api_usage
		 WHERE user_id = $1 AND date = $2::date
		 `

	var count int
	err := r.db.QueryRowContext(ctx, query, userID, day).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return count, nil
}
