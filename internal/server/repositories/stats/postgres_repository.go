package stats

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/aitutor/internal/common"
	"github.com/dmitrijs2005/aitutor/internal/dbx"
	"github.com/dmitrijs2005/aitutor/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, totalLogins int, lastLogin string) error {
	query :=
		`INSERT INTO user_stats (user_id, total_logins, last_login)
		 VALUES ($1, $2, NULLIF($3, '')::date)
		 ON CONFLICT (user_id) DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, totalLogins, lastLogin); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.UserStats, error) {
	query :=
		`SELECT user_id, total_logins, COALESCE(last_login::text, ''), quizzes_taken, to_json(topics)
		 FROM user_stats
		 WHERE user_id = $1
		 `

	s := &models.UserStats{}
	var topics []byte
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&s.UserID, &s.TotalLogins, &s.LastLogin, &s.QuizzesTaken, &topics)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(topics, &s.Topics); err != nil {
		return nil, fmt.Errorf("decode topics: %w", err)
	}
	if s.Topics == nil {
		s.Topics = []string{}
	}

	return s, nil
}

func (r *PostgresRepository) RecordLogin(ctx context.Context, userID string, day string) (bool, error) {
	query :=
		`UPDATE user_stats
		 SET total_logins = total_logins + 1, last_login = $2::date
		 WHERE user_id = $1 AND last_login IS DISTINCT FROM $2::date
		 `

	n, err := dbx.ExecAffected(ctx, r.db, query, userID, day)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	if n > 0 {
		return true, nil
	}
	return false, r.mustExist(ctx, userID)
}

func (r *PostgresRepository) IncrementQuizzes(ctx context.Context, userID string) error {
	query :=
		`UPDATE user_stats SET quizzes_taken = quizzes_taken + 1
		 WHERE user_id = $1
		 `

	n, err := dbx.ExecAffected(ctx, r.db, query, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) AddTopic(ctx context.Context, userID string, topic string) (bool, error) {
	query :=
		`UPDATE user_stats SET topics = array_append(topics, $2::text)
		 WHERE user_id = $1 AND NOT ($2::text = ANY(topics))
		 `

	n, err := dbx.ExecAffected(ctx, r.db, query, userID, topic)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	if n > 0 {
		return true, nil
	}
	return false, r.mustExist(ctx, userID)
}

// mustExist tells a no-op update apart from a missing row.
func (r *PostgresRepository) mustExist(ctx context.Context, userID string) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM user_stats WHERE user_id = $1`, userID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
