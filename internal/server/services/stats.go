package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/aitutor/internal/common"
	"github.com/dmitrijs2005/aitutor/internal/server/models"
	"github.com/dmitrijs2005/aitutor/internal/server/repositories/repomanager"
)

// StatsService records logins, quizzes and explored topics.
type StatsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewStatsService(db *sql.DB, m repomanager.RepositoryManager) *StatsService {
	return &StatsService{db: db, repomanager: m, now: time.Now}
}

func (s *StatsService) Today() string {
	return common.Day(s.now())
}

// RecordLogin counts the first login of day. recorded=false means the user
// was already counted for that day.
func (s *StatsService) RecordLogin(ctx context.Context, userID, day string) (bool, error) {
	recorded, err := s.repomanager.Stats(s.db).RecordLogin(ctx, userID, day)
	if err != nil {
		return false, statsError(err)
	}
	return recorded, nil
}

func (s *StatsService) RecordQuizTaken(ctx context.Context, userID string) error {
	if err := s.repomanager.Stats(s.db).IncrementQuizzes(ctx, userID); err != nil {
		return statsError(err)
	}
	return nil
}

// RecordTopic adds topic to the user's explored set. Names match exactly.
func (s *StatsService) RecordTopic(ctx context.Context, userID, topic string) (bool, error) {
	if strings.TrimSpace(topic) == "" {
		return false, fmt.Errorf("%w: topic is required", common.ErrValidation)
	}
	updated, err := s.repomanager.Stats(s.db).AddTopic(ctx, userID, topic)
	if err != nil {
		return false, statsError(err)
	}
	return updated, nil
}

// GetOrInit returns the stats row, creating an empty one when absent.
func (s *StatsService) GetOrInit(ctx context.Context, userID string) (*models.UserStats, error) {
	repo := s.repomanager.Stats(s.db)

	st, err := repo.Get(ctx, userID)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, statsError(err)
	}

	if err := repo.Create(ctx, userID, 0, ""); err != nil {
		return nil, statsError(err)
	}
	st, err = repo.Get(ctx, userID)
	if err != nil {
		return nil, statsError(err)
	}
	return st, nil
}

func statsError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrStatsNotFound
	}
	return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
}
