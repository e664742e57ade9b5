package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/aitutor/internal/common"
	"github.com/dmitrijs2005/aitutor/internal/dbx"
	"github.com/dmitrijs2005/aitutor/internal/server/badges"
	"github.com/dmitrijs2005/aitutor/internal/server/models"
	"github.com/dmitrijs2005/aitutor/internal/server/repositories/repomanager"
)

// BadgeService evaluates the rule catalogue against a user's stats and
// stores the badges they newly qualify for.
type BadgeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	rules       []badges.Rule
	now         func() time.Time
}

func NewBadgeService(db *sql.DB, m repomanager.RepositoryManager) *BadgeService {
	return &BadgeService{db: db, repomanager: m, rules: badges.Catalogue(), now: time.Now}
}

// EvaluateAndAward returns the names of badges inserted by this call, never
// nil. Users without a stats row get common.ErrStatsNotFound.
func (s *BadgeService) EvaluateAndAward(ctx context.Context, userID string, extra *badges.Extra) ([]string, error) {
	st, err := s.repomanager.Stats(s.db).Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrStatsNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	held, err := s.repomanager.Badges(s.db).Names(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	awarded := []string{}
	qualifying := badges.Evaluate(s.rules, st, extra, held)
	if len(qualifying) == 0 {
		return awarded, nil
	}

	at := s.now().UTC()
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Badges(tx)
		for _, r := range qualifying {
			b := r.Badge(userID)
			b.AwardedAt = at
			inserted, err := repo.Insert(ctx, &b)
			if err != nil {
				return err
			}
			if inserted {
				awarded = append(awarded, b.Name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	return awarded, nil
}

// List returns the user's badges, newest first.
func (s *BadgeService) List(ctx context.Context, userID string) ([]models.Badge, error) {
	list, err := s.repomanager.Badges(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return list, nil
}
