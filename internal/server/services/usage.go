package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/aitutor/internal/common"
	"github.com/dmitrijs2005/aitutor/internal/server/repositories/repomanager"
)

// DailyLimit is the number of AI-backed actions a user may run per UTC day.
const DailyLimit = 100

// UsageService guards the per-user daily quota.
type UsageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewUsageService(db *sql.DB, m repomanager.RepositoryManager) *UsageService {
	return &UsageService{db: db, repomanager: m, now: time.Now}
}

// Today is the current UTC calendar day used as the quota key.
func (s *UsageService) Today() string {
	return common.Day(s.now())
}

// CheckAndConsume takes one unit of the (user, day) quota. allowed=false with
// a nil error means the limit is reached; store failures are reported as
// common.ErrStoreUnavailable and never as a denial.
func (s *UsageService) CheckAndConsume(ctx context.Context, userID, day string) (bool, error) {
	_, allowed, err := s.repomanager.Usage(s.db).Consume(ctx, userID, day, DailyLimit)
	if err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return allowed, nil
}

// Usage returns the (user, day) counter.
func (s *UsageService) Usage(ctx context.Context, userID, day string) (int, error) {
	n, err := s.repomanager.Usage(s.db).Count(ctx, userID, day)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return n, nil
}
