package stats

import (
	"context"

	"github.com/dmitrijs2005/aitutor/internal/server/models"
)

// Repository persists the per-user stats row. Every mutation is a single
// conditional statement so concurrent calls cannot lose updates.
type Repository interface {
	// Create inserts a stats row unless one exists. lastLogin may be empty.
	Create(ctx context.Context, userID string, totalLogins int, lastLogin string) error
	Get(ctx context.Context, userID string) (*models.UserStats, error)
	// RecordLogin bumps total_logins at most once per day and reports whether
	// the row changed.
	RecordLogin(ctx context.Context, userID string, day string) (bool, error)
	IncrementQuizzes(ctx context.Context, userID string) error
	// AddTopic appends topic when absent and reports whether the row changed.
	AddTopic(ctx context.Context, userID string, topic string) (bool, error)
}
