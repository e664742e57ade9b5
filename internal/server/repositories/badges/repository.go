package badges

import (
	"context"

	"github.com/dmitrijs2005/aitutor/internal/server/models"
)

type Repository interface {
	// Insert stores the badge unless (user, name) already exists and reports
	// whether a row was written.
	Insert(ctx context.Context, badge *models.Badge) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.Badge, error)
	Names(ctx context.Context, userID string) (map[string]struct{}, error)
}
