package users

import (
	"context"

	"github.com/dmitrijs2005/aitutor/internal/server/models"
)

// Repository stores accounts. Usernames are unique; a duplicate Create
// fails with common.ErrAlreadyExists and a missing row with
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
