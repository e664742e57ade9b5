// Package services contains the server-side business logic: accounts and
// sessions, the daily usage guard, stats recording, badge awarding and the
// tutor proxy that fronts the AI service.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/aitutor/internal/common"
	"github.com/dmitrijs2005/aitutor/internal/dbx"
	"github.com/dmitrijs2005/aitutor/internal/server/auth"
	"github.com/dmitrijs2005/aitutor/internal/server/config"
	"github.com/dmitrijs2005/aitutor/internal/server/models"
	"github.com/dmitrijs2005/aitutor/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Session is the result of a successful sign-in.
type Session struct {
	Token    string
	UserID   string
	UserName string
}

// AccountService handles sign-up, sign-in and session tokens.
type AccountService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	now                   func() time.Time
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AccountService {
	return &AccountService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.SessionTokenValidityDuration,
		now:                   time.Now,
	}
}

// SignUp creates the user and its stats row in one transaction. The sign-up
// itself counts as the first login of the day.
func (s *AccountService) SignUp(ctx context.Context, userName, password string) (*models.User, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}

	_, err := s.repomanager.Users(s.db).GetByUserName(ctx, userName)
	switch {
	case err == nil:
		return nil, common.ErrAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	hash, err := auth.HashPassword(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: password is too long", common.ErrValidation)
	}
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{ID: uuid.NewString(), UserName: userName, HashedPassword: hash}
	today := common.Day(s.now())

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).Create(ctx, user); err != nil {
			return err
		}
		return s.repomanager.Stats(tx).Create(ctx, user.ID, 1, today)
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	return user, nil
}

// SignIn verifies credentials and issues a session token. Unknown users and
// wrong passwords are indistinguishable.
func (s *AccountService) SignIn(ctx context.Context, userName, password string) (*Session, error) {
	user, err := s.repomanager.Users(s.db).GetByUserName(ctx, strings.TrimSpace(userName))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	if !auth.CheckPassword(user.HashedPassword, password) {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, user.UserName, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &Session{Token: token, UserID: user.ID, UserName: user.UserName}, nil
}

// Authenticate returns the user ID carried by a session token.
func (s *AccountService) Authenticate(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

// JoinedAt returns the account creation time.
func (s *AccountService) JoinedAt(ctx context.Context, userID string) (time.Time, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return time.Time{}, common.ErrorNotFound
		}
		return time.Time{}, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return user.CreatedAt, nil
}
