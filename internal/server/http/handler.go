// Package http serves the tutor JSON API with gin.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/aitutor/internal/common"
	"github.com/dmitrijs2005/aitutor/internal/logging"
	"github.com/dmitrijs2005/aitutor/internal/server/badges"
	"github.com/dmitrijs2005/aitutor/internal/server/http/middleware"
	"github.com/dmitrijs2005/aitutor/internal/server/models"
	"github.com/dmitrijs2005/aitutor/internal/server/services"
	"github.com/gin-gonic/gin"
)

type Accounts interface {
	SignUp(ctx context.Context, userName, password string) (*models.User, error)
	SignIn(ctx context.Context, userName, password string) (*services.Session, error)
	Authenticate(token string) (string, error)
	JoinedAt(ctx context.Context, userID string) (time.Time, error)
}

type Usage interface {
	Today() string
	CheckAndConsume(ctx context.Context, userID, day string) (bool, error)
	Usage(ctx context.Context, userID, day string) (int, error)
}

type Stats interface {
	Today() string
	RecordLogin(ctx context.Context, userID, day string) (bool, error)
	RecordQuizTaken(ctx context.Context, userID string) error
	RecordTopic(ctx context.Context, userID, topic string) (bool, error)
	GetOrInit(ctx context.Context, userID string) (*models.UserStats, error)
}

type Badges interface {
	EvaluateAndAward(ctx context.Context, userID string, extra *badges.Extra) ([]string, error)
	List(ctx context.Context, userID string) ([]models.Badge, error)
}

type Tutor interface {
	Intro(ctx context.Context, userID string, mode services.Mode, subject string) (map[string]any, error)
	Chat(ctx context.Context, userID string, mode services.Mode, subject, message string) (map[string]any, error)
	QuizStart(ctx context.Context, userID string, mode services.Mode, subject string) (map[string]any, error)
	QuizSubmit(ctx context.Context, userID string, mode services.Mode, subject string, answers []string) (map[string]any, error)
	Continue(ctx context.Context, userID string, mode services.Mode, subject string) (map[string]any, error)
	ClearMemory(ctx context.Context, userID string, mode services.Mode, subject string) (map[string]any, error)
	UploadPDF(ctx context.Context, userID, filename, contentType string, content []byte) (map[string]any, error)
	Health(ctx context.Context) (map[string]any, error)
	Supports(mode services.Mode, action services.Action) bool
}

type Handler struct {
	accounts Accounts
	usage    Usage
	stats    Stats
	badges   Badges
	tutor    Tutor
	log      logging.Logger
}

func NewHandler(a Accounts, u Usage, s Stats, b Badges, t Tutor, log logging.Logger) *Handler {
	return &Handler{accounts: a, usage: u, stats: s, badges: b, tutor: t, log: log.With("module", "http")}
}

// userRequest is the body shared by the per-user endpoints.
type userRequest struct {
	UserID string `json:"userId"`
}

// bind decodes an optional JSON body; an empty body leaves v untouched.
func bind(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid JSON body", common.ErrValidation)
	}
	return nil
}

// subject resolves the acting user. A body userId must match the session.
func subject(c *gin.Context, bodyUserID string) (string, error) {
	uid := middleware.UserID(c)
	if uid == "" {
		return "", common.ErrorUnauthorized
	}
	if bodyUserID != "" && bodyUserID != uid {
		return "", common.ErrorForbidden
	}
	return uid, nil
}

// user binds a userRequest-style body and resolves the acting user.
func (h *Handler) user(c *gin.Context, v any, bodyUserID func() string) (string, bool) {
	if err := bind(c, v); err != nil {
		h.fail(c, err)
		return "", false
	}
	uid, err := subject(c, bodyUserID())
	if err != nil {
		h.fail(c, err)
		return "", false
	}
	return uid, true
}
