package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/aitutor/internal/common"
	"github.com/dmitrijs2005/aitutor/internal/logging"
	"github.com/dmitrijs2005/aitutor/internal/server/aiclient"
	"github.com/dmitrijs2005/aitutor/internal/server/badges"
	"github.com/dmitrijs2005/aitutor/internal/server/storage"
	"github.com/google/uuid"
)

// QuizAnswers is the number of answers a quiz submission must carry.
const QuizAnswers = 5

type Mode string

const (
	ModeCasual       Mode = "casual"
	ModeKids         Mode = "kids"
	ModeProfessional Mode = "professional"
	ModeFree         Mode = "free"
	ModePDF          Mode = "pdf"
)

type Action string

const (
	ActionIntro      Action = "intro"
	ActionChat       Action = "chat"
	ActionQuizStart  Action = "quiz_start"
	ActionQuizSubmit Action = "quiz_submit"
	ActionContinue   Action = "continue"
	ActionClear      Action = "memory_clear"
)

type route struct {
	method string
	path   string
}

var routes = map[Mode]map[Action]route{
	ModeCasual: {
		ActionIntro:      {http.MethodGet, "/intro"},
		ActionChat:       {http.MethodPost, "/chat"},
		ActionQuizStart:  {http.MethodGet, "/quiz/start"},
		ActionQuizSubmit: {http.MethodPost, "/quiz/submit"},
		ActionContinue:   {http.MethodGet, "/continue"},
		ActionClear:      {http.MethodPost, "/memory/clear"},
	},
	ModeKids: {
		ActionIntro:      {http.MethodGet, "/kids_intro"},
		ActionChat:       {http.MethodPost, "/kids_chat"},
		ActionQuizStart:  {http.MethodGet, "/kids_quiz/start"},
		ActionQuizSubmit: {http.MethodPost, "/kids_quiz/submit"},
		ActionContinue:   {http.MethodGet, "/kids_continue"},
		ActionClear:      {http.MethodPost, "/kids_memory/clear"},
	},
	ModeProfessional: {
		ActionChat:  {http.MethodPost, "/professional_chat"},
		ActionClear: {http.MethodPost, "/professional_chat/memory/clear"},
	},
	ModeFree: {
		ActionChat:  {http.MethodPost, "/free_chat"},
		ActionClear: {http.MethodPost, "/free_chat/memory/clear"},
	},
	ModePDF: {
		ActionChat: {http.MethodPost, "/pdf/ask"},
	},
}

func lookup(mode Mode, action Action) (route, error) {
	r, ok := routes[mode][action]
	if !ok {
		return route{}, fmt.Errorf("%w: %s/%s", common.ErrUnsupportedMode, mode, action)
	}
	return r, nil
}

// AIClient is the AI service as seen by the tutor proxy.
type AIClient interface {
	Call(ctx context.Context, r aiclient.Request) (map[string]any, error)
	UploadPDF(ctx context.Context, userID, filename string, content []byte) (map[string]any, error)
	Health(ctx context.Context) (map[string]any, error)
}

// Archiver keeps a copy of uploaded documents.
type Archiver interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// TutorService fronts the AI service: it charges the daily quota, forwards
// the call and feeds successful intros and graded quizzes into stats and
// badges.
type TutorService struct {
	ai       AIClient
	usage    *UsageService
	stats    *StatsService
	badges   *BadgeService
	archiver Archiver
	log      logging.Logger
	now      func() time.Time
}

func NewTutorService(ai AIClient, usage *UsageService, stats *StatsService, badges *BadgeService, archiver Archiver, log logging.Logger) *TutorService {
	return &TutorService{
		ai:       ai,
		usage:    usage,
		stats:    stats,
		badges:   badges,
		archiver: archiver,
		log:      log.With("module", "tutor"),
		now:      time.Now,
	}
}

// Supports reports whether mode offers action.
func (s *TutorService) Supports(mode Mode, action Action) bool {
	_, err := lookup(mode, action)
	return err == nil
}

func (s *TutorService) consume(ctx context.Context, userID string) error {
	allowed, err := s.usage.CheckAndConsume(ctx, userID, s.usage.Today())
	if err != nil {
		return err
	}
	if !allowed {
		return common.ErrLimitReached
	}
	return nil
}

func (s *TutorService) call(ctx context.Context, userID string, mode Mode, action Action, subject string, body any, charge bool) (map[string]any, error) {
	r, err := lookup(mode, action)
	if err != nil {
		return nil, err
	}
	if charge {
		if err := s.consume(ctx, userID); err != nil {
			return nil, err
		}
	}
	out, err := s.ai.Call(ctx, aiclient.Request{Method: r.method, Path: r.path, Subject: subject, UserID: userID, Body: body})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// Intro starts a lesson on subject and records it as an explored topic.
func (s *TutorService) Intro(ctx context.Context, userID string, mode Mode, subject string) (map[string]any, error) {
	out, err := s.call(ctx, userID, mode, ActionIntro, subject, nil, true)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(subject) != "" {
		if _, err := s.stats.RecordTopic(ctx, userID, subject); err != nil {
			s.log.Warn(ctx, "record topic failed", "user_id", userID, "topic", subject, "error", err)
		}
	}
	out["awarded"] = s.award(ctx, userID, nil)

	return out, nil
}

func (s *TutorService) Chat(ctx context.Context, userID string, mode Mode, subject, message string) (map[string]any, error) {
	if _, err := lookup(mode, ActionChat); err != nil {
		return nil, err
	}
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message is required", common.ErrValidation)
	}
	return s.call(ctx, userID, mode, ActionChat, subject, map[string]string{"message": message}, true)
}

func (s *TutorService) QuizStart(ctx context.Context, userID string, mode Mode, subject string) (map[string]any, error) {
	return s.call(ctx, userID, mode, ActionQuizStart, subject, nil, true)
}

func (s *TutorService) Continue(ctx context.Context, userID string, mode Mode, subject string) (map[string]any, error) {
	return s.call(ctx, userID, mode, ActionContinue, subject, nil, true)
}

// ClearMemory resets the AI-side conversation. It is not charged.
func (s *TutorService) ClearMemory(ctx context.Context, userID string, mode Mode, subject string) (map[string]any, error) {
	return s.call(ctx, userID, mode, ActionClear, subject, nil, false)
}

// QuizSubmit sends exactly QuizAnswers answers for grading. A graded quiz is
// counted in stats and triggers a badge pass with the grade.
func (s *TutorService) QuizSubmit(ctx context.Context, userID string, mode Mode, subject string, answers []string) (map[string]any, error) {
	if _, err := lookup(mode, ActionQuizSubmit); err != nil {
		return nil, err
	}
	if len(answers) != QuizAnswers {
		return nil, fmt.Errorf("%w: expected %d answers, got %d", common.ErrValidation, QuizAnswers, len(answers))
	}

	out, err := s.call(ctx, userID, mode, ActionQuizSubmit, subject, map[string][]string{"answers": answers}, true)
	if err != nil {
		return nil, err
	}

	if err := s.stats.RecordQuizTaken(ctx, userID); err != nil {
		s.log.Warn(ctx, "record quiz failed", "user_id", userID, "error", err)
	}

	var extra *badges.Extra
	if g, ok := gradeOf(out["grade"]); ok {
		extra = &badges.Extra{Grade: &g}
	} else {
		s.log.Debug(ctx, "quiz grade not parsed", "user_id", userID, "grade", out["grade"])
	}
	out["awarded"] = s.award(ctx, userID, extra)

	return out, nil
}

// UploadPDF archives the document when storage is configured and forwards
// it to the AI service. Uploads are not charged.
func (s *TutorService) UploadPDF(ctx context.Context, userID, filename, contentType string, content []byte) (map[string]any, error) {
	if !isPDF(contentType) {
		return nil, fmt.Errorf("%w: only PDF files are allowed", common.ErrValidation)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: empty file", common.ErrValidation)
	}

	if s.archiver != nil {
		key := storage.PDFKey(userID, s.now(), uuid.New())
		if err := s.archiver.Put(ctx, key, content, "application/pdf"); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
		}
		s.log.Info(ctx, "pdf archived", "user_id", userID, "key", key, "size", len(content))
	}

	return s.ai.UploadPDF(ctx, userID, filename, content)
}

func (s *TutorService) Health(ctx context.Context) (map[string]any, error) {
	return s.ai.Health(ctx)
}

// award runs a badge pass. Failures are logged; the AI reply still stands.
func (s *TutorService) award(ctx context.Context, userID string, extra *badges.Extra) []string {
	names, err := s.badges.EvaluateAndAward(ctx, userID, extra)
	if err != nil {
		level := s.log.Error
		if errors.Is(err, common.ErrStatsNotFound) {
			level = s.log.Warn
		}
		level(ctx, "badge evaluation failed", "user_id", userID, "error", err)
		return []string{}
	}
	return names
}

func isPDF(contentType string) bool {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.EqualFold(strings.TrimSpace(mt), "application/pdf")
}

// gradeOf reads a grade the AI service reports as a number or a string.
func gradeOf(v any) (float64, bool) {
	switch g := v.(type) {
	case float64:
		return g, true
	case string:
		f, err := badges.ParseGrade(g)
		return f, err == nil
	}
	return 0, false
}
