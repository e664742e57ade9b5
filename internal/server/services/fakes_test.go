package services

import (
	"context"
	"database/sql"
	"slices"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/aitutor/internal/common"
	"github.com/dmitrijs2005/aitutor/internal/dbx"
	"github.com/dmitrijs2005/aitutor/internal/server/models"
	badgesrepo "github.com/dmitrijs2005/aitutor/internal/server/repositories/badges"
	statsrepo "github.com/dmitrijs2005/aitutor/internal/server/repositories/stats"
	usagerepo "github.com/dmitrijs2005/aitutor/internal/server/repositories/usage"
	usersrepo "github.com/dmitrijs2005/aitutor/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func fixedClock(s string) func() time.Time {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return ts }
}

// fakeStore keeps all tables in memory and mirrors the conditional SQL the
// Postgres repositories run.
type fakeStore struct {
	mu     sync.Mutex
	users  map[string]*models.User
	stats  map[string]*models.UserStats
	usage  map[[2]string]int
	badges map[string][]models.Badge
	err    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  map[string]*models.User{},
		stats:  map[string]*models.UserStats{},
		usage:  map[[2]string]int{},
		badges: map[string][]models.Badge{},
	}
}

type fakeUsersRepo struct{ s *fakeStore }

func (r *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, existing := range r.s.users {
		if existing.UserName == u.UserName {
			return nil, common.ErrAlreadyExists
		}
	}
	u.CreatedAt = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	cp := *u
	r.s.users[u.ID] = &cp
	return u, nil
}

func (r *fakeUsersRepo) GetByUserName(_ context.Context, login string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, u := range r.s.users {
		if u.UserName == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeStatsRepo struct{ s *fakeStore }

func (r *fakeStatsRepo) Create(_ context.Context, userID string, logins int, last string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	if _, ok := r.s.stats[userID]; !ok {
		r.s.stats[userID] = &models.UserStats{UserID: userID, TotalLogins: logins, LastLogin: last, Topics: []string{}}
	}
	return nil
}

func (r *fakeStatsRepo) Get(_ context.Context, userID string) (*models.UserStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	st, ok := r.s.stats[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *st
	cp.Topics = append([]string{}, st.Topics...)
	return &cp, nil
}

func (r *fakeStatsRepo) RecordLogin(_ context.Context, userID, day string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return false, r.s.err
	}
	st, ok := r.s.stats[userID]
	if !ok {
		return false, common.ErrorNotFound
	}
	if st.LastLogin == day {
		return false, nil
	}
	st.TotalLogins++
	st.LastLogin = day
	return true, nil
}

func (r *fakeStatsRepo) IncrementQuizzes(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	st, ok := r.s.stats[userID]
	if !ok {
		return common.ErrorNotFound
	}
	st.QuizzesTaken++
	return nil
}

func (r *fakeStatsRepo) AddTopic(_ context.Context, userID, topic string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return false, r.s.err
	}
	st, ok := r.s.stats[userID]
	if !ok {
		return false, common.ErrorNotFound
	}
	if slices.Contains(st.Topics, topic) {
		return false, nil
	}
	st.Topics = append(st.Topics, topic)
	return true, nil
}

type fakeUsageRepo struct{ s *fakeStore }

func (r *fakeUsageRepo) Consume(_ context.Context, userID, day string, limit int) (int, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return 0, false, r.s.err
	}
	k := [2]string{userID, day}
	if r.s.usage[k] >= limit {
		return r.s.usage[k], false, nil
	}
	r.s.usage[k]++
	return r.s.usage[k], true, nil
}

func (r *fakeUsageRepo) Count(_ context.Context, userID, day string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return 0, r.s.err
	}
	return r.s.usage[[2]string{userID, day}], nil
}

type fakeBadgesRepo struct{ s *fakeStore }

func (r *fakeBadgesRepo) Insert(_ context.Context, b *models.Badge) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return false, r.s.err
	}
	for _, have := range r.s.badges[b.UserID] {
		if have.Name == b.Name {
			return false, nil
		}
	}
	b.ID = int64(len(r.s.badges[b.UserID]) + 1)
	r.s.badges[b.UserID] = append(r.s.badges[b.UserID], *b)
	return true, nil
}

func (r *fakeBadgesRepo) ListByUser(_ context.Context, userID string) ([]models.Badge, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	out := append([]models.Badge{}, r.s.badges[userID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].AwardedAt.After(out[j].AwardedAt) })
	return out, nil
}

func (r *fakeBadgesRepo) Names(_ context.Context, userID string) (map[string]struct{}, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	names := map[string]struct{}{}
	for _, b := range r.s.badges[userID] {
		names[b.Name] = struct{}{}
	}
	return names, nil
}

type fakeRepoManager struct{ s *fakeStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return &fakeUsersRepo{m.s} }
func (m *fakeRepoManager) Stats(dbx.DBTX) statsrepo.Repository          { return &fakeStatsRepo{m.s} }
func (m *fakeRepoManager) Usage(dbx.DBTX) usagerepo.Repository          { return &fakeUsageRepo{m.s} }
func (m *fakeRepoManager) Badges(dbx.DBTX) badgesrepo.Repository        { return &fakeBadgesRepo{m.s} }
