package badges

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/aitutor/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertQ = `(?s)^INSERT\s+INTO\s+badges.*ON\s+CONFLICT\s*\(user_id,\s*name\)\s*DO\s+NOTHING\s+RETURNING\s+id\s*$`
	listQ   = `(?s)^SELECT\s+id,\s*user_id,\s*name,\s*description,\s*icon,\s*awarded_at\s+FROM\s+badges\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+awarded_at\s+DESC`
	namesQ  = `^SELECT name FROM badges WHERE user_id = \$1$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestInsert(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	b := &models.Badge{UserID: "u-1", Name: "Explorer", Description: "d", Icon: "i", AwardedAt: at}

	t.Run("new badge", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(insertQ).WithArgs("u-1", "Explorer", "d", "i", at).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

		ok, err := repo.Insert(context.Background(), b)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(7), b.ID)
	})

	t.Run("already held", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(insertQ).WithArgs("u-1", "Explorer", "d", "i", at).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		ok, err := repo.Insert(context.Background(), b)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(insertQ).WillReturnError(errors.New("db down"))

		_, err := repo.Insert(context.Background(), b)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db error")
	})
}

func TestListByUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	newer := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "description", "icon", "awarded_at"}).
		AddRow(int64(2), "u-1", "Quiz Master", "d2", "i2", newer).
		AddRow(int64(1), "u-1", "First Quiz!", "d1", "i1", older)
	mock.ExpectQuery(listQ).WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Quiz Master", got[0].Name)
	assert.True(t, got[0].AwardedAt.After(got[1].AwardedAt))
}

func TestListByUser_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(listQ).WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "description", "icon", "awarded_at"}))

	got, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNames(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(namesQ).WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Explorer").AddRow("First Quiz!"))

	got, err := repo.Names(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Contains(t, got, "Explorer")
}
