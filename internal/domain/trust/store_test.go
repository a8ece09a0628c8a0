package trust

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (pgxmock.PgxPoolIface, Store) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewRepository(mock)
}

func TestAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts new edge", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectExec("INSERT INTO trusted_reviewers").
			WithArgs("alice", "bob").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		added, err := repo.Add(ctx, "alice", "bob")
		require.NoError(t, err)
		assert.True(t, added)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing edge is a no-op", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectExec("ON CONFLICT DO NOTHING").
			WithArgs("alice", "bob").
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		added, err := repo.Add(ctx, "alice", "bob")
		require.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("unique violation maps to false", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectExec("INSERT INTO trusted_reviewers").
			WithArgs("alice", "bob").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		added, err := repo.Add(ctx, "alice", "bob")
		require.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("self trust check maps to false", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectExec("INSERT INTO trusted_reviewers").
			WithArgs("alice", "alice").
			WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "trusted_reviewers_no_self"})

		added, err := repo.Add(ctx, "alice", "alice")
		require.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("storage failure is surfaced", func(t *testing.T) {
		mock, repo := newMock(t)
		boom := errors.New("connection reset")
		mock.ExpectExec("INSERT INTO trusted_reviewers").
			WithArgs("alice", "bob").
			WillReturnError(boom)

		added, err := repo.Add(ctx, "alice", "bob")
		assert.ErrorIs(t, err, boom)
		assert.False(t, added)
	})
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	mock, repo := newMock(t)

	mock.ExpectExec("DELETE FROM trusted_reviewers").
		WithArgs("alice", "bob").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM trusted_reviewers").
		WithArgs("alice", "bob").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM trusted_reviewers WHERE student_user_name").
		WithArgs("alice").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	removed, err := repo.Remove(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Remove(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, removed)

	n, err := repo.Clear(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListReviewers(t *testing.T) {
	ctx := context.Background()
	mock, repo := newMock(t)

	mock.ExpectQuery("SELECT reviewer_user_name FROM trusted_reviewers").
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"reviewer_user_name"}).AddRow("bob").AddRow("carol"))
	mock.ExpectQuery("SELECT reviewer_user_name FROM trusted_reviewers").
		WithArgs("nobody").
		WillReturnRows(pgxmock.NewRows([]string{"reviewer_user_name"}))

	names, err := repo.ListReviewers(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, names)

	names, err = repo.ListReviewers(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}
