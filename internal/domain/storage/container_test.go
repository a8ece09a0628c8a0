package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTxCommits(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO trusted_reviewers").
		WithArgs("alice", "bob").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	c := NewContainer(mock)
	err = c.WithTx(context.Background(), func(r *Repos) error {
		added, err := r.Trust.Add(context.Background(), "alice", "bob")
		assert.True(t, added)
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM replies").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectRollback()

	boom := errors.New("answer delete failed")
	c := NewContainer(mock)
	err = c.WithTx(context.Background(), func(r *Repos) error {
		if _, err := r.Replies.DeleteByAnswer(context.Background(), 1); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxBeginFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err = NewContainer(mock).WithTx(context.Background(), func(*Repos) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}
