package answers

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateForMissingQuestion(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO answers").
		WithArgs(int64(42), "use a mutex", "bob").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "answers_question_id_fkey"})

	err = NewRepository(mock).Create(context.Background(), &Answer{QuestionID: 42, Content: "use a mutex", AuthorUserName: "bob"})
	assert.ErrorIs(t, err, ErrQuestionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetFlagRejectsUnknownColumn(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	err = NewRepository(mock).SetFlag(context.Background(), 1, Flag("is_deleted"), true)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingAnswer(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM answers").
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, NewRepository(mock).Delete(context.Background(), 5), ErrNotFound)
}
