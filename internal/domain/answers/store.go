package answers

import (
	"context"
	"errors"
	"fmt"

	"trustboard/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	Create(ctx context.Context, a *Answer) error
	GetByID(ctx context.Context, id int64) (*Answer, error)
	ListByQuestion(ctx context.Context, questionID int64) ([]Answer, error)
	UpdateContent(ctx context.Context, id int64, content string) (*Answer, error)
	// SetFlag writes one flag on one answer and refreshes updated_at.
	SetFlag(ctx context.Context, id int64, flag Flag, value bool) error
	// ClearFlag unsets flag on every answer of the question except exceptID.
	ClearFlag(ctx context.Context, questionID, exceptID int64, flag Flag) (int64, error)
	// AnyFlagged reports whether some answer of the question has flag set.
	AnyFlagged(ctx context.Context, questionID int64, flag Flag) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

const answerColumns = `id, question_id, content, author_user_name, is_accepted, is_correct, created_at, updated_at`

func scanAnswer(row pgx.Row, a *Answer) error {
	return row.Scan(
		&a.ID,
		&a.QuestionID,
		&a.Content,
		&a.AuthorUserName,
		&a.IsAccepted,
		&a.IsCorrect,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

func (r *Repository) Create(ctx context.Context, a *Answer) error {
	query := `
		INSERT INTO answers (question_id, content, author_user_name)
		VALUES ($1, $2, $3)
		RETURNING id, is_accepted, is_correct, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query, a.QuestionID, a.Content, a.AuthorUserName).Scan(
		&a.ID,
		&a.IsAccepted,
		&a.IsCorrect,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if _, ok := dbx.IsFKViolation(err); ok {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("error creating answer: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Answer, error) {
	query := `SELECT ` + answerColumns + ` FROM answers WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var a Answer
	if err := scanAnswer(r.db.QueryRow(ctx, query, id), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching answer %d: %w", id, err)
	}
	return &a, nil
}

// ListByQuestion returns the answers of a question, oldest first.
func (r *Repository) ListByQuestion(ctx context.Context, questionID int64) ([]Answer, error) {
	query := `
		SELECT ` + answerColumns + `
		FROM answers
		WHERE question_id = $1
		ORDER BY created_at ASC, id ASC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("error fetching answers: %w", err)
	}
	defer rows.Close()

	out := []Answer{}
	for rows.Next() {
		var a Answer
		if err := scanAnswer(rows, &a); err != nil {
			return nil, fmt.Errorf("error scanning answer: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating answers: %w", err)
	}
	return out, nil
}

func (r *Repository) UpdateContent(ctx context.Context, id int64, content string) (*Answer, error) {
	query := `
		UPDATE answers
		SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + answerColumns

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var a Answer
	if err := scanAnswer(r.db.QueryRow(ctx, query, id, content), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error updating answer %d: %w", id, err)
	}
	return &a, nil
}

func (r *Repository) SetFlag(ctx context.Context, id int64, flag Flag, value bool) error {
	if !flag.valid() {
		return fmt.Errorf("unknown answer flag %q", flag)
	}
	query := fmt.Sprintf(`UPDATE answers SET %s = $2, updated_at = now() WHERE id = $1`, flag)

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, query, id, value)
	if err != nil {
		return fmt.Errorf("error setting %s on answer %d: %w", flag, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) ClearFlag(ctx context.Context, questionID, exceptID int64, flag Flag) (int64, error) {
	if !flag.valid() {
		return 0, fmt.Errorf("unknown answer flag %q", flag)
	}
	query := fmt.Sprintf(`
		UPDATE answers
		SET %[1]s = FALSE, updated_at = now()
		WHERE question_id = $1 AND id <> $2 AND %[1]s
	`, flag)

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, query, questionID, exceptID)
	if err != nil {
		return 0, fmt.Errorf("error clearing %s on question %d: %w", flag, questionID, err)
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) AnyFlagged(ctx context.Context, questionID int64, flag Flag) (bool, error) {
	if !flag.valid() {
		return false, fmt.Errorf("unknown answer flag %q", flag)
	}
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM answers WHERE question_id = $1 AND %s)`, flag)

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var exists bool
	if err := r.db.QueryRow(ctx, query, questionID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking %s on question %d: %w", flag, questionID, err)
	}
	return exists, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM answers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting answer %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
