package replies

import (
	"context"
	"errors"
	"fmt"

	"trustboard/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	Create(ctx context.Context, reply *Reply) error
	GetByID(ctx context.Context, id int64) (*Reply, error)
	ListByAnswer(ctx context.Context, answerID int64) ([]Reply, error)
	UpdateContent(ctx context.Context, id int64, content string) (*Reply, error)
	Delete(ctx context.Context, id int64) error
	DeleteByAnswer(ctx context.Context, answerID int64) (int64, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

const replyColumns = `id, answer_id, content, author_user_name, created_at, updated_at`

func scanReply(row pgx.Row, r *Reply) error {
	return row.Scan(
		&r.ID,
		&r.AnswerID,
		&r.Content,
		&r.AuthorUserName,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
}

func (r *Repository) Create(ctx context.Context, reply *Reply) error {
	query := `
		INSERT INTO replies (answer_id, content, author_user_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query, reply.AnswerID, reply.Content, reply.AuthorUserName).Scan(
		&reply.ID,
		&reply.CreatedAt,
		&reply.UpdatedAt,
	)
	if err != nil {
		if _, ok := dbx.IsFKViolation(err); ok {
			return ErrAnswerNotFound
		}
		return fmt.Errorf("error creating reply: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var reply Reply
	err := scanReply(r.db.QueryRow(ctx, `SELECT `+replyColumns+` FROM replies WHERE id = $1`, id), &reply)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching reply %d: %w", id, err)
	}
	return &reply, nil
}

// ListByAnswer returns the replies of an answer, oldest first.
func (r *Repository) ListByAnswer(ctx context.Context, answerID int64) ([]Reply, error) {
	query := `
		SELECT ` + replyColumns + `
		FROM replies
		WHERE answer_id = $1
		ORDER BY created_at ASC, id ASC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, answerID)
	if err != nil {
		return nil, fmt.Errorf("error fetching replies: %w", err)
	}
	defer rows.Close()

	out := []Reply{}
	for rows.Next() {
		var reply Reply
		if err := scanReply(rows, &reply); err != nil {
			return nil, fmt.Errorf("error scanning reply: %w", err)
		}
		out = append(out, reply)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating replies: %w", err)
	}
	return out, nil
}

func (r *Repository) UpdateContent(ctx context.Context, id int64, content string) (*Reply, error) {
	query := `
		UPDATE replies
		SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + replyColumns

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var reply Reply
	if err := scanReply(r.db.QueryRow(ctx, query, id, content), &reply); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error updating reply %d: %w", id, err)
	}
	return &reply, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM replies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting reply %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteByAnswer(ctx context.Context, answerID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM replies WHERE answer_id = $1`, answerID)
	if err != nil {
		return 0, fmt.Errorf("error deleting replies of answer %d: %w", answerID, err)
	}
	return tag.RowsAffected(), nil
}
