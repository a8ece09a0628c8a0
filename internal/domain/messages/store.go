package messages

import (
	"context"
	"errors"
	"fmt"

	"trustboard/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id int64) (*Message, error)
	ListForReceiver(ctx context.Context, receiver string) ([]Message, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, m *Message) error {
	query := `
		INSERT INTO messages (title, content, author_user_name, receiver_user_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query, m.Title, m.Content, m.AuthorUserName, m.ReceiverUserName).Scan(
		&m.ID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating message: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Message, error) {
	query := `
		SELECT id, title, content, author_user_name, receiver_user_name, created_at, updated_at
		FROM messages
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var m Message
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID,
		&m.Title,
		&m.Content,
		&m.AuthorUserName,
		&m.ReceiverUserName,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching message %d: %w", id, err)
	}
	return &m, nil
}

// ListForReceiver returns the inbox of a user, newest first.
func (r *Repository) ListForReceiver(ctx context.Context, receiver string) ([]Message, error) {
	query := `
		SELECT id, title, content, author_user_name, receiver_user_name, created_at, updated_at
		FROM messages
		WHERE receiver_user_name = $1
		ORDER BY created_at DESC, id DESC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, receiver)
	if err != nil {
		return nil, fmt.Errorf("error fetching messages: %w", err)
	}
	defer rows.Close()

	out := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(
			&m.ID,
			&m.Title,
			&m.Content,
			&m.AuthorUserName,
			&m.ReceiverUserName,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}
	return out, nil
}
