package questions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trustboard/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	Create(ctx context.Context, q *Question) error
	GetByID(ctx context.Context, id int64) (*Question, error)
	LockByID(ctx context.Context, id int64) (*Question, error)
	List(ctx context.Context) ([]Question, error)
	Update(ctx context.Context, id int64, req UpdateQuestionRequest) (*Question, error)
	SetAnswered(ctx context.Context, id int64, answered bool) error
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

const questionColumns = `id, title, content, author_user_name, category, is_answered, created_at, updated_at`

func scanQuestion(row pgx.Row, q *Question) error {
	return row.Scan(
		&q.ID,
		&q.Title,
		&q.Content,
		&q.AuthorUserName,
		&q.Category,
		&q.IsAnswered,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
}

func (r *Repository) Create(ctx context.Context, q *Question) error {
	query := `
		INSERT INTO questions (title, content, author_user_name, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_answered, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query,
		q.Title,
		q.Content,
		q.AuthorUserName,
		normalizeCategory(q.Category),
	).Scan(
		&q.ID,
		&q.IsAnswered,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating question: %w", err)
	}
	q.Category = normalizeCategory(q.Category)
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Question, error) {
	return r.get(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)
}

// LockByID reads the question and holds a row lock until the surrounding
// transaction ends. Outside a transaction it behaves like GetByID.
func (r *Repository) LockByID(ctx context.Context, id int64) (*Question, error) {
	return r.get(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = $1 FOR UPDATE`, id)
}

func (r *Repository) get(ctx context.Context, query string, id int64) (*Question, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var q Question
	if err := scanQuestion(r.db.QueryRow(ctx, query, id), &q); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching question %d: %w", id, err)
	}
	return &q, nil
}

// List returns every question, newest first.
func (r *Repository) List(ctx context.Context) ([]Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions ORDER BY created_at DESC, id DESC`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}
	defer rows.Close()

	out := []Question{}
	for rows.Next() {
		var q Question
		if err := scanQuestion(rows, &q); err != nil {
			return nil, fmt.Errorf("error scanning question: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}
	return out, nil
}

func (r *Repository) Update(ctx context.Context, id int64, req UpdateQuestionRequest) (*Question, error) {
	set := make([]string, 0, 4)
	args := make([]any, 0, 4)
	argPos := 1

	if req.Title != nil {
		set = append(set, fmt.Sprintf("title = $%d", argPos))
		args = append(args, *req.Title)
		argPos++
	}
	if req.Content != nil {
		set = append(set, fmt.Sprintf("content = $%d", argPos))
		args = append(args, *req.Content)
		argPos++
	}
	if req.Category != nil {
		set = append(set, fmt.Sprintf("category = $%d", argPos))
		args = append(args, normalizeCategory(req.Category))
		argPos++
	}
	set = append(set, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE questions SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), argPos, questionColumns)

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var q Question
	if err := scanQuestion(r.db.QueryRow(ctx, query, args...), &q); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error updating question %d: %w", id, err)
	}
	return &q, nil
}

func (r *Repository) SetAnswered(ctx context.Context, id int64, answered bool) error {
	query := `
		UPDATE questions
		SET is_answered = $2, updated_at = now()
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, query, id, answered)
	if err != nil {
		return fmt.Errorf("error setting answered on question %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting question %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// normalizeCategory maps a blank category to NULL.
func normalizeCategory(c *string) *string {
	if c == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*c)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
