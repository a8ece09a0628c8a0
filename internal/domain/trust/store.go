package trust

import (
	"context"
	"fmt"

	"trustboard/internal/infra/dbx"
)

type Store interface {
	// Add reports false when the edge already exists or violates the
	// self-trust check.
	Add(ctx context.Context, student, reviewer string) (bool, error)
	Remove(ctx context.Context, student, reviewer string) (bool, error)
	Exists(ctx context.Context, student, reviewer string) (bool, error)
	ListReviewers(ctx context.Context, student string) ([]string, error)
	ListStudents(ctx context.Context, reviewer string) ([]string, error)
	Clear(ctx context.Context, student string) (int64, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

func (r *Repository) Add(ctx context.Context, student, reviewer string) (bool, error) {
	query := `
		INSERT INTO trusted_reviewers (student_user_name, reviewer_user_name)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, query, student, reviewer)
	if err != nil {
		if _, ok := dbx.IsUniqueViolation(err); ok {
			return false, nil
		}
		if _, ok := dbx.IsCheckViolation(err); ok {
			return false, nil
		}
		return false, fmt.Errorf("failed to trust reviewer: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) Remove(ctx context.Context, student, reviewer string) (bool, error) {
	query := `
		DELETE FROM trusted_reviewers
		WHERE student_user_name = $1 AND reviewer_user_name = $2
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, query, student, reviewer)
	if err != nil {
		return false, fmt.Errorf("failed to remove trusted reviewer: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) Exists(ctx context.Context, student, reviewer string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM trusted_reviewers
			WHERE student_user_name = $1 AND reviewer_user_name = $2
		)
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var exists bool
	if err := r.db.QueryRow(ctx, query, student, reviewer).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check trust: %w", err)
	}
	return exists, nil
}

func (r *Repository) ListReviewers(ctx context.Context, student string) ([]string, error) {
	return r.list(ctx, `
		SELECT reviewer_user_name FROM trusted_reviewers
		WHERE student_user_name = $1
		ORDER BY reviewer_user_name
	`, student)
}

func (r *Repository) ListStudents(ctx context.Context, reviewer string) ([]string, error) {
	return r.list(ctx, `
		SELECT student_user_name FROM trusted_reviewers
		WHERE reviewer_user_name = $1
		ORDER BY student_user_name
	`, reviewer)
}

func (r *Repository) list(ctx context.Context, query, name string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list trust edges: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan trust edge: %w", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trust edges: %w", err)
	}
	return names, nil
}

func (r *Repository) Clear(ctx context.Context, student string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM trusted_reviewers WHERE student_user_name = $1`, student)
	if err != nil {
		return 0, fmt.Errorf("failed to clear trusted reviewers: %w", err)
	}
	return tag.RowsAffected(), nil
}
