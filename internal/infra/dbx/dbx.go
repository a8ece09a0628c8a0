package dbx

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx, so repositories can run
// either on the pool or inside a unit of work.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Beginner is a Querier that can open transactions.
type Beginner interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// IsUniqueViolation reports whether err is a postgres unique_violation.
func IsUniqueViolation(err error) (*pgconn.PgError, bool) {
	return pgCode(err, "23505")
}

// IsFKViolation reports whether err is a postgres foreign_key_violation.
func IsFKViolation(err error) (*pgconn.PgError, bool) {
	return pgCode(err, "23503")
}

// IsCheckViolation reports whether err is a postgres check_violation.
func IsCheckViolation(err error) (*pgconn.PgError, bool) {
	return pgCode(err, "23514")
}
