package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func pgCode(err error, code string) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr, true
	}
	return nil, false
}
