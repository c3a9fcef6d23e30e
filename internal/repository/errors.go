package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Shared repository errors.
var (
	ErrDuplicate = errors.New("record already exists")
)

// isUniqueViolation reports whether err is a PostgreSQL unique violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
