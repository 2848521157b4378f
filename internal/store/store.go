package store

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate 違反 unique 限制 (例如重複的 email)
var ErrDuplicate = errors.New("duplicate key")

// ErrNotFound 與 pgx.ErrNoRows 相同，Exec 類操作影響 0 筆時也回傳它
var ErrNotFound = pgx.ErrNoRows

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
