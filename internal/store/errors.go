// File: internal/store/errors.go
package store

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound 查無資料，或資料不屬於呼叫者
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicateEmail email 已被註冊
	ErrDuplicateEmail = errors.New("store: email already registered")
)

const uniqueViolation = "23505"

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
