// Package store holds the SQL for the wallet tables. Every function takes the
// handle it runs on, so callers decide whether it executes inside a transaction.
package store

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrConditionFailed is returned when a guarded update matches no row.
	ErrConditionFailed = errors.New("update condition not met")
)

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// checkViolation maps a CHECK constraint failure (balance or amount going
// negative) to ErrConditionFailed.
func checkViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23514" {
		return ErrConditionFailed
	}
	return err
}
