package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the Postgres class 23 code for unique constraint hits.
const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether the provided error is a unique constraint
// violation. Postgres errors are matched by SQLSTATE; the message fallback
// also covers the sqlite driver used in tests. When constraintName is
// provided, the helper additionally requires the constraint text in the error.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}

	matched := false
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		matched = pgErr.Code == pgUniqueViolation
	} else {
		msg := err.Error()
		matched = strings.Contains(msg, "duplicate key value") ||
			strings.Contains(msg, "UNIQUE constraint failed")
	}

	if matched && constraintName != "" {
		return strings.Contains(err.Error(), constraintName)
	}
	return matched
}
