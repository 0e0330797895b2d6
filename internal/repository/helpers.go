package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	apperr "rentx/internal/errors"
)

// Postgres error codes the repositories translate into API error kinds.
const (
	pqSerializationFailure = "40001"
	pqExclusionViolation   = "23P01"
	pqUniqueViolation      = "23505"
	pqForeignKeyViolation  = "23503"
)

// translateError converts a driver error into the error taxonomy.
// Serialization failures and exclusion violations both mean a concurrent
// writer took the dates first, so they surface as conflicts.
func translateError(err error, conflictMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("not found")
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqSerializationFailure, pqExclusionViolation:
			return apperr.Conflict(conflictMsg)
		case pqUniqueViolation:
			return apperr.Conflict("already exists")
		case pqForeignKeyViolation:
			return apperr.NotFound("referenced row not found")
		}
	}
	return apperr.Storage(err)
}
