// Package pgerr translates PostgreSQL failures into the sentinel errors of
// package common, so services never have to look at SQLSTATE codes.
package pgerr

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userbase/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	uniqueViolation     = "23505"
	notNullViolation    = "23502"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
	stringTooLong       = "22001"
	invalidTextRepr     = "22P02"
)

// Wrap returns err wrapped as "db error", additionally marked with
// common.ErrorNotFound, common.ErrorConflict or common.ErrorInvalid when the
// cause is recognised. A nil err stays nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("db error: %w: %w", common.ErrorConflict, err)
		case notNullViolation, foreignKeyViolation, checkViolation, stringTooLong, invalidTextRepr:
			return fmt.Errorf("db error: %w: %w", common.ErrorInvalid, err)
		}
	}

	return fmt.Errorf("db error: %w", err)
}
