package errors

import (
	"context"
	"database/sql"
	"errors"
	"regexp"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// keyDetail matches the column in `Key (field)=(value) already exists.`.
var keyDetail = regexp.MustCompile(`Key \(([^)]+)\)=`)

// pgCodes maps individual SQLSTATEs; connection exceptions (class 08) are
// handled separately.
var pgCodes = map[string]ErrorCode{
	pgerrcode.UniqueViolation:    ErrCodeConflict,
	pgerrcode.NotNullViolation:   ErrCodeValidation,
	pgerrcode.CheckViolation:     ErrCodeValidation,
	pgerrcode.AdminShutdown:      ErrCodeUnavailable,
	pgerrcode.CannotConnectNow:   ErrCodeUnavailable,
	pgerrcode.TooManyConnections: ErrCodeUnavailable,
	pgerrcode.QueryCanceled:      ErrCodeTimeout,
}

// sqliteCodes is keyed by the primary result code (low byte).
var sqliteCodes = map[int]ErrorCode{
	sqlite3.SQLITE_BUSY:       ErrCodeUnavailable,
	sqlite3.SQLITE_LOCKED:     ErrCodeUnavailable,
	sqlite3.SQLITE_CANTOPEN:   ErrCodeUnavailable,
	sqlite3.SQLITE_READONLY:   ErrCodeUnavailable,
	sqlite3.SQLITE_CONSTRAINT: ErrCodeValidation,
}

// MapDBError turns Postgres and SQLite driver errors into AppErrors that keep
// the driver error as their cause. Context errors become Timeout or Canceled
// and "no rows" becomes NotFound. Anything else is returned unchanged.
func MapDBError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, ErrCodeTimeout, "")
	case errors.Is(err, context.Canceled):
		return Wrap(err, ErrCodeCanceled, "")
	case errors.Is(err, sql.ErrNoRows), errors.Is(err, pgx.ErrNoRows):
		return Wrap(err, ErrCodeNotFound, "")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		ae := Wrap(pgErr, pgCode(pgErr.Code), "")
		ae.Field = pgField(pgErr)
		return ae
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return Wrap(liteErr, sqliteCode(liteErr.Code()), "")
	}
	return err
}

func pgCode(state string) ErrorCode {
	if code, ok := pgCodes[state]; ok {
		return code
	}
	if pgerrcode.IsConnectionException(state) {
		return ErrCodeUnavailable
	}
	return ErrCodeInternal
}

// pgField prefers the ColumnName metadata and falls back to parsing Detail.
func pgField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if m := keyDetail.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return m[1]
	}
	return ""
}

func sqliteCode(extended int) ErrorCode {
	if extended == sqlite3.SQLITE_CONSTRAINT_UNIQUE || extended == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
		return ErrCodeConflict
	}
	if code, ok := sqliteCodes[extended&0xff]; ok {
		return code
	}
	return ErrCodeInternal
}
