package errors

// Postgres helpers for the read-only directory lookups

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// sqlstates that mean the server is not taking queries right now
const (
	pgErrCannotConnectNow = "57P03"
	pgErrAdminShutdown    = "57P01"
)

// ExtractPgError returns (*pgconn.PgError, true) if the root cause is a PgError.
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether the error is a Postgres error with the given SQLSTATE code
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// DBErrorCode maps a database error to an ErrorCode
// pgx.ErrNoRows is a miss, startup and shutdown states are unavailability, the rest is DB
func DBErrorCode(err error) ErrorCode {
	if stderrs.Is(err, pgx.ErrNoRows) {
		return ErrorCodeNotFound
	}
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeDB
	}
	switch pgErr.Code {
	case pgErrCannotConnectNow, pgErrAdminShutdown:
		return ErrorCodeUnavailable
	}
	return ErrorCodeDB
}

// FromPostgres wraps a pg error with a mapped ErrorCode and message.
// If err is nil, returns nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, DBErrorCode(err), msg)
}
