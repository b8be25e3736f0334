package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestDBErrorCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"no rows", pgx.ErrNoRows, ErrorCodeNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), ErrorCodeNotFound},
		{"starting up", &pgconn.PgError{Code: "57P03"}, ErrorCodeUnavailable},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, ErrorCodeUnavailable},
		{"missing table", &pgconn.PgError{Code: "42P01"}, ErrorCodeDB},
		{"foreign", stderrs.New("boom"), ErrorCodeDB},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := DBErrorCode(c.err); got != c.want {
				t.Fatalf("DBErrorCode = %v, want %v", got, c.want)
			}
		})
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil {
		t.Fatalf("nil in, nil out")
	}
	err := FromPostgres(pgx.ErrNoRows, "provider lookup")
	if !IsCode(err, ErrorCodeNotFound) || !stderrs.Is(err, pgx.ErrNoRows) {
		t.Fatalf("FromPostgres should map and keep the cause: %v", err)
	}
	if !IsSQLState(FromPostgres(&pgconn.PgError{Code: "42P01"}, "x"), "42P01") {
		t.Fatalf("IsSQLState should see through the wrap")
	}
}
