package store

import (
	"context"

	perr "autofax/internal/platform/errors"
)

// One scans the first row into T. Errors are coded through perr.FromPostgres,
// so no rows is NotFound and a server still starting is Unavailable
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	item, err := scan(q.QueryRow(ctx, sql, args...))
	if err != nil {
		var zero T
		return zero, perr.FromPostgres(err, "query one")
	}
	return item, nil
}

// Many scans every row into a []T, coding errors like One
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "query many")
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, perr.FromPostgres(err, "scan row")
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromPostgres(err, "iterate rows")
	}
	return out, nil
}
