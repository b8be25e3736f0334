package store

import (
	"context"
	"errors"
	"time"

	"autofax/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
)

// pgAdapter is the RowQuerier over a pgx pool, every statement is reported to the pg tracer when one is set
type pgAdapter struct{ *pg.PG }

func (a pgAdapter) Ping(ctx context.Context) error {
	if a.PG == nil || a.Pool == nil {
		return errors.New("pg: pool not open")
	}
	return a.Pool.Ping(ctx)
}

func (a pgAdapter) Close() error {
	a.PG.Close()
	return nil
}

func (a pgAdapter) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	done := a.trace(ctx, sql, args)
	tag, err := a.Pool.Exec(ctx, sql, args...)
	done(err)
	return tag.RowsAffected(), err
}

func (a pgAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	done := a.trace(ctx, sql, args)
	rows, err := a.Pool.Query(ctx, sql, args...)
	done(err)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// QueryRow defers the trace until Scan so the reported error is the scan error, no rows is not one
func (a pgAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	done := a.trace(ctx, sql, args)
	return tracedRow{Row: a.Pool.QueryRow(ctx, sql, args...), done: func(err error) {
		if errors.Is(err, pgx.ErrNoRows) {
			err = nil
		}
		done(err)
	}}
}

// trace starts the clock for one statement and returns the func that reports it
func (a pgAdapter) trace(ctx context.Context, sql string, args []any) func(error) {
	if a.Tracer == nil {
		return func(error) {}
	}
	start := time.Now()
	return func(err error) {
		us := time.Since(start).Microseconds()
		a.Tracer.OnQuery(ctx, pg.QueryEvent{
			SQL:       sql,
			Args:      args,
			ElapsedUS: us,
			Err:       err,
			Slow:      a.SlowMs > 0 && us >= int64(a.SlowMs)*1000,
		})
	}
}

type tracedRow struct {
	pgx.Row
	done func(error)
}

func (r tracedRow) Scan(dst ...any) error {
	err := r.Row.Scan(dst...)
	r.done(err)
	return err
}
