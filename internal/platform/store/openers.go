package store

import (
	"context"
	"fmt"
	"time"

	"autofax/internal/platform/store/pg"
)

var sleep = time.Sleep

// openPG opens the pool, waits for it to answer a ping and wraps it with the sql adapter
func openPG(ctx context.Context, cfg PGConfig, s *Store) (pgAdapter, error) {
	var tracer pg.QueryTracer
	if cfg.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.URL,
		MaxConns: cfg.MaxConns,
		SlowMs:   cfg.SlowQueryMs,
		AppName:  s.appName,
	}, tracer, nil)
	if err != nil {
		return pgAdapter{}, err
	}

	attempts := cfg.ConnectRetries
	if attempts <= 0 {
		attempts = 6
	}
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	var lastErr error
	backoff := 250 * time.Millisecond
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		lastErr = p.Pool.Ping(pctx)
		cancel()
		if lastErr == nil {
			return pgAdapter{p}, nil
		}
		if ctx.Err() != nil {
			p.Close()
			return pgAdapter{}, ctx.Err()
		}
		s.Log.Warn().Err(lastErr).Int("attempt", i+1).Dur("backoff", backoff).Msg("postgres not ready")
		sleep(backoff)
		backoff = min(backoff*2, 4*time.Second)
	}

	p.Close()
	return pgAdapter{}, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
}
