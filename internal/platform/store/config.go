package store

import (
	"time"

	"autofax/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	PG PGConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// ConnectRetries bounds the startup ping loop, default 6
	ConnectRetries int
	// PingTimeout bounds each startup ping, default 3s
	PingTimeout time.Duration
}

// PGFromConfig reads SERVICE_PGSQL_* style settings from c.
// the backend is enabled only when DBURL is set
func PGFromConfig(c config.Conf) PGConfig {
	return PGConfig{
		Enabled:        c.Has("DBURL"),
		URL:            c.MayString("DBURL", ""),
		MaxConns:       int32(c.MayInt("MAX_CONNS", 4)),
		LogSQL:         c.MayBool("LOG_SQL", false),
		SlowQueryMs:    c.MayInt("SLOW_MS", 500),
		ConnectRetries: c.MayInt("CONNECT_RETRIES", 6),
		PingTimeout:    c.MayDuration("PING_TIMEOUT", 3*time.Second),
	}
}
