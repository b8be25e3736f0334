// Package modkit provides module wiring and core deps
package modkit

import (
	"autofax/internal/platform/config"
	"autofax/internal/platform/logger"
	"autofax/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	// PG is nil when no database is configured
	PG store.RowQuerier
}

// HasPG reports whether a postgres seam is wired
func (d Deps) HasPG() bool { return d.PG != nil }

// Pingers returns the readiness checks available from deps keyed by backend name
func (d Deps) Pingers() map[string]store.Pinger {
	out := map[string]store.Pinger{}
	if p, ok := d.PG.(store.Pinger); ok && d.PG != nil {
		out["pg"] = p
	}
	return out
}
