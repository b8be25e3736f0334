// Package module wires the meta endpoints
package module

import (
	"time"

	"autofax/internal/core/version"
	modkit "autofax/internal/modkit"
	"autofax/internal/modkit/httpkit"
	"autofax/internal/modkit/module"

	metahttp "autofax/internal/services/api/meta/http"
)

// Module serves health, readiness, version and service info
type Module struct {
	modkit.Base
}

// New builds the meta module, readiness pings whatever backends deps carry
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)

	checks := map[string]metahttp.Pinger{}
	for name, p := range deps.Pingers() {
		checks[name] = p
	}
	d := metahttp.Deps{
		ServiceName: version.ServiceName,
		StartedAt:   time.Now(),
		Checks:      checks,
		Modules:     module.Names,
	}
	return &Module{Base: modkit.NewBase(b, func(r httpkit.Router) { metahttp.Register(r, d) })}
}

// Ports is nil, meta exposes nothing to other modules
func (m *Module) Ports() any { return nil }
