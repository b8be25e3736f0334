package modkit

import (
	phttp "autofax/internal/platform/net/http"
	str "autofax/internal/platform/strings"
)

// Base is the mounting half of a module, embed it and implement Ports
type Base struct {
	built  Built
	routes func(phttp.Router)
}

// NewBase keeps b for mounting, routes registers the module's own endpoints
func NewBase(b Built, routes func(phttp.Router)) Base {
	return Base{built: b, routes: routes}
}

// MountRoutes mounts middleware, the module routes and any extra register under the prefix
func (m Base) MountRoutes(r phttp.Router) {
	r.Route(m.Prefix(), func(rr phttp.Router) {
		for _, mw := range m.built.Mw {
			rr.Use(mw)
		}
		if m.built.Subrouter != nil {
			rr = m.built.Subrouter(rr)
		}
		if m.routes != nil {
			m.routes(rr)
		}
		if m.built.Register != nil {
			m.built.Register(rr)
		}
	})
}

// Name panics when the module was built without one
func (m Base) Name() string { return str.MustString(m.built.Name, "module name") }

// Prefix returns the normalized mount prefix
func (m Base) Prefix() string { return str.MustPrefix(m.built.Prefix) }
