// Package module wires fax dispatch into the API using modkit
package module

import (
	"autofax/internal/core/faxnumber"
	modkit "autofax/internal/modkit"
	"autofax/internal/modkit/httpkit"
	"autofax/internal/modkit/swaggerkit"
	"autofax/internal/services/api/fax/domain"
	faxhttp "autofax/internal/services/api/fax/http"
	faxsvc "autofax/internal/services/api/fax/service"
)

// Adapters are the outbound collaborators, injected with modkit.WithPorts
type Adapters struct {
	Resolver domain.Resolver
	Fetcher  domain.Fetcher
	Gateway  domain.Gateway
	// Recorder is optional
	Recorder domain.Recorder
}

// Ports is what the fax module exposes to other modules
type Ports struct {
	Dispatcher domain.ServicePort
}

// Module implements the fax module
type Module struct {
	modkit.Base
	svc faxsvc.Service
}

// New constructs the fax module, it panics without Adapters carrying a Fetcher and a Gateway
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("fax"), modkit.WithPrefix(faxhttp.DefaultPrefix)}, opts...)...)

	ad, ok := b.Ports.(Adapters)
	if !ok {
		panic("fax module requires modkit.WithPorts(module.Adapters{...})")
	}
	if ad.Resolver == nil {
		ad.Resolver = faxnumber.NewResolver(nil)
	}
	var svcOpts []faxsvc.Option
	if ad.Recorder != nil {
		svcOpts = append(svcOpts, faxsvc.WithRecorder(ad.Recorder))
	}

	m := &Module{svc: faxsvc.New(ad.Resolver, ad.Fetcher, ad.Gateway, svcOpts...)}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { faxhttp.Register(r, m.svc) })
	swaggerkit.Register(m.Name(), faxhttp.Document(m.Prefix()))
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return Ports{Dispatcher: m.svc} }
