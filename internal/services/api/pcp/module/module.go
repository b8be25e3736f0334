// Package module wires the pcp helpers into the API using modkit
package module

import (
	modkit "autofax/internal/modkit"
	"autofax/internal/modkit/httpkit"
	"autofax/internal/modkit/swaggerkit"
	"autofax/internal/services/api/pcp/domain"
	pcphttp "autofax/internal/services/api/pcp/http"
	pcprepo "autofax/internal/services/api/pcp/repo"
	pcpsvc "autofax/internal/services/api/pcp/service"
)

// Adapters are optional collaborators, injected with modkit.WithPorts
type Adapters struct {
	// Directory overrides the postgres directory built from deps
	Directory pcprepo.Repo
	// Files enables uploads, they also need a directory to record them in
	Files domain.FileStore
}

// Ports is what the pcp module exposes to other modules
type Ports struct {
	Directory domain.ServicePort
}

// Module implements the pcp module
type Module struct {
	modkit.Base
	svc pcpsvc.Service
}

// New constructs the pcp module, the provider lookup and submissions are only wired
// when deps carry postgres or Adapters carry a Directory
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("pcp"), modkit.WithPrefix(pcphttp.DefaultPrefix)}, opts...)...)

	ad, _ := b.Ports.(Adapters)
	dir := ad.Directory
	if dir == nil && deps.HasPG() {
		dir = pcprepo.NewPG(deps.PG)
	}
	var svcOpts []pcpsvc.Option
	if ad.Files != nil {
		svcOpts = append(svcOpts, pcpsvc.WithFiles(ad.Files))
	}

	m := &Module{svc: pcpsvc.New(dir, svcOpts...)}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { pcphttp.Register(r, m.svc, pcphttp.Canonical) })
	swaggerkit.Register(m.Name(), pcphttp.Document(m.Prefix(), m.svc))
	return m
}

// MountAliases serves the same endpoints on the flat paths the form frontend calls
func (m *Module) MountAliases(r httpkit.Router) { pcphttp.Register(r, m.svc, pcphttp.Legacy) }

// Ports returns the module ports
func (m *Module) Ports() any { return Ports{Directory: m.svc} }
