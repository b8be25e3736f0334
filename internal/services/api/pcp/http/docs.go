package http

import (
	"autofax/internal/modkit/swaggerkit"
	"autofax/internal/services/api/pcp/domain"
)

// DefaultPrefix is the mount path the handler annotations are written against
const DefaultPrefix = "/pcp"

// Document moves the annotated paths under prefix and drops the ones s did not mount
func Document(prefix string, s domain.ServicePort) swaggerkit.SpecMutator {
	return func(spec map[string]any) {
		swaggerkit.Rebase(spec, DefaultPrefix, prefix)
		if !s.HasDirectory() {
			swaggerkit.DropPaths(spec,
				prefix+Canonical.Provider, prefix+Canonical.Submit,
				Legacy.Provider, Legacy.Submit)
		}
		if !s.CanUpload() {
			swaggerkit.DropPaths(spec, prefix+Canonical.Upload, Legacy.Upload)
		}
	}
}
