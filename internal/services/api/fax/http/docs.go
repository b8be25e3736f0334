package http

import "autofax/internal/modkit/swaggerkit"

// DefaultPrefix is the mount path the handler annotations are written against
const DefaultPrefix = "/send-fax"

// Document moves the annotated send-fax paths under prefix when the module is mounted elsewhere
func Document(prefix string) swaggerkit.SpecMutator {
	return func(spec map[string]any) { swaggerkit.Rebase(spec, DefaultPrefix, prefix) }
}
