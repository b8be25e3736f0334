// Package module holds the module contract and a process wide port registry
package module

import phttp "autofax/internal/platform/net/http"

// Module mounts routes under its prefix and exposes ports for cross wiring
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// prefixed is implemented by modules that mount under a fixed path
type prefixed interface{ Prefix() string }

// PrefixOf returns the module mount prefix, or "" when it does not report one
func PrefixOf(m Module) string {
	if p, ok := m.(prefixed); ok {
		return p.Prefix()
	}
	return ""
}

// aliased is implemented by modules that also answer on paths outside their prefix
type aliased interface{ MountAliases(r phttp.Router) }

// MountAliases mounts the alias routes of m on r and reports whether it had any
func MountAliases(m Module, r phttp.Router) bool {
	a, ok := m.(aliased)
	if ok {
		a.MountAliases(r)
	}
	return ok
}
