package modkit

import (
	"net/http"
	"slices"
	"strings"

	phttp "autofax/internal/platform/net/http"
)

// Option tunes a module before its constructor wires it
type Option func(*Built)

// Built is what a module constructor reads back once every option ran
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	// Ports carries what the caller injects, each module asserts its own type
	Ports any

	Subrouter func(phttp.Router) phttp.Router
	Register  func(phttp.Router)
}

// Build applies opts in order over the defaults, later options win
func Build(opts ...Option) Built {
	b := Built{
		Subrouter: func(r phttp.Router) phttp.Router { return r },
		Register:  func(phttp.Router) {},
	}
	for _, o := range opts {
		if o != nil {
			o(&b)
		}
	}
	b.Mw = slices.Clone(b.Mw)
	return b
}

// WithName sets the module name used for logs, docs and the port registry
func WithName(name string) Option {
	return func(b *Built) { b.Name = strings.TrimSpace(name) }
}

// WithPrefix sets the path the module mounts under, relative to /api
func WithPrefix(prefix string) Option {
	return func(b *Built) { b.Prefix = strings.TrimSpace(prefix) }
}

// WithMiddlewares appends module scoped middleware, applied in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts hands the module its collaborators, the fax module takes its adapters this way
func WithPorts[T any](p T) Option {
	return func(b *Built) { b.Ports = p }
}

// WithSubrouter wraps the module router before routes are registered, nil keeps the identity
func WithSubrouter(fn func(phttp.Router) phttp.Router) Option {
	return func(b *Built) {
		if fn != nil {
			b.Subrouter = fn
		}
	}
}

// WithRegister adds extra endpoints after the module's own, nil keeps the no-op
func WithRegister(fn func(phttp.Router)) Option {
	return func(b *Built) {
		if fn != nil {
			b.Register = fn
		}
	}
}
