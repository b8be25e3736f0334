package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler is a plain handler func, what httpkit adapters produce
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the seam modules mount on, chi sits behind it in production.
// It carries only the verbs the api serves: GET for meta and pcp, POST and OPTIONS for send-fax
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Options(path string, h Handler)

	// Handle mounts a handler for every method, used for docs, metrics and pprof
	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	// Route opens a subrouter at pattern, module prefixes are built this way
	Route(pattern string, fn func(Router))

	Mux() http.Handler
}

// chiRouter wraps the root mux or any subrouter chi hands back from Route
type chiRouter struct{ r chi.Router }

// AdaptChi wraps m as a Router
func AdaptChi(m *chi.Mux) Router { return chiRouter{r: m} }

func (c chiRouter) Get(p string, h Handler)     { c.method(http.MethodGet, p, h) }
func (c chiRouter) Post(p string, h Handler)    { c.method(http.MethodPost, p, h) }
func (c chiRouter) Options(p string, h Handler) { c.method(http.MethodOptions, p, h) }

func (c chiRouter) method(m, p string, h Handler) { c.r.Method(m, p, http.HandlerFunc(h)) }

func (c chiRouter) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Mux() http.Handler { return c.r }
