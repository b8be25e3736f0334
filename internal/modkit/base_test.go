package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "autofax/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestBase_MountRoutes(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	ok := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }

	b := NewBase(Build(
		WithName("demo"),
		WithPrefix(" demo/ "),
		WithMiddlewares(mark("a"), mark("b")),
		WithRegister(func(r phttp.Router) { r.Handle("/extra", http.HandlerFunc(ok)) }),
	), func(r phttp.Router) { r.Handle("/own", http.HandlerFunc(ok)) })

	if b.Name() != "demo" || b.Prefix() != "/demo" {
		t.Fatalf("name=%q prefix=%q", b.Name(), b.Prefix())
	}

	mux := chi.NewMux()
	b.MountRoutes(phttp.AdaptChi(mux))

	for _, path := range []string{"/demo/own", "/demo/extra"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("%s status %d", path, rec.Code)
		}
	}
	if len(order) != 4 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("middleware order %v", order)
	}
}

func TestBase_NamePanicsWhenUnset(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	_ = NewBase(Built{}, nil).Name()
}
