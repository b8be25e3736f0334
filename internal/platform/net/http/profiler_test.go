package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"autofax/internal/platform/config"
	phttp "autofax/internal/platform/net/http"
)

func TestMountProfiler(t *testing.T) {
	cases := []struct {
		name    string
		prefix  string
		enabled bool
		want    int
	}{
		{"enabled", "/debug", true, http.StatusOK},
		{"trailing slash", "/debug/", true, http.StatusOK},
		{"default prefix", "", true, http.StatusOK},
		{"disabled", "/debug", false, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := phttp.NewServer(config.New()).Router()
			phttp.MountProfiler(r, tc.prefix, tc.enabled)

			rec := httptest.NewRecorder()
			r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil))
			if rec.Code != tc.want {
				t.Fatalf("status %d want %d", rec.Code, tc.want)
			}
		})
	}
}
