package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"autofax/internal/adapters/filestore"
	"autofax/internal/modkit/module"
	"autofax/internal/modkit/swaggerkit"
	"autofax/internal/platform/config"
	"autofax/internal/platform/metrics"
	phttp "autofax/internal/platform/net/http"
	"autofax/internal/platform/testkit"
	"autofax/internal/services/api/fax/domain"
	faxmod "autofax/internal/services/api/fax/module"

	"github.com/go-chi/chi/v5"
)

type nopDoc struct{}

func (nopDoc) Name() string           { return "autofax-1.pdf" }
func (nopDoc) Bytes() ([]byte, error) { return []byte("%PDF"), nil }
func (nopDoc) Release() error         { return nil }

type nopFetcher struct{}

func (nopFetcher) Fetch(context.Context, string) (domain.TransientDocument, error) { return nopDoc{}, nil }

type okGateway struct{}

func (okGateway) Authenticate(context.Context) error { return nil }
func (okGateway) SubmitFax(context.Context, domain.TransmissionJob) (domain.GatewayReply, error) {
	return domain.GatewayReply{Status: 200, Reason: "OK"}, nil
}

func newServer(t *testing.T, m *metrics.Metrics, uploads ...*filestore.Store) http.Handler {
	t.Helper()
	module.Reset()
	swaggerkit.Reset()
	t.Cleanup(func() {
		module.Reset()
		swaggerkit.Reset()
	})

	mux := chi.NewMux()
	opts := Options{
		Config:        config.New().Prefix("AUTOFAX_API_TEST_"),
		Metrics:       m,
		Fax:           faxmod.Adapters{Fetcher: nopFetcher{}, Gateway: okGateway{}},
		EnableSwagger: true,
	}
	if len(uploads) > 0 {
		opts.Uploads = uploads[0]
	}
	Mount(phttp.AdaptChi(mux), opts)
	return mux
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, rd))
	return rec
}

func TestMount_Routes(t *testing.T) {
	h := newServer(t, nil)

	cases := []struct {
		method, target, body string
		want                 int
	}{
		{http.MethodGet, "/healthz", "", 200},
		{http.MethodGet, "/api/meta/health", "", 200},
		{http.MethodGet, "/api/meta/version", "", 200},
		{http.MethodGet, "/api/pcp/form?insurance=Aetna", "", 200},
		{http.MethodPost, "/api/send-fax", `{"pdfUrl":"https://x.test/Fidelis_form.pdf"}`, 200},
		{http.MethodPost, "/api/send-fax", `{}`, 400},
		{http.MethodGet, "/api/get-form?insurance=Aetna", "", 200},
		{http.MethodGet, "/api/pcp/provider?insurance=Aetna&location=LIC", "", 404},
		{http.MethodGet, "/api/get-provider?insurance=Aetna&location=LIC", "", 404},
		{http.MethodPost, "/api/submit-form", `{}`, 404},
		{http.MethodPost, "/api/upload-pdf", `{}`, 404},
		{http.MethodGet, "/metrics", "", 404},
	}
	for _, tc := range cases {
		if rec := do(h, tc.method, tc.target, tc.body); rec.Code != tc.want {
			t.Fatalf("%s %s = %d want %d body %s", tc.method, tc.target, rec.Code, tc.want, rec.Body.String())
		}
	}

	names := module.Names()
	if len(names) != 3 || names[0] != "fax" || names[1] != "meta" || names[2] != "pcp" {
		t.Fatalf("registered modules = %v", names)
	}
	if _, ok := module.PortsAs[domain.ServicePort]("fax"); !ok {
		t.Fatalf("fax dispatcher port not registered")
	}
}

func TestMount_MetricsAndDocs(t *testing.T) {
	h := newServer(t, metrics.New("autofax-api"))

	do(h, http.MethodPost, "/api/send-fax", `{"pdfUrl":"https://x.test/Humana_form.pdf"}`)

	rec := do(h, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status %d", rec.Code)
	}
	out := rec.Body.String()
	testkit.MustContain(t, out, `autofax_http_requests_total{method="POST",route="/api/send-fax",service="autofax-api",status="200"} 1`)
	testkit.MustContain(t, out, `autofax_fax_dispatches_total{outcome="sent",service="autofax-api"} 1`)

	rec = do(h, http.MethodGet, "/api/docs/doc.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("doc.json status %d", rec.Code)
	}
	spec := testkit.DecodeJSON[map[string]any](t, rec.Body.Bytes())
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi %v", spec["openapi"])
	}
	testkit.MustContain(t, rec.Body.String(), `"ErrorResponse"`)
}

func TestMount_ServesUploads(t *testing.T) {
	fs, err := filestore.New(filestore.Options{Dir: t.TempDir(), PublicURL: "http://localhost:4000"})
	if err != nil {
		t.Fatalf("filestore: %v", err)
	}
	url, err := fs.Put(context.Background(), "pcp_forms/Aetna_PCP_Form_1.pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	h := newServer(t, nil, fs)

	rec := do(h, http.MethodGet, strings.TrimPrefix(url, "http://localhost:4000"), "")
	if rec.Code != http.StatusOK || rec.Body.String() != "%PDF-1.4" {
		t.Fatalf("files status %d body %q", rec.Code, rec.Body.String())
	}
	// uploads still need a directory to record submissions in
	if rec := do(h, http.MethodPost, "/api/upload-pdf", `{}`); rec.Code != http.StatusNotFound {
		t.Fatalf("upload-pdf status %d", rec.Code)
	}
}
