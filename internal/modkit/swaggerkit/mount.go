// Package swaggerkit serves the swag generated OpenAPI document and the swagger UI
package swaggerkit

import (
	"net/http"

	phttp "autofax/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DocsBase is where the UI and doc.json are served
const DocsBase = "/api/docs"

// Mount serves the UI at DocsBase/ and the assembled spec at DocsBase/doc.json when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(DocsBase, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, DocsBase+"/index.html", http.StatusFound)
	})
	r.Get(DocsBase+"/doc.json", serveDocJSON())
	r.Handle(DocsBase+"/*", httpSwagger.Handler(
		httpSwagger.URL(DocsBase+"/doc.json"),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DeepLinking(true),
	))
}
