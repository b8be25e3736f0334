package httpkit

import (
	"net/http"
	"strings"
)

// MountAPI scopes mount under /api, or /api/{version} when version is set, with mw applied to that scope only
//
//	httpkit.MountAPI(r, "", httpkit.CommonStack(opts), func(api httpkit.Router) {
//		faxModule.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	prefix := "/api"
	if ver := strings.Trim(version, "/"); ver != "" {
		prefix += "/" + ver
	}
	MountUnder(r, prefix, mw, mount)
}

// MountUnder opens a subrouter at prefix, uses mw on it, then hands it to mount
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}
