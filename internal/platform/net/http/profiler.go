package http

import (
	stdhttp "net/http"
	"strings"

	"autofax/internal/platform/logger"

	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler serves chi's pprof and expvar routes under prefix when enabled.
// an empty prefix means /debug
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix == "/" {
		prefix = "/debug"
	}
	r.Handle(prefix+"/*", stdhttp.StripPrefix(prefix, mw.Profiler()))
	logger.Named("http").Warn().Str("prefix", prefix).Msg("profiler mounted, keep it off public listeners")
}
