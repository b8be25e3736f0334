// Package api provides the HTTP API for the application
package api

import (
	"net/http"
	"time"

	"autofax/internal/adapters/filestore"
	"autofax/internal/platform/config"
	"autofax/internal/platform/logger"
	"autofax/internal/platform/metrics"
	phttp "autofax/internal/platform/net/http"
	"autofax/internal/platform/net/middleware"
	"autofax/internal/platform/store"

	"autofax/internal/modkit"
	"autofax/internal/modkit/httpkit"
	"autofax/internal/modkit/module"
	"autofax/internal/modkit/swaggerkit"

	faxmod "autofax/internal/services/api/fax/module"
	metamod "autofax/internal/services/api/meta/module"
	pcpmod "autofax/internal/services/api/pcp/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	// Store is optional, the provider lookup and pg readiness need it
	Store  *store.Store
	Logger *logger.Logger
	// Metrics is optional, when set it serves /metrics and records every request and dispatch
	Metrics *metrics.Metrics
	// Fax carries the gateway and fetcher the send-fax module dispatches through
	Fax faxmod.Adapters
	// Uploads is optional, when set it serves /files and enables the pcp upload
	Uploads *filestore.Store

	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// load balancer heartbeat, answered before any routing or logging
	r.Use(middleware.Heartbeat("/healthz"))

	// shared deps for modules
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}

	faxAdapters := opt.Fax
	var extra []func(http.Handler) http.Handler
	if opt.Metrics != nil {
		if faxAdapters.Recorder == nil {
			faxAdapters.Recorder = opt.Metrics
		}
		extra = append(extra, opt.Metrics.Middleware)
		r.Handle("/metrics", opt.Metrics.Handler())
	}

	var pcpAdapters pcpmod.Adapters
	if opt.Uploads != nil {
		pcpAdapters.Files = opt.Uploads
		opt.Uploads.Mount(r)
	}

	// docs + profiler live outside the api stack
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	mods := []module.Module{
		metamod.New(deps),
		faxmod.New(deps, modkit.WithPorts(faxAdapters)),
		pcpmod.New(deps, modkit.WithPorts(pcpAdapters)),
	}
	for _, m := range mods {
		// register each module's ports under its own name (for cross-module lookups)
		module.Register(m.Name(), m.Ports())
	}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORS: middleware.CORSOptions{
			AllowedOrigins:     opt.Config.MayList("CORS_ORIGINS", ",", []string{"*"}),
			OptionsPassthrough: true,
		},
		SlowRequest: opt.Config.MayDuration("SLOW_REQUEST", 10*time.Second),
		MaxInFlight: opt.Config.MayInt("MAX_IN_FLIGHT", 0),
		Extra:       extra,
	})

	log := logger.Named("api")
	httpkit.MountAPI(r, "", stack, func(api httpkit.Router) {
		for _, m := range mods {
			// mount module routes under its Prefix()
			m.MountRoutes(api)
			aliased := module.MountAliases(m, api)
			log.Debug().Str("module", m.Name()).Str("prefix", "/api"+module.PrefixOf(m)).Bool("aliases", aliased).Msg("module mounted")
		}
	})
}
