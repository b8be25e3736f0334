// @title         Autofax API
// @version       0.1.0
// @description   Sends filled PCP change forms to the plan's fax line and serves the form helpers
// @BasePath      /api

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"autofax/internal/adapters/docfetch"
	"autofax/internal/adapters/filestore"
	"autofax/internal/adapters/ringcentral"
	"autofax/internal/core/faxnumber"
	"autofax/internal/core/version"
	"autofax/internal/platform/config"
	"autofax/internal/platform/logger"
	"autofax/internal/platform/metrics"
	phttp "autofax/internal/platform/net/http"
	"autofax/internal/platform/store"

	"autofax/internal/services/api"
	faxmod "autofax/internal/services/api/fax/module"
	pcprepo "autofax/internal/services/api/pcp/repo"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional, real env always wins
	envErr := godotenv.Load()

	logger.Init(logger.FromEnv())
	l := logger.Get()
	if envErr != nil && !os.IsNotExist(envErr) {
		l.Warn().Err(envErr).Msg("could not read .env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	rcCfg := root.Prefix("RINGCENTRAL_")

	// postgres is optional, without it provider lookup and form submissions are not mounted
	st, err := store.Open(ctx, store.Config{PG: store.PGFromConfig(pgCfg)},
		store.WithLogger(*l), store.WithAppName(version.ServiceName))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	if st.PG != nil && pgCfg.MayBool("MIGRATE", false) {
		if err := pcprepo.Migrate(ctx, st.PG); err != nil {
			l.Panic().Err(err).Msg("providers schema migration failed")
		}
	}

	// recipient table, CORE_API_FAX_RULES overrides the built in one
	var rules []faxnumber.Rule
	if pairs := apiCfg.MayList("FAX_RULES", ",", nil); len(pairs) > 0 {
		rules, err = faxnumber.ParseRules(pairs)
		if err != nil {
			l.Panic().Err(err).Msg("invalid CORE_API_FAX_RULES")
		}
	}
	resolver := faxnumber.NewResolver(rules)

	rcOpts := ringcentral.FromConfig(rcCfg)
	rcOpts.Session = ringcentral.ParseSession(apiCfg.MayEnum("RC_SESSION", string(ringcentral.SessionPerDispatch),
		string(ringcentral.SessionPerDispatch), string(ringcentral.SessionShared)))
	gateway := ringcentral.New(rcOpts)

	// uploaded forms are kept locally and served back under /files when CORE_API_UPLOAD_DIR is set
	var uploads *filestore.Store
	if fsOpts := filestore.FromConfig(apiCfg); fsOpts.Dir != "" {
		uploads, err = filestore.New(fsOpts)
		if err != nil {
			l.Panic().Err(err).Msg("upload dir unusable")
		}
	}

	info := version.Info()
	l.Info().
		Str("version", info.Version).
		Str("commit", info.Commit).
		Str("rc_server", gateway.Server()).
		Str("rc_session", string(gateway.Session())).
		Int("fax_rules", len(resolver.Rules())).
		Bool("pg", st.PG != nil).
		Bool("uploads", uploads != nil).
		Msg("autofax starting")

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:  apiCfg,
			Store:   st,
			Logger:  l,
			Metrics: metrics.New(info.Service),
			Fax: faxmod.Adapters{
				Resolver: resolver,
				Fetcher:  docfetch.New(docfetch.FromConfig(apiCfg)),
				Gateway:  gateway,
			},
			Uploads:        uploads,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// run until signalled
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
