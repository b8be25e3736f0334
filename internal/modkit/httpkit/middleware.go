package httpkit

import (
	"net/http"
	"time"

	"autofax/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// CORS is passed to the cors middleware, OptionsPassthrough lets modules answer preflight themselves
	CORS middleware.CORSOptions
	// SlowRequest marks access log lines at warn level, zero disables
	SlowRequest time.Duration
	// MaxInFlight caps concurrent requests, zero disables
	MaxInFlight int
	// Extra runs after the built in stack, metrics usually
	Extra []func(http.Handler) http.Handler
}

// CommonStack returns the baseline middleware slice for the api scope
// no timeout middleware here, dispatch lifetime is bounded by the client transports
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestLogger,

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),

		// safety
		middleware.RecoverJSON,
		middleware.Throttle(o.MaxInFlight, o.MaxInFlight, 30*time.Second),

		// cache / freshness
		middleware.NoCache(),

		// cross-origin
		middleware.CORS(o.CORS),
		middleware.StripSlashes(),
	}
	return append(stack, o.Extra...)
}
