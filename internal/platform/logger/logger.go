// Package logger owns the process zerolog logger and the request and dispatch scoped children
package logger

import (
	"context"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"autofax/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the project-wide logging type
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level string
	// Format is console or json
	Format     string
	Service    string
	Writer     io.Writer
	WithCaller bool
	// StaticFields are stamped on every line, LOG_FIELDS="env=prod,region=us-east"
	StaticFields map[string]string
}

// FromEnv reads LOG_* through the raw view, config itself logs so it cannot be used here
func FromEnv() Options {
	rc := raw.New().Prefix("LOG_")
	return Options{
		Level:        strings.ToLower(rc.Get("LEVEL", "info")),
		Format:       strings.ToLower(rc.Get("FORMAT", "console")),
		Service:      rc.Get("SERVICE", "autofax-api"),
		WithCaller:   rc.GetBool("CALLER", false),
		StaticFields: parseFields(rc.Get("FIELDS", "")),
	}
}

func parseFields(s string) map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if k = strings.TrimSpace(k); ok && k != "" {
			out[k] = strings.TrimSpace(v)
		}
	}
	return out
}

var (
	once sync.Once
	root atomic.Pointer[zerolog.Logger]
)

// Init builds the root logger, later calls are ignored
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		log := build(opt)
		root.Store(&log)
	})
}

// Get returns the root logger, initializing it from env on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

func build(opt Options) zerolog.Logger {
	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	lc := zerolog.New(w).Level(parseLevel(opt.Level)).With().
		Timestamp().
		Str("go_version", runtime.Version())
	if opt.Service != "" {
		lc = lc.Str("service", opt.Service)
	}
	for k, v := range opt.StaticFields {
		lc = lc.Str(k, v)
	}
	if opt.WithCaller {
		lc = lc.Caller()
	}
	return lc.Logger()
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// ctxField is a context key that C copies onto the logger under its name
type ctxField string

const (
	fieldRequestID  ctxField = "request_id"
	fieldDispatchID ctxField = "dispatch_id"
)

var scoped = []ctxField{fieldRequestID, fieldDispatchID}

func with(ctx context.Context, f ctxField, v string) context.Context {
	if v == "" {
		return ctx
	}
	return context.WithValue(ctx, f, v)
}

// WithRequest tags ctx with the http request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	return with(ctx, fieldRequestID, reqID)
}

// WithDispatch tags ctx with the fax dispatch id
func WithDispatch(ctx context.Context, dispatchID string) context.Context {
	return with(ctx, fieldDispatchID, dispatchID)
}

// C returns a child of the root logger carrying whatever ids ctx holds
func C(ctx context.Context) *Logger {
	lc := Get().With()
	for _, f := range scoped {
		if v, ok := ctx.Value(f).(string); ok && v != "" {
			lc = lc.Str(string(f), v)
		}
	}
	l := lc.Logger()
	return &l
}

// Named returns a child logger tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
