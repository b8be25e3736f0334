// Package service contains the fax dispatch workflow
package service

import (
	"context"
	"time"

	"autofax/internal/core/faxnumber"
	perr "autofax/internal/platform/errors"
	"autofax/internal/platform/logger"
	"autofax/internal/services/api/fax/domain"

	"github.com/google/uuid"
)

// Service defines the fax service contract
type Service interface {
	domain.ServicePort
}

// Option tweaks a Svc at construction
type Option func(*Svc)

// WithRecorder attaches an outcome recorder (metrics)
func WithRecorder(r domain.Recorder) Option { return func(s *Svc) { s.rec = r } }

// WithIDFunc overrides dispatch id generation
func WithIDFunc(fn func() string) Option { return func(s *Svc) { s.newID = fn } }

// Svc resolves, fetches and submits documents. It holds no per request state
type Svc struct {
	res    domain.Resolver
	fetch  domain.Fetcher
	gw     domain.Gateway
	submit *Submitter
	rec    domain.Recorder

	newID func() string
	now   func() time.Time
}

// New constructs the fax service
func New(res domain.Resolver, fetch domain.Fetcher, gw domain.Gateway, opts ...Option) *Svc {
	if res == nil {
		panic("fax.Service requires a non nil Resolver")
	}
	if fetch == nil {
		panic("fax.Service requires a non nil Fetcher")
	}
	if gw == nil {
		panic("fax.Service requires a non nil Gateway")
	}
	s := &Svc{
		res:    res,
		fetch:  fetch,
		gw:     gw,
		submit: NewSubmitter(gw),
		newID:  func() string { return uuid.NewString() },
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Resolve maps a document url to its destination number
func (s *Svc) Resolve(documentURL string) (string, error) {
	return s.res.Resolve(documentURL)
}

// Dispatch authenticates, formats the number, fetches the document and submits it
// each step short circuits on failure. The fetched document is released on every
// exit path, panics included, and a release error never changes the outcome
func (s *Svc) Dispatch(ctx context.Context, documentURL, number string) (out domain.Outcome) {
	id := s.newID()
	start := s.now()
	ctx = logger.WithDispatch(ctx, id)
	log := logger.C(ctx)

	var doc domain.TransientDocument
	defer func() {
		if v := recover(); v != nil {
			log.Error().Interface("panic", v).Msg("dispatch panicked")
			out = domain.Failed(id, domain.StageInternal, perr.PanicErrf("dispatch panicked: %v", v))
		}
		if doc != nil {
			if err := doc.Release(); err != nil {
				log.Warn().Err(err).Str("file", doc.Name()).Msg("could not delete temp document")
			} else {
				log.Debug().Str("file", doc.Name()).Msg("temp document deleted")
			}
		}
		if s.rec != nil {
			s.rec.RecordDispatch(out.Stage.String(), s.now().Sub(start).Seconds())
		}
	}()

	if err := s.gw.Authenticate(ctx); err != nil {
		log.Error().Err(err).Msg("gateway authentication failed")
		return domain.Failed(id, domain.StageInternal, perr.Wrap(err, perr.ErrorCodeUnknown, "gateway authentication failed"))
	}

	to := faxnumber.Format(number)
	log.Info().Str("recipient", to).Str("url", documentURL).Msg("preparing fax")

	var err error
	doc, err = s.fetch.Fetch(ctx, documentURL)
	if err != nil {
		doc = nil
		log.Error().Err(err).Msg("document fetch failed")
		return withRecipient(domain.Failed(id, domain.StageFetch, err), to)
	}
	ev := log.Debug().Str("file", doc.Name())
	if pc, ok := doc.(interface{ Pages() int }); ok {
		ev = ev.Int("pages", pc.Pages())
	}
	ev.Msg("document fetched")

	if err := s.submit.Submit(ctx, to, doc); err != nil {
		log.Error().Err(err).Msg("fax submission failed")
		return withRecipient(domain.Failed(id, domain.StageSubmission, err), to)
	}

	log.Info().Str("recipient", to).Dur("elapsed", s.now().Sub(start)).Msg("fax sent")
	return domain.Outcome{DispatchID: id, Recipient: to}
}

func withRecipient(o domain.Outcome, to string) domain.Outcome {
	o.Recipient = to
	return o
}
