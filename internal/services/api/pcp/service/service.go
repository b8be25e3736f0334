// Package service contains the pcp provider and form workflows
package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	perr "autofax/internal/platform/errors"
	"autofax/internal/platform/logger"
	"autofax/internal/services/api/pcp/domain"
	"autofax/internal/services/api/pcp/repo"
)

// Service defines the service contract for pcp
type Service interface{ domain.ServicePort }

// uploadDir is the key prefix uploaded forms are stored under
const uploadDir = "pcp_forms"

// errEmptyPDF marks an upload that decodes to nothing
var errEmptyPDF = errors.New("empty document")

// Option tweaks a Svc at construction
type Option func(*Svc)

// WithFiles attaches the store uploaded forms are written to
func WithFiles(f domain.FileStore) Option { return func(s *Svc) { s.Files = f } }

// WithClock overrides the clock upload file names are stamped with
func WithClock(fn func() time.Time) Option { return func(s *Svc) { s.now = fn } }

// Svc implements Service, Repo is nil when no database is configured
// and Files is nil when uploads are not configured
type Svc struct {
	Repo  repo.Repo
	Files domain.FileStore

	now func() time.Time
}

// New creates a pcp service, r may be nil
func New(r repo.Repo, opts ...Option) *Svc {
	s := &Svc{Repo: r, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// HasDirectory reports whether a provider directory is attached
func (s *Svc) HasDirectory() bool { return s.Repo != nil }

// CanUpload reports whether both a file store and a directory are attached
func (s *Svc) CanUpload() bool { return s.Files != nil && s.Repo != nil }

// BestProvider expands plan and location aliases then asks the directory
func (s *Svc) BestProvider(ctx context.Context, in domain.ProviderInput) (domain.Provider, error) {
	if s.Repo == nil {
		return domain.Provider{}, perr.Unavailablef("provider directory is not configured")
	}
	row, err := s.Repo.BestProvider(ctx, domain.ExpandInsurance(in.Insurance), domain.CanonicalLocation(in.Location))
	if err != nil {
		return domain.Provider{}, err
	}
	return domain.Provider{ProviderName: row.ProviderName, NPI: row.NPI}, nil
}

// Form returns the field template for the plan
func (s *Svc) Form(in domain.FormInput) domain.FormTemplate {
	return domain.Template(in.Insurance)
}

// Submit records the form, the caller has already checked the fields are present
func (s *Svc) Submit(ctx context.Context, in domain.SubmissionInput) error {
	if s.Repo == nil {
		return perr.Unavailablef("provider directory is not configured")
	}
	id, err := s.Repo.SaveSubmission(ctx, repo.RowSubmission{
		Insurance: strings.TrimSpace(in.Insurance),
		Location:  domain.CanonicalLocation(in.Location),
		PDFURL:    strings.TrimSpace(in.PDFURL),
	})
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "save submission")
	}
	logger.C(ctx).Info().Int64("submission_id", id).Str("insurance", in.Insurance).Msg("pcp form submitted")
	return nil
}

// Upload stores the decoded form as <insurance>_PCP_Form_<unix ms>.pdf, records it
// and returns the url it is served at. A bad payload is a validation error
func (s *Svc) Upload(ctx context.Context, in domain.UploadInput) (string, error) {
	if !s.CanUpload() {
		return "", perr.Unavailablef("pcp uploads are not configured")
	}
	data, err := decodePDF(in.PDFBuffer)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeValidation, "decode pdf")
	}

	insurance := strings.TrimSpace(in.Insurance)
	name := fmt.Sprintf("%s_PCP_Form_%d.pdf", fileSafe(insurance), s.now().UnixMilli())
	url, err := s.Files.Put(ctx, uploadDir+"/"+name, data)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "store %s", name)
	}

	id, err := s.Repo.SaveSubmission(ctx, repo.RowSubmission{
		Insurance: insurance,
		Location:  domain.CanonicalLocation(in.Location),
		PDFURL:    url,
	})
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeDB, "save submission")
	}
	logger.C(ctx).Info().
		Int64("submission_id", id).
		Str("insurance", insurance).
		Int("bytes", len(data)).
		Str("url", url).
		Msg("pcp form uploaded")
	return url, nil
}

// decodePDF accepts padded or unpadded standard base64, with or without a data url prefix
func decodePDF(b64 string) ([]byte, error) {
	raw := strings.TrimSpace(b64)
	if i := strings.Index(raw, ";base64,"); i >= 0 && strings.HasPrefix(raw, "data:") {
		raw = raw[i+len(";base64,"):]
	}
	raw = strings.TrimRight(raw, "=")
	data, err := base64.RawStdEncoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errEmptyPDF
	}
	return data, nil
}

// fileSafe keeps the plan name readable but never lets it open a sub directory
func fileSafe(s string) string {
	return strings.NewReplacer("/", "-", "\\", "-").Replace(s)
}
