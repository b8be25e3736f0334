// Package http provides http transport for the pcp helpers
package http

import (
	stdhttp "net/http"
	"strings"

	"autofax/internal/modkit/httpkit"
	perr "autofax/internal/platform/errors"
	"autofax/internal/platform/logger"
	"autofax/internal/platform/net/http/bind"
	"autofax/internal/services/api/pcp/domain"
)

const (
	// maxSubmitBody caps the submit payload, it only carries three strings
	maxSubmitBody = 64 << 10
	// maxUploadBody caps the upload payload, a filled form is a few hundred KB before base64
	maxUploadBody = 16 << 20
)

// Paths names where each pcp endpoint is mounted
type Paths struct {
	Form, Provider, Submit, Upload string
}

// Canonical are the paths under the module prefix
var Canonical = Paths{Form: "/form", Provider: "/provider", Submit: "/submit", Upload: "/upload"}

// Legacy are the flat /api paths the form frontend calls
var Legacy = Paths{Form: "/get-form", Provider: "/get-provider", Submit: "/submit-form", Upload: "/upload-pdf"}

// Register mounts the form endpoint at p, plus provider and submit when a directory
// is attached and upload when a file store is attached too
func Register(r httpkit.Router, s domain.ServicePort, p Paths) {
	h := &handlers{svc: s}

	if s.HasDirectory() {
		r.Get(p.Provider, httpkit.Handle(h.provider))
		r.Post(p.Submit, httpkit.Handle(h.submit))
	}
	if s.CanUpload() {
		r.Post(p.Upload, httpkit.Handle(h.upload))
	}
	httpkit.GetQuery[domain.FormInput](r, p.Form, h.form)
}

type handlers struct{ svc domain.ServicePort }

// provider answers with the flat body the form frontend reads
//
// @Summary Best provider for a plan at a location
// @Tags PCP
// @Produce json
// @Param insurance query string true "plan name" example(Healthfirst)
// @Param location query string true "site" example(LIC)
// @Success 200 {object} domain.Provider
// @Failure 400 {object} domain.ErrorBody "Missing insurance or location"
// @Failure 404 {object} domain.ErrorBody "No provider found"
// @Failure 500 {object} domain.ErrorBody "Database query failed"
// @Router /pcp/provider [get]
// @Router /get-provider [get]
func (h *handlers) provider(r *stdhttp.Request) httpkit.Response {
	in, err := bind.ParseQuery[domain.ProviderInput](r)
	if err != nil {
		return httpkit.Plain(stdhttp.StatusBadRequest, domain.ErrorBody{Error: domain.ErrMissingParams})
	}

	p, err := h.svc.BestProvider(r.Context(), in)
	switch {
	case err == nil:
		return httpkit.Plain(stdhttp.StatusOK, p)
	case perr.IsCode(err, perr.ErrorCodeNotFound):
		return httpkit.Plain(stdhttp.StatusNotFound, domain.ErrorBody{Message: domain.MsgNoProvider})
	default:
		logger.C(r.Context()).Error().Err(err).
			Str("insurance", in.Insurance).
			Str("location", in.Location).
			Msg("provider lookup failed")
		return httpkit.Plain(stdhttp.StatusInternalServerError, domain.ErrorBody{Error: domain.ErrQueryFailed})
	}
}

// @Summary Form fields for an insurance plan
// @Tags PCP
// @Produce json
// @Param insurance query string false "plan name" example(Aetna)
// @Success 200 {object} domain.FormTemplate "unknown plans have no member fields"
// @Router /pcp/form [get]
// @Router /get-form [get]
func (h *handlers) form(_ *stdhttp.Request, in domain.FormInput) (any, error) {
	return httpkit.Plain(stdhttp.StatusOK, h.svc.Form(in)), nil
}

// @Summary Record a filled pcp change form
// @Tags PCP
// @Accept json
// @Produce json
// @Param body body domain.SubmissionInput true "submission"
// @Success 200 {object} domain.ErrorBody "Form submitted successfully!"
// @Failure 400 {object} domain.ErrorBody "Missing required fields"
// @Failure 500 {object} domain.ErrorBody "Failed to save submission"
// @Router /pcp/submit [post]
// @Router /submit-form [post]
func (h *handlers) submit(r *stdhttp.Request) httpkit.Response {
	in, err := bind.ParseJSON[domain.SubmissionInput](r, bind.JSONOptions{MaxBytes: maxSubmitBody, AllowEmptyBody: true})
	if err != nil || blank(in.Insurance, in.Location, in.PDFURL) {
		return httpkit.Plain(stdhttp.StatusBadRequest, domain.ErrorBody{Error: domain.ErrMissingFields})
	}

	if err := h.svc.Submit(r.Context(), in); err != nil {
		logger.C(r.Context()).Error().Err(err).Str("insurance", in.Insurance).Msg("pcp submission failed")
		return httpkit.Plain(stdhttp.StatusInternalServerError, domain.ErrorBody{Error: domain.ErrSaveFailed})
	}
	return httpkit.Plain(stdhttp.StatusOK, domain.ErrorBody{Message: domain.MsgSubmitted})
}

// upload stores the base64 form, records the submission and answers with its url
//
// @Summary Store a filled pcp change form and record it
// @Tags PCP
// @Accept json
// @Produce json
// @Param body body domain.UploadInput true "base64 encoded pdf"
// @Success 200 {object} domain.UploadResponse
// @Failure 400 {object} domain.ErrorBody "Missing required fields, or Invalid PDF data"
// @Failure 500 {object} domain.ErrorBody "Failed to upload PDF"
// @Router /pcp/upload [post]
// @Router /upload-pdf [post]
func (h *handlers) upload(r *stdhttp.Request) httpkit.Response {
	in, err := bind.ParseJSON[domain.UploadInput](r, bind.JSONOptions{MaxBytes: maxUploadBody, AllowEmptyBody: true})
	if err != nil || blank(in.Insurance, in.Location, in.PDFBuffer) {
		return httpkit.Plain(stdhttp.StatusBadRequest, domain.ErrorBody{Error: domain.ErrMissingFields})
	}

	url, err := h.svc.Upload(r.Context(), in)
	switch {
	case err == nil:
		return httpkit.Plain(stdhttp.StatusOK, domain.UploadResponse{Message: domain.MsgUploaded, PDFURL: url})
	case perr.IsCode(err, perr.ErrorCodeValidation):
		return httpkit.Plain(stdhttp.StatusBadRequest, domain.ErrorBody{Error: domain.ErrInvalidPDF})
	default:
		logger.C(r.Context()).Error().Err(err).Str("insurance", in.Insurance).Msg("pcp upload failed")
		return httpkit.Plain(stdhttp.StatusInternalServerError, domain.ErrorBody{Error: domain.ErrUploadFailed})
	}
}

func blank(vals ...string) bool {
	for _, v := range vals {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
