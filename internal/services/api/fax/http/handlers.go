// Package http provides http transport for fax dispatch
package http

import (
	"context"
	stdhttp "net/http"
	"strings"

	"autofax/internal/modkit/httpkit"
	perr "autofax/internal/platform/errors"
	"autofax/internal/platform/logger"
	"autofax/internal/platform/net/http/bind"
	"autofax/internal/services/api/fax/domain"
)

// maxBody caps the send-fax payload, it only carries a url
const maxBody = 64 << 10

// Register mounts the send-fax endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	r.Post("/", httpkit.Handle(h.sendFax))
	r.Options("/", httpkit.Handle(h.preflight))
}

type handlers struct{ svc domain.ServicePort }

// sendFax answers with the flat success/error body the form frontend expects
//
// @Summary Resolve the fax number from the document name, fetch it and send it
// @Tags Fax
// @Accept json
// @Produce json
// @Param body body domain.SendFaxInput true "document to fax"
// @Success 200 {object} domain.SendFaxResponse
// @Failure 400 {object} domain.SendFaxResponse "PDF URL is required, or Fax number not found"
// @Failure 500 {object} domain.SendFaxResponse "Failed to send fax"
// @Router /send-fax [post]
func (h *handlers) sendFax(r *stdhttp.Request) httpkit.Response {
	log := logger.C(r.Context())

	in, err := bind.ParseJSON[domain.SendFaxInput](r, bind.JSONOptions{MaxBytes: maxBody, AllowEmptyBody: true})
	if err != nil || strings.TrimSpace(in.PDFURL) == "" {
		if err != nil {
			log.Debug().Err(err).Msg("send-fax payload rejected")
		}
		return fail(domain.StageValidation, domain.ErrURLRequired, "")
	}
	url := strings.TrimSpace(in.PDFURL)

	number, err := h.svc.Resolve(url)
	if err != nil {
		log.Info().Err(err).Str("url", url).Msg("no fax number for document")
		return fail(domain.StageResolution, domain.ErrNumberMissing, "")
	}
	log.Info().Str("url", url).Str("number", number).Msg("fax number resolved")

	// a client disconnect must not abort a submission already in flight
	out := h.svc.Dispatch(context.WithoutCancel(r.Context()), url, number)
	if !out.OK() {
		return fail(out.Stage, domain.ErrSendFailed, out.Details())
	}
	return httpkit.Plain(stdhttp.StatusOK, domain.SendFaxResponse{Success: true, Message: domain.MsgSent})
}

// preflight answers the browser CORS check for POST
//
// @Summary CORS preflight
// @Tags Fax
// @Success 204
// @Router /send-fax [options]
func (h *handlers) preflight(_ *stdhttp.Request) httpkit.Response {
	hdr := stdhttp.Header{}
	hdr.Set("Access-Control-Allow-Origin", "*")
	hdr.Set("Access-Control-Allow-Methods", "POST")
	hdr.Set("Access-Control-Allow-Headers", "Content-Type")
	return httpkit.Response{Status: stdhttp.StatusNoContent, Header: hdr}
}

func fail(stage domain.Stage, msg, details string) httpkit.Response {
	return httpkit.Plain(perr.HTTPStatusCode(stage.Code()), domain.SendFaxResponse{
		Error:   msg,
		Details: details,
	})
}
