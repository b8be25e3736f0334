package service

import (
	"context"
	"path/filepath"
	"unicode/utf8"

	perr "autofax/internal/platform/errors"
	"autofax/internal/services/api/fax/domain"
)

// fixed job policy
const (
	CoverText      = "PCP Change Form"
	AttachmentMIME = "application/pdf"

	// maxReplyBody caps how much of a rejection body ends up in error details
	maxReplyBody = 1024
)

// Submitter builds a transmission job from a fetched document and submits it once
type Submitter struct {
	gw domain.Gateway
}

// NewSubmitter wraps a gateway client
func NewSubmitter(gw domain.Gateway) *Submitter {
	if gw == nil {
		panic("fax.Submitter requires a non nil Gateway")
	}
	return &Submitter{gw: gw}
}

// BuildJob assembles the job for recipient with the fixed resolution and cover text
func BuildJob(recipient, filename string, content []byte) domain.TransmissionJob {
	return domain.TransmissionJob{
		Recipient:  recipient,
		Resolution: domain.ResolutionHigh,
		CoverText:  CoverText,
		Attachment: domain.Attachment{
			Filename: filepath.Base(filename),
			Content:  content,
			MIMEType: AttachmentMIME,
		},
	}
}

// Submit reads doc and sends it to recipient, anything but a 2xx reply is an error
func (s *Submitter) Submit(ctx context.Context, recipient string, doc domain.TransientDocument) error {
	if doc == nil {
		return perr.Internalf("no attachment to submit")
	}
	content, err := doc.Bytes()
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "read attachment")
	}

	reply, err := s.gw.SubmitFax(ctx, BuildJob(recipient, doc.Name(), content))
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUpstream, "fax gateway request failed")
	}
	if !reply.Accepted() {
		return perr.Upstreamf("Failed to send fax: %d %s: %s", reply.Status, reply.Reason, clip(reply.Body, maxReplyBody))
	}
	return nil
}

// clip cuts s to at most n bytes without splitting a utf-8 sequence
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
