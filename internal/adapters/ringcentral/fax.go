package ringcentral

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	perr "autofax/internal/platform/errors"
	"autofax/internal/services/api/fax/domain"
)

// maxReplyBytes bounds how much of the gateway reply is kept
const maxReplyBytes = 16 << 10

// Recipient is one fax destination
type Recipient struct {
	PhoneNumber string `json:"phoneNumber"`
}

// FaxBody is the JSON part of a fax request
type FaxBody struct {
	To            []Recipient `json:"to"`
	FaxResolution string      `json:"faxResolution"`
	CoverPageText string      `json:"coverPageText,omitempty"`
}

// BuildMultipart encodes job as the JSON body part followed by the attachment part
// it returns the payload and its content type
func BuildMultipart(job domain.TransmissionJob) ([]byte, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	meta, err := json.Marshal(FaxBody{
		To:            []Recipient{{PhoneNumber: job.Recipient}},
		FaxResolution: string(job.Resolution),
		CoverPageText: job.CoverText,
	})
	if err != nil {
		return nil, "", err
	}
	jh := textproto.MIMEHeader{}
	jh.Set("Content-Disposition", `form-data; name="request"; filename="request.json"`)
	jh.Set("Content-Type", "application/json")
	jp, err := mw.CreatePart(jh)
	if err != nil {
		return nil, "", err
	}
	if _, err := jp.Write(meta); err != nil {
		return nil, "", err
	}

	mime := job.Attachment.MIMEType
	if mime == "" {
		mime = "application/octet-stream"
	}
	ah := textproto.MIMEHeader{}
	ah.Set("Content-Disposition", `form-data; name="attachment"; filename=`+strconv.Quote(job.Attachment.Filename))
	ah.Set("Content-Type", mime)
	ap, err := mw.CreatePart(ah)
	if err != nil {
		return nil, "", err
	}
	if _, err := ap.Write(job.Attachment.Content); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}

// SubmitFax sends job in one request. A non 2xx answer is returned as a reply, not an error
func (c *Client) SubmitFax(ctx context.Context, job domain.TransmissionJob) (domain.GatewayReply, error) {
	tok := c.bearer()
	if tok == "" {
		return domain.GatewayReply{}, perr.Internalf("ringcentral: not authenticated")
	}

	payload, ctype, err := BuildMultipart(job)
	if err != nil {
		return domain.GatewayReply{}, perr.Wrap(err, perr.ErrorCodeUnknown, "ringcentral: build multipart")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.Server+faxPath, bytes.NewReader(payload))
	if err != nil {
		return domain.GatewayReply{}, perr.Wrap(err, perr.ErrorCodeUnknown, "ringcentral new fax request failed")
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Content-Type", ctype)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		return domain.GatewayReply{}, perr.Wrap(err, perr.ErrorCodeUpstream, "ringcentral fax request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	reply := domain.GatewayReply{
		Status: resp.StatusCode,
		Reason: reasonPhrase(resp),
		Body:   string(body),
	}
	c.log.Debug().
		Int("status", reply.Status).
		Int("bytes", len(payload)).
		Dur("latency", c.now().Sub(start)).
		Msg("ringcentral fax response")
	return reply, nil
}

// reasonPhrase is the gateway's own reason text, the standard one when the status line has none
func reasonPhrase(resp *http.Response) string {
	if r := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))); r != "" {
		return r
	}
	return http.StatusText(resp.StatusCode)
}
