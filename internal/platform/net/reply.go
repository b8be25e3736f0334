package net

import (
	"net/http"

	perr "autofax/internal/platform/errors"
)

// Wire is the enveloped body for meta, docs and bind failures.
// send-fax and pcp answer with their own flat bodies instead
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

func envelope(status int, reqID string) Wire {
	return Wire{StatusCode: status, Status: http.StatusText(status), RequestID: reqID}
}

// Data wraps data in an envelope for status
func Data(status int, data any, reqID string) Wire {
	w := envelope(status, reqID)
	w.Data = data
	return w
}

// Error maps err to its status and envelope, nil is an empty 200
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return http.StatusOK, Data(http.StatusOK, nil, reqID)
	}
	status := perr.HTTPStatus(err)
	pw := perr.WireFrom(err)

	w := envelope(status, reqID)
	w.Code, w.Error, w.Field = pw.Code, pw.Message, pw.Field
	return status, w
}
