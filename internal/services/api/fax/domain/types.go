package domain

import (
	perr "autofax/internal/platform/errors"
)

// Stage names the pipeline step a dispatch failed in
type Stage uint8

const (
	// StageNone marks a successful outcome
	StageNone Stage = iota
	// StageValidation is a missing or malformed request payload
	StageValidation
	// StageResolution is a document name no routing rule matches
	StageResolution
	// StageFetch is a failed document download
	StageFetch
	// StageSubmission is a gateway rejection or an unreachable gateway
	StageSubmission
	// StageInternal covers gateway authentication and unexpected failures
	StageInternal
)

func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageValidation:
		return "validation"
	case StageResolution:
		return "resolution"
	case StageFetch:
		return "fetch"
	case StageSubmission:
		return "submission"
	case StageInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Code maps a stage onto the platform error taxonomy
func (s Stage) Code() perr.ErrorCode {
	switch s {
	case StageValidation, StageResolution:
		return perr.ErrorCodeValidation
	case StageFetch, StageSubmission:
		return perr.ErrorCodeUpstream
	default:
		return perr.ErrorCodeUnknown
	}
}

// Resolution is the gateway fax resolution
type Resolution string

// gateway accepted values
const (
	ResolutionStandard Resolution = "Standard"
	ResolutionHigh     Resolution = "High"
)

// Attachment is the single document sent with a job
type Attachment struct {
	Filename string
	Content  []byte
	MIMEType string
}

// TransmissionJob is built once per dispatch and never persisted
type TransmissionJob struct {
	Recipient  string
	Resolution Resolution
	CoverText  string
	Attachment Attachment
}

// TransientDocument is the local copy of a fetched document
// it belongs to exactly one dispatch and must not be used after Release
type TransientDocument interface {
	// Name is the base name of the local file, used as the attachment filename
	Name() string
	// Bytes reads the full content
	Bytes() ([]byte, error)
	// Release removes the local copy, repeated calls are no-ops
	Release() error
}

// GatewayReply is the status, reason and body triple returned by the gateway
type GatewayReply struct {
	Status int
	Reason string
	Body   string
}

// Accepted reports a 2xx answer
func (r GatewayReply) Accepted() bool { return r.Status >= 200 && r.Status < 300 }

// Outcome is the tagged result of one dispatch. Stage is StageNone on success
type Outcome struct {
	DispatchID string
	Recipient  string
	Stage      Stage
	Err        error
}

// OK reports success
func (o Outcome) OK() bool { return o.Stage == StageNone && o.Err == nil }

// Details is the diagnostic message surfaced to callers on failure
func (o Outcome) Details() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Failed builds a failure outcome, err is wrapped with the stage's error code
func Failed(id string, s Stage, err error) Outcome {
	if _, ok := perr.As(err); !ok {
		err = perr.Wrap(err, s.Code(), s.String()+" failed")
	}
	return Outcome{DispatchID: id, Stage: s, Err: err}
}
