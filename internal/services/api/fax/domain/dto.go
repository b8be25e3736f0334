// Package domain holds DTOs, outcome types and ports for fax dispatch
package domain

// SendFaxInput is the inbound payload for POST /send-fax
type SendFaxInput struct {
	PDFURL string `json:"pdfUrl" validate:"required" example:"https://storage.googleapis.com/bucket/pcp_forms/Healthfirst_PCP_Form_1741200000000.pdf"`
}

// SendFaxResponse is the flat response body the frontend expects
// swagger:model
type SendFaxResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"Fax sent successfully"`
	Error   string `json:"error,omitempty" example:"Failed to send fax"`
	Details string `json:"details,omitempty" example:"document fetch failed: status 404"`
}

// Stable user facing strings
const (
	MsgSent          = "Fax sent successfully"
	ErrURLRequired   = "PDF URL is required"
	ErrNumberMissing = "Fax number not found"
	ErrSendFailed    = "Failed to send fax"
)
