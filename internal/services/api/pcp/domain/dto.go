// Package domain holds DTOs, lookup tables and ports for the pcp change form helpers
package domain

// ProviderInput is the query for GET /pcp/provider
type ProviderInput struct {
	Insurance string `query:"insurance" validate:"required" example:"Healthfirst"`
	Location  string `query:"location"  validate:"required" example:"LIC"`
}

// Provider is the provider a new PCP change form is filed under
type Provider struct {
	ProviderName string `json:"provider_name" example:"Jane Roe MD"`
	NPI          string `json:"npi"           example:"1234567890"`
}

// FormInput is the query for GET /pcp/form
type FormInput struct {
	Insurance string `query:"insurance" example:"Aetna"`
}

// FormField is one input on a plan specific form
type FormField struct {
	Field    string `json:"field"`
	Required bool   `json:"required"`
}

// FormTemplate lists the fields shown to the member and the ones only stamped into the PDF
type FormTemplate struct {
	Fields    []FormField `json:"fields"`
	PDFFields []FormField `json:"pdfFields"`
}

// SubmissionInput is the body of POST /pcp/submit
type SubmissionInput struct {
	Insurance string `json:"insurance" validate:"required" example:"Healthfirst"`
	Location  string `json:"location"  validate:"required" example:"LIC"`
	PDFURL    string `json:"pdfUrl"    validate:"required" example:"https://files.example.com/Healthfirst_PCP_Form.pdf"`
}

// UploadInput is the body of POST /pcp/upload, PDFBuffer is the base64 encoded document
type UploadInput struct {
	Insurance string `json:"insurance" validate:"required" example:"Healthfirst"`
	Location  string `json:"location"  validate:"required" example:"LIC"`
	PDFBuffer string `json:"pdfBuffer" validate:"required" example:"JVBERi0xLjcK"`
}

// UploadResponse carries the url the stored document is served at, the frontend posts it to send-fax next
type UploadResponse struct {
	Message string `json:"message" example:"Form uploaded successfully!"`
	PDFURL  string `json:"pdfUrl"  example:"http://localhost:4000/files/pcp_forms/Healthfirst_PCP_Form_1741200000000.pdf"`
}

// ErrorBody is the flat error shape the form frontend reads
type ErrorBody struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Stable user facing strings
const (
	ErrMissingParams = "Missing insurance or location"
	MsgNoProvider    = "No provider found"
	ErrQueryFailed   = "Database query failed"
	ErrMissingFields = "Missing required fields"
	MsgSubmitted     = "Form submitted successfully!"
	ErrSaveFailed    = "Failed to save submission"
	ErrInvalidPDF    = "Invalid PDF data"
	MsgUploaded      = "Form uploaded successfully!"
	ErrUploadFailed  = "Failed to upload PDF"
)
