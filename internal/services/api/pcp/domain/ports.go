package domain

import "context"

// ServicePort is consumed by handlers
type ServicePort interface {
	// BestProvider picks the highest priority provider for the plan at the location,
	// falling back to providers that serve all locations
	BestProvider(ctx context.Context, in ProviderInput) (Provider, error)
	// Form returns the field template for a plan
	Form(in FormInput) FormTemplate
	// Submit records a filled form against its plan and site
	Submit(ctx context.Context, in SubmissionInput) error
	// Upload stores a filled form, records it and returns the url it is served at
	Upload(ctx context.Context, in UploadInput) (string, error)
	// HasDirectory reports whether provider lookups and submissions are backed by a database
	HasDirectory() bool
	// CanUpload reports whether uploads have both a file store and a directory to record them in
	CanUpload() bool
}

// FileStore keeps uploaded documents and answers with the public url of each
type FileStore interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
}
