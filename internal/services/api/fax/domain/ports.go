package domain

import "context"

// Fetcher retrieves a document into a transient local resource
// on error no resource is left behind
type Fetcher interface {
	Fetch(ctx context.Context, url string) (TransientDocument, error)
}

// Gateway is the authenticated fax gateway client
type Gateway interface {
	// Authenticate establishes or refreshes the gateway session
	Authenticate(ctx context.Context) error
	// SubmitFax sends one job as a single multipart request
	SubmitFax(ctx context.Context, job TransmissionJob) (GatewayReply, error)
}

// Resolver maps a document url to a fax number
type Resolver interface {
	Resolve(documentURL string) (string, error)
}

// Recorder observes dispatch outcomes, implemented by the metrics package
type Recorder interface {
	RecordDispatch(stage string, seconds float64)
}

// ServicePort is consumed by handlers
type ServicePort interface {
	Resolve(documentURL string) (string, error)
	Dispatch(ctx context.Context, documentURL, number string) Outcome
}
