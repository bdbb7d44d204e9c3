// Package generation isolates the external generative-language backend
// behind a small client interface, so the ingestion pipeline never depends
// on a concrete SDK. The backend's response shape is not under our control;
// Response models the variants and Normalize flattens them deterministically.
package generation

import "context"

// InlineMedia carries a binary payload sent alongside the instruction,
// used for the photographed-notes path.
type InlineMedia struct {
	MIMEType string
	Data     []byte
}

// Request is the normalized instruction sent to the backend.
// Media is present only for image submissions; text submissions embed
// their content in the instruction itself.
type Request struct {
	Instruction string
	Media       *InlineMedia
}

// Client defines the interface for invoking the generation backend.
// Implementations perform a single outbound call with no retries; retry
// policy, if any, belongs to a wrapper, not here.
type Client interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	Close() error
}
