// Package llm abstracts the generative model endpoint behind an injected
// client interface so the pipeline can be exercised with canned grounding
// chunks and canned structured JSON in tests.
package llm

import (
	"context"

	"github.com/veridex/veridex/internal/ground"
)

// GroundedAnswer is the result of a search-augmented generation call:
// the free-text answer plus whatever grounding metadata the search tool
// attached. Chunks may be empty when the provider declines to ground.
type GroundedAnswer struct {
	Text   string
	Chunks []ground.RawChunk
}

// StructuredRequest describes a schema-constrained generation call.
// Sample is a value whose type defines the output schema; the provider
// must guarantee the response parses as that schema or fail the call.
type StructuredRequest struct {
	Prompt     string
	SchemaName string
	Sample     any
}

// Client is the capability handed to the orchestrator. Implementations
// must be safe for concurrent use; each call is single-flight with no
// automatic retry.
type Client interface {
	// GenerateGrounded performs the search-augmented generation call
	GenerateGrounded(ctx context.Context, prompt string) (*GroundedAnswer, error)

	// GenerateStructured performs a schema-constrained call and returns
	// the raw JSON document
	GenerateStructured(ctx context.Context, req StructuredRequest) (string, error)
}

// Unavailable is a Client whose every call fails with a fixed error. It
// stands in when no API credential is configured so the pipeline degrades
// instead of crashing.
type Unavailable struct {
	Err error
}

// NewUnavailable wraps a construction error as a failing client
func NewUnavailable(err error) *Unavailable {
	return &Unavailable{Err: err}
}

func (u *Unavailable) GenerateGrounded(ctx context.Context, prompt string) (*GroundedAnswer, error) {
	return nil, u.Err
}

func (u *Unavailable) GenerateStructured(ctx context.Context, req StructuredRequest) (string, error) {
	return "", u.Err
}
