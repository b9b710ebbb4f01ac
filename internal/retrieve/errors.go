package retrieve

import "errors"

// Error taxonomy for the pipeline. InvalidReference is recovered inside
// the validator and never surfaces; NoTrustedSources is not an error at
// all and yields an empty result.
var (
	// ErrUpstreamCall covers network, auth and quota failures of either
	// model call
	ErrUpstreamCall = errors.New("upstream model call failed")

	// ErrParse covers responses that did not match the declared schema
	ErrParse = errors.New("model response did not match schema")
)
