// Package ground normalizes the raw search-grounding metadata attached to a
// generation response into an ordered candidate list.
package ground

import (
	"strings"

	"github.com/veridex/veridex/internal/model"
)

// RawChunk is the boundary type for one grounding chunk as delivered by the
// provider. Either field may be empty; the extractor validates and defaults
// here rather than trusting shape downstream.
type RawChunk struct {
	Title string `json:"title,omitempty"`
	URI   string `json:"uri,omitempty"`
}

// placeholderTitle replaces missing web titles
const placeholderTitle = "Source"

// Extract converts grounding chunks into candidates: chunks without a URL
// are dropped, missing titles default to a placeholder, and candidates are
// deduplicated by exact URI with first-seen order preserved. Zero chunks
// yield an empty list; the caller treats that as "no evidence available",
// not an error.
func Extract(chunks []RawChunk) []model.Candidate {
	seen := make(map[string]bool)
	var candidates []model.Candidate

	for _, chunk := range chunks {
		uri := strings.TrimSpace(chunk.URI)
		if uri == "" || seen[uri] {
			continue
		}
		seen[uri] = true

		title := strings.TrimSpace(chunk.Title)
		if title == "" {
			title = placeholderTitle
		}

		candidates = append(candidates, model.Candidate{
			Title: title,
			URI:   uri,
		})
	}

	return candidates
}
