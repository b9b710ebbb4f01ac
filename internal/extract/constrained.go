// Package extract performs the schema-constrained second model call: the
// index-bound citation extraction and the semantic right matcher.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/veridex/veridex/internal/llm"
	"github.com/veridex/veridex/internal/model"
)

// ErrBadDraftJSON marks a structured response that did not parse as the
// declared schema
var ErrBadDraftJSON = errors.New("citation drafts did not match schema")

// draftEnvelope is the fixed output schema for the extraction call
type draftEnvelope struct {
	Sources []model.CitationDraft `json:"sources"`
}

// Constrained builds the index-bound extraction prompt and calls the model
// under a fixed output schema
type Constrained struct {
	client llm.Client
}

// NewConstrained creates a constrained extractor
func NewConstrained(client llm.Client) *Constrained {
	return &Constrained{client: client}
}

// Extract turns a free-text answer into citation drafts that reference the
// trusted candidates only by index. With zero trusted candidates the call
// is skipped entirely: a model with no valid reference targets can only
// hallucinate.
func (e *Constrained) Extract(ctx context.Context, query, answer string, trusted []model.Candidate) ([]model.CitationDraft, error) {
	if len(trusted) == 0 {
		return nil, nil
	}

	raw, err := e.client.GenerateStructured(ctx, llm.StructuredRequest{
		Prompt:     buildExtractionPrompt(query, answer, trusted),
		SchemaName: "citations",
		Sample:     draftEnvelope{},
	})
	if err != nil {
		return nil, err
	}

	var env draftEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDraftJSON, err)
	}

	return env.Sources, nil
}

// buildExtractionPrompt lists every trusted candidate by explicit index and
// forbids inventing sources not in the list
func buildExtractionPrompt(query, answer string, trusted []model.Candidate) string {
	var b strings.Builder

	b.WriteString("You are extracting citations from a research answer.\n\n")
	b.WriteString("RULES:\n")
	b.WriteString("1. Reference sources ONLY by their index into the numbered list below.\n")
	b.WriteString("2. NEVER invent, alter or guess a URL. The url_index is the only source reference.\n")
	b.WriteString("3. If you cannot tie a finding to a listed source, omit it. Omission is always preferred over fabrication.\n")
	b.WriteString("4. For each referenced index provide: a short quotation or finding (2-3 sentences at most), an improved title, and the publication year if determinable (otherwise \"N/A\").\n")
	b.WriteString("5. url_index must be an integer between 0 and ")
	fmt.Fprintf(&b, "%d inclusive.\n\n", len(trusted)-1)

	b.WriteString("ALLOWED SOURCES:\n")
	for i, c := range trusted {
		fmt.Fprintf(&b, "[%d] %s — %s\n", i, c.Title, c.URI)
	}

	fmt.Fprintf(&b, "\nORIGINAL QUERY:\n%s\n", query)
	fmt.Fprintf(&b, "\nANSWER TO EXTRACT FROM:\n%s\n", answer)

	return b.String()
}
