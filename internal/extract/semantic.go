package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/veridex/veridex/internal/llm"
	"github.com/veridex/veridex/internal/model"
)

// matchEnvelope is the fixed output schema for the semantic-match call
type matchEnvelope struct {
	Rights []string `json:"rights"`
}

// SemanticMatcher selects which catalog rights are relevant to a free-text
// term with a single schema-constrained call. It uses no grounding and no
// trust policy.
type SemanticMatcher struct {
	client llm.Client
}

// NewSemanticMatcher creates a matcher
func NewSemanticMatcher(client llm.Client) *SemanticMatcher {
	return &SemanticMatcher{client: client}
}

// Match returns the identifiers of the rights relevant to the term. The
// model output is coerced to a flat identifier list (see coerceIDList) and
// restricted to identifiers that exist in the supplied catalog slice.
func (m *SemanticMatcher) Match(ctx context.Context, term string, rights []model.Right) ([]string, error) {
	raw, err := m.client.GenerateStructured(ctx, llm.StructuredRequest{
		Prompt:     buildMatchPrompt(term, rights),
		SchemaName: "right_matches",
		Sample:     matchEnvelope{},
	})
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(rights))
	for _, r := range rights {
		known[r.ID] = true
	}

	var out []string
	seen := make(map[string]bool)
	for _, id := range coerceIDList(raw) {
		if known[id] && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

func buildMatchPrompt(term string, rights []model.Right) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Select which of the following human rights are directly relevant to the term %q.\n\n", term)
	b.WriteString("RIGHTS:\n")
	for _, r := range rights {
		fmt.Fprintf(&b, "[%s] %s — %s\n", r.ID, r.Name, r.Summary)
	}
	b.WriteString("\nReturn the identifiers of the relevant rights only. ")
	b.WriteString("Return an empty list if none apply. Do not invent identifiers.\n")

	return b.String()
}

// coerceIDList extracts a flat list of identifier strings from the model's
// JSON. This is the single, narrow fallback rule for malformed shapes: a
// bare array is used directly; when the array is nested under an object the
// first array-valued field in document order is accepted; anything else
// yields an empty list. Numeric elements are stringified.
func coerceIDList(raw string) []string {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return nil
	}

	if delim == '[' {
		return decodeIDArray(dec)
	}
	if delim != '{' {
		return nil
	}

	for dec.More() {
		if _, err := dec.Token(); err != nil { // field name
			return nil
		}
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		if d, ok := tok.(json.Delim); ok {
			if d == '[' {
				return decodeIDArray(dec)
			}
			if d == '{' {
				if skipCompound(dec) != nil {
					return nil
				}
			}
		}
	}
	return nil
}

// decodeIDArray reads scalar elements of the array the decoder is
// positioned inside
func decodeIDArray(dec *json.Decoder) []string {
	var ids []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return ids
		}
		switch v := tok.(type) {
		case string:
			ids = append(ids, v)
		case json.Number:
			ids = append(ids, v.String())
		case json.Delim:
			if v == '{' || v == '[' {
				if skipCompound(dec) != nil {
					return ids
				}
			}
		}
	}
	return ids
}

// skipCompound consumes tokens until the open delimiter just read is closed
func skipCompound(dec *json.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}
