package model

// RequestCategory selects the trust policy and prompt template for a request
type RequestCategory string

const (
	CategoryLegalFramework RequestCategory = "legal_framework" // Treaties, constitutions, statutes, case law
	CategoryFieldStatus    RequestCategory = "field_status"    // Monitoring-organization status reports
	CategoryNexus          RequestCategory = "nexus"           // Academic work connecting two rights
)

// Candidate is a source surfaced by the search-grounding step.
// Identity is the URI; candidates are ephemeral and scoped to one request.
type Candidate struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// CitationDraft is the model's untrusted structured answer. URLIndex is a
// number at the boundary because the model is not trusted to return an
// integer; the validator enforces integerness and range.
type CitationDraft struct {
	URLIndex  float64 `json:"url_index"`
	Title     string  `json:"title"`
	Year      string  `json:"year"` // Four-digit year or "N/A"
	Reference string  `json:"reference"`
}

// Citation is a validated, trusted citation. URI is always copied from the
// trusted candidate list, never from model text.
type Citation struct {
	Title     string `json:"title"`
	URI       string `json:"uri"`
	Date      string `json:"date"`
	Reference string `json:"reference"`
}

// DialogueResult is the unit returned to the UI. Sources may be empty.
type DialogueResult struct {
	Sources []Citation `json:"sources"`

	// Degraded marks a fallback result produced after an upstream or parse
	// failure; its single citation points at a manual research portal.
	Degraded bool `json:"degraded,omitempty"`

	// Rejected counts citation drafts dropped during validation.
	Rejected int `json:"rejected,omitempty"`
}
