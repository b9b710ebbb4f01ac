// Package validate turns untrusted citation drafts into trusted citations
// by enforcing index safety against the trusted candidate list.
package validate

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/veridex/veridex/internal/model"
)

// Validator maps citation drafts back onto the trusted candidate list
type Validator struct {
	log *zap.Logger
}

// NewValidator creates a validator
func NewValidator(log *zap.Logger) *Validator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Validator{log: log}
}

// Validate checks every draft and returns the valid subset with the count
// of rejected entries. A draft is rejected when its url_index is not an
// integer or is outside [0, len(trusted)). Accepted drafts are mapped to
// the candidate's real URI; whatever URL text the model produced is
// discarded. After mapping, results are deduplicated by URI, first
// occurrence wins. A partially valid batch still yields its valid subset.
func (v *Validator) Validate(drafts []model.CitationDraft, trusted []model.Candidate) ([]model.Citation, int) {
	var citations []model.Citation
	seen := make(map[string]bool)
	rejected := 0

	for _, d := range drafts {
		idx, ok := integerIndex(d.URLIndex, len(trusted))
		if !ok {
			rejected++
			v.log.Warn("dropping citation draft with invalid index",
				zap.Float64("url_index", d.URLIndex),
				zap.Int("candidates", len(trusted)),
				zap.String("title", d.Title))
			continue
		}

		uri := trusted[idx].URI
		if seen[uri] {
			continue
		}
		seen[uri] = true

		title := strings.TrimSpace(d.Title)
		if title == "" {
			title = trusted[idx].Title
		}
		date := strings.TrimSpace(d.Year)
		if date == "" {
			date = "N/A"
		}

		citations = append(citations, model.Citation{
			Title:     title,
			URI:       uri,
			Date:      date,
			Reference: strings.TrimSpace(d.Reference),
		})
	}

	return citations, rejected
}

// integerIndex reports whether the draft index is a whole number within
// [0, n)
func integerIndex(f float64, n int) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	idx := int(f)
	if idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}
