package trust

import (
	"testing"

	"github.com/veridex/veridex/internal/model"
)

func newTestPolicy() *Policy {
	return NewPolicy(&model.DefaultConfig().Trust)
}

func TestTrusted_LegalFramework(t *testing.T) {
	p := newTestPolicy()

	tests := []struct {
		uri     string
		trusted bool
	}{
		{"https://ohchr.org/x", true},
		{"https://www.ohchr.org/en/instruments", true},
		{"https://treaties.un.org/pages/Treaties.aspx", true},
		{"https://hudoc.echr.coe.int/eng", true},
		{"https://www.corteidh.or.cr/casos.cfm", true},
		{"https://www.justice.gov/crt", true},
		{"https://www.legislation.gov.uk/ukpga/1998/42", true},
		{"https://www.gesetze-im-internet.de/gg", false},
		{"https://www.icc-cpi.int/about", true},
		{"https://example-blog.com/y", false},
		{"https://medium.com/@someone/rights", false},
		{"not a url at all ://", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := p.Trusted(tt.uri, model.CategoryLegalFramework); got != tt.trusted {
			t.Errorf("Trusted(%q, legal) = %v, want %v", tt.uri, got, tt.trusted)
		}
	}
}

func TestTrusted_FieldStatus(t *testing.T) {
	p := newTestPolicy()

	tests := []struct {
		uri     string
		trusted bool
	}{
		{"https://www.hrw.org/world-report/2025", true},
		{"https://www.amnesty.org/en/documents", true},
		{"https://www.ohchr.org/en/countries", true},
		{"https://freedomhouse.org/report/freedom-world", true},
		{"https://www.un.org/en", false}, // general UN site is legal, not a monitoring org
		{"https://example-blog.com/report", false},
	}

	for _, tt := range tests {
		if got := p.Trusted(tt.uri, model.CategoryFieldStatus); got != tt.trusted {
			t.Errorf("Trusted(%q, field_status) = %v, want %v", tt.uri, got, tt.trusted)
		}
	}
}

func TestTrusted_Nexus(t *testing.T) {
	p := newTestPolicy()

	tests := []struct {
		uri     string
		trusted bool
	}{
		{"https://arxiv.org/abs/2401.00001", true},
		{"https://core.ac.uk/download/12345.pdf", true},
		{"https://doaj.org/article/abc", true},
		{"https://law.harvard.edu/papers/x.pdf", true},
		{"https://research.ncbi.nlm.nih.gov/pub/1", true},
		{"https://www.lse.ac.uk/humanrights", true},
		{"https://papers.ssrn.com/sol3/papers.cfm?abstract_id=1", true},
		{"https://randomjournal.com/article/1", false},
	}

	for _, tt := range tests {
		if got := p.Trusted(tt.uri, model.CategoryNexus); got != tt.trusted {
			t.Errorf("Trusted(%q, nexus) = %v, want %v", tt.uri, got, tt.trusted)
		}
	}
}

func TestAccessible(t *testing.T) {
	p := newTestPolicy()

	tests := []struct {
		uri        string
		accessible bool
	}{
		{"https://core.ac.uk/download/12345.pdf", true},
		{"https://law.yale.edu/paper.pdf", true},
		{"https://www.jstor.org/stable/1234", false},
		{"https://link.springer.com/article/10.1007/x", false},
		{"https://www.sciencedirect.com/science/article/pii/X", false},
		{"https://randomjournal.com/article/1", false}, // no allow pattern matches
		{"https://www.hrw.org/report/2025/x", true},
	}

	for _, tt := range tests {
		if got := p.Accessible(tt.uri); got != tt.accessible {
			t.Errorf("Accessible(%q) = %v, want %v", tt.uri, got, tt.accessible)
		}
	}
}

// A URL on a trusted academic domain that matches a paywall block pattern
// must be excluded before any model call.
func TestFilter_PaywallBlocksTrustedAcademicDomain(t *testing.T) {
	p := newTestPolicy()

	candidates := []model.Candidate{
		{Title: "Abstract only", URI: "https://arxiv.org/abs/2401.00001"},
		{Title: "Full text", URI: "https://arxiv.org/pdf/2401.00001"},
	}

	trusted := p.Filter(candidates, model.CategoryNexus)
	if len(trusted) != 1 {
		t.Fatalf("expected 1 trusted candidate, got %d", len(trusted))
	}
	if trusted[0].URI != "https://arxiv.org/pdf/2401.00001" {
		t.Errorf("unexpected trusted URI: %s", trusted[0].URI)
	}
}

func TestFilter_LegalSkipsAccessibilityCheck(t *testing.T) {
	p := newTestPolicy()

	// A legal URL with an abstract-looking path still passes: accessibility
	// only applies to non-legal categories.
	candidates := []model.Candidate{
		{Title: "Treaty", URI: "https://treaties.un.org/doc/abstract/x"},
	}

	trusted := p.Filter(candidates, model.CategoryLegalFramework)
	if len(trusted) != 1 {
		t.Fatalf("expected 1 trusted candidate, got %d", len(trusted))
	}
}

func TestFilter_DedupAndOrder(t *testing.T) {
	p := newTestPolicy()

	candidates := []model.Candidate{
		{Title: "A", URI: "https://ohchr.org/a"},
		{Title: "Blog", URI: "https://example-blog.com/y"},
		{Title: "B", URI: "https://un.org/b"},
		{Title: "A again", URI: "https://ohchr.org/a"},
	}

	trusted := p.Filter(candidates, model.CategoryLegalFramework)
	if len(trusted) != 2 {
		t.Fatalf("expected 2 trusted candidates, got %d", len(trusted))
	}
	if trusted[0].URI != "https://ohchr.org/a" || trusted[1].URI != "https://un.org/b" {
		t.Errorf("order not preserved: %+v", trusted)
	}
	if trusted[0].Title != "A" {
		t.Errorf("first occurrence should win, got title %q", trusted[0].Title)
	}
}

// The policy is pure: repeated classification of the same input always
// yields the same verdict.
func TestPolicy_Deterministic(t *testing.T) {
	p := newTestPolicy()

	uris := []string{
		"https://ohchr.org/x",
		"https://example-blog.com/y",
		"https://arxiv.org/pdf/1",
		"https://www.jstor.org/stable/1",
	}
	categories := []model.RequestCategory{
		model.CategoryLegalFramework,
		model.CategoryFieldStatus,
		model.CategoryNexus,
	}

	for _, uri := range uris {
		for _, cat := range categories {
			first := p.Trusted(uri, cat)
			for i := 0; i < 10; i++ {
				if p.Trusted(uri, cat) != first {
					t.Fatalf("Trusted(%q, %s) is not deterministic", uri, cat)
				}
			}
		}
	}
}
