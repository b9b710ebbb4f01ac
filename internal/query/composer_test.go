package query

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/veridex/veridex/internal/model"
)

var (
	expression = model.Right{ID: "19", Name: "Freedom of Opinion and Expression", Summary: "Everyone has the right to freedom of opinion and expression through any media."}
	education  = model.Right{ID: "26", Name: "Right to Education", Summary: "Everyone has the right to education."}
)

func TestLegal_International(t *testing.T) {
	c := NewComposer()
	got := c.Legal(expression, model.ScopeInternational, "")

	for _, want := range []string{expression.Name, "United Nations", "ohchr.org"} {
		if !strings.Contains(got, want) {
			t.Errorf("international instruction missing %q", want)
		}
	}
}

func TestLegal_RegionalBranches(t *testing.T) {
	c := NewComposer()

	tests := []struct {
		subScope string
		want     string
	}{
		{"Europe", "European Convention on Human Rights"},
		{"europe", "echr.coe.int"},
		{"Africa", "African Charter"},
		{"Americas", "Inter-American"},
		{"Latin America", "Inter-American"},
		{"Asia", "ASEAN"},
		{"", "European, African and Inter-American"},
		{"Antarctica", "European, African and Inter-American"},
	}

	for _, tt := range tests {
		got := c.Legal(expression, model.ScopeRegional, tt.subScope)
		if !strings.Contains(got, tt.want) {
			t.Errorf("regional(%q) missing %q in:\n%s", tt.subScope, tt.want, got)
		}
	}
}

func TestLegal_National(t *testing.T) {
	c := NewComposer()

	named := c.Legal(expression, model.ScopeNational, "Kenya")
	if !strings.Contains(named, "Kenya") || !strings.Contains(named, "constitutional") {
		t.Errorf("national instruction should name the country and constitutional text:\n%s", named)
	}

	comparative := c.Legal(expression, model.ScopeNational, "")
	if !strings.Contains(comparative, "comparative") {
		t.Errorf("country-less national instruction should ask for comparative examples:\n%s", comparative)
	}
}

func TestFieldStatus_YearRangeAndOrgs(t *testing.T) {
	c := NewComposer()
	got := c.FieldStatus(expression, "Sudan")

	year := time.Now().Year()
	if !strings.Contains(got, fmt.Sprintf("%d-%d", year-2, year)) {
		t.Errorf("status instruction missing current year range:\n%s", got)
	}
	for _, org := range []string{"hrw.org", "amnesty.org", "ohchr.org", "freedomhouse.org"} {
		if !strings.Contains(got, org) {
			t.Errorf("status instruction missing organization %q", org)
		}
	}
	if !strings.Contains(got, "in Sudan") {
		t.Errorf("status instruction missing sub-scope:\n%s", got)
	}

	world := c.FieldStatus(expression, "")
	if !strings.Contains(world, "worldwide") {
		t.Errorf("status instruction without sub-scope should be world-level:\n%s", world)
	}
}

func TestNexus_BothRightsAndExclusions(t *testing.T) {
	c := NewComposer()
	got := c.Nexus(expression, education, "")

	if !strings.Contains(got, expression.Name) || !strings.Contains(got, education.Name) {
		t.Errorf("nexus instruction must name both rights:\n%s", got)
	}
	for _, want := range []string{"open-access", "Exclude paywalled", "abstract-only"} {
		if !strings.Contains(got, want) {
			t.Errorf("nexus instruction missing %q", want)
		}
	}
}

func TestCompose_Dispatch(t *testing.T) {
	c := NewComposer()

	legal := c.Compose(model.CategoryLegalFramework, []model.Right{expression}, model.ScopeInternational, "")
	if !strings.Contains(legal, "legal instruments") {
		t.Errorf("legal dispatch produced wrong template:\n%s", legal)
	}

	status := c.Compose(model.CategoryFieldStatus, []model.Right{expression}, model.ScopeInternational, "")
	if !strings.Contains(status, "reports") {
		t.Errorf("status dispatch produced wrong template:\n%s", status)
	}

	nexus := c.Compose(model.CategoryNexus, []model.Right{expression, education}, model.ScopeInternational, "")
	if !strings.Contains(nexus, education.Name) {
		t.Errorf("nexus dispatch produced wrong template:\n%s", nexus)
	}
}
