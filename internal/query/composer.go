// Package query builds the category-specific search instructions sent to
// the search-augmented generation call.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/veridex/veridex/internal/model"
)

// Composer produces natural-language search instructions. It only produces
// text; it has no failure mode.
type Composer struct{}

// NewComposer creates a composer
func NewComposer() *Composer {
	return &Composer{}
}

// Compose builds the instruction for a request. rights carries one element
// for legal-framework and field-status requests and two for nexus requests.
func (c *Composer) Compose(category model.RequestCategory, rights []model.Right, scope model.Scope, subScope string) string {
	switch category {
	case model.CategoryFieldStatus:
		return c.FieldStatus(rights[0], subScope)
	case model.CategoryNexus:
		return c.Nexus(rights[0], rights[1], subScope)
	default:
		return c.Legal(rights[0], scope, subScope)
	}
}

// Legal builds the legal-framework instruction, branching on scope
func (c *Composer) Legal(right model.Right, scope model.Scope, subScope string) string {
	switch scope {
	case model.ScopeRegional:
		return c.legalRegional(right, subScope)
	case model.ScopeNational:
		return c.legalNational(right, subScope)
	default:
		return fmt.Sprintf(
			"Find the international legal instruments that protect the human right %q (%s). "+
				"Focus on United Nations treaties, covenants and declarations: cite the specific instrument, "+
				"article number and adoption year. Prefer official UN sources such as un.org, ohchr.org and "+
				"the UN treaty collection.",
			right.Name, right.Summary)
	}
}

func (c *Composer) legalRegional(right model.Right, subScope string) string {
	region := normalizeRegion(subScope)
	switch region {
	case "europe":
		return fmt.Sprintf(
			"Find the European legal framework protecting the human right %q. "+
				"Focus on the European Convention on Human Rights, its protocols, and European Court of "+
				"Human Rights case law. Cite specific articles and leading judgments. Prefer official sources "+
				"such as echr.coe.int, coe.int and eur-lex.europa.eu.",
			right.Name)
	case "africa":
		return fmt.Sprintf(
			"Find the African legal framework protecting the human right %q. "+
				"Focus on the African Charter on Human and Peoples' Rights and decisions of the African "+
				"Commission and the African Court. Cite specific articles and communications. Prefer official "+
				"sources such as achpr.org and african-court.org.",
			right.Name)
	case "americas":
		return fmt.Sprintf(
			"Find the Inter-American legal framework protecting the human right %q. "+
				"Focus on the American Convention on Human Rights and jurisprudence of the Inter-American "+
				"Court and Commission. Cite specific articles and cases. Prefer official sources such as "+
				"oas.org and corteidh.or.cr.",
			right.Name)
	case "asia":
		return fmt.Sprintf(
			"Find the Asian regional instruments relevant to the human right %q. "+
				"Focus on the ASEAN Human Rights Declaration and any sub-regional mechanisms, noting that Asia "+
				"lacks a binding regional court. Cite specific provisions. Prefer official sources such as "+
				"asean.org and ohchr.org.",
			right.Name)
	default:
		return fmt.Sprintf(
			"Find the regional legal frameworks protecting the human right %q across the European, "+
				"African and Inter-American human-rights systems. For each system cite the founding treaty, the "+
				"relevant article and one leading case. Prefer official treaty-body and court websites.",
			right.Name)
	}
}

func (c *Composer) legalNational(right model.Right, subScope string) string {
	country := strings.TrimSpace(subScope)
	if country == "" {
		return fmt.Sprintf(
			"Find comparative examples of how national constitutions and domestic statutes protect the "+
				"human right %q across several countries. Cite constitutional articles or named statutes with "+
				"their year. Prefer official government, legislative and court websites.",
			right.Name)
	}
	return fmt.Sprintf(
		"Find the national legal framework protecting the human right %q in %s. "+
			"Focus on the constitutional text, domestic statutes and leading domestic case law. Cite the "+
			"specific constitutional article or statute name and year. Prefer official government and "+
			"legislative sources for %s.",
		right.Name, country, country)
}

// FieldStatus builds the status-report instruction restricted to the named
// monitoring organizations
func (c *Composer) FieldStatus(right model.Right, subScope string) string {
	year := time.Now().Year()
	where := "worldwide"
	if s := strings.TrimSpace(subScope); s != "" {
		where = "in " + s
	}
	return fmt.Sprintf(
		"Find the most recent (%d-%d) human-rights reports on the status of %q %s. "+
			"Restrict the search to reports published by the Office of the UN High Commissioner for Human "+
			"Rights (ohchr.org), Human Rights Watch (hrw.org), Amnesty International (amnesty.org), Freedom "+
			"House (freedomhouse.org) and FIDH (fidh.org). Report explicit findings and statistics with the "+
			"publication year of each report.",
		year-2, year, right.Name, where)
}

// Nexus builds the academic instruction requesting work that discusses both
// rights together
func (c *Composer) Nexus(a, b model.Right, subScope string) string {
	focus := ""
	if s := strings.TrimSpace(subScope); s != "" {
		focus = fmt.Sprintf(" with attention to %s", s)
	}
	return fmt.Sprintf(
		"Find peer-reviewed or open-access academic research that explicitly discusses the relationship "+
			"between the human rights %q and %q together%s. "+
			"Only consider sources that are freely readable in full: open-access journals, university "+
			"repositories, preprint servers (arxiv.org, ssrn.com, osf.io) and indexes such as doaj.org and "+
			"core.ac.uk. Exclude paywalled publishers (JSTOR, Springer, Elsevier, Wiley, Taylor & Francis) "+
			"and abstract-only or citation-only pages. Summarize each work's central finding on the "+
			"connection between the two rights.",
		a.Name, b.Name, focus)
}

// normalizeRegion maps a free-text sub-scope to a known region key
func normalizeRegion(subScope string) string {
	s := strings.ToLower(strings.TrimSpace(subScope))
	switch {
	case s == "":
		return ""
	case strings.Contains(s, "europ"):
		return "europe"
	case strings.Contains(s, "afric"):
		return "africa"
	case strings.Contains(s, "america") || strings.Contains(s, "inter-american"):
		return "americas"
	case strings.Contains(s, "asia") || strings.Contains(s, "asean"):
		return "asia"
	default:
		return ""
	}
}
