// Package trust implements the domain-trust and accessibility policy that
// decides which grounding-surfaced URLs may be offered to the extraction
// step. The policy is pure and stateless: it never touches the network and
// the same (uri, category) always yields the same verdict.
package trust

import (
	"net/url"
	"strings"

	"github.com/veridex/veridex/internal/model"
)

// Policy classifies candidate URLs per request category
type Policy struct {
	legal    map[string]bool
	status   map[string]bool
	academic map[string]bool
	allow    []string
	block    []string
}

// NewPolicy builds a policy from configuration
func NewPolicy(cfg *model.TrustConfig) *Policy {
	if cfg == nil {
		cfg = &model.DefaultConfig().Trust
	}

	p := &Policy{
		legal:    make(map[string]bool),
		status:   make(map[string]bool),
		academic: make(map[string]bool),
	}

	for _, d := range cfg.LegalDomains {
		p.legal[strings.ToLower(d)] = true
	}
	for _, d := range cfg.StatusDomains {
		p.status[strings.ToLower(d)] = true
	}
	for _, d := range cfg.AcademicDomains {
		p.academic[strings.ToLower(d)] = true
	}
	for _, pat := range cfg.AccessAllow {
		p.allow = append(p.allow, strings.ToLower(pat))
	}
	for _, pat := range cfg.AccessBlock {
		p.block = append(p.block, strings.ToLower(pat))
	}

	return p
}

// Trusted reports whether the URL's domain is on the allow-list for the
// given request category
func (p *Policy) Trusted(rawURL string, category model.RequestCategory) bool {
	host := hostOf(rawURL)
	if host == "" {
		return false
	}

	switch category {
	case model.CategoryFieldStatus:
		return matchDomain(host, p.status)
	case model.CategoryNexus:
		if matchDomain(host, p.academic) {
			return true
		}
		// University and government research domains
		return hasGenericSuffix(host, ".edu") || strings.Contains(host, ".ac.") ||
			hasGenericSuffix(host, ".gov") || strings.Contains(host, ".gov.")
	default: // legal framework
		if matchDomain(host, p.legal) {
			return true
		}
		// Government, legislative and intergovernmental suffixes
		return hasGenericSuffix(host, ".gov") || strings.Contains(host, ".gov.") ||
			hasGenericSuffix(host, ".int") ||
			strings.Contains(host, ".gouv.") || strings.Contains(host, ".gob.")
	}
}

// Accessible applies the open-access heuristic for field-status and nexus
// sources: at least one allow pattern must match and no block pattern may
// match. Legal sources never reach this check; official domains are assumed
// openly accessible.
func (p *Policy) Accessible(rawURL string) bool {
	lower := strings.ToLower(rawURL)

	for _, pat := range p.block {
		if strings.Contains(lower, pat) {
			return false
		}
	}
	for _, pat := range p.allow {
		if strings.Contains(lower, pat) {
			return true
		}
	}
	return false
}

// Filter returns the trusted candidate list for a category: the ordered,
// URI-deduplicated subset of candidates that passed the policy. Order is
// first occurrence wins so index references stay reproducible within a
// request.
func (p *Policy) Filter(candidates []model.Candidate, category model.RequestCategory) []model.Candidate {
	seen := make(map[string]bool)
	var trusted []model.Candidate

	for _, c := range candidates {
		if c.URI == "" || seen[c.URI] {
			continue
		}
		if !p.Trusted(c.URI, category) {
			continue
		}
		if category != model.CategoryLegalFramework && !p.Accessible(c.URI) {
			continue
		}
		seen[c.URI] = true
		trusted = append(trusted, c)
	}

	return trusted
}

// hostOf extracts the lowercased host, without port, from a URL
func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Host)
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}
	return strings.TrimPrefix(host, "www.")
}

// matchDomain reports whether host equals a listed domain or is a
// subdomain of one
func matchDomain(host string, domains map[string]bool) bool {
	if domains[host] {
		return true
	}
	for d := range domains {
		if strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// hasGenericSuffix matches top-level suffixes like .gov or .edu
func hasGenericSuffix(host, suffix string) bool {
	return strings.HasSuffix(host, suffix)
}
