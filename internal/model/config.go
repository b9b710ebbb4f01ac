package model

import "time"

// Config is the complete runtime configuration
type Config struct {
	LLM      LLMConfig      `yaml:"llm" mapstructure:"llm"`
	Trust    TrustConfig    `yaml:"trust" mapstructure:"trust"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Verify   VerifyConfig   `yaml:"verify" mapstructure:"verify"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Fallback FallbackConfig `yaml:"fallback" mapstructure:"fallback"`
}

// LLMConfig holds the model endpoint configuration
type LLMConfig struct {
	// APIKey for the OpenAI-compatible endpoint (OPENAI_API_KEY)
	APIKey string `yaml:"-" mapstructure:"api_key"`

	// BaseURL overrides the endpoint for OpenAI-compatible servers
	BaseURL string `yaml:"base_url,omitempty" mapstructure:"base_url"`

	// SearchModel is the search-augmented generation model (call A)
	SearchModel string `yaml:"search_model" mapstructure:"search_model"`

	// ExtractModel is the schema-constrained extraction model (call B)
	ExtractModel string `yaml:"extract_model" mapstructure:"extract_model"`

	// MaxTokens limits response length. Model calls carry no timeout of
	// their own; the caller's context sets any deadline.
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// TrustConfig holds the domain allow-lists and accessibility patterns.
// Domain entries match the URL host exactly or as a dot-separated suffix.
// Access patterns are case-insensitive substrings of the full URL.
type TrustConfig struct {
	LegalDomains    []string `yaml:"legal_domains" mapstructure:"legal_domains"`
	StatusDomains   []string `yaml:"status_domains" mapstructure:"status_domains"`
	AcademicDomains []string `yaml:"academic_domains" mapstructure:"academic_domains"`
	AccessAllow     []string `yaml:"access_allow" mapstructure:"access_allow"`
	AccessBlock     []string `yaml:"access_block" mapstructure:"access_block"`
}

// ServerConfig holds the HTTP API settings
type ServerConfig struct {
	Addr    string        `yaml:"addr" mapstructure:"addr"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// VerifyConfig holds the citation liveness checker settings
type VerifyConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Workers       int           `yaml:"workers" mapstructure:"workers"`
	RatePerSecond float64       `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	Burst         int           `yaml:"burst" mapstructure:"burst"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
}

// CacheConfig controls the per-process semantic-match memo
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// FallbackConfig names the manual research portals used for degraded results
type FallbackConfig struct {
	LegalPortal  string `yaml:"legal_portal" mapstructure:"legal_portal"`
	StatusPortal string `yaml:"status_portal" mapstructure:"status_portal"`
	NexusPortal  string `yaml:"nexus_portal" mapstructure:"nexus_portal"`
}

// PortalFor returns the manual fallback portal for a request category
func (f FallbackConfig) PortalFor(category RequestCategory) string {
	switch category {
	case CategoryFieldStatus:
		return f.StatusPortal
	case CategoryNexus:
		return f.NexusPortal
	default:
		return f.LegalPortal
	}
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			SearchModel:  "gpt-4o-search-preview",
			ExtractModel: "gpt-4o-mini",
			MaxTokens:    2000,
		},
		Trust: TrustConfig{
			LegalDomains: []string{
				"un.org", "ohchr.org", "icj-cij.org", "icc-cpi.int", "ilo.org",
				"coe.int", "echr.coe.int", "europa.eu", "achpr.org",
				"african-court.org", "oas.org", "corteidh.or.cr", "asean.org",
				"refworld.org", "loc.gov", "legislation.gov.uk",
			},
			StatusDomains: []string{
				"ohchr.org", "hrw.org", "amnesty.org", "freedomhouse.org",
				"fidh.org", "omct.org", "frontlinedefenders.org",
			},
			AcademicDomains: []string{
				"doaj.org", "core.ac.uk", "arxiv.org", "ssrn.com", "osf.io",
				"scielo.org", "redalyc.org", "openedition.org", "persee.fr",
				"semanticscholar.org", "repository.un.org",
			},
			AccessAllow: []string{
				".edu", ".ac.", ".gov", "doaj.org", "core.ac.uk", "arxiv.org",
				"osf.io", "scielo", "redalyc", "openedition", "persee",
				"semanticscholar", "repository", "dspace", "handle.net",
				".pdf", "/pdf", "ohchr.org", "hrw.org", "amnesty.org",
				"freedomhouse.org", "fidh.org", "omct.org",
				"frontlinedefenders.org", "ssrn.com",
			},
			AccessBlock: []string{
				"jstor.org", "sciencedirect.com", "link.springer.com",
				"springer.com", "tandfonline.com", "onlinelibrary.wiley.com",
				"wiley.com", "academic.oup.com", "cambridge.org/core",
				"journals.sagepub.com", "brill.com", "heinonline.org",
				"/abs/", "/abstract", "/citation", "citedby",
			},
		},
		Server: ServerConfig{
			Addr:    ":8080",
			Timeout: 3 * time.Minute,
		},
		Verify: VerifyConfig{
			Timeout:       10 * time.Second,
			Workers:       10,
			RatePerSecond: 2,
			Burst:         4,
			UserAgent:     "Veridex/0.1 (+https://github.com/veridex/veridex)",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Fallback: FallbackConfig{
			LegalPortal:  "https://www.ohchr.org/en/instruments-listings",
			StatusPortal: "https://www.ohchr.org/en/countries",
			NexusPortal:  "https://www.doaj.org/",
		},
	}
}
