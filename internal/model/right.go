package model

// Right is an immutable catalog entry for a human-rights article.
// The catalog is loaded once at startup and never mutated.
type Right struct {
	ID       string        `json:"id"`       // Stable short identifier (e.g., "19")
	Name     string        `json:"name"`     // Display name (e.g., "Freedom of Opinion and Expression")
	Summary  string        `json:"summary"`  // One-sentence summary
	Category RightCategory `json:"category"` // Broad classification
}

// RightCategory classifies a right into one of the classic groupings
type RightCategory string

const (
	RightCivil     RightCategory = "civil"
	RightPolitical RightCategory = "political"
	RightEconomic  RightCategory = "economic"
	RightSocial    RightCategory = "social"
	RightCultural  RightCategory = "cultural"
)

// Scope narrows an evidence request to a jurisdictional level
type Scope string

const (
	ScopeInternational Scope = "international"
	ScopeRegional      Scope = "regional"
	ScopeNational      Scope = "national"
)

// ParseScope normalizes a user-supplied scope string
func ParseScope(s string) Scope {
	switch s {
	case "regional", "Regional":
		return ScopeRegional
	case "national", "National":
		return ScopeNational
	default:
		return ScopeInternational
	}
}
