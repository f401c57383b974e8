package models

// ConnectionType classifies how close a person is to the current user.
type ConnectionType string

const (
	ConnectionDirect   ConnectionType = "direct"
	ConnectionIndirect ConnectionType = "indirect"
	ConnectionWeak     ConnectionType = "weak"
)

// Connection is a scored, explained relationship between the current user and a person.
type Connection struct {
	Person             Person          `json:"person"`
	Type               ConnectionType  `json:"type"`
	RelevanceScore     int             `json:"relevance_score"`
	Reasons            []string        `json:"reasons"`
	Path               []Person        `json:"path,omitempty"`
	SharedCompanies    []Company       `json:"shared_companies"`
	RecentInteractions int             `json:"recent_interactions"`
	LastInteraction    *Date           `json:"last_interaction,omitempty"`
	Breakdown          *ScoreBreakdown `json:"breakdown,omitempty"`
}

// ScoreBreakdown itemises the additive parts of a relevance score.
type ScoreBreakdown struct {
	RecentEmails    int `json:"recent_emails"`
	TotalEmails     int `json:"total_emails"`
	Meetings        int `json:"meetings"`
	SharedCompanies int `json:"shared_companies"`
	RecencyBonus    int `json:"recency_bonus"`
	// Signals groups the parts the way the ranking explainer presents them.
	Signals map[string]int `json:"signals,omitempty"`
}

// Total is the sum of all parts.
func (b *ScoreBreakdown) Total() int {
	return b.RecentEmails + b.TotalEmails + b.Meetings + b.SharedCompanies + b.RecencyBonus
}

// Strength grades a warm path.
type Strength string

const (
	StrengthStrong   Strength = "strong"
	StrengthModerate Strength = "moderate"
	StrengthWeak     Strength = "weak"
)

// Rank orders strengths strongest first.
func (s Strength) Rank() int {
	switch s {
	case StrengthStrong:
		return 0
	case StrengthModerate:
		return 1
	default:
		return 2
	}
}

// WarmPath is an introduction route to a target through one connector.
type WarmPath struct {
	Connector        Person   `json:"connector"`
	Target           Person   `json:"target"`
	Strength         Strength `json:"strength"`
	Reason           string   `json:"reason"`
	Confidence       string   `json:"confidence"`
	RelationshipType string   `json:"relationship_type"`
}
