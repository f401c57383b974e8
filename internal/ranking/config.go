package ranking

import "sort"

// RankingConfig holds all configuration for relevance scoring.
type RankingConfig struct {
	// Per-item weights
	RecentEmailWeight   int `yaml:"recent_email_weight"`   // default: 15
	EmailWeight         int `yaml:"email_weight"`          // default: 5
	MeetingWeight       int `yaml:"meeting_weight"`        // default: 20
	SharedCompanyWeight int `yaml:"shared_company_weight"` // default: 25

	// RecentWindowDays bounds the "recent emails" count.
	RecentWindowDays int `yaml:"recent_window_days"` // default: 90

	// RecencyTiers award a one-off bonus by days since the last interaction.
	// The first tier whose MaxDays is not exceeded wins.
	RecencyTiers []RecencyTier `yaml:"recency_tiers"` // default: 14→30, 30→20, 90→10

	// OngoingYear stands in for a missing end year in overlap arithmetic.
	OngoingYear int `yaml:"ongoing_year"` // default: 2025
}

// RecencyTier is one step of the recency bonus.
type RecencyTier struct {
	MaxDays float64 `yaml:"max_days"`
	Bonus   int     `yaml:"bonus"`
}

// DefaultRankingConfig returns the default ranking configuration.
func DefaultRankingConfig() *RankingConfig {
	return &RankingConfig{
		RecentEmailWeight:   15,
		EmailWeight:         5,
		MeetingWeight:       20,
		SharedCompanyWeight: 25,

		RecentWindowDays: 90,

		RecencyTiers: []RecencyTier{
			{MaxDays: 14, Bonus: 30},
			{MaxDays: 30, Bonus: 20},
			{MaxDays: 90, Bonus: 10},
		},

		OngoingYear: 2025,
	}
}

// ApplyDefaults fills in zero values with defaults and orders the recency tiers.
func (c *RankingConfig) ApplyDefaults() {
	defaults := DefaultRankingConfig()

	if c.RecentEmailWeight == 0 {
		c.RecentEmailWeight = defaults.RecentEmailWeight
	}
	if c.EmailWeight == 0 {
		c.EmailWeight = defaults.EmailWeight
	}
	if c.MeetingWeight == 0 {
		c.MeetingWeight = defaults.MeetingWeight
	}
	if c.SharedCompanyWeight == 0 {
		c.SharedCompanyWeight = defaults.SharedCompanyWeight
	}
	if c.RecentWindowDays == 0 {
		c.RecentWindowDays = defaults.RecentWindowDays
	}
	if len(c.RecencyTiers) == 0 {
		c.RecencyTiers = defaults.RecencyTiers
	}
	if c.OngoingYear == 0 {
		c.OngoingYear = defaults.OngoingYear
	}

	sort.SliceStable(c.RecencyTiers, func(i, j int) bool {
		return c.RecencyTiers[i].MaxDays < c.RecencyTiers[j].MaxDays
	})
}
