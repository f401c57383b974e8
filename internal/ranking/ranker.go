// Package ranking scores how relevant a person is to the current user and
// explains the score.
package ranking

import (
	"time"

	"github.com/hyperjump/kue/internal/models"
)

// Explainer signal names, as shown next to a ranked result.
const (
	SignalRecency       = "recency"
	SignalFrequency     = "frequency"
	SignalSharedContext = "shared_context"
	SignalDirectness    = "directness"
)

// Evidence is what the ranker knows about one person's relationship to the hubs.
type Evidence struct {
	// RecentEmails counts emails with the current user inside the recent window.
	RecentEmails int
	// TotalEmails counts all emails with the current user.
	TotalEmails int
	// SharedMeetings counts meetings attended by both the current user and the person.
	SharedMeetings int
	// SharedCompanies counts the current user's work-history rows at the person's companies.
	SharedCompanies int
	// LastInteraction is the latest email or meeting with either hub; nil when there is none.
	LastInteraction *models.Date
}

// Ranker turns Evidence into a relevance score.
type Ranker struct {
	config *RankingConfig
}

// NewRanker creates a new Ranker with the given configuration.
func NewRanker(config *RankingConfig) *Ranker {
	if config == nil {
		config = DefaultRankingConfig()
	}
	config.ApplyDefaults()

	return &Ranker{config: config}
}

// Config returns the effective configuration.
func (r *Ranker) Config() *RankingConfig {
	return r.config
}

// OngoingYear is the year used for work history without an end year.
func (r *Ranker) OngoingYear() int {
	return r.config.OngoingYear
}

// RecentCutoff is the earliest date counted as recent relative to now.
func (r *Ranker) RecentCutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -r.config.RecentWindowDays)
}

// IsRecent reports whether d falls inside the recent window.
func (r *Ranker) IsRecent(d models.Date, now time.Time) bool {
	return !d.Before(r.RecentCutoff(now))
}

// RecencyBonus returns the bonus for an interaction daysAgo days in the past.
func (r *Ranker) RecencyBonus(daysAgo float64) int {
	for _, tier := range r.config.RecencyTiers {
		if daysAgo <= tier.MaxDays {
			return tier.Bonus
		}
	}
	return 0
}

// RankWithBreakdown returns the additive parts of the score.
func (r *Ranker) RankWithBreakdown(ev Evidence, now time.Time) *models.ScoreBreakdown {
	b := &models.ScoreBreakdown{
		RecentEmails:    ev.RecentEmails * r.config.RecentEmailWeight,
		TotalEmails:     ev.TotalEmails * r.config.EmailWeight,
		Meetings:        ev.SharedMeetings * r.config.MeetingWeight,
		SharedCompanies: ev.SharedCompanies * r.config.SharedCompanyWeight,
	}
	if ev.LastInteraction != nil {
		b.RecencyBonus = r.RecencyBonus(ev.LastInteraction.DaysSince(now))
	}
	return b
}

// Explain fills the explainer signals of b for a connection of type t.
// Directness is not part of the score; it only orders the explanation.
func Explain(b *models.ScoreBreakdown, t models.ConnectionType) {
	b.Signals = map[string]int{
		SignalRecency:       b.RecencyBonus,
		SignalFrequency:     b.RecentEmails + b.TotalEmails,
		SignalSharedContext: b.Meetings + b.SharedCompanies,
		SignalDirectness:    Directness(t),
	}
}

// Directness grades a connection type: direct 3, indirect 2, weak 1.
func Directness(t models.ConnectionType) int {
	switch t {
	case models.ConnectionDirect:
		return 3
	case models.ConnectionIndirect:
		return 2
	default:
		return 1
	}
}
