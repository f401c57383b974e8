package models

import "time"

// SignalType names a kind of community signal.
type SignalType string

const (
	SignalPeopleKnow         SignalType = "people_know"
	SignalCommonIntro        SignalType = "common_intro"
	SignalFrequentConnection SignalType = "frequent_connection"
)

// CommunitySignal is a short line of community context about a person or company.
type CommunitySignal struct {
	Type    SignalType `json:"type"`
	Message string     `json:"message"`
}

// CommunityPath says whether someone in the circle has reached a target before.
type CommunityPath struct {
	TargetID    string `json:"target_id"`
	Available   bool   `json:"available"`
	Message     string `json:"message"`
	Respondents int    `json:"respondents,omitempty"`
}

// IntroStatus is the state of a community intro request.
type IntroStatus string

const (
	IntroOpen      IntroStatus = "open"
	IntroResponded IntroStatus = "responded"
)

// IntroRequestResult is the outcome of asking the circle for an intro.
type IntroRequestResult struct {
	RequestID string      `json:"request_id"`
	TargetID  string      `json:"target_id"`
	Status    IntroStatus `json:"status"`
	Message   string      `json:"message"`

	// RequestedAt is set when the request is logged.
	RequestedAt time.Time `json:"requested_at,omitempty"`
}

// TrustedCircle describes the community the current user belongs to.
type TrustedCircle struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	MemberCount int    `json:"member_count" yaml:"member_count"`
	Description string `json:"description" yaml:"description"`
}
