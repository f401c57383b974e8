package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Source is a data connector a connection can be attributed to.
type Source string

const (
	SourceEmail    Source = "email"
	SourceCalendar Source = "calendar"
	SourceFriends  Source = "friends"
)

// SearchQuery represents a connection search request.
type SearchQuery struct {
	Query        string   `json:"query" validate:"max=512"`
	Limit        int      `json:"limit,omitempty" validate:"gte=0"`
	Sources      []Source `json:"sources,omitempty" validate:"dive,oneof=email calendar friends"`
	FuzzyEnabled bool     `json:"fuzzy_enabled,omitempty"` // typo-tolerant fallback when nothing matches exactly
}

// Validate checks field constraints. A blank query is valid and yields no results.
func (q *SearchQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("invalid search query: %w", err)
	}
	return nil
}

// ApplyLimits sets a default limit when unset and caps it at maxLimit.
func (q *SearchQuery) ApplyLimits(defaultLimit, maxLimit int) {
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if maxLimit > 0 && q.Limit > maxLimit {
		q.Limit = maxLimit
	}
}

// Normalized returns the lowercased, trimmed query text.
func (q *SearchQuery) Normalized() string {
	return strings.ToLower(strings.TrimSpace(q.Query))
}

// IntroDraftRequest asks for an intro message from connector about target.
type IntroDraftRequest struct {
	ConnectorID string `json:"connector_id" validate:"required"`
	TargetID    string `json:"target_id" validate:"required"`
}

// Validate checks that both ids are present.
func (r *IntroDraftRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid intro draft request: %w", err)
	}
	return nil
}

// ValidateRecords checks required fields on every record.
func ValidateRecords(r *Records) error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid records: %w", err)
	}
	return nil
}

// IsValidationError reports whether err came from request validation.
func IsValidationError(err error) bool {
	var ve validator.ValidationErrors
	return errors.As(err, &ve)
}
