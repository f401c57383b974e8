package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestSearchQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   *SearchQuery
		wantErr bool
	}{
		{"empty query is allowed", &SearchQuery{Query: ""}, false},
		{"valid query", &SearchQuery{Query: "who do I know at Stripe?"}, false},
		{"negative limit", &SearchQuery{Query: "x", Limit: -1}, true},
		{"known sources", &SearchQuery{Query: "x", Sources: []Source{SourceEmail, SourceCalendar, SourceFriends}}, false},
		{"unknown source", &SearchQuery{Query: "x", Sources: []Source{"fax"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSearchQuery_ApplyLimits(t *testing.T) {
	q := &SearchQuery{Query: "x"}
	q.ApplyLimits(10, 100)
	if q.Limit != 10 {
		t.Errorf("default limit: got %d", q.Limit)
	}
	q.Limit = 500
	q.ApplyLimits(10, 100)
	if q.Limit != 100 {
		t.Errorf("expected limit capped at 100, got %d", q.Limit)
	}
}

func TestSearchQuery_Normalized(t *testing.T) {
	q := &SearchQuery{Query: "  Who do I know at STRIPE?  "}
	if got := q.Normalized(); got != "who do i know at stripe?" {
		t.Errorf("Normalized() = %q", got)
	}
}

func TestIntroDraftRequest_Validate(t *testing.T) {
	if err := (&IntroDraftRequest{ConnectorID: "p-10", TargetID: "p-4"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (&IntroDraftRequest{ConnectorID: "p-10"}).Validate(); err == nil {
		t.Error("expected error for missing target")
	}
}

func TestIsValidationError(t *testing.T) {
	err := (&SearchQuery{Query: "x", Limit: -1}).Validate()
	if !IsValidationError(err) {
		t.Errorf("expected a validation error, got %v", err)
	}
	if !IsValidationError(fmt.Errorf("search: %w", err)) {
		t.Error("wrapped validation errors should still be detected")
	}
	if IsValidationError(errors.New("boom")) || IsValidationError(nil) {
		t.Error("plain errors are not validation errors")
	}
}
