// Package models defines the relationship dataset records, derived search
// results, and request/response shapes shared by the engine, API and CLI.
package models

// Person is someone in the relationship graph.
type Person struct {
	ID      string `json:"id" yaml:"id" validate:"required"`
	Name    string `json:"name" yaml:"name" validate:"required"`
	Title   string `json:"title" yaml:"title"`
	Company string `json:"company" yaml:"company"`
	Email   string `json:"email" yaml:"email"`
}

// Company is an employer referenced by work history.
type Company struct {
	ID     string `json:"id" yaml:"id" validate:"required"`
	Name   string `json:"name" yaml:"name" validate:"required"`
	Domain string `json:"domain" yaml:"domain"`
}

// EmailRecord is one message between two people.
type EmailRecord struct {
	ID      string `json:"id" yaml:"id" validate:"required"`
	From    string `json:"from" yaml:"from" validate:"required"`
	To      string `json:"to" yaml:"to" validate:"required"`
	Date    Date   `json:"date" yaml:"date"`
	Subject string `json:"subject" yaml:"subject"`
}

// Between reports whether the email went from a to b or from b to a.
func (e *EmailRecord) Between(a, b string) bool {
	return (e.From == a && e.To == b) || (e.From == b && e.To == a)
}

// MeetingRecord is a meeting with an ordered attendee list.
type MeetingRecord struct {
	ID        string   `json:"id" yaml:"id" validate:"required"`
	Title     string   `json:"title" yaml:"title"`
	Date      Date     `json:"date" yaml:"date"`
	Attendees []string `json:"attendees" yaml:"attendees"`
}

// Has reports whether id attended the meeting.
func (m *MeetingRecord) Has(id string) bool {
	for _, a := range m.Attendees {
		if a == id {
			return true
		}
	}
	return false
}

// WorkHistory is one stint of a person at a company. A nil EndYear means ongoing.
type WorkHistory struct {
	PersonID  string `json:"person_id" yaml:"person_id" validate:"required"`
	CompanyID string `json:"company_id" yaml:"company_id" validate:"required"`
	Role      string `json:"role" yaml:"role"`
	StartYear int    `json:"start_year" yaml:"start_year"`
	EndYear   *int   `json:"end_year,omitempty" yaml:"end_year,omitempty"`
}

// EndOr returns the end year, or ongoing when the stint has not ended.
func (w *WorkHistory) EndOr(ongoing int) int {
	if w.EndYear == nil {
		return ongoing
	}
	return *w.EndYear
}

// Records is the serialisable form of a relationship dataset.
type Records struct {
	CurrentUser *Person         `json:"current_user,omitempty" yaml:"current_user,omitempty"`
	People      []Person        `json:"people" yaml:"people" validate:"dive"`
	Companies   []Company       `json:"companies" yaml:"companies" validate:"dive"`
	Emails      []EmailRecord   `json:"emails" yaml:"emails" validate:"dive"`
	Meetings    []MeetingRecord `json:"meetings" yaml:"meetings" validate:"dive"`
	WorkHistory []WorkHistory   `json:"work_history" yaml:"work_history" validate:"dive"`
}

// Hubs names the two people all classification is measured against.
type Hubs struct {
	CurrentUserID string `json:"current_user_id" yaml:"current_user_id"`
	CofounderID   string `json:"cofounder_id" yaml:"cofounder_id"`
	// CofounderName is used verbatim in reason text.
	CofounderName string `json:"cofounder_name" yaml:"cofounder_name"`
}

// IsHub reports whether id is the current user or the co-founder.
func (h Hubs) IsHub(id string) bool {
	return id == h.CurrentUserID || id == h.CofounderID
}
