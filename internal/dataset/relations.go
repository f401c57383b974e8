package dataset

import (
	"sort"

	"github.com/hyperjump/kue/internal/models"
)

// EmailsBetween returns the emails exchanged by a and b, in declaration order.
func (d *Dataset) EmailsBetween(a, b string) []models.EmailRecord {
	var out []models.EmailRecord
	for _, e := range d.emails {
		if e.Between(a, b) {
			out = append(out, e)
		}
	}
	return out
}

// MeetingsWith returns the meetings both a and b attended, in declaration order.
func (d *Dataset) MeetingsWith(a, b string) []models.MeetingRecord {
	var out []models.MeetingRecord
	for i := range d.meetings {
		m := &d.meetings[i]
		if m.Has(a) && m.Has(b) {
			out = append(out, *m)
		}
	}
	return out
}

// HasContact reports whether a and b exchanged an email or shared a meeting.
func (d *Dataset) HasContact(a, b string) bool {
	for i := range d.emails {
		if d.emails[i].Between(a, b) {
			return true
		}
	}
	for i := range d.meetings {
		if d.meetings[i].Has(a) && d.meetings[i].Has(b) {
			return true
		}
	}
	return false
}

// InteractionCount is the number of emails plus shared meetings between a and b.
func (d *Dataset) InteractionCount(a, b string) int {
	return len(d.EmailsBetween(a, b)) + len(d.MeetingsWith(a, b))
}

// LastInteraction returns the latest email or shared meeting date between a and b.
func (d *Dataset) LastInteraction(a, b string) (models.Date, bool) {
	var (
		last  models.Date
		found bool
	)
	for _, e := range d.EmailsBetween(a, b) {
		if !found || e.Date.After(last.Time) {
			last, found = e.Date, true
		}
	}
	for _, m := range d.MeetingsWith(a, b) {
		if !found || m.Date.After(last.Time) {
			last, found = m.Date, true
		}
	}
	return last, found
}

// CompanyIDsOf returns the company id of every work-history row of personID.
func (d *Dataset) CompanyIDsOf(personID string) []string {
	idx := d.workByPerson[personID]
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = d.work[j].CompanyID
	}
	return out
}

// SharedCompanyIDs returns a's company ids that also appear in b's work history.
// An id is repeated once per matching row of a.
func (d *Dataset) SharedCompanyIDs(a, b string) []string {
	bIDs := make(map[string]struct{})
	for _, id := range d.CompanyIDsOf(b) {
		bIDs[id] = struct{}{}
	}
	var out []string
	for _, id := range d.CompanyIDsOf(a) {
		if _, ok := bIDs[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// SharedCompanies resolves SharedCompanyIDs, dropping ids with no company record.
func (d *Dataset) SharedCompanies(a, b string) []models.Company {
	var out []models.Company
	for _, id := range d.SharedCompanyIDs(a, b) {
		if c, ok := d.Company(id); ok {
			out = append(out, c)
		}
	}
	return out
}

// SharedCompanyNames returns the names of SharedCompanies.
func (d *Dataset) SharedCompanyNames(a, b string) []string {
	companies := d.SharedCompanies(a, b)
	out := make([]string, 0, len(companies))
	for _, c := range companies {
		if c.Name != "" {
			out = append(out, c.Name)
		}
	}
	return out
}

// SortEmailsNewestFirst orders emails by date descending, keeping ties in place.
func SortEmailsNewestFirst(emails []models.EmailRecord) {
	sort.SliceStable(emails, func(i, j int) bool {
		return emails[i].Date.After(emails[j].Date.Time)
	})
}

// SortMeetingsNewestFirst orders meetings by date descending, keeping ties in place.
func SortMeetingsNewestFirst(meetings []models.MeetingRecord) {
	sort.SliceStable(meetings, func(i, j int) bool {
		return meetings[i].Date.After(meetings[j].Date.Time)
	})
}
