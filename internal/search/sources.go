package search

import (
	"strings"

	"github.com/hyperjump/kue/internal/dataset"
	"github.com/hyperjump/kue/internal/models"
)

// currentUser returns the current user's record, from the dataset's own
// record when present and otherwise from the people list.
func currentUser(ds *dataset.Dataset, hubs models.Hubs) (models.Person, bool) {
	if self, ok := ds.Self(); ok && (self.ID == hubs.CurrentUserID || hubs.CurrentUserID == "") {
		return self, true
	}
	return ds.Person(hubs.CurrentUserID)
}

// emailDomain returns the part of email after the last "@", or "".
func emailDomain(email string) string {
	i := strings.LastIndex(email, "@")
	if i < 0 {
		return ""
	}
	return email[i+1:]
}

// isFriend reports whether p shares the current user's email domain or company.
func isFriend(user, p models.Person) bool {
	domain := emailDomain(user.Email)
	if domain == "" {
		return false
	}
	return strings.HasSuffix(p.Email, "@"+domain) || p.Company == user.Company
}

// Attribute lists the sources that explain how the current user knows p.
func Attribute(ds *dataset.Dataset, hubs models.Hubs, p models.Person) []models.Source {
	var sources []models.Source
	if len(ds.EmailsBetween(hubs.CurrentUserID, p.ID)) > 0 {
		sources = append(sources, models.SourceEmail)
	}
	if len(ds.MeetingsWith(hubs.CurrentUserID, p.ID)) > 0 {
		sources = append(sources, models.SourceCalendar)
	}
	if user, ok := currentUser(ds, hubs); ok && isFriend(user, p) {
		sources = append(sources, models.SourceFriends)
	}
	return sources
}

// FilterBySources keeps connections attributed to at least one selected source.
// Connections with no attributable source are always kept; an empty selection keeps all.
func FilterBySources(ds *dataset.Dataset, hubs models.Hubs, conns []*models.Connection, selected []models.Source) []*models.Connection {
	if len(selected) == 0 {
		return conns
	}
	want := make(map[models.Source]struct{}, len(selected))
	for _, s := range selected {
		want[s] = struct{}{}
	}

	out := conns[:0:0]
	for _, c := range conns {
		sources := Attribute(ds, hubs, c.Person)
		if len(sources) == 0 {
			out = append(out, c)
			continue
		}
		for _, s := range sources {
			if _, ok := want[s]; ok {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// CountSources counts the people each source contributes for the current user.
func CountSources(ds *dataset.Dataset, hubs models.Hubs) models.SourceCounts {
	user := hubs.CurrentUserID

	emailPeers := make(map[string]struct{})
	for _, e := range ds.Emails() {
		if e.From == user {
			emailPeers[e.To] = struct{}{}
		}
		if e.To == user {
			emailPeers[e.From] = struct{}{}
		}
	}

	calendarPeers := make(map[string]struct{})
	for i := range ds.Meetings() {
		m := &ds.Meetings()[i]
		if !m.Has(user) {
			continue
		}
		for _, a := range m.Attendees {
			if a != user {
				calendarPeers[a] = struct{}{}
			}
		}
	}

	counts := models.SourceCounts{Email: len(emailPeers), Calendar: len(calendarPeers)}
	if self, ok := currentUser(ds, hubs); ok {
		for _, p := range ds.People() {
			if isFriend(self, p) {
				counts.Friends++
			}
		}
	}
	return counts
}
