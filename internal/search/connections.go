package search

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hyperjump/kue/internal/dataset"
	"github.com/hyperjump/kue/internal/models"
	"github.com/hyperjump/kue/internal/ranking"
	"github.com/hyperjump/kue/pkg/utils"
)

// intentWords mark a "who do I know" query that falls back to everyone.
var intentWords = []string{"who", "anyone", "connected"}

// SearchConnections resolves query to people and returns their connections to
// the current user, most relevant first. A blank query returns nil.
func SearchConnections(ds *dataset.Dataset, hubs models.Hubs, ranker *ranking.Ranker, now time.Time, query string) []*models.Connection {
	return BuildConnections(ds, hubs, ranker, now, Candidates(ds, hubs, query))
}

// Candidates applies the query resolution rules in order and returns the matched
// people, hubs excluded.
func Candidates(ds *dataset.Dataset, hubs models.Hubs, query string) []models.Person {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	matched := newPersonSet()
	if company, ok := matchCompany(ds, q); ok {
		for _, w := range ds.WorkHistory() {
			if w.CompanyID != company.ID || w.PersonID == hubs.CurrentUserID {
				continue
			}
			if p, ok := ds.Person(w.PersonID); ok {
				matched.add(p)
			}
		}
	}

	for _, p := range ds.People() {
		if matchesPerson(p, q) {
			matched.add(p)
		}
	}

	if matched.len() == 0 {
		for _, p := range ds.People() {
			if strings.Contains(strings.ToLower(p.Name), q) ||
				strings.Contains(strings.ToLower(p.Title), q) ||
				strings.Contains(strings.ToLower(p.Company), q) {
				matched.add(p)
			}
		}
	}

	if matched.len() == 0 && hasIntent(q) {
		for _, p := range ds.People() {
			matched.add(p)
		}
	}

	out := make([]models.Person, 0, matched.len())
	for _, p := range matched.people {
		if !hubs.IsHub(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

// BuildConnections builds, filters and orders connections for people.
// Hubs are skipped, and people with neither reasons nor score are dropped.
func BuildConnections(ds *dataset.Dataset, hubs models.Hubs, ranker *ranking.Ranker, now time.Time, people []models.Person) []*models.Connection {
	conns := make([]*models.Connection, 0, len(people))
	for _, p := range people {
		if hubs.IsHub(p.ID) {
			continue
		}
		c := BuildConnection(ds, hubs, ranker, now, p)
		if len(c.Reasons) == 0 && c.RelevanceScore == 0 {
			continue
		}
		conns = append(conns, c)
	}
	sort.SliceStable(conns, func(i, j int) bool {
		return conns[i].RelevanceScore > conns[j].RelevanceScore
	})
	return conns
}

// BuildConnection classifies, scores and explains one person's relationship.
func BuildConnection(ds *dataset.Dataset, hubs models.Hubs, ranker *ranking.Ranker, now time.Time, p models.Person) *models.Connection {
	user := hubs.CurrentUserID

	userEmails := ds.EmailsBetween(user, p.ID)
	userMeetings := ds.MeetingsWith(user, p.ID)
	shared := ds.SharedCompanies(user, p.ID)

	recent := 0
	for _, e := range userEmails {
		if ranker.IsRecent(e.Date, now) {
			recent++
		}
	}

	conn := &models.Connection{
		Person:             p,
		Type:               Classify(ds, hubs, p.ID),
		Reasons:            buildReasons(ds, hubs, ranker.OngoingYear(), p),
		SharedCompanies:    shared,
		RecentInteractions: recent,
		LastInteraction:    lastHubInteraction(ds, hubs, p.ID),
	}
	if conn.SharedCompanies == nil {
		conn.SharedCompanies = []models.Company{}
	}

	conn.Breakdown = ranker.RankWithBreakdown(ranking.Evidence{
		RecentEmails:    recent,
		TotalEmails:     len(userEmails),
		SharedMeetings:  len(userMeetings),
		SharedCompanies: len(shared),
		LastInteraction: conn.LastInteraction,
	}, now)
	ranking.Explain(conn.Breakdown, conn.Type)
	conn.RelevanceScore = conn.Breakdown.Total()

	if conn.Type == models.ConnectionIndirect {
		conn.Path = Intermediaries(ds, hubs, p.ID)
	}
	return conn
}

// Classify grades personID against the hubs: direct through the current user,
// indirect through the co-founder, weak otherwise.
func Classify(ds *dataset.Dataset, hubs models.Hubs, personID string) models.ConnectionType {
	if ds.HasContact(hubs.CurrentUserID, personID) || len(ds.SharedCompanies(hubs.CurrentUserID, personID)) > 0 {
		return models.ConnectionDirect
	}
	if ds.HasContact(hubs.CofounderID, personID) {
		return models.ConnectionIndirect
	}
	return models.ConnectionWeak
}

// Intermediaries returns the people in contact with a hub who are also in
// contact with personID, in discovery order.
func Intermediaries(ds *dataset.Dataset, hubs models.Hubs, personID string) []models.Person {
	user, cof := hubs.CurrentUserID, hubs.CofounderID

	var (
		contacts []string
		seen     = make(map[string]struct{})
	)
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		contacts = append(contacts, id)
	}

	for _, e := range ds.Emails() {
		if e.From == user {
			add(e.To)
		}
		if e.To == user {
			add(e.From)
		}
		if e.From == cof {
			add(e.To)
		}
		if e.To == cof {
			add(e.From)
		}
	}
	for i := range ds.Meetings() {
		m := &ds.Meetings()[i]
		if m.Has(user) || m.Has(cof) {
			for _, a := range m.Attendees {
				add(a)
			}
		}
	}

	var bridges []models.Person
	for _, id := range contacts {
		if id == user || id == cof || id == personID {
			continue
		}
		if !ds.HasContact(id, personID) {
			continue
		}
		if p, ok := ds.Person(id); ok {
			bridges = append(bridges, p)
		}
	}
	return bridges
}

// QueryContext returns the company or person a query is about, for a
// "results for X" label.
func QueryContext(ds *dataset.Dataset, hubs models.Hubs, query string) (string, bool) {
	q := strings.ToLower(query)
	if company, ok := matchCompany(ds, q); ok {
		return company.Name, true
	}
	for _, p := range ds.People() {
		if p.ID == hubs.CofounderID {
			continue
		}
		if first := firstNameLower(p.Name); first != "" && strings.Contains(q, first) {
			return p.Name, true
		}
	}
	return "", false
}

func buildReasons(ds *dataset.Dataset, hubs models.Hubs, ongoing int, p models.Person) []string {
	reasons := []string{}
	user := hubs.CurrentUserID

	personHistory := ds.WorkHistoryOf(p.ID)
	for _, uh := range ds.WorkHistoryOf(user) {
		for _, ph := range personHistory {
			if uh.CompanyID != ph.CompanyID {
				continue
			}
			company, ok := ds.Company(uh.CompanyID)
			if !ok {
				continue
			}
			start := max(uh.StartYear, ph.StartYear)
			end := min(uh.EndOr(ongoing), ph.EndOr(ongoing))
			if start > end {
				continue
			}
			endText := strconv.Itoa(end)
			if end == ongoing {
				endText = "present"
			}
			reasons = append(reasons, fmt.Sprintf("You worked with %s at %s (%d–%s).", p.Name, company.Name, start, endText))
		}
	}

	if emails := ds.EmailsBetween(user, p.ID); len(emails) > 0 {
		dataset.SortEmailsNewestFirst(emails)
		reasons = append(reasons, fmt.Sprintf("You exchanged %d %s — most recently about \"%s\".",
			len(emails), utils.Plural(len(emails), "email"), emails[0].Subject))
	}

	if meetings := ds.MeetingsWith(user, p.ID); len(meetings) > 0 {
		dataset.SortMeetingsNewestFirst(meetings)
		others := ""
		if len(meetings) > 1 {
			others = fmt.Sprintf(" (and %d %s)", len(meetings)-1, utils.Plural(len(meetings)-1, "other meeting"))
		}
		reasons = append(reasons, fmt.Sprintf("You were both in \"%s\" on %s%s.",
			meetings[0].Title, meetings[0].Date.Display(), others))
	}

	if total := ds.InteractionCount(hubs.CofounderID, p.ID); total > 0 {
		reasons = append(reasons, fmt.Sprintf("Your co-founder %s met %s %d %s in recent months.",
			hubs.CofounderName, p.Name, total, utils.Plural(total, "time")))
	}

	return reasons
}

// lastHubInteraction is the latest email or meeting between personID and either hub.
func lastHubInteraction(ds *dataset.Dataset, hubs models.Hubs, personID string) *models.Date {
	var last *models.Date
	for _, hub := range []string{hubs.CurrentUserID, hubs.CofounderID} {
		d, ok := ds.LastInteraction(hub, personID)
		if !ok {
			continue
		}
		if last == nil || d.After(last.Time) {
			d := d
			last = &d
		}
	}
	return last
}

func matchCompany(ds *dataset.Dataset, q string) (models.Company, bool) {
	for _, c := range ds.Companies() {
		name := strings.ToLower(c.Name)
		domain := strings.ToLower(c.Domain)
		if (name != "" && strings.Contains(q, name)) || (domain != "" && strings.Contains(q, domain)) {
			return c, true
		}
	}
	return models.Company{}, false
}

func matchesPerson(p models.Person, q string) bool {
	if cleaned := cleanName(p.Name); cleaned != "" && strings.Contains(q, cleaned) {
		return true
	}
	first := firstNameLower(p.Name)
	return first != "" && strings.Contains(q, first)
}

// cleanName lowercases name and keeps only ASCII letters and spaces.
func cleanName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func firstNameLower(name string) string {
	return utils.FirstName(strings.ToLower(name))
}

func hasIntent(q string) bool {
	for _, w := range intentWords {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

// personSet keeps people in insertion order without duplicates.
type personSet struct {
	people []models.Person
	seen   map[string]struct{}
}

func newPersonSet() *personSet {
	return &personSet{seen: make(map[string]struct{})}
}

func (s *personSet) add(p models.Person) {
	if _, ok := s.seen[p.ID]; ok {
		return
	}
	s.seen[p.ID] = struct{}{}
	s.people = append(s.people, p)
}

func (s *personSet) len() int {
	return len(s.people)
}
