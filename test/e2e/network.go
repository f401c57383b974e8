// Package e2e provides end-to-end tests over a generated relationship network.
package e2e

import (
	"fmt"
	"strings"

	"github.com/hyperjump/kue/internal/models"
)

// Hub ids used by the generated network.
const (
	SelfID        = "me"
	CofounderID   = "cof"
	CofounderName = "Robin"
)

// Company names contain no generated first name, so a company query never
// also matches a person by name.
var companyNames = []string{"Quasar", "Juniper", "Kestrel", "Ozone", "Pinnacle", "Vertex", "Zephyr", "Umbra"}

// First names are prefix+suffix pairs; prefixes are unique per company, so
// every person's first name is unique in the network.
var (
	namePrefixes = []string{"Ald", "Bren", "Cor", "Dav", "Elm", "Fen", "Gar", "Hal"}
	nameSuffixes = []string{"ric", "wyn", "mund", "ton", "wick", "ley"}
	lastNames    = []string{"Quill", "Stroud", "Thorne", "Varga", "Whitlock", "Yardley"}
	titles       = []string{"Engineer", "Designer", "Product Manager", "Recruiter", "Investor", "Founder"}
)

// QueryTestCase defines a query and the person ids that must (and must not)
// appear in its results.
type QueryTestCase struct {
	Query       string
	Fuzzy       bool
	ExpectedIDs []string
	ExcludedIDs []string
	Description string
}

// WarmPathTestCase names a target and the connectors expected to reach it.
type WarmPathTestCase struct {
	TargetID     string
	ConnectorIDs []string
}

// Network holds generated records and the queries to check against them.
type Network struct {
	Records   *models.Records
	Hubs      models.Hubs
	TestCases []QueryTestCase
	WarmPaths []WarmPathTestCase
}

// PersonID returns the generated id of person k at company c.
func PersonID(c, k int) string {
	return fmt.Sprintf("n-%02d-%02d", c, k)
}

// BuildNetwork returns a network of len(companyNames) companies with
// len(nameSuffixes) people each.
//
// The current user works at company 0, so its people are direct connections.
// At every other company person 0 has emailed the user (direct), person 1 has
// met the co-founder (indirect), and everyone else has no hub contact.
func BuildNetwork() *Network {
	ongoing := (*int)(nil)
	r := &models.Records{
		CurrentUser: &models.Person{ID: SelfID, Name: "Morgan Self", Title: "CEO", Company: companyNames[0]},
		People: []models.Person{
			{ID: CofounderID, Name: CofounderName + " Hale", Title: "Co-founder", Company: companyNames[0]},
		},
	}
	for c, name := range companyNames {
		r.Companies = append(r.Companies, models.Company{
			ID:     fmt.Sprintf("c-%02d", c),
			Name:   name,
			Domain: strings.ToLower(name) + ".io",
		})
	}
	r.WorkHistory = append(r.WorkHistory, models.WorkHistory{
		PersonID: SelfID, CompanyID: "c-00", Role: "CEO", StartYear: 2018, EndYear: ongoing,
	})

	n := &Network{
		Records: r,
		Hubs:    models.Hubs{CurrentUserID: SelfID, CofounderID: CofounderID, CofounderName: CofounderName},
	}

	for c := range companyNames {
		companyID := fmt.Sprintf("c-%02d", c)
		for k := range nameSuffixes {
			id := PersonID(c, k)
			r.People = append(r.People, models.Person{
				ID:      id,
				Name:    namePrefixes[c] + nameSuffixes[k] + " " + lastNames[k],
				Title:   titles[k],
				Company: companyNames[c],
				Email:   fmt.Sprintf("%s@%s.io", id, strings.ToLower(companyNames[c])),
			})
			r.WorkHistory = append(r.WorkHistory, models.WorkHistory{
				PersonID: id, CompanyID: companyID, Role: titles[k], StartYear: 2019 + k%3, EndYear: ongoing,
			})
		}
		if c == 0 {
			continue
		}
		r.Emails = append(r.Emails, models.EmailRecord{
			ID:      fmt.Sprintf("e-%02d", c),
			From:    PersonID(c, 0),
			To:      SelfID,
			Date:    models.NewDate(2025, 1, 20),
			Subject: "Catching up about " + companyNames[c],
		})
		r.Meetings = append(r.Meetings, models.MeetingRecord{
			ID:        fmt.Sprintf("m-%02d", c),
			Title:     companyNames[c] + " intro call",
			Date:      models.NewDate(2025, 1, 5),
			Attendees: []string{CofounderID, PersonID(c, 1)},
		})
	}

	n.TestCases = buildQueryTestCases()
	n.WarmPaths = buildWarmPathTestCases()
	return n
}

func buildQueryTestCases() []QueryTestCase {
	var cases []QueryTestCase

	var home []string
	for k := range nameSuffixes {
		home = append(home, PersonID(0, k))
	}
	cases = append(cases, QueryTestCase{
		Query:       "who do I know at " + companyNames[0],
		ExpectedIDs: home,
		Description: "everyone at the user's own company is a direct connection",
	})

	for c := 1; c < len(companyNames); c++ {
		var excluded []string
		for k := 2; k < len(nameSuffixes); k++ {
			excluded = append(excluded, PersonID(c, k))
		}
		cases = append(cases, QueryTestCase{
			Query:       "who do I know at " + companyNames[c],
			ExpectedIDs: []string{PersonID(c, 0), PersonID(c, 1)},
			ExcludedIDs: excluded,
			Description: fmt.Sprintf("%s: emailed and co-founder contacts, no strangers", companyNames[c]),
		})
		cases = append(cases, QueryTestCase{
			Query:       "introduce me to " + strings.ToLower(namePrefixes[c]+nameSuffixes[0]),
			ExpectedIDs: []string{PersonID(c, 0)},
			ExcludedIDs: []string{PersonID(c, 1)},
			Description: "first name resolves to one person",
		})
	}

	cases = append(cases, QueryTestCase{
		Query:       "aldrik",
		Fuzzy:       true,
		ExpectedIDs: []string{PersonID(0, 0)},
		Description: "misspelt first name found by the people index",
	})
	return cases
}

func buildWarmPathTestCases() []WarmPathTestCase {
	var cases []WarmPathTestCase
	for c := 1; c < len(companyNames); c++ {
		cases = append(cases, WarmPathTestCase{
			TargetID:     PersonID(c, 2),
			ConnectorIDs: []string{PersonID(c, 0), PersonID(c, 1)},
		})
	}
	return cases
}
