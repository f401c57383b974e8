package dataset

import (
	"github.com/hyperjump/kue/internal/models"
)

// Hubs used by the built-in fixture.
const (
	FixtureCurrentUserID = "user-1"
	FixtureCofounderID   = "p-11"
	FixtureCofounderName = "Tom"
)

// FixtureHubs returns the hub configuration that matches Fixture.
func FixtureHubs() models.Hubs {
	return models.Hubs{
		CurrentUserID: FixtureCurrentUserID,
		CofounderID:   FixtureCofounderID,
		CofounderName: FixtureCofounderName,
	}
}

func year(y int) *int { return &y }

// Fixture returns the built-in demo dataset.
func Fixture() *Dataset {
	return New(FixtureRecords())
}

// FixtureRecords returns a fresh copy of the built-in demo records.
func FixtureRecords() *models.Records {
	return &models.Records{
		CurrentUser: &models.Person{ID: "user-1", Name: "You", Title: "Co-founder & CEO", Company: "Kue", Email: "you@kue.app"},
		People: []models.Person{
			{ID: "p-1", Name: "Alex Chen", Title: "Engineering Lead", Company: "Stripe", Email: "alex@stripe.com"},
			{ID: "p-3", Name: "Marcus Johnson", Title: "Head of BD", Company: "Figma", Email: "marcus@figma.com"},
			{ID: "p-4", Name: "Sara Kim", Title: "CTO", Company: "Linear", Email: "sara@linear.app"},
			{ID: "p-5", Name: "Ankit Patel", Title: "Investor, Partner", Company: "Sequoia Capital", Email: "ankit@sequoiacap.com"},
			{ID: "p-6", Name: "Lena Müller", Title: "Design Director", Company: "Vercel", Email: "lena@vercel.com"},
			{ID: "p-7", Name: "James Wright", Title: "CEO", Company: "Acme Corp", Email: "james@acme.co"},
			{ID: "p-8", Name: "Olivia Torres", Title: "Product Manager", Company: "Stripe", Email: "olivia@stripe.com"},
			{ID: "p-10", Name: "Rachel Green", Title: "Head of Sales", Company: "Linear", Email: "rachel@linear.app"},
			{ID: "p-11", Name: "Tom Nguyen", Title: "Co-founder", Company: "Kue", Email: "tom@kue.app"},
			{ID: "p-2", Name: "Priya Sharma", Title: "VP of Product", Company: "Notion", Email: "priya@notion.so"},
			{ID: "p-9", Name: "David Park", Title: "Software Engineer", Company: "Notion", Email: "david@notion.so"},
			{ID: "n-1", Name: "Ivan Zhao", Title: "CEO", Company: "Notion", Email: "ivan@notion.so"},
			{ID: "n-2", Name: "Akshay Kothari", Title: "COO", Company: "Notion", Email: "akshay@notion.so"},
			{ID: "n-3", Name: "Camille Ricketts", Title: "Head of Marketing", Company: "Notion", Email: "camille@notion.so"},
			{ID: "n-4", Name: "Jake Teton-Landis", Title: "Engineering Manager", Company: "Notion", Email: "jake@notion.so"},
			{ID: "n-5", Name: "Ravi Mehta", Title: "Head of Product", Company: "Notion", Email: "ravi@notion.so"},
			{ID: "n-6", Name: "Linus Lee", Title: "Software Engineer", Company: "Notion", Email: "linus@notion.so"},
			{ID: "n-7", Name: "Emily Zhang", Title: "Design Lead", Company: "Notion", Email: "emily@notion.so"},
			{ID: "n-8", Name: "Jordan Blake", Title: "Head of Sales", Company: "Notion", Email: "jordan@notion.so"},
			{ID: "n-9", Name: "Sophie Laurent", Title: "Head of Partnerships", Company: "Notion", Email: "sophie@notion.so"},
			{ID: "n-10", Name: "Kenji Tanaka", Title: "Data Engineer", Company: "Notion", Email: "kenji@notion.so"},
			{ID: "n-11", Name: "Mia Chen", Title: "Product Designer", Company: "Notion", Email: "mia@notion.so"},
			{ID: "n-12", Name: "Arun Gupta", Title: "Backend Engineer", Company: "Notion", Email: "arun@notion.so"},
			{ID: "n-13", Name: "Taylor Kim", Title: "Customer Success Lead", Company: "Notion", Email: "taylor@notion.so"},
			{ID: "n-14", Name: "Nina Patel", Title: "Content Strategist", Company: "Notion", Email: "nina@notion.so"},
			{ID: "n-15", Name: "Chris Morales", Title: "Security Engineer", Company: "Notion", Email: "chris@notion.so"},
			{ID: "n-16", Name: "Zara Ahmed", Title: "Engineering Director", Company: "Notion", Email: "zara@notion.so"},
			{ID: "n-17", Name: "Leo Fernandez", Title: "Mobile Engineer", Company: "Notion", Email: "leo@notion.so"},
			{ID: "n-18", Name: "Hannah Wu", Title: "HR Director", Company: "Notion", Email: "hannah@notion.so"},
			{ID: "n-19", Name: "Omar Sayed", Title: "DevOps Engineer", Company: "Notion", Email: "omar@notion.so"},
			{ID: "n-20", Name: "Isabella Rivera", Title: "VP of Finance", Company: "Notion", Email: "isabella@notion.so"},
		},
		Companies: []models.Company{
			{ID: "c-1", Name: "Stripe", Domain: "stripe.com"},
			{ID: "c-2", Name: "Notion", Domain: "notion.so"},
			{ID: "c-3", Name: "Figma", Domain: "figma.com"},
			{ID: "c-4", Name: "Linear", Domain: "linear.app"},
			{ID: "c-5", Name: "Sequoia Capital", Domain: "sequoiacap.com"},
			{ID: "c-6", Name: "Vercel", Domain: "vercel.com"},
			{ID: "c-7", Name: "Acme Corp", Domain: "acme.co"},
			{ID: "c-8", Name: "Kue", Domain: "kue.app"},
		},
		Emails: []models.EmailRecord{
			{ID: "e-1", From: "user-1", To: "p-1", Date: models.MustParseDate("2024-12-15"), Subject: "Catching up"},
			{ID: "e-2", From: "p-1", To: "user-1", Date: models.MustParseDate("2024-12-18"), Subject: "Re: Catching up"},
			{ID: "e-3", From: "user-1", To: "p-1", Date: models.MustParseDate("2025-01-10"), Subject: "Quick question about APIs"},
			{ID: "e-4", From: "user-1", To: "p-2", Date: models.MustParseDate("2025-01-20"), Subject: "Product feedback"},
			{ID: "e-5", From: "p-2", To: "user-1", Date: models.MustParseDate("2025-01-22"), Subject: "Re: Product feedback"},
			{ID: "e-6", From: "user-1", To: "p-5", Date: models.MustParseDate("2025-02-01"), Subject: "Fundraise update"},
			{ID: "e-7", From: "p-5", To: "user-1", Date: models.MustParseDate("2025-02-02"), Subject: "Re: Fundraise update"},
			{ID: "e-8", From: "p-11", To: "p-2", Date: models.MustParseDate("2025-01-28"), Subject: "Coffee chat"},
			{ID: "e-9", From: "p-11", To: "p-3", Date: models.MustParseDate("2025-01-05"), Subject: "Partnership discussion"},
			{ID: "e-10", From: "p-11", To: "p-6", Date: models.MustParseDate("2024-11-20"), Subject: "Design review"},
			{ID: "e-11", From: "user-1", To: "p-8", Date: models.MustParseDate("2025-01-15"), Subject: "API integration"},
			{ID: "e-12", From: "p-8", To: "user-1", Date: models.MustParseDate("2025-01-16"), Subject: "Re: API integration"},
			{ID: "e-13", From: "user-1", To: "p-4", Date: models.MustParseDate("2024-10-05"), Subject: "How you built Linear"},
			{ID: "e-14", From: "p-7", To: "p-5", Date: models.MustParseDate("2025-01-30"), Subject: "Intro request"},
			{ID: "e-15", From: "user-1", To: "n-1", Date: models.MustParseDate("2025-01-05"), Subject: "Notion API collaboration"},
			{ID: "e-16", From: "n-1", To: "user-1", Date: models.MustParseDate("2025-01-07"), Subject: "Re: Notion API collaboration"},
			{ID: "e-17", From: "user-1", To: "n-2", Date: models.MustParseDate("2024-12-10"), Subject: "Growth strategies"},
			{ID: "e-18", From: "p-2", To: "n-3", Date: models.MustParseDate("2025-01-15"), Subject: "Marketing sync"},
			{ID: "e-19", From: "p-2", To: "n-5", Date: models.MustParseDate("2025-01-20"), Subject: "Product roadmap"},
			{ID: "e-20", From: "p-2", To: "n-7", Date: models.MustParseDate("2025-01-25"), Subject: "Design review"},
			{ID: "e-21", From: "p-2", To: "n-8", Date: models.MustParseDate("2025-02-01"), Subject: "Sales enablement"},
			{ID: "e-22", From: "p-9", To: "n-4", Date: models.MustParseDate("2025-01-18"), Subject: "Sprint planning"},
			{ID: "e-23", From: "p-9", To: "n-6", Date: models.MustParseDate("2025-01-22"), Subject: "Code review"},
			{ID: "e-24", From: "p-9", To: "n-10", Date: models.MustParseDate("2025-01-28"), Subject: "Data pipeline"},
			{ID: "e-25", From: "p-11", To: "n-9", Date: models.MustParseDate("2025-01-12"), Subject: "Partnership opportunities"},
			{ID: "e-26", From: "p-11", To: "n-16", Date: models.MustParseDate("2025-01-30"), Subject: "Eng leadership chat"},
			{ID: "e-27", From: "user-1", To: "p-9", Date: models.MustParseDate("2025-01-14"), Subject: "API docs question"},
			{ID: "e-28", From: "p-9", To: "user-1", Date: models.MustParseDate("2025-01-15"), Subject: "Re: API docs question"},
		},
		Meetings: []models.MeetingRecord{
			{ID: "m-1", Title: "Product sync", Date: models.MustParseDate("2025-01-25"), Attendees: []string{"user-1", "p-2", "p-9"}},
			{ID: "m-2", Title: "Investor check-in", Date: models.MustParseDate("2025-02-03"), Attendees: []string{"user-1", "p-5"}},
			{ID: "m-3", Title: "Customer call", Date: models.MustParseDate("2025-01-18"), Attendees: []string{"user-1", "p-7", "p-8"}},
			{ID: "m-4", Title: "Design review", Date: models.MustParseDate("2025-01-12"), Attendees: []string{"user-1", "p-6", "p-11"}},
			{ID: "m-5", Title: "BD discussion", Date: models.MustParseDate("2025-01-28"), Attendees: []string{"p-11", "p-3"}},
			{ID: "m-6", Title: "Coffee chat", Date: models.MustParseDate("2025-02-05"), Attendees: []string{"p-11", "p-2"}},
			{ID: "m-7", Title: "Technical deep dive", Date: models.MustParseDate("2024-12-20"), Attendees: []string{"user-1", "p-1", "p-4"}},
			{ID: "m-8", Title: "Quarterly sync", Date: models.MustParseDate("2024-11-15"), Attendees: []string{"user-1", "p-10", "p-4"}},
			{ID: "m-9", Title: "Notion API kickoff", Date: models.MustParseDate("2025-01-08"), Attendees: []string{"user-1", "n-1", "n-2"}},
			{ID: "m-10", Title: "Notion product feedback", Date: models.MustParseDate("2025-01-26"), Attendees: []string{"user-1", "p-2", "n-5"}},
			{ID: "m-11", Title: "Notion marketing review", Date: models.MustParseDate("2025-01-30"), Attendees: []string{"p-2", "n-3", "n-9"}},
			{ID: "m-12", Title: "Notion eng standup", Date: models.MustParseDate("2025-02-01"), Attendees: []string{"p-9", "n-4", "n-6", "n-10", "n-12"}},
		},
		WorkHistory: []models.WorkHistory{
			{PersonID: "user-1", CompanyID: "c-1", Role: "Product Manager", StartYear: 2019, EndYear: year(2021)},
			{PersonID: "p-1", CompanyID: "c-1", Role: "Senior Engineer", StartYear: 2018, EndYear: nil},
			{PersonID: "p-8", CompanyID: "c-1", Role: "Product Manager", StartYear: 2020, EndYear: nil},
			{PersonID: "user-1", CompanyID: "c-2", Role: "Product Lead", StartYear: 2021, EndYear: year(2023)},
			{PersonID: "p-2", CompanyID: "c-2", Role: "VP Product", StartYear: 2020, EndYear: nil},
			{PersonID: "p-9", CompanyID: "c-2", Role: "Engineer", StartYear: 2021, EndYear: nil},
			{PersonID: "p-11", CompanyID: "c-6", Role: "Design Engineer", StartYear: 2020, EndYear: year(2023)},
			{PersonID: "p-6", CompanyID: "c-6", Role: "Design Director", StartYear: 2019, EndYear: nil},
			{PersonID: "p-3", CompanyID: "c-3", Role: "Head of BD", StartYear: 2021, EndYear: nil},
			{PersonID: "p-4", CompanyID: "c-4", Role: "CTO", StartYear: 2020, EndYear: nil},
			{PersonID: "p-10", CompanyID: "c-4", Role: "Head of Sales", StartYear: 2021, EndYear: nil},
			{PersonID: "p-5", CompanyID: "c-5", Role: "Partner", StartYear: 2015, EndYear: nil},
			{PersonID: "p-7", CompanyID: "c-7", Role: "CEO", StartYear: 2018, EndYear: nil},
			{PersonID: "n-1", CompanyID: "c-2", Role: "CEO", StartYear: 2013, EndYear: nil},
			{PersonID: "n-2", CompanyID: "c-2", Role: "COO", StartYear: 2016, EndYear: nil},
			{PersonID: "n-3", CompanyID: "c-2", Role: "Head of Marketing", StartYear: 2019, EndYear: nil},
			{PersonID: "n-4", CompanyID: "c-2", Role: "Engineering Manager", StartYear: 2020, EndYear: nil},
			{PersonID: "n-5", CompanyID: "c-2", Role: "Head of Product", StartYear: 2021, EndYear: nil},
			{PersonID: "n-6", CompanyID: "c-2", Role: "Software Engineer", StartYear: 2020, EndYear: nil},
			{PersonID: "n-7", CompanyID: "c-2", Role: "Design Lead", StartYear: 2021, EndYear: nil},
			{PersonID: "n-8", CompanyID: "c-2", Role: "Head of Sales", StartYear: 2022, EndYear: nil},
			{PersonID: "n-9", CompanyID: "c-2", Role: "Head of Partnerships", StartYear: 2020, EndYear: nil},
			{PersonID: "n-10", CompanyID: "c-2", Role: "Data Engineer", StartYear: 2021, EndYear: nil},
			{PersonID: "n-11", CompanyID: "c-2", Role: "Product Designer", StartYear: 2022, EndYear: nil},
			{PersonID: "n-12", CompanyID: "c-2", Role: "Backend Engineer", StartYear: 2021, EndYear: nil},
			{PersonID: "n-13", CompanyID: "c-2", Role: "Customer Success Lead", StartYear: 2022, EndYear: nil},
			{PersonID: "n-14", CompanyID: "c-2", Role: "Content Strategist", StartYear: 2023, EndYear: nil},
			{PersonID: "n-15", CompanyID: "c-2", Role: "Security Engineer", StartYear: 2021, EndYear: nil},
			{PersonID: "n-16", CompanyID: "c-2", Role: "Engineering Director", StartYear: 2019, EndYear: nil},
			{PersonID: "n-17", CompanyID: "c-2", Role: "Mobile Engineer", StartYear: 2022, EndYear: nil},
			{PersonID: "n-18", CompanyID: "c-2", Role: "HR Director", StartYear: 2020, EndYear: nil},
			{PersonID: "n-19", CompanyID: "c-2", Role: "DevOps Engineer", StartYear: 2021, EndYear: nil},
			{PersonID: "n-20", CompanyID: "c-2", Role: "VP of Finance", StartYear: 2019, EndYear: nil},
		},
	}
}
