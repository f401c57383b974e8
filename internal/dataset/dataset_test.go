package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/kue/internal/models"
)

func TestFixture_Lookups(t *testing.T) {
	ds := Fixture()

	stats := ds.Stats()
	assert.Equal(t, 31, stats.People)
	assert.Equal(t, 8, stats.Companies)
	assert.Equal(t, 28, stats.Emails)
	assert.Equal(t, 12, stats.Meetings)
	assert.Equal(t, 33, stats.WorkHistory)

	self, ok := ds.Self()
	require.True(t, ok)
	assert.Equal(t, FixtureCurrentUserID, self.ID)

	p, ok := ds.Person("p-1")
	require.True(t, ok)
	assert.Equal(t, "Alex Chen", p.Name)

	_, ok = ds.Person("missing")
	assert.False(t, ok)

	c, ok := ds.Company("c-4")
	require.True(t, ok)
	assert.Equal(t, "Linear", c.Name)
}

func TestDataset_Relations(t *testing.T) {
	ds := Fixture()

	assert.Len(t, ds.EmailsBetween("user-1", "p-1"), 3)
	assert.Len(t, ds.MeetingsWith("user-1", "p-1"), 1)
	assert.Equal(t, 4, ds.InteractionCount("user-1", "p-1"))
	assert.True(t, ds.HasContact("p-11", "p-3"))
	assert.False(t, ds.HasContact("user-1", "p-3"))

	last, ok := ds.LastInteraction("user-1", "p-1")
	require.True(t, ok)
	assert.Equal(t, "2025-01-10", last.String())

	_, ok = ds.LastInteraction("user-1", "n-20")
	assert.False(t, ok)

	assert.Equal(t, []string{"c-1"}, ds.SharedCompanyIDs("user-1", "p-1"))
	assert.Equal(t, []string{"Linear"}, ds.SharedCompanyNames("p-4", "p-10"))
	assert.Empty(t, ds.SharedCompanies("user-1", "p-5"))
}

func TestDataset_DanglingCompanyDropped(t *testing.T) {
	ds := New(&models.Records{
		People: []models.Person{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}},
		WorkHistory: []models.WorkHistory{
			{PersonID: "a", CompanyID: "ghost", StartYear: 2020},
			{PersonID: "b", CompanyID: "ghost", StartYear: 2020},
		},
	})
	assert.Equal(t, []string{"ghost"}, ds.SharedCompanyIDs("a", "b"))
	assert.Empty(t, ds.SharedCompanies("a", "b"))
}

func TestDataset_IsolatedFromSource(t *testing.T) {
	r := FixtureRecords()
	ds := New(r)

	r.People[0].Name = "Changed"
	r.Meetings[0].Attendees[0] = "someone-else"
	*r.WorkHistory[0].EndYear = 1999

	p, _ := ds.Person("p-1")
	assert.Equal(t, "Alex Chen", p.Name)
	assert.Equal(t, "user-1", ds.Meetings()[0].Attendees[0])
	assert.Equal(t, 2021, *ds.WorkHistoryOf("user-1")[0].EndYear)
}

func TestDataset_DuplicateIDsKeepFirst(t *testing.T) {
	ds := New(&models.Records{
		People: []models.Person{{ID: "a", Name: "First"}, {ID: "a", Name: "Second"}},
	})
	p, ok := ds.Person("a")
	require.True(t, ok)
	assert.Equal(t, "First", p.Name)
}

func TestSortEmailsNewestFirst_Stable(t *testing.T) {
	emails := []models.EmailRecord{
		{ID: "1", Date: models.MustParseDate("2025-01-01")},
		{ID: "2", Date: models.MustParseDate("2025-02-01")},
		{ID: "3", Date: models.MustParseDate("2025-01-01")},
	}
	SortEmailsNewestFirst(emails)
	assert.Equal(t, "2", emails[0].ID)
	assert.Equal(t, "1", emails[1].ID)
	assert.Equal(t, "3", emails[2].ID)
}
