package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/kue/internal/dataset"
	"github.com/hyperjump/kue/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "data", "kue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStorage_EmptyStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.LoadRecords(ctx)
	assert.True(t, errors.Is(err, ErrNotFound), "expected ErrNotFound, got %v", err)

	stats, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DatasetStats{}, stats)
}

func TestSQLiteStorage_ReplaceAndLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceDataset(ctx, dataset.FixtureRecords()))

	stats, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DatasetStats{People: 31, Companies: 8, Emails: 28, Meetings: 12, WorkHistory: 33}, stats)

	got, err := store.LoadRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, dataset.FixtureRecords(), got)
	assert.Equal(t, dataset.Fixture().Stats(), dataset.New(got).Stats())
}

func TestSQLiteStorage_ReplaceIsTotal(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.ReplaceDataset(ctx, dataset.FixtureRecords()))

	small := &models.Records{
		People:    []models.Person{{ID: "a", Name: "Ada Lovelace"}},
		Companies: []models.Company{{ID: "c", Name: "Analytical"}},
		Meetings: []models.MeetingRecord{
			{ID: "m", Title: "Notes", Date: models.MustParseDate("1843-09-01"), Attendees: []string{"a"}},
		},
	}
	require.NoError(t, store.ReplaceDataset(ctx, small))

	got, err := store.LoadRecords(ctx)
	require.NoError(t, err)
	assert.Nil(t, got.CurrentUser)
	assert.Equal(t, small.People, got.People)
	assert.Equal(t, small.Meetings, got.Meetings)
	assert.Empty(t, got.Emails)
	assert.Empty(t, got.WorkHistory)
}

func TestSQLiteStorage_ReplaceRollsBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.ReplaceDataset(ctx, dataset.FixtureRecords()))

	_, err := store.db.Exec(`CREATE TRIGGER fail_work BEFORE INSERT ON work_history
		BEGIN SELECT RAISE(ABORT, 'work history rejected'); END`)
	require.NoError(t, err)

	small := &models.Records{
		People:      []models.Person{{ID: "a", Name: "A"}},
		WorkHistory: []models.WorkHistory{{PersonID: "a", CompanyID: "c", StartYear: 2020}},
	}
	require.Error(t, store.ReplaceDataset(ctx, small))

	stats, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 31, stats.People, "failed replace must keep the previous dataset")
	assert.Equal(t, 33, stats.WorkHistory)
}

func TestSQLiteStorage_DuplicateIDsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	me := models.Person{ID: "me", Name: "You"}
	records := &models.Records{
		CurrentUser: &me,
		People: []models.Person{
			{ID: "me", Name: "You", Company: "Kue"},
			{ID: "a", Name: "First"},
			{ID: "a", Name: "Second"},
		},
		Companies: []models.Company{{ID: "c", Name: "Kue"}, {ID: "c", Name: "Kue again"}},
		Emails: []models.EmailRecord{
			{ID: "e", From: "me", To: "a", Date: models.MustParseDate("2025-01-01")},
			{ID: "e", From: "a", To: "me", Date: models.MustParseDate("2025-01-02")},
		},
		Meetings: []models.MeetingRecord{
			{ID: "m", Date: models.MustParseDate("2025-01-03"), Attendees: []string{"me", "a"}},
			{ID: "m", Date: models.MustParseDate("2025-01-04"), Attendees: []string{"a"}},
		},
	}
	require.NoError(t, store.ReplaceDataset(ctx, records))

	stats, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DatasetStats{People: 3, Companies: 2, Emails: 2, Meetings: 2}, stats)

	got, err := store.LoadRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	ds := dataset.New(got)
	self, ok := ds.Self()
	require.True(t, ok)
	assert.Equal(t, "You", self.Name)
	p, ok := ds.Person("a")
	require.True(t, ok)
	assert.Equal(t, "First", p.Name)
}

func TestSQLiteStorage_MigratesOldSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kue.db")
	store, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.ReplaceDataset(ctx, dataset.FixtureRecords()))
	require.NoError(t, store.RecordIntroRequest(ctx, &models.IntroRequestResult{RequestID: "r-1", TargetID: "p-1", Status: models.IntroOpen}))
	_, err = store.db.Exec("PRAGMA user_version = 1")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = NewSQLiteStorage(path)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.LoadRecords(ctx)
	assert.True(t, errors.Is(err, ErrNotFound), "dataset tables should be rebuilt, got %v", err)
	n, err := store.CountIntroRequests(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "intro log survives the rebuild")
}

func TestSQLiteStorage_IntroRequests(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	at := time.Date(2025, time.February, 10, 12, 0, 0, 0, time.UTC)
	first := &models.IntroRequestResult{RequestID: "r-1", TargetID: "p-1", Status: models.IntroOpen, Message: "No one responded yet", RequestedAt: at}
	second := &models.IntroRequestResult{RequestID: "r-2", TargetID: "p-2", Status: models.IntroResponded, Message: "1 person is open to helping"}

	require.NoError(t, store.RecordIntroRequest(ctx, first))
	require.NoError(t, store.RecordIntroRequest(ctx, second))
	assert.False(t, second.RequestedAt.IsZero(), "RequestedAt should be stamped")
	// The same target may be asked again.
	require.NoError(t, store.RecordIntroRequest(ctx, first))

	n, err := store.CountIntroRequests(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	list, err := store.ListIntroRequests(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "r-1", list[0].RequestID)
	assert.Equal(t, "r-2", list[1].RequestID)
	assert.Equal(t, models.IntroResponded, list[1].Status)
	assert.True(t, list[0].RequestedAt.Equal(at))

	list, err = store.ListIntroRequests(ctx, 2, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "p-1", list[0].TargetID)
}

func TestSQLiteStorage_Memory(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.ReplaceDataset(ctx, dataset.FixtureRecords()))
	got, err := store.LoadRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, got.People, 31)
}
