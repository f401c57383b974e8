// Package dataset holds the immutable relationship snapshot that every query
// runs against, plus its loaders and the holder used to swap snapshots on reload.
package dataset

import (
	"github.com/hyperjump/kue/internal/models"
)

// Dataset is a read-only view over one set of records with lookup indexes.
// Slices returned by its accessors are shared and must not be modified.
type Dataset struct {
	self         *models.Person
	people       []models.Person
	companies    []models.Company
	emails       []models.EmailRecord
	meetings     []models.MeetingRecord
	work         []models.WorkHistory
	peopleByID   map[string]int
	companyByID  map[string]int
	workByPerson map[string][]int
}

// New builds a Dataset from r. The records are copied; later changes to r are not seen.
// Duplicate ids keep their first occurrence in the lookup index.
func New(r *models.Records) *Dataset {
	d := &Dataset{
		people:       append([]models.Person(nil), r.People...),
		companies:    append([]models.Company(nil), r.Companies...),
		emails:       append([]models.EmailRecord(nil), r.Emails...),
		meetings:     make([]models.MeetingRecord, len(r.Meetings)),
		work:         append([]models.WorkHistory(nil), r.WorkHistory...),
		peopleByID:   make(map[string]int, len(r.People)),
		companyByID:  make(map[string]int, len(r.Companies)),
		workByPerson: make(map[string][]int),
	}
	if r.CurrentUser != nil {
		self := *r.CurrentUser
		d.self = &self
	}
	for i, m := range r.Meetings {
		m.Attendees = append([]string(nil), m.Attendees...)
		d.meetings[i] = m
	}
	for i := range d.work {
		if d.work[i].EndYear != nil {
			end := *d.work[i].EndYear
			d.work[i].EndYear = &end
		}
	}
	for i, p := range d.people {
		if _, ok := d.peopleByID[p.ID]; !ok {
			d.peopleByID[p.ID] = i
		}
	}
	for i, c := range d.companies {
		if _, ok := d.companyByID[c.ID]; !ok {
			d.companyByID[c.ID] = i
		}
	}
	for i, w := range d.work {
		d.workByPerson[w.PersonID] = append(d.workByPerson[w.PersonID], i)
	}
	return d
}

// Self returns the current user's own record when the dataset carries one.
func (d *Dataset) Self() (models.Person, bool) {
	if d.self == nil {
		return models.Person{}, false
	}
	return *d.self, true
}

// People returns every person in declaration order.
func (d *Dataset) People() []models.Person { return d.people }

// Companies returns every company in declaration order.
func (d *Dataset) Companies() []models.Company { return d.companies }

// Emails returns every email in declaration order.
func (d *Dataset) Emails() []models.EmailRecord { return d.emails }

// Meetings returns every meeting in declaration order.
func (d *Dataset) Meetings() []models.MeetingRecord { return d.meetings }

// WorkHistory returns every work-history row in declaration order.
func (d *Dataset) WorkHistory() []models.WorkHistory { return d.work }

// Person looks up a person by id.
func (d *Dataset) Person(id string) (models.Person, bool) {
	i, ok := d.peopleByID[id]
	if !ok {
		return models.Person{}, false
	}
	return d.people[i], true
}

// Company looks up a company by id.
func (d *Dataset) Company(id string) (models.Company, bool) {
	i, ok := d.companyByID[id]
	if !ok {
		return models.Company{}, false
	}
	return d.companies[i], true
}

// WorkHistoryOf returns the work-history rows for personID in declaration order.
func (d *Dataset) WorkHistoryOf(personID string) []models.WorkHistory {
	idx := d.workByPerson[personID]
	out := make([]models.WorkHistory, len(idx))
	for i, j := range idx {
		out[i] = d.work[j]
	}
	return out
}

// Records returns a copy of the dataset in serialisable form.
func (d *Dataset) Records() *models.Records {
	r := &models.Records{
		People:      append([]models.Person(nil), d.people...),
		Companies:   append([]models.Company(nil), d.companies...),
		Emails:      append([]models.EmailRecord(nil), d.emails...),
		Meetings:    make([]models.MeetingRecord, len(d.meetings)),
		WorkHistory: append([]models.WorkHistory(nil), d.work...),
	}
	if d.self != nil {
		self := *d.self
		r.CurrentUser = &self
	}
	for i, m := range d.meetings {
		m.Attendees = append([]string(nil), m.Attendees...)
		r.Meetings[i] = m
	}
	return r
}

// Stats counts the records.
func (d *Dataset) Stats() models.DatasetStats {
	return models.DatasetStats{
		People:      len(d.people),
		Companies:   len(d.companies),
		Emails:      len(d.emails),
		Meetings:    len(d.meetings),
		WorkHistory: len(d.work),
	}
}
