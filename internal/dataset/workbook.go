package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/kue/internal/models"
)

// Sheet names and header rows of the XLSX dataset layout.
const (
	SheetCurrentUser = "CurrentUser"
	SheetPeople      = "People"
	SheetCompanies   = "Companies"
	SheetEmails      = "Emails"
	SheetMeetings    = "Meetings"
	SheetWorkHistory = "WorkHistory"
)

var sheetHeaders = map[string][]string{
	SheetCurrentUser: {"id", "name", "title", "company", "email"},
	SheetPeople:      {"id", "name", "title", "company", "email"},
	SheetCompanies:   {"id", "name", "domain"},
	SheetEmails:      {"id", "from", "to", "date", "subject"},
	SheetMeetings:    {"id", "title", "date", "attendees"},
	SheetWorkHistory: {"person_id", "company_id", "role", "start_year", "end_year"},
}

var sheetOrder = []string{SheetCurrentUser, SheetPeople, SheetCompanies, SheetEmails, SheetMeetings, SheetWorkHistory}

// ReadWorkbook reads records from an XLSX workbook. Each sheet has a header row;
// missing sheets are treated as empty. Meeting attendees are comma-separated.
func ReadWorkbook(path string) (*models.Records, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	present := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		present[name] = true
	}
	rowsOf := func(sheet string) ([][]string, error) {
		if !present[sheet] {
			return nil, nil
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("get rows for sheet %q: %w", sheet, err)
		}
		if len(rows) > 0 {
			rows = rows[1:]
		}
		return rows, nil
	}

	r := &models.Records{}
	rows, err := rowsOf(SheetCurrentUser)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		p := personFromRow(rows[0])
		r.CurrentUser = &p
	}
	if rows, err = rowsOf(SheetPeople); err != nil {
		return nil, err
	}
	for _, row := range rows {
		r.People = append(r.People, personFromRow(row))
	}
	if rows, err = rowsOf(SheetCompanies); err != nil {
		return nil, err
	}
	for _, row := range rows {
		r.Companies = append(r.Companies, models.Company{ID: cell(row, 0), Name: cell(row, 1), Domain: cell(row, 2)})
	}
	if rows, err = rowsOf(SheetEmails); err != nil {
		return nil, err
	}
	for i, row := range rows {
		date, err := models.ParseDate(cell(row, 3))
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", SheetEmails, i+2, err)
		}
		r.Emails = append(r.Emails, models.EmailRecord{
			ID: cell(row, 0), From: cell(row, 1), To: cell(row, 2), Date: date, Subject: cell(row, 4),
		})
	}
	if rows, err = rowsOf(SheetMeetings); err != nil {
		return nil, err
	}
	for i, row := range rows {
		date, err := models.ParseDate(cell(row, 2))
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", SheetMeetings, i+2, err)
		}
		r.Meetings = append(r.Meetings, models.MeetingRecord{
			ID: cell(row, 0), Title: cell(row, 1), Date: date, Attendees: splitList(cell(row, 3)),
		})
	}
	if rows, err = rowsOf(SheetWorkHistory); err != nil {
		return nil, err
	}
	for i, row := range rows {
		w, err := workFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", SheetWorkHistory, i+2, err)
		}
		r.WorkHistory = append(r.WorkHistory, w)
	}
	return r, nil
}

// WriteWorkbook writes r to path using the layout ReadWorkbook expects.
func WriteWorkbook(path string, r *models.Records) error {
	f := excelize.NewFile()
	defer f.Close()

	rows := map[string][][]interface{}{}
	if r.CurrentUser != nil {
		rows[SheetCurrentUser] = append(rows[SheetCurrentUser], personRow(*r.CurrentUser))
	}
	for _, p := range r.People {
		rows[SheetPeople] = append(rows[SheetPeople], personRow(p))
	}
	for _, c := range r.Companies {
		rows[SheetCompanies] = append(rows[SheetCompanies], []interface{}{c.ID, c.Name, c.Domain})
	}
	for _, e := range r.Emails {
		rows[SheetEmails] = append(rows[SheetEmails], []interface{}{e.ID, e.From, e.To, e.Date.String(), e.Subject})
	}
	for _, m := range r.Meetings {
		rows[SheetMeetings] = append(rows[SheetMeetings], []interface{}{m.ID, m.Title, m.Date.String(), strings.Join(m.Attendees, ", ")})
	}
	for _, w := range r.WorkHistory {
		end := ""
		if w.EndYear != nil {
			end = strconv.Itoa(*w.EndYear)
		}
		rows[SheetWorkHistory] = append(rows[SheetWorkHistory], []interface{}{w.PersonID, w.CompanyID, w.Role, strconv.Itoa(w.StartYear), end})
	}

	for _, sheet := range sheetOrder {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %q: %w", sheet, err)
		}
		header := make([]interface{}, len(sheetHeaders[sheet]))
		for i, h := range sheetHeaders[sheet] {
			header[i] = h
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return fmt.Errorf("write header for sheet %q: %w", sheet, err)
		}
		for i, row := range rows[sheet] {
			row := row
			axis, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, axis, &row); err != nil {
				return fmt.Errorf("write sheet %q: %w", sheet, err)
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func personFromRow(row []string) models.Person {
	return models.Person{ID: cell(row, 0), Name: cell(row, 1), Title: cell(row, 2), Company: cell(row, 3), Email: cell(row, 4)}
}

func personRow(p models.Person) []interface{} {
	return []interface{}{p.ID, p.Name, p.Title, p.Company, p.Email}
}

func workFromRow(row []string) (models.WorkHistory, error) {
	w := models.WorkHistory{PersonID: cell(row, 0), CompanyID: cell(row, 1), Role: cell(row, 2)}
	start, err := strconv.Atoi(cell(row, 3))
	if err != nil {
		return w, fmt.Errorf("invalid start_year %q: %w", cell(row, 3), err)
	}
	w.StartYear = start
	if s := cell(row, 4); s != "" && !strings.EqualFold(s, "present") {
		end, err := strconv.Atoi(s)
		if err != nil {
			return w, fmt.Errorf("invalid end_year %q: %w", s, err)
		}
		w.EndYear = &end
	}
	return w, nil
}

// cell returns row[i] trimmed, or "" when the row is shorter (GetRows drops trailing blanks).
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
