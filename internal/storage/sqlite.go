package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/kue/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

var _ Storage = (*SQLiteStorage)(nil)

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist. ":memory:" opens a private in-memory database.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// schemaVersion is stored in PRAGMA user_version. Dataset tables from an older
// version are dropped and recreated; they hold nothing that a re-import cannot restore.
const schemaVersion = 2

var datasetTables = []string{"meeting_attendees", "meetings", "emails", "work_history", "companies", "people"}

func initSchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	if version < schemaVersion {
		for _, table := range datasetTables {
			if _, err := db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
				return fmt.Errorf("failed to drop %s: %w", table, err)
			}
		}
	}

	// Dataset rows are keyed by position, not id: the loader keeps duplicate
	// ids and the current user may also appear in people.
	schema := `
	CREATE TABLE IF NOT EXISTS people (
		is_self INTEGER NOT NULL DEFAULT 0,
		position INTEGER NOT NULL,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		title TEXT,
		company TEXT,
		email TEXT,
		PRIMARY KEY (is_self, position)
	);

	CREATE TABLE IF NOT EXISTS companies (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		domain TEXT
	);

	CREATE TABLE IF NOT EXISTS emails (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		sender TEXT NOT NULL,
		recipient TEXT NOT NULL,
		sent_on TEXT NOT NULL,
		subject TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_emails_sender ON emails(sender);
	CREATE INDEX IF NOT EXISTS idx_emails_recipient ON emails(recipient);

	CREATE TABLE IF NOT EXISTS meetings (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		title TEXT,
		held_on TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meeting_attendees (
		meeting_position INTEGER NOT NULL,
		position INTEGER NOT NULL,
		person_id TEXT NOT NULL,
		PRIMARY KEY (meeting_position, position),
		FOREIGN KEY (meeting_position) REFERENCES meetings(position) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS work_history (
		position INTEGER PRIMARY KEY,
		person_id TEXT NOT NULL,
		company_id TEXT NOT NULL,
		role TEXT,
		start_year INTEGER NOT NULL,
		end_year INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_work_history_person ON work_history(person_id);

	CREATE TABLE IF NOT EXISTS intro_requests (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		request_id TEXT NOT NULL,
		target_id TEXT NOT NULL,
		status TEXT NOT NULL,
		message TEXT,
		requested_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_intro_requests_target ON intro_requests(target_id);
	`
	if _, err := db.Exec(schema); err != nil {
		return err
	}
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
	return err
}

// ReplaceDataset swaps the stored dataset for r in one transaction.
func (s *SQLiteStorage) ReplaceDataset(ctx context.Context, r *models.Records) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range datasetTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := insertPeople(ctx, tx, r); err != nil {
		return err
	}
	if err := insertCompanies(ctx, tx, r.Companies); err != nil {
		return err
	}
	if err := insertEmails(ctx, tx, r.Emails); err != nil {
		return err
	}
	if err := insertMeetings(ctx, tx, r.Meetings); err != nil {
		return err
	}
	if err := insertWorkHistory(ctx, tx, r.WorkHistory); err != nil {
		return err
	}
	return tx.Commit()
}

func insertPeople(ctx context.Context, tx *sql.Tx, r *models.Records) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO people (is_self, position, id, name, title, company, email)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	if self := r.CurrentUser; self != nil {
		if _, err := stmt.ExecContext(ctx, 1, 0, self.ID, self.Name, self.Title, self.Company, self.Email); err != nil {
			return fmt.Errorf("failed to insert current user: %w", err)
		}
	}
	for i, p := range r.People {
		if _, err := stmt.ExecContext(ctx, 0, i, p.ID, p.Name, p.Title, p.Company, p.Email); err != nil {
			return fmt.Errorf("failed to insert person %s: %w", p.ID, err)
		}
	}
	return nil
}

func insertCompanies(ctx context.Context, tx *sql.Tx, companies []models.Company) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO companies (position, id, name, domain) VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, c := range companies {
		if _, err := stmt.ExecContext(ctx, i, c.ID, c.Name, c.Domain); err != nil {
			return fmt.Errorf("failed to insert company %s: %w", c.ID, err)
		}
	}
	return nil
}

func insertEmails(ctx context.Context, tx *sql.Tx, emails []models.EmailRecord) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO emails (position, id, sender, recipient, sent_on, subject)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range emails {
		if _, err := stmt.ExecContext(ctx, i, e.ID, e.From, e.To, e.Date.String(), e.Subject); err != nil {
			return fmt.Errorf("failed to insert email %s: %w", e.ID, err)
		}
	}
	return nil
}

func insertMeetings(ctx context.Context, tx *sql.Tx, meetings []models.MeetingRecord) error {
	meetingStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO meetings (position, id, title, held_on) VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer meetingStmt.Close()

	attendeeStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO meeting_attendees (meeting_position, position, person_id) VALUES (?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer attendeeStmt.Close()

	for i, m := range meetings {
		if _, err := meetingStmt.ExecContext(ctx, i, m.ID, m.Title, m.Date.String()); err != nil {
			return fmt.Errorf("failed to insert meeting %s: %w", m.ID, err)
		}
		for j, a := range m.Attendees {
			if _, err := attendeeStmt.ExecContext(ctx, i, j, a); err != nil {
				return fmt.Errorf("failed to insert attendee of %s: %w", m.ID, err)
			}
		}
	}
	return nil
}

func insertWorkHistory(ctx context.Context, tx *sql.Tx, work []models.WorkHistory) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO work_history (position, person_id, company_id, role, start_year, end_year)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, w := range work {
		var end sql.NullInt64
		if w.EndYear != nil {
			end = sql.NullInt64{Int64: int64(*w.EndYear), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i, w.PersonID, w.CompanyID, w.Role, w.StartYear, end); err != nil {
			return fmt.Errorf("failed to insert work history for %s: %w", w.PersonID, err)
		}
	}
	return nil
}

// LoadRecords reads the stored dataset in its original order.
// It returns ErrNotFound when nothing has been imported.
func (s *SQLiteStorage) LoadRecords(ctx context.Context) (*models.Records, error) {
	r := &models.Records{}
	if err := s.loadPeople(ctx, r); err != nil {
		return nil, err
	}
	if r.CurrentUser == nil && len(r.People) == 0 {
		return nil, ErrNotFound
	}
	if err := s.loadCompanies(ctx, r); err != nil {
		return nil, err
	}
	if err := s.loadEmails(ctx, r); err != nil {
		return nil, err
	}
	if err := s.loadMeetings(ctx, r); err != nil {
		return nil, err
	}
	if err := s.loadWorkHistory(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *SQLiteStorage) loadPeople(ctx context.Context, r *models.Records) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, is_self, name, title, company, email FROM people ORDER BY is_self DESC, position`,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p      models.Person
			isSelf bool
		)
		if err := rows.Scan(&p.ID, &isSelf, &p.Name, &p.Title, &p.Company, &p.Email); err != nil {
			return err
		}
		if isSelf {
			self := p
			r.CurrentUser = &self
			continue
		}
		r.People = append(r.People, p)
	}
	return rows.Err()
}

func (s *SQLiteStorage) loadCompanies(ctx context.Context, r *models.Records) error {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, domain FROM companies ORDER BY position`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Domain); err != nil {
			return err
		}
		r.Companies = append(r.Companies, c)
	}
	return rows.Err()
}

func (s *SQLiteStorage) loadEmails(ctx context.Context, r *models.Records) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, sender, recipient, sent_on, subject FROM emails ORDER BY position`,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e    models.EmailRecord
			date string
		)
		if err := rows.Scan(&e.ID, &e.From, &e.To, &date, &e.Subject); err != nil {
			return err
		}
		if e.Date, err = models.ParseDate(date); err != nil {
			return fmt.Errorf("email %s: %w", e.ID, err)
		}
		r.Emails = append(r.Emails, e)
	}
	return rows.Err()
}

func (s *SQLiteStorage) loadMeetings(ctx context.Context, r *models.Records) error {
	attendees := make(map[int][]string)
	rows, err := s.db.QueryContext(ctx,
		`SELECT meeting_position, person_id FROM meeting_attendees ORDER BY meeting_position, position`,
	)
	if err != nil {
		return err
	}
	for rows.Next() {
		var (
			meeting  int
			personID string
		)
		if err := rows.Scan(&meeting, &personID); err != nil {
			rows.Close()
			return err
		}
		attendees[meeting] = append(attendees[meeting], personID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx, `SELECT position, id, title, held_on FROM meetings ORDER BY position`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			m        models.MeetingRecord
			position int
			date     string
		)
		if err := rows.Scan(&position, &m.ID, &m.Title, &date); err != nil {
			return err
		}
		if m.Date, err = models.ParseDate(date); err != nil {
			return fmt.Errorf("meeting %s: %w", m.ID, err)
		}
		m.Attendees = attendees[position]
		r.Meetings = append(r.Meetings, m)
	}
	return rows.Err()
}

func (s *SQLiteStorage) loadWorkHistory(ctx context.Context, r *models.Records) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT person_id, company_id, role, start_year, end_year FROM work_history ORDER BY position`,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			w   models.WorkHistory
			end sql.NullInt64
		)
		if err := rows.Scan(&w.PersonID, &w.CompanyID, &w.Role, &w.StartYear, &end); err != nil {
			return err
		}
		if end.Valid {
			y := int(end.Int64)
			w.EndYear = &y
		}
		r.WorkHistory = append(r.WorkHistory, w)
	}
	return rows.Err()
}

// Counts returns the number of stored records of each kind. The current user is not counted as a person.
func (s *SQLiteStorage) Counts(ctx context.Context) (models.DatasetStats, error) {
	var stats models.DatasetStats
	queries := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM people WHERE is_self = 0`, &stats.People},
		{`SELECT COUNT(*) FROM companies`, &stats.Companies},
		{`SELECT COUNT(*) FROM emails`, &stats.Emails},
		{`SELECT COUNT(*) FROM meetings`, &stats.Meetings},
		{`SELECT COUNT(*) FROM work_history`, &stats.WorkHistory},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.query).Scan(q.dest); err != nil {
			return models.DatasetStats{}, err
		}
	}
	return stats, nil
}

// RecordIntroRequest appends res to the intro request log, stamping RequestedAt when unset.
func (s *SQLiteStorage) RecordIntroRequest(ctx context.Context, res *models.IntroRequestResult) error {
	if res.RequestedAt.IsZero() {
		res.RequestedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO intro_requests (request_id, target_id, status, message, requested_at)
		 VALUES (?, ?, ?, ?, ?)`,
		res.RequestID, res.TargetID, string(res.Status), res.Message, res.RequestedAt,
	)
	return err
}

// ListIntroRequests returns logged intro requests, newest first.
func (s *SQLiteStorage) ListIntroRequests(ctx context.Context, offset, limit int) ([]*models.IntroRequestResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT request_id, target_id, status, message, requested_at
		 FROM intro_requests ORDER BY seq DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.IntroRequestResult
	for rows.Next() {
		var (
			res    models.IntroRequestResult
			status string
		)
		if err := rows.Scan(&res.RequestID, &res.TargetID, &status, &res.Message, &res.RequestedAt); err != nil {
			return nil, err
		}
		res.Status = models.IntroStatus(status)
		out = append(out, &res)
	}
	return out, rows.Err()
}

// CountIntroRequests returns the number of logged intro requests.
func (s *SQLiteStorage) CountIntroRequests(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM intro_requests`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
