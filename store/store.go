// Package store owns the contact collection. It is the only writer of
// contact state; id assignment is delegated to the database so ids of
// deleted contacts are never reused.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"contactbook/db"
	"contactbook/models"
)

// ErrNotFound is returned when an operation targets an id with no live
// contact.
var ErrNotFound = errors.New("contact not found")

// ValidationError reports a client-fixable problem with submitted contact
// data. Record is the zero-based index of the failing record for bulk
// imports, -1 for single-contact operations.
type ValidationError struct {
	Record int
	Msg    string
}

func (e *ValidationError) Error() string {
	if e.Record >= 0 {
		return fmt.Sprintf("record %d: %s", e.Record, e.Msg)
	}
	return e.Msg
}

// Store wraps the database connection and provides contact CRUD, bookmark,
// and bulk import operations.
type Store struct {
	db      *sql.DB
	dialect string
}

// New returns a Store speaking the given dialect (db.DialectSQLite or
// db.DialectPostgres).
func New(database *sql.DB, dialect string) *Store {
	return &Store{db: database, dialect: dialect}
}

// Ping checks the database connection.
func (s *Store) Ping() error { return s.db.Ping() }

// q rewrites ? placeholders to $N for the postgres dialect so every query is
// written once, in sqlite style.
func (s *Store) q(query string) string {
	if s.dialect != db.DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// CreateContact validates the input, assigns a fresh id, and stores the
// contact with its details in submitted order. New contacts are never
// bookmarked.
func (s *Store) CreateContact(in models.ContactInput) (*models.Contact, error) {
	if msg := in.Validate(); msg != "" {
		return nil, &ValidationError{Record: -1, Msg: msg}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	id, err := s.insertContact(tx, in.Name, false)
	if err != nil {
		return nil, err
	}
	if err := s.insertDetails(tx, id, in.Details); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetContact(id)
}

// GetContact returns the full contact or ErrNotFound.
func (s *Store) GetContact(id int64) (*models.Contact, error) {
	var c models.Contact
	err := s.db.QueryRow(s.q("SELECT id, name, is_bookmarked, created_at FROM contacts WHERE id = ?"), id).
		Scan(&c.ID, &c.Name, &c.IsBookmarked, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadDetails(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListContacts returns contact summaries in creation order. With
// bookmarkedOnly set, only bookmarked contacts are returned.
func (s *Store) ListContacts(bookmarkedOnly bool) ([]models.ContactSummary, error) {
	query := "SELECT id, name, is_bookmarked, created_at FROM contacts"
	var args []any
	if bookmarkedOnly {
		query += " WHERE is_bookmarked = ?"
		args = append(args, true)
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(s.q(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []models.ContactSummary
	for rows.Next() {
		var c models.ContactSummary
		if err := rows.Scan(&c.ID, &c.Name, &c.IsBookmarked, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	if contacts == nil {
		contacts = []models.ContactSummary{}
	}
	return contacts, rows.Err()
}

// UpdateContact replaces the name and the entire detail list of an existing
// contact in one transaction. Id, bookmark flag, and creation time are
// preserved.
func (s *Store) UpdateContact(id int64, in models.ContactInput) (*models.Contact, error) {
	if msg := in.Validate(); msg != "" {
		return nil, &ValidationError{Record: -1, Msg: msg}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(s.q("UPDATE contacts SET name = ? WHERE id = ?"), in.Name, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	if _, err := tx.Exec(s.q("DELETE FROM contact_details WHERE contact_id = ?"), id); err != nil {
		return nil, err
	}
	if err := s.insertDetails(tx, id, in.Details); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetContact(id)
}

// DeleteContact removes a contact and its details. Deleting an unknown or
// already-deleted id fails with ErrNotFound.
func (s *Store) DeleteContact(id int64) error {
	res, err := s.db.Exec(s.q("DELETE FROM contacts WHERE id = ?"), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleBookmark flips the bookmark flag and returns the updated contact.
func (s *Store) ToggleBookmark(id int64) (*models.Contact, error) {
	res, err := s.db.Exec(s.q("UPDATE contacts SET is_bookmarked = NOT is_bookmarked WHERE id = ?"), id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.GetContact(id)
}

// AllContacts returns every contact with details, in creation order. This is
// the export view.
func (s *Store) AllContacts() ([]models.Contact, error) {
	rows, err := s.db.Query(s.q("SELECT id, name, is_bookmarked, created_at FROM contacts ORDER BY id"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.IsBookmarked, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range contacts {
		if err := s.loadDetails(&contacts[i]); err != nil {
			return nil, err
		}
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return contacts, nil
}

// ImportContacts creates every record inside a single transaction: either
// the whole batch lands or none of it does. Fresh ids are always assigned;
// ids from a previous export are not restored. An invalid record aborts the
// batch with a ValidationError naming its index.
func (s *Store) ImportContacts(records []models.ContactRecord) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for i, rec := range records {
		in := models.ContactInput{Name: rec.Name, Details: rec.Details}
		if msg := in.Validate(); msg != "" {
			return 0, &ValidationError{Record: i, Msg: msg}
		}
		id, err := s.insertContact(tx, rec.Name, rec.IsBookmarked)
		if err != nil {
			return 0, err
		}
		if err := s.insertDetails(tx, id, rec.Details); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *Store) insertContact(tx *sql.Tx, name string, bookmarked bool) (int64, error) {
	var id int64
	err := tx.QueryRow(s.q("INSERT INTO contacts (name, is_bookmarked) VALUES (?, ?) RETURNING id"),
		name, bookmarked).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting contact: %w", err)
	}
	return id, nil
}

// insertDetails inserts details one by one inside the transaction; row ids
// then increase in submitted order.
func (s *Store) insertDetails(tx *sql.Tx, contactID int64, details []models.ContactDetail) error {
	for _, d := range details {
		if _, err := tx.Exec(s.q("INSERT INTO contact_details (contact_id, type, value, label) VALUES (?, ?, ?, ?)"),
			contactID, d.Type, d.Value, d.Label); err != nil {
			return fmt.Errorf("inserting contact detail: %w", err)
		}
	}
	return nil
}

// loadDetails populates Details in insertion order.
func (s *Store) loadDetails(c *models.Contact) error {
	rows, err := s.db.Query(s.q("SELECT type, value, label FROM contact_details WHERE contact_id = ? ORDER BY id"), c.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var d models.ContactDetail
		if err := rows.Scan(&d.Type, &d.Value, &d.Label); err != nil {
			return err
		}
		c.Details = append(c.Details, d)
	}
	if c.Details == nil {
		c.Details = []models.ContactDetail{}
	}
	return rows.Err()
}
