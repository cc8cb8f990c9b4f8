// Package db manages the SQLite database holding the contacts table.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver with database/sql

	"github.com/go-ports/phonebook/internal/models"
)

// DB wraps a *sql.DB with the path it was opened from.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the SQLite database at path and initialises the schema.
func Open(path string) (*DB, error) {
	sqldb, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("db.Open: %w", err)
	}
	// Single caller, single connection.
	sqldb.SetMaxOpenConns(1)

	d := &DB{db: sqldb, path: path}
	if err := d.createSchema(); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("db.Open createSchema: %w", err)
	}
	slog.Debug("db: opened", "path", path)
	return d, nil
}

// uriEscaper escapes the characters SQLite treats specially in a file: URI path.
var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3F", "#", "%23")

// dsn builds a file: URI for path so that '?' or '#' in a file name are not
// taken as the start of the driver's query parameters.
func dsn(path string) string {
	return "file:" + uriEscaper.Replace(path) + "?_journal_mode=WAL"
}

// Path returns the file the database was opened from.
func (d *DB) Path() string { return d.path }

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

func (d *DB) createSchema() error {
	const stmt = `CREATE TABLE IF NOT EXISTS contacts (
		id    INTEGER PRIMARY KEY AUTOINCREMENT,
		name  TEXT NOT NULL,
		phone TEXT NOT NULL,
		email TEXT
	)`
	if _, err := d.db.Exec(stmt); err != nil {
		return fmt.Errorf("createSchema exec: %w\nSQL: %s", err, stmt)
	}
	return nil
}

// ---------------------------------------------------------------------------
// CRUD
// ---------------------------------------------------------------------------

// InsertContact inserts a contact and returns its newly assigned id.
// c.ID is ignored.
func (d *DB) InsertContact(c *models.Contact) (int64, error) {
	res, err := d.db.Exec(
		`INSERT INTO contacts (name, phone, email) VALUES (?, ?, ?)`,
		c.Name, c.Phone, nullString(c.Email),
	)
	if err != nil {
		return 0, fmt.Errorf("InsertContact: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("InsertContact: last id: %w", err)
	}
	return id, nil
}

// GetContact fetches a single contact by id. Returns (nil, nil) when absent.
func (d *DB) GetContact(id int64) (*models.Contact, error) {
	row := d.db.QueryRow(
		`SELECT id, name, phone, email FROM contacts WHERE id = ?`, id,
	)
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetContact: %w", err)
	}
	return c, nil
}

// ListContacts returns every contact ordered by name, then id.
func (d *DB) ListContacts() ([]models.Contact, error) {
	return d.list("name, id")
}

// ListContactsByID returns every contact in storage (id) order.
func (d *DB) ListContactsByID() ([]models.Contact, error) {
	return d.list("id")
}

func (d *DB) list(orderBy string) ([]models.Contact, error) {
	q := "SELECT id, name, phone, email FROM contacts ORDER BY " + orderBy // #nosec G202 -- orderBy is one of two hardcoded column lists
	rows, err := d.db.Query(q)
	if err != nil {
		return nil, fmt.Errorf("ListContacts: %w", err)
	}
	defer rows.Close()

	out := make([]models.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("ListContacts: scan: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListContacts: rows: %w", err)
	}
	return out, nil
}

// UpdateContact applies the supplied fields of upd to the contact with id.
// upd must already be normalized. Returns true if the contact was found.
func (d *DB) UpdateContact(id int64, upd *models.ContactUpdate) (bool, error) {
	var exists int
	err := d.db.QueryRow(`SELECT 1 FROM contacts WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("UpdateContact: %w", err)
	}
	if upd.IsEmpty() {
		return true, nil
	}

	var sets []string
	var params []any
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		params = append(params, *upd.Name)
	}
	if upd.Phone != nil {
		sets = append(sets, "phone = ?")
		params = append(params, *upd.Phone)
	}
	if upd.Email != nil {
		sets = append(sets, "email = ?")
		params = append(params, nullString(models.OptionalString(*upd.Email)))
	}
	params = append(params, id)

	updQ := "UPDATE contacts SET " + strings.Join(sets, ", ") + " WHERE id = ?" // #nosec G202 -- SET clause columns are hardcoded; values flow through ? bound parameters
	if _, err := d.db.Exec(updQ, params...); err != nil {
		return false, fmt.Errorf("UpdateContact: %w", err)
	}
	return true, nil
}

// DeleteContact removes the contact with id.
// Returns true if a row was deleted.
func (d *DB) DeleteContact(id int64) (bool, error) {
	res, err := d.db.Exec(`DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("DeleteContact: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("DeleteContact: rows affected: %w", err)
	}
	return n > 0, nil
}

// CountContacts returns the number of stored contacts.
func (d *DB) CountContacts() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM contacts`).Scan(&n)
	return n, err
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(s rowScanner) (*models.Contact, error) {
	var c models.Contact
	var email sql.NullString
	if err := s.Scan(&c.ID, &c.Name, &c.Phone, &email); err != nil {
		return nil, err
	}
	if email.Valid && email.String != "" {
		v := email.String
		c.Email = &v
	}
	return &c, nil
}

func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
