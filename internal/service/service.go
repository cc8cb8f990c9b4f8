// Package service implements the phonebook Service that wires together
// configuration, the contacts database, and file import/export.
package service

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-ports/phonebook/internal/config"
	"github.com/go-ports/phonebook/internal/db"
	"github.com/go-ports/phonebook/internal/models"
	"github.com/go-ports/phonebook/internal/transfer"
)

// Service owns the open contacts database for the lifetime of one command.
type Service struct {
	Home   string
	Config *config.Config

	database *db.DB
}

// Option customises New.
type Option func(*options)

type options struct {
	databasePath string
}

// WithDatabase overrides the database path from config.yaml.
// An empty path is ignored.
func WithDatabase(path string) Option {
	return func(o *options) { o.databasePath = path }
}

// New initialises a Service rooted at home.
// If home is empty it is resolved via config.GetHome.
func New(home string, opts ...Option) (*Service, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if home == "" {
		home = config.GetHome()
	}

	cfg, err := config.Load(filepath.Join(home, "config.yaml"))
	if err != nil {
		return nil, fmt.Errorf("service.New: load config: %w", err)
	}

	dbPath := o.databasePath
	if dbPath == "" {
		dbPath = cfg.DatabasePath(home)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("service.New: create data dir: %w", err)
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("service.New: open db: %w", err)
	}

	return &Service{
		Home:     home,
		Config:   cfg,
		database: database,
	}, nil
}

// Close releases the database handle.
func (s *Service) Close() error {
	return s.database.Close()
}

// DatabasePath returns the file backing the contacts table.
func (s *Service) DatabasePath() string {
	return s.database.Path()
}

// ---------------------------------------------------------------------------
// Record operations
// ---------------------------------------------------------------------------

// Add validates in and inserts it as a new contact, returning the new id.
// A missing name or phone yields models.ErrValidation.
func (s *Service) Add(in *models.ContactInput) (int64, error) {
	c, err := in.Normalize()
	if err != nil {
		return 0, err
	}
	return s.database.InsertContact(c)
}

// List returns all contacts ordered by name. It never returns a nil slice.
func (s *Service) List() ([]models.Contact, error) {
	return s.database.ListContacts()
}

// Get returns the contact with id, or nil when it does not exist.
func (s *Service) Get(id int64) (*models.Contact, error) {
	return s.database.GetContact(id)
}

// Update applies the supplied fields of upd to the contact with id.
// Returns false when no such contact exists; nothing is created in that case.
func (s *Service) Update(id int64, upd *models.ContactUpdate) (bool, error) {
	norm, err := upd.Normalize()
	if err != nil {
		return false, err
	}
	return s.database.UpdateContact(id, norm)
}

// Delete removes the contact with id. Deleting an unknown id returns false.
func (s *Service) Delete(id int64) (bool, error) {
	return s.database.DeleteContact(id)
}

// Count returns the number of stored contacts.
func (s *Service) Count() (int, error) {
	return s.database.CountContacts()
}

// ---------------------------------------------------------------------------
// Import / export
// ---------------------------------------------------------------------------

// Export writes every contact, in id order, to path in format f and returns
// the number written.
func (s *Service) Export(path string, f transfer.Format) (int, error) {
	contacts, err := s.database.ListContactsByID()
	if err != nil {
		return 0, err
	}
	if err := transfer.Export(path, f, contacts); err != nil {
		return 0, err
	}
	slog.Debug("export: done", "path", path, "format", f, "count", len(contacts))
	return len(contacts), nil
}

// ExportJSON writes all contacts to path as a JSON array.
func (s *Service) ExportJSON(path string) (int, error) { return s.Export(path, transfer.JSON) }

// ExportCSV writes all contacts to path as CSV with an id,name,phone,email header.
func (s *Service) ExportCSV(path string) (int, error) { return s.Export(path, transfer.CSV) }

// Import reads path in format f and inserts every record that has both a
// name and a phone, assigning fresh ids. Incomplete records are skipped.
// A missing or unparseable file aborts before anything is inserted.
func (s *Service) Import(path string, f transfer.Format) (*models.ImportResult, error) {
	inputs, err := transfer.Import(path, f)
	if err != nil {
		return nil, err
	}

	res := &models.ImportResult{}
	for i := range inputs {
		c, err := inputs[i].Normalize()
		if err != nil {
			slog.Debug("import: skipping record", "path", path, "index", i, "err", err)
			res.Skipped++
			continue
		}
		if _, err := s.database.InsertContact(c); err != nil {
			return res, fmt.Errorf("service.Import: %w", err)
		}
		res.Imported++
	}
	return res, nil
}

// ImportJSON imports contacts from a JSON array file.
func (s *Service) ImportJSON(path string) (*models.ImportResult, error) {
	return s.Import(path, transfer.JSON)
}

// ImportCSV imports contacts from a header-keyed CSV file.
func (s *Service) ImportCSV(path string) (*models.ImportResult, error) {
	return s.Import(path, transfer.CSV)
}
