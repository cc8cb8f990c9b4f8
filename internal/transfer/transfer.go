// Package transfer encodes and decodes contact lists as JSON and CSV files.
//
// Export writes every contact with its stored id. Import yields one
// models.ContactInput per source record, ignoring any id column; callers
// decide which inputs are complete enough to insert.
package transfer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-ports/phonebook/internal/models"
)

var (
	// ErrFileNotFound is returned when an import source does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrParse is returned when an import source is not valid JSON or CSV.
	ErrParse = errors.New("parse error")
	// ErrUnknownFormat is returned by ParseFormat for unsupported names.
	ErrUnknownFormat = errors.New("unknown format")
)

// Format names a supported file format.
type Format string

// Supported formats.
const (
	JSON Format = "json"
	CSV  Format = "csv"
)

// csvHeader is the exact header row written by EncodeCSV.
var csvHeader = []string{"id", "name", "phone", "email"}

// ParseFormat maps a user-supplied name ("json", "CSV", ...) to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case JSON:
		return JSON, nil
	case CSV:
		return CSV, nil
	default:
		return "", fmt.Errorf("%w: %q (want json or csv)", ErrUnknownFormat, s)
	}
}

// ---------------------------------------------------------------------------
// Files
// ---------------------------------------------------------------------------

// Export writes contacts to path in format f, replacing any existing file.
func Export(path string, f Format, contacts []models.Contact) error {
	var encode func(io.Writer, []models.Contact) error
	switch f {
	case JSON:
		encode = EncodeJSON
	case CSV:
		encode = EncodeCSV
	default:
		return fmt.Errorf("transfer.Export: %w: %q", ErrUnknownFormat, f)
	}
	if err := writeAtomic(path, func(w io.Writer) error { return encode(w, contacts) }); err != nil {
		return fmt.Errorf("transfer.Export %s: %w", path, err)
	}
	return nil
}

// Import reads path in format f and returns one input per source record.
func Import(path string, f Format) ([]models.ContactInput, error) {
	var decode func(io.Reader) ([]models.ContactInput, error)
	switch f {
	case JSON:
		decode = DecodeJSON
	case CSV:
		decode = DecodeCSV
	default:
		return nil, fmt.Errorf("transfer.Import: %w: %q", ErrUnknownFormat, f)
	}

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("transfer.Import: %w", err)
	}
	defer file.Close()

	inputs, err := decode(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("transfer.Import %s: %w", path, err)
	}
	return inputs, nil
}

// writeAtomic writes through a temp file in the destination directory and
// renames it over path once fully flushed. The result has the mode chosen by
// exportMode rather than the temp file's 0600.
func writeAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".phonebook-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		removeTemp(tmpName)
	}

	w := bufio.NewWriter(tmp)
	if err := write(w); err != nil {
		cleanup()
		return err
	}
	if err := w.Flush(); err != nil {
		cleanup()
		return fmt.Errorf("flushing: %w", err)
	}
	if err := tmp.Chmod(exportMode(path)); err != nil {
		cleanup()
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("syncing: %w", err)
	}
	if err := tmp.Close(); err != nil {
		removeTemp(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		removeTemp(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// exportMode keeps the permissions of an existing target and uses 0644 for
// new files.
func exportMode(path string) fs.FileMode {
	if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
		return fi.Mode().Perm()
	}
	return 0o644
}

func removeTemp(name string) {
	if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("export: could not remove temp file", "path", name, "err", err)
	}
}

// ---------------------------------------------------------------------------
// JSON
// ---------------------------------------------------------------------------

type jsonContact struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email"`
}

// EncodeJSON writes contacts as an indented JSON array. Absent emails are
// null and non-ASCII text is written as-is.
func EncodeJSON(w io.Writer, contacts []models.Contact) error {
	out := make([]jsonContact, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, jsonContact{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email})
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// DecodeJSON reads a JSON array of objects. Elements that are not objects
// decode to an empty input; string and number values are accepted for name,
// phone and email.
func DecodeJSON(r io.Reader) ([]models.ContactInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrParse)
	}

	items, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON array of contacts", ErrParse)
	}

	out := make([]models.ContactInput, 0, len(items))
	for _, item := range items {
		obj, _ := item.(map[string]any)
		out = append(out, models.ContactInput{
			Name:  jsonString(obj["name"]),
			Phone: jsonString(obj["phone"]),
			Email: jsonString(obj["email"]),
		})
	}
	return out, nil
}

func jsonString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

// ---------------------------------------------------------------------------
// CSV
// ---------------------------------------------------------------------------

// EncodeCSV writes the header row id,name,phone,email followed by one row
// per contact. Absent emails are written as empty fields.
func EncodeCSV(w io.Writer, contacts []models.Contact) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range contacts {
		row := []string{strconv.FormatInt(c.ID, 10), c.Name, c.Phone, c.EmailOrEmpty()}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeCSV reads header-keyed rows. Column order is free, header names are
// matched case-insensitively, and a leading UTF-8 BOM is ignored. Short rows
// leave the missing columns empty. An empty source yields no inputs.
func DecodeCSV(r io.Reader) ([]models.ContactInput, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return make([]models.ContactInput, 0), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	field := func(row []string, key string) string {
		i, ok := cols[key]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	out := make([]models.ContactInput, 0)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		out = append(out, models.ContactInput{
			Name:  field(row, "name"),
			Phone: field(row, "phone"),
			Email: field(row, "email"),
		})
	}
	return out, nil
}
