// Package shell implements the interactive numbered-menu front end.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/go-ports/phonebook/internal/models"
	"github.com/go-ports/phonebook/internal/transfer"
)

// ClearEmail is the edit-prompt input that removes a stored email address.
const ClearEmail = "-"

// Store is the set of contact operations the shell dispatches to.
// *service.Service satisfies it.
type Store interface {
	Add(in *models.ContactInput) (int64, error)
	List() ([]models.Contact, error)
	Get(id int64) (*models.Contact, error)
	Update(id int64, upd *models.ContactUpdate) (bool, error)
	Delete(id int64) (bool, error)
	Export(path string, f transfer.Format) (int, error)
	Import(path string, f transfer.Format) (*models.ImportResult, error)
}

// Defaults holds the file names offered when an import/export prompt is left blank.
type Defaults struct {
	JSONFile string
	CSVFile  string
}

// choice is a menu entry number.
type choice int

const (
	choiceExit choice = iota
	choiceAdd
	choiceList
	choiceEdit
	choiceDelete
	choiceExportJSON
	choiceExportCSV
	choiceImportJSON
	choiceImportCSV
)

type action struct {
	label string
	run   func(*Shell) error
}

// actions is the dispatch table, indexed by choice.
var actions = []action{
	choiceExit:       {"Exit", nil},
	choiceAdd:        {"Add contact", (*Shell).add},
	choiceList:       {"List contacts", (*Shell).list},
	choiceEdit:       {"Edit contact", (*Shell).edit},
	choiceDelete:     {"Delete contact", (*Shell).delete},
	choiceExportJSON: {"Export to JSON", func(s *Shell) error { return s.export(transfer.JSON) }},
	choiceExportCSV:  {"Export to CSV", func(s *Shell) error { return s.export(transfer.CSV) }},
	choiceImportJSON: {"Import from JSON", func(s *Shell) error { return s.importFile(transfer.JSON) }},
	choiceImportCSV:  {"Import from CSV", func(s *Shell) error { return s.importFile(transfer.CSV) }},
}

// errInputClosed unwinds an action when input ends mid-prompt.
var errInputClosed = errors.New("input closed")

// Shell reads menu choices from in and writes prompts and results to out.
type Shell struct {
	store    Store
	in       *bufio.Scanner
	out      io.Writer
	defaults Defaults
}

// New creates a Shell. Blank defaults fall back to contacts.json / contacts.csv.
func New(store Store, in io.Reader, out io.Writer, defaults Defaults) *Shell {
	if defaults.JSONFile == "" {
		defaults.JSONFile = "contacts.json"
	}
	if defaults.CSVFile == "" {
		defaults.CSVFile = "contacts.csv"
	}
	return &Shell{
		store:    store,
		in:       bufio.NewScanner(in),
		out:      out,
		defaults: defaults,
	}
}

// Run shows the menu and dispatches choices until the user picks Exit or
// input ends. Operation failures are reported and the loop continues; only
// a read error on the input is returned.
func (s *Shell) Run() error {
	for {
		s.printMenu()
		line, err := s.prompt("Choose an option: ")
		if errors.Is(err, errInputClosed) {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}

		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 0 || n >= len(actions) {
			fmt.Fprintf(s.out, "Invalid option %q.\n", line)
			continue
		}
		if choice(n) == choiceExit {
			fmt.Fprintln(s.out, "Goodbye.")
			return nil
		}

		err = actions[n].run(s)
		switch {
		case errors.Is(err, errInputClosed):
			fmt.Fprintln(s.out)
			return s.in.Err()
		case err != nil:
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.out, "\nPhonebook")
	for i := 1; i < len(actions); i++ {
		fmt.Fprintf(s.out, "  %d. %s\n", i, actions[i].label)
	}
	fmt.Fprintf(s.out, "  %d. %s\n", choiceExit, actions[choiceExit].label)
}

// prompt writes label and returns the next trimmed input line.
func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", errInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) promptID() (int64, bool, error) {
	line, err := s.prompt("Contact id: ")
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseInt(line, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(s.out, "Invalid id %q.\n", line)
		return 0, false, nil
	}
	return id, true, nil
}

// ---------------------------------------------------------------------------
// Actions
// ---------------------------------------------------------------------------

func (s *Shell) add() error {
	var in models.ContactInput
	var err error
	if in.Name, err = s.prompt("Name: "); err != nil {
		return err
	}
	if in.Phone, err = s.prompt("Phone: "); err != nil {
		return err
	}
	if in.Email, err = s.prompt("Email (optional): "); err != nil {
		return err
	}

	id, err := s.store.Add(&in)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Contact added with id %d.\n", id)
	return nil
}

func (s *Shell) list() error {
	contacts, err := s.store.List()
	if err != nil {
		return err
	}
	WriteTable(s.out, contacts)
	return nil
}

func (s *Shell) edit() error {
	id, ok, err := s.promptID()
	if err != nil || !ok {
		return err
	}
	current, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if current == nil {
		fmt.Fprintf(s.out, "No contact found with id %d.\n", id)
		return nil
	}

	fmt.Fprintln(s.out, "Leave a field blank to keep its current value.")
	var upd models.ContactUpdate
	name, err := s.prompt(fmt.Sprintf("Name [%s]: ", current.Name))
	if err != nil {
		return err
	}
	if name != "" {
		upd.Name = &name
	}
	phone, err := s.prompt(fmt.Sprintf("Phone [%s]: ", current.Phone))
	if err != nil {
		return err
	}
	if phone != "" {
		upd.Phone = &phone
	}
	email, err := s.prompt(fmt.Sprintf("Email [%s] (%s to clear): ", current.EmailOrEmpty(), ClearEmail))
	if err != nil {
		return err
	}
	switch email {
	case "":
	case ClearEmail:
		cleared := ""
		upd.Email = &cleared
	default:
		upd.Email = &email
	}

	found, err := s.store.Update(id, &upd)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(s.out, "No contact found with id %d.\n", id)
		return nil
	}
	fmt.Fprintf(s.out, "Contact %d updated.\n", id)
	return nil
}

func (s *Shell) delete() error {
	id, ok, err := s.promptID()
	if err != nil || !ok {
		return err
	}
	deleted, err := s.store.Delete(id)
	if err != nil {
		return err
	}
	if deleted {
		fmt.Fprintf(s.out, "Contact %d deleted.\n", id)
	} else {
		fmt.Fprintf(s.out, "No contact found with id %d.\n", id)
	}
	return nil
}

func (s *Shell) export(f transfer.Format) error {
	path, err := s.promptFile(f)
	if err != nil {
		return err
	}
	n, err := s.store.Export(path, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Exported %d contact(s) to %s.\n", n, path)
	return nil
}

func (s *Shell) importFile(f transfer.Format) error {
	path, err := s.promptFile(f)
	if err != nil {
		return err
	}
	res, err := s.store.Import(path, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Imported %d contact(s) from %s (%d skipped).\n", res.Imported, path, res.Skipped)
	return nil
}

func (s *Shell) promptFile(f transfer.Format) (string, error) {
	def := s.defaults.JSONFile
	if f == transfer.CSV {
		def = s.defaults.CSVFile
	}
	path, err := s.prompt(fmt.Sprintf("File name [%s]: ", def))
	if err != nil {
		return "", err
	}
	if path == "" {
		path = def
	}
	return path, nil
}

// WriteTable renders contacts as an aligned id/name/phone/email table, or a
// short notice when there are none.
func WriteTable(w io.Writer, contacts []models.Contact) {
	if len(contacts) == 0 {
		fmt.Fprintln(w, "No contacts found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPHONE\tEMAIL")
	for _, c := range contacts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.Phone, c.EmailOrEmpty())
	}
	_ = tw.Flush()
}
