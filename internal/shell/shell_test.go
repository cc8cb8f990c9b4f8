package shell_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/phonebook/internal/models"
	"github.com/go-ports/phonebook/internal/service"
	"github.com/go-ports/phonebook/internal/shell"
)

// runShell feeds the given input lines to a fresh Shell backed by svc and
// returns everything it printed.
func runShell(c *qt.C, svc *service.Service, defaults shell.Defaults, lines ...string) string {
	c.TB.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	err := shell.New(svc, in, &out, defaults).Run()
	c.Assert(err, qt.IsNil)
	return out.String()
}

func newTestService(c *qt.C) *service.Service {
	c.TB.Helper()
	svc, err := service.New(c.TB.TempDir())
	c.Assert(err, qt.IsNil)
	c.TB.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestShell_Menu(t *testing.T) {
	c := qt.New(t)

	c.Run("exit choice ends the loop", func(c *qt.C) {
		out := runShell(c, newTestService(c), shell.Defaults{}, "0")
		c.Assert(out, qt.Contains, "1. Add contact")
		c.Assert(out, qt.Contains, "8. Import from CSV")
		c.Assert(out, qt.Contains, "0. Exit")
		c.Assert(out, qt.Contains, "Goodbye.")
	})

	c.Run("end of input ends the loop", func(c *qt.C) {
		var out bytes.Buffer
		err := shell.New(newTestService(c), strings.NewReader(""), &out, shell.Defaults{}).Run()
		c.Assert(err, qt.IsNil)
	})

	c.Run("invalid choices are reported", func(c *qt.C) {
		out := runShell(c, newTestService(c), shell.Defaults{}, "abc", "42", "0")
		c.Assert(out, qt.Contains, `Invalid option "abc".`)
		c.Assert(out, qt.Contains, `Invalid option "42".`)
	})
}

func TestShell_AddListEditDelete(t *testing.T) {
	c := qt.New(t)
	svc := newTestService(c)

	out := runShell(c, svc, shell.Defaults{},
		"1", "Bob", "555-2222", "bob@x.com",
		"1", "Ana", "555-1111", "",
		"1", "", "555-0000", "",
		"2",
		"0",
	)
	c.Assert(out, qt.Contains, "Contact added with id 1.")
	c.Assert(out, qt.Contains, "Contact added with id 2.")
	c.Assert(out, qt.Contains, "Error: validation failed: name is required")
	c.Assert(strings.Index(out, "Ana") < strings.Index(out, "bob@x.com"), qt.IsTrue)

	out = runShell(c, svc, shell.Defaults{},
		"3", "1", "", "555-9999", shell.ClearEmail,
		"3", "99",
		"3", "x",
		"0",
	)
	c.Assert(out, qt.Contains, "Name [Bob]: ")
	c.Assert(out, qt.Contains, "Email [bob@x.com] (- to clear): ")
	c.Assert(out, qt.Contains, "Contact 1 updated.")
	c.Assert(out, qt.Contains, "No contact found with id 99.")
	c.Assert(out, qt.Contains, `Invalid id "x".`)

	got, err := svc.Get(1)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, &models.Contact{ID: 1, Name: "Bob", Phone: "555-9999"})

	out = runShell(c, svc, shell.Defaults{}, "4", "2", "4", "2", "0")
	c.Assert(out, qt.Contains, "Contact 2 deleted.")
	c.Assert(out, qt.Contains, "No contact found with id 2.")

	out = runShell(c, svc, shell.Defaults{}, "4", "1", "2", "0")
	c.Assert(out, qt.Contains, "No contacts found.")
}

func TestShell_ExportImport(t *testing.T) {
	c := qt.New(t)
	svc := newTestService(c)
	dir := c.TB.TempDir()
	defaults := shell.Defaults{
		JSONFile: filepath.Join(dir, "contacts.json"),
		CSVFile:  filepath.Join(dir, "contacts.csv"),
	}

	_, err := svc.Add(&models.ContactInput{Name: "Ana", Phone: "555-1111"})
	c.Assert(err, qt.IsNil)

	out := runShell(c, svc, defaults, "5", "", "6", "", "0")
	c.Assert(out, qt.Contains, "Exported 1 contact(s) to "+defaults.JSONFile+".")
	c.Assert(out, qt.Contains, "Exported 1 contact(s) to "+defaults.CSVFile+".")

	csvData, err := os.ReadFile(defaults.CSVFile)
	c.Assert(err, qt.IsNil)
	c.Assert(string(csvData), qt.Equals, "id,name,phone,email\n1,Ana,555-1111,\n")

	out = runShell(c, svc, defaults, "7", "", "8", defaults.CSVFile, "7", filepath.Join(dir, "missing.json"), "0")
	c.Assert(out, qt.Contains, "Imported 1 contact(s) from "+defaults.JSONFile+" (0 skipped).")
	c.Assert(out, qt.Contains, "Imported 1 contact(s) from "+defaults.CSVFile+" (0 skipped).")
	c.Assert(out, qt.Contains, "Error: file not found")

	n, err := svc.Count()
	c.Assert(err, qt.IsNil)
	c.Assert(n, qt.Equals, 3)
}

func TestWriteTable(t *testing.T) {
	c := qt.New(t)

	email := "bob@x.com"
	var buf bytes.Buffer
	shell.WriteTable(&buf, []models.Contact{
		{ID: 1, Name: "Ana", Phone: "555-1111"},
		{ID: 2, Name: "Bob", Phone: "555-2222", Email: &email},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	c.Assert(lines, qt.HasLen, 3)
	c.Assert(lines[0], qt.Matches, `ID\s+NAME\s+PHONE\s+EMAIL`)
	c.Assert(lines[2], qt.Matches, `2\s+Bob\s+555-2222\s+bob@x.com`)
}
