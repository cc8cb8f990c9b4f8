package rootcmd_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	rootcmd "github.com/go-ports/phonebook/cmd/phonebook/root"
	"github.com/go-ports/phonebook/internal/buildinfo"
)

// runCmd executes the root command with args and stdin, returning stdout.
func runCmd(tb testing.TB, stdin string, args ...string) (string, error) {
	tb.Helper()

	var buf bytes.Buffer
	root := rootcmd.New()
	root.SetOut(&buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	execErr := root.ExecuteContext(context.Background())

	return buf.String(), execErr
}

// mustRun is runCmd under a fixed --home, failing the test on error.
func mustRun(c *qt.C, home string, args ...string) string {
	c.TB.Helper()
	out, err := runCmd(c.TB, "", append([]string{"--home", home}, args...)...)
	c.Assert(err, qt.IsNil, qt.Commentf("phonebook %v: %s", args, out))
	return out
}

func TestVersion(t *testing.T) {
	c := qt.New(t)

	out, err := runCmd(t, "", "version")
	c.Assert(err, qt.IsNil)
	c.Assert(strings.TrimSpace(out), qt.Equals, buildinfo.String())
}

func TestInit(t *testing.T) {
	c := qt.New(t)
	home := filepath.Join(t.TempDir(), "pb")

	out := mustRun(c, home, "init")
	c.Assert(out, qt.Contains, "Phonebook initialized at "+home)

	_, err := os.Stat(filepath.Join(home, "phonebook.db"))
	c.Assert(err, qt.IsNil)
}

func TestContactCommands_HappyPath(t *testing.T) {
	c := qt.New(t)
	home := t.TempDir()

	c.Assert(mustRun(c, home, "add", "--name", "Bob", "--phone", "555-2222", "--email", "bob@x.com"),
		qt.Equals, "Added contact 1\n")
	c.Assert(mustRun(c, home, "add", "--name", "Ana", "--phone", "555-1111"),
		qt.Equals, "Added contact 2\n")

	out := mustRun(c, home, "list")
	c.Assert(strings.Index(out, "Ana") < strings.Index(out, "Bob"), qt.IsTrue)

	var listed []map[string]any
	c.Assert(json.Unmarshal([]byte(mustRun(c, home, "list", "--json")), &listed), qt.IsNil)
	c.Assert(listed, qt.HasLen, 2)
	c.Assert(listed[0]["name"], qt.Equals, "Ana")
	c.Assert(listed[0]["email"], qt.IsNil)

	out = mustRun(c, home, "show", "1")
	c.Assert(out, qt.Contains, "Email: bob@x.com")

	c.Assert(mustRun(c, home, "edit", "1", "--phone", "555-9999", "--clear-email"),
		qt.Equals, "Updated contact 1\n")
	out = mustRun(c, home, "show", "1")
	c.Assert(out, qt.Contains, "Phone: 555-9999")
	c.Assert(out, qt.Not(qt.Contains), "Email:")

	c.Assert(mustRun(c, home, "edit", "99", "--name", "Ghost"), qt.Equals, "No contact found for 99\n")
	c.Assert(mustRun(c, home, "delete", "2"), qt.Equals, "Deleted contact 2\n")
	c.Assert(mustRun(c, home, "delete", "2"), qt.Equals, "No contact found for 2\n")
	c.Assert(mustRun(c, home, "show", "2"), qt.Equals, "No contact found for 2\n")
}

func TestContactCommands_FailurePath(t *testing.T) {
	c := qt.New(t)
	home := t.TempDir()

	cases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"add without phone", []string{"add", "--name", "Ana"}, `.*"phone".*not set`},
		{"add with blank name", []string{"add", "--name", " ", "--phone", "1"}, ".*name is required"},
		{"show bad id", []string{"show", "abc"}, `invalid contact id "abc"`},
		{"edit with no flags", []string{"edit", "1"}, "nothing to change.*"},
		{"edit email and clear-email", []string{"edit", "1", "--email", "a@x.com", "--clear-email"}, ".*clear-email.*"},
		{"unknown export format", []string{"export", "xml"}, "unknown format.*"},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			_, err := runCmd(c.TB, "", append([]string{"--home", home}, tc.args...)...)
			c.Assert(err, qt.ErrorMatches, tc.wantErr)
		})
	}
}

func TestExportImportCommands(t *testing.T) {
	c := qt.New(t)
	home := t.TempDir()
	dir := t.TempDir()

	mustRun(c, home, "add", "--name", "Ana", "--phone", "555-1111")
	mustRun(c, home, "add", "--name", "Bob", "--phone", "555-2222", "--email", "bob@x.com")

	jsonPath := filepath.Join(dir, "out.json")
	csvPath := filepath.Join(dir, "out.csv")
	c.Assert(mustRun(c, home, "export", "json", jsonPath), qt.Equals, "Exported 2 contact(s) to "+jsonPath+"\n")
	c.Assert(mustRun(c, home, "export", "CSV", csvPath), qt.Equals, "Exported 2 contact(s) to "+csvPath+"\n")

	data, err := os.ReadFile(csvPath)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, "id,name,phone,email\n1,Ana,555-1111,\n2,Bob,555-2222,bob@x.com\n")

	other := t.TempDir()
	c.Assert(mustRun(c, other, "import", "json", jsonPath), qt.Equals,
		"Imported 2 contact(s) from "+jsonPath+" (0 skipped)\n")
	c.Assert(mustRun(c, other, "import", "csv", csvPath), qt.Equals,
		"Imported 2 contact(s) from "+csvPath+" (0 skipped)\n")

	var listed []map[string]any
	c.Assert(json.Unmarshal([]byte(mustRun(c, other, "list", "--json")), &listed), qt.IsNil)
	c.Assert(listed, qt.HasLen, 4)

	_, err = runCmd(t, "", "--home", other, "import", "json", filepath.Join(dir, "missing.json"))
	c.Assert(err, qt.ErrorMatches, "file not found.*")
}

func TestShell_DefaultCommand(t *testing.T) {
	c := qt.New(t)
	home := t.TempDir()
	mustRun(c, home, "add", "--name", "Ana", "--phone", "555-1111")

	out, err := runCmd(t, "2\n0\n", "--home", home)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "1. Add contact")
	c.Assert(out, qt.Matches, `(?s).*1\s+Ana\s+555-1111.*`)
	c.Assert(out, qt.Contains, "Goodbye.")

	out, err = runCmd(t, "0\n", "--home", home, "shell")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Goodbye.")
}

func TestConfigCommands(t *testing.T) {
	c := qt.New(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PHONEBOOK_HOME", "")
	home := t.TempDir()

	out := mustRun(c, home, "config")
	c.Assert(out, qt.Contains, "phonebook_home_source: flag")
	c.Assert(out, qt.Contains, "database_path: "+filepath.Join(home, "phonebook.db"))

	c.Assert(mustRun(c, home, "config", "init"), qt.Equals, "Created "+filepath.Join(home, "config.yaml")+"\n")
	c.Assert(mustRun(c, home, "config", "init"), qt.Contains, "Config already exists")

	persisted := filepath.Join(t.TempDir(), "persisted")
	out, err := runCmd(t, "", "config", "set-home", persisted)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Persisted phonebook home: "+persisted)

	out, err = runCmd(t, "", "config")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "phonebook_home_source: config")

	out, err = runCmd(t, "", "config", "clear-home")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "Cleared persisted phonebook home setting.\n")
}
