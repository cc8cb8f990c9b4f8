// Package shared holds the context passed to all CLI commands.
package shared

import (
	"fmt"
	"strconv"

	"github.com/go-ports/phonebook/internal/service"
)

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// Home overrides the phonebook home directory.
	// When empty, resolution falls through to PHONEBOOK_HOME env var → persisted config → ~/.phonebook.
	Home string
	// Database overrides the database file named in config.yaml.
	Database string
	// Debug enables debug-level logging.
	Debug bool
}

// OpenService opens the Service selected by the global flags.
// Callers must Close it.
func (c *Context) OpenService() (*service.Service, error) {
	return service.New(c.Home, service.WithDatabase(c.Database))
}

// ParseID parses a contact id argument.
func ParseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid contact id %q", arg)
	}
	return id, nil
}
