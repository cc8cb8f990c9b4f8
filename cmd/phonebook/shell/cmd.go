// Package shellcmd implements the `phonebook shell` command.
package shellcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/phonebook/cmd/phonebook/shared"
	"github.com/go-ports/phonebook/internal/shell"
)

// Command implements `phonebook shell`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the shell command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive menu (default when no command is given)",
		Args:  cobra.NoArgs,
		RunE:  c.Run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

// Run opens the service and drives the interactive menu on the command's
// stdin/stdout until the user exits. The database is closed on every path.
func (c *Command) Run(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.OpenService()
	if err != nil {
		return err
	}
	defer svc.Close()

	defaults := shell.Defaults{
		JSONFile: svc.Config.Transfer.JSONFile,
		CSVFile:  svc.Config.Transfer.CSVFile,
	}
	return shell.New(svc, cmd.InOrStdin(), cmd.OutOrStdout(), defaults).Run()
}
