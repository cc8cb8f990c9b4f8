// Package listcmd implements the `phonebook list` command.
package listcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/phonebook/cmd/phonebook/shared"
	"github.com/go-ports/phonebook/internal/shell"
	"github.com/go-ports/phonebook/internal/transfer"
)

// Command implements `phonebook list`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	asJSON bool
}

// New creates the list command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "list",
		Short: "List contacts ordered by name",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().BoolVar(&c.asJSON, "json", false, "Print the contacts as a JSON array")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.OpenService()
	if err != nil {
		return err
	}
	defer svc.Close()

	contacts, err := svc.List()
	if err != nil {
		return err
	}
	if c.asJSON {
		return transfer.EncodeJSON(cmd.OutOrStdout(), contacts)
	}
	shell.WriteTable(cmd.OutOrStdout(), contacts)
	return nil
}
