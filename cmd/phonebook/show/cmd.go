// Package showcmd implements the `phonebook show` command.
package showcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/phonebook/cmd/phonebook/shared"
)

// Command implements `phonebook show`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the show command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "show <contact-id>",
		Short: "Show a single contact",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	id, err := shared.ParseID(args[0])
	if err != nil {
		return err
	}

	svc, err := c.ctx.OpenService()
	if err != nil {
		return err
	}
	defer svc.Close()

	ct, err := svc.Get(id)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if ct == nil {
		fmt.Fprintf(out, "No contact found for %d\n", id)
		return nil
	}
	fmt.Fprintf(out, "ID:    %d\n", ct.ID)
	fmt.Fprintf(out, "Name:  %s\n", ct.Name)
	fmt.Fprintf(out, "Phone: %s\n", ct.Phone)
	if ct.Email != nil {
		fmt.Fprintf(out, "Email: %s\n", *ct.Email)
	}
	return nil
}
