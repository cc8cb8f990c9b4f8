// Package addcmd implements the `phonebook add` command.
package addcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/phonebook/cmd/phonebook/shared"
	"github.com/go-ports/phonebook/internal/models"
)

// Command implements `phonebook add`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	name  string
	phone string
	email string
}

// New creates the add command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.StringVar(&c.name, "name", "", "Contact name (required)")
	f.StringVar(&c.phone, "phone", "", "Phone number (required)")
	f.StringVar(&c.email, "email", "", "Email address")

	_ = c.cmd.MarkFlagRequired("name")
	_ = c.cmd.MarkFlagRequired("phone")

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

	id, err := svc.Add(&models.ContactInput{Name: c.name, Phone: c.phone, Email: c.email})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added contact %d\n", id)
	return nil
}
