// Package editcmd implements the `phonebook edit` command.
package editcmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/phonebook/cmd/phonebook/shared"
	"github.com/go-ports/phonebook/internal/models"
)

// Command implements `phonebook edit`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	name       string
	phone      string
	email      string
	clearEmail bool
}

// New creates the edit command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "edit <contact-id>",
		Short: "Change fields of an existing contact",
		Long: "Change fields of an existing contact. Only the flags given are applied;\n" +
			"use --clear-email to remove a stored email address.",
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}

	f := c.cmd.Flags()
	f.StringVar(&c.name, "name", "", "New name")
	f.StringVar(&c.phone, "phone", "", "New phone number")
	f.StringVar(&c.email, "email", "", "New email address")
	f.BoolVar(&c.clearEmail, "clear-email", false, "Remove the stored email address")
	c.cmd.MarkFlagsMutuallyExclusive("email", "clear-email")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	id, err := shared.ParseID(args[0])
	if err != nil {
		return err
	}

	upd := c.update(cmd)
	if upd.IsEmpty() {
		return errors.New("nothing to change: pass --name, --phone, --email or --clear-email")
	}

	svc, err := c.ctx.OpenService()
	if err != nil {
		return err
	}
	defer svc.Close()

	found, err := svc.Update(id, upd)
	if err != nil {
		return err
	}
	if found {
		fmt.Fprintf(cmd.OutOrStdout(), "Updated contact %d\n", id)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "No contact found for %d\n", id)
	}
	return nil
}

// update builds a ContactUpdate from the flags that were actually set.
func (c *Command) update(cmd *cobra.Command) *models.ContactUpdate {
	f := cmd.Flags()
	upd := &models.ContactUpdate{}
	if f.Changed("name") {
		upd.Name = &c.name
	}
	if f.Changed("phone") {
		upd.Phone = &c.phone
	}
	switch {
	case c.clearEmail:
		cleared := ""
		upd.Email = &cleared
	case f.Changed("email"):
		upd.Email = &c.email
	}
	return upd
}
