// Package transfercmd implements the `phonebook export` and `phonebook import` commands.
package transfercmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/phonebook/cmd/phonebook/shared"
	"github.com/go-ports/phonebook/internal/config"
	"github.com/go-ports/phonebook/internal/transfer"
)

// Command implements either `phonebook export` or `phonebook import`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// NewExport creates the export command.
func NewExport(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:       "export <json|csv> [file]",
		Short:     "Export all contacts to a JSON or CSV file",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{string(transfer.JSON), string(transfer.CSV)},
		RunE:      c.runExport,
	}
	return c
}

// NewImport creates the import command.
func NewImport(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "import <json|csv> [file]",
		Short: "Import contacts from a JSON or CSV file",
		Long: "Import contacts from a JSON or CSV file. Every record with a name and a\n" +
			"phone is added with a new id; incomplete records are skipped.",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{string(transfer.JSON), string(transfer.CSV)},
		RunE:      c.runImport,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runExport(cmd *cobra.Command, args []string) error {
	f, err := transfer.ParseFormat(args[0])
	if err != nil {
		return err
	}

	svc, err := c.ctx.OpenService()
	if err != nil {
		return err
	}
	defer svc.Close()

	path := fileArg(args, svc.Config, f)
	n, err := svc.Export(path, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d contact(s) to %s\n", n, path)
	return nil
}

func (c *Command) runImport(cmd *cobra.Command, args []string) error {
	f, err := transfer.ParseFormat(args[0])
	if err != nil {
		return err
	}

	svc, err := c.ctx.OpenService()
	if err != nil {
		return err
	}
	defer svc.Close()

	path := fileArg(args, svc.Config, f)
	res, err := svc.Import(path, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d contact(s) from %s (%d skipped)\n", res.Imported, path, res.Skipped)
	return nil
}

// fileArg returns the explicit file argument or the configured default for f.
func fileArg(args []string, cfg *config.Config, f transfer.Format) string {
	if len(args) > 1 && args[1] != "" {
		return args[1]
	}
	if f == transfer.CSV {
		return cfg.Transfer.CSVFile
	}
	return cfg.Transfer.JSONFile
}
