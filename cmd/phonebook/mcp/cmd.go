// Package mcpcmd implements the `phonebook mcp` command.
package mcpcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/phonebook/cmd/phonebook/shared"
	internalmcp "github.com/go-ports/phonebook/internal/mcp"
)

// Command implements `phonebook mcp`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the mcp command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "mcp",
		Short: "Start the phonebook MCP server (stdio transport)",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
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

	return internalmcp.Serve(cmd.Context(), svc)
}
