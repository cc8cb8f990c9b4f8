// Package rootcmd wires the root cobra.Command for the phonebook CLI binary.
package rootcmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	addcmd "github.com/go-ports/phonebook/cmd/phonebook/add"
	configcmd "github.com/go-ports/phonebook/cmd/phonebook/config"
	deletecmd "github.com/go-ports/phonebook/cmd/phonebook/delete"
	editcmd "github.com/go-ports/phonebook/cmd/phonebook/edit"
	initcmd "github.com/go-ports/phonebook/cmd/phonebook/init"
	listcmd "github.com/go-ports/phonebook/cmd/phonebook/list"
	mcpcmd "github.com/go-ports/phonebook/cmd/phonebook/mcp"
	"github.com/go-ports/phonebook/cmd/phonebook/shared"
	shellcmd "github.com/go-ports/phonebook/cmd/phonebook/shell"
	showcmd "github.com/go-ports/phonebook/cmd/phonebook/show"
	transfercmd "github.com/go-ports/phonebook/cmd/phonebook/transfer"
	versioncmd "github.com/go-ports/phonebook/cmd/phonebook/version"
)

// New creates and returns the root cobra.Command for the phonebook CLI.
// Run without a subcommand it starts the interactive shell.
func New() *cobra.Command {
	ctx := &shared.Context{}
	shell := shellcmd.New(ctx)

	root := &cobra.Command{
		Use:           "phonebook",
		Short:         "Phonebook — local contact manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if ctx.Debug {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
		},
		RunE: shell.Run,
	}

	f := root.PersistentFlags()
	f.StringVar(
		&ctx.Home, "home", "",
		"Override phonebook home directory (default: $PHONEBOOK_HOME env → persisted config → ~/.phonebook)",
	)
	f.StringVar(&ctx.Database, "db", "", "Database file (default: storage.database from config.yaml, phonebook.db)")
	f.BoolVar(&ctx.Debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		initcmd.New(ctx).Cmd(),
		addcmd.New(ctx).Cmd(),
		listcmd.New(ctx).Cmd(),
		showcmd.New(ctx).Cmd(),
		editcmd.New(ctx).Cmd(),
		deletecmd.New(ctx).Cmd(),
		transfercmd.NewExport(ctx).Cmd(),
		transfercmd.NewImport(ctx).Cmd(),
		shell.Cmd(),
		configcmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
		versioncmd.New().Cmd(),
	)

	return root
}
