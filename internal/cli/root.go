package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/quicksplit/quicksplit/pkg/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the quicksplit CLI.
func NewRootCommand(app *App) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "quicksplit",
		Short: "QuickSplit - track and settle shared expenses",
		Long: `QuickSplit tracks shared expenses among friends, splits each expense
equally or by custom amounts, and keeps net balances per counterparty
so debts can be settled in one payment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := app.Config.LogLevel
			if opts.Verbose {
				level = "debug"
			}
			logging.Setup(level)
			slog.Debug("Using database", "path", app.Config.DBPath)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewRegisterCommand(app))
	cmd.AddCommand(NewLoginCommand(app))
	cmd.AddCommand(NewLogoutCommand(app))
	cmd.AddCommand(NewExpenseCommand(app))
	cmd.AddCommand(NewBalancesCommand(app))
	cmd.AddCommand(NewSettleCommand(app))
	cmd.AddCommand(NewHistoryCommand(app))
	cmd.AddCommand(NewSettlementsCommand(app))

	return cmd
}
