package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quicksplit/quicksplit/internal/ledger"
)

// NewSettleCommand creates the settle command.
func NewSettleCommand(app *App) *cobra.Command {
	var (
		to     string
		amount float64
	)

	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Settle your debt with another user",
		Long: `Settle your outstanding debt with another user.

The settlement clears everything you currently owe that user; the
recorded amount defaults to your full outstanding balance and only
serves as the audit figure.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.currentUser(cmd.Context())
			if err != nil {
				return err
			}

			receiver, err := app.Store.GetUserByUsername(cmd.Context(), to)
			if err != nil {
				return fmt.Errorf("failed to look up %s: %w", to, err)
			}
			if receiver == nil {
				return &ledger.NotFoundError{Username: to}
			}

			if amount == 0 {
				balances, err := app.Ledger.Balances(cmd.Context(), user)
				if err != nil {
					return err
				}
				owed := balances[receiver.Username]
				if owed >= 0 {
					return fmt.Errorf("you don't owe %s anything", receiver.Username)
				}
				amount = -owed
			}

			settlement, err := app.Ledger.Settle(cmd.Context(), user, receiver, amount)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Settled $%.2f with %s.\n", settlement.Amount, receiver.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "username you are paying (required)")
	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "amount paid (defaults to your full outstanding balance)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// NewSettlementsCommand creates the settlements command.
func NewSettlementsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "settlements",
		Short: "Show your settlement history",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.currentUser(cmd.Context())
			if err != nil {
				return err
			}

			settlements, err := app.Ledger.SettlementHistory(cmd.Context(), user)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(settlements) == 0 {
				fmt.Fprintln(out, "No settlements yet.")
				return nil
			}

			for _, settlement := range settlements {
				fmt.Fprintf(out, "%s  %s paid %s $%.2f\n",
					time.Unix(settlement.SettledAt, 0).Format("2006-01-02"),
					settlement.PayerName,
					settlement.ReceiverName,
					settlement.Amount,
				)
			}
			return nil
		},
	}
}
