package cli

import (
	"fmt"
	"math"
	"sort"

	"github.com/spf13/cobra"
)

// NewBalancesCommand creates the balances command.
func NewBalancesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show your net balance with every counterparty",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.currentUser(cmd.Context())
			if err != nil {
				return err
			}

			balances, err := app.Ledger.Balances(cmd.Context(), user)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(balances) == 0 {
				fmt.Fprintln(out, "You don't have any outstanding balances.")
				return nil
			}

			usernames := make([]string, 0, len(balances))
			for username := range balances {
				usernames = append(usernames, username)
			}
			sort.Strings(usernames)

			for _, username := range usernames {
				amount := balances[username]
				switch {
				case amount > 0:
					fmt.Fprintf(out, "%s owes you $%.2f\n", username, amount)
				case amount < 0:
					fmt.Fprintf(out, "You owe %s $%.2f\n", username, math.Abs(amount))
				default:
					fmt.Fprintf(out, "You are settled up with %s\n", username)
				}
			}
			return nil
		},
	}
}
