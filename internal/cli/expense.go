package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quicksplit/quicksplit/internal/ledger"
)

// NewExpenseCommand creates the expense command group.
func NewExpenseCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record and manage shared expenses",
	}

	cmd.AddCommand(newExpenseAddCommand(app))
	cmd.AddCommand(newExpenseRemoveCommand(app))

	return cmd
}

func newExpenseAddCommand(app *App) *cobra.Command {
	var (
		description string
		amount      float64
		with        []string
		shares      []string
		scale       bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a shared expense",
		Long: `Record a shared expense split among participants.

Split the amount equally with --with, or by custom amounts with
repeated --share flags. A custom split must include your own share
and the shares must add up to the amount; pass --scale to have
mismatched shares rescaled proportionally instead of rejected.

Examples:
  quicksplit expense add -d "Dinner" -a 30 --with bob,carol
  quicksplit expense add -d "Groceries" -a 100 --share alice=40 --share bob=40 --share carol=20
  quicksplit expense add -d "Taxi" -a 100 --share alice=40 --share bob=40 --share carol=10 --scale`,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.currentUser(cmd.Context())
			if err != nil {
				return err
			}

			if (len(with) == 0) == (len(shares) == 0) {
				return fmt.Errorf("exactly one of --with or --share must be used")
			}

			in := ledger.ExpenseInput{
				Description: description,
				Amount:      amount,
			}
			if len(with) > 0 {
				in.Mode = ledger.SplitEqual
				in.Shares = append(in.Shares, ledger.Share{Username: user.Username})
				for _, username := range with {
					in.Shares = append(in.Shares, ledger.Share{Username: username})
				}
			} else {
				in.Mode = ledger.SplitCustom
				parsed, err := parseShares(shares, user.Username)
				if err != nil {
					return err
				}
				in.Shares = parsed
				if scale {
					in.OnMismatch = ledger.ResolveScale
				}
			}

			expense, err := app.Ledger.RecordExpense(cmd.Context(), user, in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Recorded %q for $%.2f\n", expense.Description, expense.Amount)
			for _, split := range expense.Splits {
				fmt.Fprintf(out, "  %s owes $%.2f\n", split.Username, split.Amount)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "what the expense was for (required)")
	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "total expense amount (required)")
	cmd.Flags().StringSliceVar(&with, "with", nil, "usernames to split equally with (comma separated)")
	cmd.Flags().StringArrayVar(&shares, "share", nil, "custom share as username=amount (repeatable)")
	cmd.Flags().BoolVar(&scale, "scale", false, "rescale mismatched custom shares proportionally")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newExpenseRemoveCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <expense-id>",
		Short: "Delete one of your expenses and its splits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.currentUser(cmd.Context())
			if err != nil {
				return err
			}

			if err := app.Ledger.DeleteExpense(cmd.Context(), user, args[0]); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Expense deleted.")
			return nil
		},
	}

	return cmd
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show your recorded expenses and their splits",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.currentUser(cmd.Context())
			if err != nil {
				return err
			}

			expenses, err := app.Ledger.ExpenseHistory(cmd.Context(), user)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(expenses) == 0 {
				fmt.Fprintln(out, "You don't have any expenses yet.")
				return nil
			}

			for _, expense := range expenses {
				fmt.Fprintf(out, "%s  %s  $%.2f  (%s)\n",
					expense.ID,
					time.Unix(expense.CreatedAt, 0).Format("2006-01-02"),
					expense.Amount,
					expense.Description,
				)
				for _, split := range expense.Splits {
					status := "unpaid"
					if split.IsPaid {
						status = "paid"
					}
					fmt.Fprintf(out, "    %s: $%.2f (%s)\n", split.Username, split.Amount, status)
				}
			}
			return nil
		},
	}
}

// parseShares parses repeated username=amount flags into ordered
// shares, moving the caller's own share to the front.
func parseShares(raw []string, creator string) ([]ledger.Share, error) {
	shares := make([]ledger.Share, 0, len(raw))
	creatorIdx := -1

	for _, entry := range raw {
		username, amountStr, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --share %q: expected username=amount", entry)
		}
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --share amount %q: %w", amountStr, err)
		}
		if username == creator {
			creatorIdx = len(shares)
		}
		shares = append(shares, ledger.Share{Username: username, Amount: amount})
	}

	if creatorIdx < 0 {
		return nil, fmt.Errorf("a custom split must include your own share (--share %s=...)", creator)
	}
	if creatorIdx > 0 {
		shares[0], shares[creatorIdx] = shares[creatorIdx], shares[0]
	}

	return shares, nil
}
