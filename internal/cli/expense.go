package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ghostrider-app/ghostrider/internal/app/engine"
	"github.com/ghostrider-app/ghostrider/internal/domain"
)

func init() {
	rootCmd.AddCommand(expenseCmd)
	expenseCmd.AddCommand(expenseAddCmd)
	expenseCmd.AddCommand(expenseRemoveCmd)
	expenseCmd.AddCommand(expenseListCmd)

	expenseAddCmd.Flags().StringP("note", "n", "", "Optional note")
	expenseListCmd.Flags().StringP("period", "p", "today", "today, week, or month")
}

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Track costs in the expense ledger",
}

var expenseAddCmd = &cobra.Command{
	Use:   "add CATEGORY AMOUNT",
	Short: "Add an expense (category: food, fuel, or other)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("amount must be an integer amount in won: %q", args[1])
		}
		note, _ := cmd.Flags().GetString("note")

		return withEngine(func(eng *engine.Engine) error {
			rec, err := eng.AddExpense(domain.ExpenseCategory(args[0]), amount, note)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Added %s expense #%d: %s\n", rec.Category, rec.ID, domain.FormatPrice(rec.Amount))
			return nil
		})
	},
}

var expenseRemoveCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove an expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		return withEngine(func(eng *engine.Engine) error {
			if err := eng.DeleteExpense(id); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Removed expense #%d\n", id)
			return nil
		})
	},
}

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses for a period",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("period")
		period := domain.Period(raw)
		if !period.Valid() {
			return fmt.Errorf("period must be today, week, or month")
		}
		return withEngine(func(eng *engine.Engine) error {
			expenses := eng.ExpensesForPeriod(period)
			if len(expenses) == 0 {
				fmt.Fprintln(os.Stdout, "No expenses recorded.")
				return nil
			}
			var total int64
			for _, ex := range expenses {
				total += ex.Amount
				fmt.Fprintf(os.Stdout, "#%d %s  %-5s %s", ex.ID, ex.DateKey, ex.Category, domain.FormatPrice(ex.Amount))
				if ex.Note != "" {
					fmt.Fprintf(os.Stdout, "  %s", ex.Note)
				}
				fmt.Fprintln(os.Stdout)
			}
			fmt.Fprintf(os.Stdout, "Total: %s\n", domain.FormatPrice(total))
			return nil
		})
	},
}
