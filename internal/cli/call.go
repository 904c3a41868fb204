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
	rootCmd.AddCommand(callCmd)
	callCmd.AddCommand(callAcceptCmd)
	callCmd.AddCommand(callRejectCmd)
	callCmd.AddCommand(callRemoveCmd)
	callCmd.AddCommand(callListCmd)

	callAcceptCmd.Flags().StringP("store", "s", "", "Store or pickup name")
	callRejectCmd.Flags().StringP("store", "s", "", "Store or pickup name")
	callListCmd.Flags().StringP("period", "p", "today", "today, week, or month")
}

var callCmd = &cobra.Command{
	Use:   "call",
	Short: "Record accept/reject decisions in the call ledger",
}

var callAcceptCmd = &cobra.Command{
	Use:   "accept PRICE [DISTANCE_KM]",
	Short: "Record an accepted call",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecordCall(cmd, args, true)
	},
}

var callRejectCmd = &cobra.Command{
	Use:   "reject PRICE [DISTANCE_KM]",
	Short: "Record a rejected call",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecordCall(cmd, args, false)
	},
}

func runRecordCall(cmd *cobra.Command, args []string, accepted bool) error {
	price, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("price must be an integer amount in won: %q", args[0])
	}
	var distance float64
	if len(args) == 2 {
		distance, err = strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("distance must be a number in km: %q", args[1])
		}
	}
	storeName, _ := cmd.Flags().GetString("store")

	return withEngine(func(eng *engine.Engine) error {
		rec, err := eng.RecordCall(domain.Offer{Price: price, DistanceKm: distance}, storeName, accepted)
		if err != nil {
			return err
		}
		word := "rejected"
		if accepted {
			word = "accepted"
		}
		fmt.Fprintf(os.Stdout, "Recorded %s call #%d: %s", word, rec.ID, domain.FormatPrice(rec.Price))
		if rec.DistanceKm > 0 {
			fmt.Fprintf(os.Stdout, " / %.1fkm (%s/km)", rec.DistanceKm, domain.FormatPrice(rec.PricePerKm()))
		}
		fmt.Fprintln(os.Stdout)

		if eng.LoyaltyWarningActive() {
			fmt.Fprintln(os.Stdout, "⚠️  Acceptance rate is high today. The platform may start lowering your offers.")
		}
		return nil
	})
}

var callRemoveCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a call record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		return withEngine(func(eng *engine.Engine) error {
			if err := eng.DeleteCall(id); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Removed call #%d\n", id)
			return nil
		})
	},
}

var callListCmd = &cobra.Command{
	Use:   "list",
	Short: "List call records for a period",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("period")
		period := domain.Period(raw)
		if !period.Valid() {
			return fmt.Errorf("period must be today, week, or month")
		}
		return withEngine(func(eng *engine.Engine) error {
			calls := eng.CallsForPeriod(period)
			if len(calls) == 0 {
				fmt.Fprintln(os.Stdout, "No calls recorded.")
				return nil
			}
			for _, c := range calls {
				mark := "❌"
				if c.Accepted {
					mark = "✅"
				}
				fmt.Fprintf(os.Stdout, "%s #%d %s  %s", mark, c.ID, c.DateKey, domain.FormatPrice(c.Price))
				if c.DistanceKm > 0 {
					fmt.Fprintf(os.Stdout, " / %.1fkm", c.DistanceKm)
				}
				if c.Store != "" {
					fmt.Fprintf(os.Stdout, "  %s", c.Store)
				}
				fmt.Fprintln(os.Stdout)
			}
			return nil
		})
	},
}
