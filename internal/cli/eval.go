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
	rootCmd.AddCommand(evalCmd)
}

var evalCmd = &cobra.Command{
	Use:   "eval PRICE [DISTANCE_KM]",
	Short: "Evaluate a delivery offer against your cutoffs",
	Long: `Evaluate an offer. With price only, the verdict covers the minimum
price cutoff; add the distance in km for the full per-km check.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runEval,
}

func runEval(cmd *cobra.Command, args []string) error {
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

	return withEngine(func(eng *engine.Engine) error {
		rec, err := eng.EvaluateOffer(domain.Offer{Price: price, DistanceKm: distance})
		if err != nil {
			return err
		}
		printRecommendation(rec)
		return nil
	})
}

func printRecommendation(rec domain.Recommendation) {
	switch rec.Verdict {
	case domain.VerdictAccept:
		if rec.Tier == domain.TierGreat {
			fmt.Fprintf(os.Stdout, "✅ ACCEPT — %s/km, great call\n", domain.FormatPrice(rec.PricePerKm))
		} else if rec.Partial {
			fmt.Fprintln(os.Stdout, "✅ ACCEPT — price clears the cutoff (no distance given)")
		} else {
			fmt.Fprintf(os.Stdout, "✅ ACCEPT — %s/km\n", domain.FormatPrice(rec.PricePerKm))
		}
	case domain.VerdictReject:
		fmt.Fprintln(os.Stdout, "❌ REJECT")
		if rec.BelowMinPrice {
			fmt.Fprintln(os.Stdout, "   price below your minimum")
		}
		if rec.BelowMinPerKm {
			fmt.Fprintf(os.Stdout, "   %s/km below your per-km minimum\n", domain.FormatPrice(rec.PricePerKm))
		}
	case domain.VerdictStrongReject:
		fmt.Fprintf(os.Stdout, "❌ STRONG REJECT — %s/km, fails both cutoffs\n", domain.FormatPrice(rec.PricePerKm))
	default:
		fmt.Fprintln(os.Stdout, "enter a price to evaluate")
	}
}
