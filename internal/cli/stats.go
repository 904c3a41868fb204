package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ghostrider-app/ghostrider/internal/app/engine"
	"github.com/ghostrider-app/ghostrider/internal/domain"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats [today|week|month]",
	Short: "Show earnings and decision stats for a period",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	period := domain.PeriodToday
	if len(args) == 1 {
		period = domain.Period(args[0])
	}

	return withEngine(func(eng *engine.Engine) error {
		m, err := eng.Stats(period)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Stats (%s)\n", period)
		fmt.Fprintf(os.Stdout, "  Earnings    %s  (%d deliveries)\n", domain.FormatPrice(m.TotalEarnings), m.DeliveryCount)
		fmt.Fprintf(os.Stdout, "  Expenses    %s\n", domain.FormatPrice(m.TotalExpense))
		fmt.Fprintf(os.Stdout, "  Net         %s\n", domain.FormatPrice(m.NetIncome))
		if m.DeliveryCount > 0 {
			fmt.Fprintf(os.Stdout, "  Avg price   %s\n", domain.FormatPrice(m.AvgPrice))
		}
		if m.TotalDistance > 0 {
			fmt.Fprintf(os.Stdout, "  Distance    %.1fkm (%s/km)\n", m.TotalDistance, domain.FormatPrice(m.PricePerKmOverall))
		}
		fmt.Fprintf(os.Stdout, "  Accept rate %d%% of %d calls\n", m.AcceptRate, m.TotalCalls)
		fmt.Fprintf(os.Stdout, "  Loyalty     %s\n", m.Risk)
		if m.Advice != "" {
			fmt.Fprintf(os.Stdout, "  %s\n", m.Advice)
		}
		return nil
	})
}
