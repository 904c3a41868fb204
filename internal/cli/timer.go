package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ghostrider-app/ghostrider/internal/app/engine"
	"github.com/ghostrider-app/ghostrider/internal/app/tracker"
	"github.com/ghostrider-app/ghostrider/internal/domain"
)

func init() {
	rootCmd.AddCommand(timerCmd)
	timerCmd.AddCommand(timerStartCmd)
	timerCmd.AddCommand(timerStopCmd)
	timerCmd.AddCommand(timerRestCmd)
	timerCmd.AddCommand(timerStatusCmd)
}

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Track per-app usage time",
	Long: `Track how long each delivery app has been in use today. Only one
app runs at a time; starting one stops the others. Past two hours of
continuous use the daemon raises fatigue warnings every 30 minutes.`,
}

var timerStartCmd = &cobra.Command{
	Use:   "start PLATFORM",
	Short: "Start tracking a platform (baemin, coupang, yogiyo)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		platform := domain.Platform(args[0])
		return withEngine(func(eng *engine.Engine) error {
			if err := eng.StartTimer(platform); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "⏱  Tracking %s\n", platform)
			return nil
		})
	},
}

var timerStopCmd = &cobra.Command{
	Use:   "stop PLATFORM",
	Short: "Stop tracking a platform",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		platform := domain.Platform(args[0])
		return withEngine(func(eng *engine.Engine) error {
			if err := eng.StopTimer(platform); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Stopped %s\n", platform)
			return nil
		})
	},
}

var timerRestCmd = &cobra.Command{
	Use:   "rest",
	Short: "Stop all timers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(eng *engine.Engine) error {
			eng.StopAllTimers()
			fmt.Fprintln(os.Stdout, "All timers stopped. Take a break.")
			return nil
		})
	},
}

var timerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's per-app usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(eng *engine.Engine) error {
			statuses, total := eng.TimerStatuses()
			for _, s := range statuses {
				mark := " "
				if s.Running {
					mark = "▶"
				}
				line := fmt.Sprintf("%s %-8s %s", mark, s.Platform, domain.FormatSeconds(s.LiveSeconds))
				if s.LiveSeconds >= tracker.FatigueThresholdSeconds {
					line += "  ⚠️ fatigue"
				}
				fmt.Fprintln(os.Stdout, line)
			}
			fmt.Fprintf(os.Stdout, "Total: %s\n", domain.FormatSeconds(total))
			return nil
		})
	},
}
