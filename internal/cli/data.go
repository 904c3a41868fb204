package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ghostrider-app/ghostrider/internal/app/engine"
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(clearCmd)

	exportCmd.Flags().StringP("out", "o", "", "Write to file instead of stdout")
	clearCmd.Flags().Bool("yes", false, "Confirm wiping ledgers and timers")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all state as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		return withEngine(func(eng *engine.Engine) error {
			data, err := json.MarshalIndent(eng.SerializeAll(), "", "  ")
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Fprintln(os.Stdout, string(data))
				return nil
			}
			if err := os.WriteFile(out, data, 0o600); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(os.Stdout, "Exported to %s\n", out)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a previously exported JSON snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read snapshot: %w", err)
		}
		var snap engine.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return fmt.Errorf("parse snapshot: %w", err)
		}
		return withEngine(func(eng *engine.Engine) error {
			if err := eng.ImportAll(snap); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Imported %d calls, %d expenses, %d memos\n",
				len(snap.Calls), len(snap.Expenses), len(snap.Memos))
			return nil
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Wipe ledgers and timers (settings and profile survive)",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("this wipes all calls, expenses, memos, and timers; re-run with --yes")
		}
		return withEngine(func(eng *engine.Engine) error {
			eng.ClearAll()
			fmt.Fprintln(os.Stdout, "All ledgers cleared.")
			return nil
		})
	},
}
