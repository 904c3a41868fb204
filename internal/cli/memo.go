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
	rootCmd.AddCommand(memoCmd)
	memoCmd.AddCommand(memoAddCmd)
	memoCmd.AddCommand(memoRemoveCmd)
	memoCmd.AddCommand(memoSearchCmd)

	memoAddCmd.Flags().StringP("kind", "k", "store", "store, destination, blacklist, or tip")
}

var memoCmd = &cobra.Command{
	Use:   "memo",
	Short: "Keep field notes about stores and destinations",
}

var memoAddCmd = &cobra.Command{
	Use:   "add PLACE CONTENT",
	Short: "Add a field note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		return withEngine(func(eng *engine.Engine) error {
			rec, err := eng.AddMemo(args[0], args[1], domain.MemoKind(kind))
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Added %s memo #%d for %q\n", rec.Kind, rec.ID, rec.Place)
			return nil
		})
	},
}

var memoRemoveCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a field note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		return withEngine(func(eng *engine.Engine) error {
			if err := eng.DeleteMemo(id); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Removed memo #%d\n", id)
			return nil
		})
	},
}

var memoSearchCmd = &cobra.Command{
	Use:   "search [QUERY]",
	Short: "Search field notes by place or content",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var query string
		if len(args) == 1 {
			query = args[0]
		}
		return withEngine(func(eng *engine.Engine) error {
			memos := eng.SearchMemos(query)
			if len(memos) == 0 {
				fmt.Fprintln(os.Stdout, "No memos found.")
				return nil
			}
			for _, m := range memos {
				fmt.Fprintf(os.Stdout, "#%d [%s] %s: %s\n", m.ID, m.Kind, m.Place, m.Content)
			}
			return nil
		})
	},
}
