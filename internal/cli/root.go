// Package cli implements the ghostrider command line interface. Most
// commands open the engine directly against the local data dir; serve
// runs the daemon.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ghostrider-app/ghostrider/internal/app/engine"
	"github.com/ghostrider-app/ghostrider/internal/daemon"
	"github.com/ghostrider-app/ghostrider/internal/infra/logger"
)

var (
	configFlag  string
	dataDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "ghostrider",
	Short: "Delivery decision and fatigue tracking engine",
	Long: `GhostRider evaluates delivery offers against your price cutoffs,
tracks per-app usage timers with fatigue warnings, and keeps call,
expense, and memo ledgers with daily, weekly, and monthly stats.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config.toml (default <data dir>/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "State directory (default ~/.ghostrider)")
}

// loadCLIConfig resolves the effective config, letting --data-dir win
// over whatever the file says.
func loadCLIConfig() (daemon.Config, error) {
	cfg := daemon.DefaultConfig()
	if dataDirFlag != "" {
		cfg.Data.Dir = dataDirFlag
	}
	path := configFlag
	if path == "" {
		path = cfg.ConfigPath()
	}
	loaded, err := daemon.LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	if dataDirFlag != "" {
		loaded.Data.Dir = dataDirFlag
	}
	return loaded, nil
}

// withEngine opens the engine over the local store, runs fn, and closes
// the store afterwards.
func withEngine(fn func(*engine.Engine) error) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	eng, closeStore := daemon.OpenEngine(cfg, logger.New("cli"))
	defer closeStore()
	return fn(eng)
}
