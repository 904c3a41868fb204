package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ghostrider-app/ghostrider/internal/daemon"
	"github.com/ghostrider-app/ghostrider/internal/infra/logger"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the engine daemon with the HTTP API",
	Long: `Run the engine as a long-lived daemon: serves the JSON API on the
configured address and drives the once-per-second fatigue tick.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d := daemon.New(cfg, logger.New("daemon"))
	return d.Run(ctx)
}
