package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().Bool("init", false, "Write the default config file if missing")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	if initFlag, _ := cmd.Flags().GetBool("init"); initFlag {
		path := cfg.ConfigPath()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		}
		if err := cfg.Save(path); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote %s\n", path)
		return nil
	}

	fmt.Fprintf(os.Stdout, "# %s\n", cfg.ConfigPath())
	return toml.NewEncoder(os.Stdout).Encode(cfg)
}
